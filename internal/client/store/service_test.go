package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// fakeService is a small in-memory item service.
type fakeService struct {
	mu sync.Mutex

	users      map[string]string
	token      string
	tokenFails int
	items      map[int64]string
	nextID     int64
	itemStatus int

	requests []serviceRequest
}

type serviceRequest struct {
	Method string
	Path   string
	Auth   string
	Body   string
}

func newFakeService(t *testing.T) (*fakeService, *httptest.Server) {
	t.Helper()
	fs := &fakeService{
		users:  map[string]string{"u": "p"},
		token:  "tok-1",
		items:  map[int64]string{},
		nextID: 100,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", fs.handleToken)
	mux.HandleFunc("GET /api/items/{id}", fs.handleGet)
	mux.HandleFunc("PUT /api/items/{id}", fs.handlePut)
	mux.HandleFunc("POST /api/items", fs.handleRegister)
	mux.HandleFunc("GET /api/items", fs.handleList)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		fs.mu.Lock()
		defer fs.mu.Unlock()
		fs.requests = append(fs.requests, serviceRequest{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization"), Body: string(b)})
		r.Body = io.NopCloser(bytes.NewReader(b))
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return fs, srv
}

// set changes the service behaviour between calls.
func (fs *fakeService) set(fn func(*fakeService)) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fn(fs)
}

func (fs *fakeService) last() serviceRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.requests[len(fs.requests)-1]
}

func (fs *fakeService) count(method, path string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	n := 0
	for _, r := range fs.requests {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (fs *fakeService) authorized(r *http.Request) bool {
	return r.Header.Get("Authorization") == "Bearer "+fs.token
}

func (fs *fakeService) handleToken(w http.ResponseWriter, r *http.Request) {
	if fs.tokenFails != 0 {
		w.WriteHeader(fs.tokenFails)
		return
	}
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if pw, ok := fs.users[req.Username]; !ok || pw != req.Password {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	_, _ = fmt.Fprintf(w, `{"access_token":%q}`, fs.token)
}

func (fs *fakeService) handleGet(w http.ResponseWriter, r *http.Request) {
	if !fs.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if fs.itemStatus != 0 {
		w.WriteHeader(fs.itemStatus)
		return
	}
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	body, ok := fs.items[id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	_, _ = io.WriteString(w, body)
}

func (fs *fakeService) handlePut(w http.ResponseWriter, r *http.Request) {
	if !fs.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if fs.itemStatus != 0 {
		w.WriteHeader(fs.itemStatus)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (fs *fakeService) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !fs.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if fs.itemStatus != 0 {
		w.WriteHeader(fs.itemStatus)
		return
	}
	var body struct {
		ID *int64 `json:"id"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	id := fs.nextID
	if body.ID != nil {
		id = *body.ID
	} else {
		fs.nextID++
	}
	w.WriteHeader(http.StatusCreated)
	_, _ = fmt.Fprintf(w, "%d", id)
}

func (fs *fakeService) handleList(w http.ResponseWriter, r *http.Request) {
	if !fs.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	_, _ = io.WriteString(w, `[{"id":1,"brand":"Acme"},{"id":2,"brand":"Zeta"}]`)
}
