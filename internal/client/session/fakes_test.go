package session

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/assettrack/internal/client/credentials"
	"github.com/dmitrijs2005/assettrack/internal/client/transport"
)

type fakeTransport struct {
	resp  *transport.RawResponse
	panic any

	token      string
	tokenSets  []string
	posts      int
	lastPath   string
	lastBody   any
	postTokens []string
}

func (f *fakeTransport) Post(ctx context.Context, path string, body any) *transport.RawResponse {
	f.posts++
	f.lastPath = path
	f.lastBody = body
	f.postTokens = append(f.postTokens, f.token)
	if f.panic != nil {
		panic(f.panic)
	}
	return f.resp
}

func (f *fakeTransport) SetAuthToken(token string) {
	f.token = token
	f.tokenSets = append(f.tokenSets, token)
}

func okBody(body string) *transport.RawResponse {
	return &transport.RawResponse{OK: true, Status: 200, Body: []byte(body)}
}

type fakeCreds struct {
	saved    *credentials.Credentials
	saves    int
	loads    int
	resets   int
	saveErr  error
	resetErr error
}

func (f *fakeCreds) Save(ctx context.Context, username, password string) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = &credentials.Credentials{Username: username, Password: password}
	return nil
}

func (f *fakeCreds) Load(ctx context.Context) (*credentials.Credentials, error) {
	f.loads++
	return f.saved, nil
}

func (f *fakeCreds) Reset(ctx context.Context) error {
	f.resets++
	f.saved = nil
	return f.resetErr
}

var errDisk = errors.New("disk full")
