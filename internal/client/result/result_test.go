package result

import (
	"testing"

	"github.com/dmitrijs2005/assettrack/internal/client/transport"
	"github.com/stretchr/testify/assert"
)

func TestFromProblem(t *testing.T) {
	tests := []struct {
		in   transport.Problem
		want Outcome
	}{
		{transport.ProblemNone, OK},
		{transport.ProblemNotFound, NotFound},
		{transport.ProblemClient, ServerError},
		{transport.ProblemServer, ServerError},
		{transport.ProblemTimeout, NetworkUnreachable},
		{transport.ProblemConnection, NetworkUnreachable},
		{transport.ProblemBadData, BadData},
		{transport.Problem(99), BadData},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, FromProblem(tt.in))
		})
	}
}

func TestFromResponse(t *testing.T) {
	assert.Equal(t, BadData, FromResponse(nil))
	assert.Equal(t, OK, FromResponse(&transport.RawResponse{OK: true}))
	assert.Equal(t, NotFound, FromResponse(&transport.RawResponse{Problem: transport.ProblemNotFound}))
}

func TestRetrievalOf(t *testing.T) {
	assert.Equal(t, Found, RetrievalOf(OK))
	assert.Equal(t, Missing, RetrievalOf(NotFound))
	for _, o := range []Outcome{ServerError, BadData, NetworkUnreachable} {
		assert.Equal(t, Failed, RetrievalOf(o), o.String())
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "server-error", ServerError.String())
	assert.Equal(t, "network-unreachable", NetworkUnreachable.String())
	assert.Equal(t, "outcome(9)", Outcome(9).String())
	assert.Equal(t, "not-found", Missing.String())
}
