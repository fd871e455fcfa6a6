// Package result is the closed outcome vocabulary returned by every remote
// call the store makes.
package result

import (
	"fmt"

	"github.com/dmitrijs2005/assettrack/internal/client/transport"
)

// Outcome tags the result of a remote call.
type Outcome int

const (
	OK Outcome = iota
	NotFound
	ServerError
	BadData
	NetworkUnreachable
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case NotFound:
		return "not-found"
	case ServerError:
		return "server-error"
	case BadData:
		return "bad-data"
	case NetworkUnreachable:
		return "network-unreachable"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// FromProblem maps a transport classification onto an Outcome.
// Client errors other than 404 count as server errors: the request was
// delivered and refused.
func FromProblem(p transport.Problem) Outcome {
	switch p {
	case transport.ProblemNone:
		return OK
	case transport.ProblemNotFound:
		return NotFound
	case transport.ProblemServer, transport.ProblemClient:
		return ServerError
	case transport.ProblemTimeout, transport.ProblemConnection:
		return NetworkUnreachable
	default:
		return BadData
	}
}

// FromResponse is FromProblem for a whole response; nil is BadData.
func FromResponse(resp *transport.RawResponse) Outcome {
	if resp == nil {
		return BadData
	}
	if resp.OK {
		return OK
	}
	return FromProblem(resp.Problem)
}

// Retrieval is the three-way answer to "fetch this item".
type Retrieval int

const (
	Found Retrieval = iota
	Missing
	Failed
)

func (r Retrieval) String() string {
	switch r {
	case Found:
		return "found"
	case Missing:
		return "not-found"
	default:
		return "error"
	}
}

// RetrievalOf collapses an Outcome for item lookups.
func RetrievalOf(o Outcome) Retrieval {
	switch o {
	case OK:
		return Found
	case NotFound:
		return Missing
	default:
		return Failed
	}
}
