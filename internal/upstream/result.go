package upstream

import (
	"encoding/json"

	"github.com/shidduch-link/matchmaker-web/pkg/errors"
)

// Outcome tags how an upstream call ended. Every call site must handle all
// three cases; the client itself never raises for non-2xx responses.
type Outcome int

const (
	// OutcomeSuccess is a 2xx response; Body carries the raw payload.
	OutcomeSuccess Outcome = iota
	// OutcomeRejected is a well-formed non-2xx response; Message carries the
	// best-effort extracted reason.
	OutcomeRejected
	// OutcomeUnreachable is a connection failure or timeout.
	OutcomeUnreachable
)

// genericRejection is shown when the rejection body carries no usable
// message field.
const genericRejection = "The matchmaking service could not process the request."

// Result is the tagged outcome of one upstream API call.
type Result struct {
	Outcome    Outcome
	StatusCode int    // set for Success and Rejected
	Body       []byte // raw payload on Success
	Message    string // user-facing reason on Rejected
	Err        error  // transport error on Unreachable
}

// Decode unmarshals the success body into untyped JSON for normalization.
// A missing or malformed body yields nil, which every normalizer treats as
// absent data.
func (r Result) Decode() any {
	if r.Outcome != OutcomeSuccess || len(r.Body) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return nil
	}
	return v
}

// DecodeInto unmarshals the success body into a typed destination.
func (r Result) DecodeInto(dst any) error {
	if r.Outcome != OutcomeSuccess {
		return errors.InternalError("decode on non-success result")
	}
	return json.Unmarshal(r.Body, dst)
}

// extractMessage pulls a human-readable reason out of a rejection body.
// The upstream API is inconsistent about the field name, so both "message"
// and "error" are tried before falling back to a generic reason.
func extractMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return genericRejection
	}
	if msg, ok := payload["message"].(string); ok && msg != "" {
		return msg
	}
	if msg, ok := payload["error"].(string); ok && msg != "" {
		return msg
	}
	return genericRejection
}

func outcomeLabel(o Outcome) string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unreachable"
	}
}
