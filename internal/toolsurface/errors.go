package toolsurface

import (
	"errors"

	"github.com/srg/thingy52mcp/internal/transport"
)

// ErrorEnvelope is the structured error object {error: {kind, message,
// details?}} every tool returns on failure, per the external interface
// contract.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Kind    string            `json:"kind"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// toEnvelope maps a Session/Transport error to the MCP error envelope. A
// *transport.Error keeps the kind Session/Transport classified; any other
// error is reported with kind "Unknown".
func toEnvelope(err error) ErrorEnvelope {
	var te *transport.Error
	if errors.As(err, &te) {
		return ErrorEnvelope{Error: ErrorBody{
			Kind:    string(te.Kind),
			Message: te.Error(),
			Details: te.Details,
		}}
	}
	return ErrorEnvelope{Error: ErrorBody{
		Kind:    "Unknown",
		Message: err.Error(),
	}}
}

func invalidArgument(field, reason string) error {
	return transport.NewInvalidArgument(field, reason)
}
