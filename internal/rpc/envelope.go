package rpc

import (
	"io"

	"github.com/goccy/go-json"

	"countries/internal/faults"
)

// Request is the JSON transport envelope
type Request struct {
	OperationKey
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response is the JSON transport reply; exactly one of Payload and Fault is set
type Response struct {
	Payload any           `json:"payload,omitempty"`
	Fault   *faults.Error `json:"fault,omitempty"`
}

type jsonPayload json.RawMessage

func (p jsonPayload) Decode(v any) error {
	if len(p) == 0 {
		return nil
	}
	if err := json.Unmarshal(p, v); err != nil {
		return faults.Wrap(faults.MalformedRequest, "cannot bind request payload", err)
	}
	return nil
}

// ReadRequest decodes a JSON envelope
func ReadRequest(r io.Reader) (OperationKey, Payload, error) {
	var req Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return OperationKey{}, nil, faults.Wrap(faults.MalformedRequest, "cannot parse JSON envelope", err)
	}
	if req.Name == "" {
		return OperationKey{}, nil, faults.New(faults.MalformedRequest, "JSON envelope has no operation")
	}
	return req.OperationKey, jsonPayload(req.Payload), nil
}

// FaultResponse converts err into a JSON fault reply
func FaultResponse(err error) Response {
	return Response{Fault: faults.New(faults.CodeOf(err), faults.MessageOf(err))}
}
