package rpc

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countries/internal/faults"
)

type jsonNameRequest struct {
	Name *string `json:"name"`
}

func TestReadRequest(t *testing.T) {
	key, p, err := ReadRequest(strings.NewReader(`{"namespace":"` + testNS + `","operation":"getCountryRequest","payload":{"name":"Poland"}}`))
	require.NoError(t, err)
	assert.Equal(t, OperationKey{Namespace: testNS, Name: "getCountryRequest"}, key)

	var req jsonNameRequest
	require.NoError(t, p.Decode(&req))
	require.NotNil(t, req.Name)
	assert.Equal(t, "Poland", *req.Name)
}

func TestReadRequestWithoutPayload(t *testing.T) {
	_, p, err := ReadRequest(strings.NewReader(`{"namespace":"` + testNS + `","operation":"getCountryRequest"}`))
	require.NoError(t, err)

	var req jsonNameRequest
	require.NoError(t, p.Decode(&req))
	assert.Nil(t, req.Name)
}

func TestReadRequestMalformed(t *testing.T) {
	for _, msg := range []string{``, `not json`, `{"namespace":"` + testNS + `"}`} {
		_, _, err := ReadRequest(strings.NewReader(msg))
		assert.Equal(t, faults.MalformedRequest, faults.CodeOf(err), msg)
	}

	_, p, err := ReadRequest(strings.NewReader(`{"operation":"x","payload":{"name":42}}`))
	require.NoError(t, err)
	var req jsonNameRequest
	assert.Equal(t, faults.MalformedRequest, faults.CodeOf(p.Decode(&req)))
}

func TestFaultResponse(t *testing.T) {
	b, err := json.Marshal(FaultResponse(faults.New(faults.InvalidArgument, "The country's name must not be null")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"fault":{"code":"INVALID_ARGUMENT","message":"The country's name must not be null"}}`, string(b))
}
