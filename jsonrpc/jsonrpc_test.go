package jsonrpc_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starknet-devnet/devnetgo/jsonrpc"
)

func TestRegisterMethodRejectsNonFunction(t *testing.T) {
	s := jsonrpc.NewServer()
	err := s.RegisterMethod("bad", 42)
	assert.Error(t, err)
}

func TestRegisterMethodRejectsWrongReturnCount(t *testing.T) {
	s := jsonrpc.NewServer()
	err := s.RegisterMethod("bad", func() string { return "x" })
	assert.Error(t, err)
}

func echo(s string) (string, *jsonrpc.Error) {
	return s, nil
}

func add(a, b int) (int, *jsonrpc.Error) {
	return a + b, nil
}

func alwaysFails() (string, *jsonrpc.Error) {
	return "", &jsonrpc.Error{Code: -1, Message: "boom"}
}

type rpcEnvelope struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *jsonrpc.Error  `json:"error"`
	ID      json.RawMessage `json:"id"`
}

func TestHandleDispatchesRegisteredMethod(t *testing.T) {
	s := jsonrpc.NewServer()
	require.NoError(t, s.RegisterMethod("echo", echo))

	out := s.Handle([]byte(`{"jsonrpc":"2.0","method":"echo","params":["hi"],"id":1}`))

	var env rpcEnvelope
	require.NoError(t, json.Unmarshal(out, &env))
	assert.Nil(t, env.Error)
	assert.JSONEq(t, `"hi"`, string(env.Result))
}

func TestHandleDispatchesWithMultipleParams(t *testing.T) {
	s := jsonrpc.NewServer()
	require.NoError(t, s.RegisterMethod("add", add))

	out := s.Handle([]byte(`{"jsonrpc":"2.0","method":"add","params":[2,3],"id":1}`))

	var env rpcEnvelope
	require.NoError(t, json.Unmarshal(out, &env))
	assert.Nil(t, env.Error)
	assert.JSONEq(t, `5`, string(env.Result))
}

func TestHandleReturnsMethodNotFound(t *testing.T) {
	s := jsonrpc.NewServer()

	out := s.Handle([]byte(`{"jsonrpc":"2.0","method":"missing","params":[],"id":1}`))

	var env rpcEnvelope
	require.NoError(t, json.Unmarshal(out, &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, -32601, env.Error.Code)
}

func TestHandleReturnsParseErrorOnInvalidJSON(t *testing.T) {
	s := jsonrpc.NewServer()

	out := s.Handle([]byte(`not json`))

	var env rpcEnvelope
	require.NoError(t, json.Unmarshal(out, &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, -32700, env.Error.Code)
}

func TestHandleReturnsInvalidParamsOnCountMismatch(t *testing.T) {
	s := jsonrpc.NewServer()
	require.NoError(t, s.RegisterMethod("add", add))

	out := s.Handle([]byte(`{"jsonrpc":"2.0","method":"add","params":[1],"id":1}`))

	var env rpcEnvelope
	require.NoError(t, json.Unmarshal(out, &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, -32602, env.Error.Code)
}

func TestHandlePropagatesMethodError(t *testing.T) {
	s := jsonrpc.NewServer()
	require.NoError(t, s.RegisterMethod("alwaysFails", alwaysFails))

	out := s.Handle([]byte(`{"jsonrpc":"2.0","method":"alwaysFails","params":[],"id":1}`))

	var env rpcEnvelope
	require.NoError(t, json.Unmarshal(out, &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, -1, env.Error.Code)
	assert.Equal(t, "boom", env.Error.Message)
}

func TestErrorCloneWithDataLeavesReceiverUntouched(t *testing.T) {
	sentinel := &jsonrpc.Error{Code: 20, Message: "contract not found"}
	withData := sentinel.CloneWithData("0x1")

	assert.Nil(t, sentinel.Data)
	assert.Equal(t, "0x1", withData.Data)
	assert.Equal(t, sentinel.Code, withData.Code)
}
