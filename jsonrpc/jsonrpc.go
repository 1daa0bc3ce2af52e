// Package jsonrpc implements the thin JSON-RPC 2.0 envelope and
// reflection-based method dispatch rpc.Handler is built against, mirroring
// the contract juno's own jsonrpc package exposes to its rpc.Handler
// (Error/CloneWithData, Server/RegisterMethod/Handle).
package jsonrpc

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Error is a JSON-RPC 2.0 error object, shaped exactly like juno's own
// jsonrpc.Error as consumed throughout the copied rpc/chain.go
// (ErrContractNotFound.CloneWithData(...), etc).
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// CloneWithData returns a copy of e with Data set, leaving the receiver
// untouched — the pattern every sentinel *Error in rpc/errors.go is used
// through, since sentinels must never be mutated in place.
func (e *Error) CloneWithData(data interface{}) *Error {
	clone := *e
	clone.Data = data
	return &clone
}

// request is the wire shape of one JSON-RPC call.
type request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      json.RawMessage `json:"id"`
}

// response is the wire shape of one JSON-RPC reply.
type response struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

// method is a registered handler: a Go function taking the JSON-decoded
// params and returning (result, *Error).
type method struct {
	fn         reflect.Value
	paramTypes []reflect.Type
}

// Server is a minimal method-name -> handler dispatcher, reflection-based
// the way juno's own jsonrpc.Server resolves rpc.Handler's methods by
// name rather than pulling in a generic RPC router library — this concern
// is juno's own package's job, not a third-party one (SPEC_FULL.md §6).
type Server struct {
	methods map[string]method
}

// NewServer constructs an empty dispatcher.
func NewServer() *Server {
	return &Server{methods: make(map[string]method)}
}

// RegisterMethod binds name to fn. fn must be a function with signature
// func(<params...>) (<result>, *jsonrpc.Error) — every rpc.Handler method
// matches this shape.
func (s *Server) RegisterMethod(name string, fn interface{}) error {
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		return fmt.Errorf("jsonrpc: %q is not a function", name)
	}
	if t.NumOut() != 2 {
		return fmt.Errorf("jsonrpc: %q must return (result, *jsonrpc.Error)", name)
	}

	paramTypes := make([]reflect.Type, t.NumIn())
	for i := 0; i < t.NumIn(); i++ {
		paramTypes[i] = t.In(i)
	}
	s.methods[name] = method{fn: v, paramTypes: paramTypes}
	return nil
}

// Handle decodes and dispatches one JSON-RPC request body, returning the
// JSON-encoded response body.
func (s *Server) Handle(body []byte) []byte {
	var req request
	if err := json.Unmarshal(body, &req); err != nil {
		return s.encode(response{JSONRPC: "2.0", Error: &Error{Code: -32700, Message: "parse error"}})
	}

	m, ok := s.methods[req.Method]
	if !ok {
		return s.encode(response{JSONRPC: "2.0", ID: req.ID, Error: &Error{Code: -32601, Message: "method not found"}})
	}

	args, decodeErr := m.decodeParams(req.Params)
	if decodeErr != nil {
		return s.encode(response{JSONRPC: "2.0", ID: req.ID, Error: &Error{Code: -32602, Message: decodeErr.Error()}})
	}

	out := m.fn.Call(args)
	result := out[0].Interface()
	var rpcErr *Error
	if errVal := out[1].Interface(); errVal != nil {
		rpcErr = errVal.(*Error)
	}

	return s.encode(response{JSONRPC: "2.0", ID: req.ID, Result: result, Error: rpcErr})
}

func (m method) decodeParams(raw json.RawMessage) ([]reflect.Value, error) {
	var positional []json.RawMessage
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &positional); err != nil {
			return nil, fmt.Errorf("params must be a JSON array")
		}
	}
	if len(positional) != len(m.paramTypes) {
		return nil, fmt.Errorf("expected %d params, got %d", len(m.paramTypes), len(positional))
	}

	args := make([]reflect.Value, len(m.paramTypes))
	for i, t := range m.paramTypes {
		ptr := reflect.New(t)
		if err := json.Unmarshal(positional[i], ptr.Interface()); err != nil {
			return nil, fmt.Errorf("param %d: %w", i, err)
		}
		args[i] = ptr.Elem()
	}
	return args, nil
}

func (s *Server) encode(r response) []byte {
	if r.JSONRPC == "" {
		r.JSONRPC = "2.0"
	}
	out, err := json.Marshal(r)
	if err != nil {
		return []byte(`{"jsonrpc":"2.0","error":{"code":-32603,"message":"internal error"}}`)
	}
	return out
}
