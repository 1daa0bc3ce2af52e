package rpc

import "github.com/starknet-devnet/devnetgo/jsonrpc"

// Sentinel JSON-RPC errors, numbered per the starknet-specs openrpc
// schema, matching juno's own rpc/errors.go contract (ErrContractNotFound
// etc. referenced directly in the copied rpc/chain.go). These are never
// mutated in place — CloneWithData is used wherever extra Data needs
// attaching, per jsonrpc.Error's own doc comment.
var (
	ErrContractNotFound = &jsonrpc.Error{Code: 20, Message: "Contract not found"}
	ErrClassHashNotFound = &jsonrpc.Error{Code: 28, Message: "Class hash not found"}
	ErrBlockNotFound     = &jsonrpc.Error{Code: 24, Message: "Block not found"}
	ErrTxnHashNotFound   = &jsonrpc.Error{Code: 25, Message: "Transaction hash not found"}
	ErrInvalidTxnHash    = &jsonrpc.Error{Code: 27, Message: "Invalid transaction hash"}
	ErrFeeZero           = &jsonrpc.Error{Code: 52, Message: "max_fee must be non-zero"}
	ErrUndeclaredClass   = &jsonrpc.Error{Code: 28, Message: "Class hash not declared"}
	ErrClassAlreadyDeclared = &jsonrpc.Error{Code: 51, Message: "Class already declared"}
	ErrContractError     = &jsonrpc.Error{Code: 40, Message: "Contract error"}
	ErrInternal          = &jsonrpc.Error{Code: -32603, Message: "Internal error"}
)

type ContractErrorData struct {
	RevertError string `json:"revert_error"`
}

func makeContractError(err error) *jsonrpc.Error {
	return ErrContractError.CloneWithData(ContractErrorData{RevertError: err.Error()})
}
