package core

import (
	"fmt"

	"github.com/starknet-devnet/devnetgo/core/crypto"
	"github.com/starknet-devnet/devnetgo/core/felt"
)

// TransactionType tags the Transaction union, per SPEC_FULL.md §3.
type TransactionType int

const (
	TxDeclareV0 TransactionType = iota
	TxDeclareV1
	TxDeclareV2
	TxDeployAccount
	TxDeploy // legacy, receipt-only: never admitted by TxPipeline
	TxInvokeV0
	TxInvokeV1
	TxL1Handler
)

func (t TransactionType) String() string {
	switch t {
	case TxDeclareV0:
		return "DECLARE_V0"
	case TxDeclareV1:
		return "DECLARE_V1"
	case TxDeclareV2:
		return "DECLARE_V2"
	case TxDeployAccount:
		return "DEPLOY_ACCOUNT"
	case TxDeploy:
		return "DEPLOY"
	case TxInvokeV0:
		return "INVOKE_V0"
	case TxInvokeV1:
		return "INVOKE_V1"
	case TxL1Handler:
		return "L1_HANDLER"
	default:
		return "UNKNOWN"
	}
}

// Transaction is the tagged variant over the seven admissible kinds plus
// the legacy receipt-only Deploy, per SPEC_FULL.md §3. Every concrete
// transaction type in this package implements it.
type Transaction interface {
	Hash() *felt.Felt
	SetHash(*felt.Felt)
	Type() TransactionType
	Signature() []*felt.Felt
	MaxFeeFelt() *felt.Felt
}

// DeclareTransaction covers Declare v0/v1/v2. CompiledClassHash is only
// set (and only hashed in) for v2.
type DeclareTransaction struct {
	TransactionHash   *felt.Felt
	Version           TransactionType
	ClassHash         *felt.Felt
	CompiledClassHash *felt.Felt
	SenderAddress     *felt.Felt
	MaxFee            *felt.Felt
	Signature_        []*felt.Felt
	Nonce             *felt.Felt
}

func (d *DeclareTransaction) Hash() *felt.Felt          { return d.TransactionHash }
func (d *DeclareTransaction) SetHash(h *felt.Felt)       { d.TransactionHash = h }
func (d *DeclareTransaction) Type() TransactionType      { return d.Version }
func (d *DeclareTransaction) Signature() []*felt.Felt    { return d.Signature_ }
func (d *DeclareTransaction) MaxFeeFelt() *felt.Felt     { return d.MaxFee }

// DeployAccountTransaction self-deploys an account contract, paying its
// own deployment fee.
type DeployAccountTransaction struct {
	TransactionHash      *felt.Felt
	ClassHash            *felt.Felt
	ContractAddressSalt  *felt.Felt
	ConstructorCalldata  []*felt.Felt
	ContractAddress      *felt.Felt
	MaxFee               *felt.Felt
	Signature_           []*felt.Felt
	Nonce                *felt.Felt
}

func (d *DeployAccountTransaction) Hash() *felt.Felt       { return d.TransactionHash }
func (d *DeployAccountTransaction) SetHash(h *felt.Felt)   { d.TransactionHash = h }
func (d *DeployAccountTransaction) Type() TransactionType  { return TxDeployAccount }
func (d *DeployAccountTransaction) Signature() []*felt.Felt { return d.Signature_ }
func (d *DeployAccountTransaction) MaxFeeFelt() *felt.Felt { return d.MaxFee }

// DeployTransaction is the legacy receipt-only variant: never produced by
// TxPipeline, only ever held in historical fixtures/receipts.
type DeployTransaction struct {
	TransactionHash     *felt.Felt
	ContractAddressSalt *felt.Felt
	ContractAddress     *felt.Felt
	ClassHash           *felt.Felt
	ConstructorCalldata []*felt.Felt
	Version             *felt.Felt
}

func (d *DeployTransaction) Hash() *felt.Felt          { return d.TransactionHash }
func (d *DeployTransaction) SetHash(h *felt.Felt)      { d.TransactionHash = h }
func (d *DeployTransaction) Type() TransactionType     { return TxDeploy }
func (d *DeployTransaction) Signature() []*felt.Felt   { return nil }
func (d *DeployTransaction) MaxFeeFelt() *felt.Felt    { return &felt.Zero }

// InvokeTransaction covers Invoke v0 and v1. EntryPointSelector is only
// meaningful for v0; SenderAddress/Nonce only for v1.
type InvokeTransaction struct {
	TransactionHash    *felt.Felt
	Version            TransactionType
	CallData           []*felt.Felt
	Signature_         []*felt.Felt
	MaxFee             *felt.Felt
	ContractAddress    *felt.Felt // v0 target
	EntryPointSelector *felt.Felt // v0 only
	SenderAddress      *felt.Felt // v1
	Nonce              *felt.Felt // v1
}

func (i *InvokeTransaction) Hash() *felt.Felt         { return i.TransactionHash }
func (i *InvokeTransaction) SetHash(h *felt.Felt)     { i.TransactionHash = h }
func (i *InvokeTransaction) Type() TransactionType    { return i.Version }
func (i *InvokeTransaction) Signature() []*felt.Felt  { return i.Signature_ }
func (i *InvokeTransaction) MaxFeeFelt() *felt.Felt   { return i.MaxFee }

// L1HandlerTransaction represents an L1-to-L2 message execution.
type L1HandlerTransaction struct {
	TransactionHash    *felt.Felt
	ContractAddress    *felt.Felt
	EntryPointSelector *felt.Felt
	CallData           []*felt.Felt
	Nonce              *felt.Felt
}

func (l *L1HandlerTransaction) Hash() *felt.Felt        { return l.TransactionHash }
func (l *L1HandlerTransaction) SetHash(h *felt.Felt)    { l.TransactionHash = h }
func (l *L1HandlerTransaction) Type() TransactionType   { return TxL1Handler }
func (l *L1HandlerTransaction) Signature() []*felt.Felt { return nil }
func (l *L1HandlerTransaction) MaxFeeFelt() *felt.Felt  { return &felt.Zero }

// domain-separator felts mixed into every transaction hash, following
// other_examples/...core-transaction.go exactly — these must not be
// re-derived ad hoc (SPEC_FULL.md §9).
var (
	invokeFelt        = new(felt.Felt).SetBytes([]byte("invoke"))
	declareFelt       = new(felt.Felt).SetBytes([]byte("declare"))
	deployAccountFelt = new(felt.Felt).SetBytes([]byte("deploy_account"))
	l1HandlerFelt     = new(felt.Felt).SetBytes([]byte("l1_handler"))
)

// ErrInvalidTransactionVersion is returned by Hash when a transaction
// carries a version this engine does not know how to hash.
type ErrInvalidTransactionVersion struct {
	Type    TransactionType
	Version TransactionType
}

func (e *ErrInvalidTransactionVersion) Error() string {
	return fmt.Sprintf("invalid transaction version %v for type %v", e.Version, e.Type)
}

// TransactionHash computes the protocol's deterministic transaction_hash
// for tx, mixing in chainID per SPEC_FULL.md §4.6 and §9. It does not read
// or set tx.Hash(); callers store the result via SetHash.
func TransactionHash(tx Transaction, chainID *felt.Felt) (*felt.Felt, error) {
	switch t := tx.(type) {
	case *DeclareTransaction:
		return declareTransactionHash(t, chainID)
	case *InvokeTransaction:
		return invokeTransactionHash(t, chainID)
	case *DeployAccountTransaction:
		return deployAccountTransactionHash(t, chainID)
	case *L1HandlerTransaction:
		return l1HandlerTransactionHash(t, chainID)
	case *DeployTransaction:
		return t.TransactionHash, nil
	default:
		return nil, fmt.Errorf("unknown transaction type %T", tx)
	}
}

func invokeTransactionHash(i *InvokeTransaction, chainID *felt.Felt) (*felt.Felt, error) {
	switch i.Version {
	case TxInvokeV0:
		return crypto.PedersenArray(
			invokeFelt,
			new(felt.Felt), // version 0
			i.ContractAddress,
			i.EntryPointSelector,
			crypto.PedersenArray(i.CallData...),
			i.MaxFee,
			chainID,
		), nil
	case TxInvokeV1:
		return crypto.PedersenArray(
			invokeFelt,
			new(felt.Felt).SetUint64(1),
			i.SenderAddress,
			new(felt.Felt),
			crypto.PedersenArray(i.CallData...),
			i.MaxFee,
			chainID,
			i.Nonce,
		), nil
	default:
		return nil, &ErrInvalidTransactionVersion{Type: TxInvokeV0, Version: i.Version}
	}
}

func declareTransactionHash(d *DeclareTransaction, chainID *felt.Felt) (*felt.Felt, error) {
	switch d.Version {
	case TxDeclareV0:
		return crypto.PedersenArray(
			declareFelt,
			new(felt.Felt),
			d.SenderAddress,
			new(felt.Felt),
			crypto.PedersenArray(),
			d.MaxFee,
			chainID,
		), nil
	case TxDeclareV1:
		return crypto.PedersenArray(
			declareFelt,
			new(felt.Felt).SetUint64(1),
			d.SenderAddress,
			new(felt.Felt),
			crypto.PedersenArray(d.ClassHash),
			d.MaxFee,
			chainID,
			d.Nonce,
		), nil
	case TxDeclareV2:
		return crypto.PedersenArray(
			declareFelt,
			new(felt.Felt).SetUint64(2),
			d.SenderAddress,
			&felt.Zero,
			crypto.PedersenArray(d.ClassHash),
			d.MaxFee,
			chainID,
			d.Nonce,
			d.CompiledClassHash,
		), nil
	default:
		return nil, &ErrInvalidTransactionVersion{Type: TxDeclareV1, Version: d.Version}
	}
}

func deployAccountTransactionHash(d *DeployAccountTransaction, chainID *felt.Felt) (*felt.Felt, error) {
	callData := append([]*felt.Felt{d.ClassHash, d.ContractAddressSalt}, d.ConstructorCalldata...)
	return crypto.PedersenArray(
		deployAccountFelt,
		new(felt.Felt).SetUint64(1),
		d.ContractAddress,
		&felt.Zero,
		crypto.PedersenArray(callData...),
		d.MaxFee,
		chainID,
		d.Nonce,
	), nil
}

func l1HandlerTransactionHash(l *L1HandlerTransaction, chainID *felt.Felt) (*felt.Felt, error) {
	nonce := l.Nonce
	if nonce == nil {
		nonce = new(felt.Felt)
	}
	return crypto.PedersenArray(
		l1HandlerFelt,
		new(felt.Felt),
		l.ContractAddress,
		l.EntryPointSelector,
		crypto.PedersenArray(l.CallData...),
		&felt.Zero,
		chainID,
		nonce,
	), nil
}
