package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starknet-devnet/devnetgo/blockchain"
	"github.com/starknet-devnet/devnetgo/builder"
	"github.com/starknet-devnet/devnetgo/core"
	"github.com/starknet-devnet/devnetgo/core/felt"
	"github.com/starknet-devnet/devnetgo/utils"
	"github.com/starknet-devnet/devnetgo/vm"
)

func newTestPipeline(t *testing.T) (*TxPipeline, *blockchain.Blockchain, *builder.Builder) {
	t.Helper()
	chain := blockchain.New(utils.TestNet)
	seq := new(felt.Felt).SetUint64(1)
	chainID := chain.Network().L2ChainIDFelt()
	b := builder.New(chain, seq, chainID, func() int64 { return 1000 })
	p := New(chain, b, vm.NewSimpleExecutor(), chainID, new(felt.Felt).SetUint64(1))
	return p, chain, b
}

func declareAccountClass(t *testing.T, chain *blockchain.Blockchain) *felt.Felt {
	t.Helper()
	classHash := new(felt.Felt).SetUint64(0xACC0)
	err := chain.Layered.Pending.Declare(classHash, &core.Cairo0Class{Program: []byte(`{}`)}, nil, 0)
	require.NoError(t, err)
	return classHash
}

// S1 — deploy-account with zero max_fee is rejected at admission.
func TestAddDeployAccountTransactionZeroFeeRejectedAtAdmission(t *testing.T) {
	p, chain, _ := newTestPipeline(t)
	classHash := declareAccountClass(t, chain)

	before := chain.Layered.Pending.Snapshot()

	tx := &core.DeployAccountTransaction{
		ClassHash:           classHash,
		ContractAddressSalt: new(felt.Felt),
		ConstructorCalldata: nil,
		MaxFee:              new(felt.Felt),
		Nonce:               new(felt.Felt),
	}
	_, err := p.AddDeployAccountTransaction(tx)
	assert.ErrorIs(t, err, core.ErrFeeZero)
	assert.Equal(t, 0, chain.Transactions.Len())
	assertStateEqual(t, before, chain.Layered.Pending)
}

// S2 — deploy-account with max_fee=2000 but account_balance=0 is admitted
// as Rejected.
func TestAddDeployAccountTransactionInsufficientBalanceIsRejectedNotErrored(t *testing.T) {
	p, chain, _ := newTestPipeline(t)
	classHash := declareAccountClass(t, chain)

	tx := &core.DeployAccountTransaction{
		ClassHash:           classHash,
		ContractAddressSalt: new(felt.Felt),
		ConstructorCalldata: nil,
		MaxFee:              new(felt.Felt).SetUint64(2000),
		Nonce:               new(felt.Felt),
	}
	result, err := p.AddDeployAccountTransaction(tx)
	require.NoError(t, err)
	require.NotNil(t, result.ContractAddress)

	stored, ok := chain.Transactions.Get(*result.TransactionHash)
	require.True(t, ok)
	assert.Equal(t, core.Rejected, stored.Status)
}

// S3 — deploy-account with pre-funded balance 1_000_000 succeeds.
func TestAddDeployAccountTransactionSucceedsWhenFunded(t *testing.T) {
	p, chain, _ := newTestPipeline(t)
	classHash := declareAccountClass(t, chain)

	salt := new(felt.Felt)
	address := core.ComputeAddress(new(felt.Felt), salt, classHash, nil)
	balanceKey := core.StorageKey{Address: *address, Key: *vm.StorageVarAddress("ERC20_balances", address)}
	chain.Layered.Pending.SetStorage(balanceKey, new(felt.Felt).SetUint64(1_000_000))

	tx := &core.DeployAccountTransaction{
		ClassHash:           classHash,
		ContractAddressSalt: salt,
		ConstructorCalldata: nil,
		MaxFee:              new(felt.Felt).SetUint64(4000),
		Nonce:               new(felt.Felt),
	}
	result, err := p.AddDeployAccountTransaction(tx)
	require.NoError(t, err)

	stored, ok := chain.Transactions.Get(*result.TransactionHash)
	require.True(t, ok)
	assert.Equal(t, core.AcceptedOnL2, stored.Status)
	assert.True(t, chain.Layered.Pending.IsDeployed(address))

	remaining := chain.Layered.Pending.GetStorage(balanceKey)
	assert.Equal(t, -1, remaining.Cmp(new(felt.Felt).SetUint64(1_000_000)))
}

// S4 — invoke increase_balance(10) then increase_balance(15) with nonces
// 0 and 1: both Accepted, storage becomes 25.
func TestAddInvokeTransactionAccumulatesBalanceAcrossNonces(t *testing.T) {
	p, chain, _ := newTestPipeline(t)
	target := new(felt.Felt).SetUint64(0xBEEF)
	selector := vm.Selector("increase_balance")

	fund(t, chain, target, 1_000_000)

	tx1 := &core.InvokeTransaction{
		Version:            core.TxInvokeV0,
		ContractAddress:    target,
		EntryPointSelector: selector,
		CallData:           []*felt.Felt{new(felt.Felt).SetUint64(10)},
		MaxFee:             new(felt.Felt).SetUint64(1),
	}
	res1, err := p.AddInvokeTransaction(tx1)
	require.NoError(t, err)
	stored1, _ := chain.Transactions.Get(*res1.TransactionHash)
	require.Equal(t, core.AcceptedOnL2, stored1.Status)

	tx2 := &core.InvokeTransaction{
		Version:            core.TxInvokeV0,
		ContractAddress:    target,
		EntryPointSelector: selector,
		CallData:           []*felt.Felt{new(felt.Felt).SetUint64(15)},
		MaxFee:             new(felt.Felt).SetUint64(1),
	}
	res2, err := p.AddInvokeTransaction(tx2)
	require.NoError(t, err)
	stored2, _ := chain.Transactions.Get(*res2.TransactionHash)
	require.Equal(t, core.AcceptedOnL2, stored2.Status)

	key := core.StorageKey{Address: *target, Key: *vm.StorageVarAddress("balance")}
	balance := chain.Layered.Pending.GetStorage(key)
	assert.True(t, balance.Equal(new(felt.Felt).SetUint64(25)))
}

// S5 — invoke with zero max_fee rejected at admission.
func TestAddInvokeTransactionZeroFeeRejectedAtAdmission(t *testing.T) {
	p, chain, _ := newTestPipeline(t)
	tx := &core.InvokeTransaction{
		Version:            core.TxInvokeV0,
		ContractAddress:    new(felt.Felt).SetUint64(1),
		EntryPointSelector: vm.Selector("increase_balance"),
		CallData:           []*felt.Felt{new(felt.Felt).SetUint64(10)},
		MaxFee:             new(felt.Felt),
	}
	_, err := p.AddInvokeTransaction(tx)
	assert.ErrorIs(t, err, core.ErrFeeZero)
	assert.Equal(t, 0, chain.Transactions.Len())
}

// S6 — replaying the same invoke (same nonce) is rejected with
// InvalidNonce, and is still indexed.
func TestAddInvokeTransactionNonceReplayIsRejected(t *testing.T) {
	p, chain, _ := newTestPipeline(t)
	sender := new(felt.Felt).SetUint64(0xA11CE)
	fund(t, chain, sender, 1_000_000)

	makeTx := func() *core.InvokeTransaction {
		return &core.InvokeTransaction{
			Version:       core.TxInvokeV1,
			SenderAddress: sender,
			Nonce:         new(felt.Felt), // always 0: simulates a replay
			CallData:      []*felt.Felt{sender, vm.Selector("increase_balance"), new(felt.Felt).SetUint64(1), new(felt.Felt).SetUint64(10)},
			MaxFee:        new(felt.Felt).SetUint64(1),
		}
	}

	res1, err := p.AddInvokeTransaction(makeTx())
	require.NoError(t, err)
	stored1, _ := chain.Transactions.Get(*res1.TransactionHash)
	require.Equal(t, core.AcceptedOnL2, stored1.Status)

	before := chain.Layered.Pending.Snapshot()

	res2, err := p.AddInvokeTransaction(makeTx())
	require.NoError(t, err)
	stored2, ok := chain.Transactions.Get(*res2.TransactionHash)
	require.True(t, ok)
	assert.Equal(t, core.Rejected, stored2.Status)
	assert.Contains(t, stored2.ExecutionError, string(vm.KindInvalidNonce))

	assertStateEqual(t, before, chain.Layered.Pending)
}

func fund(t *testing.T, chain *blockchain.Blockchain, address *felt.Felt, amount uint64) {
	t.Helper()
	key := core.StorageKey{Address: *address, Key: *vm.StorageVarAddress("ERC20_balances", address)}
	chain.Layered.Pending.SetStorage(key, new(felt.Felt).SetUint64(amount))
}

func assertStateEqual(t *testing.T, before, after *core.StateStore) {
	t.Helper()
	assert.True(t, before.Equal(after), "pending state must be unchanged (atomicity property)")
}
