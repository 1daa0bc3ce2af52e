package blockchain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starknet-devnet/devnetgo/blockchain"
	"github.com/starknet-devnet/devnetgo/core"
	"github.com/starknet-devnet/devnetgo/core/felt"
	"github.com/starknet-devnet/devnetgo/utils"
)

func sealOne(t *testing.T, chain *blockchain.Blockchain, number uint64, hash *felt.Felt) {
	t.Helper()
	chain.Layered.Synchronize()
	chain.Historical.Put(number, hash, chain.Layered.Committed.Snapshot())
	require.NoError(t, chain.Blocks.Insert(*hash, &core.Block{
		Hash:       hash,
		ParentHash: new(felt.Felt),
		Number:     number,
		StateRoot:  new(felt.Felt),
	}))
}

func TestStateByIDRoutesPending(t *testing.T) {
	chain := blockchain.New(utils.TestNet)
	id := core.PendingBlockID()
	state, closer, err := chain.StateByID(&id)
	require.NoError(t, err)
	require.NoError(t, closer())
	assert.Same(t, chain.Layered.Pending, state)
}

func TestStateByIDRoutesLatest(t *testing.T) {
	chain := blockchain.New(utils.TestNet)
	id := core.LatestBlockID()
	state, _, err := chain.StateByID(&id)
	require.NoError(t, err)
	assert.Same(t, chain.Layered.Committed, state)
}

func TestStateByIDRoutesNumberAndHash(t *testing.T) {
	chain := blockchain.New(utils.TestNet)
	hash := new(felt.Felt).SetUint64(42)
	sealOne(t, chain, 0, hash)

	byNumber, _, err := chain.StateByID(&core.BlockID{Number: 0})
	require.NoError(t, err)
	assert.NotNil(t, byNumber)

	byHash, _, err := chain.StateByID(&core.BlockID{Hash: hash})
	require.NoError(t, err)
	assert.NotNil(t, byHash)
}

func TestStateByIDNumberNotFound(t *testing.T) {
	chain := blockchain.New(utils.TestNet)
	_, _, err := chain.StateByID(&core.BlockID{Number: 7})
	assert.Error(t, err)
}

func TestGetBlockByHashAndLatest(t *testing.T) {
	chain := blockchain.New(utils.TestNet)
	hash := new(felt.Felt).SetUint64(1)
	sealOne(t, chain, 0, hash)

	byHash, err := chain.GetBlock(&core.BlockID{Hash: hash})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), byHash.Number)

	id := core.LatestBlockID()
	byLatest, err := chain.GetBlock(&id)
	require.NoError(t, err)
	assert.True(t, byLatest.Hash.Equal(hash))
}

func TestGetBlockNotFound(t *testing.T) {
	chain := blockchain.New(utils.TestNet)
	id := core.LatestBlockID()
	_, err := chain.GetBlock(&id)
	assert.ErrorIs(t, err, core.ErrBlockNotFound)
}

func TestGetTransactionRoundTrips(t *testing.T) {
	chain := blockchain.New(utils.TestNet)
	hash := new(felt.Felt).SetUint64(5)
	require.NoError(t, chain.Transactions.Insert(*hash, &core.StoredTransaction{Status: core.AcceptedOnL2}))

	stored, err := chain.GetTransaction(hash)
	require.NoError(t, err)
	assert.Equal(t, core.AcceptedOnL2, stored.Status)
}

func TestGetTransactionNotFound(t *testing.T) {
	chain := blockchain.New(utils.TestNet)
	_, err := chain.GetTransaction(new(felt.Felt).SetUint64(99))
	assert.ErrorIs(t, err, core.ErrTransactionNotFound)
}

func TestHeadStateAndPendingStateAreIndependent(t *testing.T) {
	chain := blockchain.New(utils.TestNet)

	head, _, err := chain.HeadState()
	require.NoError(t, err)
	pending, _, err := chain.PendingState()
	require.NoError(t, err)

	assert.NotSame(t, head, pending)
}
