package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starknet-devnet/devnetgo/blockchain"
	"github.com/starknet-devnet/devnetgo/builder"
	"github.com/starknet-devnet/devnetgo/core"
	"github.com/starknet-devnet/devnetgo/core/felt"
	"github.com/starknet-devnet/devnetgo/utils"
)

func fixedNow() int64 { return 1700000000 }

func newTestBuilder() (*blockchain.Blockchain, *builder.Builder) {
	chain := blockchain.New(utils.TestNet)
	sequencer := new(felt.Felt).SetUint64(1)
	chainID := utils.TestNet.L2ChainIDFelt()
	b := builder.New(chain, sequencer, chainID, fixedNow)
	return chain, b
}

func TestNewOpensGenesisWithZeroParentHash(t *testing.T) {
	_, b := newTestBuilder()
	pending := b.Pending()
	assert.Equal(t, uint64(0), pending.Number)
	assert.True(t, pending.ParentHash.IsZero())
}

func TestSealProducesABlockAndAdvancesHeight(t *testing.T) {
	chain, b := newTestBuilder()

	blk, err := b.Seal()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), blk.Number)
	assert.NotNil(t, blk.Hash)

	stored, ok := chain.Blocks.Get(*blk.Hash)
	require.True(t, ok)
	assert.Equal(t, blk.Number, stored.Number)

	height, ok := chain.Historical.Height()
	require.True(t, ok)
	assert.Equal(t, uint64(0), height)
}

func TestSealAllowsEmptyBlocks(t *testing.T) {
	_, b := newTestBuilder()
	blk, err := b.Seal()
	require.NoError(t, err)
	assert.Empty(t, blk.TransactionHashes)
}

func TestSealRestartsPendingBlockWithIncrementedNumberAndParent(t *testing.T) {
	_, b := newTestBuilder()

	first, err := b.Seal()
	require.NoError(t, err)

	next := b.Pending()
	assert.Equal(t, first.Number+1, next.Number)
	assert.True(t, next.ParentHash.Equal(first.Hash))
}

func TestSealTwiceProducesDistinctHashes(t *testing.T) {
	_, b := newTestBuilder()

	first, err := b.Seal()
	require.NoError(t, err)
	second, err := b.Seal()
	require.NoError(t, err)

	assert.False(t, first.Hash.Equal(second.Hash))
	assert.Equal(t, first.Number+1, second.Number)
}

func TestAppendTransactionIsReflectedInSealedBlock(t *testing.T) {
	_, b := newTestBuilder()

	txHash := new(felt.Felt).SetUint64(42)
	b.AppendTransaction(txHash)

	blk, err := b.Seal()
	require.NoError(t, err)
	require.Len(t, blk.TransactionHashes, 1)
	assert.True(t, blk.TransactionHashes[0].Equal(txHash))
}

func TestSealStampsStoredTransactionsWithBlockInfo(t *testing.T) {
	chain, b := newTestBuilder()

	txHash := new(felt.Felt).SetUint64(7)
	require.NoError(t, chain.Transactions.Insert(*txHash, &core.StoredTransaction{Status: core.AcceptedOnL2}))
	b.AppendTransaction(txHash)

	blk, err := b.Seal()
	require.NoError(t, err)

	stored, ok := chain.Transactions.Get(*txHash)
	require.True(t, ok)
	assert.True(t, stored.HasBlock)
	assert.True(t, stored.BlockHash.Equal(blk.Hash))
	assert.Equal(t, blk.Number, stored.BlockNumber)
}
