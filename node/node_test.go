package node

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/starknet-devnet/devnetgo/core"
)

func newTestNode(t *testing.T) *Node {
	t.Helper()
	cfg := DefaultConfig()
	cfg.TotalAccounts = 2
	n, err := New(cfg, zap.NewNop().Sugar())
	require.NoError(t, err)
	return n
}

func TestNewProvisionsAccountsAndSealsGenesis(t *testing.T) {
	n := newTestNode(t)
	require.Len(t, n.accounts.Accounts, 2)

	blk, err := n.chain.GetBlock(&core.BlockID{Latest: true})
	require.NoError(t, err)
	require.Equal(t, uint64(0), blk.Number)
}

func TestHandleHealthzReturnsOK(t *testing.T) {
	n := newTestNode(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	n.Mux().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlePredeployedAccountsListsGeneratedAccounts(t *testing.T) {
	n := newTestNode(t)
	req := httptest.NewRequest(http.MethodGet, "/predeployed_accounts", nil)
	rec := httptest.NewRecorder()
	n.Mux().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var views []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 2)
	require.NotEmpty(t, views[0]["address"])
}

func TestHandleRPCDispatchesChainID(t *testing.T) {
	n := newTestNode(t)
	body := []byte(`{"jsonrpc":"2.0","method":"starknet_chainId","params":[],"id":1}`)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	n.Mux().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result string `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Result)
}

func TestSealBlockIncrementsHeight(t *testing.T) {
	n := newTestNode(t)
	before := n.builder.Pending().Number
	blk, err := n.SealBlock()
	require.NoError(t, err)
	require.Equal(t, before, blk.Number)
	require.Equal(t, before+1, n.builder.Pending().Number)
}
