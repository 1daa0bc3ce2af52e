package node

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/starknet-devnet/devnetgo/blockchain"
	"github.com/starknet-devnet/devnetgo/builder"
	"github.com/starknet-devnet/devnetgo/core"
	"github.com/starknet-devnet/devnetgo/core/felt"
	"github.com/starknet-devnet/devnetgo/jsonrpc"
	"github.com/starknet-devnet/devnetgo/pipeline"
	"github.com/starknet-devnet/devnetgo/predeploy"
	"github.com/starknet-devnet/devnetgo/rpc"
	"github.com/starknet-devnet/devnetgo/utils"
	"github.com/starknet-devnet/devnetgo/vm"
)

// placeholderClass stands in for a compiled contract class artifact.
// Loading real compiled Cairo artifacts from disk is explicitly out of
// scope (spec.md §1, "artifact-file I/O for predeployed contract
// classes" is listed as an external collaborator this engine doesn't
// implement) — this engine only needs the class hash/address machinery
// to be internally consistent, not the program bytes to mean anything.
func placeholderClass() core.Class {
	return &core.Cairo0Class{Program: []byte(`{}`)}
}

// Node owns every long-lived component this devnet process runs: the
// Blockchain, BlockBuilder, TxPipeline, rpc.Handler, and the net/http
// server exposing them — the composition root juno's own node package
// plays for the full client.
type Node struct {
	cfg      Config
	log      *zap.SugaredLogger
	chain    *blockchain.Blockchain
	builder  *builder.Builder
	pipeline *pipeline.TxPipeline
	handler  *rpc.Handler
	server   *jsonrpc.Server
	accounts *predeploy.Result
	metrics  *metrics

	mu        sync.Mutex
	blockSubs []chan *core.Block
}

// New constructs a Node, provisions genesis state, and seals block 0.
func New(cfg Config, log *zap.SugaredLogger) (*Node, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	network := utils.Network{Name: "devnet", L2ChainID: cfg.ChainID}
	chain := blockchain.New(network)

	sequencerAddress := predeploy.ChargeableAccountAddress
	chainID := cfg.chainIDFelt()

	now := func() int64 { return time.Now().Unix() }
	b := builder.New(chain, sequencerAddress, chainID, now)

	accounts, err := predeploy.Generate(chain, predeploy.Config{
		Seed:           cfg.Seed,
		AccountCount:   cfg.TotalAccounts,
		InitialBalance: u64Felt(cfg.InitialBalance),
		AccountClass:   placeholderClass(),
		ERC20Class:     placeholderClass(),
		UDCClass:       placeholderClass(),
	})
	if err != nil {
		return nil, fmt.Errorf("predeploy failure: %w", err)
	}

	if _, err := b.Seal(); err != nil {
		return nil, fmt.Errorf("sealing genesis block: %w", err)
	}

	executor := vm.NewSimpleExecutor()
	p := pipeline.New(chain, b, executor, chainID, u64Felt(cfg.GasPrice))

	handler := rpc.New(chain, b, p, accounts, log)

	n := &Node{
		cfg:      cfg,
		log:      log,
		chain:    chain,
		builder:  b,
		pipeline: p,
		handler:  handler,
		accounts: accounts,
		metrics:  newMetrics(),
	}
	n.server = n.newRPCServer(handler)
	return n, nil
}

func u64Felt(v uint64) *felt.Felt {
	return new(felt.Felt).SetUint64(v)
}

// newRPCServer registers every QueryAPI method rpc.Handler exposes,
// wrapping the three transaction-admission methods so submissions are
// counted without TxPipeline itself knowing about metrics.
func (n *Node) newRPCServer(h *rpc.Handler) *jsonrpc.Server {
	s := jsonrpc.NewServer()

	countedDeclare := func(b rpc.BroadcastedTransaction) (*rpc.AddDeclareTransactionResult, *jsonrpc.Error) {
		n.metrics.txSubmitted.Inc()
		return h.AddDeclareTransaction(b)
	}
	countedDeployAccount := func(b rpc.BroadcastedTransaction) (*rpc.AddDeployAccountTransactionResult, *jsonrpc.Error) {
		n.metrics.txSubmitted.Inc()
		return h.AddDeployAccountTransaction(b)
	}
	countedInvoke := func(b rpc.BroadcastedTransaction) (*rpc.AddInvokeTransactionResult, *jsonrpc.Error) {
		n.metrics.txSubmitted.Inc()
		return h.AddInvokeTransaction(b)
	}

	methods := map[string]interface{}{
		"starknet_chainId":                      h.ChainID,
		"starknet_getNonce":                      h.Nonce,
		"starknet_getStorageAt":                  h.StorageAt,
		"starknet_getClassHashAt":                h.ClassHashAt,
		"starknet_getClass":                      h.Class,
		"starknet_getClassAt":                    h.ClassAt,
		"starknet_call":                          h.Call,
		"starknet_estimateFee":                   h.EstimateFee,
		"starknet_addDeclareTransaction":         countedDeclare,
		"starknet_addDeployAccountTransaction":   countedDeployAccount,
		"starknet_addInvokeTransaction":          countedInvoke,
		"starknet_getTransactionByHash":          h.GetTransactionByHash,
		"starknet_getTransactionReceipt":         h.GetTransactionReceipt,
		"starknet_getBlockWithTxHashes":          h.BlockWithTxHashes,
		"starknet_blockNumber":                   h.BlockNumber,
	}
	for name, fn := range methods {
		if err := s.RegisterMethod(name, fn); err != nil {
			panic(err) // programmer error: method signature mismatch
		}
	}
	return s
}

// Mux builds the net/http handler serving JSON-RPC, the predeployed
// accounts listing, health, and the new-block websocket feed, all
// wrapped in github.com/rs/cors the way SPEC_FULL.md §6 specifies.
func (n *Node) Mux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", n.handleRPC)
	mux.HandleFunc("/predeployed_accounts", n.handlePredeployedAccounts)
	mux.HandleFunc("/healthz", n.handleHealthz)
	mux.HandleFunc("/ws", n.handleWebsocket)
	mux.Handle("/metrics", promhttp.Handler())

	return cors.Default().Handler(mux)
}

func (n *Node) handleRPC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		n.log.Errorw("error reading rpc request body", "err", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	// Every JSON-RPC call, read or write, runs under n.mu, so at most one
	// request touches the engine's state at a time.
	n.mu.Lock()
	resp := n.server.Handle(body)
	n.mu.Unlock()
	w.Write(resp)
}

func (n *Node) handlePredeployedAccounts(w http.ResponseWriter, r *http.Request) {
	type accountView struct {
		Address    string `json:"address"`
		PublicKey  string `json:"public_key"`
		PrivateKey string `json:"private_key"`
		Balance    string `json:"initial_balance"`
	}
	views := make([]accountView, 0, len(n.accounts.Accounts))
	for _, a := range n.accounts.Accounts {
		views = append(views, accountView{
			Address:    a.Address.String(),
			PublicKey:  a.PublicKey.String(),
			PrivateKey: a.PrivateKey.String(),
			Balance:    a.Balance.String(),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
}

func (n *Node) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleWebsocket pushes one JSON message per sealed block to each
// connected client — a narrow supplement beyond spec.md's endpoint list
// (SPEC_FULL.md §6) exercising nhooyr.io/websocket, an existing juno
// dependency otherwise unused by this devnet's scope.
func (n *Node) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		n.log.Errorw("websocket accept failed", "err", err)
		return
	}
	defer c.Close(websocket.StatusInternalError, "closing")

	ch := n.subscribeBlocks()
	defer n.unsubscribeBlocks(ch)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			c.Close(websocket.StatusNormalClosure, "")
			return
		case blk, ok := <-ch:
			if !ok {
				return
			}
			if err := wsjson.Write(ctx, c, blk); err != nil {
				return
			}
		}
	}
}

func (n *Node) subscribeBlocks() chan *core.Block {
	n.mu.Lock()
	defer n.mu.Unlock()
	ch := make(chan *core.Block, 8)
	n.blockSubs = append(n.blockSubs, ch)
	return ch
}

func (n *Node) unsubscribeBlocks(target chan *core.Block) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, ch := range n.blockSubs {
		if ch == target {
			n.blockSubs = append(n.blockSubs[:i], n.blockSubs[i+1:]...)
			close(ch)
			return
		}
	}
}

func (n *Node) notifyBlockSealed(blk *core.Block) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.blockSubs {
		select {
		case ch <- blk:
		default:
		}
	}
}

// SealBlock seals the pending block and notifies websocket subscribers,
// the RPC-independent entry point a future "advance time" or
// manual-mining endpoint would call.
func (n *Node) SealBlock() (*core.Block, error) {
	blk, err := n.builder.Seal()
	if err != nil {
		return nil, err
	}
	n.metrics.blocksSealed.Inc()
	n.notifyBlockSealed(blk)
	return blk, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (n *Node) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port),
		Handler: n.Mux(),
	}

	errCh := make(chan error, 1)
	go func() {
		n.log.Infow("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(n.cfg.TimeoutSeconds)*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
