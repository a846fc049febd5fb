package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	solchain "github.com/chinmay1088/solcollect/chains/solana"
	"github.com/chinmay1088/solcollect/config"
	"github.com/chinmay1088/solcollect/logging"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type rpcHandler func(req rpcRequest) (result any, rpcErr map[string]any)

// fakeNode is a minimal JSON-RPC server answering with per-method handlers.
type fakeNode struct {
	mu       sync.Mutex
	handlers map[string]rpcHandler
	calls    map[string]int
	requests []rpcRequest
}

func newFakeNode(t *testing.T) (*fakeNode, *httptest.Server) {
	t.Helper()
	node := &fakeNode{
		handlers: make(map[string]rpcHandler),
		calls:    make(map[string]int),
	}
	srv := httptest.NewServer(http.HandlerFunc(node.serve))
	t.Cleanup(srv.Close)
	return node, srv
}

func (n *fakeNode) handle(method string, h rpcHandler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers[method] = h
}

func (n *fakeNode) count(method string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[method]
}

func (n *fakeNode) serve(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	n.calls[req.Method]++
	n.requests = append(n.requests, req)
	h, ok := n.handlers[req.Method]
	n.mu.Unlock()

	resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
	if !ok {
		resp["error"] = map[string]any{"code": -32601, "message": "Method not found"}
	} else if result, rpcErr := h(req); rpcErr != nil {
		resp["error"] = rpcErr
	} else {
		resp["result"] = result
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func withContext(value any) map[string]any {
	return map[string]any{"context": map[string]any{"slot": 1}, "value": value}
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	cfg := config.Default()
	cfg.RPCURL = url
	cfg.ConfirmTimeout = 300 * time.Millisecond
	cfg.PollInterval = 5 * time.Millisecond
	return NewClient(cfg, logging.Nop())
}

func signedTransfer(t *testing.T) *solana.Transaction {
	t.Helper()
	from, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	tx, err := solchain.CreateTransferTransaction(from, solana.NewWallet().PublicKey(), 1000, solana.Hash{7})
	require.NoError(t, err)
	return tx
}

func TestGetBalance(t *testing.T) {
	node, srv := newFakeNode(t)
	node.handle("getBalance", func(req rpcRequest) (any, map[string]any) {
		return withContext(1_000_000_000), nil
	})
	client := newTestClient(t, srv.URL)

	address := solana.NewWallet().PublicKey()
	balance, err := client.GetBalance(context.Background(), address)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000_000), balance)

	require.Len(t, node.requests, 1)
	var addr string
	require.NoError(t, json.Unmarshal(node.requests[0].Params[0], &addr))
	assert.Equal(t, address.String(), addr)
}

func TestGetBalanceError(t *testing.T) {
	node, srv := newFakeNode(t)
	node.handle("getBalance", func(req rpcRequest) (any, map[string]any) {
		return nil, map[string]any{"code": -32005, "message": "Node is behind"}
	})
	client := newTestClient(t, srv.URL)

	_, err := client.GetBalance(context.Background(), solana.NewWallet().PublicKey())
	assert.ErrorContains(t, err, "failed to fetch Solana balance")
}

func TestGetLatestBlockhash(t *testing.T) {
	node, srv := newFakeNode(t)
	want := solana.Hash{4, 2}
	node.handle("getLatestBlockhash", func(req rpcRequest) (any, map[string]any) {
		return withContext(map[string]any{
			"blockhash":            want.String(),
			"lastValidBlockHeight": 150,
		}), nil
	})
	client := newTestClient(t, srv.URL)

	got, err := client.GetLatestBlockhash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSendAndConfirm(t *testing.T) {
	node, srv := newFakeNode(t)
	tx := signedTransfer(t)
	want := tx.Signatures[0]

	node.handle("sendTransaction", func(req rpcRequest) (any, map[string]any) {
		return want.String(), nil
	})
	polls := 0
	node.handle("getSignatureStatuses", func(req rpcRequest) (any, map[string]any) {
		polls++
		if polls < 3 {
			return withContext([]any{map[string]any{
				"slot": 10, "confirmations": 0, "err": nil, "confirmationStatus": "processed",
			}}), nil
		}
		return withContext([]any{map[string]any{
			"slot": 10, "confirmations": 1, "err": nil, "confirmationStatus": "confirmed",
		}}), nil
	})
	client := newTestClient(t, srv.URL)

	sig, err := client.SendAndConfirm(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, want, sig)
	assert.Equal(t, 1, node.count("sendTransaction"))
	assert.Equal(t, 3, node.count("getSignatureStatuses"))

	var opts map[string]any
	require.NoError(t, json.Unmarshal(node.requests[0].Params[1], &opts))
	assert.EqualValues(t, 5, opts["maxRetries"])
	assert.Equal(t, "confirmed", opts["preflightCommitment"])
}

func TestSendAndConfirmTimeout(t *testing.T) {
	node, srv := newFakeNode(t)
	tx := signedTransfer(t)
	node.handle("sendTransaction", func(req rpcRequest) (any, map[string]any) {
		return tx.Signatures[0].String(), nil
	})
	node.handle("getSignatureStatuses", func(req rpcRequest) (any, map[string]any) {
		return withContext([]any{nil}), nil
	})
	client := newTestClient(t, srv.URL)

	sig, err := client.SendAndConfirm(context.Background(), tx)
	assert.ErrorIs(t, err, ErrConfirmTimeout)
	assert.Equal(t, tx.Signatures[0], sig)
}

func TestSendAndConfirmExecutionError(t *testing.T) {
	node, srv := newFakeNode(t)
	tx := signedTransfer(t)
	node.handle("sendTransaction", func(req rpcRequest) (any, map[string]any) {
		return tx.Signatures[0].String(), nil
	})
	node.handle("getSignatureStatuses", func(req rpcRequest) (any, map[string]any) {
		return withContext([]any{map[string]any{
			"slot":               10,
			"confirmations":      nil,
			"err":                map[string]any{"InstructionError": []any{0, map[string]any{"Custom": 1}}},
			"confirmationStatus": "confirmed",
		}}), nil
	})
	client := newTestClient(t, srv.URL)

	_, err := client.SendAndConfirm(context.Background(), tx)
	assert.ErrorIs(t, err, ErrTransactionFailed)
}

func TestSendTransactionRejected(t *testing.T) {
	node, srv := newFakeNode(t)
	node.handle("sendTransaction", func(req rpcRequest) (any, map[string]any) {
		return nil, map[string]any{"code": -32002, "message": "Transaction simulation failed"}
	})
	client := newTestClient(t, srv.URL)

	_, err := client.SendAndConfirm(context.Background(), signedTransfer(t))
	assert.ErrorContains(t, err, "failed to send transaction")
	assert.Equal(t, 0, node.count("getSignatureStatuses"))
}

func TestGetNodeInfo(t *testing.T) {
	node, srv := newFakeNode(t)
	node.handle("getVersion", func(req rpcRequest) (any, map[string]any) {
		return map[string]any{"solana-core": "1.18.22", "feature-set": 4215500110}, nil
	})
	node.handle("getHealth", func(req rpcRequest) (any, map[string]any) {
		return "ok", nil
	})
	client := newTestClient(t, srv.URL)

	info, err := client.GetNodeInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, srv.URL, info.Endpoint)
	assert.Equal(t, "1.18.22", info.Version)
	assert.Equal(t, int64(4215500110), info.FeatureSet)
	assert.Equal(t, "ok", info.Health)
}

func TestCommitmentReached(t *testing.T) {
	assert.True(t, commitmentReached(rpc.ConfirmationStatusConfirmed, rpc.CommitmentConfirmed))
	assert.True(t, commitmentReached(rpc.ConfirmationStatusFinalized, rpc.CommitmentConfirmed))
	assert.False(t, commitmentReached(rpc.ConfirmationStatusProcessed, rpc.CommitmentConfirmed))
	assert.False(t, commitmentReached(rpc.ConfirmationStatusConfirmed, rpc.CommitmentFinalized))
	assert.True(t, commitmentReached(rpc.ConfirmationStatusProcessed, rpc.CommitmentProcessed))
}
