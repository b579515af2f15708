package deploy_test

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Mohsinsiddi/vinutoken/internal/chain"
	"github.com/Mohsinsiddi/vinutoken/internal/contract"
	"github.com/Mohsinsiddi/vinutoken/internal/session"
	"github.com/Mohsinsiddi/vinutoken/internal/wallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
)

const (
	hardhatKey  = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	hardhatAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	txHashHex   = "0x9fc76417374aa880d4449a1f7f31ec597f00b1f6f3dd2d66f4c9c6c445836d8b"
)

var (
	factory    = common.HexToAddress("0xAAbe8531d02C2b1c1FCaa954E2E38D6bA1A6e0f7")
	newToken   = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	oneVC      = big.NewInt(1e18)
	vcFallback = new(big.Int).Mul(big.NewInt(10_000), oneVC)
)

// chainMock is a JSON-RPC endpoint scripted per method.
type chainMock struct {
	mu      sync.Mutex
	results map[string]interface{}
	calls   map[string][]json.RawMessage
	hold    chan struct{} // when set, receipt requests block until closed
}

func newChainMock(t *testing.T, results map[string]interface{}) (*chainMock, string) {
	t.Helper()
	m := &chainMock{results: results, calls: map[string][]json.RawMessage{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string          `json:"method"`
			Params json.RawMessage `json:"params"`
		}
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck

		m.mu.Lock()
		m.calls[req.Method] = append(m.calls[req.Method], req.Params)
		res, ok := m.results[req.Method]
		hold := m.hold
		m.mu.Unlock()

		if req.Method == "eth_getTransactionReceipt" && hold != nil {
			<-hold
		}

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]interface{}{"jsonrpc": "2.0", "id": 1}
		if ok {
			resp["result"] = res
		} else {
			resp["error"] = map[string]interface{}{"code": -32000, "message": req.Method + " unavailable"}
		}
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	return m, srv.URL
}

func (m *chainMock) count(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls[method])
}

func (m *chainMock) params(method string) []json.RawMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func uint256(v *big.Int) string {
	return hexutil.Encode(common.LeftPadBytes(v.Bytes(), 32))
}

func addrTopic(a common.Address) string {
	return common.BytesToHash(a.Bytes()).Hex()
}

func tokenCreatedLog(emitter, tok common.Address) map[string]interface{} {
	return map[string]interface{}{
		"address": emitter.Hex(),
		"topics": []string{
			contract.TokenCreatedTopic().Hex(),
			addrTopic(tok),
			addrTopic(common.HexToAddress(hardhatAddr)),
		},
		"data":            "0x",
		"blockNumber":     "0x10",
		"transactionHash": txHashHex,
		"logIndex":        "0x0",
	}
}

func receipt(status string, logs ...map[string]interface{}) map[string]interface{} {
	if logs == nil {
		logs = []map[string]interface{}{}
	}
	return map[string]interface{}{
		"status":      status,
		"blockNumber": "0x10",
		"gasUsed":     "0x1e8480",
		"logs":        logs,
	}
}

// sendResults is the method table for a successful broadcast.
func sendResults(rcpt interface{}) map[string]interface{} {
	return map[string]interface{}{
		"eth_gasPrice":              "0x3b9aca00",
		"eth_getTransactionCount":   "0x0",
		"eth_sendRawTransaction":    txHashHex,
		"eth_getTransactionReceipt": rcpt,
	}
}

func testSession(t *testing.T, url string) *session.Session {
	t.Helper()
	ks := wallet.NewInMemoryKeystore()
	mgr := wallet.NewManager(wallet.WithKeystore(ks))
	w, err := mgr.AddWithKey("deployer", hardhatKey)
	require.NoError(t, err)

	signer := wallet.NewSigner(w, ks)
	return &session.Session{
		Network: chain.NewEVMClient(url),
		Chain:   chain.VinuChain(),
		Signer:  signer,
		Address: signer.Address(),
		Balance: "0 WVC",
	}
}
