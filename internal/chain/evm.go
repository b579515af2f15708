package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
)

// ErrReverted is returned by WaitForReceipt when the transaction was mined
// with status 0.
var ErrReverted = errors.New("transaction reverted")

// receiptPollInterval is how often WaitForReceipt asks for the receipt.
var receiptPollInterval = 2 * time.Second

// EVMClient is a minimal JSON-RPC client for EVM chains.
type EVMClient struct {
	url    string
	client *http.Client
}

// NewEVMClient creates a new EVM JSON-RPC client pointed at url.
func NewEVMClient(url string) *EVMClient {
	return &EVMClient{
		url: url,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// URL returns the endpoint the client talks to.
func (c *EVMClient) URL() string { return c.url }

// GetBlockNumber returns the latest block number.
func (c *EVMClient) GetBlockNumber(ctx context.Context) (uint64, error) {
	n, err := c.callBig(ctx, "block number", "eth_blockNumber")
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// ChainID returns the chain's ID.
func (c *EVMClient) ChainID(ctx context.Context) (int64, error) {
	id, err := c.callBig(ctx, "chain id", "eth_chainId")
	if err != nil {
		return 0, err
	}
	return id.Int64(), nil
}

// GasPrice returns the current gas price.
func (c *EVMClient) GasPrice(ctx context.Context) (*big.Int, error) {
	return c.callBig(ctx, "gas price", "eth_gasPrice")
}

// GetNonce returns the pending transaction count for an address.
func (c *EVMClient) GetNonce(ctx context.Context, address common.Address) (uint64, error) {
	n, err := c.callBig(ctx, "nonce", "eth_getTransactionCount", address.Hex(), "pending")
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// CallContract runs a read-only eth_call against to with the given calldata.
func (c *EVMClient) CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	var out string
	err := c.call(ctx, &out, "eth_call", map[string]string{
		"to":   to.Hex(),
		"data": hexutil.Encode(data),
	}, "latest")
	if err != nil {
		return nil, err
	}
	b, err := hexutil.Decode(out)
	if err != nil {
		// Some nodes answer "0x" for empty returns, which hexutil accepts;
		// anything else is malformed.
		return nil, fmt.Errorf("could not parse call result %q: %w", out, err)
	}
	return b, nil
}

// SendRawTransaction broadcasts a signed raw transaction.
func (c *EVMClient) SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error) {
	var hash string
	if err := c.call(ctx, &hash, "eth_sendRawTransaction", hexutil.Encode(raw)); err != nil {
		return common.Hash{}, err
	}
	return common.HexToHash(hash), nil
}

// TxReceipt holds the on-chain receipt of a mined transaction.
type TxReceipt struct {
	Hash            common.Hash
	Status          uint64 // 1 = success, 0 = reverted
	BlockNumber     uint64
	GasUsed         uint64
	ContractAddress string // non-empty when a contract was deployed
	Logs            []*types.Log
}

// LogEntry holds one event log as returned over JSON-RPC.
type LogEntry struct {
	Address     string   `json:"address"`
	Topics      []string `json:"topics"`
	Data        string   `json:"data"`
	BlockNumber string   `json:"blockNumber"`
	TxHash      string   `json:"transactionHash"`
	LogIndex    string   `json:"logIndex"`
}

// ToLog converts the wire form into a go-ethereum log.
func (e LogEntry) ToLog() (*types.Log, error) {
	data, err := hexutil.Decode(orEmptyHex(e.Data))
	if err != nil {
		return nil, fmt.Errorf("log data: %w", err)
	}
	l := &types.Log{
		Address: common.HexToAddress(e.Address),
		Data:    data,
		TxHash:  common.HexToHash(e.TxHash),
	}
	for _, t := range e.Topics {
		l.Topics = append(l.Topics, common.HexToHash(t))
	}
	if bn, ok := parseBigHex(e.BlockNumber); ok {
		l.BlockNumber = bn.Uint64()
	}
	if idx, ok := parseBigHex(e.LogIndex); ok {
		l.Index = uint(idx.Uint64())
	}
	return l, nil
}

// GetTransactionReceipt fetches the receipt for hash.
// Returns nil, nil if the transaction is still pending.
func (c *EVMClient) GetTransactionReceipt(ctx context.Context, hash common.Hash) (*TxReceipt, error) {
	var r *struct {
		Status          string     `json:"status"`
		BlockNumber     string     `json:"blockNumber"`
		GasUsed         string     `json:"gasUsed"`
		ContractAddress string     `json:"contractAddress"`
		Logs            []LogEntry `json:"logs"`
	}
	if err := c.call(ctx, &r, "eth_getTransactionReceipt", hash.Hex()); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil // still pending
	}

	receipt := &TxReceipt{Hash: hash, ContractAddress: r.ContractAddress}
	if s, ok := parseBigHex(r.Status); ok {
		receipt.Status = s.Uint64()
	}
	if bn, ok := parseBigHex(r.BlockNumber); ok {
		receipt.BlockNumber = bn.Uint64()
	}
	if gu, ok := parseBigHex(r.GasUsed); ok {
		receipt.GasUsed = gu.Uint64()
	}
	for i, e := range r.Logs {
		l, err := e.ToLog()
		if err != nil {
			return nil, fmt.Errorf("receipt log %d: %w", i, err)
		}
		receipt.Logs = append(receipt.Logs, l)
	}
	return receipt, nil
}

// WaitForReceipt polls every 2 s until the transaction is mined or ctx is
// done. A receipt with Status == 0 is returned together with ErrReverted.
func (c *EVMClient) WaitForReceipt(ctx context.Context, hash common.Hash) (*TxReceipt, error) {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.GetTransactionReceipt(ctx, hash)
		if err != nil {
			return nil, err
		}
		if receipt != nil {
			if receipt.Status == 0 {
				return receipt, fmt.Errorf("%w (hash: %s)", ErrReverted, hash.Hex())
			}
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s: %w", hash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

// Ping tests the RPC endpoint and returns latency + block number.
func (c *EVMClient) Ping(ctx context.Context) (latency time.Duration, blockNum uint64, err error) {
	start := time.Now()
	blockNum, err = c.GetBlockNumber(ctx)
	return time.Since(start), blockNum, err
}

// --- internal JSON-RPC plumbing ---

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int    `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// RPCError is an error object returned by the node.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

func (c *EVMClient) call(ctx context.Context, out any, method string, params ...any) error {
	if params == nil {
		params = []any{}
	}
	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("RPC request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if len(rpcResp.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("parsing result: %w", err)
	}
	return nil
}

// callBig calls a method whose result is a hex quantity.
func (c *EVMClient) callBig(ctx context.Context, what, method string, params ...any) (*big.Int, error) {
	var hexStr string
	if err := c.call(ctx, &hexStr, method, params...); err != nil {
		return nil, err
	}
	n, ok := parseBigHex(hexStr)
	if !ok {
		return nil, fmt.Errorf("could not parse %s: %q", what, hexStr)
	}
	return n, nil
}

// --- math helpers ---

// FormatWei renders raw as a decimal string with the given number of
// decimals, trimming trailing zeros.
func FormatWei(raw *big.Int, decimals int) string {
	if raw == nil {
		return "0"
	}
	return decimal.NewFromBigInt(raw, -int32(decimals)).String()
}

func parseBigHex(s string) (*big.Int, bool) {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return nil, false
	}
	return new(big.Int).SetString(s, 16)
}

func orEmptyHex(s string) string {
	if s == "" {
		return "0x"
	}
	return s
}
