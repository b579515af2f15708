package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainServer creates an httptest server that answers eth_blockNumber and
// eth_chainId with the given values.
func chainServer(t *testing.T, blockNum uint64, chainID int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
		}
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
		w.Header().Set("Content-Type", "application/json")
		switch req.Method {
		case "eth_chainId":
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":1,"result":"0x%x"}`, chainID)
		default:
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":1,"result":"0x%x"}`, blockNum)
		}
	}))
}

// ---------------------------------------------------------------------------
// HealthCheck
// ---------------------------------------------------------------------------

func TestHealthCheckHealthy(t *testing.T) {
	srv := chainServer(t, 1000, 207)
	defer srv.Close()

	ep, err := HealthCheck(context.Background(), srv.URL, 207)
	require.NoError(t, err)

	assert.True(t, ep.Healthy)
	assert.True(t, ep.Checked)
	assert.Equal(t, srv.URL, ep.URL)
	assert.Equal(t, uint64(1000), ep.BlockNumber)
	assert.Greater(t, ep.Latency, time.Duration(0), "latency should be measured")
}

func TestHealthCheckUnreachable(t *testing.T) {
	ep, err := HealthCheck(context.Background(), "http://127.0.0.1:1", 207)
	assert.Error(t, err)
	assert.False(t, ep.Healthy)
}

func TestHealthCheckWrongChain(t *testing.T) {
	srv := chainServer(t, 1000, 1)
	defer srv.Close()

	ep, err := HealthCheck(context.Background(), srv.URL, 207)
	assert.ErrorIs(t, err, ErrWrongChain)
	assert.False(t, ep.Healthy)
}

func TestHealthCheckAnyChain(t *testing.T) {
	srv := chainServer(t, 5, 1)
	defer srv.Close()

	ep, err := HealthCheck(context.Background(), srv.URL, 0)
	require.NoError(t, err)
	assert.True(t, ep.Healthy)
}

func TestHealthCheckCancelledContext(t *testing.T) {
	srv := chainServer(t, 1000, 207)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ep, err := HealthCheck(ctx, srv.URL, 207)
	assert.Error(t, err)
	assert.False(t, ep.Healthy)
}
