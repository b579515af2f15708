package rpc

import (
	"context"
	"errors"
	"time"
)

// ErrWrongChain is returned when an endpoint answers for a different chain.
var ErrWrongChain = errors.New("endpoint serves a different chain")

const healthTimeout = 5 * time.Second

// HealthCheck probes a single endpoint before it is saved as a custom RPC.
// The endpoint is healthy when it answers within five seconds and, when
// chainID is non-zero, reports that chain ID.
func HealthCheck(ctx context.Context, url string, chainID int64) (Endpoint, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	res := probe(timeoutCtx, url, chainID)
	return Endpoint{
		URL:         url,
		Latency:     res.Latency,
		BlockNumber: res.BlockNumber,
		Healthy:     res.Err == nil,
		Checked:     true,
	}, res.Err
}
