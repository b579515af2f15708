package rpc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Mohsinsiddi/vinutoken/internal/chain"
)

// BenchmarkResult holds the result of a single endpoint benchmark.
type BenchmarkResult struct {
	URL         string
	Latency     time.Duration
	BlockNumber uint64
	Err         error
}

// Benchmark pings every URL in parallel. When chainID is non-zero each
// endpoint must also report that chain ID, otherwise its result carries
// ErrWrongChain.
func Benchmark(ctx context.Context, urls []string, chainID int64) []BenchmarkResult {
	results := make([]BenchmarkResult, len(urls))
	var wg sync.WaitGroup

	for i, url := range urls {
		wg.Add(1)
		go func(idx int, u string) {
			defer wg.Done()
			results[idx] = probe(ctx, u, chainID)
		}(i, url)
	}

	wg.Wait()
	return results
}

func probe(ctx context.Context, url string, chainID int64) BenchmarkResult {
	c := chain.NewEVMClient(url)
	latency, block, err := c.Ping(ctx)
	res := BenchmarkResult{URL: url, Latency: latency, BlockNumber: block, Err: err}
	if err != nil || chainID == 0 {
		return res
	}
	got, err := c.ChainID(ctx)
	switch {
	case err != nil:
		res.Err = err
	case got != chainID:
		res.Err = fmt.Errorf("%w: %s serves %d, want %d", ErrWrongChain, url, got, chainID)
	}
	return res
}

// ResultsToEndpoints converts benchmark results to picker Endpoints.
// All returned endpoints have Checked: true since they have been actively tested.
func ResultsToEndpoints(results []BenchmarkResult) []Endpoint {
	endpoints := make([]Endpoint, 0, len(results))
	for _, r := range results {
		endpoints = append(endpoints, Endpoint{
			URL:         r.URL,
			Latency:     r.Latency,
			BlockNumber: r.BlockNumber,
			Healthy:     r.Err == nil,
			Checked:     true,
		})
	}
	return endpoints
}

var defaultSelector = NewSelector()

// SelectBest picks the best RPC URL for chainID from urls using the named
// algorithm ("fastest", "round-robin" or "failover"; empty means fastest).
// Selection state is shared process-wide per chain.
func SelectBest(ctx context.Context, urls []string, algorithm string, chainID int64) (string, error) {
	return defaultSelector.Select(ctx, urls, algorithm, chainID)
}

// Select benchmarks urls against chainID and lets the chain's picker
// choose. A single URL is returned as is without a benchmark.
func (s *Selector) Select(ctx context.Context, urls []string, algorithm string, chainID int64) (string, error) {
	if len(urls) == 0 {
		return "", ErrNoHealthyRPC
	}
	algo, err := ParseAlgorithm(algorithm)
	if err != nil {
		return "", err
	}
	if len(urls) == 1 {
		return urls[0], nil
	}

	endpoints := ResultsToEndpoints(Benchmark(ctx, urls, chainID))
	winner, err := s.Picker(chainID, algo).Pick(endpoints)
	if err != nil {
		return "", err
	}
	return winner.URL, nil
}
