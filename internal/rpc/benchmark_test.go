package rpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsToEndpoints(t *testing.T) {
	assert.Empty(t, ResultsToEndpoints(nil))

	endpoints := ResultsToEndpoints([]BenchmarkResult{
		{URL: "https://rpc.vinuchain.org", Latency: 50 * time.Millisecond, BlockNumber: 100},
		{URL: "https://dead.rpc.example.com", Err: errors.New("connection refused")},
		{},
	})
	require.Len(t, endpoints, 3)

	assert.Equal(t, Endpoint{
		URL:         "https://rpc.vinuchain.org",
		Latency:     50 * time.Millisecond,
		BlockNumber: 100,
		Healthy:     true,
		Checked:     true,
	}, endpoints[0])
	assert.Equal(t, "https://dead.rpc.example.com", endpoints[1].URL)
	assert.False(t, endpoints[1].Healthy)
	for _, ep := range endpoints {
		assert.True(t, ep.Checked, ep.URL)
	}
}

// SelectBest / Selector

func TestSelectBestSingleURL(t *testing.T) {
	// A single URL is returned without any network call.
	url, err := SelectBest(context.Background(), []string{"https://only.rpc.example.com"}, "fastest", 207)
	require.NoError(t, err)
	assert.Equal(t, "https://only.rpc.example.com", url)
}

func TestSelectBestNoURLs(t *testing.T) {
	_, err := SelectBest(context.Background(), nil, "fastest", 207)
	assert.ErrorIs(t, err, ErrNoHealthyRPC)
}

func TestSelectBestUnknownAlgorithm(t *testing.T) {
	_, err := SelectBest(context.Background(), []string{"a", "b"}, "random", 207)
	assert.Error(t, err)
}

func TestSelectBestSkipsWrongChain(t *testing.T) {
	vinu := chainServer(t, 1000, 207)
	defer vinu.Close()
	eth := chainServer(t, 1000, 1)
	defer eth.Close()

	url, err := SelectBest(context.Background(), []string{eth.URL, vinu.URL}, "failover", 207)
	require.NoError(t, err)
	assert.Equal(t, vinu.URL, url)
}

func TestSelectBestAllWrongChain(t *testing.T) {
	eth := chainServer(t, 1000, 1)
	defer eth.Close()
	bsc := chainServer(t, 1000, 56)
	defer bsc.Close()

	_, err := SelectBest(context.Background(), []string{eth.URL, bsc.URL}, "fastest", 207)
	assert.ErrorIs(t, err, ErrNoHealthyRPC)
}

func TestBenchmarkReportsWrongChain(t *testing.T) {
	eth := chainServer(t, 10, 1)
	defer eth.Close()

	res := Benchmark(context.Background(), []string{eth.URL}, 207)
	require.Len(t, res, 1)
	assert.ErrorIs(t, res[0].Err, ErrWrongChain)
	assert.Equal(t, uint64(10), res[0].BlockNumber)
}

func TestBenchmarkWithoutChainCheck(t *testing.T) {
	eth := chainServer(t, 10, 1)
	defer eth.Close()

	res := Benchmark(context.Background(), []string{eth.URL}, 0)
	require.Len(t, res, 1)
	assert.NoError(t, res[0].Err)
}

func TestSelectorRotatesAcrossCalls(t *testing.T) {
	a := chainServer(t, 1000, 207)
	defer a.Close()
	b := chainServer(t, 1000, 207)
	defer b.Close()

	sel := NewSelector()
	urls := []string{a.URL, b.URL}
	var got []string
	for range 3 {
		url, err := sel.Select(context.Background(), urls, "round-robin", 207)
		require.NoError(t, err)
		got = append(got, url)
	}
	assert.Equal(t, []string{a.URL, b.URL, a.URL}, got)
}

func TestSelectorPickerPerChain(t *testing.T) {
	sel := NewSelector()

	vinu := sel.Picker(207, AlgorithmFastest)
	assert.Same(t, vinu, sel.Picker(207, AlgorithmFastest))
	assert.NotSame(t, vinu, sel.Picker(1, AlgorithmFastest))

	rr := sel.Picker(207, AlgorithmRoundRobin)
	assert.NotSame(t, vinu, rr)
	assert.Equal(t, AlgorithmRoundRobin, rr.Algorithm())
}
