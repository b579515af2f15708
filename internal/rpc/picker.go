package rpc

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNoHealthyRPC is returned when no healthy RPC endpoint is available.
var ErrNoHealthyRPC = errors.New("no healthy RPC endpoint available")

// Algorithm names a strategy for choosing among benchmarked endpoints.
type Algorithm string

const (
	AlgorithmFastest    Algorithm = "fastest"
	AlgorithmRoundRobin Algorithm = "round-robin"
	AlgorithmFailover   Algorithm = "failover"
)

const (
	// maxBlockLag is how far behind the chain head an endpoint may be
	// before the fastest strategy ignores it.
	maxBlockLag = 3
	// winnerTTL bounds how long the fastest strategy sticks to a winner.
	winnerTTL = 5 * time.Minute
)

// ParseAlgorithm validates an algorithm name from config or flags.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch a := Algorithm(name); a {
	case "":
		return AlgorithmFastest, nil
	case AlgorithmFastest, AlgorithmRoundRobin, AlgorithmFailover:
		return a, nil
	default:
		return "", fmt.Errorf("unknown RPC algorithm %q (want fastest, round-robin or failover)", name)
	}
}

// Endpoint is one RPC URL with what a benchmark learned about it.
// Healthy is only meaningful once Checked is set.
type Endpoint struct {
	URL         string
	Latency     time.Duration
	BlockNumber uint64
	Healthy     bool
	Checked     bool
}

func (e Endpoint) failed() bool { return e.Checked && !e.Healthy }

// lag reports how many blocks e trails head by.
func (e Endpoint) lag(head uint64) uint64 {
	if e.BlockNumber >= head {
		return 0
	}
	return head - e.BlockNumber
}

// rank is higher for faster, more up to date endpoints. Latency under a
// millisecond counts as one millisecond; every block of lag costs a point.
func (e Endpoint) rank(head uint64) float64 {
	var r float64
	if e.Latency > 0 {
		r = 1000 / float64(max(e.Latency.Milliseconds(), 1))
	}
	if head > 0 {
		r += 10 - float64(e.lag(head))
	}
	return r
}

// Picker chooses an endpoint with one algorithm and keeps the state that
// algorithm needs between calls: the last fastest winner and the
// round-robin cursor.
type Picker struct {
	algo Algorithm

	mu      sync.Mutex
	next    int
	winner  string
	expires time.Time
}

// NewPicker returns a Picker for algo.
func NewPicker(algo Algorithm) *Picker {
	return &Picker{algo: algo}
}

// Algorithm reports the strategy p was built with.
func (p *Picker) Algorithm() Algorithm { return p.algo }

// Pick chooses one endpoint out of endpoints.
func (p *Picker) Pick(endpoints []Endpoint) (*Endpoint, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var winner *Endpoint
	switch p.algo {
	case AlgorithmRoundRobin:
		winner = p.rotate(candidates(endpoints))
	case AlgorithmFailover:
		winner = firstUsable(endpoints)
	default:
		winner = p.fastest(endpoints)
	}
	if winner == nil {
		return nil, ErrNoHealthyRPC
	}
	return winner, nil
}

func (p *Picker) fastest(endpoints []Endpoint) *Endpoint {
	if p.winner != "" && time.Now().Before(p.expires) {
		for i := range endpoints {
			if endpoints[i].URL == p.winner {
				return &endpoints[i]
			}
		}
	}

	var head uint64
	for _, e := range endpoints {
		head = max(head, e.BlockNumber)
	}

	var best *Endpoint
	var bestRank float64
	for _, e := range candidates(endpoints) {
		if e.lag(head) > maxBlockLag {
			continue
		}
		if r := e.rank(head); best == nil || r > bestRank {
			best, bestRank = e, r
		}
	}
	if best != nil {
		p.winner = best.URL
		p.expires = time.Now().Add(winnerTTL)
	}
	return best
}

func (p *Picker) rotate(pool []*Endpoint) *Endpoint {
	if len(pool) == 0 {
		return nil
	}
	e := pool[p.next%len(pool)]
	p.next = (p.next + 1) % len(pool)
	return e
}

// firstUsable walks endpoints in configured order.
func firstUsable(endpoints []Endpoint) *Endpoint {
	for i := range endpoints {
		if !endpoints[i].failed() {
			return &endpoints[i]
		}
	}
	return nil
}

// candidates drops endpoints whose health check failed. Without any
// health data every endpoint stays in.
func candidates(endpoints []Endpoint) []*Endpoint {
	out := make([]*Endpoint, 0, len(endpoints))
	for i := range endpoints {
		if !endpoints[i].failed() {
			out = append(out, &endpoints[i])
		}
	}
	return out
}

// Selector hands out one Picker per chain so that the fastest winner and
// the round-robin cursor survive across selections in a process. A
// chain's picker is replaced when a different algorithm is asked for.
type Selector struct {
	mu      sync.Mutex
	pickers map[int64]*Picker
}

// NewSelector returns an empty Selector.
func NewSelector() *Selector {
	return &Selector{pickers: make(map[int64]*Picker)}
}

// Picker returns the picker for chainID, creating it on first use.
func (s *Selector) Picker(chainID int64, algo Algorithm) *Picker {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pickers[chainID]
	if !ok || p.algo != algo {
		p = NewPicker(algo)
		s.pickers[chainID] = p
	}
	return p
}
