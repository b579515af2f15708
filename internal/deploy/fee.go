package deploy

import (
	"context"
	"math/big"
	"sync"

	"cosmossdk.io/log"
	"github.com/Mohsinsiddi/vinutoken/internal/chain"
	"github.com/Mohsinsiddi/vinutoken/internal/contract"
	"github.com/ethereum/go-ethereum/common"
)

// Quote is the creation fee attached to a createToken call.
type Quote struct {
	Wei      *big.Int
	Display  string // e.g. "10000 VC"
	Fallback bool   // true when the on-chain value could not be read
}

// NewQuote formats wei as a VC amount.
func NewQuote(wei *big.Int, fallback bool) Quote {
	if wei == nil {
		wei = new(big.Int)
	}
	return Quote{
		Wei:      new(big.Int).Set(wei),
		Display:  chain.FormatWei(wei, 18) + " VC",
		Fallback: fallback,
	}
}

// FeeOracle keeps the last known creation fee of the factory.
type FeeOracle struct {
	factory  common.Address
	fallback Quote
	logger   log.Logger

	mu      sync.Mutex
	current Quote
}

// NewFeeOracle returns an oracle that starts at the fallback fee.
func NewFeeOracle(factory common.Address, fallbackWei *big.Int, logger log.Logger) *FeeOracle {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	fb := NewQuote(fallbackWei, true)
	return &FeeOracle{
		factory:  factory,
		fallback: fb,
		logger:   logger,
		current:  fb,
	}
}

// Fetch reads creationFee() through caller and stores the result. Read
// failures store the fallback fee. A nil caller leaves the quote unchanged.
func (o *FeeOracle) Fetch(ctx context.Context, caller *contract.Caller) Quote {
	if caller == nil {
		return o.Current()
	}

	q := o.fallback
	wei, err := caller.CreationFee(ctx, o.factory)
	if err != nil {
		o.logger.Error("failed to fetch creation fee", "factory", o.factory.Hex(), "err", err)
	} else {
		q = NewQuote(wei, false)
		o.logger.Debug("creation fee", "wei", wei.String())
	}

	o.mu.Lock()
	o.current = q
	o.mu.Unlock()
	return q
}

// Current returns the stored quote.
func (o *FeeOracle) Current() Quote {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}
