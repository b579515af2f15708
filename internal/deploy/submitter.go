// Package deploy quotes the factory's creation fee and submits createToken
// transactions.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync/atomic"

	"cosmossdk.io/log"
	"github.com/Mohsinsiddi/vinutoken/internal/config"
	"github.com/Mohsinsiddi/vinutoken/internal/contract"
	"github.com/Mohsinsiddi/vinutoken/internal/session"
	"github.com/Mohsinsiddi/vinutoken/internal/token"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

var (
	ErrNoSigner         = errors.New("no wallet connected")
	ErrSubmissionFailed = errors.New("deployment failed")
	ErrDeployInProgress = errors.New("a deployment is already in progress")
)

// Submitter sends createToken to the factory. One deployment runs at a time.
type Submitter struct {
	factory  common.Address
	gasLimit uint64
	notify   func(Event)
	logger   log.Logger

	busy atomic.Bool
}

// SubmitterOption configures a Submitter.
type SubmitterOption func(*Submitter)

// WithGasLimit overrides the fixed gas budget.
func WithGasLimit(gas uint64) SubmitterOption {
	return func(s *Submitter) {
		if gas > 0 {
			s.gasLimit = gas
		}
	}
}

// WithNotify registers a progress hook.
func WithNotify(fn func(Event)) SubmitterOption {
	return func(s *Submitter) { s.notify = fn }
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) SubmitterOption {
	return func(s *Submitter) { s.logger = l }
}

// NewSubmitter returns a Submitter for the given factory.
func NewSubmitter(factory common.Address, opts ...SubmitterOption) *Submitter {
	s := &Submitter{
		factory:  factory,
		gasLimit: config.GasLimitCreateToken,
		logger:   log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InProgress reports whether a Deploy call is running.
func (s *Submitter) InProgress() bool { return s.busy.Load() }

// Deploy validates p, sends createToken with fee attached and waits for the
// receipt. A successful transaction without a TokenCreated event yields a
// degraded Outcome, not an error.
func (s *Submitter) Deploy(ctx context.Context, p token.Params, sess *session.Session, fee Quote) (*Outcome, error) {
	if sess == nil || sess.Signer == nil {
		return nil, ErrNoSigner
	}
	if err := token.Validate(p).Err(); err != nil {
		return nil, err
	}
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrDeployInProgress
	}
	defer s.busy.Store(false)

	args, err := BuildArgs(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	data, err := contract.EncodeCreateToken(args)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding createToken: %w", ErrSubmissionFailed, err)
	}

	value := fee.Wei
	if value == nil {
		value = new(big.Int)
	}
	sender := contract.NewSender(sess.Network, sess.Signer, big.NewInt(sess.Chain.ChainID))
	hash, err := sender.Send(ctx, contract.Call{
		To:    s.factory,
		Data:  data,
		Value: value,
		Gas:   s.gasLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	txURL := sess.Chain.TxURL(hash.Hex())
	s.logger.Info("createToken submitted", "tx", hash.Hex(), "symbol", args.Symbol, "fee", fee.Display)
	s.emit(Event{Kind: EventSubmitted, TxHash: hash, ExplorerTx: txURL})

	receipt, err := sess.Network.WaitForReceipt(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	s.emit(Event{Kind: EventMined, TxHash: hash, ExplorerTx: txURL, Block: receipt.BlockNumber})

	out := &Outcome{TxHash: hash, ExplorerTx: txURL}
	created, ok := contract.FindTokenCreated(receipt.Logs, s.factory)
	if !ok {
		s.logger.Error("TokenCreated event not found in receipt", "tx", hash.Hex())
		out.Degraded = true
		return out, nil
	}

	out.Token = created.Token
	out.Creator = created.Creator
	out.ExplorerToken = sess.Chain.AddressURL(created.Token.Hex())
	out.NextSteps = nextSteps(args.Symbol, created.Token)
	s.logger.Info("token created", "token", created.Token.Hex(), "block", receipt.BlockNumber)
	return out, nil
}

func (s *Submitter) emit(e Event) {
	if s.notify != nil {
		s.notify(e)
	}
}

// BuildArgs converts validated form values into on-chain arguments.
func BuildArgs(p token.Params) (contract.CreateTokenArgs, error) {
	supply, err := token.ParseUnits(strings.TrimSpace(p.TotalSupply), p.Decimals)
	if err != nil {
		return contract.CreateTokenArgs{}, fmt.Errorf("total supply: %w", err)
	}

	dev := common.Address{}
	if w := strings.TrimSpace(p.DevWallet); w != "" {
		dev = common.HexToAddress(w)
	}

	maxTx := new(big.Int)
	if m := strings.TrimSpace(p.MaxTx); m != "" {
		d, err := decimal.NewFromString(m)
		if err != nil || !d.IsInteger() {
			return contract.CreateTokenArgs{}, fmt.Errorf("max tx %q: %w", m, token.ErrConversion)
		}
		maxTx = d.BigInt()
	}

	return contract.CreateTokenArgs{
		Name:            strings.TrimSpace(p.Name),
		Symbol:          strings.ToUpper(strings.TrimSpace(p.Symbol)),
		InitialSupply:   supply,
		Decimals:        p.Decimals,
		BuyTaxRate:      token.PercentToBasisPoints(p.BuyTaxRate),
		SellTaxRate:     token.PercentToBasisPoints(p.SellTaxRate),
		BurnRate:        token.PercentToBasisPoints(p.BurnRate),
		DevWallet:       dev,
		MaxTxPercentage: maxTx,
		Renounce:        p.RenounceOwnership,
	}, nil
}
