package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/lmittmann/w3"
)

var (
	funcBalanceOf   = w3.MustNewFunc("balanceOf(address)", "uint256")
	funcCreationFee = w3.MustNewFunc("creationFee()", "uint256")
	funcCreateToken = w3.MustNewFunc(
		"createToken(string name, string symbol, uint256 initialSupply, uint8 decimals, uint256 buyTaxRate, uint256 sellTaxRate, uint256 burnRate, address devWallet, uint256 maxTxPercentage, bool renounce)",
		"address",
	)
	eventTokenCreated = w3.MustNewEvent(
		"TokenCreated(address indexed tokenAddress, address indexed creator)",
	)
)

// CreateTokenArgs are the on-chain arguments of the factory's createToken.
// Rates are in hundredths of a percent.
type CreateTokenArgs struct {
	Name            string
	Symbol          string
	InitialSupply   *big.Int
	Decimals        uint8
	BuyTaxRate      *big.Int
	SellTaxRate     *big.Int
	BurnRate        *big.Int
	DevWallet       common.Address
	MaxTxPercentage *big.Int
	Renounce        bool
}

// EncodeCreateToken returns the calldata for createToken.
func EncodeCreateToken(a CreateTokenArgs) ([]byte, error) {
	return funcCreateToken.EncodeArgs(
		a.Name,
		a.Symbol,
		a.InitialSupply,
		a.Decimals,
		a.BuyTaxRate,
		a.SellTaxRate,
		a.BurnRate,
		a.DevWallet,
		a.MaxTxPercentage,
		a.Renounce,
	)
}

// TokenCreated is a decoded factory TokenCreated event.
type TokenCreated struct {
	Token   common.Address
	Creator common.Address
}

// TokenCreatedTopic is the event signature hash of TokenCreated.
func TokenCreatedTopic() common.Hash { return eventTokenCreated.Topic0 }

// FindTokenCreated scans logs in order and returns the first TokenCreated
// event emitted by factory.
func FindTokenCreated(logs []*types.Log, factory common.Address) (TokenCreated, bool) {
	for _, log := range logs {
		if log == nil || log.Address != factory {
			continue
		}
		var ev TokenCreated
		if err := eventTokenCreated.DecodeArgs(log, &ev.Token, &ev.Creator); err == nil {
			return ev, true
		}
	}
	return TokenCreated{}, false
}
