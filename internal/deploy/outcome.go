package deploy

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// EventKind identifies a progress notification from Deploy.
type EventKind int

const (
	// EventSubmitted fires once the transaction is broadcast.
	EventSubmitted EventKind = iota
	// EventMined fires once the receipt is in.
	EventMined
)

// Event is a non-terminal progress notification.
type Event struct {
	Kind       EventKind
	TxHash     common.Hash
	ExplorerTx string
	Block      uint64 // EventMined only
}

// Outcome is the result of a confirmed deployment.
type Outcome struct {
	Token         common.Address
	Creator       common.Address
	TxHash        common.Hash
	ExplorerTx    string
	ExplorerToken string
	// Degraded is set when the transaction succeeded but no TokenCreated
	// event from the factory was found in its receipt.
	Degraded  bool
	NextSteps []string
}

// Summary is the one-line result shown to the user.
func (o *Outcome) Summary() string {
	if o.Degraded {
		return "Deployment successful, but could not parse token address. Check tx: " + o.ExplorerTx
	}
	return "Token deployed at " + o.ExplorerToken
}

func nextSteps(symbol string, token common.Address) []string {
	return []string{
		fmt.Sprintf("Add liquidity for %s on VinuSwap (https://vinuswap.com).", symbol),
		"Copy the pool (pair) address VinuSwap creates.",
		fmt.Sprintf("Call setPair(<pool address>) on %s to enable buy/sell taxes.", token.Hex()),
		"Verify the source: open the token address on vinuexplorer.org.",
		`Click "Verify & Publish".`,
		"Paste the CustomToken contract code.",
		"Select compiler 0.8.20 and submit.",
	}
}
