// check-vinuchain: benchmarks every built-in VinuChain RPC, reads the
// factory's creation fee through the fastest one and prints the WVC balance
// of each address given on the command line.
//
// Run from the module root:
//
//	go run ./scripts/check-vinuchain 0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Mohsinsiddi/vinutoken/internal/chain"
	"github.com/Mohsinsiddi/vinutoken/internal/config"
	"github.com/Mohsinsiddi/vinutoken/internal/contract"
	"github.com/Mohsinsiddi/vinutoken/internal/rpc"
	"github.com/ethereum/go-ethereum/common"
)

const rpcTimeout = 12 * time.Second

func main() {
	c := chain.VinuChain()

	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
	defer cancel()

	results := rpc.Benchmark(ctx, c.RPCs, c.ChainID)
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if (a.Err == nil) != (b.Err == nil) {
			return a.Err == nil
		}
		return a.Latency < b.Latency
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RPC\tLATENCY\tBLOCK\tNOTE")
	fmt.Fprintln(w, strings.Repeat("-", 32)+"\t"+
		strings.Repeat("-", 8)+"\t"+
		strings.Repeat("-", 10)+"\t"+
		strings.Repeat("-", 20))
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%s\t—\t—\t%s\n", r.URL, shortErr(r.Err))
			continue
		}
		fmt.Fprintf(w, "%s\t%dms\t%d\t\n", r.URL, r.Latency.Milliseconds(), r.BlockNumber)
	}
	w.Flush()

	if len(results) == 0 || results[0].Err != nil {
		fmt.Fprintln(os.Stderr, "no healthy VinuChain RPC")
		os.Exit(1)
	}
	caller := contract.NewCaller(chain.NewEVMClient(results[0].URL))

	fmt.Println()
	fee, err := caller.CreationFee(ctx, common.HexToAddress(config.FactoryAddress))
	if err != nil {
		fmt.Printf("creation fee: unavailable (%s), default is %s VC\n", shortErr(err), config.FallbackCreationFee)
	} else {
		fmt.Printf("creation fee: %s VC\n", chain.FormatWei(fee, 18))
	}

	if len(os.Args) < 2 {
		return
	}
	fmt.Println()
	wvc := common.HexToAddress(config.WrappedNativeAddress)
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ADDRESS\tWVC\tNOTE")
	for _, a := range os.Args[1:] {
		if !common.IsHexAddress(a) {
			fmt.Fprintf(w, "%s\t—\tnot an address\n", a)
			continue
		}
		bal, err := caller.BalanceOf(ctx, wvc, common.HexToAddress(a))
		if err != nil {
			fmt.Fprintf(w, "%s\t—\t%s\n", shortAddr(a), shortErr(err))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t\n", shortAddr(a), chain.FormatWei(bal, 18))
	}
	w.Flush()
}

func shortAddr(addr string) string {
	if len(addr) < 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

func shortErr(err error) string {
	s := err.Error()
	if len(s) > 30 {
		return s[:30] + "…"
	}
	return s
}
