// main is the entry point for the ghpulse CLI.
package main

import (
	"fmt"
	"os"

	"github.com/averykuo/ghpulse/cmd"
	"github.com/averykuo/ghpulse/internal/contract"
	"github.com/averykuo/ghpulse/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()
	iocache.CloseCaching()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", contract.UserMessage(err))
		os.Exit(1)
	}

	if err := cmd.StopProfiling(); err != nil {
		fmt.Fprintln(os.Stderr, "⚠️  Failed to stop profiling:", err)
	}
}
