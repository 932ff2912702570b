// Spendwrap summarizes a year of online shopping from order-history CSV exports.
package main

import (
	"github.com/huangsam/spendwrap/cmd"
	"github.com/huangsam/spendwrap/internal/contract"
	"github.com/huangsam/spendwrap/internal/iocache"
)

func main() {
	defer iocache.CloseCaching()
	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Cannot stop profiling", stopErr)
	}
	if err != nil {
		iocache.CloseCaching()
		contract.LogFatal("Cannot run command", err)
	}
}
