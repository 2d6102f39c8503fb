package main

import (
	"os"

	hl "github.com/alexdcox/hedera-legacy-go"
)

var log = hl.Log()

func main() {
	a := newApp()
	err := newRootCmd(a).Execute()

	// Post-run hooks are skipped when a command fails.
	if closeErr := a.close(); closeErr != nil {
		log.Warn().Msgf("%+v", closeErr)
	}

	if err != nil {
		log.Error().Msgf("%+v", err)
		os.Exit(1)
	}
}
