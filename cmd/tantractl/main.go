// Command tantractl runs Tantra admin operations from a terminal: exporting
// participant listings, printing the next event id and summarising the store.
//
// Configuration uses the same keys as the server (TANTRA_MONGO_URI,
// TANTRA_EXPORT_FORMATS, ...) read from the environment, a .env file or a
// config file passed with --config.
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
