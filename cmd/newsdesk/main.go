// Command newsdesk loads the live-feed exports, classifies every message and
// presents the result as NDJSON, a terminal report or an HTTP API.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
