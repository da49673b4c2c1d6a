// Command projectionctl exercises the projection service from a terminal:
// "request" calls a running API server, "prompt" runs the generator
// in-process against the configured provider.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
