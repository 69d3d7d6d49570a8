// Command farectl is the operator CLI for the fare store: quotes, matrices,
// GTFS seeding and snapshot export/import against a local database.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
