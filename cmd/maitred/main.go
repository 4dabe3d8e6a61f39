// maitred is the restaurant assistant CLI. It runs an interactive chat for
// the staff or guest persona over the embedded catalog and memory stores.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
