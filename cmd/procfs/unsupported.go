//go:build !linux

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(
		os.Stderr,
		"procfs reads the Linux /proc filesystem and only runs on Linux.\n\nThis build targets another platform, where /proc is absent or has a different layout.",
	)
	os.Exit(1)
}
