package main

import (
	"os"

	"github.com/magsense/graphkb/cmd/graphkb"
)

func main() {
	if err := graphkb.Execute(); err != nil {
		os.Exit(1)
	}
}
