// Package main is the entry point for the ragsearch CLI binary.
package main

import (
	"os"

	"github.com/SyChell/rag-with-ai-search-upskilling/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
