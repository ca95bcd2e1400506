package main

import (
	"os"

	"github.com/facebookverify2025-dot/history-vault-ai/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
