package main

import (
	"fmt"
	"os"

	"github.com/MrSnakeDoc/lawdesk/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ lawdesk: %v\n", err)
		os.Exit(1)
	}
}
