package main

import (
	"fmt"
	"os"

	"github.com/chatapp/backend/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pushctl:", err)
		os.Exit(1)
	}
}
