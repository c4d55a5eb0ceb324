package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gdscaffold/gdscaffold/internal/cli"
	"github.com/joho/godotenv"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	// A missing .env is normal; variables already set are not overridden.
	_ = godotenv.Load()

	if err := cli.Execute(context.Background(), version, commit, date); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
