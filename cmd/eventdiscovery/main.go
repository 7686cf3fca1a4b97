package main

import (
	"context"
	"fmt"
	"os"

	"eventdiscovery/internal/cli"
)

// @title Event Discovery API
// @version 1.0
// @description Search, filter and fetch events from the configured catalog.
// @BasePath /
func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
