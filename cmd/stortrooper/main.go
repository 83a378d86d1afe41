package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/retromoe/stortrooper-editor/internal/cli"
	"github.com/retromoe/stortrooper-editor/internal/config"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("stortrooper: ")

	cfg, err := cli.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	if err := cli.Run(context.Background(), cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
