package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/memories/internal/app"
	"github.com/dmitrijs2005/memories/internal/buildinfo"
	"github.com/dmitrijs2005/memories/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig(os.Args[1:])
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	a, err := app.NewApp(ctx, cfg, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := a.Run(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}

}
