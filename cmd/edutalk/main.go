package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/edutalk/internal/app"
	"github.com/dmitrijs2005/edutalk/internal/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig(os.Args[1:])

	a, err := app.NewApp(ctx, cfg, app.IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
