package main

import (
	"context"
	"log"

	"github.com/nexabag/deltamobile/internal/server"
	"github.com/nexabag/deltamobile/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.Load()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
