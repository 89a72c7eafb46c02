package main

import (
	"context"
	"log"
	"os"

	"github.com/nexabag/deltamobile/internal/buildinfo"
	"github.com/nexabag/deltamobile/internal/client/cli"
	"github.com/nexabag/deltamobile/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
