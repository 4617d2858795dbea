package main

import (
	"context"
	"log"
	"os"

	"github.com/facevault/facevault/internal/buildinfo"
	"github.com/facevault/facevault/internal/cli"
	"github.com/facevault/facevault/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	// No vision backend is wired here; face enrollment and matching
	// report a detector error while the passphrase flow stays usable.
	app, err := cli.NewApp(ctx, cfg, nil)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
