package main

import (
	"context"
	"log"
	"os"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/buildinfo"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/cli"
	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/client/config"
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
