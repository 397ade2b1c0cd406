package main

import (
	"flag"
	"log"

	"github.com/haguru/resumatch/config"
	"github.com/haguru/resumatch/internal/app"
)

func main() {
	configPath := flag.String("config", config.CONFIG_PATH, "path to the service configuration file")
	flag.Parse()

	// create and initialize the app
	app, err := app.NewApp(*configPath)
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	// Run blocks until the server fails or a shutdown signal arrives.
	if err := app.Run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
