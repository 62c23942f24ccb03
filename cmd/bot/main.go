package main

import (
	"log"

	"github.com/joho/godotenv"

	"studybot/app"
	corecmd "studybot/core/cmd"
)

func main() {
	// Local runs keep secrets in .env; in containers the variables come
	// from the environment and the file is simply absent.
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not loaded: %v", err)
	}

	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config/config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return app.LoadConfig(path)
		},
		Bootstrap: func(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			return app.New(cfg.(*app.Config))
		},
	})
	if err != nil {
		log.Fatalf("bot stopped: %v", err)
	}
}
