package main

import (
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/nhanban-huy/nhan-ban-photo-print/internal/app"
)

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using environment")
	}

	if err := app.Run(); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
