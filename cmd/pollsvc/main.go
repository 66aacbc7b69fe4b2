package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/wanderly-app/pollsvc/internal/app"
)

func main() {
	// Optional .env for local development; env vars win.
	_ = godotenv.Load()

	if err := app.New().Run(); err != nil {
		log.Fatalf("pollsvc failed to start: %v", err)
	}
}
