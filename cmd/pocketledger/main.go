package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/pocketledger/pocketledger/internal/commands"
)

func main() {
	// Optional .env with POCKETLEDGER_HOME / POCKETLEDGER_LOG_LEVEL.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
