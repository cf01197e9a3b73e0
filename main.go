package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/klemjul/nodepulse/cmd"
	"github.com/klemjul/nodepulse/internal/app"
)

func main() {
	_ = godotenv.Load()

	app := app.NewDefaultApp()
	if err := cmd.RootCommand(app).Execute(); err != nil {
		os.Exit(1)
	}
}
