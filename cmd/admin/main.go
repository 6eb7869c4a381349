package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"addressbook-backend/internal/client"
	"addressbook-backend/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load configuration: %v\n", err)
		os.Exit(1)
	}

	api := client.New(cfg.Client.BaseURL, cfg.Client.APIKey)
	store := client.NewStore(api, cfg.Client.PageSize)

	program := tea.NewProgram(
		NewUI(api, store),
		tea.WithAltScreen(), // use the full size of the terminal in its "alternate screen buffer"
	)
	if _, err := program.Run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
