package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"aula/api"
	"aula/config"
	"aula/model"
	"aula/storage"
	"aula/ui"
)

const Version = "v0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())

	store, err := storage.NewConversationStore(cfg.DataDir())
	if err != nil {
		fmt.Printf("Failed to initialize conversation store: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("Warning: failed to close conversation store: %v", err)
		}
	}()

	backend := api.NewClient(cfg.BackendURL)

	darkTheme := cfg.DarkTheme

	// Login -> chat -> (logout) -> login, until the user quits
	for {
		loginModel := ui.NewLoginModel(darkTheme)
		p := tea.NewProgram(loginModel, tea.WithAltScreen())

		finalModel, err := p.Run()
		if err != nil {
			fmt.Printf("Error running aula: %v\n", err)
			os.Exit(1)
		}

		lm, ok := finalModel.(ui.LoginModel)
		if !ok || !lm.Authenticated() {
			return
		}
		darkTheme = lm.DarkTheme()

		dataModel := model.NewModel(cfg, backend, store)
		dataModel.Session.Authenticated = true
		dataModel.Session.DarkTheme = darkTheme

		p = tea.NewProgram(ui.NewAppView(dataModel), tea.WithAltScreen())

		finalModel, err = p.Run()
		if err != nil {
			fmt.Printf("Error running aula: %v\n", err)
			os.Exit(1)
		}

		av, ok := finalModel.(ui.AppView)
		if !ok || !av.LoggedOut {
			return
		}
		darkTheme = dataModel.Session.DarkTheme
	}
}
