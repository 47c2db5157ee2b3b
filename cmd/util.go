package cmd

import (
	"fmt"
	"os"

	"clientintel/api"
	"clientintel/internal/chat"
	"clientintel/internal/dataset"
	"clientintel/internal/insights"
	"clientintel/internal/notifications"
	"clientintel/internal/repository"
	"clientintel/internal/search"
	"clientintel/internal/session"
)

const defaultFlagStorePath = "clientintel-flags.json"

func InitializeDependencies() (*api.ApiHandler, error) {
	ds, err := dataset.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	clients := ds.Clients()
	if len(clients) == 0 {
		return nil, fmt.Errorf("dataset has no clients")
	}

	flagStorePath := os.Getenv("CLIENTINTEL_FLAG_STORE")
	if flagStorePath == "" {
		flagStorePath = defaultFlagStorePath
	}
	flagRepository, err := repository.NewFileFlagRepository(flagStorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open flag store: %w", err)
	}

	sess := session.New(clients[0])

	return &api.ApiHandler{
		Dataset:             ds,
		Session:             sess,
		SearchService:       search.NewService(ds, flagRepository, sess),
		InsightService:      insights.NewService(flagRepository, sess),
		NotificationService: notifications.NewService(flagRepository, ds, sess),
		ChatService:         chat.NewService(ds, sess),
	}, nil
}
