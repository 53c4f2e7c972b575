package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"taskchat/internal/agent"
	"taskchat/internal/config"
	"taskchat/internal/db"
	"taskchat/internal/logging"
	"taskchat/internal/server"
	"taskchat/internal/svc"
)

func main() {
	// Best effort, the file is optional in production.
	_ = godotenv.Load()

	c, err := config.Load()
	if err != nil {
		logging.Errorf("failed to load config: %v", err)
		os.Exit(1)
	}

	database, err := db.Open(c.SQLitePath)
	if err != nil {
		logging.Errorf("failed to open database: %v", err)
		os.Exit(1)
	}
	defer database.Close()

	model := agent.NewOpenAIClient(c.Model.APIKey, c.Model.BaseURL, c.Model.Name)
	svcCtx := svc.NewServiceContext(c, database, model)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, c, svcCtx); err != nil {
		logging.Errorf("server error: %v", err)
		os.Exit(1)
	}
}
