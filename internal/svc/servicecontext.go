package svc

import (
	"database/sql"

	"taskchat/internal/agent"
	"taskchat/internal/config"
	"taskchat/internal/db"
)

// ServiceContext carries the shared dependencies for handlers and logic.
// Everything in it is constructed once at startup and safe for concurrent
// use; per-turn state never lives here.
type ServiceContext struct {
	Config        config.Config
	Tasks         *db.TaskStore
	Conversations *db.ConversationStore
	Driver        *agent.Driver
}

// NewServiceContext wires the stores and the dialogue driver over a shared
// database connection and an injected model client.
func NewServiceContext(c config.Config, database *sql.DB, model agent.ModelClient) *ServiceContext {
	tasks := db.NewTaskStore(database)
	return &ServiceContext{
		Config:        c,
		Tasks:         tasks,
		Conversations: db.NewConversationStore(database),
		Driver:        agent.NewDriver(model, agent.NewDispatcher(tasks), c.Model.Instructions),
	}
}
