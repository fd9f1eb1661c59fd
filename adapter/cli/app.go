package cli

import (
	"github.com/ardenhale/timeloom/internal/scheduling/application/commands"
)

// App holds the CLI application dependencies.
type App struct {
	// Schedule Command Handlers
	RunScheduleHandler *commands.RunScheduleHandler
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(runScheduleHandler *commands.RunScheduleHandler) *App {
	return &App{
		RunScheduleHandler: runScheduleHandler,
	}
}

// app is the global CLI application instance.
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
