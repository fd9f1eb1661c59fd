package main

import (
	"os"

	"github.com/ardenhale/timeloom/adapter/cli"
	"github.com/ardenhale/timeloom/adapter/cli/schedule"
	"github.com/ardenhale/timeloom/internal/scheduling/application/commands"
	"github.com/ardenhale/timeloom/pkg/config"
	"github.com/ardenhale/timeloom/pkg/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{AppEnv: "development", LogLevel: "info", LogFormat: "text"}
	}

	logCfg := observability.DefaultLogConfig()
	logCfg.Level = observability.LogLevel(cfg.LogLevel)
	logCfg.Format = observability.LogFormat(cfg.LogFormat)
	logCfg.FilePath = cfg.LogFile
	logger := observability.NewLogger(logCfg)
	cli.SetLogger(logger)

	runScheduleHandler := commands.NewRunScheduleHandler(logger)
	cliApp := cli.NewApp(runScheduleHandler)
	cli.SetApp(cliApp)

	cli.AddCommand(schedule.Cmd)

	cli.Execute()
	os.Exit(0)
}
