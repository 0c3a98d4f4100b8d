package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"sparkify-etl/internal/config"
	"sparkify-etl/internal/database"
	"sparkify-etl/internal/logger"
	"sparkify-etl/internal/runner"
)

func main() {
	var exitCode int
	defer func() {
		os.Exit(exitCode)
	}()

	configPath := flag.String("config", "config.yaml", "path to the config file; defaults apply when it is missing")
	dbType := flag.String("db", "", "destination override (postgres, mysql, mongo or sqlite)")

	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		exitCode = 1
		return
	}
	if *dbType != "" {
		cfg.Destination = *dbType
	}

	log, err := logger.New(cfg.Logging.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		exitCode = 1
		return
	}
	defer log.Sync()

	dsn, err := cfg.DSN(cfg.Destination)
	if err != nil {
		log.Error("Invalid destination", zap.Error(err))
		exitCode = 1
		return
	}

	driver, err := database.New(cfg.Destination)
	if err != nil {
		log.Error("Unsupported database type", zap.Error(err))
		exitCode = 1
		return
	}
	if md, ok := driver.(*database.MongoDriver); ok {
		md.Database = cfg.Databases.MongoDatabase
	}

	if err := driver.Connect(dsn); err != nil {
		log.Error("Failed to connect", zap.String("destination", cfg.Destination), zap.Error(err))
		exitCode = 1
		return
	}
	defer driver.Close()

	ctx := context.Background()

	if cfg.Setup.Reset {
		if err := driver.Reset(ctx); err != nil {
			log.Error("Failed to reset database", zap.Error(err))
			exitCode = 1
			return
		}
	}
	if cfg.Setup.CreateTables || cfg.Setup.Reset {
		if err := driver.Setup(ctx); err != nil {
			log.Error("Failed to create tables", zap.Error(err))
			exitCode = 1
			return
		}
	}

	pipeline := runner.New(driver, runner.Options{
		SongData: cfg.Data.SongData,
		LogData:  cfg.Data.LogData,
		Pattern:  cfg.Data.Pattern,
	}, log)

	result, err := pipeline.Run(ctx)
	if err != nil {
		log.Error("Pipeline failed", zap.Error(err))
		exitCode = 1
		return
	}

	jsonOutput, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Error("Failed to marshal result", zap.Error(err))
		exitCode = 1
		return
	}
	fmt.Println(string(jsonOutput))
}
