package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Destination string    `yaml:"destination"`
	Databases   Databases `yaml:"databases"`
	Data        Data      `yaml:"data"`
	Setup       Setup     `yaml:"setup"`
	Logging     Logging   `yaml:"logging"`
}

type Databases struct {
	Postgres      string `yaml:"postgres"`
	MySQL         string `yaml:"mysql"`
	Mongo         string `yaml:"mongo"`
	MongoDatabase string `yaml:"mongo_database"`
	SQLite        string `yaml:"sqlite"`
}

type Data struct {
	SongData string `yaml:"song_data"`
	LogData  string `yaml:"log_data"`
	Pattern  string `yaml:"pattern"`
}

// Setup controls schema management before the passes run.
type Setup struct {
	CreateTables bool `yaml:"create_tables"`
	Reset        bool `yaml:"reset"`
}

type Logging struct {
	Environment string `yaml:"environment"`
}

// Default returns the settings the pipeline runs with when no config file exists.
func Default() *Config {
	return &Config{
		Destination: "postgres",
		Databases: Databases{
			Postgres:      "host=127.0.0.1 dbname=sparkifydb user=student password=student",
			MySQL:         "student:student@tcp(127.0.0.1:3306)/sparkifydb",
			Mongo:         "mongodb://127.0.0.1:27017",
			MongoDatabase: "sparkifydb",
			SQLite:        "sparkify.db",
		},
		Data: Data{
			SongData: "data/song_data",
			LogData:  "data/log_data",
			Pattern:  "*.json",
		},
		Setup: Setup{
			CreateTables: true,
		},
		Logging: Logging{
			Environment: "development",
		},
	}
}

// LoadConfig overlays the yaml file at path on top of Default. A missing file
// is not an error.
func LoadConfig(path string) (*Config, error) {
	config := Default()

	file, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return nil, err
	}

	err = yaml.Unmarshal(file, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if _, err := c.DSN(c.Destination); err != nil {
		return err
	}
	if c.Data.SongData == "" || c.Data.LogData == "" {
		return errors.New("data.song_data and data.log_data are required")
	}
	if c.Data.Pattern == "" {
		return errors.New("data.pattern must not be empty")
	}
	return nil
}

// DSN returns the connection string configured for the named destination.
func (c *Config) DSN(destination string) (string, error) {
	var dsn string
	switch destination {
	case "postgres":
		dsn = c.Databases.Postgres
	case "mysql":
		dsn = c.Databases.MySQL
	case "mongo":
		dsn = c.Databases.Mongo
	case "sqlite":
		dsn = c.Databases.SQLite
	default:
		return "", fmt.Errorf("unsupported destination: %q", destination)
	}
	if dsn == "" {
		return "", fmt.Errorf("no connection string configured for %s", destination)
	}
	return dsn, nil
}
