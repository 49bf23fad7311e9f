package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	HTTPPort        string
	LogLevel        logrus.Level
	PolicyFile      string
	OperatorWorkers int
	MigrateOnStart  bool
}

// PostgresDSN is the lib/pq connection string for the configured database.
func (c *Config) PostgresDSN() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

// LoadDotEnv loads a .env file into the process environment when one exists.
// Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",
		HTTPPort:         "9446",
		LogLevel:         logrus.InfoLevel,
		OperatorWorkers:  4,
	}

	envPostgresAddress := os.Getenv("POSTGRES_ADDRESS")
	envPostgresPort := os.Getenv("POSTGRES_PORT")
	envPostgresDB := os.Getenv("POSTGRES_DB")
	envPostgresUsername := os.Getenv("POSTGRES_USERNAME")
	envPostgresPassword := os.Getenv("POSTGRES_PASSWORD")
	envHTTPPort := os.Getenv("HTTP_PORT")
	envLogLevel := os.Getenv("LOG_LEVEL")
	envPolicyFile := os.Getenv("POLICY_FILE")
	envOperatorWorkers := os.Getenv("OPERATOR_WORKERS")
	envMigrateOnStart := os.Getenv("MIGRATE_ON_START")

	if len(envPostgresAddress) != 0 {
		env.PostgresAddress = envPostgresAddress
	}

	if len(envPostgresPort) != 0 {
		env.PostgresPort = envPostgresPort
	}

	if len(envPostgresDB) != 0 {
		env.PostgresDB = envPostgresDB
	}

	if len(envPostgresUsername) != 0 {
		env.PostgresUsername = envPostgresUsername
	}

	if len(envPostgresPassword) != 0 {
		env.PostgresPassword = envPostgresPassword
	}

	if len(envHTTPPort) != 0 {
		port, err := strconv.Atoi(envHTTPPort)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid HTTP_PORT %q: must be between 1 and 65535", envHTTPPort)
		}
		env.HTTPPort = envHTTPPort
	}

	if len(envLogLevel) != 0 {
		level, err := logrus.ParseLevel(envLogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", envLogLevel, err)
		}
		env.LogLevel = level
	}

	env.PolicyFile = envPolicyFile

	if len(envOperatorWorkers) != 0 {
		workers, err := strconv.Atoi(envOperatorWorkers)
		if err != nil || workers < 1 {
			return nil, fmt.Errorf("invalid OPERATOR_WORKERS %q: must be a positive integer", envOperatorWorkers)
		}
		env.OperatorWorkers = workers
	}

	if len(envMigrateOnStart) != 0 {
		migrate, err := strconv.ParseBool(envMigrateOnStart)
		if err != nil {
			return nil, fmt.Errorf("invalid MIGRATE_ON_START %q: %w", envMigrateOnStart, err)
		}
		env.MigrateOnStart = migrate
	}

	return &env, nil
}
