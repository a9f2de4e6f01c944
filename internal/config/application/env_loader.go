package application

import (
	"os"

	"github.com/joho/godotenv"

	sharedlogger "sysprobe/internal/shared/logger"
)

// LoadEnvFile loads environment variables from a .env file.
// If envFile is empty, it attempts to load .env from the current directory.
// Variables already set in the environment win over the file.
// Returns true if a file was loaded, false otherwise.
func LoadEnvFile(logger sharedlogger.Logger, envFile string) bool {
	if envFile == "" {
		envFile = ".env"
	}

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		logger.Debug("No .env file found", "path", envFile)
		return false
	}

	err := godotenv.Load(envFile)
	if err != nil {
		logger.Warn("Failed to load .env file", "path", envFile, "err", err)
		return false
	}

	logger.Debug("Loaded .env file", "path", envFile)
	return true
}
