package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/macpack/macpack/pkg/config"
	macContext "github.com/macpack/macpack/pkg/context"
	"github.com/macpack/macpack/pkg/logging"
)

// SetupLogger creates and configures a logger based on debug mode
func SetupLogger(debug bool) *logrus.Logger {
	logger := logrus.New()

	if debug {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logging.BulletFormatter{})
	}

	return logger
}

// ExitWithErrorf logs an error with the provided logger and exits with code 1
func ExitWithErrorf(logger *logrus.Logger, format string, args ...interface{}) {
	logger.Errorf(format, args...)
	os.Exit(1)
}

// ExitWithErrorNoLoggerf prints an error to stderr and exits with code 1
func ExitWithErrorNoLoggerf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
	os.Exit(1)
}

// loadContext loads the configuration file, resolves the packaging
// parameters against the environment and project metadata, and builds the
// pipeline context. It exits on any failure.
func loadContext(logger *logrus.Logger) *macContext.Context {
	cfg, err := config.LoadConfig(GetConfigPath())
	if err != nil {
		ExitWithErrorf(logger, "Failed to load configuration: %v", err)
	}

	pc, err := config.Resolve(cfg)
	if err != nil {
		ExitWithErrorf(logger, "Failed to resolve packaging configuration: %v", err)
	}

	logger.Infof("Version: %s", pc.Version)
	return macContext.NewContext(context.Background(), cfg, pc, logger)
}
