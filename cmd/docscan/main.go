// Package main is the entry point for the docscan CLI.
//
// docscan serves a flat directory of text documents over the Model Context
// Protocol and offers the same search, get and list operations from the
// command line. Startup loads an optional .env file, sets up logging and
// hands over to the cobra command tree.
package main

import (
	"fmt"
	"os"

	"docscan/internal/domain"
	"docscan/internal/logging"
	"docscan/internal/ui"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	appLogger := logging.NewAppLogger()

	if err := newRootCmd(appLogger).Execute(); err != nil {
		appLogger.Debug("Command failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s (%s): %v\n", ui.ErrorStyle.Render("Error"), domain.Kind(err), err)
		os.Exit(1)
	}
}
