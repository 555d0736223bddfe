package main

import (
	"fmt"
	"os"

	"github.com/pfagrelius/skyfit-go/cmd"
	"github.com/pfagrelius/skyfit-go/internal/conf"
	"github.com/pfagrelius/skyfit-go/internal/logging"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init()

	closeLogger, err := logging.InitFileLogging()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error setting up file logging: %v\n", err)
		os.Exit(1)
	}
	rootCmd := cmd.RootCommand(settings)
	execErr := rootCmd.Execute()

	if err := closeLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "error closing log file: %v\n", err)
	}
	if execErr != nil {
		fmt.Fprintf(os.Stderr, "command error: %v\n", execErr)
		os.Exit(1)
	}
}
