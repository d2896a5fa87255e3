package main

import (
	"fmt"
	"os"

	"github.com/aws/smithy-go/logging"
	"github.com/diillson/aws-ops-scripts-go/internal/adapter/driven/aws"
	"github.com/diillson/aws-ops-scripts-go/internal/adapter/driven/config"
	"github.com/diillson/aws-ops-scripts-go/internal/adapter/driven/export"
	"github.com/diillson/aws-ops-scripts-go/internal/adapter/driven/mysql"
	"github.com/diillson/aws-ops-scripts-go/internal/adapter/driving/cli"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/repository"
	"github.com/diillson/aws-ops-scripts-go/pkg/console"
	"github.com/diillson/aws-ops-scripts-go/pkg/version"
)

func main() {
	// Inicializa os repositórios
	deps := cli.Dependencies{
		Clients: func(profile string, debug bool) repository.AWSClientFactory {
			var logger logging.Logger
			if debug {
				logger = console.NewSDKLogger(os.Stderr)
			}
			return aws.NewClientFactory(profile, logger)
		},
		Export:   export.NewExportRepository(),
		Config:   config.NewConfigRepository(),
		Database: mysql.NewDatabaseRepository(),
		Console:  console.NewConsole(),
	}

	app := cli.NewCLIApp(version.Version, deps)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
