package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diillson/aws-ops-scripts-go/internal/domain/repository"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/types"
	"github.com/diillson/aws-ops-scripts-go/pkg/version"
	"github.com/spf13/cobra"
)

// ClientsFunc constrói a factory de clientes AWS depois que profile e debug são conhecidos.
type ClientsFunc func(profile string, debug bool) repository.AWSClientFactory

// Dependencies são os adaptadores que o main injeta na CLI.
type Dependencies struct {
	Clients  ClientsFunc
	Export   repository.ExportRepository
	Config   repository.ConfigRepository
	Database repository.DatabaseRepository
	Console  types.ConsoleInterface
}

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd *cobra.Command
	deps    Dependencies
	version string

	// preenchidos no PersistentPreRunE
	config  *types.Config
	clients repository.AWSClientFactory
	dir     string
}

// NewCLIApp cria a aplicação com um subcomando por script.
func NewCLIApp(versionStr string, deps Dependencies) *CLIApp {
	app := &CLIApp{
		version: versionStr,
		deps:    deps,
	}

	rootCmd := &cobra.Command{
		Use:               "aws-ops",
		Short:             "AWS operations scripts CLI",
		Version:           version.FormatVersion(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
	}
	rootCmd.SetVersionTemplate(`{{printf "aws-ops version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "AWS profile to use (default: AWS_PROFILE or the default credential chain)")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the output files (default: current directory)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log AWS SDK requests and responses to stderr")
	rootCmd.PersistentFlags().Bool("no-banner", false, "Do not print the welcome banner")

	app.rootCmd = rootCmd
	app.addCommands()
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.ExecuteContext(context.Background())
}

// SetArgs substitui os argumentos da linha de comando (usado nos testes).
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// setup resolve a configuração (padrões < arquivo < flags) e prepara a factory de clientes.
func (app *CLIApp) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := app.loadConfig(cmd)
	if err != nil {
		return err
	}

	dir, err := resolveDir(cfg.Dir)
	if err != nil {
		return err
	}

	noBanner, _ := cmd.Flags().GetBool("no-banner")
	if !noBanner {
		displayWelcomeBanner()
		go version.CheckLatestVersion(cmd.Context(), app.version)
	}

	app.config = cfg
	app.dir = dir
	if app.deps.Clients != nil {
		app.clients = app.deps.Clients(cfg.Profile, cfg.Debug)
	}
	return nil
}

func (app *CLIApp) loadConfig(cmd *cobra.Command) (*types.Config, error) {
	cfg := types.DefaultConfig()

	configFile, _ := cmd.Flags().GetString("config-file")
	if configFile != "" {
		fileCfg, err := app.deps.Config.LoadConfigFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error loading config file '%s': %w", configFile, err)
		}
		cfg.Merge(fileCfg)
	}

	flags := cmd.Flags()
	if flags.Changed("profile") {
		cfg.Profile, _ = flags.GetString("profile")
	}
	if flags.Changed("dir") {
		cfg.Dir, _ = flags.GetString("dir")
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if cfg.Profile == "" {
		cfg.Profile = os.Getenv("AWS_PROFILE")
	}
	return cfg, nil
}

// resolveDir devolve o caminho absoluto do diretório de saída; vazio usa o diretório atual.
func resolveDir(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(dir)
}
