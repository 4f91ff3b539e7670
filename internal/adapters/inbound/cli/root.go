package cli

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/designlint/designlint/internal/adapters/outbound/config"
	"github.com/designlint/designlint/internal/domain"
	"github.com/designlint/designlint/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	project string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "designlint",
		Short: "Find layers that skip your design system",
		Long:  "designlint checks exported design documents for fills, strokes, effects, text, and corner radii that are not bound to shared styles.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.project, "project", ".", "Project directory holding .designlint.yaml and stored state")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newLintCmd(opts))
	cmd.AddCommand(newIgnoreCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// loadConfig reads the project configuration and sets up logging from it.
func (o *globalOptions) loadConfig() (domain.Config, error) {
	absPath, err := filepath.Abs(o.project)
	if err != nil {
		return domain.Config{}, fmt.Errorf("resolving project path: %w", err)
	}

	cfg, err := config.New().Load(absPath)
	if err != nil {
		return domain.Config{}, err
	}

	logger.Initialize(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	defer func() { _ = logger.Sync() }()
	return newRootCmd().Execute()
}
