package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/designlint/designlint/internal/domain"
)

const configFileName = ".designlint.yaml"

func newInitCmd() *cobra.Command {
	var (
		radii []float64
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .designlint.yaml configuration file",
		Long:  "Create a .designlint.yaml with the default radius scale and every rule enabled.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, configFileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", configFileName)
				}
			}

			cfg := domain.DefaultConfig()
			if len(radii) > 0 {
				cfg.AllowedRadii = radii
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := os.WriteFile(dest, []byte(generateConfig(cfg)), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configFileName)
			return nil
		},
	}

	cmd.Flags().Float64SliceVar(&radii, "radii", nil, "Allowed corner radii (default 0,2,4,8,16)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .designlint.yaml")

	return cmd
}

func generateConfig(cfg domain.Config) string {
	values := make([]string, 0, len(cfg.AllowedRadii))
	for _, r := range cfg.AllowedRadii {
		values = append(values, strconv.FormatFloat(r, 'f', -1, 64))
	}

	var b strings.Builder
	b.WriteString("# designlint configuration\n\n")
	fmt.Fprintf(&b, "allowed_radii: [%s]\n\n", strings.Join(values, ", "))
	b.WriteString("# disabled_rules:\n")
	for _, c := range domain.ValidCategories {
		fmt.Fprintf(&b, "#   - %s\n", c)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "storage_key: %s\n", cfg.StorageKey)
	fmt.Fprintf(&b, "storage_dir: %s\n\n", cfg.StorageDir)
	b.WriteString("# isolate_sibling_children: false\n")
	b.WriteString("# log_level: info\n")
	b.WriteString("# log_format: console\n")
	return b.String()
}
