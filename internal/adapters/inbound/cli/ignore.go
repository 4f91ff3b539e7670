package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/designlint/designlint/internal/adapters/outbound/document"
	"github.com/designlint/designlint/internal/adapters/outbound/storage"
	"github.com/designlint/designlint/internal/adapters/outbound/tui"
	"github.com/designlint/designlint/internal/application"
	"github.com/designlint/designlint/internal/domain"
	"github.com/designlint/designlint/internal/logger"
)

func newIgnoreCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ignore",
		Short: "Manage ignored errors",
		Long:  "Ignored errors are stored per project as <layerId>:<category> keys and hidden from lint output.",
	}
	cmd.AddCommand(newIgnoreAddCmd(opts))
	cmd.AddCommand(newIgnoreListCmd(opts))
	cmd.AddCommand(newIgnoreClearCmd(opts))
	return cmd
}

// ignoreStore bundles the stored set with a controller that writes it back
// through the storage commands.
type ignoreStore struct {
	cfg   domain.Config
	store *storage.Store
	host  *document.Document
	ctrl  *application.Controller
	out   *application.Collector
}

func openIgnoreStore(opts *globalOptions) (*ignoreStore, error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return nil, err
	}
	host, err := document.New(document.File{Name: "settings"}, document.WithLogger(logger.For(logger.ComponentDocument)))
	if err != nil {
		return nil, err
	}
	s := &ignoreStore{cfg: cfg, store: storage.New(cfg.StorageDir), host: host, out: &application.Collector{}}
	s.ctrl = application.NewController(host, s.store, s.out, cfg, application.WithLogger(logger.For(logger.ComponentCLI)))
	return s, nil
}

func (s *ignoreStore) load(ctx context.Context) (domain.IgnoreSet, error) {
	stored, _, err := s.store.Get(ctx, s.cfg.StorageKey)
	if err != nil {
		return nil, err
	}
	return domain.ParseIgnoreSet(stored)
}

func newIgnoreAddCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <layerId:category>...",
		Short: "Ignore diagnostics for the given layers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, key := range args {
				if _, _, err := domain.ParseIgnoreKey(key); err != nil {
					return err
				}
			}

			s, err := openIgnoreStore(opts)
			if err != nil {
				return err
			}
			set, err := s.load(cmd.Context())
			if err != nil {
				return err
			}
			for _, key := range args {
				set.Add(key)
			}

			err = s.ctrl.Handle(cmd.Context(), domain.Command{
				Type:         domain.CommandUpdateStorage,
				StorageArray: set.Encode(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ignoring %d errors\n", len(set))
			return nil
		},
	}
}

func newIgnoreListCmd(opts *globalOptions) *cobra.Command {
	var docPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ignored errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openIgnoreStore(opts)
			if err != nil {
				return err
			}
			set, err := s.load(cmd.Context())
			if err != nil {
				return err
			}

			var names map[string]string
			if docPath != "" {
				doc, err := document.Load(docPath)
				if err != nil {
					return err
				}
				names = make(map[string]string)
				for _, key := range set.Keys() {
					id, _, err := domain.ParseIgnoreKey(key)
					if err != nil {
						continue
					}
					if n, err := doc.NodeByID(id); err == nil {
						names[id] = n.Name
					}
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderIgnored(set, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&docPath, "document", "", "Document used to show layer names")

	return cmd
}

func newIgnoreClearCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget every ignored error",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openIgnoreStore(opts)
			if err != nil {
				return err
			}

			err = s.ctrl.Handle(cmd.Context(), domain.Command{
				Type:         domain.CommandUpdateStorageFromSettings,
				StorageArray: domain.IgnoreSet{}.Encode(),
			})
			if err != nil {
				return err
			}
			for _, n := range s.host.Notifications() {
				fmt.Fprintln(cmd.OutOrStdout(), n.Message)
			}
			return nil
		},
	}
}
