package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"watches-backend/internal/boardclient"
	"watches-backend/pkg/kanban"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	server     string
	token      string
	timeout    time.Duration
	verbose    bool

	cfg    cliConfig
	logger *log.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "boardctl",
		Short: "Inspect and move orders on the delivery board",
		Long: `boardctl talks to the watches order API.

Moves are applied to the local board immediately and rolled back if the
server rejects them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigPath(), "Config file")
	cmd.PersistentFlags().StringVar(&opts.server, "server", "", "API base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.token, "token", "", "Bearer token (overrides config)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "Remote move timeout (overrides config)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newLoginCmd(opts))
	cmd.AddCommand(newBoardCmd(opts))
	cmd.AddCommand(newMoveCmd(opts))
	cmd.AddCommand(newTUICmd(opts))
	return cmd
}

// resolve merges flags over the config file.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}
	if o.server != "" {
		cfg.Server = o.server
	}
	if o.token != "" {
		cfg.Token = o.token
	}
	if o.timeout > 0 {
		cfg.Timeout = o.timeout
	}
	if env := os.Getenv("BOARDCTL_TOKEN"); env != "" && o.token == "" {
		cfg.Token = env
	}
	o.cfg = cfg

	o.logger = log.New()
	o.logger.SetOutput(cmd.ErrOrStderr())
	o.logger.SetLevel(log.WarnLevel)
	if o.verbose {
		o.logger.SetLevel(log.DebugLevel)
	}
	return nil
}

func (o *rootOptions) client() *boardclient.Client {
	return boardclient.New(o.cfg.Server, boardclient.WithToken(o.cfg.Token))
}

func (o *rootOptions) reconciler(c *boardclient.Client, opts ...kanban.Option) *kanban.Reconciler {
	base := []kanban.Option{kanban.WithTimeout(o.cfg.Timeout), kanban.WithLogger(o.logger)}
	return kanban.NewReconciler(c, c, append(base, opts...)...)
}

func (o *rootOptions) requireToken() error {
	if o.cfg.Token == "" {
		return fmt.Errorf("not logged in: run boardctl login or pass --token")
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
