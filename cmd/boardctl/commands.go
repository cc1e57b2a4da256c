package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"watches-backend/pkg/kanban"

	"github.com/spf13/cobra"
)

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the token in the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = opts.cfg.Email
			}
			if password == "" {
				password = os.Getenv("BOARDCTL_PASSWORD")
			}
			if email == "" || password == "" {
				return errors.New("--email and --password (or BOARDCTL_PASSWORD) are required")
			}

			c := opts.client()
			token, err := c.Login(commandContext(cmd), email, password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}

			cfg := opts.cfg
			cfg.Email = email
			cfg.Token = token
			if err := saveConfig(opts.configPath, cfg); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			fmt.Fprintf(out(cmd), "Logged in as %s\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func newBoardCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Print the board columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireToken(); err != nil {
				return err
			}
			rec := opts.reconciler(opts.client())
			if err := rec.Load(commandContext(cmd)); err != nil {
				return fmt.Errorf("load board: %w", err)
			}
			printBoard(out(cmd), rec.State())
			return nil
		},
	}
}

func newMoveCmd(opts *rootOptions) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "move <order-id> <status>",
		Short: "Move an order to another column and wait for the server",
		Long: `Moves the order into the given column at --index (default: top).
Exits non-zero when the server rejects the move and the board is rolled back.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireToken(); err != nil {
				return err
			}
			dst, ok := kanban.ParseStatus(args[1])
			if !ok {
				return fmt.Errorf("unknown column %q (want one of %s)", args[1], columnNames())
			}

			ctx := commandContext(cmd)
			rec := opts.reconciler(opts.client())
			if err := rec.Load(ctx); err != nil {
				return fmt.Errorf("load board: %w", err)
			}

			src, _, found := rec.State().Find(args[0])
			if !found {
				return fmt.Errorf("order %s is not on the board", args[0])
			}

			pm, err := rec.Move(ctx, args[0], src, dst, index)
			if err != nil {
				return err
			}
			moveErr := pm.Wait(ctx)
			printBoard(out(cmd), rec.State())
			if moveErr != nil {
				return fmt.Errorf("move rolled back: %w", moveErr)
			}
			fmt.Fprintf(out(cmd), "Moved %s: %s -> %s\n", args[0], src, dst)
			return nil
		},
	}
	cmd.Flags().IntVar(&index, "index", 0, "Position in the destination column")
	return cmd
}

func columnNames() string {
	names := make([]string, len(kanban.Statuses))
	for i, s := range kanban.Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func cardLabel(c kanban.Card) string {
	if s, ok := summaryOf(c); ok {
		return fmt.Sprintf("%s  %s  %s", s.OrderNumber, s.CustomerName, money(s.TotalAmount))
	}
	return c.ID
}

func money(v float64) string {
	whole := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, frac, _ := strings.Cut(whole, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 && intPart[i-1] != '-' {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return "$" + b.String() + "." + frac
}
