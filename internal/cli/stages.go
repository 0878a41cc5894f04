package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vvka-141/retailsql/internal/analytics"
	"github.com/vvka-141/retailsql/internal/db"
	"github.com/vvka-141/retailsql/internal/loader"
	"github.com/vvka-141/retailsql/internal/logging"
	"github.com/vvka-141/retailsql/internal/report"
	"github.com/vvka-141/retailsql/internal/visual"
	"github.com/vvka-141/retailsql/pkg/retailsql"
)

// stage is one step of the pipeline. Stages run sequentially and the first
// error stops the command.
type stage func(ctx context.Context, s *settings, p *report.Printer, logger retailsql.Logger) error

// runStages resolves settings for cmd and executes stages under a context
// bounded by the configured timeout and cancelled on SIGINT/SIGTERM.
func runStages(cmd *cobra.Command, args []string, stages ...stage) error {
	s, err := resolveSettings(cmd, args)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), s.Verbose)
	printer := report.NewPrinter(cmd.OutOrStdout(), report.DetectStyled())
	logSettingsVerbose(logger, s)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, s.Timeout)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(cmd.ErrOrStderr(), "\n[INTERRUPT] Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	for _, st := range stages {
		if err := st(ctx, s, printer, logger); err != nil {
			return err
		}
	}
	return nil
}

func loadStage(ctx context.Context, s *settings, p *report.Printer, logger retailsql.Logger) error {
	rep, err := loader.Load(ctx, retailsql.LoadConfig{
		Store:   s.Store,
		CSVPath: s.CSVPath,
	}, logger)
	if err != nil {
		return err
	}
	rep.Print(p)
	return nil
}

func queryStage(ctx context.Context, s *settings, p *report.Printer, logger retailsql.Logger) error {
	store, err := db.Open(ctx, s.Store, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := analytics.NewRunner(store, p, logger).Run(ctx)
	if err != nil {
		return err
	}

	headline, err := analytics.Insights(results)
	if err != nil {
		return err
	}
	headline.Print(p)
	return nil
}

func visualizeStage(ctx context.Context, s *settings, p *report.Printer, logger retailsql.Logger) error {
	store, err := db.Open(ctx, s.Store, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	return visual.Run(ctx, store, s.Output, p, logger)
}
