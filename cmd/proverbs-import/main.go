// Package main is the bulk import tool for proverb seed files.
//
//	proverbs-import --file seed.yaml [--dry-run] [--concurrency 4]
//
// Every record is checked with the same rules the API applies. Valid records
// are stored; the tool exits non-zero when any record fails.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/proverb-service/internal/adapters/seedfile"
	"github.com/jsamuelsen/proverb-service/internal/app"
	"github.com/jsamuelsen/proverb-service/internal/bootstrap"
	"github.com/jsamuelsen/proverb-service/internal/domain"
)

// errRecordsFailed signals a partial import; details were already printed.
var errRecordsFailed = errors.New("some records failed")

type options struct {
	file        string
	dryRun      bool
	concurrency int
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errRecordsFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}

		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "proverbs-import",
		Short:         "Validate and import proverb records from a YAML or JSON file",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "seed file to import (YAML or JSON)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "validate records without storing them")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", 4, "maximum concurrent inserts")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func run(ctx context.Context, opts *options, out io.Writer) error {
	records, err := seedfile.ReadFile(opts.file)
	if err != nil {
		return err
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	if opts.dryRun {
		failures := validate(records, cfg.Proverbs.StrictSituations)
		return report(out, len(records)-len(failures), failures, "valid")
	}

	logger := bootstrap.NewLogger(cfg)

	stores, err := bootstrap.OpenStores(ctx, cfg, logger, prometheus.NewRegistry())
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := stores.Close(context.WithoutCancel(ctx)); closeErr != nil {
			logger.Error("closing stores", slog.Any("error", closeErr))
		}
	}()

	service := app.NewProverbService(stores.ServiceConfig(cfg, logger))

	result := service.Import(ctx, records, opts.concurrency)

	return report(out, len(result.Created), result.Failures, "imported")
}

// validate applies the create rules to every record without storing it.
func validate(records []domain.ProverbDetails, strictSituations bool) map[int]error {
	failures := map[int]error{}

	for i := range records {
		details := records[i]
		details.Normalize()

		if err := details.Validate(strictSituations); err != nil {
			failures[i] = err
		}
	}

	return failures
}

// report prints the outcome, one line per failed record in input order.
func report(out io.Writer, ok int, failures map[int]error, verb string) error {
	fmt.Fprintf(out, "%d records %s, %d failed\n", ok, verb, len(failures))

	indexes := make([]int, 0, len(failures))
	for i := range failures {
		indexes = append(indexes, i)
	}

	slices.Sort(indexes)

	for _, i := range indexes {
		fmt.Fprintf(out, "  record %d: %v\n", i+1, failures[i])
	}

	if len(failures) > 0 {
		return errRecordsFailed
	}

	return nil
}
