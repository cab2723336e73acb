// Command feedmerge fetches the configured RSS feeds, saves the raw documents and writes all their items into a
// single JSON document.
package main

import (
	"fmt"
	"os"
	"time"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KonishchevDmitry/feedmerge/internal/aggregator"
	"github.com/KonishchevDmitry/feedmerge/pkg/extract"
	"github.com/KonishchevDmitry/feedmerge/pkg/feed"
	"github.com/KonishchevDmitry/feedmerge/pkg/fetch"
)

type config struct {
	dir          string
	output       string
	keepGoing    bool
	concurrency  int
	timeout      time.Duration
	elementStack bool
	metricsFile  string
	debug        bool
}

func main() {
	if err := newCommand(feed.DefaultSources).Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand(sources []feed.Source) *cobra.Command {
	var config config

	command := &cobra.Command{
		Use:   "feedmerge",
		Short: "Merge RSS feeds into a single JSON document",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			// Command line errors are printed by cobra, the rest are logged
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			logger, err := newLogger(config.debug)
			if err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Failed to initialize the logger: %s.\n", err)
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))

			if err := run(cmd, sources, config); err != nil {
				logging.L(cmd.Context()).Errorf("Feed aggregation has failed: %s.", err)
				return err
			}

			return nil
		},
	}

	flags := command.Flags()
	flags.StringVar(&config.dir, "dir", ".", "directory for the raw feed documents and the combined output")
	flags.StringVar(&config.output, "output", aggregator.DefaultOutput, "combined output file name")
	flags.BoolVar(&config.keepGoing, "keep-going", false, "skip failed feeds instead of aborting the run")
	flags.IntVar(&config.concurrency, "concurrency", aggregator.DefaultConcurrency, "number of feeds processed simultaneously")
	flags.DurationVar(&config.timeout, "timeout", time.Minute, "feed fetch timeout")
	flags.BoolVar(&config.elementStack, "element-stack", false, "attribute text to the innermost open element")
	flags.StringVar(&config.metricsFile, "metrics-file", "", "write metrics to the file in Prometheus text format")
	flags.BoolVar(&config.debug, "debug", false, "enable debug logging")

	return command
}

func run(cmd *cobra.Command, sources []feed.Source, config config) error {
	ctx := cmd.Context()

	if config.concurrency < 1 {
		return fmt.Errorf("invalid concurrency: %d", config.concurrency)
	} else if config.timeout <= 0 {
		return fmt.Errorf("invalid timeout: %s", config.timeout)
	}

	registry, err := feed.MakeRegistry(sources...)
	if err != nil {
		return err
	}

	options := []aggregator.Option{
		aggregator.WithDir(config.dir),
		aggregator.WithOutput(config.output),
		aggregator.WithConcurrency(config.concurrency),
		aggregator.WithFetchOptions(fetch.WithTimeout(config.timeout)),
	}
	if config.keepGoing {
		options = append(options, aggregator.WithMode(aggregator.ModeContain))
	}
	if config.elementStack {
		options = append(options, aggregator.WithExtractOptions(extract.WithElementStack()))
	}

	aggregator := aggregator.New(registry, options...)

	_, err = aggregator.Run(ctx)

	if config.metricsFile != "" {
		metrics := prometheus.NewRegistry()
		metrics.MustRegister(aggregator)

		if metricsErr := prometheus.WriteToTextfile(config.metricsFile, metrics); metricsErr != nil {
			logging.L(ctx).Errorf("Failed to save metrics to %s: %s.", config.metricsFile, metricsErr)
		}
	}

	return err
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	config := zap.NewDevelopmentConfig()
	config.DisableCaller = true
	config.DisableStacktrace = true
	if !debug {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}
