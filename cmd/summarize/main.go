// ABOUTME: Main entry point for the news summarizer command
// ABOUTME: Parses flags, wires the pipeline and exits non-zero on any failure

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"news-summarizer/core/domain"
)

// options holds the command line flags. Flags override environment values.
type options struct {
	baseURL         string
	date            string
	dateFormat      string
	summarizerModel string
	sentimentModel  string
	device          string
	workers         int
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize a news site's articles for one publication date",
		Long: `Discovers every article a news site published on the given date through
its robots.txt and sitemaps, extracts the article text, summarizes it, scores its
sentiment and writes one record per article to the configured store.`,
		Example:       "  summarize --base-url https://example.com --date 2023-08-13",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.baseURL, "base-url", "", "The base url of the news outlet")
	flags.StringVar(&opts.date, "date", "", "The date of news publication")
	flags.StringVar(&opts.dateFormat, "date-format", "%Y-%m-%d", "Date format, strftime or Go layout")
	flags.StringVar(&opts.summarizerModel, "summarizer-model", "", "Summarizer model name")
	flags.StringVar(&opts.sentimentModel, "sentiment-model", "", "Sentiment analyzer model name")
	flags.StringVar(&opts.device, "device", "", "Device the models run on (cpu, cuda, mps)")
	flags.IntVar(&opts.workers, "workers", 0, "Number of analysis workers")
	_ = cmd.MarkFlagRequired("base-url")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	target, err := domain.NewCrawlTarget(opts.baseURL, opts.date, opts.dateFormat)
	if err != nil {
		return err
	}

	app, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	app.logger.Info("Starting run", map[string]interface{}{
		"base_url": target.Base(),
		"date":     target.DateString(),
		"analyzer": cfg.Analyzer.Type,
		"store":    cfg.Store.Type,
		"workers":  cfg.Crawl.Workers,
	})

	report, err := app.orchestrator.Summarize(ctx, target)
	if err != nil {
		app.logger.Error("Run failed", map[string]interface{}{
			"run_id": report.RunID,
			"error":  err.Error(),
		})
		return err
	}

	app.logger.Info("Run complete", map[string]interface{}{
		"run_id":     report.RunID,
		"path":       report.Path,
		"discovered": report.Discovered,
		"fetched":    report.Fetched,
		"summarized": report.Summarized,
		"degraded":   report.Degraded,
		"written":    report.Written,
	})
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
