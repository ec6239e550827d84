package commands

import (
	"context"
	"log/slog"
	"time"

	"faqwatch/lib/configutil"
	"faqwatch/lib/notify"
	"faqwatch/lib/scrapers/faq"
	"faqwatch/lib/serviceutil"
	"faqwatch/lib/snapshot"
	"faqwatch/lib/telemetry"

	"github.com/spf13/cobra"
)

var runConfigFile *string

func init() {
	runConfigFile = runCmd.Flags().String("config", "faqwatch.json5", "The configuration file to read.")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--config <path/to/faqwatch.json5>]",
	Short: "Runs one full fetch, diff and persist sweep against the FAQ listing.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[Config](*runConfigFile)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		cfg.applyDefaults()
		setupLogging(cfg.LogLevel)

		ctx := cmd.Context()
		tel, err := telemetry.SetupFromEnv(ctx, "faqwatch")
		if err != nil {
			serviceutil.Fatal("failed to setup telemetry", err)
		}
		defer tel.Shutdown(context.Background())
		telemetry.InstrumentPerfStats(ctx)

		previous := snapshot.Load(cfg.SnapshotFile)

		client := faq.NewClient(faq.ClientOptions{
			BaseUrl:        cfg.BaseUrl,
			RequestTimeout: cfg.duration("request_timeout", cfg.RequestTimeout),
			MaxRetries:     cfg.MaxRetries,
			RetryDelay:     cfg.duration("retry_delay", cfg.RetryDelay),
			DelayMin:       cfg.duration("delay_min", cfg.DelayMin),
			DelayMax:       cfg.duration("delay_max", cfg.DelayMax),
		})

		t1 := time.Now()
		records, err := faq.Scrape(ctx, client)
		if err != nil {
			serviceutil.Fatal("scrape failed", err)
		}
		slog.Info("scraping time", "seconds", time.Since(t1).Seconds())

		report := snapshot.Diff(previous, records)
		renderSummary(report)

		if err := snapshot.WriteReport(cfg.ReportFile, report); err != nil {
			slog.Error("failed to write diff report", "path", cfg.ReportFile, "err", err)
		}
		if err := snapshot.Save(cfg.SnapshotFile, records); err != nil {
			serviceutil.Fatal("failed to write snapshot", err)
		}
		slog.Info("snapshot written", "path", cfg.SnapshotFile, "records", len(records))

		changed := report.Summary.Added > 0 ||
			report.Summary.Removed > 0 ||
			report.Summary.Modified > 0
		if !changed {
			slog.Info("no changes detected")
			return
		}
		slog.Info("changes detected",
			"added", report.Summary.Added,
			"removed", report.Summary.Removed,
			"modified", report.Summary.Modified,
		)

		if cfg.Smtp.Enabled() {
			// the snapshot is already persisted, a mail failure does not
			// fail the run
			if err := notify.SendReport(ctx, cfg.Smtp, report); err != nil {
				slog.Error("failed to send notification mail", "err", err)
			}
		}
	},
}
