package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"faqwatch/lib/notify"
	"faqwatch/lib/serviceutil"
)

type Config struct {
	// BaseUrl is the FAQ listing endpoint without query parameters.
	BaseUrl      string `json:"base_url"`
	SnapshotFile string `json:"snapshot_file"`
	ReportFile   string `json:"report_file"`

	MaxRetries     int    `json:"max_retries"`
	RetryDelay     string `json:"retry_delay"`
	RequestTimeout string `json:"request_timeout"`
	DelayMin       string `json:"delay_min"`
	DelayMax       string `json:"delay_max"`

	LogLevel string            `json:"log_level"`
	Smtp     notify.SmtpConfig `json:"smtp"`
}

func (c *Config) applyDefaults() {
	if c.BaseUrl == "" {
		c.BaseUrl = "https://www.pokemon-card.com/rules/faq/search.php"
	}
	if c.SnapshotFile == "" {
		c.SnapshotFile = "faq_data.json"
	}
	if c.ReportFile == "" {
		c.ReportFile = "diff_report.json"
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.RetryDelay == "" {
		c.RetryDelay = "5s"
	}
	if c.RequestTimeout == "" {
		c.RequestTimeout = "30s"
	}
	if c.DelayMin == "" {
		c.DelayMin = "500ms"
	}
	if c.DelayMax == "" {
		c.DelayMax = "2s"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) duration(field, value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		serviceutil.Fatal(fmt.Sprintf("invalid duration for %s in config", field), err)
	}
	return d
}

func setupLogging(level string) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: l,
	})))
}
