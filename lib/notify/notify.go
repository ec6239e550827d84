// Package notify mails change summaries to interested operators.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"faqwatch/lib/snapshot"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("notify")

type SmtpConfig struct {
	Server       string   `json:"server"`
	Port         int      `json:"port"`
	EmailAddress string   `json:"email_address"`
	Password     string   `json:"password"`
	To           []string `json:"to"`
}

func (c SmtpConfig) Enabled() bool {
	return c.Server != "" && len(c.To) > 0
}

// SendReport emails a plain text rendering of the change report.
func SendReport(ctx context.Context, config SmtpConfig, report snapshot.Report) error {
	_, span := tracer.Start(ctx, "SendReport")
	defer span.End()

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("faqwatch <%s>", config.EmailAddress)
	mail.To = config.To
	mail.Subject = fmt.Sprintf(
		"FAQ changes: %d added, %d removed, %d modified",
		report.Summary.Added, report.Summary.Removed, report.Summary.Modified,
	)
	mail.Text = []byte(BuildBody(report))

	addr := fmt.Sprintf("%s:%d", config.Server, config.Port)
	err := mail.Send(addr, smtp.PlainAuth("", config.EmailAddress, config.Password, config.Server))
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(addr, nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return err
	}

	return nil
}

// BuildBody renders a report as the plain text email body. Sample lists
// in the report are already capped, a trailing note calls out how many
// entries were omitted.
func BuildBody(report snapshot.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "The FAQ listing changed since the last run.\n\n")
	fmt.Fprintf(&sb, "Records before: %d\n", report.Summary.TotalOld)
	fmt.Fprintf(&sb, "Records now:    %d\n\n", report.Summary.TotalNew)

	if len(report.Added) > 0 {
		fmt.Fprintf(&sb, "Added (%d):\n", report.Summary.Added)
		for _, r := range report.Added {
			fmt.Fprintf(&sb, "  + %s\n", r.Question)
		}
		writeOmitted(&sb, report.Summary.Added, len(report.Added))
		sb.WriteString("\n")
	}
	if len(report.Removed) > 0 {
		fmt.Fprintf(&sb, "Removed (%d):\n", report.Summary.Removed)
		for _, r := range report.Removed {
			fmt.Fprintf(&sb, "  - %s\n", r.Question)
		}
		writeOmitted(&sb, report.Summary.Removed, len(report.Removed))
		sb.WriteString("\n")
	}
	if len(report.Modified) > 0 {
		fmt.Fprintf(&sb, "Modified answers (%d):\n", report.Summary.Modified)
		for _, m := range report.Modified {
			fmt.Fprintf(&sb, "  ~ %s\n", m.Question)
		}
		writeOmitted(&sb, report.Summary.Modified, len(report.Modified))
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeOmitted(sb *strings.Builder, total, listed int) {
	if total > listed {
		fmt.Fprintf(sb, "  ... and %d more\n", total-listed)
	}
}
