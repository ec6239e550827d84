package notify

import (
	"testing"

	"faqwatch/lib/scrapers/faq"
	"faqwatch/lib/snapshot"

	"github.com/stretchr/testify/require"
)

func TestSmtpConfigEnabled(t *testing.T) {
	require.False(t, SmtpConfig{}.Enabled())
	require.False(t, SmtpConfig{Server: "smtp.example.com"}.Enabled())
	require.True(t, SmtpConfig{
		Server: "smtp.example.com",
		To:     []string{"ops@example.com"},
	}.Enabled())
}

func TestBuildBody(t *testing.T) {
	report := snapshot.Diff(
		[]faq.Record{
			faq.NewRecord("Old question", "Old answer"),
			faq.NewRecord("Changed question", "Before"),
		},
		[]faq.Record{
			faq.NewRecord("Changed question", "After"),
			faq.NewRecord("New question", "New answer"),
		},
	)

	body := BuildBody(report)
	require.Contains(t, body, "Records before: 2")
	require.Contains(t, body, "Records now:    2")
	require.Contains(t, body, "+ New question")
	require.Contains(t, body, "- Old question")
	require.Contains(t, body, "~ Changed question")
}

func TestBuildBodyOmittedNote(t *testing.T) {
	report := snapshot.Report{
		Summary: snapshot.Summary{TotalNew: 30, Added: 30},
		Added: []faq.Record{
			faq.NewRecord("only sample", "answer"),
		},
	}

	body := BuildBody(report)
	require.Contains(t, body, "Added (30):")
	require.Contains(t, body, "... and 29 more")
}
