package commands

import (
	"os"

	"faqwatch/lib/snapshot"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func renderSummary(report snapshot.Report) {
	t := newTable()
	t.AppendHeader(table.Row{"", "count"})
	t.AppendRow(table.Row{"old records", report.Summary.TotalOld})
	t.AppendRow(table.Row{"new records", report.Summary.TotalNew})
	t.AppendRow(table.Row{"added", report.Summary.Added})
	t.AppendRow(table.Row{"removed", report.Summary.Removed})
	t.AppendRow(table.Row{"modified", report.Summary.Modified})
	t.Render()
}

func renderSamples(report snapshot.Report) {
	if len(report.Added)+len(report.Removed)+len(report.Modified) == 0 {
		return
	}

	t := newTable()
	t.AppendHeader(table.Row{"change", "hash", "question"})
	for _, r := range report.Added {
		t.AppendRow(table.Row{"+", shortHash(r.QuestionHash), r.Question})
	}
	for _, r := range report.Removed {
		t.AppendRow(table.Row{"-", shortHash(r.QuestionHash), r.Question})
	}
	for _, m := range report.Modified {
		t.AppendRow(table.Row{"~", shortHash(m.QuestionHash), m.Question})
	}
	t.Render()
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
