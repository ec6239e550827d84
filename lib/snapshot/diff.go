package snapshot

import (
	"fmt"
	"sort"

	"faqwatch/lib/scrapers/faq"
)

// SampleCap bounds the added/removed/modified lists embedded in a report.
// Summary counts always reflect the full sets.
const SampleCap = 10

type Summary struct {
	TotalOld int `json:"total_old"`
	TotalNew int `json:"total_new"`
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
}

// Modification pairs the two answers observed for one question across
// two snapshots.
type Modification struct {
	QuestionHash string `json:"question_hash"`
	Question     string `json:"question"`
	OldAnswer    string `json:"old_answer"`
	NewAnswer    string `json:"new_answer"`
}

type Report struct {
	Summary  Summary        `json:"summary"`
	Added    []faq.Record   `json:"added"`
	Removed  []faq.Record   `json:"removed"`
	Modified []Modification `json:"modified"`
}

// Diff classifies the records of two snapshots, keyed by question hash,
// into added, removed and modified sets. Sample lists are ordered by hash
// ascending and truncated to SampleCap entries.
func Diff(oldRecords, newRecords []faq.Record) Report {
	oldByHash := byHash(oldRecords)
	newByHash := byHash(newRecords)

	added := []faq.Record{}
	removed := []faq.Record{}
	modified := []Modification{}

	for _, h := range sortedHashes(newByHash) {
		if _, ok := oldByHash[h]; !ok {
			added = append(added, newByHash[h])
		}
	}
	for _, h := range sortedHashes(oldByHash) {
		if _, ok := newByHash[h]; !ok {
			removed = append(removed, oldByHash[h])
		}
	}
	for _, h := range sortedHashes(newByHash) {
		oldRecord, ok := oldByHash[h]
		if !ok {
			continue
		}
		newRecord := newByHash[h]
		if oldRecord.Answer != newRecord.Answer {
			modified = append(modified, Modification{
				QuestionHash: h,
				Question:     newRecord.Question,
				OldAnswer:    oldRecord.Answer,
				NewAnswer:    newRecord.Answer,
			})
		}
	}

	return Report{
		Summary: Summary{
			TotalOld: len(oldRecords),
			TotalNew: len(newRecords),
			Added:    len(added),
			Removed:  len(removed),
			Modified: len(modified),
		},
		Added:    truncate(added),
		Removed:  truncate(removed),
		Modified: truncate(modified),
	}
}

// WriteReport persists a report as an indented JSON object.
func WriteReport(path string, report Report) error {
	data, err := marshalIndent(report, "  ")
	if err != nil {
		return fmt.Errorf("encode diff report: %w", err)
	}
	return writeAtomic(path, data)
}

func byHash(records []faq.Record) map[string]faq.Record {
	m := make(map[string]faq.Record, len(records))
	for _, r := range records {
		m[r.QuestionHash] = r
	}
	return m
}

func sortedHashes(m map[string]faq.Record) []string {
	hashes := make([]string, 0, len(m))
	for h := range m {
		hashes = append(hashes, h)
	}
	sort.Strings(hashes)
	return hashes
}

func truncate[T any](s []T) []T {
	if len(s) > SampleCap {
		return s[:SampleCap]
	}
	return s
}
