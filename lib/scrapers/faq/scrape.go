package faq

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Scrape drives the full pagination sweep. It fetches the first page,
// reads the total page count from it, then walks the remaining pages
// strictly one at a time. Page 1 reuses the already fetched markup.
//
// The returned records are sorted ascending by question hash so the
// output is deterministic regardless of page or item iteration order.
// Any fetch failure aborts the whole sweep, no partial result is
// returned.
func Scrape(ctx context.Context, client *Client) ([]Record, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	first, err := client.FetchPage(ctx, 1)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch first page")
		return nil, err
	}
	doc, err := ParseDocument(first)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse first page")
		return nil, err
	}

	totalPages, err := TotalPages(doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to determine page count")
		return nil, err
	}
	span.SetAttributes(attribute.Int("total_pages", totalPages))
	slog.InfoContext(ctx, "determined page count", "total_pages", totalPages)

	var records []Record
	for page := 1; page <= totalPages; page++ {
		pageDoc := doc
		if page > 1 {
			body, err := client.FetchPage(ctx, page)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed to fetch page")
				return nil, err
			}
			pageDoc, err = ParseDocument(body)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed to parse page")
				return nil, err
			}
		}

		items := Items(ctx, pageDoc)
		slog.InfoContext(ctx, "extracted page", "page", page, "items", len(items))
		records = append(records, items...)
	}

	// duplicate questions hash identically, a stable sort keeps their
	// extraction order
	slices.SortStableFunc(records, func(a, b Record) int {
		return strings.Compare(a.QuestionHash, b.QuestionHash)
	})

	slog.InfoContext(ctx, "scrape complete", "records", len(records))
	return records, nil
}
