package faq

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"faqwatch/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

func ParseDocument(markup []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(markup))
}

// TotalPages reads the "current/total" pagination marker present on the
// first listing page. The marker carries text like "1/57", the field
// after the last slash is the page count.
func TotalPages(doc *goquery.Document) (int, error) {
	sel := doc.Find(".AllNum").First()
	if sel.Length() == 0 {
		return 0, fmt.Errorf("%w: no pagination marker element", ErrPageCountUnavailable)
	}

	text := strings.TrimSpace(sel.Text())
	fields := strings.Split(text, "/")
	total, err := strconv.Atoi(strings.TrimSpace(fields[len(fields)-1]))
	if err != nil || total < 1 {
		return 0, fmt.Errorf("%w: marker text %q", ErrPageCountUnavailable, text)
	}
	return total, nil
}

// Items extracts all question/answer records from one listing page. A
// page without items is valid and yields nothing. A malformed item is
// skipped with a warning, it never aborts the page.
func Items(ctx context.Context, doc *goquery.Document) []Record {
	var records []Record
	doc.Find(".FAQResultList_item").Each(func(i int, item *goquery.Selection) {
		question := item.Find(".QuestionArea .BodyArea").First()
		answer := item.Find(".AnswerArea .BodyArea").First()
		if question.Length() == 0 || answer.Length() == 0 {
			slog.WarnContext(ctx, "skipping malformed faq item", "item", i+1)
			return
		}

		records = append(records, NewRecord(
			htmlutil.InlineText(question.Nodes[0]),
			htmlutil.BlockText(answer.Nodes[0]),
		))
	})
	return records
}
