package faq

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func listingPage(marker string, items ...[2]string) string {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	if marker != "" {
		fmt.Fprintf(&sb, `<span class="AllNum">%s</span>`, marker)
	}
	sb.WriteString(`<ul class="FAQResultList">`)
	for _, item := range items {
		fmt.Fprintf(&sb, `<li class="FAQResultList_item">
			<div class="QuestionArea"><div class="BodyArea">%s</div></div>
			<div class="AnswerArea"><div class="BodyArea">%s</div></div>
		</li>`, item[0], item[1])
	}
	sb.WriteString("</ul></body></html>")
	return sb.String()
}

type fakeListing struct {
	mu    sync.Mutex
	pages map[string]string
	calls map[string]int
}

func newFakeListing(pages map[string]string) *fakeListing {
	return &fakeListing{pages: pages, calls: map[string]int{}}
}

func (f *fakeListing) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	page := r.URL.Query().Get("page")
	f.calls[page]++

	body, ok := f.pages[page]
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Write([]byte(body))
}

func (f *fakeListing) callCount(page string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[page]
}

func TestScrape(t *testing.T) {
	listing := newFakeListing(map[string]string{
		"1": listingPage("1/3",
			[2]string{"Question A", "Answer A"},
			[2]string{"Question B", "Answer B"},
		),
		"2": listingPage("2/3", [2]string{"Question C", "Answer C"}),
		"3": listingPage("3/3"),
	})
	server := httptest.NewServer(listing)
	defer server.Close()

	client := NewClient(testClientOptions(server.URL))
	records, err := Scrape(context.Background(), client)
	require.NoError(t, err)

	require.Len(t, records, 3)
	require.True(t, slices.IsSortedFunc(records, func(a, b Record) int {
		return strings.Compare(a.QuestionHash, b.QuestionHash)
	}))

	questions := make([]string, len(records))
	for i, r := range records {
		questions[i] = r.Question
	}
	require.ElementsMatch(t, []string{"Question A", "Question B", "Question C"}, questions)

	// page 1 markup is reused for extraction, never fetched twice
	require.Equal(t, 1, listing.callCount("1"))
	require.Equal(t, 1, listing.callCount("2"))
	require.Equal(t, 1, listing.callCount("3"))
}

func TestScrapeMissingPageCountIsFatal(t *testing.T) {
	listing := newFakeListing(map[string]string{
		"1": listingPage("", [2]string{"Question A", "Answer A"}),
		"2": listingPage("2/2", [2]string{"Question B", "Answer B"}),
	})
	server := httptest.NewServer(listing)
	defer server.Close()

	client := NewClient(testClientOptions(server.URL))
	records, err := Scrape(context.Background(), client)
	require.ErrorIs(t, err, ErrPageCountUnavailable)
	require.Nil(t, records)

	// the failure happens before any page 2+ fetch is attempted
	require.Equal(t, 0, listing.callCount("2"))
}

func TestScrapeAbortsOnPageFailure(t *testing.T) {
	listing := newFakeListing(map[string]string{
		"1": listingPage("1/3", [2]string{"Question A", "Answer A"}),
		"3": listingPage("3/3", [2]string{"Question C", "Answer C"}),
	})
	server := httptest.NewServer(listing)
	defer server.Close()

	client := NewClient(testClientOptions(server.URL))
	records, err := Scrape(context.Background(), client)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, 2, fetchErr.Page)
	require.Nil(t, records)

	// the sweep stops at the failing page
	require.Equal(t, 0, listing.callCount("3"))
}

func TestScrapeDuplicateQuestionsKeepAllOccurrences(t *testing.T) {
	listing := newFakeListing(map[string]string{
		"1": listingPage("1/2", [2]string{"Question A", "Answer A"}),
		"2": listingPage("2/2", [2]string{"Question A", "Answer A2"}),
	})
	server := httptest.NewServer(listing)
	defer server.Close()

	client := NewClient(testClientOptions(server.URL))
	records, err := Scrape(context.Background(), client)
	require.NoError(t, err)

	require.Len(t, records, 2)
	require.Equal(t, records[0].QuestionHash, records[1].QuestionHash)
	// stable sort keeps extraction order for equal hashes
	require.Equal(t, "Answer A", records[0].Answer)
	require.Equal(t, "Answer A2", records[1].Answer)
}
