package faq

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"faqwatch/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func testClientOptions(baseUrl string) ClientOptions {
	return ClientOptions{
		BaseUrl:        baseUrl,
		RequestTimeout: time.Second * 5,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
		DelayMin:       0,
		DelayMax:       time.Millisecond,
	}
}

func TestFetchPage(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/faq")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1", r.URL.Query().Get("ses"))
		require.Equal(t, "4", r.URL.Query().Get("page"))
		w.Write([]byte("<html>page four</html>"))
	}))
	defer server.Close()

	client := NewClient(testClientOptions(server.URL))
	body, err := client.FetchPage(context.Background(), 4)
	require.NoError(t, err)
	require.Equal(t, "<html>page four</html>", string(body))
}

func TestFetchPageRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient(testClientOptions(server.URL))
	body, err := client.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))
	require.Equal(t, int32(3), calls.Load())
}

func TestFetchPageExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(testClientOptions(server.URL))
	_, err := client.FetchPage(context.Background(), 7)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, 7, fetchErr.Page)
	require.Error(t, fetchErr.Unwrap())

	// one initial attempt plus MaxRetries additional ones
	require.Equal(t, int32(3), calls.Load())
}

func TestFetchPageConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	opts := testClientOptions(server.URL)
	opts.MaxRetries = 1
	client := NewClient(opts)

	_, err := client.FetchPage(context.Background(), 1)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, 1, fetchErr.Page)
}
