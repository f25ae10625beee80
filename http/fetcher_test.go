package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mkowalik/docgram"
	docgramhttp "github.com/mkowalik/docgram/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body bytes from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.4 fake"))
		}))
		defer server.Close()

		fetcher := docgramhttp.NewFetcher()
		defer fetcher.Close()

		body, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4 fake"), body)
	})

	t.Run("non-2xx status is EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		fetcher := docgramhttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, docgram.EUNAVAILABLE, docgram.ErrorCode(err))
	})

	t.Run("transport error is EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		fetcher := docgramhttp.NewFetcher(docgramhttp.WithTimeout(50 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://127.0.0.1:1/unreachable")
		require.Error(t, err)
		assert.Equal(t, docgram.EUNAVAILABLE, docgram.ErrorCode(err))
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := docgramhttp.NewFetcher(docgramhttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("sends configured user agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
		}))
		defer server.Close()

		fetcher := docgramhttp.NewFetcher(docgramhttp.WithUserAgent("docgram-test/0.1"))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "docgram-test/0.1", gotUA)
	})
}

func TestFetcher_LastModified(t *testing.T) {
	t.Parallel()

	t.Run("returns header value", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodHead, r.Method)
			w.Header().Set("Last-Modified", "Wed, 02 Jul 2025 10:00:00 GMT")
		}))
		defer server.Close()

		fetcher := docgramhttp.NewFetcher()
		defer fetcher.Close()

		lm, err := fetcher.LastModified(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "Wed, 02 Jul 2025 10:00:00 GMT", lm)
	})

	t.Run("absent header returns empty string", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		fetcher := docgramhttp.NewFetcher()
		defer fetcher.Close()

		lm, err := fetcher.LastModified(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Empty(t, lm)
	})

	t.Run("failed HEAD returns empty string without error", func(t *testing.T) {
		t.Parallel()

		fetcher := docgramhttp.NewFetcher(docgramhttp.WithTimeout(50 * time.Millisecond))
		defer fetcher.Close()

		lm, err := fetcher.LastModified(context.Background(), "http://127.0.0.1:1/unreachable")
		require.NoError(t, err)
		assert.Empty(t, lm)
	})
}
