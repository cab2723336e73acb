package fetch_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/KonishchevDmitry/feedmerge/internal/util"
	"github.com/KonishchevDmitry/feedmerge/pkg/feed"
	"github.com/KonishchevDmitry/feedmerge/pkg/fetch"
	"github.com/KonishchevDmitry/feedmerge/pkg/test/testutil"
)

func TestDocument(t *testing.T) {
	t.Parallel()

	userAgents := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgents <- r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<rss></rss>"))
	}))
	defer server.Close()

	var observations int
	ctx := fetch.WithContext(testutil.Context(t), prometheus.ObserverFunc(func(float64) {
		observations++
	}))

	data, err := fetch.Document(ctx, feed.MustURL(server.URL), fetch.WithUserAgent("test-agent"))
	require.NoError(t, err)
	require.Equal(t, "<rss></rss>", string(data))
	require.Equal(t, "test-agent", <-userAgents)
	require.Equal(t, 1, observations)
}

func TestDocumentIgnoresStatus(t *testing.T) {
	t.Parallel()

	server := testutil.NewServer(t, map[string]testutil.Response{
		"/gone": {Status: http.StatusGone, Body: "gone"},
	})
	ctx := fetch.WithContext(testutil.Context(t), prometheus.NewHistogram(prometheus.HistogramOpts{}))

	data, err := fetch.Document(ctx, server.URL("/gone"))
	require.NoError(t, err)
	require.Equal(t, "gone", string(data))

	data, err = fetch.Document(ctx, server.URL("/missing"))
	require.NoError(t, err)
	require.Contains(t, string(data), "not found")
}

func TestDocumentWithoutContext(t *testing.T) {
	t.Parallel()

	server := testutil.NewServer(t, nil)

	_, err := fetch.Document(testutil.Context(t), server.URL("/"))
	require.ErrorContains(t, err, "fetch context is missing")
	require.Zero(t, server.Requests("/"))
}

func TestDocumentUnavailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	url := feed.MustURL(server.URL)
	server.Close()

	ctx := fetch.WithContext(testutil.Context(t), prometheus.NewHistogram(prometheus.HistogramOpts{}))

	_, err := fetch.Document(ctx, url)
	require.ErrorContains(t, err, "failed to fetch "+url.String())
	require.True(t, util.IsTemporaryError(err))
}

func TestDocumentTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(10 * time.Second):
		}
	}))
	defer server.Close()

	ctx := fetch.WithContext(testutil.Context(t), prometheus.NewHistogram(prometheus.HistogramOpts{}))

	_, err := fetch.Document(ctx, feed.MustURL(server.URL), fetch.WithTimeout(50*time.Millisecond))
	require.Error(t, err)
	require.True(t, util.IsTemporaryError(err))
}

func TestDocumentCharset(t *testing.T) {
	t.Parallel()

	declared := `<?xml version="1.0" encoding="windows-1251"?><rss><title>` + "\xcf\xf0\xe8\xe2\xe5\xf2" + `</title></rss>`

	server := testutil.NewServer(t, map[string]testutil.Response{
		"/latin1": {
			ContentType: "application/rss+xml; charset=ISO-8859-1",
			Body:        "<rss><title>Caf\xe9</title></rss>",
		},
		"/declared": {
			ContentType: "text/xml; charset=ISO-8859-1",
			Body:        declared,
		},
		"/unknown": {
			ContentType: "text/xml; charset=no-such-charset",
			Body:        "<rss>\xff</rss>",
		},
		"/invalid": {
			ContentType: "text/xml; charset",
			Body:        "<rss>\xff</rss>",
		},
		"/utf8": {
			ContentType: "text/xml; charset=UTF-8",
			Body:        "<rss>Café</rss>",
		},
	})
	ctx := fetch.WithContext(testutil.Context(t), prometheus.NewHistogram(prometheus.HistogramOpts{}))

	for path, expected := range map[string]string{
		"/latin1":   "<rss><title>Café</title></rss>",
		"/declared": declared,
		"/unknown":  "<rss>\xff</rss>",
		"/invalid":  "<rss>\xff</rss>",
		"/utf8":     "<rss>Café</rss>",
	} {
		data, err := fetch.Document(ctx, server.URL(path))
		require.NoError(t, err, path)
		require.Equal(t, expected, string(data), path)
	}
}
