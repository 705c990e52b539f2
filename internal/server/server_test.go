package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/glossary/internal/feedback"
	"github.com/mesh-intelligence/glossary/internal/glossary"
	"github.com/mesh-intelligence/glossary/pkg/types"
)

var testEntries = []types.Entry{
	{Row: 1, Source: "RPI", Category: "Net Zero", Definition: "A balance between emissions produced and removed."},
	{Row: 2, Source: "SAA", Category: "Divestment", Definition: "Selling assets for ethical reasons.", Link: "http://x"},
	{Row: 3, Source: "RPI", Category: "Carbon Budget", Definition: "Cumulative emissions allowed."},
}

type fixture struct {
	srv     *Server
	ts      *httptest.Server
	logPath string
}

func newFixture(t *testing.T, logPath string, requireName bool) *fixture {
	t.Helper()
	if logPath == "" {
		logPath = filepath.Join(t.TempDir(), "feedback.csv")
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sub := feedback.NewSubmitter(feedback.NewCSVLog(logPath, requireName), requireName, logger)
	srv := New(glossary.NewStore("test.csv", testEntries), sub, Options{
		Style:    types.StyleCard,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &fixture{srv: srv, ts: ts, logPath: logPath}
}

func getJSON(t *testing.T, url string, dst any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if dst != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	}
	return resp
}

func postFeedback(t *testing.T, url, body string) (*http.Response, feedback.Result) {
	t.Helper()
	resp, err := http.Post(url+"/api/feedback", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var res feedback.Result
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	}
	return resp, res
}

func TestHandleSources(t *testing.T) {
	f := newFixture(t, "", false)
	var got []string
	resp := getJSON(t, f.ts.URL+"/api/sources", &got)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"RPI", "SAA"}, got)
}

func TestHandleCategories(t *testing.T) {
	f := newFixture(t, "", false)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "all sources", query: "", want: []string{"Carbon Budget", "Divestment", "Net Zero"}},
		{name: "None means all", query: "?source=None", want: []string{"Carbon Budget", "Divestment", "Net Zero"}},
		{name: "scoped to RPI", query: "?source=RPI", want: []string{"Carbon Budget", "Net Zero"}},
		{name: "unknown source", query: "?source=XYZ", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			resp := getJSON(t, f.ts.URL+"/api/categories"+tt.query, &got)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandleEntries(t *testing.T) {
	f := newFixture(t, "", false)

	tests := []struct {
		name     string
		query    string
		wantRows []int
	}{
		{name: "no filters returns all", query: "", wantRows: []int{1, 2, 3}},
		{name: "source filter", query: "?source=RPI", wantRows: []int{1, 3}},
		{name: "keyword in category", query: "?keyword=net", wantRows: []int{1}},
		{name: "keyword in definition", query: "?keyword=Selling", wantRows: []int{2}},
		{name: "keyword excluded by source", query: "?source=RPI&keyword=Divestment", wantRows: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []types.Entry
			resp := getJSON(t, f.ts.URL+"/api/entries"+tt.query, &got)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			rows := []int{}
			for _, e := range got {
				rows = append(rows, e.Row)
			}
			assert.Equal(t, tt.wantRows, rows)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	f := newFixture(t, "", false)

	resp, err := http.Post(f.ts.URL+"/api/sources", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Get(f.ts.URL + "/api/feedback")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHandleFeedback(t *testing.T) {
	t.Run("valid submission appends", func(t *testing.T) {
		f := newFixture(t, "", false)
		resp, res := postFeedback(t, f.ts.URL, `{"text":"  Great resource  "}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, res.OK)
		assert.Equal(t, feedback.MsgThanks, res.Message)

		data, err := os.ReadFile(f.logPath)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "Timestamp,Feedback", lines[0])
		assert.True(t, strings.HasSuffix(lines[1], ",Great resource"))
	})

	t.Run("blank text is rejected without writing", func(t *testing.T) {
		f := newFixture(t, "", false)
		resp, res := postFeedback(t, f.ts.URL, `{"text":"   "}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.False(t, res.OK)
		assert.Equal(t, feedback.MsgFeedbackEmpty, res.Message)
		assert.NoFileExists(t, f.logPath)
	})

	t.Run("missing name when required", func(t *testing.T) {
		f := newFixture(t, "", true)
		resp, res := postFeedback(t, f.ts.URL, `{"text":"hello"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, feedback.MsgNameRequired, res.Message)
		assert.NoFileExists(t, f.logPath)
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newFixture(t, "", false)
		resp, _ := postFeedback(t, f.ts.URL, `{not json`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("write failure is a 500", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
		f := newFixture(t, filepath.Join(blocker, "feedback.csv"), false)

		resp, res := postFeedback(t, f.ts.URL, `{"text":"hello"}`)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.False(t, res.OK)
		assert.Equal(t, feedback.MsgWriteFailure, res.Message)
	})
}

func TestHandlePage(t *testing.T) {
	f := newFixture(t, "", false)

	t.Run("no filters shows info and all entries", func(t *testing.T) {
		resp, err := http.Get(f.ts.URL + "/")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
		assert.Contains(t, string(body), "Available sources: RPI, SAA")
		assert.Contains(t, string(body), "Divestment")
	})

	t.Run("no matches", func(t *testing.T) {
		resp, err := http.Get(f.ts.URL + "/?source=RPI&keyword=Divestment")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "No results found.")
	})

	t.Run("unknown path", func(t *testing.T) {
		resp, err := http.Get(f.ts.URL + "/nope")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

// A page mounted under a prefix submits its filter form back to itself.
func TestHandlePageUnderPrefix(t *testing.T) {
	f := newFixture(t, "", false)
	mux := http.NewServeMux()
	f.srv.RegisterHTTPHandlers("/glossary", mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/glossary/?source=SAA")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `<form method="get" action="">`)
	assert.NotContains(t, string(body), `action="/"`)
	assert.Contains(t, string(body), "Selling assets")
}

func TestMetrics(t *testing.T) {
	f := newFixture(t, "", false)

	assert.Equal(t, float64(len(testEntries)), testutil.ToFloat64(f.srv.metrics.entries))

	getJSON(t, f.ts.URL+"/api/sources", nil).Body.Close()
	postFeedback(t, f.ts.URL, `{"text":"ok"}`)
	postFeedback(t, f.ts.URL, `{"text":""}`)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.srv.metrics.requests.WithLabelValues("/api/sources", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.srv.metrics.submissions.WithLabelValues(outcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.srv.metrics.submissions.WithLabelValues(outcomeInvalid)))

	resp, err := http.Get(f.ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "glossary_feedback_submissions_total")
	assert.Contains(t, string(body), "glossary_entries 3")
}
