// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pdiddy/curator/pkg/types"
)

func withTavilyServer(t *testing.T, handler http.HandlerFunc) *TavilyCollector {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	orig := tavilyAPIBase
	tavilyAPIBase = srv.URL
	t.Cleanup(func() { tavilyAPIBase = orig })

	return &TavilyCollector{Client: srv.Client(), APIKey: "tvly-test"}
}

func TestTavilyCollect(t *testing.T) {
	var depths []string
	c := withTavilyServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tvly-test" {
			t.Errorf("Authorization = %q", got)
		}

		var req tavilyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		depths = append(depths, req.SearchDepth)
		if req.MaxResults != 5 {
			t.Errorf("max_results = %d, want 5", req.MaxResults)
		}

		fmt.Fprint(w, `{
			"results": [
				{
					"title": "New simulator released",
					"content": "Open source release, code at https://github.com/acme/sim",
					"url": "https://blog.example.com/sim",
					"score": 0.92,
					"published_date": "2026-02-15"
				},
				{
					"title": "Generic article",
					"content": "No repository mentioned anywhere.",
					"url": "https://blog.example.com/article",
					"score": 0.80
				}
			]
		}`)
	})

	records, err := c.Collect(context.Background(), testCfg())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	// The repo-linking result survives all three queries; the generic one
	// only survives the product query.
	if len(records) != 4 {
		t.Fatalf("len(records) = %d, want 4", len(records))
	}

	first := records[0]
	if first.Type != types.TypeResearch {
		t.Errorf("Type = %q, want research for the first query", first.Type)
	}
	if first.RelevanceScore != 0.92 {
		t.Errorf("RelevanceScore = %f", first.RelevanceScore)
	}
	want := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	if !first.PublishedDate.Equal(want) {
		t.Errorf("PublishedDate = %v, want %v", first.PublishedDate, want)
	}

	if len(depths) != 3 || depths[0] != "research" || depths[1] != "tech" || depths[2] != "news" {
		t.Errorf("depths = %v, want research, tech, news", depths)
	}
}

func TestTavilyNotFoundIsEmpty(t *testing.T) {
	c := withTavilyServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	records, err := c.Collect(context.Background(), testCfg())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %+v, want none", records)
	}
}

func TestTavilyHTTPError(t *testing.T) {
	c := withTavilyServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	})
	if _, err := c.Collect(context.Background(), testCfg()); err == nil {
		t.Fatal("expected error on HTTP 400")
	}
}

func TestParseTavilyDate(t *testing.T) {
	tests := []struct {
		in       string
		wantZero bool
	}{
		{"2026-02-15", false},
		{"2026-02-15T10:30:00Z", false},
		{"Mon, 02 Jan 2006 15:04:05 MST", false},
		{"not a date", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parseTavilyDate(tt.in)
			if got.IsZero() != tt.wantZero {
				t.Errorf("parseTavilyDate(%q) = %v", tt.in, got)
			}
		})
	}
}
