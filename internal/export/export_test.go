package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/alfredjeanlab/listings/internal/model"
	"github.com/alfredjeanlab/listings/internal/query"
)

var _ Searcher = (*query.Searcher)(nil)

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func TestWriteJSONL(t *testing.T) {
	ss := &stubSearcher{listings: []*model.Listing{
		{ID: "lst-b", Kind: model.KindCpa, Title: "B"},
		{ID: "lst-a", Kind: model.KindAdvisor, Title: "A"},
	}}
	e := &Exporter{Searcher: ss, Params: query.Params{"market": "all"}}

	var buf bytes.Buffer
	n, err := e.WriteJSONL(context.Background(), &buf)
	if err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}

	lines := nonEmptyLines(buf.String())
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}

	var h header
	if err := json.Unmarshal([]byte(lines[0]), &h); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	if h.Type != "header" || h.Version != "1" || h.ListingCount != 2 {
		t.Errorf("header = %+v", h)
	}
	if h.Params["market"] != "all" {
		t.Errorf("header params = %v", h.Params)
	}

	for i, wantID := range []string{"lst-a", "lst-b"} {
		var rec struct {
			Type string        `json:"type"`
			Data model.Listing `json:"data"`
		}
		if err := json.Unmarshal([]byte(lines[i+1]), &rec); err != nil {
			t.Fatalf("unmarshal line %d: %v", i+1, err)
		}
		if rec.Type != "listing" || rec.Data.ID != wantID {
			t.Errorf("line %d = %s %s, want listing %s", i+1, rec.Type, rec.Data.ID, wantID)
		}
	}
}

func TestWriteJSONL_DefaultsToAdmin(t *testing.T) {
	ss := &stubSearcher{}
	e := &Exporter{Searcher: ss}
	if _, err := e.WriteJSONL(context.Background(), &bytes.Buffer{}); err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}
	if ss.user == nil || !ss.user.Admin {
		t.Errorf("user = %+v, want admin", ss.user)
	}

	who := &model.User{ID: "u1"}
	e.User = who
	if _, err := e.WriteJSONL(context.Background(), &bytes.Buffer{}); err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}
	if ss.user != who {
		t.Errorf("user = %+v, want %+v", ss.user, who)
	}
}

func TestWriteJSONL_Empty(t *testing.T) {
	e := &Exporter{Searcher: &stubSearcher{}}
	var buf bytes.Buffer
	n, err := e.WriteJSONL(context.Background(), &buf)
	if err != nil || n != 0 {
		t.Fatalf("WriteJSONL = %d, %v", n, err)
	}
	if lines := nonEmptyLines(buf.String()); len(lines) != 1 {
		t.Fatalf("expected header only, got %d lines", len(lines))
	}
}

func TestWriteJSONL_Errors(t *testing.T) {
	tests := []struct {
		name string
		ss   *stubSearcher
		want string
	}{
		{"search", &stubSearcher{searchErr: errBoom}, "compose search: boom"},
		{"fetch", &stubSearcher{fetchErr: errBoom}, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := (&Exporter{Searcher: tt.ss}).WriteJSONL(context.Background(), &buf)
			if !errors.Is(err, errBoom) || err.Error() != tt.want {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
			if buf.Len() != 0 {
				t.Errorf("wrote %d bytes on error", buf.Len())
			}
		})
	}
}

func TestWriteJSONL_UnknownMarket(t *testing.T) {
	// Through the real searcher: an unknown market fails before any backend call.
	e := &Exporter{Searcher: query.NewSearcher(nil), Params: query.Params{"market": "Nope"}}
	_, err := e.WriteJSONL(context.Background(), &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "compose search") {
		t.Fatalf("err = %v", err)
	}
}
