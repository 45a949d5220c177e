package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/alfredjeanlab/listings/internal/events"
	"github.com/alfredjeanlab/listings/internal/model"
	"github.com/alfredjeanlab/listings/internal/ui"
)

func TestColorizeHelpOutput(t *testing.T) {
	in := "Search:\n  search      Search listings\n\nFlags:\n      --user string   search as this user (default \"x\")\n"
	out := colorizeHelpOutput(in)
	if !strings.Contains(out, ui.RenderAccent("Search:")) {
		t.Errorf("group header not colored: %q", out)
	}
	if !strings.Contains(out, "  "+ui.RenderCommand("search")+"  ") {
		t.Errorf("command not colored: %q", out)
	}
	if !strings.Contains(out, ui.RenderMuted(`(default "x")`)) {
		t.Errorf("default not colored: %q", out)
	}
}

func TestColorizeHelpOutput_Params(t *testing.T) {
	in := "  listings search market=advisors percent_fee=5-10\n      --saved string   start from a saved search\n"
	out := colorizeHelpOutput(in)
	for _, key := range []string{"market", "percent_fee"} {
		if !strings.Contains(out, " "+ui.RenderAccent(key)+"=") {
			t.Errorf("parameter %s not colored: %q", key, out)
		}
	}
}

func TestHelpText_Markets(t *testing.T) {
	for _, tc := range []struct {
		name string
		text string
		want bool
	}{
		{"search", helpText(searchCmd), true},
		{"export", helpText(exportCmd), true},
		{"saved save", helpText(savedSaveCmd), true},
		{"filters", helpText(filtersCmd), false},
		{"place set", helpText(placeSetCmd), false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := strings.Contains(tc.text, "Markets:"); got != tc.want {
				t.Errorf("markets section present = %v, want %v:\n%s", got, tc.want, tc.text)
			}
		})
	}
}

func TestMarketsHelp(t *testing.T) {
	out := marketsHelp()
	for _, want := range []string{
		"  listing   listing (13 filters)\n",
		"  all       listing (13 filters)\n",
		"  advisor   advisor (21 filters)\n",
		"  cpa       cpa (19 filters)\n",
		"listings filters <market>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("marketsHelp missing %q:\n%s", want, out)
		}
	}
}

func TestPrintListingListTable(t *testing.T) {
	fee := 7.5
	var buf bytes.Buffer
	printListingListTable(&buf, []*model.Listing{
		{ID: "lst-a", Kind: model.KindCpa, Title: "Tax practice", Location: "Austin", Published: true, PercentFee: &fee},
		{ID: "lst-b", Kind: model.KindAdvisor, Title: "RIA book"},
	})
	out := buf.String()
	for _, want := range []string{"ID", "lst-a", "cpa", "published", "7.5%", "lst-b", "draft", "2 listings"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintListingTable_Advisor(t *testing.T) {
	ui.ForceNoColor()
	aum := 125000000.0
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	printListingTable(&buf, &model.Listing{
		ID: "lst-a", Kind: model.KindAdvisor, Title: "RIA book", UserID: "u1",
		AUM: &aum, BrokerDealer: "LPL", CreatedAt: now,
	})
	out := buf.String()
	for _, want := range []string{"Kind:        advisor", "AUM:         $125000000", "GDC:         -", "B/D:         LPL", "Created At:  2024-03-01 12:00:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Revenue") {
		t.Errorf("advisor output shows cpa fields:\n%s", out)
	}
}

func TestPrintExplain(t *testing.T) {
	var buf bytes.Buffer
	printExplain(&buf, "SELECT 1 WHERE kind = $1", []any{"cpa"})
	want := "SELECT 1 WHERE kind = $1\n  $1 = cpa\n"
	if buf.String() != want {
		t.Errorf("printExplain = %q, want %q", buf.String(), want)
	}
}

func newCreateFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	f := pflag.NewFlagSet("create", pflag.ContinueOnError)
	addCreateFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return f
}

func TestListingFromFlags(t *testing.T) {
	f := newCreateFlags(t,
		"--kind", "cpa", "--user", "u1", "--published",
		"--lat", "30.27", "--lon", "-97.74", "--location", "Austin",
		"--revenue", "850000", "--service", "tax", "--service", "audit",
	)
	l, err := listingFromFlags("Austin CPA", f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Kind != model.KindCpa || l.Title != "Austin CPA" || !l.Published {
		t.Errorf("got %+v", l)
	}
	if l.Revenue == nil || *l.Revenue != 850000 {
		t.Errorf("revenue = %v", l.Revenue)
	}
	if l.AUM != nil || l.PercentFee != nil {
		t.Error("unset numeric flags should stay nil")
	}
	if !reflect.DeepEqual(l.ServiceOptions, []string{"tax", "audit"}) {
		t.Errorf("services = %v", l.ServiceOptions)
	}
	if l.PublishedAt != nil {
		t.Error("published_at is left for the store to fill")
	}
}

func TestListingFromFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing user", []string{"--kind", "listing"}},
		{"unknown kind", []string{"--kind", "bank", "--user", "u1"}},
		{"advisor field on cpa", []string{"--kind", "cpa", "--user", "u1", "--aum", "10"}},
		{"lat without lon", []string{"--user", "u1", "--lat", "10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := listingFromFlags("Title", newCreateFlags(t, tt.args...))
			var verr *model.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *model.ValidationError, got %v", err)
			}
		})
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LISTINGS_SEARCHES_FILE", filepath.Join(t.TempDir(), "searches.toml"))
	t.Setenv("LISTINGS_DATABASE_URL", "")
	t.Setenv("LISTINGS_NATS_URL", "")
	t.Setenv("LISTINGS_EXPORT_S3_BUCKET", "")
	t.Setenv("LISTINGS_EXPORT_GIT_REPO", "")
	jsonOutput = false

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestFiltersCommand(t *testing.T) {
	out, err := runCLI(t, "filters", "Advisors")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "advisor:\n   1. Near\n") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "14. WithPercentFee\n") || !strings.Contains(out, "21. WithAdvisorID\n") {
		t.Errorf("output = %q", out)
	}
}

func TestFiltersCommand_JSON(t *testing.T) {
	out, err := runCLI(t, "filters", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var tables map[string][]string
	if err := json.Unmarshal([]byte(out), &tables); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(tables) != 3 || len(tables["listing"]) != 13 || len(tables["cpa"]) != 19 {
		t.Errorf("tables = %v", tables)
	}
}

func TestFiltersCommand_Unknown(t *testing.T) {
	if _, err := runCLI(t, "filters", "banks"); err == nil {
		t.Fatal("expected error for unknown market")
	}
}

func TestSavedCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "searches.toml")
	run := func(args ...string) string {
		t.Helper()
		t.Setenv("LISTINGS_SEARCHES_FILE", path)
		jsonOutput = false
		var buf bytes.Buffer
		rootCmd.SetOut(&buf)
		rootCmd.SetArgs(args)
		defer rootCmd.SetOut(nil)
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return buf.String()
	}

	if out := run("saved", "list"); !strings.Contains(out, "no saved searches") {
		t.Errorf("empty list = %q", out)
	}
	run("saved", "save", "denver", "market=advisors", "location=Denver", "distance=50", "--description", "Denver advisors")
	if out := run("saved", "list"); !strings.Contains(out, "denver") || !strings.Contains(out, "Denver advisors") {
		t.Errorf("list = %q", out)
	}
	if out := run("saved", "show", "denver"); !strings.Contains(out, "  location=Denver\n") || !strings.Contains(out, "  market=advisors\n") {
		t.Errorf("show = %q", out)
	}
	run("saved", "delete", "denver")
	if out := run("saved", "list"); !strings.Contains(out, "no saved searches") {
		t.Errorf("list after delete = %q", out)
	}
}

func TestSavedSave_RejectsUnknownMarket(t *testing.T) {
	if _, err := runCLI(t, "saved", "save", "bad", "market=banks"); err == nil {
		t.Fatal("expected error for unknown market")
	}
}

func TestSearchCommand_RequiresDatabase(t *testing.T) {
	_, err := runCLI(t, "search", "market=cpa")
	if err == nil || !strings.Contains(err.Error(), "LISTINGS_DATABASE_URL") {
		t.Fatalf("expected database error, got %v", err)
	}
}

func TestExportCommand_UnknownMarket(t *testing.T) {
	_, err := runCLI(t, "export", "market=banks")
	if err == nil || !strings.Contains(err.Error(), `"banks"`) {
		t.Fatalf("expected unknown market error, got %v", err)
	}
}

func TestExportCommand_EveryNeedsDestination(t *testing.T) {
	t.Cleanup(func() { _ = exportCmd.Flags().Set("every", "false") })
	_, err := runCLI(t, "export", "--every")
	if err == nil || err.Error() != "--every needs a destination" {
		t.Fatalf("err = %v", err)
	}
}

func TestExportCommand_RequiresDatabase(t *testing.T) {
	_, err := runCLI(t, "export", "market=all")
	if err == nil || !strings.Contains(err.Error(), "LISTINGS_DATABASE_URL") {
		t.Fatalf("expected database error, got %v", err)
	}
}

func TestWatchCommand_RequiresNATS(t *testing.T) {
	_, err := runCLI(t, "watch")
	if err == nil || !strings.Contains(err.Error(), "LISTINGS_NATS_URL") {
		t.Fatalf("expected NATS error, got %v", err)
	}
}

func TestPrintEvent(t *testing.T) {
	ui.ForceNoColor()
	at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	tests := []struct {
		name  string
		topic string
		data  string
		want  string
	}{
		{"listing", events.TopicListingCreated, `{"listing":{"id":"lst-1","kind":"cpa","title":"Tax firm"}}`, `listings.listing.created cpa lst-1 "Tax firm"`},
		{"place", events.TopicPlaceSet, `{"place":{"name":"Austin","latitude":30.27,"longitude":-97.74}}`, "listings.place.set Austin (30.27, -97.74)"},
		{"export", events.TopicExportCompleted, `{"listings":4,"bytes":900,"destinations":2,"failed":1}`, "4 listings, 900 bytes, 2 destinations (1 failed)"},
		{"unknown", "listings.other", `{"x":1}`, `listings.other {"x":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonOutput = false
			var buf bytes.Buffer
			env := events.Envelope{Topic: tt.topic, At: at, Data: json.RawMessage(tt.data)}
			if err := printEvent(&buf, env); err != nil {
				t.Fatal(err)
			}
			if !strings.HasSuffix(buf.String(), tt.want+"\n") {
				t.Errorf("printEvent = %q, want suffix %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPrintEvent_JSON(t *testing.T) {
	jsonOutput = true
	t.Cleanup(func() { jsonOutput = false })

	var buf bytes.Buffer
	env := events.Envelope{Topic: events.TopicPlaceSet, At: time.Unix(0, 0).UTC(), Data: json.RawMessage(`{"place":null}`)}
	if err := printEvent(&buf, env); err != nil {
		t.Fatal(err)
	}
	var got events.Envelope
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if got.Topic != events.TopicPlaceSet {
		t.Errorf("topic = %q", got.Topic)
	}
}
