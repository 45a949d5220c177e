package main

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/listings/internal/query"
	"github.com/alfredjeanlab/listings/internal/ui"
)

// Patterns used to colorize Cobra's default help output.
var (
	// Section headers: unindented line ending with ":" (e.g. "Search:", "Flags:").
	reGroupHeader = regexp.MustCompile(`(?m)^([A-Z][^\n]*:)\s*$`)

	// Command names: two-space indent, a word, then two or more spaces.
	reCommand = regexp.MustCompile(`(?m)^(  )(\S+)(  )`)

	// Flag type annotations, e.g. "--user string".
	reFlagType = regexp.MustCompile(`(--?\S+\s+)(string|int|float|float64|duration|stringSlice|stringArray)`)

	// Defaults such as (default "foo") or (default 25).
	reDefault = regexp.MustCompile(`\(default [^)]*\)`)

	// Search parameters in examples, e.g. "market=advisors"; the key is group 2.
	reParam = regexp.MustCompile(`(\s)([a-z_]+)(=[^\s=])`)
)

// paramsAnnotation marks commands that take key=value search parameters.
// Their help ends with the markets and how many filters each one has.
const paramsAnnotation = "listings/params"

// marketsHelp lists every market name with the size of its filter table.
func marketsHelp() string {
	var b strings.Builder
	b.WriteString("\nMarkets:\n")
	for _, name := range query.KindNames() {
		kind, err := query.ResolveKind(query.Params{"market": name})
		if err != nil {
			continue
		}
		names, err := query.FilterNames(kind)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "  %-9s %s (%d filters)\n", name, kind, len(names))
	}
	b.WriteString("\nRun 'listings filters <market>' for the filter order.\n")
	return b.String()
}

// helpText renders cmd's usage, plus the markets section when cmd takes
// search parameters.
func helpText(cmd *cobra.Command) string {
	var buf bytes.Buffer
	orig := cmd.OutOrStdout()
	cmd.SetOut(&buf)
	_ = cmd.Usage()
	cmd.SetOut(orig)
	if cmd.Annotations[paramsAnnotation] != "" {
		buf.WriteString(marketsHelp())
	}
	return buf.String()
}

// colorizedHelpFunc returns a Cobra help function that adds the markets
// section where it applies and colors the result when the terminal supports it.
func colorizedHelpFunc() func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		text := helpText(cmd)
		if ui.ShouldUseColor() {
			text = colorizeHelpOutput(text)
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
	}
}

// colorizeHelpOutput applies ANSI styling to Cobra's plain-text help.
func colorizeHelpOutput(s string) string {
	s = reGroupHeader.ReplaceAllStringFunc(s, func(match string) string {
		return ui.RenderAccent(strings.TrimSpace(match))
	})
	s = reCommand.ReplaceAllStringFunc(s, func(match string) string {
		parts := reCommand.FindStringSubmatch(match)
		if len(parts) == 4 {
			return parts[1] + ui.RenderCommand(parts[2]) + parts[3]
		}
		return match
	})
	s = reFlagType.ReplaceAllStringFunc(s, func(match string) string {
		parts := reFlagType.FindStringSubmatch(match)
		if len(parts) == 3 {
			return parts[1] + ui.RenderMuted(parts[2])
		}
		return match
	})
	s = reParam.ReplaceAllString(s, "${1}"+ui.RenderAccent("${2}")+"${3}")
	return reDefault.ReplaceAllStringFunc(s, ui.RenderMuted)
}
