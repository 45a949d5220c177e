package ui

import "fmt"

// ANSI256 color codes.
const (
	colorAccent  = 74  // blue
	colorCmd     = 250 // light gray
	colorMuted   = 245 // medium gray
	colorAdvisor = 149 // green
	colorCpa     = 179 // amber
	colorDraft   = 167 // red
)

var noColor bool

func render(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string { return render(colorAccent, s) }

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string { return render(colorMuted, s) }

// RenderCommand returns s styled as a command name (light gray).
func RenderCommand(s string) string { return render(colorCmd, s) }

// RenderKind colours a listing kind name.
func RenderKind(kind string) string {
	switch kind {
	case "advisor":
		return render(colorAdvisor, kind)
	case "cpa":
		return render(colorCpa, kind)
	}
	return render(colorAccent, kind)
}

// RenderPublished renders a listing's visibility.
func RenderPublished(published bool) string {
	if published {
		return RenderMuted("published")
	}
	return render(colorDraft, "draft")
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
