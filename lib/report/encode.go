// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/gfxinfo/lib/codec"
	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
)

// Format selects a report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// Formats lists every supported format, in help-text order.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatCBOR}

// ParseFormat validates a --format value.
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats {
		if format == known {
			return format, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want text, json, yaml, or cbor)", name)
}

// Style controls presentation of the human-readable formats. CBOR
// ignores it.
type Style struct {
	// Color enables ANSI styling of text output and syntax
	// highlighting of JSON and YAML.
	Color bool

	// Trace adds the resolver attempts to text output. Structured
	// formats always include whatever attempts the report carries.
	Trace bool
}

// Encode writes report to w in format.
func Encode(w io.Writer, report Report, format Format, style Style) error {
	switch format {
	case FormatText:
		_, err := io.WriteString(w, RenderText(report, style))
		return err
	case FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		return writeHighlighted(w, string(data)+"\n", "json", style.Color)
	case FormatYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		return writeHighlighted(w, string(data), "yaml", style.Color)
	case FormatCBOR:
		return codec.NewEncoder(w).Encode(report)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeHighlighted(w io.Writer, source, lexer string, color bool) error {
	if !color {
		_, err := io.WriteString(w, source)
		return err
	}
	return quick.Highlight(w, source, lexer, "terminal256", "monokai")
}

// palette holds the styles for text output, bound to one renderer.
type palette struct {
	label lipgloss.Style
	value lipgloss.Style
	faint lipgloss.Style
	good  lipgloss.Style
	bad   lipgloss.Style
}

func newPalette(color bool) palette {
	// The renderer's profile is set explicitly: output is often piped,
	// and auto-detection would pick the wrong profile for a --color
	// override.
	renderer := lipgloss.NewRenderer(io.Discard)
	if color {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return palette{
		label: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		value: renderer.NewStyle().Foreground(lipgloss.Color("252")),
		faint: renderer.NewStyle().Foreground(lipgloss.Color("245")),
		good:  renderer.NewStyle().Foreground(lipgloss.Color("114")),
		bad:   renderer.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

type row struct {
	label string
	value string
}

// RenderText renders the report as aligned "Label: value" lines.
func RenderText(report Report, style Style) string {
	colors := newPalette(style.Color)

	rows := []row{
		{"Vendor", report.GPU.Vendor},
		{"Model", report.GPU.Model},
		{"Family", report.GPU.Family},
		{"Device ID", fmt.Sprintf("0x%X", report.GPU.DeviceID)},
		{"VRAM usage", VRAMUsage(report.Telemetry.UsedVRAMBytes, report.Telemetry.TotalVRAMBytes)},
		{"Load", fmt.Sprintf("%d%%", report.Telemetry.LoadPercent)},
		{"Temperature", Temperature(report.Telemetry.TemperatureMillidegrees)},
		{"Adapter", report.Adapter.String()},
		{"Fingerprint", shortFingerprint(report.Fingerprint)},
	}
	if report.Host != nil {
		rows = append(rows,
			row{"Host", hostSummary(report.Host)},
			row{"Memory", humanize.IBytes(report.Host.MemoryBytes)},
		)
	}

	var builder strings.Builder
	writeRows(&builder, rows, colors)

	if style.Trace {
		writeAttempts(&builder, report.Attempts, colors)
	}

	return finish(builder.String(), style)
}

// finish strips any escape sequences a style emitted when color is
// off, so piped output is plain text regardless of lipgloss version.
func finish(text string, style Style) string {
	if !style.Color {
		return ansi.Strip(text)
	}
	return text
}

// RenderAttempts renders a resolver trace on its own, for failures
// where there is no report to attach it to.
func RenderAttempts(trace []hwinfo.Attempt, style Style) string {
	var builder strings.Builder
	writeAttempts(&builder, Attempts(trace), newPalette(style.Color))
	return finish(builder.String(), style)
}

func writeAttempts(builder *strings.Builder, attempts []Attempt, colors palette) {
	if len(attempts) == 0 {
		return
	}
	builder.WriteString(colors.label.Render("Attempts:") + "\n")
	for _, attempt := range attempts {
		outcome := colors.bad
		if attempt.Outcome == hwinfo.OutcomeSuccess {
			outcome = colors.good
		}
		line := fmt.Sprintf("  %-7s %s", attempt.Adapter, outcome.Render(fmt.Sprintf("%-11s", attempt.Outcome)))
		if attempt.Error != "" {
			line += " " + colors.faint.Render(attempt.Error)
		}
		builder.WriteString(strings.TrimRight(line, " ") + "\n")
	}
}

func writeRows(builder *strings.Builder, rows []row, colors palette) {
	width := 0
	for _, entry := range rows {
		width = max(width, ansi.StringWidth(entry.label)+1)
	}
	for _, entry := range rows {
		label := entry.label + ":"
		padding := strings.Repeat(" ", width-ansi.StringWidth(label)+1)
		builder.WriteString(colors.label.Render(label) + padding + colors.value.Render(entry.value) + "\n")
	}
}

// VRAMUsage formats used and total VRAM as "used / total" in binary
// units. A zero total means the source has none and is shown as "n/a".
func VRAMUsage(used, total uint64) string {
	totalText := "n/a"
	if total > 0 {
		totalText = humanize.IBytes(total)
	}
	return humanize.IBytes(used) + " / " + totalText
}

// Temperature formats millidegrees Celsius. Zero means unavailable.
func Temperature(millidegrees uint32) string {
	if millidegrees == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f °C", float64(millidegrees)/1000)
}

func shortFingerprint(fingerprint string) string {
	if len(fingerprint) > 16 {
		return fingerprint[:16]
	}
	return fingerprint
}

func hostSummary(host *Host) string {
	summary := host.Hostname
	details := strings.TrimSpace(host.Platform + " " + host.PlatformVersion)
	if host.Arch != "" {
		if details != "" {
			details += ", "
		}
		details += host.Arch
	}
	if details != "" {
		summary += " (" + details + ")"
	}
	return summary
}
