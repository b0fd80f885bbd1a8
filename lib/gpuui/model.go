// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gpuui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
	"github.com/bureau-foundation/gfxinfo/lib/report"
)

const (
	labelWidth = 14

	// MinInterval bounds how often telemetry is read. Native sources
	// (ioreg in particular) are too slow for faster refresh.
	MinInterval = 100 * time.Millisecond

	defaultBarWidth = 40
)

// Source is what the viewer reads. *gfxinfo.GPU implements it.
type Source interface {
	Kind() hwinfo.Kind
	Descriptor() hwinfo.Descriptor
	Snapshot() hwinfo.Snapshot
}

// tickMsg triggers a telemetry read. The generation lets the model
// drop ticks scheduled before a pause or a manual refresh.
type tickMsg struct {
	generation int
}

// Model is the bubbletea model for the watch viewer.
type Model struct {
	source     Source
	descriptor hwinfo.Descriptor
	kind       hwinfo.Kind
	interval   time.Duration
	keys       KeyMap
	theme      Theme
	styles     styles

	snapshot   hwinfo.Snapshot
	readAt     time.Time
	reads      int
	generation int
	paused     bool

	vramBar progress.Model
	loadBar progress.Model
	width   int

	now func() time.Time
}

// NewModel returns a viewer over source. Intervals below MinInterval
// are raised to it. Identity is read once here; telemetry is read on
// the first tick.
func NewModel(source Source, interval time.Duration) Model {
	if interval < MinInterval {
		interval = MinInterval
	}
	theme := DefaultTheme
	model := Model{
		source:     source,
		descriptor: source.Descriptor(),
		kind:       source.Kind(),
		interval:   interval,
		keys:       DefaultKeyMap,
		theme:      theme,
		styles:     newStyles(theme),
		vramBar:    newBar(theme),
		loadBar:    newBar(theme),
		now:        time.Now,
	}
	return model
}

func newBar(theme Theme) progress.Model {
	return progress.New(
		progress.WithGradient(string(theme.GaugeLow), string(theme.GaugeHigh)),
		progress.WithWidth(defaultBarWidth),
		progress.WithoutPercentage(),
	)
}

// Snapshot returns the most recent telemetry reading.
func (model Model) Snapshot() hwinfo.Snapshot { return model.snapshot }

// Reads returns how many times the model has read telemetry.
func (model Model) Reads() int { return model.reads }

// Paused reports whether ticks are currently ignored.
func (model Model) Paused() bool { return model.paused }

func (model Model) Init() tea.Cmd {
	return model.tickNow()
}

// tickNow requests an immediate read for the current generation.
func (model Model) tickNow() tea.Cmd {
	generation := model.generation
	return func() tea.Msg { return tickMsg{generation: generation} }
}

func (model Model) scheduleTick() tea.Cmd {
	generation := model.generation
	return tea.Tick(model.interval, func(time.Time) tea.Msg {
		return tickMsg{generation: generation}
	})
}

func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tickMsg:
		if message.generation != model.generation || model.paused {
			return model, nil
		}
		model.refresh()
		return model, model.scheduleTick()

	case tea.KeyMsg:
		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit
		case key.Matches(message, model.keys.Refresh):
			model.generation++
			return model, model.tickNow()
		case key.Matches(message, model.keys.Pause):
			model.paused = !model.paused
			model.generation++
			if model.paused {
				return model, nil
			}
			return model, model.tickNow()
		}

	case tea.WindowSizeMsg:
		model.width = message.Width
		barWidth := message.Width - labelWidth - 8
		barWidth = max(10, min(barWidth, 80))
		model.vramBar.Width = barWidth
		model.loadBar.Width = barWidth
	}
	return model, nil
}

func (model *Model) refresh() {
	model.snapshot = model.source.Snapshot()
	model.readAt = model.now()
	model.reads++
}

func (model Model) View() string {
	var builder strings.Builder

	builder.WriteString(model.styles.title.Render(model.descriptor.Vendor + " " + model.descriptor.Model))
	builder.WriteString("\n")
	builder.WriteString(model.styles.faint.Render(fmt.Sprintf("%s · device 0x%04X · via %s",
		model.descriptor.Family, model.descriptor.DeviceID, model.kind)))
	builder.WriteString("\n\n")

	snapshot := model.snapshot
	model.writeGauge(&builder, "VRAM", model.vramBar, vramFraction(snapshot),
		report.VRAMUsage(snapshot.UsedVRAMBytes, snapshot.TotalVRAMBytes))
	model.writeGauge(&builder, "Load", model.loadBar, float64(snapshot.LoadPercent)/100,
		fmt.Sprintf("%d%%", snapshot.LoadPercent))

	temperature := report.Temperature(snapshot.TemperatureMillidegrees)
	if snapshot.TemperatureMillidegrees >= model.theme.HotThreshold {
		temperature = model.styles.hot.Render(temperature)
	} else {
		temperature = model.styles.value.Render(temperature)
	}
	builder.WriteString(model.styles.label.Render("Temperature"))
	builder.WriteString(temperature)
	builder.WriteString("\n\n")

	builder.WriteString(model.styles.faint.Render(model.status()))

	return model.styles.frame.Render(builder.String()) + "\n"
}

func (model Model) writeGauge(builder *strings.Builder, label string, bar progress.Model, fraction float64, text string) {
	builder.WriteString(model.styles.label.Render(label))
	builder.WriteString(bar.ViewAs(fraction))
	builder.WriteString(" ")
	builder.WriteString(model.styles.value.Render(text))
	builder.WriteString("\n")
}

func (model Model) status() string {
	var parts []string
	switch {
	case model.paused:
		parts = append(parts, "paused")
	case model.reads == 0:
		parts = append(parts, "waiting for first reading")
	default:
		parts = append(parts, "updated "+humanize.RelTime(model.readAt, model.now(), "ago", "from now"))
	}
	parts = append(parts,
		"every "+model.interval.String(),
		model.keys.Refresh.Help().Key+" "+model.keys.Refresh.Help().Desc,
		model.keys.Pause.Help().Key+" "+model.keys.Pause.Help().Desc,
		model.keys.Quit.Help().Key+" "+model.keys.Quit.Help().Desc,
	)
	return strings.Join(parts, " · ")
}

// vramFraction is 0 when the total is unknown.
func vramFraction(snapshot hwinfo.Snapshot) float64 {
	if snapshot.TotalVRAMBytes == 0 {
		return 0
	}
	fraction := float64(snapshot.UsedVRAMBytes) / float64(snapshot.TotalVRAMBytes)
	return min(fraction, 1)
}

// Run shows the viewer until the user quits. Options are passed to
// tea.NewProgram, so callers can supply input and output for tests
// or tea.WithAltScreen for full-screen mode.
func Run(source Source, interval time.Duration, options ...tea.ProgramOption) error {
	program := tea.NewProgram(NewModel(source, interval), options...)
	_, err := program.Run()
	return err
}
