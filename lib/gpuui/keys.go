// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gpuui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the viewer's key bindings.
type KeyMap struct {
	Refresh key.Binding // Read telemetry now instead of waiting for the tick.
	Pause   key.Binding
	Quit    key.Binding
}

var DefaultKeyMap = KeyMap{
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Pause: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p", "pause"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
