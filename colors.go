// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors pick the darker shade on light terminals for contrast.
var (
	colorSuccess = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
	colorInfo    = lipgloss.AdaptiveColor{Light: "4", Dark: "14"}
	colorWarning = lipgloss.AdaptiveColor{Light: "3", Dark: "11"}
	colorError   = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "8", Dark: "7"}
)

// Styles groups the text styles used by the shell and the CLI commands.
type Styles struct {
	Prompt  lipgloss.Style
	Success lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Title   lipgloss.Style
}

func NewStyles() Styles {
	return Styles{
		Prompt:  lipgloss.NewStyle().Foreground(colorInfo).Bold(true),
		Success: lipgloss.NewStyle().Foreground(colorSuccess),
		Info:    lipgloss.NewStyle().Foreground(colorInfo),
		Warning: lipgloss.NewStyle().Foreground(colorWarning),
		Error:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
		Title:   lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Underline(true),
	}
}

// PlainStyles renders text unchanged; used when output is not a terminal.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Prompt:  plain,
		Success: plain,
		Info:    plain,
		Warning: plain,
		Error:   plain,
		Muted:   plain,
		Title:   plain,
	}
}
