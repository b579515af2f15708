package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// PickerItem is one entry shown in the interactive picker.
type PickerItem struct {
	Label    string // wallet name
	SubLabel string // address, shown dimmed
	Badge    string // e.g. "default", "watch-only"
	Value    string // returned on selection
	Disabled bool   // shown but not selectable
}

type pickerModel struct {
	title    string
	items    []PickerItem
	cursor   int
	selected *PickerItem
	quitting bool
}

func newPickerModel(title string, items []PickerItem, start int) pickerModel {
	m := pickerModel{title: title, items: items}
	if start >= 0 && start < len(items) {
		m.cursor = start
	}
	return m
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter", " ":
		if item := m.items[m.cursor]; !item.Disabled {
			m.selected = &item
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n" + StyleTitle.Render("  "+m.title) + "\n\n")
	for i, item := range m.items {
		prefix := "    "
		if i == m.cursor {
			prefix = "  ▸ "
		}
		line := prefix + StyleValue.Render(fit(item.Label, 16))
		if item.SubLabel != "" {
			line += "  " + StyleMeta.Render(item.SubLabel)
		}
		if item.Badge != "" {
			line += "  " + StyleWarning.Render("["+item.Badge+"]")
		}

		switch {
		case i == m.cursor && !item.Disabled:
			sb.WriteString(StyleSelected.Render(line) + "\n")
		case item.Disabled:
			sb.WriteString(StyleMeta.Render(line) + "\n")
		default:
			sb.WriteString(line + "\n")
		}
	}
	sb.WriteString("\n" + StyleMeta.Render("  [ ↑↓ / jk ] navigate   [ Enter ] select   [ q ] cancel") + "\n")
	return sb.String()
}

// PickItem runs an interactive list picker starting at index start and
// returns the selected item's Value. Returns ErrCancelled if the user quits.
func PickItem(title string, items []PickerItem, start int) (string, error) {
	if len(items) == 0 {
		return "", errors.New("no items to pick from")
	}

	final, err := tea.NewProgram(newPickerModel(title, items, start)).Run()
	if err != nil {
		return "", fmt.Errorf("picker: %w", err)
	}
	fm := final.(pickerModel)
	if fm.quitting || fm.selected == nil {
		return "", ErrCancelled
	}
	return fm.selected.Value, nil
}
