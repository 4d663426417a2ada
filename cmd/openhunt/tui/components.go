package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/openhunt/openhunt/pkg/model"
)

// ConfirmationDialog represents a yes/no confirmation dialog
type ConfirmationDialog struct {
	Title       string
	Message     string
	YesSelected bool
	OnConfirm   func() tea.Cmd
	OnCancel    func() tea.Cmd
}

// NewConfirmationDialog creates a new confirmation dialog
func NewConfirmationDialog(title, message string) ConfirmationDialog {
	return ConfirmationDialog{
		Title:   title,
		Message: message,
	}
}

// Update handles confirmation dialog updates
func (d *ConfirmationDialog) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			d.YesSelected = true
			return nil
		case "right", "l":
			d.YesSelected = false
			return nil
		case "enter":
			if d.YesSelected && d.OnConfirm != nil {
				return d.OnConfirm()
			}
			if !d.YesSelected && d.OnCancel != nil {
				return d.OnCancel()
			}
			return nil
		}
	}
	return nil
}

// View renders the confirmation dialog
func (d ConfirmationDialog) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(d.Title))
	b.WriteString("\n\n")
	b.WriteString(d.Message)
	b.WriteString("\n\n")

	yesButton := inactiveButtonStyle.Render("Yes")
	noButton := inactiveButtonStyle.Render("No")

	if d.YesSelected {
		yesButton = activeButtonStyle.Render("Yes")
	} else {
		noButton = activeButtonStyle.Render("No")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, yesButton, "  ", noButton))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(FormatKey("←/→", "navigate") + " • " + FormatKey("enter", "confirm") + " • " + FormatKey("esc/q", "cancel")))

	return boxStyle.Render(b.String())
}

// ProductItem represents a pending submission in the queue
type ProductItem struct {
	Product model.Product
}

func (i ProductItem) FilterValue() string { return i.Product.Name }
func (i ProductItem) Title() string {
	statusIcon := FormatStatus(i.Product.Status.String())
	return fmt.Sprintf("%s %s · %s", statusIcon, i.Product.Name, i.Product.Slogan)
}
func (i ProductItem) Description() string {
	maker := i.Product.MakerName
	if maker == "" {
		maker = i.Product.MakerEmail
	}
	parts := []string{maker}
	if i.Product.Category != "" {
		parts = append(parts, i.Product.Category)
	}
	if len(i.Product.Tags) > 0 {
		parts = append(parts, strings.Join(i.Product.Tags, ", "))
	}
	return mutedStyle.Render(strings.Join(parts, " · "))
}

// ProductItemDelegate is a custom delegate for queue items
type ProductItemDelegate struct{}

func (d ProductItemDelegate) Height() int                             { return 2 }
func (d ProductItemDelegate) Spacing() int                            { return 1 }
func (d ProductItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d ProductItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(ProductItem)
	if !ok {
		return
	}

	var s string
	if index == m.Index() {
		s = selectedItemStyle.Render("▸ " + i.Title() + "\n  " + i.Description())
	} else {
		s = unselectedItemStyle.Render("  " + i.Title() + "\n  " + i.Description())
	}

	_, _ = fmt.Fprint(w, s)
}
