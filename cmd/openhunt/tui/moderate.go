package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/openhunt/openhunt/pkg/model"
	"github.com/openhunt/openhunt/pkg/store"
)

// ModerateMode represents the current mode of the moderation UI
type ModerateMode int

const (
	ModeList ModerateMode = iota
	ModeConfirm
	ModeError
)

// queuePageSize bounds how many pending submissions are loaded at once.
const queuePageSize = 100

// ModerateModel is the main Bubbletea model for the moderation queue
type ModerateModel struct {
	mode         ModerateMode
	store        *store.Store
	list         list.Model
	confirmation ConfirmationDialog
	decision     model.Status
	target       model.Product
	reviewed     int
	err          error
	width        int
	height       int
}

// NewModerateModel creates a new moderation queue model
func NewModerateModel(st *store.Store) ModerateModel {
	l := list.New([]list.Item{}, ProductItemDelegate{}, 0, 0)
	l.Title = "Pending Submissions"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return ModerateModel{
		mode:  ModeList,
		store: st,
		list:  l,
	}
}

// Init initializes the model
func (m ModerateModel) Init() tea.Cmd {
	return loadPendingCmd(m.store)
}

// Messages
type pendingLoadedMsg struct {
	products []model.Product
}

type decisionAppliedMsg struct {
	id string
}

type errorMsg struct {
	err error
}

// Commands
func loadPendingCmd(st *store.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		limit := queuePageSize
		products, err := st.ListProducts(ctx, model.ProductFilter{
			Status: model.StatusPending.String(),
			Limit:  &limit,
		})
		if err != nil {
			return errorMsg{err: err}
		}
		return pendingLoadedMsg{products: products}
	}
}

func applyDecisionCmd(st *store.Store, id string, decision model.Status) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		status := decision.String()
		product, err := st.UpdateProduct(ctx, id, model.UpdateProductRequest{Status: &status})
		if err != nil {
			return errorMsg{err: err}
		}
		if product == nil {
			return errorMsg{err: fmt.Errorf("product %s disappeared while moderating", id)}
		}
		return decisionAppliedMsg{id: id}
	}
}

// Update handles messages
func (m ModerateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case pendingLoadedMsg:
		items := make([]list.Item, 0, len(msg.products))
		for _, p := range msg.products {
			items = append(items, ProductItem{Product: p})
		}
		m.list.SetItems(items)
		return m, nil

	case decisionAppliedMsg:
		m.reviewed++
		m.mode = ModeList
		items := m.list.Items()
		for i, item := range items {
			if pi, ok := item.(ProductItem); ok && pi.Product.ID == msg.id {
				m.list.RemoveItem(i)
				break
			}
		}
		return m, nil

	case decisionCancelledMsg:
		m.mode = ModeList
		return m, nil

	case errorMsg:
		m.mode = ModeError
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m ModerateModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeConfirm:
		switch msg.String() {
		case "esc", "q":
			m.mode = ModeList
			return m, nil
		}
		cmd := m.confirmation.Update(msg)
		return m, cmd

	case ModeError:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		}
		return m, nil

	default:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "a":
			return m.askDecision(model.StatusApproved)
		case "r":
			return m.askDecision(model.StatusRejected)
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
}

func (m ModerateModel) askDecision(decision model.Status) (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(ProductItem)
	if !ok {
		return m, nil
	}

	m.target = item.Product
	m.decision = decision
	m.mode = ModeConfirm

	verb := "Approve"
	if decision == model.StatusRejected {
		verb = "Reject"
	}
	m.confirmation = NewConfirmationDialog(
		fmt.Sprintf("%s %q?", verb, item.Product.Name),
		fmt.Sprintf("Submitted by %s <%s>", item.Product.MakerName, item.Product.MakerEmail),
	)

	st, id := m.store, item.Product.ID
	m.confirmation.OnConfirm = func() tea.Cmd {
		return applyDecisionCmd(st, id, decision)
	}
	m.confirmation.OnCancel = func() tea.Cmd {
		return func() tea.Msg { return decisionCancelledMsg{} }
	}
	return m, nil
}

type decisionCancelledMsg struct{}

// View renders the UI
func (m ModerateModel) View() string {
	switch m.mode {
	case ModeConfirm:
		return m.confirmation.View()

	case ModeError:
		return boxStyle.Render(
			dangerStyle.Render("Error") + "\n\n" +
				m.err.Error() + "\n\n" +
				helpStyle.Render(FormatKey("q", "quit")))

	default:
		help := helpStyle.Render(
			FormatKey("a", "approve") + " • " +
				FormatKey("r", "reject") + " • " +
				FormatKey("q", "quit"))
		footer := mutedStyle.Render(fmt.Sprintf("%d reviewed this session", m.reviewed))
		return m.list.View() + "\n" + footer + "\n" + help
	}
}
