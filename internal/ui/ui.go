package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"buylist/internal/buylist"
	"buylist/internal/config"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeRename
)

type Model struct {
	list     *buylist.List
	keys     keyMap
	editKeys editKeyMap
	help     help.Model
	cursor   int
	mode     mode
	input    textinput.Model
	status   string
	alert    bool
	renameID string
}

func New(list *buylist.List, cfg config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Item name"
	ti.CharLimit = 128
	ti.Width = 40

	keys := newKeyMap(cfg.Keys)
	return Model{
		list:     list,
		keys:     keys,
		editKeys: editKeyMap{Confirm: keys.Confirm, Cancel: keys.Cancel},
		help:     help.New(),
		cursor:   clampCursor(0, list.Len()),
		status:   fmt.Sprintf("Press '%s' to add, %s to toggle, '%s' to delete.", cfg.Keys.Add, displayKey(cfg.Keys.Toggle), cfg.Keys.Delete),
		input:    ti,
		mode:     modeList,
	}
}

// Run drives the list until the user quits.
func Run(list *buylist.List, cfg config.Config) error {
	program := tea.NewProgram(New(list, cfg), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAdd:
		return m.updateAddMode(msg)
	case modeRename:
		return m.updateRenameMode(msg)
	}
	return m.updateListMode(msg)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.alert = false
}

func (m *Model) setAlert(s string) {
	m.status = s
	m.alert = true
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.setStatus("Cancelled")
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		if strings.TrimSpace(m.input.Value()) == "" {
			return m, nil
		}
		e, err := m.list.Submit(m.input.Value())
		var dup *buylist.DuplicateError
		switch {
		case errors.As(err, &dup):
			m.setAlert(dup.Error())
		case err != nil && e.ID == "":
			m.setAlert(err.Error())
		default:
			m.cursor = clampCursor(m.list.Len()-1, m.list.Len())
			if err != nil {
				m.setAlert(fmt.Sprintf("save failed: %v", err))
			} else {
				m.setStatus(fmt.Sprintf("Added %s", e.Name))
			}
		}
		m.input.SetValue("")
		cmd := m.input.Focus()
		return m, cmd
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateRenameMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.list.CancelRename(m.renameID)
		m.endEdit()
		m.setStatus("Rename cancelled")
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		e, err := m.list.CommitRename(m.renameID, m.input.Value())
		m.endEdit()
		if err != nil {
			m.setAlert(fmt.Sprintf("rename failed: %v", err))
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Renamed to %s", e.Name))
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) endEdit() {
	m.renameID = ""
	m.mode = modeList
	m.input.SetValue("")
	m.input.Placeholder = "Item name"
	m.input.Blur()
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.list.Len()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, n)
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, n)
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.SetValue("")
		m.setStatus("Add mode: type a name and press Enter")
		cmd := m.input.Focus()
		return m, cmd
	}

	cur, ok := m.list.At(m.cursor)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Increment), key.Matches(msg, m.keys.Decrement):
		step := m.list.Increment
		if key.Matches(msg, m.keys.Decrement) {
			step = m.list.Decrement
		}
		changed, err := step(cur.ID)
		switch {
		case err != nil:
			m.setAlert(fmt.Sprintf("save failed: %v", err))
		case !changed && !cur.Steppable():
			m.setStatus(fmt.Sprintf("%s is purchased; mark it as not purchased to change quantity", cur.Name))
		case changed:
			m.setStatus("")
		}
	case key.Matches(msg, m.keys.Toggle):
		if err := m.list.Toggle(cur.ID); err != nil {
			m.setAlert(fmt.Sprintf("save failed: %v", err))
			return m, nil
		}
		e, _ := m.list.Get(cur.ID)
		if e.Purchased {
			m.setStatus(fmt.Sprintf("%s marked as purchased", e.Name))
		} else {
			m.setStatus(fmt.Sprintf("%s marked as not purchased", e.Name))
		}
	case key.Matches(msg, m.keys.Delete):
		if !cur.Deletable() {
			return m, nil
		}
		if err := m.list.Delete(cur.ID); err != nil {
			m.setAlert(fmt.Sprintf("delete failed: %v", err))
			return m, nil
		}
		m.cursor = clampCursor(m.cursor, m.list.Len())
		m.setStatus(fmt.Sprintf("Deleted %s", cur.Name))
	case key.Matches(msg, m.keys.Rename):
		if !cur.Renamable() {
			return m, nil
		}
		name, err := m.list.BeginRename(cur.ID)
		if err != nil {
			m.setAlert(err.Error())
			return m, nil
		}
		m.mode = modeRename
		m.renameID = cur.ID
		m.input.SetValue(name)
		m.input.CursorEnd()
		m.setStatus("Rename: Enter to save, Esc to cancel")
		cmd := m.input.Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Buy list"))
	b.WriteString("\n\n")

	if m.list.Len() == 0 {
		b.WriteString(mutedStyle.Render("Nothing to buy. Press '" + m.keys.Add.Help().Key + "' to add an item."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderItems())
	}

	b.WriteString("\n")
	if m.mode == modeAdd {
		b.WriteString("Add item: ")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}

	stats := m.list.Stats()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		renderPanel("Remaining", stats.Remaining, pendingStyle, lipgloss.NewStyle()),
		renderPanel("Purchased", stats.Purchased, successStyle, boughtStyle),
	))
	b.WriteString("\n\n")

	if m.alert {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	if m.mode == modeList {
		b.WriteString(m.help.View(m.keys))
	} else {
		b.WriteString(m.help.View(m.editKeys))
	}

	return b.String()
}

func (m Model) renderItems() string {
	var b strings.Builder
	for i, e := range m.list.Entries() {
		b.WriteString(m.renderRow(i, e))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(i int, e buylist.Entry) string {
	prefix := "  "
	if i == m.cursor && m.mode == modeList {
		prefix = selectedStyle.Render(">") + " "
	}

	var name string
	switch {
	case m.mode == modeRename && e.ID == m.renameID:
		name = m.input.View()
	case e.Purchased:
		name = nameStyle.Render(boughtStyle.Render(e.Name))
	default:
		name = nameStyle.Render(e.Name)
	}

	minus, plus := "[-]", "[+]"
	if !e.Steppable() || !e.CanDecrement() {
		minus = mutedStyle.Render(minus)
	}
	if !e.Steppable() {
		plus = mutedStyle.Render(plus)
	}
	stepper := fmt.Sprintf("%s %s %s", minus, countStyle.Render(fmt.Sprintf("%d", e.Quantity)), plus)

	toggle := accentStyle.Render("[" + e.ToggleLabel() + "]")
	row := fmt.Sprintf("%s%s %s  %s", prefix, name, stepper, toggle)
	if e.Deletable() {
		row += " " + errorStyle.Render("[x]")
	}
	return row
}

func renderPanel(title string, lines []buylist.Line, head, body lipgloss.Style) string {
	rows := []string{head.Render(title)}
	if len(lines) == 0 {
		rows = append(rows, mutedStyle.Render("(none)"))
	}
	for _, l := range lines {
		rows = append(rows, body.Render(l.Name)+" "+countStyle.Render(fmt.Sprintf("%d", l.Quantity)))
	}
	return panelStyle.Render(strings.Join(rows, "\n"))
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
