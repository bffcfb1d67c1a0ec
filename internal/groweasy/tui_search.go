package groweasy

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = ViewForm
		return m, nil

	case "enter":
		if it, ok := m.picker.SelectedItem().(pickerItem); ok {
			return m.addFromInventory(it.item)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = ViewForm
		return m, nil

	case "ctrl+a":
		// Show every item still available
		m.searchResults = m.form.ShowAll()
		m.searchAll = true
		m.searchCursor = 0
		return m, nil

	case "up":
		if m.searchCursor > 0 {
			m.searchCursor--
		}
		return m, nil

	case "down":
		if m.searchCursor < len(m.searchResults)-1 {
			m.searchCursor++
		}
		return m, nil

	case "enter":
		if m.searchCursor < len(m.searchResults) {
			return m.addFromInventory(m.searchResults[m.searchCursor])
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	// Filter as the user types; an empty term hides the results
	term := m.searchInput.Value()
	m.searchAll = false
	if strings.TrimSpace(term) == "" {
		m.searchResults = nil
	} else {
		m.searchResults = m.form.Search(term)
	}
	m.searchCursor = 0

	return m, cmd
}

// addFromInventory places a picked item on the invoice and returns to the
// form. The duplicate guard lives in the form manager.
func (m Model) addFromInventory(it InventoryItem) (tea.Model, tea.Cmd) {
	rowID, added := m.form.AddInventoryItem(it.KeyID(), it.Name, it.Price, it.Stock)
	if added {
		m.rowInputs = append(m.rowInputs, newRowInputs(m.form, rowID))
		m.focusRow = len(m.rowInputs) - 1
		m.focusField = 1
		m.focusInput()
	}

	// Clear the search state and refresh the picker either way
	m.searchInput.SetValue("")
	m.searchResults = nil
	m.searchCursor = 0
	m.rebuildPicker()
	m.view = ViewForm

	cmd := m.drainToasts()
	return m, cmd
}

func stockBadge(stock int) string {
	label := fmt.Sprintf("Stock: %d", stock)
	switch {
	case stock == 0:
		return stockDangerBadge.Render(label)
	case stock <= 10:
		return stockWarnBadge.Render(label)
	default:
		return stockOKBadge.Render(label)
	}
}

func (m Model) renderPicker() string {
	if !m.pickerReady {
		return "\n  Loading..."
	}
	if len(m.picker.Items()) == 0 {
		return boxStyle.Render(emptyStyle.Render("No products available"))
	}
	return m.picker.View()
}

func (m Model) renderSearch() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Search Inventory ") + "\n\n")
	b.WriteString("  " + m.searchInput.View() + "\n\n")

	term := strings.TrimSpace(m.searchInput.Value())
	if term == "" && !m.searchAll {
		b.WriteString(helpStyle.Render("  Type to search, or ctrl+a to show all available items") + "\n")
		return boxStyle.Render(b.String())
	}

	if len(m.searchResults) == 0 {
		b.WriteString(emptyStyle.Render("  No matching products found") + "\n")
		return boxStyle.Render(b.String())
	}

	b.WriteString(fmt.Sprintf("  Found %d product(s):\n\n", len(m.searchResults)))

	symbol := m.form.CurrencySymbol()
	for i, it := range m.searchResults {
		marker := "  "
		name := escapeName(it.Name)
		if i == m.searchCursor {
			marker = selectedStyle.Render("> ")
			name = selectedStyle.Render(name)
		}
		b.WriteString(fmt.Sprintf("%s%s  %s%s  %s\n", marker, name,
			symbol, formatPrice(it.Price), stockBadge(it.Stock)))
	}

	b.WriteString("\n" + helpStyle.Render("  enter: add to invoice") + "\n")
	return boxStyle.Render(b.String())
}
