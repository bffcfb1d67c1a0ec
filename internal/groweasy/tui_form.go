package groweasy

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// newRowInputs builds the editable fields for a form row
func newRowInputs(form *FormManager, rowID string) rowInputs {
	row, _ := form.Row(rowID)

	name := textinput.New()
	name.Placeholder = "Item name"
	name.CharLimit = 120
	name.SetValue(row.Name)

	qty := textinput.New()
	qty.Placeholder = "Qty"
	qty.CharLimit = 9
	qty.Width = 9
	qty.SetValue(row.Qty)

	price := textinput.New()
	price.Placeholder = "Price"
	price.CharLimit = 12
	price.Width = 12
	price.SetValue(row.Price)

	return rowInputs{rowID: rowID, name: name, qty: qty, price: price}
}

// editableFields lists the focusable (row, field) pairs. Linked rows expose
// only the quantity; name and price stay fixed to the catalog.
func (m Model) editableFields() [][2]int {
	var fields [][2]int
	for i, ri := range m.rowInputs {
		row, ok := m.form.Row(ri.rowID)
		if !ok {
			continue
		}
		if row.Kind == RowManual {
			fields = append(fields, [2]int{i, 0}, [2]int{i, 1}, [2]int{i, 2})
		} else {
			fields = append(fields, [2]int{i, 1})
		}
	}
	return fields
}

func (m *Model) moveFocus(delta int) {
	fields := m.editableFields()
	if len(fields) == 0 {
		return
	}

	cur := 0
	for i, f := range fields {
		if f[0] == m.focusRow && f[1] == m.focusField {
			cur = i
			break
		}
	}

	next := (cur + delta + len(fields)) % len(fields)
	m.focusRow = fields[next][0]
	m.focusField = fields[next][1]
	m.focusInput()
}

// focusInput focuses the active field and blurs everything else
func (m *Model) focusInput() {
	for i := range m.rowInputs {
		m.rowInputs[i].name.Blur()
		m.rowInputs[i].qty.Blur()
		m.rowInputs[i].price.Blur()
	}
	if m.focusRow >= len(m.rowInputs) {
		return
	}
	switch m.focusField {
	case 0:
		m.rowInputs[m.focusRow].name.Focus()
	case 1:
		m.rowInputs[m.focusRow].qty.Focus()
	case 2:
		m.rowInputs[m.focusRow].price.Focus()
	}
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down", "enter":
		m.moveFocus(1)
		return m, nil

	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, nil

	case "ctrl+n":
		id := m.form.AddManualRow()
		m.rowInputs = append(m.rowInputs, newRowInputs(m.form, id))
		m.focusRow = len(m.rowInputs) - 1
		m.focusField = 0
		m.focusInput()
		return m, nil

	case "ctrl+p":
		m.rebuildPicker()
		m.view = ViewPicker
		return m, nil

	case "ctrl+f":
		// The search opens cleared and focused, results hidden
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		m.searchResults = nil
		m.searchCursor = 0
		m.searchAll = false
		m.view = ViewSearch
		return m, nil

	case "ctrl+r":
		return m.removeFocusedRow()

	case "ctrl+s":
		if m.form.Empty() {
			m.message = "Add at least one item first"
			m.messageType = "error"
			return m, nil
		}
		return m, m.saveInvoice()

	case "ctrl+g":
		m.refInput.SetValue("")
		m.refInput.Focus()
		m.invoiceCtx = nil
		m.downloadErrs = nil
		m.downloadedTo = ""
		m.view = ViewDownload
		return m, nil
	}

	// Route the keystroke to the focused field and mirror it into the model
	if m.focusRow < len(m.rowInputs) {
		ri := &m.rowInputs[m.focusRow]
		var cmd tea.Cmd
		switch m.focusField {
		case 0:
			ri.name, cmd = ri.name.Update(msg)
			m.form.SetName(ri.rowID, ri.name.Value())
		case 1:
			ri.qty, cmd = ri.qty.Update(msg)
			m.form.SetQty(ri.rowID, ri.qty.Value())
		case 2:
			ri.price, cmd = ri.price.Update(msg)
			m.form.SetPrice(ri.rowID, ri.price.Value())
		}
		return m, cmd
	}

	return m, nil
}

func (m Model) removeFocusedRow() (tea.Model, tea.Cmd) {
	if m.focusRow >= len(m.rowInputs) {
		return m, nil
	}

	rowID := m.rowInputs[m.focusRow].rowID
	if !m.form.RemoveRow(rowID) {
		return m, nil
	}

	m.rowInputs = append(m.rowInputs[:m.focusRow], m.rowInputs[m.focusRow+1:]...)
	if m.focusRow >= len(m.rowInputs) && m.focusRow > 0 {
		m.focusRow--
	}
	m.focusField = 0
	m.moveFocus(0)

	// Released items reappear in the picker
	m.rebuildPicker()
	cmd := m.drainToasts()
	return m, cmd
}

func (m Model) renderForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Invoice Items ") + "\n\n")

	if m.loading {
		b.WriteString(fmt.Sprintf("  %s Loading inventory...\n\n", m.spinner.View()))
	}

	symbol := m.form.CurrencySymbol()

	if m.form.Empty() {
		b.WriteString(emptyStyle.Render("  No items added yet. Press ctrl+p to add from inventory.") + "\n")
	}

	for i, ri := range m.rowInputs {
		row, ok := m.form.Row(ri.rowID)
		if !ok {
			continue
		}

		marker := "  "
		if i == m.focusRow {
			marker = selectedStyle.Render("> ")
		}

		if row.Kind == RowLinked {
			b.WriteString(fmt.Sprintf("%s%s %s\n", marker,
				labelStyle.Render("Item:"), escapeName(row.Name)))
			b.WriteString(fmt.Sprintf("     %s\n",
				readonlyStyle.Render(fmt.Sprintf("Stock: %d units", row.Stock))))

			qtyLine := fmt.Sprintf("     %s %s", labelStyle.Render("Qty:"), ri.qty.View())
			if row.QtyInvalid {
				qtyLine += "  " + invalidStyle.Render(fmt.Sprintf("exceeds stock (%d)", row.Stock))
			}
			b.WriteString(qtyLine + "\n")

			b.WriteString(fmt.Sprintf("     %s %s\n",
				labelStyle.Render("Unit Price:"),
				readonlyStyle.Render(symbol+formatPrice(row.PriceValue()))))
		} else {
			b.WriteString(fmt.Sprintf("%s%s %s\n", marker,
				labelStyle.Render("Item:"), ri.name.View()))
			b.WriteString(fmt.Sprintf("     %s %s   %s %s\n",
				labelStyle.Render("Qty:"), ri.qty.View(),
				labelStyle.Render("Unit Price:"), ri.price.View()))
		}

		b.WriteString(fmt.Sprintf("     %s %s\n\n",
			labelStyle.Render("Line total:"),
			totalStyle.Render(fmt.Sprintf("%s%.2f", symbol, row.LineTotal()))))
	}

	b.WriteString(fmt.Sprintf("  %s %s\n",
		labelStyle.Render("Grand Total:"),
		totalStyle.Render(symbol+m.form.GrandTotalDisplay())))

	return boxStyle.Render(b.String())
}
