package groweasy

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateDownload(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = ViewForm
		return m, nil

	case "enter":
		if m.downloadBusy {
			return m, nil
		}

		// First enter fetches the prepared invoice, second one confirms
		if m.invoiceCtx == nil {
			ref := strings.TrimSpace(m.refInput.Value())
			if ref == "" {
				m.message = "Invoice number is required"
				m.messageType = "error"
				return m, nil
			}
			m.downloadBusy = true
			return m, m.fetchInvoiceContext(ref)
		}

		// Validation failures block submission; all of them stay on screen
		if len(m.downloadErrs) > 0 {
			return m, nil
		}
		if m.downloadedTo != "" {
			m.view = ViewForm
			return m, nil
		}

		m.downloadBusy = true
		ref := strings.TrimSpace(m.refInput.Value())
		return m, m.submitDownload(ref, BuildDownloadPayload(m.invoiceCtx))
	}

	if m.invoiceCtx == nil {
		var cmd tea.Cmd
		m.refInput, cmd = m.refInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) renderDownload() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Download Invoice PDF ") + "\n\n")

	if m.invoiceCtx == nil {
		b.WriteString("  " + m.refInput.View() + "\n\n")
		if m.downloadBusy {
			b.WriteString(fmt.Sprintf("  %s Fetching invoice...\n", m.spinner.View()))
		} else {
			b.WriteString(helpStyle.Render("  enter: fetch invoice") + "\n")
		}
		return boxStyle.Render(b.String())
	}

	symbol := m.form.CurrencySymbol()
	b.WriteString(fmt.Sprintf("  Invoice: %s\n", strings.TrimSpace(m.refInput.Value())))
	if m.invoiceCtx.QR != "" {
		b.WriteString(readonlyStyle.Render("  QR code attached") + "\n")
	}
	b.WriteString("\n")

	var total float64
	for _, it := range m.invoiceCtx.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			name = it.Code
		}
		line := it.Qty * it.Price
		total += line
		b.WriteString(fmt.Sprintf("  %-36s %6.0f x %s%s = %s%.2f\n",
			escapeName(name), it.Qty, symbol, formatPrice(it.Price), symbol, line))
	}
	b.WriteString(fmt.Sprintf("\n  %s %s\n\n",
		labelStyle.Render("Total:"),
		totalStyle.Render(fmt.Sprintf("%s%.2f", symbol, total))))

	if len(m.downloadErrs) > 0 {
		b.WriteString(errorStyle.Render("  Cannot download PDF:") + "\n\n")
		for _, e := range m.downloadErrs {
			b.WriteString(errorStyle.Render("    "+e) + "\n")
		}
		return boxStyle.Render(b.String())
	}

	switch {
	case m.downloadBusy:
		b.WriteString(fmt.Sprintf("  %s Downloading...\n", m.spinner.View()))
	case m.downloadedTo != "":
		b.WriteString(successStyle.Render("  ✓ Saved "+m.downloadedTo) + "\n")
	default:
		b.WriteString(helpStyle.Render("  enter: download PDF") + "\n")
	}

	return boxStyle.Render(b.String())
}
