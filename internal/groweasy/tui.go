package groweasy

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Version info
const (
	Version = "2.1.0"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2E8B57")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#333333")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2E8B57")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2E8B57")).
			Padding(1, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	readonlyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	invalidStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4444")).
			Bold(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	// Stock badges, three tiers like the web search results
	stockDangerBadge = lipgloss.NewStyle().
				Background(lipgloss.Color("#FF4444")).
				Foreground(lipgloss.Color("#FFF")).
				Padding(0, 1)

	stockWarnBadge = lipgloss.NewStyle().
			Background(lipgloss.Color("#FFA500")).
			Foreground(lipgloss.Color("#000")).
			Padding(0, 1)

	stockOKBadge = lipgloss.NewStyle().
			Background(lipgloss.Color("#04B575")).
			Foreground(lipgloss.Color("#FFF")).
			Padding(0, 1)

	notificationSuccess = lipgloss.NewStyle().
				Background(lipgloss.Color("#04B575")).
				Foreground(lipgloss.Color("#FFF")).
				Padding(0, 1).
				Bold(true)

	notificationWarning = lipgloss.NewStyle().
				Background(lipgloss.Color("#FFA500")).
				Foreground(lipgloss.Color("#000")).
				Padding(0, 1).
				Bold(true)

	notificationError = lipgloss.NewStyle().
				Background(lipgloss.Color("#FF4444")).
				Foreground(lipgloss.Color("#FFF")).
				Padding(0, 1).
				Bold(true)

	breadcrumbStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// View represents different screens
type View int

const (
	ViewForm View = iota
	ViewPicker
	ViewSearch
	ViewDownload
)

// pickerItem adapts an inventory item to the bubbles list
type pickerItem struct {
	item  InventoryItem
	label string
}

func (i pickerItem) Title() string       { return i.label }
func (i pickerItem) Description() string { return "" }
func (i pickerItem) FilterValue() string { return i.item.Name }

// rowInputs holds the editable fields projecting one form row
type rowInputs struct {
	rowID string
	name  textinput.Model
	qty   textinput.Model
	price textinput.Model
}

// Model is the main TUI model
type Model struct {
	client *Client
	dir    *Directory
	form   *FormManager

	view   View
	width  int
	height int

	// Form screen
	rowInputs  []rowInputs
	focusRow   int
	focusField int // 0=name 1=qty 2=price

	// Picker
	picker      list.Model
	pickerReady bool

	// Search
	searchInput   textinput.Model
	searchResults []InventoryItem
	searchCursor  int
	searchAll     bool

	// Download flow
	refInput      textinput.Model
	invoiceCtx    *InvoiceContext
	downloadErrs  []string
	downloadedTo  string
	downloadBusy  bool

	spinner spinner.Model
	loading bool

	message     string
	messageType string

	notification     string
	notificationType Severity
	showNotification bool
	notificationSeq  int

	// Toasts the form manager emitted during the current update; drained
	// into the banner before the model is returned. The queue is shared by
	// pointer so it survives model copies.
	toastQueue *toastQueue
}

type toastQueue struct {
	toasts []toastMsg
}

// Messages
type inventoryLoadedMsg struct {
	count int
}

type errorMsg struct {
	err error
}

type toastMsg struct {
	message  string
	severity Severity
}

type clearNotificationMsg struct {
	seq int
}

type invoiceContextMsg struct {
	ctx *InvoiceContext
}

type downloadDoneMsg struct {
	path string
}

type invoiceSavedMsg struct {
	number string
}

// NewTUI creates a new TUI model
func NewTUI(client *Client) Model {
	dir := &Directory{}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57"))

	search := textinput.New()
	search.Placeholder = "Search products..."

	ref := textinput.New()
	ref.Placeholder = "Invoice number (e.g. INV-2026-0042)"

	queue := &toastQueue{}

	m := Model{
		client:      client,
		dir:         dir,
		view:        ViewForm,
		spinner:     s,
		loading:     true,
		searchInput: search,
		refInput:    ref,
		toastQueue:  queue,
	}

	// The form manager queues toasts; the update loop drains them into the
	// notification banner.
	m.form = NewFormManager(dir, client.Config.CurrencySymbol,
		func(message string, severity Severity) {
			queue.toasts = append(queue.toasts, toastMsg{message, severity})
		})

	// The manual-entry variant starts with one blank row
	id := m.form.AddManualRow()
	m.rowInputs = append(m.rowInputs, newRowInputs(m.form, id))
	m.focusInput()

	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadInventory(), m.spinner.Tick)
}

// loadInventory fetches the catalog once. A failed fetch leaves the picker
// unpopulated; there is no retry.
func (m Model) loadInventory() tea.Cmd {
	client := m.client
	dir := m.dir
	return func() tea.Msg {
		if err := dir.Load(client); err != nil {
			return errorMsg{err}
		}
		return inventoryLoadedMsg{count: len(dir.Items())}
	}
}

func (m Model) fetchInvoiceContext(ref string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, err := client.FetchInvoiceContext(ref)
		if err != nil {
			return errorMsg{err}
		}
		return invoiceContextMsg{ctx}
	}
}

func (m Model) submitDownload(ref string, payload map[string]interface{}) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		path, err := client.SubmitDownload(ref, payload)
		if err != nil {
			return errorMsg{err}
		}
		return downloadDoneMsg{path}
	}
}

func (m Model) saveInvoice() tea.Cmd {
	client := m.client
	rows := m.form.Rows()
	return func() tea.Msg {
		saved, err := client.SaveInvoice(rows)
		if err != nil {
			return errorMsg{err}
		}
		return invoiceSavedMsg{saved.InvoiceNumber}
	}
}

// toast sets the notification banner and schedules its dismissal after the
// 3s visible interval. A later toast takes over the banner; the stale timer
// is ignored via the sequence number.
func (m *Model) toast(message string, severity Severity) tea.Cmd {
	m.notification = message
	m.notificationType = severity
	m.showNotification = true
	m.notificationSeq++
	seq := m.notificationSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearNotificationMsg{seq: seq}
	})
}

// drainToasts shows toasts the form manager queued during a model call
func (m *Model) drainToasts() tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range m.toastQueue.toasts {
		cmds = append(cmds, m.toast(t.message, t.severity))
	}
	m.toastQueue.toasts = nil
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.message = ""
		m.messageType = ""

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.view {
		case ViewForm:
			return m.updateForm(msg)
		case ViewPicker:
			return m.updatePicker(msg)
		case ViewSearch:
			return m.updateSearch(msg)
		case ViewDownload:
			return m.updateDownload(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.pickerReady {
			m.picker.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case inventoryLoadedMsg:
		m.loading = false
		m.rebuildPicker()
		return m, nil

	case errorMsg:
		m.loading = false
		m.downloadBusy = false
		m.message = msg.err.Error()
		m.messageType = "error"
		return m, nil

	case invoiceContextMsg:
		m.downloadBusy = false
		m.invoiceCtx = msg.ctx
		m.downloadErrs = ValidateDownloadItems(msg.ctx.Items)
		return m, nil

	case downloadDoneMsg:
		m.downloadBusy = false
		m.downloadedTo = msg.path
		cmd := m.toast("Invoice PDF saved", SeveritySuccess)
		return m, cmd

	case invoiceSavedMsg:
		// Prefill the download flow with the fresh invoice number
		m.refInput.SetValue(msg.number)
		cmd := m.toast(fmt.Sprintf("Invoice %s created!", msg.number), SeveritySuccess)
		return m, cmd

	case clearNotificationMsg:
		if msg.seq == m.notificationSeq {
			m.showNotification = false
			m.notification = ""
		}
		return m, nil
	}

	return m, nil
}

// rebuildPicker regenerates the dropdown so placed items disappear from it
func (m *Model) rebuildPicker() {
	available := m.form.ShowAll()
	items := make([]list.Item, len(available))
	for i, it := range available {
		items[i] = pickerItem{item: it, label: it.OptionLabel(m.form.CurrencySymbol())}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.Styles.SelectedTitle = selectedStyle

	w, h := m.width-4, m.height-10
	if w <= 0 {
		w = 76
	}
	if h <= 0 {
		h = 18
	}

	m.picker = list.New(items, delegate, w, h)
	m.picker.Title = "Select product..."
	m.picker.SetShowStatusBar(false)
	m.picker.SetFilteringEnabled(false)
	m.picker.Styles.Title = titleStyle
	m.pickerReady = true
}

func (m Model) View() string {
	var content string
	switch m.view {
	case ViewForm:
		content = m.renderForm()
	case ViewPicker:
		content = m.renderPicker()
	case ViewSearch:
		content = m.renderSearch()
	case ViewDownload:
		content = m.renderDownload()
	}

	var b strings.Builder

	status := " " + m.client.Config.Brand + " | " + m.client.Config.ServerURL + " "
	b.WriteString(statusBarStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(breadcrumbStyle.Render("  " + m.breadcrumb()))
	b.WriteString("\n")

	if m.showNotification {
		switch m.notificationType {
		case SeverityWarning:
			b.WriteString(notificationWarning.Render("! " + m.notification))
		case SeverityError:
			b.WriteString(notificationError.Render("✗ " + m.notification))
		default:
			b.WriteString(notificationSuccess.Render("✓ " + m.notification))
		}
		b.WriteString("\n")
	}

	b.WriteString(content)

	if m.message != "" {
		b.WriteString("\n\n")
		if m.messageType == "error" {
			b.WriteString(errorStyle.Render("Error: " + m.message))
		} else {
			b.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.helpLine()))

	return b.String()
}

func (m Model) breadcrumb() string {
	switch m.view {
	case ViewPicker:
		return "Invoice > Add from inventory"
	case ViewSearch:
		return "Invoice > Search"
	case ViewDownload:
		return "Invoice > Download"
	default:
		return "Invoice"
	}
}

func (m Model) helpLine() string {
	switch m.view {
	case ViewForm:
		return "tab: next field • ctrl+n: new row • ctrl+p: pick from inventory • ctrl+f: search • ctrl+r: remove row • ctrl+s: save • ctrl+g: download • ctrl+c: quit"
	case ViewPicker:
		return "↑/↓: navigate • enter: add to invoice • esc: back"
	case ViewSearch:
		return "type to filter • ctrl+a: show all • ↑/↓: select • enter: add to invoice • esc: close"
	case ViewDownload:
		return "enter: confirm • esc: back"
	}
	return ""
}

// RunTUI starts the interactive invoice builder
func RunTUI(client *Client) error {
	p := tea.NewProgram(NewTUI(client), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
