package groweasy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// RowKind distinguishes the two row variants. Manual rows are free-text
// entries with every field editable and no stock linkage; linked rows come
// from the inventory picker with name and price fixed by the catalog.
type RowKind int

const (
	RowManual RowKind = iota
	RowLinked
)

// Row is one invoice line. Qty and Price hold the raw input text, mirroring
// the form fields; non-numeric values count as zero in totals.
type Row struct {
	ID         string
	Kind       RowKind
	ItemID     string // linked rows only
	Name       string
	Qty        string
	Price      string
	Stock      int // linked rows only, upper bound for Qty
	QtyInvalid bool
}

// QtyValue parses the quantity field, non-numeric as 0
func (r Row) QtyValue() int {
	n, err := strconv.Atoi(strings.TrimSpace(r.Qty))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// PriceValue parses the price field, non-numeric as 0
func (r Row) PriceValue() float64 {
	p, err := strconv.ParseFloat(strings.TrimSpace(r.Price), 64)
	if err != nil || p < 0 {
		return 0
	}
	return p
}

// LineTotal is qty times unit price, derived on every read
func (r Row) LineTotal() float64 {
	return float64(r.QtyValue()) * r.PriceValue()
}

// FormManager owns the invoice line items: the row list, the set of
// inventory ids already placed, and the derived totals. It holds no
// rendering state; screens project it.
type FormManager struct {
	dir      *Directory
	rows     []Row
	used     map[string]struct{}
	currency string
	notify   Notifier
}

// NewFormManager builds a manager around an inventory directory. The
// notifier is injected; pass StderrNotifier outside the TUI.
func NewFormManager(dir *Directory, currency string, notify Notifier) *FormManager {
	if currency == "" {
		currency = "Rs."
	}
	if notify == nil {
		notify = StderrNotifier
	}
	return &FormManager{
		dir:      dir,
		used:     make(map[string]struct{}),
		currency: currency,
		notify:   notify,
	}
}

// Rows returns the current line items in order
func (f *FormManager) Rows() []Row {
	return f.rows
}

// Row looks up a row by id
func (f *FormManager) Row(rowID string) (Row, bool) {
	for _, r := range f.rows {
		if r.ID == rowID {
			return r, true
		}
	}
	return Row{}, false
}

// Empty reports whether the invoice has no line items yet
func (f *FormManager) Empty() bool {
	return len(f.rows) == 0
}

// CurrencySymbol returns the configured symbol
func (f *FormManager) CurrencySymbol() string {
	return f.currency
}

// Used returns the set of inventory ids currently placed on the invoice
func (f *FormManager) Used() map[string]struct{} {
	return f.used
}

// AddManualRow appends a blank free-text row and returns its id
func (f *FormManager) AddManualRow() string {
	row := Row{
		ID:   uuid.NewString(),
		Kind: RowManual,
	}
	f.rows = append(f.rows, row)
	return row.ID
}

// AddInventoryItem places a catalog item on the invoice. Adding an id that
// is already placed is a no-op with a warning toast.
func (f *FormManager) AddInventoryItem(id, name string, price float64, stock int) (string, bool) {
	if _, taken := f.used[id]; taken {
		f.notify("This item is already in the invoice", SeverityWarning)
		return "", false
	}

	f.used[id] = struct{}{}
	row := Row{
		ID:     uuid.NewString(),
		Kind:   RowLinked,
		ItemID: id,
		Name:   name,
		Qty:    "1",
		Price:  formatPrice(price),
		Stock:  stock,
	}
	f.rows = append(f.rows, row)

	f.notify(fmt.Sprintf("%s added!", name), SeveritySuccess)
	return row.ID, true
}

// RemoveRow deletes a row and releases its inventory id, if any
func (f *FormManager) RemoveRow(rowID string) bool {
	for i, r := range f.rows {
		if r.ID != rowID {
			continue
		}
		if r.ItemID != "" {
			delete(f.used, r.ItemID)
		}
		f.rows = append(f.rows[:i], f.rows[i+1:]...)
		f.notify("Item removed", SeverityError)
		return true
	}
	return false
}

// SetQty updates a quantity field and revalidates the row
func (f *FormManager) SetQty(rowID, value string) {
	if r := f.rowRef(rowID); r != nil {
		r.Qty = value
		f.validateQuantity(r)
	}
}

// SetPrice updates a price field. Linked rows keep the catalog price.
func (f *FormManager) SetPrice(rowID, value string) {
	if r := f.rowRef(rowID); r != nil && r.Kind == RowManual {
		r.Price = value
	}
}

// SetName updates a name field. Linked rows keep the catalog name.
func (f *FormManager) SetName(rowID, value string) {
	if r := f.rowRef(rowID); r != nil && r.Kind == RowManual {
		r.Name = value
	}
}

// validateQuantity flags linked rows whose quantity exceeds stock. The flag
// is a visual marker only; it blocks neither editing nor submission here.
func (f *FormManager) validateQuantity(r *Row) {
	if r.Kind != RowLinked {
		r.QtyInvalid = false
		return
	}
	stock := r.Stock
	if item, ok := f.dir.Find(r.ItemID); ok {
		stock = item.Stock
	}
	r.QtyInvalid = r.QtyValue() > stock
}

// GrandTotal sums all line totals, derived on every call
func (f *FormManager) GrandTotal() float64 {
	var total float64
	for _, r := range f.rows {
		total += r.LineTotal()
	}
	return total
}

// GrandTotalDisplay formats the grand total the way the total field shows it
func (f *FormManager) GrandTotalDisplay() string {
	return fmt.Sprintf("%.2f", f.GrandTotal())
}

// Search filters the directory live, excluding placed items
func (f *FormManager) Search(term string) []InventoryItem {
	return f.dir.Filter(term, f.used, true)
}

// ShowAll lists every item not yet placed
func (f *FormManager) ShowAll() []InventoryItem {
	return f.dir.Available(f.used)
}

func (f *FormManager) rowRef(rowID string) *Row {
	for i := range f.rows {
		if f.rows[i].ID == rowID {
			return &f.rows[i]
		}
	}
	return nil
}
