package groweasy

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// InventoryItem is one product from the server catalog. The server is the
// source of truth; items are immutable for the lifetime of the process.
type InventoryItem struct {
	ID    interface{} `json:"id"`
	Name  string      `json:"name"`
	Price float64     `json:"price"`
	Stock int         `json:"stock"`
}

// KeyID returns the item id in its canonical string form. The server sends
// numeric or string ids depending on the backing table; comparisons always
// happen on the string form.
func (it InventoryItem) KeyID() string {
	switch v := it.ID.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// OptionLabel formats the item the way the picker shows it
func (it InventoryItem) OptionLabel(symbol string) string {
	return fmt.Sprintf("%s - %s%s (Stock: %d)",
		escapeName(it.Name), symbol, formatPrice(it.Price), it.Stock)
}

// Directory holds the inventory list, fetched once per run
type Directory struct {
	items []InventoryItem
}

// Load fetches the catalog from the server. On failure the previous data is
// left untouched and the error is logged; there is no retry.
func (d *Directory) Load(c *Client) error {
	var items []InventoryItem
	if err := c.Request("GET", "/api/inventory_items", nil, &items); err != nil {
		logger.Error().Err(err).Msg("failed to load inventory")
		return err
	}
	d.items = items
	logger.Info().Int("count", len(items)).Msg("inventory loaded")
	return nil
}

// Items returns the full catalog
func (d *Directory) Items() []InventoryItem {
	return d.items
}

// Find returns the item with the given id, compared as string
func (d *Directory) Find(id string) (InventoryItem, bool) {
	for _, it := range d.items {
		if it.KeyID() == id {
			return it, true
		}
	}
	return InventoryItem{}, false
}

// Filter returns items whose name contains term (case-insensitive). When
// excludeUsed is set, ids present in used are omitted.
func (d *Directory) Filter(term string, used map[string]struct{}, excludeUsed bool) []InventoryItem {
	term = strings.ToLower(strings.TrimSpace(term))
	var out []InventoryItem
	for _, it := range d.items {
		if term != "" && !strings.Contains(strings.ToLower(it.Name), term) {
			continue
		}
		if excludeUsed {
			if _, taken := used[it.KeyID()]; taken {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

// Available lists every item not yet placed on the invoice. Equivalent to an
// empty-term Filter with exclusion enabled.
func (d *Directory) Available(used map[string]struct{}) []InventoryItem {
	return d.Filter("", used, true)
}

// escapeName escapes HTML-special characters in server-supplied item names
// before they are interpolated into rendered text or outgoing payloads.
func escapeName(name string) string {
	return html.EscapeString(name)
}

// formatPrice prints a price with minimal digits, the way the web dropdown
// shows it (no trailing zeros on whole amounts).
func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// CmdInventory prints the catalog as a table
func (c *Client) CmdInventory() error {
	var dir Directory
	if err := dir.Load(c); err != nil {
		return err
	}

	items := dir.Items()
	if len(items) == 0 {
		fmt.Printf("%sNo inventory items found%s\n", Yellow, Reset)
		return nil
	}

	fmt.Printf("%sInventory (%d items):%s\n\n", Blue, len(items), Reset)
	for _, it := range items {
		stockColor := Green
		if it.Stock == 0 {
			stockColor = Red
		} else if it.Stock <= 10 {
			stockColor = Yellow
		}
		fmt.Printf("  %-40s %12s  %sstock: %d%s\n",
			it.Name, c.FormatCurrency(it.Price), stockColor, it.Stock, Reset)
	}
	return nil
}
