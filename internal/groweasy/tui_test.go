package groweasy

import (
	"strings"
	"testing"
)

func testModel() Model {
	client := NewClient(&Config{
		ServerURL:      "http://localhost:5000",
		APIToken:       "t",
		CurrencySymbol: "Rs.",
		Brand:          "GrowEasy CLI",
	})
	return NewTUI(client)
}

func TestStockBadgeTiers(t *testing.T) {
	tests := []struct {
		stock int
		want  string
	}{
		{0, "Stock: 0"},
		{10, "Stock: 10"},
		{11, "Stock: 11"},
	}
	for _, tt := range tests {
		if got := stockBadge(tt.stock); !strings.Contains(got, tt.want) {
			t.Errorf("stockBadge(%d) = %q, want it to contain %q", tt.stock, got, tt.want)
		}
	}
}

func TestNewTUIStartsWithManualRow(t *testing.T) {
	m := testModel()
	rows := m.form.Rows()
	if len(rows) != 1 || rows[0].Kind != RowManual {
		t.Fatalf("expected one manual row on start, got %v", rows)
	}
	if len(m.rowInputs) != 1 {
		t.Fatalf("expected one set of row inputs, got %d", len(m.rowInputs))
	}
}

func TestEditableFieldsSkipLinkedNameAndPrice(t *testing.T) {
	m := testModel()
	rowID, _ := m.form.AddInventoryItem("1", "Seed", 5, 10)
	m.rowInputs = append(m.rowInputs, newRowInputs(m.form, rowID))

	fields := m.editableFields()
	// manual row: name, qty, price; linked row: qty only
	if len(fields) != 4 {
		t.Fatalf("got %d editable fields, want 4", len(fields))
	}
	last := fields[len(fields)-1]
	if last[0] != 1 || last[1] != 1 {
		t.Errorf("linked row should expose only its qty field, got %v", last)
	}
}

func TestToastSequenceIgnoresStaleClear(t *testing.T) {
	m := testModel()
	m.toast("first", SeveritySuccess)
	staleSeq := m.notificationSeq
	m.toast("second", SeverityWarning)

	next, _ := m.Update(clearNotificationMsg{seq: staleSeq})
	m = next.(Model)
	if !m.showNotification || m.notification != "second" {
		t.Error("stale clear message must not dismiss a newer toast")
	}

	next, _ = m.Update(clearNotificationMsg{seq: m.notificationSeq})
	m = next.(Model)
	if m.showNotification {
		t.Error("matching clear message should dismiss the toast")
	}
}
