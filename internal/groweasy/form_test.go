package groweasy

import (
	"fmt"
	"testing"
)

type recordedToast struct {
	message  string
	severity Severity
}

func testForm(items ...InventoryItem) (*FormManager, *[]recordedToast) {
	dir := &Directory{items: items}
	var toasts []recordedToast
	form := NewFormManager(dir, "Rs.", func(msg string, sev Severity) {
		toasts = append(toasts, recordedToast{msg, sev})
	})
	return form, &toasts
}

func linkedIDs(f *FormManager) map[string]struct{} {
	out := make(map[string]struct{})
	for _, r := range f.Rows() {
		if r.ItemID != "" {
			out[r.ItemID] = struct{}{}
		}
	}
	return out
}

// The used set must always equal the linked ids of the present rows,
// whatever sequence of adds and removes ran.
func TestUsedSetTracksRows(t *testing.T) {
	form, _ := testForm(
		InventoryItem{ID: "1", Name: "Seed", Price: 5, Stock: 10},
		InventoryItem{ID: "2", Name: "Soil", Price: 20, Stock: 4},
		InventoryItem{ID: "3", Name: "Pot", Price: 12, Stock: 7},
	)

	checkInvariant := func(step string) {
		t.Helper()
		want := linkedIDs(form)
		got := form.Used()
		if len(got) != len(want) {
			t.Fatalf("%s: used set has %d ids, rows have %d linked ids", step, len(got), len(want))
		}
		for id := range want {
			if _, ok := got[id]; !ok {
				t.Fatalf("%s: id %q linked by a row but missing from used set", step, id)
			}
		}
	}

	id1, _ := form.AddInventoryItem("1", "Seed", 5, 10)
	checkInvariant("add 1")
	form.AddInventoryItem("2", "Soil", 20, 4)
	checkInvariant("add 2")
	form.AddManualRow()
	checkInvariant("add manual")
	form.RemoveRow(id1)
	checkInvariant("remove 1")
	form.AddInventoryItem("3", "Pot", 12, 7)
	checkInvariant("add 3")
	id1b, _ := form.AddInventoryItem("1", "Seed", 5, 10)
	checkInvariant("re-add 1")
	form.RemoveRow(id1b)
	checkInvariant("remove re-added 1")
}

func TestDuplicateAddIsNoOp(t *testing.T) {
	form, toasts := testForm(InventoryItem{ID: "7", Name: "Widget", Price: 5, Stock: 3})

	if _, ok := form.AddInventoryItem("7", "Widget", 5, 3); !ok {
		t.Fatal("first add should succeed")
	}
	rowsBefore := len(form.Rows())

	if _, ok := form.AddInventoryItem("7", "Widget", 5, 3); ok {
		t.Fatal("duplicate add should be rejected")
	}
	if len(form.Rows()) != rowsBefore {
		t.Fatalf("duplicate add created a row: %d rows, want %d", len(form.Rows()), rowsBefore)
	}
	if _, used := form.Used()["7"]; !used {
		t.Fatal("used set lost the id on duplicate add")
	}

	last := (*toasts)[len(*toasts)-1]
	if last.severity != SeverityWarning {
		t.Fatalf("duplicate add toast severity = %v, want warning", last.severity)
	}
}

func TestGrandTotal(t *testing.T) {
	tests := []struct {
		name string
		rows []struct{ qty, price string }
		want string
	}{
		{
			name: "simple sum",
			rows: []struct{ qty, price string }{{"2", "5"}, {"3", "10.50"}},
			want: "41.50",
		},
		{
			name: "non-numeric qty counts as zero",
			rows: []struct{ qty, price string }{{"abc", "100"}, {"2", "5"}},
			want: "10.00",
		},
		{
			name: "empty price counts as zero",
			rows: []struct{ qty, price string }{{"4", ""}},
			want: "0.00",
		},
		{
			name: "no rows",
			rows: nil,
			want: "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form, _ := testForm()
			for _, r := range tt.rows {
				id := form.AddManualRow()
				form.SetName(id, "thing")
				form.SetQty(id, r.qty)
				form.SetPrice(id, r.price)
			}
			if got := form.GrandTotalDisplay(); got != tt.want {
				t.Errorf("GrandTotalDisplay() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemoveReleasesItem(t *testing.T) {
	item := InventoryItem{ID: "9", Name: "Fertilizer", Price: 30, Stock: 12}
	form, _ := testForm(item)

	rowID, _ := form.AddInventoryItem("9", "Fertilizer", 30, 12)
	if len(form.ShowAll()) != 0 {
		t.Fatal("placed item should not be listed as available")
	}

	form.RemoveRow(rowID)
	available := form.ShowAll()
	if len(available) != 1 || available[0].KeyID() != "9" {
		t.Fatalf("removed item should be available again, got %v", available)
	}
}

func TestRemoveManualRowLeavesUsedSetAlone(t *testing.T) {
	form, _ := testForm(InventoryItem{ID: "1", Name: "Seed", Price: 5, Stock: 10})
	form.AddInventoryItem("1", "Seed", 5, 10)
	manual := form.AddManualRow()

	form.RemoveRow(manual)
	if _, ok := form.Used()["1"]; !ok {
		t.Fatal("removing a manual row must not release inventory ids")
	}
}

func TestQuantityExceedingStock(t *testing.T) {
	form, _ := testForm(InventoryItem{ID: "5", Name: "Rake", Price: 10, Stock: 3})
	rowID, _ := form.AddInventoryItem("5", "Rake", 10, 3)

	form.SetQty(rowID, "5")
	row, _ := form.Row(rowID)
	if !row.QtyInvalid {
		t.Error("qty above stock should flag the row invalid")
	}
	// The flag is visual only; the total still reflects the entered qty
	if got := form.GrandTotalDisplay(); got != "50.00" {
		t.Errorf("GrandTotalDisplay() = %q, want 50.00", got)
	}

	form.SetQty(rowID, "3")
	row, _ = form.Row(rowID)
	if row.QtyInvalid {
		t.Error("qty within stock should clear the invalid flag")
	}
}

func TestLinkedRowFieldsAreFixed(t *testing.T) {
	form, _ := testForm(InventoryItem{ID: "2", Name: "Soil", Price: 20, Stock: 4})
	rowID, _ := form.AddInventoryItem("2", "Soil", 20, 4)

	form.SetName(rowID, "Sand")
	form.SetPrice(rowID, "1")

	row, _ := form.Row(rowID)
	if row.Name != "Soil" {
		t.Errorf("linked row name changed to %q", row.Name)
	}
	if row.Price != "20" {
		t.Errorf("linked row price changed to %q", row.Price)
	}
}

func TestLinkedRowDefaults(t *testing.T) {
	form, _ := testForm()
	rowID, _ := form.AddInventoryItem("4", "Hose", 12.5, 8)
	row, _ := form.Row(rowID)

	if row.Qty != "1" {
		t.Errorf("new linked row qty = %q, want 1", row.Qty)
	}
	if row.Price != "12.5" {
		t.Errorf("new linked row price = %q, want 12.5", row.Price)
	}
	if row.Stock != 8 {
		t.Errorf("new linked row stock = %d, want 8", row.Stock)
	}
	if got := fmt.Sprintf("%.2f", row.LineTotal()); got != "12.50" {
		t.Errorf("line total = %s, want 12.50", got)
	}
}

func TestEmptyState(t *testing.T) {
	form, _ := testForm()
	if !form.Empty() {
		t.Fatal("new form should be empty")
	}
	id := form.AddManualRow()
	if form.Empty() {
		t.Fatal("form with a row should not be empty")
	}
	form.RemoveRow(id)
	if !form.Empty() {
		t.Fatal("form should be empty after removing the only row")
	}
}
