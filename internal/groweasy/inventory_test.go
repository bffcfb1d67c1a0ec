package groweasy

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testClient(srv *httptest.Server) *Client {
	return NewClient(&Config{
		ServerURL:      srv.URL,
		APIToken:       "test-token",
		CurrencySymbol: "Rs.",
	})
}

func TestDirectoryLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/inventory_items" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Seed","price":5.5,"stock":10},{"id":"x-2","name":"Soil","price":20,"stock":0}]`))
	}))
	defer srv.Close()

	var dir Directory
	if err := dir.Load(testClient(srv)); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	items := dir.Items()
	if len(items) != 2 {
		t.Fatalf("loaded %d items, want 2", len(items))
	}
	if items[0].KeyID() != "1" {
		t.Errorf("numeric id normalized to %q, want \"1\"", items[0].KeyID())
	}
	if items[1].KeyID() != "x-2" {
		t.Errorf("string id = %q, want \"x-2\"", items[1].KeyID())
	}
}

func TestDirectoryLoadFailureKeepsData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	dir := Directory{items: []InventoryItem{{ID: "1", Name: "Seed", Price: 5, Stock: 10}}}
	if err := dir.Load(testClient(srv)); err == nil {
		t.Fatal("expected error from failing server")
	}
	if len(dir.Items()) != 1 {
		t.Fatalf("failed load must leave prior data untouched, got %d items", len(dir.Items()))
	}
}

func TestDirectoryFilter(t *testing.T) {
	dir := Directory{items: []InventoryItem{
		{ID: "1", Name: "Tomato Seeds", Price: 5, Stock: 10},
		{ID: "2", Name: "Potting Soil", Price: 20, Stock: 4},
		{ID: "3", Name: "Garden Tomato Cage", Price: 12, Stock: 7},
	}}
	used := map[string]struct{}{"3": {}}

	tests := []struct {
		name        string
		term        string
		excludeUsed bool
		wantIDs     []string
	}{
		{"case-insensitive match", "TOMATO", false, []string{"1", "3"}},
		{"substring match", "oil", false, []string{"2"}},
		{"used ids excluded", "tomato", true, []string{"1"}},
		{"empty term with exclusion lists all available", "", true, []string{"1", "2"}},
		{"no match", "cucumber", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dir.Filter(tt.term, used, tt.excludeUsed)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Filter returned %d items, want %d", len(got), len(tt.wantIDs))
			}
			for i, it := range got {
				if it.KeyID() != tt.wantIDs[i] {
					t.Errorf("result[%d] = %q, want %q", i, it.KeyID(), tt.wantIDs[i])
				}
			}
		})
	}
}

func TestAvailableMatchesEmptyFilter(t *testing.T) {
	dir := Directory{items: []InventoryItem{
		{ID: "1", Name: "A", Price: 1, Stock: 1},
		{ID: "2", Name: "B", Price: 2, Stock: 2},
	}}
	used := map[string]struct{}{"2": {}}

	available := dir.Available(used)
	filtered := dir.Filter("", used, true)
	if len(available) != len(filtered) {
		t.Fatalf("Available() and empty Filter() disagree: %d vs %d", len(available), len(filtered))
	}
	for i := range available {
		if available[i].KeyID() != filtered[i].KeyID() {
			t.Errorf("position %d: %q vs %q", i, available[i].KeyID(), filtered[i].KeyID())
		}
	}
}

func TestOptionLabel(t *testing.T) {
	it := InventoryItem{ID: "1", Name: "Tomato Seeds", Price: 5.5, Stock: 10}
	want := "Tomato Seeds - Rs.5.5 (Stock: 10)"
	if got := it.OptionLabel("Rs."); got != want {
		t.Errorf("OptionLabel = %q, want %q", got, want)
	}

	whole := InventoryItem{ID: "2", Name: "Soil", Price: 20, Stock: 4}
	if got := whole.OptionLabel("$"); got != "Soil - $20 (Stock: 4)" {
		t.Errorf("OptionLabel = %q", got)
	}
}

func TestNamesAreEscaped(t *testing.T) {
	it := InventoryItem{ID: "1", Name: "<script>alert(1)</script>", Price: 1, Stock: 1}

	label := it.OptionLabel("Rs.")
	if strings.Contains(label, "<script>") {
		t.Errorf("option label contains raw markup: %q", label)
	}
	if !strings.Contains(label, "&lt;script&gt;") {
		t.Errorf("option label not escaped: %q", label)
	}

	if got := escapeName(`a & "b" 'c'`); got != "a &amp; &#34;b&#34; &#39;c&#39;" {
		t.Errorf("escapeName = %q", got)
	}
}
