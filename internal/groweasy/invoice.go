package groweasy

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// SavedInvoice is the server's answer to a created invoice
type SavedInvoice struct {
	InvoiceNumber string `json:"invoice_number"`
}

// SaveInvoice posts the line items as the invoice form submits them: one
// repeated field per column. Rows without a name are skipped; everything
// else is the server's to validate.
func (c *Client) SaveInvoice(rows []Row) (*SavedInvoice, error) {
	form := url.Values{}
	form.Set("invoice_type", "S")

	var sent int
	for _, r := range rows {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		form.Add("item_name[]", r.Name)
		form.Add("item_qty[]", r.Qty)
		form.Add("item_price[]", r.Price)
		form.Add("item_id[]", r.ItemID)
		sent++
	}

	if sent == 0 {
		return nil, fmt.Errorf("invoice has no items")
	}

	req, err := http.NewRequest("POST", c.Config.ServerURL+"/invoice/process", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Config.APIToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("API error: %s", apiErr.Error)
		}
		return nil, fmt.Errorf("API error: %s", resp.Status)
	}

	var saved SavedInvoice
	if err := json.Unmarshal(body, &saved); err != nil {
		return nil, fmt.Errorf("failed to parse response: %s", string(body))
	}
	if saved.InvoiceNumber == "" {
		return nil, fmt.Errorf("server did not return an invoice number")
	}

	logger.Info().Str("invoice", saved.InvoiceNumber).Int("items", sent).Msg("invoice created")
	return &saved, nil
}
