package groweasy

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// DownloadItem is one line of the prepared invoice as the server hands it
// back for download
type DownloadItem struct {
	Name  string  `json:"name"`
	Code  string  `json:"code,omitempty"`
	Qty   float64 `json:"qty"`
	Price float64 `json:"price"`
}

// InvoiceContext is the server-prepared invoice view: the invoice fields the
// server rendered, the item list, and an optional QR code.
type InvoiceContext struct {
	Fields map[string]interface{}
	Items  []DownloadItem
	QR     string
}

// FetchInvoiceContext loads the prepared invoice data for a reference
func (c *Client) FetchInvoiceContext(ref string) (*InvoiceContext, error) {
	var raw map[string]interface{}
	if err := c.Request("GET", "/invoice/context/"+url.PathEscape(ref), nil, &raw); err != nil {
		return nil, err
	}

	ctx := &InvoiceContext{Fields: raw}

	if qr, ok := raw["qr_b64"].(string); ok {
		ctx.QR = qr
		delete(raw, "qr_b64")
	}

	if items, ok := raw["items"]; ok {
		// Round-trip through JSON to get typed items out of the loose map
		buf, err := json.Marshal(items)
		if err == nil {
			json.Unmarshal(buf, &ctx.Items)
		}
		delete(raw, "items")
	}

	return ctx, nil
}

// BuildDownloadPayload clones the server-supplied fields and attaches the
// item list and QR data. The result is what gets serialized into the single
// download form field.
func BuildDownloadPayload(ctx *InvoiceContext) map[string]interface{} {
	payload := make(map[string]interface{}, len(ctx.Fields)+2)
	for k, v := range ctx.Fields {
		payload[k] = v
	}
	payload["items"] = ctx.Items
	if ctx.QR != "" {
		payload["qr_b64"] = ctx.QR
	}
	return payload
}

// ValidateDownloadItems checks every named item for a positive quantity and
// price. All violations are collected; the caller surfaces them together.
func ValidateDownloadItems(items []DownloadItem) []string {
	var errs []string
	for i, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			name = strings.TrimSpace(it.Code)
		}
		if name == "" {
			continue
		}
		if it.Qty <= 0 {
			errs = append(errs, fmt.Sprintf("Row %d: Quantity required.", i+1))
		}
		if it.Price <= 0 {
			errs = append(errs, fmt.Sprintf("Row %d: Price required.", i+1))
		}
	}
	return errs
}

// SubmitDownload posts the serialized payload as a form submission and
// writes the returned PDF under the configured download directory. Returns
// the written file path.
func (c *Client) SubmitDownload(ref string, payload map[string]interface{}) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to serialize payload: %w", err)
	}

	form := url.Values{}
	form.Set("download_data", string(data))

	fullURL := c.Config.ServerURL + "/invoice/download/" + url.PathEscape(ref)
	req, err := http.NewRequest("POST", fullURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Config.APIToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("download failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	outPath := filepath.Join(c.Config.DownloadDir, ref+".pdf")
	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("cannot create %s: %w", outPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	logger.Info().Str("ref", ref).Str("path", outPath).Msg("invoice downloaded")
	return outPath, nil
}

// CmdDownload runs the confirmation flow without the TUI
func (c *Client) CmdDownload(ref string) error {
	ctx, err := c.FetchInvoiceContext(ref)
	if err != nil {
		return err
	}

	if errs := ValidateDownloadItems(ctx.Items); len(errs) > 0 {
		fmt.Printf("%sCannot download PDF:%s\n\n", Red, Reset)
		for _, e := range errs {
			fmt.Printf("  %s\n", e)
		}
		return fmt.Errorf("%d validation error(s)", len(errs))
	}

	path, err := c.SubmitDownload(ref, BuildDownloadPayload(ctx))
	if err != nil {
		return err
	}

	fmt.Printf("%s✓ Saved %s%s\n", Green, path, Reset)
	return nil
}
