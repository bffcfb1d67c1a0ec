package groweasy

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Colors for terminal output
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

// Config holds the CLI configuration
type Config struct {
	ServerURL      string
	APIToken       string
	CurrencySymbol string // Shown next to prices (default: "Rs.")
	Brand          string // CLI branding shown in TUI (default: "GrowEasy CLI")
	DownloadDir    string // Where downloaded PDFs are written (default: ".")
	DebugLog       string // Optional path for the debug log file
}

// Client handles API requests against the GrowEasy server
type Client struct {
	Config     *Config
	HTTPClient *http.Client
}

// LoadConfig reads the .groweasy-config file
func LoadConfig() (*Config, error) {
	// Find config file in various locations
	configPaths := []string{
		".groweasy-config",
		"../.groweasy-config",
		filepath.Join(filepath.Dir(os.Args[0]), ".groweasy-config"),
		filepath.Join(filepath.Dir(os.Args[0]), "..", ".groweasy-config"),
	}

	var configPath string
	for _, p := range configPaths {
		if _, err := os.Stat(p); err == nil {
			configPath = p
			break
		}
	}

	if configPath == "" {
		return nil, fmt.Errorf("config file not found. Copy .groweasy-config.example to .groweasy-config")
	}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open config: %w", err)
	}
	defer file.Close()

	config := &Config{
		CurrencySymbol: "Rs.",
		Brand:          "GrowEasy CLI",
		DownloadDir:    ".",
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), "\"'")

		switch key {
		case "GROWEASY_URL":
			config.ServerURL = strings.TrimRight(value, "/")
		case "GROWEASY_API_TOKEN":
			config.APIToken = value
		case "GROWEASY_CURRENCY":
			if value != "" {
				config.CurrencySymbol = value
			}
		case "GROWEASY_BRAND":
			if value != "" {
				config.Brand = value
			}
		case "GROWEASY_DOWNLOAD_DIR":
			if value != "" {
				config.DownloadDir = value
			}
		case "GROWEASY_DEBUG_LOG":
			config.DebugLog = value
		}
	}

	if config.ServerURL == "" || config.APIToken == "" {
		return nil, fmt.Errorf("missing required config: GROWEASY_URL, GROWEASY_API_TOKEN")
	}

	return config, nil
}

// NewClient creates a new API client
func NewClient(config *Config) *Client {
	return &Client{
		Config: config,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Request makes a JSON API request and decodes the response into out.
// Pass nil out to discard the body.
func (c *Client) Request(method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	fullURL := c.Config.ServerURL + path
	req, err := http.NewRequest(method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.Config.APIToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("API error: %s", apiErr.Error)
		}
		return fmt.Errorf("API error: %s", resp.Status)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %s", string(respBody))
	}

	return nil
}

// FormatCurrency renders an amount with the configured currency symbol
func (c *Client) FormatCurrency(amount float64) string {
	return fmt.Sprintf("%s%.2f", c.Config.CurrencySymbol, amount)
}

// CmdPing tests the connection
func (c *Client) CmdPing() error {
	fmt.Printf("%sTesting connection to GrowEasy...%s\n", Blue, Reset)

	var status struct {
		User string `json:"user"`
	}
	if err := c.Request("GET", "/api/ping", nil, &status); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	fmt.Printf("%s✓ Connection successful%s\n", Green, Reset)
	if status.User != "" {
		fmt.Printf("  Authenticated as: %s%s%s\n", Yellow, status.User, Reset)
	}
	fmt.Printf("  Server: %s\n", c.Config.ServerURL)
	return nil
}

// CmdConfig shows current configuration
func (c *Client) CmdConfig() error {
	fmt.Printf("%sCurrent configuration:%s\n", Blue, Reset)
	fmt.Printf("  Server URL: %s\n", c.Config.ServerURL)
	if len(c.Config.APIToken) > 8 {
		fmt.Printf("  API Token: %s...\n", c.Config.APIToken[:8])
	} else {
		fmt.Printf("  API Token: ****\n")
	}
	fmt.Printf("  Currency: %s\n", c.Config.CurrencySymbol)
	fmt.Printf("  Download dir: %s\n", c.Config.DownloadDir)
	if c.Config.DebugLog != "" {
		fmt.Printf("  Debug log: %s\n", c.Config.DebugLog)
	} else {
		fmt.Printf("  Debug log: %sdisabled%s\n", Yellow, Reset)
	}
	return nil
}
