package main

import (
	"fmt"
	"os"

	"github.com/emadaed/groweasy-cli/internal/groweasy"
)

func main() {
	// No arguments or "tui" command -> launch TUI
	if len(os.Args) < 2 || os.Args[1] == "tui" {
		config, err := groweasy.LoadConfig()
		if err != nil {
			fmt.Printf("%sError: %s%s\n", groweasy.Red, err, groweasy.Reset)
			os.Exit(1)
		}
		groweasy.InitLogger(config.DebugLog)
		groweasy.PurgeLegacyCache()
		client := groweasy.NewClient(config)
		if err := groweasy.RunTUI(client); err != nil {
			fmt.Printf("%sError: %s%s\n", groweasy.Red, err, groweasy.Reset)
			os.Exit(1)
		}
		os.Exit(0)
	}

	cmd := os.Args[1]

	// Help doesn't need config
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		printUsage()
		os.Exit(0)
	}

	// Version
	if cmd == "version" || cmd == "-v" || cmd == "--version" {
		fmt.Printf("GrowEasy CLI v%s\n", groweasy.Version)
		os.Exit(0)
	}

	// Load config
	config, err := groweasy.LoadConfig()
	if err != nil {
		fmt.Printf("%sError: %s%s\n", groweasy.Red, err, groweasy.Reset)
		os.Exit(1)
	}

	groweasy.InitLogger(config.DebugLog)
	groweasy.PurgeLegacyCache()

	client := groweasy.NewClient(config)

	// Route commands
	var cmdErr error
	switch cmd {
	case "ping":
		cmdErr = client.CmdPing()
	case "config":
		cmdErr = client.CmdConfig()
	case "inventory":
		cmdErr = client.CmdInventory()
	case "download":
		if len(os.Args) < 3 {
			cmdErr = fmt.Errorf("usage: groweasy-cli download <invoice-number>")
		} else {
			cmdErr = client.CmdDownload(os.Args[2])
		}
	default:
		fmt.Printf("%sUnknown command: %s%s\n", groweasy.Red, cmd, groweasy.Reset)
		printUsage()
		os.Exit(1)
	}

	if cmdErr != nil {
		fmt.Printf("%sError: %s%s\n", groweasy.Red, cmdErr, groweasy.Reset)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%sGrowEasy CLI%s - invoice builder for the GrowEasy server

Usage: groweasy-cli <command> [args...]

%sCommands:%s

  %stui%s                               Launch the interactive invoice builder (default)
  %sping%s                              Test connection and authentication
  %sconfig%s                            Show current configuration
  %sinventory%s                         List inventory items with stock levels
  %sdownload <invoice-number>%s         Validate and download an invoice PDF
  %sversion%s                           Show version information
  %shelp%s                              Show this help

Configuration is read from .groweasy-config (key=value lines):

  GROWEASY_URL=https://billing.example.com
  GROWEASY_API_TOKEN=...
  GROWEASY_CURRENCY=Rs.
  GROWEASY_DOWNLOAD_DIR=~/Downloads
`,
		groweasy.Cyan, groweasy.Reset,
		groweasy.Blue, groweasy.Reset,
		groweasy.Green, groweasy.Reset,
		groweasy.Green, groweasy.Reset,
		groweasy.Green, groweasy.Reset,
		groweasy.Green, groweasy.Reset,
		groweasy.Green, groweasy.Reset,
		groweasy.Green, groweasy.Reset,
		groweasy.Green, groweasy.Reset)
}
