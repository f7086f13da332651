// ABOUTME: Entry point for the business desk MCP server and CLI
// ABOUTME: Routes to MCP server, web server, or CLI commands based on arguments
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/harperreed/bizdesk/cli"
	"github.com/harperreed/bizdesk/db"
	"github.com/harperreed/bizdesk/store"
	"github.com/harperreed/bizdesk/vault"
)

const version = "0.1.0"

func main() {
	// Best effort: a missing .env just means the environment is already set
	_ = godotenv.Load()

	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dataDir := flag.String("data-dir", "", "Data directory (default: ~/.local/share/bizdesk)")
	quietNoops := flag.Bool("quiet-noops", false, "Suppress notifications for updates that change nothing")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("bizdesk version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "mcp":
		desk, database, cleanup := openDesk(*dataDir, *quietNoops)
		defer cleanup()

		if err := cli.MCPCommand(desk, database); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "serve":
		desk, database, cleanup := openDesk(*dataDir, *quietNoops)
		defer cleanup()

		if err := cli.ServeCommand(desk, database, commandArgs); err != nil {
			log.Fatalf("Web server failed: %v", err)
		}

	case "feed":
		desk, _, cleanup := openDesk(*dataDir, *quietNoops)
		defer cleanup()

		if len(commandArgs) == 0 {
			fmt.Println("Error: feed requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		feedCommand := commandArgs[0]
		feedArgs := commandArgs[1:]

		switch feedCommand {
		case "list":
			if err := cli.FeedListCommand(desk, feedArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "read":
			if err := cli.FeedReadCommand(desk, feedArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "clear":
			if err := cli.FeedClearCommand(desk, feedArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown feed command: %s\n\n", feedCommand)
			printUsage()
			os.Exit(1)
		}

	case "dashboard":
		database, err := db.OpenDatabase(databasePath(*dataDir))
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer database.Close()

		if len(commandArgs) == 0 {
			fmt.Println("Error: dashboard requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		dashCommand := commandArgs[0]
		dashArgs := commandArgs[1:]

		switch dashCommand {
		case "template":
			if err := cli.DashboardTemplateCommand(dashArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "import":
			if err := cli.DashboardImportCommand(database, dashArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "export":
			if err := cli.DashboardExportCommand(database, dashArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "metrics":
			if err := cli.DashboardMetricsCommand(database, dashArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "snapshots":
			if err := cli.DashboardSnapshotsCommand(database, dashArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "report":
			if err := cli.DashboardReportCommand(database, dashArgs); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown dashboard command: %s\n\n", dashCommand)
			printUsage()
			os.Exit(1)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// openDesk wires the stores to the vault-backed feed and opens the snapshot
// database.
func openDesk(dataDir string, quietNoops bool) (*store.Desk, *sql.DB, func()) {
	vaultDir := vault.DefaultPath()
	if dataDir != "" {
		vaultDir = filepath.Join(dataDir, "vault")
	}

	v, err := vault.Open(vaultDir)
	if err != nil {
		log.Fatalf("Failed to open vault: %v", err)
	}

	database, err := db.OpenDatabase(databasePath(dataDir))
	if err != nil {
		v.Close()
		log.Fatalf("Failed to open database: %v", err)
	}

	desk := store.NewDesk(store.Options{
		Persister:  v,
		QuietNoops: quietNoops,
	})

	cleanup := func() {
		_ = database.Close()
		_ = v.Close()
	}
	return desk, database, cleanup
}

func databasePath(dataDir string) string {
	if dataDir != "" {
		return filepath.Join(dataDir, "bizdesk.db")
	}
	return db.DefaultPath()
}

func printUsage() {
	fmt.Println(`bizdesk - business desk MCP server and CLI

Usage:
  bizdesk [flags] <command> [args]

Commands:
  mcp                          Start MCP server on stdio (for Claude Desktop)
  serve [--port 8080]          Start the JSON API server

  feed list [--unread-only] [--limit N]
  feed read <id> | --all
  feed clear [id]

  dashboard template [--out file.xlsx]
  dashboard import <file.xlsx> [--period 2026-08]
  dashboard export [--out file.xlsx]
  dashboard metrics
  dashboard snapshots [--limit N]
  dashboard report [--model name]

Flags:
  --version                    Show version and exit
  --data-dir <dir>             Data directory (default: ~/.local/share/bizdesk)
  --quiet-noops                Suppress notifications for no-op updates

Environment:
  GEMINI_API_KEY               API key for 'dashboard report' (also read from .env)`)
}
