// ABOUTME: Web server subcommand
// ABOUTME: Starts the JSON API on a local port
package cli

import (
	"database/sql"
	"flag"

	"github.com/harperreed/bizdesk/store"
	"github.com/harperreed/bizdesk/web"
)

// ServeCommand starts the JSON API server.
func ServeCommand(desk *store.Desk, database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.Int("port", 8080, "Port to listen on")
	_ = fs.Parse(args)

	return web.NewServer(desk, database).Start(*port)
}
