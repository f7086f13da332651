// ABOUTME: Notification feed CLI commands
// ABOUTME: Commands for listing, reading, and clearing the durable feed
package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/harperreed/bizdesk/store"
)

// FeedListCommand prints the feed, newest first.
func FeedListCommand(desk *store.Desk, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	unreadOnly := fs.Bool("unread-only", false, "Show only unread notifications")
	limit := fs.Int("limit", 20, "Maximum number of notifications to show")
	_ = fs.Parse(args)

	notifications := desk.Notifications.All()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tPRIORITY\tTITLE\tMESSAGE\tWHEN")
	_, _ = fmt.Fprintln(w, "--\t--------\t-----\t-------\t----")

	shown := 0
	for _, n := range notifications {
		if *unreadOnly && n.IsRead {
			continue
		}

		marker := "●"
		if n.IsRead {
			marker = " "
		}
		_, _ = fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\t%s\n",
			marker, n.ID, n.Priority, n.Title, n.Message,
			n.Timestamp.Format("2006-01-02 15:04"))

		shown++
		if shown >= *limit {
			break
		}
	}
	_ = w.Flush()

	fmt.Printf("\n%d unread\n", desk.Notifications.UnreadCount())
	return nil
}

// FeedReadCommand marks a notification (or every notification) as read.
func FeedReadCommand(desk *store.Desk, args []string) error {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	all := fs.Bool("all", false, "Mark every notification as read")
	_ = fs.Parse(args)

	if *all {
		marked := desk.Notifications.MarkAllAsRead()
		fmt.Printf("Marked %d notifications as read\n", marked)
		return nil
	}

	if fs.NArg() == 0 {
		return fmt.Errorf("usage: feed read <notification-id> (or --all)")
	}

	id := fs.Arg(0)
	if !desk.Notifications.MarkAsRead(id) {
		return fmt.Errorf("notification not found: %s", id)
	}
	fmt.Printf("Marked %s as read\n", id)
	return nil
}

// FeedClearCommand deletes one notification or empties the feed.
func FeedClearCommand(desk *store.Desk, args []string) error {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() > 0 {
		id := fs.Arg(0)
		if !desk.Notifications.Delete(id) {
			return fmt.Errorf("notification not found: %s", id)
		}
		fmt.Printf("Deleted %s\n", id)
		return nil
	}

	cleared := desk.Notifications.ClearAll()
	fmt.Printf("Cleared %d notifications\n", cleared)
	return nil
}
