// ABOUTME: Badger-backed durable storage for the notification feed
// ABOUTME: Persists the whole feed as one JSON document under a fixed key
package vault

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v3"
)

// feedKey is the single fixed key the feed document lives under. Changing
// the document shape requires clearing the vault; there is no migration.
const feedKey = "notifications"

// Vault is the embedded key-value store behind the notification feed. It
// satisfies store.Persister.
type Vault struct {
	db *badger.DB
}

// DefaultPath returns the vault directory under the XDG data home.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, "bizdesk", "vault")
}

// Open opens (creating if needed) the vault at dir.
func Open(dir string) (*Vault, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create vault directory: %w", err)
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault: %w", err)
	}
	return &Vault{db: db}, nil
}

// Load reads the feed document. Returns (nil, nil) when nothing has been
// stored yet.
func (v *Vault) Load() ([]byte, error) {
	var raw []byte
	err := v.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(feedKey))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}
	return raw, nil
}

// Save writes the feed document, replacing any previous version.
func (v *Vault) Save(doc []byte) error {
	err := v.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(feedKey), doc)
	})
	if err != nil {
		return fmt.Errorf("failed to save feed: %w", err)
	}
	return nil
}

// Reset wipes the vault (use with caution!)
func (v *Vault) Reset() error {
	return v.db.DropAll()
}

// Close closes the underlying store.
func (v *Vault) Close() error {
	return v.db.Close()
}
