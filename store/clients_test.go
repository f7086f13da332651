// ABOUTME: Tests for client store operations
// ABOUTME: Covers CRUD, defaults, and lifecycle notifications
package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/bizdesk/models"
)

func newTestDesk(t *testing.T) *Desk {
	t.Helper()
	return NewDesk(Options{})
}

func TestAddClient(t *testing.T) {
	desk := newTestDesk(t)

	c := desk.Clients.Add(models.Client{Name: "Acme", Email: "ceo@acme.com"})

	if c.ID == uuid.Nil {
		t.Error("Client ID was not set")
	}
	if c.Status != models.StatusActive {
		t.Errorf("Expected default status %s, got %s", models.StatusActive, c.Status)
	}
	if c.Type != models.TypeProspect {
		t.Errorf("Expected default type %s, got %s", models.TypeProspect, c.Type)
	}

	found, ok := desk.Clients.GetByID(c.ID)
	if !ok {
		t.Fatal("GetByID did not find the client")
	}
	if found.Name != "Acme" || found.Email != "ceo@acme.com" {
		t.Errorf("Round-trip mismatch: %+v", found)
	}

	feed := desk.Notifications.All()
	if len(feed) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(feed))
	}
	if feed[0].Type != models.NotifyClient || feed[0].Priority != models.PriorityMedium {
		t.Errorf("Unexpected notification: %+v", feed[0])
	}
}

func TestUpdateClientMergesPartialFields(t *testing.T) {
	desk := newTestDesk(t)
	c := desk.Clients.Add(models.Client{Name: "Acme", Phone: "555-0100"})

	name := "Acme Corp"
	updated, ok := desk.Clients.Update(c.ID, ClientPatch{Name: &name})
	if !ok {
		t.Fatal("Update did not find the client")
	}
	if updated.Name != "Acme Corp" {
		t.Errorf("Expected merged name, got %s", updated.Name)
	}
	if updated.Phone != "555-0100" {
		t.Errorf("Untouched field was clobbered: %s", updated.Phone)
	}
}

func TestUpdateClientEmitsOnNoop(t *testing.T) {
	// Historical behavior: an update that changes nothing still emits.
	desk := newTestDesk(t)
	c := desk.Clients.Add(models.Client{Name: "Acme"})

	same := "Acme"
	desk.Clients.Update(c.ID, ClientPatch{Name: &same})

	feed := desk.Notifications.All()
	if len(feed) != 2 {
		t.Fatalf("Expected add + touch notifications, got %d", len(feed))
	}
	if feed[0].Title != "Client Updated" {
		t.Errorf("Expected Client Updated, got %q", feed[0].Title)
	}
}

func TestUpdateClientQuietNoops(t *testing.T) {
	desk := NewDesk(Options{QuietNoops: true})
	c := desk.Clients.Add(models.Client{Name: "Acme"})

	same := "Acme"
	desk.Clients.Update(c.ID, ClientPatch{Name: &same})

	feed := desk.Notifications.All()
	if len(feed) != 1 {
		t.Fatalf("Expected only the add notification, got %d", len(feed))
	}
}

func TestUpdateClientMiss(t *testing.T) {
	desk := newTestDesk(t)

	name := "Ghost"
	_, ok := desk.Clients.Update(uuid.New(), ClientPatch{Name: &name})
	if ok {
		t.Error("Update of unknown ID should report no match")
	}
	if len(desk.Notifications.All()) != 0 {
		t.Error("Miss should not emit a notification")
	}
}

func TestDeleteClient(t *testing.T) {
	desk := newTestDesk(t)
	c := desk.Clients.Add(models.Client{Name: "Acme"})

	if !desk.Clients.Delete(c.ID) {
		t.Fatal("Delete did not find the client")
	}
	if _, ok := desk.Clients.GetByID(c.ID); ok {
		t.Error("Client still present after delete")
	}
	if desk.Clients.Delete(c.ID) {
		t.Error("Second delete should be a no-op")
	}

	feed := desk.Notifications.All()
	if feed[0].Priority != models.PriorityHigh {
		t.Errorf("Expected high-priority removal notification, got %s", feed[0].Priority)
	}
}

func TestLeadLinkedToClientDealList(t *testing.T) {
	desk := newTestDesk(t)
	c := desk.Clients.Add(models.Client{Name: "Acme"})

	l := desk.Pipeline.Add(models.Lead{Title: "License", ClientName: "Acme", ClientID: c.ID})

	found, _ := desk.Clients.GetByID(c.ID)
	if len(found.DealIDs) != 1 || found.DealIDs[0] != l.ID {
		t.Errorf("Expected lead linked to client deal list, got %v", found.DealIDs)
	}
}
