// ABOUTME: Notification feed model with typed metadata
// ABOUTME: Defines the persisted JSON shape of feed entries
package models

import (
	"encoding/json"
	"time"
)

// Notification type constants.
const (
	NotifyClient = "client"
	NotifyDeal   = "deal"
	NotifySystem = "system"
)

// Notification priority constants.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Meta is the typed metadata attached to a notification. The concrete type
// is selected by the notification's Type field when decoding.
type Meta interface {
	metaKind() string
}

// ClientMeta references the client a notification is about.
type ClientMeta struct {
	ClientID string `json:"clientId"`
	Status   string `json:"status,omitempty"`
}

func (ClientMeta) metaKind() string { return NotifyClient }

// DealMeta references the lead a notification is about, including the stage
// transition that produced it.
type DealMeta struct {
	DealID   string `json:"dealId"`
	OldStage string `json:"oldStage,omitempty"`
	NewStage string `json:"newStage,omitempty"`
	Value    int64  `json:"value,omitempty"`
	Status   string `json:"status,omitempty"`
}

func (DealMeta) metaKind() string { return NotifyDeal }

// SystemMeta carries free-form context for system notifications.
type SystemMeta struct {
	Note string `json:"note,omitempty"`
}

func (SystemMeta) metaKind() string { return NotifySystem }

// Notification is one immutable-once-created feed entry. The JSON field
// names are the persisted storage contract and must not change without
// clearing the vault.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"isRead"`
	Priority  string    `json:"priority"`
	Meta      Meta      `json:"metadata,omitempty"`
}

// UnmarshalJSON decodes the metadata object into the concrete Meta type
// matching the notification type.
func (n *Notification) UnmarshalJSON(data []byte) error {
	type alias Notification
	aux := struct {
		*alias
		Meta json.RawMessage `json:"metadata,omitempty"`
	}{alias: (*alias)(n)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Meta) == 0 || string(aux.Meta) == "null" {
		n.Meta = nil
		return nil
	}

	switch n.Type {
	case NotifyClient:
		var m ClientMeta
		if err := json.Unmarshal(aux.Meta, &m); err != nil {
			return err
		}
		n.Meta = m
	case NotifyDeal:
		var m DealMeta
		if err := json.Unmarshal(aux.Meta, &m); err != nil {
			return err
		}
		n.Meta = m
	default:
		var m SystemMeta
		if err := json.Unmarshal(aux.Meta, &m); err != nil {
			return err
		}
		n.Meta = m
	}
	return nil
}
