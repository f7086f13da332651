// ABOUTME: Built-in reactions to domain events
// ABOUTME: Feed notification fan-out, deal-list linking, and client promotion
package store

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/bizdesk/models"
)

// notifier translates every domain event into a feed notification. Titles,
// messages, and priorities for stage moves follow the destination stage.
type notifier struct {
	feed *NotificationStore
	// touch keeps the historical behavior of emitting a notification even
	// when an update changed nothing observable.
	touch bool
}

func (r *notifier) Apply(e Event) {
	switch ev := e.(type) {
	case ClientAdded:
		r.feed.Add(Draft{
			Type:     models.NotifyClient,
			Title:    "New Client Added",
			Message:  fmt.Sprintf("%s has been added to your client list", ev.Client.Name),
			Priority: models.PriorityMedium,
			Meta:     models.ClientMeta{ClientID: ev.Client.ID.String(), Status: "added"},
		})

	case ClientUpdated:
		if !ev.Changed && !r.touch {
			return
		}
		r.feed.Add(Draft{
			Type:     models.NotifyClient,
			Title:    "Client Updated",
			Message:  fmt.Sprintf("%s's details have been updated", ev.Client.Name),
			Priority: models.PriorityMedium,
			Meta:     models.ClientMeta{ClientID: ev.Client.ID.String(), Status: "updated"},
		})

	case ClientDeleted:
		r.feed.Add(Draft{
			Type:     models.NotifyClient,
			Title:    "Client Removed",
			Message:  fmt.Sprintf("%s has been removed from your client list", ev.Client.Name),
			Priority: models.PriorityHigh,
			Meta:     models.ClientMeta{ClientID: ev.Client.ID.String(), Status: "removed"},
		})

	case LeadAdded:
		r.feed.Add(Draft{
			Type:     models.NotifyDeal,
			Title:    "New Deal Created",
			Message:  fmt.Sprintf("%q for %s entered the pipeline at %s", ev.Lead.Title, ev.Lead.ClientName, dollars(ev.Lead.Value)),
			Priority: models.PriorityMedium,
			Meta:     models.DealMeta{DealID: ev.Lead.ID.String(), NewStage: ev.Lead.Stage, Value: ev.Lead.Value, Status: "created"},
		})

	case LeadMoved:
		r.feed.Add(stageDraft(ev))

	case LeadUpdated:
		if !ev.Changed && !r.touch {
			return
		}
		if ev.ValueChanged {
			r.feed.Add(Draft{
				Type:     models.NotifyDeal,
				Title:    "Deal Value Changed",
				Message:  fmt.Sprintf("%q is now worth %s (was %s)", ev.Lead.Title, dollars(ev.Lead.Value), dollars(ev.OldValue)),
				Priority: models.PriorityMedium,
				Meta:     models.DealMeta{DealID: ev.Lead.ID.String(), Value: ev.Lead.Value, Status: "value-changed"},
			})
			return
		}
		r.feed.Add(Draft{
			Type:     models.NotifyDeal,
			Title:    "Deal Updated",
			Message:  fmt.Sprintf("%q has been updated", ev.Lead.Title),
			Priority: models.PriorityLow,
			Meta:     models.DealMeta{DealID: ev.Lead.ID.String(), Value: ev.Lead.Value, Status: "updated"},
		})

	case LeadDeleted:
		r.feed.Add(Draft{
			Type:     models.NotifyDeal,
			Title:    "Deal Removed",
			Message:  fmt.Sprintf("%q has been removed from the pipeline", ev.Lead.Title),
			Priority: models.PriorityHigh,
			Meta:     models.DealMeta{DealID: ev.Lead.ID.String(), OldStage: ev.Lead.Stage, Value: ev.Lead.Value, Status: "removed"},
		})
	}
}

func stageDraft(ev LeadMoved) Draft {
	meta := models.DealMeta{
		DealID:   ev.Lead.ID.String(),
		OldStage: ev.From,
		NewStage: ev.To,
		Value:    ev.Lead.Value,
		Status:   ev.To,
	}

	switch ev.To {
	case models.StageWon:
		return Draft{
			Type:     models.NotifyDeal,
			Title:    "Deal Won!",
			Message:  fmt.Sprintf("Congratulations! %q closed for %s", ev.Lead.Title, dollars(ev.Lead.Value)),
			Priority: models.PriorityHigh,
			Meta:     meta,
		}
	case models.StageLost:
		return Draft{
			Type:     models.NotifyDeal,
			Title:    "Deal Lost",
			Message:  fmt.Sprintf("%q was marked as lost", ev.Lead.Title),
			Priority: models.PriorityHigh,
			Meta:     meta,
		}
	case models.StageContract:
		return Draft{
			Type:     models.NotifyDeal,
			Title:    "Contract Reached",
			Message:  fmt.Sprintf("%q reached the contract stage", ev.Lead.Title),
			Priority: models.PriorityHigh,
			Meta:     meta,
		}
	case models.StageProposal:
		return Draft{
			Type:     models.NotifyDeal,
			Title:    "Proposal Sent",
			Message:  fmt.Sprintf("%q moved to proposal", ev.Lead.Title),
			Priority: models.PriorityMedium,
			Meta:     meta,
		}
	default:
		return Draft{
			Type:     models.NotifyDeal,
			Title:    "Deal Stage Updated",
			Message:  fmt.Sprintf("%q moved from %s to %s", ev.Lead.Title, ev.From, ev.To),
			Priority: models.PriorityMedium,
			Meta:     meta,
		}
	}
}

// linker records new leads under their owning client's deal list.
type linker struct {
	clients *ClientStore
}

func (r *linker) Apply(e Event) {
	ev, ok := e.(LeadAdded)
	if !ok || ev.Lead.ClientID == uuid.Nil {
		return
	}
	r.clients.linkDeal(ev.Lead.ClientID, ev.Lead.ID)
}

// promoter upgrades a prospect to a full client when one of its leads is
// won. The promotion goes through ClientStore.Update, so it produces the
// ordinary client-updated notification as well.
type promoter struct {
	clients *ClientStore
}

func (r *promoter) Apply(e Event) {
	ev, ok := e.(LeadMoved)
	if !ok || ev.To != models.StageWon {
		return
	}
	c, found := r.clients.GetByID(ev.Lead.ClientID)
	if !found || c.Type != models.TypeProspect {
		return
	}
	promoted := models.TypeClient
	r.clients.Update(c.ID, ClientPatch{Type: &promoted})
}

func dollars(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100.0)
}
