package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
	"server/internal/format"
	"server/internal/sqlinline"
	"server/internal/workflow"
)

const dateOnly = "2006-01-02"

// InventoryList returns the joined inventory with the optional search filter
// and sort applied. Filtering and sorting run over the full fetched set, so
// the response order is stable across equal keys.
func (a *App) InventoryList(w http.ResponseWriter, r *http.Request) {
	records, err := a.Items.ListInventory(r.Context())
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load inventory")
		return
	}
	q := r.URL.Query()
	records = workflow.FilterInventory(records, q.Get("search"))
	field, dir := workflow.ParseSort(q.Get("sort"), q.Get("dir"))
	workflow.SortInventory(records, field, dir)

	items := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		items = append(items, inventoryPayload(rec))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// InventoryStats returns the counters shown above the inventory list.
func (a *App) InventoryStats(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	cutoff := now.AddDate(0, 0, -domain.NotifyAfterDays).Format(dateOnly)

	row := a.SQL.QueryRow(r.Context(), sqlinline.QInventoryStats, monthStart, cutoff)
	var total, thisMonth, pending int64
	if err := row.Scan(&total, &thisMonth, &pending); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"total_items":           total,
		"items_this_month":      thisMonth,
		"pending_notifications": pending,
	})
}

type itemUpdateReq struct {
	Description     string `json:"description"`
	StorageLocation string `json:"storage_location"`
}

// ItemUpdate edits an item's description and storage location. Other item
// attributes are immutable after intake.
func (a *App) ItemUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req itemUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid json body")
		return
	}
	if req.Description == "" || req.StorageLocation == "" {
		a.error(w, http.StatusBadRequest, "validation", "description and storage location are required")
		return
	}
	item, err := a.Items.Update(r.Context(), id, req.Description, req.StorageLocation)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "item not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to update item")
		return
	}
	a.json(w, http.StatusOK, itemPayload(*item))
}

// ItemDelete removes an item permanently, behind the two-step confirmation:
// the first request for an id arms it, the repeat executes it, and `?cancel=1`
// disarms whatever is pending.
func (a *App) ItemDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if r.URL.Query().Get("cancel") != "" {
		a.Inventory.DisarmDelete()
		a.json(w, http.StatusOK, map[string]any{"deleted": false, "cancelled": true})
		return
	}
	deleted, err := a.Inventory.ConfirmDelete(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "item not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete item")
		return
	}
	if !deleted {
		a.json(w, http.StatusOK, map[string]any{
			"deleted": false,
			"message": "repeat the request to confirm deletion",
		})
		return
	}
	a.json(w, http.StatusOK, map[string]any{"deleted": true})
}

func itemPayload(item domain.DonationItem) map[string]any {
	p := map[string]any{
		"id":               item.ID,
		"donation_id":      item.DonationID,
		"description":      item.Description,
		"storage_location": item.StorageLocation,
		"created_at":       item.CreatedAt,
	}
	if item.PhotoURL != nil {
		p["photo_url"] = *item.PhotoURL
	}
	if item.NotificationSent != nil {
		p["notification_sent"] = *item.NotificationSent
	}
	return p
}

func inventoryPayload(rec domain.InventoryItem) map[string]any {
	p := itemPayload(rec.Item)
	p["date_accepted"] = rec.Donation.DateAccepted
	p["date_accepted_display"] = format.Date(rec.Donation.DateAccepted)
	p["days_since_accepted"] = rec.DaysSinceAccepted()
	p["pending_notification"] = rec.PendingNotification()
	p["donor"] = donorPayload(rec.Donor)
	return p
}
