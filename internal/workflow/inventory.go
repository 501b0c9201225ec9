package workflow

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"server/internal/domain"
)

// SortField names the inventory sort keys.
type SortField string

const (
	SortCreatedAt    SortField = "created_at"
	SortDateAccepted SortField = "date_accepted"
	SortDonorName    SortField = "donor_name"
)

// SortDirection is asc or desc.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSort maps request values onto a valid field and direction, falling
// back to newest-first.
func ParseSort(field, dir string) (SortField, SortDirection) {
	f := SortCreatedAt
	switch SortField(field) {
	case SortDateAccepted:
		f = SortDateAccepted
	case SortDonorName:
		f = SortDonorName
	}
	d := SortDesc
	if SortDirection(dir) == SortAsc {
		d = SortAsc
	}
	return f, d
}

// FilterInventory keeps records whose item description, storage location,
// donor name, or donor email contains the term, case-insensitively. The
// donor's address is deliberately not matched. An empty term keeps everything.
func FilterInventory(records []domain.InventoryItem, term string) []domain.InventoryItem {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return records
	}
	out := make([]domain.InventoryItem, 0, len(records))
	for _, rec := range records {
		email := ""
		if rec.Donor.Email != nil {
			email = *rec.Donor.Email
		}
		if strings.Contains(strings.ToLower(rec.Item.Description), term) ||
			strings.Contains(strings.ToLower(rec.Item.StorageLocation), term) ||
			strings.Contains(strings.ToLower(rec.Donor.Name), term) ||
			strings.Contains(strings.ToLower(email), term) {
			out = append(out, rec)
		}
	}
	return out
}

// SortInventory orders records by the requested field and direction. The sort
// is stable, so ties keep the underlying fetch order.
func SortInventory(records []domain.InventoryItem, field SortField, dir SortDirection) {
	less := func(a, b domain.InventoryItem) bool {
		switch field {
		case SortDateAccepted:
			return a.Donation.DateAccepted < b.Donation.DateAccepted
		case SortDonorName:
			return strings.ToLower(a.Donor.Name) < strings.ToLower(b.Donor.Name)
		default:
			return a.Item.CreatedAt.Before(b.Item.CreatedAt)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		if dir == SortAsc {
			return less(records[i], records[j])
		}
		return less(records[j], records[i])
	})
}

// InventoryStats are the aggregate counters shown above the list.
type InventoryStats struct {
	Total         int
	ThisMonth     int
	PendingNotify int
}

// CountInventory computes the counters over a fetched record set: total
// items, items created since the start of the current calendar month, and
// items currently eligible for a donor reminder.
func CountInventory(records []domain.InventoryItem, now time.Time) InventoryStats {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	stats := InventoryStats{Total: len(records)}
	for _, rec := range records {
		if !rec.Item.CreatedAt.Before(monthStart) {
			stats.ThisMonth++
		}
		if rec.PendingNotification() {
			stats.PendingNotify++
		}
	}
	return stats
}

// InventoryView is an inventory session: the fetched record set plus the
// current search, sort, and delete-confirmation state. A view may be shared,
// so its state sits behind the mutex.
type InventoryView struct {
	repo domain.ItemRepository

	mu        sync.Mutex
	search    string
	sortField SortField
	sortDir   SortDirection
	records   []domain.InventoryItem
	armed     string
}

// NewInventoryView starts a session sorted newest-first.
func NewInventoryView(repo domain.ItemRepository) *InventoryView {
	return &InventoryView{repo: repo, sortField: SortCreatedAt, sortDir: SortDesc}
}

// Refresh re-fetches the joined record set from the store.
func (v *InventoryView) Refresh(ctx context.Context) error {
	records, err := v.repo.ListInventory(ctx)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.records = records
	v.mu.Unlock()
	return nil
}

// SetSearch updates the filter term.
func (v *InventoryView) SetSearch(term string) {
	v.mu.Lock()
	v.search = term
	v.mu.Unlock()
}

// SetSort sets an explicit field and direction.
func (v *InventoryView) SetSort(field SortField, dir SortDirection) {
	v.mu.Lock()
	v.sortField = field
	v.sortDir = dir
	v.mu.Unlock()
}

// ToggleSort reproduces the header-click behavior: clicking the active field
// reverses its direction, clicking another selects it descending.
func (v *InventoryView) ToggleSort(field SortField) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.sortField == field {
		if v.sortDir == SortAsc {
			v.sortDir = SortDesc
		} else {
			v.sortDir = SortAsc
		}
		return
	}
	v.sortField = field
	v.sortDir = SortDesc
}

// Sort returns the active sort field and direction.
func (v *InventoryView) Sort() (SortField, SortDirection) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sortField, v.sortDir
}

// Records returns the fetched set with the session's filter and sort applied.
func (v *InventoryView) Records() []domain.InventoryItem {
	v.mu.Lock()
	filtered := FilterInventory(v.records, v.search)
	out := make([]domain.InventoryItem, len(filtered))
	copy(out, filtered)
	field, dir := v.sortField, v.sortDir
	v.mu.Unlock()
	SortInventory(out, field, dir)
	return out
}

// Stats computes the aggregate counters for the fetched set.
func (v *InventoryView) Stats() InventoryStats {
	v.mu.Lock()
	defer v.mu.Unlock()
	return CountInventory(v.records, time.Now())
}

// ArmDelete marks an item for deletion; the next ConfirmDelete for the same
// id executes it.
func (v *InventoryView) ArmDelete(id string) {
	v.mu.Lock()
	v.armed = id
	v.mu.Unlock()
}

// DisarmDelete clears any pending delete confirmation.
func (v *InventoryView) DisarmDelete() {
	v.mu.Lock()
	v.armed = ""
	v.mu.Unlock()
}

// DeleteArmed reports which item, if any, is armed for deletion.
func (v *InventoryView) DeleteArmed() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.armed
}

// ConfirmDelete executes a previously armed delete and re-fetches the list so
// it reflects the authoritative remote state. Confirming an item that is not
// armed only arms it.
func (v *InventoryView) ConfirmDelete(ctx context.Context, id string) (bool, error) {
	v.mu.Lock()
	if v.armed != id {
		v.armed = id
		v.mu.Unlock()
		return false, nil
	}
	v.armed = ""
	v.mu.Unlock()
	if err := v.repo.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, v.Refresh(ctx)
}

// UpdateItem edits an item's description and storage location, then
// re-fetches.
func (v *InventoryView) UpdateItem(ctx context.Context, id, description, location string) error {
	if strings.TrimSpace(description) == "" || strings.TrimSpace(location) == "" {
		return domain.ErrValidation
	}
	if _, err := v.repo.Update(ctx, id, strings.TrimSpace(description), strings.TrimSpace(location)); err != nil {
		return err
	}
	return v.Refresh(ctx)
}
