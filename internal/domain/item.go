package domain

import (
	"time"

	"server/internal/format"
)

// NotifyAfterDays is the age at which an item becomes due a donor reminder.
const NotifyAfterDays = 30

// DonationItem is a single physical item belonging to a donation.
// NotificationSent stays nil until a reminder email succeeds and is set
// exactly once.
type DonationItem struct {
	ID               string
	DonationID       string
	Description      string
	StorageLocation  string
	PhotoURL         *string
	NotificationSent *time.Time
	CreatedAt        time.Time
}

// InventoryItem is the joined shape consumed by the inventory list: an item
// with its parent donation and donor. All required fields are non-optional;
// the optional ones are pointers so absence must be handled explicitly.
type InventoryItem struct {
	Item     DonationItem
	Donation Donation
	Donor    Donor
}

// DaysSinceAccepted derives the item age from the parent donation's date.
func (r InventoryItem) DaysSinceAccepted() int {
	return format.DaysSince(r.Donation.DateAccepted)
}

// PendingNotification reports whether the item is currently eligible for a
// reminder: never notified, donor reachable by email, and accepted at least
// NotifyAfterDays ago.
func (r InventoryItem) PendingNotification() bool {
	return r.Item.NotificationSent == nil &&
		r.Donor.HasEmail() &&
		r.DaysSinceAccepted() >= NotifyAfterDays
}
