package domain

import "time"

// Donation is one contribution event by a donor. DateAccepted is a calendar
// date in ISO form (YYYY-MM-DD); day arithmetic always derives from it rather
// than from a stored age.
type Donation struct {
	ID           string
	DonorID      string
	DateAccepted string
	Notes        string
	CreatedAt    time.Time
}

// DonationWithItems is a donation together with its items, as shown in a
// donor's history.
type DonationWithItems struct {
	Donation
	Items []DonationItem
}
