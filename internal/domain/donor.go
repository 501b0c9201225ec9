package domain

import "time"

// Donor is a person who has contributed items. Email is optional and gates
// eligibility for reminder notifications.
type Donor struct {
	ID        string
	Name      string
	Email     *string
	Address   string
	Phone     string
	CreatedAt time.Time
}

// HasEmail reports whether the donor can receive notifications.
func (d Donor) HasEmail() bool {
	return d.Email != nil && *d.Email != ""
}

// DonorWithCounts carries a donor plus aggregate donation and item counts for
// the directory view.
type DonorWithCounts struct {
	Donor
	DonationCount int
	ItemCount     int
}

// DonorFields holds the mutable donor attributes for create and edit.
type DonorFields struct {
	Name    string
	Email   string
	Address string
	Phone   string
}
