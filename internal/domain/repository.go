package domain

import "context"

// DonorRepository defines access methods for donors.
type DonorRepository interface {
	Create(ctx context.Context, fields DonorFields) (*Donor, error)
	Update(ctx context.Context, id string, fields DonorFields) (*Donor, error)
	GetByID(ctx context.Context, id string) (*Donor, error)
	Search(ctx context.Context, term string, limit int) ([]Donor, error)
	ListWithCounts(ctx context.Context) ([]DonorWithCounts, error)
}

// DonationRepository handles donation persistence.
type DonationRepository interface {
	Create(ctx context.Context, donorID, dateAccepted, notes string) (*Donation, error)
	ListForDonor(ctx context.Context, donorID string) ([]DonationWithItems, error)
}

// ItemRepository handles donation item persistence and the joined inventory
// fetch.
type ItemRepository interface {
	Create(ctx context.Context, donationID, description, location, photoURL string) (*DonationItem, error)
	Update(ctx context.Context, id, description, location string) (*DonationItem, error)
	Delete(ctx context.Context, id string) error
	ListInventory(ctx context.Context) ([]InventoryItem, error)
}

// PhotoStore persists an uploaded photo and returns its public URL.
type PhotoStore interface {
	SavePhoto(ctx context.Context, filename string, data []byte) (string, error)
}
