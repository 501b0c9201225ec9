package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"server/internal/domain"
)

type fakeDonorRepo struct {
	donors      []domain.Donor
	counts      []domain.DonorWithCounts
	createCalls int
	searchCalls []string
}

func (f *fakeDonorRepo) Create(_ context.Context, fields domain.DonorFields) (*domain.Donor, error) {
	f.createCalls++
	donor := domain.Donor{
		ID:        fmt.Sprintf("donor-%d", f.createCalls),
		Name:      strings.TrimSpace(fields.Name),
		Address:   strings.TrimSpace(fields.Address),
		Phone:     strings.TrimSpace(fields.Phone),
		CreatedAt: time.Now(),
	}
	if email := strings.TrimSpace(fields.Email); email != "" {
		donor.Email = &email
	}
	f.donors = append(f.donors, donor)
	return &donor, nil
}

func (f *fakeDonorRepo) Update(_ context.Context, id string, fields domain.DonorFields) (*domain.Donor, error) {
	for i := range f.donors {
		if f.donors[i].ID == id {
			f.donors[i].Name = fields.Name
			return &f.donors[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDonorRepo) GetByID(_ context.Context, id string) (*domain.Donor, error) {
	for i := range f.donors {
		if f.donors[i].ID == id {
			return &f.donors[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDonorRepo) Search(_ context.Context, term string, limit int) ([]domain.Donor, error) {
	f.searchCalls = append(f.searchCalls, term)
	var out []domain.Donor
	for _, d := range f.donors {
		if strings.Contains(strings.ToLower(d.Name), strings.ToLower(term)) {
			out = append(out, d)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeDonorRepo) ListWithCounts(context.Context) ([]domain.DonorWithCounts, error) {
	return f.counts, nil
}

type fakeDonationRepo struct {
	donations    []domain.Donation
	listCalls    int
	historyByID  map[string][]domain.DonationWithItems
	failNextList bool
}

func (f *fakeDonationRepo) Create(_ context.Context, donorID, dateAccepted, notes string) (*domain.Donation, error) {
	dn := domain.Donation{
		ID:           fmt.Sprintf("donation-%d", len(f.donations)+1),
		DonorID:      donorID,
		DateAccepted: dateAccepted,
		Notes:        notes,
		CreatedAt:    time.Now(),
	}
	f.donations = append(f.donations, dn)
	return &dn, nil
}

func (f *fakeDonationRepo) ListForDonor(_ context.Context, donorID string) ([]domain.DonationWithItems, error) {
	f.listCalls++
	if f.failNextList {
		f.failNextList = false
		return nil, domain.ErrProviderFailure
	}
	return f.historyByID[donorID], nil
}

type fakeItemRepo struct {
	items       []domain.DonationItem
	inventory   []domain.InventoryItem
	listCalls   int
	failCreate  bool
	deleteCalls []string
}

func (f *fakeItemRepo) Create(_ context.Context, donationID, description, location, photoURL string) (*domain.DonationItem, error) {
	if f.failCreate {
		return nil, domain.ErrProviderFailure
	}
	it := domain.DonationItem{
		ID:              fmt.Sprintf("item-%d", len(f.items)+1),
		DonationID:      donationID,
		Description:     description,
		StorageLocation: location,
		CreatedAt:       time.Now(),
	}
	if photoURL != "" {
		it.PhotoURL = &photoURL
	}
	f.items = append(f.items, it)
	return &it, nil
}

func (f *fakeItemRepo) Update(_ context.Context, id, description, location string) (*domain.DonationItem, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Description = description
			f.items[i].StorageLocation = location
			return &f.items[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeItemRepo) Delete(_ context.Context, id string) error {
	f.deleteCalls = append(f.deleteCalls, id)
	return nil
}

func (f *fakeItemRepo) ListInventory(context.Context) ([]domain.InventoryItem, error) {
	f.listCalls++
	return f.inventory, nil
}

type fakePhotoStore struct {
	saved   []string
	failAll bool
}

func (f *fakePhotoStore) SavePhoto(_ context.Context, filename string, _ []byte) (string, error) {
	if f.failAll {
		return "", domain.ErrProviderFailure
	}
	url := "http://localhost:8080/static/photos/" + filename
	f.saved = append(f.saved, url)
	return url, nil
}

func strPtr(s string) *string { return &s }

func record(description, location, donorName, donorEmail, address, dateAccepted string, created time.Time, notified *time.Time) domain.InventoryItem {
	rec := domain.InventoryItem{
		Item: domain.DonationItem{
			ID:               "item-" + description,
			Description:      description,
			StorageLocation:  location,
			NotificationSent: notified,
			CreatedAt:        created,
		},
		Donation: domain.Donation{ID: "dn-" + description, DateAccepted: dateAccepted, CreatedAt: created},
		Donor:    domain.Donor{ID: "d-" + donorName, Name: donorName, Address: address, Phone: "(555) 123-4567", CreatedAt: created},
	}
	if donorEmail != "" {
		rec.Donor.Email = &donorEmail
	}
	return rec
}
