package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"server/internal/domain"
	"server/internal/workflow"
)

func newTestApp() *App {
	donors := &stubDonorRepo{}
	donations := &stubDonationRepo{}
	items := &stubItemRepo{}
	return &App{
		Donors:    donors,
		Donations: donations,
		Items:     items,
		Photos:    &stubPhotoStore{},
		Directory: workflow.NewDirectoryView(donors, donations),
		Inventory: workflow.NewInventoryView(items),
	}
}

func strPtr(s string) *string { return &s }

func record(id, description, location, donorName, donorEmail, dateAccepted string, createdAt time.Time) domain.InventoryItem {
	rec := domain.InventoryItem{
		Item: domain.DonationItem{
			ID:              id,
			Description:     description,
			StorageLocation: location,
			CreatedAt:       createdAt,
		},
		Donation: domain.Donation{DateAccepted: dateAccepted},
		Donor:    domain.Donor{ID: "donor-" + id, Name: donorName, Address: "12 Hill Rd"},
	}
	if donorEmail != "" {
		rec.Donor.Email = strPtr(donorEmail)
	}
	return rec
}

type stubDonorRepo struct {
	donors      []domain.Donor
	counts      []domain.DonorWithCounts
	created     []domain.DonorFields
	searchCalls int
}

func (s *stubDonorRepo) Create(_ context.Context, fields domain.DonorFields) (*domain.Donor, error) {
	s.created = append(s.created, fields)
	donor := domain.Donor{ID: fmt.Sprintf("donor-%d", len(s.created)), Name: fields.Name, Address: fields.Address, Phone: fields.Phone}
	if fields.Email != "" {
		donor.Email = strPtr(fields.Email)
	}
	return &donor, nil
}

func (s *stubDonorRepo) Update(_ context.Context, id string, fields domain.DonorFields) (*domain.Donor, error) {
	for _, d := range s.donors {
		if d.ID == id {
			d.Name = fields.Name
			d.Address = fields.Address
			d.Phone = fields.Phone
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubDonorRepo) GetByID(_ context.Context, id string) (*domain.Donor, error) {
	for _, d := range s.donors {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubDonorRepo) Search(_ context.Context, term string, limit int) ([]domain.Donor, error) {
	s.searchCalls++
	if len(s.donors) > limit {
		return s.donors[:limit], nil
	}
	return s.donors, nil
}

func (s *stubDonorRepo) ListWithCounts(context.Context) ([]domain.DonorWithCounts, error) {
	return s.counts, nil
}

type stubDonationRepo struct {
	history   map[string][]domain.DonationWithItems
	listCalls int
	created   int
}

func (s *stubDonationRepo) Create(_ context.Context, donorID, dateAccepted, notes string) (*domain.Donation, error) {
	s.created++
	return &domain.Donation{
		ID:           fmt.Sprintf("donation-%d", s.created),
		DonorID:      donorID,
		DateAccepted: dateAccepted,
		Notes:        notes,
	}, nil
}

func (s *stubDonationRepo) ListForDonor(_ context.Context, donorID string) ([]domain.DonationWithItems, error) {
	s.listCalls++
	return s.history[donorID], nil
}

type stubItemRepo struct {
	inventory   []domain.InventoryItem
	created     []domain.DonationItem
	deleted     []string
	failMissing bool
}

func (s *stubItemRepo) Create(_ context.Context, donationID, description, location, photoURL string) (*domain.DonationItem, error) {
	item := domain.DonationItem{
		ID:              fmt.Sprintf("item-%d", len(s.created)+1),
		DonationID:      donationID,
		Description:     description,
		StorageLocation: location,
	}
	if photoURL != "" {
		item.PhotoURL = strPtr(photoURL)
	}
	s.created = append(s.created, item)
	return &item, nil
}

func (s *stubItemRepo) Update(_ context.Context, id, description, location string) (*domain.DonationItem, error) {
	if s.failMissing {
		return nil, domain.ErrNotFound
	}
	return &domain.DonationItem{ID: id, Description: description, StorageLocation: location}, nil
}

func (s *stubItemRepo) Delete(_ context.Context, id string) error {
	if s.failMissing {
		return domain.ErrNotFound
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubItemRepo) ListInventory(context.Context) ([]domain.InventoryItem, error) {
	return s.inventory, nil
}

type stubPhotoStore struct {
	saved int
}

func (s *stubPhotoStore) SavePhoto(_ context.Context, filename string, _ []byte) (string, error) {
	s.saved++
	return "http://localhost:8080/static/photos/" + filename, nil
}

// statsTestSQL answers the single aggregate query the stats endpoint runs.
type statsTestSQL struct {
	total, thisMonth, pending int64
}

func (s *statsTestSQL) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (s *statsTestSQL) QueryRow(context.Context, string, ...any) pgx.Row {
	return scanRow{scan: func(dest ...any) error {
		*dest[0].(*int64) = s.total
		*dest[1].(*int64) = s.thisMonth
		*dest[2].(*int64) = s.pending
		return nil
	}}
}

func (s *statsTestSQL) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, fmt.Errorf("query not supported")
}

type scanRow struct {
	scan func(dest ...any) error
}

func (r scanRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}
