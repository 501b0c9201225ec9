package workflow

import (
	"context"
	"strings"
	"sync"

	"server/internal/domain"
)

// DirectoryView is the donor directory session: the donor list with counts
// and a lazily filled per-donor history cache. The cache lives for the
// session and is never invalidated by unrelated edits; a Reset is the
// equivalent of a fresh page load. The view is shared across requests, so all
// of its state sits behind the mutex; the filter term is per call.
type DirectoryView struct {
	donors    domain.DonorRepository
	donations domain.DonationRepository

	mu      sync.Mutex
	history map[string][]domain.DonationWithItems
}

// NewDirectoryView starts an empty directory session.
func NewDirectoryView(donors domain.DonorRepository, donations domain.DonationRepository) *DirectoryView {
	return &DirectoryView{
		donors:    donors,
		donations: donations,
		history:   make(map[string][]domain.DonationWithItems),
	}
}

// Donors fetches all donors with counts and applies the filter term across
// name, email, and phone.
func (v *DirectoryView) Donors(ctx context.Context, term string) ([]domain.DonorWithCounts, error) {
	donors, err := v.donors.ListWithCounts(ctx)
	if err != nil {
		return nil, err
	}
	return FilterDonors(donors, term), nil
}

// FilterDonors keeps donors whose name, email, or phone contains the term,
// case-insensitively.
func FilterDonors(donors []domain.DonorWithCounts, term string) []domain.DonorWithCounts {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return donors
	}
	out := make([]domain.DonorWithCounts, 0, len(donors))
	for _, d := range donors {
		email := ""
		if d.Email != nil {
			email = *d.Email
		}
		if strings.Contains(strings.ToLower(d.Name), term) ||
			strings.Contains(strings.ToLower(email), term) ||
			strings.Contains(strings.ToLower(d.Phone), term) {
			out = append(out, d)
		}
	}
	return out
}

// History returns the donor's donation history, fetching it on first expand
// and serving the cached copy afterwards. Staleness after unrelated edits is
// an accepted tradeoff.
func (v *DirectoryView) History(ctx context.Context, donorID string) ([]domain.DonationWithItems, error) {
	v.mu.Lock()
	if cached, ok := v.history[donorID]; ok {
		v.mu.Unlock()
		return cached, nil
	}
	v.mu.Unlock()

	donations, err := v.donations.ListForDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	v.history[donorID] = donations
	v.mu.Unlock()
	return donations, nil
}

// UpdateDonor edits a donor's contact fields inline.
func (v *DirectoryView) UpdateDonor(ctx context.Context, id string, fields domain.DonorFields) (*domain.Donor, error) {
	if strings.TrimSpace(fields.Name) == "" {
		return nil, domain.ErrValidation
	}
	return v.donors.Update(ctx, id, fields)
}

// StartDonation begins a new donation form pre-bound to the given donor, the
// directory's shortcut into the donation workflow.
func (v *DirectoryView) StartDonation(ctx context.Context, donorID string) (*Form, error) {
	donor, err := v.donors.GetByID(ctx, donorID)
	if err != nil {
		return nil, err
	}
	form := NewForm()
	form.SelectDonor(*donor)
	return form, nil
}

// Invalidate drops one donor's cached history, forcing a re-fetch on the next
// expand. Called after a new donation lands for that donor.
func (v *DirectoryView) Invalidate(donorID string) {
	v.mu.Lock()
	delete(v.history, donorID)
	v.mu.Unlock()
}

// Reset drops the cached histories, as a fresh page load would.
func (v *DirectoryView) Reset() {
	v.mu.Lock()
	v.history = make(map[string][]domain.DonationWithItems)
	v.mu.Unlock()
}
