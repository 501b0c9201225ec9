// Package workflow models the interactive donation sessions: the multi-step
// donation form, the debounced donor search, and the inventory and donor
// directory views.
package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"server/internal/domain"
	"server/internal/format"
)

// DonorStage is the tagged union for the donor step of the form: the staff
// member is either still searching, has picked an existing donor, or is
// filling in a new one.
type DonorStage interface {
	donorStage()
}

// Searching is the initial stage; Term holds the current search text.
type Searching struct {
	Term string
}

// Selected holds the chosen existing donor.
type Selected struct {
	Donor domain.Donor
}

// CreatingNew holds the draft fields for a donor being created inline.
type CreatingNew struct {
	Draft domain.DonorFields
}

func (Searching) donorStage()   {}
func (Selected) donorStage()    {}
func (CreatingNew) donorStage() {}

// PhotoAttachment is a photo file staged for one item draft.
type PhotoAttachment struct {
	Filename string
	Data     []byte
}

// ItemDraft is one row of the form's item list. Key is a stable transient
// identifier so rows keep their identity as the list is edited.
type ItemDraft struct {
	Key         string
	Description string
	Location    string
	Photo       *PhotoAttachment
	PhotoURL    string
}

func (d ItemDraft) valid() bool {
	return strings.TrimSpace(d.Description) != "" && strings.TrimSpace(d.Location) != ""
}

// SubmitDeps are the collaborators a form submission talks to.
type SubmitDeps struct {
	Donors    domain.DonorRepository
	Donations domain.DonationRepository
	Items     domain.ItemRepository
	Photos    domain.PhotoStore
}

// SubmitResult summarizes a fully successful submission.
type SubmitResult struct {
	DonorID    string
	DonationID string
	ItemCount  int
}

// Form is the donation composition state machine. It always carries at least
// one item row.
type Form struct {
	stage        DonorStage
	dateAccepted string
	notes        string
	items        []ItemDraft
}

// NewForm returns a form at the search stage with one blank item row and the
// acceptance date defaulted to today.
func NewForm() *Form {
	return &Form{
		stage:        Searching{},
		dateAccepted: time.Now().Format("2006-01-02"),
		items:        []ItemDraft{blankItem()},
	}
}

func blankItem() ItemDraft {
	return ItemDraft{Key: uuid.NewString()}
}

// Stage returns the current donor stage.
func (f *Form) Stage() DonorStage {
	return f.stage
}

// Items returns the current item rows.
func (f *Form) Items() []ItemDraft {
	return f.items
}

// SetSearchTerm records the donor search text. It only applies while the
// form is at the search stage.
func (f *Form) SetSearchTerm(term string) {
	if _, ok := f.stage.(Searching); ok {
		f.stage = Searching{Term: term}
	}
}

// SelectDonor moves to the selected stage with an existing donor.
func (f *Form) SelectDonor(d domain.Donor) {
	f.stage = Selected{Donor: d}
}

// StartNewDonor moves to the new-donor stage, pre-filling the name with the
// current search text.
func (f *Form) StartNewDonor() {
	var name string
	if s, ok := f.stage.(Searching); ok {
		name = strings.TrimSpace(s.Term)
	}
	f.stage = CreatingNew{Draft: domain.DonorFields{Name: name}}
}

// EditNewDonor replaces the new-donor draft. The phone is run through the
// progressive mask so it is stored pre-formatted.
func (f *Form) EditNewDonor(fields domain.DonorFields) {
	if _, ok := f.stage.(CreatingNew); ok {
		fields.Phone = format.Phone(fields.Phone)
		f.stage = CreatingNew{Draft: fields}
	}
}

// BackToSearch returns to the search stage, discarding any donor selection or
// new-donor edits.
func (f *Form) BackToSearch() {
	f.stage = Searching{}
}

// SetDateAccepted sets the donation's acceptance date (YYYY-MM-DD).
func (f *Form) SetDateAccepted(date string) {
	f.dateAccepted = date
}

// SetNotes sets the donation's free-text notes.
func (f *Form) SetNotes(notes string) {
	f.notes = notes
}

// AddItem appends a blank item row and returns its key.
func (f *Form) AddItem() string {
	item := blankItem()
	f.items = append(f.items, item)
	return item.Key
}

// RemoveItem deletes the row with the given key. The last remaining row can
// never be removed.
func (f *Form) RemoveItem(key string) error {
	if len(f.items) == 1 {
		return fmt.Errorf("%w: at least one item row is required", domain.ErrValidation)
	}
	for i, item := range f.items {
		if item.Key == key {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// UpdateItem sets the description and storage location of the row with the
// given key.
func (f *Form) UpdateItem(key, description, location string) error {
	for i := range f.items {
		if f.items[i].Key == key {
			f.items[i].Description = description
			f.items[i].Location = location
			return nil
		}
	}
	return domain.ErrNotFound
}

// SetItemPhotoURL records an already-uploaded photo URL for the row with the
// given key, clearing any staged file.
func (f *Form) SetItemPhotoURL(key, url string) error {
	for i := range f.items {
		if f.items[i].Key == key {
			f.items[i].PhotoURL = url
			f.items[i].Photo = nil
			return nil
		}
	}
	return domain.ErrNotFound
}

// AttachPhoto stages a photo for the row with the given key.
func (f *Form) AttachPhoto(key, filename string, data []byte) error {
	for i := range f.items {
		if f.items[i].Key == key {
			f.items[i].Photo = &PhotoAttachment{Filename: filename, Data: data}
			return nil
		}
	}
	return domain.ErrNotFound
}

// Reset returns the form to its initial empty state.
func (f *Form) Reset() {
	f.stage = Searching{}
	f.dateAccepted = time.Now().Format("2006-01-02")
	f.notes = ""
	f.items = []ItemDraft{blankItem()}
}

// Submit runs the submission sequence: validate item rows, resolve the donor
// (reusing the selection or creating a new record), create the donation, then
// create each valid item in order, uploading its photo first. The steps are
// strictly sequential and intentionally not atomic: a failure partway leaves
// earlier writes in place and the form populated for correction. On full
// success the form resets.
func (f *Form) Submit(ctx context.Context, deps SubmitDeps) (*SubmitResult, error) {
	valid := make([]ItemDraft, 0, len(f.items))
	for _, item := range f.items {
		if item.valid() {
			valid = append(valid, item)
		}
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: add at least one item with a description and storage location", domain.ErrValidation)
	}

	donorID, err := f.resolveDonor(ctx, deps.Donors)
	if err != nil {
		return nil, err
	}

	donation, err := deps.Donations.Create(ctx, donorID, f.dateAccepted, strings.TrimSpace(f.notes))
	if err != nil {
		return nil, fmt.Errorf("create donation: %w", err)
	}

	for _, item := range valid {
		photoURL := item.PhotoURL
		if item.Photo != nil {
			photoURL, err = deps.Photos.SavePhoto(ctx, item.Photo.Filename, item.Photo.Data)
			if err != nil {
				return nil, fmt.Errorf("upload photo: %w", err)
			}
		}
		if _, err := deps.Items.Create(ctx, donation.ID,
			strings.TrimSpace(item.Description), strings.TrimSpace(item.Location), photoURL); err != nil {
			return nil, fmt.Errorf("create item: %w", err)
		}
	}

	result := &SubmitResult{DonorID: donorID, DonationID: donation.ID, ItemCount: len(valid)}
	f.Reset()
	return result, nil
}

func (f *Form) resolveDonor(ctx context.Context, donors domain.DonorRepository) (string, error) {
	switch stage := f.stage.(type) {
	case Selected:
		return stage.Donor.ID, nil
	case CreatingNew:
		fields := stage.Draft
		if strings.TrimSpace(fields.Name) == "" {
			return "", fmt.Errorf("%w: donor name is required", domain.ErrValidation)
		}
		if strings.TrimSpace(fields.Address) == "" {
			return "", fmt.Errorf("%w: donor address is required", domain.ErrValidation)
		}
		if strings.TrimSpace(fields.Phone) == "" {
			return "", fmt.Errorf("%w: donor phone is required", domain.ErrValidation)
		}
		donor, err := donors.Create(ctx, fields)
		if err != nil {
			return "", fmt.Errorf("create donor: %w", err)
		}
		return donor.ID, nil
	default:
		return "", fmt.Errorf("%w: select or create a donor first", domain.ErrValidation)
	}
}
