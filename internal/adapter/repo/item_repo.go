package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// ItemRepositoryPG implements domain.ItemRepository using PostgreSQL.
type ItemRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewItemRepository creates a new item repo.
func NewItemRepository(sql infra.SQLExecutor) *ItemRepositoryPG {
	return &ItemRepositoryPG{sql: sql}
}

// Create inserts a new donation item. An empty photoURL is stored as NULL;
// the photo URL is set at most once, at creation.
func (r *ItemRepositoryPG) Create(ctx context.Context, donationID, description, location, photoURL string) (*domain.DonationItem, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertDonationItem,
		uuid.NewString(), donationID, description, location, photoURL)
	return scanItem(row)
}

// Update rewrites the description and storage location of an item. Donor
// fields and the photo are not editable through this path.
func (r *ItemRepositoryPG) Update(ctx context.Context, id, description, location string) (*domain.DonationItem, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QUpdateDonationItem, id, description, location)
	return scanItem(row)
}

// Delete removes a single item. Its donation and donor are left in place.
func (r *ItemRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteDonationItem, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListInventory fetches every item joined with its donation and donor,
// newest item first. Filtering and re-sorting happen in the view layer; the
// fetch order here is the stable tiebreak.
func (r *ItemRepositoryPG) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListInventory)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.InventoryItem
	for rows.Next() {
		var rec domain.InventoryItem
		var accepted time.Time
		if err := rows.Scan(
			&rec.Item.ID, &rec.Item.Description, &rec.Item.StorageLocation, &rec.Item.PhotoURL,
			&rec.Item.NotificationSent, &rec.Item.CreatedAt,
			&rec.Donation.ID, &accepted, &rec.Donation.Notes, &rec.Donation.CreatedAt,
			&rec.Donor.ID, &rec.Donor.Name, &rec.Donor.Email, &rec.Donor.Address,
			&rec.Donor.Phone, &rec.Donor.CreatedAt,
		); err != nil {
			return nil, err
		}
		rec.Donation.DateAccepted = accepted.Format(dateOnly)
		rec.Donation.DonorID = rec.Donor.ID
		rec.Item.DonationID = rec.Donation.ID
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func scanItem(row pgx.Row) (*domain.DonationItem, error) {
	var it domain.DonationItem
	if err := row.Scan(&it.ID, &it.DonationID, &it.Description, &it.StorageLocation,
		&it.PhotoURL, &it.NotificationSent, &it.CreatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

var _ domain.ItemRepository = (*ItemRepositoryPG)(nil)
