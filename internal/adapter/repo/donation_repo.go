package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

const dateOnly = "2006-01-02"

// DonationRepositoryPG implements domain.DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(sql infra.SQLExecutor) *DonationRepositoryPG {
	return &DonationRepositoryPG{sql: sql}
}

// Create inserts a new donation record for the donor.
func (r *DonationRepositoryPG) Create(ctx context.Context, donorID, dateAccepted, notes string) (*domain.Donation, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertDonation, uuid.NewString(), donorID, dateAccepted, notes)
	var dn domain.Donation
	var accepted time.Time
	if err := row.Scan(&dn.ID, &dn.DonorID, &accepted, &dn.Notes, &dn.CreatedAt); err != nil {
		return nil, err
	}
	dn.DateAccepted = accepted.Format(dateOnly)
	return &dn, nil
}

// ListForDonor returns the donor's donations newest first, each with its
// items attached.
func (r *DonationRepositoryPG) ListForDonor(ctx context.Context, donorID string) ([]domain.DonationWithItems, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListDonationsForDonor, donorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donations []domain.DonationWithItems
	index := make(map[string]int)
	for rows.Next() {
		var dn domain.Donation
		var accepted time.Time
		if err := rows.Scan(&dn.ID, &dn.DonorID, &accepted, &dn.Notes, &dn.CreatedAt); err != nil {
			return nil, err
		}
		dn.DateAccepted = accepted.Format(dateOnly)
		index[dn.ID] = len(donations)
		donations = append(donations, domain.DonationWithItems{Donation: dn})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.sql.Query(ctx, sqlinline.QListItemsForDonor, donorID)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it domain.DonationItem
		if err := itemRows.Scan(&it.ID, &it.DonationID, &it.Description, &it.StorageLocation,
			&it.PhotoURL, &it.NotificationSent, &it.CreatedAt); err != nil {
			return nil, err
		}
		if i, ok := index[it.DonationID]; ok {
			donations[i].Items = append(donations[i].Items, it)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}
	return donations, nil
}

var _ domain.DonationRepository = (*DonationRepositoryPG)(nil)
