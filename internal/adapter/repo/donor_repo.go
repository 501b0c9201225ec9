package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/format"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// DonorRepositoryPG implements domain.DonorRepository backed by PostgreSQL.
type DonorRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewDonorRepository creates a new DonorRepositoryPG.
func NewDonorRepository(sql infra.SQLExecutor) *DonorRepositoryPG {
	return &DonorRepositoryPG{sql: sql}
}

// Create inserts a new donor. Field values are trimmed, the phone is stored
// pre-formatted through the progressive mask, and an empty email is stored as
// NULL so notification eligibility checks stay simple.
func (r *DonorRepositoryPG) Create(ctx context.Context, fields domain.DonorFields) (*domain.Donor, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertDonor,
		uuid.NewString(),
		strings.TrimSpace(fields.Name),
		strings.TrimSpace(fields.Email),
		strings.TrimSpace(fields.Address),
		format.Phone(fields.Phone),
	)
	return scanDonor(row)
}

// Update rewrites the mutable donor fields by id. The phone goes through the
// same mask as Create.
func (r *DonorRepositoryPG) Update(ctx context.Context, id string, fields domain.DonorFields) (*domain.Donor, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QUpdateDonor,
		id,
		strings.TrimSpace(fields.Name),
		strings.TrimSpace(fields.Email),
		strings.TrimSpace(fields.Address),
		format.Phone(fields.Phone),
	)
	return scanDonor(row)
}

// GetByID fetches a donor by UUID.
func (r *DonorRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Donor, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectDonorByID, id)
	return scanDonor(row)
}

// Search returns donors whose name, email, or phone contains the term,
// ordered by name and capped at limit.
func (r *DonorRepositoryPG) Search(ctx context.Context, term string, limit int) ([]domain.Donor, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QSearchDonors, term, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donors []domain.Donor
	for rows.Next() {
		var d domain.Donor
		if err := rows.Scan(&d.ID, &d.Name, &d.Email, &d.Address, &d.Phone, &d.CreatedAt); err != nil {
			return nil, err
		}
		donors = append(donors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return donors, nil
}

// ListWithCounts returns all donors with their donation and item totals.
func (r *DonorRepositoryPG) ListWithCounts(ctx context.Context) ([]domain.DonorWithCounts, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListDonorsWithCounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donors []domain.DonorWithCounts
	for rows.Next() {
		var d domain.DonorWithCounts
		if err := rows.Scan(&d.ID, &d.Name, &d.Email, &d.Address, &d.Phone, &d.CreatedAt,
			&d.DonationCount, &d.ItemCount); err != nil {
			return nil, err
		}
		donors = append(donors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return donors, nil
}

func scanDonor(row pgx.Row) (*domain.Donor, error) {
	var d domain.Donor
	if err := row.Scan(&d.ID, &d.Name, &d.Email, &d.Address, &d.Phone, &d.CreatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

var _ domain.DonorRepository = (*DonorRepositoryPG)(nil)
