package notify

import (
	"context"
	"fmt"
	"time"

	"server/internal/domain"
	"server/internal/format"
	"server/internal/infra"
	"server/internal/sqlinline"
)

const emailSubject = "Item Donation Status Update — 30 Days"

// ItemOutcome is the per-item line of the sweep summary.
type ItemOutcome struct {
	ID     string `json:"id"`
	Donor  string `json:"donor"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Summary is the JSON result contract of a sweep run.
type Summary struct {
	Message string        `json:"message"`
	Results []ItemOutcome `json:"results"`
}

// Sweeper finds donation items that have sat unnotified for 30 or more days
// and emails each item's donor once. Items whose email fails are left
// untouched so the next run naturally retries them.
type Sweeper struct {
	SQL     infra.SQLExecutor
	Sender  EmailSender
	OrgName string
	Logger  infra.Logger

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

type notifiableItem struct {
	id           string
	description  string
	location     string
	dateAccepted string
	donorName    string
	donorEmail   string
}

// Run executes one sweep and returns its summary. Only a failure to read the
// candidate set is a run-level error; individual email failures are recorded
// per item.
func (s *Sweeper) Run(ctx context.Context) (*Summary, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	cutoff := now().AddDate(0, 0, -domain.NotifyAfterDays).Format("2006-01-02")

	items, err := s.fetchNotifiable(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("fetch notifiable items: %w", err)
	}
	if len(items) == 0 {
		return &Summary{Message: "No items to notify", Results: []ItemOutcome{}}, nil
	}

	results := make([]ItemOutcome, 0, len(items))
	for _, item := range items {
		outcome := ItemOutcome{ID: item.id, Donor: item.donorName, Status: "sent"}
		if err := s.Sender.Send(ctx, item.donorEmail, emailSubject, s.emailBody(item)); err != nil {
			s.Logger.Error().Err(err).Str("item_id", item.id).Msg("sweep: email failed")
			outcome.Status = "failed"
			outcome.Error = err.Error()
			results = append(results, outcome)
			continue
		}
		// The email went out; a mark failure only risks a duplicate on the
		// next run, which is accepted.
		if _, err := s.SQL.Exec(ctx, sqlinline.QMarkItemNotified, item.id); err != nil {
			s.Logger.Error().Err(err).Str("item_id", item.id).Msg("sweep: mark notified failed")
		}
		s.Logger.Info().Str("item_id", item.id).Str("donor", item.donorName).Msg("sweep: reminder sent")
		results = append(results, outcome)
	}

	return &Summary{
		Message: fmt.Sprintf("Processed %d items", len(items)),
		Results: results,
	}, nil
}

func (s *Sweeper) fetchNotifiable(ctx context.Context, cutoff string) ([]notifiableItem, error) {
	rows, err := s.SQL.Query(ctx, sqlinline.QSelectNotifiableItems, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []notifiableItem
	for rows.Next() {
		var item notifiableItem
		var accepted time.Time
		if err := rows.Scan(&item.id, &item.description, &item.location,
			&accepted, &item.donorName, &item.donorEmail); err != nil {
			return nil, err
		}
		item.dateAccepted = accepted.Format("2006-01-02")
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Sweeper) emailBody(item notifiableItem) string {
	return fmt.Sprintf(`<div style="font-family: 'Segoe UI', Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 24px;">
  <h2 style="color: #d97706; margin-bottom: 16px;">Donation Inventory Update</h2>
  <p>Dear %s,</p>
  <p>This is a reminder that it has been 30 days since you donated the following item:</p>
  <div style="background-color: #fef3c7; padding: 16px; border-radius: 8px; margin: 20px 0;">
    <p style="margin: 4px 0;"><strong>Item:</strong> %s</p>
    <p style="margin: 4px 0;"><strong>Date Accepted:</strong> %s</p>
    <p style="margin: 4px 0;"><strong>Storage Location:</strong> %s</p>
  </div>
  <p>Thank you for your generous donation!</p>
  <p>Best regards,<br/>%s</p>
</div>`,
		format.DisplayName(item.donorName),
		item.description,
		format.Date(item.dateAccepted),
		item.location,
		s.OrgName,
	)
}
