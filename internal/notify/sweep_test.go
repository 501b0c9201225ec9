package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"server/internal/sqlinline"
)

type sweepRow struct {
	id          string
	description string
	location    string
	accepted    time.Time
	donorName   string
	donorEmail  string // empty means no email on file
	notified    bool
}

// sweepTestSQL serves the notifiable-items query over an in-memory table,
// applying the same eligibility predicate the real SQL does.
type sweepTestSQL struct {
	rows      []sweepRow
	markCalls []string
	markErr   error
}

func (db *sweepTestSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	if query != sqlinline.QMarkItemNotified {
		return pgconn.CommandTag{}, fmt.Errorf("unexpected exec: %s", query)
	}
	if db.markErr != nil {
		return pgconn.CommandTag{}, db.markErr
	}
	db.markCalls = append(db.markCalls, args[0].(string))
	return pgconn.CommandTag{}, nil
}

func (db *sweepTestSQL) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func (db *sweepTestSQL) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	if query != sqlinline.QSelectNotifiableItems {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	cutoff := args[0].(string)
	var matched []sweepRow
	for _, row := range db.rows {
		if row.notified || row.donorEmail == "" {
			continue
		}
		// date_accepted <= cutoff, compared as calendar dates.
		if row.accepted.Format("2006-01-02") > cutoff {
			continue
		}
		matched = append(matched, row)
	}
	return &sweepRowsIterator{rows: matched}, nil
}

type sweepRowsIterator struct {
	rowsBase
	rows []sweepRow
	idx  int
}

func (it *sweepRowsIterator) Next() bool {
	if it.idx >= len(it.rows) {
		return false
	}
	it.idx++
	return true
}

func (it *sweepRowsIterator) Scan(dest ...any) error {
	if it.idx == 0 || it.idx > len(it.rows) {
		return pgx.ErrNoRows
	}
	row := it.rows[it.idx-1]
	if len(dest) != 6 {
		return fmt.Errorf("unexpected scan args: %d", len(dest))
	}
	*dest[0].(*string) = row.id
	*dest[1].(*string) = row.description
	*dest[2].(*string) = row.location
	*dest[3].(*time.Time) = row.accepted
	*dest[4].(*string) = row.donorName
	*dest[5].(*string) = row.donorEmail
	return nil
}

func (it *sweepRowsIterator) Err() error { return nil }
func (it *sweepRowsIterator) Close()     {}

// rowsBase fills the pgx.Rows surface the iterator does not need.
type rowsBase struct{}

func (rowsBase) CommandTag() pgconn.CommandTag              { return pgconn.CommandTag{} }
func (rowsBase) Conn() *pgx.Conn                            { return nil }
func (rowsBase) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (rowsBase) RawValues() [][]byte                        { return nil }
func (rowsBase) Values() ([]any, error) {
	return nil, errors.New("values not supported in test rows")
}

type fakeSender struct {
	sent    []string
	failFor map[string]string // recipient -> error text
}

func (f *fakeSender) Send(_ context.Context, to, _, _ string) error {
	if msg, ok := f.failFor[to]; ok {
		return errors.New(msg)
	}
	f.sent = append(f.sent, to)
	return nil
}

func testSweeper(db *sweepTestSQL, sender *fakeSender) *Sweeper {
	return &Sweeper{
		SQL:     db,
		Sender:  sender,
		OrgName: "Campus Reclaimed",
		Logger:  zerolog.New(os.Stdout).Level(zerolog.Disabled),
	}
}

func daysAgo(n int) time.Time {
	return time.Now().AddDate(0, 0, -n)
}

func TestSweepProcessesOnlyUnnotifiedEligibleItems(t *testing.T) {
	db := &sweepTestSQL{rows: []sweepRow{
		{id: "item-1", description: "Walnut desk", location: "Building A", accepted: daysAgo(31), donorName: "Margaret Thompson", donorEmail: "margaret@example.com"},
		{id: "item-2", description: "Dining chairs", location: "Building B", accepted: daysAgo(31), donorName: "James Rodriguez", donorEmail: "james.r@email.com", notified: true},
		{id: "item-3", description: "Books", location: "Building A", accepted: daysAgo(31), donorName: "Susan Park"},
		{id: "item-4", description: "TV", location: "Building C", accepted: daysAgo(29), donorName: "Robert Chen", donorEmail: "rob.chen@email.com"},
	}}
	sender := &fakeSender{}

	summary, err := testSweeper(db, sender).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(summary.Results) != 1 {
		t.Fatalf("expected exactly one processed item, got %d", len(summary.Results))
	}
	got := summary.Results[0]
	if got.ID != "item-1" || got.Donor != "Margaret Thompson" || got.Status != "sent" {
		t.Fatalf("unexpected outcome: %#v", got)
	}
	if len(db.markCalls) != 1 || db.markCalls[0] != "item-1" {
		t.Fatalf("expected only item-1 marked, got %v", db.markCalls)
	}
	if summary.Message != "Processed 1 items" {
		t.Fatalf("unexpected message: %q", summary.Message)
	}
}

func TestSweepLeavesItemUntouchedOnEmailFailure(t *testing.T) {
	db := &sweepTestSQL{rows: []sweepRow{
		{id: "item-1", description: "Desk", location: "A", accepted: daysAgo(45), donorName: "Margaret Thompson", donorEmail: "margaret@example.com"},
	}}
	sender := &fakeSender{failFor: map[string]string{"margaret@example.com": "resend: status 500: boom"}}

	summary, err := testSweeper(db, sender).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := summary.Results[0]
	if got.Status != "failed" {
		t.Fatalf("expected failed status, got %q", got.Status)
	}
	if got.Error == "" {
		t.Fatal("expected error detail for the failed item")
	}
	if len(db.markCalls) != 0 {
		t.Fatalf("a failed email must not mark the item, got %v", db.markCalls)
	}
}

func TestSweepWithNoCandidates(t *testing.T) {
	db := &sweepTestSQL{}
	summary, err := testSweeper(db, &fakeSender{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Message != "No items to notify" {
		t.Fatalf("unexpected message: %q", summary.Message)
	}
	if len(summary.Results) != 0 {
		t.Fatalf("expected empty results, got %#v", summary.Results)
	}
}

func TestSweepCutoffIsThirtyDays(t *testing.T) {
	// An item accepted exactly 30 days ago is on the cutoff and must be
	// included; 29 days must not.
	db := &sweepTestSQL{rows: []sweepRow{
		{id: "on-cutoff", description: "x", location: "y", accepted: daysAgo(30), donorName: "A", donorEmail: "a@example.com"},
		{id: "too-new", description: "x", location: "y", accepted: daysAgo(29), donorName: "B", donorEmail: "b@example.com"},
	}}
	sender := &fakeSender{}

	summary, err := testSweeper(db, sender).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(summary.Results) != 1 || summary.Results[0].ID != "on-cutoff" {
		t.Fatalf("unexpected results: %#v", summary.Results)
	}
}

func TestSweepEmailBodyContainsItemDetails(t *testing.T) {
	s := testSweeper(&sweepTestSQL{}, &fakeSender{})
	body := s.emailBody(notifiableItem{
		description:  "Antique desk",
		location:     "Building A, Row 3",
		dateAccepted: "2026-01-15",
		donorName:    "margaret thompson",
	})
	for _, want := range []string{"Margaret Thompson", "Antique desk", "Building A, Row 3", "Jan 15, 2026", "Campus Reclaimed"} {
		if !strings.Contains(body, want) {
			t.Fatalf("email body missing %q", want)
		}
	}
}
