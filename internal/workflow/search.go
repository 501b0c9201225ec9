package workflow

import (
	"context"
	"strings"
	"sync"
	"time"

	"server/internal/domain"
)

const (
	// SearchDebounce is how long after the last keystroke a donor search
	// actually fires.
	SearchDebounce = 300 * time.Millisecond
	// DonorSearchLimit caps the number of matches shown.
	DonorSearchLimit = 8
	// minSearchLength is the term length below which no search is issued.
	minSearchLength = 2
)

// DonorSearch debounces donor lookups behind the form's search box. Each new
// term cancels the previously scheduled lookup, so the last keystroke wins.
type DonorSearch struct {
	repo    domain.DonorRepository
	delay   time.Duration
	results func([]domain.Donor, error)

	mu    sync.Mutex
	timer *time.Timer
}

// NewDonorSearch builds a debounced search that reports each completed lookup
// through the results callback.
func NewDonorSearch(repo domain.DonorRepository, results func([]domain.Donor, error)) *DonorSearch {
	return &DonorSearch{repo: repo, delay: SearchDebounce, results: results}
}

// SetTerm records a keystroke. Terms shorter than two characters cancel any
// pending lookup and search nothing; longer ones schedule a lookup after the
// debounce delay, replacing whatever was pending.
func (s *DonorSearch) SetTerm(ctx context.Context, term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	term = strings.TrimSpace(term)
	if len(term) < minSearchLength {
		return
	}

	s.timer = time.AfterFunc(s.delay, func() {
		donors, err := s.repo.Search(ctx, term, DonorSearchLimit)
		if s.results != nil {
			s.results(donors, err)
		}
	})
}

// Cancel drops any pending lookup. Called when the form unmounts.
func (s *DonorSearch) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
