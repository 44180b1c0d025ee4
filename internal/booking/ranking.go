package booking

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/knupi/practice-reservation/internal/model"
	"github.com/knupi/practice-reservation/internal/timeslot"
)

// RankingEntry is one row of the monthly usage ranking.
type RankingEntry struct {
	Name       string  `json:"name"`
	TotalHours float64 `json:"total_hours"`
}

// MonthlyRanking aggregates the given reservations into the top-n holders by
// total booked duration within the given calendar month.  Holders are
// grouped by the (name, id) pair so two people sharing a display name never
// pool their hours.  Equal totals order alphabetically by name, then by id,
// so the ranking is deterministic for identical input.
func MonthlyRanking(existing []model.Reservation, year int, month time.Month, n int) []RankingEntry {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format(timeslot.DateLayout)
	next := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0).Format(timeslot.DateLayout)

	totals := make(map[model.Holder]float64)
	for _, r := range existing {
		if r.Date < first || r.Date >= next {
			continue
		}
		totals[r.Holder] += r.DurationHours()
	}

	ranked := make([]model.Holder, 0, len(totals))
	for h := range totals {
		ranked = append(ranked, h)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if totals[a] != totals[b] {
			return totals[a] > totals[b]
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}

	out := make([]RankingEntry, 0, len(ranked))
	for _, h := range ranked {
		out = append(out, RankingEntry{Name: h.Name, TotalHours: totals[h]})
	}
	return out
}

// MonthlyRanking reads the month's reservations from the store and returns
// the top-n ranking.
func (s *Service) MonthlyRanking(ctx context.Context, year int, month time.Month, n int) ([]RankingEntry, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	from := first.Format(timeslot.DateLayout)
	to := first.AddDate(0, 1, 0).Format(timeslot.DateLayout)
	existing, err := s.store.ListByDateRange(ctx, from, to)
	if err != nil {
		log.Printf("ranking: list reservations %s..%s: %v", from, to, err)
		return nil, fmt.Errorf("%w: list reservations", ErrStoreFailure)
	}
	return MonthlyRanking(existing, year, month, n), nil
}
