package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/knupi/practice-reservation/internal/model"
	"github.com/knupi/practice-reservation/internal/repository"
	"github.com/knupi/practice-reservation/internal/timeslot"
)

func rankRes(name, id, date string, start, end float64) model.Reservation {
	s, _ := timeslot.FromHour(start)
	e, _ := timeslot.FromHour(end)
	return model.Reservation{
		Holder:    model.Holder{Name: name, ID: id},
		Resource:  "piano-1",
		Date:      date,
		StartTick: s,
		EndTick:   e,
	}
}

func TestMonthlyRankingTotals(t *testing.T) {
	existing := []model.Reservation{
		rankRes("A", "2023000001", "2026-02-10", 10.0, 11.5),
		rankRes("A", "2023000001", "2026-02-12", 14.0, 15.0),
		rankRes("B", "2023000002", "2026-02-11", 9.0, 9.5),
	}
	got := MonthlyRanking(existing, 2026, time.February, 3)
	if len(got) != 2 {
		t.Fatalf("ranking has %d entries, want 2", len(got))
	}
	if got[0].Name != "A" || got[0].TotalHours != 2.5 {
		t.Errorf("first entry = %+v, want A with 2.5 hours", got[0])
	}
	if got[1].Name != "B" || got[1].TotalHours != 0.5 {
		t.Errorf("second entry = %+v, want B with 0.5 hours", got[1])
	}
}

func TestMonthlyRankingFiltersByMonth(t *testing.T) {
	existing := []model.Reservation{
		rankRes("A", "2023000001", "2026-01-31", 10.0, 20.0),
		rankRes("B", "2023000002", "2026-02-01", 10.0, 10.5),
		rankRes("C", "2023000003", "2026-03-01", 10.0, 20.0),
	}
	got := MonthlyRanking(existing, 2026, time.February, 3)
	if len(got) != 1 || got[0].Name != "B" {
		t.Errorf("ranking = %+v, want only B (January and March excluded)", got)
	}
}

func TestMonthlyRankingGroupsByNameAndID(t *testing.T) {
	// Two distinct people sharing a display name must not pool their hours.
	existing := []model.Reservation{
		rankRes("김하늘", "2023000001", "2026-02-10", 10.0, 11.0),
		rankRes("김하늘", "2020999999", "2026-02-11", 10.0, 11.0),
		rankRes("박지민", "2022000002", "2026-02-12", 10.0, 11.5),
	}
	got := MonthlyRanking(existing, 2026, time.February, 3)
	if len(got) != 3 {
		t.Fatalf("ranking has %d entries, want 3 (shared names kept distinct)", len(got))
	}
	if got[0].Name != "박지민" || got[0].TotalHours != 1.5 {
		t.Errorf("first entry = %+v, want 박지민 with 1.5 hours", got[0])
	}
}

func TestMonthlyRankingTieBreakIsAlphabetical(t *testing.T) {
	existing := []model.Reservation{
		rankRes("C", "2023000003", "2026-02-10", 10.0, 11.0),
		rankRes("A", "2023000001", "2026-02-11", 10.0, 11.0),
		rankRes("B", "2023000002", "2026-02-12", 10.0, 11.0),
	}
	got := MonthlyRanking(existing, 2026, time.February, 3)
	want := []string{"A", "B", "C"}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("entry %d = %q, want %q (alphabetical tie-break)", i, got[i].Name, name)
		}
	}
}

func TestMonthlyRankingTruncatesToN(t *testing.T) {
	var existing []model.Reservation
	ids := []string{"2023000001", "2023000002", "2023000003", "2023000004", "2023000005"}
	for i, id := range ids {
		date := fmt.Sprintf("2026-02-%02d", 10+i)
		existing = append(existing, rankRes(string(rune('A'+i)), id, date, 10.0, 11.0+float64(i)*0.5))
	}
	got := MonthlyRanking(existing, 2026, time.February, 3)
	if len(got) != 3 {
		t.Errorf("ranking has %d entries, want top 3", len(got))
	}
}

func TestServiceMonthlyRanking(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	s, e := mustTicks(t, 10.0, 12.0)
	if _, err := svc.Reserve(ctx, draft("piano-1", "2026-02-10", s, e)); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	got, err := svc.MonthlyRanking(ctx, 2026, time.February, 3)
	if err != nil {
		t.Fatalf("MonthlyRanking: %v", err)
	}
	if len(got) != 1 || got[0].TotalHours != 2.0 {
		t.Errorf("ranking = %+v, want one entry with 2.0 hours", got)
	}
}
