package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/knupi/practice-reservation/internal/model"
	"github.com/knupi/practice-reservation/internal/repository"
)

// fixedNow pins the clock so window and scoping checks are reproducible.
func fixedNow() time.Time {
	return time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC)
}

func newTestService(store repository.ReservationStore) *Service {
	identity := NewIdentity(testAdmin, store).WithClock(fixedNow)
	return NewService(store, NewEngine(testPolicy()), identity, 14, nil).WithClock(fixedNow)
}

func TestReserveEndToEnd(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	s, e := mustTicks(t, 13.0, 14.0)
	res, err := svc.Reserve(ctx, draft("piano-1", "2026-02-10", s, e))
	if err != nil {
		t.Fatalf("Reserve(13:00-14:00) = %v, want success", err)
	}
	if res.ID == "" {
		t.Error("accepted reservation has no store-assigned id")
	}
	if res.Start() != 13.0 || res.End() != 14.0 {
		t.Errorf("stored interval = %v-%v, want 13-14", res.Start(), res.End())
	}

	// Overlapping attempt on the same piano and date must fail.
	s2, e2 := mustTicks(t, 13.5, 14.5)
	if _, err := svc.Reserve(ctx, draft("piano-1", "2026-02-10", s2, e2)); !errors.Is(err, ErrSlotConflict) {
		t.Errorf("Reserve(13:30-14:30) = %v, want ErrSlotConflict", err)
	}

	// Back-to-back attempt must succeed.
	s3, e3 := mustTicks(t, 14.0, 15.0)
	if _, err := svc.Reserve(ctx, draft("piano-1", "2026-02-10", s3, e3)); err != nil {
		t.Errorf("Reserve(14:00-15:00) = %v, want success", err)
	}
}

func TestReserveValidationLeavesStoreUntouched(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	bad := draft("piano-1", "2026-02-10", 30, 28)
	if _, err := svc.Reserve(ctx, bad); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("Reserve(inverted range) = %v, want ErrInvalidTime", err)
	}
	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("store contains %d reservations after rejected candidate, want 0", len(all))
	}
}

func TestReserveDateRules(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()
	s, e := mustTicks(t, 13.0, 14.0)

	tests := []struct {
		name string
		date string
	}{
		{"malformed date", "02/10/2026"},
		{"past date", "2026-01-20"},
		{"beyond the two-week window", "2026-03-05"},
	}
	for _, tt := range tests {
		if _, err := svc.Reserve(ctx, draft("piano-1", tt.date, s, e)); !errors.Is(err, ErrInvalidTime) {
			t.Errorf("%s: Reserve() = %v, want ErrInvalidTime", tt.name, err)
		}
	}

	// The last day inside the window is bookable.
	if _, err := svc.Reserve(ctx, draft("piano-1", "2026-02-14", s, e)); err != nil {
		t.Errorf("last window day: Reserve() = %v, want success", err)
	}
}

func TestCancelOwnershipAndIdempotence(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	s, e := mustTicks(t, 13.0, 14.0)
	res, err := svc.Reserve(ctx, draft("piano-1", "2026-02-10", s, e))
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	stranger := model.Holder{Name: "이서준", ID: "2021000000"}
	if err := svc.Cancel(ctx, res.ID, stranger); !errors.Is(err, ErrForbidden) {
		t.Errorf("Cancel by stranger = %v, want ErrForbidden", err)
	}

	holder := model.Holder{Name: "김하늘", ID: "2023123456"}
	if err := svc.Cancel(ctx, res.ID, holder); err != nil {
		t.Fatalf("Cancel by holder = %v, want success", err)
	}

	// Second cancellation: NotFound, and the store state is unchanged.
	if err := svc.Cancel(ctx, res.ID, holder); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Cancel = %v, want ErrNotFound", err)
	}
	all, _ := store.ListAll(ctx)
	if len(all) != 0 {
		t.Errorf("store contains %d reservations after double cancel, want 0", len(all))
	}
}

func TestCancelByAdministrativeIdentity(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	s, e := mustTicks(t, 13.0, 14.0)
	res, err := svc.Reserve(ctx, draft("piano-1", "2026-02-10", s, e))
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if err := svc.Cancel(ctx, res.ID, testAdmin); err != nil {
		t.Errorf("Cancel by admin = %v, want success", err)
	}
}

func TestConcurrentReserveAdmitsAtMostOne(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := newTestService(store)
	s, e := mustTicks(t, 13.0, 14.0)

	const racers = 16
	var wg sync.WaitGroup
	results := make(chan error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Reserve(context.Background(), draft("piano-1", "2026-02-10", s, e))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	accepted := 0
	for err := range results {
		if err == nil {
			accepted++
		} else if !errors.Is(err, ErrSlotConflict) {
			t.Errorf("racing Reserve = %v, want nil or ErrSlotConflict", err)
		}
	}
	if accepted != 1 {
		t.Errorf("%d racing reservations accepted, want exactly 1", accepted)
	}

	all, _ := store.ListAll(context.Background())
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if all[i].Overlaps(all[j]) {
				t.Errorf("store holds overlapping reservations %s and %s", all[i].ID, all[j].ID)
			}
		}
	}
}
