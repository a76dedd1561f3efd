package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"rideboard/internal/models"
	"rideboard/internal/repositories/interfaces"
)

var (
	alice = models.UserRef{ID: 1, FirstName: "Alice"}
	bob   = models.UserRef{ID: 2, FirstName: "Bob", LastName: "Silva"}
)

func TestAddThenRemoveRideRoundTrip(t *testing.T) {
	repo := newMemGroupRepo()
	svc := NewRideService(repo, nil, quietLogger())
	ctx := context.Background()

	departure := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	if _, err := svc.AddRide(ctx, 100, alice, departure, "centro", models.DirectionGoing); err != nil {
		t.Fatalf("add: %v", err)
	}

	removed, err := svc.RemoveRide(ctx, 100, alice.ID, models.DirectionGoing)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !removed {
		t.Fatal("expected removal to report a change")
	}

	group := repo.groups[100]
	if len(group.Going) != 0 {
		t.Fatalf("expected no going rides, got %d", len(group.Going))
	}
}

func TestAddRideOverwritesSameKey(t *testing.T) {
	repo := newMemGroupRepo()
	svc := NewRideService(repo, nil, quietLogger())
	ctx := context.Background()

	first := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	second := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

	if _, err := svc.AddRide(ctx, 100, alice, first, "centro", models.DirectionGoing); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddRide(ctx, 100, alice, second, "rodoviária", models.DirectionGoing); err != nil {
		t.Fatal(err)
	}

	group := repo.groups[100]
	if len(group.Going) != 1 {
		t.Fatalf("expected one going ride, got %d", len(group.Going))
	}

	ride := group.Going[models.RideKey(alice.ID)]
	if !ride.Time.Equal(second) || ride.Description != "rodoviária" {
		t.Fatalf("expected overwrite, got %+v", ride)
	}
}

func TestRemoveRideWithoutGroupIsNoOp(t *testing.T) {
	repo := newMemGroupRepo()
	svc := NewRideService(repo, nil, quietLogger())

	removed, err := svc.RemoveRide(context.Background(), 999, alice.ID, models.DirectionComing)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if removed {
		t.Fatal("expected no-op for missing group")
	}
	if _, exists := repo.groups[999]; exists {
		t.Fatal("remove must never create a group document")
	}
}

func TestSetRideFull(t *testing.T) {
	repo := newMemGroupRepo()
	svc := NewRideService(repo, nil, quietLogger())
	ctx := context.Background()

	departure := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	if _, err := svc.AddRide(ctx, 100, bob, departure, "praia", models.DirectionComing); err != nil {
		t.Fatal(err)
	}

	modified, err := svc.SetRideFull(ctx, 100, bob.ID, models.DirectionComing, models.RideFull)
	if err != nil {
		t.Fatal(err)
	}
	if !modified {
		t.Fatal("expected full flag change to report modification")
	}

	ride := repo.groups[100].Coming[models.RideKey(bob.ID)]
	if ride.Full != models.RideFull {
		t.Fatalf("expected full=1, got %d", ride.Full)
	}
}

func TestSetRideFullAbsentRideIsNoOp(t *testing.T) {
	repo := newMemGroupRepo()
	svc := NewRideService(repo, nil, quietLogger())
	ctx := context.Background()

	departure := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	if _, err := svc.AddRide(ctx, 100, alice, departure, "centro", models.DirectionGoing); err != nil {
		t.Fatal(err)
	}

	modified, err := svc.SetRideFull(ctx, 100, 777, models.DirectionGoing, models.RideFull)
	if err != nil {
		t.Fatal(err)
	}
	if modified {
		t.Fatal("expected no-op for absent ride key")
	}
}

func TestCleanExpiredRidesStrictBoundary(t *testing.T) {
	repo := newMemGroupRepo()
	svc := NewRideService(repo, nil, quietLogger())
	ctx := context.Background()

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	if _, err := svc.AddRide(ctx, 100, alice, now.Add(-time.Hour), "expirada", models.DirectionGoing); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddRide(ctx, 100, bob, now, "na hora", models.DirectionGoing); err != nil {
		t.Fatal(err)
	}
	other := models.UserRef{ID: 3, FirstName: "Carol"}
	if _, err := svc.AddRide(ctx, 100, other, now.Add(time.Hour), "futura", models.DirectionComing); err != nil {
		t.Fatal(err)
	}

	svc.CleanExpiredRides(ctx, 100, now)

	group := repo.groups[100]
	if _, ok := group.Going[models.RideKey(alice.ID)]; ok {
		t.Fatal("expired ride should have been removed")
	}
	if _, ok := group.Going[models.RideKey(bob.ID)]; !ok {
		t.Fatal("ride exactly at now must be retained")
	}
	if _, ok := group.Coming[models.RideKey(other.ID)]; !ok {
		t.Fatal("future ride must be retained")
	}
}

func TestCleanExpiredRidesMissingGroupIsSilent(t *testing.T) {
	repo := newMemGroupRepo()
	svc := NewRideService(repo, nil, quietLogger())

	svc.CleanExpiredRides(context.Background(), 999, time.Now())

	if len(repo.groups) != 0 {
		t.Fatal("sweep must not create documents")
	}
}

func TestCleanExpiredRidesSwallowsStoreErrors(t *testing.T) {
	repo := newMemGroupRepo()
	repo.failure = interfaces.ErrStoreUnavailable
	svc := NewRideService(repo, nil, quietLogger())

	// Must not panic or propagate; the sweep is best-effort.
	svc.CleanExpiredRides(context.Background(), 100, time.Now())
}

func TestMutationsInvalidateScheduleCache(t *testing.T) {
	repo := newMemGroupRepo()
	cache := newMemCache()
	svc := NewRideService(repo, cache, quietLogger())
	ctx := context.Background()

	cache.values[scheduleCacheKey(100)] = "stale"

	departure := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	if _, err := svc.AddRide(ctx, 100, alice, departure, "centro", models.DirectionGoing); err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.values[scheduleCacheKey(100)]; ok {
		t.Fatal("expected add to invalidate the cached schedule")
	}
}

func TestCreateGroupDuplicate(t *testing.T) {
	repo := newMemGroupRepo()
	svc := NewRideService(repo, nil, quietLogger())
	ctx := context.Background()

	if err := svc.CreateGroup(ctx, 100); err != nil {
		t.Fatal(err)
	}
	err := svc.CreateGroup(ctx, 100)
	if !errors.Is(err, interfaces.ErrDuplicateGroup) {
		t.Fatalf("expected duplicate group error, got %v", err)
	}
}
