package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ghuser/organcare/pkg/logger"
	organdomain "github.com/ghuser/organcare/services/organ/domain"
	"github.com/ghuser/organcare/services/organ/domain/models"
)

func TestRecordStore_LoadCreatesFreshState(t *testing.T) {
	repo := newFlakyRepo()
	store := NewRecordStore(repo, logger.Discard())

	created, err := store.Load(context.Background(), testLocations())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected fresh state to be created")
	}
	if repo.saveCount() != 1 {
		t.Fatalf("expected fresh state to be saved once, got %d", repo.saveCount())
	}
	stored, found, err := repo.Load(context.Background())
	if err != nil || !found {
		t.Fatalf("expected stored state, found=%v err=%v", found, err)
	}
	if len(stored.Locations) != 3 {
		t.Fatalf("expected 3 seeded locations, got %d", len(stored.Locations))
	}
}

func TestRecordStore_LoadFreshSaveFailure(t *testing.T) {
	repo := newFlakyRepo()
	repo.setFail(true)
	store := NewRecordStore(repo, logger.Discard())

	_, err := store.Load(context.Background(), testLocations())
	if !errors.Is(err, organdomain.ErrPersistState) {
		t.Fatalf("expected ErrPersistState, got %v", err)
	}
}

func TestRecordStore_LoadExisting(t *testing.T) {
	repo := newFlakyRepo()
	existing := models.NewAppState(nil)
	existing.Organs = append(existing.Organs, models.Organ{ID: "o1", LocationID: "l1"})
	if err := repo.Save(context.Background(), existing); err != nil {
		t.Fatalf("seed repo: %v", err)
	}

	store := NewRecordStore(repo, logger.Discard())
	created, err := store.Load(context.Background(), testLocations())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatal("expected stored state to be used")
	}
	snap := store.Snapshot()
	if len(snap.Organs) != 1 {
		t.Fatalf("expected 1 organ, got %d", len(snap.Organs))
	}
	if len(snap.Locations) != 3 {
		t.Fatalf("expected seed locations to fill an empty list, got %d", len(snap.Locations))
	}
}

func TestRecordStore_Update(t *testing.T) {
	f := newFixture(t)
	before := f.repo.saveCount()

	t.Run("no change skips save", func(t *testing.T) {
		changed, err := f.store.Update(context.Background(), func(*models.AppState) (bool, error) {
			return false, nil
		})
		if err != nil || changed {
			t.Fatalf("expected no change, got changed=%v err=%v", changed, err)
		}
		if f.repo.saveCount() != before {
			t.Fatalf("expected no save, got %d saves", f.repo.saveCount()-before)
		}
	})

	t.Run("fn error leaves state", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := f.store.Update(context.Background(), func(s *models.AppState) (bool, error) {
			s.Organs = append(s.Organs, models.Organ{ID: "ghost"})
			return false, boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		if !f.store.IsEmpty() {
			t.Fatal("expected state unchanged")
		}
	})

	t.Run("save failure leaves state", func(t *testing.T) {
		f.repo.setFail(true)
		defer f.repo.setFail(false)

		_, err := f.store.Update(context.Background(), func(s *models.AppState) (bool, error) {
			s.Organs = append(s.Organs, models.Organ{ID: "ghost"})
			return true, nil
		})
		if !errors.Is(err, organdomain.ErrPersistState) {
			t.Fatalf("expected ErrPersistState, got %v", err)
		}
		if !errors.Is(err, errDiskFull) {
			t.Fatalf("expected cause to be kept, got %v", err)
		}
		if !f.store.IsEmpty() {
			t.Fatal("expected state unchanged after failed save")
		}
	})

	t.Run("commit swaps state", func(t *testing.T) {
		changed, err := f.store.Update(context.Background(), func(s *models.AppState) (bool, error) {
			s.Organs = append(s.Organs, models.Organ{ID: "o1"})
			return true, nil
		})
		if err != nil || !changed {
			t.Fatalf("expected commit, got changed=%v err=%v", changed, err)
		}
		if f.store.IsEmpty() {
			t.Fatal("expected organ to be visible")
		}
		stored, _, _ := f.repo.Load(context.Background())
		if len(stored.Organs) != 1 {
			t.Fatalf("expected stored organ, got %d", len(stored.Organs))
		}
	})
}

func TestRecordStore_SnapshotIsIsolated(t *testing.T) {
	f := newFixture(t)
	snap := f.store.Snapshot()
	snap.Locations[0].Name = "changed"

	f.store.View(func(s *models.AppState) {
		if s.Locations[0].Name == "changed" {
			t.Fatal("snapshot shares memory with the store")
		}
	})
}

func TestRecordStore_Replace(t *testing.T) {
	f := newFixture(t)
	next := models.NewAppState(testLocations())
	next.Organs = append(next.Organs, models.Organ{ID: "remote"})

	if err := f.store.Replace(context.Background(), next); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := f.store.Snapshot().FindOrgan("remote"); !ok {
		t.Fatal("expected replaced state to be current")
	}

	f.repo.setFail(true)
	err := f.store.Replace(context.Background(), models.NewAppState(nil))
	if !errors.Is(err, organdomain.ErrPersistState) {
		t.Fatalf("expected ErrPersistState, got %v", err)
	}
	if _, ok := f.store.Snapshot().FindOrgan("remote"); !ok {
		t.Fatal("expected state kept after failed replace")
	}
}
