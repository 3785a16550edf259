package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/organcare/pkg/logger"
	"github.com/ghuser/organcare/services/organ/domain/models"
	"github.com/ghuser/organcare/services/organ/infrastructure/persistence/memory"
)

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

var errDiskFull = errors.New("disk full")

// flakyRepo wraps the memory repository and fails saves on demand.
type flakyRepo struct {
	*memory.StateRepository
	mu       sync.Mutex
	failSave bool
	saves    int
}

func newFlakyRepo() *flakyRepo {
	return &flakyRepo{StateRepository: memory.New()}
}

func (r *flakyRepo) Save(ctx context.Context, s *models.AppState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave {
		return errDiskFull
	}
	r.saves++
	return r.StateRepository.Save(ctx, s)
}

func (r *flakyRepo) setFail(fail bool) {
	r.mu.Lock()
	r.failSave = fail
	r.mu.Unlock()
}

func (r *flakyRepo) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

// recordingPublisher keeps every published message by topic.
type recordingPublisher struct {
	mu   sync.Mutex
	msgs map[string][]*message.Message
	err  error
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{msgs: map[string][]*message.Message{}}
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, msgs ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.msgs[topic] = append(p.msgs[topic], msgs...)
	return nil
}

func (p *recordingPublisher) count(topic string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.msgs[topic])
}

func testLocations() []models.Location {
	return []models.Location{
		{ID: "l1", Name: "Centro", Adm: models.AdmLaguna},
		{ID: "l2", Name: "Mar Grosso", Adm: models.AdmLaguna},
		{ID: "l3", Name: "Centro", Adm: models.AdmTubarao},
	}
}

// sequentialIDs returns id-1, id-2, ...
func sequentialIDs() func() string {
	var n int
	var mu sync.Mutex
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

type fixture struct {
	repo      *flakyRepo
	store     *RecordStore
	publisher *recordingPublisher
	mutations *MutationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newFlakyRepo()
	store := NewRecordStore(repo, logger.Discard())
	if _, err := store.Load(context.Background(), testLocations()); err != nil {
		t.Fatalf("load: %v", err)
	}
	pub := newRecordingPublisher()
	svc := NewMutationService(store, pub, logger.Discard())
	svc.now = func() time.Time { return testNow }
	svc.newID = sequentialIDs()
	return &fixture{repo: repo, store: store, publisher: pub, mutations: svc}
}

func (f *fixture) createOrgan(t *testing.T, locationID string) *models.Organ {
	t.Helper()
	o, err := f.mutations.CreateOrgan(context.Background(), OrganInput{
		LocationID:      locationID,
		ChurchLocation:  models.PositionChurchHall,
		Model:           "Yamaha PSR",
		SerialNumber:    "SN-1",
		PatrimonyNumber: "P-1",
	})
	if err != nil {
		t.Fatalf("create organ: %v", err)
	}
	return o
}

func (f *fixture) createMaintenance(t *testing.T, organID string, date time.Time) *models.Maintenance {
	t.Helper()
	m, err := f.mutations.CreateMaintenance(context.Background(), MaintenanceInput{
		OrganID:     organID,
		Date:        date,
		Technicians: []string{"Ana"},
		Occurrence:  "tuning",
	})
	if err != nil {
		t.Fatalf("create maintenance: %v", err)
	}
	return m
}
