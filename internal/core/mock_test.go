package core

import (
	"context"
	"time"

	"github.com/nyangmap/nyangmap/internal/geo"
	"github.com/nyangmap/nyangmap/internal/model"
)

type MockStore struct {
	Entries   map[string]model.Entry
	Hospitals []model.Hospital
	Saved     []model.Entry
	InRange   []model.Entry
	Err       error
	RangeErr  error
}

func NewMockStore() *MockStore {
	return &MockStore{Entries: map[string]model.Entry{}}
}

func (m *MockStore) SaveEntry(ctx context.Context, entry model.Entry) error {
	if m.Err != nil {
		return m.Err
	}
	m.Saved = append(m.Saved, entry)
	m.Entries[entry.ID] = entry
	return nil
}

func (m *MockStore) GetEntry(ctx context.Context, id string) (*model.Entry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	e, ok := m.Entries[id]
	if !ok {
		return nil, errNotFound
	}
	return &e, nil
}

func (m *MockStore) EntriesInRange(ctx context.Context, loc model.Location, box geo.Box) ([]model.Entry, error) {
	if m.RangeErr != nil {
		return nil, m.RangeErr
	}
	return m.InRange, nil
}

func (m *MockStore) AllEntries(ctx context.Context) ([]model.Entry, error) {
	var all []model.Entry
	for _, e := range m.Entries {
		all = append(all, e)
	}
	return all, nil
}

func (m *MockStore) DeleteEntry(ctx context.Context, id string) error {
	delete(m.Entries, id)
	return nil
}

func (m *MockStore) AddFeeding(ctx context.Context, entryID string, rec model.FeedingRecord) error {
	e, ok := m.Entries[entryID]
	if !ok {
		return errNotFound
	}
	e.Feedings = append(e.Feedings, rec)
	m.Entries[entryID] = e
	return nil
}

func (m *MockStore) SetNeutered(ctx context.Context, id string, neutered bool, at *time.Time) error {
	e, ok := m.Entries[id]
	if !ok {
		return errNotFound
	}
	e.Neutered = neutered
	e.NeuteredAt = at
	m.Entries[id] = e
	return nil
}

func (m *MockStore) SetSummary(ctx context.Context, id, summary string) error {
	e, ok := m.Entries[id]
	if !ok {
		return errNotFound
	}
	e.Summary = summary
	m.Entries[id] = e
	return nil
}

func (m *MockStore) SaveHospital(ctx context.Context, h model.Hospital) error {
	m.Hospitals = append(m.Hospitals, h)
	return nil
}

func (m *MockStore) HospitalsInRange(ctx context.Context, loc model.Location, box geo.Box) ([]model.Hospital, error) {
	return m.Hospitals, nil
}

type MockExtractor struct {
	Vector []float32
	Err    error
	Calls  int
}

func (m *MockExtractor) Extract(ctx context.Context, imageURL string) ([]float32, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Vector, nil
}
