package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/nyangmap/nyangmap/internal/geo"
	"github.com/nyangmap/nyangmap/internal/model"
)

// ErrNotFound is returned when the requested entry does not exist.
var ErrNotFound = errors.New("store: not found")

type Store struct {
	Driver GraphDriver
}

func NewStore(driver GraphDriver) *Store {
	return &Store{Driver: driver}
}

func (s *Store) SaveEntry(ctx context.Context, entry model.Entry) error {
	params := map[string]interface{}{
		"uuid":        entry.ID,
		"name":        entry.Name,
		"description": entry.Description,
		"lat":         entry.Location.Lat,
		"lng":         entry.Location.Lng,
		"photo_url":   entry.PhotoURL,
		"embedding":   embeddingParam(entry.Embedding),
		"neutered":    entry.Neutered,
		"neutered_at": timeParam(entry.NeuteredAt),
		"summary":     entry.Summary,
		"created_at":  entry.CreatedAt.UTC().Format(time.RFC3339),
	}

	_, err := s.Driver.ExecuteQuery(ctx, SaveCatQuery, params)
	if err != nil {
		return fmt.Errorf("failed to save entry %s: %w", entry.ID, err)
	}
	return nil
}

func (s *Store) GetEntry(ctx context.Context, id string) (*model.Entry, error) {
	res, err := s.Driver.ExecuteQuery(ctx, GetCatQuery, map[string]interface{}{"uuid": id})
	if err != nil {
		return nil, fmt.Errorf("failed to get entry %s: %w", id, err)
	}
	if len(res.Records) == 0 {
		return nil, ErrNotFound
	}

	entry := recordToEntry(res.Records[0])
	if v, ok := res.Records[0].Get("feedings"); ok {
		entry.Feedings = toFeedings(v)
	}
	return &entry, nil
}

func (s *Store) EntriesInRange(ctx context.Context, loc model.Location, box geo.Box) ([]model.Entry, error) {
	params := map[string]interface{}{
		"lat":       loc.Lat,
		"lng":       loc.Lng,
		"lat_range": box.LatRange,
		"lng_range": box.LngRange,
	}
	res, err := s.Driver.ExecuteQuery(ctx, CatsInRangeQuery, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries in range: %w", err)
	}

	entries := make([]model.Entry, 0, len(res.Records))
	for _, rec := range res.Records {
		entries = append(entries, recordToEntry(rec))
	}
	return entries, nil
}

func (s *Store) AllEntries(ctx context.Context) ([]model.Entry, error) {
	res, err := s.Driver.ExecuteQuery(ctx, AllCatsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}

	entries := make([]model.Entry, 0, len(res.Records))
	for _, rec := range res.Records {
		entries = append(entries, recordToEntry(rec))
	}
	return entries, nil
}

func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	_, err := s.Driver.ExecuteQuery(ctx, DeleteCatQuery, map[string]interface{}{"uuid": id})
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", id, err)
	}
	return nil
}

func (s *Store) AddFeeding(ctx context.Context, entryID string, rec model.FeedingRecord) error {
	params := map[string]interface{}{
		"cat_uuid":    entryID,
		"uuid":        rec.ID,
		"feeder_name": rec.FeederName,
		"food":        rec.Food,
		"fed_at":      rec.FedAt.UTC().Format(time.RFC3339),
	}
	res, err := s.Driver.ExecuteQuery(ctx, AddFeedingQuery, params)
	if err != nil {
		return fmt.Errorf("failed to add feeding to %s: %w", entryID, err)
	}
	if len(res.Records) == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetNeutered(ctx context.Context, id string, neutered bool, at *time.Time) error {
	params := map[string]interface{}{
		"uuid":        id,
		"neutered":    neutered,
		"neutered_at": timeParam(at),
	}
	res, err := s.Driver.ExecuteQuery(ctx, SetNeuteredQuery, params)
	if err != nil {
		return fmt.Errorf("failed to set neutered on %s: %w", id, err)
	}
	if len(res.Records) == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetSummary(ctx context.Context, id, summary string) error {
	params := map[string]interface{}{
		"uuid":    id,
		"summary": summary,
	}
	res, err := s.Driver.ExecuteQuery(ctx, SetSummaryQuery, params)
	if err != nil {
		return fmt.Errorf("failed to set summary on %s: %w", id, err)
	}
	if len(res.Records) == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SaveHospital(ctx context.Context, h model.Hospital) error {
	params := map[string]interface{}{
		"uuid":    h.ID,
		"name":    h.Name,
		"address": h.Address,
		"phone":   h.Phone,
		"lat":     h.Location.Lat,
		"lng":     h.Location.Lng,
	}
	_, err := s.Driver.ExecuteQuery(ctx, SaveHospitalQuery, params)
	if err != nil {
		return fmt.Errorf("failed to save hospital %s: %w", h.ID, err)
	}
	return nil
}

func (s *Store) HospitalsInRange(ctx context.Context, loc model.Location, box geo.Box) ([]model.Hospital, error) {
	params := map[string]interface{}{
		"lat":       loc.Lat,
		"lng":       loc.Lng,
		"lat_range": box.LatRange,
		"lng_range": box.LngRange,
	}
	res, err := s.Driver.ExecuteQuery(ctx, HospitalsInRangeQuery, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query hospitals in range: %w", err)
	}

	hospitals := make([]model.Hospital, 0, len(res.Records))
	for _, rec := range res.Records {
		hospitals = append(hospitals, model.Hospital{
			ID:      getString(rec, "uuid"),
			Name:    getString(rec, "name"),
			Address: getString(rec, "address"),
			Phone:   getString(rec, "phone"),
			Location: model.Location{
				Lat: getFloat(rec, "lat"),
				Lng: getFloat(rec, "lng"),
			},
		})
	}
	return hospitals, nil
}

func recordToEntry(rec *neo4j.Record) model.Entry {
	entry := model.Entry{
		ID:          getString(rec, "uuid"),
		Name:        getString(rec, "name"),
		Description: getString(rec, "description"),
		PhotoURL:    getString(rec, "photo_url"),
		Summary:     getString(rec, "summary"),
		Neutered:    getBool(rec, "neutered"),
		Location: model.Location{
			Lat: getFloat(rec, "lat"),
			Lng: getFloat(rec, "lng"),
		},
	}

	if v, ok := rec.Get("embedding"); ok {
		entry.Embedding = toFloat32s(v)
	}
	if ts := getString(rec, "created_at"); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			entry.CreatedAt = t
		}
	}
	if ts := getString(rec, "neutered_at"); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			entry.NeuteredAt = &t
		}
	}

	return entry
}

func toFeedings(v interface{}) []model.FeedingRecord {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}

	var feedings []model.FeedingRecord
	for _, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		rec := model.FeedingRecord{
			ID:         asString(m["uuid"]),
			FeederName: asString(m["feeder_name"]),
			Food:       asString(m["food"]),
		}
		if ts := asString(m["fed_at"]); ts != "" {
			if t, err := time.Parse(time.RFC3339, ts); err == nil {
				rec.FedAt = t
			}
		}
		if rec.ID == "" {
			// collect() over an empty OPTIONAL MATCH yields a null element.
			continue
		}
		feedings = append(feedings, rec)
	}
	return feedings
}

// The bolt protocol has no float32 list type; embeddings travel as float64.
func embeddingParam(vec []float32) []float64 {
	if len(vec) == 0 {
		return []float64{}
	}
	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = float64(v)
	}
	return out
}

func toFloat32s(v interface{}) []float32 {
	list, ok := v.([]interface{})
	if !ok || len(list) == 0 {
		return nil
	}
	out := make([]float32, 0, len(list))
	for _, item := range list {
		f, ok := item.(float64)
		if !ok {
			return nil
		}
		out = append(out, float32(f))
	}
	return out
}

func timeParam(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func getString(rec *neo4j.Record, key string) string {
	v, _ := rec.Get(key)
	return asString(v)
}

func getFloat(rec *neo4j.Record, key string) float64 {
	v, _ := rec.Get(key)
	f, _ := v.(float64)
	return f
}

func getBool(rec *neo4j.Record, key string) bool {
	v, _ := rec.Get(key)
	b, _ := v.(bool)
	return b
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
