// Package core wires the duplicate-detection engine into the submission
// flow and hosts the remaining entry operations.
package core

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/nyangmap/nyangmap/internal/colony"
	"github.com/nyangmap/nyangmap/internal/dedupe"
	"github.com/nyangmap/nyangmap/internal/geo"
	"github.com/nyangmap/nyangmap/internal/model"
	"github.com/nyangmap/nyangmap/internal/summary"
)

// EntryStore is the persistence surface the engine needs; *store.Store
// implements it.
type EntryStore interface {
	SaveEntry(ctx context.Context, entry model.Entry) error
	GetEntry(ctx context.Context, id string) (*model.Entry, error)
	EntriesInRange(ctx context.Context, loc model.Location, box geo.Box) ([]model.Entry, error)
	AllEntries(ctx context.Context) ([]model.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
	AddFeeding(ctx context.Context, entryID string, rec model.FeedingRecord) error
	SetNeutered(ctx context.Context, id string, neutered bool, at *time.Time) error
	SetSummary(ctx context.Context, id, summary string) error
	SaveHospital(ctx context.Context, h model.Hospital) error
	HospitalsInRange(ctx context.Context, loc model.Location, box geo.Box) ([]model.Hospital, error)
}

// Extractor is the embedding service surface; *embedding.Extractor
// implements it.
type Extractor interface {
	Extract(ctx context.Context, imageURL string) ([]float32, error)
}

type CatMap struct {
	Store      EntryStore
	Extractor  Extractor
	Resolver   *dedupe.Resolver
	Summarizer *summary.Summarizer // nil when no LLM configured
	Colonies   *colony.Detector

	// UUIDGenerator is swappable for deterministic tests.
	UUIDGenerator func() string
}

func NewCatMap(st EntryStore, extractor Extractor, resolver *dedupe.Resolver, summarizer *summary.Summarizer) *CatMap {
	return &CatMap{
		Store:         st,
		Extractor:     extractor,
		Resolver:      resolver,
		Summarizer:    summarizer,
		Colonies:      colony.NewDetector(resolver.Box),
		UUIDGenerator: func() string { return uuid.New().String() },
	}
}

type SubmitRequest struct {
	Name        string
	Description string
	PhotoURL    string
	Location    model.Location
	// Force skips the duplicate check; set when the user has already seen
	// the suspected duplicate and overridden it.
	Force bool
}

// SubmitEntry runs the full submission flow: embed the photo, look for a
// duplicate among nearby entries, and persist.
//
// A non-nil Match means a suspected duplicate was found and nothing was
// persisted; the caller surfaces it and the user either drops the
// submission or resubmits with Force.
//
// Embedding failures never block the submission: the duplicate check is
// skipped and the entry is stored without a vector.
func (c *CatMap) SubmitEntry(ctx context.Context, req SubmitRequest) (*model.Entry, *model.Match, error) {
	var vec []float32
	if req.PhotoURL != "" {
		v, err := c.Extractor.Extract(ctx, req.PhotoURL)
		if err != nil {
			log.Printf("Duplicate check unavailable, proceeding without embedding: %v", err)
		} else {
			vec = v
		}
	}

	if !req.Force && len(vec) > 0 {
		candidates, err := c.Store.EntriesInRange(ctx, req.Location, c.Resolver.Box)
		if err != nil {
			log.Printf("Failed to load duplicate candidates, proceeding: %v", err)
		} else if m := c.Resolver.FindDuplicate(vec, req.Location, candidates); m != nil {
			return nil, m, nil
		}
	}

	entry := model.Entry{
		ID:          c.UUIDGenerator(),
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		PhotoURL:    req.PhotoURL,
		Embedding:   vec,
		CreatedAt:   time.Now().UTC(),
	}

	if err := c.Store.SaveEntry(ctx, entry); err != nil {
		return nil, nil, fmt.Errorf("failed to save entry: %w", err)
	}

	return &entry, nil, nil
}

func (c *CatMap) GetEntry(ctx context.Context, id string) (*model.Entry, error) {
	return c.Store.GetEntry(ctx, id)
}

func (c *CatMap) DeleteEntry(ctx context.Context, id string) error {
	return c.Store.DeleteEntry(ctx, id)
}

func (c *CatMap) NearbyEntries(ctx context.Context, loc model.Location) ([]model.Entry, error) {
	return c.Store.EntriesInRange(ctx, loc, c.Resolver.Box)
}

func (c *CatMap) AddFeeding(ctx context.Context, entryID, feederName, food string) (*model.FeedingRecord, error) {
	rec := model.FeedingRecord{
		ID:         c.UUIDGenerator(),
		FeederName: feederName,
		Food:       food,
		FedAt:      time.Now().UTC(),
	}
	if err := c.Store.AddFeeding(ctx, entryID, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *CatMap) SetNeutered(ctx context.Context, entryID string, neutered bool) error {
	var at *time.Time
	if neutered {
		now := time.Now().UTC()
		at = &now
	}
	return c.Store.SetNeutered(ctx, entryID, neutered, at)
}

func (c *CatMap) AddHospital(ctx context.Context, h model.Hospital) (*model.Hospital, error) {
	if h.ID == "" {
		h.ID = c.UUIDGenerator()
	}
	if err := c.Store.SaveHospital(ctx, h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *CatMap) NearbyHospitals(ctx context.Context, loc model.Location) ([]model.Hospital, error) {
	return c.Store.HospitalsInRange(ctx, loc, c.Resolver.Box)
}

// SummarizeEntry regenerates and persists the profile summary. Fails when
// no LLM provider is configured.
func (c *CatMap) SummarizeEntry(ctx context.Context, entryID string) (string, error) {
	if c.Summarizer == nil {
		return "", fmt.Errorf("no llm provider configured")
	}

	entry, err := c.Store.GetEntry(ctx, entryID)
	if err != nil {
		return "", err
	}

	text, err := c.Summarizer.SummarizeEntry(ctx, *entry)
	if err != nil {
		return "", err
	}

	if err := c.Store.SetSummary(ctx, entryID, text); err != nil {
		return "", err
	}
	return text, nil
}

// DetectColonies groups all entries into colonies by proximity.
func (c *CatMap) DetectColonies(ctx context.Context) ([]model.Colony, error) {
	entries, err := c.Store.AllEntries(ctx)
	if err != nil {
		return nil, err
	}
	return c.Colonies.Detect(entries), nil
}
