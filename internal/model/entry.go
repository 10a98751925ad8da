package model

import "time"

// Location is a WGS84 coordinate in decimal degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Entry is a single stray-cat sighting on the map.
//
// Embedding is the fixed-length vector computed from PhotoURL at creation
// time. It is empty when the entry was submitted without a photo or when
// extraction failed, and is never recomputed afterwards.
type Entry struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Location    Location        `json:"location"`
	PhotoURL    string          `json:"photo_url,omitempty"`
	Embedding   []float32       `json:"-"`
	Neutered    bool            `json:"neutered"`
	NeuteredAt  *time.Time      `json:"neutered_at,omitempty"`
	Feedings    []FeedingRecord `json:"feedings,omitempty"`
	Summary     string          `json:"summary,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// HasEmbedding reports whether the entry can take part in similarity scoring.
func (e *Entry) HasEmbedding() bool {
	return len(e.Embedding) > 0
}

// FeedingRecord is one feeding event attached to an entry.
type FeedingRecord struct {
	ID         string    `json:"id"`
	FeederName string    `json:"feeder_name"`
	Food       string    `json:"food,omitempty"`
	FedAt      time.Time `json:"fed_at"`
}
