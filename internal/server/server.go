package server

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nyangmap/nyangmap/internal/config"
	"github.com/nyangmap/nyangmap/internal/core"
	"github.com/nyangmap/nyangmap/internal/dedupe"
	"github.com/nyangmap/nyangmap/internal/embedding"
	"github.com/nyangmap/nyangmap/internal/geo"
	"github.com/nyangmap/nyangmap/internal/llm"
	"github.com/nyangmap/nyangmap/internal/store"
	"github.com/nyangmap/nyangmap/internal/summary"
)

type Server struct {
	CatMap    *core.CatMap
	Extractor *embedding.Extractor
	Driver    store.GraphDriver
}

// NewServer wires the full application from config plus env overrides and
// kicks off the embedding warmup in the background. Fatal on anything that
// makes the service unable to start; a slow embedding provider is not fatal,
// submissions just run without duplicate checks until warmup finishes.
func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	applyEnvOverrides(cfg)

	driver, err := store.NewMemgraphDriver(cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password)
	if err != nil {
		log.Fatalf("Failed to connect to Memgraph: %v", err)
	}
	if err := driver.BuildIndices(context.Background()); err != nil {
		log.Printf("Warning: failed to build indices: %v", err)
	}

	embedClient, err := embedding.NewClient(context.Background(), cfg.Embedder)
	if err != nil {
		log.Fatalf("Failed to initialize embedding client: %v", err)
	}
	fetcher := embedding.NewHTTPFetcher(time.Duration(cfg.Embedder.FetchTimeoutMS) * time.Millisecond)
	extractor := embedding.NewExtractor(embedClient, fetcher)
	go func() {
		if err := extractor.Warmup(context.Background()); err != nil {
			log.Printf("Embedding warmup failed, duplicate detection disabled: %v", err)
		}
	}()

	llmClient, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize llm client: %v", err)
	}
	var summarizer *summary.Summarizer
	if llmClient != nil {
		summarizer = summary.NewSummarizer(llmClient)
	}

	resolver := dedupe.NewResolver(cfg.Matching.Threshold, matchingBox(cfg.Matching))
	catMap := core.NewCatMap(store.NewStore(driver), extractor, resolver, summarizer)

	return &Server{
		CatMap:    catMap,
		Extractor: extractor,
		Driver:    driver,
	}
}

func matchingBox(cfg config.MatchingConfig) geo.Box {
	box := geo.DefaultBox()
	if cfg.LatRange > 0 {
		box.LatRange = cfg.LatRange
	}
	if cfg.LngRange > 0 {
		box.LngRange = cfg.LngRange
	}
	return box
}

func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("MEMGRAPH_URI"); v != "" {
		cfg.Memgraph.URI = v
	}
	if v := os.Getenv("MEMGRAPH_USER"); v != "" {
		cfg.Memgraph.User = v
	}
	if v := os.Getenv("MEMGRAPH_PASSWORD"); v != "" {
		cfg.Memgraph.Password = v
	}
	if v := os.Getenv("EMBEDDER_PROVIDER"); v != "" {
		cfg.Embedder.Provider = v
	}
	if v := os.Getenv("EMBEDDER_MODEL"); v != "" {
		cfg.Embedder.Model = v
	}
	if v := os.Getenv("EMBEDDER_API_KEY"); v != "" {
		cfg.Embedder.APIKey = v
	}
	if v := os.Getenv("EMBEDDER_BASE_URL"); v != "" {
		cfg.Embedder.BaseURL = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
}

// Close releases the bolt driver.
func (s *Server) Close() {
	if s.Driver != nil {
		if err := s.Driver.Close(context.Background()); err != nil {
			log.Printf("Warning: failed to close store driver: %v", err)
		}
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", s.Health)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/entries", s.SubmitEntry)
		v1.GET("/entries/nearby", s.NearbyEntries)
		v1.GET("/entries/:id", s.GetEntry)
		v1.DELETE("/entries/:id", s.DeleteEntry)
		v1.POST("/entries/:id/feedings", s.AddFeeding)
		v1.PUT("/entries/:id/neutered", s.SetNeutered)
		v1.POST("/entries/:id/summary", s.SummarizeEntry)
		v1.GET("/colonies", s.Colonies)
		v1.POST("/hospitals", s.AddHospital)
		v1.GET("/hospitals/nearby", s.NearbyHospitals)
	}

	return r
}
