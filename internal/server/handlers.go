package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nyangmap/nyangmap/internal/core"
	"github.com/nyangmap/nyangmap/internal/model"
	"github.com/nyangmap/nyangmap/internal/store"
)

type SubmitEntryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PhotoURL    string `json:"photo_url"`
	// Pointers so a legitimate 0.0 coordinate passes "required".
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
	// Force resubmits past a suspected duplicate the user has overridden.
	Force bool `json:"force"`
}

// SubmitEntry creates a sighting. A suspected duplicate yields 409 with the
// match; the client either drops the submission or retries with force=true.
func (s *Server) SubmitEntry(c *gin.Context) {
	var req SubmitEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	entry, match, err := s.CatMap.SubmitEntry(c.Request.Context(), core.SubmitRequest{
		Name:        req.Name,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
		Location:    model.Location{Lat: *req.Lat, Lng: *req.Lng},
		Force:       req.Force,
	})
	if err != nil {
		log.Printf("Failed to submit entry: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit entry"})
		return
	}

	if match != nil {
		c.JSON(http.StatusConflict, gin.H{"duplicate": match})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (s *Server) GetEntry(c *gin.Context) {
	entry, err := s.CatMap.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		log.Printf("Failed to get entry: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get entry"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (s *Server) DeleteEntry(c *gin.Context) {
	if err := s.CatMap.DeleteEntry(c.Request.Context(), c.Param("id")); err != nil {
		log.Printf("Failed to delete entry: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) NearbyEntries(c *gin.Context) {
	loc, ok := locationQuery(c)
	if !ok {
		return
	}

	entries, err := s.CatMap.NearbyEntries(c.Request.Context(), loc)
	if err != nil {
		log.Printf("Failed to list nearby entries: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

type AddFeedingRequest struct {
	FeederName string `json:"feeder_name" binding:"required"`
	Food       string `json:"food"`
}

func (s *Server) AddFeeding(c *gin.Context) {
	var req AddFeedingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	rec, err := s.CatMap.AddFeeding(c.Request.Context(), c.Param("id"), req.FeederName, req.Food)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		log.Printf("Failed to add feeding: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add feeding"})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

type SetNeuteredRequest struct {
	Neutered *bool `json:"neutered" binding:"required"`
}

func (s *Server) SetNeutered(c *gin.Context) {
	var req SetNeuteredRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := s.CatMap.SetNeutered(c.Request.Context(), c.Param("id"), *req.Neutered); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		log.Printf("Failed to set neutered: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (s *Server) SummarizeEntry(c *gin.Context) {
	text, err := s.CatMap.SummarizeEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		log.Printf("Failed to summarize entry: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": text})
}

func (s *Server) Colonies(c *gin.Context) {
	colonies, err := s.CatMap.DetectColonies(c.Request.Context())
	if err != nil {
		log.Printf("Failed to detect colonies: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detect colonies"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"colonies": colonies})
}

type AddHospitalRequest struct {
	Name    string   `json:"name" binding:"required"`
	Address string   `json:"address"`
	Phone   string   `json:"phone"`
	Lat     *float64 `json:"lat" binding:"required"`
	Lng     *float64 `json:"lng" binding:"required"`
}

func (s *Server) AddHospital(c *gin.Context) {
	var req AddHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	h, err := s.CatMap.AddHospital(c.Request.Context(), model.Hospital{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		Location: model.Location{Lat: *req.Lat, Lng: *req.Lng},
	})
	if err != nil {
		log.Printf("Failed to add hospital: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add hospital"})
		return
	}
	c.JSON(http.StatusCreated, h)
}

func (s *Server) NearbyHospitals(c *gin.Context) {
	loc, ok := locationQuery(c)
	if !ok {
		return
	}

	hospitals, err := s.CatMap.NearbyHospitals(c.Request.Context(), loc)
	if err != nil {
		log.Printf("Failed to list nearby hospitals: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list hospitals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hospitals": hospitals})
}

func (s *Server) Health(c *gin.Context) {
	ready := s.Extractor != nil && s.Extractor.Ready()
	storeOK := false
	if s.Driver != nil {
		_, err := s.Driver.ExecuteQuery(c.Request.Context(), "RETURN 1", nil)
		storeOK = err == nil
	}
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"store_ok":        storeOK,
		"extractor_ready": ready,
	})
}

func locationQuery(c *gin.Context) (model.Location, bool) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng query parameters are required"})
		return model.Location{}, false
	}
	return model.Location{Lat: lat, Lng: lng}, true
}
