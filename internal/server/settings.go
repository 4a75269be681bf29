package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/callshield/callshield/internal/resolution/events"
	settingsdomain "github.com/callshield/callshield/internal/settings/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) GetSettings(c *gin.Context) {
	settings, err := s.settingsSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": settings})
}

// UpdateSettings applies a partial update. The payload shape is fixed:
// unknown keys are rejected so typos don't silently no-op.
func (s *Server) UpdateSettings(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var req settingsdomain.UpdateRequest
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	settings, err := s.settingsSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.storeEvents.Publish(events.ChangeEvent{
		Store:      events.StoreSettings,
		Action:     events.ActionUpdated,
		OccurredAt: time.Now(),
	})

	c.JSON(http.StatusOK, gin.H{"data": settings})
}

func (s *Server) ResetSettings(c *gin.Context) {
	settings, err := s.settingsSvc.Reset(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.storeEvents.Publish(events.ChangeEvent{
		Store:      events.StoreSettings,
		Action:     events.ActionUpdated,
		OccurredAt: time.Now(),
	})

	c.JSON(http.StatusOK, gin.H{"data": settings})
}

func (s *Server) ListLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": settingsdomain.AvailableLanguages()})
}
