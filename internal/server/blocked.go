package server

import (
	"net/http"
	"strings"
	"time"

	blocklistdomain "github.com/callshield/callshield/internal/blocklist/domain"
	"github.com/callshield/callshield/internal/resolution/events"
	"github.com/gin-gonic/gin"
)

type blockNumberRequest struct {
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
	Reason      string `json:"reason"`
	AutoBlocked bool   `json:"auto_blocked"`
}

func (s *Server) BlockNumber(c *gin.Context) {
	var req blockNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	record, err := s.blockListSvc.Block(c.Request.Context(), blocklistdomain.BlockRequest{
		Number:      strings.TrimSpace(req.PhoneNumber),
		Name:        strings.TrimSpace(req.Name),
		Reason:      strings.TrimSpace(req.Reason),
		AutoBlocked: req.AutoBlocked,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordBlock(c.Request.Context(), record.AutoBlocked)
	s.storeEvents.Publish(events.ChangeEvent{
		Store:      events.StoreBlockList,
		Action:     events.ActionBlocked,
		Number:     record.NormalizedNumber,
		OccurredAt: time.Now(),
	})

	c.JSON(http.StatusOK, gin.H{"data": record})
}

func (s *Server) UnblockNumber(c *gin.Context) {
	number := strings.TrimSpace(c.Query("number"))
	if number == "" {
		AbortWithError(c, newValidationError("number", "invalid_number", "invalid value"))
		return
	}

	if err := s.blockListSvc.Unblock(c.Request.Context(), number); err != nil {
		AbortWithError(c, err)
		return
	}

	s.storeEvents.Publish(events.ChangeEvent{
		Store:      events.StoreBlockList,
		Action:     events.ActionUnblocked,
		OccurredAt: time.Now(),
	})

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"unblocked": true}})
}

func (s *Server) CheckBlocked(c *gin.Context) {
	number := strings.TrimSpace(c.Query("number"))
	if number == "" {
		AbortWithError(c, newValidationError("number", "invalid_number", "invalid value"))
		return
	}

	blocked, err := s.blockListSvc.IsBlocked(c.Request.Context(), number)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"blocked": blocked}})
}

func (s *Server) ListBlockedNumbers(c *gin.Context) {
	records, err := s.blockListSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	counts, err := s.blockListSvc.Counts(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records, "counts": counts})
}

func (s *Server) SearchBlockedNumbers(c *gin.Context) {
	records, err := s.blockListSvc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records})
}

func (s *Server) ClearBlockedNumbers(c *gin.Context) {
	if err := s.blockListSvc.ClearAll(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}

	s.storeEvents.Publish(events.ChangeEvent{
		Store:      events.StoreBlockList,
		Action:     events.ActionCleared,
		OccurredAt: time.Now(),
	})

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"cleared": true}})
}

func (s *Server) ClearAutoBlockedNumbers(c *gin.Context) {
	if err := s.blockListSvc.ClearAutoBlocked(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}

	s.storeEvents.Publish(events.ChangeEvent{
		Store:      events.StoreBlockList,
		Action:     events.ActionCleared,
		OccurredAt: time.Now(),
	})

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"cleared": true}})
}
