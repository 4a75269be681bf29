package server

import (
	"net/http"
	"strings"

	resolutiondomain "github.com/callshield/callshield/internal/resolution/domain"
	"github.com/gin-gonic/gin"
)

type lookupResponse struct {
	resolutiondomain.LookupResult
	Color              string `json:"color"`
	Label              string `json:"label"`
	AutoBlockCandidate bool   `json:"auto_block_candidate"`
	Blocked            bool   `json:"blocked"`
}

func (s *Server) LookupNumber(c *gin.Context) {
	number := strings.TrimSpace(c.Query("number"))
	if number == "" {
		AbortWithError(c, newValidationError("number", "invalid_number", "invalid value"))
		return
	}

	result, err := s.resolutionSvc.LookupPhoneNumber(c.Request.Context(), number)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	settings, err := s.settingsSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	blocked, err := s.blockListSvc.IsBlocked(c.Request.Context(), number)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": lookupResponse{
		LookupResult:       result,
		Color:              resolutiondomain.ClassificationColor(result.Classification),
		Label:              resolutiondomain.ClassificationLabel(result.Classification),
		AutoBlockCandidate: s.resolutionSvc.ShouldAutoBlock(result, settings),
		Blocked:            blocked,
	}})
}

func (s *Server) GetLastLookup(c *gin.Context) {
	result := s.resolutionSvc.LastLookup()
	if result == nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) ClearLastLookup(c *gin.Context) {
	s.resolutionSvc.ClearLastLookup()
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"cleared": true}})
}
