package server

import (
	"net/http"
	"strconv"
	"strings"

	callhistorydomain "github.com/callshield/callshield/internal/callhistory/domain"
	phonedomain "github.com/callshield/callshield/internal/phonenumber/domain"
	resolutiondomain "github.com/callshield/callshield/internal/resolution/domain"
	"github.com/gin-gonic/gin"
)

type recordCallRequest struct {
	PhoneNumber    string `json:"phone_number"`
	CallerName     string `json:"caller_name"`
	Direction      string `json:"direction"`
	Classification string `json:"classification"`
	SpamScore      int    `json:"spam_score"`
	Duration       int    `json:"duration"`
	Notes          string `json:"notes"`
}

func (s *Server) RecordCall(c *gin.Context) {
	var req recordCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	record, err := s.resolutionSvc.RecordCall(c.Request.Context(), resolutiondomain.RecordCallRequest{
		PhoneNumber:    strings.TrimSpace(req.PhoneNumber),
		CallerName:     strings.TrimSpace(req.CallerName),
		Direction:      callhistorydomain.Direction(strings.TrimSpace(req.Direction)),
		Classification: phonedomain.Classification(strings.TrimSpace(req.Classification)),
		SpamScore:      req.SpamScore,
		Duration:       req.Duration,
		Notes:          req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": record})
}

func (s *Server) ListRecentCalls(c *gin.Context) {
	limit, err := parseOptionalLimit(c.Query("limit"))
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid value"))
		return
	}

	records, err := s.callHistorySvc.Recent(c.Request.Context(), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records})
}

func (s *Server) ListMissedCalls(c *gin.Context) {
	records, err := s.callHistorySvc.Missed(c.Request.Context(), 0)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records})
}

func (s *Server) ListSpamCalls(c *gin.Context) {
	records, err := s.callHistorySvc.Spam(c.Request.Context(), 0)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records})
}

func (s *Server) GetTodayCallStats(c *gin.Context) {
	stats, err := s.callHistorySvc.TodayStats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

type callFeedbackRequest struct {
	PhoneNumber string `json:"phone_number"`
	IsSafe      *bool  `json:"is_safe"`
}

func (s *Server) SubmitCallFeedback(c *gin.Context) {
	var req callFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		AbortWithError(c, newValidationError("phone_number", "invalid_number", "invalid value"))
		return
	}
	if req.IsSafe == nil {
		AbortWithError(c, newValidationError("is_safe", "invalid_feedback", "invalid value"))
		return
	}

	record, err := s.resolutionSvc.SubmitFeedback(c.Request.Context(), req.PhoneNumber, *req.IsSafe)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": record})
}

func parseOptionalLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, ErrInvalidRequest
	}
	return limit, nil
}
