package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetStoreStats(c *gin.Context) {
	counts, err := s.resolutionSvc.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": counts})
}
