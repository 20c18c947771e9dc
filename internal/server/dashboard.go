package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetCardTotals(c *gin.Context) {
	cards, err := s.overviewSvc.FetchCardTotals(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cards})
}

func (s *Server) GetRevenue(c *gin.Context) {
	points, err := s.revenueSvc.FetchRevenueSeries(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": points})
}

func (s *Server) GetLatestInvoices(c *gin.Context) {
	latest, err := s.invoiceSvc.FetchLatestInvoices(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": latest})
}
