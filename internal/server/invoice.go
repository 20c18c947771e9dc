package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/dashboard/internal/notify"
)

type mutationResponse struct {
	Revalidate []string `json:"revalidate"`
	Redirect   string   `json:"redirect,omitempty"`
}

func (s *Server) ListInvoices(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	page := parsePage(c)

	rows, err := s.invoiceSvc.FetchFilteredInvoices(c.Request.Context(), query, page)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": rows,
		"page": page,
	})
}

func (s *Server) GetInvoicePages(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	pages, err := s.invoiceSvc.FetchInvoicePageCount(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_pages": pages})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	invoice, err := s.invoiceSvc.FetchInvoiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": invoice})
}

func (s *Server) CreateInvoice(c *gin.Context) {
	fields, err := bindFields(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.invoiceSvc.Create(c.Request.Context(), fields); err != nil {
		AbortWithError(c, err)
		return
	}
	s.respondMutation(c)
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	fields, err := bindFields(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.invoiceSvc.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		AbortWithError(c, err)
		return
	}
	s.respondMutation(c)
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	s.respondMutation(c)
}

// respondMutation hands the signals recorded during a mutation to the client.
// Plain form posts follow the navigation target with a redirect.
func (s *Server) respondMutation(c *gin.Context) {
	resp := mutationResponse{Revalidate: []string{}}
	if rec := notify.RecorderFromContext(c.Request.Context()); rec != nil {
		resp.Revalidate = rec.Revalidated()
		resp.Redirect, _ = rec.NavigateTo()
	}

	if resp.Redirect != "" && !wantsJSON(c) {
		c.Redirect(http.StatusSeeOther, resp.Redirect)
		return
	}
	c.JSON(http.StatusOK, resp)
}
