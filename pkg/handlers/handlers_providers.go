package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wyattc747/burnout-monitor-sub003/pkg/providers"
)

// ListProviders returns the registered HR/calendar provider names.
func (h *Handler) ListProviders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"providers": providers.Names()})
}

// ProviderEmployees returns the roster from one provider.
func (h *Handler) ProviderEmployees(c *gin.Context) {
	p, err := providers.Get(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	employees, err := p.FetchEmployees()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Provider fetch failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

// ProviderDepartments returns the department list from one provider.
func (h *Handler) ProviderDepartments(c *gin.Context) {
	p, err := providers.Get(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	departments, err := p.FetchDepartments()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Provider fetch failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": departments})
}

// ProviderTest checks connectivity for one provider.
func (h *Handler) ProviderTest(c *gin.Context) {
	p, err := providers.Get(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if err := p.TestConnection(); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"connected": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": true})
}
