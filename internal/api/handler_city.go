package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smart-dashboard-backend/internal/city"
	"smart-dashboard-backend/internal/parse"
	"smart-dashboard-backend/internal/sample"
	"smart-dashboard-backend/internal/session"
)

// GetCitySummary handles GET /api/city/summary. It needs no mounted view.
func (h *Handler) GetCitySummary(c *gin.Context) {
	c.JSON(http.StatusOK, city.Summarize(sample.NewCity()))
}

// CreateCityView handles POST /api/views/city.
func (h *Handler) CreateCityView(c *gin.Context) {
	id, v := h.sessions.CreateCity()
	c.Header("Location", "/api/views/city/"+id)
	c.JSON(http.StatusCreated, gin.H{"id": id, "view": v.Snapshot()})
}

func (h *Handler) cityView(c *gin.Context) (*city.View, bool) {
	v, err := h.sessions.City(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "view not found"})
		return nil, false
	}
	return v, true
}

// GetCityView handles GET /api/views/city/:id.
func (h *Handler) GetCityView(c *gin.Context) {
	v, ok := h.cityView(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, v.Snapshot())
}

type selectTabRequest struct {
	Tab string `json:"tab" binding:"required"`
}

// SelectCityTab handles PUT /api/views/city/:id/tab.
func (h *Handler) SelectCityTab(c *gin.Context) {
	v, ok := h.cityView(c)
	if !ok {
		return
	}

	var req selectTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tab, err := parse.Tab(req.Tab)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v.SelectTab(tab)
	c.JSON(http.StatusOK, v.Snapshot())
}

// DeleteCityView handles DELETE /api/views/city/:id.
func (h *Handler) DeleteCityView(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id"), session.KindCity); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "view not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
