package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-audit/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/habits/:id/stats", h.HabitStats)
	r.GET("/stats/overall", h.Overall)
}

// asOf reads the optional as_of query parameter. It reports false after
// writing a 400.
func asOf(c *gin.Context) (*domain.Date, bool) {
	raw := c.Query("as_of")
	if raw == "" {
		return nil, true
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid as_of format, expected YYYY-MM-DD"})
		return nil, false
	}
	return &d, true
}

func (h *StatsHandler) HabitStats(c *gin.Context) {
	day, ok := asOf(c)
	if !ok {
		return
	}

	report, err := h.svc.HabitStats(c.Request.Context(), c.Param("id"), day)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *StatsHandler) Overall(c *gin.Context) {
	day, ok := asOf(c)
	if !ok {
		return
	}

	overall, err := h.svc.Overall(c.Request.Context(), day)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, overall)
}
