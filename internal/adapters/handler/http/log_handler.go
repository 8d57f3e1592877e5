package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-audit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-audit/internal/core/services"
)

type LogHandler struct {
	svc *services.HabitService
}

func NewLogHandler(svc *services.HabitService) *LogHandler {
	return &LogHandler{svc: svc}
}

// logActivityRequest takes date and time as strings so malformed values
// get a precise 400 instead of a generic bind error.
type logActivityRequest struct {
	Date   string `json:"date"`
	Status string `json:"status" binding:"required"`
	Time   string `json:"time"`
	Note   string `json:"note"`
}

func (h *LogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.PUT("/habits/:id/logs", h.LogActivity)
}

func (h *LogHandler) LogActivity(c *gin.Context) {
	var req logActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.LogActivityInput{
		HabitID: c.Param("id"),
		Status:  req.Status,
		Note:    req.Note,
	}

	if req.Date != "" {
		d, err := domain.ParseDate(req.Date)
		if err != nil {
			respondError(c, err)
			return
		}
		input.Date = &d
	}

	if req.Time != "" {
		t, err := domain.ParseClock(req.Time)
		if err != nil {
			respondError(c, err)
			return
		}
		input.Time = &t
	}

	habit, err := h.svc.LogActivity(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}
