package handler

import (
	"net/http"
	"time"

	"famhub/internal/service"

	"github.com/gin-gonic/gin"
)

type CronHandler struct {
	approver *service.AutoApprover
}

func NewCronHandler(approver *service.AutoApprover) *CronHandler {
	return &CronHandler{approver: approver}
}

// ApproveTasks runs the daily auto-approval job. Intended for an external
// scheduler hitting the endpoint once per day; re-runs are harmless because
// each family is claimed at most once per day.
func (h *CronHandler) ApproveTasks(c *gin.Context) {
	summary, err := h.approver.Run(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Approval job failed"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
