package todos

import (
	"math"
	"net/http"

	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/gin-gonic/gin"
)

// StatsResponse summarizes the caller's visible todos
type StatsResponse struct {
	Total                 int64                       `json:"total"`
	ByStatus              map[models.TodoStatus]int64 `json:"by_status"`
	Overdue               int64                       `json:"overdue"`
	CompletedOnTime       int64                       `json:"completed_on_time"`
	CompletedLate         int64                       `json:"completed_late"`
	AverageDaysToComplete *float64                    `json:"average_days_to_complete"`
}

// computeStats folds the metrics of todos into a summary.
func computeStats(todos []models.Todo, metrics []models.TodoMetrics) StatsResponse {
	s := StatsResponse{
		ByStatus: map[models.TodoStatus]int64{
			models.TodoStatusTodo:       0,
			models.TodoStatusInProgress: 0,
			models.TodoStatusBlocked:    0,
			models.TodoStatusCompleted:  0,
			models.TodoStatusCancelled:  0,
		},
	}
	var days, completed int
	for i, t := range todos {
		m := metrics[i]
		s.Total++
		s.ByStatus[t.Status]++
		if m.IsOverdue {
			s.Overdue++
		}
		if m.CompletedOnTime != nil {
			if *m.CompletedOnTime {
				s.CompletedOnTime++
			} else {
				s.CompletedLate++
			}
		}
		if m.DaysToComplete != nil {
			days += *m.DaysToComplete
			completed++
		}
	}
	if completed > 0 {
		avg := math.Round(float64(days)/float64(completed)*10) / 10
		s.AverageDaysToComplete = &avg
	}
	return s
}

// Stats returns counts and completion metrics over the caller's visible todos
// @Summary Todo statistics
// @Tags todos
// @Produce json
// @Success 200 {object} StatsResponse
// @Security BearerAuth
// @Router /todos/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	q, ok := h.visible(c)
	if !ok {
		return
	}
	var rows []models.Todo
	if err := q.Find(&rows).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch todos")
		return
	}
	now := nowFunc()
	metrics := make([]models.TodoMetrics, len(rows))
	for i := range rows {
		metrics[i] = rows[i].Metrics(now)
	}
	c.JSON(http.StatusOK, computeStats(rows, metrics))
}
