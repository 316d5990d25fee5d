package petitions

import (
	"net/http"
	"sort"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/gin-gonic/gin"
)

// TimelineEvent is one dated entry in a petition's history.
type TimelineEvent struct {
	Date        time.Time `json:"date"`
	Kind        string    `json:"kind"` // MILESTONE, RFE_RECEIVED, RFE_DUE or RFE_RESPONDED
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	MilestoneID *uint     `json:"milestone_id,omitempty"`
	RFEID       *uint     `json:"rfe_id,omitempty"`
}

func timeline(milestones []models.Milestone, rfes []models.RFE) []TimelineEvent {
	events := make([]TimelineEvent, 0, len(milestones)+2*len(rfes))
	for i := range milestones {
		m := milestones[i]
		date := m.CreatedAt
		switch {
		case m.CompletedDate != nil:
			date = *m.CompletedDate
		case m.DueDate != nil:
			date = *m.DueDate
		}
		events = append(events, TimelineEvent{
			Date:        date,
			Kind:        "MILESTONE",
			Type:        string(m.MilestoneType),
			Title:       m.Title,
			Status:      string(m.Status),
			MilestoneID: &milestones[i].ID,
		})
	}
	for i := range rfes {
		r := rfes[i]
		id := &rfes[i].ID
		events = append(events, TimelineEvent{
			Date: r.ReceivedDate, Kind: "RFE_RECEIVED", Type: string(r.RFEType),
			Title: "RFE received", Status: string(r.Status), RFEID: id,
		})
		if r.ResponseSubmittedDate != nil {
			events = append(events, TimelineEvent{
				Date: *r.ResponseSubmittedDate, Kind: "RFE_RESPONDED", Type: string(r.RFEType),
				Title: "RFE response submitted", Status: string(r.Status), RFEID: id,
			})
		} else if r.ResponseDueDate != nil && r.Status.IsOpen() {
			events = append(events, TimelineEvent{
				Date: *r.ResponseDueDate, Kind: "RFE_DUE", Type: string(r.RFEType),
				Title: "RFE response due", Status: string(r.Status), RFEID: id,
			})
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events
}

// Timeline returns the petition's milestones and RFE events in date order
// @Summary Petition timeline
// @Tags petitions
// @Produce json
// @Param id path int true "Petition ID"
// @Success 200 {array} TimelineEvent
// @Security BearerAuth
// @Router /petitions/{id}/timeline [get]
func (h *Handler) Timeline(c *gin.Context) {
	p, ok := h.load(c)
	if !ok {
		return
	}
	var milestones []models.Milestone
	if err := h.db.Where("petition_id = ?", p.ID).Order("id").Find(&milestones).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch milestones")
		return
	}
	var rfes []models.RFE
	if err := h.db.Where("petition_id = ?", p.ID).Order("id").Find(&rfes).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch RFEs")
		return
	}
	c.JSON(http.StatusOK, timeline(milestones, rfes))
}
