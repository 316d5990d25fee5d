package notifications

import (
	"log/slog"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/logging"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dispatch notifies userIDs about a change made by the request's actor,
// who is never notified about their own action. Failures are logged and do
// not fail the request.
func Dispatch(c *gin.Context, db *gorm.DB, userIDs []uint, in Input) {
	var skip uint
	if a := access.FromContext(c); a != nil {
		skip = a.ID()
	}
	if err := Get().NotifyUsers(c.Request.Context(), db, userIDs, skip, in); err != nil {
		slog.Default().Warn("failed to send notification",
			"error", err,
			"type", in.Type,
			"entity_type", in.EntityType,
			"entity_id", in.EntityID,
			"request_id", logging.GetRequestID(c),
		)
	}
}

// Users collects the non-nil ids.
func Users(ids ...*uint) []uint {
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id != nil {
			out = append(out, *id)
		}
	}
	return out
}
