package importexport

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/audit"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles import/export requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new import/export handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// Import loads a bundle
// @Summary Import a bundle
// @Description Upserts contracts, departments, users, reference data and case records by natural key. Rows that fail are reported and skipped.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body Bundle true "Bundle to import"
// @Success 200 {object} Result
// @Failure 400 {object} apierror.APIError
// @Security BearerAuth
// @Router /admin/import [post]
func (h *Handler) Import(c *gin.Context) {
	actor := access.FromContext(c)

	var b Bundle
	if err := c.ShouldBindJSON(&b); err != nil {
		apierror.BadRequest(c, "Invalid bundle: "+err.Error())
		return
	}

	result := Import(h.db, &b, actor.ID())

	audit.Record(h.db, c, audit.Entry{
		UserID:     actor.IDPtr(),
		Action:     models.AuditImport,
		EntityType: "bundle",
		Changes: gin.H{
			"created": result.Created,
			"updated": result.Updated,
			"errors":  len(result.Errors),
		},
	})

	c.JSON(http.StatusOK, result)
}

// Export dumps the database as a bundle
// @Summary Export a bundle
// @Tags admin
// @Produce json
// @Param download query bool false "Send as a file attachment"
// @Success 200 {object} Bundle
// @Security BearerAuth
// @Router /admin/export [get]
func (h *Handler) Export(c *gin.Context) {
	b, err := Export(h.db)
	if err != nil {
		apierror.Internal(c, err, "Failed to export data")
		return
	}

	if c.Query("download") == "true" {
		name := fmt.Sprintf("ama-impact-export-%s.json", time.Now().UTC().Format("20060102"))
		c.Header("Content-Disposition", "attachment; filename="+name)
	}
	c.JSON(http.StatusOK, b)
}

// RegisterRoutes registers import/export routes. admin must already be
// restricted to administrators.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.POST("/import", h.Import)
	admin.GET("/export", h.Export)
}
