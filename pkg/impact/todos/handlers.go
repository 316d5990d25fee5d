package todos

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/audit"
	"github.com/ama-impact/ama-impact/pkg/impact/httputil"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/ama-impact/ama-impact/pkg/impact/notifications"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

// Handler handles todo requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new todos handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateTodoRequest represents the request to create a todo.
// visa_application_id is accepted as an alias of petition_id.
type CreateTodoRequest struct {
	Title             string  `json:"title" binding:"required,max=200"`
	Description       string  `json:"description"`
	Status            string  `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS BLOCKED COMPLETED CANCELLED"`
	Priority          string  `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate           *string `json:"due_date" binding:"omitempty,isodate"`
	AssignedToID      *uint   `json:"assigned_to_id"`
	PetitionID        *uint   `json:"petition_id"`
	VisaApplicationID *uint   `json:"visa_application_id"`
	CaseGroupID       *uint   `json:"case_group_id"`
	BeneficiaryID     *uint   `json:"beneficiary_id"`
}

// UpdateTodoRequest represents the request to update a todo. A zero id
// clears a link; an empty due_date clears the due date.
type UpdateTodoRequest struct {
	Title             *string `json:"title" binding:"omitempty,max=200"`
	Description       *string `json:"description"`
	Status            *string `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS BLOCKED COMPLETED CANCELLED"`
	Priority          *string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate           *string `json:"due_date" binding:"omitempty,isodate|eq="`
	AssignedToID      *uint   `json:"assigned_to_id"`
	PetitionID        *uint   `json:"petition_id"`
	VisaApplicationID *uint   `json:"visa_application_id"`
	CaseGroupID       *uint   `json:"case_group_id"`
	BeneficiaryID     *uint   `json:"beneficiary_id"`
}

func petitionRef(petitionID, alias *uint) *uint {
	if petitionID != nil {
		return petitionID
	}
	return alias
}

// TodoResponse is a todo with its computed metrics
type TodoResponse struct {
	models.Todo
	models.TodoMetrics
}

func newResponse(t models.Todo, now time.Time) TodoResponse {
	return TodoResponse{Todo: t, TodoMetrics: t.Metrics(now)}
}

func (h *Handler) canModify(actor *access.Actor, t *models.Todo) bool {
	if actor.IsAdmin() || actor.Is(models.RoleHR, models.RolePM, models.RoleManager) {
		return true
	}
	return t.CreatedByID == actor.ID() || (t.AssignedToID != nil && *t.AssignedToID == actor.ID())
}

func (h *Handler) canDelete(actor *access.Actor, t *models.Todo) bool {
	return actor.IsAdmin() || actor.Is(models.RoleHR, models.RolePM) || t.CreatedByID == actor.ID()
}

// resolve fills the todo's links and checks they exist and are visible,
// answering 400 otherwise.
func (h *Handler) resolve(c *gin.Context, t *models.Todo) bool {
	if err := t.ResolveAncestry(h.db); err != nil {
		if errors.Is(err, models.ErrTodoPetitionNotFound) ||
			errors.Is(err, models.ErrTodoCaseGroupNotFound) ||
			errors.Is(err, models.ErrTodoBeneficiaryNotFound) {
			apierror.BadRequest(c, err.Error())
		} else {
			apierror.Internal(c, err, "Failed to resolve todo links")
		}
		return false
	}
	if t.BeneficiaryID != nil {
		scope, ok := access.ScopeOf(c)
		if !ok {
			return false
		}
		visible, err := scope.CanSeeBeneficiary(*t.BeneficiaryID)
		if err != nil {
			apierror.Internal(c, err, "Failed to check beneficiary scope")
			return false
		}
		if !visible {
			apierror.BadRequest(c, models.ErrTodoBeneficiaryNotFound.Error())
			return false
		}
	}
	if t.AssignedToID != nil {
		var n int64
		if err := h.db.Model(&models.User{}).Where("id = ? AND is_active = ?", *t.AssignedToID, true).Count(&n).Error; err != nil {
			apierror.Internal(c, err, "Failed to check assignee")
			return false
		}
		if n == 0 {
			apierror.BadRequest(c, "Assignee does not exist")
			return false
		}
	}
	return true
}

// setStatus applies a status change, stamping or clearing completed_at.
func setStatus(t *models.Todo, s models.TodoStatus, now time.Time) {
	t.Status = s
	if s == models.TodoStatusCompleted {
		if t.CompletedAt == nil {
			u := now.UTC()
			t.CompletedAt = &u
		}
	} else {
		t.CompletedAt = nil
	}
}

func (h *Handler) notifyAssignee(c *gin.Context, t *models.Todo) {
	if t.AssignedToID == nil {
		return
	}
	msg := t.Title
	if t.DueDate != nil {
		msg = fmt.Sprintf("%s (due %s)", t.Title, t.DueDate.Format("2006-01-02"))
	}
	notifications.Dispatch(c, h.db, []uint{*t.AssignedToID}, notifications.Input{
		Type:       models.NotificationTodoAssigned,
		Title:      "New task assigned to you",
		Message:    msg,
		Link:       fmt.Sprintf("/todos/%d", t.ID),
		EntityType: "todo",
		EntityID:   t.ID,
	})
}

// visible returns the caller's todos query.
func (h *Handler) visible(c *gin.Context) (*gorm.DB, bool) {
	scope, ok := access.ScopeOf(c)
	if !ok {
		return nil, false
	}
	return scope.Todos(h.db.Model(&models.Todo{}), access.FromContext(c).ID()), true
}

// List returns the todos visible to the caller
// @Summary List todos
// @Tags todos
// @Produce json
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param assigned_to_id query int false "Filter by assignee"
// @Param beneficiary_id query int false "Filter by beneficiary"
// @Param case_group_id query int false "Filter by case group"
// @Param petition_id query int false "Filter by petition"
// @Param overdue query bool false "Only overdue todos"
// @Param due_before query string false "Due on or before (YYYY-MM-DD)"
// @Param due_after query string false "Due on or after (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /todos [get]
func (h *Handler) List(c *gin.Context) {
	p, ok := httputil.GetPagination(c)
	if !ok {
		return
	}
	q, ok := h.visible(c)
	if !ok {
		return
	}
	for _, col := range []string{"assigned_to_id", "beneficiary_id", "case_group_id", "petition_id"} {
		v, ok := httputil.QueryUint(c, col)
		if !ok {
			return
		}
		if v != nil {
			q = q.Where("todos."+col+" = ?", *v)
		}
	}
	for _, col := range []string{"status", "priority"} {
		if v := c.Query(col); v != "" {
			q = q.Where("todos."+col+" = ?", strings.ToUpper(v))
		}
	}
	now := nowFunc()
	overdue, ok := httputil.QueryBool(c, "overdue")
	if !ok {
		return
	}
	if overdue != nil && *overdue {
		q = q.Where("todos.due_date < ? AND todos.status NOT IN ?", httputil.StartOfDay(now),
			[]models.TodoStatus{models.TodoStatusCompleted, models.TodoStatusCancelled})
	}
	before, ok := httputil.QueryDate(c, "due_before")
	if !ok {
		return
	}
	if before != nil {
		q = q.Where("todos.due_date < ?", httputil.StartOfDay(*before).AddDate(0, 0, 1))
	}
	after, ok := httputil.QueryDate(c, "due_after")
	if !ok {
		return
	}
	if after != nil {
		q = q.Where("todos.due_date >= ?", httputil.StartOfDay(*after))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		apierror.Internal(c, err, "Failed to count todos")
		return
	}
	var rows []models.Todo
	if err := p.Apply(q.Order("CASE WHEN todos.due_date IS NULL THEN 1 ELSE 0 END, todos.due_date, todos.id")).Find(&rows).Error; err != nil {
		apierror.Internal(c, err, "Failed to fetch todos")
		return
	}
	items := make([]TodoResponse, len(rows))
	for i, t := range rows {
		items[i] = newResponse(t, now)
	}
	c.JSON(http.StatusOK, httputil.NewList(items, p, total))
}

// Create creates a todo owned by the caller
// @Summary Create todo
// @Tags todos
// @Accept json
// @Produce json
// @Param request body CreateTodoRequest true "Todo details"
// @Success 201 {object} TodoResponse
// @Security BearerAuth
// @Router /todos [post]
func (h *Handler) Create(c *gin.Context) {
	actor := access.FromContext(c)
	var req CreateTodoRequest
	if !apierror.Bind(c, &req) {
		return
	}
	due, err := httputil.ParseDatePtr(req.DueDate)
	if err != nil {
		apierror.BadRequest(c, "Invalid due_date")
		return
	}
	t := models.Todo{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      models.PriorityMedium,
		DueDate:       due,
		AssignedToID:  req.AssignedToID,
		CreatedByID:   actor.ID(),
		PetitionID:    petitionRef(req.PetitionID, req.VisaApplicationID),
		CaseGroupID:   req.CaseGroupID,
		BeneficiaryID: req.BeneficiaryID,
	}
	if req.Priority != "" {
		t.Priority = models.Priority(req.Priority)
	}
	status := models.TodoStatusTodo
	if req.Status != "" {
		status = models.TodoStatus(req.Status)
	}
	now := nowFunc()
	setStatus(&t, status, now)
	if !h.resolve(c, &t) {
		return
	}
	if err := h.db.Create(&t).Error; err != nil {
		apierror.Internal(c, err, "Failed to create todo")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditCreate, EntityType: "todo", EntityID: t.ID, Changes: req})
	h.notifyAssignee(c, &t)
	c.JSON(http.StatusCreated, newResponse(t, now))
}

func (h *Handler) load(c *gin.Context) (*models.Todo, bool) {
	id, ok := httputil.ParseID(c, "id")
	if !ok {
		return nil, false
	}
	return access.LoadTodo(c, h.db, id)
}

// Get returns a todo with its metrics
// @Summary Get todo
// @Tags todos
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} TodoResponse
// @Security BearerAuth
// @Router /todos/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	t, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newResponse(*t, nowFunc()))
}

func clearable(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

// Update updates a todo. Reassigning notifies the new assignee.
// @Summary Update todo
// @Tags todos
// @Accept json
// @Produce json
// @Param id path int true "Todo ID"
// @Param request body UpdateTodoRequest true "Fields to change"
// @Success 200 {object} TodoResponse
// @Security BearerAuth
// @Router /todos/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	actor := access.FromContext(c)
	t, ok := h.load(c)
	if !ok {
		return
	}
	if !h.canModify(actor, t) {
		apierror.Forbidden(c, "Insufficient permissions to change this todo")
		return
	}
	var req UpdateTodoRequest
	if !apierror.Bind(c, &req) {
		return
	}
	now := nowFunc()
	prevAssignee := t.AssignedToID

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Priority != nil {
		t.Priority = models.Priority(*req.Priority)
	}
	if req.Status != nil {
		setStatus(t, models.TodoStatus(*req.Status), now)
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			t.DueDate = nil
		} else {
			due, err := httputil.ParseDatePtr(req.DueDate)
			if err != nil {
				apierror.BadRequest(c, "Invalid due_date")
				return
			}
			t.DueDate = due
		}
	}
	if req.AssignedToID != nil {
		t.AssignedToID = clearable(req.AssignedToID)
	}
	if ref := petitionRef(req.PetitionID, req.VisaApplicationID); ref != nil {
		t.PetitionID = clearable(ref)
		// The case group was copied from the petition; unlinking drops it too.
		if t.PetitionID == nil && req.CaseGroupID == nil {
			t.CaseGroupID = nil
		}
	}
	if req.CaseGroupID != nil {
		t.CaseGroupID = clearable(req.CaseGroupID)
	}
	if req.BeneficiaryID != nil {
		t.BeneficiaryID = clearable(req.BeneficiaryID)
	}
	if !h.resolve(c, t) {
		return
	}
	if err := h.db.Save(t).Error; err != nil {
		apierror.Internal(c, err, "Failed to update todo")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditUpdate, EntityType: "todo", EntityID: t.ID, Changes: req})
	if t.AssignedToID != nil && (prevAssignee == nil || *prevAssignee != *t.AssignedToID) {
		h.notifyAssignee(c, t)
	}
	c.JSON(http.StatusOK, newResponse(*t, now))
}

// Complete marks a todo completed
// @Summary Complete todo
// @Tags todos
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} TodoResponse
// @Security BearerAuth
// @Router /todos/{id}/complete [post]
func (h *Handler) Complete(c *gin.Context) {
	actor := access.FromContext(c)
	t, ok := h.load(c)
	if !ok {
		return
	}
	if !h.canModify(actor, t) {
		apierror.Forbidden(c, "Insufficient permissions to change this todo")
		return
	}
	if t.Status == models.TodoStatusCompleted {
		c.JSON(http.StatusOK, newResponse(*t, nowFunc()))
		return
	}
	now := nowFunc()
	setStatus(t, models.TodoStatusCompleted, now)
	if err := h.db.Model(t).Updates(map[string]interface{}{"status": t.Status, "completed_at": t.CompletedAt}).Error; err != nil {
		apierror.Internal(c, err, "Failed to complete todo")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditUpdate, EntityType: "todo", EntityID: t.ID,
		Changes: map[string]interface{}{"status": t.Status}})
	c.JSON(http.StatusOK, newResponse(*t, now))
}

// Delete soft-deletes a todo
// @Summary Delete todo
// @Tags todos
// @Param id path int true "Todo ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /todos/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actor := access.FromContext(c)
	t, ok := h.load(c)
	if !ok {
		return
	}
	if !h.canDelete(actor, t) {
		apierror.Forbidden(c, "Insufficient permissions to delete this todo")
		return
	}
	if err := h.db.Delete(t).Error; err != nil {
		apierror.Internal(c, err, "Failed to delete todo")
		return
	}
	audit.Record(h.db, c, audit.Entry{UserID: actor.IDPtr(), Action: models.AuditDelete, EntityType: "todo", EntityID: t.ID})
	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted"})
}

// RegisterRoutes registers todo routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	t := rg.Group("/todos")
	t.GET("", h.List)
	t.POST("", h.Create)
	t.GET("/stats", h.Stats)
	t.GET("/:id", h.Get)
	t.PUT("/:id", h.Update)
	t.DELETE("/:id", h.Delete)
	t.POST("/:id/complete", h.Complete)
}
