package reports

import (
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/ama-impact/ama-impact/pkg/impact/access"
	"github.com/ama-impact/ama-impact/pkg/impact/apierror"
	"github.com/ama-impact/ama-impact/pkg/impact/httputil"
	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

// Handler handles report requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new reports handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// Totals are the headline counts of the executive report
type Totals struct {
	Beneficiaries    int64 `json:"beneficiaries"`
	ActiveCaseGroups int64 `json:"active_case_groups"`
	Petitions        int64 `json:"petitions"`
	OpenPetitions    int64 `json:"open_petitions"`
	OpenRFEs         int64 `json:"open_rfes"`
}

// ContractSummary breaks the totals down per contract
type ContractSummary struct {
	ContractID    uint   `json:"contract_id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	Beneficiaries int64  `json:"beneficiaries"`
	Petitions     int64  `json:"petitions"`
}

// ExecutiveReport is the management overview of the caller's scope
type ExecutiveReport struct {
	GeneratedAt           time.Time         `json:"generated_at"`
	Totals                Totals            `json:"totals"`
	ByPetitionType        map[string]int64  `json:"by_petition_type"`
	ByStatus              map[string]int64  `json:"by_status"`
	ByContract            []ContractSummary `json:"by_contract"`
	ApprovalRate          *float64          `json:"approval_rate"`
	AverageProcessingDays *float64          `json:"average_processing_days"`
	PendingApprovals      int64             `json:"pending_approvals"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// approvalRate is approved / (approved + denied), or nil before any decision.
func approvalRate(byStatus map[string]int64) *float64 {
	approved := byStatus[string(models.PetitionStatusApproved)]
	decided := approved + byStatus[string(models.PetitionStatusDenied)]
	if decided == 0 {
		return nil
	}
	r := round1(100 * float64(approved) / float64(decided))
	return &r
}

// averageDays is the mean number of days from filing to approval.
func averageDays(ps []models.Petition) *float64 {
	var sum float64
	var n int
	for _, p := range ps {
		if p.FilingDate == nil || p.ApprovalDate == nil {
			continue
		}
		d := p.ApprovalDate.Sub(*p.FilingDate).Hours() / 24
		if d < 0 {
			continue
		}
		sum += d
		n++
	}
	if n == 0 {
		return nil
	}
	avg := round1(sum / float64(n))
	return &avg
}

// Executive returns the executive summary
// @Summary Executive report
// @Tags reports
// @Produce json
// @Success 200 {object} ExecutiveReport
// @Security BearerAuth
// @Router /reports/executive [get]
func (h *Handler) Executive(c *gin.Context) {
	scope, ok := access.ScopeOf(c)
	if !ok {
		return
	}
	bens := func() *gorm.DB { return scope.Beneficiaries(h.db.Model(&models.Beneficiary{})) }
	petitions := func() *gorm.DB { return scope.Owned(h.db.Model(&models.Petition{}), "petitions.beneficiary_id") }
	groups := func() *gorm.DB { return scope.Owned(h.db.Model(&models.CaseGroup{}), "case_groups.beneficiary_id") }

	rep := ExecutiveReport{GeneratedAt: nowFunc().UTC()}
	var err error
	fail := func(e error) bool {
		if e != nil {
			apierror.Internal(c, e, "Failed to build executive report")
			return true
		}
		return false
	}

	if rep.Totals.Beneficiaries, err = Count(bens()); fail(err) {
		return
	}
	if rep.Totals.ActiveCaseGroups, err = Count(groups().Where("status IN ?", []models.CaseStatus{models.CaseStatusPlanning, models.CaseStatusInProgress})); fail(err) {
		return
	}
	if rep.Totals.Petitions, err = Count(petitions()); fail(err) {
		return
	}
	if rep.Totals.OpenPetitions, err = Count(petitions().Where("status NOT IN ?", models.ClosedPetitionStatuses)); fail(err) {
		return
	}
	if rep.Totals.OpenRFEs, err = Count(scope.ViaPetition(h.db.Model(&models.RFE{}), "rfes.petition_id").
		Where("status IN ?", []models.RFEStatus{models.RFEStatusReceived, models.RFEStatusInProgress})); fail(err) {
		return
	}
	if rep.ByPetitionType, err = CountBy(petitions(), "petition_type"); fail(err) {
		return
	}
	if rep.ByStatus, err = CountBy(petitions(), "status"); fail(err) {
		return
	}
	if rep.PendingApprovals, err = Count(groups().Where("approval_status = ?", models.ApprovalPending)); fail(err) {
		return
	}
	rep.ApprovalRate = approvalRate(rep.ByStatus)

	var approved []models.Petition
	if fail(petitions().Select("id", "filing_date", "approval_date").
		Where("status = ? AND filing_date IS NOT NULL AND approval_date IS NOT NULL", models.PetitionStatusApproved).
		Find(&approved).Error) {
		return
	}
	rep.AverageProcessingDays = averageDays(approved)

	if rep.ByContract, err = h.byContract(bens, petitions); fail(err) {
		return
	}
	c.JSON(http.StatusOK, rep)
}

// countByContract scans grouped per-contract counts.
func countByContract(q *gorm.DB, column string) (map[uint]int64, error) {
	var rows []struct {
		ContractID *uint
		N          int64
	}
	if err := q.Select(column + " AS contract_id, COUNT(*) AS n").Group(column).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]int64, len(rows))
	for _, r := range rows {
		if r.ContractID != nil {
			out[*r.ContractID] = r.N
		}
	}
	return out, nil
}

func (h *Handler) byContract(bens, petitions func() *gorm.DB) ([]ContractSummary, error) {
	benCounts, err := countByContract(bens(), "beneficiaries.contract_id")
	if err != nil {
		return nil, err
	}
	petCounts, err := countByContract(petitions().
		Joins("JOIN beneficiaries ON beneficiaries.id = petitions.beneficiary_id").
		Where("beneficiaries.deleted_at IS NULL"), "beneficiaries.contract_id")
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(benCounts))
	for id := range benCounts {
		ids = append(ids, id)
	}
	var contracts []models.Contract
	if len(ids) > 0 {
		if err := h.db.Where("id IN ?", ids).Order("code").Find(&contracts).Error; err != nil {
			return nil, err
		}
	}
	out := make([]ContractSummary, 0, len(contracts))
	for _, ct := range contracts {
		out = append(out, ContractSummary{
			ContractID:    ct.ID,
			Code:          ct.Code,
			Name:          ct.Name,
			Beneficiaries: benCounts[ct.ID],
			Petitions:     petCounts[ct.ID],
		})
	}
	return out, nil
}

// ExpiringItem is one date that runs out within the report window
type ExpiringItem struct {
	Kind            string    `json:"kind"` // VISA, I94 or PETITION
	BeneficiaryID   uint      `json:"beneficiary_id"`
	BeneficiaryName string    `json:"beneficiary_name"`
	PetitionID      *uint     `json:"petition_id,omitempty"`
	Detail          string    `json:"detail"`
	ExpiresOn       time.Time `json:"expires_on"`
	DaysRemaining   int       `json:"days_remaining"`
}

// Expiring lists visas, I-94 records and petitions expiring within the
// next days (default 90)
// @Summary Expiring documents report
// @Tags reports
// @Produce json
// @Param days query int false "Window in days" default(90)
// @Success 200 {array} ExpiringItem
// @Security BearerAuth
// @Router /reports/expiring [get]
func (h *Handler) Expiring(c *gin.Context) {
	days, ok := httputil.QueryInt(c, "days", 90, 1, 3650)
	if !ok {
		return
	}
	scope, ok := access.ScopeOf(c)
	if !ok {
		return
	}
	today := httputil.StartOfDay(nowFunc())
	until := today.AddDate(0, 0, days+1)
	remaining := func(t time.Time) int {
		return int(httputil.StartOfDay(t).Sub(today).Hours() / 24)
	}

	var bens []models.Beneficiary
	err := scope.Beneficiaries(h.db.Model(&models.Beneficiary{})).
		Where("is_active = ?", true).
		Where("((current_visa_expiration >= ? AND current_visa_expiration < ?) OR (i94_expiration >= ? AND i94_expiration < ?))",
			today, until, today, until).
		Find(&bens).Error
	if err != nil {
		apierror.Internal(c, err, "Failed to fetch beneficiaries")
		return
	}
	in := func(t *time.Time) bool {
		return t != nil && !t.Before(today) && t.Before(until)
	}
	items := []ExpiringItem{}
	for _, b := range bens {
		if in(b.CurrentVisaExpiration) {
			items = append(items, ExpiringItem{
				Kind: "VISA", BeneficiaryID: b.ID, BeneficiaryName: b.FullName(), Detail: b.CurrentVisaType,
				ExpiresOn: *b.CurrentVisaExpiration, DaysRemaining: remaining(*b.CurrentVisaExpiration),
			})
		}
		if in(b.I94Expiration) {
			items = append(items, ExpiringItem{
				Kind: "I94", BeneficiaryID: b.ID, BeneficiaryName: b.FullName(), Detail: "I-94",
				ExpiresOn: *b.I94Expiration, DaysRemaining: remaining(*b.I94Expiration),
			})
		}
	}

	var ps []models.Petition
	err = scope.Owned(h.db.Model(&models.Petition{}), "petitions.beneficiary_id").
		Where("expiration_date >= ? AND expiration_date < ?", today, until).
		Where("status NOT IN ?", []models.PetitionStatus{models.PetitionStatusDenied, models.PetitionStatusWithdrawn}).
		Find(&ps).Error
	if err != nil {
		apierror.Internal(c, err, "Failed to fetch petitions")
		return
	}
	if len(ps) > 0 {
		benIDs := make([]uint, len(ps))
		for i, p := range ps {
			benIDs[i] = p.BeneficiaryID
		}
		var owners []models.Beneficiary
		h.db.Select("id", "first_name", "last_name").Where("id IN ?", benIDs).Find(&owners)
		names := make(map[uint]string, len(owners))
		for _, o := range owners {
			names[o.ID] = o.FullName()
		}
		for i := range ps {
			p := ps[i]
			items = append(items, ExpiringItem{
				Kind: "PETITION", BeneficiaryID: p.BeneficiaryID, BeneficiaryName: names[p.BeneficiaryID],
				PetitionID: &ps[i].ID, Detail: string(p.PetitionType),
				ExpiresOn: *p.ExpirationDate, DaysRemaining: remaining(*p.ExpirationDate),
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].ExpiresOn.Equal(items[j].ExpiresOn) {
			return items[i].ExpiresOn.Before(items[j].ExpiresOn)
		}
		return items[i].BeneficiaryID < items[j].BeneficiaryID
	})
	c.JSON(http.StatusOK, items)
}

// RegisterRoutes registers report routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	r := rg.Group("/reports")
	r.GET("/executive", access.RequireRoles(models.RoleAdmin, models.RolePM, models.RoleHR), h.Executive)
	r.GET("/expiring", h.Expiring)
}
