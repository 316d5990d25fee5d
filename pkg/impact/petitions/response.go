package petitions

import (
	"fmt"

	"github.com/ama-impact/ama-impact/pkg/impact/models"
	"github.com/ama-impact/ama-impact/pkg/impact/pipeline"
	"gorm.io/gorm"
)

// PetitionResponse is a petition with its computed progress
type PetitionResponse struct {
	models.Petition
	BeneficiaryName    string          `json:"beneficiary_name"`
	ProgressPercentage *float64        `json:"progress_percentage"`
	Pipeline           []pipeline.Step `json:"pipeline"`
	OpenRFEs           int64           `json:"open_rfes"`
}

// Responses builds responses for ps, loading milestones, RFE counts and
// beneficiary names in one query each. The second return holds the raw
// progress results in the same order.
func Responses(db *gorm.DB, ps []models.Petition) ([]PetitionResponse, []pipeline.Result, error) {
	out := make([]PetitionResponse, len(ps))
	results := make([]pipeline.Result, len(ps))
	if len(ps) == 0 {
		return out, results, nil
	}

	ids := make([]uint, len(ps))
	benIDs := make([]uint, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
		benIDs[i] = p.BeneficiaryID
	}

	var milestones []models.Milestone
	if err := db.Where("petition_id IN ?", ids).Find(&milestones).Error; err != nil {
		return nil, nil, fmt.Errorf("loading milestones: %w", err)
	}
	byPetition := make(map[uint][]models.Milestone, len(ps))
	for _, m := range milestones {
		byPetition[*m.PetitionID] = append(byPetition[*m.PetitionID], m)
	}

	var rfeCounts []struct {
		PetitionID uint
		N          int64
	}
	if err := db.Model(&models.RFE{}).Select("petition_id, COUNT(*) AS n").
		Where("petition_id IN ? AND status IN ?", ids, []models.RFEStatus{models.RFEStatusReceived, models.RFEStatusInProgress}).
		Group("petition_id").Scan(&rfeCounts).Error; err != nil {
		return nil, nil, fmt.Errorf("counting open RFEs: %w", err)
	}
	openRFEs := make(map[uint]int64, len(rfeCounts))
	for _, r := range rfeCounts {
		openRFEs[r.PetitionID] = r.N
	}

	var bens []models.Beneficiary
	if err := db.Unscoped().Select("id", "first_name", "last_name").Where("id IN ?", benIDs).Find(&bens).Error; err != nil {
		return nil, nil, fmt.Errorf("loading beneficiary names: %w", err)
	}
	names := make(map[uint]string, len(bens))
	for _, b := range bens {
		names[b.ID] = b.FullName()
	}

	for i, p := range ps {
		res := pipeline.Progress(p.PetitionType, byPetition[p.ID])
		results[i] = res
		out[i] = PetitionResponse{
			Petition:           p,
			BeneficiaryName:    names[p.BeneficiaryID],
			ProgressPercentage: res.PercentPtr(),
			Pipeline:           res.Steps,
			OpenRFEs:           openRFEs[p.ID],
		}
	}
	return out, results, nil
}

// NewResponse builds the response for a single petition.
func NewResponse(db *gorm.DB, p models.Petition) (PetitionResponse, error) {
	out, _, err := Responses(db, []models.Petition{p})
	if err != nil {
		return PetitionResponse{}, err
	}
	return out[0], nil
}
