// Package pipeline computes case progress from the milestones recorded on a
// petition. Each petition type maps to an ordered list of milestone types;
// progress is the share of that list that has been completed.
package pipeline

import (
	"math"

	"github.com/ama-impact/ama-impact/pkg/impact/models"
)

// Pipeline is the ordered list of milestones a petition type goes through.
type Pipeline []models.MilestoneType

var pipelines = map[models.PetitionType]Pipeline{
	models.PetitionI140: {
		models.MilestoneI140Filed,
		models.MilestoneI140Approved,
	},
	models.PetitionI485: {
		models.MilestoneI485Filed,
		models.MilestoneBiometricsCompleted,
		models.MilestoneInterviewCompleted,
		models.MilestoneI485Approved,
	},
	models.PetitionPERM: {
		models.MilestonePWDFiled,
		models.MilestonePWDIssued,
		models.MilestoneRecruitmentStarted,
		models.MilestoneRecruitmentCompleted,
		models.MilestonePERMFiled,
		models.MilestonePERMApproved,
	},
	models.PetitionI129: {
		models.MilestoneLCAFiled,
		models.MilestoneLCACertified,
		models.MilestonePetitionFiled,
		models.MilestonePetitionApproved,
	},
	models.PetitionLCA: {
		models.MilestoneLCAFiled,
		models.MilestoneLCACertified,
	},
	models.PetitionI765: {
		models.MilestonePetitionFiled,
		models.MilestoneBiometricsCompleted,
		models.MilestoneEADReceived,
	},
	models.PetitionI131: {
		models.MilestonePetitionFiled,
		models.MilestoneBiometricsCompleted,
		models.MilestoneAdvanceParoleReceived,
	},
	models.PetitionI539: {
		models.MilestonePetitionFiled,
		models.MilestonePetitionApproved,
	},
}

// Lookup returns the pipeline for a petition type. I907 and OTHER have none.
func Lookup(t models.PetitionType) (Pipeline, bool) {
	p, ok := pipelines[t]
	if !ok {
		return nil, false
	}
	out := make(Pipeline, len(p))
	copy(out, p)
	return out, true
}

// Step is one pipeline entry with its completion state.
type Step struct {
	MilestoneType models.MilestoneType `json:"milestone_type"`
	Completed     bool                 `json:"completed"`
}

// Result is the progress of a single petition.
type Result struct {
	Defined   bool    `json:"defined"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Fraction  float64 `json:"fraction"`
	Percent   float64 `json:"percent"`
	Steps     []Step  `json:"steps"`
}

// PercentPtr returns the percentage, or nil when the type has no pipeline.
func (r Result) PercentPtr() *float64 {
	if !r.Defined {
		return nil
	}
	p := r.Percent
	return &p
}

// Progress computes how far a petition of type t has come. A pipeline step
// counts once when any milestone of that type has a completed date;
// milestones whose type is not in the pipeline are ignored.
func Progress(t models.PetitionType, milestones []models.Milestone) Result {
	p, ok := pipelines[t]
	if !ok {
		return Result{Steps: []Step{}}
	}

	done := make(map[models.MilestoneType]bool, len(milestones))
	for _, m := range milestones {
		if m.IsCompleted() {
			done[m.MilestoneType] = true
		}
	}

	res := Result{Defined: true, Total: len(p), Steps: make([]Step, len(p))}
	for i, mt := range p {
		res.Steps[i] = Step{MilestoneType: mt, Completed: done[mt]}
		if done[mt] {
			res.Completed++
		}
	}
	res.Fraction = float64(res.Completed) / float64(res.Total)
	res.Percent = round1(100 * res.Fraction)
	return res
}

// CaseGroupProgress averages the percentages of the petitions that have a
// pipeline. The second return is false when none of them do.
func CaseGroupProgress(results []Result) (float64, bool) {
	var sum float64
	var n int
	for _, r := range results {
		if !r.Defined {
			continue
		}
		sum += r.Percent
		n++
	}
	if n == 0 {
		return 0, false
	}
	return round1(sum / float64(n)), true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
