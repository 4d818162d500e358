package matching

import (
	"math"

	"github.com/launchpool/launchpool/internal/models"
)

// Recommendation tier messages, one fixed string per bucket.
const (
	tierExcellent = "Excellent match! This project is highly recommended for you."
	tierGood      = "Good match. This project fits your profile well."
	tierFair      = "Fair match. Some aspects of this project fit your profile."
	tierLimited   = "Limited match. This project may not be the best fit."
)

// Engine combines the five dimension calculators into a MatchScore.
// It is stateless apart from its immutable config; Score is a pure
// function of its inputs.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	if cfg.CapacityMultiplier <= 0 {
		cfg.CapacityMultiplier = DefaultConfig().CapacityMultiplier
	}
	return &Engine{cfg: cfg}
}

// Score computes the weighted match between one user and one project.
// Sub-scores are rounded before weighting so the total is a
// deterministic function of the five published integers.
func (e *Engine) Score(user *models.User, project *models.Project) models.MatchScore {
	skill, skillDet := skillScore(user.Skills, project.Requirements)
	invest, investDet := investmentScore(e.cfg, user, project)
	stage, stageDet := stageScore(user, project)
	interest, interestDet := interestScore(user, project)
	engage, engageDet := engagementScore(user)

	ms := models.MatchScore{
		UserID:          user.ID,
		ProjectID:       project.ID,
		SkillScore:      roundScore(skill),
		InvestmentScore: roundScore(invest),
		StageScore:      roundScore(stage),
		InterestScore:   roundScore(interest),
		EngagementScore: roundScore(engage),
		Details:         make(map[string]float64, len(skillDet)+len(investDet)+len(stageDet)+len(interestDet)+len(engageDet)),
		MatchType:       matchTypeFor(user.Role),
	}

	w := e.cfg.Weights
	total := w.Skill*float64(ms.SkillScore) +
		w.Investment*float64(ms.InvestmentScore) +
		w.Stage*float64(ms.StageScore) +
		w.Interest*float64(ms.InterestScore) +
		w.Engagement*float64(ms.EngagementScore)
	ms.TotalScore = roundScore(total)
	ms.Recommendation = recommendationFor(ms.TotalScore)

	// Namespace detail keys per calculator so same-named factors
	// never overwrite each other in the merged map.
	mergeDetails(ms.Details, "skill", skillDet)
	mergeDetails(ms.Details, "investment", investDet)
	mergeDetails(ms.Details, "stage", stageDet)
	mergeDetails(ms.Details, "interest", interestDet)
	mergeDetails(ms.Details, "engagement", engageDet)

	return ms
}

func roundScore(v float64) int {
	return int(clamp(math.Round(v), 0, 100))
}

// matchTypeFor picks the dominant rationale label by role, not by
// score magnitude.
func matchTypeFor(role models.Role) models.MatchType {
	switch role {
	case models.RoleFreelancer:
		return models.MatchTypeSkill
	case models.RoleInvestor:
		return models.MatchTypeInvestment
	case models.RoleFounder, models.RoleCollaborator:
		return models.MatchTypeStage
	default:
		return models.MatchTypeInterest
	}
}

func recommendationFor(total int) string {
	switch {
	case total >= 80:
		return tierExcellent
	case total >= 60:
		return tierGood
	case total >= 40:
		return tierFair
	default:
		return tierLimited
	}
}

func mergeDetails(dst map[string]float64, prefix string, src map[string]float64) {
	for k, v := range src {
		dst[prefix+"."+k] = v
	}
}
