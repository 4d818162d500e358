package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/launchpool/launchpool/internal/models"
)

// Each calculator returns a 0-100 sub-score plus a factor breakdown.
// Detail keys are local to the calculator; the aggregator namespaces
// them before merging.

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// skillScore grades the user's skills against the project's team
// requirements. Requirements the user has no skill for earn nothing,
// neither in the per-requirement score nor in the coverage bonus.
func skillScore(skills []models.UserSkill, reqs []models.TeamRequirement) (float64, map[string]float64) {
	details := make(map[string]float64)

	if len(skills) == 0 {
		return 0, details
	}
	if len(reqs) == 0 {
		// Absence of requirements is not a penalty.
		details["no_requirements"] = 1
		return 50, details
	}

	bySkill := make(map[int64]models.UserSkill, len(skills))
	for _, s := range skills {
		bySkill[s.SkillID] = s
	}

	matched := 0
	sum := 0.0
	for i, r := range reqs {
		us, ok := bySkill[r.SkillID]
		if !ok {
			continue
		}
		matched++

		var prof float64
		if d := us.Proficiency.Rank() - r.MinProficiency.Rank(); d >= 0 {
			prof = 30 + 10*float64(d)
		} else {
			prof = math.Max(0, 20-10*float64(-d))
		}

		var exp float64
		if d := us.Years - r.MinYears; d >= 0 {
			exp = 30 + math.Min(10, float64(d)/2)
		} else {
			exp = math.Max(0, 15-5*float64(-d))
		}

		reqScore := prof + exp
		// keyed by position so repeated skills keep separate entries
		details[fmt.Sprintf("requirement_%d_skill_%d", i, r.SkillID)] = reqScore
		sum += reqScore
	}

	coverage := float64(matched) / float64(len(reqs))
	details["coverage"] = coverage
	details["matched_requirements"] = float64(matched)

	if matched == 0 {
		return 0, details
	}

	score := sum / float64(matched)
	switch {
	case coverage > 0.7:
		score += 10
	case coverage > 0.4:
		score += 5
	}
	return clamp(score, 0, 100), details
}

// investmentScore is only meaningful for investors scored against
// investment-seeking projects; every other pairing is a flat zero with
// an explanatory tag, never an error.
func investmentScore(cfg Config, user *models.User, project *models.Project) (float64, map[string]float64) {
	details := make(map[string]float64)

	if user.Role != models.RoleInvestor {
		details["not_investor"] = 1
		return 0, details
	}
	if !project.SeekingInvestment {
		details["not_seeking_investment"] = 1
		return 0, details
	}

	score := 50.0
	details["base"] = 50

	capacity := cfg.CapacityMultiplier * user.TotalEarnings
	needed := project.InvestmentNeeded
	var capacityBonus float64
	switch {
	case capacity >= needed:
		capacityBonus = 30
	case capacity >= 0.5*needed:
		capacityBonus = 20
	case capacity >= 0.2*needed:
		capacityBonus = 10
	}
	score += capacityBonus
	details["capacity_bonus"] = capacityBonus

	if hasTag(user.Interests, string(project.Stage)) {
		score += 10
		details["stage_preference"] = 10
	}

	expBonus := math.Min(10, float64(max(0, user.Investments)))
	score += expBonus
	details["experience_bonus"] = expBonus

	return clamp(score, 0, 100), details
}

// stageScore compares the user's level (two levels per stage ordinal)
// against the project lifecycle stage.
func stageScore(user *models.User, project *models.Project) (float64, map[string]float64) {
	details := make(map[string]float64)

	stageOrd := project.Stage.Ordinal()
	userOrd := (user.Level + 1) / 2 // ceil(level/2)

	score := 50.0
	details["base"] = 50

	diff := userOrd - stageOrd
	var alignment float64
	switch {
	case diff == 0:
		alignment = 40
	case diff == 1 || diff == -1:
		alignment = 25
	case diff > 1:
		alignment = 15
	default:
		alignment = math.Max(5, 20-5*float64(-diff))
	}
	score += alignment
	details["alignment"] = alignment

	collabBonus := math.Min(10, float64(max(0, user.Collaborations)))
	score += collabBonus
	details["collaboration_bonus"] = collabBonus

	return clamp(score, 0, 100), details
}

// interestScore blends tag overlap with role-to-flag alignment.
func interestScore(user *models.User, project *models.Project) (float64, map[string]float64) {
	details := make(map[string]float64)

	score := 30.0
	details["base"] = 30

	if len(user.Interests) > 0 && len(project.Tags) > 0 {
		shared := overlapCount(user.Interests, project.Tags)
		denom := float64(max(len(project.Tags), len(user.Interests)))
		overlapBonus := 50 * float64(shared) / denom
		score += overlapBonus
		details["tag_overlap"] = overlapBonus
		details["shared_tags"] = float64(shared)
	}

	var roleBonus float64
	switch user.Role {
	case models.RoleFounder, models.RoleCollaborator:
		if project.OpenToCollab {
			roleBonus = 15
		}
	case models.RoleFreelancer:
		if project.SeekingTeam {
			roleBonus = 15
		}
	case models.RoleInvestor:
		if project.SeekingInvestment {
			roleBonus = 15
		}
	}
	score += roleBonus
	details["role_alignment"] = roleBonus

	return clamp(score, 0, 100), details
}

// engagementScore is project-independent: how active the user is on
// the platform overall.
func engagementScore(user *models.User) (float64, map[string]float64) {
	details := make(map[string]float64)

	score := 50.0
	details["base"] = 50

	activity := max(0, user.ProjectsCreated) + max(0, user.Collaborations) + max(0, user.Investments)
	activityBonus := math.Min(40, 5*float64(activity))
	score += activityBonus
	details["activity_bonus"] = activityBonus

	levelBonus := clamp(2*float64(user.Level-1), 0, 10)
	score += levelBonus
	details["level_bonus"] = levelBonus

	return clamp(score, 0, 100), details
}

func hasTag(tags []string, want string) bool {
	want = strings.ToLower(strings.TrimSpace(want))
	if want == "" {
		return false
	}
	for _, t := range tags {
		if strings.ToLower(strings.TrimSpace(t)) == want {
			return true
		}
	}
	return false
}

func overlapCount(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	seen := make(map[string]struct{}, len(b))
	n := 0
	for _, t := range b {
		k := strings.ToLower(strings.TrimSpace(t))
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := set[k]; ok {
			n++
		}
	}
	return n
}
