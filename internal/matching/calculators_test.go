package matching

import (
	"testing"

	"github.com/launchpool/launchpool/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillScore(t *testing.T) {
	t.Run("no skills yields zero with empty details", func(t *testing.T) {
		score, details := skillScore(nil, []models.TeamRequirement{{SkillID: 1}})
		assert.Equal(t, 0.0, score)
		assert.Empty(t, details)
	})

	t.Run("no requirements yields neutral 50", func(t *testing.T) {
		score, details := skillScore([]models.UserSkill{{SkillID: 1, Proficiency: models.ProficiencyBeginner}}, nil)
		assert.Equal(t, 50.0, score)
		assert.Equal(t, 1.0, details["no_requirements"])
	})

	t.Run("surplus proficiency and experience with full coverage", func(t *testing.T) {
		skills := []models.UserSkill{
			{SkillID: 7, Proficiency: models.ProficiencyAdvanced, Years: 5},
		}
		reqs := []models.TeamRequirement{
			{SkillID: 7, MinProficiency: models.ProficiencyIntermediate, MinYears: 2, Needed: 1},
		}

		score, details := skillScore(skills, reqs)

		// proficiency 30 + 10 surplus, experience 30 + min(10, 3/2)
		assert.Equal(t, 71.5, details["requirement_0_skill_7"])
		assert.Equal(t, 1.0, details["coverage"])
		// full coverage adds 10
		assert.Equal(t, 81.5, score)
	})

	t.Run("deficits decay toward zero without going negative", func(t *testing.T) {
		skills := []models.UserSkill{
			{SkillID: 3, Proficiency: models.ProficiencyBeginner, Years: 0},
		}
		reqs := []models.TeamRequirement{
			{SkillID: 3, MinProficiency: models.ProficiencyExpert, MinYears: 10, Needed: 2},
		}

		score, details := skillScore(skills, reqs)

		// proficiency max(0, 20-30) = 0, experience max(0, 15-50) = 0
		assert.Equal(t, 0.0, details["requirement_0_skill_3"])
		assert.GreaterOrEqual(t, score, 0.0)
	})

	t.Run("unmatched requirements earn no skill or coverage credit", func(t *testing.T) {
		skills := []models.UserSkill{
			{SkillID: 1, Proficiency: models.ProficiencyExpert, Years: 10},
		}
		reqs := []models.TeamRequirement{
			{SkillID: 1, MinProficiency: models.ProficiencyBeginner, MinYears: 1},
			{SkillID: 2, MinProficiency: models.ProficiencyBeginner, MinYears: 1},
			{SkillID: 3, MinProficiency: models.ProficiencyBeginner, MinYears: 1},
		}

		score, details := skillScore(skills, reqs)

		assert.Equal(t, 1.0, details["matched_requirements"])
		assert.InDelta(t, 1.0/3.0, details["coverage"], 1e-9)
		_, hasUnmatched := details["requirement_1_skill_2"]
		assert.False(t, hasUnmatched)
		// one req at 30+30+min(10,4.5)=69.5? proficiency surplus 3 -> 60, experience surplus 9 -> 34.5
		assert.InDelta(t, 94.5, score, 1e-9) // no coverage bonus at 1/3
	})

	t.Run("repeated skill keeps a detail entry per requirement", func(t *testing.T) {
		skills := []models.UserSkill{
			{SkillID: 7, Proficiency: models.ProficiencyAdvanced, Years: 5},
		}
		reqs := []models.TeamRequirement{
			{SkillID: 7, MinProficiency: models.ProficiencyIntermediate, MinYears: 2},
			{SkillID: 7, MinProficiency: models.ProficiencyExpert, MinYears: 8},
		}

		_, details := skillScore(skills, reqs)

		assert.Equal(t, 2.0, details["matched_requirements"])
		assert.Equal(t, 71.5, details["requirement_0_skill_7"])
		// proficiency max(0, 20-10) = 10, experience max(0, 15-15) = 0
		assert.Equal(t, 10.0, details["requirement_1_skill_7"])
	})

	t.Run("coverage bonus tiers", func(t *testing.T) {
		mkSkills := func(ids ...int64) []models.UserSkill {
			out := make([]models.UserSkill, 0, len(ids))
			for _, id := range ids {
				out = append(out, models.UserSkill{SkillID: id, Proficiency: models.ProficiencyBeginner, Years: 1})
			}
			return out
		}
		mkReqs := func(n int64) []models.TeamRequirement {
			out := make([]models.TeamRequirement, 0, n)
			for id := int64(1); id <= n; id++ {
				out = append(out, models.TeamRequirement{SkillID: id, MinProficiency: models.ProficiencyBeginner, MinYears: 1})
			}
			return out
		}

		// each matched requirement scores 30+30=60
		half, _ := skillScore(mkSkills(1), mkReqs(2)) // 50% coverage -> +5
		assert.Equal(t, 65.0, half)

		full, _ := skillScore(mkSkills(1, 2), mkReqs(2)) // 100% -> +10
		assert.Equal(t, 70.0, full)

		low, _ := skillScore(mkSkills(1), mkReqs(4)) // 25% -> +0
		assert.Equal(t, 60.0, low)
	})

	t.Run("never exceeds 100", func(t *testing.T) {
		skills := []models.UserSkill{
			{SkillID: 1, Proficiency: models.ProficiencyExpert, Years: 40},
		}
		reqs := []models.TeamRequirement{
			{SkillID: 1, MinProficiency: models.ProficiencyBeginner, MinYears: 0},
		}
		score, _ := skillScore(skills, reqs)
		assert.LessOrEqual(t, score, 100.0)
	})
}

func TestInvestmentScore(t *testing.T) {
	cfg := DefaultConfig()

	project := &models.Project{
		ID:                "p1",
		Stage:             models.StagePrototype,
		SeekingInvestment: true,
		InvestmentNeeded:  100000,
	}

	t.Run("non investor is zero with marker", func(t *testing.T) {
		user := &models.User{Role: models.RoleFreelancer, TotalEarnings: 1e9}
		score, details := investmentScore(cfg, user, project)
		assert.Equal(t, 0.0, score)
		assert.Equal(t, 1.0, details["not_investor"])
	})

	t.Run("project not seeking investment is zero with marker", func(t *testing.T) {
		user := &models.User{Role: models.RoleInvestor, TotalEarnings: 1e9}
		score, details := investmentScore(cfg, user, &models.Project{SeekingInvestment: false})
		assert.Equal(t, 0.0, score)
		assert.Equal(t, 1.0, details["not_seeking_investment"])
	})

	t.Run("capacity tiers", func(t *testing.T) {
		tests := []struct {
			name     string
			earnings float64
			want     float64
		}{
			{"full capacity", 50000, 30},  // 2x = 100k >= 100k
			{"half capacity", 25000, 20},  // 50k >= 50% of 100k
			{"fifth capacity", 10000, 10}, // 20k >= 20% of 100k
			{"no capacity", 1000, 0},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				user := &models.User{Role: models.RoleInvestor, TotalEarnings: tt.earnings}
				_, details := investmentScore(cfg, user, project)
				assert.Equal(t, tt.want, details["capacity_bonus"])
			})
		}
	})

	t.Run("stage preference and experience bonuses", func(t *testing.T) {
		user := &models.User{
			Role:          models.RoleInvestor,
			TotalEarnings: 50000,
			Interests:     []string{"fintech", "Prototype"},
			Investments:   25,
		}
		score, details := investmentScore(cfg, user, project)
		assert.Equal(t, 10.0, details["stage_preference"])
		assert.Equal(t, 10.0, details["experience_bonus"]) // capped at 10
		assert.Equal(t, 100.0, score)                      // 50+30+10+10
	})

	t.Run("capacity multiplier is configurable", func(t *testing.T) {
		user := &models.User{Role: models.RoleInvestor, TotalEarnings: 50000}
		loose := Config{Weights: DefaultWeights(), CapacityMultiplier: 10}
		_, details := investmentScore(loose, user, &models.Project{SeekingInvestment: true, InvestmentNeeded: 400000})
		assert.Equal(t, 30.0, details["capacity_bonus"]) // 500k >= 400k
	})
}

func TestStageScore(t *testing.T) {
	tests := []struct {
		name          string
		level         int
		collabs       int
		stage         models.ProjectStage
		wantAlignment float64
	}{
		{"exact ordinal match", 5, 0, models.StageRunning, 40},  // ceil(5/2)=3 vs 3
		{"off by one ahead", 7, 0, models.StageRunning, 25},     // 4 vs 3
		{"off by one behind", 3, 0, models.StageRunning, 25},    // 2 vs 3
		{"well past the stage", 8, 0, models.StageIdea, 15},     // 4 vs 1
		{"two levels behind", 3, 0, models.StageScaling, 10},    // 2 vs 4, max(5, 20-10)
		{"three levels behind", 1, 0, models.StageScaling, 5},   // 1 vs 4, max(5, 20-15)
		{"exact match with collabs", 5, 4, models.StageRunning, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &models.User{Level: tt.level, Collaborations: tt.collabs}
			score, details := stageScore(user, &models.Project{Stage: tt.stage})
			assert.Equal(t, tt.wantAlignment, details["alignment"])
			want := clamp(50+tt.wantAlignment+float64(min(10, tt.collabs)), 0, 100)
			assert.Equal(t, want, score)
		})
	}
}

func TestInterestScore(t *testing.T) {
	t.Run("base only when tags empty", func(t *testing.T) {
		score, _ := interestScore(&models.User{}, &models.Project{})
		assert.Equal(t, 30.0, score)
	})

	t.Run("tag overlap scales with larger set", func(t *testing.T) {
		user := &models.User{Interests: []string{"ai", "saas"}}
		project := &models.Project{Tags: []string{"AI", "fintech", "devtools", "b2b"}}
		score, details := interestScore(user, project)
		assert.Equal(t, 1.0, details["shared_tags"])
		assert.InDelta(t, 12.5, details["tag_overlap"], 1e-9) // 50 * 1/4
		assert.InDelta(t, 42.5, score, 1e-9)
	})

	t.Run("role alignment bonuses", func(t *testing.T) {
		tests := []struct {
			role    models.Role
			project models.Project
			want    float64
		}{
			{models.RoleFounder, models.Project{OpenToCollab: true}, 15},
			{models.RoleCollaborator, models.Project{OpenToCollab: true}, 15},
			{models.RoleFreelancer, models.Project{SeekingTeam: true}, 15},
			{models.RoleInvestor, models.Project{SeekingInvestment: true}, 15},
			{models.RoleFreelancer, models.Project{OpenToCollab: true}, 0},
		}
		for _, tt := range tests {
			_, details := interestScore(&models.User{Role: tt.role}, &tt.project)
			assert.Equal(t, tt.want, details["role_alignment"], "role %s", tt.role)
		}
	})
}

func TestEngagementScore(t *testing.T) {
	t.Run("baseline user", func(t *testing.T) {
		score, _ := engagementScore(&models.User{Level: 1})
		assert.Equal(t, 50.0, score)
	})

	t.Run("level below one never subtracts", func(t *testing.T) {
		score, details := engagementScore(&models.User{Level: 0})
		assert.Equal(t, 0.0, details["level_bonus"])
		assert.Equal(t, 50.0, score)
	})

	t.Run("activity capped at 40", func(t *testing.T) {
		user := &models.User{Level: 1, ProjectsCreated: 10, Collaborations: 10, Investments: 10}
		score, details := engagementScore(user)
		assert.Equal(t, 40.0, details["activity_bonus"])
		assert.Equal(t, 90.0, score)
	})

	t.Run("fully maxed clamps at 100", func(t *testing.T) {
		user := &models.User{Level: 20, ProjectsCreated: 50, Collaborations: 50, Investments: 50}
		score, _ := engagementScore(user)
		assert.Equal(t, 100.0, score)
	})
}

func TestSubScoresStayInRange(t *testing.T) {
	cfg := DefaultConfig()
	users := []*models.User{
		{},
		{Role: models.RoleInvestor, Level: -3, TotalEarnings: -100, Investments: -5, Collaborations: -1},
		{Role: models.RoleFreelancer, Level: 99, ProjectsCreated: 1000,
			Skills:    []models.UserSkill{{SkillID: 1, Proficiency: models.ProficiencyExpert, Years: 50}},
			Interests: []string{"a", "b", "c"}},
	}
	projects := []*models.Project{
		{},
		{Stage: models.StageScaling, SeekingInvestment: true, SeekingTeam: true, OpenToCollab: true,
			InvestmentNeeded: -500,
			Tags:             []string{"a", "b", "c"},
			Requirements:     []models.TeamRequirement{{SkillID: 1, MinProficiency: models.ProficiencyBeginner}}},
	}

	for _, u := range users {
		for _, p := range projects {
			for name, fn := range map[string]func() (float64, map[string]float64){
				"skill":      func() (float64, map[string]float64) { return skillScore(u.Skills, p.Requirements) },
				"investment": func() (float64, map[string]float64) { return investmentScore(cfg, u, p) },
				"stage":      func() (float64, map[string]float64) { return stageScore(u, p) },
				"interest":   func() (float64, map[string]float64) { return interestScore(u, p) },
				"engagement": func() (float64, map[string]float64) { return engagementScore(u) },
			} {
				score, _ := fn()
				require.GreaterOrEqual(t, score, 0.0, "%s went negative", name)
				require.LessOrEqual(t, score, 100.0, "%s exceeded 100", name)
			}
		}
	}
}
