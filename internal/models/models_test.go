package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProficiencyOrder(t *testing.T) {
	ordered := []Proficiency{
		ProficiencyBeginner,
		ProficiencyIntermediate,
		ProficiencyAdvanced,
		ProficiencyExpert,
	}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, ordered[i-1].Rank(), ordered[i].Rank())
	}
	assert.Equal(t, 0, Proficiency("wizard").Rank())
}

func TestStageOrdinal(t *testing.T) {
	assert.Equal(t, 1, StageIdea.Ordinal())
	assert.Equal(t, 2, StagePrototype.Ordinal())
	assert.Equal(t, 3, StageRunning.Ordinal())
	assert.Equal(t, 4, StageScaling.Ordinal())
	assert.Equal(t, 0, ProjectStage("pivot").Ordinal())
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleFounder, RoleFreelancer, RoleInvestor, RoleCollaborator} {
		assert.True(t, r.Valid())
	}
	assert.False(t, Role("admin").Valid())
}

func TestMatchActionValid(t *testing.T) {
	for _, a := range []MatchAction{ActionViewed, ActionApplied, ActionInvested, ActionDismissed, ActionNone} {
		assert.True(t, a.Valid())
	}
	assert.False(t, MatchAction("bookmarked").Valid())
}
