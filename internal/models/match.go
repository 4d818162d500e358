package models

import "time"

type MatchType string

const (
	MatchTypeSkill      MatchType = "skill_based"
	MatchTypeInvestment MatchType = "investment_based"
	MatchTypeStage      MatchType = "stage_based"
	MatchTypeInterest   MatchType = "interest_based"
)

type MatchAction string

const (
	ActionViewed    MatchAction = "viewed"
	ActionApplied   MatchAction = "applied"
	ActionInvested  MatchAction = "invested"
	ActionDismissed MatchAction = "dismissed"
	ActionNone      MatchAction = "none"
)

func (a MatchAction) Valid() bool {
	switch a {
	case ActionViewed, ActionApplied, ActionInvested, ActionDismissed, ActionNone:
		return true
	default:
		return false
	}
}

// MatchScore is the ephemeral result of scoring one user against one
// project. It is never stored directly; recording goes through the
// history pipeline as a MatchHistory document.
type MatchScore struct {
	UserID          string             `json:"user_id"`
	ProjectID       string             `json:"project_id"`
	SkillScore      int                `json:"skill_score"`
	InvestmentScore int                `json:"investment_score"`
	StageScore      int                `json:"stage_score"`
	InterestScore   int                `json:"interest_score"`
	EngagementScore int                `json:"engagement_score"`
	TotalScore      int                `json:"total_score"`
	Details         map[string]float64 `json:"details"`
	MatchType       MatchType          `json:"match_type"`
	Recommendation  string             `json:"recommendation"`
}

// MatchHistory is the append-only analytics record. Entries are never
// updated or deleted once written.
type MatchHistory struct {
	ID        string             `bson:"_id" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	ProjectID string             `bson:"project_id" json:"project_id"`
	MatchType MatchType          `bson:"match_type" json:"match_type"`
	Score     int                `bson:"score" json:"score"`
	Details   map[string]float64 `bson:"details" json:"details"`
	Action    MatchAction        `bson:"action" json:"action"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	ActionAt  *time.Time         `bson:"action_at,omitempty" json:"action_at,omitempty"`
}
