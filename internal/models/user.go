package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type Role string

const (
	RoleFounder      Role = "founder"
	RoleFreelancer   Role = "freelancer"
	RoleInvestor     Role = "investor"
	RoleCollaborator Role = "collaborator"
)

func (r Role) Valid() bool {
	switch r {
	case RoleFounder, RoleFreelancer, RoleInvestor, RoleCollaborator:
		return true
	default:
		return false
	}
}

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

// Rank maps proficiency to its position in the strict order
// beginner < intermediate < advanced < expert. Unknown values rank 0.
func (p Proficiency) Rank() int {
	switch p {
	case ProficiencyBeginner:
		return 1
	case ProficiencyIntermediate:
		return 2
	case ProficiencyAdvanced:
		return 3
	case ProficiencyExpert:
		return 4
	default:
		return 0
	}
}

// User is a read-only snapshot; ownership and mutation live in the
// account/profile services, the engine never writes users.
type User struct {
	ID              string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Role            Role           `gorm:"column:role;type:text" json:"role"`
	Level           int            `gorm:"column:level" json:"level"`
	EngagementScore int            `gorm:"column:engagement_score" json:"engagement_score"`
	TotalEarnings   float64        `gorm:"column:total_earnings" json:"total_earnings"`
	ProjectsCreated int            `gorm:"column:projects_created" json:"projects_created"`
	Collaborations  int            `gorm:"column:collaborations" json:"collaborations"`
	Investments     int            `gorm:"column:investments" json:"investments"`
	Interests       pq.StringArray `gorm:"column:interests;type:text[]" json:"interests"`
	Preferences     datatypes.JSON `gorm:"column:preferences;type:jsonb" json:"preferences"`
	Skills          []UserSkill    `gorm:"foreignKey:UserID;references:ID" json:"skills"`
	CreatedAt       time.Time      `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (User) TableName() string { return "users" }

type UserSkill struct {
	ID          int64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID      string      `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	SkillID     int64       `gorm:"column:skill_id;index" json:"skill_id"`
	Proficiency Proficiency `gorm:"column:proficiency;type:text" json:"proficiency"`
	Years       int         `gorm:"column:years" json:"years"`
	HourlyRate  *float64    `gorm:"column:hourly_rate" json:"hourly_rate,omitempty"`
}

func (UserSkill) TableName() string { return "user_skills" }
