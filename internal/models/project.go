package models

import (
	"time"

	"github.com/lib/pq"
)

type ProjectStage string

const (
	StageIdea      ProjectStage = "idea"
	StagePrototype ProjectStage = "prototype"
	StageRunning   ProjectStage = "running"
	StageScaling   ProjectStage = "scaling"
)

// Ordinal maps stage to 1..4 (idea first). Unknown stages map to 0.
func (s ProjectStage) Ordinal() int {
	switch s {
	case StageIdea:
		return 1
	case StagePrototype:
		return 2
	case StageRunning:
		return 3
	case StageScaling:
		return 4
	default:
		return 0
	}
}

const ProjectStatusActive = "active"

// Project is a read-only snapshot, owned by the project CRUD service.
type Project struct {
	ID                string            `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OwnerID           string            `gorm:"column:owner_id;type:uuid;index" json:"owner_id"`
	Name              string            `gorm:"column:name;type:text" json:"name"`
	Stage             ProjectStage      `gorm:"column:stage;type:text" json:"stage"`
	Status            string            `gorm:"column:status;type:text;index" json:"status"`
	SeekingTeam       bool              `gorm:"column:seeking_team" json:"seeking_team"`
	SeekingInvestment bool              `gorm:"column:seeking_investment" json:"seeking_investment"`
	OpenToCollab      bool              `gorm:"column:open_to_collab" json:"open_to_collab"`
	Tags              pq.StringArray    `gorm:"column:tags;type:text[]" json:"tags"`
	InvestmentNeeded  float64           `gorm:"column:investment_needed" json:"investment_needed"`
	Requirements      []TeamRequirement `gorm:"foreignKey:ProjectID;references:ID" json:"requirements"`
	CreatedAt         time.Time         `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (Project) TableName() string { return "projects" }

type TeamRequirement struct {
	ID             int64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProjectID      string      `gorm:"column:project_id;type:uuid;index" json:"project_id"`
	SkillID        int64       `gorm:"column:skill_id;index" json:"skill_id"`
	MinProficiency Proficiency `gorm:"column:min_proficiency;type:text" json:"min_proficiency"`
	MinYears       int         `gorm:"column:min_years" json:"min_years"`
	Needed         int         `gorm:"column:needed" json:"needed"`
	Filled         int         `gorm:"column:filled" json:"filled"`
}

func (TeamRequirement) TableName() string { return "team_requirements" }
