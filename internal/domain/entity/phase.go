package entity

// PhaseCatalog is one row of the rehabilitation protocol reference table.
// The descriptor columns keep the free-text format they are seeded with.
type PhaseCatalog struct {
	ID                  int    `gorm:"column:id;primaryKey" json:"id" yaml:"id"`
	Label               string `gorm:"column:fase;not null" json:"label" yaml:"fase"`
	ApproximatePeriod   string `gorm:"column:periodo_aproximado" json:"approximate_period" yaml:"periodo_aproximado"`
	Activities          string `gorm:"column:atividades_liberadas" json:"activities" yaml:"atividades_liberadas"`
	SpecificTests       string `gorm:"column:testes_especificos" json:"specific_tests" yaml:"testes_especificos"`
	Treatments          string `gorm:"column:tratamentos" json:"treatments" yaml:"tratamentos"`
	PhysicalPreparation string `gorm:"column:preparacao_fisica" json:"physical_preparation" yaml:"preparacao_fisica"`
	RugbyTechniques     string `gorm:"column:tecnicas_rugby" json:"rugby_techniques" yaml:"tecnicas_rugby"`
}

func (PhaseCatalog) TableName() string {
	return "fases_reabilitacao"
}

// DischargeLabel names the terminal phase, pinned to a fixed offset from surgery.
const DischargeLabel = "Alta"

// NoTests is the placeholder used in the catalog when a phase has no specific tests.
const NoTests = "-"

// ExerciseStatus tags a physical-preparation exercise.
type ExerciseStatus string

const (
	ExerciseComplete    ExerciseStatus = "complete"
	ExerciseRestricted  ExerciseStatus = "restricted"
	ExerciseProgressing ExerciseStatus = "progressing"
	ExerciseUnspecified ExerciseStatus = "unspecified"
)

type Exercise struct {
	Name   string         `json:"name"`
	Status ExerciseStatus `json:"status"`
}

// TechniqueClearance is the return-to-play level of a rugby technique.
type TechniqueClearance int

const (
	TechniqueForbidden TechniqueClearance = 1
	TechniqueModerate  TechniqueClearance = 2
	TechniqueCleared   TechniqueClearance = 3
)

func (c TechniqueClearance) String() string {
	switch c {
	case TechniqueForbidden:
		return "forbidden"
	case TechniqueModerate:
		return "moderate"
	case TechniqueCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// TechniqueCategory groups rugby techniques for display.
type TechniqueCategory string

const (
	CategoryTackle   TechniqueCategory = "Tackle"
	CategoryPass     TechniqueCategory = "Passe"
	CategoryScrum    TechniqueCategory = "Scrum"
	CategoryRuckMaul TechniqueCategory = "Ruck/Maul"
	CategoryTraining TechniqueCategory = "Treinamento"
	CategoryOther    TechniqueCategory = "Outros"
)

// TechniqueCategories lists categories in display order.
var TechniqueCategories = []TechniqueCategory{
	CategoryTackle,
	CategoryPass,
	CategoryScrum,
	CategoryRuckMaul,
	CategoryTraining,
	CategoryOther,
}

type Technique struct {
	Name      string             `json:"name"`
	Clearance TechniqueClearance `json:"clearance"`
	Category  TechniqueCategory  `json:"category"`
}

// Phase is a catalog row with its descriptors parsed into typed values.
type Phase struct {
	ID                int
	Label             string
	ApproximatePeriod string
	Days              int
	Activities        string
	SpecificTests     string
	Treatments        []string
	Exercises         []Exercise
	Techniques        []Technique
}

func (p *Phase) IsDischarge() bool {
	return isDischargeLabel(p.Label)
}
