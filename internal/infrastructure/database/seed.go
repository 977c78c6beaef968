package database

import (
	_ "embed"
	"fmt"

	"sagra/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed/phases.yaml
var phasesYAML []byte

type phaseSeed struct {
	Phases []entity.PhaseCatalog `yaml:"phases"`
}

// DefaultPhaseCatalog returns the bundled rehabilitation protocol in catalog order.
func DefaultPhaseCatalog() ([]entity.PhaseCatalog, error) {
	var seed phaseSeed
	if err := yaml.Unmarshal(phasesYAML, &seed); err != nil {
		return nil, fmt.Errorf("parse phase seed: %w", err)
	}
	return seed.Phases, nil
}

// SeedPhases fills fases_reabilitacao from the bundled catalog when the table is empty.
// It returns the number of rows inserted.
func SeedPhases(db *gorm.DB, log *logrus.Logger) (int, error) {
	var count int64
	if err := db.Model(&entity.PhaseCatalog{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count phases: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	phases, err := DefaultPhaseCatalog()
	if err != nil {
		return 0, err
	}
	if err := db.Create(&phases).Error; err != nil {
		return 0, fmt.Errorf("seed phases: %w", err)
	}

	log.Infof("Seeded %d rehabilitation phases", len(phases))
	return len(phases), nil
}
