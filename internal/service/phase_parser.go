package service

import (
	"strconv"
	"strings"

	"sagra/internal/domain/entity"
)

const (
	exerciseTagComplete    = "(Completo)"
	exerciseTagRestricted  = "(Restrição)"
	exerciseTagProgressing = "Progressão"
)

// ParsePhase turns a catalog row into a phase with typed descriptors.
// This is the only place the free-text catalog columns are interpreted.
func ParsePhase(row entity.PhaseCatalog) (entity.Phase, error) {
	days, err := ParsePeriodDays(row.ApproximatePeriod)
	if err != nil {
		return entity.Phase{}, err
	}

	techniques, err := ParseTechniques(row.RugbyTechniques)
	if err != nil {
		return entity.Phase{}, err
	}

	return entity.Phase{
		ID:                row.ID,
		Label:             row.Label,
		ApproximatePeriod: row.ApproximatePeriod,
		Days:              days,
		Activities:        row.Activities,
		SpecificTests:     row.SpecificTests,
		Treatments:        SplitList(row.Treatments),
		Exercises:         ParseExercises(row.PhysicalPreparation),
		Techniques:        techniques,
	}, nil
}

// ParsePhases parses a whole catalog, keeping its order.
func ParsePhases(rows []entity.PhaseCatalog) ([]entity.Phase, error) {
	phases := make([]entity.Phase, 0, len(rows))
	for _, row := range rows {
		phase, err := ParsePhase(row)
		if err != nil {
			return nil, err
		}
		phases = append(phases, phase)
	}
	return phases, nil
}

// SplitList splits a comma separated column, trimming items and dropping empties.
func SplitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ParseExercises reads "Agachamento (Completo), Corrida (Restrição)" style lists.
func ParseExercises(s string) []entity.Exercise {
	var exercises []entity.Exercise
	for _, item := range SplitList(s) {
		exercises = append(exercises, parseExercise(item))
	}
	return exercises
}

func parseExercise(item string) entity.Exercise {
	status := entity.ExerciseUnspecified
	switch {
	case strings.Contains(item, exerciseTagComplete):
		status = entity.ExerciseComplete
	case strings.Contains(item, exerciseTagRestricted):
		status = entity.ExerciseRestricted
	case strings.Contains(item, exerciseTagProgressing):
		status = entity.ExerciseProgressing
	}

	name := item
	if status != entity.ExerciseUnspecified && strings.HasSuffix(item, ")") {
		if idx := strings.LastIndex(item, "("); idx > 0 {
			name = strings.TrimSpace(item[:idx])
		}
	}

	return entity.Exercise{Name: name, Status: status}
}

// ParseTechniques reads "Tackle frontal:1, Passe curto:3" style lists.
func ParseTechniques(s string) ([]entity.Technique, error) {
	var techniques []entity.Technique
	for _, item := range SplitList(s) {
		parts := strings.Split(item, ":")
		if len(parts) != 2 {
			return nil, &TechniqueFormatError{Entry: item}
		}

		name := strings.TrimSpace(parts[0])
		level, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || name == "" {
			return nil, &TechniqueFormatError{Entry: item}
		}

		clearance := entity.TechniqueClearance(level)
		switch clearance {
		case entity.TechniqueForbidden, entity.TechniqueModerate, entity.TechniqueCleared:
		default:
			return nil, &TechniqueFormatError{Entry: item}
		}

		techniques = append(techniques, entity.Technique{
			Name:      name,
			Clearance: clearance,
			Category:  CategorizeTechnique(name),
		})
	}
	return techniques, nil
}

// CategorizeTechnique maps a technique name to its display group.
func CategorizeTechnique(name string) entity.TechniqueCategory {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(name, "Tackle"):
		return entity.CategoryTackle
	case strings.Contains(name, "Passe"):
		return entity.CategoryPass
	case strings.Contains(name, "Scrum"):
		return entity.CategoryScrum
	case strings.Contains(name, "Ruck"), strings.Contains(name, "Maul"):
		return entity.CategoryRuckMaul
	case strings.Contains(lower, "treinamento"), strings.Contains(lower, "treino"):
		return entity.CategoryTraining
	default:
		return entity.CategoryOther
	}
}
