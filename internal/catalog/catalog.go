package catalog

import (
	"github.com/flow-dev/flow/internal/config"
	"github.com/flow-dev/flow/internal/model"
)

// Service provides in-memory lookup over the known category vocabulary.
type Service struct {
	categories []model.Category
	byName     map[model.Category]bool
}

// NewService creates a Service from a slice of categories, dropping
// duplicates while keeping first-appearance order.
func NewService(categories []model.Category) *Service {
	s := &Service{byName: make(map[model.Category]bool, len(categories))}
	for _, c := range categories {
		if s.byName[c] {
			continue
		}
		s.byName[c] = true
		s.categories = append(s.categories, c)
	}
	return s
}

// FromConfig builds the catalog for a notes repo: the structural categories
// every parser produces, plus whatever the keyword rules map to.
func FromConfig(cfg *config.Config) *Service {
	categories := []model.Category{
		model.CategoryGeneral,
		model.CategoryLent,
		model.CategoryOthers,
		model.CategoryMoneyIn,
	}
	for _, r := range cfg.Rules {
		categories = append(categories, model.Category(r.Category))
	}
	return NewService(categories)
}

// All returns all categories.
func (s *Service) All() []model.Category {
	return s.categories
}

// Exists reports whether a category is part of the vocabulary.
func (s *Service) Exists(c model.Category) bool {
	return s.byName[c]
}

// ByDirection returns all categories with the given direction.
func (s *Service) ByDirection(d model.Direction) []model.Category {
	var result []model.Category
	for _, c := range s.categories {
		if model.DirectionFor(c) == d {
			result = append(result, c)
		}
	}
	return result
}
