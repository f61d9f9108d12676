package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/crpix-studio-backend/errs"
	"github.com/rpupo63/crpix-studio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type CategoryStore interface {
	FindAll(ctx context.Context) ([]*models.Category, error)
	Names(ctx context.Context) ([]string, error)
	Add(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryService struct {
	store  CategoryStore
	logger zerolog.Logger
}

func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{
		store:  store,
		logger: log.With().Str("service", "categories").Logger(),
	}
}

// List returns every category, newest first.
func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "categories", err).WithHint("Failed to load categories")
	}
	return categories, nil
}

// Names returns only the category names, newest first.
func (s *CategoryService) Names(ctx context.Context) ([]string, error) {
	names, err := s.store.Names(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "categories", err).WithHint("Failed to load categories")
	}
	return names, nil
}

// Create adds a category. The name is trimmed and must not be empty;
// names are unique in the store.
func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.NewMissingRequiredFieldError("name").WithHint("Category name is required")
	}

	category := &models.Category{Name: name}
	if err := s.store.Add(ctx, category); err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to add category")
		return nil, errs.NewDatabaseError("add", "category", err).
			WithHint("Failed to add category. Name might be duplicate.")
	}

	s.logger.Info().Str("name", name).Str("id", category.ID.String()).Msg("category added")
	return category, nil
}

// Delete removes a category row. Projects and videos that carry its name
// keep it.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("id", id.String()).Msg("failed to delete category")
		return errs.NewDatabaseError("delete", "category", err).WithHint("Failed to delete category")
	}
	return nil
}
