package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/authz"
	"littlelemon/internal/models"
	"littlelemon/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
)

// CategoryService handles business logic related to menu categories.
type CategoryService struct {
	repo     repositories.CategoryRepository
	validate *validator.Validate
}

func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo, validate: newValidator()}
}

// CategoryInput carries the writable category fields. Nil fields are absent from the request.
type CategoryInput struct {
	Slug  *string `json:"slug"`
	Title *string `json:"title"`
}

func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.GetAll(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Category not found.")
	}
	return category, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, caller authz.Caller, in CategoryInput) (*models.Category, error) {
	if err := authz.Authorize(caller, authz.ActionCatalogWrite); err != nil {
		return nil, err
	}
	category := &models.Category{}
	if err := s.apply(category, in, false); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	log.Printf("Category %q (ID: %d) created by %s", category.Title, category.ID, caller.Username)
	return category, nil
}

// UpdateCategory replaces (partial=false) or patches (partial=true) a category.
func (s *CategoryService) UpdateCategory(ctx context.Context, caller authz.Caller, id uint, in CategoryInput, partial bool) (*models.Category, error) {
	if err := authz.Authorize(caller, authz.ActionCatalogWrite); err != nil {
		return nil, err
	}
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(category, in, partial); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, notFoundOr(err, "Category not found.")
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, caller authz.Caller, id uint) error {
	if err := authz.Authorize(caller, authz.ActionCatalogWrite); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrCategoryInUse) {
			return apperrors.Wrap(apperrors.KindValidation, "Cannot delete a category that still has menu items.", err)
		}
		return notFoundOr(err, "Category not found.")
	}
	log.Printf("Category %d deleted by %s", id, caller.Username)
	return nil
}

func (s *CategoryService) apply(category *models.Category, in CategoryInput, partial bool) error {
	fields := make(map[string]string)
	if in.Title == nil && !partial {
		fields["title"] = "This field is required."
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if err := s.validate.Var(title, "required,max=255"); err != nil {
			fields["title"] = "Ensure this field is not blank and has no more than 255 characters."
		}
		category.Title = title
	}
	if in.Slug != nil {
		if !slug.IsSlug(*in.Slug) {
			fields["slug"] = "Enter a valid slug consisting of letters, numbers, underscores or hyphens."
		}
		category.Slug = *in.Slug
	} else if category.Slug == "" {
		category.Slug = slug.Make(category.Title)
	}
	if len(fields) > 0 {
		return apperrors.InvalidFields(fields)
	}
	return nil
}
