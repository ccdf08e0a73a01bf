package services_test

import (
	"context"
	"fmt"
	"testing"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/authz"
	"littlelemon/internal/models"
	"littlelemon/internal/repositories"
	"littlelemon/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }
func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCategoryService_CreateCategory_DerivesSlug(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	categoryService := services.NewCategoryService(repo)

	repo.On("Create", ctx, mock.MatchedBy(func(c *models.Category) bool {
		return c.Title == "Main Courses" && c.Slug == "main-courses"
	})).Return(nil).Once()

	category, err := categoryService.CreateCategory(ctx, managerCaller(), services.CategoryInput{Title: strPtr("Main Courses")})
	require.NoError(t, err)
	assert.Equal(t, "main-courses", category.Slug)
	repo.AssertExpectations(t)
}

func TestCategoryService_CreateCategory_Rejects(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	categoryService := services.NewCategoryService(repo)

	_, err := categoryService.CreateCategory(ctx, authz.Anonymous(), services.CategoryInput{Title: strPtr("x")})
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthenticated))

	_, err = categoryService.CreateCategory(ctx, customerCaller(), services.CategoryInput{Title: strPtr("x")})
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))

	_, err = categoryService.CreateCategory(ctx, managerCaller(), services.CategoryInput{})
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "title")

	_, err = categoryService.CreateCategory(ctx, managerCaller(), services.CategoryInput{Title: strPtr("Ok"), Slug: strPtr("not a slug!")})
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "slug")

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCategoryService_DeleteCategory_InUse(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	categoryService := services.NewCategoryService(repo)

	repo.On("Delete", ctx, uint(1)).Return(fmt.Errorf("category with ID 1: %w", repositories.ErrCategoryInUse)).Once()
	repo.On("Delete", ctx, uint(2)).Return(notFound).Once()

	err := categoryService.DeleteCategory(ctx, managerCaller(), 1)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	err = categoryService.DeleteCategory(ctx, managerCaller(), 2)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestCategoryService_UpdateCategory_Partial(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	categoryService := services.NewCategoryService(repo)

	repo.On("GetByID", ctx, uint(1)).Return(&models.Category{ID: 1, Slug: "mains", Title: "Mains"}, nil).Once()
	repo.On("Update", ctx, mock.MatchedBy(func(c *models.Category) bool {
		return c.Slug == "mains" && c.Title == "Main Dishes"
	})).Return(nil).Once()

	category, err := categoryService.UpdateCategory(ctx, managerCaller(), 1, services.CategoryInput{Title: strPtr("Main Dishes")}, true)
	require.NoError(t, err)
	assert.Equal(t, "mains", category.Slug)
	repo.AssertExpectations(t)
}

func TestMenuItemService_CreateMenuItem(t *testing.T) {
	ctx := context.Background()
	repo := new(MockMenuItemRepository)
	categories := new(MockCategoryRepository)
	menuService := services.NewMenuItemService(repo, categories)

	categories.On("GetByID", ctx, uint(1)).Return(&models.Category{ID: 1}, nil).Once()
	repo.On("Create", ctx, mock.MatchedBy(func(m *models.MenuItem) bool {
		return m.Title == "Burger" && m.Price.Equal(decimal.RequireFromString("9.5")) && m.CategoryID == 1
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.MenuItem).ID = 42
	}).Return(nil).Once()
	repo.On("GetByID", ctx, uint(42)).Return(&models.MenuItem{ID: 42, Title: "Burger"}, nil).Once()

	item, err := menuService.CreateMenuItem(ctx, managerCaller(), services.MenuItemInput{
		Title:      strPtr("Burger"),
		Price:      decPtr("9.50"),
		Inventory:  intPtr(10),
		CategoryID: uintPtr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(42), item.ID)
	repo.AssertExpectations(t)
}

func TestMenuItemService_PriceValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		price string
		ok    bool
	}{
		{"1.99", false},
		{"2", true},
		{"2.00", true},
		{"2.005", false},
		{"9999.99", true},
		{"10000", false},
	}
	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			repo := new(MockMenuItemRepository)
			categories := new(MockCategoryRepository)
			menuService := services.NewMenuItemService(repo, categories)
			categories.On("GetByID", ctx, uint(1)).Return(&models.Category{ID: 1}, nil).Maybe()
			repo.On("Create", ctx, mock.Anything).Return(nil).Maybe()
			repo.On("GetByID", ctx, mock.Anything).Return(&models.MenuItem{}, nil).Maybe()

			_, err := menuService.CreateMenuItem(ctx, managerCaller(), services.MenuItemInput{
				Title:      strPtr("Dish"),
				Price:      decPtr(tt.price),
				Inventory:  intPtr(1),
				CategoryID: uintPtr(1),
			})
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var appErr *apperrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Contains(t, appErr.Fields, "price")
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestMenuItemService_MissingCategory(t *testing.T) {
	ctx := context.Background()
	repo := new(MockMenuItemRepository)
	categories := new(MockCategoryRepository)
	menuService := services.NewMenuItemService(repo, categories)

	categories.On("GetByID", ctx, uint(9)).Return(nil, notFound).Once()

	_, err := menuService.CreateMenuItem(ctx, managerCaller(), services.MenuItemInput{
		Title:      strPtr("Dish"),
		Price:      decPtr("5"),
		Inventory:  intPtr(1),
		CategoryID: uintPtr(9),
	})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	assert.EqualError(t, err, "Category does not exist and need to be created first.")
}

func TestMenuItemService_UpdateMenuItem(t *testing.T) {
	ctx := context.Background()
	repo := new(MockMenuItemRepository)
	menuService := services.NewMenuItemService(repo, new(MockCategoryRepository))

	existing := &models.MenuItem{ID: 3, Title: "Soup", Price: decimal.NewFromInt(4), Inventory: 5, CategoryID: 1}
	repo.On("GetByID", ctx, uint(3)).Return(existing, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(m *models.MenuItem) bool {
		return m.Inventory == 0 && m.Title == "Soup" && m.CategoryID == 1
	})).Return(nil).Once()

	_, err := menuService.UpdateMenuItem(ctx, managerCaller(), 3, services.MenuItemInput{Inventory: intPtr(0)}, true)
	require.NoError(t, err)

	// A full update needs every field.
	_, err = menuService.UpdateMenuItem(ctx, managerCaller(), 3, services.MenuItemInput{Inventory: intPtr(0)}, false)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "This field is required.", appErr.Fields["title"])

	_, err = menuService.UpdateMenuItem(ctx, crewCaller(), 3, services.MenuItemInput{Inventory: intPtr(0)}, true)
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
	repo.AssertNumberOfCalls(t, "Update", 1)
}

func TestMenuItemService_DeleteMenuItem(t *testing.T) {
	ctx := context.Background()
	repo := new(MockMenuItemRepository)
	menuService := services.NewMenuItemService(repo, new(MockCategoryRepository))

	repo.On("Delete", ctx, uint(3)).Return(nil).Once()
	repo.On("Delete", ctx, uint(4)).Return(notFound).Once()

	assert.NoError(t, menuService.DeleteMenuItem(ctx, managerCaller(), 3))
	assert.True(t, apperrors.Is(menuService.DeleteMenuItem(ctx, managerCaller(), 4), apperrors.KindNotFound))
	assert.True(t, apperrors.Is(menuService.DeleteMenuItem(ctx, authz.Anonymous(), 3), apperrors.KindUnauthenticated))
}
