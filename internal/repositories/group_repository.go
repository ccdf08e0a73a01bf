package repositories

import (
	"context"

	"littlelemon/internal/models"
)

// GroupRepository manages role groups and their members.
type GroupRepository interface {
	GetByName(ctx context.Context, name string) (*models.Group, error)
	FirstOrCreate(ctx context.Context, name string) (*models.Group, error)
	Members(ctx context.Context, group *models.Group) ([]models.User, error)
	AddMember(ctx context.Context, group *models.Group, user *models.User) error
	RemoveMember(ctx context.Context, group *models.Group, user *models.User) error
}
