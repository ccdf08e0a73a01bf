package repositories

import (
	"context"
	"errors"
	"fmt"

	"littlelemon/internal/models"

	"gorm.io/gorm"
)

// GORMGroupRepository is a GORM implementation of GroupRepository.
type GORMGroupRepository struct {
	db *gorm.DB
}

func NewGORMGroupRepository(db *gorm.DB) *GORMGroupRepository {
	return &GORMGroupRepository{db: db}
}

func (r *GORMGroupRepository) GetByName(ctx context.Context, name string) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("group %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get group %s: %w", name, err)
	}
	return &group, nil
}

// FirstOrCreate returns the named group, creating it when it does not exist yet.
func (r *GORMGroupRepository) FirstOrCreate(ctx context.Context, name string) (*models.Group, error) {
	group := models.Group{Name: name}
	if err := r.db.WithContext(ctx).Where(models.Group{Name: name}).FirstOrCreate(&group).Error; err != nil {
		return nil, fmt.Errorf("failed to get or create group %s: %w", name, err)
	}
	return &group, nil
}

// Members lists the users of a group ordered by ID.
func (r *GORMGroupRepository) Members(ctx context.Context, group *models.Group) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN user_groups ON user_groups.user_id = users.id").
		Where("user_groups.group_id = ?", group.ID).
		Order("users.id").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list members of group %s: %w", group.Name, err)
	}
	return users, nil
}

func (r *GORMGroupRepository) AddMember(ctx context.Context, group *models.Group, user *models.User) error {
	if err := r.db.WithContext(ctx).Model(user).Association("Groups").Append(group); err != nil {
		return fmt.Errorf("failed to add user %d to group %s: %w", user.ID, group.Name, err)
	}
	return nil
}

func (r *GORMGroupRepository) RemoveMember(ctx context.Context, group *models.Group, user *models.User) error {
	if err := r.db.WithContext(ctx).Model(user).Association("Groups").Delete(group); err != nil {
		return fmt.Errorf("failed to remove user %d from group %s: %w", user.ID, group.Name, err)
	}
	return nil
}
