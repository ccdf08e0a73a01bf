package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/authz"
	"littlelemon/internal/models"
	"littlelemon/internal/repositories"
)

// GroupService manages membership of the staff role groups.
type GroupService struct {
	groupRepo repositories.GroupRepository
	userRepo  repositories.UserRepository
}

func NewGroupService(groupRepo repositories.GroupRepository, userRepo repositories.UserRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo, userRepo: userRepo}
}

// ListMembers returns the users holding role.
func (s *GroupService) ListMembers(ctx context.Context, caller authz.Caller, role authz.Role) ([]models.User, error) {
	if err := authz.Authorize(caller, authz.ActionGroupManage); err != nil {
		return nil, err
	}
	group, err := s.group(ctx, role)
	if err != nil {
		return nil, err
	}
	return s.groupRepo.Members(ctx, group)
}

// AddMember grants role to the named user, creating the group on first use.
// It returns the confirmation message.
func (s *GroupService) AddMember(ctx context.Context, caller authz.Caller, role authz.Role, username string) (string, error) {
	if err := authz.Authorize(caller, authz.ActionGroupManage); err != nil {
		return "", err
	}
	if username == "" {
		return "", apperrors.Validation("Username is required.")
	}
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", notFoundOr(err, "User does not exist.")
	}
	group, err := s.groupRepo.FirstOrCreate(ctx, string(role))
	if err != nil {
		return "", err
	}
	if err := s.groupRepo.AddMember(ctx, group, user); err != nil {
		return "", err
	}
	log.Printf("User %s added to group %s by %s", username, group.Name, caller.Username)
	return fmt.Sprintf("User %s added to %s group.", username, role.DisplayName()), nil
}

// RemoveMember revokes role from the user with the given ID.
// It returns the confirmation message.
func (s *GroupService) RemoveMember(ctx context.Context, caller authz.Caller, role authz.Role, userID uint) (string, error) {
	if err := authz.Authorize(caller, authz.ActionGroupManage); err != nil {
		return "", err
	}
	if userID == 0 {
		return "", apperrors.Validation("User ID is required.")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", notFoundOr(err, "User does not exist.")
	}
	group, err := s.group(ctx, role)
	if err != nil {
		return "", err
	}
	if !user.InGroup(group.Name) {
		return "", apperrors.NotFound(fmt.Sprintf("User is not in the %s group.", role.DisplayName()))
	}
	if err := s.groupRepo.RemoveMember(ctx, group, user); err != nil {
		return "", err
	}
	log.Printf("User %s removed from group %s by %s", user.Username, group.Name, caller.Username)
	return fmt.Sprintf("User %s removed from %s group.", user.Username, role.DisplayName()), nil
}

func (s *GroupService) group(ctx context.Context, role authz.Role) (*models.Group, error) {
	group, err := s.groupRepo.GetByName(ctx, string(role))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.Wrap(apperrors.KindNotFound, fmt.Sprintf("%s group does not exist.", role.DisplayName()), err)
		}
		return nil, err
	}
	return group, nil
}
