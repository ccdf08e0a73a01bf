package services_test

import (
	"context"
	"testing"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/authz"
	"littlelemon/internal/models"
	"littlelemon/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGroupService_ListMembers(t *testing.T) {
	ctx := context.Background()
	groups := new(MockGroupRepository)
	groupService := services.NewGroupService(groups, new(MockUserRepository))

	crewGroup := &models.Group{ID: 2, Name: "DeliveryCrew"}
	groups.On("GetByName", ctx, "DeliveryCrew").Return(crewGroup, nil).Once()
	groups.On("Members", ctx, crewGroup).Return([]models.User{{ID: 2, Username: "dan"}}, nil).Once()
	groups.On("GetByName", ctx, "Manager").Return(nil, notFound).Once()

	users, err := groupService.ListMembers(ctx, managerCaller(), authz.RoleDeliveryCrew)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = groupService.ListMembers(ctx, managerCaller(), authz.RoleManager)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	assert.Equal(t, "Manager group does not exist.", appErr.Message)

	_, err = groupService.ListMembers(ctx, crewCaller(), authz.RoleDeliveryCrew)
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
	groups.AssertExpectations(t)
}

func TestGroupService_AddMember(t *testing.T) {
	ctx := context.Background()
	groups := new(MockGroupRepository)
	users := new(MockUserRepository)
	groupService := services.NewGroupService(groups, users)

	dan := &models.User{ID: 2, Username: "dan"}
	crewGroup := &models.Group{ID: 2, Name: "DeliveryCrew"}
	users.On("GetByUsername", ctx, "dan").Return(dan, nil).Once()
	groups.On("FirstOrCreate", ctx, "DeliveryCrew").Return(crewGroup, nil).Once()
	groups.On("AddMember", ctx, crewGroup, dan).Return(nil).Once()

	msg, err := groupService.AddMember(ctx, managerCaller(), authz.RoleDeliveryCrew, "dan")
	require.NoError(t, err)
	assert.Equal(t, "User dan added to Delivery Crew group.", msg)

	_, err = groupService.AddMember(ctx, managerCaller(), authz.RoleDeliveryCrew, "")
	assert.EqualError(t, err, "Username is required.")

	users.On("GetByUsername", ctx, "ghost").Return(nil, notFound).Once()
	_, err = groupService.AddMember(ctx, managerCaller(), authz.RoleManager, "ghost")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	groups.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestGroupService_RemoveMember(t *testing.T) {
	ctx := context.Background()
	groups := new(MockGroupRepository)
	users := new(MockUserRepository)
	groupService := services.NewGroupService(groups, users)

	managerGroup := &models.Group{ID: 1, Name: "Manager"}
	mia := &models.User{ID: 1, Username: "mia", Groups: []models.Group{*managerGroup}}
	carol := &models.User{ID: 10, Username: "carol"}
	users.On("GetByID", ctx, uint(1)).Return(mia, nil).Once()
	users.On("GetByID", ctx, uint(10)).Return(carol, nil).Once()
	groups.On("GetByName", ctx, "Manager").Return(managerGroup, nil).Twice()
	groups.On("RemoveMember", ctx, managerGroup, mia).Return(nil).Once()

	msg, err := groupService.RemoveMember(ctx, managerCaller(), authz.RoleManager, 1)
	require.NoError(t, err)
	assert.Equal(t, "User mia removed from Manager group.", msg)

	_, err = groupService.RemoveMember(ctx, managerCaller(), authz.RoleManager, 10)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	assert.Equal(t, "User is not in the Manager group.", appErr.Message)

	_, err = groupService.RemoveMember(ctx, managerCaller(), authz.RoleManager, 0)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	groups.AssertExpectations(t)
	groups.AssertNumberOfCalls(t, "RemoveMember", 1)
	users.AssertExpectations(t)
	groups.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
}
