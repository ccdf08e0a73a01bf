package authz

import (
	"testing"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/models"

	"github.com/stretchr/testify/assert"
)

func customer() Caller { return Caller{UserID: 10, Username: "carol"} }
func manager() Caller  { return Caller{UserID: 1, Username: "mia"}.WithRoles(RoleManager) }
func crew() Caller     { return Caller{UserID: 2, Username: "dan"}.WithRoles(RoleDeliveryCrew) }
func admin() Caller    { return Caller{UserID: 3, Username: "root", Superuser: true} }

func TestNewCaller_ResolvesRolesFromGroups(t *testing.T) {
	user := &models.User{
		ID:       7,
		Username: "both",
		Groups:   []models.Group{{Name: "Manager"}, {Name: "DeliveryCrew"}, {Name: "Other"}},
	}

	c := NewCaller(user)

	assert.True(t, c.Authenticated())
	assert.True(t, c.Has(RoleManager))
	assert.True(t, c.Has(RoleDeliveryCrew))
	assert.True(t, c.IsManager())
	assert.True(t, c.IsDeliveryCrew())
}

func TestAnonymous(t *testing.T) {
	c := Anonymous()
	assert.False(t, c.Authenticated())
	assert.False(t, c.IsManager())
	assert.False(t, c.IsStaff())
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name   string
		caller Caller
		action Action
		want   apperrors.Kind // KindInternal means allowed
	}{
		{"anonymous reads catalog", Anonymous(), ActionCatalogRead, apperrors.KindInternal},
		{"anonymous writes catalog", Anonymous(), ActionCatalogWrite, apperrors.KindUnauthenticated},
		{"customer writes catalog", customer(), ActionCatalogWrite, apperrors.KindForbidden},
		{"crew writes catalog", crew(), ActionCatalogWrite, apperrors.KindForbidden},
		{"manager writes catalog", manager(), ActionCatalogWrite, apperrors.KindInternal},
		{"superuser writes catalog", admin(), ActionCatalogWrite, apperrors.KindInternal},
		{"anonymous cart", Anonymous(), ActionCartAccess, apperrors.KindUnauthenticated},
		{"customer cart", customer(), ActionCartAccess, apperrors.KindInternal},
		{"customer creates order", customer(), ActionOrderCreate, apperrors.KindInternal},
		{"customer updates order", customer(), ActionOrderUpdate, apperrors.KindForbidden},
		{"crew updates order", crew(), ActionOrderUpdate, apperrors.KindInternal},
		{"manager updates order", manager(), ActionOrderUpdate, apperrors.KindInternal},
		{"anonymous updates order", Anonymous(), ActionOrderUpdate, apperrors.KindUnauthenticated},
		{"crew assigns order", crew(), ActionOrderAssign, apperrors.KindForbidden},
		{"manager assigns order", manager(), ActionOrderAssign, apperrors.KindInternal},
		{"crew destroys order", crew(), ActionOrderDestroy, apperrors.KindForbidden},
		{"manager destroys order", manager(), ActionOrderDestroy, apperrors.KindInternal},
		{"customer manages groups", customer(), ActionGroupManage, apperrors.KindForbidden},
		{"manager manages groups", manager(), ActionGroupManage, apperrors.KindInternal},
		{"anonymous profile", Anonymous(), ActionProfileRead, apperrors.KindUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.caller, tt.action)
			if tt.want == apperrors.KindInternal {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, apperrors.KindOf(err))
		})
	}
}

func TestCanRetrieveOrder(t *testing.T) {
	assert.NoError(t, CanRetrieveOrder(customer(), 10))
	assert.NoError(t, CanRetrieveOrder(manager(), 10))
	assert.True(t, apperrors.Is(CanRetrieveOrder(crew(), 10), apperrors.KindForbidden))
	assert.True(t, apperrors.Is(CanRetrieveOrder(Anonymous(), 10), apperrors.KindUnauthenticated))
}

func TestOrderScopeFor(t *testing.T) {
	assert.Equal(t, ScopeAllOrders, OrderScopeFor(manager()))
	assert.Equal(t, ScopeAllOrders, OrderScopeFor(admin()))
	assert.Equal(t, ScopeAllOrders, OrderScopeFor(manager().WithRoles(RoleDeliveryCrew)))
	assert.Equal(t, ScopeAssignedOrders, OrderScopeFor(crew()))
	assert.Equal(t, ScopeOwnOrders, OrderScopeFor(customer()))
}

func TestRole_DisplayName(t *testing.T) {
	assert.Equal(t, "Manager", RoleManager.DisplayName())
	assert.Equal(t, "Delivery Crew", RoleDeliveryCrew.DisplayName())
}
