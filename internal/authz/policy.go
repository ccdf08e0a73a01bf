package authz

import "littlelemon/internal/apperrors"

// Action is an operation guarded by the policy.
type Action int

const (
	ActionCatalogRead Action = iota
	ActionCatalogWrite
	ActionProfileRead
	ActionCartAccess
	ActionOrderList
	ActionOrderCreate
	ActionOrderRetrieve
	ActionOrderUpdate
	ActionOrderAssign
	ActionOrderDestroy
	ActionGroupManage
)

const (
	msgNotAuthenticated = "Authentication credentials were not provided."
	msgNoPermission     = "You do not have permission for this action."
)

// Authorize decides whether the caller may perform the action at all.
// Ownership checks are done by CanRetrieveOrder once the order is loaded.
func Authorize(c Caller, a Action) error {
	if a == ActionCatalogRead {
		return nil
	}
	if !c.Authenticated() {
		return apperrors.Unauthenticated(msgNotAuthenticated)
	}

	switch a {
	case ActionProfileRead, ActionCartAccess, ActionOrderList, ActionOrderCreate, ActionOrderRetrieve:
		return nil
	case ActionOrderUpdate:
		if c.IsStaff() {
			return nil
		}
	case ActionCatalogWrite, ActionOrderAssign, ActionOrderDestroy, ActionGroupManage:
		if c.IsManager() {
			return nil
		}
	}
	return apperrors.Forbidden(msgNoPermission)
}

// CanRetrieveOrder allows the order's owner and managers.
func CanRetrieveOrder(c Caller, ownerID uint) error {
	if err := Authorize(c, ActionOrderRetrieve); err != nil {
		return err
	}
	if c.UserID == ownerID || c.IsManager() {
		return nil
	}
	return apperrors.Forbidden(msgNoPermission)
}

// OrderScope tells which orders a caller is allowed to list.
type OrderScope int

const (
	ScopeAllOrders OrderScope = iota
	ScopeAssignedOrders
	ScopeOwnOrders
)

// OrderScopeFor returns the listing scope. Manager wins over DeliveryCrew
// when a caller holds both roles.
func OrderScopeFor(c Caller) OrderScope {
	switch {
	case c.IsManager():
		return ScopeAllOrders
	case c.IsDeliveryCrew():
		return ScopeAssignedOrders
	default:
		return ScopeOwnOrders
	}
}
