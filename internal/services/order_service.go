package services

import (
	"context"
	"errors"
	"log"

	"littlelemon/internal/apperrors"
	"littlelemon/internal/authz"
	"littlelemon/internal/models"
	"littlelemon/internal/repositories"
)

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	publisher EventPublisher // may be nil when messaging is disabled
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// OrderUpdate describes a PUT or PATCH on an order. DeliveryCrewSet tells
// whether delivery_crew was present in the request; a nil DeliveryCrewID
// with DeliveryCrewSet names no user and is rejected as not found.
type OrderUpdate struct {
	DeliveryCrewSet bool
	DeliveryCrewID  *uint
	Status          *models.OrderStatus
}

// ListOrders returns the orders visible to the caller, optionally filtered by status.
func (s *OrderService) ListOrders(ctx context.Context, caller authz.Caller, status *models.OrderStatus) ([]models.Order, error) {
	if err := authz.Authorize(caller, authz.ActionOrderList); err != nil {
		return nil, err
	}

	filter := repositories.OrderFilter{Status: status}
	switch authz.OrderScopeFor(caller) {
	case authz.ScopeAssignedOrders:
		filter.DeliveryCrewID = &caller.UserID
	case authz.ScopeOwnOrders:
		filter.UserID = &caller.UserID
	}
	return s.orderRepo.GetAll(ctx, filter)
}

// PlaceOrder converts the caller's cart into a new order.
func (s *OrderService) PlaceOrder(ctx context.Context, caller authz.Caller) (*models.Order, error) {
	if err := authz.Authorize(caller, authz.ActionOrderCreate); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.CreateFromCart(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrCartEmpty) {
			return nil, apperrors.Wrap(apperrors.KindValidation, "Cart is empty.", err)
		}
		return nil, err
	}
	log.Printf("Order %d placed by user %d with %d items", order.ID, order.UserID, len(order.Items))

	publishOrderEvent(s.publisher, EventOrderPlaced, order)
	return order, nil
}

// GetOrder retrieves a single order visible to the caller.
func (s *OrderService) GetOrder(ctx context.Context, caller authz.Caller, id uint) (*models.Order, error) {
	if err := authz.Authorize(caller, authz.ActionOrderRetrieve); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Order not found.")
	}
	if err := authz.CanRetrieveOrder(caller, order.UserID); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrder changes the delivery crew assignment and/or the status of an order.
// Managers and delivery crew members may update any order; delivery_crew is
// only honoured for managers and is ignored for everybody else. All checks run
// before anything is written, so a rejected update leaves the order untouched.
func (s *OrderService) UpdateOrder(ctx context.Context, caller authz.Caller, id uint, upd OrderUpdate) (*models.Order, error) {
	order, err := s.AuthorizeUpdate(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if upd.DeliveryCrewSet && authz.Authorize(caller, authz.ActionOrderAssign) == nil {
		if upd.DeliveryCrewID == nil {
			return nil, apperrors.NotFound("User not found.")
		}
		crew, err := s.userRepo.GetByID(ctx, *upd.DeliveryCrewID)
		if err != nil {
			return nil, notFoundOr(err, "User not found.")
		}
		if !crew.InGroup(string(authz.RoleDeliveryCrew)) {
			return nil, apperrors.Validation("User must be in Delivery Crew.")
		}
		order.DeliveryCrewID = upd.DeliveryCrewID
	}
	if upd.Status != nil {
		order.Status = *upd.Status
	}

	if err := s.orderRepo.UpdateAssignment(ctx, order); err != nil {
		return nil, notFoundOr(err, "Order not found.")
	}
	log.Printf("Order %d updated by %s", order.ID, caller.Username)

	publishOrderEvent(s.publisher, EventOrderUpdated, order)
	return order, nil
}

// AuthorizeUpdate loads the order and checks that the caller may update it.
// A missing order is reported before a missing role.
func (s *OrderService) AuthorizeUpdate(ctx context.Context, caller authz.Caller, id uint) (*models.Order, error) {
	if err := authz.Authorize(caller, authz.ActionOrderRetrieve); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Order not found.")
	}
	if err := authz.Authorize(caller, authz.ActionOrderUpdate); err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrder removes an order. Only managers may delete orders.
func (s *OrderService) DeleteOrder(ctx context.Context, caller authz.Caller, id uint) error {
	if err := authz.Authorize(caller, authz.ActionOrderRetrieve); err != nil {
		return err
	}
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "Order not found.")
	}
	if err := authz.Authorize(caller, authz.ActionOrderDestroy); err != nil {
		return err
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Order not found.")
	}
	log.Printf("Order %d deleted by %s", id, caller.Username)

	publishOrderEvent(s.publisher, EventOrderDeleted, order)
	return nil
}
