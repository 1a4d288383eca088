package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DivyaDarni/ShopSmart/apperrors"
	"github.com/DivyaDarni/ShopSmart/models"
	"github.com/DivyaDarni/ShopSmart/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Tracking descriptions used for the transitions the workflow itself makes.
const (
	trackingOrderPlaced     = "Your order has been placed successfully"
	trackingCancelledByUser = "Order cancelled by customer"
	trackingCancelledByAdmin = "Order cancelled by administrator"
)

// OrderService drives the cart-to-order transition and the order status
// state machine, including compensating stock restoration on cancellation.
type OrderService struct {
	orders   repository.OrderRepository
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewOrderService(orders repository.OrderRepository, carts repository.CartRepository, products repository.ProductRepository) *OrderService {
	return &OrderService{orders: orders, carts: carts, products: products}
}

// PlaceOrder turns the user's cart into a durable order:
// validate stock per line, snapshot name/price/quantity, persist the order
// as one insert, decrement stock per line with a conditional write, then
// clear the cart. The order either exists with its full snapshot or not at
// all; a decrement failure after the insert surfaces as a partial
// fulfillment error and is never swallowed.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, address models.ShippingAddress, payment models.PaymentMethod) (*models.Order, *apperrors.Error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, apperrors.FromStorage(err, "Cart")
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	if payment == "" {
		payment = models.PaymentCOD
	}
	if !payment.Valid() {
		return nil, apperrors.New(400, "Invalid payment method", nil)
	}

	// Re-validate every line against current stock before anything is
	// persisted, and snapshot items at the same instant.
	items := make([]models.OrderItem, 0, len(cart.Items))
	total := 0.0
	for _, line := range cart.Items {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, apperrors.NotFound("Product")
			}
			return nil, apperrors.FromStorage(err, "Product")
		}
		if product.Stock < line.Quantity {
			return nil, apperrors.InsufficientStock(product.Name)
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
		})
		total += product.Price * float64(line.Quantity)
	}

	order := &models.Order{
		OrderID:         models.NewOrderID(),
		UserID:          userID,
		Items:           items,
		TotalAmount:     total,
		ShippingAddress: address,
		PaymentMethod:   payment,
		OrderStatus:     models.StatusPending,
		TrackingInfo: models.TrackingInfo{
			Status: "Order Placed",
			Updates: []models.TrackingUpdate{{
				Status:      "Order Placed",
				Timestamp:   time.Now().UTC(),
				Description: trackingOrderPlaced,
			}},
		},
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, apperrors.FromStorage(err, "Order")
	}

	// The conditional decrement re-checks stock immediately before each
	// write, so a race since the validation above fails here instead of
	// driving stock negative. At this point the order is already durable:
	// a failure is a partial fulfillment, not a rejection.
	for _, item := range order.Items {
		if err := s.products.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			zap.L().Error("Stock decrement failed after order was persisted",
				zap.String("order_id", order.OrderID),
				zap.String("product", item.Name),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
			return nil, apperrors.PartialFulfillment(order.OrderID, item.Name, err)
		}
	}

	if err := s.carts.SaveItems(ctx, userID, []models.CartItem{}); err != nil {
		return nil, apperrors.FromStorage(err, "Cart")
	}

	zap.L().Info("Order placed",
		zap.String("order_id", order.OrderID),
		zap.String("user_id", userID),
		zap.Float64("total_amount", order.TotalAmount),
	)
	return order, nil
}

// CancelOrder cancels an order on behalf of actor. Customers may cancel
// only their own orders; admins may cancel any. Permitted only while the
// order is Pending or Confirmed.
func (s *OrderService) CancelOrder(ctx context.Context, orderID, actorID string, role models.Role) (*models.Order, *apperrors.Error) {
	order, err := s.orders.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, apperrors.FromStorage(err, "Order")
	}
	if role != models.RoleAdmin && order.UserID != actorID {
		return nil, apperrors.NotFound("Order")
	}

	description := trackingCancelledByUser
	if role == models.RoleAdmin {
		description = trackingCancelledByAdmin
	}
	return s.cancel(ctx, order, description)
}

// cancel is the single cancellation path, shared by customer cancellation
// and the admin status route. The status write is conditional on the order
// still being cancellable, so stock is restored at most once.
func (s *OrderService) cancel(ctx context.Context, order *models.Order, description string) (*models.Order, *apperrors.Error) {
	if !order.OrderStatus.Cancellable() {
		return nil, apperrors.ErrInvalidTransition
	}

	update := models.TrackingUpdate{
		Status:      string(models.StatusCancelled),
		Timestamp:   time.Now().UTC(),
		Description: description,
	}
	cancelled, err := s.orders.UpdateStatus(ctx, order.OrderID,
		[]models.OrderStatus{models.StatusPending, models.StatusConfirmed},
		models.StatusCancelled, update)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Lost a race against another transition.
			return nil, apperrors.ErrInvalidTransition
		}
		return nil, apperrors.FromStorage(err, "Order")
	}

	// Restore stock for every snapshot line. The adjustment is strictly
	// additive, so the stock-floor guard cannot reject it; only storage
	// faults can fail here, and those are logged rather than undoing the
	// cancellation.
	for _, item := range cancelled.Items {
		if err := s.products.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
			zap.L().Error("Stock restoration failed for cancelled order",
				zap.String("order_id", cancelled.OrderID),
				zap.String("product", item.Name),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
		}
	}

	zap.L().Info("Order cancelled", zap.String("order_id", cancelled.OrderID))
	return cancelled, nil
}

// UpdateStatus is the administrator transition: any status in the closed
// set may be assigned, with no linear progression enforced. Transitioning
// into Cancelled routes through the same cancellation path as a customer
// cancel, including stock restoration and its precondition.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus, description string) (*models.Order, *apperrors.Error) {
	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}

	if status == models.StatusCancelled {
		order, err := s.orders.FindByOrderID(ctx, orderID)
		if err != nil {
			return nil, apperrors.FromStorage(err, "Order")
		}
		if description == "" {
			description = trackingCancelledByAdmin
		}
		return s.cancel(ctx, order, description)
	}

	if description == "" {
		description = fmt.Sprintf("Order status updated to %s", status)
	}
	update := models.TrackingUpdate{
		Status:      string(status),
		Timestamp:   time.Now().UTC(),
		Description: description,
	}
	order, err := s.orders.UpdateStatus(ctx, orderID, nil, status, update)
	if err != nil {
		return nil, apperrors.FromStorage(err, "Order")
	}

	zap.L().Info("Order status updated",
		zap.String("order_id", order.OrderID),
		zap.String("status", string(status)),
	)
	return order, nil
}

// GetUserOrders returns the caller's orders, newest first.
func (s *OrderService) GetUserOrders(ctx context.Context, userID string) ([]models.Order, *apperrors.Error) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.FromStorage(err, "Order")
	}
	return orders, nil
}

// GetOrder returns a single order, visible to its owner and to admins.
func (s *OrderService) GetOrder(ctx context.Context, orderID, actorID string, role models.Role) (*models.Order, *apperrors.Error) {
	order, err := s.orders.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, apperrors.FromStorage(err, "Order")
	}
	if role != models.RoleAdmin && order.UserID != actorID {
		return nil, apperrors.NotFound("Order")
	}
	return order, nil
}

// OrderListResult is a paginated admin order listing.
type OrderListResult struct {
	Orders      []models.Order `json:"orders"`
	Total       int64          `json:"total"`
	TotalPages  int64          `json:"total_pages"`
	CurrentPage int64          `json:"current_page"`
}

// ListOrders returns paginated orders for the admin panel, optionally
// filtered by status.
func (s *OrderService) ListOrders(ctx context.Context, status string, page, limit int64) (*OrderListResult, *apperrors.Error) {
	filter := bson.M{}
	if status != "" && status != "All" {
		filter["order_status"] = status
	}

	orders, total, err := s.orders.Find(ctx, filter, page, limit)
	if err != nil {
		return nil, apperrors.FromStorage(err, "Order")
	}

	return &OrderListResult{
		Orders:      orders,
		Total:       total,
		TotalPages:  (total + limit - 1) / limit,
		CurrentPage: page,
	}, nil
}
