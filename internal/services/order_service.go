package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/apperrors"
	"storefront/pkg/events"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
)

// totalTolerance is how far a client-computed total may drift from the server figure.
var totalTolerance = decimal.RequireFromString("0.01")

type OrderDetails struct {
	// TotalAmount is the client's own figure. It is only compared against the
	// server total, never stored.
	TotalAmount     *decimal.Decimal `json:"totalAmount"`
	ShippingAddress models.Address   `json:"shippingAddress"`
	BillingAddress  *models.Address  `json:"billingAddress"`
	PaymentMethod   string           `json:"paymentMethod" validate:"required,max=50"`
}

type OrderItemInput struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

type PlaceOrderInput struct {
	Order OrderDetails     `json:"order"`
	Items []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type UpdateStatusInput struct {
	Status string `json:"status"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orders    repositories.OrderRepository
	products  repositories.ProductRepository
	publisher events.Publisher
	metrics   *metrics.Metrics
	logg      *logger.Logger
	now       func() time.Time
}

// NewOrderService creates a new OrderService. publisher and m may be nil.
func NewOrderService(orders repositories.OrderRepository, products repositories.ProductRepository, publisher events.Publisher, m *metrics.Metrics, logg *logger.Logger) *OrderService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &OrderService{
		orders:    orders,
		products:  products,
		publisher: publisher,
		metrics:   m,
		logg:      logg,
		now:       time.Now,
	}
}

// List returns every order for admins and the caller's own orders otherwise.
func (s *OrderService) List(ctx context.Context, user *models.User) ([]models.Order, error) {
	if user.IsAdmin {
		return s.orders.ListAll(ctx)
	}
	return s.orders.ListByUser(ctx, user.ID)
}

func (s *OrderService) Get(ctx context.Context, user *models.User, id uint) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != user.ID && !user.IsAdmin {
		return nil, apperrors.New(apperrors.CodeForbidden, "Access denied")
	}
	return order, nil
}

// Place prices the items at current product prices, writes the order and
// empties the caller's cart.
func (s *OrderService) Place(ctx context.Context, userID string, in PlaceOrderInput) (*models.Order, error) {
	ids := make([]uint, 0, len(in.Items))
	for _, item := range in.Items {
		ids = append(ids, item.ProductID)
	}
	found, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	lines := make([]Line, 0, len(in.Items))
	items := make([]models.OrderItem, 0, len(in.Items))
	for i, item := range in.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, apperrors.New(apperrors.CodeNotFound, "Product not found")
		}
		if !product.IsActive {
			return nil, apperrors.Invalid("Invalid order data", apperrors.FieldError{
				Field:   fmt.Sprintf("items[%d].productId", i),
				Tag:     "available",
				Message: fmt.Sprintf("%s is no longer available", product.Name),
			})
		}
		lines = append(lines, Line{UnitPrice: product.Price, Quantity: item.Quantity})
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	totals := CalculateTotals(lines)
	if claimed := in.Order.TotalAmount; claimed != nil && claimed.Sub(totals.Total).Abs().GreaterThan(totalTolerance) {
		return nil, apperrors.Invalid("Invalid order data", apperrors.FieldError{
			Field:   "totalAmount",
			Tag:     "total",
			Message: "order total does not match current prices, expected " + totals.Total.StringFixed(2),
		})
	}

	number, err := s.orderNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order number: %w", err)
	}
	order := &models.Order{
		UserID:          userID,
		OrderNumber:     number,
		TotalAmount:     totals.Total,
		ShippingAddress: in.Order.ShippingAddress,
		BillingAddress:  in.Order.BillingAddress,
		PaymentMethod:   in.Order.PaymentMethod,
		PaymentStatus:   models.PaymentStatusPending,
		Status:          models.OrderStatusPending,
		Items:           items,
	}
	if err := s.orders.Place(ctx, order); err != nil {
		return nil, err
	}
	s.metrics.IncOrdersPlaced()

	s.publish(ctx, events.OrderCreated, order, map[string]any{
		"orderId":     order.ID,
		"orderNumber": order.OrderNumber,
		"userId":      order.UserID,
		"totalAmount": order.TotalAmount,
		"itemCount":   len(order.Items),
	})
	return order, nil
}

// UpdateStatus moves an order to another lifecycle state.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, apperrors.Invalid("Invalid status", apperrors.FieldError{
			Field: "status", Tag: "oneof", Message: "status must be one of pending processing shipped delivered cancelled",
		})
	}
	order, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.OrderStatusChanged, order, map[string]any{
		"orderId":     order.ID,
		"orderNumber": order.OrderNumber,
		"status":      order.Status,
	})
	return order, nil
}

// publish is best-effort: the order is already committed.
func (s *OrderService) publish(ctx context.Context, eventType string, order *models.Order, payload map[string]any) {
	logCtx := s.logg.WithFields(ctx, map[string]any{"event": eventType, "order_number": order.OrderNumber})
	evt, err := events.New(eventType, order.OrderNumber, payload)
	if err != nil {
		s.logg.Error(logCtx, "order.event_build_failed", err)
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logg.Error(logCtx, "order.event_publish_failed", err)
		return
	}
	s.logg.Debug(logCtx, "order.event_published")
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func (s *OrderService) orderNumber() (string, error) {
	suffix := make([]byte, 9)
	radix := big.NewInt(int64(len(base36)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, radix)
		if err != nil {
			return "", err
		}
		suffix[i] = base36[n.Int64()]
	}
	return fmt.Sprintf("ORD-%d-%s", s.now().UnixMilli(), suffix), nil
}
