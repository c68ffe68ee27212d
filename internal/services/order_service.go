package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"foodcart/internal/events"
	"foodcart/internal/models"
	"foodcart/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const afterCommitTimeout = 5 * time.Second

type OrderService interface {
	RegisterOrder(ctx context.Context, req *OrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	FindRestaurants(ctx context.Context, orderID uint) ([]models.Restaurant, error)
	// Shutdown waits for post-commit hooks still in flight.
	Shutdown(ctx context.Context) error
}

// OrderPublisher receives an event for every committed order.
type OrderPublisher interface {
	PublishOrderRegistered(ctx context.Context, event events.OrderRegistered) error
}

type orderService struct {
	db             *gorm.DB
	orderRepo      repository.OrderRepository
	orderItemRepo  repository.OrderItemRepository
	productRepo    repository.ProductRepository
	restaurantRepo repository.RestaurantRepository
	phoneRegion    string
	publisher      OrderPublisher
	notifier       NotificationService
	now            func() time.Time
	hooks          sync.WaitGroup
}

// NewOrderService wires order intake and restaurant matching. publisher and
// notifier may be nil.
func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	productRepo repository.ProductRepository,
	restaurantRepo repository.RestaurantRepository,
	phoneRegion string,
	publisher OrderPublisher,
	notifier NotificationService,
) OrderService {
	return &orderService{
		db:             db,
		orderRepo:      orderRepo,
		orderItemRepo:  orderItemRepo,
		productRepo:    productRepo,
		restaurantRepo: restaurantRepo,
		phoneRegion:    phoneRegion,
		publisher:      publisher,
		notifier:       notifier,
		now:            time.Now,
	}
}

// RegisterOrder validates the submission and stores the order with all of
// its items in one transaction. Item prices are copied from the products.
func (s *orderService) RegisterOrder(ctx context.Context, req *OrderRequest) (*models.Order, error) {
	req.normalize()
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	phone, err := normalizePhone(req.PhoneNumber, s.phoneRegion)
	if err != nil {
		return nil, err
	}
	paymentMethod, _ := models.ParsePaymentMethod(req.PaymentMethod)

	order := &models.Order{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		PhoneNumber:   phone,
		Address:       req.Address,
		Status:        models.OrderNew,
		PaymentMethod: paymentMethod,
		Comment:       req.Comment,
		RegisteredAt:  s.now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := s.priceItems(ctx, s.productRepo.WithTx(tx), req.Products)
		if err != nil {
			return err
		}

		if err := s.orderRepo.WithTx(tx).Create(ctx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := s.orderItemRepo.WithTx(tx).CreateBatch(ctx, items); err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatchAfterCommit(ctx, order)
	return order, nil
}

// priceItems resolves every line to a product and snapshots its price.
func (s *orderService) priceItems(ctx context.Context, products repository.ProductRepository, lines []OrderLine) ([]models.OrderItem, error) {
	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.Product)
	}

	found, err := products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	byID := make(map[uint]models.Product, len(found))
	for _, product := range found {
		byID[product.ID] = product
	}

	items := make([]models.OrderItem, 0, len(lines))
	for i, line := range lines {
		product, ok := byID[line.Product]
		if !ok {
			return nil, &NotFoundError{
				Resource: "product",
				ID:       line.Product,
				Field:    fmt.Sprintf("products[%d].product", i),
			}
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
	}
	return items, nil
}

// dispatchAfterCommit runs the hooks in the background on a copy of the
// order, so a slow broker or gateway does not hold up the response.
func (s *orderService) dispatchAfterCommit(ctx context.Context, order *models.Order) {
	if s.publisher == nil && s.notifier == nil {
		return
	}

	snapshot := *order
	snapshot.Items = append([]models.OrderItem(nil), order.Items...)

	hookCtx := context.WithoutCancel(ctx)
	s.hooks.Add(1)
	go func() {
		defer s.hooks.Done()
		s.afterCommit(hookCtx, &snapshot)
	}()
}

// afterCommit publishes and notifies on a best-effort basis: the order is
// already stored, so failures are only logged.
func (s *orderService) afterCommit(ctx context.Context, order *models.Order) {
	ctx, cancel := context.WithTimeout(ctx, afterCommitTimeout)
	defer cancel()

	log := logrus.WithField("order_id", order.ID)

	if s.publisher != nil {
		event := events.OrderRegistered{
			OrderID:      order.ID,
			PhoneNumber:  order.PhoneNumber,
			Address:      order.Address,
			TotalCost:    order.TotalCost().StringFixed(2),
			ItemCount:    len(order.Items),
			RegisteredAt: order.RegisteredAt,
		}
		if err := s.publisher.PublishOrderRegistered(ctx, event); err != nil {
			log.WithError(err).Warn("Failed to publish order event")
		}
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyOrderRegistered(ctx, order); err != nil {
			log.WithError(err).Warn("Failed to notify manager about order")
		}
	}
}

func (s *orderService) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.hooks.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *orderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, orderLookupError(id, err)
	}
	return order, nil
}

// FindRestaurants returns the restaurants able to cook the whole order. A
// restaurant chosen by staff wins over matching; an order without items
// matches no restaurant.
func (s *orderService) FindRestaurants(ctx context.Context, orderID uint) ([]models.Restaurant, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, orderLookupError(orderID, err)
	}

	if order.ChosenRestaurantID != nil {
		chosen, err := s.restaurantRepo.GetByID(ctx, *order.ChosenRestaurantID)
		switch {
		case err == nil:
			return []models.Restaurant{*chosen}, nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("failed to load chosen restaurant: %w", err)
		}
	}

	productIDs, err := s.orderItemRepo.GetProductIDs(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order products: %w", err)
	}
	if len(productIDs) == 0 {
		return []models.Restaurant{}, nil
	}

	restaurants, err := s.restaurantRepo.SupplyingAll(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to match restaurants: %w", err)
	}
	if restaurants == nil {
		restaurants = []models.Restaurant{}
	}
	return restaurants, nil
}

func orderLookupError(id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: "order", ID: id}
	}
	return fmt.Errorf("failed to load order %d: %w", id, err)
}
