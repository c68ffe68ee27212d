package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodcart/internal/models"
	"foodcart/internal/redis"
	"foodcart/internal/repository"

	"github.com/sirupsen/logrus"
)

type CategoryView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type RestaurantRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ProductView struct {
	ID            uint           `json:"id"`
	Name          string         `json:"name"`
	Price         string         `json:"price"`
	SpecialStatus bool           `json:"special_status"`
	Description   string         `json:"description"`
	Category      *CategoryView  `json:"category"`
	Image         string         `json:"image"`
	Restaurant    *RestaurantRef `json:"restaurant"`
}

type Banner struct {
	Title string `json:"title"`
	Src   string `json:"src"`
	Text  string `json:"text"`
}

type City struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ProductCache stores the rendered available-products list.
type ProductCache interface {
	GetAvailableProducts(ctx context.Context, dest interface{}) error
	SetAvailableProducts(ctx context.Context, value interface{}, ttl time.Duration) error
}

type CatalogService interface {
	AvailableProducts(ctx context.Context) ([]ProductView, error)
	Banners() []Banner
	Cities() []City
}

type catalogService struct {
	productRepo repository.ProductRepository
	cache       ProductCache
	cacheTTL    time.Duration
	staticURL   string
	mediaURL    string
}

// NewCatalogService builds the public catalog reader. cache may be nil.
func NewCatalogService(productRepo repository.ProductRepository, cache ProductCache, cacheTTL time.Duration, staticURL, mediaURL string) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		staticURL:   staticURL,
		mediaURL:    mediaURL,
	}
}

func (s *catalogService) AvailableProducts(ctx context.Context) ([]ProductView, error) {
	if s.cache != nil {
		var cached []ProductView
		err := s.cache.GetAvailableProducts(ctx, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			logrus.WithError(err).Warn("Product cache unavailable, reading database")
		}
	}

	products, err := s.productRepo.GetAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load available products: %w", err)
	}

	views := make([]ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, s.productView(product))
	}

	if s.cache != nil {
		if err := s.cache.SetAvailableProducts(ctx, views, s.cacheTTL); err != nil {
			logrus.WithError(err).Warn("Failed to cache available products")
		}
	}

	return views, nil
}

func (s *catalogService) productView(product models.Product) ProductView {
	view := ProductView{
		ID:            product.ID,
		Name:          product.Name,
		Price:         product.Price.StringFixed(2),
		SpecialStatus: product.SpecialStatus,
		Description:   product.Description,
		Image:         joinURL(s.mediaURL, product.Image),
	}
	if product.Category != nil {
		view.Category = &CategoryView{ID: product.Category.ID, Name: product.Category.Name}
	}
	// menu items arrive filtered to available rows, lowest restaurant first
	for _, item := range product.MenuItems {
		if item.Restaurant != nil {
			view.Restaurant = &RestaurantRef{ID: item.Restaurant.ID, Name: item.Restaurant.Name}
			break
		}
	}
	return view
}

// Banners are static until they get a table of their own.
func (s *catalogService) Banners() []Banner {
	return []Banner{
		{Title: "Burger", Src: joinURL(s.staticURL, "burger.jpg"), Text: "Tasty Burger at your door step"},
		{Title: "Spices", Src: joinURL(s.staticURL, "food.jpg"), Text: "All Cuisines"},
		{Title: "New York", Src: joinURL(s.staticURL, "tasty.jpg"), Text: "Food is incomplete without a tasty dessert"},
	}
}

func (s *catalogService) Cities() []City {
	return []City{
		{ID: 1, Name: "Moscow"},
		{ID: 2, Name: "Saint Petersburg"},
		{ID: 3, Name: "Kazan"},
	}
}

func joinURL(base, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
