package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"foodcart/internal/models"
	"foodcart/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type APIHandler struct {
	catalogService services.CatalogService
	orderService   services.OrderService
}

func NewAPIHandler(catalogService services.CatalogService, orderService services.OrderService) *APIHandler {
	return &APIHandler{
		catalogService: catalogService,
		orderService:   orderService,
	}
}

func (h *APIHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)

	api := router.Group("/api")
	{
		// Public catalog
		api.GET("/products/", h.ListProducts)
		api.GET("/banners/", h.ListBanners)
		api.GET("/cities/", h.ListCities)

		// Order intake
		api.POST("/order/", h.RegisterOrder)

		// Staff lookups
		api.GET("/orders/:id", h.GetOrder)
		api.GET("/orders/:id/restaurants", h.ListOrderRestaurants)
	}
}

func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *APIHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.AvailableProducts(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to list products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *APIHandler) ListBanners(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.Banners())
}

func (h *APIHandler) ListCities(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.Cities())
}

func (h *APIHandler) RegisterOrder(c *gin.Context) {
	var req services.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": typeMismatch(typeErr), "field": typeErr.Field})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload"})
		return
	}

	order, err := h.orderService.RegisterOrder(c.Request.Context(), &req)
	if err != nil {
		var validationErr *services.ValidationError
		var notFoundErr *services.NotFoundError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "field": validationErr.Field})
		case errors.As(err, &notFoundErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": notFoundErr.Error(), "field": notFoundErr.Field})
		default:
			logrus.WithError(err).Error("Failed to register order")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register order"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": order.ID})
}

func typeMismatch(err *json.UnmarshalTypeError) string {
	if err.Type != nil && err.Type.Kind() == reflect.Slice {
		return fmt.Sprintf("%s: expected a list, got %s", err.Field, err.Value)
	}
	return fmt.Sprintf("%s: expected %s, got %s", err.Field, err.Type, err.Value)
}

type orderItemResponse struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
	Cost        string `json:"cost"`
}

type orderResponse struct {
	ID               uint                `json:"id"`
	FirstName        string              `json:"firstname"`
	LastName         string              `json:"lastname"`
	PhoneNumber      string              `json:"phonenumber"`
	Address          string              `json:"address"`
	Status           string              `json:"status"`
	PaymentMethod    string              `json:"payment_method"`
	Comment          string              `json:"comment"`
	RegisteredAt     time.Time           `json:"registered_at"`
	CalledAt         *time.Time          `json:"called_at"`
	DeliveredAt      *time.Time          `json:"delivered_at"`
	ChosenRestaurant *models.Restaurant  `json:"chosen_restaurant"`
	Items            []orderItemResponse `json:"items"`
	TotalCost        string              `json:"total_cost"`
}

func newOrderResponse(order *models.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		resp := orderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price.StringFixed(2),
			Cost:      item.Cost().StringFixed(2),
		}
		if item.Product != nil {
			resp.ProductName = item.Product.Name
		}
		items = append(items, resp)
	}

	return orderResponse{
		ID:               order.ID,
		FirstName:        order.FirstName,
		LastName:         order.LastName,
		PhoneNumber:      order.PhoneNumber,
		Address:          order.Address,
		Status:           order.Status.String(),
		PaymentMethod:    order.PaymentMethod.String(),
		Comment:          order.Comment,
		RegisteredAt:     order.RegisteredAt,
		CalledAt:         order.CalledAt,
		DeliveredAt:      order.DeliveredAt,
		ChosenRestaurant: order.ChosenRestaurant,
		Items:            items,
		TotalCost:        order.TotalCost().StringFixed(2),
	}
}

func (h *APIHandler) GetOrder(c *gin.Context) {
	orderID, ok := parseID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(order))
}

func (h *APIHandler) ListOrderRestaurants(c *gin.Context) {
	orderID, ok := parseID(c)
	if !ok {
		return
	}

	restaurants, err := h.orderService.FindRestaurants(c.Request.Context(), orderID)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return 0, false
	}
	return uint(id), true
}

func respondLookupError(c *gin.Context, err error) {
	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
		return
	}
	logrus.WithError(err).Error("Failed to load order")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
}
