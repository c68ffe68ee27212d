package services

import (
	"context"
	"fmt"
	"strings"

	"foodcart/internal/models"
	"foodcart/pkg/whatsapp"
)

type NotificationService interface {
	NotifyOrderRegistered(ctx context.Context, order *models.Order) error
}

type whatsappNotifier struct {
	client       *whatsapp.Client
	managerPhone string
}

// NewNotificationService sends new-order alerts to the manager's WhatsApp.
func NewNotificationService(client *whatsapp.Client, managerPhone string) NotificationService {
	return &whatsappNotifier{client: client, managerPhone: managerPhone}
}

func (s *whatsappNotifier) NotifyOrderRegistered(ctx context.Context, order *models.Order) error {
	return s.client.SendTextMessage(ctx, s.managerPhone, orderMessage(order))
}

func orderMessage(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order #%d\n", order.ID)
	fmt.Fprintf(&b, "%s %s, %s\n", order.FirstName, order.LastName, order.PhoneNumber)
	fmt.Fprintf(&b, "Address: %s\n", order.Address)
	fmt.Fprintf(&b, "Payment: %s\n", order.PaymentMethod)
	if order.Comment != "" {
		fmt.Fprintf(&b, "Comment: %s\n", order.Comment)
	}
	fmt.Fprintf(&b, "Total: %s", order.TotalCost().StringFixed(2))
	return b.String()
}
