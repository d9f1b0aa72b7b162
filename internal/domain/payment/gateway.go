package payment

import "context"

// Amounts exchanged with the gateway are in minor units.

type Order struct {
	ID         string
	Amount     int64
	AmountPaid int64
	Currency   string
	Receipt    string
	Status     string
	Notes      map[string]string
}

type GatewayPayment struct {
	ID      string
	OrderID string
	Amount  int64
	Status  string
	Method  string
	Notes   map[string]string
}

type Refund struct {
	ID     string
	Amount int64
	Status string
}

type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (*Order, error)
	FetchOrder(ctx context.Context, id string) (*Order, error)
	FetchPayment(ctx context.Context, id string) (*GatewayPayment, error)
	FetchOrderPayments(ctx context.Context, orderID string) ([]GatewayPayment, error)
	Refund(ctx context.Context, paymentID string, amountMinor int64) (*Refund, error)
}
