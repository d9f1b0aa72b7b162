package payment

import (
	"context"
	"fmt"
	"math"
	"strconv"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayGateway adapts the razorpay client to Gateway. The client has no
// context support, so ctx is only checked before each call.
type RazorpayGateway struct {
	client *razorpay.Client
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (*Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data := map[string]interface{}{
		"amount":          amountMinor,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
		"notes":           notes,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create order: %v", ErrGateway, err)
	}
	return toOrder(body), nil
}

func (g *RazorpayGateway) FetchOrder(ctx context.Context, id string) (*Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := g.client.Order.Fetch(id, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch order %s: %v", ErrGateway, id, err)
	}
	return toOrder(body), nil
}

func (g *RazorpayGateway) FetchPayment(ctx context.Context, id string) (*GatewayPayment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := g.client.Payment.Fetch(id, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch payment %s: %v", ErrGateway, id, err)
	}
	p := toPayment(body)
	return &p, nil
}

func (g *RazorpayGateway) FetchOrderPayments(ctx context.Context, orderID string) ([]GatewayPayment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := g.client.Order.Payments(orderID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: order payments %s: %v", ErrGateway, orderID, err)
	}
	items, _ := body["items"].([]interface{})
	out := make([]GatewayPayment, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]interface{}); ok {
			out = append(out, toPayment(m))
		}
	}
	return out, nil
}

func (g *RazorpayGateway) Refund(ctx context.Context, paymentID string, amountMinor int64) (*Refund, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := g.client.Payment.Refund(paymentID, int(amountMinor), map[string]interface{}{"speed": "normal"}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: refund %s: %v", ErrGateway, paymentID, err)
	}
	return &Refund{
		ID:     str(body["id"]),
		Amount: minorOf(body["amount"]),
		Status: str(body["status"]),
	}, nil
}

func toOrder(m map[string]interface{}) *Order {
	return &Order{
		ID:         str(m["id"]),
		Amount:     minorOf(m["amount"]),
		AmountPaid: minorOf(m["amount_paid"]),
		Currency:   str(m["currency"]),
		Receipt:    str(m["receipt"]),
		Status:     str(m["status"]),
		Notes:      notesOf(m["notes"]),
	}
}

func toPayment(m map[string]interface{}) GatewayPayment {
	return GatewayPayment{
		ID:      str(m["id"]),
		OrderID: str(m["order_id"]),
		Amount:  minorOf(m["amount"]),
		Status:  str(m["status"]),
		Method:  str(m["method"]),
		Notes:   notesOf(m["notes"]),
	}
}

func str(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

func minorOf(v interface{}) int64 {
	switch t := v.(type) {
	case float64:
		return int64(math.Round(t))
	case int64:
		return t
	case int:
		return int64(t)
	case string:
		n, _ := strconv.ParseInt(t, 10, 64)
		return n
	}
	return 0
}

// notesOf reads the gateway notes field. An empty notes object is sent back
// as an empty JSON array.
func notesOf(v interface{}) map[string]string {
	out := map[string]string{}
	if m, ok := v.(map[string]interface{}); ok {
		for k, val := range m {
			out[k] = str(val)
		}
	}
	return out
}
