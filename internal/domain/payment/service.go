package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"venuehub/internal/config"
	"venuehub/internal/domain"
	"venuehub/internal/pkg/events"
)

const (
	kindAdvance   = "advance"
	kindRemaining = "remaining"
)

type Service struct {
	repo    *Repository
	gateway Gateway
	notifs  Notifier
	events  events.Publisher
	cfg     config.PaymentConfig
	log     logrus.FieldLogger
	now     func() time.Time
}

func NewService(repo *Repository, gateway Gateway, notifs Notifier, pub events.Publisher, cfg config.PaymentConfig, log logrus.FieldLogger) *Service {
	return &Service{
		repo:    repo,
		gateway: gateway,
		notifs:  notifs,
		events:  pub,
		cfg:     cfg,
		log:     log,
		now:     time.Now,
	}
}

func toMinor(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromMinor(minor int64) float64 {
	return float64(minor) / 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RequiredAdvance is the smallest advance accepted for total.
func (s *Service) RequiredAdvance(total float64) float64 {
	return round2(math.Min(total*s.cfg.AdvancePercent, s.cfg.AdvanceCap))
}

func (s *Service) checkAdvance(total, advance float64) error {
	e := &AdvanceRangeError{Required: s.RequiredAdvance(total), Min: s.cfg.MinAdvance, Max: round2(total)}
	advance = round2(advance)
	if advance < e.Min || advance > e.Max || advance < e.Required {
		return e
	}
	return nil
}

/* ---------- advance ---------- */

func (s *Service) CreateAdvanceOrder(ctx context.Context, userID int64, req AdvanceOrderRequest) (*OrderResponse, error) {
	if _, err := s.repo.GetHall(ctx, req.HallID); err != nil {
		return nil, err
	}
	if req.UserID != 0 && req.UserID != userID {
		s.log.WithFields(logrus.Fields{"session_user": userID, "body_user": req.UserID}).Warn("advance order user mismatch")
	}

	total := req.TotalAmount
	var b *domain.Booking
	if req.BookingID != nil {
		var err error
		b, err = s.repo.GetBooking(ctx, *req.BookingID)
		if err != nil {
			return nil, err
		}
		if b.UserID != userID {
			return nil, ErrForbidden
		}
		if b.HallID != req.HallID {
			return nil, fmt.Errorf("%w: booking is for another hall", ErrValidation)
		}
		if b.Status != domain.BookingPendingAdvance {
			return nil, ErrInvalidState
		}
		total = b.TotalPrice
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: total amount required", ErrValidation)
	}
	if err := s.checkAdvance(total, req.Advance); err != nil {
		return nil, err
	}

	notes := map[string]string{
		"user_id": strconv.FormatInt(userID, 10),
		"hall_id": strconv.FormatInt(req.HallID, 10),
		"kind":    kindAdvance,
	}
	receipt := fmt.Sprintf("hall_%d_%d", req.HallID, s.now().Unix())
	if b != nil {
		notes["booking_id"] = strconv.FormatInt(b.ID, 10)
		receipt = fmt.Sprintf("booking_%d_adv", b.ID)
	}

	amount := toMinor(req.Advance)
	order, err := s.gateway.CreateOrder(ctx, amount, s.cfg.Currency, receipt, notes)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"order_id": order.ID, "amount": amount, "user_id": userID}).Info("advance order created")

	resp := &OrderResponse{
		OrderID:         order.ID,
		Amount:          amount,
		Currency:        s.cfg.Currency,
		KeyID:           s.cfg.KeyID,
		RequiredAdvance: s.RequiredAdvance(total),
	}
	if b == nil {
		return resp, nil
	}
	resp.BookingID = b.ID

	bp, err := s.repo.GetByBooking(ctx, b.ID)
	switch {
	case errors.Is(err, ErrNotFound):
		bp = &domain.BookingPayment{BookingID: b.ID, UserID: b.UserID, HallID: b.HallID}
	case err != nil:
		return nil, err
	case bp.AdvancePaymentStatus == domain.LegPaid:
		return nil, ErrInvalidState
	}
	bp.Currency = s.cfg.Currency
	bp.TotalAmount = total
	bp.AdvanceAmount = round2(req.Advance)
	bp.AdvanceOrderID = order.ID
	bp.AdvancePaymentStatus = domain.LegCreated
	bp.RemainingAmount = domain.Remaining(total, bp.AdvanceAmount)
	bp.Status = domain.BookingPaymentRequestSent
	if err := s.repo.Save(ctx, bp); err != nil {
		return nil, err
	}
	return resp, nil
}

// VerifyAdvance confirms the advance for a booking and hands it to the owner.
func (s *Service) VerifyAdvance(ctx context.Context, userID int64, req VerifyRequest) (*domain.Booking, error) {
	b, err := s.repo.GetBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	if b.AdvancePaid && b.PaymentID == req.PaymentID {
		return b, nil
	}

	gp, err := s.authenticate(ctx, b.ID, req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		return nil, err
	}
	var paid int64
	if gp != nil {
		paid = gp.Amount
	} else if err := s.checkOrderBooking(ctx, b.ID, req.OrderID); err != nil {
		return nil, err
	}
	return s.applyAdvance(ctx, b.ID, req.OrderID, req.PaymentID, paid)
}

// checkOrderBooking makes sure an order the booking has no record of was
// created for it. Orders placed without a booking carry no booking note.
func (s *Service) checkOrderBooking(ctx context.Context, bookingID int64, orderID string) error {
	bp, err := s.repo.GetByBooking(ctx, bookingID)
	if err == nil && bp.AdvanceOrderID != "" {
		return nil
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	o, err := s.gateway.FetchOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if o.Notes["booking_id"] != strconv.FormatInt(bookingID, 10) || o.Notes["kind"] != kindAdvance {
		s.log.WithFields(logrus.Fields{"booking_id": bookingID, "order_id": orderID}).Warn("advance order not bound to booking")
		return ErrOrderMismatch
	}
	return nil
}

// applyAdvance records a proven advance payment. paidMinor is the gateway
// amount when known.
func (s *Service) applyAdvance(ctx context.Context, bookingID int64, orderID, paymentID string, paidMinor int64) (*domain.Booking, error) {
	if paidMinor == 0 {
		if bp, err := s.repo.GetByBooking(ctx, bookingID); err != nil || bp.AdvanceAmount <= 0 {
			gp, gerr := s.lookupPayment(ctx, orderID, paymentID)
			if gerr != nil {
				return nil, gerr
			}
			paidMinor = gp.Amount
		}
	}

	var (
		b       *domain.Booking
		changed bool
	)
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		var err error
		b, err = tx.LockBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.AdvancePaid && b.PaymentID == paymentID {
			return nil
		}
		if b.Status != domain.BookingPendingAdvance {
			return ErrInvalidState
		}

		bp, err := tx.GetByBooking(ctx, bookingID)
		switch {
		case errors.Is(err, ErrNotFound):
			bp = &domain.BookingPayment{
				BookingID:   b.ID,
				UserID:      b.UserID,
				HallID:      b.HallID,
				Currency:    s.cfg.Currency,
				TotalAmount: b.TotalPrice,
				Status:      domain.BookingPaymentRequestSent,
			}
		case err != nil:
			return err
		case bp.AdvanceOrderID != "" && bp.AdvanceOrderID != orderID:
			return ErrOrderMismatch
		}

		advance := bp.AdvanceAmount
		if paidMinor > 0 {
			advance = fromMinor(paidMinor)
		}
		if advance <= 0 {
			return fmt.Errorf("%w: advance amount unknown", ErrValidation)
		}
		if err := s.checkAdvance(b.TotalPrice, advance); err != nil {
			return err
		}
		remaining := domain.Remaining(b.TotalPrice, advance)

		if err := tx.UpdateBooking(ctx, b.ID, map[string]any{
			"advance_paid":        true,
			"advance_amount_paid": advance,
			"remaining_amount":    remaining,
			"status":              domain.BookingPendingOwnerConfirmation,
			"payment_status":      domain.PaymentPending,
			"order_id":            orderID,
			"payment_id":          paymentID,
		}); err != nil {
			return err
		}

		bp.AdvanceAmount = advance
		bp.AdvanceOrderID = orderID
		bp.AdvancePaymentID = paymentID
		bp.AdvancePaymentStatus = domain.LegPaid
		bp.RemainingAmount = remaining
		if err := tx.Save(ctx, bp); err != nil {
			return err
		}

		b.AdvancePaid = true
		b.AdvanceAmountPaid = advance
		b.RemainingAmount = remaining
		b.Status = domain.BookingPendingOwnerConfirmation
		b.PaymentStatus = domain.PaymentPending
		b.OrderID = orderID
		b.PaymentID = paymentID
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		return b, nil
	}

	s.log.WithFields(logrus.Fields{"booking_id": b.ID, "payment_id": paymentID, "amount": b.AdvanceAmountPaid}).Info("advance verified")
	if err := s.notifs.NotifyAdvanceReceived(ctx, b.OwnerID, b); err != nil {
		s.log.WithError(err).WithField("booking_id", b.ID).Warn("notify owner failed")
	}
	s.publish(ctx, events.AdvanceVerified, b, orderID, paymentID, b.AdvanceAmountPaid)
	return b, nil
}

/* ---------- remaining ---------- */

func payableRemaining(st domain.BookingStatus) bool {
	return st == domain.BookingConfirmed || st == domain.BookingApproved
}

// paymentFor loads the booking's payment record, creating it from the booking
// columns for bookings made before the record existed.
func (s *Service) paymentFor(ctx context.Context, b *domain.Booking) (*domain.BookingPayment, error) {
	bp, err := s.repo.GetByBooking(ctx, b.ID)
	if err == nil {
		return bp, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	bp = &domain.BookingPayment{
		BookingID:        b.ID,
		UserID:           b.UserID,
		HallID:           b.HallID,
		Currency:         s.cfg.Currency,
		TotalAmount:      b.TotalPrice,
		AdvanceAmount:    b.AdvanceAmountPaid,
		AdvanceOrderID:   b.OrderID,
		AdvancePaymentID: b.PaymentID,
		RemainingAmount:  domain.Remaining(b.TotalPrice, b.AdvanceAmountPaid),
		Status:           domain.BookingPaymentOwnerApproved,
	}
	if b.AdvancePaid {
		bp.AdvancePaymentStatus = domain.LegPaid
	}
	if err := s.repo.Save(ctx, bp); err != nil {
		return nil, err
	}
	return bp, nil
}

func (s *Service) InitiateRemaining(ctx context.Context, userID, bookingID int64) (*OrderResponse, error) {
	b, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	if !payableRemaining(b.Status) {
		return nil, ErrInvalidState
	}
	bp, err := s.paymentFor(ctx, b)
	if err != nil {
		return nil, err
	}

	remaining := domain.Remaining(b.TotalPrice, b.AdvanceAmountPaid)
	if remaining <= 0 {
		return nil, ErrNothingDue
	}
	amount := toMinor(remaining)
	if amount < s.cfg.MinOrderMinor {
		return nil, ErrAmountTooSmall
	}

	resp := &OrderResponse{Amount: amount, Currency: s.cfg.Currency, KeyID: s.cfg.KeyID, BookingID: b.ID}

	if bp.RemainingOrderID != "" && bp.RemainingPaymentStatus != domain.LegPaid {
		o, err := s.gateway.FetchOrder(ctx, bp.RemainingOrderID)
		if err == nil && o.Amount == amount && o.Status != "paid" {
			resp.OrderID = o.ID
			return resp, nil
		}
		if err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{"booking_id": b.ID, "order_id": bp.RemainingOrderID}).Warn("stored remaining order unusable")
		}
	}

	order, err := s.gateway.CreateOrder(ctx, amount, s.cfg.Currency, fmt.Sprintf("booking_%d_rem", b.ID), map[string]string{
		"booking_id": strconv.FormatInt(b.ID, 10),
		"user_id":    strconv.FormatInt(b.UserID, 10),
		"hall_id":    strconv.FormatInt(b.HallID, 10),
		"kind":       kindRemaining,
	})
	if err != nil {
		return nil, err
	}

	bp.RemainingOrderID = order.ID
	bp.RemainingAmount = remaining
	bp.RemainingPaymentStatus = domain.LegCreated
	if err := s.repo.Save(ctx, bp); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"booking_id": b.ID, "order_id": order.ID, "amount": amount}).Info("remaining order created")

	resp.OrderID = order.ID
	return resp, nil
}

func (s *Service) VerifyRemaining(ctx context.Context, userID int64, req VerifyRequest) (*domain.Booking, error) {
	b, err := s.repo.GetBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	if _, err := s.authenticate(ctx, b.ID, req.OrderID, req.PaymentID, req.Signature); err != nil {
		return nil, err
	}
	return s.applyRemaining(ctx, b.ID, req.OrderID, req.PaymentID)
}

// applyRemaining settles the booking. Booking and payment record move together.
func (s *Service) applyRemaining(ctx context.Context, bookingID int64, orderID, paymentID string) (*domain.Booking, error) {
	var (
		b       *domain.Booking
		paid    float64
		changed bool
	)
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		var err error
		b, err = tx.LockBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		bp, err := tx.GetByBooking(ctx, bookingID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return ErrOrderMismatch
			}
			return err
		}
		if bp.Status == domain.BookingPaymentCompleted && bp.RemainingPaymentID == paymentID {
			return nil
		}
		if !payableRemaining(b.Status) {
			return ErrInvalidState
		}
		if bp.RemainingOrderID != orderID {
			return ErrOrderMismatch
		}

		paid = bp.RemainingAmount
		bp.Status = domain.BookingPaymentCompleted
		bp.RemainingPaymentID = paymentID
		bp.RemainingPaymentStatus = domain.LegPaid
		if err := tx.Save(ctx, bp); err != nil {
			return err
		}
		if err := tx.UpdateBooking(ctx, b.ID, map[string]any{
			"status":               domain.BookingCompleted,
			"payment_status":       domain.PaymentPaid,
			"remaining_amount":     0,
			"final_payment_status": "paid",
			"final_payment_method": "online",
		}); err != nil {
			return err
		}
		b.Status = domain.BookingCompleted
		b.PaymentStatus = domain.PaymentPaid
		b.RemainingAmount = 0
		b.FinalPaymentStatus = "paid"
		b.FinalPaymentMethod = "online"
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		return b, nil
	}

	s.log.WithFields(logrus.Fields{"booking_id": b.ID, "payment_id": paymentID}).Info("remaining payment verified")
	for _, recipient := range []int64{b.UserID, b.OwnerID} {
		if err := s.notifs.NotifyPaymentCompleted(ctx, recipient, b); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{"booking_id": b.ID, "user_id": recipient}).Warn("notify payment completed failed")
		}
	}
	s.publish(ctx, events.PaymentCompleted, b, orderID, paymentID, paid)
	return b, nil
}

/* ---------- refund ---------- */

// OwnerDecline refunds the captured advance and cancels the booking.
func (s *Service) OwnerDecline(ctx context.Context, ownerID, bookingID int64) (*RefundResult, error) {
	b, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	hall, err := s.repo.GetHall(ctx, b.HallID)
	if err != nil {
		return nil, err
	}
	if hall.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingPendingOwnerConfirmation && b.Status != domain.BookingConfirmed {
		return nil, ErrInvalidState
	}
	bp, err := s.repo.GetByBooking(ctx, b.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNoCapturedAdvance
		}
		return nil, err
	}
	if bp.AdvancePaymentID == "" || bp.AdvancePaymentStatus != domain.LegPaid {
		return nil, ErrNoCapturedAdvance
	}

	refund, err := s.gateway.Refund(ctx, bp.AdvancePaymentID, toMinor(bp.AdvanceAmount))
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"booking_id": b.ID, "refund_id": refund.ID}).Info("advance refunded")

	now := s.now().UTC()
	err = s.repo.Transaction(ctx, func(tx *Repository) error {
		bp.Status = domain.BookingPaymentRefunded
		bp.RefundID = refund.ID
		bp.AdvancePaymentStatus = domain.LegRefunded
		if err := tx.Save(ctx, bp); err != nil {
			return err
		}
		return tx.UpdateBooking(ctx, b.ID, map[string]any{
			"status":         domain.BookingCancelled,
			"payment_status": domain.PaymentRefunded,
			"cancelled_at":   now,
		})
	})
	if err != nil {
		// money already went back; the record must be fixed by hand
		s.log.WithError(err).WithFields(logrus.Fields{"booking_id": b.ID, "refund_id": refund.ID}).Error("refund recorded at gateway but not stored")
		return nil, err
	}
	b.Status = domain.BookingCancelled
	b.PaymentStatus = domain.PaymentRefunded
	b.CancelledAt = &now

	if err := s.notifs.NotifyRefunded(ctx, b.UserID, b, bp.AdvanceAmount); err != nil {
		s.log.WithError(err).WithField("booking_id", b.ID).Warn("notify refund failed")
	}
	s.publish(ctx, events.PaymentRefunded, b, bp.AdvanceOrderID, bp.AdvancePaymentID, bp.AdvanceAmount)

	return &RefundResult{BookingID: b.ID, RefundID: refund.ID, Amount: bp.AdvanceAmount}, nil
}

/* ---------- webhook ---------- */

// HandleWebhook applies gateway events. It reports whether the event changed
// or confirmed a booking.
func (s *Service) HandleWebhook(ctx context.Context, body []byte, signature string) (bool, error) {
	if !validHMAC(s.cfg.WebhookSecret, body, signature) {
		return false, ErrInvalidSignature
	}

	var ev webhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return false, fmt.Errorf("%w: malformed webhook body", ErrValidation)
	}
	if ev.Event != "payment.captured" && ev.Event != "order.paid" {
		s.log.WithField("event", ev.Event).Info("webhook ignored")
		return false, nil
	}

	p := toPayment(ev.Payload.Payment.Entity)
	o := toOrder(ev.Payload.Order.Entity)
	orderID := p.OrderID
	if orderID == "" {
		orderID = o.ID
	}
	notes := p.Notes
	if notes["booking_id"] == "" {
		notes = o.Notes
	}
	bookingID, err := strconv.ParseInt(notes["booking_id"], 10, 64)
	if err != nil || bookingID <= 0 || p.ID == "" {
		s.log.WithFields(logrus.Fields{"event": ev.Event, "order_id": orderID}).Warn("webhook without booking reference")
		return false, nil
	}

	switch notes["kind"] {
	case kindAdvance:
		_, err = s.applyAdvance(ctx, bookingID, orderID, p.ID, p.Amount)
	case kindRemaining:
		_, err = s.applyRemaining(ctx, bookingID, orderID, p.ID)
	default:
		s.log.WithFields(logrus.Fields{"kind": notes["kind"], "booking_id": bookingID}).Warn("webhook unknown kind")
		return false, nil
	}
	if errors.Is(err, ErrInvalidState) {
		s.log.WithField("booking_id", bookingID).Info("webhook for settled booking")
		return false, nil
	}
	if errors.Is(err, ErrAdvanceOutOfRange) || errors.Is(err, ErrOrderMismatch) {
		s.log.WithError(err).WithFields(logrus.Fields{"booking_id": bookingID, "payment_id": p.ID}).Error("webhook payment not applied")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

/* ---------- read ---------- */

func (s *Service) GetForBooking(ctx context.Context, viewerID int64, viewerRole string, bookingID int64) (*domain.BookingPayment, error) {
	b, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if viewerRole != string(domain.RoleAdmin) && b.UserID != viewerID && b.OwnerID != viewerID {
		return nil, ErrForbidden
	}
	return s.repo.GetByBooking(ctx, bookingID)
}

/* ---------- signatures ---------- */

func signPayment(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func validHMAC(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal([]byte(hex.EncodeToString(mac.Sum(nil))), []byte(signature))
}

// authenticate proves that paymentID paid orderID for the booking. A valid
// checkout signature is enough. Otherwise the gateway is asked directly and
// the returned payment carries the captured amount.
func (s *Service) authenticate(ctx context.Context, bookingID int64, orderID, paymentID, signature string) (*GatewayPayment, error) {
	expected := signPayment(s.cfg.KeySecret, orderID, paymentID)
	if hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, nil
	}
	s.log.WithFields(logrus.Fields{"booking_id": bookingID, "order_id": orderID}).Warn("signature mismatch, asking gateway")

	p, err := s.lookupPayment(ctx, orderID, paymentID)
	if err != nil {
		s.log.WithError(err).WithField("payment_id", paymentID).Error("gateway payment lookup failed")
		return nil, ErrInvalidSignature
	}
	if p.OrderID != orderID || (p.Status != "captured" && p.Status != "authorized") {
		return nil, ErrInvalidSignature
	}
	o, err := s.gateway.FetchOrder(ctx, orderID)
	if err != nil {
		s.log.WithError(err).WithField("order_id", orderID).Error("gateway order lookup failed")
		return nil, ErrInvalidSignature
	}
	if o.Notes["booking_id"] != strconv.FormatInt(bookingID, 10) {
		return nil, ErrInvalidSignature
	}
	return p, nil
}

// lookupPayment asks the gateway for paymentID, falling back to the payments
// listed under orderID when the direct lookup fails.
func (s *Service) lookupPayment(ctx context.Context, orderID, paymentID string) (*GatewayPayment, error) {
	p, err := s.gateway.FetchPayment(ctx, paymentID)
	if err == nil {
		return p, nil
	}
	list, lerr := s.gateway.FetchOrderPayments(ctx, orderID)
	if lerr != nil {
		return nil, errors.Join(err, lerr)
	}
	for i := range list {
		if list[i].ID == paymentID {
			if list[i].OrderID == "" {
				list[i].OrderID = orderID
			}
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("%w: payment %s not listed under order %s", err, paymentID, orderID)
}

func (s *Service) publish(ctx context.Context, key string, b *domain.Booking, orderID, paymentID string, amount float64) {
	err := s.events.PublishJSON(ctx, key, paymentEvent{
		BookingID: b.ID,
		UserID:    b.UserID,
		HallID:    b.HallID,
		OrderID:   orderID,
		PaymentID: paymentID,
		Amount:    amount,
	})
	if err != nil {
		s.log.WithError(err).WithField("event", key).Error("publish event failed")
	}
}
