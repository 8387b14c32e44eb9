package usecase

import (
	"context"
	"log/slog"
	"net/http"
	netmail "net/mail"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

const (
	msgReceiptSent     = "Receipt email sent"
	msgReceiptNotSent  = "Order placed, but the receipt email could not be sent"
	msgReceiptRequired = "Missing required fields: email and order"
)

type ReceiptSender interface {
	SendReceipt(ctx context.Context, to string, order model.Order, receiptURL string) error
}

type SendReceiptInput struct {
	Email      string
	Order      *model.Order
	ReceiptURL string
}

type SendReceiptOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ReceiptUsecase は領収書メールの送信。
// 送信失敗はエラーにせず Success=false で返す（チェックアウトを止めない）。
type ReceiptUsecase struct {
	sender     ReceiptSender
	deliveries repo.EmailDeliveryRepository
	clock      Clock
	log        *slog.Logger
}

func NewReceiptUsecase(sender ReceiptSender, deliveries repo.EmailDeliveryRepository, clock Clock, log *slog.Logger) *ReceiptUsecase {
	return &ReceiptUsecase{
		sender:     sender,
		deliveries: deliveries,
		clock:      clock,
		log:        log,
	}
}

func (u *ReceiptUsecase) SendReceipt(ctx context.Context, in SendReceiptInput) (SendReceiptOutput, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Order == nil {
		return SendReceiptOutput{}, NewHTTPError(http.StatusBadRequest, msgReceiptRequired)
	}
	if _, err := netmail.ParseAddress(email); err != nil {
		return SendReceiptOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	sendErr := u.sender.SendReceipt(ctx, email, *in.Order, in.ReceiptURL)
	u.record(ctx, email, in.Order.ID, sendErr)

	if sendErr != nil {
		u.log.WarnContext(ctx, "receipt email failed",
			slog.String("order_id", in.Order.ID),
			slog.Any("err", sendErr),
		)
		return SendReceiptOutput{Success: false, Message: msgReceiptNotSent}, nil
	}

	return SendReceiptOutput{Success: true, Message: msgReceiptSent}, nil
}

// 送信記録。保存に失敗してもレスポンスには影響させない。
func (u *ReceiptUsecase) record(ctx context.Context, to, orderID string, sendErr error) {
	d := model.EmailDelivery{
		Recipient: to,
		OrderID:   orderID,
		Status:    model.EmailDeliverySent,
		CreatedAt: u.clock.Now(),
	}
	if sendErr != nil {
		d.Status = model.EmailDeliveryFailed
		d.Error = sendErr.Error()
	}

	if err := u.deliveries.Create(ctx, d); err != nil {
		u.log.WarnContext(ctx, "email delivery record failed", slog.String("order_id", orderID), slog.Any("err", err))
	}
}
