package usecase

import (
	"context"
	"log/slog"
	"net/http"
	netmail "net/mail"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/state"
)

// チェックアウトが読むカート
type CartSource interface {
	Snapshot() state.CartSnapshot
	Subtract(ordered []model.CartItem)
}

type CheckoutInput struct {
	Customer   model.Customer
	ReceiptURL string
}

type CheckoutOutput struct {
	Order     model.Order `json:"order"`
	EmailSent bool        `json:"emailSent"`
}

// CheckoutUsecase はカートから注文を作り、リモートに保存してから領収書を送る。
type CheckoutUsecase struct {
	orders   repo.OrderRepository
	receipts *ReceiptUsecase
	idGen    IDGenerator
	clock    Clock
	log      *slog.Logger
}

func NewCheckoutUsecase(
	orders repo.OrderRepository,
	receipts *ReceiptUsecase,
	idGen IDGenerator,
	clock Clock,
	log *slog.Logger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		orders:   orders,
		receipts: receipts,
		idGen:    idGen,
		clock:    clock,
		log:      log,
	}
}

func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, cart CartSource, in CheckoutInput) (CheckoutOutput, error) {
	customer := model.Customer{
		Name:    strings.TrimSpace(in.Customer.Name),
		Email:   strings.TrimSpace(in.Customer.Email),
		Phone:   strings.TrimSpace(in.Customer.Phone),
		Address: strings.TrimSpace(in.Customer.Address),
	}
	if customer.Name == "" || customer.Email == "" || customer.Address == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "name, email and address are required")
	}
	if _, err := netmail.ParseAddress(customer.Email); err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	snap := cart.Snapshot()
	if len(snap.Items) == 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	order := buildOrder(u.idGen.NewID(), customer, snap, u.clock)

	//保存に失敗したらカートは残す
	if err := u.orders.Create(ctx, order); err != nil {
		u.log.ErrorContext(ctx, "order persist failed", slog.String("order_id", order.ID), slog.Any("err", err))
		return CheckoutOutput{}, NewHTTPError(http.StatusBadGateway, "failed to place order")
	}

	mailOut, err := u.receipts.SendReceipt(ctx, SendReceiptInput{
		Email:      customer.Email,
		Order:      &order,
		ReceiptURL: in.ReceiptURL,
	})
	if err != nil {
		// 入力は検証済みなのでここには来ない想定
		u.log.WarnContext(ctx, "receipt skipped", slog.String("order_id", order.ID), slog.Any("err", err))
	}

	//注文した分だけ消す（保存中に追加された明細は残す）
	cart.Subtract(snap.Items)

	return CheckoutOutput{Order: order, EmailSent: mailOut.Success}, nil
}

func buildOrder(id string, customer model.Customer, snap state.CartSnapshot, clock Clock) model.Order {
	items := make([]model.OrderItem, 0, len(snap.Items))
	for _, it := range snap.Items {
		items = append(items, model.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal(),
		})
	}

	return model.Order{
		ID:        id,
		Customer:  customer,
		Items:     items,
		Total:     snap.Total,
		CreatedAt: clock.Now(),
	}
}
