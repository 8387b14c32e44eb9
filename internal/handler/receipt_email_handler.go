package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ReceiptEmailHandler struct {
	uc *usecase.ReceiptUsecase
}

// DI
func NewReceiptEmailHandler(uc *usecase.ReceiptUsecase) *ReceiptEmailHandler {
	return &ReceiptEmailHandler{uc: uc}
}

type SendReceiptRequest struct {
	Email      string          `json:"email"`
	Order      json.RawMessage `json:"order"`
	ReceiptURL string          `json:"receiptUrl"`
}

// POST以外は405を返すためAnyで登録
func (h *ReceiptEmailHandler) RegisterRoutes(e *echo.Echo) {
	e.Any("/api/send-receipt-email", h.send)
}

func (h *ReceiptEmailHandler) send(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
	}

	var req SendReceiptRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing required fields: email and order"})
	}

	// 壊れた注文でも、emailが無いならmissingを優先
	order, err := decodeReceiptOrder(req.Order)
	if err != nil && strings.TrimSpace(req.Email) != "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid order"})
	}

	out, err := h.uc.SendReceipt(c.Request().Context(), usecase.SendReceiptInput{
		Email:      req.Email,
		Order:      order,
		ReceiptURL: req.ReceiptURL,
	})
	if err != nil {
		return writeError(c, err)
	}

	//送信失敗でも200
	return c.JSON(http.StatusOK, out)
}
