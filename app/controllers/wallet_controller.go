package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urbanserve/backoffice/internal/pkg/wallet"
)

// WalletController handles wallet balance and consumption requests
type WalletController struct {
	ledger *wallet.Ledger
}

// NewWalletController creates a new wallet controller
func NewWalletController(ledger *wallet.Ledger) *WalletController {
	return &WalletController{ledger: ledger}
}

// HandleGetBalance returns the partner's current usable balance
func (wc *WalletController) HandleGetBalance(c *fiber.Ctx) error {
	balance, err := wc.ledger.GetBalance(c.Params("uuid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"partner_uuid":   c.Params("uuid"),
		"amount_balance": balance,
	})
}

// HandleConsume deducts an amount from the partner's wallet
func (wc *WalletController) HandleConsume(c *fiber.Ctx) error {
	var body struct {
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "invalid request body",
		})
	}

	partner, err := wc.ledger.Consume(c.Params("uuid"), body.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"partner_uuid":   partner.UUID,
		"amount_paid":    partner.AmountPaid,
		"amount_used":    partner.AmountUsed,
		"amount_balance": partner.AmountBalance,
	})
}
