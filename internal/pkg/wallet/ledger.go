package wallet

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/urbanserve/backoffice/app/models"
	"github.com/urbanserve/backoffice/app/repository"
	"github.com/urbanserve/backoffice/internal/pkg/apperr"
)

// Ledger tracks how subscription value is consumed over a partner's
// membership period. It is the only writer of amount_used and
// amount_balance after the provisioning seed; the single conditional UPDATE
// in the repository keeps amount_balance == amount_paid - amount_used under
// concurrent consumption.
type Ledger struct {
	partners repository.PartnerRepository
}

// NewLedger creates a wallet ledger over the given partner repository
func NewLedger(partners repository.PartnerRepository) *Ledger {
	return &Ledger{partners: partners}
}

// GetBalance returns the partner's current usable balance
func (l *Ledger) GetBalance(partnerUUID string) (float64, error) {
	partner, err := l.get(partnerUUID)
	if err != nil {
		return 0, err
	}
	return partner.AmountBalance, nil
}

// Consume deducts amount from the partner's balance and books it as used.
// An overdraw attempt leaves the balance unchanged and returns
// ErrInsufficientBalance.
func (l *Ledger) Consume(partnerUUID string, amount float64) (*models.Partner, error) {
	if amount <= 0 {
		return nil, apperr.NewValidation("amount", "must be greater than zero")
	}

	partner, err := l.get(partnerUUID)
	if err != nil {
		return nil, err
	}

	rows, err := l.partners.ConsumeBalance(partner.ID, amount)
	if err != nil {
		return nil, fmt.Errorf("consuming %.2f from partner %s: %w", amount, partnerUUID, err)
	}
	if rows == 0 {
		return nil, apperr.ErrInsufficientBalance
	}

	return l.get(partnerUUID)
}

func (l *Ledger) get(uuid string) (*models.Partner, error) {
	partner, err := l.partners.GetByUUID(uuid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return partner, nil
}
