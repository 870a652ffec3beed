package lineup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lineup/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LossReasons: справочник причин потерь, только для чтения.
type LossReasons struct {
	*core
}

// List возвращает активные причины магазина и общие причины.
func (r *LossReasons) List(ctx context.Context, storeID uuid.UUID) ([]models.LossReason, error) {
	var reasons []models.LossReason
	err := r.db.WithContext(ctx).
		Where("active = ? AND (store_id IS NULL OR store_id = ?)", true, storeID).
		Order("display_order ASC").
		Order("name ASC").
		Find(&reasons).Error
	if err != nil {
		return nil, classify("list loss reasons", err)
	}
	return reasons, nil
}

// Resolve возвращает причину, если она активна и доступна магазину.
func (r *LossReasons) Resolve(ctx context.Context, storeID, reasonID uuid.UUID) (models.LossReason, error) {
	reason, err := resolveReason(r.db.WithContext(ctx), storeID, reasonID)
	if err != nil {
		return reason, classify("resolve loss reason", err)
	}
	return reason, nil
}

func resolveReason(db *gorm.DB, storeID, reasonID uuid.UUID) (models.LossReason, error) {
	var reason models.LossReason
	err := db.Where("id = ? AND active = ? AND (store_id IS NULL OR store_id = ?)", reasonID, true, storeID).
		First(&reason).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return reason, fmt.Errorf("%w: unknown loss reason %s", ErrInvalidOutcome, reasonID)
	}
	return reason, err
}

// OutcomeInput: итог обслуживания, который передаёт клиент.
type OutcomeInput struct {
	Result       models.OutcomeResult
	SaleValue    *decimal.Decimal
	LossReasonID *uuid.UUID
	Notes        string
}

// buildOutcome проверяет согласованность итога: продажа требует положительной суммы и
// не имеет причины, потеря требует доступной магазину причины и не имеет суммы.
func buildOutcome(db *gorm.DB, storeID uuid.UUID, in OutcomeInput) (models.AttendanceOutcome, error) {
	out := models.AttendanceOutcome{Result: in.Result, Notes: strings.TrimSpace(in.Notes)}

	switch in.Result {
	case models.OutcomeSale:
		if in.LossReasonID != nil {
			return out, fmt.Errorf("%w: sale cannot have a loss reason", ErrInvalidOutcome)
		}
		if in.SaleValue == nil {
			return out, fmt.Errorf("%w: sale value is required", ErrInvalidOutcome)
		}
		if !in.SaleValue.IsPositive() {
			return out, fmt.Errorf("%w: sale value must be positive", ErrInvalidOutcome)
		}
		out.SaleValue = decimal.NewNullDecimal(in.SaleValue.Round(2))
	case models.OutcomeLoss:
		if in.SaleValue != nil && !in.SaleValue.IsZero() {
			return out, fmt.Errorf("%w: loss cannot have a sale value", ErrInvalidOutcome)
		}
		if in.LossReasonID == nil {
			return out, fmt.Errorf("%w: loss reason is required", ErrInvalidOutcome)
		}
		reason, err := resolveReason(db, storeID, *in.LossReasonID)
		if err != nil {
			return out, err
		}
		out.LossReasonID = &reason.ID
	default:
		return out, fmt.Errorf("%w: unknown result %q", ErrInvalidOutcome, in.Result)
	}
	return out, nil
}
