package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/segyhp/landsale-engine/internal/domain"
	customError "github.com/segyhp/landsale-engine/pkg/errors"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, sale_id, payment_number, due_date, amount_due, principal, interest, balance,
	status, paid_amount, paid_date, payment_method, created_at, updated_at`

func (r *paymentRepository) GetBySaleID(ctx context.Context, saleID uuid.UUID) ([]*domain.PaymentRecord, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payment_records
		WHERE sale_id = $1
		ORDER BY payment_number
	`

	payments := []*domain.PaymentRecord{}
	if err := r.db.SelectContext(ctx, &payments, query, saleID); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) MarkPaid(ctx context.Context, id uuid.UUID, amount decimal.Decimal, paidDate time.Time, method string) (*domain.PaymentRecord, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	var payment domain.PaymentRecord
	err = tx.GetContext(ctx, &payment,
		`SELECT `+paymentColumns+` FROM payment_records WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, false, err
	}

	if payment.IsPaid() {
		return nil, false, customError.ErrPaymentAlreadyRecorded
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		UPDATE payment_records
		SET status = $2, paid_amount = $3, paid_date = $4, payment_method = $5, updated_at = $6
		WHERE id = $1
	`, id, domain.PaymentStatusPaid, amount, paidDate, method, now)
	if err != nil {
		return nil, false, err
	}

	closed, err := tx.ExecContext(ctx, `
		UPDATE sales
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4
			AND NOT EXISTS (SELECT 1 FROM payment_records WHERE sale_id = $1 AND status <> $5)
	`, payment.SaleID, domain.SaleStatusPaidOff, now, domain.SaleStatusActive, domain.PaymentStatusPaid)
	if err != nil {
		return nil, false, err
	}

	rows, err := closed.RowsAffected()
	if err != nil {
		return nil, false, err
	}

	if err = tx.Commit(); err != nil {
		return nil, false, err
	}

	payment.Status = domain.PaymentStatusPaid
	payment.PaidAmount = decimal.NewNullDecimal(amount)
	payment.PaidDate = &paidDate
	payment.PaymentMethod = &method
	payment.UpdatedAt = now

	return &payment, rows > 0, nil
}

func (r *paymentRepository) MarkLate(ctx context.Context, asOf time.Time) ([]uuid.UUID, error) {
	query := `
		WITH promoted AS (
			UPDATE payment_records
			SET status = $1, updated_at = $2
			WHERE status = $3 AND due_date < $4::date
			RETURNING sale_id
		)
		SELECT DISTINCT sale_id FROM promoted
	`

	saleIDs := []uuid.UUID{}
	err := r.db.SelectContext(ctx, &saleIDs, query, domain.PaymentStatusLate, time.Now(), domain.PaymentStatusPending, asOf.Format(domain.DateLayout))
	if err != nil {
		return nil, err
	}

	return saleIDs, nil
}
