package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/landsale-engine/internal/domain"
	customError "github.com/segyhp/landsale-engine/pkg/errors"
)

type saleRepository struct {
	db *sqlx.DB
}

func NewSaleRepository(db *sqlx.DB) SaleRepository {
	return &saleRepository{db: db}
}

const saleColumns = `id, parcel_id, buyer_name, buyer_email, sale_price, down_payment, interest_rate,
	term_months, sale_date, finance_amount, monthly_payment, total_payment, status, created_at, updated_at`

func (r *saleRepository) CreateWithPayments(ctx context.Context, sale *domain.Sale, payments []*domain.PaymentRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var parcelStatus string
	err = tx.GetContext(ctx, &parcelStatus, `SELECT status FROM parcels WHERE id = $1 FOR UPDATE`, sale.ParcelID)
	if err != nil {
		return err
	}
	if parcelStatus != domain.ParcelStatusAvailable {
		return customError.ErrParcelAlreadySold
	}

	insertSale := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES (:id, :parcel_id, :buyer_name, :buyer_email, :sale_price, :down_payment, :interest_rate,
			:term_months, :sale_date, :finance_amount, :monthly_payment, :total_payment, :status, :created_at, :updated_at)
	`
	if _, err = tx.NamedExecContext(ctx, insertSale, sale); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE parcels SET status = $2, updated_at = $3 WHERE id = $1`,
		sale.ParcelID, domain.ParcelStatusSold, sale.CreatedAt,
	)
	if err != nil {
		return err
	}

	// Nothing financed means no schedule to persist.
	if len(payments) > 0 {
		insertPayments := `
			INSERT INTO payment_records (id, sale_id, payment_number, due_date, amount_due, principal, interest,
				balance, status, paid_amount, paid_date, payment_method, created_at, updated_at)
			VALUES (:id, :sale_id, :payment_number, :due_date, :amount_due, :principal, :interest,
				:balance, :status, :paid_amount, :paid_date, :payment_method, :created_at, :updated_at)
		`
		if _, err = tx.NamedExecContext(ctx, insertPayments, payments); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`

	var sale domain.Sale
	if err := r.db.GetContext(ctx, &sale, query, id); err != nil {
		return nil, err
	}

	return &sale, nil
}

func (r *saleRepository) List(ctx context.Context) ([]*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY sale_date DESC, created_at DESC`

	sales := []*domain.Sale{}
	if err := r.db.SelectContext(ctx, &sales, query); err != nil {
		return nil, err
	}

	return sales, nil
}
