package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/landsale-engine/internal/domain"
	"github.com/segyhp/landsale-engine/pkg/amortization"
	customError "github.com/segyhp/landsale-engine/pkg/errors"
)

// These tests run against a disposable postgres database named by
// TEST_DATABASE_URL. The schema is dropped and recreated from scripts/init.sql.
var testDB *sqlx.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		fmt.Println("TEST_DATABASE_URL not set, skipping repository integration tests")
		os.Exit(0)
	}

	var err error
	testDB, err = sqlx.Connect("postgres", dsn)
	if err != nil {
		panic(fmt.Sprintf("failed to connect to test database: %v", err))
	}

	if err := resetSchema(testDB); err != nil {
		panic(fmt.Sprintf("failed to initialize database schema: %v", err))
	}

	code := m.Run()
	testDB.Close()
	os.Exit(code)
}

func resetSchema(db *sqlx.DB) error {
	if _, err := db.Exec(`DROP TABLE IF EXISTS payment_records, sales, parcels`); err != nil {
		return err
	}

	schema, err := os.ReadFile("../../scripts/init.sql")
	if err != nil {
		return err
	}

	_, err = db.Exec(string(schema))
	return err
}

func newParcel(t *testing.T) *domain.Parcel {
	t.Helper()

	now := time.Now().UTC()
	parcel := &domain.Parcel{
		ID:           uuid.New(),
		ParcelNumber: "LOT-" + uuid.NewString()[:8],
		Location:     "County road 9",
		Acreage:      decimal.RequireFromString("3.5"),
		AskingPrice:  decimal.RequireFromString("10000"),
		Status:       domain.ParcelStatusAvailable,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, NewParcelRepository(testDB).Create(context.Background(), parcel))
	return parcel
}

func newSale(parcelID uuid.UUID, terms amortization.LoanTerms) (*domain.Sale, []*domain.PaymentRecord) {
	now := time.Now().UTC()
	price := decimal.RequireFromString("10000")
	financials := amortization.CalculateSaleDetails(price, decimal.Zero, terms.AnnualRatePercent, terms.TermMonths)

	sale := &domain.Sale{
		ID:             uuid.New(),
		ParcelID:       parcelID,
		BuyerName:      "Lee Okafor",
		BuyerEmail:     "lee@example.com",
		SalePrice:      price,
		DownPayment:    decimal.Zero,
		InterestRate:   terms.AnnualRatePercent,
		TermMonths:     terms.TermMonths,
		SaleDate:       terms.StartDate,
		FinanceAmount:  financials.FinanceAmount,
		MonthlyPayment: financials.MonthlyPayment,
		TotalPayment:   financials.TotalPayment,
		Status:         domain.SaleStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	var payments []*domain.PaymentRecord
	for _, entry := range amortization.GenerateSchedule(terms) {
		payments = append(payments, domain.NewPaymentRecord(sale.ID, entry, now))
	}
	return sale, payments
}

func testTerms(start time.Time) amortization.LoanTerms {
	return amortization.LoanTerms{
		Principal:         decimal.RequireFromString("10000"),
		AnnualRatePercent: decimal.RequireFromString("9.9"),
		TermMonths:        12,
		StartDate:         start,
	}
}

func TestParcelRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewParcelRepository(testDB)
	parcel := newParcel(t)

	got, err := repo.GetByID(ctx, parcel.ID)
	require.NoError(t, err)
	assert.Equal(t, parcel.ParcelNumber, got.ParcelNumber)
	assert.True(t, parcel.Acreage.Equal(got.Acreage))

	dup := *parcel
	dup.ID = uuid.New()
	err = repo.Create(ctx, &dup)
	assert.True(t, errors.Is(err, customError.ErrParcelAlreadyExists))

	_, err = repo.GetByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestSaleRepository_CreateWithPayments(t *testing.T) {
	ctx := context.Background()
	parcel := newParcel(t)
	sales := NewSaleRepository(testDB)
	payments := NewPaymentRepository(testDB)

	sale, records := newSale(parcel.ID, testTerms(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, sales.CreateWithPayments(ctx, sale, records))

	stored, err := payments.GetBySaleID(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, stored, 12)
	assert.Equal(t, 1, stored[0].PaymentNumber)
	assert.Equal(t, "2024-02-29", stored[0].DueDate.Format(domain.DateLayout))
	assert.True(t, stored[11].Balance.IsZero())

	total := decimal.Zero
	for _, p := range stored {
		total = total.Add(p.Principal)
	}
	assert.True(t, total.Equal(sale.FinanceAmount), "principal sum %s", total)

	gotParcel, err := NewParcelRepository(testDB).GetByID(ctx, parcel.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ParcelStatusSold, gotParcel.Status)

	// second sale of the same parcel is rejected and leaves nothing behind
	again, againRecords := newSale(parcel.ID, testTerms(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)))
	err = sales.CreateWithPayments(ctx, again, againRecords)
	assert.True(t, errors.Is(err, customError.ErrParcelAlreadySold))

	_, err = sales.GetByID(ctx, again.ID)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestPaymentRepository_MarkPaid(t *testing.T) {
	ctx := context.Background()
	parcel := newParcel(t)
	sale, records := newSale(parcel.ID, testTerms(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, NewSaleRepository(testDB).CreateWithPayments(ctx, sale, records))

	repo := NewPaymentRepository(testDB)
	paidDate := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	paid, closed, err := repo.MarkPaid(ctx, records[0].ID, records[0].AmountDue, paidDate, domain.PaymentMethodCard)
	require.NoError(t, err)
	assert.False(t, closed)
	assert.Equal(t, domain.PaymentStatusPaid, paid.Status)
	assert.True(t, paid.PaidAmount.Valid)

	_, _, err = repo.MarkPaid(ctx, records[0].ID, records[0].AmountDue, paidDate, domain.PaymentMethodCard)
	assert.True(t, errors.Is(err, customError.ErrPaymentAlreadyRecorded))

	stored, err := repo.GetBySaleID(ctx, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, stored[0].PaymentMethod)
	assert.Equal(t, domain.PaymentMethodCard, *stored[0].PaymentMethod)

	_, _, err = repo.MarkPaid(ctx, uuid.New(), records[0].AmountDue, paidDate, domain.PaymentMethodManual)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestPaymentRepository_MarkPaidClosesSaleInSameTransaction(t *testing.T) {
	ctx := context.Background()
	parcel := newParcel(t)
	sale, records := newSale(parcel.ID, testTerms(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	sales := NewSaleRepository(testDB)
	require.NoError(t, sales.CreateWithPayments(ctx, sale, records))

	repo := NewPaymentRepository(testDB)
	paidDate := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	for i, record := range records {
		_, closed, err := repo.MarkPaid(ctx, record.ID, record.AmountDue, paidDate, domain.PaymentMethodManual)
		require.NoError(t, err)

		stored, err := sales.GetByID(ctx, sale.ID)
		require.NoError(t, err)

		if i < len(records)-1 {
			assert.False(t, closed, "installment %d", record.PaymentNumber)
			assert.Equal(t, domain.SaleStatusActive, stored.Status)
		} else {
			assert.True(t, closed)
			assert.Equal(t, domain.SaleStatusPaidOff, stored.Status)
		}
	}
}

func TestPaymentRepository_MarkLate(t *testing.T) {
	ctx := context.Background()
	parcel := newParcel(t)
	sale, records := newSale(parcel.ID, testTerms(time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, NewSaleRepository(testDB).CreateWithPayments(ctx, sale, records))

	repo := NewPaymentRepository(testDB)

	// due dates run 2020-02-15 through 2021-01-15; three are strictly before the cutoff
	saleIDs, err := repo.MarkLate(ctx, time.Date(2020, 5, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Contains(t, saleIDs, sale.ID)

	stored, err := repo.GetBySaleID(ctx, sale.ID)
	require.NoError(t, err)

	late := 0
	for _, p := range stored {
		if p.Status == domain.PaymentStatusLate {
			late++
		}
	}
	assert.Equal(t, 3, late)

	// a second sweep over the same cutoff promotes nothing new
	saleIDs, err = repo.MarkLate(ctx, time.Date(2020, 5, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.NotContains(t, saleIDs, sale.ID)
}
