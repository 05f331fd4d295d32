package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/landsale-engine/internal/cache"
	"github.com/segyhp/landsale-engine/internal/config"
	"github.com/segyhp/landsale-engine/internal/domain"
	"github.com/segyhp/landsale-engine/internal/repository"
	"github.com/segyhp/landsale-engine/pkg/amortization"
	customError "github.com/segyhp/landsale-engine/pkg/errors"
	"github.com/segyhp/landsale-engine/pkg/utils"
)

type SaleService struct {
	SaleRepo    repository.SaleRepository
	PaymentRepo repository.PaymentRepository
	ParcelRepo  repository.ParcelRepository
	cache       cache.SaleCache
	config      *config.Config
	logger      *slog.Logger
	now         func() time.Time
}

func NewSaleService(
	saleRepo repository.SaleRepository,
	paymentRepo repository.PaymentRepository,
	parcelRepo repository.ParcelRepository,
	saleCache cache.SaleCache,
	config *config.Config,
	logger *slog.Logger,
) *SaleService {
	return &SaleService{
		SaleRepo:    saleRepo,
		PaymentRepo: paymentRepo,
		ParcelRepo:  parcelRepo,
		cache:       saleCache,
		config:      config,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *SaleService) today() time.Time {
	return utils.TruncateToDay(s.now().UTC())
}

// PreviewSale computes the financial snapshot a sale would get, without persisting anything
func (s *SaleService) PreviewSale(request *domain.SalePreviewRequest) (*domain.SalePreviewResponse, error) {
	if err := validateSaleTerms(request.SalePrice, request.DownPayment, request.InterestRate, request.TermMonths); err != nil {
		return nil, customError.WrapValidation(err)
	}

	financials := amortization.CalculateSaleDetails(request.SalePrice, request.DownPayment, request.InterestRate, request.TermMonths)

	return &domain.SalePreviewResponse{
		SaleFinancials: financials,
		TotalInterest:  amortization.TotalInterest(financials.TotalPayment, request.SalePrice),
	}, nil
}

// CreateSale creates a sale for an available parcel and persists its
// amortization schedule as pending payment records
func (s *SaleService) CreateSale(ctx context.Context, request *domain.CreateSaleRequest) (*domain.Sale, []*domain.PaymentRecord, error) {
	rate := s.config.GetDefaultInterestRate()
	if request.InterestRate != nil {
		rate = *request.InterestRate
	}

	term := s.config.Business.DefaultTermMonths
	if request.TermMonths != 0 {
		term = request.TermMonths
	}

	saleDate := s.today()
	if request.SaleDate != "" {
		parsed, err := time.Parse(domain.DateLayout, request.SaleDate)
		if err != nil {
			return nil, nil, customError.WrapValidation(customError.NewValidationError("sale_date", "must be formatted as YYYY-MM-DD"))
		}
		saleDate = parsed
	}

	if err := validateSaleTerms(request.SalePrice, request.DownPayment, rate, term); err != nil {
		return nil, nil, customError.WrapValidation(err)
	}

	parcel, err := s.ParcelRepo.GetByID(ctx, request.ParcelID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, customError.WrapParcelNotFound(request.ParcelID.String())
	}
	if err != nil {
		return nil, nil, customError.WrapDatabaseError(err)
	}
	if parcel.Status != domain.ParcelStatusAvailable {
		return nil, nil, customError.WrapParcelAlreadySold(parcel.ID.String())
	}

	financials := amortization.CalculateSaleDetails(request.SalePrice, request.DownPayment, rate, term)

	terms, err := amortization.NewLoanTerms(financials.FinanceAmount, rate, term, saleDate)
	if err != nil {
		var verr *customError.ValidationError
		if errors.As(err, &verr) {
			return nil, nil, customError.WrapValidation(verr)
		}
		return nil, nil, err
	}
	schedule := amortization.GenerateSchedule(terms)

	now := s.now().UTC()
	sale := &domain.Sale{
		ID:             uuid.New(),
		ParcelID:       parcel.ID,
		BuyerName:      request.BuyerName,
		BuyerEmail:     request.BuyerEmail,
		SalePrice:      request.SalePrice,
		DownPayment:    request.DownPayment,
		InterestRate:   rate,
		TermMonths:     term,
		SaleDate:       saleDate,
		FinanceAmount:  financials.FinanceAmount,
		MonthlyPayment: financials.MonthlyPayment,
		TotalPayment:   financials.TotalPayment,
		Status:         domain.SaleStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	// Paid in full at signing.
	if len(schedule) == 0 {
		sale.Status = domain.SaleStatusPaidOff
	}

	payments := make([]*domain.PaymentRecord, 0, len(schedule))
	for _, entry := range schedule {
		payments = append(payments, domain.NewPaymentRecord(sale.ID, entry, now))
	}

	if err := s.SaleRepo.CreateWithPayments(ctx, sale, payments); err != nil {
		switch {
		case errors.Is(err, customError.ErrParcelAlreadySold):
			return nil, nil, customError.WrapParcelAlreadySold(parcel.ID.String())
		case errors.Is(err, sql.ErrNoRows):
			return nil, nil, customError.WrapParcelNotFound(parcel.ID.String())
		default:
			return nil, nil, customError.WrapDatabaseError(err)
		}
	}

	s.logger.Info("sale created",
		"sale_id", sale.ID,
		"parcel_id", sale.ParcelID,
		"finance_amount", sale.FinanceAmount.StringFixed(2),
		"monthly_payment", sale.MonthlyPayment.StringFixed(2),
		"installments", len(payments),
	)

	return sale, payments, nil
}

// GetSale returns a sale with its payment records and derived totals.
// The cache generation is read before the database so a payment recorded
// while the detail is being built prevents the stale copy from being cached.
func (s *SaleService) GetSale(ctx context.Context, saleID uuid.UUID) (*domain.SaleDetailResponse, error) {
	cached, err := s.cache.GetSaleDetail(ctx, saleID)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("sale cache read failed", "sale_id", saleID, "error", err)
	}

	generation, genErr := s.cache.Generation(ctx, saleID)
	if genErr != nil {
		s.logger.Warn("sale cache generation read failed", "sale_id", saleID, "error", genErr)
	}

	sale, err := s.getSale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepo.GetBySaleID(ctx, saleID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	paidCount := 0
	for _, p := range payments {
		if p.IsPaid() {
			paidCount++
		}
	}

	financials := sale.Financials()
	detail := &domain.SaleDetailResponse{
		Sale:          sale,
		Payments:      payments,
		PayoffAmount:  amortization.PayoffAmount(payments),
		TotalInterest: amortization.TotalInterest(financials.TotalPayment, sale.SalePrice),
		PaidCount:     paidCount,
	}

	if genErr != nil {
		return detail, nil
	}

	err = s.cache.SetSaleDetail(ctx, detail, generation)
	switch {
	case errors.Is(err, cache.ErrStale):
		s.logger.Debug("sale changed during load, not caching", "sale_id", saleID)
	case err != nil:
		s.logger.Warn("sale cache write failed", "sale_id", saleID, "error", customError.WrapCacheError(err))
	}

	return detail, nil
}

// ListSales returns all sales
func (s *SaleService) ListSales(ctx context.Context) ([]*domain.Sale, error) {
	sales, err := s.SaleRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return sales, nil
}

// GetSchedule returns the payment records of a sale
func (s *SaleService) GetSchedule(ctx context.Context, saleID uuid.UUID) ([]*domain.PaymentRecord, error) {
	detail, err := s.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	return detail.Payments, nil
}

// GetPayoff returns the principal still owed on a sale
func (s *SaleService) GetPayoff(ctx context.Context, saleID uuid.UUID) (*domain.PayoffResponse, error) {
	detail, err := s.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	return &domain.PayoffResponse{
		SaleID:       saleID,
		PayoffAmount: detail.PayoffAmount,
	}, nil
}

// RecordPayment marks an installment paid. method is manual for admin entry
// and card for processor confirmations. The sale is marked paid off in the
// same transaction once every installment is paid.
func (s *SaleService) RecordPayment(ctx context.Context, paymentID uuid.UUID, request *domain.RecordPaymentRequest, method string) (*domain.PaymentRecord, error) {
	if !request.PaidAmount.IsPositive() {
		return nil, customError.WrapValidation(customError.NewValidationError("paid_amount", "must be greater than 0"))
	}
	if method != domain.PaymentMethodManual && method != domain.PaymentMethodCard {
		return nil, customError.WrapValidation(customError.NewValidationError("payment_method", "must be manual or card"))
	}

	paidDate := s.today()
	if request.PaidDate != "" {
		parsed, err := time.Parse(domain.DateLayout, request.PaidDate)
		if err != nil {
			return nil, customError.WrapValidation(customError.NewValidationError("paid_date", "must be formatted as YYYY-MM-DD"))
		}
		paidDate = parsed
	}

	payment, saleClosed, err := s.PaymentRepo.MarkPaid(ctx, paymentID, amortization.Round2(request.PaidAmount), paidDate, method)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, customError.WrapPaymentNotFound(paymentID.String())
	case errors.Is(err, customError.ErrPaymentAlreadyRecorded):
		return nil, customError.WrapPaymentAlreadyRecorded(paymentID.String())
	case err != nil:
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidate(ctx, payment.SaleID)

	s.logger.Info("payment recorded",
		"payment_id", payment.ID,
		"sale_id", payment.SaleID,
		"payment_number", payment.PaymentNumber,
		"paid_amount", payment.PaidAmount.Decimal.StringFixed(2),
		"method", method,
	)

	if !payment.PaidAmount.Decimal.Equal(payment.AmountDue) {
		s.logger.Warn("paid amount differs from amount due",
			"payment_id", payment.ID,
			"amount_due", payment.AmountDue.StringFixed(2),
			"paid_amount", payment.PaidAmount.Decimal.StringFixed(2),
		)
	}

	if saleClosed {
		s.logger.Info("sale paid off", "sale_id", payment.SaleID)
	}

	return payment, nil
}

// MarkLatePayments promotes pending installments due before asOf to late
func (s *SaleService) MarkLatePayments(ctx context.Context, asOf time.Time) (*domain.LatePaymentsResult, error) {
	saleIDs, err := s.PaymentRepo.MarkLate(ctx, asOf)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	for _, id := range saleIDs {
		s.invalidate(ctx, id)
	}

	s.logger.Info("late payments promoted", "as_of", asOf.Format(domain.DateLayout), "sales", len(saleIDs))

	return &domain.LatePaymentsResult{AsOf: asOf, Sales: len(saleIDs)}, nil
}

func (s *SaleService) getSale(ctx context.Context, saleID uuid.UUID) (*domain.Sale, error) {
	sale, err := s.SaleRepo.GetByID(ctx, saleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapSaleNotFound(saleID.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return sale, nil
}

func (s *SaleService) invalidate(ctx context.Context, saleID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, saleID); err != nil {
		s.logger.Warn("sale cache invalidation failed", "sale_id", saleID, "error", err)
	}
}

// Bounds of the sales.interest_rate NUMERIC(7, 4) column.
var maxInterestRate = decimal.NewFromInt(1000)

const interestRatePlaces = 4

func validateSaleTerms(salePrice, downPayment, rate decimal.Decimal, termMonths int) *customError.ValidationError {
	switch {
	case !salePrice.IsPositive():
		return customError.NewValidationError("sale_price", "must be greater than 0")
	case downPayment.IsNegative():
		return customError.NewValidationError("down_payment", "must not be negative")
	case downPayment.GreaterThan(salePrice):
		return customError.NewValidationError("down_payment", "must not exceed sale price")
	case rate.IsNegative():
		return customError.NewValidationError("interest_rate", "must not be negative")
	case rate.GreaterThanOrEqual(maxInterestRate):
		return customError.NewValidationError("interest_rate", "must be less than 1000")
	case !rate.Equal(rate.Round(interestRatePlaces)):
		return customError.NewValidationError("interest_rate", "must have at most 4 decimal places")
	case termMonths <= 0:
		return customError.NewValidationError("term_months", "must be greater than 0")
	}
	return nil
}
