package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrParcelNotFound         = errors.New("parcel not found")
	ErrParcelAlreadyExists    = errors.New("parcel already exists")
	ErrParcelAlreadySold      = errors.New("parcel is already sold")
	ErrSaleNotFound           = errors.New("sale not found")
	ErrPaymentNotFound        = errors.New("payment not found")
	ErrPaymentAlreadyRecorded = errors.New("payment already recorded")
	ErrValidation             = errors.New("validation failed")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError reports an input rejected at the call boundary.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error codes
const (
	ErrCodeParcelNotFound         = "PARCEL_NOT_FOUND"
	ErrCodeParcelAlreadyExists    = "PARCEL_ALREADY_EXISTS"
	ErrCodeParcelAlreadySold      = "PARCEL_ALREADY_SOLD"
	ErrCodeSaleNotFound           = "SALE_NOT_FOUND"
	ErrCodePaymentNotFound        = "PAYMENT_NOT_FOUND"
	ErrCodePaymentAlreadyRecorded = "PAYMENT_ALREADY_RECORDED"
	ErrCodeValidation             = "VALIDATION_ERROR"
	ErrCodeDatabaseError          = "DATABASE_ERROR"
	ErrCodeCacheError             = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapParcelNotFound(parcelID string) *BusinessError {
	return NewBusinessError(
		ErrCodeParcelNotFound,
		fmt.Sprintf("Parcel with ID %s not found", parcelID),
		ErrParcelNotFound,
	)
}

func WrapParcelAlreadyExists(parcelNumber string) *BusinessError {
	return NewBusinessError(
		ErrCodeParcelAlreadyExists,
		fmt.Sprintf("Parcel with number %s already exists", parcelNumber),
		ErrParcelAlreadyExists,
	)
}

func WrapParcelAlreadySold(parcelID string) *BusinessError {
	return NewBusinessError(
		ErrCodeParcelAlreadySold,
		fmt.Sprintf("Parcel with ID %s has already been sold", parcelID),
		ErrParcelAlreadySold,
	)
}

func WrapSaleNotFound(saleID string) *BusinessError {
	return NewBusinessError(
		ErrCodeSaleNotFound,
		fmt.Sprintf("Sale with ID %s not found", saleID),
		ErrSaleNotFound,
	)
}

func WrapPaymentNotFound(paymentID string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentNotFound,
		fmt.Sprintf("Payment with ID %s not found", paymentID),
		ErrPaymentNotFound,
	)
}

func WrapPaymentAlreadyRecorded(paymentID string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentAlreadyRecorded,
		fmt.Sprintf("Payment with ID %s is already marked paid", paymentID),
		ErrPaymentAlreadyRecorded,
	)
}

func WrapValidation(err *ValidationError) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		err.Error(),
		err,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

// CodeOf returns the business code carried by err, or an empty string.
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ErrCodeValidation
	}
	return ""
}
