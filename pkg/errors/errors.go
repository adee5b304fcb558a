package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "CPF ou senha inválidos")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")

	// ErrUpstream covers failures reported by the CT Supera API. The message
	// is replaced with the upstream error string when one is present.
	ErrUpstream = New("UPSTREAM_ERROR", http.StatusBadGateway, "erro ao comunicar com o servidor")

	// Enrollment-domain errors.
	ErrUnknownPlan         = New("UNKNOWN_PLAN", http.StatusBadRequest, "plano desconhecido")
	ErrQuotaExceeded       = New("DAY_QUOTA_EXCEEDED", http.StatusUnprocessableEntity, "limite de dias do plano atingido")
	ErrDayQuotaMismatch    = New("DAY_QUOTA_MISMATCH", http.StatusUnprocessableEntity, "quantidade de dias não corresponde ao plano")
	ErrMissingCpf          = New("CPF_REQUIRED", http.StatusUnprocessableEntity, "Informe o CPF do aluno.")
	ErrMissingDueDay       = New("DUE_DAY_REQUIRED", http.StatusUnprocessableEntity, "Selecione o dia de vencimento.")
	ErrMissingPlan         = New("PLAN_REQUIRED", http.StatusUnprocessableEntity, "Selecione o plano.")
	ErrMissingFirstPayment = New("FIRST_PAYMENT_REQUIRED", http.StatusUnprocessableEntity, "Informe o valor da primeira mensalidade.")
	ErrSubmitInFlight      = New("SUBMIT_IN_FLIGHT", http.StatusConflict, "já existe um envio em andamento para esta matrícula")

	// ErrCacheMiss signals an absent cache entry.
	ErrCacheMiss = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Is reports whether err carries the same code as target. Sentinels are
// cloned with contextual messages throughout the codebase, so equality is
// code-based rather than pointer-based.
func Is(err error, target *Error) bool {
	if err == nil || target == nil {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == target.Code
}
