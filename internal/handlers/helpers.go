package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "painel/internal/errors"
	"painel/internal/middleware"
	"painel/internal/models"
	"painel/internal/services"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}

// Amount is a money value in a request body. It accepts a JSON number or a
// string in either "1234.56" or "1.234,56" form.
type Amount struct {
	decimal.Decimal
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	d, err := models.ParseAmount(s)
	if err != nil {
		return err
	}
	a.Decimal = d
	return nil
}

// bindJSON binds the request body into req. Rejected amounts map to
// ErrInvalidAmount and every other failure to ErrInvalidInput.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, models.ErrInvalidAmount) {
			return apperrors.ErrInvalidAmount
		}
		return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return nil
}

// MonthQuery selects a calendar month. Missing parts default to the current
// month.
type MonthQuery struct {
	Year  int `form:"year" binding:"omitempty,min=1970,max=9999"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
}

// parseMonth binds the year/month query parameters, filling gaps from
// current.
func parseMonth(c *gin.Context, current services.MonthRef) (services.MonthRef, error) {
	var q MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return services.MonthRef{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	month := current
	if q.Year != 0 {
		month.Year = q.Year
	}
	if q.Month != 0 {
		month.Month = q.Month
	}
	return month, nil
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.AbortWithError(c, err)
}
