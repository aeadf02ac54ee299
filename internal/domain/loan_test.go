package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeriveLoanView(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	base := Loan{
		ID:                1,
		UserID:            1,
		Name:              "Konut Kredisi",
		PrincipalAmount:   decimal.NewFromInt(100000),
		TotalAmount:       decimal.NewFromInt(120000),
		MonthlyPayment:    decimal.NewFromInt(10000),
		TotalInstallments: 12,
		PaidInstallments:  10,
		StartDate:         start,
	}

	t.Run("Active", func(t *testing.T) {
		view := DeriveLoanView(base)

		assert.Equal(t, LoanStatusActive, view.Status)
		assert.Equal(t, int32(2), view.RemainingInstallments)
		assert.True(t, view.RemainingAmount.Equal(decimal.NewFromInt(20000)), "remaining %s", view.RemainingAmount)
		assert.True(t, view.PaidAmount.Equal(decimal.NewFromInt(100000)))
		assert.Equal(t, int32(83), view.ProgressPercentage)
		// End date is start plus eleven months for a twelve-installment loan.
		assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), view.EndDate)
		// Next payment is the eleventh installment, ten months after start.
		if assert.NotNil(t, view.NextPaymentDate) {
			assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), *view.NextPaymentDate)
		}
	})

	t.Run("Complete", func(t *testing.T) {
		loan := base
		loan.PaidInstallments = 12
		view := DeriveLoanView(loan)

		assert.Equal(t, LoanStatusComplete, view.Status)
		assert.Equal(t, int32(0), view.RemainingInstallments)
		assert.True(t, view.RemainingAmount.IsZero())
		assert.Equal(t, int32(100), view.ProgressPercentage)
		assert.Nil(t, view.NextPaymentDate)
	})

	t.Run("Fresh", func(t *testing.T) {
		loan := base
		loan.PaidInstallments = 0
		view := DeriveLoanView(loan)

		assert.Equal(t, LoanStatusActive, view.Status)
		assert.Equal(t, int32(0), view.ProgressPercentage)
		if assert.NotNil(t, view.NextPaymentDate) {
			assert.Equal(t, start, *view.NextPaymentDate)
		}
	})

	t.Run("ProgressRounding", func(t *testing.T) {
		loan := base
		loan.TotalInstallments = 3
		loan.PaidInstallments = 1
		// 33.33 rounds down, 66.67 rounds up.
		assert.Equal(t, int32(33), DeriveLoanView(loan).ProgressPercentage)
		loan.PaidInstallments = 2
		assert.Equal(t, int32(67), DeriveLoanView(loan).ProgressPercentage)
	})

	t.Run("SingleInstallment", func(t *testing.T) {
		loan := base
		loan.TotalInstallments = 1
		loan.PaidInstallments = 0
		view := DeriveLoanView(loan)

		assert.Equal(t, start, view.EndDate)
		if assert.NotNil(t, view.NextPaymentDate) {
			assert.Equal(t, start, *view.NextPaymentDate)
		}
	})
}
