package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "ACTIVE"
	LoanStatusComplete LoanStatus = "COMPLETE"
)

// Loan is a fixed-installment debt owned by a single user. Only the fields
// below are stored; everything derivable (remaining amount, progress, dates)
// lives on LoanView and is recomputed on every read.
type Loan struct {
	ID                int32            `json:"id"`
	UserID            int32            `json:"user_id"`
	Name              string           `json:"name"`
	PrincipalAmount   decimal.Decimal  `json:"principal_amount"`
	TotalAmount       decimal.Decimal  `json:"total_amount"` // principal + interest
	MonthlyPayment    decimal.Decimal  `json:"monthly_payment"`
	TotalInstallments int32            `json:"total_installments"`
	PaidInstallments  int32            `json:"paid_installments"`
	StartDate         time.Time        `json:"start_date"`
	InterestRate      *decimal.Decimal `json:"interest_rate,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	CreatedOn         time.Time        `json:"created_on"`
}

// LoanView is a Loan plus its derived fields.
type LoanView struct {
	Loan
	Status                LoanStatus      `json:"status"`
	RemainingInstallments int32           `json:"remaining_installments"`
	RemainingAmount       decimal.Decimal `json:"remaining_amount"`
	PaidAmount            decimal.Decimal `json:"paid_amount"`
	ProgressPercentage    int32           `json:"progress_percentage"`
	EndDate               time.Time       `json:"end_date"`
	NextPaymentDate       *time.Time      `json:"next_payment_date,omitempty"`
}

// DeriveLoanView computes every derived loan field from stored state. All read
// paths go through here, so the derived values can never drift.
func DeriveLoanView(loan Loan) LoanView {
	view := LoanView{Loan: loan}

	view.RemainingInstallments = loan.TotalInstallments - loan.PaidInstallments
	remaining := decimal.NewFromInt32(view.RemainingInstallments)
	paid := decimal.NewFromInt32(loan.PaidInstallments)
	view.RemainingAmount = loan.MonthlyPayment.Mul(remaining)
	view.PaidAmount = loan.MonthlyPayment.Mul(paid)

	if loan.TotalInstallments > 0 {
		view.ProgressPercentage = int32(math.Round(100 * float64(loan.PaidInstallments) / float64(loan.TotalInstallments)))
	}

	view.EndDate = loan.StartDate.AddDate(0, int(loan.TotalInstallments-1), 0)

	if loan.PaidInstallments >= loan.TotalInstallments {
		view.Status = LoanStatusComplete
	} else {
		view.Status = LoanStatusActive
		next := loan.StartDate.AddDate(0, int(loan.PaidInstallments), 0)
		view.NextPaymentDate = &next
	}

	return view
}
