package jobs

import (
	"context"
	"strconv"
	"time"

	"spendly-backend/internal/domain"
	"spendly-backend/internal/logger"
)

func formatID(id int32) string {
	return strconv.Itoa(int(id))
}

// loanReminderWindow is how far ahead of the payment date reminders go out.
const loanReminderWindow = 3 * 24 * time.Hour

// SendLoanReminders notifies loan owners whose next installment falls due
// within the reminder window. Each run sends an email and records an in-app
// notification per due loan.
func (jr *JobRunner) SendLoanReminders() {
	jr.runWithRecovery("SendLoanReminders", func() {
		ctx := context.Background()

		query := `
			SELECT l.id, l.user_id, l.name, l.monthly_payment,
			       l.total_installments, l.paid_installments, l.start_date,
			       u.email, u.name AS user_name,
			       COALESCE(hm.home_id, 0)
			FROM loans l
			JOIN users u ON l.user_id = u.id
			LEFT JOIN home_members hm ON hm.user_id = u.id
			WHERE l.paid_installments < l.total_installments
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to query active loans", "error", err)
			return
		}
		defer rows.Close()

		now := time.Now().UTC()
		windowEnd := now.Add(loanReminderWindow)
		count := 0

		for rows.Next() {
			var (
				loan     domain.Loan
				email    string
				userName string
				homeID   int32
			)
			if err := rows.Scan(&loan.ID, &loan.UserID, &loan.Name, &loan.MonthlyPayment,
				&loan.TotalInstallments, &loan.PaidInstallments, &loan.StartDate,
				&email, &userName, &homeID); err != nil {
				logger.Error("Failed to scan active loan", "error", err)
				continue
			}

			view := domain.DeriveLoanView(loan)
			if view.NextPaymentDate == nil {
				continue
			}
			due := *view.NextPaymentDate
			if due.Before(now.Truncate(24*time.Hour)) || due.After(windowEnd) {
				continue
			}
			dueDate := due.Format("2006-01-02")

			if err := jr.services.Email.SendLoanReminder(ctx, email, userName, loan.Name, loan.MonthlyPayment, dueDate); err != nil {
				logger.Error("Failed to send loan reminder email",
					"loan_id", loan.ID,
					"user_id", loan.UserID,
					"error", err)
			}

			note := &domain.Notification{
				UserID:  loan.UserID,
				HomeID:  homeID,
				Title:   "Installment due",
				Message: "An installment for " + loan.Name + " is due on " + dueDate,
				Attributes: map[string]string{
					"loan_id":  formatID(loan.ID),
					"due_date": dueDate,
					"amount":   loan.MonthlyPayment.Round(2).String(),
				},
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to record loan reminder notification",
					"loan_id", loan.ID,
					"user_id", loan.UserID,
					"error", err)
				continue
			}

			count++
			logger.Debug("Sent loan reminder", "loan_id", loan.ID, "user_id", loan.UserID, "due_date", dueDate)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating active loans", "error", err)
		}

		logger.Info("Loan reminders sent", "count", count)
	})
}
