package jobs

import (
	"context"
	"fmt"
	"time"

	"prestige-rentals-backend/internal/logger"
)

// SendOverdueReminders emails every customer whose active rental ran past its
// due date. Reads only; the fee itself is settled by the return transaction.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		overdue, err := jr.store.Rentals().ListOverdue(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}
		if len(overdue) == 0 {
			logger.Info("No overdue rentals")
			return
		}

		sent := 0
		for _, rental := range overdue {
			customer, err := jr.store.Customers().GetByID(ctx, rental.CustomerID)
			if err != nil {
				logger.Warn("Skipping overdue reminder, customer lookup failed",
					"rental_id", rental.ID, "customer_id", rental.CustomerID, "error", err)
				continue
			}
			car, err := jr.store.Cars().GetByID(ctx, rental.CarID)
			if err != nil {
				logger.Warn("Skipping overdue reminder, car lookup failed",
					"rental_id", rental.ID, "car_id", rental.CarID, "error", err)
				continue
			}

			carName := fmt.Sprintf("%s %s", car.Make, car.Model)
			if err := jr.emailSvc.SendOverdueReminder(ctx, customer.Email, customer.FirstName, carName, *rental.DueDate); err != nil {
				logger.Warn("Failed to send overdue reminder", "rental_id", rental.ID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Overdue reminders sent", "overdue", len(overdue), "sent", sent)
	})
}
