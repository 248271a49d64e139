package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ApplicationStatus is the state of an accommodation application.
type ApplicationStatus int

const (
	ApplicationPending ApplicationStatus = iota + 1
	ApplicationApproved
	ApplicationRejected
)

func (s ApplicationStatus) String() string {
	switch s {
	case ApplicationPending:
		return "pending"
	case ApplicationApproved:
		return "approved"
	case ApplicationRejected:
		return "rejected"
	default:
		return "updated"
	}
}

// MaintenanceStatus is the state of a maintenance request.
type MaintenanceStatus int

const (
	MaintenancePending MaintenanceStatus = iota + 1
	MaintenanceInProgress
	MaintenanceCompleted
	MaintenanceCancelled
)

func (s MaintenanceStatus) String() string {
	switch s {
	case MaintenancePending:
		return "pending"
	case MaintenanceInProgress:
		return "in progress"
	case MaintenanceCompleted:
		return "completed"
	case MaintenanceCancelled:
		return "cancelled"
	default:
		return "updated"
	}
}

const dueDateLayout = "02 January 2006"

// WelcomeMessage greets a newly registered user.
func WelcomeMessage(siteName, fullName string) string {
	return fmt.Sprintf("Welcome to %s, %s! Your account has been created successfully. Log in to explore our platform.", siteName, fullName)
}

// ApplicationStatusMessage tells an applicant their application changed state.
// Approved and rejected applications get a follow-up sentence.
func ApplicationStatusMessage(username, accommodation string, status ApplicationStatus) string {
	msg := fmt.Sprintf("Hello %s, your application for %s has been %s. ", username, accommodation, status)
	switch status {
	case ApplicationApproved:
		msg += "Congratulations! Login to your account to sign the lease agreement."
	case ApplicationRejected:
		msg += "We're sorry, but your application couldn't be approved at this time."
	}
	return msg
}

// InvoiceMessage announces a newly generated invoice.
func InvoiceMessage(username string, amount decimal.Decimal, due time.Time) string {
	return fmt.Sprintf("Hello %s, a new invoice of %s has been generated for your accommodation. Due date: %s. Please login to view details.",
		username, FormatCurrency(amount), due.Format(dueDateLayout))
}

// LeaseMessage tells a tenant their lease is ready to sign.
func LeaseMessage(username, accommodation string) string {
	return fmt.Sprintf("Hello %s, your lease agreement for %s is now ready for signing. Please login to view and sign it.", username, accommodation)
}

// MaintenanceUpdateMessage reports a maintenance request status change.
func MaintenanceUpdateMessage(username, accommodation string, status MaintenanceStatus) string {
	return fmt.Sprintf("Hello %s, your maintenance request for %s has been updated. Status: %s.", username, accommodation, status)
}

// PaymentReminderMessage reminds a tenant of an upcoming payment.
func PaymentReminderMessage(username string, amount decimal.Decimal, due time.Time) string {
	return fmt.Sprintf("Hello %s, this is a reminder that payment of %s for your accommodation is due on %s. Please login to pay.",
		username, FormatCurrency(amount), due.Format(dueDateLayout))
}

// FormatCurrency renders amount in rand with two decimals and comma
// thousands separators, e.g. "R 1,250.00".
func FormatCurrency(amount decimal.Decimal) string {
	amount = amount.Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return "R " + sign + b.String() + "." + frac
}
