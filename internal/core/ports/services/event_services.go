package services

import (
	"context"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/SscSPs/travel_ledger/internal/dto"
)

// EventHandlerSvc turns operational events into balanced postings.
// Every handler is idempotent on the event's source record.
type EventHandlerSvc interface {
	HandleBookingCreated(ctx context.Context, e domain.BookingCreated) (*domain.EventResult, error)
	HandlePaymentReceived(ctx context.Context, e domain.PaymentReceived) (*domain.EventResult, error)
	HandleRefundIssued(ctx context.Context, e domain.RefundIssued) (*domain.EventResult, error)
	HandleVendorAssigned(ctx context.Context, e domain.VendorAssigned) (*domain.EventResult, error)
	HandleVendorPayment(ctx context.Context, e domain.VendorPayment) (*domain.EventResult, error)
	HandleExpenseRecorded(ctx context.Context, e domain.ExpenseRecorded) (*domain.EventResult, error)
	HandlePayrollProcessed(ctx context.Context, e domain.PayrollProcessed) (*domain.EventResult, error)
	HandleInterBranchTransfer(ctx context.Context, e domain.InterBranchTransfer) (*domain.EventResult, error)
}

// EventSvc adds envelope dispatch on top of the typed handlers.
type EventSvc interface {
	EventHandlerSvc

	// Dispatch decodes the payload for its type and forces the tenant.
	Dispatch(ctx context.Context, tenantID string, env dto.EventEnvelope) (*domain.EventResult, error)
}
