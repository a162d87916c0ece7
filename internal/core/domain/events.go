package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType names an inbound operational event.
type EventType string

const (
	EventBookingCreated      EventType = "BookingCreated"
	EventPaymentReceived     EventType = "PaymentReceived"
	EventRefundIssued        EventType = "RefundIssued"
	EventVendorAssigned      EventType = "VendorAssigned"
	EventVendorPayment       EventType = "VendorPayment"
	EventExpenseRecorded     EventType = "ExpenseRecorded"
	EventPayrollProcessed    EventType = "PayrollProcessed"
	EventInterBranchTransfer EventType = "InterBranchTransfer"
)

// PaymentMethod selects the cash or bank account an event settles through.
type PaymentMethod string

const (
	PayCash PaymentMethod = "CASH"
	PayBank PaymentMethod = "BANK"
)

// SettlementCode returns the well-known account code for the method.
func (m PaymentMethod) SettlementCode() string {
	if m == PayCash {
		return CodeCash
	}
	return CodeBank
}

// EventMeta is carried by every event.
type EventMeta struct {
	TenantID       string    `json:"tenantID"`
	BranchID       string    `json:"branchID"`
	SourceRecordID string    `json:"sourceRecordID"`
	Reference      string    `json:"reference,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
	UserID         string    `json:"userID,omitempty"`
}

// BookingCreated is emitted when a customer books a trip. Amount is the
// price before tax unless the tax code is inclusive.
type BookingCreated struct {
	EventMeta
	BookingID         string          `json:"bookingID"`
	TripID            string          `json:"tripID"`
	CustomerID        string          `json:"customerID"`
	CustomerStateCode string          `json:"customerStateCode,omitempty"`
	CustomerTaxID     string          `json:"customerTaxID,omitempty"`
	IsExport          bool            `json:"isExport,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	TaxCode           string          `json:"taxCode,omitempty"`
	Description       string          `json:"description,omitempty"`
}

// PaymentReceived is emitted when a customer pays.
type PaymentReceived struct {
	EventMeta
	PaymentID  string          `json:"paymentID"`
	BookingID  string          `json:"bookingID,omitempty"`
	CustomerID string          `json:"customerID"`
	Amount     decimal.Decimal `json:"amount"`
	Method     PaymentMethod   `json:"method"`
}

// RefundIssued is emitted when money is returned to a customer.
type RefundIssued struct {
	EventMeta
	RefundID   string          `json:"refundID"`
	BookingID  string          `json:"bookingID,omitempty"`
	CustomerID string          `json:"customerID"`
	Amount     decimal.Decimal `json:"amount"`
	Method     PaymentMethod   `json:"method"`
	Reason     string          `json:"reason,omitempty"`
}

// VendorAssigned is emitted when a vendor is booked for a trip.
type VendorAssigned struct {
	EventMeta
	AssignmentID    string          `json:"assignmentID"`
	VendorID        string          `json:"vendorID"`
	VendorStateCode string          `json:"vendorStateCode,omitempty"`
	VendorTaxID     string          `json:"vendorTaxID,omitempty"`
	TripID          string          `json:"tripID,omitempty"`
	BookingID       string          `json:"bookingID,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	TaxCode         string          `json:"taxCode,omitempty"`
	Description     string          `json:"description,omitempty"`
}

// VendorPayment is emitted when a vendor is paid. Amount is gross of TDS.
type VendorPayment struct {
	EventMeta
	PaymentID   string          `json:"paymentID"`
	VendorID    string          `json:"vendorID"`
	VendorTaxID string          `json:"vendorTaxID,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	TDSCode     string          `json:"tdsCode,omitempty"`
	Method      PaymentMethod   `json:"method"`
}

// ExpenseRecorded is emitted for an operating expense paid immediately.
type ExpenseRecorded struct {
	EventMeta
	ExpenseID   string          `json:"expenseID"`
	AccountCode string          `json:"accountCode,omitempty"`
	CostCenter  string          `json:"costCenter,omitempty"`
	VendorID    string          `json:"vendorID,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	TaxCode     string          `json:"taxCode,omitempty"`
	Method      PaymentMethod   `json:"method"`
	Description string          `json:"description,omitempty"`
}

// PayrollProcessed is emitted when a payroll run is finalised.
type PayrollProcessed struct {
	EventMeta
	PayrollRunID string          `json:"payrollRunID"`
	EmployeeID   string          `json:"employeeID,omitempty"`
	GrossAmount  decimal.Decimal `json:"grossAmount"`
	TDSAmount    decimal.Decimal `json:"tdsAmount"`
	Period       string          `json:"period,omitempty"`
}

// InterBranchTransfer moves funds between two branches of one tenant.
// BranchID in the meta is the sender.
type InterBranchTransfer struct {
	EventMeta
	TransferID string          `json:"transferID"`
	ToBranchID string          `json:"toBranchID"`
	Amount     decimal.Decimal `json:"amount"`
	Method     PaymentMethod   `json:"method"`
}

// EventResult reports the entries an event produced.
type EventResult struct {
	EventType       EventType        `json:"eventType"`
	SourceRecordID  string           `json:"sourceRecordID"`
	Entries         []JournalEntry   `json:"entries"`
	TaxTransactions []TaxTransaction `json:"taxTransactions,omitempty"`
	Replayed        bool             `json:"replayed"`
}
