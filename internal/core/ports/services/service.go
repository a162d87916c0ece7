package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Tenant           TenantSvcFacade
	Account          AccountSvcFacade
	Journal          JournalSvcFacade
	Ledger           LedgerSvc
	Fiscal           FiscalSvcFacade
	Tax              TaxSvcFacade
	Bank             BankSvcFacade
	Events           EventSvc
	IntegrationToken IntegrationTokenSvc
	Setup            SetupSvc
}
