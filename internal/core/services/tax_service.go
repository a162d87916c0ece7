package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/SscSPs/travel_ledger/internal/seed"
	"github.com/SscSPs/travel_ledger/internal/utils/accounting"
	"github.com/SscSPs/travel_ledger/internal/utils/pagination"
)

// gstStart is the validity start of the seeded GST codes.
var gstStart = time.Date(2017, time.July, 1, 0, 0, 0, 0, time.UTC)

var maxRate = decimal.NewFromInt(100)

// taxService implements the TaxSvcFacade interface
type taxService struct {
	BaseService
	taxRepo     portsrepo.TaxRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewTaxService creates a new tax service
func NewTaxService(taxRepo portsrepo.TaxRepositoryFacade, accountRepo portsrepo.AccountReader, authorizer portssvc.TenantAuthorizerSvc) portssvc.TaxSvcFacade {
	svc := &taxService{taxRepo: taxRepo, accountRepo: accountRepo}
	svc.TenantAuthorizer = authorizer
	return svc
}

var _ portssvc.TaxSvcFacade = (*taxService)(nil)

// CreateTaxCode validates and stores a tax code
func (s *taxService) CreateTaxCode(ctx context.Context, tenantID string, req dto.CreateTaxCodeRequest, userID string) (*domain.TaxCode, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if req.Rate.IsNegative() || req.Rate.GreaterThan(maxRate) {
		return nil, fmt.Errorf("%w: rate must be between 0 and 100", apperrors.ErrValidation)
	}
	if req.ThresholdAmount.IsNegative() {
		return nil, fmt.Errorf("%w: threshold cannot be negative", apperrors.ErrValidation)
	}

	category := req.Category
	if category == "" {
		category = domain.CategoryStandard
	}
	method := req.CalculationMethod
	if method == "" {
		method = domain.Exclusive
	}
	validFrom := domain.DateOnly(req.ValidFrom.Time)
	if req.ValidFrom.IsZero() {
		validFrom = domain.DateOnly(time.Now())
	}
	var validTo *time.Time
	if req.ValidTo != nil && !req.ValidTo.IsZero() {
		vt := domain.DateOnly(req.ValidTo.Time)
		if vt.Before(validFrom) {
			return nil, fmt.Errorf("%w: validTo is before validFrom", apperrors.ErrValidation)
		}
		validTo = &vt
	}

	if err := s.checkLinkedAccounts(ctx, tenantID, req.InputAccountID, req.OutputAccountID, req.PayableAccountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	code := domain.TaxCode{
		TaxCodeID:         uuid.NewString(),
		TenantID:          tenantID,
		Code:              strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:              strings.TrimSpace(req.Name),
		TaxType:           req.TaxType,
		Category:          category,
		Rate:              req.Rate,
		CalculationMethod: method,
		Section:           req.Section,
		ThresholdAmount:   req.ThresholdAmount,
		InputAccountID:    req.InputAccountID,
		OutputAccountID:   req.OutputAccountID,
		PayableAccountID:  req.PayableAccountID,
		ValidFrom:         validFrom,
		ValidTo:           validTo,
		IsActive:          true,
		AuditFields:       domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
	}
	if err := s.taxRepo.SaveTaxCode(ctx, code); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save tax code", slog.String("code", code.Code))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Tax code created", slog.String("tenant_id", tenantID), slog.String("code", code.Code))
	return &code, nil
}

func (s *taxService) checkLinkedAccounts(ctx context.Context, tenantID string, ids ...*string) error {
	want := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != nil && *id != "" {
			want = append(want, *id)
		}
	}
	if len(want) == 0 {
		return nil
	}
	found, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, want)
	if err != nil {
		return err
	}
	for _, id := range want {
		acc, ok := found[id]
		if !ok {
			return fmt.Errorf("%w: linked account %s not found", apperrors.ErrValidation, id)
		}
		if err := acc.CanPost(); err != nil {
			return err
		}
	}
	return nil
}

// GetTaxCode retrieves a code by ID or by code
func (s *taxService) GetTaxCode(ctx context.Context, tenantID, taxCodeRef, userID string) (*domain.TaxCode, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.lookupTaxCode(ctx, tenantID, taxCodeRef)
}

func (s *taxService) lookupTaxCode(ctx context.Context, tenantID, ref string) (*domain.TaxCode, error) {
	if _, err := uuid.Parse(ref); err == nil {
		return s.taxRepo.FindTaxCodeByID(ctx, tenantID, ref)
	}
	return s.taxRepo.FindTaxCodeByCode(ctx, tenantID, strings.ToUpper(strings.TrimSpace(ref)))
}

// ListTaxCodes retrieves the tenant's codes
func (s *taxService) ListTaxCodes(ctx context.Context, tenantID, userID string, params dto.ListTaxCodesParams) ([]domain.TaxCode, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	var taxType *domain.TaxType
	if params.TaxType != "" {
		t := domain.TaxType(params.TaxType)
		taxType = &t
	}
	codes, err := s.taxRepo.ListTaxCodes(ctx, tenantID, taxType)
	if err != nil {
		return nil, err
	}
	if codes == nil {
		return []domain.TaxCode{}, nil
	}
	return codes, nil
}

// SeedTaxCodes creates the default GST and TDS codes, linking them to the
// tenant's chart where the accounts exist.
func (s *taxService) SeedTaxCodes(ctx context.Context, tenantID, userID string) (*dto.SeedResult, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	defs, err := seed.TaxCodes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	existing, err := s.taxRepo.ListTaxCodes(ctx, tenantID, nil)
	if err != nil {
		return nil, err
	}
	have := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		have[c.Code] = struct{}{}
	}

	accountIDs := make(map[string]*string)
	resolve := func(code string) (*string, error) {
		if code == "" {
			return nil, nil
		}
		if id, ok := accountIDs[code]; ok {
			return id, nil
		}
		acc, err := s.accountRepo.FindAccountByCode(ctx, tenantID, code)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				accountIDs[code] = nil
				return nil, nil
			}
			return nil, err
		}
		accountIDs[code] = &acc.AccountID
		return &acc.AccountID, nil
	}

	result := &dto.SeedResult{Created: []string{}, Skipped: []string{}}
	now := time.Now().UTC()
	for _, def := range defs {
		if _, ok := have[def.Code]; ok {
			result.Skipped = append(result.Skipped, def.Code)
			continue
		}
		code := domain.TaxCode{
			TaxCodeID:         uuid.NewString(),
			TenantID:          tenantID,
			Code:              def.Code,
			Name:              def.Name,
			TaxType:           def.Type,
			Category:          def.Category,
			Rate:              def.Rate,
			CalculationMethod: def.Method,
			Section:           def.Section,
			ThresholdAmount:   def.Threshold,
			ValidFrom:         gstStart,
			IsActive:          true,
			AuditFields:       domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
		}
		if code.InputAccountID, err = resolve(def.InputAccount); err != nil {
			return result, err
		}
		if code.OutputAccountID, err = resolve(def.OutputAccount); err != nil {
			return result, err
		}
		if code.PayableAccountID, err = resolve(def.PayableAccount); err != nil {
			return result, err
		}
		if err := s.taxRepo.SaveTaxCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				result.Skipped = append(result.Skipped, def.Code)
				continue
			}
			return result, err
		}
		result.Created = append(result.Created, def.Code)
	}
	s.LogInfo(ctx, "Tax codes seeded", slog.String("tenant_id", tenantID), slog.Int("created", len(result.Created)))
	return result, nil
}

func dateOrToday(d *dto.Date) time.Time {
	if d == nil || d.IsZero() {
		return domain.DateOnly(time.Now())
	}
	return domain.DateOnly(d.Time)
}

// CalculateTaxForCode resolves a GST code and computes tax on the base amount
func (s *taxService) CalculateTaxForCode(ctx context.Context, tenantID string, req dto.CalculateTaxRequest, userID string) (*domain.TaxCalculation, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if req.BaseAmount.IsNegative() {
		return nil, fmt.Errorf("%w: base amount cannot be negative", apperrors.ErrValidation)
	}
	code, err := s.ResolveTaxCode(ctx, tenantID, req.TaxCode, dateOrToday(req.Date))
	if err != nil {
		return nil, err
	}
	if code.TaxType != domain.TaxGST {
		return nil, fmt.Errorf("%w: %s is not a GST code", apperrors.ErrValidation, code.Code)
	}
	place := req.PlaceOfSupply
	if place == "" {
		place = domain.ResolvePlaceOfSupply(req.BranchStateCode, req.PartyStateCode, req.IsExport)
	}
	if !place.Valid() {
		return nil, fmt.Errorf("%w: unknown place of supply %q", apperrors.ErrValidation, place)
	}
	calc := accounting.CalculateTax(req.BaseAmount, *code, place)
	return &calc, nil
}

// CalculateTDSForCode resolves a TDS code and computes withholding
func (s *taxService) CalculateTDSForCode(ctx context.Context, tenantID string, req dto.CalculateTDSRequest, userID string) (*domain.TDSCalculation, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
	}
	code, err := s.ResolveTaxCode(ctx, tenantID, req.TaxCode, dateOrToday(req.Date))
	if err != nil {
		return nil, err
	}
	if code.TaxType != domain.TaxTDS {
		return nil, fmt.Errorf("%w: %s is not a TDS code", apperrors.ErrValidation, code.Code)
	}
	calc := accounting.CalculateTDS(req.Amount, *code)
	return &calc, nil
}

// ResolveTaxCode finds a code that is active and valid on date
func (s *taxService) ResolveTaxCode(ctx context.Context, tenantID, taxCodeRef string, date time.Time) (*domain.TaxCode, error) {
	code, err := s.lookupTaxCode(ctx, tenantID, taxCodeRef)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: tax code %s not found", apperrors.ErrValidation, taxCodeRef)
		}
		return nil, err
	}
	if !code.ValidOn(date) {
		return nil, fmt.Errorf("%w: tax code %s is not valid on %s", apperrors.ErrValidation, code.Code, date.Format(dto.DateLayout))
	}
	return code, nil
}

// RecordTaxTransaction stores an immutable tax record
func (s *taxService) RecordTaxTransaction(ctx context.Context, txn domain.TaxTransaction) (*domain.TaxTransaction, error) {
	if !txn.Direction.Valid() {
		return nil, fmt.Errorf("%w: unknown tax direction %q", apperrors.ErrValidation, txn.Direction)
	}
	if txn.TaxCodeID == "" || txn.SourceRecordID == "" {
		return nil, fmt.Errorf("%w: tax transaction needs a tax code and a source record", apperrors.ErrValidation)
	}
	if txn.TaxTransactionID == "" {
		txn.TaxTransactionID = uuid.NewString()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}
	txn.TransactionDate = domain.DateOnly(txn.TransactionDate)
	if err := s.taxRepo.SaveTaxTransaction(ctx, txn); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to record tax transaction", slog.String("source_record_id", txn.SourceRecordID))
		}
		return nil, err
	}
	return &txn, nil
}

// ListTaxTransactions retrieves a page of tax transactions
func (s *taxService) ListTaxTransactions(ctx context.Context, tenantID, userID string, params dto.ListTaxTransactionsParams) (*dto.ListTaxTransactionsResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	from, to, err := window(params.From, params.To)
	if err != nil {
		return nil, err
	}
	var dir *domain.TaxDirection
	if params.Direction != "" {
		d := domain.TaxDirection(params.Direction)
		dir = &d
	}
	txns, next, err := s.taxRepo.ListTaxTransactions(ctx, tenantID, dir, from, to, pagination.ClampLimit(params.Limit), params.NextToken)
	if err != nil {
		return nil, err
	}
	if txns == nil {
		txns = []domain.TaxTransaction{}
	}
	return &dto.ListTaxTransactionsResponse{Transactions: txns, NextToken: next}, nil
}

func window(from, to time.Time) (time.Time, time.Time, error) {
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	if to.Before(from) {
		return from, to, fmt.Errorf("%w: 'to' is before 'from'", apperrors.ErrValidation)
	}
	return from, to, nil
}

// GetGSTSummary nets output against input GST for the window
func (s *taxService) GetGSTSummary(ctx context.Context, tenantID string, from, to time.Time, userID string) (*domain.GSTSummary, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	from, to, err := window(from, to)
	if err != nil {
		return nil, err
	}

	var output, input domain.TaxSplitTotals
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		output, err = s.taxRepo.SumByDirection(gctx, tenantID, domain.TaxOutput, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		input, err = s.taxRepo.SumByDirection(gctx, tenantID, domain.TaxInput, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to build GST summary", slog.String("tenant_id", tenantID))
		return nil, err
	}
	summary := domain.NewGSTSummary(from, to, output, input)
	return &summary, nil
}

// GetTDSSummary totals withholding by section
func (s *taxService) GetTDSSummary(ctx context.Context, tenantID string, from, to time.Time, userID string) (*domain.TDSSummary, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	from, to, err := window(from, to)
	if err != nil {
		return nil, err
	}
	sections, err := s.taxRepo.TDSBySection(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	summary := &domain.TDSSummary{From: from, To: to, Sections: sections, Total: decimal.Zero}
	if summary.Sections == nil {
		summary.Sections = []domain.TDSSectionTotal{}
	}
	for _, sec := range sections {
		summary.Total = summary.Total.Add(sec.TDSAmount)
	}
	return summary, nil
}

// GetInputCreditBalance returns unutilized and utilized input credit
func (s *taxService) GetInputCreditBalance(ctx context.Context, tenantID string, asOf time.Time, userID string) (*domain.InputCreditBalance, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	asOf = asOfOrToday(asOf)
	available, utilized, err := s.taxRepo.InputCredit(ctx, tenantID, asOf)
	if err != nil {
		return nil, err
	}
	return &domain.InputCreditBalance{AsOf: asOf, Available: available, Utilized: utilized}, nil
}

// MarkReported flags every transaction of the window as reported
func (s *taxService) MarkReported(ctx context.Context, tenantID string, from, to time.Time, userID string) (int64, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleAdmin); err != nil {
		return 0, err
	}
	from, to, err := window(from, to)
	if err != nil {
		return 0, err
	}
	n, err := s.taxRepo.MarkReported(ctx, tenantID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to mark tax transactions reported", slog.String("tenant_id", tenantID))
		return 0, err
	}
	s.LogInfo(ctx, "Tax transactions marked reported", slog.String("tenant_id", tenantID), slog.Int64("count", n))
	return n, nil
}
