package accounting

import (
	"fmt"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// SignedAmount applies the running balance sign to a debit/credit pair.
//
// DEBIT-normal accounts (ASSET/EXPENSE) grow with debits, CREDIT-normal
// accounts (LIABILITY/EQUITY/REVENUE) grow with credits.
func SignedAmount(line domain.JournalLine, nb domain.NormalBalance) (decimal.Decimal, error) {
	switch nb {
	case domain.NormalDebit, domain.NormalCredit:
		return domain.SignedByNormal(nb, line.DebitAmount, line.CreditAmount), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown normal balance '%s' encountered for account ID %s", nb, line.AccountID)
	}
}

// NextRunningBalance returns the balance after applying line to prior.
func NextRunningBalance(prior decimal.Decimal, line domain.JournalLine, nb domain.NormalBalance) (decimal.Decimal, error) {
	signed, err := SignedAmount(line, nb)
	if err != nil {
		return decimal.Zero, err
	}
	return prior.Add(signed), nil
}

// CalculateTax computes GST for base under code and place of supply.
//
// Inclusive codes reverse the tax out of base first. Intra-state supply
// splits the rate into CGST and SGST halves, inter-state and export charge
// IGST at the full rate. Every output is rounded to 2 decimals.
func CalculateTax(base decimal.Decimal, code domain.TaxCode, place domain.PlaceOfSupply) domain.TaxCalculation {
	base = domain.RoundAmount(base)
	calc := domain.TaxCalculation{
		TaxCode:       code.Code,
		PlaceOfSupply: place,
		BaseAmount:    base,
		TaxableAmount: base,
		Rate:          code.Rate,
		CGST:          decimal.Zero,
		SGST:          decimal.Zero,
		IGST:          decimal.Zero,
		TotalTax:      decimal.Zero,
		TotalAmount:   base,
	}
	if code.Category == domain.CategoryExempt || code.Category == domain.CategoryZeroRated || code.Rate.IsZero() {
		return calc
	}

	if code.CalculationMethod == domain.Inclusive {
		taxable := domain.RoundAmount(base.Mul(hundred).Div(hundred.Add(code.Rate)))
		total := base.Sub(taxable)
		calc.TaxableAmount = taxable
		calc.TotalTax = total
		if place == domain.IntraState {
			calc.CGST = domain.RoundAmount(total.Div(two))
			calc.SGST = total.Sub(calc.CGST)
		} else {
			calc.IGST = total
		}
		calc.TotalAmount = base
		return calc
	}

	if place == domain.IntraState {
		half := code.Rate.Div(two)
		calc.CGST = domain.RoundAmount(base.Mul(half).Div(hundred))
		calc.SGST = calc.CGST
		calc.TotalTax = calc.CGST.Add(calc.SGST)
	} else {
		calc.IGST = domain.RoundAmount(base.Mul(code.Rate).Div(hundred))
		calc.TotalTax = calc.IGST
	}
	calc.TotalAmount = base.Add(calc.TotalTax)
	return calc
}

// CalculateTDS computes withholding on amount. Amounts below the code's
// threshold are not subject to withholding.
func CalculateTDS(amount decimal.Decimal, code domain.TaxCode) domain.TDSCalculation {
	amount = domain.RoundAmount(amount)
	calc := domain.TDSCalculation{
		TaxCode:    code.Code,
		Section:    code.Section,
		Amount:     amount,
		Rate:       code.Rate,
		TDSAmount:  decimal.Zero,
		NetPayable: amount,
	}
	if code.ThresholdAmount.IsPositive() && amount.LessThan(code.ThresholdAmount) {
		return calc
	}
	calc.TDSAmount = domain.RoundAmount(amount.Mul(code.Rate).Div(hundred))
	calc.NetPayable = amount.Sub(calc.TDSAmount)
	return calc
}
