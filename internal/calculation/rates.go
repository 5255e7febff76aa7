package calculation

import (
	"fmt"

	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/shopspring/decimal"
)

// RATE TABLE ASSUMPTIONS:
//
// 1. Bracket thresholds are expressed in VDU (national average monthly wage)
//    of the selected year and compared against annual cumulative income.
//
// 2. GPM: 2025 has two rates (20% / 32% above 60 VDU). 2026 adds a 25% step
//    above 36 VDU. The 2025 ladder repeats its top bracket so both years
//    have the same shape.
//
// 3. MB civil-contract income is taxed at 15% up to 12 VDU and then follows
//    the year's ladder. MB payments carry no VSD/PSD.
//
// 4. IV: GPM base is 70% of gross (30% flat expense deduction), the Sodra
//    base is 90% of that.
//
// 5. NPD applies to employment income only.

// MBIncomeLimitPerYear caps MB civil-contract income the optimizer may allocate
var MBIncomeLimitPerYear = decimal.NewFromInt(100000)

// PensionAccumulationRate is the voluntary pension top-up charged on the Sodra base
var PensionAccumulationRate = decimal.NewFromFloat(0.03)

var (
	vdu = map[domain.Year]decimal.Decimal{
		domain.Year2025: decimal.RequireFromString("2108.88"),
		domain.Year2026: decimal.RequireFromString("2312.15"),
	}
	mma = map[domain.Year]decimal.Decimal{
		domain.Year2025: decimal.NewFromInt(1038),
		domain.Year2026: decimal.NewFromInt(1153),
	}

	npdBase   = decimal.NewFromInt(747)
	psdRate   = decimal.RequireFromString("0.0698")
	vsdRate   = decimal.RequireFromString("0.1252")
	ivGPMBase = decimal.RequireFromString("0.7")
	ivSodra   = decimal.RequireFromString("0.63")
)

// UnsupportedYearError is returned for a year without rate tables
type UnsupportedYearError struct {
	Year domain.Year
}

func (e *UnsupportedYearError) Error() string {
	return fmt.Sprintf("unsupported tax year %d (supported: %v)", int(e.Year), domain.SupportedYears())
}

func checkYear(year domain.Year) error {
	if !year.Valid() {
		return &UnsupportedYearError{Year: year}
	}
	return nil
}

// VDU returns the average monthly wage of the year
func VDU(year domain.Year) (decimal.Decimal, error) {
	if err := checkYear(year); err != nil {
		return decimal.Zero, err
	}
	return vdu[year], nil
}

// MMA returns the minimum monthly wage of the year
func MMA(year domain.Year) (decimal.Decimal, error) {
	if err := checkYear(year); err != nil {
		return decimal.Zero, err
	}
	return mma[year], nil
}

// MinimumAnnualPSD is the health insurance every resident pays at least: MMA*12*PSD rate
func MinimumAnnualPSD(year domain.Year) (decimal.Decimal, error) {
	m, err := MMA(year)
	if err != nil {
		return decimal.Zero, err
	}
	return m.Mul(decimal.NewFromInt(12)).Mul(psdRate), nil
}

func vduTimes(year domain.Year, n int64) decimal.Decimal {
	return vdu[year].Mul(decimal.NewFromInt(n))
}

func bracket(threshold decimal.Decimal, rate string) domain.TaxBracket {
	return domain.TaxBracket{Threshold: threshold, Rate: decimal.RequireFromString(rate)}
}

func gpmLadder(year domain.Year, initialThreshold decimal.Decimal) domain.TaxBrackets {
	if year == domain.Year2025 {
		return domain.TaxBrackets{
			bracket(initialThreshold, "0.2"),
			bracket(vduTimes(year, 60), "0.32"),
			bracket(vduTimes(year, 60), "0.32"),
		}
	}
	return domain.TaxBrackets{
		bracket(initialThreshold, "0.2"),
		bracket(vduTimes(year, 36), "0.25"),
		bracket(vduTimes(year, 60), "0.32"),
	}
}

func employmentNPD(year domain.Year) domain.NPDSchedule {
	phaseOut := domain.NPDPhase{
		Start:  npdBase,
		Rate:   decimal.RequireFromString("0.49"),
		Offset: mma[year],
	}
	if year == domain.Year2025 {
		phaseOut.UpTo = decimal.RequireFromString("2387.29")
		return domain.NPDSchedule{
			Base:   npdBase,
			FullTo: mma[year],
			Phases: []domain.NPDPhase{
				phaseOut,
				{
					UpTo:   decimal.RequireFromString("2864.22"),
					Start:  decimal.NewFromInt(400),
					Rate:   decimal.RequireFromString("0.18"),
					Offset: decimal.NewFromInt(642),
				},
			},
		}
	}
	phaseOut.UpTo = decimal.RequireFromString("2677.49")
	return domain.NPDSchedule{Base: npdBase, FullTo: mma[year], Phases: []domain.NPDPhase{phaseOut}}
}

func baseRates(year domain.Year) domain.TaxRates {
	return domain.TaxRates{
		Year:     year,
		Category: domain.SourceEmployment,
		GPM:      gpmLadder(year, decimal.Zero),
		VSD: domain.TaxBrackets{
			{Threshold: decimal.Zero, Rate: vsdRate},
			{Threshold: vduTimes(year, 60), Rate: decimal.Zero},
		},
		PSD:       domain.TaxBrackets{{Threshold: decimal.Zero, Rate: psdRate}},
		GPMBase:   decimal.NewFromInt(1),
		SodraBase: decimal.NewFromInt(1),
		NPD:       employmentNPD(year),
	}
}

// yearRates are the three category tables of one year
type yearRates struct {
	employment domain.TaxRates
	iv         domain.TaxRates
	mb         domain.TaxRates
}

// rateTables is built once; the tables are shared and must not be modified
var rateTables = buildRateTables()

func buildRateTables() map[domain.Year]yearRates {
	tables := make(map[domain.Year]yearRates, len(domain.SupportedYears()))
	for _, year := range domain.SupportedYears() {
		iv := baseRates(year)
		iv.Category = domain.SourceIV
		iv.GPMBase = ivGPMBase
		iv.SodraBase = ivSodra
		iv.NPD = domain.NPDSchedule{}

		mb := baseRates(year)
		mb.Category = domain.SourceMB
		mb.GPM = append(domain.TaxBrackets{bracket(decimal.Zero, "0.15")}, gpmLadder(year, vduTimes(year, 12))...)
		mb.NPD = domain.NPDSchedule{}

		tables[year] = yearRates{employment: baseRates(year), iv: iv, mb: mb}
	}
	return tables
}

// EmploymentRates returns the table for employment income
func EmploymentRates(year domain.Year) (domain.TaxRates, error) {
	if err := checkYear(year); err != nil {
		return domain.TaxRates{}, err
	}
	return rateTables[year].employment, nil
}

// IVRates returns the table for individual activity income
func IVRates(year domain.Year) (domain.TaxRates, error) {
	if err := checkYear(year); err != nil {
		return domain.TaxRates{}, err
	}
	return rateTables[year].iv, nil
}

// MBRates returns the table for MB civil-contract income and dividends
func MBRates(year domain.Year) (domain.TaxRates, error) {
	if err := checkYear(year); err != nil {
		return domain.TaxRates{}, err
	}
	return rateTables[year].mb, nil
}

// ProfitTaxRates are the MB corporate profit tax options of a year
type ProfitTaxRates struct {
	GracePeriodMonths int
	LimitPerYear      decimal.Decimal
	ReducedRate       decimal.Decimal
	MainRate          decimal.Decimal
	InfoURL           string
}

// ProfitTaxRatesFor returns the profit tax options of the year
func ProfitTaxRatesFor(year domain.Year) (ProfitTaxRates, error) {
	if err := checkYear(year); err != nil {
		return ProfitTaxRates{}, err
	}
	r := ProfitTaxRates{
		GracePeriodMonths: 12,
		LimitPerYear:      decimal.NewFromInt(300000),
		ReducedRate:       decimal.RequireFromString("0.06"),
		MainRate:          decimal.RequireFromString("0.16"),
		InfoURL:           "https://www.vmi.lt/evmi/pelno-mokestis",
	}
	if year == domain.Year2026 {
		r.ReducedRate = decimal.RequireFromString("0.07")
		r.MainRate = decimal.RequireFromString("0.17")
	}
	return r, nil
}

// BracketInfo is one row of the rate legend
type BracketInfo struct {
	Label       string
	Sublabel    string
	IncomeRange string
	GPM         decimal.Decimal
	VSD         decimal.Decimal
	PSD         decimal.Decimal
}

// BaseBrackets returns the employment rate legend of the year. Rates are fractions.
func BaseBrackets(year domain.Year) ([]BracketInfo, error) {
	r, err := EmploymentRates(year)
	if err != nil {
		return nil, err
	}
	v36 := vduTimes(year, 36).StringFixed(2)
	v60 := vduTimes(year, 60).StringFixed(2)

	mid := r.GPM[1].Rate
	if year == domain.Year2025 {
		mid = r.GPM[0].Rate
	}
	return []BracketInfo{
		{
			Label:       "up to 36 VDU",
			Sublabel:    "annual income",
			IncomeRange: "0 - " + v36 + " EUR",
			GPM:         r.GPM[0].Rate,
			VSD:         vsdRate,
			PSD:         psdRate,
		},
		{
			Label:       "36 - 60 VDU",
			Sublabel:    "annual income",
			IncomeRange: v36 + " - " + v60 + " EUR",
			GPM:         mid,
			VSD:         vsdRate,
			PSD:         psdRate,
		},
		{
			Label:       "over 60 VDU",
			Sublabel:    "annual income",
			IncomeRange: "over " + v60 + " EUR",
			GPM:         r.GPM[len(r.GPM)-1].Rate,
			VSD:         decimal.Zero,
			PSD:         psdRate,
		},
	}, nil
}
