package finance

import "math"

// DefaultFloorplanRate is the annual rate applied when a vehicle has no
// negotiated floorplan rate on file.
const DefaultFloorplanRate = 0.08

// FinancingQuote is the output of a standard annuity amortization.
type FinancingQuote struct {
	LoanAmount     float64 `json:"loan_amount"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalInterest  float64 `json:"total_interest"`
	TotalPayment   float64 `json:"total_payment"`
}

// CalculateFinancing amortizes a vehicle loan. Rounding happens only on the
// returned fields, never on intermediate values.
func CalculateFinancing(principal, downPayment, annualRatePercent float64, termMonths int) FinancingQuote {
	loan := principal - downPayment
	if loan <= 0 || termMonths <= 0 {
		return FinancingQuote{TotalPayment: Round2(downPayment)}
	}

	monthlyRate := annualRatePercent / 100 / 12
	var monthly float64
	if monthlyRate == 0 {
		monthly = loan / float64(termMonths)
	} else {
		factor := math.Pow(1+monthlyRate, float64(termMonths))
		monthly = loan * monthlyRate * factor / (factor - 1)
	}

	totalPayment := monthly*float64(termMonths) + downPayment
	return FinancingQuote{
		LoanAmount:     Round2(loan),
		MonthlyPayment: Round2(monthly),
		TotalInterest:  Round2(totalPayment - principal),
		TotalPayment:   Round2(totalPayment),
	}
}

// FloorplanCharges summarizes the carrying cost of one vehicle on the
// dealership's inventory credit line.
type FloorplanCharges struct {
	Cost            float64 `json:"cost"`
	DailyRate       float64 `json:"daily_rate"`
	TotalInterest   float64 `json:"total_interest"`
	MonthlyInterest float64 `json:"monthly_interest"`
}

// CalculateFloorplanInterest computes simple interest on the floorplanned
// cost of a vehicle. When no cost is recorded, 80% of the asking price is
// assumed.
func CalculateFloorplanInterest(cost, askingPrice, annualRate float64, daysInInventory int) FloorplanCharges {
	if annualRate <= 0 {
		annualRate = DefaultFloorplanRate
	}
	if cost <= 0 {
		cost = 0.8 * askingPrice
	}
	if daysInInventory < 0 {
		daysInInventory = 0
	}

	dailyRate := Round4(annualRate / 365)
	totalInterest := Round2(cost * dailyRate * float64(daysInInventory))

	var monthlyInterest float64
	if daysInInventory > 0 {
		monthlyInterest = Round2(totalInterest / float64(daysInInventory) * 30)
	}

	return FloorplanCharges{
		Cost:            Round2(cost),
		DailyRate:       dailyRate,
		TotalInterest:   totalInterest,
		MonthlyInterest: monthlyInterest,
	}
}

// MarginBreakdown is the cost waterfall from gross to net margin on a deal.
type MarginBreakdown struct {
	GrossMargin      float64 `json:"gross_margin"`
	FloorplanCost    float64 `json:"floorplan_cost"`
	ReconCost        float64 `json:"recon_cost"`
	OtherCosts       float64 `json:"other_costs"`
	NetMargin        float64 `json:"net_margin"`
	MarginPercentage float64 `json:"margin_percentage"`
}

// CalculateDealMargin walks the margin waterfall for a single deal.
func CalculateDealMargin(salePrice, vehicleCost, floorplanCost, reconCost, otherCosts float64) MarginBreakdown {
	gross := salePrice - vehicleCost
	net := gross - floorplanCost - reconCost - otherCosts

	var pct float64
	if salePrice > 0 {
		pct = math.Round(net/salePrice*10000) / 100
	}

	return MarginBreakdown{
		GrossMargin:      Round2(gross),
		FloorplanCost:    Round2(floorplanCost),
		ReconCost:        Round2(reconCost),
		OtherCosts:       Round2(otherCosts),
		NetMargin:        Round2(net),
		MarginPercentage: pct,
	}
}
