package service

import "github.com/narendrababuts/AutoShopPro/internal/model"

// CalculateJobTotal derives the billable amount for a job card.
//
// An explicit positive TotalPrice wins outright and every other field is
// ignored. Otherwise the total accumulates manual labor cost, part lines
// (quantity x unit price), hourly labor (only when both hours and rate are
// set), and selected service prices. Absent values contribute zero; negative
// inputs pass through unchanged and no rounding is applied here — callers
// display raw values.
func CalculateJobTotal(card *model.JobCard) float64 {
	if card.TotalPrice > 0 {
		return card.TotalPrice
	}

	total := card.ManualLaborCost

	for _, part := range card.Parts {
		total += part.Quantity * part.UnitPrice
	}

	if card.LaborHours != 0 && card.HourlyRate != 0 {
		total += card.LaborHours * card.HourlyRate
	}

	for _, svc := range card.SelectedServices {
		total += svc.Price
	}

	return total
}
