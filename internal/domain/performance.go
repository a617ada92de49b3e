package domain

import "github.com/shopspring/decimal"

// PerformanceStatus classifies a portfolio's unrealized result.
type PerformanceStatus string

const (
	PerformanceWinning   PerformanceStatus = "WINNING"
	PerformanceLosing    PerformanceStatus = "LOSING"
	PerformanceBreakEven PerformanceStatus = "BREAK_EVEN"
)

// ClassifyPerformance maps a net gain onto a performance status.
func ClassifyPerformance(netGain decimal.Decimal) PerformanceStatus {
	switch {
	case netGain.IsPositive():
		return PerformanceWinning
	case netGain.IsNegative():
		return PerformanceLosing
	default:
		return PerformanceBreakEven
	}
}
