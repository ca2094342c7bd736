// Package economy implements the round-resolution engine of the survival game.
// It contains no external dependencies (especially no Bubble Tea) to keep the
// rules pure and testable. Platform layers drive it through the session package.
package economy

import (
	"errors"
	"fmt"
)

// PeriodCount is the number of periods in the fixed schedule.
const PeriodCount = 20

// ErrInvalidTable is returned when a period table breaks its invariants.
var ErrInvalidTable = errors.New("economy: invalid period table")

// PeriodRecord holds the fixed economic parameters of one period.
type PeriodRecord struct {
	Period       int     `yaml:"period" json:"period"`
	CPI          float64 `yaml:"cpi" json:"cpi"`
	InflationPct float64 `yaml:"inflation_pct" json:"inflation_pct"`
	MinSpend     float64 `yaml:"min_spend" json:"min_spend"`
	Wage         float64 `yaml:"wage" json:"wage"`
	GDPIndex     float64 `yaml:"gdp_index" json:"gdp_index"`
	GrowthPct    float64 `yaml:"growth_pct" json:"growth_pct"`
}

// Table is an immutable, ordered sequence of period records.
// The zero value is an empty table; build one with NewTable.
type Table struct {
	version string
	records []PeriodRecord
}

// NewTable validates the records and returns a table holding its own copy.
// Periods must be contiguous starting at 1, and every period must have a
// positive minimum spend and wage.
//
// Any non-empty length is accepted, and a game on a short table is won after
// its last row. Tables loaded for play go through config.TableFromFile, which
// requires exactly PeriodCount rows.
func NewTable(version string, records []PeriodRecord) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no periods", ErrInvalidTable)
	}

	for i, r := range records {
		if r.Period != i+1 {
			return nil, fmt.Errorf("%w: row %d has period %d, want %d", ErrInvalidTable, i, r.Period, i+1)
		}
		if r.MinSpend <= 0 {
			return nil, fmt.Errorf("%w: period %d has non-positive min_spend %.2f", ErrInvalidTable, r.Period, r.MinSpend)
		}
		if r.Wage <= 0 {
			return nil, fmt.Errorf("%w: period %d has non-positive wage %.2f", ErrInvalidTable, r.Period, r.Wage)
		}
	}

	owned := make([]PeriodRecord, len(records))
	copy(owned, records)

	return &Table{version: version, records: owned}, nil
}

// Version returns the table's version label.
func (t *Table) Version() string {
	return t.version
}

// Len returns the number of periods.
func (t *Table) Len() int {
	return len(t.records)
}

// Period returns the record for a 1-based period.
// ok is false when the period is outside the table.
func (t *Table) Period(period int) (PeriodRecord, bool) {
	if period < 1 || period > len(t.records) {
		return PeriodRecord{}, false
	}
	return t.records[period-1], true
}

// Records returns a copy of all records in period order.
func (t *Table) Records() []PeriodRecord {
	out := make([]PeriodRecord, len(t.records))
	copy(out, t.records)
	return out
}

// DefaultVersion labels the built-in schedule.
const DefaultVersion = "2024.1"

// defaultRecords is the built-in 20-period schedule.
var defaultRecords = []PeriodRecord{
	{Period: 1, CPI: 100.00, InflationPct: 5.00, MinSpend: 650.00, Wage: 1000.00, GDPIndex: 100.00, GrowthPct: 2.00},
	{Period: 2, CPI: 105.00, InflationPct: 5.00, MinSpend: 682.50, Wage: 1000.00, GDPIndex: 97.00, GrowthPct: -3.00},
	{Period: 3, CPI: 111.30, InflationPct: 6.00, MinSpend: 716.63, Wage: 1000.00, GDPIndex: 98.80, GrowthPct: 1.86},
	{Period: 4, CPI: 119.09, InflationPct: 7.00, MinSpend: 759.62, Wage: 1000.00, GDPIndex: 93.50, GrowthPct: -5.36},
	{Period: 5, CPI: 128.62, InflationPct: 8.00, MinSpend: 812.79, Wage: 1000.00, GDPIndex: 91.20, GrowthPct: -2.46},
	{Period: 6, CPI: 140.20, InflationPct: 9.00, MinSpend: 877.83, Wage: 1100.00, GDPIndex: 94.80, GrowthPct: 3.95},
	{Period: 7, CPI: 154.22, InflationPct: 10.00, MinSpend: 956.87, Wage: 1100.00, GDPIndex: 96.20, GrowthPct: 1.48},
	{Period: 8, CPI: 171.18, InflationPct: 11.00, MinSpend: 1052.55, Wage: 1100.00, GDPIndex: 92.00, GrowthPct: -4.37},
	{Period: 9, CPI: 191.73, InflationPct: 12.00, MinSpend: 1168.30, Wage: 1100.00, GDPIndex: 94.30, GrowthPct: 2.50},
	{Period: 10, CPI: 216.65, InflationPct: 13.00, MinSpend: 1308.56, Wage: 1100.00, GDPIndex: 90.00, GrowthPct: -4.56},
	{Period: 11, CPI: 246.98, InflationPct: 14.00, MinSpend: 1478.64, Wage: 1250.00, GDPIndex: 93.60, GrowthPct: 4.00},
	{Period: 12, CPI: 284.03, InflationPct: 15.00, MinSpend: 1685.64, Wage: 1250.00, GDPIndex: 95.00, GrowthPct: 1.50},
	{Period: 13, CPI: 330.47, InflationPct: 16.35, MinSpend: 1938.50, Wage: 1250.00, GDPIndex: 91.00, GrowthPct: -4.21},
	{Period: 14, CPI: 388.65, InflationPct: 17.61, MinSpend: 2255.46, Wage: 1250.00, GDPIndex: 88.30, GrowthPct: -2.97},
	{Period: 15, CPI: 461.61, InflationPct: 18.77, MinSpend: 2652.54, Wage: 1250.00, GDPIndex: 91.90, GrowthPct: 4.08},
	{Period: 16, CPI: 553.93, InflationPct: 20.00, MinSpend: 3150.49, Wage: 1500.00, GDPIndex: 90.10, GrowthPct: -1.96},
	{Period: 17, CPI: 670.26, InflationPct: 21.00, MinSpend: 3780.57, Wage: 1500.00, GDPIndex: 92.50, GrowthPct: 2.66},
	{Period: 18, CPI: 817.71, InflationPct: 22.00, MinSpend: 4574.52, Wage: 1500.00, GDPIndex: 93.00, GrowthPct: 0.54},
	{Period: 19, CPI: 1004.78, InflationPct: 22.88, MinSpend: 5580.87, Wage: 1500.00, GDPIndex: 91.25, GrowthPct: -1.88},
	{Period: 20, CPI: 1245.93, InflationPct: 24.00, MinSpend: 6857.62, Wage: 1500.00, GDPIndex: 89.00, GrowthPct: -2.47},
}

// DefaultTable returns the built-in schedule.
func DefaultTable() *Table {
	t, err := NewTable(DefaultVersion, defaultRecords)
	if err != nil {
		// The built-in rows are static; failing here is a programming error.
		panic(err)
	}
	return t
}
