package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/dyaboykyl/investisizer/internal/domain"
)

// CSVFormatter emits one row per projection year of the combined timeline.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(report *domain.PortfolioReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Year", "CalendarYear",
		"TotalBalance", "RealTotalBalance",
		"TotalAnnualContribution", "RealTotalAnnualContribution",
		"TotalEarnings", "RealTotalEarnings",
		"TotalYearlyGain", "RealTotalYearlyGain",
		"TotalPropertyValue", "TotalMortgageBalance", "TotalPropertyEquity",
		"TotalInvestmentBalance",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, c := range report.Combined {
		row := []string{
			strconv.Itoa(c.Year),
			strconv.Itoa(report.StartingYear + c.Year),
			c.TotalBalance.StringFixed(2),
			c.RealTotalBalance.StringFixed(2),
			c.TotalAnnualContribution.StringFixed(2),
			c.RealTotalAnnualContribution.StringFixed(2),
			c.TotalEarnings.StringFixed(2),
			c.RealTotalEarnings.StringFixed(2),
			c.TotalYearlyGain.StringFixed(2),
			c.RealTotalYearlyGain.StringFixed(2),
			c.TotalPropertyValue.StringFixed(2),
			c.TotalMortgageBalance.StringFixed(2),
			c.TotalPropertyEquity.StringFixed(2),
			c.TotalInvestmentBalance.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
