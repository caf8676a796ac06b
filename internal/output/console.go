package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/dyaboykyl/investisizer/internal/domain"
)

// ConsoleFormatter renders the combined timeline and a per-asset summary as
// aligned text tables.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(report *domain.PortfolioReport) ([]byte, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintf(buf, "PORTFOLIO PROJECTION: %d years from %d (inflation %s%%)\n\n",
		report.Years, report.StartingYear, report.InflationRate.String())

	w := tabwriter.NewWriter(buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Year\tTotal Balance\tReal Balance\tContributions\tEarnings\tProperty Value\tMortgage Debt\tProperty Equity\tInvestments")
	for _, c := range report.Combined {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			report.StartingYear+c.Year,
			c.TotalBalance.StringFixed(2),
			c.RealTotalBalance.StringFixed(2),
			c.TotalAnnualContribution.StringFixed(2),
			c.TotalEarnings.StringFixed(2),
			c.TotalPropertyValue.StringFixed(2),
			c.TotalMortgageBalance.StringFixed(2),
			c.TotalPropertyEquity.StringFixed(2),
			c.TotalInvestmentBalance.StringFixed(2),
		)
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}

	fmt.Fprintln(buf, "\nASSETS")
	aw := tabwriter.NewWriter(buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(aw, "Name\tType\tEnabled\tFinal Balance\tFinal Real Balance")
	for _, a := range report.Assets {
		final := "-"
		finalReal := "-"
		if n := len(a.Results); n > 0 {
			final = a.Results[n-1].Balance.StringFixed(2)
			finalReal = a.Results[n-1].RealBalance.StringFixed(2)
		}
		fmt.Fprintf(aw, "%s\t%s\t%v\t%s\t%s\n", a.Name, a.Kind, a.Enabled, final, finalReal)
	}
	if err := aw.Flush(); err != nil {
		return nil, err
	}

	for _, a := range report.Assets {
		if a.Summary == nil {
			continue
		}
		s := a.Summary
		fmt.Fprintf(buf, "\n%s summary: initial %s, contributed %s, withdrawn %s, property flow +%s/-%s, earnings %s, final net gain %s\n",
			a.Name,
			s.InitialAmount.StringFixed(2),
			s.TotalContributed.StringFixed(2),
			s.TotalWithdrawn.StringFixed(2),
			s.PropertyCashFlowContributed.StringFixed(2),
			s.PropertyCashFlowWithdrawn.StringFixed(2),
			s.TotalEarnings.StringFixed(2),
			s.FinalNetGain.StringFixed(2),
		)
	}

	return buf.Bytes(), nil
}
