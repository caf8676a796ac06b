// Command investisizer projects a portfolio of investments and mortgaged
// properties year by year and renders the combined timeline.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dyaboykyl/investisizer/internal/calculation"
	"github.com/dyaboykyl/investisizer/internal/config"
	"github.com/dyaboykyl/investisizer/internal/output"
	"github.com/dyaboykyl/investisizer/internal/portfolio"
)

var (
	flagFile    string
	flagFormat  string
	flagOut     string
	flagYears   int
	flagVerbose bool
)

// zerologAdapter bridges the engine's Logger interface onto zerolog.
type zerologAdapter struct {
	log zerolog.Logger
}

func (z zerologAdapter) Debugf(format string, args ...any) { z.log.Debug().Msgf(format, args...) }
func (z zerologAdapter) Infof(format string, args ...any)  { z.log.Info().Msgf(format, args...) }
func (z zerologAdapter) Warnf(format string, args ...any)  { z.log.Warn().Msgf(format, args...) }
func (z zerologAdapter) Errorf(format string, args ...any) { z.log.Error().Msgf(format, args...) }

func newLogger() calculation.Logger {
	if !flagVerbose {
		return calculation.NopLogger{}
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(zerolog.DebugLevel)
	return zerologAdapter{log: zl}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "investisizer",
		Short: "Year-by-year projection of investments and mortgaged properties",
		Long: `investisizer projects a portfolio of user-defined assets (cash/market
investments and mortgaged properties), producing yearly balances,
contributions, gains, mortgage amortization, tax-adjusted sale proceeds
and cross-asset cash flows.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newProjectCmd())
	root.AddCommand(newLoadCmd())
	root.AddCommand(newExampleCmd())
	return root
}

func newLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Render a previously saved portfolio state (JSON)",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			data, err := os.ReadFile(flagFile)
			if err != nil {
				return err
			}
			p, err := portfolio.FromJSON(data, logger)
			if err != nil {
				// A corrupt save must not crash the tool; degrade to the
				// default portfolio and tell the user.
				logger.Errorf("could not decode saved portfolio: %v; using defaults", err)
				p = defaultPortfolio(logger)
			}
			formatter := output.GetFormatterByName(flagFormat)
			if formatter == nil {
				return fmt.Errorf("unknown output format %q (available: console, csv, json)", flagFormat)
			}
			return output.WriteFormatted(formatter, p.BuildReport(), flagOut)
		},
	}
	cmd.Flags().StringVarP(&flagFile, "file", "f", "portfolio.json", "saved portfolio state file")
	cmd.Flags().StringVar(&flagFormat, "format", "console", "output format: console, csv or json")
	cmd.Flags().StringVarP(&flagOut, "output", "o", "", "write output to a file instead of stdout")
	return cmd
}

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Compute a portfolio projection from a definition file",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			parser := config.NewInputParser()
			parser.Logger = logger

			p, err := parser.LoadFromFile(flagFile)
			if err != nil {
				return err
			}
			if flagYears > 0 {
				p.SetYears(flagYears)
			}
			logger.Infof("projecting %d assets over %d years", len(p.Assets()), p.Years)

			formatter := output.GetFormatterByName(flagFormat)
			if formatter == nil {
				return fmt.Errorf("unknown output format %q (available: console, csv, json)", flagFormat)
			}
			return output.WriteFormatted(formatter, p.BuildReport(), flagOut)
		},
	}
	cmd.Flags().StringVarP(&flagFile, "file", "f", "portfolio.yaml", "portfolio definition file (YAML or JSON)")
	cmd.Flags().StringVar(&flagFormat, "format", "console", "output format: console, csv or json")
	cmd.Flags().StringVarP(&flagOut, "output", "o", "", "write output to a file instead of stdout")
	cmd.Flags().IntVar(&flagYears, "years", 0, "override the projection horizon")
	return cmd
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print a starter portfolio definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), examplePortfolio)
			return err
		},
	}
}

const examplePortfolio = `# investisizer portfolio definition
years: 20
inflationRate: 2.5
startingYear: 2024
assets:
  - name: brokerage
    type: investment
    investment:
      initialAmount: 50000
      rateOfReturn: 7
      annualContribution: 12000
      inflationAdjustedContributions: true
  - name: rental
    type: property
    property:
      purchasePrice: 500000
      downPaymentPercentage: 20
      interestRate: 6.5
      loanTerm: 30
      yearsBought: 2
      propertyGrowthRate: 3
      isRentalProperty: true
      monthlyRent: 2800
      rentGrowthRate: 3
      vacancyRate: 5
      maintenanceRate: 5
      maintenanceBasis: rent
      includeManagementFee: true
      managementFeeRate: 10
      linkedInvestmentId: brokerage
      saleConfig:
        isPlannedForSale: true
        saleYear: 15
        sellingCostsPercentage: 6
        reinvestProceeds: true
        targetInvestmentId: brokerage
        filingStatus: married_joint
        annualIncome: 180000
        state: CA
`

// defaultPortfolio builds the fallback state used when a saved portfolio
// cannot be decoded.
func defaultPortfolio(logger calculation.Logger) *portfolio.Portfolio {
	return portfolio.New(logger)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
