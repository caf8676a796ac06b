package output

import (
	"encoding/json"

	"github.com/dyaboykyl/investisizer/internal/domain"
)

// JSONFormatter serializes the full report as pretty-printed JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(report *domain.PortfolioReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
