// Package output renders a computed portfolio report in the supported
// formats: console tables, CSV and JSON.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/dyaboykyl/investisizer/internal/domain"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic
// formatting).
type Formatter interface {
	Format(report *domain.PortfolioReport) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVFormatter{},
	JSONFormatter{},
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"table": "console",
	"text":  "console",
	"tsv":   "csv",
}

// NormalizeFormatName lowercases and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliasMap[n]; ok {
		return canonical
	}
	return n
}

// GetFormatterByName fetches a registered formatter, nil when unknown.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// WriteFormatted runs a formatter and writes the result to the given path,
// or stdout when the path is empty.
func WriteFormatted(f Formatter, report *domain.PortfolioReport, path string) error {
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("formatting %s output: %w", f.Name(), err)
	}
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
