// Shared helpers for registrar CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

// printJSON renders any value as indented JSON on stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// renderTable prints a header row and record rows through a tabwriter,
// trimming trailing whitespace from each line.
func renderTable(header []string, rows [][]string) {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(header, "\t"))
	underline := make([]string, len(header))
	for i, h := range header {
		underline[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(w, strings.Join(underline, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()

	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}
}

// shortID truncates an ID to its first 8 characters for table output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// parseDate parses a DD/MM/YYYY string. Empty input is the unset date.
func parseDate(s string) (types.Date, error) {
	if s == "" {
		return types.Date{}, nil
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return types.Date{}, fmt.Errorf("invalid date %q: want DD/MM/YYYY", s)
	}
	var d types.Date
	var err error
	if d.Day, err = strconv.Atoi(parts[0]); err != nil {
		return types.Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	if d.Month, err = strconv.Atoi(parts[1]); err != nil {
		return types.Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	if d.Year, err = strconv.Atoi(parts[2]); err != nil {
		return types.Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// orDash substitutes "-" for an empty optional value in table output.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
