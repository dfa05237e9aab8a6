// Package report renders console summary tables for saved collections.
package report

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"leaderswiki/internal/models"
	"leaderswiki/pkg/utils"
)

// SummaryTable renders a markdown-style table with one row per country:
// code, number of leaders, number with a non-empty biography, and the first
// leader's name as a sample. Columns are padded by display width so
// non-ASCII names keep the table aligned.
func SummaryTable(collection *models.Collection) string {
	rows := [][]string{
		{"Country", "Leaders", "With biography", "First leader"},
	}

	for _, code := range collection.Codes() {
		leaders, _ := collection.Get(code)

		withBio := 0
		for _, leader := range leaders {
			if leader.Biography != "" {
				withBio++
			}
		}

		first := ""
		if len(leaders) > 0 {
			first = utils.TruncateString(leaders[0].FullName(), 30)
		}

		rows = append(rows, []string{
			code,
			fmt.Sprintf("%d", len(leaders)),
			fmt.Sprintf("%d", withBio),
			first,
		})
	}

	return renderTable(rows)
}

// renderTable formats rows as a pipe-delimited table with a separator line
// under the header.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	colCount := len(rows[0])
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	// Calculate max display width per column
	widths := make([]int, colCount)

	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder

	for rowIdx, row := range rows {
		sb.WriteString("|")

		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			padding := widths[i] - runewidth.StringWidth(cell)
			sb.WriteString(" " + cell + strings.Repeat(" ", padding) + " |")
		}

		sb.WriteString("\n")

		if rowIdx == 0 {
			sb.WriteString("|")

			for i := 0; i < colCount; i++ {
				sb.WriteString(strings.Repeat("-", widths[i]+2) + "|")
			}

			sb.WriteString("\n")
		}
	}

	return sb.String()
}
