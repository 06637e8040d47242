package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"srcstat/internal/model"
	"srcstat/internal/quality"
)

// 摘要面板的配色与样式，集中定义便于统一调整。
var (
	summaryPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#33A1FF")).
				Padding(0, 2)

	summaryTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#33A1FF"))

	summaryLabelStyle = lipgloss.NewStyle().Bold(true)

	gatePassStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#22C55E"))

	gateFailStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5555"))
)

// complexityEntry 是复杂度排行里的一行。
type complexityEntry struct {
	key        string
	path       string
	complexity int
}

// PrintSummary 输出 lipgloss 摘要面板：总览、复杂度排行和门禁状态。
func PrintSummary(writer io.Writer, result model.ScanResult, violations []quality.Violation, topN int) error {
	lines := []string{
		summaryTitleStyle.Render("srcstat"),
		"",
		fmt.Sprintf("%s %d", summaryLabelStyle.Render("Files:"), result.Total.Files),
		fmt.Sprintf("%s %d", summaryLabelStyle.Render("Total lines:"), result.Total.Lines.Total),
		fmt.Sprintf("%s %d", summaryLabelStyle.Render("Code lines:"), result.Total.Lines.Code),
		fmt.Sprintf("%s %d", summaryLabelStyle.Render("Classes:"), result.Total.Counts.Classes),
		fmt.Sprintf("%s %d", summaryLabelStyle.Render("Structs:"), result.Total.Counts.Structs),
		fmt.Sprintf("%s %d", summaryLabelStyle.Render("Methods:"), result.Total.Counts.Methods),
		fmt.Sprintf("%s %d", summaryLabelStyle.Render("Functions:"), result.Total.Counts.Functions),
		fmt.Sprintf("%s %d", summaryLabelStyle.Render("Languages:"), len(result.Languages)),
		fmt.Sprintf("%s %.1f", summaryLabelStyle.Render("Avg complexity:"), result.AverageComplexity()),
	}

	if _, err := fmt.Fprintln(writer, summaryPanelStyle.Render(strings.Join(lines, "\n"))); err != nil {
		return err
	}

	if err := printTopComplexity(writer, result, topN); err != nil {
		return err
	}
	return printGateStatus(writer, violations)
}

// printTopComplexity 输出复杂度最高的前 N 个函数/方法。
func printTopComplexity(writer io.Writer, result model.ScanResult, topN int) error {
	if topN <= 0 {
		return nil
	}

	var entries []complexityEntry
	for _, file := range result.Files {
		for _, decl := range file.Declarations {
			if decl.Kind == model.DeclFunction || decl.Kind == model.DeclMethod {
				entries = append(entries, complexityEntry{
					key:        decl.Key(),
					path:       file.Path,
					complexity: decl.Complexity,
				})
			}
		}
	}
	if len(entries) == 0 {
		return nil
	}

	// 复杂度降序，同值按名字排序，保证输出确定。
	sort.SliceStable(entries, func(i int, j int) bool {
		if entries[i].complexity != entries[j].complexity {
			return entries[i].complexity > entries[j].complexity
		}
		return entries[i].key < entries[j].key
	})
	if len(entries) > topN {
		entries = entries[:topN]
	}

	if _, err := fmt.Fprintf(writer, "\n%s\n", summaryTitleStyle.Render(fmt.Sprintf("Top %d by complexity", len(entries)))); err != nil {
		return err
	}
	for _, entry := range entries {
		if _, err := fmt.Fprintf(writer, "  %3d  %s  (%s)\n", entry.complexity, entry.key, entry.path); err != nil {
			return err
		}
	}
	return nil
}

// printGateStatus 输出门禁通过/失败状态行。
func printGateStatus(writer io.Writer, violations []quality.Violation) error {
	if len(violations) == 0 {
		_, err := fmt.Fprintf(writer, "\n%s\n", gatePassStyle.Render("quality gate passed"))
		return err
	}

	counts := quality.CountBySeverity(violations)
	_, err := fmt.Fprintf(
		writer,
		"\n%s\n",
		gateFailStyle.Render(fmt.Sprintf(
			"quality gate: %d violations (%d errors, %d warnings)",
			len(violations),
			counts[quality.SeverityError],
			counts[quality.SeverityWarning],
		)),
	)
	return err
}
