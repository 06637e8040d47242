// Package report 提供 srcstat 的输出能力。
// 支持 table 控制台格式、lipgloss 摘要面板、JSON/YAML/CSV 导出
// 和 shields 风格的 SVG 徽章。
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"srcstat/internal/model"
	"srcstat/internal/quality"
)

// PrintTable 使用表格展示扫描结果。
func PrintTable(writer io.Writer, result model.ScanResult, violations []quality.Violation) error {
	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "SCANNED PATH\t%s\n\n", result.ScannedPath); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(tw, "FILE\tLANGUAGE\tTOTAL\tCODE\tCOMMENT\tBLANK\tCLASSES\tSTRUCTS\tMETHODS\tFUNCS\tAVG CC"); err != nil {
		return err
	}
	for _, item := range result.Files {
		if _, err := fmt.Fprintf(
			tw,
			"%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%.1f\n",
			item.Path,
			item.Language,
			item.Lines.Total,
			item.Lines.Code,
			item.Lines.Comment,
			item.Lines.Blank,
			item.Counts.Classes,
			item.Counts.Structs,
			item.Counts.Methods,
			item.Counts.Functions,
			item.AverageComplexity(),
		); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(tw, "\nLANGUAGE\tFILES\tTOTAL\tCODE\tCOMMENT\tBLANK\tCLASSES\tSTRUCTS\tMETHODS\tFUNCS"); err != nil {
		return err
	}
	for _, item := range result.Languages {
		if _, err := fmt.Fprintf(
			tw,
			"%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			item.Language,
			item.Files,
			item.Lines.Total,
			item.Lines.Code,
			item.Lines.Comment,
			item.Lines.Blank,
			item.Counts.Classes,
			item.Counts.Structs,
			item.Counts.Methods,
			item.Counts.Functions,
		); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(
		tw,
		"\nTOTAL\t%d files\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
		result.Total.Files,
		result.Total.Lines.Total,
		result.Total.Lines.Code,
		result.Total.Lines.Comment,
		result.Total.Lines.Blank,
		result.Total.Counts.Classes,
		result.Total.Counts.Structs,
		result.Total.Counts.Methods,
		result.Total.Counts.Functions,
	); err != nil {
		return err
	}

	if len(violations) > 0 {
		if _, err := fmt.Fprintln(tw, "\nVIOLATION\tSEVERITY\tFILE\tMESSAGE"); err != nil {
			return err
		}
		for _, item := range violations {
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.Rule, item.Severity, item.Path, item.Message); err != nil {
				return err
			}
		}
	}

	if len(result.Errors) > 0 {
		if _, err := fmt.Fprintln(tw, "\nERROR FILE\tMESSAGE"); err != nil {
			return err
		}
		for _, item := range result.Errors {
			if _, err := fmt.Fprintf(tw, "%s\t%s\n", item.Path, item.Error); err != nil {
				return err
			}
		}
	}

	return tw.Flush()
}

// Document 是带违规列表的完整导出模型。
// JSON/YAML 导出共用该结构，保证两种格式字段一致。
type Document struct {
	Result     model.ScanResult    `json:"result" yaml:"result"`
	Violations []quality.Violation `json:"violations,omitempty" yaml:"violations,omitempty"`
}

// PrintJSON 把扫描结果按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, document Document) error {
	content, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteJSONFile 将 JSON 结果导出到指定路径。
// 如果目录不存在会自动创建。
func WriteJSONFile(path string, document Document) error {
	content, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	return writeFile(path, content)
}

// writeFile 带目录创建地写出导出文件。
func writeFile(path string, content []byte) error {
	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, content, 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}
