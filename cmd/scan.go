package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"srcstat/internal/config"
	"srcstat/internal/lang"
	"srcstat/internal/quality"
	"srcstat/internal/report"
	"srcstat/internal/scanner"
)

// scanOptions 存放 scan 命令的可配置参数。
// 命令行参数的优先级高于配置文件。
type scanOptions struct {
	format           string
	output           string
	workers          int
	excludes         []string
	languages        []string
	topN             int
	failOnViolations bool
}

// newScanCmd 创建 scan 子命令。
// 示例：
//
//	srcstat scan .
//	srcstat scan ./project --format json --output result.json
//	srcstat scan ./src --lang Go --lang Java --fail-on-violations
func newScanCmd(registry *lang.Registry) *cobra.Command {
	options := scanOptions{}

	scanCmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "扫描目录或文件并输出结构度量信息",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig()
			applyConfigDefaults(cmd, &options, cfg)

			format := strings.ToLower(strings.TrimSpace(options.format))
			switch format {
			case "table", "summary", "json", "yaml", "csv", "badges":
			default:
				return errors.New("unsupported format, allowed values: table, summary, json, yaml, csv, badges")
			}

			service := scanner.NewService(registry, scanner.Options{
				Workers:   options.workers,
				Excludes:  options.excludes,
				Languages: options.languages,
			})
			result, err := service.ScanPath(args[0])
			if err != nil {
				return err
			}

			violations := quality.Check(result, cfg.Thresholds)
			document := report.Document{Result: result, Violations: violations}

			if err := renderResult(cmd, format, options, document); err != nil {
				return err
			}

			if options.failOnViolations && len(violations) > 0 {
				return fmt.Errorf("quality gate failed with %d violations", len(violations))
			}
			return nil
		},
	}

	scanCmd.Flags().StringVar(&options.format, "format", "", "输出格式: table, summary, json, yaml, csv, badges")
	scanCmd.Flags().StringVar(&options.output, "output", "", "导出目标：json/yaml 为文件路径，csv/badges 为目录")
	scanCmd.Flags().IntVar(&options.workers, "workers", 0, "并发 worker 数量，0 表示按 CPU 核数")
	scanCmd.Flags().StringSliceVar(&options.excludes, "exclude", nil, "排除模式，可重复指定（如 --exclude node_modules --exclude '*_test.go'）")
	scanCmd.Flags().StringSliceVar(&options.languages, "lang", nil, "语言白名单，可重复指定（如 --lang Go --lang 'C/C++'）")
	scanCmd.Flags().IntVar(&options.topN, "top", 0, "summary 格式中复杂度排行的数量")
	scanCmd.Flags().BoolVar(&options.failOnViolations, "fail-on-violations", false, "存在门禁违规时以非零状态码退出")

	return scanCmd
}

// applyConfigDefaults 用配置文件的值补齐未显式指定的命令行参数。
func applyConfigDefaults(cmd *cobra.Command, options *scanOptions, cfg *config.Config) {
	if !cmd.Flags().Changed("format") || options.format == "" {
		options.format = cfg.Output.Format
	}
	if !cmd.Flags().Changed("output") {
		options.output = cfg.Output.Path
	}
	if !cmd.Flags().Changed("workers") {
		options.workers = cfg.Scan.Workers
	}
	if !cmd.Flags().Changed("top") {
		options.topN = cfg.Output.TopN
	}
	// 排除模式做并集，配置文件里的默认排除始终生效。
	options.excludes = append(append([]string(nil), cfg.Scan.Exclude...), options.excludes...)
	if len(options.languages) == 0 {
		options.languages = cfg.Scan.Languages
	}
}

// renderResult 按格式分发输出。
func renderResult(cmd *cobra.Command, format string, options scanOptions, document report.Document) error {
	out := cmd.OutOrStdout()

	switch format {
	case "table":
		return report.PrintTable(out, document.Result, document.Violations)
	case "summary":
		return report.PrintSummary(out, document.Result, document.Violations, options.topN)
	case "json":
		if err := report.PrintJSON(out, document); err != nil {
			return err
		}
		if path := strings.TrimSpace(options.output); path != "" {
			if err := report.WriteJSONFile(path, document); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "\nJSON exported to %s\n", path)
		}
		return nil
	case "yaml":
		if err := report.PrintYAML(out, document); err != nil {
			return err
		}
		if path := strings.TrimSpace(options.output); path != "" {
			if err := report.WriteYAMLFile(path, document); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "\nYAML exported to %s\n", path)
		}
		return nil
	case "csv":
		outputDir := strings.TrimSpace(options.output)
		if outputDir == "" {
			outputDir = "."
		}
		created, err := report.WriteCSVFiles(outputDir, document.Result)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "CSV exported: %s\n", strings.Join(created, ", "))
		return nil
	case "badges":
		outputDir := strings.TrimSpace(options.output)
		if outputDir == "" {
			outputDir = "."
		}
		created, err := report.WriteBadges(outputDir, document.Result)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "badges exported: %s\n", strings.Join(created, ", "))
		return nil
	default:
		return errors.New("unsupported format")
	}
}
