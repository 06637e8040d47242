// Package quality 实现阈值质量门禁。
// 门禁只消费聚合完成的扫描结果，产出确定性的违规列表，
// 供终端报告与 CI 退出码使用。
package quality

import (
	"fmt"

	"srcstat/internal/model"
)

// Severity 表示违规严重级别。
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Thresholds 是质量门禁阈值集合。
// 字段为零表示对应规则关闭。
type Thresholds struct {
	MaxFileLines     int `mapstructure:"max_file_lines" json:"max_file_lines" yaml:"max_file_lines"`
	MaxFunctionLines int `mapstructure:"max_function_lines" json:"max_function_lines" yaml:"max_function_lines"`
	MaxComplexity    int `mapstructure:"max_complexity" json:"max_complexity" yaml:"max_complexity"`
	MaxParameters    int `mapstructure:"max_parameters" json:"max_parameters" yaml:"max_parameters"`
	MaxClassMethods  int `mapstructure:"max_class_methods" json:"max_class_methods" yaml:"max_class_methods"`
	MaxClassLines    int `mapstructure:"max_class_lines" json:"max_class_lines" yaml:"max_class_lines"`
	MaxIncludes      int `mapstructure:"max_includes" json:"max_includes" yaml:"max_includes"`
}

// DefaultThresholds 返回开箱即用的默认阈值。
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxFileLines:     500,
		MaxFunctionLines: 50,
		MaxComplexity:    10,
		MaxParameters:    5,
		MaxClassMethods:  20,
		MaxClassLines:    300,
		MaxIncludes:      15,
	}
}

// Violation 表示一条门禁违规。
type Violation struct {
	Rule     string   `json:"rule" yaml:"rule"`
	Message  string   `json:"message" yaml:"message"`
	Path     string   `json:"path" yaml:"path"`
	Subject  string   `json:"subject,omitempty" yaml:"subject,omitempty"`
	Line     int      `json:"line,omitempty" yaml:"line,omitempty"`
	Severity Severity `json:"severity" yaml:"severity"`
	Value    int64    `json:"value" yaml:"value"`
	Limit    int64    `json:"limit" yaml:"limit"`
}

// Check 对扫描结果执行全部门禁规则。
// 输出顺序跟随文件与声明的出现顺序，保证可跨次比较。
func Check(result model.ScanResult, thresholds Thresholds) []Violation {
	var violations []Violation

	for _, file := range result.Files {
		violations = append(violations, checkFile(file, thresholds)...)
	}
	return violations
}

func checkFile(file model.FileReport, t Thresholds) []Violation {
	var violations []Violation

	if t.MaxFileLines > 0 && file.Lines.Total > int64(t.MaxFileLines) {
		violations = append(violations, Violation{
			Rule:     "max_file_lines",
			Message:  fmt.Sprintf("file has %d lines, limit is %d", file.Lines.Total, t.MaxFileLines),
			Path:     file.Path,
			Severity: SeverityWarning,
			Value:    file.Lines.Total,
			Limit:    int64(t.MaxFileLines),
		})
	}

	if t.MaxIncludes > 0 && len(file.Includes) > t.MaxIncludes {
		violations = append(violations, Violation{
			Rule:     "max_includes",
			Message:  fmt.Sprintf("file has %d includes, limit is %d", len(file.Includes), t.MaxIncludes),
			Path:     file.Path,
			Severity: SeverityWarning,
			Value:    int64(len(file.Includes)),
			Limit:    int64(t.MaxIncludes),
		})
	}

	methodsByOwner := make(map[string]int)
	for _, decl := range file.Declarations {
		if decl.Kind == model.DeclMethod && decl.Owner != "" {
			methodsByOwner[decl.Owner]++
		}
	}

	for _, decl := range file.Declarations {
		declLines := int64(decl.EndLine - decl.StartLine + 1)

		switch decl.Kind {
		case model.DeclFunction, model.DeclMethod:
			if t.MaxComplexity > 0 && decl.Complexity > t.MaxComplexity {
				violations = append(violations, Violation{
					Rule:     "max_complexity",
					Message:  fmt.Sprintf("%s has cyclomatic complexity %d, limit is %d", decl.Key(), decl.Complexity, t.MaxComplexity),
					Path:     file.Path,
					Subject:  decl.Key(),
					Line:     decl.StartLine,
					Severity: SeverityError,
					Value:    int64(decl.Complexity),
					Limit:    int64(t.MaxComplexity),
				})
			}
			if t.MaxFunctionLines > 0 && declLines > int64(t.MaxFunctionLines) {
				violations = append(violations, Violation{
					Rule:     "max_function_lines",
					Message:  fmt.Sprintf("%s spans %d lines, limit is %d", decl.Key(), declLines, t.MaxFunctionLines),
					Path:     file.Path,
					Subject:  decl.Key(),
					Line:     decl.StartLine,
					Severity: SeverityWarning,
					Value:    declLines,
					Limit:    int64(t.MaxFunctionLines),
				})
			}
			if t.MaxParameters > 0 && len(decl.Parameters) > t.MaxParameters {
				violations = append(violations, Violation{
					Rule:     "max_parameters",
					Message:  fmt.Sprintf("%s has %d parameters, limit is %d", decl.Key(), len(decl.Parameters), t.MaxParameters),
					Path:     file.Path,
					Subject:  decl.Key(),
					Line:     decl.StartLine,
					Severity: SeverityWarning,
					Value:    int64(len(decl.Parameters)),
					Limit:    int64(t.MaxParameters),
				})
			}
		case model.DeclClass, model.DeclStruct:
			if t.MaxClassLines > 0 && declLines > int64(t.MaxClassLines) {
				violations = append(violations, Violation{
					Rule:     "max_class_lines",
					Message:  fmt.Sprintf("%s spans %d lines, limit is %d", decl.Name, declLines, t.MaxClassLines),
					Path:     file.Path,
					Subject:  decl.Name,
					Line:     decl.StartLine,
					Severity: SeverityWarning,
					Value:    declLines,
					Limit:    int64(t.MaxClassLines),
				})
			}
			if methods := methodsByOwner[decl.Name]; t.MaxClassMethods > 0 && methods > t.MaxClassMethods {
				violations = append(violations, Violation{
					Rule:     "max_class_methods",
					Message:  fmt.Sprintf("%s has %d methods, limit is %d", decl.Name, methods, t.MaxClassMethods),
					Path:     file.Path,
					Subject:  decl.Name,
					Line:     decl.StartLine,
					Severity: SeverityWarning,
					Value:    int64(methods),
					Limit:    int64(t.MaxClassMethods),
				})
			}
		}
	}
	return violations
}

// CountBySeverity 统计各严重级别的违规数量。
func CountBySeverity(violations []Violation) map[Severity]int {
	counts := make(map[Severity]int)
	for _, violation := range violations {
		counts[violation.Severity]++
	}
	return counts
}
