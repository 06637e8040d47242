// Package analyzer 把词法、结构扫描与复杂度求值串成单文件流水线。
package analyzer

import (
	"fmt"
	"os"
	"strings"

	"srcstat/internal/lang"
	"srcstat/internal/lexer"
	"srcstat/internal/model"
	"srcstat/internal/structure"
)

// AnalyzeFile 读取并分析单个源文件。
func AnalyzeFile(dialect *lang.Dialect, path string) (model.FileReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FileReport{}, fmt.Errorf("read source file: %w", err)
	}
	return AnalyzeSource(dialect, path, string(data)), nil
}

// AnalyzeSource 对内存中的源码执行完整分析。
// 同一输入总是产出相同结果，声明按源码出现顺序排列。
func AnalyzeSource(dialect *lang.Dialect, path string, source string) model.FileReport {
	tokens, lexDiags := lexer.Lex(dialect, source)
	parsed := structure.Parse(dialect, tokens)
	structure.EvaluateComplexity(dialect, tokens, parsed.Declarations)

	report := model.FileReport{
		Path:     path,
		Language: dialect.Name,
		Lines:    countLines(source, tokens),
		Includes: parsed.Includes,
	}
	report.Diagnostics = append(report.Diagnostics, lexDiags...)
	report.Diagnostics = append(report.Diagnostics, parsed.Diagnostics...)

	for _, pd := range parsed.Declarations {
		report.Declarations = append(report.Declarations, pd.Decl)
		switch pd.Decl.Kind {
		case model.DeclClass:
			report.Counts.Classes++
		case model.DeclStruct:
			report.Counts.Structs++
		case model.DeclMethod:
			report.Counts.Methods++
		case model.DeclFunction:
			report.Counts.Functions++
		}
	}
	return report
}

// countLines 基于记号行区间做行归类。
// 同时含代码与注释的行计入代码行；只含注释的行计入注释行；
// 其余为空白行。
func countLines(source string, tokens []lexer.Token) model.LineMetrics {
	if source == "" {
		return model.LineMetrics{}
	}

	total := strings.Count(source, "\n") + 1
	if strings.HasSuffix(source, "\n") {
		total--
	}
	if total <= 0 {
		return model.LineMetrics{}
	}

	const (
		markCode    = 1
		markComment = 2
	)
	marks := make([]int, total+1)

	markRange := func(from int, to int, mark int) {
		for line := from; line <= to && line <= total; line++ {
			if line >= 1 {
				marks[line] |= mark
			}
		}
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case lexer.KindEOF:
		case lexer.KindComment:
			markRange(tok.Line, tok.EndLine, markComment)
		default:
			markRange(tok.Line, tok.EndLine, markCode)
		}
	}

	metrics := model.LineMetrics{Total: int64(total)}
	for line := 1; line <= total; line++ {
		switch {
		case marks[line]&markCode != 0:
			metrics.Code++
		case marks[line]&markComment != 0:
			metrics.Comment++
		default:
			metrics.Blank++
		}
	}
	return metrics
}
