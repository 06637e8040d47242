package analyzer

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"srcstat/internal/lang"
	"srcstat/internal/model"
)

// sampleCpp 是贯穿分析流水线的标准 C++ 样例。
const sampleCpp = `#include <vector>
#include <string>

class Calculator {
public:
    Calculator(int initial) : value(initial) {}

    int add(int x) {
        if (x > 0) {
            value += x;
        } else if (x < 0) {
            value -= x;
        }
        return value;
    }

    void reset() {
        value = 0;
    }

private:
    int value;
};

struct Result {
    int total;
    std::string label;
};

int helper(const std::vector<int>& items) {
    return items.empty() ? 0 : items.front();
}
`

// TestAnalyzeSourceLineMetrics 验证互斥的行归类规则：
// 代码与注释混合的行计入代码行，四类之和等于总行数。
func TestAnalyzeSourceLineMetrics(t *testing.T) {
	source := strings.Join([]string{
		`package main`,          // 1 代码
		``,                      // 2 空白
		`// pure comment`,       // 3 注释
		`var x = 1 // trailing`, // 4 混合，计入代码
		`/*`,                    // 5 注释
		` block`,                // 6 注释
		`*/`,                    // 7 注释
		`var y = 2`,             // 8 代码
	}, "\n")

	report := AnalyzeSource(lang.NewGo(), "main.go", source)

	lines := report.Lines
	if lines.Total != 8 {
		t.Fatalf("expected total 8, got %d", lines.Total)
	}
	if lines.Code != 3 {
		t.Fatalf("expected code 3, got %d", lines.Code)
	}
	if lines.Comment != 4 {
		t.Fatalf("expected comment 4, got %d", lines.Comment)
	}
	if lines.Blank != 1 {
		t.Fatalf("expected blank 1, got %d", lines.Blank)
	}
	if lines.Total != lines.Code+lines.Comment+lines.Blank {
		t.Fatalf("line classes must be exclusive: %+v", lines)
	}
}

// TestAnalyzeSourceTrailingNewline 验证末尾换行不会多算一行。
func TestAnalyzeSourceTrailingNewline(t *testing.T) {
	report := AnalyzeSource(lang.NewGo(), "a.go", "package a\n")
	if report.Lines.Total != 1 || report.Lines.Code != 1 {
		t.Fatalf("unexpected metrics for trailing newline: %+v", report.Lines)
	}

	empty := AnalyzeSource(lang.NewGo(), "b.go", "")
	if empty.Lines.Total != 0 {
		t.Fatalf("empty source must report zero lines: %+v", empty.Lines)
	}
}

// TestAnalyzeSourceCounts 验证声明计数与复杂度映射的组装。
func TestAnalyzeSourceCounts(t *testing.T) {
	source := strings.Join([]string{
		`class Widget {`,
		`public:`,
		`    int size(int scale) {`,
		`        if (scale > 1) {`,
		`            return scale;`,
		`        }`,
		`        return 1;`,
		`    }`,
		`};`,
		``,
		`struct Box {};`,
		``,
		`int area(int w, int h) {`,
		`    return w > 0 && h > 0 ? w * h : 0;`,
		`}`,
	}, "\n")

	report := AnalyzeSource(lang.NewCpp(), "widget.cpp", source)

	if report.Language != "C/C++" {
		t.Fatalf("unexpected language: %q", report.Language)
	}
	counts := report.Counts
	if counts.Classes != 1 || counts.Structs != 1 || counts.Methods != 1 || counts.Functions != 1 {
		t.Fatalf("unexpected structure counts: %+v", counts)
	}

	complexity := report.ComplexityByKey()
	if complexity["Widget.size/1"] != 2 {
		t.Fatalf("expected Widget.size/1 complexity 2, got %+v", complexity)
	}
	if complexity["area/2"] != 3 {
		t.Fatalf("expected area/2 complexity 3 (&& + ternary), got %+v", complexity)
	}

	average := report.AverageComplexity()
	if average != 2.5 {
		t.Fatalf("expected average complexity 2.5, got %f", average)
	}
}

// TestAnalyzeSourceSampleCpp 用标准样例验证全流水线的组合结果：
// 一个类、一个结构体、三个方法（含构造函数）、一个自由函数。
func TestAnalyzeSourceSampleCpp(t *testing.T) {
	report := AnalyzeSource(lang.NewCpp(), "sample.cpp", sampleCpp)

	if len(report.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", report.Diagnostics)
	}

	counts := report.Counts
	if counts.Classes != 1 || counts.Structs != 1 || counts.Methods != 3 || counts.Functions != 1 {
		t.Fatalf("unexpected structure counts: %+v", counts)
	}

	if len(report.Includes) != 2 || report.Includes[0].Text != "vector" || report.Includes[1].Text != "string" {
		t.Fatalf("unexpected includes: %+v", report.Includes)
	}

	complexity := report.ComplexityByKey()
	if complexity["Calculator.add/1"] != 3 {
		t.Fatalf("expected Calculator.add/1 complexity 3 (if + else if), got %+v", complexity)
	}
	if complexity["Calculator.Calculator/1"] != 1 || complexity["Calculator.reset/0"] != 1 {
		t.Fatalf("bodies without decision points must report complexity 1: %+v", complexity)
	}
	if complexity["helper/1"] != 2 {
		t.Fatalf("expected helper/1 complexity 2 (ternary), got %+v", complexity)
	}
}

// TestAnalyzeSourceDeterministic 验证同一输入重复分析产出逐位一致的报告。
func TestAnalyzeSourceDeterministic(t *testing.T) {
	dialect := lang.NewCpp()

	first := AnalyzeSource(dialect, "sample.cpp", sampleCpp)
	second := AnalyzeSource(dialect, "sample.cpp", sampleCpp)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated analysis diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}

	kinds := make([]model.DeclKind, 0, len(first.Declarations))
	for _, decl := range first.Declarations {
		kinds = append(kinds, decl.Kind)
	}
	expected := []model.DeclKind{
		model.DeclClass, model.DeclMethod, model.DeclMethod, model.DeclMethod,
		model.DeclStruct, model.DeclFunction,
	}
	if !reflect.DeepEqual(kinds, expected) {
		t.Fatalf("declarations out of source order: %+v", kinds)
	}
}

// TestAnalyzeSourceHeaderOnly 验证只有注释与包含指令的文件
// 声明计数为零，导入原样记录。
func TestAnalyzeSourceHeaderOnly(t *testing.T) {
	source := strings.Join([]string{
		`// utility declarations`,
		`#include <vector>`,
		`#include "util.h"`,
	}, "\n")

	report := AnalyzeSource(lang.NewCpp(), "util.h", source)

	if report.Counts.Declarations() != 0 {
		t.Fatalf("expected zero declarations, got %+v", report.Counts)
	}
	if len(report.Includes) != 2 || report.Includes[0].Text != "vector" || report.Includes[1].Text != "util.h" {
		t.Fatalf("unexpected includes: %+v", report.Includes)
	}
	if len(report.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", report.Diagnostics)
	}
}

// TestAnalyzeFileMissing 验证文件不可读时返回包装后的错误。
func TestAnalyzeFileMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.go")
	_, err := AnalyzeFile(lang.NewGo(), missing)
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "read source file") {
		t.Fatalf("unexpected error: %v", err)
	}
}
