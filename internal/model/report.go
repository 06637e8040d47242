// Package model 定义 srcstat 的核心数据模型。
// 这些结构会被词法器、结构扫描器、聚合层、输出层和命令层共同使用。
package model

import (
	"fmt"
	"sort"
)

// DeclKind 表示一条声明记录的类别。
type DeclKind string

// 支持的声明类别。方法一定携带非空的 Owner。
const (
	DeclClass    DeclKind = "class"
	DeclStruct   DeclKind = "struct"
	DeclFunction DeclKind = "function"
	DeclMethod   DeclKind = "method"
)

// Parameter 表示签名中的一个参数。
// 类型文本按源码原样保留，默认值只记录“是否存在”标志。
type Parameter struct {
	Type       string `json:"type" yaml:"type"`
	Name       string `json:"name" yaml:"name"`
	HasDefault bool   `json:"has_default,omitempty" yaml:"has_default,omitempty"`
}

// Declaration 表示一条被识别的类/结构体/函数/方法声明。
//
// 约束说明：
// - Owner 仅对 method 有效，为所属类型名
// - Complexity 仅对 function/method 有效，最小值为 1
// - Decisions 是判定点数量，Complexity = Decisions + 1
type Declaration struct {
	Kind       DeclKind    `json:"kind" yaml:"kind"`
	Name       string      `json:"name" yaml:"name"`
	Owner      string      `json:"owner,omitempty" yaml:"owner,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	StartLine  int         `json:"start_line" yaml:"start_line"`
	EndLine    int         `json:"end_line" yaml:"end_line"`
	Decisions  int         `json:"decisions,omitempty" yaml:"decisions,omitempty"`
	Complexity int         `json:"complexity,omitempty" yaml:"complexity,omitempty"`
}

// Key 返回声明的稳定标识：所属类型 + 名称 + 参数个数。
// 该标识用于复杂度映射，保证报告可序列化、可跨次比较。
func (d Declaration) Key() string {
	if d.Owner != "" {
		return fmt.Sprintf("%s.%s/%d", d.Owner, d.Name, len(d.Parameters))
	}
	return fmt.Sprintf("%s/%d", d.Name, len(d.Parameters))
}

// Include 表示一条被识别的包含/导入指令。
// Text 按源码原样记录，不校验目标是否存在。
type Include struct {
	Text string `json:"text" yaml:"text"`
	Line int    `json:"line" yaml:"line"`
}

// 可恢复诊断类别。
const (
	DiagUnterminatedString  = "unterminated-string"
	DiagUnterminatedComment = "unterminated-comment"
	DiagUnmatchedBrace      = "unmatched-brace"
	DiagUnclosedScope       = "unclosed-scope"
)

// Diagnostic 表示一条可恢复的解析诊断。
// 诊断不会中断分析，只作为旁路信息附加在文件报告上。
type Diagnostic struct {
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
	Line    int    `json:"line" yaml:"line"`
}

// LineMetrics 表示一组行级统计值。
//
// 注意：
// - Total 表示总行数（每行计 1），四类互斥：Total = Code + Comment + Blank
// - 同时含代码与尾随注释的行计入 Code（例如: x := 1 // note）
// - Comment 仅用于整行只有注释的行
// - Blank 仅用于既无代码也无注释的空白行
type LineMetrics struct {
	Total   int64 `json:"total" yaml:"total"`
	Code    int64 `json:"code" yaml:"code"`
	Comment int64 `json:"comment" yaml:"comment"`
	Blank   int64 `json:"blank" yaml:"blank"`
}

// Add 将另一个统计结果叠加到当前对象。
func (m *LineMetrics) Add(other LineMetrics) {
	m.Total += other.Total
	m.Code += other.Code
	m.Comment += other.Comment
	m.Blank += other.Blank
}

// StructureCounts 表示一个文件的结构计数。
type StructureCounts struct {
	Classes   int64 `json:"classes" yaml:"classes"`
	Structs   int64 `json:"structs" yaml:"structs"`
	Methods   int64 `json:"methods" yaml:"methods"`
	Functions int64 `json:"functions" yaml:"functions"`
}

// Add 将另一个结构计数叠加到当前对象。
func (c *StructureCounts) Add(other StructureCounts) {
	c.Classes += other.Classes
	c.Structs += other.Structs
	c.Methods += other.Methods
	c.Functions += other.Functions
}

// Declarations 返回四类声明的总数。
func (c StructureCounts) Declarations() int64 {
	return c.Classes + c.Structs + c.Methods + c.Functions
}

// FileReport 表示单文件分析结果。
// 聚合完成后不再修改，输出层只读取。
type FileReport struct {
	Path         string          `json:"path" yaml:"path"`
	Language     string          `json:"language" yaml:"language"`
	Counts       StructureCounts `json:"counts" yaml:"counts"`
	Lines        LineMetrics     `json:"lines" yaml:"lines"`
	Declarations []Declaration   `json:"declarations,omitempty" yaml:"declarations,omitempty"`
	Includes     []Include       `json:"includes,omitempty" yaml:"includes,omitempty"`
	Diagnostics  []Diagnostic    `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// ComplexityByKey 返回“声明标识 -> 圈复杂度”的映射。
// 只包含 function/method 两类声明。
func (r FileReport) ComplexityByKey() map[string]int {
	result := make(map[string]int)
	for _, decl := range r.Declarations {
		if decl.Kind == DeclFunction || decl.Kind == DeclMethod {
			result[decl.Key()] = decl.Complexity
		}
	}
	return result
}

// AverageComplexity 返回文件内函数/方法的平均圈复杂度。
// 没有函数/方法时返回 0。
func (r FileReport) AverageComplexity() float64 {
	sum := 0
	count := 0
	for _, decl := range r.Declarations {
		if decl.Kind == DeclFunction || decl.Kind == DeclMethod {
			sum += decl.Complexity
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

// LanguageSummary 表示某个语言的聚合结果。
type LanguageSummary struct {
	Language   string          `json:"language" yaml:"language"`
	Extensions []string        `json:"extensions" yaml:"extensions"`
	Files      int64           `json:"files" yaml:"files"`
	Counts     StructureCounts `json:"counts" yaml:"counts"`
	Lines      LineMetrics     `json:"lines" yaml:"lines"`
}

// ScanError 记录单文件分析失败信息。
// 设计为“错误不阻断全量扫描”，便于大仓库分析时容错。
type ScanError struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// TotalMetrics 表示项目级总计信息。
type TotalMetrics struct {
	Files  int64           `json:"files" yaml:"files"`
	Counts StructureCounts `json:"counts" yaml:"counts"`
	Lines  LineMetrics     `json:"lines" yaml:"lines"`
}

// AddFileReport 累加一个文件的统计值到项目总计中。
func (m *TotalMetrics) AddFileReport(report FileReport) {
	m.Files++
	m.Counts.Add(report.Counts)
	m.Lines.Add(report.Lines)
}

// ScanResult 是 scan 命令的完整输出模型。
// 包含文件级明细、语言级汇总、全局总计和错误列表。
type ScanResult struct {
	ScannedPath string            `json:"scanned_path" yaml:"scanned_path"`
	Files       []FileReport      `json:"files" yaml:"files"`
	Languages   []LanguageSummary `json:"languages" yaml:"languages"`
	Total       TotalMetrics      `json:"total" yaml:"total"`
	Errors      []ScanError       `json:"errors" yaml:"errors"`
}

// AverageComplexity 返回全部函数/方法的平均圈复杂度。
func (r ScanResult) AverageComplexity() float64 {
	sum := 0
	count := 0
	for _, file := range r.Files {
		for _, decl := range file.Declarations {
			if decl.Kind == DeclFunction || decl.Kind == DeclMethod {
				sum += decl.Complexity
				count++
			}
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

// SortedComplexityKeys 返回排好序的复杂度映射键，便于确定性输出。
func SortedComplexityKeys(mapping map[string]int) []string {
	keys := make([]string, 0, len(mapping))
	for key := range mapping {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
