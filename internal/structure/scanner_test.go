package structure

import (
	"strings"
	"testing"

	"srcstat/internal/lang"
	"srcstat/internal/lexer"
	"srcstat/internal/model"
)

// analyze 是测试辅助函数：词法、结构扫描、复杂度求值一步到位。
func analyze(t *testing.T, dialect *lang.Dialect, source string) *Result {
	t.Helper()

	tokens, _ := lexer.Lex(dialect, source)
	result := Parse(dialect, tokens)
	EvaluateComplexity(dialect, tokens, result.Declarations)
	return result
}

// findDecl 按类别与名字查找声明，找不到直接失败。
func findDecl(t *testing.T, result *Result, kind model.DeclKind, name string) model.Declaration {
	t.Helper()

	for _, pd := range result.Declarations {
		if pd.Decl.Kind == kind && pd.Decl.Name == name {
			return pd.Decl
		}
	}
	t.Fatalf("declaration %s %q not found", kind, name)
	return model.Declaration{}
}

// TestParseCppStructure 覆盖 C++ 的主干形态：
// 命名空间、类与结构体、构造函数初始化列表、默认参数、
// 原型跳过、外部定义的限定名归属。
func TestParseCppStructure(t *testing.T) {
	source := strings.Join([]string{
		`#pragma once`,
		`#include <vector>`,
		`#include <string>`,
		`#include "calc.h"`,
		``,
		`// 示例计算器`,
		`namespace demo {`,
		``,
		`class Calculator {`,
		`public:`,
		`    Calculator(int initial) : value(initial) {}`,
		``,
		`    Calculator& add(int x, int y = 0) {`,
		`        if (x > 0 && y > 0) {`,
		`            value += x + y;`,
		`        }`,
		`        return *this;`,
		`    }`,
		``,
		`    void reset();`,
		``,
		`private:`,
		`    int value;`,
		`};`,
		``,
		`struct Result {`,
		`    int total;`,
		`};`,
		``,
		`void Calculator::reset() {`,
		`    value = 0;`,
		`}`,
		``,
		`int helper(int n) {`,
		`    return n > 0 ? n : -n;`,
		`}`,
		``,
		`} // namespace demo`,
	}, "\n")

	result := analyze(t, lang.NewCpp(), source)

	if len(result.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", result.Diagnostics)
	}
	if len(result.Includes) != 3 {
		t.Fatalf("expected 3 includes, got %+v", result.Includes)
	}
	if result.Includes[0].Text != "vector" || result.Includes[1].Text != "string" || result.Includes[2].Text != "calc.h" {
		t.Fatalf("unexpected include texts: %+v", result.Includes)
	}

	// 原型 reset(); 不记录，外部定义才记录，总计 6 条声明。
	if len(result.Declarations) != 6 {
		t.Fatalf("expected 6 declarations, got %d", len(result.Declarations))
	}

	class := findDecl(t, result, model.DeclClass, "Calculator")
	if class.StartLine != 9 || class.EndLine != 24 {
		t.Fatalf("unexpected class span: %d-%d", class.StartLine, class.EndLine)
	}

	findDecl(t, result, model.DeclStruct, "Result")

	ctor := findDecl(t, result, model.DeclMethod, "Calculator")
	if ctor.Owner != "Calculator" || ctor.Complexity != 1 {
		t.Fatalf("unexpected constructor: %+v", ctor)
	}
	if len(ctor.Parameters) != 1 || ctor.Parameters[0].Name != "initial" || ctor.Parameters[0].Type != "int" {
		t.Fatalf("unexpected constructor parameters: %+v", ctor.Parameters)
	}

	add := findDecl(t, result, model.DeclMethod, "add")
	if add.Owner != "Calculator" {
		t.Fatalf("unexpected add owner: %q", add.Owner)
	}
	if add.Complexity != 3 {
		t.Fatalf("expected add complexity 3 (if + &&), got %d", add.Complexity)
	}
	if len(add.Parameters) != 2 || add.Parameters[1].HasDefault != true {
		t.Fatalf("unexpected add parameters: %+v", add.Parameters)
	}

	reset := findDecl(t, result, model.DeclMethod, "reset")
	if reset.Owner != "Calculator" {
		t.Fatalf("out-of-line definition should attribute to Calculator, got %q", reset.Owner)
	}

	helper := findDecl(t, result, model.DeclFunction, "helper")
	if helper.Complexity != 2 {
		t.Fatalf("expected helper complexity 2 (ternary), got %d", helper.Complexity)
	}
}

// TestParseCppTemplates 验证模板头按不透明区间跳过：
// 尖括号里的 class/typename 不产生类型声明，
// 模板函数与模板类按其真实名字记录。
func TestParseCppTemplates(t *testing.T) {
	source := strings.Join([]string{
		`template <class T>`,
		`T max3(T a, T b) {`,
		`    return a > b ? a : b;`,
		`}`,
		``,
		`template <typename U>`,
		`class Holder {`,
		`public:`,
		`    U get() {`,
		`        return value;`,
		`    }`,
		``,
		`    template <typename V>`,
		`    void set(V v) {`,
		`        value = v;`,
		`    }`,
		``,
		`private:`,
		`    U value;`,
		`};`,
	}, "\n")

	result := analyze(t, lang.NewCpp(), source)

	if len(result.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", result.Diagnostics)
	}
	if len(result.Declarations) != 4 {
		t.Fatalf("expected 4 declarations, got %d", len(result.Declarations))
	}
	for _, pd := range result.Declarations {
		if pd.Decl.Name == "T" || pd.Decl.Name == "U" || pd.Decl.Name == "V" {
			t.Fatalf("template parameter recorded as declaration: %+v", pd.Decl)
		}
	}

	max3 := findDecl(t, result, model.DeclFunction, "max3")
	if max3.Complexity != 2 {
		t.Fatalf("expected max3 complexity 2 (ternary), got %d", max3.Complexity)
	}
	if len(max3.Parameters) != 2 {
		t.Fatalf("unexpected max3 parameters: %+v", max3.Parameters)
	}

	findDecl(t, result, model.DeclClass, "Holder")

	get := findDecl(t, result, model.DeclMethod, "get")
	if get.Owner != "Holder" {
		t.Fatalf("expected get owner Holder, got %q", get.Owner)
	}

	set := findDecl(t, result, model.DeclMethod, "set")
	if set.Owner != "Holder" || len(set.Parameters) != 1 {
		t.Fatalf("unexpected set declaration: %+v", set)
	}
}

// TestParseGoStructure 覆盖 Go 形态：
// 分组 import、type ( ... ) 块、接收者方法与普通函数。
func TestParseGoStructure(t *testing.T) {
	source := strings.Join([]string{
		`package main`,
		``,
		`import (`,
		`	"fmt"`,
		`	"strings"`,
		`)`,
		``,
		`type (`,
		`	Config struct {`,
		`		Name string`,
		`	}`,
		`)`,
		``,
		`type Server struct {`,
		`	port int`,
		`}`,
		``,
		`func (s *Server) Handle(name string) string {`,
		`	if name == "" {`,
		`		return ""`,
		`	}`,
		`	for i := 0; i < s.port; i++ {`,
		`		fmt.Println(i)`,
		`	}`,
		`	return strings.ToUpper(name)`,
		`}`,
		``,
		`func run() error {`,
		`	return nil`,
		`}`,
	}, "\n")

	result := analyze(t, lang.NewGo(), source)

	if len(result.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", result.Diagnostics)
	}
	if len(result.Includes) != 2 || result.Includes[0].Text != "fmt" || result.Includes[1].Text != "strings" {
		t.Fatalf("unexpected includes: %+v", result.Includes)
	}

	findDecl(t, result, model.DeclStruct, "Config")
	findDecl(t, result, model.DeclStruct, "Server")

	handle := findDecl(t, result, model.DeclMethod, "Handle")
	if handle.Owner != "Server" {
		t.Fatalf("expected receiver owner Server, got %q", handle.Owner)
	}
	if handle.Complexity != 3 {
		t.Fatalf("expected Handle complexity 3 (if + for), got %d", handle.Complexity)
	}
	if len(handle.Parameters) != 1 || handle.Parameters[0].Name != "name" || handle.Parameters[0].Type != "string" {
		t.Fatalf("unexpected Handle parameters: %+v", handle.Parameters)
	}

	run := findDecl(t, result, model.DeclFunction, "run")
	if run.Complexity != 1 {
		t.Fatalf("expected run complexity 1, got %d", run.Complexity)
	}
}

// TestParseJavaScriptNestedFunctions 验证嵌套具名函数独立计数，
// 其判定点不会重复归属到外层函数。
func TestParseJavaScriptNestedFunctions(t *testing.T) {
	source := strings.Join([]string{
		`import fs from "fs";`,
		`const path = require("path");`,
		``,
		`function outer(a) {`,
		`  function inner(b) {`,
		`    return b ? 1 : 0;`,
		`  }`,
		`  if (a > 0) {`,
		`    return inner(a);`,
		`  }`,
		`  return 0;`,
		`}`,
	}, "\n")

	result := analyze(t, lang.NewJavaScript(), source)

	if len(result.Includes) != 2 || result.Includes[0].Text != "fs" || result.Includes[1].Text != "path" {
		t.Fatalf("unexpected includes: %+v", result.Includes)
	}

	outer := findDecl(t, result, model.DeclFunction, "outer")
	if outer.Complexity != 2 {
		t.Fatalf("expected outer complexity 2 (if only), got %d", outer.Complexity)
	}

	inner := findDecl(t, result, model.DeclFunction, "inner")
	if inner.Complexity != 2 {
		t.Fatalf("expected inner complexity 2 (ternary), got %d", inner.Complexity)
	}
}

// TestParseJavaImportsAndMethods 覆盖 Java 的语句式导入与方法识别。
func TestParseJavaImportsAndMethods(t *testing.T) {
	source := strings.Join([]string{
		`import java.util.List;`,
		`import static java.util.Objects.requireNonNull;`,
		``,
		`public class Service {`,
		`    private int total;`,
		``,
		`    public int add(int a, int b) {`,
		`        if (a > 0 || b > 0) {`,
		`            total += a + b;`,
		`        }`,
		`        return total;`,
		`    }`,
		`}`,
	}, "\n")

	result := analyze(t, lang.NewJava(), source)

	if len(result.Includes) != 2 {
		t.Fatalf("expected 2 includes, got %+v", result.Includes)
	}
	if result.Includes[0].Text != "java.util.List" {
		t.Fatalf("unexpected include text: %q", result.Includes[0].Text)
	}
	if result.Includes[1].Text != "java.util.Objects.requireNonNull" {
		t.Fatalf("static import should drop the modifier, got %q", result.Includes[1].Text)
	}

	findDecl(t, result, model.DeclClass, "Service")

	add := findDecl(t, result, model.DeclMethod, "add")
	if add.Owner != "Service" || add.Complexity != 3 {
		t.Fatalf("unexpected add declaration: %+v", add)
	}
}

// TestParseTypeScriptInterfaces 验证 interface 计入 class 类别，
// 以及“名字: 类型”形态的参数拆分。
func TestParseTypeScriptInterfaces(t *testing.T) {
	source := strings.Join([]string{
		`import { readFile } from "node:fs";`,
		``,
		`interface Shape {`,
		`}`,
		``,
		`class Circle {`,
		`  area(radius: number): number {`,
		`    return radius > 0 ? radius * radius : 0;`,
		`  }`,
		`}`,
	}, "\n")

	result := analyze(t, lang.NewTypeScript(), source)

	if len(result.Includes) != 1 || result.Includes[0].Text != "node:fs" {
		t.Fatalf("unexpected includes: %+v", result.Includes)
	}

	findDecl(t, result, model.DeclClass, "Shape")
	findDecl(t, result, model.DeclClass, "Circle")

	area := findDecl(t, result, model.DeclMethod, "area")
	if area.Owner != "Circle" || area.Complexity != 2 {
		t.Fatalf("unexpected area declaration: %+v", area)
	}
	if len(area.Parameters) != 1 || area.Parameters[0].Name != "radius" || area.Parameters[0].Type != "number" {
		t.Fatalf("unexpected area parameters: %+v", area.Parameters)
	}
}

// TestParseCSharpAttributesAndForeach 覆盖 C# 的特性列表跳过、
// 命名空间透明作用域与 foreach 判定点。
func TestParseCSharpAttributesAndForeach(t *testing.T) {
	source := strings.Join([]string{
		`using System;`,
		``,
		`namespace App`,
		`{`,
		`    public struct Point`,
		`    {`,
		`        public int X;`,
		`    }`,
		``,
		`    public class Runner`,
		`    {`,
		`        [Obsolete]`,
		`        public void Run(int[] items)`,
		`        {`,
		`            foreach (var item in items)`,
		`            {`,
		`                Console.WriteLine(item);`,
		`            }`,
		`        }`,
		`    }`,
		`}`,
	}, "\n")

	result := analyze(t, lang.NewCSharp(), source)

	if len(result.Includes) != 1 || result.Includes[0].Text != "System" {
		t.Fatalf("unexpected includes: %+v", result.Includes)
	}

	findDecl(t, result, model.DeclStruct, "Point")
	findDecl(t, result, model.DeclClass, "Runner")

	run := findDecl(t, result, model.DeclMethod, "Run")
	if run.Owner != "Runner" || run.Complexity != 2 {
		t.Fatalf("unexpected Run declaration: %+v", run)
	}
	if len(run.Parameters) != 1 || run.Parameters[0].Type != "int[]" || run.Parameters[0].Name != "items" {
		t.Fatalf("unexpected Run parameters: %+v", run.Parameters)
	}
}

// TestParseUnmatchedBrace 验证文件作用域的多余右花括号
// 只产生诊断，后续声明仍被识别。
func TestParseUnmatchedBrace(t *testing.T) {
	source := strings.Join([]string{
		`}`,
		`int still(int x) {`,
		`    return x;`,
		`}`,
	}, "\n")

	result := analyze(t, lang.NewCpp(), source)

	if len(result.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", result.Diagnostics)
	}
	if result.Diagnostics[0].Kind != model.DiagUnmatchedBrace || result.Diagnostics[0].Line != 1 {
		t.Fatalf("unexpected diagnostic: %+v", result.Diagnostics[0])
	}

	findDecl(t, result, model.DeclFunction, "still")
}

// TestParseUnclosedScope 验证文件尾未闭合的作用域会被强制闭合，
// 声明的结束行落在文件末尾。
func TestParseUnclosedScope(t *testing.T) {
	source := strings.Join([]string{
		`int broken(int x) {`,
		`    if (x) {`,
		`        return x;`,
		`}`,
	}, "\n")

	result := analyze(t, lang.NewCpp(), source)

	if len(result.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", result.Diagnostics)
	}
	if result.Diagnostics[0].Kind != model.DiagUnclosedScope {
		t.Fatalf("unexpected diagnostic kind: %q", result.Diagnostics[0].Kind)
	}

	broken := findDecl(t, result, model.DeclFunction, "broken")
	if broken.EndLine != 4 {
		t.Fatalf("forced closure should end at last line, got %d", broken.EndLine)
	}
}

// TestParseOpaqueTokens 验证字符串与注释里的花括号、注释标记
// 不会影响结构识别。
func TestParseOpaqueTokens(t *testing.T) {
	source := strings.Join([]string{
		`// ignore { this opening`,
		`const char *s = "} not a brace // nor a comment";`,
		`int f() {`,
		`    return 1;`,
		`}`,
	}, "\n")

	result := analyze(t, lang.NewCpp(), source)

	if len(result.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", result.Diagnostics)
	}
	if len(result.Declarations) != 1 {
		t.Fatalf("expected only f to be recorded, got %d declarations", len(result.Declarations))
	}
	findDecl(t, result, model.DeclFunction, "f")
}
