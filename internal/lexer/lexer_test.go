package lexer

import (
	"testing"

	"srcstat/internal/lang"
	"srcstat/internal/model"
)

// kinds 是测试辅助函数，抽出记号类别序列（不含 EOF）。
func kinds(tokens []Token) []Kind {
	result := make([]Kind, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == KindEOF {
			break
		}
		result = append(result, tok.Kind)
	}
	return result
}

// TestTokenizeBasicKinds 验证标识符、关键字、数字与运算符的基本切分。
func TestTokenizeBasicKinds(t *testing.T) {
	tokens, diags := Lex(lang.NewCpp(), `int x = 42;`)

	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}

	expected := []Kind{KindKeyword, KindIdent, KindOperator, KindNumber, KindPunct}
	actual := kinds(tokens)
	if len(actual) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(expected), len(actual), tokens)
	}
	for i := range expected {
		if actual[i] != expected[i] {
			t.Fatalf("token %d: expected kind %s, got %s", i, expected[i], actual[i])
		}
	}
	if tokens[len(tokens)-1].Kind != KindEOF {
		t.Fatalf("token stream must end with EOF")
	}
}

// TestTokenizeIncludeDirective 验证 #include 携带头文件文本，
// 其余预处理指令产出空文本指令记号。
func TestTokenizeIncludeDirective(t *testing.T) {
	source := "#include <vector>\n#include \"local.h\"\n#pragma once\n"
	tokens, diags := Lex(lang.NewCpp(), source)

	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}

	var directives []Token
	for _, tok := range tokens {
		if tok.Kind == KindDirective {
			directives = append(directives, tok)
		}
	}
	if len(directives) != 3 {
		t.Fatalf("expected 3 directives, got %d", len(directives))
	}
	if directives[0].Text != "vector" || directives[0].Line != 1 {
		t.Fatalf("unexpected first directive: %+v", directives[0])
	}
	if directives[1].Text != "local.h" {
		t.Fatalf("unexpected second directive: %+v", directives[1])
	}
	if directives[2].Text != "" {
		t.Fatalf("pragma should produce empty directive text, got %q", directives[2].Text)
	}
}

// TestTokenizeOpaqueStrings 验证字符串是不透明整体，
// 内部的注释标记与花括号不产生独立记号。
func TestTokenizeOpaqueStrings(t *testing.T) {
	tokens, diags := Lex(lang.NewCpp(), `s = "// not a comment }";`)

	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
	for _, tok := range tokens {
		if tok.Kind == KindComment {
			t.Fatalf("string content leaked as comment token: %+v", tok)
		}
		if tok.IsPunct("}") {
			t.Fatalf("string content leaked as brace token: %+v", tok)
		}
	}
}

// TestTokenizeUnterminatedString 验证行尾截断字符串时
// 产出诊断并从下一行恢复。
func TestTokenizeUnterminatedString(t *testing.T) {
	source := "s = \"broken\nint x = 1;"
	tokens, diags := Lex(lang.NewCpp(), source)

	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", diags)
	}
	if diags[0].Kind != model.DiagUnterminatedString || diags[0].Line != 1 {
		t.Fatalf("unexpected diagnostic: %+v", diags[0])
	}

	// 下一行的代码仍要被正常切分。
	foundInt := false
	for _, tok := range tokens {
		if tok.IsKeyword("int") && tok.Line == 2 {
			foundInt = true
		}
	}
	if !foundInt {
		t.Fatalf("lexer did not recover on the next line: %+v", tokens)
	}
}

// TestTokenizeUnterminatedComment 验证未闭合块注释产出诊断，
// 剩余内容整体按注释记号保留。
func TestTokenizeUnterminatedComment(t *testing.T) {
	tokens, diags := Lex(lang.NewCpp(), "int x;\n/* dangling\ncomment")

	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", diags)
	}
	if diags[0].Kind != model.DiagUnterminatedComment || diags[0].Line != 2 {
		t.Fatalf("unexpected diagnostic: %+v", diags[0])
	}

	last := tokens[len(tokens)-2]
	if last.Kind != KindComment || last.Line != 2 || last.EndLine != 3 {
		t.Fatalf("unexpected trailing comment token: %+v", last)
	}
}

// TestTokenizeRawString 验证反引号原始字符串可跨行且不处理转义。
func TestTokenizeRawString(t *testing.T) {
	source := "x := `line1\nline2 \\` "
	tokens, diags := Lex(lang.NewGo(), source)

	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}

	var raw *Token
	for i := range tokens {
		if tokens[i].Kind == KindString {
			raw = &tokens[i]
			break
		}
	}
	if raw == nil {
		t.Fatalf("raw string token not found: %+v", tokens)
	}
	if raw.Line != 1 || raw.EndLine != 2 {
		t.Fatalf("unexpected raw string span: %+v", raw)
	}
}

// TestTokenizeMultiCharOperators 验证最长匹配优先的运算符切分。
func TestTokenizeMultiCharOperators(t *testing.T) {
	tokens, _ := Lex(lang.NewJavaScript(), `a === b && c != d`)

	var ops []string
	for _, tok := range tokens {
		if tok.Kind == KindOperator {
			ops = append(ops, tok.Text)
		}
	}
	if len(ops) != 3 || ops[0] != "===" || ops[1] != "&&" || ops[2] != "!=" {
		t.Fatalf("unexpected operators: %+v", ops)
	}
}

// TestTokenizeScopeResolution 验证 :: 作为单个运算符记号输出。
func TestTokenizeScopeResolution(t *testing.T) {
	tokens, _ := Lex(lang.NewCpp(), `void Calculator::reset()`)

	found := false
	for _, tok := range tokens {
		if tok.IsOperator("::") {
			found = true
		}
		if tok.IsPunct(":") {
			t.Fatalf("scope resolution split into single colons: %+v", tokens)
		}
	}
	if !found {
		t.Fatalf(":: operator token not found: %+v", tokens)
	}
}
