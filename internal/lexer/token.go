package lexer

// Kind 表示记号类别。
type Kind int

const (
	// KindIdent 普通标识符。
	KindIdent Kind = iota
	// KindKeyword 方言关键字。
	KindKeyword
	// KindNumber 数字字面量。
	KindNumber
	// KindString 字符串/字符字面量（整体不透明，内容不参与结构识别）。
	KindString
	// KindComment 行注释或块注释（整体不透明）。
	KindComment
	// KindOperator 运算符（可能多字符，如 && 与 ->）。
	KindOperator
	// KindPunct 定界符（花括号、圆括号、分号等）。
	KindPunct
	// KindDirective 预处理指令。#include 的 Text 为头文件名，
	// 其余指令 Text 为空串，仅用于行归类。
	KindDirective
	// KindEOF 输入结束哨兵。
	KindEOF
)

// String 返回类别名称，便于测试输出与日志。
func (k Kind) String() string {
	switch k {
	case KindIdent:
		return "ident"
	case KindKeyword:
		return "keyword"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindComment:
		return "comment"
	case KindOperator:
		return "operator"
	case KindPunct:
		return "punct"
	case KindDirective:
		return "directive"
	case KindEOF:
		return "eof"
	default:
		return "unknown"
	}
}

// Token 是词法器输出的最小单元。
// Line/EndLine 均为 1 起始；单行记号两者相等。
type Token struct {
	Kind    Kind
	Text    string
	Line    int
	EndLine int
	Column  int
}

// IsPunct 判断记号是否为指定定界符。
func (t Token) IsPunct(text string) bool {
	return t.Kind == KindPunct && t.Text == text
}

// IsOperator 判断记号是否为指定运算符。
func (t Token) IsOperator(text string) bool {
	return t.Kind == KindOperator && t.Text == text
}

// IsKeyword 判断记号是否为指定关键字。
func (t Token) IsKeyword(text string) bool {
	return t.Kind == KindKeyword && t.Text == text
}
