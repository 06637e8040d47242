// Package lexer 实现方言驱动的单遍词法器。
// 注释与字符串整体输出为不透明记号，保证字符串里的 //、
// 注释里的代码片段不会污染后续结构识别。
package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"srcstat/internal/lang"
	"srcstat/internal/model"
)

// Lexer 是针对单个源文件的词法器实例。
type Lexer struct {
	dialect *lang.Dialect
	input   string
	pos     int
	line    int
	column  int
	tokens  []Token
	diags   []model.Diagnostic
}

// New 创建词法器。
func New(dialect *lang.Dialect, source string) *Lexer {
	return &Lexer{
		dialect: dialect,
		input:   source,
		line:    1,
		column:  1,
	}
}

// Lex 是一次性词法入口。
func Lex(dialect *lang.Dialect, source string) ([]Token, []model.Diagnostic) {
	return New(dialect, source).Tokenize()
}

// Tokenize 扫描整个输入并返回记号序列与词法诊断。
// 返回序列总是以 KindEOF 记号结尾。
func (l *Lexer) Tokenize() ([]Token, []model.Diagnostic) {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]

		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case l.atLineComment():
			l.readLineComment()
		case l.atBlockComment():
			l.readBlockComment()
		case ch == '#' && l.dialect.IncludeStyle == lang.IncludeDirective:
			l.readDirective()
		case l.dialect.RawStringQuote != 0 && rune(ch) == l.dialect.RawStringQuote:
			l.readRawString()
		case l.atStringQuote(ch):
			l.readString(ch)
		case unicode.IsLetter(rune(ch)) || ch == '_':
			l.readIdentifier()
		case unicode.IsDigit(rune(ch)):
			l.readNumber()
		case isOperatorChar(ch):
			l.readOperator()
		case ch == ':' && l.hasPrefix("::"):
			l.emit(KindOperator, "::", l.line, l.line, l.column)
			l.advanceBy(2)
		case isPunctChar(ch):
			l.emit(KindPunct, string(ch), l.line, l.line, l.column)
			l.advance()
		default:
			l.advance()
		}
	}

	l.emit(KindEOF, "", l.line, l.line, l.column)
	return l.tokens, l.diags
}

func (l *Lexer) advance() {
	if l.pos < len(l.input) {
		if l.input[l.pos] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.pos++
	}
}

func (l *Lexer) hasPrefix(prefix string) bool {
	return prefix != "" && strings.HasPrefix(l.input[l.pos:], prefix)
}

func (l *Lexer) advanceBy(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) emit(kind Kind, text string, line int, endLine int, column int) {
	l.tokens = append(l.tokens, Token{
		Kind:    kind,
		Text:    text,
		Line:    line,
		EndLine: endLine,
		Column:  column,
	})
}

func (l *Lexer) atLineComment() bool {
	for _, prefix := range l.dialect.LineComments {
		if l.hasPrefix(prefix) {
			return true
		}
	}
	return false
}

func (l *Lexer) atBlockComment() bool {
	return l.hasPrefix(l.dialect.BlockCommentStart)
}

func (l *Lexer) atStringQuote(ch byte) bool {
	for _, quote := range l.dialect.StringQuotes {
		if rune(ch) == quote {
			return true
		}
	}
	return false
}

func (l *Lexer) readLineComment() {
	startLine := l.line
	startCol := l.column
	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.advance()
	}
	l.emit(KindComment, l.input[start:l.pos], startLine, startLine, startCol)
}

func (l *Lexer) readBlockComment() {
	startLine := l.line
	startCol := l.column
	start := l.pos
	l.advanceBy(len(l.dialect.BlockCommentStart))

	depth := 1
	for l.pos < len(l.input) {
		if l.dialect.NestedBlockComment && l.hasPrefix(l.dialect.BlockCommentStart) {
			depth++
			l.advanceBy(len(l.dialect.BlockCommentStart))
			continue
		}
		if l.hasPrefix(l.dialect.BlockCommentEnd) {
			depth--
			l.advanceBy(len(l.dialect.BlockCommentEnd))
			if depth == 0 {
				l.emit(KindComment, l.input[start:l.pos], startLine, l.line, startCol)
				return
			}
			continue
		}
		l.advance()
	}

	// 到达文件尾仍未闭合，整段按注释记号保留。
	l.diags = append(l.diags, model.Diagnostic{
		Kind:    model.DiagUnterminatedComment,
		Message: fmt.Sprintf("block comment opened at line %d is never closed", startLine),
		Line:    startLine,
	})
	l.emit(KindComment, l.input[start:l.pos], startLine, l.line, startCol)
}

// readDirective 消费一整行预处理指令（支持反斜杠续行）。
// #include 输出携带头文件名的指令记号，其余指令输出空文本记号。
func (l *Lexer) readDirective() {
	startLine := l.line
	startCol := l.column
	l.advance() // '#'

	for l.pos < len(l.input) && (l.input[l.pos] == ' ' || l.input[l.pos] == '\t') {
		l.advance()
	}

	nameStart := l.pos
	for l.pos < len(l.input) && unicode.IsLetter(rune(l.input[l.pos])) {
		l.advance()
	}
	name := l.input[nameStart:l.pos]

	header := ""
	if name == "include" {
		header = l.readIncludeHeader()
	}

	// 消费指令余下部分到行尾。
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		if l.input[l.pos] == '\\' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '\n' {
			l.advance()
			l.advance()
			continue
		}
		l.advance()
	}

	l.emit(KindDirective, header, startLine, l.line, startCol)
}

// readIncludeHeader 解析 <header> 或 "header" 并返回内部文本。
// 尖括号内的内容不会被误认为比较运算符。
func (l *Lexer) readIncludeHeader() string {
	for l.pos < len(l.input) && (l.input[l.pos] == ' ' || l.input[l.pos] == '\t') {
		l.advance()
	}
	if l.pos >= len(l.input) {
		return ""
	}

	var closer byte
	switch l.input[l.pos] {
	case '<':
		closer = '>'
	case '"':
		closer = '"'
	default:
		return ""
	}
	l.advance()

	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != closer && l.input[l.pos] != '\n' {
		l.advance()
	}
	header := l.input[start:l.pos]
	if l.pos < len(l.input) && l.input[l.pos] == closer {
		l.advance()
	}
	return header
}

func (l *Lexer) readString(quote byte) {
	startLine := l.line
	startCol := l.column
	start := l.pos
	l.advance() // 开引号

	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '\\' && l.pos+1 < len(l.input) {
			l.advance()
			l.advance()
			continue
		}
		if ch == quote {
			l.advance()
			l.emit(KindString, l.input[start:l.pos], startLine, startLine, startCol)
			return
		}
		if ch == '\n' {
			break
		}
		l.advance()
	}

	// 行尾或文件尾截断，从下一行恢复扫描。
	l.diags = append(l.diags, model.Diagnostic{
		Kind:    model.DiagUnterminatedString,
		Message: fmt.Sprintf("string literal opened at line %d is never closed", startLine),
		Line:    startLine,
	})
	l.emit(KindString, l.input[start:l.pos], startLine, startLine, startCol)
}

// readRawString 处理可跨行、无转义的原始字符串（Go 反引号、JS 模板串）。
func (l *Lexer) readRawString() {
	startLine := l.line
	startCol := l.column
	start := l.pos
	quote := byte(l.dialect.RawStringQuote)
	l.advance()

	for l.pos < len(l.input) {
		if l.input[l.pos] == quote {
			l.advance()
			l.emit(KindString, l.input[start:l.pos], startLine, l.line, startCol)
			return
		}
		l.advance()
	}

	l.diags = append(l.diags, model.Diagnostic{
		Kind:    model.DiagUnterminatedString,
		Message: fmt.Sprintf("raw string literal opened at line %d is never closed", startLine),
		Line:    startLine,
	})
	l.emit(KindString, l.input[start:l.pos], startLine, l.line, startCol)
}

func (l *Lexer) readIdentifier() {
	startLine := l.line
	startCol := l.column
	start := l.pos

	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if unicode.IsLetter(rune(ch)) || unicode.IsDigit(rune(ch)) || ch == '_' {
			l.advance()
		} else {
			break
		}
	}

	text := l.input[start:l.pos]
	kind := KindIdent
	if l.dialect.IsKeyword(text) {
		kind = KindKeyword
	}
	l.emit(kind, text, startLine, startLine, startCol)
}

func (l *Lexer) readNumber() {
	startLine := l.line
	startCol := l.column
	start := l.pos

	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if unicode.IsDigit(rune(ch)) || unicode.IsLetter(rune(ch)) || ch == '_' {
			l.advance()
			continue
		}
		// 小数点仅在后随数字时归入数字，避免吞掉成员访问。
		if ch == '.' && l.pos+1 < len(l.input) && unicode.IsDigit(rune(l.input[l.pos+1])) {
			l.advance()
			continue
		}
		break
	}

	l.emit(KindNumber, l.input[start:l.pos], startLine, startLine, startCol)
}

// multiCharOperators 按长度降序排列，保证最长匹配优先。
var multiCharOperators = []string{
	"<<=", ">>=", "===", "!==", "...", "?.",
	"&&", "||", "->", "::", "==", "!=", "<=", ">=", "=>",
	"++", "--", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"<<", ">>", "??",
}

func isOperatorChar(ch byte) bool {
	switch ch {
	case '+', '-', '*', '/', '=', '<', '>', '!', '&', '|', '^', '%', '~', '?':
		return true
	}
	return false
}

func (l *Lexer) readOperator() {
	startLine := l.line
	startCol := l.column

	for _, op := range multiCharOperators {
		if l.hasPrefix(op) {
			l.advanceBy(len(op))
			l.emit(KindOperator, op, startLine, startLine, startCol)
			return
		}
	}

	text := string(l.input[l.pos])
	l.advance()
	l.emit(KindOperator, text, startLine, startLine, startCol)
}

func isPunctChar(ch byte) bool {
	switch ch {
	case '{', '}', '(', ')', '[', ']', ';', ',', ':', '.', '@':
		return true
	}
	return false
}
