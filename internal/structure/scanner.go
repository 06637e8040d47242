// Package structure 实现基于作用域栈的单遍结构扫描。
// 扫描器消费词法记号流，不构建语法树：花括号驱动栈的进出，
// 声明识别依靠有界回看，异常输入通过再同步恢复而不是报错终止。
package structure

import (
	"fmt"
	"strings"

	"srcstat/internal/lang"
	"srcstat/internal/lexer"
	"srcstat/internal/model"
)

const (
	maxSignatureLookahead = 40
	maxHeaderLookahead    = 60
	maxIncludeLookahead   = 256
)

// Span 是记号序列上的半开区间 [Start, End)。
type Span struct {
	Start int
	End   int
}

// ParsedDecl 是声明及其函数体在记号流中的位置。
// Nested 记录独立计数的嵌套函数体区间，复杂度求值时跳过。
type ParsedDecl struct {
	Decl   model.Declaration
	Body   Span
	Nested []Span
}

// Result 是单个文件的结构扫描产物。
type Result struct {
	Declarations []*ParsedDecl
	Includes     []model.Include
	Diagnostics  []model.Diagnostic
}

type scopeKind int

const (
	scopeFile scopeKind = iota
	// scopeTransparent 命名空间作用域，内部仍按声明位置处理。
	scopeTransparent
	// scopeTypeGroup Go 的 type ( ... ) 分组块。
	scopeTypeGroup
	scopeType
	// scopeBody 函数/方法体，归属某个声明。
	scopeBody
	// scopeBlock 不归属声明的花括号块（初始化器、裸块）。
	scopeBlock
)

type scope struct {
	kind     scopeKind
	typeName string
	decl     *ParsedDecl
	openLine int
}

type scanner struct {
	d      *lang.Dialect
	tokens []lexer.Token
	pos    int
	result *Result
	stack  []scope
}

// Parse 对记号流做结构扫描，返回声明、导入与结构诊断。
func Parse(d *lang.Dialect, tokens []lexer.Token) *Result {
	s := &scanner{
		d:      d,
		tokens: tokens,
		result: &Result{},
		stack:  []scope{{kind: scopeFile}},
	}
	s.run()
	return s.result
}

func (s *scanner) run() {
	for s.pos < len(s.tokens) {
		tok := s.tokens[s.pos]
		if tok.Kind == lexer.KindEOF {
			break
		}

		switch s.top().kind {
		case scopeFile, scopeTransparent:
			s.scanDeclScope(tok, "")
		case scopeTypeGroup:
			s.scanTypeGroup(tok)
		case scopeType:
			s.scanDeclScope(tok, s.top().typeName)
		default:
			s.scanBody(tok)
		}
	}
	s.closeDanglingScopes()
}

// at 返回越界安全的记号；越界时给出 EOF 哨兵。
func (s *scanner) at(i int) lexer.Token {
	if i < 0 || i >= len(s.tokens) {
		return lexer.Token{Kind: lexer.KindEOF}
	}
	return s.tokens[i]
}

func (s *scanner) top() *scope {
	return &s.stack[len(s.stack)-1]
}

func (s *scanner) push(sc scope) {
	s.stack = append(s.stack, sc)
}

// scanDeclScope 处理声明位置（文件、命名空间或类型体内部）。
func (s *scanner) scanDeclScope(tok lexer.Token, owner string) {
	switch {
	case tok.Kind == lexer.KindDirective:
		if tok.Text != "" {
			s.result.Includes = append(s.result.Includes, model.Include{Text: tok.Text, Line: tok.Line})
		}
		s.pos++
	case tok.Kind == lexer.KindComment || tok.Kind == lexer.KindString || tok.Kind == lexer.KindNumber:
		s.pos++
	case tok.IsPunct("{"):
		s.push(scope{kind: scopeBlock, openLine: tok.Line})
		s.pos++
	case tok.IsPunct("}"):
		s.closeBrace(tok)
	case tok.IsPunct("@"):
		// 注解/装饰器：@Name 后可带参数表。
		s.pos++
		if s.at(s.pos).Kind == lexer.KindIdent || s.at(s.pos).Kind == lexer.KindKeyword {
			s.pos++
		}
		if s.at(s.pos).IsPunct("(") {
			s.pos = s.skipBalanced(s.pos, "(", ")")
		}
	case tok.IsPunct("["):
		// C# 特性列表等方括号结构整体跳过。
		s.pos = s.skipBalanced(s.pos, "[", "]")
	case owner == "" && (tok.Kind == lexer.KindKeyword || tok.Kind == lexer.KindIdent) && s.d.IncludeKeywords[tok.Text]:
		s.parseInclude()
	case tok.Kind == lexer.KindKeyword && s.d.ScopeKeywords[tok.Text]:
		s.parseNamespace()
	case tok.Kind == lexer.KindKeyword && s.d.GenericKeywords[tok.Text]:
		// 模板头整体跳过，<...> 里的 class/typename 不是声明头。
		s.pos++
		if s.at(s.pos).IsOperator("<") {
			s.pos = s.skipAngles(s.pos)
		}
	case tok.Kind == lexer.KindKeyword && s.d.TypeStyle == lang.TypeKeywordName && s.hasTypeKind(tok.Text):
		s.parseType(tok)
	case tok.Kind == lexer.KindKeyword && s.d.TypeStyle == lang.TypeNameKeyword && tok.Text == "type":
		s.parseGoType()
	case tok.Kind == lexer.KindKeyword && s.d.FuncKeyword != "" && tok.Text == s.d.FuncKeyword:
		s.parseKeywordFunc(owner)
	case owner != "" && tok.Kind == lexer.KindKeyword && s.at(s.pos+1).IsPunct(":") && !s.at(s.pos+2).IsPunct(":"):
		// 访问标签（public: 等），跳过关键字与冒号。
		s.pos += 2
	case tok.Kind == lexer.KindKeyword && s.d.IsModifier(tok.Text):
		s.pos++
	default:
		if s.signatureAllowed(owner) && s.attemptSignature(owner) {
			return
		}
		s.pos++
	}
}

func (s *scanner) hasTypeKind(text string) bool {
	_, ok := s.d.TypeKind(text)
	return ok
}

// signatureAllowed 判断当前位置是否允许 C 风格签名识别。
// 关键字引导函数的方言只在类型体内启用（类方法简写形态），
// 且 Go 的 struct 体内是字段列表，不做识别。
func (s *scanner) signatureAllowed(owner string) bool {
	if s.d.FuncKeyword == "" {
		return true
	}
	return owner != "" && !s.d.MethodReceiver
}

// scanTypeGroup 处理 Go 的 type ( ... ) 分组块。
func (s *scanner) scanTypeGroup(tok lexer.Token) {
	switch {
	case tok.IsPunct(")"):
		s.stack = s.stack[:len(s.stack)-1]
		s.pos++
	case tok.Kind == lexer.KindIdent && s.at(s.pos+1).Kind == lexer.KindKeyword && s.at(s.pos+2).IsPunct("{"):
		if kind, ok := s.d.TypeKind(s.at(s.pos + 1).Text); ok {
			s.recordType(kind, tok.Text, tok.Line)
			s.pos += 3
			return
		}
		s.pos++
	case tok.Kind == lexer.KindEOF:
		s.pos++
	default:
		s.pos++
	}
}

// scanBody 处理函数体与裸块：只做花括号配对，
// 仅在独立计数策略下识别嵌套具名函数。
func (s *scanner) scanBody(tok lexer.Token) {
	switch {
	case tok.IsPunct("{"):
		s.push(scope{kind: scopeBlock, openLine: tok.Line})
		s.pos++
	case tok.IsPunct("}"):
		s.closeBrace(tok)
	case s.d.NestedFuncs == lang.CountIndependently &&
		tok.IsKeyword(s.d.FuncKeyword) && s.at(s.pos+1).Kind == lexer.KindIdent:
		s.parseKeywordFunc("")
	default:
		s.pos++
	}
}

// closeBrace 弹出栈顶作用域并结算归属声明。
// 文件作用域遇到多余的右花括号时记诊断并忽略，继续扫描。
func (s *scanner) closeBrace(tok lexer.Token) {
	if s.top().kind == scopeFile {
		s.result.Diagnostics = append(s.result.Diagnostics, model.Diagnostic{
			Kind:    model.DiagUnmatchedBrace,
			Message: fmt.Sprintf("unmatched closing brace at line %d", tok.Line),
			Line:    tok.Line,
		})
		s.pos++
		return
	}

	closed := *s.top()
	s.stack = s.stack[:len(s.stack)-1]

	if closed.decl != nil {
		closed.decl.Decl.EndLine = tok.Line
		if closed.kind == scopeBody {
			closed.decl.Body.End = s.pos
			s.attachNested(closed.decl.Body)
		}
	}
	s.pos++
}

// attachNested 把刚闭合的函数体区间挂到最近的外层函数体上。
func (s *scanner) attachNested(body Span) {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if s.stack[i].kind == scopeBody && s.stack[i].decl != nil {
			s.stack[i].decl.Nested = append(s.stack[i].decl.Nested, body)
			return
		}
	}
}

// closeDanglingScopes 在文件尾强制闭合所有未闭合作用域。
func (s *scanner) closeDanglingScopes() {
	lastLine := 1
	if len(s.tokens) > 0 {
		lastLine = s.tokens[len(s.tokens)-1].Line
	}

	for len(s.stack) > 1 {
		top := *s.top()
		s.stack = s.stack[:len(s.stack)-1]

		if top.kind == scopeTypeGroup {
			continue
		}
		s.result.Diagnostics = append(s.result.Diagnostics, model.Diagnostic{
			Kind:    model.DiagUnclosedScope,
			Message: fmt.Sprintf("scope opened at line %d is never closed", top.openLine),
			Line:    top.openLine,
		})
		if top.decl != nil {
			top.decl.Decl.EndLine = lastLine
			if top.kind == scopeBody {
				top.decl.Body.End = len(s.tokens) - 1
			}
		}
	}
}

// recordType 记录类型声明并推入类型作用域。
func (s *scanner) recordType(kind model.DeclKind, name string, line int) *ParsedDecl {
	if name == "" {
		name = fmt.Sprintf("anonymous@L%d", line)
	}
	decl := &ParsedDecl{Decl: model.Declaration{
		Kind:      kind,
		Name:      name,
		StartLine: line,
	}}
	s.result.Declarations = append(s.result.Declarations, decl)
	s.push(scope{kind: scopeType, typeName: name, decl: decl, openLine: line})
	return decl
}

// parseType 处理 class Name { ... } 形态的类型声明头。
// 泛型参数与继承列表整体跳过；没有花括号体（前置声明、
// 变量定义）不记录。
func (s *scanner) parseType(keyword lexer.Token) {
	kind, _ := s.d.TypeKind(keyword.Text)
	i := s.pos + 1

	name := ""
	if s.at(i).Kind == lexer.KindIdent {
		name = s.at(i).Text
		i++
	}

	limit := i + maxHeaderLookahead
	for ; i < limit; i++ {
		t := s.at(i)
		switch {
		case t.IsOperator("<"):
			// 泛型参数与继承列表里的 Base<T> 按不透明区间跳过。
			i = s.skipAngles(i) - 1
		case t.IsPunct("{"):
			s.recordType(kind, name, keyword.Line)
			s.pos = i + 1
			return
		case t.IsPunct(";") || t.IsOperator("=") || t.IsPunct("}") || t.Kind == lexer.KindEOF:
			// 前置声明或变量定义，跳过类型关键字本身即可。
			s.pos = s.pos + 1
			return
		}
	}
	s.pos++
}

// parseGoType 处理 type 关键字：单条 type Name struct { ... }
// 直接记录，分组块推入专用作用域逐条识别。
func (s *scanner) parseGoType() {
	line := s.at(s.pos).Line
	i := s.pos + 1

	if s.at(i).IsPunct("(") {
		s.push(scope{kind: scopeTypeGroup, openLine: line})
		s.pos = i + 1
		return
	}

	if s.at(i).Kind == lexer.KindIdent {
		if kind, ok := s.d.TypeKind(s.at(i + 1).Text); ok && s.at(i+1).Kind == lexer.KindKeyword && s.at(i+2).IsPunct("{") {
			s.recordType(kind, s.at(i).Text, line)
			s.pos = i + 3
			return
		}
	}
	// 别名或非复合类型定义，留给默认扫描逐记号消费。
	s.pos++
}

// parseNamespace 识别命名空间头：有花括号体时推入透明作用域，
// 分号结尾（别名、文件级命名空间）时仅跳过。
func (s *scanner) parseNamespace() {
	line := s.at(s.pos).Line
	limit := s.pos + maxHeaderLookahead
	for i := s.pos + 1; i < limit; i++ {
		t := s.at(i)
		switch {
		case t.IsPunct("{"):
			s.push(scope{kind: scopeTransparent, openLine: line})
			s.pos = i + 1
			return
		case t.IsPunct(";"):
			s.pos = i + 1
			return
		case t.Kind == lexer.KindEOF || t.IsPunct("}") || t.IsOperator("=") || t.IsPunct("("):
			s.pos++
			return
		}
	}
	s.pos++
}

// attemptSignature 在当前位置做有界回看，识别 C 风格签名
// （限定符与返回类型之后跟“名字 + 参数表”）。识别成功且带
// 花括号体时记录声明并推入函数体作用域；分号结尾按原型跳过。
// 返回 true 表示消费了输入，false 表示此处不是签名。
func (s *scanner) attemptSignature(owner string) bool {
	nameIdx, name := s.findSignatureName()
	if nameIdx < 0 {
		return false
	}

	// 外部定义的限定名（Type::method）覆盖作用域归属。
	if s.at(nameIdx-1).IsOperator("::") && s.at(nameIdx-2).Kind == lexer.KindIdent {
		owner = s.at(nameIdx - 2).Text
	}

	// 析构函数与运算符重载的名字占多个记号，左括号最多后移两位。
	openIdx := nameIdx + 1
	for step := 0; step < 2 && !s.at(openIdx).IsPunct("("); step++ {
		openIdx++
	}
	if !s.at(openIdx).IsPunct("(") {
		s.pos = nameIdx + 1
		return true
	}
	params, closeIdx := s.parseParams(openIdx)

	bodyIdx, terminated := s.findBodyBrace(closeIdx + 1)
	if bodyIdx < 0 {
		// 原型、抽象方法或宏调用：消费到参数表尾，不记录。
		if terminated >= 0 {
			s.pos = terminated + 1
		} else {
			s.pos = closeIdx + 1
		}
		return true
	}

	kind := model.DeclFunction
	if owner != "" {
		kind = model.DeclMethod
	}
	startLine := s.at(s.pos).Line

	decl := &ParsedDecl{Decl: model.Declaration{
		Kind:       kind,
		Name:       name,
		Owner:      owner,
		Parameters: params,
		StartLine:  startLine,
	}}
	decl.Body.Start = bodyIdx + 1
	s.result.Declarations = append(s.result.Declarations, decl)
	s.push(scope{kind: scopeBody, decl: decl, openLine: s.at(bodyIdx).Line})
	s.pos = bodyIdx + 1
	return true
}

// findSignatureName 从当前位置回看，寻找后随左圆括号的名字。
// 中途遇到语句终结或类型声明关键字则放弃。
func (s *scanner) findSignatureName() (int, string) {
	limit := s.pos + maxSignatureLookahead
	for i := s.pos; i < limit && i < len(s.tokens); i++ {
		tok := s.tokens[i]
		switch {
		case tok.IsPunct(";") || tok.IsPunct("{") || tok.IsPunct("}") ||
			tok.IsOperator("=") || tok.Kind == lexer.KindDirective || tok.Kind == lexer.KindEOF:
			return -1, ""
		case tok.Kind == lexer.KindKeyword && s.hasTypeKind(tok.Text):
			return -1, ""
		case tok.IsOperator("~") && s.at(i+1).Kind == lexer.KindIdent && s.at(i+2).IsPunct("("):
			return i + 1, "~" + s.at(i+1).Text
		case tok.IsKeyword("operator"):
			return s.operatorName(i)
		case tok.Kind == lexer.KindIdent && s.at(i+1).IsPunct("("):
			return i, tok.Text
		}
	}
	return -1, ""
}

// operatorName 解析运算符重载名（operator+、operator() 等）。
func (s *scanner) operatorName(i int) (int, string) {
	next := s.at(i + 1)
	switch {
	case next.IsPunct("(") && s.at(i+2).IsPunct(")") && s.at(i+3).IsPunct("("):
		return i + 2, "operator()"
	case next.IsPunct("[") && s.at(i+2).IsPunct("]") && s.at(i+3).IsPunct("("):
		return i + 2, "operator[]"
	case next.Kind == lexer.KindOperator && s.at(i+2).IsPunct("("):
		return i + 1, "operator" + next.Text
	}
	return -1, ""
}

// findBodyBrace 在参数表之后寻找函数体起始花括号。
// 允许跨越尾随限定符、C++ 成员初始化列表、尾置返回类型、
// TS 返回类型注解与 Java throws 列表；遇到分号按原型返回。
func (s *scanner) findBodyBrace(from int) (int, int) {
	limit := from + maxHeaderLookahead
	for i := from; i < limit; i++ {
		t := s.at(i)
		switch {
		case t.IsPunct("{"):
			return i, -1
		case t.IsPunct(";"):
			return -1, i
		case t.IsPunct(":") && s.d.FuncKeyword == "":
			return s.skipMemberInit(i + 1)
		case t.IsPunct("(") || t.IsPunct("["):
			open := t.Text
			closeTok := ")"
			if open == "[" {
				closeTok = "]"
			}
			i = s.skipBalanced(i, open, closeTok) - 1
		case t.IsOperator("=>"):
			// 表达式体成员，消费到语句结束但不记录。
			for j := i; j < i+maxHeaderLookahead; j++ {
				if s.at(j).IsPunct(";") || s.at(j).Kind == lexer.KindEOF {
					return -1, j
				}
			}
			return -1, i
		case t.IsPunct("}") || t.Kind == lexer.KindEOF || t.Kind == lexer.KindDirective:
			return -1, -1
		case t.Kind == lexer.KindKeyword &&
			(s.hasTypeKind(t.Text) || s.d.IncludeKeywords[t.Text] ||
				(s.d.FuncKeyword != "" && !s.d.MethodReceiver && t.Text == s.d.FuncKeyword)):
			// 撞上下一个声明的引导关键字，说明这不是定义。
			// Go 的 func 可以出现在返回类型里，不在此列。
			return -1, -1
		}
	}
	return -1, -1
}

// skipMemberInit 跳过 C++ 成员初始化列表（: name(expr), other{expr}），
// 返回其后的函数体花括号位置。
func (s *scanner) skipMemberInit(from int) (int, int) {
	i := from
	limit := from + maxHeaderLookahead
	for i < limit {
		t := s.at(i)
		switch {
		case t.Kind == lexer.KindIdent || t.Kind == lexer.KindKeyword || t.IsOperator("::") || t.IsPunct(","):
			i++
		case t.IsPunct("("):
			i = s.skipBalanced(i, "(", ")")
		case t.IsPunct("{"):
			// 紧随名字的花括号是初始化器，其余情形是函数体。
			if s.at(i - 1).Kind == lexer.KindIdent {
				i = s.skipBalanced(i, "{", "}")
				continue
			}
			return i, -1
		case t.IsPunct(";"):
			return -1, i
		default:
			return -1, -1
		}
	}
	return -1, -1
}

// parseParams 解析圆括号参数表，返回参数列表与右括号下标。
func (s *scanner) parseParams(openIdx int) ([]model.Parameter, int) {
	var params []model.Parameter
	var current []lexer.Token
	depth := 1
	i := openIdx + 1

	flush := func() {
		if param, ok := s.buildParam(current); ok {
			params = append(params, param)
		}
		current = current[:0]
	}

	for i < len(s.tokens) {
		t := s.tokens[i]
		switch {
		case t.IsPunct("("):
			depth++
			current = append(current, t)
		case t.IsPunct(")"):
			depth--
			if depth == 0 {
				flush()
				return params, i
			}
			current = append(current, t)
		case t.IsPunct(",") && depth == 1:
			flush()
		case t.Kind == lexer.KindEOF:
			flush()
			return params, i
		default:
			current = append(current, t)
		}
		i++
	}
	flush()
	return params, len(s.tokens) - 1
}

// buildParam 按方言形态拆出参数名、类型与默认值标记。
func (s *scanner) buildParam(toks []lexer.Token) (model.Parameter, bool) {
	if len(toks) == 0 {
		return model.Parameter{}, false
	}
	if len(toks) == 1 && toks[0].IsKeyword("void") {
		return model.Parameter{}, false
	}

	param := model.Parameter{}

	// 默认值：顶层 = 之后的部分丢弃，只保留标记。
	head := toks
	for idx, t := range toks {
		if t.IsOperator("=") {
			param.HasDefault = true
			head = toks[:idx]
			break
		}
	}
	if len(head) == 0 {
		return param, false
	}

	// TS 形态：名字 : 类型。
	for idx, t := range head {
		if t.IsPunct(":") {
			param.Name = joinTokens(head[:idx])
			param.Type = joinTokens(head[idx+1:])
			return param, true
		}
	}

	if s.d.TypeStyle == lang.TypeNameKeyword {
		// Go 形态：名字在前，类型在后。
		if head[0].Kind == lexer.KindIdent {
			param.Name = head[0].Text
			param.Type = joinTokens(head[1:])
		} else {
			param.Type = joinTokens(head)
		}
		return param, true
	}

	// C 形态：最后一个标识符是名字，其余是类型。
	nameIdx := -1
	for idx := len(head) - 1; idx >= 0; idx-- {
		if head[idx].Kind == lexer.KindIdent {
			nameIdx = idx
			break
		}
	}
	if nameIdx < 0 {
		param.Type = joinTokens(head)
		return param, true
	}
	param.Name = head[nameIdx].Text
	param.Type = joinTokens(append(append([]lexer.Token(nil), head[:nameIdx]...), head[nameIdx+1:]...))
	return param, true
}

// skipBalanced 跳过配对定界符，返回闭合符之后的下标。
// 文件尾仍未配平时返回文件尾。
func (s *scanner) skipBalanced(openIdx int, open string, closeText string) int {
	depth := 0
	for i := openIdx; i < len(s.tokens); i++ {
		t := s.tokens[i]
		switch {
		case t.IsPunct(open):
			depth++
		case t.IsPunct(closeText):
			depth--
			if depth == 0 {
				return i + 1
			}
		case t.Kind == lexer.KindEOF:
			return i
		}
	}
	return len(s.tokens)
}

// parseKeywordFunc 处理 func/function 关键字引导的函数头。
func (s *scanner) parseKeywordFunc(owner string) {
	startLine := s.at(s.pos).Line
	i := s.pos + 1

	// Go 接收者：func (c *Calculator) Name(...)。
	if s.d.MethodReceiver && s.at(i).IsPunct("(") {
		end := s.skipBalanced(i, "(", ")")
		for j := end - 1; j > i; j-- {
			if s.at(j).Kind == lexer.KindIdent {
				owner = s.at(j).Text
				break
			}
		}
		i = end
	}

	name := ""
	if s.at(i).Kind == lexer.KindIdent {
		name = s.at(i).Text
		i++
	} else if s.at(s.pos-1).IsOperator("=") && s.at(s.pos-2).Kind == lexer.KindIdent {
		// var f = function(...) 形态借用变量名。
		name = s.at(s.pos - 2).Text
	}
	if name == "" {
		name = fmt.Sprintf("anonymous@L%d", startLine)
	}

	// 泛型参数：TS 的 <T> 与 Go 的 [T any]。
	if s.at(i).IsOperator("<") {
		i = s.skipAngles(i)
	}
	if s.at(i).IsPunct("[") {
		i = s.skipBalanced(i, "[", "]")
	}

	if !s.at(i).IsPunct("(") {
		s.pos++
		return
	}
	params, closeIdx := s.parseParams(i)

	bodyIdx, terminated := s.findBodyBrace(closeIdx + 1)
	if bodyIdx < 0 {
		if terminated >= 0 {
			s.pos = terminated + 1
		} else {
			s.pos = closeIdx + 1
		}
		return
	}

	kind := model.DeclFunction
	if owner != "" {
		kind = model.DeclMethod
	}
	decl := &ParsedDecl{Decl: model.Declaration{
		Kind:       kind,
		Name:       name,
		Owner:      owner,
		Parameters: params,
		StartLine:  startLine,
	}}
	decl.Body.Start = bodyIdx + 1
	s.result.Declarations = append(s.result.Declarations, decl)
	s.push(scope{kind: scopeBody, decl: decl, openLine: s.at(bodyIdx).Line})
	s.pos = bodyIdx + 1
}

// skipAngles 跳过尖括号泛型参数，有界且容忍不配平。
func (s *scanner) skipAngles(openIdx int) int {
	depth := 0
	limit := openIdx + maxHeaderLookahead
	for i := openIdx; i < limit && i < len(s.tokens); i++ {
		t := s.tokens[i]
		switch {
		case t.IsOperator("<"):
			depth++
		case t.IsOperator(">"):
			depth--
			if depth == 0 {
				return i + 1
			}
		case t.IsOperator(">>"):
			depth -= 2
			if depth <= 0 {
				return i + 1
			}
		case t.Kind == lexer.KindEOF:
			return i
		}
	}
	return openIdx + 1
}

// parseInclude 按方言形态记录导入并消费对应记号。
func (s *scanner) parseInclude() {
	switch s.d.IncludeStyle {
	case lang.IncludeStatement:
		s.parseStatementInclude()
	case lang.IncludeModule:
		s.parseModuleInclude()
	case lang.IncludeGrouped:
		s.parseGroupedInclude()
	default:
		s.pos++
	}
}

// parseStatementInclude 处理 import java.util.List; 与 using System; 形态。
func (s *scanner) parseStatementInclude() {
	line := s.at(s.pos).Line
	var sb strings.Builder
	limit := s.pos + maxIncludeLookahead

	for i := s.pos + 1; i < limit; i++ {
		t := s.at(i)
		switch {
		case t.IsPunct(";"):
			if sb.Len() > 0 {
				s.result.Includes = append(s.result.Includes, model.Include{Text: sb.String(), Line: line})
			}
			s.pos = i + 1
			return
		case t.IsPunct("(") || t.IsPunct("{") || t.IsPunct("}") || t.Kind == lexer.KindEOF:
			// using 语句块等非导入形态，只消费关键字本身。
			s.pos++
			return
		case t.IsKeyword("static"):
			// Java 静态导入的修饰词不进入文本。
		default:
			sb.WriteString(t.Text)
		}
	}
	s.pos++
}

// parseModuleInclude 处理 import x from "mod" 与 require("mod") 形态。
// 模块名取语句里最后出现的字符串字面量。
func (s *scanner) parseModuleInclude() {
	line := s.at(s.pos).Line
	limit := s.pos + maxIncludeLookahead

	for i := s.pos + 1; i < limit; i++ {
		t := s.at(i)
		switch {
		case t.Kind == lexer.KindString:
			s.result.Includes = append(s.result.Includes, model.Include{Text: stripQuotes(t.Text), Line: line})
			i++
			for s.at(i).IsPunct(")") || s.at(i).IsPunct(";") {
				i++
			}
			s.pos = i
			return
		case t.IsPunct(";") || t.Kind == lexer.KindEOF:
			s.pos = i + 1
			return
		case t.Kind == lexer.KindKeyword && t.Text != "from" && !s.d.IsModifier(t.Text) &&
			t.Text != "as" && t.Text != "type":
			// 撞上下一条语句的关键字，说明这不是导入形态。
			s.pos = i
			return
		}
	}
	s.pos++
}

// parseGroupedInclude 处理 Go 的 import "pkg" 与 import ( ... ) 块。
func (s *scanner) parseGroupedInclude() {
	i := s.pos + 1

	if s.at(i).IsPunct("(") {
		limit := i + maxIncludeLookahead
		for i++; i < limit; i++ {
			t := s.at(i)
			if t.IsPunct(")") {
				i++
				break
			}
			if t.Kind == lexer.KindEOF {
				break
			}
			if t.Kind == lexer.KindString {
				s.result.Includes = append(s.result.Includes, model.Include{Text: stripQuotes(t.Text), Line: t.Line})
			}
		}
		s.pos = i
		return
	}

	// 单条导入，可能带别名或下划线。
	limit := i + 4
	for ; i < limit; i++ {
		t := s.at(i)
		if t.Kind == lexer.KindString {
			s.result.Includes = append(s.result.Includes, model.Include{Text: stripQuotes(t.Text), Line: t.Line})
			s.pos = i + 1
			return
		}
		if t.Kind != lexer.KindIdent && !t.IsPunct(".") {
			break
		}
	}
	s.pos++
}

func stripQuotes(text string) string {
	if len(text) >= 2 {
		first := text[0]
		last := text[len(text)-1]
		if (first == '"' || first == '\'' || first == '`') && first == last {
			return text[1 : len(text)-1]
		}
	}
	return text
}

// joinTokens 把类型记号拼成可读文本，限定与取址符不加空格。
func joinTokens(toks []lexer.Token) string {
	var sb strings.Builder
	tight := map[string]bool{
		"::": true, "<": true, ">": true, "*": true, "&": true,
		".": true, "[": true, "]": true,
	}
	prevTight := true
	for _, t := range toks {
		if !prevTight && !tight[t.Text] {
			sb.WriteString(" ")
		}
		sb.WriteString(t.Text)
		prevTight = tight[t.Text]
	}
	return sb.String()
}
