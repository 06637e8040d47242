// Package lang 以“数据驱动”的方式描述各语言的词法与声明规则。
// 核心层（词法器、结构扫描器）只消费 Dialect 描述符，
// 不包含任何按语言分支的硬编码逻辑。
package lang

import "srcstat/internal/model"

// TypeStyle 表示类型声明的语法形态。
type TypeStyle int

const (
	// TypeKeywordName 形如 class Name { ... }（C++/Java/C#/JS/TS）。
	TypeKeywordName TypeStyle = iota
	// TypeNameKeyword 形如 type Name struct { ... }（Go）。
	TypeNameKeyword
)

// IncludeStyle 表示包含/导入指令的语法形态。
type IncludeStyle int

const (
	// IncludeDirective 预处理指令形态，#include <header>。
	IncludeDirective IncludeStyle = iota
	// IncludeStatement 关键字语句形态，import/using ... ;
	IncludeStatement
	// IncludeModule 模块形态，import x from "mod" / require("mod")。
	IncludeModule
	// IncludeGrouped Go 形态，import "pkg" 或 import ( ... ) 块。
	IncludeGrouped
)

// NestedFuncPolicy 表示嵌套匿名函数/lambda 的判定点归属策略。
// 该策略按方言固定并随描述符文档化。
type NestedFuncPolicy int

const (
	// AttributeToEnclosing 匿名函数体内的判定点计入外层声明。
	AttributeToEnclosing NestedFuncPolicy = iota
	// CountIndependently 具名嵌套函数独立成声明、独立计数。
	CountIndependently
)

// Dialect 是单个语言家族的完整描述符。
// 词法器消费注释/字符串/关键字部分，结构扫描器消费声明语法部分。
type Dialect struct {
	// Name 是语言展示名（例如 C/C++、TypeScript）。
	Name string
	// Extensions 是该语言的文件后缀列表（包含点号）。
	Extensions []string

	// Keywords 是语言关键字全集，用于标识符归类。
	Keywords map[string]bool
	// TypeKeywords 把类型关键字映射到声明类别（class/struct）。
	TypeKeywords map[string]model.DeclKind
	// TypeStyle 指明类型声明形态。
	TypeStyle TypeStyle
	// ScopeKeywords 是透明作用域关键字（namespace 等），
	// 其花括号不改变“文件作用域”判定。
	ScopeKeywords map[string]bool

	// FuncKeyword 非空时表示函数由关键字引导（func/function）。
	// 为空表示 C 风格签名（限定符 + 返回类型 + 名字 + 参数表）。
	FuncKeyword string
	// MethodReceiver 为 true 时支持 Go 风格接收者方法。
	MethodReceiver bool
	// Modifiers 是签名前可忽略的限定符集合（static、virtual 等）。
	Modifiers map[string]bool
	// GenericKeywords 是引导尖括号参数列表的关键字（C++ 的 template）。
	// 扫描器跳过关键字与其 <...> 区间后再继续声明识别，
	// 避免区间内的 class/typename 被当作类型声明头。
	GenericKeywords map[string]bool

	// DecisionKeywords 是判定点关键字集合（if/for/while/case/catch...）。
	// else 不在其中：裸 else 是兜底路径，不构成新判定。
	DecisionKeywords map[string]bool
	// TernaryOperator 为 true 时 ? 运算符计为判定点。
	TernaryOperator bool
	// NestedFuncs 是嵌套匿名函数的判定点归属策略。
	NestedFuncs NestedFuncPolicy

	// LineComments 是行注释前缀列表。
	LineComments []string
	// BlockCommentStart/End 是块注释定界符，空串表示不支持。
	BlockCommentStart string
	BlockCommentEnd   string
	// NestedBlockComment 为 true 时块注释可嵌套。
	NestedBlockComment bool

	// StringQuotes 是字符串定界符集合。
	StringQuotes []rune
	// RawStringQuote 非零时表示可跨行、无转义的原始字符串定界符。
	RawStringQuote rune

	// IncludeStyle 指明包含指令形态。
	IncludeStyle IncludeStyle
	// IncludeKeywords 是语句/模块形态下的引导关键字（import/using）。
	IncludeKeywords map[string]bool
}

// IsKeyword 判断文本是否为该方言关键字。
func (d *Dialect) IsKeyword(text string) bool {
	return d.Keywords[text]
}

// IsModifier 判断文本是否为可忽略限定符。
func (d *Dialect) IsModifier(text string) bool {
	return d.Modifiers[text]
}

// IsDecision 判断关键字是否构成判定点。
func (d *Dialect) IsDecision(text string) bool {
	return d.DecisionKeywords[text]
}

// TypeKind 返回类型关键字对应的声明类别。
func (d *Dialect) TypeKind(text string) (model.DeclKind, bool) {
	kind, ok := d.TypeKeywords[text]
	return kind, ok
}

// keywordSet 把关键字切片转成集合，便于各方言文件书写。
func keywordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, word := range words {
		set[word] = true
	}
	return set
}
