package lang

import "srcstat/internal/model"

// NewGo 构造 Go 方言描述符。
//
// 策略说明：
// - type X struct 计入 struct，type X interface 计入 class 类别
// - func 关键字引导函数，带接收者的 func 记为方法
// - func 字面量（闭包）没有名字，判定点计入外层声明
// - import 支持单条与分组块两种形态
func NewGo() *Dialect {
	return &Dialect{
		Name:       "Go",
		Extensions: []string{".go"},
		Keywords: keywordSet(
			"break", "case", "chan", "const", "continue", "default",
			"defer", "else", "fallthrough", "for", "func", "go", "goto",
			"if", "import", "interface", "map", "package", "range",
			"return", "select", "struct", "switch", "type", "var",
		),
		TypeKeywords: map[string]model.DeclKind{
			"struct":    model.DeclStruct,
			"interface": model.DeclClass,
		},
		TypeStyle:      TypeNameKeyword,
		FuncKeyword:    "func",
		MethodReceiver: true,
		// Go 没有三目运算符；select/switch 的每个 case 独立计数。
		DecisionKeywords:  keywordSet("if", "for", "case"),
		TernaryOperator:   false,
		NestedFuncs:       AttributeToEnclosing,
		LineComments:      []string{"//"},
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		StringQuotes:      []rune{'"', '\''},
		RawStringQuote:    '`',
		IncludeStyle:      IncludeGrouped,
		IncludeKeywords:   keywordSet("import"),
	}
}
