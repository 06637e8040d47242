package lang

import "srcstat/internal/model"

// NewJavaScript 构造 JavaScript 方言描述符。
//
// 策略说明：
// - function 关键字引导的具名函数独立成声明（含嵌套场景）
// - 箭头函数没有独立签名形态，判定点计入外层声明
// - import ... from "mod" 与 require("mod") 都按导入记录
func NewJavaScript() *Dialect {
	return &Dialect{
		Name:       "JavaScript",
		Extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
		Keywords: keywordSet(
			"async", "await", "break", "case", "catch", "class", "const",
			"continue", "debugger", "default", "delete", "do", "else",
			"export", "extends", "false", "finally", "for", "function",
			"get", "if", "import", "in", "instanceof", "let", "new",
			"null", "of", "return", "set", "static", "super", "switch",
			"this", "throw", "true", "try", "typeof", "undefined", "var",
			"void", "while", "with", "yield",
		),
		TypeKeywords: map[string]model.DeclKind{
			"class": model.DeclClass,
		},
		TypeStyle:         TypeKeywordName,
		FuncKeyword:       "function",
		Modifiers:         keywordSet("export", "default", "async", "static", "get", "set"),
		DecisionKeywords:  keywordSet("if", "for", "while", "case", "catch"),
		TernaryOperator:   true,
		NestedFuncs:       CountIndependently,
		LineComments:      []string{"//"},
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		StringQuotes:      []rune{'"', '\''},
		RawStringQuote:    '`',
		IncludeStyle:      IncludeModule,
		IncludeKeywords:   keywordSet("import", "require"),
	}
}
