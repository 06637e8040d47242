package lang

import "srcstat/internal/model"

// NewCSharp 构造 C# 方言描述符。
//
// 策略说明：
// - interface/enum 计入 class 类别，struct 独立计数（与 C++ 对齐）
// - using 语句按导入记录，命名空间文本原样保留
// - lambda 表达式判定点计入外层方法
func NewCSharp() *Dialect {
	return &Dialect{
		Name:       "C#",
		Extensions: []string{".cs"},
		Keywords: keywordSet(
			"abstract", "as", "async", "await", "base", "bool", "break",
			"byte", "case", "catch", "char", "checked", "class", "const",
			"continue", "decimal", "default", "delegate", "do", "double",
			"else", "enum", "event", "explicit", "extern", "false",
			"finally", "fixed", "float", "for", "foreach", "goto", "if",
			"implicit", "in", "int", "interface", "internal", "is", "lock",
			"long", "namespace", "new", "null", "object", "operator", "out",
			"override", "params", "partial", "private", "protected",
			"public", "readonly", "record", "ref", "return", "sbyte",
			"sealed", "short", "sizeof", "stackalloc", "static", "string",
			"struct", "switch", "this", "throw", "true", "try", "typeof",
			"uint", "ulong", "unchecked", "unsafe", "ushort", "using",
			"var", "virtual", "void", "volatile", "while",
		),
		TypeKeywords: map[string]model.DeclKind{
			"class":     model.DeclClass,
			"interface": model.DeclClass,
			"enum":      model.DeclClass,
			"struct":    model.DeclStruct,
		},
		TypeStyle:     TypeKeywordName,
		ScopeKeywords: keywordSet("namespace"),
		Modifiers: keywordSet(
			"public", "protected", "private", "internal", "static",
			"virtual", "override", "abstract", "sealed", "async", "new",
			"extern", "partial", "readonly", "unsafe",
		),
		DecisionKeywords:  keywordSet("if", "for", "foreach", "while", "case", "catch"),
		TernaryOperator:   true,
		NestedFuncs:       AttributeToEnclosing,
		LineComments:      []string{"//"},
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		StringQuotes:      []rune{'"', '\''},
		IncludeStyle:      IncludeStatement,
		IncludeKeywords:   keywordSet("using"),
	}
}
