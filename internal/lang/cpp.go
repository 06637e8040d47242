package lang

import "srcstat/internal/model"

// NewCpp 构造 C/C++ 方言描述符。
//
// 策略说明：
// - #include 按预处理指令识别，头文件文本原样记录
// - lambda 没有独立签名形态，判定点计入外层函数/方法
func NewCpp() *Dialect {
	return &Dialect{
		Name:       "C/C++",
		Extensions: []string{".c", ".cc", ".cpp", ".cxx", ".h", ".hh", ".hpp", ".hxx"},
		Keywords: keywordSet(
			"alignas", "alignof", "auto", "bool", "break", "case", "catch",
			"char", "class", "const", "constexpr", "continue", "default",
			"delete", "do", "double", "else", "enum", "explicit", "extern",
			"false", "float", "for", "friend", "goto", "if", "inline", "int",
			"long", "mutable", "namespace", "new", "noexcept", "nullptr",
			"operator", "override", "private", "protected", "public",
			"return", "short", "signed", "sizeof", "static", "struct",
			"switch", "template", "this", "throw", "true", "try", "typedef",
			"typename", "union", "unsigned", "using", "virtual", "void",
			"volatile", "while",
		),
		TypeKeywords: map[string]model.DeclKind{
			"class":  model.DeclClass,
			"struct": model.DeclStruct,
		},
		TypeStyle: TypeKeywordName,
		// extern 按透明作用域处理，使 extern "C" { ... } 块内的
		// 声明仍按文件作用域识别。
		ScopeKeywords: keywordSet("namespace", "extern"),
		Modifiers: keywordSet(
			"static", "inline", "virtual", "explicit", "constexpr",
			"const", "unsigned", "signed", "long", "short", "volatile",
			"friend", "typename", "mutable",
		),
		GenericKeywords: keywordSet("template"),
		DecisionKeywords:  keywordSet("if", "for", "while", "case", "catch"),
		TernaryOperator:   true,
		NestedFuncs:       AttributeToEnclosing,
		LineComments:      []string{"//"},
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		StringQuotes:      []rune{'"', '\''},
		IncludeStyle:      IncludeDirective,
	}
}
