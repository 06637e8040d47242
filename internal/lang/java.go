package lang

import "srcstat/internal/model"

// NewJava 构造 Java 方言描述符。
//
// 策略说明：
// - interface/enum 计入 class 类别，Java 没有 struct
// - package 声明按限定符忽略，import 语句按导入记录
// - 匿名内部类与 lambda 的判定点计入外层方法
func NewJava() *Dialect {
	return &Dialect{
		Name:       "Java",
		Extensions: []string{".java"},
		Keywords: keywordSet(
			"abstract", "assert", "boolean", "break", "byte", "case",
			"catch", "char", "class", "const", "continue", "default", "do",
			"double", "else", "enum", "extends", "final", "finally",
			"float", "for", "goto", "if", "implements", "import",
			"instanceof", "int", "interface", "long", "native", "new",
			"package", "private", "protected", "public", "record",
			"return", "short", "static", "strictfp", "super", "switch",
			"synchronized", "this", "throw", "throws", "transient", "true",
			"false", "null", "try", "void", "volatile", "while",
		),
		TypeKeywords: map[string]model.DeclKind{
			"class":     model.DeclClass,
			"interface": model.DeclClass,
			"enum":      model.DeclClass,
		},
		TypeStyle: TypeKeywordName,
		Modifiers: keywordSet(
			"public", "protected", "private", "static", "final", "abstract",
			"synchronized", "native", "default", "strictfp", "transient",
			"volatile",
		),
		DecisionKeywords:  keywordSet("if", "for", "while", "case", "catch"),
		TernaryOperator:   true,
		NestedFuncs:       AttributeToEnclosing,
		LineComments:      []string{"//"},
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		StringQuotes:      []rune{'"', '\''},
		IncludeStyle:      IncludeStatement,
		IncludeKeywords:   keywordSet("import"),
	}
}
