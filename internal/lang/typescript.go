package lang

import "srcstat/internal/model"

// NewTypeScript 构造 TypeScript 方言描述符。
//
// 策略说明：
// - 在 JavaScript 基础上增加 interface/enum 与类型注解关键字
// - interface 计入 class 类别（与 Java/C# 对齐）
func NewTypeScript() *Dialect {
	dialect := NewJavaScript()
	dialect.Name = "TypeScript"
	dialect.Extensions = []string{".ts", ".tsx"}

	for _, word := range []string{
		"abstract", "any", "as", "declare", "enum", "implements",
		"interface", "is", "keyof", "namespace", "never", "number",
		"private", "protected", "public", "readonly", "string", "type",
		"unknown",
	} {
		dialect.Keywords[word] = true
	}

	dialect.TypeKeywords = map[string]model.DeclKind{
		"class":     model.DeclClass,
		"interface": model.DeclClass,
		"enum":      model.DeclClass,
	}
	dialect.ScopeKeywords = keywordSet("namespace")
	dialect.Modifiers = keywordSet(
		"export", "default", "async", "static", "get", "set", "public",
		"private", "protected", "readonly", "abstract", "declare",
	)
	return dialect
}
