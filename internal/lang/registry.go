package lang

import (
	"path/filepath"
	"sort"
	"strings"
)

// Descriptor 用于对外展示语言及后缀信息。
type Descriptor struct {
	Name       string
	Extensions []string
}

// Registry 管理方言注册与后缀映射。
type Registry struct {
	dialects     []*Dialect
	dialectByExt map[string]*Dialect
}

// NewRegistry 创建并注册所有内置方言。
func NewRegistry() *Registry {
	dialects := []*Dialect{
		NewCpp(),
		NewCSharp(),
		NewJava(),
		NewJavaScript(),
		NewTypeScript(),
		NewGo(),
	}

	registry := &Registry{
		dialects:     dialects,
		dialectByExt: make(map[string]*Dialect),
	}

	for _, dialect := range dialects {
		for _, ext := range dialect.Extensions {
			registry.dialectByExt[strings.ToLower(ext)] = dialect
		}
	}

	return registry
}

// DialectForFile 根据文件后缀查找方言。
func (r *Registry) DialectForFile(path string) (*Dialect, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	dialect, ok := r.dialectByExt[ext]
	return dialect, ok
}

// DialectByName 根据语言展示名查找方言（大小写不敏感）。
func (r *Registry) DialectByName(name string) (*Dialect, bool) {
	for _, dialect := range r.dialects {
		if strings.EqualFold(dialect.Name, name) {
			return dialect, true
		}
	}
	return nil, false
}

// Languages 返回已注册语言清单。
func (r *Registry) Languages() []Descriptor {
	result := make([]Descriptor, 0, len(r.dialects))
	for _, dialect := range r.dialects {
		extensions := append([]string(nil), dialect.Extensions...)
		sort.Strings(extensions)
		result = append(result, Descriptor{
			Name:       dialect.Name,
			Extensions: extensions,
		})
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// ExtensionsForLanguage 返回指定语言对应的全部后缀。
func (r *Registry) ExtensionsForLanguage(language string) []string {
	for _, dialect := range r.dialects {
		if strings.EqualFold(dialect.Name, language) {
			extensions := append([]string(nil), dialect.Extensions...)
			sort.Strings(extensions)
			return extensions
		}
	}
	return nil
}
