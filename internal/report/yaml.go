package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// PrintYAML 把扫描结果按 YAML 输出到任意 writer。
func PrintYAML(writer io.Writer, document Document) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(document); err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	return encoder.Close()
}

// WriteYAMLFile 将 YAML 结果导出到指定路径。
func WriteYAMLFile(path string, document Document) error {
	content, err := yaml.Marshal(document)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	return writeFile(path, content)
}
