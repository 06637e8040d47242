package report

import (
	"fmt"
	"path/filepath"

	"srcstat/internal/model"
)

// badgeTemplate 是 shields.io flat-square 风格的 SVG 模板。
const badgeTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="%[1]d" height="20">
  <linearGradient id="s" x2="0" y2="100%%">
    <stop offset="0" stop-color="#bbb" stop-opacity=".1"/>
    <stop offset="1" stop-opacity=".1"/>
  </linearGradient>
  <clipPath id="r">
    <rect width="%[1]d" height="20" rx="3" fill="#fff"/>
  </clipPath>
  <g clip-path="url(#r)">
    <rect width="%[2]d" height="20" fill="#555"/>
    <rect x="%[2]d" width="%[3]d" height="20" fill="%[4]s"/>
    <rect width="%[1]d" height="20" fill="url(#s)"/>
  </g>
  <g fill="#fff" text-anchor="middle" font-family="Verdana,Geneva,DejaVu Sans,sans-serif" font-size="11">
    <text x="%[5].1f" y="15" fill="#010101" fill-opacity=".3">%[7]s</text>
    <text x="%[5].1f" y="14">%[7]s</text>
    <text x="%[6].1f" y="15" fill="#010101" fill-opacity=".3">%[8]s</text>
    <text x="%[6].1f" y="14">%[8]s</text>
  </g>
</svg>
`

// WriteBadges 生成一组关键指标的 SVG 徽章，返回生成的文件路径。
// 每个指标一个文件：代码行、文件数、语言数和平均复杂度。
func WriteBadges(outputDir string, result model.ScanResult) ([]string, error) {
	averageCC := result.AverageComplexity()

	badges := []struct {
		file  string
		label string
		value string
		color string
	}{
		{"badge-lines.svg", "lines of code", formatCount(result.Total.Lines.Code), "#007ec6"},
		{"badge-files.svg", "files", fmt.Sprintf("%d", result.Total.Files), "#97ca00"},
		{"badge-languages.svg", "languages", fmt.Sprintf("%d", len(result.Languages)), "#4c1"},
		{"badge-complexity.svg", "avg complexity", fmt.Sprintf("%.1f", averageCC), complexityColor(averageCC)},
	}

	var created []string
	for _, badge := range badges {
		path := filepath.Join(outputDir, badge.file)
		if err := writeFile(path, []byte(renderBadge(badge.label, badge.value, badge.color))); err != nil {
			return created, err
		}
		created = append(created, path)
	}
	return created, nil
}

// renderBadge 渲染单个徽章。
// 字宽按 Verdana 11px 估算（约 6.5px/字符）。
func renderBadge(label string, value string, color string) string {
	const charWidth = 6.5
	const padding = 10.0

	labelWidth := int(float64(len(label))*charWidth + padding*2)
	valueWidth := int(float64(len(value))*charWidth + padding*2)
	totalWidth := labelWidth + valueWidth

	return fmt.Sprintf(
		badgeTemplate,
		totalWidth,
		labelWidth,
		valueWidth,
		color,
		float64(labelWidth)/2,
		float64(labelWidth)+float64(valueWidth)/2,
		label,
		value,
	)
}

// formatCount 把大数字格式化为 K/M 后缀形式。
func formatCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// complexityColor 按平均圈复杂度选择徽章颜色。
func complexityColor(averageCC float64) string {
	switch {
	case averageCC <= 5:
		return "#4c1"
	case averageCC <= 10:
		return "#a4a61d"
	case averageCC <= 20:
		return "#dfb317"
	default:
		return "#e05d44"
	}
}
