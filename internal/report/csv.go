package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"

	"srcstat/internal/model"
)

// WriteCSVFiles 把扫描结果导出为一组 CSV 文件：
// files.csv、declarations.csv 和 languages.csv。
// 返回生成的文件路径列表。
func WriteCSVFiles(outputDir string, result model.ScanResult) ([]string, error) {
	var created []string

	filesPath := filepath.Join(outputDir, "files.csv")
	if err := writeCSV(filesPath, fileRows(result)); err != nil {
		return created, err
	}
	created = append(created, filesPath)

	declsPath := filepath.Join(outputDir, "declarations.csv")
	if err := writeCSV(declsPath, declarationRows(result)); err != nil {
		return created, err
	}
	created = append(created, declsPath)

	langsPath := filepath.Join(outputDir, "languages.csv")
	if err := writeCSV(langsPath, languageRows(result)); err != nil {
		return created, err
	}
	created = append(created, langsPath)

	return created, nil
}

func fileRows(result model.ScanResult) [][]string {
	rows := [][]string{{
		"path", "language", "total_lines", "code_lines", "comment_lines", "blank_lines",
		"classes", "structs", "methods", "functions", "includes", "diagnostics",
	}}
	for _, file := range result.Files {
		rows = append(rows, []string{
			file.Path,
			file.Language,
			strconv.FormatInt(file.Lines.Total, 10),
			strconv.FormatInt(file.Lines.Code, 10),
			strconv.FormatInt(file.Lines.Comment, 10),
			strconv.FormatInt(file.Lines.Blank, 10),
			strconv.FormatInt(file.Counts.Classes, 10),
			strconv.FormatInt(file.Counts.Structs, 10),
			strconv.FormatInt(file.Counts.Methods, 10),
			strconv.FormatInt(file.Counts.Functions, 10),
			strconv.Itoa(len(file.Includes)),
			strconv.Itoa(len(file.Diagnostics)),
		})
	}
	return rows
}

func declarationRows(result model.ScanResult) [][]string {
	rows := [][]string{{
		"path", "kind", "name", "owner", "parameters", "start_line", "end_line", "complexity",
	}}
	for _, file := range result.Files {
		for _, decl := range file.Declarations {
			rows = append(rows, []string{
				file.Path,
				string(decl.Kind),
				decl.Name,
				decl.Owner,
				strconv.Itoa(len(decl.Parameters)),
				strconv.Itoa(decl.StartLine),
				strconv.Itoa(decl.EndLine),
				strconv.Itoa(decl.Complexity),
			})
		}
	}
	return rows
}

func languageRows(result model.ScanResult) [][]string {
	rows := [][]string{{
		"language", "files", "total_lines", "code_lines", "comment_lines", "blank_lines",
		"classes", "structs", "methods", "functions",
	}}
	for _, language := range result.Languages {
		rows = append(rows, []string{
			language.Language,
			strconv.FormatInt(language.Files, 10),
			strconv.FormatInt(language.Lines.Total, 10),
			strconv.FormatInt(language.Lines.Code, 10),
			strconv.FormatInt(language.Lines.Comment, 10),
			strconv.FormatInt(language.Lines.Blank, 10),
			strconv.FormatInt(language.Counts.Classes, 10),
			strconv.FormatInt(language.Counts.Structs, 10),
			strconv.FormatInt(language.Counts.Methods, 10),
			strconv.FormatInt(language.Counts.Functions, 10),
		})
	}
	return rows
}

func writeCSV(path string, rows [][]string) error {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	return writeFile(path, buffer.Bytes())
}
