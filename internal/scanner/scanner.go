// Package scanner 提供并发扫描调度能力。
// 该层负责目录遍历、排除过滤、任务分发、并发执行和结果聚合，
// 不负责语法解析细节。
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"srcstat/internal/analyzer"
	"srcstat/internal/lang"
	"srcstat/internal/model"
)

// Options 控制一次扫描的行为。
type Options struct {
	// Workers 并发分析协程数，非正值回退到 CPU 核数。
	Workers int
	// Excludes 排除模式列表，按相对路径、路径片段和文件名匹配。
	Excludes []string
	// Languages 语言白名单（展示名），为空表示不过滤。
	Languages []string
}

// Service 是扫描服务对象。
type Service struct {
	registry *lang.Registry
	options  Options
	allowed  map[string]bool
}

// scanTask 表示一个待分析文件任务。
type scanTask struct {
	absolutePath string
	displayPath  string
	dialect      *lang.Dialect
}

// workerResult 表示 worker 的执行产物。
type workerResult struct {
	report    *model.FileReport
	scanError *model.ScanError
}

// NewService 创建扫描服务。
func NewService(registry *lang.Registry, options Options) *Service {
	if options.Workers <= 0 {
		options.Workers = runtime.NumCPU()
	}

	service := &Service{
		registry: registry,
		options:  options,
	}
	if len(options.Languages) > 0 {
		service.allowed = make(map[string]bool, len(options.Languages))
		for _, name := range options.Languages {
			service.allowed[strings.ToLower(name)] = true
		}
	}
	return service
}

// ScanPath 扫描目录或单文件。
// 单文件解析失败不会中断整体扫描，失败信息记入结果的错误列表。
func (s *Service) ScanPath(targetPath string) (model.ScanResult, error) {
	var result model.ScanResult

	trimmedPath := strings.TrimSpace(targetPath)
	if trimmedPath == "" {
		return result, errors.New("scan path is empty")
	}

	absoluteTarget, err := filepath.Abs(trimmedPath)
	if err != nil {
		return result, fmt.Errorf("resolve absolute path: %w", err)
	}

	info, err := os.Stat(absoluteTarget)
	if err != nil {
		return result, fmt.Errorf("stat path: %w", err)
	}

	result.ScannedPath = absoluteTarget
	log.Debug().Str("path", absoluteTarget).Int("workers", s.options.Workers).Msg("scan started")

	tasks := make(chan scanTask, s.options.Workers*4)
	results := make(chan workerResult, s.options.Workers*4)
	walkErrChan := make(chan error, 1)

	var workerGroup sync.WaitGroup
	for i := 0; i < s.options.Workers; i++ {
		workerGroup.Add(1)
		go func() {
			defer workerGroup.Done()
			s.runWorker(tasks, results)
		}()
	}

	go func() {
		defer close(tasks)
		if info.IsDir() {
			walkErrChan <- s.enqueueDirectoryTasks(absoluteTarget, tasks)
			return
		}
		walkErrChan <- s.enqueueSingleFileTask(absoluteTarget, tasks)
	}()

	go func() {
		workerGroup.Wait()
		close(results)
	}()

	result.Files = make([]model.FileReport, 0)
	result.Errors = make([]model.ScanError, 0)

	for item := range results {
		if item.report != nil {
			result.Files = append(result.Files, *item.report)
		}
		if item.scanError != nil {
			result.Errors = append(result.Errors, *item.scanError)
		}
	}

	if walkErr := <-walkErrChan; walkErr != nil {
		return result, walkErr
	}

	s.buildSummaries(&result)
	log.Debug().
		Int("files", len(result.Files)).
		Int("errors", len(result.Errors)).
		Msg("scan finished")
	return result, nil
}

// enqueueDirectoryTasks 遍历目录并把可识别语言文件推入任务队列。
// 命中排除模式的目录整棵跳过。
func (s *Service) enqueueDirectoryTasks(root string, tasks chan<- scanTask) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		relativePath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			relativePath = path
		}
		relativePath = filepath.ToSlash(relativePath)

		if entry.IsDir() {
			if relativePath != "." && s.isExcluded(relativePath) {
				log.Debug().Str("dir", relativePath).Msg("directory excluded")
				return filepath.SkipDir
			}
			return nil
		}

		if s.isExcluded(relativePath) {
			return nil
		}

		dialect, ok := s.registry.DialectForFile(path)
		if !ok || !s.languageAllowed(dialect.Name) {
			return nil
		}

		tasks <- scanTask{
			absolutePath: path,
			displayPath:  relativePath,
			dialect:      dialect,
		}
		return nil
	})
}

// enqueueSingleFileTask 在用户给定单文件路径时创建任务。
func (s *Service) enqueueSingleFileTask(filePath string, tasks chan<- scanTask) error {
	dialect, ok := s.registry.DialectForFile(filePath)
	if !ok {
		return fmt.Errorf("unsupported file extension: %s", filepath.Ext(filePath))
	}
	if !s.languageAllowed(dialect.Name) {
		return fmt.Errorf("language %s is filtered out", dialect.Name)
	}

	tasks <- scanTask{
		absolutePath: filePath,
		displayPath:  filepath.Base(filePath),
		dialect:      dialect,
	}
	return nil
}

// isExcluded 对相对路径做排除匹配。
// 模式同时尝试整条相对路径、每个路径片段和文件名，
// 因此 node_modules 和 *_test.go 这类写法都能生效。
func (s *Service) isExcluded(relativePath string) bool {
	base := filepath.Base(relativePath)
	segments := strings.Split(relativePath, "/")

	for _, pattern := range s.options.Excludes {
		if matched, err := filepath.Match(pattern, relativePath); err == nil && matched {
			return true
		}
		if matched, err := filepath.Match(pattern, base); err == nil && matched {
			return true
		}
		for _, segment := range segments {
			if matched, err := filepath.Match(pattern, segment); err == nil && matched {
				return true
			}
		}
	}
	return false
}

func (s *Service) languageAllowed(name string) bool {
	if s.allowed == nil {
		return true
	}
	return s.allowed[strings.ToLower(name)]
}

// runWorker 执行真实的文件读取与结构分析。
func (s *Service) runWorker(tasks <-chan scanTask, results chan<- workerResult) {
	for task := range tasks {
		report, err := analyzer.AnalyzeFile(task.dialect, task.absolutePath)
		if err != nil {
			log.Warn().Str("path", task.displayPath).Err(err).Msg("file analysis failed")
			results <- workerResult{
				scanError: &model.ScanError{
					Path:  task.displayPath,
					Error: err.Error(),
				},
			}
			continue
		}

		report.Path = task.displayPath
		if len(report.Diagnostics) > 0 {
			log.Debug().
				Str("path", task.displayPath).
				Int("diagnostics", len(report.Diagnostics)).
				Msg("file analyzed with diagnostics")
		}
		results <- workerResult{report: &report}
	}
}

// buildSummaries 计算语言级汇总和总计信息。
func (s *Service) buildSummaries(result *model.ScanResult) {
	sort.Slice(result.Files, func(i int, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})

	sort.Slice(result.Errors, func(i int, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})

	byLanguage := make(map[string]*model.LanguageSummary)
	result.Total = model.TotalMetrics{}

	for _, item := range result.Files {
		result.Total.AddFileReport(item)

		summary, ok := byLanguage[item.Language]
		if !ok {
			summary = &model.LanguageSummary{
				Language:   item.Language,
				Extensions: s.registry.ExtensionsForLanguage(item.Language),
			}
			byLanguage[item.Language] = summary
		}

		summary.Files++
		summary.Counts.Add(item.Counts)
		summary.Lines.Add(item.Lines)
	}

	result.Languages = make([]model.LanguageSummary, 0, len(byLanguage))
	for _, item := range byLanguage {
		result.Languages = append(result.Languages, *item)
	}

	sort.Slice(result.Languages, func(i int, j int) bool {
		return result.Languages[i].Language < result.Languages[j].Language
	})
}
