// Package logging 提供全局日志记录器的初始化。
// 使用 zerolog 作为日志库，支持控制台、文件和双路输出模式，
// 文件输出通过 lumberjack 做大小轮转。
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"srcstat/internal/config"
)

// Init 初始化全局日志记录器。
// 优先级：quiet > debug > verbose > config.Level。
func Init(logConfig *config.LogConfig, appConfig *config.AppConfig) {
	if appConfig.Quiet {
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
		log.Logger = zerolog.New(io.Discard)
		return
	}

	switch {
	case appConfig.Debug:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case appConfig.Verbose:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		zerolog.SetGlobalLevel(parseLevel(logConfig.Level))
	}

	var writers []io.Writer
	switch strings.ToLower(logConfig.Mode) {
	case "file":
		writers = append(writers, createFileWriter(logConfig))
	case "both":
		writers = append(writers, createConsoleWriter(logConfig.JSON))
		writers = append(writers, createFileWriter(logConfig))
	default:
		writers = append(writers, createConsoleWriter(logConfig.JSON))
	}

	var output io.Writer
	if len(writers) == 1 {
		output = writers[0]
	} else {
		output = io.MultiWriter(writers...)
	}

	if appConfig.Debug {
		log.Logger = zerolog.New(output).With().Caller().
			Str("app", appConfig.Name).Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// createConsoleWriter 创建控制台输出写入器。
// 日志走标准错误，保证标准输出只承载报告内容。
func createConsoleWriter(useJSON bool) io.Writer {
	if useJSON {
		return os.Stderr
	}
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02 15:04:05",
	}
}

// createFileWriter 创建带轮转的文件输出写入器
func createFileWriter(logConfig *config.LogConfig) io.Writer {
	logDir := filepath.Dir(logConfig.FilePath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return os.Stderr
	}

	return &lumberjack.Logger{
		Filename:   logConfig.FilePath,
		MaxSize:    logConfig.MaxSize,    // megabytes
		MaxBackups: logConfig.MaxBackups, // 保留备份数量
		MaxAge:     logConfig.MaxAge,     // days
		Compress:   true,
	}
}

// parseLevel 解析日志级别
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}
