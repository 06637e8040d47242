// Package config 提供应用程序配置管理功能。
// 配置来源优先级：命令行参数 > SRCSTAT_ 环境变量 > 配置文件 > 默认值。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"srcstat/internal/quality"
)

// Config 应用配置结构
type Config struct {
	Log        LogConfig          `mapstructure:"log"`
	App        AppConfig          `mapstructure:"app"`
	Scan       ScanConfig         `mapstructure:"scan"`
	Output     OutputConfig       `mapstructure:"output"`
	Thresholds quality.Thresholds `mapstructure:"thresholds"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`       // 日志级别: trace, debug, info, warn, error, fatal, panic
	JSON       bool   `mapstructure:"json"`        // 是否使用 JSON 格式输出
	Mode       string `mapstructure:"mode"`        // 输出模式: console, file, both
	FilePath   string `mapstructure:"file_path"`   // 文件路径（当 mode 为 file 或 both 时使用）
	MaxSize    int    `mapstructure:"max_size"`    // 日志文件最大大小（MB）
	MaxBackups int    `mapstructure:"max_backups"` // 保留的备份文件数量
	MaxAge     int    `mapstructure:"max_age"`     // 文件保留天数
}

// AppConfig 应用配置
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Debug   bool   `mapstructure:"debug"`
	Verbose bool   `mapstructure:"verbose"`
	Quiet   bool   `mapstructure:"quiet"` // 是否安静模式，禁止所有日志输出
}

// ScanConfig 扫描配置
type ScanConfig struct {
	Workers   int      `mapstructure:"workers"`   // 并发分析协程数，0 表示按 CPU 核数
	Exclude   []string `mapstructure:"exclude"`   // 排除模式列表
	Languages []string `mapstructure:"languages"` // 语言白名单，空表示全部
}

// OutputConfig 输出配置
type OutputConfig struct {
	Format string `mapstructure:"format"` // 输出格式: table, json, yaml, csv, badges
	Path   string `mapstructure:"path"`   // 输出目标，空表示标准输出
	TopN   int    `mapstructure:"top_n"`  // 终端报告中展示的复杂度排行数量
}

// setDefaults 设置默认配置值
func setDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.json", false)
	viper.SetDefault("log.mode", "console")
	viper.SetDefault("log.file_path", ".srcstat/srcstat.log")
	viper.SetDefault("log.max_size", 100)  // MB
	viper.SetDefault("log.max_backups", 3) // 保留的备份文件数量
	viper.SetDefault("log.max_age", 28)    // 文件保留天数
	viper.SetDefault("app.name", "srcstat")
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.verbose", false)
	viper.SetDefault("app.quiet", false)
	viper.SetDefault("scan.workers", 0)
	viper.SetDefault("scan.exclude", []string{
		".git", ".hg", ".svn", "node_modules", "vendor",
		"build", "dist", "target", ".idea", ".vscode",
	})
	viper.SetDefault("scan.languages", []string{})
	viper.SetDefault("output.format", "table")
	viper.SetDefault("output.path", "")
	viper.SetDefault("output.top_n", 10)

	defaults := quality.DefaultThresholds()
	viper.SetDefault("thresholds.max_file_lines", defaults.MaxFileLines)
	viper.SetDefault("thresholds.max_function_lines", defaults.MaxFunctionLines)
	viper.SetDefault("thresholds.max_complexity", defaults.MaxComplexity)
	viper.SetDefault("thresholds.max_parameters", defaults.MaxParameters)
	viper.SetDefault("thresholds.max_class_methods", defaults.MaxClassMethods)
	viper.SetDefault("thresholds.max_class_lines", defaults.MaxClassLines)
	viper.SetDefault("thresholds.max_includes", defaults.MaxIncludes)
}

var globalConfig *Config

// tryLoadConfigFiles 尝试加载不同格式的配置文件
func tryLoadConfigFiles() bool {
	// 配置文件搜索路径
	searchPaths := []string{
		".",
		"$HOME",
		"$HOME/.config",
		"$HOME/.config/srcstat",
	}

	if runtime.GOOS == "windows" {
		searchPaths = append(searchPaths,
			"$USERPROFILE",
			"$APPDATA/srcstat",
		)
	} else {
		searchPaths = append(searchPaths, "/etc/srcstat")
	}

	configNames := []string{".srcstat", "srcstat"}
	extensions := []string{"yaml", "yml", "json", "toml"}

	for _, path := range searchPaths {
		for _, name := range configNames {
			for _, ext := range extensions {
				configFile := filepath.Join(path, name+"."+ext)

				if strings.Contains(configFile, "$") {
					configFile = os.ExpandEnv(configFile)
				}

				if _, err := os.Stat(configFile); err == nil {
					viper.SetConfigFile(configFile)
					return true
				}
			}
		}
	}

	return false
}

// LoadConfig 加载配置文件
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		tryLoadConfigFiles()
	}

	// 环境变量形如 SRCSTAT_SCAN_WORKERS=8
	viper.SetEnvPrefix("SRCSTAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if config.Log.Mode == "file" || config.Log.Mode == "both" {
		logDir := filepath.Dir(config.Log.FilePath)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}

	globalConfig = &config
	return &config, nil
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	if globalConfig == nil {
		config, err := LoadConfig("")
		if err != nil {
			panic(fmt.Sprintf("load config: %v", err))
		}
		return config
	}
	return globalConfig
}
