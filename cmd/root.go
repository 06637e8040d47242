// Package cmd 提供 srcstat 的命令行入口与子命令编排。
package cmd

import (
	"github.com/spf13/cobra"

	"srcstat/internal/config"
	"srcstat/internal/lang"
	"srcstat/internal/logging"
)

// rootOptions 存放根命令的全局参数。
type rootOptions struct {
	configPath string
	verbose    bool
	debug      bool
	quiet      bool
}

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	registry := lang.NewRegistry()
	rootCmd := newRootCmd(version, registry)
	return rootCmd.Execute()
}

// newRootCmd 创建根命令并注册全部子命令。
// 配置加载与日志初始化放在 PersistentPreRunE，
// 保证所有子命令运行前环境就绪。
func newRootCmd(version string, registry *lang.Registry) *cobra.Command {
	options := rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "srcstat",
		Short: "C 系语言的结构化源码度量工具",
		Long: "srcstat 是面向 C/C++、C#、Java、JavaScript、TypeScript 和 Go 的\n" +
			"静态结构分析工具：单遍扫描统计类/结构体/方法/函数、圈复杂度、\n" +
			"导入与行数，支持并发扫描、多格式导出和阈值质量门禁。",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(options.configPath)
			if err != nil {
				return err
			}

			if options.verbose {
				cfg.App.Verbose = true
			}
			if options.debug {
				cfg.App.Debug = true
			}
			if options.quiet {
				cfg.App.Quiet = true
			}

			logging.Init(&cfg.Log, &cfg.App)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&options.configPath, "config", "", "配置文件路径（默认自动搜索 .srcstat.yaml 等）")
	rootCmd.PersistentFlags().BoolVarP(&options.verbose, "verbose", "v", false, "输出 info 级别日志")
	rootCmd.PersistentFlags().BoolVar(&options.debug, "debug", false, "输出 debug 级别日志（含调用位置）")
	rootCmd.PersistentFlags().BoolVarP(&options.quiet, "quiet", "q", false, "安静模式，禁止所有日志输出")

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguageCmd(registry))
	rootCmd.AddCommand(newScanCmd(registry))

	return rootCmd
}
