// gonu 命令行的无损解析宿主
// 默认进入交互式循环，也可以用子命令解析单行输入
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gonu/internal/shell"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd 构造根命令
func newRootCmd() *cobra.Command {
	var formatName string
	var oneLine string

	root := &cobra.Command{
		Use:   "gonu",
		Short: "交互式命令行的无损解析器",
		Long:  "gonu 把一行输入解析为保留全部空白的token树并渲染出来，不执行任何命令",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := shell.ParseFormat(formatName)
			if err != nil {
				fmt.Fprintf(os.Stderr, "gonu: %v\n", err)
				return err
			}
			sh := shell.New()
			sh.SetFormat(format)
			if oneLine != "" {
				return sh.EvalLine(oneLine)
			}
			sh.Run()
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&formatName, "format", "text", "token树的输出格式 (text|yaml)")
	root.Flags().StringVarP(&oneLine, "command", "c", "", "解析单行输入后退出")

	root.AddCommand(newParseCmd(&formatName))
	return root
}

// newParseCmd 构造parse子命令
// 参数拼成一行解析，没有参数时逐行读取标准输入
func newParseCmd(formatName *string) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [行...]",
		Short: "解析输入并渲染token树",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := shell.ParseFormat(*formatName)
			if err != nil {
				fmt.Fprintf(os.Stderr, "gonu: %v\n", err)
				return err
			}
			sh := shell.New()
			sh.SetFormat(format)

			if len(args) > 0 {
				return sh.EvalLine(strings.Join(args, " "))
			}

			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("读取标准输入失败: %w", err)
			}
			var failed bool
			for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
				if sh.EvalLine(line) != nil {
					failed = true
				}
			}
			if failed {
				return fmt.Errorf("存在解析失败的行")
			}
			return nil
		},
	}
}
