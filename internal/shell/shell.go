// Package shell 提供交互式的解析宿主
// 读入一行，解析为token树，渲染树或报告带位置的错误，不执行任何命令
package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"gonu/internal/parser"
)

const historyFileName = ".gonu_history"

// Shell 交互式解析宿主
type Shell struct {
	prompt   string
	running  bool
	format   Format
	history  *History
	reporter *Reporter
	out      io.Writer
	sources  map[uuid.UUID]string // Origin到输入行的映射
}

// New 创建新的Shell实例
func New() *Shell {
	history := NewHistory(1000)
	if path := historyFilePath(); path != "" {
		history.LoadFromFile(path)
	}

	return &Shell{
		prompt:   "gonu> ",
		running:  true,
		format:   FormatText,
		history:  history,
		reporter: NewReporter(os.Stderr),
		out:      os.Stdout,
		sources:  make(map[uuid.UUID]string),
	}
}

// SetFormat 设置token树的渲染格式
func (s *Shell) SetFormat(format Format) {
	s.format = format
}

// historyFilePath 返回历史文件路径，找不到用户目录时返回空串
func historyFilePath() string {
	home := os.Getenv("HOME")
	if home == "" {
		home = os.Getenv("USERPROFILE")
	}
	if home == "" {
		return ""
	}
	return filepath.Join(home, historyFileName)
}

// Run 运行交互式循环
func (s *Shell) Run() {
	config := &readline.Config{
		Prompt:          s.prompt,
		HistoryFile:     historyFilePath(),
		HistoryLimit:    1000,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	}

	rl, err := readline.NewEx(config)
	if err != nil {
		// readline初始化失败时回退到简单的行读取
		s.runSimple()
		return
	}
	defer rl.Close()

	for s.running {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "gonu: 读取输入失败: %v\n", err)
			break
		}
		s.handleLine(line)
	}

	s.saveHistory()
}

// runSimple 不依赖终端能力的后备交互循环
func (s *Shell) runSimple() {
	scanner := bufio.NewScanner(os.Stdin)
	for s.running {
		fmt.Fprint(s.out, s.prompt)
		if !scanner.Scan() {
			break
		}
		s.handleLine(scanner.Text())
	}
	s.saveHistory()
}

// handleLine 处理一行输入
func (s *Shell) handleLine(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "exit" || trimmed == "quit" {
		s.running = false
		return
	}
	s.history.Add(line)
	s.EvalLine(line)
}

// EvalLine 解析一行并渲染结果
// 每行分配一个新的Origin，解析失败时用它找回原始文本做报告
func (s *Shell) EvalLine(line string) error {
	origin := uuid.New()
	s.sources[origin] = line

	tree, err := parser.Parse(line, origin)
	if err != nil {
		s.reporter.Report(s.sources[origin], err)
		return err
	}

	rendered, err := Render(tree, line, s.format)
	if err != nil {
		s.reporter.Report(line, err)
		return err
	}
	fmt.Fprint(s.out, rendered)
	return nil
}

// saveHistory 退出前把历史写回文件
func (s *Shell) saveHistory() {
	if path := historyFilePath(); path != "" {
		if err := s.history.SaveToFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "gonu: 保存历史失败: %v\n", err)
		}
	}
}
