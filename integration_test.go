// Package main 提供集成测试，测试整个解析宿主的端到端功能
package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// TestParseSingleLine 测试-c单行解析
func TestParseSingleLine(t *testing.T) {
	exePath := getGonuExe(t)

	tests := []struct {
		name    string
		command string
		want    []string
		wantErr bool
	}{
		{
			name:    "简单调用",
			command: "ls -la",
			want:    []string{"Pipeline [0, 6)", `Bare [0, 2) "ls"`, `Shorthand [3, 6) "-la"`},
		},
		{
			name:    "管道",
			command: "ls | where size > 10GB",
			want:    []string{"Pipe [3, 4)", `Size [18, 22) "10GB"`, `Operator [16, 17) ">"`},
		},
		{
			name:    "路径",
			command: "sum $it.lines.count",
			want:    []string{"Path [4, 19)", `Variable [4, 7) "$it"`, `Member [8, 13) "lines"`},
		},
		{
			name:    "未闭合的字符串",
			command: `open "abc`,
			wantErr: true,
		},
		{
			name:    "缺失的调用",
			command: "ls |",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(exePath, "-c", tt.command)
			output, err := cmd.CombinedOutput()
			if (err != nil) != tt.wantErr {
				t.Fatalf("命令 %q 执行错误: %v, 输出: %s", tt.command, err, string(output))
			}
			for _, want := range tt.want {
				if !strings.Contains(string(output), want) {
					t.Errorf("输出缺少 %q，得到:\n%s", want, string(output))
				}
			}
		})
	}
}

// TestParseSubcommand 测试parse子命令从标准输入逐行解析
func TestParseSubcommand(t *testing.T) {
	exePath := getGonuExe(t)

	cmd := exec.Command(exePath, "parse")
	cmd.Stdin = strings.NewReader("ls\ngit add .\n")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("parse子命令执行失败: %v, 输出: %s", err, string(output))
	}
	if !strings.Contains(string(output), `Bare [0, 3) "git"`) {
		t.Errorf("parse子命令输出不正确，得到:\n%s", string(output))
	}
}

// TestParseYAMLFormat 测试YAML输出格式
func TestParseYAMLFormat(t *testing.T) {
	exePath := getGonuExe(t)

	cmd := exec.Command(exePath, "--format", "yaml", "-c", "ls")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("YAML格式执行失败: %v, 输出: %s", err, string(output))
	}
	for _, want := range []string{"kind: Pipeline", "kind: Call", "kind: Bare", "text: ls"} {
		if !strings.Contains(string(output), want) {
			t.Errorf("YAML输出缺少 %q，得到:\n%s", want, string(output))
		}
	}
}

// TestParseErrorReport 测试解析错误的插入符报告
func TestParseErrorReport(t *testing.T) {
	exePath := getGonuExe(t)

	cmd := exec.Command(exePath, "-c", "ls | )")
	output, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("非法输入应当以非零状态退出，输出: %s", string(output))
	}
	outputStr := string(output)
	if !strings.Contains(outputStr, "gonu:") {
		t.Errorf("错误报告缺少前缀，得到:\n%s", outputStr)
	}
	if !strings.Contains(outputStr, "ls | )") {
		t.Errorf("错误报告未回显输入行，得到:\n%s", outputStr)
	}
}

var (
	gonuExeOnce sync.Once
	gonuExePath string
	gonuExeErr  error
)

// getGonuExe 构建并返回gonu可执行文件路径，全部测试共享一次构建
func getGonuExe(t *testing.T) string {
	gonuExeOnce.Do(func() {
		dir, err := os.MkdirTemp("", "gonu_test")
		if err != nil {
			gonuExeErr = err
			return
		}
		exePath := filepath.Join(dir, "gonu_test.exe")
		buildCmd := exec.Command("go", "build", "-o", exePath, "./cmd/gonu")
		if out, err := buildCmd.CombinedOutput(); err != nil {
			gonuExeErr = err
			t.Logf("构建gonu失败: %s", string(out))
			return
		}
		gonuExePath = exePath
	})
	if gonuExeErr != nil {
		t.Fatalf("构建gonu失败: %v", gonuExeErr)
	}
	return gonuExePath
}
