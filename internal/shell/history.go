package shell

import (
	"bufio"
	"os"
	"strings"
)

// History 输入行历史管理器
type History struct {
	lines   []string
	maxSize int
}

// NewHistory 创建新的历史管理器
func NewHistory(maxSize int) *History {
	return &History{
		lines:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

// Add 添加一行输入到历史
// 空行不记录，与上一条相同的行不重复记录
func (h *History) Add(line string) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return
	}
	if len(h.lines) > 0 && h.lines[len(h.lines)-1] == line {
		return
	}
	h.lines = append(h.lines, line)
	if len(h.lines) > h.maxSize {
		h.lines = h.lines[1:]
	}
}

// Len 返回历史条数
func (h *History) Len() int {
	return len(h.lines)
}

// Get 获取指定索引的历史行
func (h *History) Get(index int) string {
	if index < 0 || index >= len(h.lines) {
		return ""
	}
	return h.lines[index]
}

// LoadFromFile 从文件加载历史，文件不存在时静默跳过
func (h *History) LoadFromFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		h.Add(scanner.Text())
	}
	return scanner.Err()
}

// SaveToFile 把历史写回文件
func (h *History) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range h.lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}
