package shell

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHistoryAdd(t *testing.T) {
	h := NewHistory(3)
	h.Add("ls")
	h.Add("ls") // 与上一条相同，不重复记录
	h.Add("")
	h.Add("   ")
	if h.Len() != 1 {
		t.Fatalf("历史条数错误，期望1，实际 %d", h.Len())
	}

	h.Add("ls | first 5")
	h.Add("open foo.txt")
	h.Add("sum $it.size")
	if h.Len() != 3 {
		t.Fatalf("历史条数错误，期望3，实际 %d", h.Len())
	}
	// 超出上限时丢弃最旧的一条
	if h.Get(0) != "ls | first 5" {
		t.Errorf("最旧的历史错误: %q", h.Get(0))
	}
	if h.Get(2) != "sum $it.size" {
		t.Errorf("最新的历史错误: %q", h.Get(2))
	}
}

func TestHistorySaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	h := NewHistory(10)
	h.Add("ls")
	h.Add("where size > 10GB")
	if err := h.SaveToFile(path); err != nil {
		t.Fatalf("保存历史失败: %v", err)
	}

	loaded := NewHistory(10)
	if err := loaded.LoadFromFile(path); err != nil {
		t.Fatalf("加载历史失败: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("加载的历史条数错误: %d", loaded.Len())
	}
	if loaded.Get(1) != "where size > 10GB" {
		t.Errorf("加载的历史内容错误: %q", loaded.Get(1))
	}
}

func TestHistoryLoadMissingFile(t *testing.T) {
	h := NewHistory(10)
	path := filepath.Join(t.TempDir(), "不存在的文件")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("测试文件不应存在")
	}
	if err := h.LoadFromFile(path); err != nil {
		t.Errorf("加载不存在的文件不应报错: %v", err)
	}
}
