package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"gonu/internal/parser"
)

// Reporter 错误报告器
// 解析错误打印出错的输入行并在失败的偏移处标注插入符
type Reporter struct {
	out     io.Writer
	errText *color.Color
	caret   *color.Color
}

// NewReporter 创建写到out的错误报告器
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{
		out:     out,
		errText: color.New(color.FgRed, color.Bold),
		caret:   color.New(color.FgRed),
	}
}

// Report 报告一个错误
// 解析错误按行加插入符的格式输出，其他错误只输出消息
func (r *Reporter) Report(line string, err error) {
	if err == nil {
		return
	}

	var pe *parser.ParseError
	if !errors.As(err, &pe) {
		fmt.Fprintf(r.out, "gonu: %v\n", err)
		return
	}

	fmt.Fprintf(r.out, "gonu: %s\n", r.errText.Sprint(pe.Error()))
	display := strings.TrimRight(line, "\r\n")
	fmt.Fprintf(r.out, "  %s\n", display)

	offset := pe.Offset
	if offset > len(display) {
		offset = len(display)
	}
	// 偏移是字节计的，插入符要对齐到字符列
	col := utf8.RuneCountInString(display[:offset])
	fmt.Fprintf(r.out, "  %s%s\n", strings.Repeat(" ", col), r.caret.Sprint("^"))
}
