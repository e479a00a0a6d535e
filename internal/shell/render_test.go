package shell

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"gonu/internal/parser"
)

func TestRenderText(t *testing.T) {
	input := "ls | first 5"
	tree, err := parser.Parse(input, uuid.Nil)
	require.NoError(t, err)

	out, err := Render(tree, input, FormatText)
	require.NoError(t, err)

	for _, want := range []string{
		"Pipeline [0, 12)",
		"  Call [0, 2)",
		`    Bare [0, 2) "ls"`,
		"  Pipe [3, 4)",
		"  Call [5, 12)",
		`    Bare [5, 10) "first"`,
		`    Number [11, 12) "5"`,
	} {
		if !strings.Contains(out, want+"\n") {
			t.Errorf("文本渲染缺少 %q，实际输出:\n%s", want, out)
		}
	}
}

func TestRenderYAML(t *testing.T) {
	input := "where { $it > 100 }"
	tree, err := parser.Parse(input, uuid.Nil)
	require.NoError(t, err)

	out, err := Render(tree, input, FormatYAML)
	require.NoError(t, err)

	var doc nodeDoc
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.Equal(t, "Pipeline", doc.Kind)
	require.Equal(t, []int{0, 19}, doc.Span)
	require.Len(t, doc.Children, 1)

	call := doc.Children[0]
	require.Equal(t, "Call", call.Kind)
	// 调用项：where、空白、花括号分组
	require.Len(t, call.Children, 3)
	require.Equal(t, "Bare", call.Children[0].Kind)
	require.Equal(t, "where", call.Children[0].Text)
	require.Equal(t, "DelimitedBrace", call.Children[2].Kind)
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("text"); err != nil || f != FormatText {
		t.Errorf("text格式解析错误: %v %v", f, err)
	}
	if f, err := ParseFormat("yaml"); err != nil || f != FormatYAML {
		t.Errorf("yaml格式解析错误: %v %v", f, err)
	}
	if _, err := ParseFormat("json"); err == nil {
		t.Errorf("未知格式应当报错")
	}
}
