package parser

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestBuilderMatchesParser 构造的树必须与重新解析产出文本得到的树完全一致
func TestBuilderMatchesParser(t *testing.T) {
	origin := uuid.New()

	tests := []struct {
		name string
		desc CurriedNode
		want string
	}{
		{
			name: "整数",
			desc: Int(42),
			want: "42",
		},
		{
			name: "负数",
			desc: Int(-17),
			want: "-17",
		},
		{
			name: "小数",
			desc: Dec("3.14"),
			want: "3.14",
		},
		{
			name: "大小",
			desc: Size(10, "GB"),
			want: "10GB",
		},
		{
			name: "字符串",
			desc: Str("hello world"),
			want: `"hello world"`,
		},
		{
			name: "裸词",
			desc: Bare("chrome.exe"),
			want: "chrome.exe",
		},
		{
			name: "模式",
			desc: Pattern("*.txt"),
			want: "*.txt",
		},
		{
			name: "长标志",
			desc: Flag("all"),
			want: "--all",
		},
		{
			name: "短标志",
			desc: Shorthand("v"),
			want: "-v",
		},
		{
			name: "变量",
			desc: Var("it"),
			want: "$it",
		},
		{
			name: "外部命令",
			desc: External("ls"),
			want: "^ls",
		},
		{
			name: "外部词",
			desc: ExternalWord("+nightly"),
			want: "+nightly",
		},
		{
			name: "运算符",
			desc: Op(">="),
			want: ">=",
		},
		{
			name: "路径",
			desc: Path(Var("it"), []CurriedNode{Member("position"), Member("x")}),
			want: "$it.position.x",
		},
		{
			name: "圆括号分组",
			desc: Parens([]CurriedNode{Sp(), Bare("abc"), Sp()}),
			want: "( abc )",
		},
		{
			name: "方括号分组",
			desc: Square([]CurriedNode{Int(1), Sp(), Int(2), Sp(), Int(3)}),
			want: "[1 2 3]",
		},
		{
			name: "花括号分组",
			desc: Braced([]CurriedNode{Sp(), Var("it"), Sp(), Op(">"), Sp(), Int(100), Sp()}),
			want: "{ $it > 100 }",
		},
		{
			name: "分组头路径",
			desc: Path(Parens([]CurriedNode{Sp(), Bare("hello"), Sp()}), []CurriedNode{Member("world")}),
			want: "( hello ).world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			built, source := Build(origin, tt.desc)
			require.Equal(t, tt.want, source, "产出的源文本错误")

			parsed, err := ParseNode(source, origin)
			require.NoError(t, err, "重新解析失败")
			require.Equal(t, parsed, built, "构造的树与解析的树不一致")
			require.Equal(t, source, Reconstruct(built, source), "重建结果错误")
		})
	}
}

func TestBuilderCallMatchesParser(t *testing.T) {
	origin := uuid.New()
	built, source := BuildCall(origin, Call(
		Bare("git"),
		Sp(),
		Bare("add"),
		Sp(),
		Bare("."),
	))
	require.Equal(t, "git add .", source)

	parsed, err := ParseCall(source, origin)
	require.NoError(t, err)
	require.Equal(t, parsed, built)
}

func TestBuilderPipelineMatchesParser(t *testing.T) {
	origin := uuid.New()
	built, source := Build(origin, Pipeline([]PipelineDesc{
		{
			Call: Call(Bare("ls")),
			Post: " ",
		},
		{
			Pre:  " ",
			Call: Call(Bare("where"), Sp(), Var("it"), Sp(), Op(">"), Sp(), Size(10, "GB")),
			Post: " ",
		},
		{
			Pre:  " ",
			Call: Call(Bare("first"), Sp(), Int(5)),
		},
	}))
	require.Equal(t, "ls | where $it > 10GB | first 5", source)

	parsed, err := Parse(source, origin)
	require.NoError(t, err)
	require.Equal(t, parsed, built.(*PipelineNode))
	require.Equal(t, source, Reconstruct(built, source))
}
