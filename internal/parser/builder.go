package parser

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// TokenTreeBuilder 以编程方式构造token树
// 合成的区间单调递增且共享同一个Origin，同时产出对应的源文本；
// 对任何描述，Build出的树与重新解析产出文本得到的树形状一致
type TokenTreeBuilder struct {
	pos    int
	out    strings.Builder
	origin uuid.UUID
}

// NewTokenTreeBuilder 创建使用指定Origin的builder
func NewTokenTreeBuilder(origin uuid.UUID) *TokenTreeBuilder {
	return &TokenTreeBuilder{origin: origin}
}

// consume 记录一段文本并返回它占据的区间
func (b *TokenTreeBuilder) consume(text string) Tag {
	start := b.pos
	b.out.WriteString(text)
	b.pos += len(text)
	return NewTag(start, b.pos, b.origin)
}

// Source 返回到目前为止重建出的源文本
func (b *TokenTreeBuilder) Source() string {
	return b.out.String()
}

// CurriedNode 延迟执行的节点构造描述
type CurriedNode func(*TokenTreeBuilder) TokenNode

// CurriedCall 延迟执行的调用构造描述
type CurriedCall func(*TokenTreeBuilder) *CallNode

// Build 在新builder上执行描述，返回树与重建的源文本
func Build(origin uuid.UUID, desc CurriedNode) (TokenNode, string) {
	b := NewTokenTreeBuilder(origin)
	node := desc(b)
	return node, b.Source()
}

// BuildCall 在新builder上执行调用描述
func BuildCall(origin uuid.UUID, desc CurriedCall) (*CallNode, string) {
	b := NewTokenTreeBuilder(origin)
	call := desc(b)
	return call, b.Source()
}

// Int 整数字面量描述
func Int(value int64) CurriedNode {
	return func(b *TokenTreeBuilder) TokenNode {
		tag := b.consume(strconv.FormatInt(value, 10))
		raw := RawToken{Kind: KindNumber, Number: RawNumber{Kind: RawInt, Tag: tag}}
		return &Token{Raw: raw, tag: tag}
	}
}

// Dec 小数字面量描述，text形如"3.14"
func Dec(text string) CurriedNode {
	return func(b *TokenTreeBuilder) TokenNode {
		tag := b.consume(text)
		raw := RawToken{Kind: KindNumber, Number: RawNumber{Kind: RawDecimal, Tag: tag}}
		return &Token{Raw: raw, tag: tag}
	}
}

// Size 带单位的大小字面量描述，unit形如"GB"
func Size(value int64, unit string) CurriedNode {
	return func(b *TokenTreeBuilder) TokenNode {
		numTag := b.consume(strconv.FormatInt(value, 10))
		unitTag := b.consume(unit)
		u, _ := unitFor(unit)
		raw := RawToken{Kind: KindSize, Number: RawNumber{Kind: RawInt, Tag: numTag}, Unit: u}
		return &Token{Raw: raw, tag: NewTag(numTag.Start, unitTag.End, b.origin)}
	}
}

// Str 双引号字符串描述，content不含引号
func Str(content string) CurriedNode {
	return func(b *TokenTreeBuilder) TokenNode {
		outer := b.consume(`"` + content + `"`)
		inner := NewTag(outer.Start+1, outer.End-1, b.origin)
		return &Token{Raw: RawToken{Kind: KindString, Inner: inner}, tag: outer}
	}
}

// Bare 裸词描述
func Bare(word string) CurriedNode {
	return func(b *TokenTreeBuilder) TokenNode {
		tag := b.consume(word)
		return &Token{Raw: RawToken{Kind: KindBare}, tag: tag}
	}
}

// Pattern glob模式描述
func Pattern(glob string) CurriedNode {
	return func(b *TokenTreeBuilder) TokenNode {
		tag := b.consume(glob)
		return &Token{Raw: RawToken{Kind: KindPattern}, tag: tag}
	}
}

// Op 运算符描述，text为运算符源文本
func Op(text string) CurriedNode {
	return func(b *TokenTreeBuilder) TokenNode {
		tag := b.consume(text)
		op, _ := operatorFor(text)
		return &Token{Raw: RawToken{Kind: KindOperator, Op: op}, tag: tag}
	}
}

// Flag 长标志描述，name不含`--`
func Flag(name string) CurriedNode {
	return func(b *TokenTreeBuilder) TokenNode {
		dashes := b.consume("--")
		nameTag := b.consume(name)
		raw := RawToken{Kind: KindFlag, Name: nameTag}
		return &Token{Raw: raw, tag: NewTag(dashes.Start, nameTag.End, b.origin)}
	}
}

// Shorthand 短标志描述，name不含`-`
func Shorthand(name string) CurriedNode {
	return func(b *TokenTreeBuilder) TokenNode {
		dash := b.consume("-")
		nameTag := b.consume(name)
		raw := RawToken{Kind: KindShorthand, Name: nameTag}
		return &Token{Raw: raw, tag: NewTag(dash.Start, nameTag.End, b.origin)}
	}
}

// Var 变量引用描述，name不含`$`
func Var(name string) CurriedNode {
	return func(b *TokenTreeBuilder) TokenNode {
		dollar := b.consume("$")
		nameTag := b.consume(name)
		raw := RawToken{Kind: KindVariable, Name: nameTag}
		return &Token{Raw: raw, tag: NewTag(dollar.Start, nameTag.End, b.origin)}
	}
}

// External 外部命令描述，name不含`^`
func External(name string) CurriedNode {
	return func(b *TokenTreeBuilder) TokenNode {
		caret := b.consume("^")
		nameTag := b.consume(name)
		raw := RawToken{Kind: KindExternalCommand, Name: nameTag}
		return &Token{Raw: raw, tag: NewTag(caret.Start, nameTag.End, b.origin)}
	}
}

// ExternalWord 外部词描述
func ExternalWord(word string) CurriedNode {
	return func(b *TokenTreeBuilder) TokenNode {
		tag := b.consume(word)
		return &Token{Raw: RawToken{Kind: KindExternalWord}, tag: tag}
	}
}

// Member 路径成员描述
func Member(name string) CurriedNode {
	return func(b *TokenTreeBuilder) TokenNode {
		tag := b.consume(name)
		return &Token{Raw: RawToken{Kind: KindMember}, tag: tag}
	}
}

// Sp 单个空格的空白描述
func Sp() CurriedNode {
	return Ws(" ")
}

// Ws 任意水平空白描述
func Ws(space string) CurriedNode {
	return func(b *TokenTreeBuilder) TokenNode {
		return &Whitespace{tag: b.consume(space)}
	}
}

// Parens 圆括号分组描述
func Parens(children []CurriedNode) CurriedNode {
	return delimitedDesc(DelimParen, children)
}

// Square 方括号分组描述
func Square(children []CurriedNode) CurriedNode {
	return delimitedDesc(DelimSquare, children)
}

// Braced 花括号分组描述
func Braced(children []CurriedNode) CurriedNode {
	return delimitedDesc(DelimBrace, children)
}

// delimitedDesc 定界分组描述
func delimitedDesc(delim Delimiter, children []CurriedNode) CurriedNode {
	return func(b *TokenTreeBuilder) TokenNode {
		open, close := delim.Chars()
		openTag := b.consume(open)
		built := make([]TokenNode, 0, len(children))
		for _, child := range children {
			built = append(built, child(b))
		}
		closeTag := b.consume(close)
		return &DelimitedNode{
			Delimiter: delim,
			Children:  built,
			tag:       NewTag(openTag.Start, closeTag.End, b.origin),
		}
	}
}

// Path 点号路径描述
func Path(head CurriedNode, tail []CurriedNode) CurriedNode {
	return func(b *TokenTreeBuilder) TokenNode {
		headNode := head(b)
		segs := make([]TokenNode, 0, len(tail))
		for _, seg := range tail {
			b.consume(".")
			segs = append(segs, seg(b))
		}
		end := b.pos
		return &PathNode{
			Head: headNode,
			Tail: segs,
			tag:  NewTag(headNode.Tag().Start, end, b.origin),
		}
	}
}

// Call 调用描述：头节点加其余项，空白需要显式给出
func Call(head CurriedNode, rest ...CurriedNode) CurriedCall {
	return func(b *TokenTreeBuilder) *CallNode {
		start := b.pos
		items := []TokenNode{head(b)}
		for _, item := range rest {
			items = append(items, item(b))
		}
		return &CallNode{Items: items, tag: NewTag(start, b.pos, b.origin)}
	}
}

// PipelineDesc 管道阶段描述
// Pre与Post是调用前后的空白，空串表示没有；阶段之间的`|`自动插入
type PipelineDesc struct {
	Pre  string
	Call CurriedCall
	Post string
}

// Pipeline 管道描述
func Pipeline(elements []PipelineDesc) CurriedNode {
	return func(b *TokenTreeBuilder) TokenNode {
		start := b.pos
		built := make([]PipelineElement, 0, len(elements))
		for i, desc := range elements {
			var el PipelineElement
			if i > 0 {
				pipe := b.consume("|")
				el.Pipe = &pipe
			}
			if desc.Pre != "" {
				pre := b.consume(desc.Pre)
				el.PreWS = &pre
			}
			el.Call = desc.Call(b)
			if desc.Post != "" {
				post := b.consume(desc.Post)
				el.PostWS = &post
			}
			built = append(built, el)
		}
		return &PipelineNode{Elements: built, tag: NewTag(start, b.pos, b.origin)}
	}
}
