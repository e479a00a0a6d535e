package parser

import "strings"

// TokenNode token树节点接口
// 每个节点都携带覆盖自身全部文本的Tag；把叶子与空白节点按树序
// 拼接（加上结构节点隐含的定界符与点号）即可逐字节还原源文本
type TokenNode interface {
	Tag() Tag
	tokenNode()
}

// Token 叶子节点
type Token struct {
	Raw RawToken
	tag Tag
}

func (t *Token) Tag() Tag   { return t.tag }
func (t *Token) tokenNode() {}

// Whitespace 空白节点
// 空白永远作为独立节点保留，不合并进相邻叶子，也不丢弃
type Whitespace struct {
	tag Tag
}

func (w *Whitespace) Tag() Tag   { return w.tag }
func (w *Whitespace) tokenNode() {}

// Delimiter 定界符种类
type Delimiter int

const (
	DelimParen  Delimiter = iota // ( )
	DelimSquare                  // [ ]
	DelimBrace                   // { }
)

// Chars 返回定界符的开闭字符
func (d Delimiter) Chars() (open, close string) {
	switch d {
	case DelimSquare:
		return "[", "]"
	case DelimBrace:
		return "{", "}"
	default:
		return "(", ")"
	}
}

// String 返回定界符种类名
func (d Delimiter) String() string {
	switch d {
	case DelimSquare:
		return "Square"
	case DelimBrace:
		return "Brace"
	default:
		return "Paren"
	}
}

// DelimitedNode 定界分组节点
// Children只包含定界符内部的节点，内部空白原样保留
type DelimitedNode struct {
	Delimiter Delimiter
	Children  []TokenNode
	tag       Tag
}

func (d *DelimitedNode) Tag() Tag   { return d.tag }
func (d *DelimitedNode) tokenNode() {}

// PathNode 点号路径节点
// Head是任意叶子或圆括号分组，Tail是成员或引号字符串叶子的序列，
// 各段之间的点号由结构隐含，不单独成节点
type PathNode struct {
	Head TokenNode
	Tail []TokenNode
	tag  Tag
}

func (p *PathNode) Tag() Tag   { return p.tag }
func (p *PathNode) tokenNode() {}

// CallNode 一个管道阶段的原始token流
// 此处尚不区分命令名与参数，那是语义分析器的职责
type CallNode struct {
	Items []TokenNode
	tag   Tag
}

func (c *CallNode) Tag() Tag   { return c.tag }
func (c *CallNode) tokenNode() {}

// PipelineElement 管道中的一个阶段及其周围的分隔信息
type PipelineElement struct {
	Pipe   *Tag // 前导`|`的区间，第一个阶段为nil
	PreWS  *Tag // `|`之后、调用之前的空白
	Call   *CallNode
	PostWS *Tag // 调用之后的空白
}

// PipelineNode 管道节点，token树的根
type PipelineNode struct {
	Elements []PipelineElement
	Trailing *Tag // 行尾空白（含换行类空白）
	tag      Tag
}

func (p *PipelineNode) Tag() Tag   { return p.tag }
func (p *PipelineNode) tokenNode() {}

// Reconstruct 按树序拼接节点覆盖的源文本
// 用于无损性校验与渲染；对任何成功解析出的树，
// Reconstruct(tree, source) == source
func Reconstruct(node TokenNode, source string) string {
	var out strings.Builder
	reconstruct(&out, node, source)
	return out.String()
}

// reconstruct 递归写出节点的源文本
func reconstruct(out *strings.Builder, node TokenNode, source string) {
	switch n := node.(type) {
	case *Token, *Whitespace:
		out.WriteString(node.Tag().Slice(source))
	case *DelimitedNode:
		open, close := n.Delimiter.Chars()
		out.WriteString(open)
		for _, child := range n.Children {
			reconstruct(out, child, source)
		}
		out.WriteString(close)
	case *PathNode:
		reconstruct(out, n.Head, source)
		for _, seg := range n.Tail {
			out.WriteString(".")
			reconstruct(out, seg, source)
		}
	case *CallNode:
		for _, item := range n.Items {
			reconstruct(out, item, source)
		}
	case *PipelineNode:
		for _, el := range n.Elements {
			if el.Pipe != nil {
				out.WriteString(el.Pipe.Slice(source))
			}
			if el.PreWS != nil {
				out.WriteString(el.PreWS.Slice(source))
			}
			reconstruct(out, el.Call, source)
			if el.PostWS != nil {
				out.WriteString(el.PostWS.Slice(source))
			}
		}
		if n.Trailing != nil {
			out.WriteString(n.Trailing.Slice(source))
		}
	}
}
