package shell

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"gonu/internal/parser"
)

// Format token树的渲染格式
type Format int

const (
	FormatText Format = iota // 缩进文本
	FormatYAML               // YAML文档
)

// ParseFormat 从命令行参数解析渲染格式
func ParseFormat(text string) (Format, error) {
	switch text {
	case "text":
		return FormatText, nil
	case "yaml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("未知的输出格式: %q", text)
}

// Render 按指定格式渲染token树
func Render(node parser.TokenNode, source string, format Format) (string, error) {
	if format == FormatYAML {
		return renderYAML(node, source)
	}
	return renderText(node, source), nil
}

// renderText 把token树渲染为缩进文本
// 每个节点一行：种类、字节区间、叶子的源文本
func renderText(node parser.TokenNode, source string) string {
	var out strings.Builder
	writeTextNode(&out, node, source, 0)
	return out.String()
}

// writeTextNode 递归写出一个节点及其子节点
func writeTextNode(out *strings.Builder, node parser.TokenNode, source string, depth int) {
	indent := strings.Repeat("  ", depth)
	tag := node.Tag()

	switch n := node.(type) {
	case *parser.Token:
		fmt.Fprintf(out, "%s%s [%d, %d) %q\n", indent, n.Raw.Kind, tag.Start, tag.End, tag.Slice(source))
	case *parser.Whitespace:
		fmt.Fprintf(out, "%sWhitespace [%d, %d)\n", indent, tag.Start, tag.End)
	case *parser.DelimitedNode:
		fmt.Fprintf(out, "%sDelimited(%s) [%d, %d)\n", indent, n.Delimiter, tag.Start, tag.End)
		for _, child := range n.Children {
			writeTextNode(out, child, source, depth+1)
		}
	case *parser.PathNode:
		fmt.Fprintf(out, "%sPath [%d, %d)\n", indent, tag.Start, tag.End)
		writeTextNode(out, n.Head, source, depth+1)
		for _, seg := range n.Tail {
			writeTextNode(out, seg, source, depth+1)
		}
	case *parser.CallNode:
		fmt.Fprintf(out, "%sCall [%d, %d)\n", indent, tag.Start, tag.End)
		for _, item := range n.Items {
			writeTextNode(out, item, source, depth+1)
		}
	case *parser.PipelineNode:
		fmt.Fprintf(out, "%sPipeline [%d, %d)\n", indent, tag.Start, tag.End)
		for _, el := range n.Elements {
			if el.Pipe != nil {
				fmt.Fprintf(out, "%s  Pipe [%d, %d)\n", indent, el.Pipe.Start, el.Pipe.End)
			}
			if el.PreWS != nil {
				fmt.Fprintf(out, "%s  Whitespace [%d, %d)\n", indent, el.PreWS.Start, el.PreWS.End)
			}
			writeTextNode(out, el.Call, source, depth+1)
			if el.PostWS != nil {
				fmt.Fprintf(out, "%s  Whitespace [%d, %d)\n", indent, el.PostWS.Start, el.PostWS.End)
			}
		}
		if n.Trailing != nil {
			fmt.Fprintf(out, "%s  Trailing [%d, %d)\n", indent, n.Trailing.Start, n.Trailing.End)
		}
	}
}

// nodeDoc token树节点的YAML表示
type nodeDoc struct {
	Kind     string    `yaml:"kind"`
	Span     []int     `yaml:"span,flow"`
	Text     string    `yaml:"text,omitempty"`
	Children []nodeDoc `yaml:"children,omitempty"`
}

// renderYAML 把token树渲染为YAML文档
func renderYAML(node parser.TokenNode, source string) (string, error) {
	doc := buildNodeDoc(node, source)
	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("渲染YAML失败: %w", err)
	}
	return string(out), nil
}

// buildNodeDoc 把一个节点转为YAML表示
func buildNodeDoc(node parser.TokenNode, source string) nodeDoc {
	tag := node.Tag()
	doc := nodeDoc{Span: []int{tag.Start, tag.End}}

	switch n := node.(type) {
	case *parser.Token:
		doc.Kind = n.Raw.Kind.String()
		doc.Text = tag.Slice(source)
	case *parser.Whitespace:
		doc.Kind = "Whitespace"
	case *parser.DelimitedNode:
		doc.Kind = "Delimited" + n.Delimiter.String()
		for _, child := range n.Children {
			doc.Children = append(doc.Children, buildNodeDoc(child, source))
		}
	case *parser.PathNode:
		doc.Kind = "Path"
		doc.Children = append(doc.Children, buildNodeDoc(n.Head, source))
		for _, seg := range n.Tail {
			doc.Children = append(doc.Children, buildNodeDoc(seg, source))
		}
	case *parser.CallNode:
		doc.Kind = "Call"
		for _, item := range n.Items {
			doc.Children = append(doc.Children, buildNodeDoc(item, source))
		}
	case *parser.PipelineNode:
		doc.Kind = "Pipeline"
		for _, el := range n.Elements {
			if el.Pipe != nil {
				doc.Children = append(doc.Children, nodeDoc{Kind: "Pipe", Span: []int{el.Pipe.Start, el.Pipe.End}})
			}
			if el.PreWS != nil {
				doc.Children = append(doc.Children, nodeDoc{Kind: "Whitespace", Span: []int{el.PreWS.Start, el.PreWS.End}})
			}
			doc.Children = append(doc.Children, buildNodeDoc(el.Call, source))
			if el.PostWS != nil {
				doc.Children = append(doc.Children, nodeDoc{Kind: "Whitespace", Span: []int{el.PostWS.Start, el.PostWS.End}})
			}
		}
		if n.Trailing != nil {
			doc.Children = append(doc.Children, nodeDoc{Kind: "Trailing", Span: []int{n.Trailing.Start, n.Trailing.End}})
		}
	}
	return doc
}
