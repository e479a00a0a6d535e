package parser

import (
	"unicode"

	"github.com/google/uuid"
)

// maxDelimiterDepth 定界分组的最大嵌套深度
// 递归下降的栈深度与嵌套深度成正比，对不可信输入必须设上限
const maxDelimiterDepth = 64

// Parse 把一行源文本解析为管道token树
// origin标识这个源缓冲区，会原样传播到树中每个节点的Tag里；
// 解析必须恰好消费全部输入，任何剩余字符都是硬错误
func Parse(input string, origin uuid.UUID) (*PipelineNode, error) {
	_, node, err := pipeline(newCursor(input, origin))
	if err != nil {
		return nil, err
	}
	return node, nil
}

// ParseCall 解析单个调用子语法，输入必须恰好是一个调用
func ParseCall(input string, origin uuid.UUID) (*CallNode, error) {
	cur, call, err := rawCall(newCursor(input, origin))
	if err != nil {
		if isNoMatch(err) {
			return nil, newParseError(ErrUnexpectedChar, newCursor(input, origin))
		}
		return nil, err
	}
	if !cur.eof() {
		return nil, newParseError(ErrTrailingInput, cur)
	}
	return call, nil
}

// ParseNode 解析单个节点子语法，输入必须恰好是一个节点
func ParseNode(input string, origin uuid.UUID) (TokenNode, error) {
	cur, n, err := node(newCursor(input, origin))
	if err != nil {
		if isNoMatch(err) {
			return nil, newParseError(ErrUnexpectedChar, newCursor(input, origin))
		}
		return nil, err
	}
	if !cur.eof() {
		return nil, newParseError(ErrTrailingInput, cur)
	}
	return n, nil
}

// space1 消费一段水平空白并返回其区间
func space1(c cursor) (cursor, Tag, bool) {
	next, ok := takeWhile1(c, isHorizontalSpace)
	if !ok {
		return c, Tag{}, false
	}
	return next, c.tagTo(next), true
}

// whitespace 消费一段水平空白并生成空白节点
func whitespace(c cursor) (cursor, TokenNode, error) {
	next, tag, ok := space1(c)
	if !ok {
		return c, nil, errNoMatch
	}
	return next, &Whitespace{tag: tag}, nil
}

// node 通用节点分发器
// path必须最先尝试：叶子自己看不到后面的`.`段；
// path内部会重新尝试叶子与分组作为自己的头节点
func node(c cursor) (cursor, TokenNode, error) {
	return alt(c, path, leaf, delimitedParen, delimitedBrace, delimitedSquare)
}

// node1 路径头节点允许的形式：叶子或圆括号分组
func node1(c cursor) (cursor, TokenNode, error) {
	return alt(c, leaf, delimitedParen)
}

// path 解析点号路径：头节点后紧跟`.`与段序列，贪婪消费
// 至少要有一个段，否则整体不命中，交还给leaf处理；
// 头节点与`.`之间不允许空白
func path(c cursor) (cursor, TokenNode, error) {
	start := c
	cur, head, err := node1(c)
	if err != nil {
		return c, nil, err
	}
	var tail []TokenNode
	for {
		dotCur, ok := literal(cur, ".")
		if !ok {
			break
		}
		next, seg, err := pathSegment(dotCur)
		if err != nil {
			if isNoMatch(err) {
				break
			}
			return c, nil, err
		}
		tail = append(tail, seg)
		cur = next
	}
	if len(tail) == 0 {
		return c, nil, errNoMatch
	}
	return cur, &PathNode{Head: head, Tail: tail, tag: start.tagTo(cur)}, nil
}

// pathSegment 路径段：成员标识符或引号字符串
func pathSegment(c cursor) (cursor, TokenNode, error) {
	return alt(c, member, str)
}

// tokenList 解析token列表
// 第一个节点之后，每个后续节点前都必须有空白分隔；
// 结果序列中内容节点与空白节点严格交替
func tokenList(c cursor) (cursor, []TokenNode, error) {
	cur, first, err := node(c)
	if err != nil {
		return c, nil, err
	}
	nodes := []TokenNode{first}
	for {
		wsCur, ws, ok := space1(cur)
		if !ok {
			break
		}
		next, n, err := node(wsCur)
		if err != nil {
			if isNoMatch(err) {
				// 空白留给调用方处理
				break
			}
			return c, nil, err
		}
		nodes = append(nodes, &Whitespace{tag: ws}, n)
		cur = next
	}
	return cur, nodes, nil
}

// delimitedParen 解析圆括号分组
func delimitedParen(c cursor) (cursor, TokenNode, error) {
	return delimited(c, DelimParen)
}

// delimitedSquare 解析方括号分组
func delimitedSquare(c cursor) (cursor, TokenNode, error) {
	return delimited(c, DelimSquare)
}

// delimitedBrace 解析花括号分组
func delimitedBrace(c cursor) (cursor, TokenNode, error) {
	return delimited(c, DelimBrace)
}

// delimited 解析定界分组
// 开定界符、可选内部空白、可选token列表、可选内部空白、闭定界符；
// 内部空白即使分组为空也原样保留；缺失闭定界符是硬错误
func delimited(c cursor, delim Delimiter) (cursor, TokenNode, error) {
	open, close := delim.Chars()
	cur, ok := literal(c, open)
	if !ok {
		return c, nil, errNoMatch
	}
	if cur.depth >= maxDelimiterDepth {
		return c, nil, newParseError(ErrUnexpectedChar, c)
	}
	cur = cur.deeper()

	var children []TokenNode
	if next, ws, err := whitespace(cur); err == nil {
		children = append(children, ws)
		cur = next
	}
	if next, inner, err := tokenList(cur); err == nil {
		children = append(children, inner...)
		cur = next
	} else if !isNoMatch(err) {
		return c, nil, err
	}
	if next, ws, err := whitespace(cur); err == nil {
		children = append(children, ws)
		cur = next
	}

	next, ok := literal(cur, close)
	if !ok {
		return c, nil, newParseError(ErrUnterminatedDelimiter, c)
	}
	next.depth = c.depth
	return next, &DelimitedNode{Delimiter: delim, Children: children, tag: c.tagTo(next)}, nil
}

// rawCall 解析一个管道阶段的原始token流
func rawCall(c cursor) (cursor, *CallNode, error) {
	cur, items, err := tokenList(c)
	if err != nil {
		return c, nil, err
	}
	return cur, &CallNode{Items: items, tag: c.tagTo(cur)}, nil
}

// pipeline 解析整行管道
// 可选的第一个调用，然后是零或多个`|`加调用，每个调用前后
// 允许空白；之后消费行尾空白与换行，输入必须全部耗尽
func pipeline(c cursor) (cursor, *PipelineNode, error) {
	start := c
	cur := c
	var elements []PipelineElement

	// 第一个阶段整体可选：前导空白只在调用成功时才被消费
	if next, el, err := pipelineHead(cur); err == nil {
		elements = append(elements, el)
		cur = next
	} else if !isNoMatch(err) {
		return c, nil, err
	}

	// 后续阶段：`|` 可选空白 调用 可选空白
	for {
		pipeCur, ok := literal(cur, "|")
		if !ok {
			break
		}
		pipeTag := cur.tagTo(pipeCur)
		tmp := pipeCur
		var preWS *Tag
		if next, ws, ok := space1(tmp); ok {
			preWS = &ws
			tmp = next
		}
		next, call, err := rawCall(tmp)
		if err != nil {
			if isNoMatch(err) {
				if tmp.eof() {
					return c, nil, newParseError(ErrUnexpectedEof, tmp)
				}
				return c, nil, newParseError(ErrUnexpectedChar, tmp)
			}
			return c, nil, err
		}
		el := PipelineElement{Pipe: &pipeTag, PreWS: preWS, Call: call}
		if post, ws, ok := space1(next); ok {
			el.PostWS = &ws
			next = post
		}
		elements = append(elements, el)
		cur = next
	}

	// 行尾：水平空白与换行类空白合并为一个Trailing区间
	tailStart := cur
	cur = takeWhile(cur, isHorizontalSpace)
	cur = takeWhile(cur, unicode.IsSpace)
	var trailing *Tag
	if cur.offset > tailStart.offset {
		t := tailStart.tagTo(cur)
		trailing = &t
	}

	// 整行消费检查：管道从不解析前缀后默默丢弃后缀
	if !cur.eof() {
		if len(elements) == 0 {
			return c, nil, newParseError(ErrUnexpectedChar, cur)
		}
		return c, nil, newParseError(ErrTrailingInput, cur)
	}

	return cur, &PipelineNode{Elements: elements, Trailing: trailing, tag: start.tagTo(cur)}, nil
}

// pipelineHead 解析管道的第一个阶段：可选空白、调用、可选空白
func pipelineHead(c cursor) (cursor, PipelineElement, error) {
	cur := c
	var preWS *Tag
	if next, ws, ok := space1(cur); ok {
		preWS = &ws
		cur = next
	}
	next, call, err := rawCall(cur)
	if err != nil {
		return c, PipelineElement{}, err
	}
	el := PipelineElement{PreWS: preWS, Call: call}
	if post, ws, ok := space1(next); ok {
		el.PostWS = &ws
		next = post
	}
	return next, el, nil
}
