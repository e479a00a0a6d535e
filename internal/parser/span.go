// Package parser 提供命令行的无损词法与结构分析功能
// 将一行输入解析为保留全部空白的token树，叶子与空白节点的
// 区间按树序拼接可以逐字节还原原始输入
package parser

import (
	"unicode/utf8"

	"github.com/google/uuid"
)

// Tag 标记源文本中的一个半开字节区间 [Start, End)
// Origin 标识区间所属的源缓冲区，同一棵树中所有Tag的Origin必须一致
type Tag struct {
	Start  int
	End    int
	Origin uuid.UUID
}

// NewTag 创建新的Tag
func NewTag(start, end int, origin uuid.UUID) Tag {
	return Tag{Start: start, End: end, Origin: origin}
}

// Slice 返回Tag在源文本中对应的子串
func (t Tag) Slice(source string) string {
	return source[t.Start:t.End]
}

// Len 返回区间长度
func (t Tag) Len() int {
	return t.End - t.Start
}

// cursor 解析游标，不可变的值类型
// 每次前进都产生一个新的游标，底层文本从不被修改，
// 因此备选分支失败后的回退只需丢弃新游标即可
type cursor struct {
	input  string
	offset int
	origin uuid.UUID
	depth  int // 当前定界符嵌套深度
}

// newCursor 创建指向文本开头的游标
func newCursor(input string, origin uuid.UUID) cursor {
	return cursor{input: input, origin: origin}
}

// rest 返回尚未消费的文本
func (c cursor) rest() string {
	return c.input[c.offset:]
}

// eof 判断是否已到达输入末尾
func (c cursor) eof() bool {
	return c.offset >= len(c.input)
}

// advance 前进n个字节，返回新的游标
func (c cursor) advance(n int) cursor {
	c.offset += n
	return c
}

// deeper 返回嵌套深度加一的游标，进入定界分组时使用
func (c cursor) deeper() cursor {
	c.depth++
	return c
}

// tagTo 以当前游标为起点、next为终点构造Tag
// 两个游标必须来自同一个源缓冲区
func (c cursor) tagTo(next cursor) Tag {
	return Tag{Start: c.offset, End: next.offset, Origin: c.origin}
}

// peekRune 查看当前字符但不前进，到达末尾时返回(0, 0)
func (c cursor) peekRune() (rune, int) {
	if c.eof() {
		return 0, 0
	}
	return utf8.DecodeRuneInString(c.rest())
}

// literal 若剩余文本以s开头则消费之
func literal(c cursor, s string) (cursor, bool) {
	if len(c.rest()) < len(s) || c.rest()[:len(s)] != s {
		return c, false
	}
	return c.advance(len(s)), true
}

// takeWhile 消费零个或多个满足pred的字符
func takeWhile(c cursor, pred func(rune) bool) cursor {
	for {
		r, size := c.peekRune()
		if size == 0 || !pred(r) {
			return c
		}
		c = c.advance(size)
	}
}

// takeWhile1 消费至少一个满足pred的字符，一个都没有时不移动游标
func takeWhile1(c cursor, pred func(rune) bool) (cursor, bool) {
	next := takeWhile(c, pred)
	if next.offset == c.offset {
		return c, false
	}
	return next, true
}
