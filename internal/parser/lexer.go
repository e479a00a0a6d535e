package parser

import (
	"strings"
	"unicode"
)

// recognizer 叶子识别器：纯函数，要么成功返回前进后的游标与节点，
// 要么返回errNoMatch且游标不动，要么返回硬错误终止整个解析
type recognizer func(cursor) (cursor, TokenNode, error)

// leafAlternatives 叶子识别器的固定优先级
// 顺序即语法：第一个成功者胜出，之后不再回溯到更低优先级的备选
var leafAlternatives = []recognizer{
	size,
	str,
	operator,
	flag,
	shorthand,
	variable,
	external,
	bare,
	pattern,
	externalWord,
}

// leaf 按固定优先级尝试全部叶子识别器
func leaf(c cursor) (cursor, TokenNode, error) {
	return alt(c, leafAlternatives...)
}

// alt 依次尝试各备选识别器，命中即返回，硬错误立即传播
func alt(c cursor, fns ...recognizer) (cursor, TokenNode, error) {
	for _, fn := range fns {
		next, node, err := fn(c)
		if err == nil {
			return next, node, nil
		}
		if !isNoMatch(err) {
			return c, nil, err
		}
	}
	return c, nil, errNoMatch
}

// rawNumber 解析可选负号、整数部分与可选小数部分
// 只有`.`后紧跟至少一个数字才算小数，否则只取整数部分
func rawNumber(c cursor) (cursor, RawNumber, error) {
	start := c
	cur, _ := literal(c, "-")
	cur, ok := takeWhile1(cur, isDigit)
	if !ok {
		return c, RawNumber{}, errNoMatch
	}
	if dot, ok := literal(cur, "."); ok {
		if tail, ok := takeWhile1(dot, isDigit); ok {
			return tail, RawNumber{Kind: RawDecimal, Tag: start.tagTo(tail)}, nil
		}
	}
	return cur, RawNumber{Kind: RawInt, Tag: start.tagTo(cur)}, nil
}

// rawUnit 解析字节数量级单位后缀，两字母后缀优先于单字母后缀
func rawUnit(c cursor) (cursor, Unit, bool) {
	for _, s := range unitSuffixes {
		if next, ok := literal(c, s.text); ok {
			return next, s.unit, true
		}
	}
	return c, 0, false
}

// size 解析数字或带单位的大小
// 数字与单位匹配完成后向前看一个裸词：若裸词仍能匹配，
// 说明遇到了类似`123x`的粘连词，整个匹配被拒绝而不是截断
func size(c cursor) (cursor, TokenNode, error) {
	start := c
	cur, num, err := rawNumber(c)
	if err != nil {
		return c, nil, errNoMatch
	}
	if next, unit, ok := rawUnit(cur); ok {
		if hasBareTail(next) {
			return c, nil, errNoMatch
		}
		raw := RawToken{Kind: KindSize, Number: num, Unit: unit}
		return next, &Token{Raw: raw, tag: start.tagTo(next)}, nil
	}
	if hasBareTail(cur) {
		return c, nil, errNoMatch
	}
	return cur, &Token{Raw: RawToken{Kind: KindNumber, Number: num}, tag: num.Tag}, nil
}

// hasBareTail 判断当前位置是否还粘着一个可匹配的裸词
func hasBareTail(c cursor) bool {
	_, _, err := bare(c)
	return err == nil
}

// str 解析双引号或单引号字符串
// 内容是除匹配引号外的任意字符，不做转义处理；
// 找到开引号却没有闭引号是硬错误UnterminatedString
func str(c cursor) (cursor, TokenNode, error) {
	rest := c.rest()
	if len(rest) == 0 {
		return c, nil, errNoMatch
	}
	quote := rest[0]
	if quote != '"' && quote != '\'' {
		return c, nil, errNoMatch
	}
	idx := strings.IndexByte(rest[1:], quote)
	if idx < 0 {
		return c, nil, newParseError(ErrUnterminatedString, c)
	}
	next := c.advance(idx + 2)
	inner := NewTag(c.offset+1, c.offset+1+idx, c.origin)
	raw := RawToken{Kind: KindString, Inner: inner}
	return next, &Token{Raw: raw, tag: c.tagTo(next)}, nil
}

// operatorTexts 运算符表，两字符运算符排在其单字符前缀之前
var operatorTexts = []string{">=", "<=", "!=", "==", ">", "<"}

// operator 解析比较运算符
func operator(c cursor) (cursor, TokenNode, error) {
	for _, text := range operatorTexts {
		if next, ok := literal(c, text); ok {
			op, _ := operatorFor(text)
			raw := RawToken{Kind: KindOperator, Op: op}
			return next, &Token{Raw: raw, tag: c.tagTo(next)}, nil
		}
	}
	return c, nil, errNoMatch
}

// flag 解析`--`加裸词的长标志，Name只覆盖裸词部分
func flag(c cursor) (cursor, TokenNode, error) {
	cur, ok := literal(c, "--")
	if !ok {
		return c, nil, errNoMatch
	}
	next, name, err := bareWord(cur)
	if err != nil {
		return c, nil, err
	}
	raw := RawToken{Kind: KindFlag, Name: name}
	return next, &Token{Raw: raw, tag: c.tagTo(next)}, nil
}

// shorthand 解析`-`加裸词的短标志
// 必须排在bare之前尝试，否则`-alt`会被误认为裸词
func shorthand(c cursor) (cursor, TokenNode, error) {
	cur, ok := literal(c, "-")
	if !ok {
		return c, nil, errNoMatch
	}
	next, name, err := bareWord(cur)
	if err != nil {
		return c, nil, err
	}
	raw := RawToken{Kind: KindShorthand, Name: name}
	return next, &Token{Raw: raw, tag: c.tagTo(next)}, nil
}

// variable 解析`$`加标识符的变量引用
func variable(c cursor) (cursor, TokenNode, error) {
	cur, ok := literal(c, "$")
	if !ok {
		return c, nil, errNoMatch
	}
	next, name, err := memberWord(cur)
	if err != nil {
		return c, nil, err
	}
	raw := RawToken{Kind: KindVariable, Name: name}
	return next, &Token{Raw: raw, tag: c.tagTo(next)}, nil
}

// external 解析`^`加裸词字符的外部命令调用
// 标记字符取`^`：原始实现与其测试在`;`和`^`之间不一致，
// 这里统一用`^`，`;`保留在外部词的排除集中
func external(c cursor) (cursor, TokenNode, error) {
	cur, ok := literal(c, "^")
	if !ok {
		return c, nil, errNoMatch
	}
	next, ok := takeWhile1(cur, isBareChar)
	if !ok {
		return c, nil, errNoMatch
	}
	raw := RawToken{Kind: KindExternalCommand, Name: cur.tagTo(next)}
	return next, &Token{Raw: raw, tag: c.tagTo(next)}, nil
}

// member 解析路径成员标识符叶子
func member(c cursor) (cursor, TokenNode, error) {
	next, name, err := memberWord(c)
	if err != nil {
		return c, nil, err
	}
	return next, &Token{Raw: RawToken{Kind: KindMember}, tag: name}, nil
}

// memberWord 消费一个标识符并返回其区间
func memberWord(c cursor) (cursor, Tag, error) {
	r, size := c.peekRune()
	if size == 0 || !isIDStart(r) {
		return c, Tag{}, errNoMatch
	}
	next := takeWhile(c.advance(size), isIDContinue)
	return next, c.tagTo(next), nil
}

// bare 解析裸词叶子
func bare(c cursor) (cursor, TokenNode, error) {
	next, tag, err := bareWord(c)
	if err != nil {
		return c, nil, err
	}
	return next, &Token{Raw: RawToken{Kind: KindBare}, tag: tag}, nil
}

// bareWord 消费一个裸词并返回其区间
// 若下一个字符仍是外部词字符或glob专用字符，说明裸词只能
// 截断一个更长的token，整个匹配被拒绝，交给后续备选处理
func bareWord(c cursor) (cursor, Tag, error) {
	r, size := c.peekRune()
	if size == 0 || !isBareStartChar(r) {
		return c, Tag{}, errNoMatch
	}
	next := takeWhile(c.advance(size), isBareChar)
	if r, size := next.peekRune(); size > 0 {
		if isExternalWordChar(r) || isGlobSpecificChar(r) {
			return c, Tag{}, errNoMatch
		}
	}
	return next, c.tagTo(next), nil
}

// pattern 解析glob模式
// 字符集在裸词基础上增加`*`与`?`；裸词因粘着glob字符被拒绝后
// 会落到这里，把整个词作为一个模式消费
func pattern(c cursor) (cursor, TokenNode, error) {
	r, size := c.peekRune()
	if size == 0 || !isStartGlobChar(r) {
		return c, nil, errNoMatch
	}
	next := takeWhile(c.advance(size), isGlobChar)
	if r, size := next.peekRune(); size > 0 && isExternalWordChar(r) {
		return c, nil, errNoMatch
	}
	return next, &Token{Raw: RawToken{Kind: KindPattern}, tag: c.tagTo(next)}, nil
}

// externalWord 兜底识别器
// 任何非空白且不在排除集中的字符串都作为一个外部词整体捕获，
// 例如`+nightly`这类不是合法裸词却必须保留的token
func externalWord(c cursor) (cursor, TokenNode, error) {
	next, ok := takeWhile1(c, isExternalWordChar)
	if !ok {
		return c, nil, errNoMatch
	}
	return next, &Token{Raw: RawToken{Kind: KindExternalWord}, tag: c.tagTo(next)}, nil
}

// isDigit 判断是否为十进制数字
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isHorizontalSpace 判断是否为水平空白
func isHorizontalSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// isExternalWordChar 判断外部词字符
// 排除空白与会引入其他结构的字符；注意`^`不在排除集中，
// 但external识别器先于externalWord尝试
func isExternalWordChar(r rune) bool {
	switch r {
	case ';', '|', '#', '-', '"', '\'', '$', '(', ')', '[', ']', '{', '}', '`':
		return false
	}
	return !unicode.IsSpace(r)
}

// isGlobSpecificChar 只出现在glob中而不出现在裸词中的字符
func isGlobSpecificChar(r rune) bool {
	return r == '*' || r == '?'
}

// isStartGlobChar 判断glob的起始字符
func isStartGlobChar(r rune) bool {
	return isBareStartChar(r) || isGlobSpecificChar(r)
}

// isGlobChar 判断glob的后续字符
func isGlobChar(r rune) bool {
	return isBareChar(r) || isGlobSpecificChar(r)
}

// isBareStartChar 判断裸词的起始字符
func isBareStartChar(r rune) bool {
	if r == '+' {
		return false
	}
	if unicode.IsLetter(r) {
		return true
	}
	switch r {
	case '.', '\\', '/', '_', '-', '~':
		return true
	}
	return false
}

// isBareChar 判断裸词的后续字符
func isBareChar(r rune) bool {
	if r == '+' {
		return false
	}
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '.', '\\', '/', '_', '-', '=', '~', ':':
		return true
	}
	return false
}

// isIDStart 判断标识符的起始字符
func isIDStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

// isIDContinue 判断标识符的后续字符
func isIDContinue(r rune) bool {
	return isIDStart(r) || unicode.IsDigit(r) || r == '-' || r == '?' || r == '!'
}
