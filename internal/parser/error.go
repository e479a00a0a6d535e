package parser

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrorKind 解析错误的种类
type ErrorKind int

const (
	ErrUnexpectedChar        ErrorKind = iota // 当前位置没有任何识别器命中
	ErrUnexpectedEof                          // 多字符结构未完成时输入结束
	ErrUnterminatedString                     // 有开引号没有闭引号
	ErrUnterminatedDelimiter                  // 有开定界符没有匹配的闭定界符
	ErrTrailingInput                          // 管道解析成功后仍有剩余输入
)

// String 返回错误种类名
func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedChar:
		return "UnexpectedChar"
	case ErrUnexpectedEof:
		return "UnexpectedEof"
	case ErrUnterminatedString:
		return "UnterminatedString"
	case ErrUnterminatedDelimiter:
		return "UnterminatedDelimiter"
	case ErrTrailingInput:
		return "TrailingInput"
	default:
		return "Unknown"
	}
}

// ParseError 解析错误，携带失败的字节偏移与源缓冲区标识
// 调用方可以用Origin把Offset映射回具体的输入行
type ParseError struct {
	Kind   ErrorKind
	Offset int
	Origin uuid.UUID
}

// Error 实现error接口
func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrUnexpectedChar:
		return fmt.Sprintf("偏移%d处: 语法错误：意外的字符", e.Offset)
	case ErrUnexpectedEof:
		return fmt.Sprintf("偏移%d处: 语法错误：意外的输入结束", e.Offset)
	case ErrUnterminatedString:
		return fmt.Sprintf("偏移%d处: 语法错误：未闭合的字符串", e.Offset)
	case ErrUnterminatedDelimiter:
		return fmt.Sprintf("偏移%d处: 语法错误：未闭合的定界符", e.Offset)
	case ErrTrailingInput:
		return fmt.Sprintf("偏移%d处: 语法错误：管道之后存在多余输入", e.Offset)
	default:
		return fmt.Sprintf("偏移%d处: 语法错误", e.Offset)
	}
}

// newParseError 在游标当前位置构造硬错误
func newParseError(kind ErrorKind, c cursor) *ParseError {
	return &ParseError{Kind: kind, Offset: c.offset, Origin: c.origin}
}

// errNoMatch 识别器未命中的软失败信号
// 不是真正的错误：调用方收到后应当尝试下一个备选或向上传播，
// 游标保持原位，回退是自动的
var errNoMatch = errors.New("识别器未命中")

// isNoMatch 区分软失败与硬错误
func isNoMatch(err error) bool {
	return errors.Is(err, errNoMatch)
}
