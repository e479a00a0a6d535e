package parser

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// RawTokenKind 叶子token的种类
type RawTokenKind int

const (
	KindNumber          RawTokenKind = iota // 数字字面量
	KindSize                                // 带单位的大小字面量
	KindString                              // 引号字符串
	KindBare                                // 裸词
	KindPattern                             // glob模式
	KindVariable                            // $变量引用
	KindFlag                                // --长标志
	KindShorthand                           // -短标志
	KindExternalCommand                     // ^外部命令
	KindExternalWord                        // 外部词（兜底）
	KindOperator                            // 比较运算符
	KindMember                              // 路径成员标识符
)

// String 返回种类的字符串表示
func (k RawTokenKind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindSize:
		return "Size"
	case KindString:
		return "String"
	case KindBare:
		return "Bare"
	case KindPattern:
		return "Pattern"
	case KindVariable:
		return "Variable"
	case KindFlag:
		return "Flag"
	case KindShorthand:
		return "Shorthand"
	case KindExternalCommand:
		return "ExternalCommand"
	case KindExternalWord:
		return "ExternalWord"
	case KindOperator:
		return "Operator"
	case KindMember:
		return "Member"
	default:
		return "Unknown"
	}
}

// RawToken 叶子token，Kind决定哪些负载字段有效
// 所有负载都只保存区间，字面量的值按需从源文本解析
type RawToken struct {
	Kind   RawTokenKind
	Number RawNumber // Kind为Number或Size时有效
	Unit   Unit      // Kind为Size时有效
	Inner  Tag       // Kind为String时为去掉引号的内部区间
	Name   Tag       // Variable/Flag/Shorthand/ExternalCommand的名字区间
	Op     Operator  // Kind为Operator时有效
}

// Operator 比较运算符种类
type Operator int

const (
	OpEqual              Operator = iota // ==
	OpNotEqual                           // !=
	OpLessThan                           // <
	OpGreaterThan                        // >
	OpLessThanOrEqual                    // <=
	OpGreaterThanOrEqual                 // >=
)

// String 返回运算符的源文本形式
func (o Operator) String() string {
	switch o {
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	case OpLessThan:
		return "<"
	case OpGreaterThan:
		return ">"
	case OpLessThanOrEqual:
		return "<="
	case OpGreaterThanOrEqual:
		return ">="
	default:
		return "?"
	}
}

// operatorFor 从源文本查找运算符种类
func operatorFor(text string) (Operator, bool) {
	switch text {
	case "==":
		return OpEqual, true
	case "!=":
		return OpNotEqual, true
	case "<":
		return OpLessThan, true
	case ">":
		return OpGreaterThan, true
	case "<=":
		return OpLessThanOrEqual, true
	case ">=":
		return OpGreaterThanOrEqual, true
	}
	return 0, false
}

// RawNumberKind 数字字面量的种类
type RawNumberKind int

const (
	RawInt     RawNumberKind = iota // 整数
	RawDecimal                      // 十进制小数
)

// RawNumber 数字字面量，仅保存区间
// 实际数值推迟到消费点再解析，避免只做序列化往返时的无谓分配
type RawNumber struct {
	Kind RawNumberKind
	Tag  Tag
}

// ToNumber 从源文本解析出任意精度数值
func (r RawNumber) ToNumber(source string) Number {
	text := r.Tag.Slice(source)
	if r.Kind == RawDecimal {
		d, err := decimal.NewFromString(text)
		if err != nil {
			return DecimalNumber(decimal.Zero)
		}
		return DecimalNumber(d)
	}
	i, ok := new(big.Int).SetString(text, 10)
	if !ok {
		i = big.NewInt(0)
	}
	return IntNumber(i)
}

// NumberKind 数值的种类
type NumberKind int

const (
	NumberInt     NumberKind = iota // 任意精度整数
	NumberDecimal                   // 任意精度小数
)

// Number 任意精度数值，整数用big.Int表示，小数用decimal.Decimal表示
type Number struct {
	Kind NumberKind
	Int  *big.Int
	Dec  decimal.Decimal
}

// IntNumber 用big.Int构造整数数值
func IntNumber(i *big.Int) Number {
	return Number{Kind: NumberInt, Int: i}
}

// IntNumberFromInt64 用int64构造整数数值
func IntNumberFromInt64(i int64) Number {
	return Number{Kind: NumberInt, Int: big.NewInt(i)}
}

// DecimalNumber 用decimal.Decimal构造小数数值
func DecimalNumber(d decimal.Decimal) Number {
	return Number{Kind: NumberDecimal, Dec: d}
}

// Mul 数值乘法
// 两个操作数都是整数时结果仍为整数，否则加宽为小数
func (n Number) Mul(other Number) Number {
	if n.Kind == NumberInt && other.Kind == NumberInt {
		return IntNumber(new(big.Int).Mul(n.Int, other.Int))
	}
	return DecimalNumber(n.decimal().Mul(other.decimal()))
}

// decimal 把数值统一转为小数表示
func (n Number) decimal() decimal.Decimal {
	if n.Kind == NumberInt {
		return decimal.NewFromBigInt(n.Int, 0)
	}
	return n.Dec
}

// String 返回数值的字符串表示
func (n Number) String() string {
	if n.Kind == NumberInt {
		return n.Int.String()
	}
	return n.Dec.String()
}

// Unit 字节数量级单位
// 同一数量级的大小写后缀变体折叠为同一个单位值，
// KB与Kb在源数据中没有语义区别
type Unit int

const (
	UnitByte Unit = iota
	UnitKilo
	UnitMega
	UnitGiga
	UnitTera
	UnitPeta
)

// String 返回单位的标准后缀
func (u Unit) String() string {
	switch u {
	case UnitByte:
		return "B"
	case UnitKilo:
		return "KB"
	case UnitMega:
		return "MB"
	case UnitGiga:
		return "GB"
	case UnitTera:
		return "TB"
	case UnitPeta:
		return "PB"
	default:
		return "?"
	}
}

// Multiplier 返回单位对应的字节倍数（1024进制）
func (u Unit) Multiplier() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(10*u))
}

// Scale 把数值按单位倍数放大，得到以字节计的数值
func (u Unit) Scale(n Number) Number {
	return n.Mul(IntNumber(u.Multiplier()))
}

// unitSuffixes 单位后缀表
// 两字母后缀排在单字母后缀之前，避免KB被K截断
var unitSuffixes = []struct {
	text string
	unit Unit
}{
	{"KB", UnitKilo}, {"kb", UnitKilo}, {"Kb", UnitKilo},
	{"MB", UnitMega}, {"mb", UnitMega}, {"Mb", UnitMega},
	{"GB", UnitGiga}, {"gb", UnitGiga}, {"Gb", UnitGiga},
	{"TB", UnitTera}, {"tb", UnitTera}, {"Tb", UnitTera},
	{"PB", UnitPeta}, {"pb", UnitPeta}, {"Pb", UnitPeta},
	{"K", UnitKilo}, {"k", UnitKilo},
	{"B", UnitByte}, {"b", UnitByte},
}

// unitFor 从后缀文本查找单位
func unitFor(text string) (Unit, bool) {
	for _, s := range unitSuffixes {
		if s.text == text {
			return s.unit, true
		}
	}
	return 0, false
}
