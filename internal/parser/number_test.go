package parser

import (
	"testing"

	"github.com/google/uuid"
)

func TestNumberMul(t *testing.T) {
	tests := []struct {
		a, b Number
		kind NumberKind
		want string
	}{
		{IntNumberFromInt64(6), IntNumberFromInt64(7), NumberInt, "42"},
		{IntNumberFromInt64(-3), IntNumberFromInt64(5), NumberInt, "-15"},
		{mustDecimal(t, "1.5"), IntNumberFromInt64(4), NumberDecimal, "6"},
		{mustDecimal(t, "0.5"), mustDecimal(t, "0.5"), NumberDecimal, "0.25"},
	}

	for _, tt := range tests {
		got := tt.a.Mul(tt.b)
		if got.Kind != tt.kind {
			t.Errorf("%s * %s 的种类错误，期望 %v，实际 %v", tt.a, tt.b, tt.kind, got.Kind)
		}
		if got.String() != tt.want {
			t.Errorf("%s * %s 错误，期望 %s，实际 %s", tt.a, tt.b, tt.want, got.String())
		}
	}
}

// mustDecimal 从字面量构造小数数值
func mustDecimal(t *testing.T, text string) Number {
	t.Helper()
	n := RawNumber{Kind: RawDecimal, Tag: NewTag(0, len(text), uuid.Nil)}.ToNumber(text)
	return n
}

func TestNumberMulBig(t *testing.T) {
	// 任意精度：乘积超出int64也不溢出
	big1 := RawNumber{Kind: RawInt, Tag: NewTag(0, 19, uuid.Nil)}.ToNumber("9223372036854775807")
	got := big1.Mul(IntNumberFromInt64(2))
	if got.String() != "18446744073709551614" {
		t.Errorf("大数乘法错误: %s", got.String())
	}
}

func TestUnitMultiplier(t *testing.T) {
	tests := []struct {
		unit Unit
		want string
	}{
		{UnitByte, "1"},
		{UnitKilo, "1024"},
		{UnitMega, "1048576"},
		{UnitGiga, "1073741824"},
		{UnitTera, "1099511627776"},
		{UnitPeta, "1125899906842624"},
	}
	for _, tt := range tests {
		if got := tt.unit.Multiplier().String(); got != tt.want {
			t.Errorf("单位 %v 的倍数错误，期望 %s，实际 %s", tt.unit, tt.want, got)
		}
	}
}
