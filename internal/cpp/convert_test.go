package cpp

import (
	"testing"

	"cstamp/internal/ast"
)

func TestClassifyNumber(t *testing.T) {
	cases := []struct {
		text string
		kind ast.Kind
	}{
		{"3", ast.KindIntegerLiteral},
		{"42u", ast.KindIntegerLiteral},
		{"100L", ast.KindIntegerLiteral},
		{"0x1F", ast.KindIntegerLiteral},
		{"0b1010", ast.KindIntegerLiteral},
		{"1.5", ast.KindFloatLiteral},
		{"1.5f", ast.KindFloatLiteral},
		{"2e10", ast.KindFloatLiteral},
		{"1e3f", ast.KindFloatLiteral},
		{".5", ast.KindFloatLiteral},
		{"0x1.8p3", ast.KindFloatLiteral},
	}
	for _, c := range cases {
		if got := classifyNumber(c.text); got != c.kind {
			t.Errorf("classifyNumber(%q) = %s, expected %s", c.text, got, c.kind)
		}
	}
}
