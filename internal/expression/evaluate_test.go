package expression

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mapResolver(params map[string]string) Resolver {
	return ResolverFunc(func(id string) (string, bool) {
		v, ok := params[id]
		return v, ok
	})
}

func TestEvaluateString(t *testing.T) {
	params := map[string]string{
		"width": "8",
		"depth": "width * 2",
		"base":  "'h1000",
		"half":  "0.5",
	}

	tests := []struct {
		expr string
		want string
	}{
		{"42", "42"},
		{" 1 + 2 * 3 ", "7"},
		{"(1 + 2) * 3", "9"},
		{"2 ** 3 ** 2", "64"},
		{"-2 ** 2", "4"},
		{"2 ** 10 - 1", "1023"},
		{"7 / 2", "3"},
		{"-7 / 2", "-3"},
		{"7.0 / 2", "3.5"},
		{"10 / 4.0", "2.5"},
		{"7 % 3", "1"},
		{"-7 % 3", "-1"},
		{"1.5 * 2", "3"},
		{"1e3", "1000"},
		{"'hFF", "255"},
		{"8'hFF", "255"},
		{"4'hFF", "15"},
		{"4'sb1111", "-1"},
		{"4'sb0111", "7"},
		{"'sb1111", "15"},
		{"8'hFF?1:0", "1"},
		{"'h0 ? 2 : 3", "3"},
		{"16'h_dead", "57005"},
		{"0x1F", "31"},
		{"'b1010", "10"},
		{"'o17", "15"},
		{"'d42", "42"},
		{"1_000", "1000"},
		{"1 << 4", "16"},
		{"256 >> 4", "16"},
		{"~0", "-1"},
		{"5 & 3", "1"},
		{"5 | 3", "7"},
		{"5 ^ 3", "6"},
		{"3 > 2", "1"},
		{"3 <= 2", "0"},
		{"2 == 2.0", "1"},
		{"1 != 1", "0"},
		{"true && false", "0"},
		{"true || false", "1"},
		{"!0", "1"},
		{"1 ? 2 : 3", "2"},
		{"0 ? 2 : 1 ? 4 : 5", "4"},
		{"1 ? 2 : 1 / 0", "2"},
		{"0 && 1 / 0", "0"},
		{"$clog2(8)", "3"},
		{"$clog2(9)", "4"},
		{"$clog2(1)", "0"},
		{"$pow(2, 10)", "1024"},
		{"$sqrt(16)", "4"},
		{"2 ** -1", "0"},
		{"width", "8"},
		{"depth + 1", "17"},
		{"base + width", "4104"},
		{"half * 4", "2"},
		{"2 ** 64", "18446744073709551616"},
	}

	e := New(mapResolver(params))
	for _, test := range tests {
		t.Run(test.expr, func(t *testing.T) {
			got, err := e.EvaluateString(test.expr)
			if err != nil {
				t.Fatalf("EvaluateString(%q): %v", test.expr, err)
			}
			if got != test.want {
				t.Errorf("EvaluateString(%q) = %s, want %s", test.expr, got, test.want)
			}
		})
	}
}

func TestEvaluateLiteralForms(t *testing.T) {
	e := New(NoParameters)
	for _, n := range []int64{0, 1, 2, 7, 10, 255, 256, 4095, 65535, 1 << 32, 1<<62 + 12345} {
		forms := []string{
			fmt.Sprintf("%d", n),
			fmt.Sprintf("'h%X", n),
			fmt.Sprintf("'h%x", n),
			fmt.Sprintf("0x%x", n),
			fmt.Sprintf("'b%b", n),
			fmt.Sprintf("'o%o", n),
			fmt.Sprintf("64'd%d", n),
		}
		for _, form := range forms {
			got, err := e.EvaluateInt(form)
			if err != nil {
				t.Errorf("EvaluateInt(%q): %v", form, err)
				continue
			}
			if got != n {
				t.Errorf("EvaluateInt(%q) = %d, want %d", form, got, n)
			}
		}
		neg := fmt.Sprintf("-%d", n)
		if got, err := e.EvaluateInt(neg); err != nil || got != -n {
			t.Errorf("EvaluateInt(%q) = %d, %v, want %d", neg, got, err, -n)
		}
	}
}

func TestEvaluateErrors(t *testing.T) {
	params := map[string]string{
		"a":     "b + 1",
		"b":     "a",
		"self":  "self",
		"empty": "",
		"bad":   "1 +",
		"ok":    "4",
	}

	tests := []struct {
		expr string
		want ErrorKind
	}{
		{"foo + 1", ErrUnknownIdentifier},
		{"ok + missing", ErrUnknownIdentifier},
		{"1 ? 2 : missing", ErrUnknownIdentifier},
		{"1 / 0", ErrDivisionByZero},
		{"1.5 / 0", ErrDivisionByZero},
		{"1 % 0", ErrDivisionByZero},
		{"0 ** -1", ErrDivisionByZero},
		{"(1 + 2", ErrUnbalancedParentheses},
		{"1 + 2)", ErrUnbalancedParentheses},
		{"((1)", ErrUnbalancedParentheses},
		{"$clog2(4", ErrUnbalancedParentheses},
		{"12abc", ErrMalformedLiteral},
		{"'h", ErrMalformedLiteral},
		{"'q12", ErrMalformedLiteral},
		{"2'b102", ErrMalformedLiteral},
		{"0xZZ", ErrMalformedLiteral},
		{"0'h1", ErrMalformedLiteral},
		{"4'h?", ErrMalformedLiteral},
		{"", ErrSyntax},
		{"1 +", ErrSyntax},
		{"1 2", ErrSyntax},
		{"()", ErrSyntax},
		{"1 ? 2", ErrSyntax},
		{"$foo(1)", ErrSyntax},
		{"$clog2(1, 2)", ErrSyntax},
		{"1 @ 2", ErrSyntax},
		{"2 ** 2000", ErrOverflow},
		{"1 << 2000", ErrOverflow},
		{"$sqrt(-4)", ErrDomain},
		{"$clog2(-1)", ErrDomain},
		{"1.5 % 2", ErrDomain},
		{"1.5 & 1", ErrDomain},
		{"1 << -1", ErrDomain},
		{"(-8) ** 0.5", ErrDomain},
		{"a", ErrCircularReference},
		{"self + 1", ErrCircularReference},
		{"empty", ErrSyntax},
		{"bad * 2", ErrSyntax},
	}

	e := New(mapResolver(params))
	for _, test := range tests {
		t.Run(test.expr, func(t *testing.T) {
			_, err := e.Evaluate(test.expr)
			if err == nil {
				t.Fatalf("Evaluate(%q) succeeded, want %v", test.expr, test.want)
			}
			if !errors.Is(err, test.want) {
				t.Errorf("Evaluate(%q) = %v, want kind %v", test.expr, err, test.want)
			}
			if got := KindOf(err); got != test.want {
				t.Errorf("KindOf(%v) = %v, want %v", err, got, test.want)
			}
		})
	}
}

func TestUnknownIdentifierNamesIdentifier(t *testing.T) {
	_, err := New(NoParameters).Evaluate("foo+1")
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("Evaluate(\"foo+1\") = %v, want *Error", err)
	}
	want := &Error{Kind: ErrUnknownIdentifier, Expr: "foo+1", Pos: 0, Detail: "foo"}
	if diff := cmp.Diff(want, e); diff != "" {
		t.Errorf("Evaluate(\"foo+1\"): (-want, +got)\n%s", diff)
	}
	if got, want := e.Error(), `unknown identifier "foo" at offset 0 in "foo+1"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestEvaluateInt(t *testing.T) {
	e := New(NoParameters)
	if _, err := e.EvaluateInt("7.5"); !errors.Is(err, ErrDomain) {
		t.Errorf("EvaluateInt(\"7.5\") = %v, want %v", err, ErrDomain)
	}
	if _, err := e.EvaluateInt("2 ** 70"); !errors.Is(err, ErrOverflow) {
		t.Errorf("EvaluateInt(\"2 ** 70\") = %v, want %v", err, ErrOverflow)
	}
	if got, err := e.EvaluateInt("3.0 * 2"); err != nil || got != 6 {
		t.Errorf("EvaluateInt(\"3.0 * 2\") = %d, %v, want 6", got, err)
	}
}

func TestEvaluateUint(t *testing.T) {
	tests := []struct {
		expr string
		want uint64
		err  ErrorKind
	}{
		{"'hFFFFFFFF00000000", 0xFFFFFFFF00000000, 0},
		{"'hFFFFFFFFFFFFFFFF", 1<<64 - 1, 0},
		{"2 ** 63 + 1", 1<<63 + 1, 0},
		{"0", 0, 0},
		{"2 ** 64", 0, ErrOverflow},
		{"-1", 0, ErrDomain},
		{"0.5", 0, ErrDomain},
		{"missing", 0, ErrUnknownIdentifier},
	}
	e := New(NoParameters)
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := e.EvaluateUint(tt.expr)
			if got != tt.want || KindOf(err) != tt.err {
				t.Errorf("EvaluateUint(%q) = %#x, %v, want %#x, %v", tt.expr, got, err, tt.want, tt.err)
			}
		})
	}
}

func TestResolutionErrorNamesIdentifier(t *testing.T) {
	e := New(mapResolver(map[string]string{"x": "", "y": "x * 2"}))
	tests := []struct {
		expr string
		want string
	}{
		{"x+1", `resolving "x" in "x+1": syntax error in ""`},
		{"y", `resolving "y" in "y": resolving "x" in "x * 2": syntax error in ""`},
	}
	for _, tt := range tests {
		_, err := e.Evaluate(tt.expr)
		if err == nil {
			t.Fatalf("Evaluate(%q) succeeded", tt.expr)
		}
		if got := err.Error(); got != tt.want {
			t.Errorf("Evaluate(%q) error = %q, want %q", tt.expr, got, tt.want)
		}
		if !errors.Is(err, ErrSyntax) {
			t.Errorf("Evaluate(%q) error %v is not %v", tt.expr, err, ErrSyntax)
		}
	}
}

func TestValid(t *testing.T) {
	e := New(mapResolver(map[string]string{"x": "1"}))
	tests := map[string]bool{
		"x + 1":     true,
		"y + 1":     false,
		"x / 0":     false,
		"(x":        false,
		"x ? 1 : 0": true,
	}
	for expr, want := range tests {
		if got := e.Valid(expr); got != want {
			t.Errorf("Valid(%q) = %v, want %v", expr, got, want)
		}
	}
}

func TestCheckIgnoresResolution(t *testing.T) {
	if err := Check("unknown * 2 + other"); err != nil {
		t.Errorf("Check: %v", err)
	}
	if err := Check("unknown * (2"); !errors.Is(err, ErrUnbalancedParentheses) {
		t.Errorf("Check = %v, want %v", err, ErrUnbalancedParentheses)
	}
}

func TestIdentifiers(t *testing.T) {
	got, err := Identifiers("a + b * a + $clog2(c) + (d ? 1 : b)")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c", "d"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Identifiers: (-want, +got)\n%s", diff)
	}
}

func TestNewPanicsOnNilResolver(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(nil) did not panic")
		}
	}()
	New(nil)
}
