package money

import (
	"testing"
)

func TestConstructors(t *testing.T) {
	m := NewMoney(12.345)
	if m.String() != "12.35" {
		t.Fatalf("NewMoney display mismatch: got %s", m.String())
	}

	if m2, err := NewMoneyFromString("10.125"); err != nil || m2.String() != "10.13" {
		t.Fatalf("NewMoneyFromString got %v, %v", m2, err)
	}

	if _, err := NewMoneyFromString("not-a-number"); err == nil {
		t.Fatalf("expected error for invalid string")
	}
}

func TestGroup(t *testing.T) {
	cases := []struct{ in, out string }{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1,000"},
		{"1234567.89", "1,234,567.89"},
		{"-12345", "-12,345"},
		{"100000", "100,000"},
	}
	for _, c := range cases {
		if got := Group(c.in); got != c.out {
			t.Fatalf("Group(%s) got %s want %s", c.in, got, c.out)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		m      Money
		symbol string
		places int32
		out    string
	}{
		{NewMoney(1234567.891), "R$", 0, "R$ 1,234,568"},
		{NewMoney(1234.5), "$", 2, "$ 1,234.50"},
		{NewMoney(-5000), "R$", 0, "-R$ 5,000"},
		{NewMoney(42), "", 2, "42.00"},
	}
	for _, c := range cases {
		if got := c.m.Format(c.symbol, c.places); got != c.out {
			t.Fatalf("Format got %q want %q", got, c.out)
		}
	}
	if got := NewMoney(3000).Whole(DefaultSymbol); got != "R$ 3,000" {
		t.Fatalf("Whole got %q", got)
	}
}
