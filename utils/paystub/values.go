package paystub

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
)

// plainDecimal is a signed base-10 number without exponent.
var plainDecimal = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// MonetaryAmount parses a currency token into cents.
func MonetaryAmount(in Input) Result[int64] {
	cents, ok := ParseCents(in.Token)
	if !ok {
		return None[int64]()
	}
	return Some(cents)
}

// ParseCents accepts one "$" and thousands separators around a signed
// decimal, so "-$8.10" and "$-8.10" both read as -810. The value is
// rounded half away from zero to the nearest cent.
func ParseCents(token string) (int64, bool) {
	s := strings.Replace(strings.TrimSpace(token), "$", "", 1)
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if !plainDecimal.MatchString(s) {
		return 0, false
	}

	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
	}
	s = strings.TrimSuffix(s, ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}

	d, err := decimal.NewFromString(sign + s)
	if err != nil {
		return 0, false
	}
	cents := d.Round(2).Shift(2)
	if !cents.BigInt().IsInt64() {
		return 0, false
	}
	return cents.IntPart(), true
}

// Date parses a calendar date token and formats it as YYYY-MM-DD.
func Date(in Input) Result[string] {
	d, ok := ParseDate(in.Token)
	if !ok {
		return None[string]()
	}
	return Some(d)
}

func ParseDate(token string) (string, bool) {
	s := strings.TrimSpace(token)
	if s == "" {
		return "", false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}
