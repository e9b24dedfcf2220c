package paystub

import (
	"regexp"
	"strings"

	"github.com/Aashish23092/paystub-extraction/dto"
)

// Field is a labeled value produced by a leaf.
type Field struct {
	Name  string
	Value dto.FieldValue
}

// LeafFunc is a function leaf of the matching tree. Found with zero
// fields resolves the leaf without capturing anything.
type LeafFunc func(in Input) Result[[]Field]

// Invert negates a parsed amount. Deductions print as positive numbers but
// are stored negative so that gross pay plus deductions gives net pay.
func Invert(p ValueParser[int64]) ValueParser[int64] {
	return func(in Input) Result[int64] {
		r := p(in)
		if r.Outcome != Found || r.Value == 0 {
			return r
		}
		return Some(-r.Value)
	}
}

// SkipRule decides whether a token should be withheld from the wrapped leaf.
type SkipRule interface {
	Skips(in Input) bool
}

type literalRule string

func (l literalRule) Skips(in Input) bool {
	return strings.TrimSpace(in.Token) == strings.TrimSpace(string(l))
}

type patternRule struct{ re *regexp.Regexp }

func (p patternRule) Skips(in Input) bool {
	return p.re.MatchString(in.Token)
}

type leadingRule int

func (n leadingRule) Skips(in Input) bool {
	return len(in.Buffered) < int(n)
}

// Literal skips tokens equal to s.
func Literal(s string) SkipRule { return literalRule(s) }

// Matching skips tokens matched by re.
func Matching(re *regexp.Regexp) SkipRule { return patternRule{re: re} }

// Leading skips until n tokens have been buffered, e.g. a column header
// between a row label and its first value.
func Leading(n int) SkipRule { return leadingRule(n) }

// Skip withholds tokens selected by rule from next.
func Skip(rule SkipRule, next LeafFunc) LeafFunc {
	return func(in Input) Result[[]Field] {
		if rule.Skips(in) {
			return None[[]Field]()
		}
		return next(in)
	}
}

// CaptureAs turns a value parser into a leaf that stores its value under label.
// Stop is reported as Absent so the walker keeps looking; failures propagate.
func CaptureAs[T Scalar](label string, p ValueParser[T]) LeafFunc {
	return func(in Input) Result[[]Field] {
		r := p(in)
		switch r.Outcome {
		case Found:
			return Some([]Field{{Name: label, Value: fieldValue(r.Value)}})
		case Failed:
			return carry[[]Field](r)
		default:
			return None[[]Field]()
		}
	}
}

// Ignore consumes one token and captures nothing.
func Ignore(Input) Result[[]Field] {
	return Some[[]Field](nil)
}

func fieldValue[T Scalar](v T) dto.FieldValue {
	switch x := any(v).(type) {
	case int64:
		return dto.AmountValue(x)
	case string:
		return dto.TextValue(x)
	}
	return dto.FieldValue{}
}
