package paystub

import "fmt"

// Picker chooses one value among the numeric candidates of a row.
type Picker[T Scalar] func(values []T) Result[T]

type pickPhase int

const (
	collecting pickPhase = iota
	decided
	aborted
)

// pickState accumulates a run of parseable tokens and hands the run to a
// Picker once the lookahead shows it has ended. Each buffered token is
// parsed once.
type pickState[T Scalar] struct {
	parse  ValueParser[T]
	choose Picker[T]

	phase   pickPhase
	folded  int
	values  []T
	gap     bool
	verdict Result[T]
}

// Pick defers a decision until the run of parseable tokens ends. A Stop
// anywhere in the run aborts it; an unparseable token in the run makes the
// picker decide on what was collected so far.
//
// The returned parser carries state and belongs to a single walk; wrap
// leaves built on it with Stateful.
func Pick[T Scalar](p ValueParser[T], choose Picker[T]) ValueParser[T] {
	s := &pickState[T]{parse: p, choose: choose}
	return s.step
}

func (s *pickState[T]) reset() {
	s.phase = collecting
	s.folded = 0
	s.values = nil
	s.gap = false
	s.verdict = Result[T]{}
}

func (s *pickState[T]) fold(token string) {
	r := s.parse(Input{Token: token})
	switch r.Outcome {
	case Found:
		s.values = append(s.values, r.Value)
	case Stop:
		s.phase = aborted
	case Failed:
		s.phase = aborted
		s.verdict = r
	default:
		s.gap = true
	}
}

func (s *pickState[T]) step(in Input) Result[T] {
	if len(in.Buffered) < s.folded {
		s.reset()
	}

	if s.phase == collecting {
		for _, tok := range in.Buffered[s.folded:] {
			if s.fold(tok); s.phase == aborted {
				break
			}
		}
		if s.phase == collecting {
			s.fold(in.Token)
		}
		// The walker buffers the current token when we return Absent.
		s.folded = len(in.Buffered) + 1
	}

	switch s.phase {
	case aborted:
		if s.verdict.Outcome == Failed {
			return s.verdict
		}
		return Halt[T]()
	case decided:
		return s.verdict
	}

	if s.gap {
		return s.decide()
	}
	if s.runContinues(in) {
		return None[T]()
	}
	return s.decide()
}

func (s *pickState[T]) runContinues(in Input) bool {
	if !in.HasNext {
		return false
	}
	seen := make([]string, 0, len(in.Buffered)+1)
	seen = append(append(seen, in.Buffered...), in.Token)
	return s.parse(Input{Token: in.Next, Buffered: seen}).Outcome == Found
}

func (s *pickState[T]) decide() Result[T] {
	candidates := make([]T, len(s.values))
	copy(candidates, s.values)

	r := s.choose(candidates)
	switch r.Outcome {
	case Found:
		s.phase = decided
		s.verdict = r
	case Failed, Stop:
		s.phase = aborted
		s.verdict = r
	}
	return r
}

// hoursPerPayPeriod separates hour counts from money in locality pay rows:
// 24 hours a day over a 14-day period.
const hoursPerPayPeriod = 24 * 14

func keep(values []int64, pred func(int64) bool) []int64 {
	var out []int64
	for _, v := range values {
		if pred(v) {
			out = append(out, v)
		}
	}
	return out
}

func nonZero(v int64) bool { return v != 0 }

// PickBasePay returns the second positive value of the base pay row.
func PickBasePay(values []int64) Result[int64] {
	positive := keep(values, func(v int64) bool { return v > 0 })
	if len(positive) < 2 {
		return None[int64]()
	}
	return Some(positive[1])
}

// PickLocalityPay reads the row Rate, Adj Hours, Hours, Current, YTD and
// keeps the amounts too large to be an hour count.
func PickLocalityPay(values []int64) Result[int64] {
	money := keep(values, func(v int64) bool { return v > hoursPerPayPeriod*100 })
	switch len(money) {
	case 3:
		return Some(money[1])
	case 1, 2:
		return Some(money[0])
	default:
		return Fail[int64](fmt.Errorf("%w: locality pay %v", ErrUnexpectedCandidates, money))
	}
}

// PickDental returns the current amount when both current and YTD are printed.
func PickDental(values []int64) Result[int64] {
	amounts := keep(values, nonZero)
	if len(amounts) == 2 {
		return Some(amounts[0])
	}
	return Some[int64](0)
}

// PickVision handles the YTD only, Current+YTD and Adjusted+Current+YTD layouts.
func PickVision(values []int64) Result[int64] {
	amounts := keep(values, nonZero)
	switch len(amounts) {
	case 1:
		return Some[int64](0)
	case 2:
		return Some(amounts[0])
	case 3:
		return Some(amounts[1])
	default:
		return Fail[int64](fmt.Errorf("%w: vision %v", ErrUnexpectedCandidates, amounts))
	}
}
