package paystub

// Outcome is the state of a parse attempt on a single token.
type Outcome int

const (
	// Absent means no value yet; the walker keeps buffering tokens.
	Absent Outcome = iota
	// Found carries a value.
	Found
	// Stop means the token is value-shaped but must not be captured here.
	Stop
	// Failed carries a structural error that rejects the document.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Stop:
		return "stop"
	case Failed:
		return "failed"
	default:
		return "absent"
	}
}

type Result[T any] struct {
	Outcome Outcome
	Value   T
	Err     error
}

func Some[T any](v T) Result[T] {
	return Result[T]{Outcome: Found, Value: v}
}

func None[T any]() Result[T] {
	return Result[T]{}
}

func Halt[T any]() Result[T] {
	return Result[T]{Outcome: Stop}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{Outcome: Failed, Err: err}
}

// carry moves a non-Found outcome into another result type.
func carry[U, T any](r Result[T]) Result[U] {
	return Result[U]{Outcome: r.Outcome, Err: r.Err}
}

// Input is what a leaf sees for each token: the token itself, the tokens
// buffered since the leaf took focus, and one token of lookahead.
type Input struct {
	Token    string
	Buffered []string
	Next     string
	HasNext  bool
}

// Scalar is the set of value types a field can hold.
type Scalar interface {
	int64 | string
}

// ValueParser interprets a token as a typed value.
type ValueParser[T Scalar] func(in Input) Result[T]
