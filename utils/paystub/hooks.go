package paystub

type TokenEvent struct {
	Document string
	Index    int
	Token    string
}

type TreeEventKind int

const (
	TreePush TreeEventKind = iota
	TreePop
	TreeDone
)

func (k TreeEventKind) String() string {
	switch k {
	case TreePush:
		return "push"
	case TreePop:
		return "pop"
	default:
		return "done"
	}
}

type TreeEvent struct {
	Document string
	Kind     TreeEventKind
	Path     string
}

type CaptureEvent struct {
	Document string
	Path     string
	Field    Field
}

// Discrepancy reports a statement whose stated net pay differs from gross
// pay plus deductions. Amounts are in cents.
type Discrepancy struct {
	Document   string
	Stated     int64
	Calculated int64
}

func (d Discrepancy) Difference() int64 {
	return d.Calculated - d.Stated
}

// UnresolvedEvent reports a leaf that still held focus when input ran out.
type UnresolvedEvent struct {
	Document string
	Path     string
	Buffered int
}

// Hooks are optional callbacks invoked synchronously during a parse.
type Hooks struct {
	Token       func(TokenEvent)
	Tree        func(TreeEvent)
	Capture     func(CaptureEvent)
	Discrepancy func(Discrepancy)
	Unresolved  func(UnresolvedEvent)
}

func (h Hooks) token(e TokenEvent) {
	if h.Token != nil {
		h.Token(e)
	}
}

func (h Hooks) tree(e TreeEvent) {
	if h.Tree != nil {
		h.Tree(e)
	}
}

func (h Hooks) capture(e CaptureEvent) {
	if h.Capture != nil {
		h.Capture(e)
	}
}

func (h Hooks) discrepancy(d Discrepancy) {
	if h.Discrepancy != nil {
		h.Discrepancy(d)
	}
}

func (h Hooks) unresolved(e UnresolvedEvent) {
	if h.Unresolved != nil {
		h.Unresolved(e)
	}
}
