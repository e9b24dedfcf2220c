package paystub

import "github.com/Aashish23092/paystub-extraction/dto"

type nodeKind int

const (
	objectNode nodeKind = iota
	labelLeaf
	funcLeaf
)

// Node is a matching tree node: an object mapping expected tokens to
// children, a label leaf that captures the next token verbatim, or a
// function leaf.
type Node struct {
	kind     nodeKind
	keys     []string
	children map[string]*Node
	label    string
	leaf     LeafFunc
	build    func() LeafFunc
}

// Branch pairs an expected token with the node it leads to.
type Branch struct {
	Key  string
	Node *Node
}

func On(key string, n *Node) Branch {
	return Branch{Key: key, Node: n}
}

// Object builds an object node. Keys keep their declaration order.
func Object(branches ...Branch) *Node {
	n := &Node{kind: objectNode, children: make(map[string]*Node, len(branches))}
	for _, b := range branches {
		if _, dup := n.children[b.Key]; !dup {
			n.keys = append(n.keys, b.Key)
		}
		n.children[b.Key] = b.Node
	}
	return n
}

// Label builds a leaf capturing the next token as text under field.
func Label(field string) *Node {
	return &Node{kind: labelLeaf, label: field}
}

// Func builds a function leaf. f must not keep state between calls; use
// Stateful for leaves that do.
func Func(f LeafFunc) *Node {
	return &Node{kind: funcLeaf, leaf: f}
}

// Stateful builds a function leaf whose LeafFunc is rebuilt every time a
// walk descends into it, so walks sharing one tree never share state.
func Stateful(build func() LeafFunc) *Node {
	return &Node{kind: funcLeaf, leaf: build(), build: build}
}

// Keys returns the keys an object node still expects.
func (n *Node) Keys() []string {
	return append([]string(nil), n.keys...)
}

func (n *Node) IsLeaf() bool {
	return n.kind != objectNode
}

// fork copies an object node so that consuming its keys leaves the
// template untouched. Stateful leaves get a fresh LeafFunc; other leaves
// are returned as is.
func (n *Node) fork() *Node {
	if n.kind == funcLeaf && n.build != nil {
		return &Node{kind: funcLeaf, leaf: n.build(), build: n.build}
	}
	if n.kind != objectNode {
		return n
	}
	c := &Node{
		kind:     objectNode,
		keys:     append([]string(nil), n.keys...),
		children: make(map[string]*Node, len(n.children)),
	}
	for k, v := range n.children {
		c.children[k] = v
	}
	return c
}

// take removes key from an object node and returns its child.
func (n *Node) take(key string) (*Node, bool) {
	child, ok := n.children[key]
	if !ok {
		return nil, false
	}
	delete(n.children, key)
	for i, k := range n.keys {
		if k == key {
			n.keys = append(n.keys[:i:i], n.keys[i+1:]...)
			break
		}
	}
	return child, true
}

func (n *Node) exhausted() bool {
	return n.kind == objectNode && len(n.children) == 0
}

func deduction(field string) *Node {
	return Func(Skip(Leading(1), CaptureAs(field, Invert(MonetaryAmount))))
}

func picked[T Scalar](field string, p ValueParser[T], choose Picker[T]) *Node {
	return Stateful(func() LeafFunc { return CaptureAs(field, Pick(p, choose)) })
}

// NewTree builds the matching tree for the government earnings and leave
// statement layout. Walks fork what they descend into, so one tree may be
// shared between concurrent parses.
func NewTree() *Node {
	return Object(
		On("Pay Date", Func(CaptureAs(dto.FieldPayDate, Date))),
		On("Gross Pay", Func(CaptureAs(dto.FieldGrossPay, MonetaryAmount))),
		On("Total Deductions", Func(CaptureAs(dto.FieldTotalDeductions, Invert(MonetaryAmount)))),
		On("Net Pay", Func(Skip(Literal("$"), CaptureAs(dto.FieldNetPay, MonetaryAmount)))),
		On("Base Pay", picked(dto.FieldBasePay, MonetaryAmount, PickBasePay)),
		On("Locality Pay", picked(dto.FieldLocalityPay, MonetaryAmount, PickLocalityPay)),
		On("Flexible Spending", Object(
			On("", Object(
				On("Account", deduction(dto.FieldFSA)),
			)),
		)),
		On("Dental", picked(dto.FieldDental, Invert(MonetaryAmount), PickDental)),
		On("Vision", picked(dto.FieldVision, Invert(MonetaryAmount), PickVision)),
		On("HSA", deduction(dto.FieldHSA)),
		On("Medicare", deduction(dto.FieldMedicare)),
		On("HBI", deduction(dto.FieldHBI)),
		On("Retire FERS", Object(
			On("Employee", deduction(dto.FieldFERS)),
		)),
		On("Federal Tax", deduction(dto.FieldFederalTax)),
		On("GLI Basic Employee", deduction(dto.FieldGLIBasicEmployee)),
		On("GLI Opt C", deduction(dto.FieldGLIOptC)),
		On("OASDI", deduction(dto.FieldOASDI)),
		On("TSP Employee", deduction(dto.FieldTSP)),
		On("State Tax", deduction(dto.FieldStateTax)),
		On("BENEFITS PAID BY GOVT.", Object(
			On("Medicare", Func(Ignore)),
		)),
	)
}
