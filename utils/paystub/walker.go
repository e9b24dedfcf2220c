package paystub

import (
	"strings"

	"github.com/Aashish23092/paystub-extraction/dto"
)

// Options configure a single parse.
type Options struct {
	// Document is the display name used to tag errors and hook events.
	Document string
	Hooks    Hooks
	// Tree builds the matching tree for this walk. Defaults to NewTree.
	Tree func() *Node
}

type frame struct {
	node *Node
	path string
}

type walker struct {
	doc    string
	hooks  Hooks
	focus  frame
	stack  []frame
	buffer []string
	record *dto.PaystubRecord
	done   bool
}

// Parse walks tokens through the matching tree and reconciles the result.
func Parse(tokens []string, opts Options) (*dto.PaystubRecord, error) {
	build := opts.Tree
	if build == nil {
		build = NewTree
	}
	w := &walker{
		doc:    opts.Document,
		hooks:  opts.Hooks,
		focus:  frame{node: build().fork()},
		record: &dto.PaystubRecord{},
	}

	for i, raw := range tokens {
		if w.done {
			break
		}
		in := Input{Token: strings.TrimSpace(raw), Buffered: w.buffer}
		if i+1 < len(tokens) {
			in.Next, in.HasNext = strings.TrimSpace(tokens[i+1]), true
		}
		w.hooks.token(TokenEvent{Document: w.doc, Index: i, Token: in.Token})
		if err := w.step(in); err != nil {
			return nil, err
		}
	}
	w.finish()

	if err := Reconcile(w.doc, w.record, w.hooks); err != nil {
		return nil, err
	}
	return w.record, nil
}

func (w *walker) step(in Input) error {
	n := w.focus.node
	switch n.kind {
	case labelLeaf:
		return w.capture([]Field{{Name: n.label, Value: dto.TextValue(in.Token)}})

	case funcLeaf:
		r := n.leaf(in)
		switch r.Outcome {
		case Found:
			return w.capture(r.Value)
		case Failed:
			return &StructuralError{Document: w.doc, Path: w.focus.path, Err: r.Err}
		}
		// Stop reaching this level behaves like Absent.
		w.buffer = append(w.buffer, in.Token)

	default:
		child, ok := n.take(in.Token)
		if !ok {
			w.buffer = append(w.buffer, in.Token)
			return nil
		}
		w.push(in.Token, child)
	}
	return nil
}

func (w *walker) push(key string, child *Node) {
	w.stack = append(w.stack, w.focus)
	path := key
	if w.focus.path != "" {
		path = w.focus.path + " / " + key
	}
	w.focus = frame{node: child.fork(), path: path}
	w.buffer = nil
	w.hooks.tree(TreeEvent{Document: w.doc, Kind: TreePush, Path: path})
}

func (w *walker) pop() {
	for len(w.stack) > 0 {
		top := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		if top.node.exhausted() {
			continue
		}
		w.focus = top
		w.buffer = nil
		w.hooks.tree(TreeEvent{Document: w.doc, Kind: TreePop, Path: top.path})
		return
	}
	w.done = true
	w.hooks.tree(TreeEvent{Document: w.doc, Kind: TreeDone})
}

func (w *walker) capture(fields []Field) error {
	for _, f := range fields {
		if err := w.record.Set(f.Name, f.Value); err != nil {
			return &StructuralError{Document: w.doc, Path: w.focus.path, Err: err}
		}
		w.hooks.capture(CaptureEvent{Document: w.doc, Path: w.focus.path, Field: f})
	}
	w.pop()
	return nil
}

// finish reports a leaf that never resolved. Its field is left unset.
func (w *walker) finish() {
	if w.done || !w.focus.node.IsLeaf() {
		return
	}
	w.record.Unresolved = append(w.record.Unresolved, w.focus.path)
	w.hooks.unresolved(UnresolvedEvent{
		Document: w.doc,
		Path:     w.focus.path,
		Buffered: len(w.buffer),
	})
}
