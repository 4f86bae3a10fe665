package ast

import (
	"encoding/binary"
	"math"
)

// Writer encodes a Node tree back into the Compact AST byte format that
// Reader consumes. Production Compact AST bytes come from the external
// parser (spec §1); Writer exists so this engine's own test suite can
// construct fixtures without a parser dependency.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write appends node (and its subtree) to the buffer and returns the
// accumulated bytes so far.
func (w *Writer) Write(n *Node) []byte {
	w.writeNode(n)
	return w.buf
}

// Bytes returns the encoded buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) writeNode(n *Node) {
	w.buf = append(w.buf, byte(n.Kind))

	switch kindShapes[n.Kind] {
	case shapeStr:
		w.writeUvarint(uint64(len(n.Payload.Str)))
		w.buf = append(w.buf, n.Payload.Str...)
	case shapeNum:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(n.Payload.Number))
		w.buf = append(w.buf, b[:]...)
	case shapeInt:
		w.writeVarint(n.Payload.Int)
	case shapeChar:
		v := n.Payload.Int
		if v == 0 && n.Payload.Char != 0 {
			v = int64(n.Payload.Char)
		}
		w.writeVarint(v)
	case shapeBool:
		if n.Payload.Bool {
			w.buf = append(w.buf, 1)
		} else {
			w.buf = append(w.buf, 0)
		}
	}

	w.writeUvarint(uint64(len(n.Children)))
	for _, child := range n.Children {
		w.writeNode(child)
	}
}

func (w *Writer) writeUvarint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	w.buf = append(w.buf, tmp[:n]...)
}

func (w *Writer) writeVarint(v int64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutVarint(tmp[:], v)
	w.buf = append(w.buf, tmp[:n]...)
}

// --- Node builder helpers used by tests and by Writer callers ---

// NewNode builds a node with children, for fixture construction.
func NewNode(kind Kind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// NewIdent builds a KindIdentifier node.
func NewIdent(name string) *Node {
	return &Node{Kind: KindIdentifier, Payload: Payload{Str: name}}
}

// NewString builds a KindStringLiteral node.
func NewString(s string) *Node {
	return &Node{Kind: KindStringLiteral, Payload: Payload{Str: s}}
}

// NewNumber builds a KindNumberLiteral node.
func NewNumber(v float64) *Node {
	return &Node{Kind: KindNumberLiteral, Payload: Payload{Number: v}}
}

// NewConstant builds a KindConstant node (e.g. HIGH, LOW, true, false).
func NewConstant(name string) *Node {
	return &Node{Kind: KindConstant, Payload: Payload{Str: name}}
}

// NewOp builds an operator-bearing node (BinaryOp/UnaryOp/PostfixOp/Assignment)
// with the given operator token and children.
func NewOp(kind Kind, op string, children ...*Node) *Node {
	return &Node{Kind: kind, Payload: Payload{Str: op}, Children: children}
}

// NewVarDeclaration builds a KindVarDeclaration node carrying its
// const/static qualifier bits alongside the declared-type and declarator
// children.
func NewVarDeclaration(isConst, isStatic bool, children ...*Node) *Node {
	var flags int64
	if isConst {
		flags |= declQualifierConst
	}
	if isStatic {
		flags |= declQualifierStatic
	}
	return &Node{Kind: KindVarDeclaration, Payload: Payload{Int: flags}, Children: children}
}
