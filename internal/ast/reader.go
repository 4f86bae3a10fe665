package ast

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// shape classifies how a Node's Payload is encoded in the Compact AST byte
// stream. The real binary schema is the external parser's contract (spec
// §6.1 says only the accessors are required); this table is this engine's
// own resolution of "what bytes follow the kind tag", documented as an
// Open Question resolution in DESIGN.md.
type shape uint8

const (
	shapeNone shape = iota
	shapeStr
	shapeNum
	shapeInt
	shapeChar
	shapeBool
)

var kindShapes = map[Kind]shape{
	KindIdentifier:            shapeStr,
	KindStringLiteral:         shapeStr,
	KindConstant:              shapeStr,
	KindType:                  shapeStr,
	KindDeclarator:            shapeStr,
	KindStructMember:          shapeStr,
	KindEnumMember:            shapeStr,
	KindTemplateTypeParameter: shapeStr,
	KindUnionType:             shapeStr,
	KindBinaryOp:              shapeStr,
	KindUnaryOp:               shapeStr,
	KindPostfixOp:             shapeStr,
	KindAssignment:            shapeStr,
	KindMemberAccess:          shapeStr,
	KindNamespaceAccess:       shapeStr,
	KindCppCast:               shapeStr,
	KindComment:               shapeStr,
	KindError:                 shapeStr,
	KindPreprocessorDirective: shapeStr,
	KindNumberLiteral:         shapeNum,
	KindArrayDeclarator:       shapeInt,
	KindVarDeclaration:        shapeInt, // const/static qualifier bitmask, see node.go
	KindCharLiteral:           shapeChar,
	KindWideCharLiteral:       shapeChar,
}

// Reader consumes a Compact AST byte buffer and produces a Node tree. A
// Reader is single-use: call Read once per buffer.
type Reader struct {
	buf *bytes.Reader
	pos int
}

// NewReader wraps a Compact AST byte buffer for decoding.
func NewReader(data []byte) *Reader {
	return &Reader{buf: bytes.NewReader(data)}
}

// Read decodes the entire buffer and returns the root Node (always
// KindProgram for a well-formed input). An error is returned only for a
// structurally truncated/corrupt stream; semantic problems (e.g. a
// preprocessor-directive node reaching the engine) are not read errors —
// they surface later as ERROR commands (spec §4.2).
func (r *Reader) Read() (*Node, error) {
	node, err := r.readNode()
	if err != nil {
		return nil, fmt.Errorf("ast: decode failed at offset %d: %w", r.pos, err)
	}
	return node, nil
}

func (r *Reader) readByte() (byte, error) {
	b, err := r.buf.ReadByte()
	if err == nil {
		r.pos++
	}
	return b, err
}

func (r *Reader) readUvarint() (uint64, error) {
	v, err := binary.ReadUvarint(r.buf)
	if err != nil {
		return 0, err
	}
	// binary.ReadUvarint doesn't expose bytes consumed directly; recompute
	// length by re-encoding (cheap, buffers are small AST trees).
	r.pos += uvarintLen(v)
	return v, nil
}

func (r *Reader) readVarint() (int64, error) {
	v, err := binary.ReadVarint(r.buf)
	if err != nil {
		return 0, err
	}
	r.pos += uvarintLen(zigzagEncode(v))
	return v, nil
}

func uvarintLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

func zigzagEncode(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

func (r *Reader) readBytes(n int) ([]byte, error) {
	out := make([]byte, n)
	read, err := r.buf.Read(out)
	if err != nil {
		return nil, err
	}
	if read != n {
		return nil, fmt.Errorf("short read: want %d got %d", n, read)
	}
	r.pos += n
	return out, nil
}

func (r *Reader) readNode() (*Node, error) {
	startOffset := r.pos
	kindByte, err := r.readByte()
	if err != nil {
		return nil, err
	}
	kind := Kind(kindByte)
	node := &Node{Kind: kind, Offset: startOffset}

	switch kindShapes[kind] {
	case shapeStr:
		n, err := r.readUvarint()
		if err != nil {
			return nil, err
		}
		b, err := r.readBytes(int(n))
		if err != nil {
			return nil, err
		}
		node.Payload.Str = string(b)
	case shapeNum:
		b, err := r.readBytes(8)
		if err != nil {
			return nil, err
		}
		bits := binary.LittleEndian.Uint64(b)
		node.Payload.Number = math.Float64frombits(bits)
	case shapeInt:
		v, err := r.readVarint()
		if err != nil {
			return nil, err
		}
		node.Payload.Int = v
	case shapeChar:
		v, err := r.readVarint()
		if err != nil {
			return nil, err
		}
		node.Payload.Char = rune(v)
		node.Payload.Int = v
	case shapeBool:
		b, err := r.readByte()
		if err != nil {
			return nil, err
		}
		node.Payload.Bool = b != 0
	}

	childCount, err := r.readUvarint()
	if err != nil {
		return nil, err
	}
	if childCount > 0 {
		node.Children = make([]*Node, 0, childCount)
		for i := uint64(0); i < childCount; i++ {
			child, err := r.readNode()
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		}
	}
	return node, nil
}
