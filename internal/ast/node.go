package ast

// Payload carries the kind-specific scalar data attached to a Node: a
// literal's textual form, an identifier's name, a constant's name, an
// operator token, a declared type string, and so on (spec §4.2, §6.1).
// Only one field is meaningful per node Kind; the reader (§6.1) populates
// exactly that field.
type Payload struct {
	Str    string
	Number float64
	Int    int64
	Char   rune
	Bool   bool
}

// Node is one entry in the Compact AST tree: a kind tag, an ordered list of
// children, and a kind-specific Payload. Node is a plain struct rather than
// an interface hierarchy — the engine dispatches on Kind with an exhaustive
// switch (design note §9 "visitor polymorphism"), which keeps the consumer
// free of virtual-table indirection and trivial to decode from the binary
// stream.
type Node struct {
	Kind     Kind
	Payload  Payload
	Children []*Node
	Offset   int // byte offset in the source Compact AST stream, for error context
}

// Child returns the i'th child, or nil if out of range. Callers use this
// instead of indexing Children directly so that malformed/truncated trees
// degrade to a nil node rather than a panic.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// NumChildren returns the number of children, tolerating a nil receiver.
func (n *Node) NumChildren() int {
	if n == nil {
		return 0
	}
	return len(n.Children)
}

// Text returns the Payload's string field for identifier, string-literal,
// type, and constant nodes.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return n.Payload.Str
}

// NumberValue returns the Payload's numeric field for number-literal nodes.
func (n *Node) NumberValue() float64 {
	if n == nil {
		return 0
	}
	return n.Payload.Number
}

// IntValue returns the Payload's integer field (used by char-literal code
// points and array-declarator fixed sizes).
func (n *Node) IntValue() int64 {
	if n == nil {
		return 0
	}
	return n.Payload.Int
}

// CharValue returns the Payload's rune field for char/wide-char literals.
func (n *Node) CharValue() rune {
	if n == nil {
		return 0
	}
	return n.Payload.Char
}

// IsNil reports whether the node pointer is nil, which is not an error by
// itself: an "empty" statement slot (e.g. a missing for-loop clause) is
// represented as a nil child.
func (n *Node) IsNil() bool {
	return n == nil
}

// --- Function-definition / declaration accessors (spec §6.1) ---

// ReturnTypeNode returns child 0: the declared return type node.
func (n *Node) ReturnTypeNode() *Node { return n.Child(0) }

// DeclaratorNode returns child 1: the function/variable name declarator.
func (n *Node) DeclaratorNode() *Node { return n.Child(1) }

// ParamListNode returns child 2: the ordered parameter list (its Children
// are KindParameter nodes).
func (n *Node) ParamListNode() *Node { return n.Child(2) }

// BodyNode returns child 3: the function body compound statement. Absent
// (nil) for a bare function-declaration (prototype) node.
func (n *Node) BodyNode() *Node { return n.Child(3) }

// Name returns the declarator's textual name, used pervasively to identify
// functions, parameters, and variables.
func (n *Node) Name() string {
	return n.Text()
}

// ParamTypeNode returns a KindParameter node's declared type (child 0).
func (n *Node) ParamTypeNode() *Node { return n.Child(0) }

// ParamDeclaratorNode returns a KindParameter node's name declarator
// (child 1); the declarator's own child 0 is its optional default-value
// expression.
func (n *Node) ParamDeclaratorNode() *Node { return n.Child(1) }

// ParamName returns the parameter's name.
func (n *Node) ParamName() string { return n.ParamDeclaratorNode().Name() }

// DefaultValueNode returns a KindParameter node's optional default-value
// expression, or nil if the parameter has no default.
func (n *Node) DefaultValueNode() *Node { return n.ParamDeclaratorNode().Child(0) }

// --- Variable-declaration accessors ---

// VarTypeNode returns a KindVarDeclaration node's declared type (child 0).
func (n *Node) VarTypeNode() *Node { return n.Child(0) }

// Declaration qualifier bits packed into a KindVarDeclaration node's Int
// payload. const/static apply to the whole declarator list rather than to
// an individual declarator, so they live on the VarDeclaration node itself
// rather than on a child.
const (
	declQualifierConst  int64 = 1 << 0
	declQualifierStatic int64 = 1 << 1
)

// IsConstDeclaration reports whether this KindVarDeclaration was qualified
// with const (spec §4.3).
func (n *Node) IsConstDeclaration() bool { return n.IntValue()&declQualifierConst != 0 }

// IsStaticDeclaration reports whether this KindVarDeclaration was qualified
// with static.
func (n *Node) IsStaticDeclaration() bool { return n.IntValue()&declQualifierStatic != 0 }

// Declarators returns the one-or-more KindDeclarator/KindArrayDeclarator
// children naming the variables declared by this statement.
func (n *Node) Declarators() []*Node {
	if n == nil || len(n.Children) < 2 {
		return nil
	}
	return n.Children[1:]
}

// InitializerNode returns a KindDeclarator node's optional initializer
// expression (child 0), or nil.
func (n *Node) InitializerNode() *Node { return n.Child(0) }

// ArrayInnerDeclaratorNode returns a KindArrayDeclarator node's wrapped
// KindDeclarator child (child 0), carrying the variable's name.
func (n *Node) ArrayInnerDeclaratorNode() *Node { return n.Child(0) }

// ArrayInitializerNode returns a KindArrayDeclarator node's optional
// initializer expression (child 1).
func (n *Node) ArrayInitializerNode() *Node { return n.Child(1) }

// --- Call / operator accessors ---

// CalleeNode returns a KindFunctionCall/KindConstructorCall node's callee
// expression (child 0): an identifier, or a member-access for a qualified
// name like Serial.println.
func (n *Node) CalleeNode() *Node { return n.Child(0) }

// CallArgs returns a call node's argument expressions (children after the
// callee).
func (n *Node) CallArgs() []*Node {
	if n == nil || len(n.Children) < 2 {
		return nil
	}
	return n.Children[1:]
}

// Operator returns the payload operator token for assignment/binary/
// unary/postfix-op nodes.
func (n *Node) Operator() string { return n.Text() }

// Left / Right return the two operand children of a binary/assignment
// node.
func (n *Node) Left() *Node  { return n.Child(0) }
func (n *Node) Right() *Node { return n.Child(1) }

// Operand returns the single operand of a unary/postfix-op node.
func (n *Node) Operand() *Node { return n.Child(0) }
