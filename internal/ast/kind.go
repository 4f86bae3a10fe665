// Package ast exposes the Compact AST binary format (spec §6.1) as a tree
// of typed Node values. The parser, preprocessor, and the binary writer
// that produces this format are external collaborators (spec §1); this
// package only consumes the bytes.
package ast

// Kind identifies the shape of a Node, mirroring the node kinds enumerated
// in spec §4.2.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindProgram
	KindCompoundStatement
	KindExpressionStatement
	KindIf
	KindWhile
	KindDoWhile
	KindFor
	KindRangeBasedFor
	KindSwitch
	KindCase
	KindBreak
	KindContinue
	KindReturn
	KindEmpty
	KindVarDeclaration
	KindFunctionDefinition
	KindFunctionDeclaration
	KindParameter
	KindDeclarator
	KindArrayDeclarator
	KindPointerDeclarator
	KindType
	KindAssignment
	KindBinaryOp
	KindUnaryOp
	KindPostfixOp
	KindTernary
	KindFunctionCall
	KindConstructorCall
	KindMemberAccess
	KindNamespaceAccess
	KindArrayAccess
	KindArrayInitializer
	KindNumberLiteral
	KindStringLiteral
	KindCharLiteral
	KindWideCharLiteral
	KindIdentifier
	KindConstant
	KindComma
	KindStructDeclaration
	KindStructMember
	KindMultipleStructMembers
	KindUnionDeclaration
	KindUnionType
	KindTypedef
	KindEnumType
	KindEnumMember
	KindTemplateTypeParameter
	KindLambda
	KindNewExpression
	KindDesignatedInitializer
	KindRangeExpression
	KindCppCast
	KindFunctionStyleCast
	KindComment
	KindError
	KindPreprocessorDirective

	kindSentinel // must stay last; used to size the name table
)

var kindNames = [kindSentinel]string{
	KindInvalid:               "Invalid",
	KindProgram:               "Program",
	KindCompoundStatement:     "CompoundStatement",
	KindExpressionStatement:   "ExpressionStatement",
	KindIf:                    "If",
	KindWhile:                 "While",
	KindDoWhile:               "DoWhile",
	KindFor:                   "For",
	KindRangeBasedFor:         "RangeBasedFor",
	KindSwitch:                "Switch",
	KindCase:                  "Case",
	KindBreak:                 "Break",
	KindContinue:              "Continue",
	KindReturn:                "Return",
	KindEmpty:                 "Empty",
	KindVarDeclaration:        "VarDeclaration",
	KindFunctionDefinition:    "FunctionDefinition",
	KindFunctionDeclaration:   "FunctionDeclaration",
	KindParameter:             "Parameter",
	KindDeclarator:            "Declarator",
	KindArrayDeclarator:       "ArrayDeclarator",
	KindPointerDeclarator:     "PointerDeclarator",
	KindType:                  "Type",
	KindAssignment:            "Assignment",
	KindBinaryOp:              "BinaryOp",
	KindUnaryOp:               "UnaryOp",
	KindPostfixOp:             "PostfixOp",
	KindTernary:               "Ternary",
	KindFunctionCall:          "FunctionCall",
	KindConstructorCall:       "ConstructorCall",
	KindMemberAccess:          "MemberAccess",
	KindNamespaceAccess:       "NamespaceAccess",
	KindArrayAccess:           "ArrayAccess",
	KindArrayInitializer:      "ArrayInitializer",
	KindNumberLiteral:         "NumberLiteral",
	KindStringLiteral:         "StringLiteral",
	KindCharLiteral:           "CharLiteral",
	KindWideCharLiteral:       "WideCharLiteral",
	KindIdentifier:            "Identifier",
	KindConstant:              "Constant",
	KindComma:                 "Comma",
	KindStructDeclaration:     "StructDeclaration",
	KindStructMember:          "StructMember",
	KindMultipleStructMembers: "MultipleStructMembers",
	KindUnionDeclaration:      "UnionDeclaration",
	KindUnionType:             "UnionType",
	KindTypedef:               "Typedef",
	KindEnumType:              "EnumType",
	KindEnumMember:            "EnumMember",
	KindTemplateTypeParameter: "TemplateTypeParameter",
	KindLambda:                "Lambda",
	KindNewExpression:         "NewExpression",
	KindDesignatedInitializer: "DesignatedInitializer",
	KindRangeExpression:       "RangeExpression",
	KindCppCast:               "CppCast",
	KindFunctionStyleCast:     "FunctionStyleCast",
	KindComment:               "Comment",
	KindError:                 "Error",
	KindPreprocessorDirective: "PreprocessorDirective",
}

// String returns a human-readable name for the kind, used in error messages
// and debug tracing.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}
