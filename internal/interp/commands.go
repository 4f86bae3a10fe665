package interp

import (
	"github.com/ardsim/engine/internal/ast"
	"github.com/ardsim/engine/internal/command"
	"github.com/ardsim/engine/internal/runtime"
	"github.com/ardsim/engine/internal/value"
)

// emitVarSet appends a VAR_SET command for every variable write (spec
// §4.8): declaration with initializer, assignment, compound assignment,
// postfix ++/--, array-element store.
func (i *Interpreter) emitVarSet(name string, v *runtime.Variable, isExtern bool) {
	rec := command.New(command.TypeVarSet).Set("variable", name)

	val := v.Read()
	switch {
	case v.Type == "String":
		rec.Set("value", command.NewRecord().Set("value", val.ToStringValue()).Set("type", "ArduinoString"))
	case v.IsConst && val.Kind() == value.KindString:
		rec.Set("value", command.NewRecord().Set("value", val.AsString()))
	default:
		rec.Set("value", val)
	}
	if v.IsConst {
		rec.Set("isConst", true)
	}
	if isExtern {
		rec.Set("isExtern", true)
	}
	i.emitNow(rec)
}

func commandLambda(n *ast.Node) *command.Record {
	return command.New(command.TypeLambdaFunc).Set("paramCount", n.ParamListNode().NumChildren())
}

func commandRangeExpression(lo, hi int32) *command.Record {
	return command.New(command.TypeRangeExpr).Set("from", lo).Set("to", hi)
}

func commandEnumMember(name string, val int32) *command.Record {
	return command.New(command.TypeEnumMember).Set("name", name).Set("value", val)
}

func commandEnumTypeRef(name string) *command.Record {
	return command.New(command.TypeEnumTypeRef).Set("name", name)
}

func commandStructMember(structName, memberName, memberType string) *command.Record {
	return command.New(command.TypeStructMember).
		Set("struct", structName).Set("member", memberName).Set("memberType", memberType)
}

func commandMultiStructMembers(structName string, members []string) *command.Record {
	names := make([]string, len(members))
	copy(names, members)
	return command.New(command.TypeMultiStructMem).Set("struct", structName).Set("members", names)
}

func commandUnionDef(name string) *command.Record {
	return command.New(command.TypeUnionDef).Set("name", name)
}

func commandUnionTypeRef(name string) *command.Record {
	return command.New(command.TypeUnionTypeRef).Set("name", name)
}

func commandTemplateParam(name string) *command.Record {
	return command.New(command.TypeTemplateParam).Set("name", name)
}

func commandConstructorRegistered(typeName string, arity int) *command.Record {
	return command.New(command.TypeConstructorReg).Set("type", typeName).Set("arity", arity)
}

func commandMemberFuncRegistered(typeName, funcName string) *command.Record {
	return command.New(command.TypeMemberFuncReg).Set("type", typeName).Set("function", funcName)
}

func commandObjectInstance(typeName string) *command.Record {
	return command.New(command.TypeObjectInstance).Set("type", typeName)
}
