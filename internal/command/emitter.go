package command

// Type is the uppercase command tag (spec §3.4, exhaustive list in §6.2).
type Type string

const (
	TypeVersionInfo    Type = "VERSION_INFO"
	TypeProgramStart   Type = "PROGRAM_START"
	TypeProgramEnd     Type = "PROGRAM_END"
	TypeSetupStart     Type = "SETUP_START"
	TypeSetupEnd       Type = "SETUP_END"
	TypeLoopStart      Type = "LOOP_START"
	TypeLoopEnd        Type = "LOOP_END"
	TypeLoopLimit      Type = "LOOP_LIMIT_REACHED"
	TypeError          Type = "ERROR"
	TypeIfStatement    Type = "IF_STATEMENT"
	TypeSwitch         Type = "SWITCH_STATEMENT"
	TypeSwitchCase     Type = "SWITCH_CASE"
	TypeBreak          Type = "BREAK_STATEMENT"
	TypeContinue       Type = "CONTINUE_STATEMENT"
	TypeWhileLoop      Type = "WHILE_LOOP"
	TypeDoWhileLoop    Type = "DO_WHILE_LOOP"
	TypeForLoop        Type = "FOR_LOOP"
	TypeVarSet         Type = "VAR_SET"
	TypeFunctionCall   Type = "FUNCTION_CALL"
	TypePinMode        Type = "PIN_MODE"
	TypeDigitalWrite   Type = "DIGITAL_WRITE"
	TypeAnalogWrite    Type = "ANALOG_WRITE"
	TypeDelay          Type = "DELAY"
	TypeDelayMicros    Type = "DELAY_MICROSECONDS"
	TypeAnalogRead     Type = "ANALOG_READ_REQUEST"
	TypeDigitalRead    Type = "DIGITAL_READ_REQUEST"
	TypeExternal       Type = "EXTERNAL_REQUEST"
	TypePulseIn        Type = "PULSE_IN_REQUEST"
	TypeShiftIn        Type = "EXTERNAL_REQUEST"
	TypeConstructorReg Type = "CONSTRUCTOR_REGISTERED"
	TypeEnumMember     Type = "ENUM_MEMBER"
	TypeEnumTypeRef    Type = "ENUM_TYPE_REF"
	TypeStructMember   Type = "STRUCT_MEMBER"
	TypeMultiStructMem Type = "MULTIPLE_STRUCT_MEMBERS"
	TypeUnionDef       Type = "UNION_DEFINITION"
	TypeUnionTypeRef   Type = "UNION_TYPE_REF"
	TypeTemplateParam  Type = "TEMPLATE_TYPE_PARAM"
	TypeMemberFuncReg  Type = "MEMBER_FUNCTION_REGISTERED"
	TypeLambdaFunc     Type = "LAMBDA_FUNCTION"
	TypeObjectInstance Type = "OBJECT_INSTANCE"
	TypeRangeExpr      Type = "RANGE_EXPRESSION"
	TypePreprocessErr  Type = "PREPROCESSOR_ERROR"
)

// Stats counts commands emitted per type and errors per taxonomy entry,
// exposed to embedders via pkg/engine (SPEC_FULL §3.4 supplement).
type Stats struct {
	ByType  map[Type]int
	ByError map[string]int
}

func newStats() *Stats {
	return &Stats{ByType: make(map[Type]int), ByError: make(map[string]int)}
}

// Stream is the ordered, append-only command sequence (spec §3.4: "strictly
// ordered by emission... never mutated after append").
type Stream struct {
	records []*Record
	stats   *Stats
}

// NewStream returns an empty command stream.
func NewStream() *Stream {
	return &Stream{stats: newStats()}
}

// New starts a record with the required type and fixed timestamp fields
// (spec §3.4), ready for per-type payload fields to be Set.
func New(t Type) *Record {
	return NewRecord().Set("type", string(t)).Set("timestamp", 0)
}

// Emit appends rec to the stream, maintaining the Stats counters. The type
// field must already be set via New.
func (s *Stream) Emit(rec *Record) {
	s.records = append(s.records, rec)
	var t Type
	for i, k := range rec.keys {
		if k == "type" {
			if str, ok := rec.values[i].(string); ok {
				t = Type(str)
			}
			break
		}
	}
	s.stats.ByType[t]++
	if t == TypeError {
		for i, k := range rec.keys {
			if k == "errorType" {
				if str, ok := rec.values[i].(string); ok {
					s.stats.ByError[str]++
				}
				break
			}
		}
	}
}

// Records returns the accumulated records (callers must not mutate them).
func (s *Stream) Records() []*Record {
	return s.records
}

// Stats returns the running statistics counters.
func (s *Stream) Stats() *Stats {
	return s.stats
}

// Len returns the number of commands emitted so far.
func (s *Stream) Len() int {
	return len(s.records)
}

// JSONLines renders the stream as newline-terminated JSON objects, one per
// line (spec §6.2).
func (s *Stream) JSONLines() string {
	var out []byte
	for _, rec := range s.records {
		out = append(out, rec.JSON()...)
		out = append(out, '\n')
	}
	return string(out)
}
