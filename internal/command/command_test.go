package command

import (
	"strings"
	"testing"

	"github.com/ardsim/engine/internal/value"
)

func TestRecordPreservesSetOrder(t *testing.T) {
	r := New(TypePinMode).Set("pin", 13).Set("mode", 1)
	got := r.JSON()
	want := `{"type":"PIN_MODE","timestamp":0,"pin":13,"mode":1}`
	if got != want {
		t.Errorf("JSON() = %q, want %q", got, want)
	}
}

func TestRecordSetReplacesExistingKey(t *testing.T) {
	r := NewRecord().Set("pin", 1).Set("pin", 2)
	if got, want := r.JSON(), `{"pin":2}`; got != want {
		t.Errorf("JSON() = %q, want %q", got, want)
	}
}

func TestRecordHas(t *testing.T) {
	r := NewRecord().Set("pin", 1)
	if !r.Has("pin") {
		t.Error("Has should report true for a set key")
	}
	if r.Has("mode") {
		t.Error("Has should report false for an unset key")
	}
}

func TestAppendAnyValueValue(t *testing.T) {
	r := NewRecord().Set("variable", value.Int32(5))
	if got, want := r.JSON(), `{"variable":5}`; got != want {
		t.Errorf("JSON() = %q, want %q", got, want)
	}
}

func TestAppendAnyNestedRecord(t *testing.T) {
	inner := NewRecord().Set("value", 1)
	outer := NewRecord().Set("payload", inner)
	if got, want := outer.JSON(), `{"payload":{"value":1}}`; got != want {
		t.Errorf("JSON() = %q, want %q", got, want)
	}
}

func TestStreamEmitAppendsInOrder(t *testing.T) {
	s := NewStream()
	s.Emit(New(TypeProgramStart))
	s.Emit(New(TypeSetupStart))

	recs := s.Records()
	if len(recs) != 2 {
		t.Fatalf("Records() len = %d, want 2", len(recs))
	}
	if !strings.Contains(recs[0].JSON(), "PROGRAM_START") {
		t.Errorf("first record = %s, want PROGRAM_START", recs[0].JSON())
	}
	if !strings.Contains(recs[1].JSON(), "SETUP_START") {
		t.Errorf("second record = %s, want SETUP_START", recs[1].JSON())
	}
}

func TestStreamStatsCountsByTypeAndError(t *testing.T) {
	s := NewStream()
	s.Emit(New(TypePinMode))
	s.Emit(New(TypePinMode))
	s.Emit(New(TypeError).Set("errorType", "UndefinedVariable"))

	stats := s.Stats()
	if stats.ByType[TypePinMode] != 2 {
		t.Errorf("ByType[PIN_MODE] = %d, want 2", stats.ByType[TypePinMode])
	}
	if stats.ByType[TypeError] != 1 {
		t.Errorf("ByType[ERROR] = %d, want 1", stats.ByType[TypeError])
	}
	if stats.ByError["UndefinedVariable"] != 1 {
		t.Errorf("ByError[UndefinedVariable] = %d, want 1", stats.ByError["UndefinedVariable"])
	}
}

func TestJSONLinesNewlineTerminated(t *testing.T) {
	s := NewStream()
	s.Emit(New(TypeProgramStart))
	s.Emit(New(TypeProgramEnd))

	lines := s.JSONLines()
	if !strings.HasSuffix(lines, "\n") {
		t.Fatal("JSONLines should be newline-terminated")
	}
	if got := strings.Count(lines, "\n"); got != 2 {
		t.Fatalf("expected 2 lines, got %d newlines", got)
	}
}

func TestEveryTimestampIsZero(t *testing.T) {
	s := NewStream()
	s.Emit(New(TypeDelay).Set("ms", 10))
	for _, rec := range s.Records() {
		if !strings.Contains(rec.JSON(), `"timestamp":0`) {
			t.Errorf("record %s missing fixed timestamp 0", rec.JSON())
		}
	}
}
