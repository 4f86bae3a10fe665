// Package mock implements the Deterministic Mock Source (spec §4.10): the
// reproducible values synchronous mode (and the reference implementation)
// use for sensor/time reads, so the companion engines emit byte-equivalent
// command streams from identical input (spec §1).
package mock

// LCG is the linear congruential generator specified in spec §4.10 for
// random()/randomSeed(), with the exact constants called out there.
type LCG struct {
	state uint32
}

const (
	lcgA uint64 = 1664525
	lcgC uint64 = 1013904223
	lcgSeed uint32 = 12345
)

// NewLCG returns a generator seeded per spec §4.10.
func NewLCG() *LCG {
	return &LCG{state: lcgSeed}
}

// Seed reseeds the generator (randomSeed()).
func (g *LCG) Seed(s uint32) {
	g.state = s
}

// Next advances the generator and returns the new 32-bit state.
func (g *LCG) Next() uint32 {
	g.state = uint32((lcgA*uint64(g.state) + lcgC) & 0xFFFFFFFF)
	return g.state
}

// RandomMax implements random(max): a non-negative value in [0, max).
func (g *LCG) RandomMax(max int32) int32 {
	if max <= 0 {
		return 0
	}
	return int32(g.Next() % uint32(max))
}

// RandomRange implements random(min, max): a value in [min, max).
func (g *LCG) RandomRange(min, max int32) int32 {
	if max <= min {
		return min
	}
	span := uint32(max - min)
	return min + int32(g.Next()%span)
}

// Source holds all per-instance deterministic state described in spec
// §4.10: millis/micros counters, per-port Serial.available() call
// counters, and the shared RNG. All counters reset when the interpreter
// resets (spec §4.10 "All counters reset when the interpreter is reset").
type Source struct {
	millis uint32
	micros uint32

	serialAvailableCalls map[string]int

	rng *LCG
}

// New returns a freshly seeded Source.
func New() *Source {
	return &Source{
		millis:               17807,
		micros:               17807000,
		serialAvailableCalls: make(map[string]int),
		rng:                  NewLCG(),
	}
}

// Reset restores all counters to their initial state (spec §4.10).
func (s *Source) Reset() {
	s.millis = 17807
	s.micros = 17807000
	s.serialAvailableCalls = make(map[string]int)
	s.rng = NewLCG()
}

// Millis returns the current mock millis() value then advances it by 100.
func (s *Source) Millis() uint32 {
	v := s.millis
	s.millis += 100
	return v
}

// Micros returns the current mock micros() value then advances it by 100000.
func (s *Source) Micros() uint32 {
	v := s.micros
	s.micros += 100000
	return v
}

// DigitalRead returns 1 for an odd pin, else 0 (spec §4.10).
func DigitalRead(pin int32) int32 {
	if pin%2 != 0 {
		return 1
	}
	return 0
}

// AnalogRead returns (pin*37 + 42) mod 1024 (spec §4.10).
func AnalogRead(pin int32) int32 {
	v := (pin*37 + 42) % 1024
	if v < 0 {
		v += 1024
	}
	return v
}

// SerialAvailable implements the "first call 0, thereafter 1" per-port
// pattern (spec §4.10, and the explicit "do not generalize" note in §9).
func (s *Source) SerialAvailable(port string) int32 {
	n := s.serialAvailableCalls[port]
	s.serialAvailableCalls[port] = n + 1
	if n == 0 {
		return 0
	}
	return 1
}

// SerialRead returns the constant ASCII code for 'A' (spec §4.10).
func (s *Source) SerialRead() int32 {
	return 65
}

// Random implements random(max).
func (s *Source) Random(max int32) int32 {
	return s.rng.RandomMax(max)
}

// RandomRange implements random(min, max).
func (s *Source) RandomRange(min, max int32) int32 {
	return s.rng.RandomRange(min, max)
}

// RandomSeed reseeds the shared RNG.
func (s *Source) RandomSeed(seed uint32) {
	s.rng.Seed(seed)
}

// PulseIn is a supplemented external read (SPEC_FULL §3.5): in mock mode
// no edge is ever observed, so it always returns 0.
func (s *Source) PulseIn() int32 {
	return 0
}

// ShiftIn is a supplemented external read (SPEC_FULL §3.5), deterministic 0
// in mock mode.
func (s *Source) ShiftIn() int32 {
	return 0
}

// Overrides lets the host pre-seed mock values (SetDigital/SetAnalog) via
// setDigitalValue/setAnalogValue (spec §6.3). Overrides take priority over
// the formulaic defaults above.
type Overrides struct {
	digital map[int32]int32
	analog  map[int32]int32
}

// NewOverrides returns an empty override table.
func NewOverrides() *Overrides {
	return &Overrides{digital: make(map[int32]int32), analog: make(map[int32]int32)}
}

// SetDigital pre-seeds a digitalRead(pin) result.
func (o *Overrides) SetDigital(pin, val int32) {
	o.digital[pin] = val
}

// SetAnalog pre-seeds an analogRead(pin) result.
func (o *Overrides) SetAnalog(pin, val int32) {
	o.analog[pin] = val
}

// Digital returns the override for pin, if any.
func (o *Overrides) Digital(pin int32) (int32, bool) {
	v, ok := o.digital[pin]
	return v, ok
}

// Analog returns the override for pin, if any.
func (o *Overrides) Analog(pin int32) (int32, bool) {
	v, ok := o.analog[pin]
	return v, ok
}
