package interp

import (
	"math"

	"github.com/ardsim/engine/internal/value"
)

func init() {
	registerBuiltins(map[string]builtinFunc{
		"map":        biMap,
		"constrain":  biConstrain,
		"abs":        biAbs,
		"min":        biMin,
		"max":        biMax,
		"sq":         biSq,
		"sqrt":       biSqrt,
		"pow":        biPow,
		"sin":        biSin,
		"cos":        biCos,
		"tan":        biTan,
		"random":     biRandom,
		"randomSeed": biRandomSeed,
	})
}

// biMap rescales x from [inMin,inMax] to [outMin,outMax]. The arithmetic is
// done in float64 and the result is converted to int32, which truncates
// toward zero.
func biMap(i *Interpreter, args []*value.Value) *value.Value {
	x := arg(args, 0).ToDouble()
	inMin := arg(args, 1).ToDouble()
	inMax := arg(args, 2).ToDouble()
	outMin := arg(args, 3).ToDouble()
	outMax := arg(args, 4).ToDouble()
	result := (x-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
	return value.Int32(int32(result))
}

func biConstrain(i *Interpreter, args []*value.Value) *value.Value {
	x := arg(args, 0)
	lo := arg(args, 1)
	hi := arg(args, 2)
	if x.ToDouble() < lo.ToDouble() {
		return lo
	}
	if x.ToDouble() > hi.ToDouble() {
		return hi
	}
	return x
}

func biAbs(i *Interpreter, args []*value.Value) *value.Value {
	x := arg(args, 0)
	if x.Kind() == value.KindDouble {
		return value.Double(math.Abs(x.AsDouble()))
	}
	n := x.ToInt32()
	if n < 0 {
		n = -n
	}
	return value.Int32(n)
}

func biMin(i *Interpreter, args []*value.Value) *value.Value {
	a, b := arg(args, 0), arg(args, 1)
	if a.ToDouble() <= b.ToDouble() {
		return a
	}
	return b
}

func biMax(i *Interpreter, args []*value.Value) *value.Value {
	a, b := arg(args, 0), arg(args, 1)
	if a.ToDouble() >= b.ToDouble() {
		return a
	}
	return b
}

func biSq(i *Interpreter, args []*value.Value) *value.Value {
	x := arg(args, 0).ToDouble()
	return value.Double(x * x)
}

func biSqrt(i *Interpreter, args []*value.Value) *value.Value {
	return value.Double(math.Sqrt(arg(args, 0).ToDouble()))
}

func biPow(i *Interpreter, args []*value.Value) *value.Value {
	return value.Double(math.Pow(arg(args, 0).ToDouble(), arg(args, 1).ToDouble()))
}

func biSin(i *Interpreter, args []*value.Value) *value.Value {
	return value.Double(math.Sin(arg(args, 0).ToDouble()))
}

func biCos(i *Interpreter, args []*value.Value) *value.Value {
	return value.Double(math.Cos(arg(args, 0).ToDouble()))
}

func biTan(i *Interpreter, args []*value.Value) *value.Value {
	return value.Double(math.Tan(arg(args, 0).ToDouble()))
}

// biRandom implements both the one-argument random(max) and two-argument
// random(min, max) overloads (spec §4.10).
func biRandom(i *Interpreter, args []*value.Value) *value.Value {
	if len(args) >= 2 {
		return value.Int32(i.mock.RandomRange(arg(args, 0).ToInt32(), arg(args, 1).ToInt32()))
	}
	return value.Int32(i.mock.Random(arg(args, 0).ToInt32()))
}

func biRandomSeed(i *Interpreter, args []*value.Value) *value.Value {
	i.mock.RandomSeed(uint32(arg(args, 0).ToInt32()))
	return value.Null()
}
