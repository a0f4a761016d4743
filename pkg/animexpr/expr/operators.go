package expr

import "math"

// Reducer combines an accumulated value with the next operand.
type Reducer func(acc, cur float64) float64

// UnaryFunc maps a single operand.
type UnaryFunc func(v float64) float64

// Comparator compares two operands, returning 1 or 0.
type Comparator func(left, right float64) float64

var reducers = [kindCount]Reducer{
	KindAdd:      func(p, c float64) float64 { return p + c },
	KindSub:      func(p, c float64) float64 { return p - c },
	KindMultiply: func(p, c float64) float64 { return p * c },
	KindDivide:   func(p, c float64) float64 { return p / c },
	KindPow:      math.Pow,
	KindModulo:   floorMod,
	KindAnd:      func(p, c float64) float64 { return Bool(Truthy(p) && Truthy(c)) },
	KindOr:       func(p, c float64) float64 { return Bool(Truthy(p) || Truthy(c)) },
}

var unaryFuncs = [kindCount]UnaryFunc{
	KindSqrt:  math.Sqrt,
	KindLog:   math.Log,
	KindSin:   math.Sin,
	KindCos:   math.Cos,
	KindTan:   math.Tan,
	KindAcos:  math.Acos,
	KindAsin:  math.Asin,
	KindAtan:  math.Atan,
	KindExp:   math.Exp,
	KindRound: roundHalfUp,
	KindNot:   func(v float64) float64 { return Bool(!Truthy(v)) },
}

var comparators = [kindCount]Comparator{
	KindEq:          func(l, r float64) float64 { return Bool(l == r) },
	KindNeq:         func(l, r float64) float64 { return Bool(l != r) },
	KindLessThan:    func(l, r float64) float64 { return Bool(l < r) },
	KindGreaterThan: func(l, r float64) float64 { return Bool(l > r) },
	KindLessOrEq:    func(l, r float64) float64 { return Bool(l <= r) },
	KindGreaterOrEq: func(l, r float64) float64 { return Bool(l >= r) },
}

// ReducerFor returns the reducer of a multi-operand kind.
func ReducerFor(k Kind) (Reducer, bool) {
	if !k.IsMulti() {
		return nil, false
	}
	return reducers[k], true
}

// UnaryFuncFor returns the function of a unary kind.
func UnaryFuncFor(k Kind) (UnaryFunc, bool) {
	if !k.IsUnary() {
		return nil, false
	}
	return unaryFuncs[k], true
}

// ComparatorFor returns the comparator of a comparison kind.
func ComparatorFor(k Kind) (Comparator, bool) {
	if !k.IsCompare() {
		return nil, false
	}
	return comparators[k], true
}

// floorMod is modulo with the sign of the divisor, so a positive modulus
// never yields a negative result.
func floorMod(p, c float64) float64 {
	return math.Mod(math.Mod(p, c)+c, c)
}

// roundHalfUp rounds to the nearest integer with halves going toward +Inf.
func roundHalfUp(v float64) float64 {
	r := math.Floor(v)
	if v-r >= 0.5 {
		r++
	}
	return r
}
