package expr

// Kind identifies an expression node type. The set is closed: every Kind
// has exactly one wire name and belongs to exactly one group.
type Kind uint8

const (
	KindInvalid Kind = iota

	// Leaves
	KindNumber
	KindValue

	// Multi-operand reducers
	KindAdd
	KindSub
	KindMultiply
	KindDivide
	KindPow
	KindModulo
	KindAnd
	KindOr

	// Unary operators
	KindSqrt
	KindLog
	KindSin
	KindCos
	KindTan
	KindAcos
	KindAsin
	KindAtan
	KindExp
	KindRound
	KindNot

	// Comparisons
	KindEq
	KindNeq
	KindLessThan
	KindGreaterThan
	KindLessOrEq
	KindGreaterOrEq

	// Statements
	KindCond
	KindSet
	KindBlock

	kindCount
)

// Group classifies kinds by the structural shape of their nodes.
type Group uint8

const (
	GroupNone Group = iota
	GroupLiteral
	GroupValue
	GroupMulti
	GroupUnary
	GroupCompare
	GroupCond
	GroupSet
	GroupBlock
)

type kindInfo struct {
	name  string
	group Group
}

// kinds is indexed by Kind and never mutated after init.
var kinds = [kindCount]kindInfo{
	KindNumber:      {"number", GroupLiteral},
	KindValue:       {"value", GroupValue},
	KindAdd:         {"add", GroupMulti},
	KindSub:         {"sub", GroupMulti},
	KindMultiply:    {"multiply", GroupMulti},
	KindDivide:      {"divide", GroupMulti},
	KindPow:         {"pow", GroupMulti},
	KindModulo:      {"modulo", GroupMulti},
	KindAnd:         {"and", GroupMulti},
	KindOr:          {"or", GroupMulti},
	KindSqrt:        {"sqrt", GroupUnary},
	KindLog:         {"log", GroupUnary},
	KindSin:         {"sin", GroupUnary},
	KindCos:         {"cos", GroupUnary},
	KindTan:         {"tan", GroupUnary},
	KindAcos:        {"acos", GroupUnary},
	KindAsin:        {"asin", GroupUnary},
	KindAtan:        {"atan", GroupUnary},
	KindExp:         {"exp", GroupUnary},
	KindRound:       {"round", GroupUnary},
	KindNot:         {"not", GroupUnary},
	KindEq:          {"eq", GroupCompare},
	KindNeq:         {"neq", GroupCompare},
	KindLessThan:    {"lessThan", GroupCompare},
	KindGreaterThan: {"greaterThan", GroupCompare},
	KindLessOrEq:    {"lessOrEq", GroupCompare},
	KindGreaterOrEq: {"greaterOrEq", GroupCompare},
	KindCond:        {"cond", GroupCond},
	KindSet:         {"set", GroupSet},
	KindBlock:       {"block", GroupBlock},
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kinds))
	for k, info := range kinds {
		if info.name != "" {
			m[info.name] = Kind(k)
		}
	}
	return m
}()

// String returns the wire name of the kind, e.g. "lessThan".
func (k Kind) String() string {
	if k < kindCount && kinds[k].name != "" {
		return kinds[k].name
	}
	return "unknown"
}

// Group returns the structural group of the kind, or GroupNone for
// values outside the closed set.
func (k Kind) Group() Group {
	if k < kindCount {
		return kinds[k].group
	}
	return GroupNone
}

// Valid reports whether k is a member of the closed kind set.
func (k Kind) Valid() bool {
	return k.Group() != GroupNone
}

// IsMulti reports whether k is a multi-operand reducer.
func (k Kind) IsMulti() bool { return k.Group() == GroupMulti }

// IsUnary reports whether k is a unary operator.
func (k Kind) IsUnary() bool { return k.Group() == GroupUnary }

// IsCompare reports whether k is a binary comparison.
func (k Kind) IsCompare() bool { return k.Group() == GroupCompare }

// ParseKind returns the Kind for a wire name. Names are case-sensitive.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindNumber; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
