package expr

// Tree is the wire form of an expression graph: nested maps, slices, numbers
// and tags that encode directly to JSON or YAML.
//
// Shapes by type:
//
//	number      {type, value}
//	value       {type, tag}
//	multi ops   {type, a, b, others}
//	unary ops   {type, operand}
//	comparisons {type, left, right}
//	cond        {type, expr, ifNode, elseNode}
//	set         {type, target, source}   target is the bare tag
//	block       {type, nodes}
type Tree = map[string]any

// Wire field names.
const (
	FieldType     = "type"
	FieldValue    = "value"
	FieldTag      = "tag"
	FieldA        = "a"
	FieldB        = "b"
	FieldOthers   = "others"
	FieldOperand  = "operand"
	FieldLeft     = "left"
	FieldRight    = "right"
	FieldExpr     = "expr"
	FieldIfNode   = "ifNode"
	FieldElseNode = "elseNode"
	FieldTarget   = "target"
	FieldSource   = "source"
	FieldNodes    = "nodes"
)

// Native node configs wrap a graph for registration with an engine:
//
//	{type: "expression", graph: Tree}
const (
	NativeExpressionType = "expression"
	FieldGraph           = "graph"
)

// NativeConfig wraps a converted graph in its native node config.
func NativeConfig(graph Tree) Tree {
	return Tree{FieldType: NativeExpressionType, FieldGraph: graph}
}

// Convert serializes a graph to its wire form. Value references serialize
// as their tag only, never their current value.
//
// Fails for the same graphs Compile rejects.
func Convert(n Node) (Tree, error) {
	return fold[Tree](n, converter{})
}

// converter is the native backend.
type converter struct{}

func (converter) number(n *Number) Tree {
	return Tree{FieldType: KindNumber.String(), FieldValue: n.Value}
}

func (converter) value(n *Value) Tree {
	return Tree{FieldType: KindValue.String(), FieldTag: n.tag}
}

func (converter) multi(n *MultiOp, a, b Tree, others []Tree) Tree {
	return Tree{
		FieldType:   n.Op.String(),
		FieldA:      a,
		FieldB:      b,
		FieldOthers: treeList(others),
	}
}

func (converter) unary(n *UnaryOp, operand Tree) Tree {
	return Tree{FieldType: n.Op.String(), FieldOperand: operand}
}

func (converter) compare(n *Compare, left, right Tree) Tree {
	return Tree{FieldType: n.Op.String(), FieldLeft: left, FieldRight: right}
}

func (converter) cond(_ *Cond, expr, ifBranch, elseBranch Tree) Tree {
	return Tree{
		FieldType:     KindCond.String(),
		FieldExpr:     expr,
		FieldIfNode:   ifBranch,
		FieldElseNode: elseBranch,
	}
}

func (converter) set(_ *Set, target *Value, source Tree) Tree {
	return Tree{
		FieldType:   KindSet.String(),
		FieldTarget: target.tag,
		FieldSource: source,
	}
}

func (converter) block(_ *Block, nodes []Tree) Tree {
	return Tree{FieldType: KindBlock.String(), FieldNodes: treeList(nodes)}
}

// treeList widens to []any, the list shape JSON decoding produces.
func treeList(ts []Tree) []any {
	out := make([]any, len(ts))
	for i, t := range ts {
		out[i] = t
	}
	return out
}
