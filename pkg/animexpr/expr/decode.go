package expr

import (
	"fmt"
	"math"
)

// TagResolver maps a tag found in a wire tree to a value reference.
type TagResolver func(tag Tag) *Value

// Decode rebuilds a graph from its wire form. Value and set-target tags are
// bound through resolve. It accepts both trees produced by Convert and
// trees decoded from JSON (float64 numbers, []any lists).
func Decode(t map[string]any, resolve TagResolver) (Node, error) {
	if t == nil {
		return nil, ErrNilNode
	}
	name, ok := t[FieldType].(string)
	if !ok {
		return nil, &FieldError{Type: "?", Field: FieldType, Err: ErrMalformedTree}
	}
	k, ok := ParseKind(name)
	if !ok {
		return nil, &KindError{Type: name, Err: ErrUnresolvedKind}
	}
	d := decoder{kind: name, tree: t, resolve: resolve}

	switch k.Group() {
	case GroupLiteral:
		v, err := d.number(FieldValue)
		if err != nil {
			return nil, err
		}
		return &Number{Value: v}, nil
	case GroupValue:
		v, err := d.ref(FieldTag)
		if err != nil {
			return nil, err
		}
		return v, nil
	case GroupMulti:
		a, err := d.child(FieldA)
		if err != nil {
			return nil, err
		}
		b, err := d.child(FieldB)
		if err != nil {
			return nil, err
		}
		others, err := d.list(FieldOthers, true)
		if err != nil {
			return nil, err
		}
		return &MultiOp{Op: k, A: a, B: b, Others: others}, nil
	case GroupUnary:
		operand, err := d.child(FieldOperand)
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Op: k, Operand: operand}, nil
	case GroupCompare:
		left, err := d.child(FieldLeft)
		if err != nil {
			return nil, err
		}
		right, err := d.child(FieldRight)
		if err != nil {
			return nil, err
		}
		return &Compare{Op: k, Left: left, Right: right}, nil
	case GroupCond:
		cond, err := d.child(FieldExpr)
		if err != nil {
			return nil, err
		}
		ifNode, err := d.child(FieldIfNode)
		if err != nil {
			return nil, err
		}
		var elseNode Node = Literal(0)
		if _, present := t[FieldElseNode]; present {
			if elseNode, err = d.child(FieldElseNode); err != nil {
				return nil, err
			}
		}
		return &Cond{Expr: cond, If: ifNode, Else: elseNode}, nil
	case GroupSet:
		target, err := d.ref(FieldTarget)
		if err != nil {
			return nil, err
		}
		source, err := d.child(FieldSource)
		if err != nil {
			return nil, err
		}
		return &Set{Target: target, Source: source}, nil
	case GroupBlock:
		nodes, err := d.list(FieldNodes, false)
		if err != nil {
			return nil, err
		}
		return &Block{Nodes: nodes}, nil
	}
	return nil, unresolvedKind(k)
}

type decoder struct {
	kind    string
	tree    map[string]any
	resolve TagResolver
}

func (d decoder) fail(field string, err error) error {
	return &FieldError{Type: d.kind, Field: field, Err: err}
}

func (d decoder) number(field string) (float64, error) {
	v, ok := ToFloat64(d.tree[field])
	if !ok {
		return 0, d.fail(field, ErrMalformedTree)
	}
	return v, nil
}

func (d decoder) ref(field string) (*Value, error) {
	f, err := d.number(field)
	if err != nil {
		return nil, err
	}
	if f != math.Trunc(f) {
		return nil, d.fail(field, fmt.Errorf("%w: tag %v is not an integer", ErrMalformedTree, f))
	}
	if d.resolve == nil {
		return nil, d.fail(field, fmt.Errorf("%w: no tag resolver", ErrMalformedTree))
	}
	v := d.resolve(Tag(f))
	if v == nil {
		return nil, d.fail(field, ErrNilNode)
	}
	return v, nil
}

func (d decoder) child(field string) (Node, error) {
	sub, ok := d.tree[field].(map[string]any)
	if !ok {
		return nil, d.fail(field, ErrMalformedTree)
	}
	return Decode(sub, d.resolve)
}

// list decodes a child list. An absent list is empty when optional.
func (d decoder) list(field string, optional bool) ([]Node, error) {
	raw, present := d.tree[field]
	if !present || raw == nil {
		if optional {
			return nil, nil
		}
		return nil, d.fail(field, ErrMalformedTree)
	}

	var items []map[string]any
	switch l := raw.(type) {
	case []any:
		items = make([]map[string]any, len(l))
		for i, item := range l {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, d.fail(fmt.Sprintf("%s[%d]", field, i), ErrMalformedTree)
			}
			items[i] = m
		}
	case []map[string]any:
		items = l
	default:
		return nil, d.fail(field, ErrMalformedTree)
	}

	nodes := make([]Node, len(items))
	for i, item := range items {
		n, err := Decode(item, d.resolve)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}
