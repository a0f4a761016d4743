package expr

// CollectArguments appends every value reference reachable from n to args,
// depth first in evaluation order, and returns the extended slice.
//
// References are not deduplicated: a cell reachable along two edges is
// appended twice, and both arms of a cond are visited.
func CollectArguments(n Node, args []*Value) []*Value {
	if IsNil(n) {
		return args
	}
	if v, ok := n.(*Value); ok {
		args = append(args, v)
	}
	for _, child := range Children(n) {
		args = CollectArguments(child, args)
	}
	return args
}
