// Package engine is an in-process native evaluator for expression graphs.
//
// A Manager keeps a node table keyed by tag. Value nodes hold a settable
// scalar; expression nodes hold a wire config ({type: "expression", graph})
// produced by expr.Convert, compiled once when the node is created.
//
// # Tag Resolution
//
// Value references in a graph are resolved against the table each time the
// expression runs, so nodes created after the expression are seen. A tag
// that is not in the table reads as 0 and writes to it are dropped.
// Reading the tag of an expression node yields the value of its last Update.
//
// # Persistence
//
// With WithStore, node configs and value node values are saved as
// store.Record entries under the engine ID. Restore rebuilds the table from
// the store. Values written by set nodes during evaluation are saved too.
// Store failures are logged and ignored unless WithStoreFailureFatal is set.
// An expression config that cannot be encoded as JSON, such as one holding a
// NaN or infinite literal, is always rejected by CreateNode when a store is
// configured.
//
// # Attaching Expressions
//
// Manager implements CreateNode and DropNode with the signatures
// animexpr.Driver expects, so an animexpr.Expression configured with
// WithNativeDriver registers its graph here on Attach.
//
//	m := engine.New()
//	x := cell.New(2)
//	m.CreateValue(x.Tag(), x.Get())
//	e := animexpr.New(expr.Add(x, 1), animexpr.WithNativeDriver(m))
//	e.Attach()
//	v, _ := m.Update(e.Tag()) // 3
package engine
