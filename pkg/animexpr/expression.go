package animexpr

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/randalmurphal/animexpr/pkg/animexpr/cell"
	"github.com/randalmurphal/animexpr/pkg/animexpr/expr"
	"github.com/randalmurphal/animexpr/pkg/animexpr/observability"
)

// Driver is a native engine an expression registers with on Attach.
// engine.Manager implements it.
type Driver interface {
	CreateNode(tag expr.Tag, config expr.Tree) error
	DropNode(tag expr.Tag) error
}

// Expression owns a graph. It subscribes to the cells the graph reads
// while attached, evaluates lazily, and describes itself to a native engine.
//
// Expression is safe for concurrent use.
type Expression struct {
	id     string
	tag    expr.Tag
	tagSet bool
	graph  expr.Node

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	driver  Driver

	mu       sync.Mutex
	attached bool
	args     []*expr.Value
	eval     expr.Evaluator
	evalErr  error
	compiled bool

	depMu      sync.Mutex
	dependents []expr.Dependent
}

// Compile-time interface checks. An Expression can be used as an input to
// another expression wherever a cell is accepted.
var (
	_ expr.Dependent = (*Expression)(nil)
	_ expr.Cell      = (*Expression)(nil)
	_ expr.Owner     = (*Expression)(nil)
)

// New creates a detached expression over graph.
func New(graph expr.Node, opts ...Option) *Expression {
	e := &Expression{
		id:      uuid.New().String(),
		graph:   graph,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if !e.tagSet {
		e.tag = cell.NextTag()
	}
	e.logger = observability.EnrichLogger(e.logger, e.id, int(e.tag))
	return e
}

// ID returns the expression's unique ID.
func (e *Expression) ID() string { return e.id }

// Tag returns the expression's native tag.
func (e *Expression) Tag() expr.Tag { return e.tag }

// Graph returns the root node.
func (e *Expression) Graph() expr.Node { return e.graph }

// Get evaluates the expression for use as a cell. An evaluation error is
// logged and read as 0.
func (e *Expression) Get() float64 {
	v, err := e.Value()
	if err != nil {
		observability.LogValueError(e.logger, e.id, err)
		return 0
	}
	return v
}

// Set is a no-op: an expression's value is derived from its graph.
func (e *Expression) Set(float64) {}

// AddDependent registers d. Registering the same dependent twice keeps
// two entries.
func (e *Expression) AddDependent(d expr.Dependent) {
	e.depMu.Lock()
	defer e.depMu.Unlock()
	e.dependents = append(e.dependents, d)
}

// RemoveDependent removes one registration of d, if any.
func (e *Expression) RemoveDependent(d expr.Dependent) {
	e.depMu.Lock()
	defer e.depMu.Unlock()
	for i, existing := range e.dependents {
		if existing == d {
			e.dependents = append(e.dependents[:i], e.dependents[i+1:]...)
			return
		}
	}
}

// Dependents returns a snapshot of the expressions attached to this one.
func (e *Expression) Dependents() []expr.Dependent {
	e.depMu.Lock()
	defer e.depMu.Unlock()
	out := make([]expr.Dependent, len(e.dependents))
	copy(out, e.dependents)
	return out
}

// Attached reports whether the expression is attached.
func (e *Expression) Attached() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.attached
}

// Attach collects the graph's value references and registers the
// expression as a dependent of each one's owner, once per occurrence.
// With a native driver, the native config is registered under Tag.
// On failure nothing stays registered.
func (e *Expression) Attach() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.attached {
		return &ExpressionError{ID: e.id, Op: "attach", Err: ErrAlreadyAttached}
	}

	args := expr.CollectArguments(e.graph, nil)
	subs := subscribe(args, e)

	if e.driver != nil {
		config, err := e.NativeConfig()
		if err != nil {
			unsubscribe(args, e)
			return err
		}
		if err := e.driver.CreateNode(e.tag, config); err != nil {
			unsubscribe(args, e)
			return &ExpressionError{ID: e.id, Op: "attach", Err: err}
		}
	}

	e.args = args
	e.attached = true
	e.metrics.RecordAttach(context.Background(), subs)
	observability.LogAttach(e.logger, e.id, len(args))
	return nil
}

// Detach undoes Attach over the same argument list. Subscriptions are
// always removed; a native driver error is returned afterwards.
func (e *Expression) Detach() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.attached {
		return &ExpressionError{ID: e.id, Op: "detach", Err: ErrNotAttached}
	}

	subs := unsubscribe(e.args, e)
	e.attached = false
	e.metrics.RecordAttach(context.Background(), -subs)
	observability.LogDetach(e.logger, e.id, len(e.args))

	if e.driver != nil {
		if err := e.driver.DropNode(e.tag); err != nil {
			return &ExpressionError{ID: e.id, Op: "detach", Err: err}
		}
	}
	return nil
}

// subscribe registers d with the owner of every argument that has one and
// returns the number of registrations.
func subscribe(args []*expr.Value, d expr.Dependent) int {
	n := 0
	for _, a := range args {
		if o := a.Owner(); o != nil {
			o.AddDependent(d)
			n++
		}
	}
	return n
}

func unsubscribe(args []*expr.Value, d expr.Dependent) int {
	n := 0
	for _, a := range args {
		if o := a.Owner(); o != nil {
			o.RemoveDependent(d)
			n++
		}
	}
	return n
}

// Arguments returns the value references collected by the last Attach, in
// traversal order and with duplicates.
func (e *Expression) Arguments() []*expr.Value {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.args == nil {
		return nil
	}
	out := make([]*expr.Value, len(e.args))
	copy(out, e.args)
	return out
}

// Value evaluates the graph. The evaluator is compiled on the first call and
// reused; a compile failure is returned on every call.
func (e *Expression) Value() (float64, error) {
	eval, err := e.evaluator()
	if err != nil {
		return 0, err
	}
	v := eval()
	e.metrics.RecordEvaluation(context.Background())
	return v, nil
}

func (e *Expression) evaluator() (expr.Evaluator, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.compiled {
		return e.eval, e.evalErr
	}

	ctx, span := e.spans.StartCompileSpan(context.Background(), e.id)
	done := observability.TimedOperation()
	eval, err := expr.Compile(e.graph)
	elapsed := done()
	e.metrics.RecordCompile(ctx, elapsed, err)
	e.spans.EndSpanWithError(span, err)

	if err != nil {
		observability.LogCompileError(e.logger, e.id, err)
		err = &ExpressionError{ID: e.id, Op: "compile", Err: err}
	} else {
		observability.LogCompile(e.logger, e.id, observability.Milliseconds(elapsed))
	}

	e.eval, e.evalErr, e.compiled = eval, err, true
	return eval, err
}

// NativeConfig returns the config a native engine needs to evaluate the
// expression: {type: "expression", graph: Tree}.
func (e *Expression) NativeConfig() (expr.Tree, error) {
	ctx, span := e.spans.StartConvertSpan(context.Background(), e.id)
	graph, err := expr.Convert(e.graph)
	e.metrics.RecordConvert(ctx, err)
	e.spans.EndSpanWithError(span, err)
	observability.LogConvert(e.logger, e.id, err)
	if err != nil {
		return nil, &ExpressionError{ID: e.id, Op: "convert", Err: err}
	}
	return expr.NativeConfig(graph), nil
}
