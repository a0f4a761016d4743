package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/randalmurphal/animexpr/pkg/animexpr/expr"
	"github.com/randalmurphal/animexpr/pkg/animexpr/observability"
	"github.com/randalmurphal/animexpr/pkg/animexpr/store"
)

// Native node config types.
const (
	TypeValue      = "value"
	TypeExpression = expr.NativeExpressionType
)

// node is one entry of the table. eval is nil for value nodes.
type node struct {
	tag    expr.Tag
	value  float64
	config expr.Tree
	eval   expr.Evaluator
}

// Manager is a native node table. It is safe for concurrent use.
// Evaluators run with mu held; the value closures they capture read and
// write the table without locking.
type Manager struct {
	mu    sync.RWMutex
	nodes map[expr.Tag]*node
	order []expr.Tag // expression nodes in creation order

	id                string
	store             store.Store
	storeFailureFatal bool
	logger            *slog.Logger
	metrics           observability.MetricsRecorder
	spans             observability.SpanManager
}

// New creates an empty Manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		nodes:   make(map[expr.Tag]*node),
		id:      DefaultEngineID,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ID returns the engine ID used for persistence.
func (m *Manager) ID() string {
	return m.id
}

// CreateValue adds a value node holding v.
func (m *Manager) CreateValue(tag expr.Tag, v float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.nodes[tag]; exists {
		return &NodeError{Tag: tag, Op: "create", Err: ErrNodeExists}
	}
	if err := m.persist(store.NewValueRecord(m.id, tag, v)); err != nil {
		return err
	}
	m.nodes[tag] = &node{tag: tag, value: v}
	observability.LogNodeCreated(m.logger, int(tag), TypeValue)
	return nil
}

// CreateNode adds a node from its native config. An "expression" config is
// decoded and compiled immediately; a "value" config holds its optional
// numeric "value" field.
//
// With a store configured, an expression config that cannot be encoded as
// JSON, such as one holding a NaN or infinite literal, is rejected with a
// *StoreError whether or not store failures are fatal.
func (m *Manager) CreateNode(tag expr.Tag, config expr.Tree) error {
	typ, _ := config[expr.FieldType].(string)
	switch typ {
	case TypeValue:
		v, ok := 0.0, true
		if raw, present := config[expr.FieldValue]; present {
			v, ok = expr.ToFloat64(raw)
		}
		if !ok {
			return &NodeError{Tag: tag, Op: "create", Err: &expr.FieldError{Type: TypeValue, Field: expr.FieldValue, Err: expr.ErrMalformedTree}}
		}
		return m.CreateValue(tag, v)
	case TypeExpression:
	default:
		return &NodeError{Tag: tag, Op: "create", Err: fmt.Errorf("%w: %q", ErrUnknownNodeType, typ)}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.nodes[tag]; exists {
		return &NodeError{Tag: tag, Op: "create", Err: ErrNodeExists}
	}
	n, err := m.compile(tag, config)
	if err != nil {
		return &NodeError{Tag: tag, Op: "create", Err: err}
	}
	if err := m.persistConfig(tag, config); err != nil {
		return err
	}
	m.nodes[tag] = n
	m.order = append(m.order, tag)
	observability.LogNodeCreated(m.logger, int(tag), TypeExpression)
	return nil
}

// compile decodes and compiles an expression config. Caller holds mu.
func (m *Manager) compile(tag expr.Tag, config expr.Tree) (_ *node, err error) {
	ctx, span := m.spans.StartCompileSpan(context.Background(), nodeID(tag))
	done := observability.TimedOperation()
	defer func() {
		m.metrics.RecordCompile(ctx, done(), err)
		m.spans.EndSpanWithError(span, err)
	}()

	graph, ok := config[expr.FieldGraph].(map[string]any)
	if !ok {
		return nil, &expr.FieldError{Type: TypeExpression, Field: expr.FieldGraph, Err: expr.ErrMalformedTree}
	}
	root, err := expr.Decode(graph, m.resolve)
	if err != nil {
		return nil, err
	}
	eval, err := expr.Compile(root)
	if err != nil {
		return nil, err
	}
	return &node{tag: tag, config: config, eval: eval}, nil
}

func nodeID(tag expr.Tag) string {
	return "node-" + strconv.Itoa(int(tag))
}

// resolve binds a tag to closures over the table. Lookups happen at
// evaluation time. Writes to value nodes are persisted like SetValue; a
// store failure cannot be returned from inside an evaluator, so it is logged.
func (m *Manager) resolve(tag expr.Tag) *expr.Value {
	get := func() float64 {
		if n, ok := m.nodes[tag]; ok {
			return n.value
		}
		return 0
	}
	set := func(v float64) {
		n, ok := m.nodes[tag]
		if !ok || n.eval != nil {
			return
		}
		n.value = v
		if err := m.persist(store.NewValueRecord(m.id, tag, v)); err != nil {
			observability.LogStoreError(m.logger, int(tag), "save", err)
		}
	}
	return expr.NewValue(tag, get, set, nil)
}

// DropNode removes a node and its persisted config.
func (m *Manager) DropNode(tag expr.Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.nodes[tag]
	if !ok {
		return &NodeError{Tag: tag, Op: "drop", Err: ErrNodeNotFound}
	}
	if m.store != nil {
		if err := m.store.Delete(m.id, tag); err != nil {
			if serr := m.storeFailed(tag, "delete", err); serr != nil {
				return serr
			}
		}
	}
	delete(m.nodes, tag)
	if n.eval != nil {
		m.order = removeTag(m.order, tag)
	}
	observability.LogNodeDropped(m.logger, int(tag))
	return nil
}

// SetValue writes a value node.
func (m *Manager) SetValue(tag expr.Tag, v float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.nodes[tag]
	if !ok {
		return &NodeError{Tag: tag, Op: "set", Err: ErrNodeNotFound}
	}
	if n.eval != nil {
		return &NodeError{Tag: tag, Op: "set", Err: ErrNotValueNode}
	}
	if err := m.persist(store.NewValueRecord(m.id, tag, v)); err != nil {
		return err
	}
	n.value = v
	return nil
}

// GetValue returns the value of a node. For expression nodes this is the
// result of the last Update, 0 before the first.
func (m *Manager) GetValue(tag expr.Tag) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, ok := m.nodes[tag]
	if !ok {
		return 0, &NodeError{Tag: tag, Op: "get", Err: ErrNodeNotFound}
	}
	return n.value, nil
}

// Update evaluates an expression node and stores the result as its value.
// For a value node it returns the current value.
func (m *Manager) Update(tag expr.Tag) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, ok := m.nodes[tag]
	if !ok {
		return 0, &NodeError{Tag: tag, Op: "update", Err: ErrNodeNotFound}
	}
	m.update(n)
	return n.value, nil
}

// UpdateAll evaluates every expression node in creation order.
func (m *Manager) UpdateAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, tag := range m.order {
		m.update(m.nodes[tag])
	}
}

func (m *Manager) update(n *node) {
	if n.eval == nil {
		return
	}
	n.value = n.eval()
	m.metrics.RecordEvaluation(context.Background())
}

// Config returns the native config of an expression node.
func (m *Manager) Config(tag expr.Tag) (expr.Tree, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, ok := m.nodes[tag]
	if !ok || n.eval == nil {
		return nil, &NodeError{Tag: tag, Op: "config", Err: ErrNodeNotFound}
	}
	return n.config, nil
}

// Len returns the number of nodes in the table.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.nodes)
}

// persist saves a record when a store is configured. Caller holds mu.
func (m *Manager) persist(r *store.Record) error {
	if m.store == nil {
		return nil
	}
	data, err := r.Marshal()
	if err != nil {
		return m.storeFailed(r.Tag, "marshal", err)
	}
	if err := m.store.Save(m.id, r.Tag, data); err != nil {
		return m.storeFailed(r.Tag, "save", err)
	}
	return nil
}

// persistConfig saves an expression config. Caller holds mu.
func (m *Manager) persistConfig(tag expr.Tag, config expr.Tree) error {
	if m.store == nil {
		return nil
	}
	data, err := json.Marshal(config)
	if err != nil {
		// A config that cannot be encoded could never be restored.
		return &StoreError{Tag: tag, Op: "marshal", Err: err}
	}
	return m.persist(store.NewConfigRecord(m.id, tag, data))
}

func (m *Manager) storeFailed(tag expr.Tag, op string, err error) error {
	if m.storeFailureFatal {
		return &StoreError{Tag: tag, Op: op, Err: err}
	}
	observability.LogStoreError(m.logger, int(tag), op, err)
	return nil
}

// Restore re-creates every node persisted under the engine ID, in the
// order they were first saved. Nodes already in the table are skipped.
// Returns an error joining each record that could not be restored.
func (m *Manager) Restore() error {
	if m.store == nil {
		return nil
	}
	infos, err := m.store.List(m.id)
	if err != nil {
		return fmt.Errorf("list nodes: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for _, info := range infos {
		if _, exists := m.nodes[info.Tag]; exists {
			continue
		}
		if err := m.restore(info.Tag); err != nil {
			errs = append(errs, &NodeError{Tag: info.Tag, Op: "restore", Err: err})
		}
	}
	return errors.Join(errs...)
}

// restore loads one record into the table. Caller holds mu.
func (m *Manager) restore(tag expr.Tag) error {
	data, err := m.store.Load(m.id, tag)
	if err != nil {
		return err
	}
	r, err := store.Unmarshal(data)
	if err != nil {
		return err
	}

	if !r.IsExpression() {
		var v float64
		if r.Value != nil {
			v = *r.Value
		}
		m.nodes[tag] = &node{tag: tag, value: v}
		observability.LogNodeCreated(m.logger, int(tag), TypeValue)
		return nil
	}

	var config expr.Tree
	if err := json.Unmarshal(r.Config, &config); err != nil {
		return err
	}
	n, err := m.compile(tag, config)
	if err != nil {
		return err
	}
	m.nodes[tag] = n
	m.order = append(m.order, tag)
	observability.LogNodeCreated(m.logger, int(tag), TypeExpression)
	return nil
}

func removeTag(tags []expr.Tag, tag expr.Tag) []expr.Tag {
	for i, t := range tags {
		if t == tag {
			return append(tags[:i], tags[i+1:]...)
		}
	}
	return tags
}
