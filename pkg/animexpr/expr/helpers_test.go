package expr

// testCell is a minimal Cell + Owner used across the package tests.
type testCell struct {
	tag    Tag
	v      float64
	reads  int
	writes int
	deps   []Dependent
}

func newTestCell(tag Tag, v float64) *testCell {
	return &testCell{tag: tag, v: v}
}

func (c *testCell) Get() float64 {
	c.reads++
	return c.v
}

func (c *testCell) Set(v float64) {
	c.writes++
	c.v = v
}

func (c *testCell) Tag() Tag { return c.tag }

func (c *testCell) AddDependent(d Dependent) { c.deps = append(c.deps, d) }

func (c *testCell) RemoveDependent(d Dependent) {
	for i, existing := range c.deps {
		if existing == d {
			c.deps = append(c.deps[:i], c.deps[i+1:]...)
			return
		}
	}
}

// plainCell implements Cell but not Owner.
type plainCell struct {
	tag Tag
	v   float64
}

func (c *plainCell) Get() float64  { return c.v }
func (c *plainCell) Set(v float64) { c.v = v }
func (c *plainCell) Tag() Tag      { return c.tag }

// tagTable resolves tags against a fixed set of test cells.
func tagTable(cells ...*testCell) TagResolver {
	byTag := make(map[Tag]*testCell, len(cells))
	for _, c := range cells {
		byTag[c.tag] = c
	}
	return func(tag Tag) *Value {
		c, ok := byTag[tag]
		if !ok {
			return NewValue(tag, func() float64 { return 0 }, nil, nil)
		}
		return Ref(c)
	}
}
