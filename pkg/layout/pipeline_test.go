package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testNode struct {
	name     string
	depth    int
	dirty    bool
	children []*testNode
	log      *[]string
	onLayout func()
}

func (n *testNode) Depth() int        { return n.depth }
func (n *testNode) NeedsLayout() bool { return n.dirty }

func (n *testNode) PerformLayout() {
	n.dirty = false
	*n.log = append(*n.log, n.name)
	if n.onLayout != nil {
		n.onLayout()
	}
	for _, c := range n.children {
		c.PerformLayout()
	}
}

func TestFlushLayout_ParentsFirst(t *testing.T) {
	var log []string
	leaf := &testNode{name: "leaf", depth: 2, dirty: true, log: &log}
	mid := &testNode{name: "mid", depth: 1, dirty: true, log: &log, children: []*testNode{leaf}}
	other := &testNode{name: "other", depth: 3, dirty: true, log: &log}

	p := &PipelineOwner{}
	p.ScheduleLayout(other)
	p.ScheduleLayout(leaf)
	p.ScheduleLayout(mid)
	p.ScheduleLayout(mid)

	require.Equal(t, 3, p.Pending())

	p.FlushLayout()

	assert.Equal(t, []string{"mid", "leaf", "other"}, log)
	assert.False(t, p.NeedsLayout(), "pipeline should be clean after flush")
}

func TestFlushLayout_ProcessesNodesScheduledDuringFlush(t *testing.T) {
	var log []string
	p := &PipelineOwner{}
	late := &testNode{name: "late", depth: 0, log: &log}
	first := &testNode{name: "first", depth: 1, dirty: true, log: &log}
	first.onLayout = func() {
		late.dirty = true
		p.ScheduleLayout(late)
		p.FlushLayout() // nested flush is ignored
	}

	p.ScheduleLayout(first)
	p.FlushLayout()

	assert.Equal(t, []string{"first", "late"}, log)
}

func TestForget(t *testing.T) {
	var log []string
	n := &testNode{name: "n", dirty: true, log: &log}
	p := &PipelineOwner{}
	p.ScheduleLayout(n)
	p.Forget(n)
	p.FlushLayout()
	assert.Empty(t, log, "forgotten node was laid out")
}
