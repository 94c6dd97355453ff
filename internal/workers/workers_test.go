package workers

import (
	"context"
	"testing"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount int
	lastCtx  context.Context
}

func (m *mockWorker) Run(ctx context.Context) {
	m.runCount++
	m.lastCtx = ctx
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := New(w1, w2, w3)
	ws.Run(context.Background())

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := New()

	// Should not panic on empty workers list
	ws.Run(context.Background())
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run(context.Background())
}

func TestWorkers_Run_Order(t *testing.T) {
	order := []int{}

	// orderWorker records its index into the shared order slice
	newOrderWorker := func(id int) Worker {
		return &orderWorker{id: id, order: &order}
	}

	ws := New(
		newOrderWorker(1),
		newOrderWorker(2),
		newOrderWorker(3),
	)
	ws.Run(context.Background())

	expected := []int{1, 2, 3}
	for i, v := range expected {
		if order[i] != v {
			t.Errorf("expected order[%d]=%d, got %d", i, v, order[i])
		}
	}
}

func TestWorkers_Run_SharesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "boot")

	w1 := &mockWorker{}
	w2 := &mockWorker{}

	New(w1, w2).Run(ctx)

	for i, w := range []*mockWorker{w1, w2} {
		if w.lastCtx == nil || w.lastCtx.Value(key{}) != "boot" {
			t.Errorf("worker[%d]: expected the shared boot context", i)
		}
	}
}

func TestWorkers_Run_MultipleRuns(t *testing.T) {
	w := &mockWorker{}
	ws := New(w)

	ws.Run(context.Background())
	ws.Run(context.Background())
	ws.Run(context.Background())

	if w.runCount != 3 {
		t.Errorf("expected runCount=3 after 3 calls, got %d", w.runCount)
	}
}

func TestFunc_AdaptsPlainFunction(t *testing.T) {
	called := 0
	var worker Worker = Func(func(context.Context) { called++ })

	New(worker).Run(context.Background())

	if called != 1 {
		t.Errorf("expected the adapted function to run once, got %d", called)
	}
}

// orderWorker is a helper that appends its ID to a shared slice on Run.
type orderWorker struct {
	id    int
	order *[]int
}

func (o *orderWorker) Run(context.Context) {
	*o.order = append(*o.order, o.id)
}
