package listsync

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/Tiliavir/curriculo/internal/apiclient"
	"github.com/Tiliavir/curriculo/internal/model"
)

// gatedAPI answers List calls with the payloads queued in order, each held
// until its gate is released. Mutations succeed at once unless gateMutations
// was called.
type gatedAPI struct {
	mu      sync.Mutex
	calls   int
	gates   []chan struct{}
	bodies  []string
	started chan int

	mutations  int
	mutGates   []chan struct{}
	mutStarted chan string
}

func (g *gatedAPI) List(ctx context.Context, _ apiclient.Resource, out any) error {
	g.mu.Lock()
	n := g.calls
	g.calls++
	gate, body := g.gates[n], g.bodies[n]
	g.mu.Unlock()

	g.started <- n
	select {
	case <-gate:
	case <-ctx.Done():
		return ctx.Err()
	}
	return json.Unmarshal([]byte(body), out)
}

func (g *gatedAPI) Create(ctx context.Context, _ apiclient.Resource, _ any) error {
	return g.mutate(ctx, "create")
}

func (g *gatedAPI) Update(ctx context.Context, _ apiclient.Resource, _ string, _ any) error {
	return g.mutate(ctx, "update")
}

func (g *gatedAPI) Delete(ctx context.Context, _ apiclient.Resource, _ string) error {
	return g.mutate(ctx, "delete")
}

func (g *gatedAPI) mutate(ctx context.Context, op string) error {
	g.mu.Lock()
	n := g.mutations
	g.mutations++
	var gate chan struct{}
	if n < len(g.mutGates) {
		gate = g.mutGates[n]
	}
	g.mu.Unlock()

	if gate == nil {
		return nil
	}
	g.mutStarted <- op
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *gatedAPI) gateMutations(n int) {
	g.mutStarted = make(chan string, n)
	for range n {
		g.mutGates = append(g.mutGates, make(chan struct{}))
	}
}

func (g *gatedAPI) listCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func newGated(bodies ...string) *gatedAPI {
	g := &gatedAPI{bodies: bodies, started: make(chan int, len(bodies))}
	for range bodies {
		g.gates = append(g.gates, make(chan struct{}))
	}
	return g
}

func newTestController(api API) *Controller[model.SkillItem, model.SkillDraft] {
	return New[model.SkillItem](api, Config[model.SkillDraft]{
		Resource: apiclient.Resource{Path: "/habilidades"},
		Encode:   model.SkillDraft.Payload,
	}, nil, nil)
}

func (c *Controller[T, D]) inFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestConcurrentLoadsShareOneRequest(t *testing.T) {
	api := newGated(`[{"id":"1","nome":"Go","nivel":"Expert"}]`)
	ctrl := newTestController(api)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]bool, 3)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = ctrl.Load(ctx)
		}()
	}
	<-api.started
	// three callers and the shared fetch
	waitFor(t, func() bool { return ctrl.inFlight() == 4 })
	time.Sleep(20 * time.Millisecond)
	if !ctrl.IsLoading() {
		t.Error("IsLoading false while a GET is in flight")
	}
	close(api.gates[0])
	wg.Wait()

	if n := api.listCalls(); n != 1 {
		t.Errorf("List calls = %d, want 1", n)
	}
	for i, ok := range results {
		if !ok {
			t.Errorf("Load %d failed", i)
		}
	}
	if ctrl.IsLoading() {
		t.Error("IsLoading true after all loads returned")
	}
}

func TestStaleResponseIsDropped(t *testing.T) {
	api := newGated(
		`[{"id":"1","nome":"old","nivel":"Basic"}]`,
		`[{"id":"1","nome":"old","nivel":"Basic"},{"id":"2","nome":"new","nivel":"Expert"}]`,
	)
	ctrl := newTestController(api)
	ctx := context.Background()

	done := make(chan bool)
	go func() { done <- ctrl.Load(ctx) }()
	<-api.started

	created := make(chan bool)
	go func() { created <- ctrl.Create(ctx, model.SkillDraft{Name: "new", Level: "Expert"}) }()
	<-api.started
	close(api.gates[1])
	if !<-created {
		t.Fatal("Create failed")
	}

	close(api.gates[0])
	<-done

	items := ctrl.Items()
	if len(items) != 2 {
		t.Fatalf("items = %+v, want the post-create list", items)
	}
}

func TestMutationsAreSerialized(t *testing.T) {
	api := newGated(`[{"id":"1","nome":"Go","nivel":"Expert"}]`, `[]`)
	close(api.gates[0])
	close(api.gates[1])
	api.gateMutations(2)
	ctrl := newTestController(api)
	ctx := context.Background()

	created := make(chan bool, 1)
	deleted := make(chan bool, 1)
	go func() { created <- ctrl.Create(ctx, model.SkillDraft{Name: "Go", Level: "Expert"}) }()
	if op := <-api.mutStarted; op != "create" {
		t.Fatalf("first call = %s, want create", op)
	}
	go func() { deleted <- ctrl.Delete(ctx, model.ID("1")) }()
	waitFor(t, func() bool { return ctrl.inFlight() == 2 })

	select {
	case op := <-api.mutStarted:
		t.Fatalf("%s reached the API before create finished", op)
	case <-time.After(50 * time.Millisecond):
	}
	if !ctrl.IsLoading() {
		t.Error("IsLoading false while create is in flight")
	}

	close(api.mutGates[0])
	if !<-created {
		t.Fatal("Create failed")
	}
	if op := <-api.mutStarted; op != "delete" {
		t.Fatalf("second call = %s, want delete", op)
	}
	if !ctrl.IsLoading() {
		t.Error("IsLoading false while delete is in flight")
	}

	close(api.mutGates[1])
	if !<-deleted {
		t.Fatal("Delete failed")
	}
	if ctrl.IsLoading() {
		t.Error("IsLoading true after both mutations returned")
	}
	if n := api.listCalls(); n != 2 {
		t.Errorf("List calls = %d, want one reload per mutation", n)
	}
	if len(ctrl.Items()) != 0 {
		t.Errorf("items = %+v, want the post-delete list", ctrl.Items())
	}
}

func TestCanceledLeaderDoesNotFailFollower(t *testing.T) {
	api := newGated(`[{"id":"1","nome":"Go","nivel":"Expert"}]`)
	ctrl := newTestController(api)

	leaderCtx, cancel := context.WithCancel(context.Background())
	leader := make(chan bool, 1)
	go func() { leader <- ctrl.Load(leaderCtx) }()
	<-api.started

	follower := make(chan bool, 1)
	go func() { follower <- ctrl.Load(context.Background()) }()
	// leader, follower and the shared fetch
	waitFor(t, func() bool { return ctrl.inFlight() == 3 })

	cancel()
	if <-leader {
		t.Error("canceled leader reported success")
	}
	close(api.gates[0])
	if !<-follower {
		t.Fatal("follower failed after the leader was canceled")
	}
	if n := api.listCalls(); n != 1 {
		t.Errorf("List calls = %d, want 1", n)
	}
	if len(ctrl.Items()) != 1 {
		t.Errorf("items = %+v", ctrl.Items())
	}
}
