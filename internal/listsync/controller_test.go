package listsync_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Tiliavir/curriculo/internal/apiclient"
	"github.com/Tiliavir/curriculo/internal/listsync"
	"github.com/Tiliavir/curriculo/internal/mockapi"
	"github.com/Tiliavir/curriculo/internal/model"
)

type alert struct{ title, message string }

type recorder struct {
	mu     sync.Mutex
	alerts []alert
}

func (r *recorder) Alert(title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, alert{title, message})
}

func (r *recorder) last() alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.alerts) == 0 {
		return alert{}
	}
	return r.alerts[len(r.alerts)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.alerts)
}

type skillController = listsync.Controller[model.SkillItem, model.SkillDraft]

func setup(t *testing.T) (*mockapi.Server, *skillController, *recorder) {
	t.Helper()
	api := mockapi.New()
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	rec := &recorder{}
	ctrl := listsync.New[model.SkillItem](
		apiclient.NewClient(srv.URL),
		listsync.Config[model.SkillDraft]{
			Resource: apiclient.Resource{Path: "/habilidades", OwnerID: "22"},
			Encode:   model.SkillDraft.Payload,
			Messages: listsync.Messages{Created: "New skill added."},
		},
		rec, nil,
	)
	return api, ctrl, rec
}

func TestRoundTrip(t *testing.T) {
	api, ctrl, rec := setup(t)
	ctx := context.Background()

	ctrl.StartAdding()
	if ok := ctrl.Create(ctx, model.SkillDraft{Name: "Go", Level: "Advanced"}); !ok {
		t.Fatalf("Create failed: %+v", rec.last())
	}
	if got := rec.last(); got.title != listsync.TitleSuccess || got.message != "New skill added." {
		t.Errorf("alert = %+v", got)
	}
	if k := ctrl.Mode().Kind(); k != listsync.Viewing {
		t.Errorf("mode after create = %s, want viewing", k)
	}
	items := ctrl.Items()
	if len(items) != 1 || items[0].Name != "Go" || items[0].ID == "" {
		t.Fatalf("items after create = %+v", items)
	}
	if owner := api.Records("habilidades")[0]["pessoaId"]; owner != "22" {
		t.Errorf("pessoaId = %v, want 22", owner)
	}

	id := items[0].ID
	ctrl.StartEditing(items[0])
	if ok := ctrl.Update(ctx, id, model.SkillDraft{Name: "Go", Level: "Expert"}); !ok {
		t.Fatalf("Update failed: %+v", rec.last())
	}
	if k := ctrl.Mode().Kind(); k != listsync.Viewing {
		t.Errorf("mode after update = %s, want viewing", k)
	}
	got, ok := ctrl.Find(id)
	if !ok || got.Level != "Expert" {
		t.Errorf("Find(%s) = %+v, %v", id, got, ok)
	}

	ctrl.ToggleDeleting()
	if err := ctrl.RequestDelete(got); err != nil {
		t.Fatalf("RequestDelete: %v", err)
	}
	if ok := ctrl.ConfirmDelete(ctx); !ok {
		t.Fatalf("ConfirmDelete failed: %+v", rec.last())
	}
	if n := len(ctrl.Items()); n != 0 {
		t.Errorf("items after delete = %d, want 0", n)
	}
	if k := ctrl.Mode().Kind(); k != listsync.Viewing {
		t.Errorf("mode after delete = %s, want viewing", k)
	}
	if ctrl.IsLoading() {
		t.Error("IsLoading still true after all operations")
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	api, ctrl, _ := setup(t)
	api.Seed("habilidades",
		mockapi.Record{"id": 1, "nome": "Go", "nivel": "Expert"},
		mockapi.Record{"id": 2, "nome": "SQL", "nivel": "Basic"},
	)
	ctx := context.Background()
	if !ctrl.Load(ctx) {
		t.Fatal("first Load failed")
	}
	first := ctrl.Items()
	if !ctrl.Load(ctx) {
		t.Fatal("second Load failed")
	}
	second := ctrl.Items()
	if len(first) != 2 || len(first) != len(second) {
		t.Fatalf("lengths %d / %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("item %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
	if first[0].ID != "1" {
		t.Errorf("numeric id decoded as %q", first[0].ID)
	}
}

func TestCreateServerErrorHTML(t *testing.T) {
	api, ctrl, rec := setup(t)
	api.FailNext(http.MethodPost, http.StatusInternalServerError, "<!DOCTYPE html><html><body>TypeError</body></html>")

	if ok := ctrl.Create(context.Background(), model.SkillDraft{Name: "Go", Level: "Basic"}); ok {
		t.Fatal("Create succeeded on a 500")
	}
	got := rec.last()
	if got.title != listsync.TitleError || got.message != apiclient.MsgServerError {
		t.Errorf("alert = %+v, want generic server error", got)
	}
	if n := api.Requests(http.MethodGet); n != 0 {
		t.Errorf("failed create reloaded the list (%d GETs)", n)
	}
}

func TestStructuredErrorMessage(t *testing.T) {
	api, ctrl, rec := setup(t)
	api.FailNext(http.MethodPut, http.StatusBadRequest, `{"message":"nivel inválido"}`)
	if ctrl.Update(context.Background(), "x", model.SkillDraft{Name: "Go", Level: "?"}) {
		t.Fatal("Update succeeded on a 400")
	}
	if got := rec.last().message; got != "nivel inválido" {
		t.Errorf("message = %q", got)
	}
}

func TestDeleteResetsModeOnSuccessAndFailure(t *testing.T) {
	api, ctrl, rec := setup(t)
	ids := api.Seed("habilidades", mockapi.Record{"nome": "Go", "nivel": "Expert"})
	ctx := context.Background()
	ctrl.Load(ctx)

	ctrl.ToggleDeleting()
	api.FailNext(http.MethodDelete, http.StatusInternalServerError, "")
	if ctrl.Delete(ctx, model.ID(ids[0])) {
		t.Fatal("Delete succeeded on a 500")
	}
	if k := ctrl.Mode().Kind(); k != listsync.Viewing {
		t.Errorf("mode after failed delete = %s, want viewing", k)
	}
	if len(ctrl.Items()) != 1 {
		t.Error("failed delete changed the list")
	}

	ctrl.ToggleDeleting()
	if !ctrl.Delete(ctx, model.ID(ids[0])) {
		t.Fatalf("Delete with 204 failed: %+v", rec.last())
	}
	if k := ctrl.Mode().Kind(); k != listsync.Viewing {
		t.Errorf("mode after delete = %s, want viewing", k)
	}
	if len(ctrl.Items()) != 0 {
		t.Error("list not reloaded after delete")
	}
}

func TestLoadFailureKeepsList(t *testing.T) {
	api, ctrl, rec := setup(t)
	api.Seed("habilidades", mockapi.Record{"nome": "Go", "nivel": "Expert"})
	ctx := context.Background()
	ctrl.Load(ctx)

	api.FailNext(http.MethodGet, http.StatusBadGateway, "Bad Gateway")
	if ctrl.Load(ctx) {
		t.Fatal("Load succeeded on a 502")
	}
	if got := rec.last(); got.title != listsync.TitleLoadFailed || got.message != apiclient.MsgServerError {
		t.Errorf("alert = %+v", got)
	}
	if len(ctrl.Items()) != 1 {
		t.Error("failed load cleared the list")
	}
}

func TestCanceledLoadIsSilent(t *testing.T) {
	_, ctrl, rec := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if ctrl.Load(ctx) {
		t.Fatal("Load succeeded with a canceled context")
	}
	if n := rec.count(); n != 0 {
		t.Errorf("alerts = %d, want 0", n)
	}
}

func TestModeTransitions(t *testing.T) {
	_, ctrl, _ := setup(t)
	item := model.SkillItem{ID: "1", Name: "Go"}

	if err := ctrl.RequestDelete(item); err != listsync.ErrNotDeleting {
		t.Errorf("RequestDelete in viewing = %v, want ErrNotDeleting", err)
	}

	ctrl.StartEditing(item)
	if got, ok := ctrl.Mode().Item(); !ok || got.ID != "1" {
		t.Errorf("editing item = %+v, %v", got, ok)
	}

	ctrl.ToggleDeleting()
	if k := ctrl.Mode().Kind(); k != listsync.Deleting {
		t.Fatalf("after ToggleDeleting = %s", k)
	}
	if _, ok := ctrl.Mode().Item(); ok {
		t.Error("delete mode should not carry an item")
	}
	if err := ctrl.RequestDelete(item); err != nil {
		t.Fatalf("RequestDelete: %v", err)
	}
	ctrl.Cancel()
	if k := ctrl.Mode().Kind(); k != listsync.Deleting {
		t.Errorf("cancel confirmation -> %s, want deleting", k)
	}
	ctrl.Cancel()
	if k := ctrl.Mode().Kind(); k != listsync.Viewing {
		t.Errorf("cancel delete mode -> %s, want viewing", k)
	}

	ctrl.StartAdding()
	ctrl.ToggleDeleting()
	ctrl.ToggleDeleting()
	if k := ctrl.Mode().Kind(); k != listsync.Viewing {
		t.Errorf("double toggle -> %s, want viewing", k)
	}
	if ctrl.ConfirmDelete(context.Background()) {
		t.Error("ConfirmDelete outside confirmation succeeded")
	}
}
