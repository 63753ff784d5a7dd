package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wikiflowhq/wikiflow/pkg/funcgraph"
	"github.com/wikiflowhq/wikiflow/pkg/pipeline"
	"github.com/wikiflowhq/wikiflow/pkg/store"
)

// newTestServer builds a server over the graph
// Cat -> Animal -> Life -> Philosophy -> Reality -> Philosophy.
func newTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()

	g := funcgraph.New(map[string]string{
		"Cat":        "Animal",
		"Animal":     "Life",
		"Life":       "Philosophy",
		"Philosophy": "Reality",
		"Reality":    "Philosophy",
	})
	cls := funcgraph.Classify(g)
	target := "Philosophy"

	result := &pipeline.Result{
		RunID:     "test-run",
		GraphHash: "deadbeef",
		Heat:      funcgraph.Heat(g, cls),
		Distances: funcgraph.Distances(g, target),
		Terminals: cls.Terminals(),
	}
	result.Stats = pipeline.Stats{
		NodeCount:     g.NodeCount(),
		EdgeCount:     g.EdgeCount(),
		TerminalCount: cls.TerminalCount(),
		CycleCount:    cls.CycleCount(),
		ReachedCount:  len(result.Distances),
	}

	runs := store.NewMemoryStore()
	srv := httptest.NewServer(NewServer(g, cls, result, target, runs, nil).Handler())
	t.Cleanup(srv.Close)
	return srv, runs
}

// getJSON fetches url and decodes the response body into out.
func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	var body map[string]string
	if status := getJSON(t, srv.URL+"/healthz", &body); status != http.StatusOK {
		t.Fatalf("GET /healthz status = %d, want 200", status)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want %q", body["status"], "ok")
	}
}

func TestStats(t *testing.T) {
	srv, _ := newTestServer(t)

	var body statsResponse
	if status := getJSON(t, srv.URL+"/v1/stats", &body); status != http.StatusOK {
		t.Fatalf("GET /v1/stats status = %d, want 200", status)
	}
	if body.NodeCount != 5 {
		t.Errorf("node_count = %d, want 5", body.NodeCount)
	}
	if body.TerminalCount != 2 {
		t.Errorf("terminal_count = %d, want 2", body.TerminalCount)
	}
	if body.Target != "Philosophy" {
		t.Errorf("target = %q, want Philosophy", body.Target)
	}
}

func TestHeatEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	var body heatResponse
	if status := getJSON(t, srv.URL+"/v1/heat/Philosophy", &body); status != http.StatusOK {
		t.Fatalf("GET /v1/heat status = %d, want 200", status)
	}
	if body.Heat != 4 {
		t.Errorf("heat = %d, want 4", body.Heat)
	}
	if !body.Terminal || !body.InCycle {
		t.Errorf("terminal = %v, in_cycle = %v, want both true", body.Terminal, body.InCycle)
	}
}

func TestHeatUnknownTitle(t *testing.T) {
	srv, _ := newTestServer(t)

	var body errorResponse
	if status := getJSON(t, srv.URL+"/v1/heat/Nope", &body); status != http.StatusNotFound {
		t.Fatalf("GET /v1/heat/Nope status = %d, want 404", status)
	}
	if body.Code != "NODE_NOT_FOUND" {
		t.Errorf("code = %q, want NODE_NOT_FOUND", body.Code)
	}
}

func TestDistanceEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	var body distanceResponse
	if status := getJSON(t, srv.URL+"/v1/distance/Cat", &body); status != http.StatusOK {
		t.Fatalf("GET /v1/distance status = %d, want 200", status)
	}
	if !body.Reachable {
		t.Error("reachable = false, want true")
	}
	if body.Distance != 3 {
		t.Errorf("distance = %d, want 3", body.Distance)
	}
}

func TestPathEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	var body pathResponse
	if status := getJSON(t, srv.URL+"/v1/path/Cat", &body); status != http.StatusOK {
		t.Fatalf("GET /v1/path status = %d, want 200", status)
	}
	want := []string{"Cat", "Animal", "Life", "Philosophy"}
	if len(body.Path) != len(want) {
		t.Fatalf("path = %v, want %v", body.Path, want)
	}
	for i := range want {
		if body.Path[i] != want[i] {
			t.Errorf("path[%d] = %q, want %q", i, body.Path[i], want[i])
		}
	}
	if body.Clicks != 3 {
		t.Errorf("clicks = %d, want 3", body.Clicks)
	}
}

func TestTopEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	var body []topEntry
	if status := getJSON(t, srv.URL+"/v1/top?n=2", &body); status != http.StatusOK {
		t.Fatalf("GET /v1/top status = %d, want 200", status)
	}
	if len(body) != 2 {
		t.Fatalf("top returned %d entries, want 2", len(body))
	}
	// Philosophy and Reality tie at 4; lexicographic order breaks the tie.
	if body[0].Title != "Philosophy" || body[1].Title != "Reality" {
		t.Errorf("top = [%s %s], want [Philosophy Reality]", body[0].Title, body[1].Title)
	}
}

func TestTopRejectsBadN(t *testing.T) {
	srv, _ := newTestServer(t)

	var body errorResponse
	if status := getJSON(t, srv.URL+"/v1/top?n=zero", &body); status != http.StatusBadRequest {
		t.Fatalf("GET /v1/top?n=zero status = %d, want 400", status)
	}
}

func TestRunsEndpoints(t *testing.T) {
	srv, runs := newTestServer(t)

	var empty []*store.Run
	if status := getJSON(t, srv.URL+"/v1/runs", &empty); status != http.StatusOK {
		t.Fatalf("GET /v1/runs status = %d, want 200", status)
	}
	if len(empty) != 0 {
		t.Errorf("runs = %d entries, want 0", len(empty))
	}

	run := &store.Run{ID: "run-1", Target: "Philosophy", CreatedAt: time.Now()}
	if err := runs.Save(context.Background(), run); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	var got store.Run
	if status := getJSON(t, srv.URL+"/v1/runs/run-1", &got); status != http.StatusOK {
		t.Fatalf("GET /v1/runs/run-1 status = %d, want 200", status)
	}
	if got.Target != "Philosophy" {
		t.Errorf("run target = %q, want Philosophy", got.Target)
	}

	var missing errorResponse
	if status := getJSON(t, srv.URL+"/v1/runs/none", &missing); status != http.StatusNotFound {
		t.Fatalf("GET /v1/runs/none status = %d, want 404", status)
	}
}
