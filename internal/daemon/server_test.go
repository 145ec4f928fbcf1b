package daemon

import (
	"context"
	"testing"

	"github.com/sebaraj/mcis-engine/pkg/engine"
	"github.com/sebaraj/mcis-engine/pkg/graphio"
)

func TestAlgorithmFromString(t *testing.T) {
	cases := map[string]engine.Algorithm{
		"bron-kerbosch":        engine.BronKerboschSerial,
		"bron-kerbosch-serial": engine.BronKerboschSerial,
		"bk":                   engine.BronKerboschSerial,
		"kpt":                  engine.KPT,
	}
	for name, want := range cases {
		got, ok := algorithmFromString(name)
		if !ok || got != want {
			t.Fatalf("algorithmFromString(%q) = (%v, %v), want (%v, true)", name, got, ok, want)
		}
	}
	if _, ok := algorithmFromString("nonsense"); ok {
		t.Fatal("expected algorithmFromString to reject an unknown name")
	}
}

func TestContentHashStableAndSensitive(t *testing.T) {
	req1 := runRequest{Algorithm: "kpt", Graphs: []graphio.Document{{Nodes: []graphio.NodeSpec{{ID: "A"}}}}}
	req2 := runRequest{Algorithm: "kpt", Graphs: []graphio.Document{{Nodes: []graphio.NodeSpec{{ID: "A"}}}}}
	req3 := runRequest{Algorithm: "bk", Graphs: []graphio.Document{{Nodes: []graphio.NodeSpec{{ID: "A"}}}}}

	if contentHash(req1) != contentHash(req2) {
		t.Fatal("expected identical requests to hash the same")
	}
	if contentHash(req1) == contentHash(req3) {
		t.Fatal("expected a different algorithm to change the hash")
	}
}

func TestBuildGraphsPropagatesError(t *testing.T) {
	docs := []graphio.Document{{Edges: []graphio.EdgeSpec{{From: "A", To: "B"}}}}
	if _, err := buildGraphs(docs); err == nil {
		t.Fatal("expected an error for an edge referencing nodes never declared")
	}
}

func TestNullCacheAndAuditLog(t *testing.T) {
	ctx := context.Background()
	var c ResultCache = NullCache{}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("expected a miss with no error, got hit=%v err=%v", hit, err)
	}
	if err := c.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("expected Set to succeed, got %v", err)
	}

	var a AuditLog = NullAuditLog{}
	if err := a.Record(ctx, RunRecord{}); err != nil {
		t.Fatalf("expected Record to succeed, got %v", err)
	}
}
