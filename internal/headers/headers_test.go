package headers

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
)

func TestWithHeadersNormalizesCase(t *testing.T) {
	h := http.Header{}
	h.Set("X-Atlassian-Token", "abc")

	ctx := WithHeaders(context.Background(), h)
	m := FromContext(ctx)

	if m["x-atlassian-token"] != "abc" {
		t.Fatalf("lowercase lookup failed: %v", m)
	}
	// http.Header canonicalizes on Set; the canonical key must survive too.
	if m["X-Atlassian-Token"] != "abc" {
		t.Fatalf("original-case lookup failed: %v", m)
	}
}

func TestFromContextDefaultsToEmptyMap(t *testing.T) {
	m := FromContext(context.Background())
	if m == nil {
		t.Fatal("expected empty map, got nil")
	}
	if len(m) != 0 {
		t.Fatalf("expected empty map, got %v", m)
	}
}

func TestIsolationAcrossConcurrentInvocations(t *testing.T) {
	// Many interleaved fake invocations with tagged maps; a read inside
	// one invocation must never see another invocation's tag.
	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tag := fmt.Sprintf("tag-%d", i)
			ctx := WithMap(context.Background(), map[string]string{"x-tag": tag})
			for j := 0; j < 50; j++ {
				if got := FromContext(ctx)["x-tag"]; got != tag {
					t.Errorf("cross-contamination: want %q got %q", tag, got)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestKeysRedactsSensitiveNames(t *testing.T) {
	ctx := WithMap(context.Background(), map[string]string{
		"x-atlassian-token": "secretvalue",
		"Authorization":     "Bearer x",
		"User-Agent":        "test",
	})
	for _, k := range Keys(ctx) {
		if k == "x-atlassian-token" || k == "Authorization" || k == "authorization" {
			t.Fatalf("sensitive key leaked: %s", k)
		}
	}
}
