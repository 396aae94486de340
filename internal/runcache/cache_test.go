package runcache_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"passlens/internal/dump"
	"passlens/internal/runcache"
	"passlens/internal/timeline"
)

const snapshotText = `<bb 2> :
x_1 = 3;
return x_1;
`

func testStore() *dump.Store {
	s := dump.NewStore()
	s.Add(dump.Record{Function: "main", Pass: "cfg", Index: 15, Tier: dump.TierGimple, Text: snapshotText})
	s.Add(dump.Record{Function: "main", Pass: "ccp", Index: 33, Tier: dump.TierGimple, Text: snapshotText})
	return s
}

func TestCacheRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c, err := runcache.Open("passlens-test")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	store := testStore()
	digest := runcache.DigestStore(store)
	if _, err := c.Load(digest); !errors.Is(err, runcache.ErrMiss) {
		t.Fatalf("Load before Store = %v, want ErrMiss", err)
	}

	model, _, err := timeline.Build(context.Background(), store, timeline.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	payload := runcache.Summarize(model)
	if err := c.Store(digest, payload); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, err := c.Load(digest)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, payload) {
		t.Fatalf("payload diverged:\n%+v\n%+v", got, payload)
	}
	if len(got.Functions) != 1 || got.Functions[0].Name != "main" {
		t.Fatalf("functions = %+v", got.Functions)
	}
	if len(got.Functions[0].Entries) != 2 {
		t.Fatalf("entries = %+v", got.Functions[0].Entries)
	}
}

func TestDigestTracksContent(t *testing.T) {
	a := runcache.DigestStore(testStore())
	b := runcache.DigestStore(testStore())
	if a != b {
		t.Fatal("identical stores must digest identically")
	}

	changed := testStore()
	changed.Add(dump.Record{Function: "main", Pass: "ccp", Index: 33, Tier: dump.TierGimple, Text: "<bb 2> :\nreturn;\n"})
	if runcache.DigestStore(changed) == a {
		t.Fatal("changed dump text must change the digest")
	}
}

func TestSummarizeMarksFailures(t *testing.T) {
	s := dump.NewStore()
	s.Add(dump.Record{Function: "bad", Pass: "cfg", Index: 15, Tier: dump.TierGimple, Text: "x_1 = 1;\n"})

	model, _, err := timeline.Build(context.Background(), s, timeline.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p := runcache.Summarize(model)
	if len(p.Functions) != 1 {
		t.Fatalf("functions = %+v", p.Functions)
	}
	entries := p.Functions[0].Entries
	if len(entries) != 1 || !entries[0].Failed || entries[0].Failure == "" {
		t.Fatalf("entries = %+v, want a failed marker with a message", entries)
	}
}
