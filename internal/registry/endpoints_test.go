package registry

import (
	"sync"
	"testing"

	"github.com/tbourn/go-mock-server/internal/domain"
)

func TestEndpointsInsertGetRemove(t *testing.T) {
	r := NewEndpoints()

	if got := r.Get("/missing"); got != nil {
		t.Fatalf("expected nil for unregistered key, got %+v", got)
	}

	desc := &domain.Endpoint{Methods: []string{"GET"}, File: "uploads/a.json"}
	r.Insert("/a", desc)

	got := r.Get("/a")
	if got == nil || got.File != "uploads/a.json" {
		t.Fatalf("lookup after insert returned %+v", got)
	}

	removed := r.Remove("/a")
	if removed == nil || removed.File != "uploads/a.json" {
		t.Fatalf("remove should return the stored descriptor, got %+v", removed)
	}
	if r.Get("/a") != nil {
		t.Fatalf("key should be absent after remove")
	}
	if r.Remove("/a") != nil {
		t.Fatalf("second remove should return nil")
	}
}

func TestEndpointsInsertOverwrites(t *testing.T) {
	r := NewEndpoints()
	r.Insert("/a", &domain.Endpoint{File: "uploads/old.json"})
	r.Insert("/a", &domain.Endpoint{File: "uploads/new.json"})

	if got := r.Get("/a"); got.File != "uploads/new.json" {
		t.Fatalf("insert should overwrite, got %q", got.File)
	}
	if r.Len() != 1 {
		t.Fatalf("overwrite should not grow the table, len=%d", r.Len())
	}
}

func TestEndpointsCloneIsolation(t *testing.T) {
	r := NewEndpoints()
	desc := &domain.Endpoint{Methods: []string{"GET"}}
	r.Insert("/a", desc)

	// Mutating what the caller handed in must not reach the table.
	desc.Methods[0] = "POST"
	if got := r.Get("/a"); got.Methods[0] != "GET" {
		t.Fatalf("caller mutation leaked into registry: %v", got.Methods)
	}

	// Mutating what the table handed out must not reach the table either.
	out := r.Get("/a")
	out.Methods[0] = "DELETE"
	if got := r.Get("/a"); got.Methods[0] != "GET" {
		t.Fatalf("reader mutation leaked into registry: %v", got.Methods)
	}
}

func TestEndpointsSnapshot(t *testing.T) {
	r := NewEndpoints()
	r.Insert("/a", &domain.Endpoint{File: "uploads/a.json"})
	r.Insert("/b", &domain.Endpoint{File: "uploads/b.json"})

	snap := r.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("snapshot size = %d, want 2", len(snap))
	}
	delete(snap, "/a")
	if r.Len() != 2 {
		t.Fatalf("mutating the snapshot must not affect the table")
	}
}

func TestEndpointsConcurrentAccess(t *testing.T) {
	r := NewEndpoints()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Insert("/hot", &domain.Endpoint{File: "uploads/hot.json"})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if d := r.Get("/hot"); d != nil && d.File == "" {
					t.Errorf("observed a partially installed descriptor")
					return
				}
			}
		}()
	}
	wg.Wait()
}
