package client

import (
	"sync"
	"testing"
)

func TestMarkerRegistryAddAndSnapshot(t *testing.T) {
	reg := NewMarkerRegistry()

	reg.Add(GroupCrime, Marker{Label: "Theft"})
	reg.Add(GroupCrime, Marker{Label: "Assault"})
	reg.Add(GroupFeedback, Marker{Label: "Well Lit"})

	if got := reg.Count(GroupCrime); got != 2 {
		t.Errorf("Count(crime) = %d, want 2", got)
	}
	if got := reg.Count(GroupFeedback); got != 1 {
		t.Errorf("Count(feedback) = %d, want 1", got)
	}

	snap := reg.Snapshot(GroupCrime)
	snap[0].Label = "mutated"
	if reg.Snapshot(GroupCrime)[0].Label != "Theft" {
		t.Error("Snapshot leaked internal state")
	}
}

func TestMarkerRegistryReplaceGroup(t *testing.T) {
	reg := NewMarkerRegistry()
	reg.Add(GroupFeedback, Marker{Label: "old"})

	reg.ReplaceGroup(GroupFeedback, []Marker{{Label: "a"}, {Label: "b"}})

	snap := reg.Snapshot(GroupFeedback)
	if len(snap) != 2 || snap[0].Label != "a" {
		t.Errorf("ReplaceGroup left %+v", snap)
	}
}

func TestMarkerRegistryClear(t *testing.T) {
	reg := NewMarkerRegistry()
	reg.Add(GroupRoutes, Marker{})
	reg.Add(GroupCrime, Marker{})

	reg.ClearGroup(GroupCrime)
	if reg.Count(GroupCrime) != 0 {
		t.Error("ClearGroup left markers behind")
	}
	if reg.Count(GroupRoutes) != 1 {
		t.Error("ClearGroup touched another group")
	}

	reg.ClearAll()
	if reg.Count(GroupRoutes) != 0 {
		t.Error("ClearAll left markers behind")
	}
}

func TestMarkerRegistryConcurrentAccess(t *testing.T) {
	reg := NewMarkerRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg.Add(GroupCrime, Marker{})
			reg.Snapshot(GroupCrime)
			reg.Count(GroupCrime)
		}()
	}
	wg.Wait()

	if got := reg.Count(GroupCrime); got != 20 {
		t.Errorf("Count = %d after concurrent adds, want 20", got)
	}
}
