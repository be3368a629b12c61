package state

import (
	"testing"

	"github.com/nathoo/tink/engine/epic"
	"github.com/nathoo/tink/types"
)

func TestDefault(t *testing.T) {
	d := Default()
	if len(d.Archetypes) != 22 || len(d.Threads) != 30 || len(d.Epics) != 12 {
		t.Errorf("defaults = %d archetypes, %d threads, %d epics",
			len(d.Archetypes), len(d.Threads), len(d.Epics))
	}
}

func TestMerge(t *testing.T) {
	base := &Defs{
		Threads: []types.Thread{{Name: "Ember", Rarity: "common"}, {Name: "Glacier"}},
		Epics:   []types.EpicDef{{Name: "Old"}},
	}
	pack := &Defs{
		Threads: []types.Thread{{Name: "ember", Rarity: "rare"}, {Name: "Moss"}},
		Archetypes: []types.ArchetypeDef{
			{Name: "Bog", Tier: "common"},
		},
	}
	got := Merge(base, pack)

	if len(got.Threads) != 3 {
		t.Fatalf("threads = %d, want 3", len(got.Threads))
	}
	if got.Threads[0].Rarity != "rare" {
		t.Errorf("Ember was not replaced in place: %+v", got.Threads[0])
	}
	if got.Threads[2].Name != "Moss" {
		t.Errorf("new thread not appended: %+v", got.Threads)
	}
	if len(got.Archetypes) != 1 || len(got.Epics) != 1 {
		t.Errorf("archetypes = %d, epics = %d", len(got.Archetypes), len(got.Epics))
	}
	if base.Threads[0].Rarity != "common" {
		t.Error("base was modified")
	}

	if Merge(base, nil) != base {
		t.Error("nil pack should return base")
	}
}

func TestNewState(t *testing.T) {
	s := NewState(types.TierHex, 7, epic.Projections())
	if s.Tier != types.TierHex || s.RNGSeed != 7 {
		t.Errorf("state = %+v", s)
	}
	if !IsUnlocked(s, epic.ProjectionTapestry) {
		t.Error("tapestry should start unlocked")
	}
	if IsUnlocked(s, epic.ProjectionHeroic) {
		t.Error("heroic should start locked")
	}
}

func TestUnlock(t *testing.T) {
	ps := epic.Projections()
	s := NewState(types.TierHex, 0, ps)

	s.Weaves = 4
	if got := Unlock(s, ps); len(got) != 0 {
		t.Errorf("unlocked %d projections at 4 weaves", len(got))
	}

	s.Weaves = 5
	got := Unlock(s, ps)
	if len(got) != 1 || got[0].ID != epic.ProjectionHeroic {
		t.Fatalf("unlocked = %+v, want heroic", got)
	}
	if got := Unlock(s, ps); len(got) != 0 {
		t.Error("heroic unlocked twice")
	}

	s.Weaves = 20
	if got := Unlock(s, ps); len(got) != 2 {
		t.Errorf("unlocked %d at 20 weaves, want 2", len(got))
	}

	applied := ApplyUnlocks(s, ps)
	for _, p := range applied {
		if !p.Unlocked {
			t.Errorf("%s not applied", p.ID)
		}
	}
	if ps[1].Unlocked {
		t.Error("ApplyUnlocks modified its input")
	}
}

func TestHand(t *testing.T) {
	s := NewState(types.TierHex, 0, nil)
	s.Hand = []types.Thread{{Name: "Ember"}, {Name: "Joy"}, {Name: "Void"}}

	if !InHand(s, "Joy") || InHand(s, "Fury") {
		t.Error("InHand wrong")
	}
	th, ok := RemoveFromHand(s, "Joy")
	if !ok || th.Name != "Joy" {
		t.Fatalf("RemoveFromHand = %+v, %v", th, ok)
	}
	if len(s.Hand) != 2 || s.Hand[1].Name != "Void" {
		t.Errorf("hand = %+v", s.Hand)
	}
	if _, ok := RemoveFromHand(s, "Joy"); ok {
		t.Error("removed Joy twice")
	}
}
