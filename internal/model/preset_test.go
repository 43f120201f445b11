package model

import "testing"

func TestPresetStore_AddReplacesByName(t *testing.T) {
	store := NewPresetStore()
	s := DefaultSettings()
	s.UnitSize = 8

	first := NewPreset("Cards", "", s, Container{Width: 800, Height: 600})
	store.Add(first)

	s.UnitSize = 16
	store.Add(NewPreset("Cards", "coarser", s, Container{Width: 800, Height: 600}))

	if len(store.Presets) != 1 {
		t.Fatalf("expected 1 preset, got %d", len(store.Presets))
	}
	got := store.FindByName("Cards")
	if got == nil {
		t.Fatal("expected to find preset")
	}
	if got.ID != first.ID {
		t.Errorf("expected ID %s to be kept, got %s", first.ID, got.ID)
	}
	if got.Settings.UnitSize != 16 || got.Description != "coarser" {
		t.Errorf("expected replaced preset, got %+v", got)
	}
}

func TestPresetStore_Remove(t *testing.T) {
	store := NewPresetStore()
	p := NewPreset("A", "", DefaultSettings(), Container{})
	store.Add(p)
	store.Add(NewPreset("B", "", DefaultSettings(), Container{}))

	if !store.Remove(p.ID) {
		t.Fatal("expected Remove to succeed")
	}
	if store.Remove(p.ID) {
		t.Error("expected second Remove to fail")
	}
	if names := store.Names(); len(names) != 1 || names[0] != "B" {
		t.Errorf("expected [B], got %v", names)
	}
}

func TestPreset_ApplyTo(t *testing.T) {
	s := DefaultSettings()
	s.Orientation = Horizontal
	s.UnitSize = 0
	preset := NewPreset("Wide", "", s, Container{Width: 1920, Height: 1080})

	proj := NewProject()
	proj.Items = []Item{NewItem("A", 1, 1, 1)}
	proj.Result = &LayoutResult{}
	preset.ApplyTo(&proj)

	if proj.Settings.Orientation != Horizontal || proj.Settings.UnitSize != 1 {
		t.Errorf("unexpected settings %+v", proj.Settings)
	}
	if proj.Container.Width != 1920 {
		t.Errorf("expected container from preset, got %+v", proj.Container)
	}
	if len(proj.Items) != 1 || proj.Result != nil {
		t.Error("expected items kept and result cleared")
	}
}
