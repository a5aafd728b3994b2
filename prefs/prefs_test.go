package prefs_test

import (
	"path/filepath"
	"testing"

	"github.com/gba-core/gba/prefs"
)

func TestBoolRoundTrip(t *testing.T) {
	var b prefs.Bool
	b.Set(true)
	if b.Get() != true {
		t.Errorf("expected true, got %v", b.Get())
	}
	b.Set("false")
	if b.Get() != false {
		t.Errorf("expected false, got %v", b.Get())
	}
}

func TestDiskLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.conf")

	var halt prefs.Bool
	halt.Set(true)

	d, err := prefs.NewDisk(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Add("cpu.haltOnUnimplemented", &halt); err != nil {
		t.Fatal(err)
	}
	if err := d.Save(); err != nil {
		t.Fatal(err)
	}

	halt.Set(false)

	d2, err := prefs.NewDisk(path)
	if err != nil {
		t.Fatal(err)
	}
	var halt2 prefs.Bool
	halt2.Set(false)
	if err := d2.Add("cpu.haltOnUnimplemented", &halt2); err != nil {
		t.Fatal(err)
	}
	if err := d2.Load(); err != nil {
		t.Fatal(err)
	}
	if halt2.Get() != true {
		t.Errorf("expected loaded value to be true, got %v", halt2.Get())
	}
}
