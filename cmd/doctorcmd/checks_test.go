// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.
package doctorcmd

import (
	"io"
	"testing"
)

// newTestDoctor creates a doctor instance with output redirected to discard
func newTestDoctor(fixMode bool) *Doctor {
	d := NewDoctor(nil, fixMode)
	d.output = io.Discard
	return d
}

func TestNewDoctor(t *testing.T) {
	d := newTestDoctor(false)

	if d == nil {
		t.Fatal("NewDoctor returned nil")
	}
	if d.fixMode != false {
		t.Errorf("fixMode = %v, want false", d.fixMode)
	}
	if d.results == nil {
		t.Error("results slice is nil")
	}
	if len(d.results) != 0 {
		t.Errorf("results length = %d, want 0", len(d.results))
	}

	d2 := newTestDoctor(true)
	if d2.fixMode != true {
		t.Errorf("fixMode = %v, want true", d2.fixMode)
	}
}

func TestCheckExecutable(t *testing.T) {
	d := newTestDoctor(false)
	d.checkExecutable()

	if len(d.results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(d.results))
	}

	result := d.results[0]
	if result.Name != "Executable" {
		t.Errorf("result.Name = %q, want %q", result.Name, "Executable")
	}
	if result.Status == StatusError {
		t.Errorf("executable check returned error: %s", result.Message)
	}
}

func TestCheckDirectories(t *testing.T) {
	d := newTestDoctor(false)
	d.checkDirectories()

	if len(d.results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(d.results))
	}

	result := d.results[0]
	if result.Name != "CLI Directories" {
		t.Errorf("result.Name = %q, want %q", result.Name, "CLI Directories")
	}
	t.Logf("directories status: %d, message: %s", result.Status, result.Message)
}

func TestCheckSettingsWithoutApp(t *testing.T) {
	d := newTestDoctor(false)
	d.checkSettings()

	if len(d.results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(d.results))
	}
	if d.results[0].Name != "Settings" {
		t.Errorf("result.Name = %q, want %q", d.results[0].Name, "Settings")
	}
	if d.results[0].Status != StatusWarn {
		t.Errorf("status = %d, want StatusWarn", d.results[0].Status)
	}
}

func TestCheckProfilesWithoutApp(t *testing.T) {
	d := newTestDoctor(false)
	profiles := d.checkProfiles()

	if profiles != nil {
		t.Error("expected nil profiles with no application context")
	}
	if len(d.results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(d.results))
	}
	if d.results[0].Status != StatusWarn {
		t.Errorf("status = %d, want StatusWarn", d.results[0].Status)
	}
}

func TestCheckDiskSpace(t *testing.T) {
	d := newTestDoctor(false)
	d.checkDiskSpace()

	if len(d.results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(d.results))
	}

	result := d.results[0]
	if result.Name != "Disk Space" {
		t.Errorf("result.Name = %q, want %q", result.Name, "Disk Space")
	}
	t.Logf("disk status: %d, message: %s", result.Status, result.Message)
}

func TestCheckMemory(t *testing.T) {
	d := newTestDoctor(false)
	d.checkMemory()

	if len(d.results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(d.results))
	}

	result := d.results[0]
	if result.Name != "Memory" {
		t.Errorf("result.Name = %q, want %q", result.Name, "Memory")
	}
	t.Logf("memory status: %d, message: %s", result.Status, result.Message)
}
