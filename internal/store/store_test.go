package store

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), DBFileName))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadState_Empty(t *testing.T) {
	s := openTestStore(t)

	data, ok, err := s.LoadState()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Error("ok = true, want false for empty store")
	}
	if data != nil {
		t.Errorf("data = %q, want nil", data)
	}
}

func TestSaveState_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	blob := []byte(`{"finance":{"entries":[]}}`)
	if err := s.SaveState(blob); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, ok, err := s.LoadState()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatal("ok = false, want true")
	}
	if string(data) != string(blob) {
		t.Errorf("data = %s, want %s", data, blob)
	}
}

func TestSaveState_Upserts(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveState([]byte(`{"v":1}`)); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveState([]byte(`{"v":2}`)); err != nil {
		t.Fatal(err)
	}

	data, _, err := s.LoadState()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"v":2}` {
		t.Errorf("data = %s, want the second write", data)
	}
}

func TestOpen_CreatesDataDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", DBFileName)
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.SaveState([]byte("{}")); err != nil {
		t.Errorf("save into created dir: %v", err)
	}
}

func TestOpen_ReopensExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), DBFileName)

	s1, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s1.SaveState([]byte(`{"persisted":true}`)); err != nil {
		t.Fatal(err)
	}
	if err := s1.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = s2.Close() }()

	data, ok, err := s2.LoadState()
	if err != nil || !ok {
		t.Fatalf("load after reopen: ok=%v err=%v", ok, err)
	}
	if string(data) != `{"persisted":true}` {
		t.Errorf("data = %s, want the persisted blob", data)
	}
}
