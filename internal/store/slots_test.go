package store

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/roach88/varigen/internal/ir"
)

func TestLoad_MissingSlot(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Load(context.Background(), DefaultKey)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	blob := []byte(`{"lists": [], "variantCount": 1}`)

	rev, err := s.Save(ctx, DefaultKey, blob)
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if rev != 1 {
		t.Errorf("first Save() revision = %d, want 1", rev)
	}

	got, err := s.Load(ctx, DefaultKey)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !bytes.Equal(got, blob) {
		t.Errorf("Load() = %q, want %q", got, blob)
	}

	digest, err := s.Digest(ctx, DefaultKey)
	if err != nil {
		t.Fatalf("Digest() failed: %v", err)
	}
	if digest != ir.StateDigest(blob) {
		t.Errorf("Digest() = %s, want %s", digest, ir.StateDigest(blob))
	}
}

func TestSave_RevisionAdvancesOnlyOnChange(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	steps := []struct {
		data string
		want int64
	}{
		{data: `{"a":1}`, want: 1},
		{data: `{"a":1}`, want: 1},
		{data: `{"a":2}`, want: 2},
		{data: `{"a":2}`, want: 2},
		{data: `{"a":1}`, want: 3},
	}
	for i, step := range steps {
		rev, err := s.Save(ctx, DefaultKey, []byte(step.data))
		if err != nil {
			t.Fatalf("step %d: Save() failed: %v", i, err)
		}
		if rev != step.want {
			t.Errorf("step %d: revision = %d, want %d", i, rev, step.want)
		}
	}

	rev, err := s.Revision(ctx, DefaultKey)
	if err != nil {
		t.Fatalf("Revision() failed: %v", err)
	}
	if rev != 3 {
		t.Errorf("Revision() = %d, want 3", rev)
	}

	got, _ := s.Load(ctx, DefaultKey)
	if string(got) != `{"a":1}` {
		t.Errorf("Load() = %q, want latest data", got)
	}
}

func TestSave_KeysAreIndependent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if _, err := s.Save(ctx, "b", []byte("two")); err != nil {
		t.Fatalf("Save(b) failed: %v", err)
	}
	if _, err := s.Save(ctx, "a", []byte("one")); err != nil {
		t.Fatalf("Save(a) failed: %v", err)
	}

	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys() failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys() = %v, want [a b]", keys)
	}

	got, _ := s.Load(ctx, "a")
	if string(got) != "one" {
		t.Errorf("Load(a) = %q, want %q", got, "one")
	}
}

func TestClear(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if _, err := s.Save(ctx, DefaultKey, []byte("x")); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := s.Clear(ctx, DefaultKey); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if _, err := s.Load(ctx, DefaultKey); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() after Clear() error = %v, want ErrNotFound", err)
	}
	if _, err := s.Revision(ctx, DefaultKey); !errors.Is(err, ErrNotFound) {
		t.Errorf("Revision() after Clear() error = %v, want ErrNotFound", err)
	}

	// Clearing again is fine.
	if err := s.Clear(ctx, DefaultKey); err != nil {
		t.Errorf("second Clear() failed: %v", err)
	}

	// A cleared slot starts over at revision 1.
	rev, err := s.Save(ctx, DefaultKey, []byte("x"))
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if rev != 1 {
		t.Errorf("revision after Clear() = %d, want 1", rev)
	}
}

func TestSave_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := s1.Save(ctx, DefaultKey, []byte("persisted")); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	got, err := s2.Load(ctx, DefaultKey)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if string(got) != "persisted" {
		t.Errorf("Load() = %q, want %q", got, "persisted")
	}
}

func TestSave_CanceledContext(t *testing.T) {
	s := createTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Save(ctx, DefaultKey, []byte("x")); err == nil {
		t.Error("expected error for canceled context")
	}
}
