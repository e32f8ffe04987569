package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/landscape-calculator/internal/catalog"
	"github.com/iwvelando/landscape-calculator/pkg/estimator"
	"go.uber.org/zap"
)

func sampleInput() estimator.Input {
	return estimator.Input{
		AreaSize: 64.5,
		Budget:   catalog.HighEnd,
		Features: map[catalog.Feature]bool{catalog.Tiles: true, catalog.Grill: true, catalog.Pool: false},
	}
}

func assertSameInput(t *testing.T, got, want estimator.Input) {
	t.Helper()
	if got.AreaSize != want.AreaSize || got.Budget != want.Budget {
		t.Errorf("got %+v, expected %+v", got, want)
	}
	for f, on := range want.Features {
		if got.Features[f] != on {
			t.Errorf("feature %s = %v, expected %v", f, got.Features[f], on)
		}
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	if _, err := LoadInputs(s, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := SaveInputs(s, "k", sampleInput()); err != nil {
		t.Fatalf("SaveInputs() error = %v", err)
	}
	got, err := LoadInputs(s, "k")
	if err != nil {
		t.Fatalf("LoadInputs() error = %v", err)
	}
	assertSameInput(t, got, sampleInput())
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "inputs.json")
	s := NewFileStore(path)

	if _, ok := s.Get("missing"); ok {
		t.Fatal("expected missing key on fresh store")
	}
	if err := SaveInputs(s, "a", sampleInput()); err != nil {
		t.Fatalf("SaveInputs() error = %v", err)
	}
	if err := s.Set("b", "other"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// A new instance reads what the first one wrote.
	reopened := NewFileStore(path)
	got, err := LoadInputs(reopened, "a")
	if err != nil {
		t.Fatalf("LoadInputs() error = %v", err)
	}
	assertSameInput(t, got, sampleInput())
	if val, ok := reopened.Get("b"); !ok || val != "other" {
		t.Errorf("Get(b) = %q, %v", val, ok)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inputs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	s := NewFileStore(path)
	if _, ok := s.Get("a"); ok {
		t.Error("corrupt file should read as missing")
	}
	if err := s.Set("a", "b"); err == nil {
		t.Error("expected error writing over corrupt file")
	}
}

func TestLoadInputsCorruptValue(t *testing.T) {
	s := NewMemoryStore()
	_ = s.Set("k", "garbage")
	if _, err := LoadInputs(s, "k"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantType  string
		wantError bool
	}{
		{name: "Memory", cfg: Config{Backend: "memory"}, wantType: "memory"},
		{name: "Default is file", cfg: Config{Path: filepath.Join(t.TempDir(), "x.json")}, wantType: "file"},
		{name: "Redis", cfg: Config{Backend: "REDIS", RedisAddress: "127.0.0.1:1"}, wantType: "redis"},
		{name: "Unknown", cfg: Config{Backend: "s3"}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(zap.NewNop(), tt.cfg)
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			var got string
			switch v := s.(type) {
			case *MemoryStore:
				got = "memory"
			case *FileStore:
				got = "file"
			case *RedisStore:
				got = "redis"
				_ = v.Close()
			}
			if got != tt.wantType {
				t.Errorf("New() returned %T, expected %s", s, tt.wantType)
			}
		})
	}
}

func TestRedisStoreUnreachable(t *testing.T) {
	s := NewRedisStore("127.0.0.1:1")
	defer func() { _ = s.Close() }()

	if _, ok := s.Get("k"); ok {
		t.Error("expected miss when redis is unreachable")
	}
	if err := s.Set("k", "v"); err == nil {
		t.Error("expected error when redis is unreachable")
	}
}

func TestConfigStoreKey(t *testing.T) {
	if got := (Config{}).StoreKey(); got != "landscape_calculator_inputs" {
		t.Errorf("default key = %q", got)
	}
	if got := (Config{Key: "mine"}).StoreKey(); got != "mine" {
		t.Errorf("custom key = %q", got)
	}
}
