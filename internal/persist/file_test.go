package persist

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileGatewayLoadMissingFile(t *testing.T) {
	g := NewFileGateway(filepath.Join(t.TempDir(), "records.toml"))

	values, err := g.Load(context.Background(), HistoryKey)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("expected empty list, got %v", values)
	}
}

func TestFileGatewayRoundTrip(t *testing.T) {
	g := NewFileGateway(filepath.Join(t.TempDir(), "records.toml"))
	ctx := context.Background()

	want := []string{"5+5 = 10", "2*3 = 6"}
	if err := g.Save(ctx, HistoryKey, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := g.Load(ctx, HistoryKey)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFileGatewayKeysIndependent(t *testing.T) {
	g := NewFileGateway(filepath.Join(t.TempDir(), "records.toml"))
	ctx := context.Background()

	if err := g.Save(ctx, HistoryKey, []string{"1+1 = 2"}); err != nil {
		t.Fatalf("save history failed: %v", err)
	}
	if err := g.Save(ctx, FormulasKey, []string{"3*4"}); err != nil {
		t.Fatalf("save formulas failed: %v", err)
	}
	// Overwriting one key must preserve the other.
	if err := g.Save(ctx, HistoryKey, []string{"2+2 = 4"}); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	formulas, err := g.Load(ctx, FormulasKey)
	if err != nil {
		t.Fatalf("load formulas failed: %v", err)
	}
	if len(formulas) != 1 || formulas[0] != "3*4" {
		t.Errorf("formulas = %v, want [3*4]", formulas)
	}

	history, err := g.Load(ctx, HistoryKey)
	if err != nil {
		t.Fatalf("load history failed: %v", err)
	}
	if len(history) != 1 || history[0] != "2+2 = 4" {
		t.Errorf("history = %v, want [2+2 = 4]", history)
	}
}

func TestFileGatewaySaveEmptyList(t *testing.T) {
	g := NewFileGateway(filepath.Join(t.TempDir(), "records.toml"))
	ctx := context.Background()

	if err := g.Save(ctx, HistoryKey, []string{"1+1 = 2"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := g.Save(ctx, HistoryKey, nil); err != nil {
		t.Fatalf("clearing save failed: %v", err)
	}

	got, err := g.Load(ctx, HistoryKey)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
}

func TestFileGatewayCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "records.toml")
	g := NewFileGateway(path)

	if err := g.Save(context.Background(), HistoryKey, []string{"1+1 = 2"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file at %s: %v", path, err)
	}
}

func TestFileGatewayLastWrite(t *testing.T) {
	g := NewFileGateway(filepath.Join(t.TempDir(), "records.toml"))

	if !g.LastWrite().IsZero() {
		t.Error("expected zero LastWrite before any save")
	}
	if err := g.Save(context.Background(), HistoryKey, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if g.LastWrite().IsZero() {
		t.Error("expected LastWrite to be set after save")
	}
}
