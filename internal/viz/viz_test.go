package viz

import (
	"os"
	"path/filepath"
	"testing"

	"qkangaroo/internal/bigrat"
)

func TestPartitionGrowthBuildsAllPoints(t *testing.T) {
	line := PartitionGrowth(10)
	if line == nil {
		t.Fatal("PartitionGrowth returned nil")
	}
}

func TestBaileyChainDepthBuildsAllBars(t *testing.T) {
	one := bigrat.QFromInt64(1)
	bar := BaileyChainDepth(one, one, one, one, 3, 12)
	if bar == nil {
		t.Fatal("BaileyChainDepth returned nil")
	}
}

func TestRenderToFileWritesHTML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "growth.html")
	if err := RenderToFile(path, PartitionGrowth(5)); err != nil {
		t.Fatalf("RenderToFile: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat rendered file: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("rendered HTML file is empty")
	}
}
