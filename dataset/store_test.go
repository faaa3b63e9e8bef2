package dataset

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "plots.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func samplePlots() []Plot {
	now := time.Now()
	return []Plot{
		{SrNo: "1", RegionalOffice: "RO PUNE-I", IndustrialArea: "Talegaon", PlotNo: "T-12", AreaSqMeter: 2500.5, PropertyType: "Industrial", ScrapedAt: now},
		{SrNo: "2", RegionalOffice: "RO PUNE-II", IndustrialArea: "Hinjawadi", PlotNo: "H-3", AreaSqMeter: 1200, PropertyType: "Commercial", ScrapedAt: now},
		{SrNo: "3", RegionalOffice: "RO Jalgaon", IndustrialArea: "Bhusaval", PlotNo: "B-7", AreaSqMeter: 4000, PropertyType: "Industrial", ScrapedAt: now},
	}
}

func TestSaveAndLoadAll(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if err := store.Save(ctx, samplePlots()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	plots, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(plots) != 3 {
		t.Fatalf("got %d plots, want 3", len(plots))
	}
	// Ordered by regional office.
	if plots[0].RegionalOffice != "RO Jalgaon" {
		t.Errorf("first plot office = %q", plots[0].RegionalOffice)
	}
	if plots[1].AreaSqMeter != 2500.5 {
		t.Errorf("area = %v, want 2500.5", plots[1].AreaSqMeter)
	}
}

func TestSaveReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if err := store.Save(ctx, samplePlots()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	replacement := []Plot{{SrNo: "1", RegionalOffice: "RO THANE-I", IndustrialArea: "Wagle", PlotNo: "W-1", AreaSqMeter: 900, PropertyType: "Residential"}}
	if err := store.Save(ctx, replacement); err != nil {
		t.Fatalf("Save replacement: %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("Count after replacement = %d, want 1", count)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if err := store.Save(ctx, samplePlots()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats["Industrial"] != 2 || stats["Commercial"] != 1 {
		t.Errorf("unexpected stats: %v", stats)
	}
}

func TestRenderDocument(t *testing.T) {
	doc := RenderDocument(Plot{
		SrNo:           "5",
		RegionalOffice: "RO PUNE-I",
		IndustrialArea: "Chakan",
		PlotNo:         "C-21",
		AreaSqMeter:    3200,
		PropertyType:   "Industrial",
	})

	want := "Regional Office: RO PUNE-I | Industrial Area: Chakan | Plot No: C-21 | Area: 3200.00 sq. meter | Category: Industrial"
	if doc.Content != want {
		t.Errorf("Content = %q\nwant %q", doc.Content, want)
	}
	if doc.ID == "" {
		t.Error("document ID is empty")
	}
	if doc.Metadata["regional_office"] != "RO PUNE-I" {
		t.Errorf("metadata office = %v", doc.Metadata["regional_office"])
	}
	if !strings.Contains(doc.Content, "Chakan") {
		t.Error("content missing industrial area")
	}
}
