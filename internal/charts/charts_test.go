package charts

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/avbelov/countbook/internal/repository"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestPerCategoryRendersPNG(t *testing.T) {
	g := NewGenerator()
	totals := []repository.CategoryTotal{
		{CategoryID: 1, Title: "Food", Amount: 120.5},
		{CategoryID: 0, Title: "", Amount: 33},
	}
	png, err := g.PerCategory("Family (USD), 2024", totals, "Uncategorized", "Total")
	if err != nil {
		t.Fatalf("PerCategory: %v", err)
	}
	if !bytes.HasPrefix(png, pngHeader) {
		t.Fatal("output is not a PNG")
	}
}

func TestPerPeriodRendersPNG(t *testing.T) {
	g := NewGenerator()
	totals := []repository.PeriodTotal{
		{Period: 1, Amount: 10},
		{Period: 2, Amount: 20},
		{Period: 15, Amount: 5},
	}
	png, err := g.PerPeriod("Family (USD), March 2024", totals, strconv.Itoa)
	if err != nil {
		t.Fatalf("PerPeriod: %v", err)
	}
	if !bytes.HasPrefix(png, pngHeader) {
		t.Fatal("output is not a PNG")
	}
}

// A lone bucket yields a flat series (the total bar equals the only category
// bar) and must still render.
func TestSingleBucketRendersPNG(t *testing.T) {
	g := NewGenerator()
	categories := []repository.CategoryTotal{{CategoryID: 1, Title: "Food", Amount: 10}}
	png, err := g.PerCategory("Family (USD), 15 March 2024", categories, "Uncategorized", "Total")
	if err != nil {
		t.Fatalf("PerCategory: %v", err)
	}
	if !bytes.HasPrefix(png, pngHeader) {
		t.Fatal("output is not a PNG")
	}

	periods := []repository.PeriodTotal{{Period: 15, Amount: 10}}
	png, err = g.PerPeriod("Family (USD), March 2024", periods, strconv.Itoa)
	if err != nil {
		t.Fatalf("PerPeriod: %v", err)
	}
	if !bytes.HasPrefix(png, pngHeader) {
		t.Fatal("output is not a PNG")
	}
}

func TestEmptyAggregatesRenderNothing(t *testing.T) {
	g := NewGenerator()
	if png, err := g.PerCategory("t", nil, "u", "t"); err != nil || png != nil {
		t.Fatalf("PerCategory(nil) = (%v, %v)", png, err)
	}
	if png, err := g.PerPeriod("t", nil, strconv.Itoa); err != nil || png != nil {
		t.Fatalf("PerPeriod(nil) = (%v, %v)", png, err)
	}
}
