package service

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vinocave/vinocave-backend/internal/app/model"
)

func entry(name string, wineType model.WineType, opts func(*CellarEntry)) CellarEntry {
	e := CellarEntry{
		CellarWine: model.CellarWine{
			Wine: model.Wine{
				Name: name,
				Type: wineType,
			},
		},
	}
	if opts != nil {
		opts(&e)
	}
	return e
}

func testCollection() []CellarEntry {
	return []CellarEntry{
		entry("Zinfandel Old Vine", model.TypeRed, func(e *CellarEntry) {
			e.Wine.Region = "Lodi"
			e.Wine.Winery = "Ravenswood"
			e.Wine.Vintage = "2019"
			e.Wine.Price = "€450"
			e.Rating = 3
		}),
		entry("Albariño Rías Baixas", model.TypeWhite, func(e *CellarEntry) {
			e.Wine.Region = "Galice"
			e.Wine.Winery = "Pazo de Señorans"
			e.Wine.Vintage = "2022"
			e.Wine.Price = "€85"
			e.Rating = 5
		}),
		entry("Châteauneuf-du-Pape", model.TypeRed, func(e *CellarEntry) {
			e.Wine.Region = "Rhône"
			e.Wine.Winery = "Domaine du Vieux Télégraphe"
			e.Wine.Vintage = "2020"
			e.Wine.Price = "€200"
			e.Rating = 4
		}),
	}
}

func TestFilterCellarEntries(t *testing.T) {
	entries := testCollection()

	t.Run("empty search matches everything", func(t *testing.T) {
		out := FilterCellarEntries(entries, "", "")
		assert.Len(t, out, 3)
	})

	t.Run("search is case-insensitive on name", func(t *testing.T) {
		out := FilterCellarEntries(entries, "ZINFANDEL", "")
		assert.Len(t, out, 1)
		assert.Equal(t, "Zinfandel Old Vine", out[0].Wine.Name)
	})

	t.Run("search folds accents", func(t *testing.T) {
		out := FilterCellarEntries(entries, "albarino", "")
		assert.Len(t, out, 1)
		assert.Equal(t, "Albariño Rías Baixas", out[0].Wine.Name)
	})

	t.Run("search matches region and winery", func(t *testing.T) {
		byRegion := FilterCellarEntries(entries, "rhone", "")
		assert.Len(t, byRegion, 1)
		assert.Equal(t, "Châteauneuf-du-Pape", byRegion[0].Wine.Name)

		byWinery := FilterCellarEntries(entries, "ravenswood", "")
		assert.Len(t, byWinery, 1)
		assert.Equal(t, "Zinfandel Old Vine", byWinery[0].Wine.Name)
	})

	t.Run("type filter all passes everything", func(t *testing.T) {
		out := FilterCellarEntries(entries, "", TypeFilterAll)
		assert.Len(t, out, 3)
	})

	t.Run("type filter narrows to one type", func(t *testing.T) {
		out := FilterCellarEntries(entries, "", "red")
		assert.Len(t, out, 2)
		for _, e := range out {
			assert.Equal(t, model.TypeRed, e.Wine.Type)
		}
	})

	t.Run("search and type combine", func(t *testing.T) {
		out := FilterCellarEntries(entries, "zinfandel", "white")
		assert.Empty(t, out)
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		before := entries[0].Wine.Name
		FilterCellarEntries(entries, "albarino", "white")
		assert.Equal(t, before, entries[0].Wine.Name)
		assert.Len(t, entries, 3)
	})
}

func TestSortCellarEntries(t *testing.T) {
	t.Run("name sorts ascending with locale rules", func(t *testing.T) {
		out := SortCellarEntries(testCollection(), SortByName)
		assert.Equal(t, "Albariño Rías Baixas", out[0].Wine.Name)
		assert.Equal(t, "Châteauneuf-du-Pape", out[1].Wine.Name)
		assert.Equal(t, "Zinfandel Old Vine", out[2].Wine.Name)
	})

	t.Run("name sort ignores case", func(t *testing.T) {
		entries := []CellarEntry{
			entry("merlot", model.TypeRed, nil),
			entry("Barolo", model.TypeRed, nil),
		}
		out := SortCellarEntries(entries, SortByName)
		assert.Equal(t, "Barolo", out[0].Wine.Name)
		assert.Equal(t, "merlot", out[1].Wine.Name)
	})

	t.Run("rating sorts descending", func(t *testing.T) {
		out := SortCellarEntries(testCollection(), SortByRating)
		assert.Equal(t, 5, out[0].Rating)
		assert.Equal(t, 4, out[1].Rating)
		assert.Equal(t, 3, out[2].Rating)
	})

	t.Run("vintage sorts descending as strings", func(t *testing.T) {
		out := SortCellarEntries(testCollection(), SortByVintage)
		assert.Equal(t, "2022", out[0].Wine.Vintage)
		assert.Equal(t, "2020", out[1].Wine.Vintage)
		assert.Equal(t, "2019", out[2].Wine.Vintage)
	})

	t.Run("price sorts ascending on the numeric value", func(t *testing.T) {
		out := SortCellarEntries(testCollection(), SortByPrice)
		assert.Equal(t, "€85", out[0].Wine.Price)
		assert.Equal(t, "€200", out[1].Wine.Price)
		assert.Equal(t, "€450", out[2].Wine.Price)
	})

	t.Run("unparseable prices sort last", func(t *testing.T) {
		entries := testCollection()
		entries = append(entries, entry("Mystery Bottle", model.TypeRed, func(e *CellarEntry) {
			e.Wine.Price = "sur demande"
		}))
		out := SortCellarEntries(entries, SortByPrice)
		assert.Equal(t, "Mystery Bottle", out[3].Wine.Name)
	})

	t.Run("date sorts descending, tasting date before added date", func(t *testing.T) {
		now := time.Now()
		old := now.Add(-72 * time.Hour)
		recent := now.Add(-time.Hour)

		entries := []CellarEntry{
			entry("Added Long Ago", model.TypeRed, func(e *CellarEntry) {
				e.CreatedAt = old
			}),
			entry("Tasted Recently", model.TypeRed, func(e *CellarEntry) {
				e.CreatedAt = old.Add(-time.Hour)
				e.TastingDate = &recent
			}),
		}
		out := SortCellarEntries(entries, SortByDate)
		assert.Equal(t, "Tasted Recently", out[0].Wine.Name)
	})

	t.Run("sort is stable on ties", func(t *testing.T) {
		entries := []CellarEntry{
			entry("First In", model.TypeRed, func(e *CellarEntry) { e.Rating = 4 }),
			entry("Second In", model.TypeRed, func(e *CellarEntry) { e.Rating = 4 }),
			entry("Third In", model.TypeRed, func(e *CellarEntry) { e.Rating = 4 }),
		}
		out := SortCellarEntries(entries, SortByRating)
		assert.Equal(t, "First In", out[0].Wine.Name)
		assert.Equal(t, "Second In", out[1].Wine.Name)
		assert.Equal(t, "Third In", out[2].Wine.Name)
	})

	t.Run("unknown key leaves order untouched", func(t *testing.T) {
		entries := testCollection()
		out := SortCellarEntries(entries, "bogus")
		for i := range entries {
			assert.Equal(t, entries[i].Wine.Name, out[i].Wine.Name)
		}
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		entries := testCollection()
		first := entries[0].Wine.Name
		SortCellarEntries(entries, SortByName)
		assert.Equal(t, first, entries[0].Wine.Name)
	})
}

func TestFilterAndSortCellar(t *testing.T) {
	out := FilterAndSortCellar(testCollection(), "", "red", SortByPrice)
	assert.Len(t, out, 2)
	assert.Equal(t, "Châteauneuf-du-Pape", out[0].Wine.Name)
	assert.Equal(t, "Zinfandel Old Vine", out[1].Wine.Name)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		expected float64
	}{
		{"euro symbol stripped", "€45", 45},
		{"dollar symbol stripped", "$12.50", 12.5},
		{"plain number", "200", 200},
		{"surrounding spaces", " €85 ", 85},
		{"empty", "", math.Inf(1)},
		{"not a number", "sur demande", math.Inf(1)},
		{"mixed text", "45 euros", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePrice(tt.price))
		})
	}
}
