package service

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/vinocave/vinocave-backend/internal/app/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Sort keys accepted by the cellar listing
const (
	SortByName    = "name"
	SortByRating  = "rating"
	SortByVintage = "vintage"
	SortByPrice   = "price"
	SortByDate    = "date"
)

// TypeFilterAll passes every record through the type filter
const TypeFilterAll = "all"

// CellarEntry is the denormalized view the cellar listing operates on:
// the ownership row joined with its wine, plus the latest tasting
// rating and date.
type CellarEntry struct {
	model.CellarWine
	Rating      int        `json:"rating"`
	TastingDate *time.Time `json:"tasting_date,omitempty"`
}

// FilterCellarEntries returns the entries matching the search term and
// the type filter. The search matches case-insensitively (accents
// folded) against name, region and winery; an empty term matches
// everything. The input slice is never mutated.
func FilterCellarEntries(entries []CellarEntry, search, typeFilter string) []CellarEntry {
	term := foldSearchText(search)

	out := make([]CellarEntry, 0, len(entries))
	for _, entry := range entries {
		if !matchesSearch(entry, term) {
			continue
		}
		if typeFilter != "" && typeFilter != TypeFilterAll && string(entry.Wine.Type) != typeFilter {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// SortCellarEntries returns a sorted copy of the entries. The sort is
// stable, so repeated sorting with the same key is idempotent. An
// unknown key leaves the order untouched.
func SortCellarEntries(entries []CellarEntry, sortBy string) []CellarEntry {
	out := make([]CellarEntry, len(entries))
	copy(out, entries)

	switch sortBy {
	case SortByName:
		// Locale-aware, ascending
		collator := collate.New(language.French, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return collator.CompareString(out[i].Wine.Name, out[j].Wine.Name) < 0
		})
	case SortByRating:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	case SortByVintage:
		// Descending lexicographic string comparison, kept for
		// compatibility: "2020" vs "9" compares as strings.
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Wine.Vintage > out[j].Wine.Vintage
		})
	case SortByPrice:
		sort.SliceStable(out, func(i, j int) bool {
			return ParsePrice(out[i].Wine.Price) < ParsePrice(out[j].Wine.Price)
		})
	case SortByDate:
		sort.SliceStable(out, func(i, j int) bool {
			return effectiveDate(out[i]).After(effectiveDate(out[j]))
		})
	}
	return out
}

// FilterAndSortCellar applies the search, the type filter and the sort
// in one pass over the denormalized collection
func FilterAndSortCellar(entries []CellarEntry, search, typeFilter, sortBy string) []CellarEntry {
	return SortCellarEntries(FilterCellarEntries(entries, search, typeFilter), sortBy)
}

// ParsePrice turns a free-text price ("€45", "$12.50") into a number
// by stripping currency symbols. Malformed prices parse to +Inf so they
// sort after every valid price instead of landing in an unspecified
// position.
func ParsePrice(price string) float64 {
	cleaned := strings.TrimSpace(strings.NewReplacer("€", "", "$", "").Replace(price))
	if cleaned == "" {
		return math.Inf(1)
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return math.Inf(1)
	}
	return value
}

func matchesSearch(entry CellarEntry, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(foldSearchText(entry.Wine.Name), term) ||
		strings.Contains(foldSearchText(entry.Wine.Region), term) ||
		strings.Contains(foldSearchText(entry.Wine.Winery), term)
}

// foldSearchText lowercases and strips combining marks, so "Albariño"
// matches both "albariño" and "albarino"
func foldSearchText(s string) string {
	decomposed := norm.NFD.String(strings.ToLower(strings.TrimSpace(s)))
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func effectiveDate(entry CellarEntry) time.Time {
	if entry.TastingDate != nil {
		return *entry.TastingDate
	}
	return entry.CreatedAt
}
