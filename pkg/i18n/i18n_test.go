package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("fr"))
	assert.True(t, IsSupported("en"))

	assert.False(t, IsSupported(""))
	assert.False(t, IsSupported("de"))
	assert.False(t, IsSupported("FR"))
}

func TestTable(t *testing.T) {
	assert.Equal(t, "Ma Cave", Table(LanguageFrench)["cave.title"])
	assert.Equal(t, "My Cave", Table(LanguageEnglish)["cave.title"])

	// Unknown language falls back to the French table
	assert.Equal(t, "Ma Cave", Table(Language("de"))["cave.title"])
}

func TestTableIsACopy(t *testing.T) {
	table := Table(LanguageEnglish)
	assert.Equal(t, "Sold", table["wine.sold"])

	table["wine.sold"] = "mutated"
	assert.Equal(t, "Sold", Table(LanguageEnglish)["wine.sold"])
}

func TestTablesCoverSameKeys(t *testing.T) {
	fr := Table(LanguageFrench)
	en := Table(LanguageEnglish)

	assert.Equal(t, len(fr), len(en))
	for key := range fr {
		_, ok := en[key]
		assert.True(t, ok, "missing english translation for %s", key)
	}
}
