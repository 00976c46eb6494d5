package alias

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func sortNames(tag language.Tag, names []string) []string {
	out := make([]string, len(names))
	for k, i := range SortOrder(tag, names) {
		out[k] = names[i]
	}
	return out
}

func TestSortOrder_CaseInsensitive(t *testing.T) {
	got := sortNames(language.English, []string{"banana", "Apple", "cherry"})
	assert.Equal(t, []string{"Apple", "banana", "cherry"}, got)
}

func TestSortOrder_Numeric(t *testing.T) {
	got := sortNames(language.English, []string{"file10.txt", "file2.txt", "file1.txt"})
	assert.Equal(t, []string{"file1.txt", "file2.txt", "file10.txt"}, got)
}

func TestSortOrder_StableForEqualNames(t *testing.T) {
	assert.Equal(t, []int{1, 0, 2}, SortOrder(language.English, []string{"b", "a", "b"}))
}

func TestSort_UnknownNamesSortByName(t *testing.T) {
	r, provider, _ := newTestRegistry()
	doc := docOf(t, r, "/x/zeta", "/x/alpha", "/x/Vanished")
	provider.gone["/x/Vanished"] = true

	r.Sort(context.Background(), doc)

	assert.Equal(t, []string{"alpha", UnknownName, "zeta"}, r.Names(context.Background(), doc))
}

func TestSort_DoesNotDirty(t *testing.T) {
	r, _, _ := newTestRegistry()
	doc := docOf(t, r, "/b", "/a")
	require.NoError(t, doc.Reorder([]int{1, 0}))

	r.Sort(context.Background(), doc)
	assert.False(t, doc.Dirty())
	assert.Equal(t, []string{"a", "b"}, r.Names(context.Background(), doc))
}

func TestLocaleFromEnv(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_COLLATE", "")
	t.Setenv("LANG", "de_DE.UTF-8")

	assert.Equal(t, language.MustParse("de-DE"), LocaleFromEnv(""))
	assert.Equal(t, language.MustParse("sv"), LocaleFromEnv("sv"))

	t.Setenv("LC_ALL", "C")
	assert.Equal(t, language.Und, LocaleFromEnv(""))

	t.Setenv("LC_ALL", "")
	t.Setenv("LANG", "")
	assert.Equal(t, language.Und, LocaleFromEnv(""))
}
