package alias

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/arthur-debert/stapler/pkg/document"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// LocaleFromEnv picks the collation locale: the configured value when set,
// otherwise the usual POSIX locale variables. Unparseable or C/POSIX
// locales give language.Und.
func LocaleFromEnv(configured string) language.Tag {
	candidates := []string{configured, os.Getenv("LC_ALL"), os.Getenv("LC_COLLATE"), os.Getenv("LANG")}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		return parseLocale(c)
	}
	return language.Und
}

func parseLocale(s string) language.Tag {
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "" || s == "C" || s == "POSIX" {
		return language.Und
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return language.Und
	}
	return tag
}

// Names returns the display names of every alias in doc, in order
func (r *Registry) Names(ctx context.Context, doc *document.Document) []string {
	names := make([]string, doc.Len())
	for i, e := range doc.Entries() {
		names[i] = r.DisplayName(ctx, e)
	}
	return names
}

// Sort orders doc by display name, case-insensitively and with numbers
// compared by value, as file browsers do. Equal names keep their relative
// order. Sorting alone does not make a document dirty.
func (r *Registry) Sort(ctx context.Context, doc *document.Document) {
	names := r.Names(ctx, doc)
	_ = doc.Reorder(SortOrder(r.locale, names))
}

// SortOrder returns the stable permutation that sorts names for locale
func SortOrder(locale language.Tag, names []string) []int {
	// a Collator is not safe for concurrent use, so one per call
	c := collate.New(locale, collate.IgnoreCase, collate.Numeric)

	order := make([]int, len(names))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return c.CompareString(names[order[a]], names[order[b]]) < 0
	})
	return order
}
