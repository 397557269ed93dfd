// Package textsort ordena listados por nombre con collation en español
// ("Ácido" junto a "acetona", "ñ" después de "n").
package textsort

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ByName ordena items in-place usando key como texto a comparar.
// collate.Collator no es seguro para uso concurrente: se crea uno por llamada.
func ByName[T any](items []T, key func(T) string) {
	c := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(key(items[i]), key(items[j])) < 0
	})
}
