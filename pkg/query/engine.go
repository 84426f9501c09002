// Package query implementa o filtro, a ordenação e a paginação compartilhados
// por todos os endpoints de listagem.
//
// As funções operam sobre mapeamentos de wire (map[string]interface{}), de modo
// que sort_by e filter sempre se referem aos nomes de campo expostos pela API.
package query

import (
	"slices"
	"strings"
)

// Item é o mapeamento de wire de uma entidade.
type Item = map[string]interface{}

// FilterField é o campo usado pelo filtro de substring.
const FilterField = "name"

// Params são os parâmetros de uma listagem. First e Last são posições 1-based inclusivas.
type Params struct {
	First   int
	Last    int
	SortBy  string
	SortAsc bool
	Filter  string
}

// DefaultParams devolve first=1, last=50, ordem ascendente, sem filtro.
func DefaultParams() Params {
	return Params{First: 1, Last: 50, SortAsc: true}
}

// Serialize converte cada entidade no seu mapeamento de wire.
func Serialize[T any](entities []T, toJSON func(T) Item) []Item {
	out := make([]Item, 0, len(entities))
	for _, e := range entities {
		out = append(out, toJSON(e))
	}
	return out
}

// Run aplica filtro, ordenação e paginação e devolve a página junto com o
// total de itens que passaram no filtro (antes da paginação).
func Run(items []Item, p Params) ([]Item, int) {
	filtered := Filter(items, p.Filter)
	Sort(filtered, p.SortBy, p.SortAsc)
	return Paginate(filtered, p.First, p.Last), len(filtered)
}

// Filter mantém os itens cujo campo "name" contém term, sem diferenciar
// maiúsculas de minúsculas. Devolve sempre uma nova fatia.
func Filter(items []Item, term string) []Item {
	out := make([]Item, 0, len(items))
	if term == "" {
		return append(out, items...)
	}

	needle := strings.ToLower(term)
	for _, item := range items {
		name, ok := item[FilterField].(string)
		if ok && strings.Contains(strings.ToLower(name), needle) {
			out = append(out, item)
		}
	}
	return out
}

// Sort ordena items in-place pelo campo key, de forma estável. Com key vazia a
// ordem de inserção é mantida. Chaves ausentes ou valores de tipos diferentes
// comparam como iguais e preservam a ordem relativa.
func Sort(items []Item, key string, asc bool) {
	if key == "" {
		return
	}
	slices.SortStableFunc(items, func(a, b Item) int {
		c := compareValues(a[key], b[key])
		if !asc {
			return -c
		}
		return c
	})
}

// Paginate devolve as posições [first, last] (1-based, inclusivas), limitadas
// ao tamanho da coleção. first > len(items) devolve uma página vazia.
func Paginate(items []Item, first, last int) []Item {
	start := first - 1
	if start < 0 {
		start = 0
	}
	end := last
	if end > len(items) {
		end = len(items)
	}
	if start >= end {
		return []Item{}
	}
	return items[start:end]
}

func compareValues(a, b interface{}) int {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
		return 0
	}

	switch va := a.(type) {
	case string:
		if vb, ok := b.(string); ok {
			return strings.Compare(va, vb)
		}
	case bool:
		if vb, ok := b.(bool); ok && va != vb {
			if !va {
				return -1
			}
			return 1
		}
	}
	return 0
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
