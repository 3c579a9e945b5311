package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sheikhstore/storefront/internal/domain/catalog"
)

// SortMode selects the ordering of the filtered product set. The values
// match the sort selector of the storefront UI.
type SortMode string

const (
	SortByName    SortMode = "name"
	SortPriceAsc  SortMode = "price-low"
	SortPriceDesc SortMode = "price-high"
)

// ParseSortMode maps a raw selector value to a SortMode, defaulting to
// name order for anything unknown.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	default:
		return SortByName
	}
}

// Query is the full input of the derivation pipeline. Nil price bounds
// mean unbounded on that side; bounds are inclusive. Language picks the
// collation used for name sorting.
type Query struct {
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     SortMode
	Language string
}

// Section is one rendered category bucket: the category heading plus the
// products that survived filtering, in sorted order. Categories whose
// bucket ends up empty produce no section.
type Section struct {
	CategoryID  int64             `json:"categoryId"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Products    []catalog.Product `json:"products"`
}

// Derive runs the fixed pipeline: flatten, search filter, price filter,
// sort, regroup by category id, drop empty buckets. It is pure: the same
// (categories, query) input always yields the same output and the input
// slices are never mutated.
func Derive(categories []catalog.Category, q Query) []Section {
	products := flatten(categories)
	products = filterSearch(products, q.Search)
	products = filterPrice(products, q.MinPrice, q.MaxPrice)
	sortProducts(products, q.Sort, q.Language)
	return group(categories, products)
}

func flatten(categories []catalog.Category) []catalog.Product {
	var all []catalog.Product
	for ci := range categories {
		all = append(all, categories[ci].Products...)
	}
	return all
}

func filterSearch(products []catalog.Product, search string) []catalog.Product {
	query := strings.ToLower(strings.TrimSpace(search))
	if query == "" {
		return products
	}
	matched := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Category), query) {
			matched = append(matched, p)
		}
	}
	return matched
}

func filterPrice(products []catalog.Product, min, max *decimal.Decimal) []catalog.Product {
	if min == nil && max == nil {
		return products
	}
	matched := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if min != nil && p.Price.LessThan(*min) {
			continue
		}
		if max != nil && p.Price.GreaterThan(*max) {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

func sortProducts(products []catalog.Product, mode SortMode, lang string) {
	switch mode {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[j].Price.LessThan(products[i].Price)
		})
	default:
		tag := language.French
		if lang != "" {
			if parsed, err := language.Parse(lang); err == nil {
				tag = parsed
			}
		}
		col := collate.New(tag, collate.IgnoreCase)
		sort.SliceStable(products, func(i, j int) bool {
			return col.CompareString(products[i].Name, products[j].Name) < 0
		})
	}
}

// group buckets the sorted set back under its categories, keyed by the
// stable category id. Sorting decides order within a bucket, never
// membership.
func group(categories []catalog.Category, products []catalog.Product) []Section {
	sections := make([]Section, 0, len(categories))
	for ci := range categories {
		cat := &categories[ci]
		var bucket []catalog.Product
		for _, p := range products {
			if p.CategoryID == cat.ID {
				bucket = append(bucket, p)
			}
		}
		if len(bucket) == 0 {
			continue
		}
		sections = append(sections, Section{
			CategoryID:  cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
			Products:    bucket,
		})
	}
	return sections
}
