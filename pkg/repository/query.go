package repository

import (
	"math"
)

type Op int

const (
	OpEq Op = iota + 1
	OpNe
	OpContains
	OpGte
	OpLte
)

func (o Op) String() string {
	switch o {
	case OpEq:
		return "eq"
	case OpNe:
		return "ne"
	case OpContains:
		return "contains"
	case OpGte:
		return "gte"
	case OpLte:
		return "lte"
	default:
		return "noop"
	}
}

// Condition compares one stored field against a value. The zero Condition matches everything.
//
// Field names are the stored (bson) names, e.g. "created_at" or "artist_id".
type Condition struct {
	Field string
	Op    Op
	Value any
}

func (c Condition) IsZero() bool { return c.Field == "" || c.Op == 0 }

func Eq(field string, value any) Condition { return Condition{Field: field, Op: OpEq, Value: value} }

func Ne(field string, value any) Condition { return Condition{Field: field, Op: OpNe, Value: value} }

// Contains matches a case-insensitive substring. The value is taken literally.
func Contains(field, value string) Condition {
	return Condition{Field: field, Op: OpContains, Value: value}
}

func Gte(field string, value any) Condition { return Condition{Field: field, Op: OpGte, Value: value} }

func Lte(field string, value any) Condition { return Condition{Field: field, Op: OpLte, Value: value} }

// When keeps c only if ok holds; otherwise it yields the match-all condition.
func When(ok bool, c Condition) Condition {
	if !ok {
		return Condition{}
	}
	return c
}

// Filter is a conjunction of conditions.
type Filter struct {
	conditions []Condition
}

func Where(conds ...Condition) Filter {
	return Filter{}.And(conds...)
}

// And returns a new filter with the non-zero conditions appended.
func (f Filter) And(conds ...Condition) Filter {
	out := make([]Condition, 0, len(f.conditions)+len(conds))
	out = append(out, f.conditions...)
	for _, c := range conds {
		if !c.IsZero() {
			out = append(out, c)
		}
	}
	return Filter{conditions: out}
}

func (f Filter) Conditions() []Condition { return f.conditions }

func (f Filter) IsEmpty() bool { return len(f.conditions) == 0 }

// Sort orders results by a stored field. Ties are always broken by _id in the same direction.
type Sort struct {
	Field     string
	Ascending bool
}

const (
	FieldID        = "_id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

var DefaultSort = Sort{Field: FieldCreatedAt}

func Asc(field string) Sort  { return Sort{Field: field, Ascending: true} }
func Desc(field string) Sort { return Sort{Field: field} }

// PageQuery describes a 1-based page of a filtered, sorted collection.
type PageQuery struct {
	Page     int
	PageSize int
	Filter   Filter
	Sort     *Sort
}

func (q PageQuery) Validate() error {
	if q.Page < 1 || q.PageSize < 1 {
		return ErrInvalidPage
	}
	return nil
}

func (q PageQuery) Skip() int64 { return int64(q.Page-1) * int64(q.PageSize) }

func (q PageQuery) Order() Sort {
	if q.Sort == nil || q.Sort.Field == "" {
		return DefaultSort
	}
	return *q.Sort
}

// Page is one slice of a query plus the unpaginated filtered count.
type Page[T any] struct {
	Items    []T
	Total    int64
	Page     int
	PageSize int
}

func (p Page[T]) TotalPages() int {
	return TotalPages(p.Total, p.PageSize)
}

func TotalPages(total int64, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(pageSize)))
}
