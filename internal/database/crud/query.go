package crud

import (
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// DefaultLimit is the page size used when a paginated route gets no limit.
	DefaultLimit = 10
	// MaxLimit caps client supplied page sizes.
	MaxLimit = 100
)

type conditionKind int

const (
	condEq conditionKind = iota
	condIn
	condSearch
)

type condition struct {
	kind    conditionKind
	columns []string
	values  []any
}

type ordering struct {
	column string
	desc   bool
}

// Query describes a List/Count call: equality and set filters, a free text
// search, ordering and an optional page. The zero value matches every row.
//
// Query is a value type; every builder method returns a copy.
//
//	q := crud.NewQuery().Eq("is_active", true).OrderBy("created_at", true).Page(2, 10)
type Query struct {
	conditions []condition
	orderings  []ordering
	preloads   []string
	page       int
	limit      int
}

func NewQuery() Query {
	return Query{}
}

// Eq restricts the result to rows where column equals value.
func (q Query) Eq(column string, value any) Query {
	q.conditions = append(slices.Clone(q.conditions), condition{kind: condEq, columns: []string{column}, values: []any{value}})
	return q
}

// In restricts the result to rows where column is one of values. An empty
// set matches nothing.
func (q Query) In(column string, values ...any) Query {
	q.conditions = append(slices.Clone(q.conditions), condition{kind: condIn, columns: []string{column}, values: values})
	return q
}

// Search matches rows where any of columns contains term. A blank term is ignored.
func (q Query) Search(term string, columns ...string) Query {
	if term == "" || len(columns) == 0 {
		return q
	}
	q.conditions = append(slices.Clone(q.conditions), condition{kind: condSearch, columns: columns, values: []any{"%" + term + "%"}})
	return q
}

func (q Query) OrderBy(column string, desc bool) Query {
	q.orderings = append(slices.Clone(q.orderings), ordering{column: column, desc: desc})
	return q
}

// Preload eager loads an association, e.g. "Items" on menus.
func (q Query) Preload(association string) Query {
	q.preloads = append(slices.Clone(q.preloads), association)
	return q
}

// Page limits the result to one 1-based page. Out of range values are
// normalized by Paginate.
func (q Query) Page(page, limit int) Query {
	q.page, q.limit = Paginate(page, limit)
	return q
}

// Filtered reports whether the query carries any condition.
func (q Query) Filtered() bool {
	return len(q.conditions) > 0
}

// Paginate normalizes page and limit: page < 1 becomes 1, limit < 1 becomes
// DefaultLimit and limit > MaxLimit becomes MaxLimit.
func Paginate(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// where applies the filter part of the query only. Count uses it directly.
func (q Query) where(db *gorm.DB) *gorm.DB {
	for _, c := range q.conditions {
		switch c.kind {
		case condEq:
			db = db.Where(clause.Eq{Column: clause.Column{Name: c.columns[0]}, Value: c.values[0]})
		case condIn:
			db = db.Where(clause.IN{Column: clause.Column{Name: c.columns[0]}, Values: c.values})
		case condSearch:
			exprs := make([]clause.Expression, 0, len(c.columns))
			for _, col := range c.columns {
				exprs = append(exprs, clause.Like{Column: clause.Column{Name: col}, Value: c.values[0]})
			}
			if len(exprs) == 1 {
				// a single OrConditions would be joined with OR by the WHERE builder
				db = db.Where(exprs[0])
				continue
			}
			db = db.Where(clause.Or(exprs...))
		}
	}
	return db
}

func (q Query) apply(db *gorm.DB) *gorm.DB {
	db = q.where(db)
	for _, assoc := range q.preloads {
		db = db.Preload(assoc)
	}
	for _, o := range q.orderings {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: o.column}, Desc: o.desc})
	}
	if q.limit > 0 {
		db = db.Limit(q.limit).Offset((q.page - 1) * q.limit)
	}
	return db
}
