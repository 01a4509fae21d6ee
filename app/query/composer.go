// Package query composes filtered, sorted and paginated read queries over
// catalog tables. Composition is deterministic and has no side effects; the
// resulting Plan is applied to a gorm chain by the repositories.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jerikareyna/modasnansi-backend-main/app/apperr"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type Op int

const (
	// OpContains is a case-sensitive substring match.
	OpContains Op = iota
	// OpEquals is an exact match.
	OpEquals
)

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Filter is a single predicate. Filters with an empty Value are absent and
// are dropped from the plan. Join names the table join the column needs.
type Filter struct {
	Column string
	Op     Op
	Value  any
	Join   string
}

func Contains(column, value string) Filter {
	return Filter{Column: column, Op: OpContains, Value: value}
}

// Equals builds an exact-match filter. A nil value means "no filter".
func Equals(column string, value any) Filter {
	return Filter{Column: column, Op: OpEquals, Value: value}
}

func (f Filter) Via(join string) Filter {
	f.Join = join
	return f
}

func (f Filter) absent() bool {
	switch v := f.Value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	}
	return false
}

// Params is the caller's read request.
type Params struct {
	Filters   []Filter
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Clause is a parameterised SQL predicate.
type Clause struct {
	SQL  string
	Args []any
}

// Plan is the composed query: joins and where clauses (combined with AND),
// the order clause and the skip/take window.
type Plan struct {
	Joins []string
	Where []Clause
	Order string
	Skip  int
	Take  int
	Page  int
	Limit int
}

// Schema describes the table a plan is built for.
type Schema struct {
	Table string
	// Sortable maps a public sort key to its qualified column.
	Sortable    map[string]string
	DefaultSort string
}

// PageBounds applies the page/limit defaults.
func PageBounds(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return page, limit
}

// Compose builds the plan for p. The dialect selects the substring
// expression; unknown dialects get the SQLite form.
func (s Schema) Compose(dialect string, p Params) (Plan, error) {
	page, limit := PageBounds(p.Page, p.Limit)
	plan := Plan{
		Skip:  (page - 1) * limit,
		Take:  limit,
		Page:  page,
		Limit: limit,
	}

	seen := make(map[string]bool)
	for _, f := range p.Filters {
		if f.absent() {
			continue
		}
		if f.Join != "" && !seen[f.Join] {
			seen[f.Join] = true
			plan.Joins = append(plan.Joins, f.Join)
		}
		plan.Where = append(plan.Where, clauseFor(dialect, f))
	}

	order, err := s.order(p.SortBy, p.SortOrder)
	if err != nil {
		return Plan{}, err
	}
	plan.Order = order
	return plan, nil
}

func clauseFor(dialect string, f Filter) Clause {
	if f.Op == OpEquals {
		return Clause{SQL: f.Column + " = ?", Args: []any{f.Value}}
	}
	var expr string
	switch dialect {
	case "postgres":
		expr = "strpos(%s, ?) > 0"
	case "mysql":
		expr = "INSTR(CAST(%s AS BINARY), CAST(? AS BINARY)) > 0"
	default:
		expr = "instr(%s, ?) > 0"
	}
	return Clause{SQL: fmt.Sprintf(expr, f.Column), Args: []any{f.Value}}
}

func (s Schema) order(sortBy, sortOrder string) (string, error) {
	key := sortBy
	if key == "" {
		key = s.DefaultSort
	}
	column, ok := s.Sortable[key]
	if !ok {
		return "", apperr.BadRequest("cannot sort %s by %q; allowed: %s", s.Table, sortBy, strings.Join(s.sortKeys(), ", "))
	}

	dir := Desc
	switch strings.ToUpper(sortOrder) {
	case "":
	case string(Asc):
		dir = Asc
	case string(Desc):
		dir = Desc
	default:
		return "", apperr.BadRequest("invalid sort order %q; use ASC or DESC", sortOrder)
	}

	idColumn := s.Table + ".id"
	if column == idColumn {
		return fmt.Sprintf("%s %s", column, dir), nil
	}
	return fmt.Sprintf("%s %s, %s %s", column, dir, idColumn, dir), nil
}

func (s Schema) sortKeys() []string {
	keys := make([]string, 0, len(s.Sortable))
	for k := range s.Sortable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
