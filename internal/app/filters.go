package app

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"homelyhub/internal/domain"
)

const (
	defaultPage  = 1
	defaultLimit = 12
	maxLimit     = 100
)

// Reserved query keys that shape the result set rather than filter it.
var reservedKeys = map[string]struct{}{
	"select": {}, "sort": {}, "page": {}, "limit": {}, "search": {},
}

// Operator tokens recognized in the `field[op]` position. The tokens are the
// whole grammar: filter values are never re-interpreted as operators, and
// nothing user-supplied is ever spliced into a raw query.
var filterOps = map[string]domain.FilterOp{
	"eq":  domain.OpEq,
	"ne":  domain.OpNe,
	"gt":  domain.OpGt,
	"gte": domain.OpGte,
	"lt":  domain.OpLt,
	"lte": domain.OpLte,
	"in":  domain.OpIn,
}

// ParseSearchQuery turns the flat client parameter map into a typed
// SearchQuery. Keys are either `field` (equality) or `field[op]` with op
// drawn from the fixed vocabulary above.
func ParseSearchQuery(values url.Values) (domain.SearchQuery, error) {
	q := domain.SearchQuery{
		Search: strings.TrimSpace(values.Get("search")),
		Page:   defaultPage,
		Limit:  defaultLimit,
	}

	if ps := values.Get("page"); ps != "" {
		p, err := strconv.Atoi(ps)
		if err != nil || p < 1 {
			return domain.SearchQuery{}, fmt.Errorf("%w: page must be a positive integer", domain.ErrValidation)
		}
		q.Page = p
	}
	if ls := values.Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l < 1 || l > maxLimit {
			return domain.SearchQuery{}, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrValidation, maxLimit)
		}
		q.Limit = l
	}

	if sel := values.Get("select"); sel != "" {
		for _, f := range strings.Split(sel, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			if !validFieldName(f) {
				return domain.SearchQuery{}, fmt.Errorf("%w: invalid select field %q", domain.ErrValidation, f)
			}
			q.Select = append(q.Select, f)
		}
	}

	if sort := values.Get("sort"); sort != "" {
		for _, f := range strings.Split(sort, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			key := domain.SortKey{Field: f}
			if strings.HasPrefix(f, "-") {
				key = domain.SortKey{Field: f[1:], Desc: true}
			}
			if !validFieldName(key.Field) {
				return domain.SearchQuery{}, fmt.Errorf("%w: invalid sort field %q", domain.ErrValidation, f)
			}
			q.Sort = append(q.Sort, key)
		}
	}
	if len(q.Sort) == 0 {
		// newest first when the client doesn't say otherwise
		q.Sort = []domain.SortKey{{Field: "createdAt", Desc: true}}
	}

	for key, vals := range values {
		if _, ok := reservedKeys[key]; ok {
			continue
		}
		for _, raw := range vals {
			cond, err := parseCondition(key, raw)
			if err != nil {
				return domain.SearchQuery{}, err
			}
			q.Conditions = append(q.Conditions, cond)
		}
	}
	return q, nil
}

func parseCondition(key, raw string) (domain.Condition, error) {
	field, opToken := key, "eq"
	if i := strings.IndexByte(key, '['); i >= 0 {
		if !strings.HasSuffix(key, "]") {
			return domain.Condition{}, fmt.Errorf("%w: malformed filter key %q", domain.ErrValidation, key)
		}
		field, opToken = key[:i], key[i+1:len(key)-1]
	}
	op, ok := filterOps[opToken]
	if !ok {
		return domain.Condition{}, fmt.Errorf("%w: unknown filter operator %q", domain.ErrValidation, opToken)
	}
	if !validFieldName(field) {
		return domain.Condition{}, fmt.Errorf("%w: invalid filter field %q", domain.ErrValidation, field)
	}

	cond := domain.Condition{Field: field, Op: op}
	if op == domain.OpIn {
		for _, part := range strings.Split(raw, ",") {
			cond.Values = append(cond.Values, scalar(strings.TrimSpace(part)))
		}
		if len(cond.Values) == 0 {
			return domain.Condition{}, fmt.Errorf("%w: empty in-list for %q", domain.ErrValidation, field)
		}
		return cond, nil
	}
	cond.Values = []any{scalar(raw)}
	return cond, nil
}

// scalar types a raw filter value: number, bool, else string as-is.
func scalar(s string) any {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// validFieldName bounds filterable/sortable/selectable names to dotted
// identifiers, so nothing resembling query syntax gets through.
func validFieldName(f string) bool {
	if f == "" || strings.HasPrefix(f, "$") {
		return false
	}
	for _, part := range strings.Split(f, ".") {
		if part == "" {
			return false
		}
		for _, c := range part {
			switch {
			case c >= 'a' && c <= 'z':
			case c >= 'A' && c <= 'Z':
			case c >= '0' && c <= '9':
			case c == '_':
			default:
				return false
			}
		}
	}
	return true
}

// Paginate builds the navigation descriptors for a 1-indexed page over
// total rows.
func Paginate(q domain.SearchQuery, total int64) domain.Pagination {
	var pg domain.Pagination
	if int64(q.Skip()+q.Limit) < total {
		pg.Next = &domain.PageRef{Page: q.Page + 1, Limit: q.Limit}
	}
	if q.Page > 1 {
		pg.Prev = &domain.PageRef{Page: q.Page - 1, Limit: q.Limit}
	}
	return pg
}
