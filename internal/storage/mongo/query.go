package mongo

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"homelyhub/internal/domain"
)

// mongoOps maps the closed filter vocabulary onto driver operators. This is
// the only place a condition becomes query syntax; nothing user-supplied is
// ever spliced into an operator position.
var mongoOps = map[domain.FilterOp]string{
	domain.OpEq:  "$eq",
	domain.OpNe:  "$ne",
	domain.OpGt:  "$gt",
	domain.OpGte: "$gte",
	domain.OpLt:  "$lt",
	domain.OpLte: "$lte",
	domain.OpIn:  "$in",
}

// searchFields are the targets of the free-text search.
var searchFields = []string{"title", "location.address.city", "location.address.state"}

func buildFilter(q domain.SearchQuery) (bson.M, error) {
	filter := bson.M{}
	for _, c := range q.Conditions {
		op, ok := mongoOps[c.Op]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported operator %q", domain.ErrValidation, c.Op)
		}
		clause, _ := filter[c.Field].(bson.M)
		if clause == nil {
			clause = bson.M{}
			filter[c.Field] = clause
		}
		if c.Op == domain.OpIn {
			clause[op] = c.Values
		} else if len(c.Values) == 1 {
			clause[op] = c.Values[0]
		}
	}
	if q.Search != "" {
		// substring match, meta-quoted so the needle is never a pattern
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		or := make(bson.A, 0, len(searchFields))
		for _, f := range searchFields {
			or = append(or, bson.M{f: re})
		}
		filter["$and"] = bson.A{bson.M{"$or": or}}
	}
	return filter, nil
}

func buildSort(keys []domain.SortKey) bson.D {
	sort := make(bson.D, 0, len(keys))
	for _, k := range keys {
		dir := 1
		if k.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: k.Field, Value: dir})
	}
	return sort
}

func buildProjection(fields []string) bson.D {
	if len(fields) == 0 {
		return nil
	}
	proj := make(bson.D, 0, len(fields))
	for _, f := range fields {
		proj = append(proj, bson.E{Key: f, Value: 1})
	}
	return proj
}
