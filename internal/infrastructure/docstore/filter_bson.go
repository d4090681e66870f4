package docstore

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"

	"htc-backend/pkg/repository"
)

// FilterToBSON renders a conjunction as a Mongo query document.
func FilterToBSON(f repository.Filter) bson.M {
	conds := f.Conditions()
	switch len(conds) {
	case 0:
		return bson.M{}
	case 1:
		return conditionToBSON(conds[0])
	}

	clauses := make(bson.A, 0, len(conds))
	for _, c := range conds {
		clauses = append(clauses, conditionToBSON(c))
	}
	return bson.M{"$and": clauses}
}

func conditionToBSON(c repository.Condition) bson.M {
	switch c.Op {
	case repository.OpEq:
		return bson.M{c.Field: c.Value}
	case repository.OpNe:
		return bson.M{c.Field: bson.M{"$ne": c.Value}}
	case repository.OpContains:
		return bson.M{c.Field: bson.M{
			"$regex":   regexp.QuoteMeta(fmt.Sprint(c.Value)),
			"$options": "i",
		}}
	case repository.OpGte:
		return bson.M{c.Field: bson.M{"$gte": c.Value}}
	case repository.OpLte:
		return bson.M{c.Field: bson.M{"$lte": c.Value}}
	}
	return bson.M{}
}

// SortToBSON appends the _id tie-break in the same direction.
func SortToBSON(s repository.Sort) bson.D {
	if s.Field == "" {
		s = repository.DefaultSort
	}
	dir := -1
	if s.Ascending {
		dir = 1
	}
	if s.Field == repository.FieldID {
		return bson.D{{Key: repository.FieldID, Value: dir}}
	}
	return bson.D{{Key: s.Field, Value: dir}, {Key: repository.FieldID, Value: dir}}
}
