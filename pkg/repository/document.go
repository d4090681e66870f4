package repository

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// NewID returns a fresh ObjectID in hex form.
func NewID() string {
	return bson.NewObjectID().Hex()
}

// ToDocument renders an entity as the flat document a store would hold.
func ToDocument(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return doc, nil
}

// ContentEqual compares two documents ignoring the update timestamp.
func ContentEqual(a, b bson.M) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		if k == FieldUpdatedAt {
			continue
		}
		bv, ok := b[k]
		if !ok || !reflect.DeepEqual(normalize(av), normalize(bv)) {
			return false
		}
	}
	return true
}

// DocumentTime reads a timestamp field from a decoded document.
func DocumentTime(doc bson.M, field string) time.Time {
	if t, ok := normalize(doc[field]).(time.Time); ok {
		return t
	}
	return time.Time{}
}

func normalize(v any) any {
	switch x := v.(type) {
	case bson.DateTime:
		return x.Time().UTC()
	case time.Time:
		return x.UTC().Truncate(time.Millisecond)
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	case bson.ObjectID:
		return x.Hex()
	}
	return v
}

// compareValues orders two normalized scalars of the same kind.
func compareValues(a, b any) (int, bool) {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		}
		return 0, true
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(av, bv), true
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return av.Compare(bv), true
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case av == bv:
			return 0, true
		case !av:
			return -1, true
		}
		return 1, true
	}
	return 0, false
}

// Matches evaluates a filter against a decoded document.
func (f Filter) Matches(doc bson.M) bool {
	for _, c := range f.conditions {
		if !c.matches(doc) {
			return false
		}
	}
	return true
}

func (c Condition) matches(doc bson.M) bool {
	if c.IsZero() {
		return true
	}
	raw, present := doc[c.Field]
	got := normalize(raw)
	want := normalize(c.Value)

	switch c.Op {
	case OpEq:
		return present && reflect.DeepEqual(got, want)
	case OpNe:
		return !present || !reflect.DeepEqual(got, want)
	case OpContains:
		s, ok := got.(string)
		sub, _ := want.(string)
		return ok && strings.Contains(strings.ToLower(s), strings.ToLower(sub))
	case OpGte:
		cmp, ok := compareValues(got, want)
		return present && ok && cmp >= 0
	case OpLte:
		cmp, ok := compareValues(got, want)
		return present && ok && cmp <= 0
	}
	return false
}

// compareField orders two documents by one field; missing values sort first.
func compareField(a, b bson.M, field string) int {
	av, aok := a[field]
	bv, bok := b[field]
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}
	cmp, _ := compareValues(normalize(av), normalize(bv))
	return cmp
}
