package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestWhere_DropsNoopConditions(t *testing.T) {
	f := Where(Eq("a", 1), When(false, Eq("b", 2)), Condition{}, Contains("c", "x"))

	conds := f.Conditions()
	assert.Len(t, conds, 2)
	assert.Equal(t, "a", conds[0].Field)
	assert.Equal(t, OpContains, conds[1].Op)
	assert.True(t, Where().IsEmpty())
}

func TestFilter_AndDoesNotAlias(t *testing.T) {
	base := Where(Eq("a", 1))
	left := base.And(Eq("b", 2))
	right := base.And(Eq("c", 3))

	assert.Len(t, base.Conditions(), 1)
	assert.Equal(t, "b", left.Conditions()[1].Field)
	assert.Equal(t, "c", right.Conditions()[1].Field)
}

func TestFilter_Matches(t *testing.T) {
	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := bson.M{
		"name":       "Ada Lovelace",
		"disabled":   false,
		"size":       0.3,
		"created_at": bson.NewDateTimeFromTime(when),
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty", Where(), true},
		{"contains ignores case", Where(Contains("name", "LOVE")), true},
		{"contains treats regex literally", Where(Contains("name", "A.a")), false},
		{"eq bool", Where(Eq("disabled", false)), true},
		{"ne bool", Where(Ne("disabled", true)), true},
		{"eq double", Where(Eq("size", 0.3)), true},
		{"gte time", Where(Gte("created_at", when)), true},
		{"gte later time", Where(Gte("created_at", when.Add(time.Second))), false},
		{"lte int against double", Where(Lte("size", 1)), true},
		{"missing field eq", Where(Eq("style", "Oil")), false},
		{"missing field ne", Where(Ne("style", "Oil")), true},
		{"conjunction", Where(Contains("name", "ada"), Eq("disabled", true)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(doc))
		})
	}
}

func TestPageQuery(t *testing.T) {
	q := PageQuery{Page: 3, PageSize: 20}
	assert.NoError(t, q.Validate())
	assert.EqualValues(t, 40, q.Skip())
	assert.Equal(t, DefaultSort, q.Order())

	asc := Asc(FieldCreatedAt)
	q.Sort = &asc
	assert.True(t, q.Order().Ascending)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 2, TotalPages(3, 2))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestContentEqual_IgnoresUpdatedAt(t *testing.T) {
	a := bson.M{"_id": "1", "name": "x", "updated_at": bson.NewDateTimeFromTime(time.Unix(1, 0))}
	b := bson.M{"_id": "1", "name": "x", "updated_at": bson.NewDateTimeFromTime(time.Unix(2, 0))}
	assert.True(t, ContentEqual(a, b))

	b["name"] = "y"
	assert.False(t, ContentEqual(a, b))
}
