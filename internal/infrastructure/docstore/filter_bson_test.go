package docstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"

	"htc-backend/pkg/repository"
)

func TestFilterToBSON(t *testing.T) {
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, bson.M{}, FilterToBSON(repository.Filter{}))

	assert.Equal(t, bson.M{"artist_id": "a1"},
		FilterToBSON(repository.Where(repository.Eq("artist_id", "a1"))))

	got := FilterToBSON(repository.Where(
		repository.Contains("name", "a.b"),
		repository.Ne("disabled", true),
		repository.Gte("created_at", since),
		repository.Lte("size", 1.5),
	))
	assert.Equal(t, bson.M{"$and": bson.A{
		bson.M{"name": bson.M{"$regex": `a\.b`, "$options": "i"}},
		bson.M{"disabled": bson.M{"$ne": true}},
		bson.M{"created_at": bson.M{"$gte": since}},
		bson.M{"size": bson.M{"$lte": 1.5}},
	}}, got)
}

func TestSortToBSON(t *testing.T) {
	assert.Equal(t,
		bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
		SortToBSON(repository.Sort{}))
	assert.Equal(t,
		bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}},
		SortToBSON(repository.Asc("created_at")))
	assert.Equal(t, bson.D{{Key: "_id", Value: 1}}, SortToBSON(repository.Asc("_id")))
}

func TestCollections_Name(t *testing.T) {
	c := DefaultCollections()
	assert.Equal(t, "galleries", c.Name(KindGallery))
	assert.Equal(t, "projects", c.Name(KindProject))
	assert.Equal(t, "teams", c.Name(KindTeam))
	assert.Equal(t, "widget", c.Name("Widget"))
	assert.Equal(t, "widgets", c.Name("Widgets"))
}
