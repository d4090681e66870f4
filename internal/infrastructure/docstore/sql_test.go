package docstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"htc-backend/pkg/repository"
)

func TestBuildWhere(t *testing.T) {
	since := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("ICT", 7*3600))

	where, args, err := BuildWhere(repository.Where(
		repository.Eq("disabled", false),
		repository.Contains("name", `50%_off\`),
		repository.Gte(repository.FieldCreatedAt, since),
		repository.Lte("size", 2),
		repository.Ne("artist_id", "abc"),
	), 1)
	require.NoError(t, err)

	assert.Equal(t,
		`WHERE (doc->>'disabled')::boolean = $1`+
			` AND (doc->>'name') ILIKE $2 ESCAPE '\'`+
			` AND created_at >= $3`+
			` AND (doc->>'size')::double precision <= $4`+
			` AND (doc->>'artist_id') IS DISTINCT FROM $5`,
		where)
	require.Len(t, args, 5)
	assert.Equal(t, false, args[0])
	assert.Equal(t, `%50\%\_off\\%`, args[1])
	assert.Equal(t, since.UTC(), args[2])
	assert.Equal(t, 2.0, args[3])
	assert.Equal(t, "abc", args[4])
}

func TestBuildWhere_EmptyAndStartOffset(t *testing.T) {
	where, args, err := BuildWhere(repository.Filter{}, 1)
	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, _, err = BuildWhere(repository.Where(repository.Eq(repository.FieldID, "x")), 3)
	require.NoError(t, err)
	assert.Equal(t, "WHERE id = $3", where)
}

func TestBuildWhere_RejectsUnsafeField(t *testing.T) {
	_, _, err := BuildWhere(repository.Where(repository.Eq("name'); DROP TABLE artists; --", "x")), 1)
	assert.ErrorContains(t, err, "invalid field name")
}

func TestBuildOrderBy(t *testing.T) {
	tests := []struct {
		sort repository.Sort
		want string
	}{
		{repository.Sort{}, "ORDER BY created_at DESC, id DESC"},
		{repository.Asc(repository.FieldCreatedAt), "ORDER BY created_at ASC, id ASC"},
		{repository.Desc("name"), "ORDER BY doc->'name' DESC, id DESC"},
		{repository.Asc(repository.FieldID), "ORDER BY id ASC"},
	}
	for _, tt := range tests {
		got, err := BuildOrderBy(tt.sort)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := BuildOrderBy(repository.Desc("a b"))
	assert.Error(t, err)
}

func TestQuoteTable(t *testing.T) {
	got, err := quoteTable("artists")
	require.NoError(t, err)
	assert.Equal(t, `"artists"`, got)

	_, err = quoteTable("artists;drop")
	assert.Error(t, err)
}

type sample struct {
	repository.Base `bson:",inline"`
	Name            string  `bson:"name"`
	Lat             float64 `bson:"lat"`
}

func TestEncodeContent_StripsColumnFields(t *testing.T) {
	s := &sample{Name: "Ada", Lat: 1}
	s.SetID("id-1")
	s.SetCreatedAt(time.Now())

	content, err := encodeContent(s)
	require.NoError(t, err)

	assert.NotContains(t, content, "_id")
	assert.NotContains(t, content, "created_at")
	assert.NotContains(t, content, "updated_at")
	assert.Contains(t, content, `"name":"Ada"`)
}
