package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"htc-backend/internal/config"
)

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := &config.Config{DocStore: config.DocStoreConfig{Driver: "couch"}}

	store, err := Open(context.Background(), cfg, DefaultCollections())
	assert.Nil(t, store)
	assert.ErrorContains(t, err, `"couch"`)
}
