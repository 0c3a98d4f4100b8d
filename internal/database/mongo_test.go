package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMongoRow_Scan(t *testing.T) {
	row := &MongoRow{doc: bson.M{"song_id": "SOAAAAA", "artist_id": "ARXXXXX"}, fields: []string{"song_id", "artist_id"}}

	var songID, artistID string
	assert.NoError(t, row.Scan(&songID, &artistID))
	assert.Equal(t, "SOAAAAA", songID)
	assert.Equal(t, "ARXXXXX", artistID)

	assert.Error(t, row.Scan(&songID))

	var n int
	assert.Error(t, row.Scan(&songID, &n))

	bad := &MongoRow{doc: bson.M{"song_id": 7, "artist_id": "A"}, fields: []string{"song_id", "artist_id"}}
	assert.Error(t, bad.Scan(&songID, &artistID))
}

func TestMongoDriver_RejectsUnknownOps(t *testing.T) {
	md := &MongoDriver{}
	ctx := context.Background()

	assert.Error(t, md.ExecContext(ctx, "drop_everything"))
	assert.Error(t, md.ExecContext(ctx, OpSongInsert, "only one arg"))
	assert.Error(t, md.QueryRowContext(ctx, OpSongInsert).Scan())
	assert.Error(t, md.QueryRowContext(ctx, OpSongSelect, "title").Scan())
}
