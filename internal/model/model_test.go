package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparkify-etl/internal/database"
)

func TestStringID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  StringID
	}{
		{"string", `{"userId":"10"}`, "10"},
		{"number", `{"userId":10}`, "10"},
		{"empty string", `{"userId":""}`, ""},
		{"null", `{"userId":null}`, ""},
		{"missing", `{}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e LogEvent
			require.NoError(t, json.Unmarshal([]byte(tt.input), &e))
			assert.Equal(t, tt.want, e.UserID)
		})
	}

	var e LogEvent
	assert.Error(t, json.Unmarshal([]byte(`{"userId":true}`), &e))
}

func TestSongFile_Projections(t *testing.T) {
	lat := 35.14968
	s := SongFile{
		SongID:         "SOUPIRU12A6D4FA1E1",
		Title:          "Der Kleine Dompfaff",
		ArtistID:       "ARJIE2Y1187B994AB7",
		Year:           0,
		Duration:       152.92036,
		ArtistName:     "Line Renaud",
		ArtistLocation: "Memphis, TN",
		ArtistLatitude: &lat,
	}

	song := s.Song()
	assert.Equal(t, database.OpSongInsert, song.Op())
	assert.Equal(t, []interface{}{"SOUPIRU12A6D4FA1E1", "Der Kleine Dompfaff", "ARJIE2Y1187B994AB7", 0, 152.92036}, song.Args())

	artist := s.Artist()
	assert.Equal(t, database.OpArtistInsert, artist.Op())
	assert.Equal(t, []interface{}{"ARJIE2Y1187B994AB7", "Line Renaud", "Memphis, TN", 35.14968, nil}, artist.Args())
}

func TestSongplayRow_NullIDs(t *testing.T) {
	start := time.UnixMilli(1541121934796).UTC()
	row := SongplayRow{StartTime: start, UserID: "10", Level: "paid", SessionID: 139}

	args := row.Args()
	require.Len(t, args, 8)
	assert.Nil(t, args[3])
	assert.Nil(t, args[4])

	songID, artistID := "SOA", "ARX"
	row.SongID, row.ArtistID = &songID, &artistID
	args = row.Args()
	assert.Equal(t, "SOA", args[3])
	assert.Equal(t, "ARX", args[4])
}

func TestLogEvent_IsSongPlay(t *testing.T) {
	assert.True(t, LogEvent{Page: "NextSong"}.IsSongPlay())
	assert.False(t, LogEvent{Page: "Home"}.IsSongPlay())
	assert.False(t, LogEvent{Page: "nextsong"}.IsSongPlay())
}
