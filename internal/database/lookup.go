package database

import (
	"context"
	"errors"
)

// SongIndex resolves playback events to persisted song and artist ids.
type SongIndex struct {
	db DatabaseDriver
}

func NewSongIndex(db DatabaseDriver) *SongIndex {
	return &SongIndex{db: db}
}

// LookupSong matches title, artist name and duration exactly. A miss reports
// found == false with a nil error.
func (s *SongIndex) LookupSong(ctx context.Context, title, artist string, duration float64) (songID, artistID string, found bool, err error) {
	err = s.db.QueryRowContext(ctx, OpSongSelect, title, artist, duration).Scan(&songID, &artistID)
	if errors.Is(err, ErrNoRows) {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, err
	}
	return songID, artistID, true, nil
}
