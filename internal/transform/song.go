package transform

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"sparkify-etl/internal/model"
)

// SongFile returns the song and artist rows of one song metadata file.
//
// A song file is expected to hold exactly one record. When it holds more, the
// first is loaded and the rest are ignored; they must still be valid JSON.
func (t *Transformer) SongFile(ctx context.Context, path string) ([]model.Row, error) {
	records, err := decodeLines[model.SongFile](path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	if len(records) > 1 {
		t.log.Debug("Song file holds more than one record, loading the first",
			zap.String("file", path),
			zap.Int("records", len(records)))
	}

	song := records[0]
	switch {
	case song.SongID == "":
		return nil, missing(path, "song_id", 1)
	case song.Title == "":
		return nil, missing(path, "title", 1)
	case song.ArtistID == "":
		return nil, missing(path, "artist_id", 1)
	}

	return []model.Row{song.Song(), song.Artist()}, nil
}
