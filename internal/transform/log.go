package transform

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"sparkify-etl/internal/model"
)

// LogFile returns the time, user and songplay rows of one activity log.
// Only NextSong events contribute. Rows come back grouped: every time row,
// then every user row, then every songplay row, each group in event order.
// Repeated timestamps and users are emitted again; the destination's
// conflict policy decides what is kept.
func (t *Transformer) LogFile(ctx context.Context, path string) ([]model.Row, error) {
	events, err := decodeLines[model.LogEvent](path)
	if err != nil {
		return nil, err
	}

	plays := make([]model.LogEvent, 0, len(events))
	for i, e := range events {
		if !e.IsSongPlay() {
			continue
		}
		if e.Ts <= 0 {
			return nil, missing(path, "ts", i+1)
		}
		if e.UserID == "" {
			return nil, missing(path, "userId", i+1)
		}
		plays = append(plays, e)
	}

	rows := make([]model.Row, 0, 3*len(plays))
	for _, e := range plays {
		rows = append(rows, TimeParts(e.Ts))
	}
	for _, e := range plays {
		rows = append(rows, e.User())
	}

	resolved := 0
	for _, e := range plays {
		play, err := t.songplay(ctx, e)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if play.SongID != nil {
			resolved++
		}
		rows = append(rows, play)
	}

	t.log.Debug("Transformed log file",
		zap.String("file", path),
		zap.Int("events", len(events)),
		zap.Int("songplays", len(plays)),
		zap.Int("resolved", resolved))

	return rows, nil
}

func (t *Transformer) songplay(ctx context.Context, e model.LogEvent) (model.SongplayRow, error) {
	row := model.SongplayRow{
		StartTime: TimeParts(e.Ts).StartTime,
		UserID:    string(e.UserID),
		Level:     e.Level,
		SessionID: e.SessionID,
		Location:  e.Location,
		UserAgent: e.UserAgent,
	}

	songID, artistID, found, err := t.lookup.LookupSong(ctx, e.Song, e.Artist, e.Length)
	if err != nil {
		return row, fmt.Errorf("lookup song %q by %q: %w", e.Song, e.Artist, err)
	}
	if found {
		row.SongID = &songID
		row.ArtistID = &artistID
	}
	return row, nil
}
