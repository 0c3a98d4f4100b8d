// Package model holds the source records read from JSON-lines files and the
// star-schema rows derived from them.
package model

import (
	"time"

	"sparkify-etl/internal/database"
)

// Row is one write against the destination: the registry operation and its
// positional arguments.
type Row interface {
	Op() database.Op
	Args() []interface{}
}

type SongRow struct {
	SongID   string
	Title    string
	ArtistID string
	Year     int
	Duration float64
}

func (r SongRow) Op() database.Op { return database.OpSongInsert }

func (r SongRow) Args() []interface{} {
	return []interface{}{r.SongID, r.Title, r.ArtistID, r.Year, r.Duration}
}

type ArtistRow struct {
	ArtistID  string
	Name      string
	Location  string
	Latitude  *float64
	Longitude *float64
}

func (r ArtistRow) Op() database.Op { return database.OpArtistInsert }

func (r ArtistRow) Args() []interface{} {
	return []interface{}{r.ArtistID, r.Name, r.Location, nullFloat(r.Latitude), nullFloat(r.Longitude)}
}

type UserRow struct {
	UserID    string
	FirstName string
	LastName  string
	Gender    string
	Level     string
}

func (r UserRow) Op() database.Op { return database.OpUserUpsert }

func (r UserRow) Args() []interface{} {
	return []interface{}{r.UserID, r.FirstName, r.LastName, r.Gender, r.Level}
}

// TimeRow is the calendar breakdown of one playback start time, in UTC.
type TimeRow struct {
	StartTime time.Time
	Hour      int
	Day       int
	Week      int
	Month     int
	Year      int
	Weekday   string
}

func (r TimeRow) Op() database.Op { return database.OpTimeInsert }

func (r TimeRow) Args() []interface{} {
	return []interface{}{r.StartTime, r.Hour, r.Day, r.Week, r.Month, r.Year, r.Weekday}
}

// SongplayRow is the fact row. SongID and ArtistID are nil when the event
// did not match a loaded song.
type SongplayRow struct {
	StartTime time.Time
	UserID    string
	Level     string
	SongID    *string
	ArtistID  *string
	SessionID int64
	Location  string
	UserAgent string
}

func (r SongplayRow) Op() database.Op { return database.OpSongplayInsert }

func (r SongplayRow) Args() []interface{} {
	return []interface{}{
		r.StartTime, r.UserID, r.Level,
		nullString(r.SongID), nullString(r.ArtistID),
		r.SessionID, r.Location, r.UserAgent,
	}
}

// Drivers differ on typed nil pointers; an untyped nil is NULL everywhere.
func nullString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func nullFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}
