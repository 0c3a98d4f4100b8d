package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PageNextSong is the page value of an event that played a song.
const PageNextSong = "NextSong"

// SongFile is the single record held by a song metadata file.
type SongFile struct {
	NumSongs        int      `json:"num_songs"`
	SongID          string   `json:"song_id"`
	Title           string   `json:"title"`
	ArtistID        string   `json:"artist_id"`
	Year            int      `json:"year"`
	Duration        float64  `json:"duration"`
	ArtistName      string   `json:"artist_name"`
	ArtistLocation  string   `json:"artist_location"`
	ArtistLatitude  *float64 `json:"artist_latitude"`
	ArtistLongitude *float64 `json:"artist_longitude"`
}

func (s SongFile) Song() SongRow {
	return SongRow{
		SongID:   s.SongID,
		Title:    s.Title,
		ArtistID: s.ArtistID,
		Year:     s.Year,
		Duration: s.Duration,
	}
}

func (s SongFile) Artist() ArtistRow {
	return ArtistRow{
		ArtistID:  s.ArtistID,
		Name:      s.ArtistName,
		Location:  s.ArtistLocation,
		Latitude:  s.ArtistLatitude,
		Longitude: s.ArtistLongitude,
	}
}

// LogEvent is one line of an activity log.
type LogEvent struct {
	Artist        string   `json:"artist"`
	Auth          string   `json:"auth"`
	FirstName     string   `json:"firstName"`
	Gender        string   `json:"gender"`
	ItemInSession int      `json:"itemInSession"`
	LastName      string   `json:"lastName"`
	Length        float64  `json:"length"`
	Level         string   `json:"level"`
	Location      string   `json:"location"`
	Method        string   `json:"method"`
	Page          string   `json:"page"`
	Registration  float64  `json:"registration"`
	SessionID     int64    `json:"sessionId"`
	Song          string   `json:"song"`
	Status        int      `json:"status"`
	Ts            int64    `json:"ts"`
	UserAgent     string   `json:"userAgent"`
	UserID        StringID `json:"userId"`
}

func (e LogEvent) IsSongPlay() bool {
	return e.Page == PageNextSong
}

func (e LogEvent) User() UserRow {
	return UserRow{
		UserID:    string(e.UserID),
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Gender:    e.Gender,
		Level:     e.Level,
	}
}

// StringID accepts an identifier written either as a JSON string or a JSON
// number. Logs carry userId as "10", but some exports write 10.
type StringID string

func (id *StringID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("userId: %w", err)
	}
	*id = StringID(n.String())
	return nil
}
