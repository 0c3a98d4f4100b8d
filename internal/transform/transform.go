// Package transform turns one input file into the star-schema rows it
// contributes. Transformers read and resolve; they never write.
package transform

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

var (
	ErrMalformedJSON = errors.New("malformed json")
	ErrEmptyFile     = errors.New("file holds no records")
	ErrMissingField  = errors.New("missing required field")
)

// SongLookup resolves a playback to persisted song and artist ids.
type SongLookup interface {
	LookupSong(ctx context.Context, title, artist string, duration float64) (songID, artistID string, found bool, err error)
}

type Transformer struct {
	lookup SongLookup
	log    *zap.Logger
}

func New(lookup SongLookup, log *zap.Logger) *Transformer {
	return &Transformer{lookup: lookup, log: log}
}

// decodeLines reads every JSON value in the file at path.
func decodeLines[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []T
	dec := json.NewDecoder(bufio.NewReader(f))
	for {
		var rec T
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: record %d: %v", ErrMalformedJSON, path, len(records)+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func missing(path, field string, record int) error {
	return fmt.Errorf("%w: %s: record %d: %s", ErrMissingField, path, record, field)
}
