package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sparkify-etl/internal/database"
	"sparkify-etl/internal/loader"
	"sparkify-etl/internal/transform"
)

// ErrDimensionsNotLoaded is returned by LoadLogs when the song pass has not
// completed on the same pipeline. Songplay lookups read the songs and artists
// tables, so loading logs first would leave every fact unresolved.
var ErrDimensionsNotLoaded = errors.New("song and artist dimensions not loaded")

type Options struct {
	SongData string
	LogData  string
	Pattern  string
}

type Result struct {
	RunID string
	Songs *loader.Result
	Logs  *loader.Result
}

// Pipeline runs the song pass and then the log pass against one destination.
type Pipeline struct {
	opts        Options
	loader      *loader.Loader
	transformer *transform.Transformer
	log         *zap.Logger
	runID       string

	dimensionsLoaded bool
}

func New(db database.DatabaseDriver, opts Options, log *zap.Logger) *Pipeline {
	runID := uuid.New().String()
	log = log.With(zap.String("run_id", runID))
	return &Pipeline{
		opts:        opts,
		loader:      loader.New(db, opts.Pattern, log),
		transformer: transform.New(database.NewSongIndex(db), log),
		log:         log,
		runID:       runID,
	}
}

func (p *Pipeline) LoadSongs(ctx context.Context) (*loader.Result, error) {
	p.log.Info("Loading song files", zap.String("dir", p.opts.SongData))
	result, err := p.loader.Process(ctx, p.opts.SongData, p.transformer.SongFile)
	if err != nil {
		return result, fmt.Errorf("song pass: %w", err)
	}
	p.dimensionsLoaded = true
	return result, nil
}

func (p *Pipeline) LoadLogs(ctx context.Context) (*loader.Result, error) {
	if !p.dimensionsLoaded {
		return nil, ErrDimensionsNotLoaded
	}
	p.log.Info("Loading log files", zap.String("dir", p.opts.LogData))
	result, err := p.loader.Process(ctx, p.opts.LogData, p.transformer.LogFile)
	if err != nil {
		return result, fmt.Errorf("log pass: %w", err)
	}
	return result, nil
}

// Run loads songs, then logs. A failed song pass skips the log pass.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	result := &Result{RunID: p.runID}

	songs, err := p.LoadSongs(ctx)
	result.Songs = songs
	if err != nil {
		return result, err
	}

	logs, err := p.LoadLogs(ctx)
	result.Logs = logs
	if err != nil {
		return result, err
	}

	p.log.Info("Pipeline finished",
		zap.Int64("song_files", songs.Processed),
		zap.Int64("log_files", logs.Processed),
		zap.Int64("rows", songs.Rows+logs.Rows),
		zap.Duration("total_time", songs.TotalTime+logs.TotalTime))
	return result, nil
}
