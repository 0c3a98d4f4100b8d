package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"go.uber.org/zap"

	"sparkify-etl/internal/database"
	"sparkify-etl/internal/discovery"
	"sparkify-etl/internal/model"
)

// TransformFunc turns one file into the rows it contributes.
type TransformFunc func(ctx context.Context, path string) ([]model.Row, error)

type Stage string

const (
	StageDiscover  Stage = "discover"
	StageTransform Stage = "transform"
	StagePersist   Stage = "persist"
)

// FileError reports the file and stage at which a pass stopped.
type FileError struct {
	Path  string
	Stage Stage
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

type Result struct {
	Files          int64
	Processed      int64
	Rows           int64
	Throughput     float64
	P95Latency     time.Duration
	P99Latency     time.Duration
	AverageLatency time.Duration
	TotalTime      time.Duration
}

type Loader struct {
	db      database.DatabaseDriver
	pattern string
	log     *zap.Logger
}

func New(db database.DatabaseDriver, pattern string, log *zap.Logger) *Loader {
	return &Loader{db: db, pattern: pattern, log: log}
}

// Process applies fn to every matching file under dir and commits each file's
// rows in one transaction. The first failure stops the pass; files committed
// before it stay committed. The returned Result is non-nil even on error and
// counts only committed files.
func (l *Loader) Process(ctx context.Context, dir string, fn TransformFunc) (*Result, error) {
	startTime := time.Now()
	result := &Result{}

	files, err := discovery.Find(dir, l.pattern)
	if err != nil {
		return result, &FileError{Path: dir, Stage: StageDiscover, Err: err}
	}
	result.Files = int64(len(files))
	l.log.Info(fmt.Sprintf("%d files found in %s", len(files), dir))

	// Per-file latency in microseconds, up to ten minutes.
	hist := hdrhistogram.New(1, int64(10*time.Minute/time.Microsecond), 3)
	defer func() {
		result.TotalTime = time.Since(startTime)
		if result.Processed > 0 {
			result.Throughput = float64(result.Processed) / result.TotalTime.Seconds()
			result.AverageLatency = time.Duration(hist.Mean()) * time.Microsecond
			result.P95Latency = time.Duration(hist.ValueAtQuantile(95)) * time.Microsecond
			result.P99Latency = time.Duration(hist.ValueAtQuantile(99)) * time.Microsecond
		}
	}()

	for i, path := range files {
		fileStart := time.Now()

		rows, err := fn(ctx, path)
		if err != nil {
			return result, &FileError{Path: path, Stage: StageTransform, Err: err}
		}

		if err := l.persist(ctx, rows); err != nil {
			return result, &FileError{Path: path, Stage: StagePersist, Err: err}
		}

		hist.RecordValue(time.Since(fileStart).Microseconds())
		result.Processed++
		result.Rows += int64(len(rows))
		l.log.Info(fmt.Sprintf("%d/%d files processed.", i+1, len(files)),
			zap.String("file", path),
			zap.Int("rows", len(rows)))
	}

	return result, nil
}

func (l *Loader) persist(ctx context.Context, rows []model.Row) error {
	return l.db.ExecuteTx(ctx, func(txCtx context.Context) error {
		for _, row := range rows {
			if err := l.db.ExecContext(txCtx, row.Op(), row.Args()...); err != nil {
				return fmt.Errorf("%s: %w", row.Op(), err)
			}
		}
		return nil
	})
}
