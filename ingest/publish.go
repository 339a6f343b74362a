package ingest

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ryanshappa/GamePlay-sub000/archive"
	"github.com/ryanshappa/GamePlay-sub000/content"
	"github.com/ryanshappa/GamePlay-sub000/engine"
	"github.com/ryanshappa/GamePlay-sub000/storage"
)

// Result records the publication of one archive file entry.
type Result struct {
	Key string
	Err error
}

func (r Result) Failed() bool { return r.Err != nil }

// Fanout publishes every file entry of an archive to the destination
// bucket under a common prefix, preserving subfolders verbatim.
type Fanout struct {
	Dest        storage.ObjectSink
	Bucket      string
	Concurrency int
}

// Publish uploads each file entry to {prefix}/{entry.Path} with
// resolved content headers and the Unity index.html rewrite applied
// where it applies. A failed upload is recorded but never aborts the
// remaining entries; the caller decides what a partial publication
// means. Entries are independent and uploaded with bounded concurrency.
func (f *Fanout) Publish(ctx context.Context, entries []archive.Entry, tag engine.Tag, prefix string) []Result {
	var files []archive.Entry
	for _, e := range entries {
		if !e.Dir {
			files = append(files, e)
		}
	}

	limit := f.Concurrency
	if limit <= 0 {
		limit = 1
	}

	results := make([]Result, len(files))
	g := new(errgroup.Group)
	g.SetLimit(limit)

	for i, e := range files {
		g.Go(func() error {
			key := prefix + "/" + e.Path
			results[i] = Result{Key: key, Err: f.publishOne(ctx, e, tag, key)}
			if results[i].Err != nil {
				metricUploadFailures.Inc()
			}
			return nil
		})
	}
	g.Wait()

	return results
}

func (f *Fanout) publishOne(ctx context.Context, e archive.Entry, tag engine.Tag, key string) error {
	data, err := e.Content()
	if err != nil {
		return err
	}
	data = engine.RewriteIndex(e.Path, data, tag)

	err = f.Dest.Put(ctx, f.Bucket, key, data, content.Resolve(e.Path))
	return errors.Wrapf(err, "failed to publish '%s'", e.Path)
}
