// Package ingest contains the game-archive ingestion pipeline: one
// uploaded zip in, one republished static site and one terminal post
// status out.
package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ryanshappa/GamePlay-sub000/archive"
	"github.com/ryanshappa/GamePlay-sub000/engine"
	"github.com/ryanshappa/GamePlay-sub000/post"
	"github.com/ryanshappa/GamePlay-sub000/storage"
)

// Status is the terminal outcome of one ingestion run, mirroring the
// post statuses the front end polls for.
type Status string

const (
	// StatusValid: the game was republished and is playable.
	StatusValid Status = post.StatusValid
	// StatusInvalid: the archive opened fine but is not a complete
	// export for the declared engine.
	StatusInvalid Status = post.StatusInvalid
	// StatusError: a malformed upload or a system failure. Distinct
	// from invalid so callers can tell a bad upload from a bad day.
	StatusError Status = post.StatusError
)

// Outcome is the terminal result of one pipeline run. Exactly one is
// produced per triggering record.
type Outcome struct {
	Status    Status
	PublicURL string
	Err       error
}

// Pipeline coordinates one ingestion run: fetch the uploaded archive,
// open it, validate it for its engine, fan out every file to the public
// bucket, and report the terminal status to the post API. Collaborators
// are injected; the pipeline owns no clients and keeps no state between
// runs, so runs for different posts may execute fully in parallel.
type Pipeline struct {
	Source storage.ObjectSource
	Dest   storage.ObjectSink
	Posts  post.StatusClient

	// DestBucket receives the republished files.
	DestBucket string
	// PublicURLBase is the public root of DestBucket, no trailing
	// slash, e.g. "https://gameplay-games.s3.amazonaws.com".
	PublicURLBase string
	// Concurrency bounds the per-entry upload fan-out.
	Concurrency int
}

// Run processes one uploaded archive. It always resolves to a terminal
// Outcome and reports it to the post API on a best-effort basis; a
// failed callback is logged, never escalated. Re-running for the same
// post id is safe: validation is pure and destination keys are
// deterministic, so a re-run overwrites the same objects.
func (p *Pipeline) Run(ctx context.Context, bucket, key string) Outcome {
	log := slog.With("runID", uuid.NewString(), "bucket", bucket, "key", key)

	meta, err := p.Source.Head(ctx, bucket, key)
	if err != nil {
		log.Error("failed to read upload metadata", "err", err)
		// No metadata means no post id to report against.
		return p.done(ctx, log, Identity{}, Outcome{Status: StatusError, Err: err})
	}

	id, err := IdentityFromMetadata(meta)
	if err != nil {
		log.Error("upload metadata incomplete", "err", err)
		return p.done(ctx, log, Identity{}, Outcome{Status: StatusError, Err: err})
	}
	log = log.With("postID", id.PostID, "userID", id.UserID, "engine", string(id.Engine))

	data, err := p.Source.Get(ctx, bucket, key)
	if err != nil {
		log.Error("failed to fetch upload", "err", err)
		return p.done(ctx, log, id, Outcome{Status: StatusError, Err: err})
	}

	entries, err := archive.Open(data)
	if err != nil {
		log.Error("failed to open upload as archive", "err", err)
		return p.done(ctx, log, id, Outcome{Status: StatusError, Err: err})
	}

	if !engine.Validate(archive.Paths(entries), id.Engine) {
		log.Info("archive is missing engine-required files")
		return p.done(ctx, log, id, Outcome{
			Status: StatusInvalid,
			Err:    errors.Errorf("archive is not a complete %s web export", id.Engine),
		})
	}

	fanout := &Fanout{Dest: p.Dest, Bucket: p.DestBucket, Concurrency: p.Concurrency}
	results := fanout.Publish(ctx, entries, id.Engine, id.PostID)
	if err := firstFailure(results); err != nil {
		// A partially published game is unplayable; never mark it valid.
		log.Error("publish fan-out failed", "err", err, "entries", len(results))
		return p.done(ctx, log, id, Outcome{Status: StatusError, Err: err})
	}

	publicURL := fmt.Sprintf("%s/%s/index.html", p.PublicURLBase, id.PostID)
	log.Info("archive published", "publicURL", publicURL, "entries", len(results))
	return p.done(ctx, log, id, Outcome{Status: StatusValid, PublicURL: publicURL})
}

// done reports the terminal status to the post API and returns the
// outcome. The callback is best effort: its failure is logged and
// counted, but the outcome stands and siblings in the batch continue.
func (p *Pipeline) done(ctx context.Context, log *slog.Logger, id Identity, o Outcome) Outcome {
	metricOutcomes.WithLabelValues(string(o.Status)).Inc()

	if id.PostID == "" {
		log.Warn("no post id available, skipping status callback", "status", string(o.Status))
		return o
	}

	var err error
	if o.Status == StatusValid {
		err = p.Posts.SetPublished(ctx, id.PostID, o.PublicURL)
	} else {
		err = p.Posts.SetStatus(ctx, id.PostID, string(o.Status))
	}
	if err != nil {
		metricCallbackFailures.Inc()
		log.Error("failed to report post status", "status", string(o.Status), "err", err)
	}
	return o
}

func firstFailure(results []Result) error {
	for _, r := range results {
		if r.Failed() {
			return r.Err
		}
	}
	return nil
}
