package ingest

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// HandleUploadEvents accepts a storage-bucket notification batch and
// runs the ingestion pipeline once per record. Records are isolated:
// one record's failure never aborts its siblings, and every record
// resolves to exactly one terminal status. The response summarizes the
// batch; redelivery on failure is the notifier's job, so a single bad
// record never fails the request.
func HandleUploadEvents(p *Pipeline) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		n, err := ParseNotification(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		statuses := make([]string, 0, len(n.Records))
		for _, rec := range n.Records {
			bucket := rec.S3.Bucket.Name

			key, err := rec.ObjectKey()
			if err != nil {
				slog.Error("skipping record with undecodable key", "bucket", bucket, "err", err)
				metricOutcomes.WithLabelValues(string(StatusError)).Inc()
				statuses = append(statuses, string(StatusError))
				continue
			}

			outcome := p.Run(r.Context(), bucket, key)
			statuses = append(statuses, string(outcome.Status))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"processed": len(statuses),
			"statuses":  statuses,
		})
	})
}
