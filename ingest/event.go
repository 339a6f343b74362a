package ingest

import (
	"encoding/json"
	"io"
	"net/url"

	"github.com/pkg/errors"

	"github.com/ryanshappa/GamePlay-sub000/engine"
)

// Notification is the storage-bucket event batch that triggers
// ingestion, in the S3 notification shape. Each record references one
// uploaded archive.
type Notification struct {
	Records []Record `json:"Records"`
}

type Record struct {
	S3 struct {
		Bucket struct {
			Name string `json:"name"`
		} `json:"bucket"`
		Object struct {
			Key string `json:"key"`
		} `json:"object"`
	} `json:"s3"`
}

// ObjectKey returns the record's object key. Keys arrive URL-encoded
// with '+' meaning space.
func (r Record) ObjectKey() (string, error) {
	key, err := url.QueryUnescape(r.S3.Object.Key)
	if err != nil {
		return "", errors.Wrapf(err, "could not decode object key '%s'", r.S3.Object.Key)
	}
	return key, nil
}

func ParseNotification(r io.Reader) (Notification, error) {
	var n Notification
	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return Notification{}, errors.Wrap(err, "failed to decode event notification")
	}
	if len(n.Records) == 0 {
		return Notification{}, errors.New("event notification contains no records")
	}
	return n, nil
}

// Identity correlates one ingestion run with its post. The core never
// mutates the post record itself; PostID is an opaque key passed back
// to the post API and used as the destination prefix.
type Identity struct {
	PostID string
	UserID string
	Engine engine.Tag
}

// IdentityFromMetadata builds an Identity from upload object metadata.
// Keys must already be lower-cased (storage.ObjectSource.Head
// guarantees this), which absorbs the postId/postid casing drift seen
// across upload clients.
func IdentityFromMetadata(meta map[string]string) (Identity, error) {
	id := Identity{
		PostID: meta["postid"],
		UserID: meta["userid"],
		Engine: engine.ParseTag(meta["engine"]),
	}
	if id.PostID == "" {
		return Identity{}, errors.New("upload metadata missing 'postId'")
	}
	if id.UserID == "" {
		return Identity{}, errors.New("upload metadata missing 'userId'")
	}
	if id.Engine == "" {
		return Identity{}, errors.New("upload metadata missing 'engine'")
	}
	return id, nil
}
