package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/ryanshappa/GamePlay-sub000/content"
)

type fakeSource struct {
	meta    map[string]string
	data    []byte
	headErr error
	getErr  error
}

func (s *fakeSource) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.data, nil
}

func (s *fakeSource) Head(ctx context.Context, bucket, key string) (map[string]string, error) {
	if s.headErr != nil {
		return nil, s.headErr
	}
	return s.meta, nil
}

type put struct {
	data []byte
	h    content.Headers
}

type fakeSink struct {
	mu      sync.Mutex
	puts    map[string]put
	failKey string
}

func newFakeSink() *fakeSink {
	return &fakeSink{puts: make(map[string]put)}
}

func (s *fakeSink) Put(ctx context.Context, bucket, key string, data []byte, h content.Headers) error {
	if key == s.failKey {
		return errors.Errorf("injected failure for '%s'", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts[key] = put{data: data, h: h}
	return nil
}

type statusCall struct {
	postID    string
	status    string
	publicURL string
}

type fakeStatusClient struct {
	mu    sync.Mutex
	calls []statusCall
	err   error
}

func (c *fakeStatusClient) SetPublished(ctx context.Context, postID, publicURL string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, statusCall{postID: postID, status: "valid", publicURL: publicURL})
	return c.err
}

func (c *fakeStatusClient) SetStatus(ctx context.Context, postID, status string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, statusCall{postID: postID, status: status})
	return c.err
}

func createArchive(t *testing.T, files map[string][]byte) []byte {
	t.Helper()

	buf := bytes.Buffer{}
	zw := zip.NewWriter(&buf)
	for name, data := range files {
		w, err := zw.Create(name)
		assert.Nil(t, err)
		if data != nil {
			_, err = io.Copy(w, bytes.NewReader(data))
			assert.Nil(t, err)
		}
	}
	assert.Nil(t, zw.Close())

	return buf.Bytes()
}
