package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Artifact struct {
	Name string
	MIME string
	Data []byte
}

// Handle is a temporary reference to an artifact awaiting delivery. Release
// frees it and must be called once delivery has been attempted.
type Handle interface {
	Deliver(ctx context.Context) error
	Release() error
}

type Sink interface {
	Open(ctx context.Context, a Artifact) (Handle, error)
}

var ErrBlobNotFound = errors.New("blob not found")

// BlobStore holds artifacts behind short-lived blob: URLs.
type BlobStore struct {
	mu    sync.Mutex
	blobs map[string]Artifact
}

func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: map[string]Artifact{}}
}

func (b *BlobStore) Create(a Artifact) string {
	url := "blob:" + uuid.NewString()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blobs[url] = a
	return url
}

func (b *BlobStore) Get(url string) (Artifact, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.blobs[url]
	if !ok {
		return Artifact{}, ErrBlobNotFound
	}
	return a, nil
}

func (b *BlobStore) Revoke(url string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.blobs[url]; !ok {
		return ErrBlobNotFound
	}
	delete(b.blobs, url)
	return nil
}

func (b *BlobStore) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.blobs)
}

// ResponseSink delivers artifacts as HTTP attachments.
type ResponseSink struct {
	c     *fiber.Ctx
	blobs *BlobStore
}

func NewResponseSink(c *fiber.Ctx, blobs *BlobStore) *ResponseSink {
	return &ResponseSink{c: c, blobs: blobs}
}

func (s *ResponseSink) Open(_ context.Context, a Artifact) (Handle, error) {
	return &responseHandle{sink: s, url: s.blobs.Create(a)}, nil
}

type responseHandle struct {
	sink *ResponseSink
	url  string
}

func (h *responseHandle) Deliver(_ context.Context) error {
	a, err := h.sink.blobs.Get(h.url)
	if err != nil {
		return err
	}
	h.sink.c.Attachment(a.Name)
	h.sink.c.Set(fiber.HeaderContentType, a.MIME+"; charset=utf-8")
	return h.sink.c.Send(a.Data)
}

func (h *responseHandle) Release() error {
	return h.sink.blobs.Revoke(h.url)
}

// FileSink writes artifacts into Dir. Data lands in a temporary file first
// and is renamed into place on delivery.
type FileSink struct {
	Dir string
}

func (s FileSink) Open(_ context.Context, a Artifact) (Handle, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(s.Dir, "."+a.Name+".*.tmp")
	if err != nil {
		return nil, err
	}
	if _, err := tmp.Write(a.Data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, err
	}
	return &fileHandle{tmp: tmp.Name(), dest: filepath.Join(s.Dir, a.Name)}, nil
}

type fileHandle struct {
	tmp  string
	dest string
}

func (h *fileHandle) Deliver(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Rename(h.tmp, h.dest); err != nil {
		return fmt.Errorf("deliver %s: %w", filepath.Base(h.dest), err)
	}
	return nil
}

func (h *fileHandle) Release() error {
	err := os.Remove(h.tmp)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (h *fileHandle) Path() string {
	return h.dest
}
