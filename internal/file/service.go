package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const notFoundCode = "NoSuchKey"

// Service manages the file entity lifecycle on top of a flat object
// store. Each entity occupies the "{id}/" prefix with exactly two
// canonical objects: the uploaded payload and a metadata.json record.
// The metadata object is the source of truth; the store itself is the
// only shared state, so there is no cross-key atomicity anywhere.
type Service struct {
	store  objectStore
	bucket string
	log    *zap.Logger

	nowFunc func() time.Time
	newID   func() string
}

// NewService constructs a file service bound to one bucket.
func NewService(store objectStore, bucket string, log *zap.Logger) *Service {
	return &Service{
		store:   store,
		bucket:  bucket,
		log:     log,
		nowFunc: time.Now,
		newID:   uuid.NewString,
	}
}

// UploadInput carries the caller-supplied fields of an upload.
type UploadInput struct {
	Name        string
	Description string
	CustomID    string
	Filename    string
	ContentType string
}

// Upload stores the payload under "{id}/{filename}" followed by its
// metadata record. A caller-supplied custom id is used verbatim; a
// colliding id silently overwrites the previous entity. The two writes
// are not atomic: if the metadata write fails the payload is left
// orphaned and the entity never becomes visible.
func (s *Service) Upload(ctx context.Context, payload io.ReadSeeker, in UploadInput) (Metadata, error) {
	if payload == nil {
		return Metadata{}, fmt.Errorf("missing file payload")
	}

	id := in.CustomID
	if id == "" {
		id = s.newID()
	}

	filename := SanitizeFilename(in.Filename)
	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// The store write consumes the stream, so measure it first.
	size, err := payload.Seek(0, io.SeekEnd)
	if err != nil {
		return Metadata{}, fmt.Errorf("measure payload: %w", err)
	}
	if _, err := payload.Seek(0, io.SeekStart); err != nil {
		return Metadata{}, fmt.Errorf("rewind payload: %w", err)
	}

	keys := keysFor(id, filename)
	s.log.Debug("uploading payload",
		zap.String("key", keys.payload),
		zap.String("content_type", contentType),
	)

	putOpts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := s.store.PutObject(ctx, s.bucket, keys.payload, payload, size, putOpts); err != nil {
		return Metadata{}, fmt.Errorf("store payload: %w", err)
	}

	now := s.nowFunc().UTC()
	meta := Metadata{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
		CreatedAt:   now,
		UpdatedAt:   now,
		Path:        s.bucket + "/" + keys.payload,
	}

	if err := s.putMetadata(ctx, meta); err != nil {
		return Metadata{}, err
	}

	s.log.Info("file uploaded",
		zap.String("id", id),
		zap.String("name", meta.Name),
		zap.Int64("size", size),
	)
	return meta, nil
}

// List returns one page of metadata records plus the total entity
// count. Entities are discovered by a delimiter listing of top-level
// prefixes, so ordering follows the store's enumeration (lexicographic
// by id, not creation order) and the result is never a point-in-time
// snapshot. Entities whose metadata cannot be fetched or parsed are
// skipped rather than failing the page.
func (s *Service) List(ctx context.Context, page, limit int) ([]Metadata, int, error) {
	ids, err := s.listIDs(ctx)
	if err != nil {
		return nil, 0, err
	}
	total := len(ids)

	start := (page - 1) * limit
	end := start + limit
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	s.log.Debug("listing files",
		zap.Int("total", total),
		zap.Int("page", page),
		zap.Int("limit", limit),
	)

	files := make([]Metadata, 0, end-start)
	for _, id := range ids[start:end] {
		meta, err := s.getMetadata(ctx, id)
		if err != nil {
			s.log.Warn("skipping file with unreadable metadata",
				zap.String("id", id),
				zap.Error(err),
			)
			continue
		}
		files = append(files, meta)
	}

	return files, total, nil
}

// Update applies the recognized mutable fields (name, description)
// from the given mapping, bumps updated_at even when nothing changed,
// and rewrites the metadata object. Unknown keys are ignored.
func (s *Service) Update(ctx context.Context, id string, fields map[string]interface{}) (Metadata, error) {
	meta, err := s.getMetadata(ctx, id)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			s.log.Warn("file not found for update", zap.String("id", id))
			return Metadata{}, ErrFileNotFound
		}
		return Metadata{}, err
	}

	if name, ok := fields["name"].(string); ok {
		meta.Name = name
	}
	if description, ok := fields["description"].(string); ok {
		meta.Description = description
	}
	meta.UpdatedAt = s.nowFunc().UTC()

	if err := s.putMetadata(ctx, meta); err != nil {
		return Metadata{}, err
	}

	s.log.Info("file updated", zap.String("id", id))
	return meta, nil
}

// Delete removes every object under the entity prefix. Existence is
// probed via the metadata object alone: a stray payload without
// metadata still reports not-found and is left untouched. The batch
// removal is best effort; partial failures are logged, not surfaced.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.store.StatObject(ctx, s.bucket, metadataKey(id), minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == notFoundCode {
			s.log.Warn("file not found for deletion", zap.String("id", id))
			return ErrFileNotFound
		}
		return fmt.Errorf("stat metadata: %w", err)
	}

	keys := keysFor(id, "")
	var objects []minio.ObjectInfo
	for obj := range s.store.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    keys.prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return fmt.Errorf("list objects under %q: %w", keys.prefix, obj.Err)
		}
		objects = append(objects, obj)
	}

	objectsCh := make(chan minio.ObjectInfo, len(objects))
	for _, obj := range objects {
		objectsCh <- obj
	}
	close(objectsCh)

	for removeErr := range s.store.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		s.log.Warn("object removal failed",
			zap.String("key", removeErr.ObjectName),
			zap.Error(removeErr.Err),
		)
	}

	s.log.Info("file deleted",
		zap.String("id", id),
		zap.Int("objects", len(objects)),
	)
	return nil
}

// listIDs enumerates entity ids from the top-level common prefixes.
// The universe is whatever a single listing pass yields; an entity
// count beyond the store's listing limit truncates the result.
func (s *Service) listIDs(ctx context.Context) ([]string, error) {
	var ids []string
	for obj := range s.store.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: false}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list entity prefixes: %w", obj.Err)
		}
		// loose top-level objects are not entities
		if !strings.HasSuffix(obj.Key, "/") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(obj.Key, "/"))
	}
	return ids, nil
}

func (s *Service) getMetadata(ctx context.Context, id string) (Metadata, error) {
	body, err := s.store.GetObject(ctx, s.bucket, metadataKey(id), minio.GetObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == notFoundCode {
			return Metadata{}, ErrFileNotFound
		}
		return Metadata{}, fmt.Errorf("fetch metadata: %w", err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		// minio defers missing-key errors until the first read
		if minio.ToErrorResponse(err).Code == notFoundCode {
			return Metadata{}, ErrFileNotFound
		}
		return Metadata{}, fmt.Errorf("read metadata: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return Metadata{}, fmt.Errorf("decode metadata: %w", err)
	}
	return meta, nil
}

func (s *Service) putMetadata(ctx context.Context, meta Metadata) error {
	body, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	putOpts := minio.PutObjectOptions{ContentType: "application/json"}
	if _, err := s.store.PutObject(ctx, s.bucket, metadataKey(meta.ID), bytes.NewReader(body), int64(len(body)), putOpts); err != nil {
		return fmt.Errorf("store metadata: %w", err)
	}
	return nil
}
