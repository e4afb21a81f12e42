// Package resume persists the most recently uploaded resume for a
// session. At most one blob is live per session; a new upload
// overwrites it.
package resume

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"salaryscope/internal/shared/storage/object"
	"salaryscope/internal/shared/util"
)

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "no cached resume" }

// Blob is the raw bytes plus MIME type of an uploaded resume.
type Blob struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

// Cache stores one resume blob per session token, encoded to a JSON
// document (bytes as base64) in the object store. Save and Load are
// MIME-agnostic; PDF enforcement happens upstream of Save.
type Cache struct {
	store object.ObjectStore
}

func NewCache(store object.ObjectStore) *Cache {
	return &Cache{store: store}
}

func blobKey(token string) string {
	return util.StorageKey(token) + "/resume.json"
}

// Save encodes the blob and stores it under the session's slot,
// overwriting any previous upload.
func (c *Cache) Save(ctx context.Context, token string, blob Blob) error {
	if len(blob.Data) == 0 {
		return errors.New("empty resume payload")
	}
	data, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("encode resume blob: %w", err)
	}
	if _, err := c.store.SaveWithKey(ctx, blobKey(token), "application/json", bytes.NewReader(data)); err != nil {
		return fmt.Errorf("store resume blob: %w", err)
	}
	return nil
}

// Load decodes the session's cached resume back to raw bytes + MIME
// type. The round trip is byte-exact.
func (c *Cache) Load(ctx context.Context, token string) (Blob, error) {
	rc, err := c.store.Open(ctx, blobKey(token))
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return Blob{}, ErrNotFound
		}
		return Blob{}, fmt.Errorf("open resume blob: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return Blob{}, fmt.Errorf("read resume blob: %w", err)
	}
	var blob Blob
	if err := json.Unmarshal(data, &blob); err != nil {
		// A corrupt slot reads as absent, matching the session-slot rule.
		return Blob{}, ErrNotFound
	}
	return blob, nil
}

// Clear drops the session's cached resume, if any.
func (c *Cache) Clear(ctx context.Context, token string) error {
	return c.store.Delete(ctx, blobKey(token))
}
