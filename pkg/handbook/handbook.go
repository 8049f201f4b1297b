// Package handbook defines the document schema for the employee-handbook
// search index. Indexing itself is done by an external service; this
// package only models and validates the chunks uploaded to it.
package handbook

import (
	"errors"
	"fmt"
)

// VectorDimensions is the embedding size the index expects.
const VectorDimensions = 1536

// ErrInvalidChunk indicates a chunk that cannot be uploaded to the index.
var ErrInvalidChunk = errors.New("invalid handbook chunk")

// Chunk is one indexable slice of a handbook document.
type Chunk struct {
	// ChunkID uniquely identifies the chunk within the index.
	ChunkID string `json:"chunk_id"`

	// ParentID identifies the document this chunk was split from.
	ParentID string `json:"parent_id"`

	// Content is the chunk's text.
	Content string `json:"content"`

	// Title is the source document's title.
	Title string `json:"title"`

	// URL points at the source document.
	URL string `json:"url"`

	// Filepath is the source file within the handbook repository.
	Filepath string `json:"filepath"`

	// ContentVector is the content's embedding, VectorDimensions wide.
	ContentVector []float32 `json:"content_vector"`
}

// Validate checks the fields the index requires.
func (c Chunk) Validate() error {
	if c.ChunkID == "" {
		return fmt.Errorf("%w: chunk_id is required", ErrInvalidChunk)
	}
	if c.ParentID == "" {
		return fmt.Errorf("%w: parent_id is required", ErrInvalidChunk)
	}
	if c.Content == "" {
		return fmt.Errorf("%w: content is empty", ErrInvalidChunk)
	}
	if len(c.ContentVector) != VectorDimensions {
		return fmt.Errorf("%w: content_vector has %d dimensions, want %d",
			ErrInvalidChunk, len(c.ContentVector), VectorDimensions)
	}
	return nil
}
