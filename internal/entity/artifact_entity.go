package entity

import (
	"github.com/google/uuid"
)

type ArtifactKind string

const (
	ArtifactText ArtifactKind = "text"
	ArtifactFile ArtifactKind = "file"
)

// Artifact is one unit of user-submitted content queued for scoring. A file
// artifact owns its preview handle exclusively until Release is called; the
// pipeline releases every artifact when the batch settles, the UI releases
// one when the user removes it from the queue.
type Artifact struct {
	ID          string
	Kind        ArtifactKind
	Content     string // text payload, empty for file artifacts
	FilePath    string // binary handle, empty for text artifacts
	Description string

	preview  func() error // allocated preview resource, nil if none
	released bool
}

func NewTextArtifact(content string) *Artifact {
	return &Artifact{
		ID:      uuid.New().String(),
		Kind:    ArtifactText,
		Content: content,
	}
}

func NewFileArtifact(path, description string) *Artifact {
	return &Artifact{
		ID:          uuid.New().String(),
		Kind:        ArtifactFile,
		FilePath:    path,
		Description: description,
	}
}

// AttachPreview registers a cleanup hook for a preview resource allocated for
// this artifact (e.g. a video thumbnail). Release invokes it exactly once.
func (a *Artifact) AttachPreview(release func() error) {
	a.preview = release
}

func (a *Artifact) Release() error {
	if a.released {
		return nil
	}
	a.released = true
	if a.preview == nil {
		return nil
	}
	return a.preview()
}

func (a *Artifact) Released() bool {
	return a.released
}
