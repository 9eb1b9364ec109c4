package model

import (
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// MediaKind tells whether an upload needs audio extraction
type MediaKind string

const (
	MediaKindAudio MediaKind = "audio"
	MediaKindVideo MediaKind = "video"
)

// Containers accepted on upload. The extension alone decides the branch.
var (
	AudioExtensions = []string{"mp3", "m4a", "wav"}
	VideoExtensions = []string{"mp4", "mov"}
)

// SupportedExtensions returns every extension accepted on upload
func SupportedExtensions() []string {
	return append(append([]string{}, AudioExtensions...), VideoExtensions...)
}

// NormalizeExtension lowercases an extension and strips the leading dot.
// It accepts either a bare extension or a filename.
func NormalizeExtension(nameOrExt string) string {
	ext := filepath.Ext(nameOrExt)
	if ext == "" {
		ext = nameOrExt
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// KindOf classifies an extension; ok is false for unsupported containers
func KindOf(ext string) (MediaKind, bool) {
	ext = NormalizeExtension(ext)
	switch {
	case ext == "":
		return "", false
	case lo.Contains(AudioExtensions, ext):
		return MediaKindAudio, true
	case lo.Contains(VideoExtensions, ext):
		return MediaKindVideo, true
	default:
		return "", false
	}
}

// UploadedMedia is one user upload. It is replaced wholesale on the next upload.
type UploadedMedia struct {
	Filename  string
	Extension string
	Data      []byte
}

// NewUploadedMedia builds an upload from the client filename and its bytes
func NewUploadedMedia(filename string, data []byte) UploadedMedia {
	return UploadedMedia{
		Filename:  filepath.Base(filename),
		Extension: NormalizeExtension(filename),
		Data:      data,
	}
}

// Kind returns the media kind derived from the declared extension
func (m UploadedMedia) Kind() (MediaKind, bool) {
	return KindOf(m.Extension)
}

// IsEmpty reports whether there is nothing to process
func (m UploadedMedia) IsEmpty() bool {
	return len(m.Data) == 0
}

// UploadIdentity identifies the upload an extracted audio file was derived from
type UploadIdentity struct {
	Digest   string `json:"digest"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Kind     string `json:"kind"`
}

// ExtractedAudio is the cached audio track for the current upload
type ExtractedAudio struct {
	Path      string
	Extension string
	Converted bool
}
