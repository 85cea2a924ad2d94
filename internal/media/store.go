package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/google/uuid"
)

type Kind string

const (
	KindImage    Kind = "images"
	KindVideo    Kind = "videos"
	KindDocument Kind = "documents"
)

var allowedContentTypes = map[Kind]map[string]bool{
	KindImage: {
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	},
	KindVideo: {
		"video/mp4":       true,
		"video/quicktime": true,
		"video/x-msvideo": true,
		"video/webm":      true,
		"video/mpeg":      true,
	},
	KindDocument: {
		"application/pdf":    true,
		"application/msword": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	},
}

// ValidKind reports whether s names a known storage subdirectory.
func ValidKind(s string) bool {
	switch Kind(s) {
	case KindImage, KindVideo, KindDocument:
		return true
	}
	return false
}

// FileInfo describes a stored upload.
type FileInfo struct {
	Filename    string
	Kind        Kind
	Path        string
	Size        int64
	ContentType string
}

// Store keeps uploads on the local filesystem under root, one subdirectory
// per kind. Filenames are randomized, so concurrent uploads never contend
// on a path.
type Store struct {
	root     string
	maxSizes map[Kind]int64
}

func NewStore(root string, maxImageSize, maxVideoSize, maxDocumentSize int64) (*Store, error) {
	for _, kind := range []Kind{KindImage, KindVideo, KindDocument} {
		dir := filepath.Join(root, string(kind))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
		}
	}

	return &Store{
		root: root,
		maxSizes: map[Kind]int64{
			KindImage:    maxImageSize,
			KindVideo:    maxVideoSize,
			KindDocument: maxDocumentSize,
		},
	}, nil
}

// Save validates the upload against kind's content-type allow-list and size
// cap, then writes it under a randomized name. The partially written file is
// removed on any failure.
func (s *Store) Save(file multipart.File, header *multipart.FileHeader, kind Kind) (*FileInfo, error) {
	contentType := header.Header.Get("Content-Type")
	if !allowedContentTypes[kind][contentType] {
		return nil, domain.ErrInvalidMediaType
	}

	maxSize := s.maxSizes[kind]
	if header.Size > maxSize {
		return nil, domain.ErrMediaTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	filename := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
	path := filepath.Join(s.root, string(kind), filename)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}

	// Cap the copy one byte past the limit so a lying Content-Length header
	// cannot smuggle an oversized body past the check above.
	written, err := io.Copy(dst, io.LimitReader(file, maxSize+1))
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err == nil && written > maxSize {
		err = domain.ErrMediaTooLarge
	}
	if err != nil {
		os.Remove(path)
		return nil, err
	}

	return &FileInfo{
		Filename:    filename,
		Kind:        kind,
		Path:        filepath.Join(string(kind), filename),
		Size:        written,
		ContentType: contentType,
	}, nil
}

// Open returns the file handle and stat for a stored upload. The caller owns
// the handle and must close it on every exit path.
func (s *Store) Open(kind Kind, filename string) (*os.File, os.FileInfo, error) {
	path, err := s.resolve(kind, filename)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, domain.ErrRecordNotFound
		}
		return nil, nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	return f, fi, nil
}

func (s *Store) Stat(kind Kind, filename string) (os.FileInfo, error) {
	path, err := s.resolve(kind, filename)
	if err != nil {
		return nil, err
	}

	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	return fi, nil
}

func (s *Store) Remove(kind Kind, filename string) error {
	path, err := s.resolve(kind, filename)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ErrRecordNotFound
		}
		return err
	}

	return nil
}

// resolve rejects anything that is not a bare filename inside kind's
// subdirectory, closing the path traversal hole.
func (s *Store) resolve(kind Kind, filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", domain.ErrRecordNotFound
	}

	return filepath.Join(s.root, string(kind), filename), nil
}

// KindForContentType maps a declared content type to its storage kind.
func KindForContentType(contentType string) (Kind, bool) {
	for kind, types := range allowedContentTypes {
		if types[contentType] {
			return kind, true
		}
	}

	return "", false
}

// KindForUploadType maps the public ?type= query values to storage kinds.
func KindForUploadType(uploadType string) (Kind, bool) {
	switch uploadType {
	case "thumbnail", "image":
		return KindImage, true
	case "video":
		return KindVideo, true
	case "document":
		return KindDocument, true
	}

	return "", false
}
