package media

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir(), 1024, 4096, 2048)
	require.NoError(t, err)

	return store
}

func multipartUpload(t *testing.T, filename, contentType string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	header := form.File["file"][0]
	file, err := header.Open()
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })

	return file, header
}

func TestStoreSave(t *testing.T) {
	store := newTestStore(t)

	file, header := multipartUpload(t, "clip.mp4", "video/mp4", []byte("fake video bytes"))

	info, err := store.Save(file, header, KindVideo)
	require.NoError(t, err)

	assert.Equal(t, KindVideo, info.Kind)
	assert.Equal(t, int64(16), info.Size)
	assert.True(t, strings.HasSuffix(info.Filename, ".mp4"))
	assert.NotEqual(t, "clip.mp4", info.Filename)

	_, err = os.Stat(filepath.Join(store.root, info.Path))
	assert.NoError(t, err)
}

func TestStoreSaveRejectsWrongContentType(t *testing.T) {
	store := newTestStore(t)

	file, header := multipartUpload(t, "notes.txt", "text/plain", []byte("hello"))

	_, err := store.Save(file, header, KindDocument)
	assert.ErrorIs(t, err, domain.ErrInvalidMediaType)
}

func TestStoreSaveRejectsOversizedFile(t *testing.T) {
	store := newTestStore(t)

	file, header := multipartUpload(t, "big.png", "image/png", bytes.Repeat([]byte("x"), 2048))

	_, err := store.Save(file, header, KindImage)
	assert.ErrorIs(t, err, domain.ErrMediaTooLarge)
}

func TestStoreOpenMissingFile(t *testing.T) {
	store := newTestStore(t)

	_, _, err := store.Open(KindVideo, "missing.mp4")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestStoreResolveRejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	for _, filename := range []string{"../secret", "a/b.mp4", "..", ".hidden", ""} {
		_, _, err := store.Open(KindVideo, filename)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound, "filename %q", filename)
	}
}

func TestStoreRemove(t *testing.T) {
	store := newTestStore(t)

	file, header := multipartUpload(t, "pic.png", "image/png", []byte("img"))
	info, err := store.Save(file, header, KindImage)
	require.NoError(t, err)

	require.NoError(t, store.Remove(KindImage, info.Filename))
	assert.ErrorIs(t, store.Remove(KindImage, info.Filename), domain.ErrRecordNotFound)
}

func TestKindForUploadType(t *testing.T) {
	kind, ok := KindForUploadType("thumbnail")
	assert.True(t, ok)
	assert.Equal(t, KindImage, kind)

	_, ok = KindForUploadType("archive")
	assert.False(t, ok)
}
