package app

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/edusphere/elearning-platform/internal/media"
	"github.com/go-chi/chi/v5"
)

type uploadResponse struct {
	Filename    string `json:"filename"`
	Url         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

func (app *Application) UploadMedia(w http.ResponseWriter, r *http.Request) {
	uploadType := r.URL.Query().Get("type")

	kind, ok := media.KindForUploadType(uploadType)
	if !ok {
		app.badRequestResponse(w, r, errors.New("type must be one of thumbnail, image, video or document"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		app.badRequestResponse(w, r, errors.New("a file must be provided under the 'file' form field"))
		return
	}
	defer file.Close()

	info, err := app.media.Save(file, header, kind)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidMediaType), errors.Is(err, domain.ErrMediaTooLarge):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	url := fmt.Sprintf("/media/info/%s/%s", info.Kind, info.Filename)
	if info.Kind == media.KindVideo {
		url = fmt.Sprintf("/media/stream/%s", info.Filename)
	}

	resp := uploadResponse{
		Filename:    info.Filename,
		Url:         url,
		Size:        info.Size,
		ContentType: info.ContentType,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// StreamVideo serves a stored video, honoring single-range requests of the
// form "bytes=start-end" so players can seek.
func (app *Application) StreamVideo(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	file, stat, err := app.media.Open(media.KindVideo, filename)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}
	defer file.Close()

	size := stat.Size()
	contentType := contentTypeForVideo(filename)

	rangeHeader := r.Header.Get("Range")
	if rangeHeader == "" {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
		w.Header().Set("Accept-Ranges", "bytes")
		w.WriteHeader(http.StatusOK)

		io.Copy(w, file)
		return
	}

	start, end, err := parseRange(rangeHeader, size)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if _, err := file.Seek(start, io.SeekStart); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	length := end - start + 1

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(length, 10))
	w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, size))
	w.Header().Set("Accept-Ranges", "bytes")
	w.WriteHeader(http.StatusPartialContent)

	io.CopyN(w, file, length)
}

// parseRange handles a single "bytes=start-end" range. An omitted end means
// the rest of the file. Multi-range and suffix forms are rejected.
func parseRange(header string, size int64) (int64, int64, error) {
	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok || strings.Contains(spec, ",") {
		return 0, 0, errors.New("invalid Range header")
	}

	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok || startStr == "" {
		return 0, 0, errors.New("invalid Range header")
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil || start < 0 || start >= size {
		return 0, 0, errors.New("invalid Range header")
	}

	end := size - 1
	if endStr != "" {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil || end < start {
			return 0, 0, errors.New("invalid Range header")
		}

		if end >= size {
			end = size - 1
		}
	}

	return start, end, nil
}

func contentTypeForVideo(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".webm"):
		return "video/webm"
	case strings.HasSuffix(filename, ".mkv"):
		return "video/x-matroska"
	default:
		return "video/mp4"
	}
}

func (app *Application) GetMediaInfo(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	filename := chi.URLParam(r, "filename")

	if !media.ValidKind(kind) {
		app.badRequestResponse(w, r, errors.New("invalid media kind"))
		return
	}

	stat, err := app.media.Stat(media.Kind(kind), filename)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := map[string]any{
		"filename":   filename,
		"kind":       kind,
		"size":       stat.Size(),
		"modifiedAt": stat.ModTime(),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	filename := chi.URLParam(r, "filename")

	if !media.ValidKind(kind) {
		app.badRequestResponse(w, r, errors.New("invalid media kind"))
		return
	}

	err := app.media.Remove(media.Kind(kind), filename)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
