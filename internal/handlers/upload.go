package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadField is the multipart field carrying the image.
const UploadField = "profilePic"

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// UploadHandler stores profile pictures on local disk under Dir, served back
// from URLPrefix.
type UploadHandler struct {
	Dir       string
	URLPrefix string
	Errors    Errors
}

// Upload saves the "profilePic" file as <uuid><ext> and returns {"imageUrl": ...}.
// Only image extensions whose content also sniffs as an image are accepted.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile(UploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			JSONError(w, "file too large", http.StatusRequestEntityTooLarge)
			return
		}
		JSONError(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		JSONError(w, "unsupported file type", http.StatusBadRequest)
		return
	}

	head := make([]byte, 512)
	n, _ := io.ReadFull(file, head)
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		JSONError(w, "unsupported file type", http.StatusBadRequest)
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	name := uuid.NewString() + ext
	if err := h.save(file, name); err != nil {
		slog.Error("upload save failed", "file", name, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"imageUrl": strings.TrimRight(h.URLPrefix, "/") + "/" + name})
}

func (h *UploadHandler) save(src io.Reader, name string) error {
	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return err
	}
	dst, err := os.OpenFile(filepath.Join(h.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
