package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// A 1x1 transparent PNG.
var tinyPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		fw.Write(content)
	}
	mw.Close()
	req := httptest.NewRequest("POST", "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadHandler_Upload(t *testing.T) {
	dir := t.TempDir()
	h := &UploadHandler{Dir: dir, URLPrefix: "/uploads"}

	rr := httptest.NewRecorder()
	h.Upload(rr, multipartRequest(t, UploadField, "me.PNG", tinyPNG))

	if rr.Code != http.StatusOK {
		t.Fatalf("Upload status: got %d, want 200 (%s)", rr.Code, rr.Body.String())
	}
	url, _ := decodeBody(t, rr)["imageUrl"].(string)
	if !strings.HasPrefix(url, "/uploads/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("imageUrl: %q", url)
	}
	saved, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if !bytes.Equal(saved, tinyPNG) {
		t.Error("saved file differs from upload")
	}
}

func TestUploadHandler_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		filename string
		content  []byte
	}{
		{"no file", "", "", nil},
		{"wrong field", "avatar", "me.png", tinyPNG},
		{"disallowed extension", UploadField, "run.sh", []byte("#!/bin/sh\n")},
		{"image extension with text content", UploadField, "fake.png", []byte("<html>not an image</html>")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			h := &UploadHandler{Dir: dir, URLPrefix: "/uploads"}
			rr := httptest.NewRecorder()
			h.Upload(rr, multipartRequest(t, tt.field, tt.filename, tt.content))

			if rr.Code != http.StatusBadRequest {
				t.Errorf("Upload status: got %d, want 400", rr.Code)
			}
			entries, _ := os.ReadDir(dir)
			if len(entries) != 0 {
				t.Errorf("nothing should be saved, found %d files", len(entries))
			}
		})
	}
}
