package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
)

func multipartPhoto(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestPhotoUpload(t *testing.T) {
	app := newTestApp()
	body, contentType := multipartPhoto(t, "photo", "table.jpg", []byte("jpeg-bytes"))
	req := httptest.NewRequest("POST", "/v1/uploads/photos", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	app.PhotoUpload(rr, req)

	if rr.Code != 201 {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp["url"], "table.jpg") {
		t.Fatalf("unexpected url: %q", resp["url"])
	}
	if app.Photos.(*stubPhotoStore).saved != 1 {
		t.Fatal("expected one stored photo")
	}
}

func TestPhotoUpload_MissingField(t *testing.T) {
	app := newTestApp()
	body, contentType := multipartPhoto(t, "file", "table.jpg", []byte("jpeg-bytes"))
	req := httptest.NewRequest("POST", "/v1/uploads/photos", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	app.PhotoUpload(rr, req)

	if rr.Code != 400 {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
