package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"roamcms/internal/apiclient"
	"roamcms/internal/editor"
	"roamcms/internal/models"
	"roamcms/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type stubUploader struct {
	calls int
	url   string
}

func (u *stubUploader) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	u.calls++
	return u.url, nil
}

func setupEditorRouter(t *testing.T) (*gin.Engine, *services.FormService, *stubUploader) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := apiclient.New("http://127.0.0.1:0")
	uploads := &stubUploader{url: "https://cdn.example/u.jpg"}
	formService := services.NewFormService(api, uploads, editor.NewStore(), zerolog.Nop())
	geoService := services.NewGeoService("", "")
	h := NewEditorHandler(formService, geoService, uploads)

	r := gin.New()
	r.POST("/admin/editor/kind", h.SelectKind)
	r.POST("/admin/editor/commit", h.CommitBlock)
	r.POST("/admin/editor/edit/:index", h.EditBlock)
	r.POST("/admin/editor/remove/:index", h.RemoveBlock)
	r.GET("/admin/places", h.Places)

	return r, formService, uploads
}

func postValues(r *gin.Engine, path string, values url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestSelectKindRejectsImageForCamper(t *testing.T) {
	r, formService, _ := setupEditorRouter(t)
	sess := formService.StartCreate(models.KindCamper)

	w := postValues(r, "/admin/editor/kind", url.Values{"sid": {sess.ID}, "type": {"img"}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", w.Code)
	}

	w = postValues(r, "/admin/editor/kind", url.Values{"sid": {sess.ID}, "type": {"p"}})
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", w.Code)
	}
}

func TestCommitAndRemoveBlockFlow(t *testing.T) {
	r, formService, _ := setupEditorRouter(t)
	sess := formService.StartCreate(models.KindArticle)

	postValues(r, "/admin/editor/kind", url.Values{"sid": {sess.ID}, "type": {"p"}})
	w := postValues(r, "/admin/editor/commit", url.Values{"sid": {sess.ID}, "text": {"第一段"}})
	if w.Code != http.StatusOK {
		t.Fatalf("commit code = %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Status  string         `json:"status"`
		Blocks  []models.Block `json:"blocks"`
		Excerpt string         `json:"excerpt"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Blocks) != 1 || resp.Blocks[0].Text != "第一段" {
		t.Fatalf("blocks = %+v", resp.Blocks)
	}
	if resp.Excerpt != "第一段" {
		t.Errorf("excerpt = %q", resp.Excerpt)
	}

	w = postValues(r, "/admin/editor/remove/0", url.Values{"sid": {sess.ID}})
	if w.Code != http.StatusOK {
		t.Fatalf("remove code = %d", w.Code)
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Blocks) != 0 {
		t.Errorf("blocks after remove = %+v", resp.Blocks)
	}
}

func TestCommitImageBlockUploads(t *testing.T) {
	r, formService, uploads := setupEditorRouter(t)
	sess := formService.StartCreate(models.KindArticle)

	postValues(r, "/admin/editor/kind", url.Values{"sid": {sess.ID}, "type": {"img"}})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("sid", sess.ID)
	part, _ := mw.CreateFormFile("image", "photo.jpg")
	part.Write([]byte{0xff, 0xd8})
	mw.Close()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/editor/commit", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("code = %d: %s", w.Code, w.Body.String())
	}
	if uploads.calls != 1 {
		t.Errorf("upload calls = %d, want 1", uploads.calls)
	}

	var resp struct {
		Blocks []models.Block `json:"blocks"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Blocks) != 1 || resp.Blocks[0].URL != "https://cdn.example/u.jpg" {
		t.Fatalf("blocks = %+v", resp.Blocks)
	}
}

func TestUnknownSessionIsRejected(t *testing.T) {
	r, _, _ := setupEditorRouter(t)

	w := postValues(r, "/admin/editor/kind", url.Values{"sid": {"nope"}, "type": {"p"}})
	if w.Code != http.StatusNotFound {
		t.Fatalf("code = %d, want 404", w.Code)
	}
}

func TestPlacesDisabledReturnsEmpty(t *testing.T) {
	r, _, _ := setupEditorRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/places?input=Zur", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Suggestions) != 0 {
		t.Errorf("suggestions = %v", resp.Suggestions)
	}
}
