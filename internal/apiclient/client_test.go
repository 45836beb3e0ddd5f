package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"roamcms/internal/models"
)

func TestListCampersSendsFilterParams(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(camperList{
			Items: []models.Camper{{Title: "VW California"}},
			Total: 1,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	campers, total, err := c.ListCampers(context.Background(), Filter{
		Query:    "california",
		Category: "Electricity",
		Page:     2,
		PageSize: 10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(campers) != 1 {
		t.Fatalf("campers=%d total=%d", len(campers), total)
	}

	for key, want := range map[string]string{
		"query":    "california",
		"category": "Electricity",
		"page":     "2",
		"pageSize": "10",
	} {
		if got := gotQuery[key]; len(got) != 1 || got[0] != want {
			t.Errorf("query %s = %v, want %s", key, got, want)
		}
	}
	if _, ok := gotQuery["status"]; ok {
		t.Error("zero-valued status must be omitted")
	}
}

func TestErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"Titel bereits vergeben"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CreateCamper(context.Background(), &models.Camper{Title: "Doppelt"})
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err type %T", err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if got := Message(err, "fallback"); got != "Titel bereits vergeben" {
		t.Errorf("Message = %q", got)
	}
}

func TestErrorNestedDataMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"data":{"message":"fehlende Felder"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.DeleteCamper(context.Background(), 7)
	if got := Message(err, "fallback"); got != "fehlende Felder" {
		t.Errorf("Message = %q", got)
	}
}

func TestMessageFallsBackWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.DeleteArticle(context.Background(), 3)
	if got := Message(err, "保存失败"); got != "保存失败" {
		t.Errorf("Message = %q", got)
	}
}

func TestLoginInstallsBearerToken(t *testing.T) {
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(loginResponse{Token: "tok-123"})
		default:
			authHeader = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(models.Profile{Name: "Anna"})
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Login(context.Background(), "anna@example.com", "geheim"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetProfile(context.Background()); err != nil {
		t.Fatal(err)
	}
	if authHeader != "Bearer tok-123" {
		t.Errorf("Authorization = %q", authHeader)
	}
}

func TestGetCamperByTitleEscapesPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode(models.Camper{Title: "Ford Transit Nugget"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	camper, err := c.GetCamperByTitle(context.Background(), "Ford Transit Nugget")
	if err != nil {
		t.Fatal(err)
	}
	if camper.Title != "Ford Transit Nugget" {
		t.Errorf("title = %q", camper.Title)
	}
	if gotPath != "/campers/Ford%20Transit%20Nugget" {
		t.Errorf("path = %q", gotPath)
	}
}
