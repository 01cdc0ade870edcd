package api

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"license-gateway/internal/database"
)

func createLicenseURL(key, expiration, maxUser, adminKey string) string {
	q := url.Values{}
	q.Set("Licence", key)
	q.Set("ExpirationDate", expiration)
	if maxUser != "" {
		q.Set("MAXUSER", maxUser)
	}
	q.Set("AdminKey", adminKey)
	return "/CreateLicense?" + q.Encode()
}

func TestCreateLicense(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(store)

	w := doRequest(server, http.MethodPost, createLicenseURL("abc-123", "2099-06-01", "5", testAdminKey), "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	if body := decodeBody(t, w); body["status"] != "license created" {
		t.Errorf("expected status 'license created', got %v", body["status"])
	}

	license, _ := store.GetLicenseByKey(context.Background(), "abc-123")
	if license == nil {
		t.Fatal("license was not persisted")
	}
	if license.MaxUsers != 5 {
		t.Errorf("expected max_users 5, got %d", license.MaxUsers)
	}
	want := time.Date(2099, 6, 1, 0, 0, 0, 0, time.UTC)
	if !license.ExpirationDate.Equal(want) {
		t.Errorf("expected expiration %v, got %v", want, license.ExpirationDate)
	}
}

func TestCreateLicenseSentinelForcesOneUser(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(store)

	w := doRequest(server, http.MethodPost, createLicenseURL("abc", "2099-06-01", "ALWAYS", testAdminKey), "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	license, _ := store.GetLicenseByKey(context.Background(), "abc")
	if license.MaxUsers != 1 {
		t.Errorf("sentinel must force max_users to 1, got %d", license.MaxUsers)
	}
}

func TestCreateLicenseDefaultsMaxUser(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(store)

	w := doRequest(server, http.MethodPost, createLicenseURL("abc", "2099-06-01", "", testAdminKey), "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	license, _ := store.GetLicenseByKey(context.Background(), "abc")
	if license.MaxUsers != 1 {
		t.Errorf("expected default max_users 1, got %d", license.MaxUsers)
	}
}

func TestCreateLicenseInvalidDate(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(store)

	w := doRequest(server, http.MethodPost, createLicenseURL("abc", "June 1st", "1", testAdminKey), "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if license, _ := store.GetLicenseByKey(context.Background(), "abc"); license != nil {
		t.Error("no license should be created on invalid date")
	}
}

func TestCreateLicenseRejectsAdminKeyInWrongParameter(t *testing.T) {
	// CreateLicense reads the secret from AdminKey, not Key.
	store := newFakeStore()
	server := newTestServer(store)

	q := url.Values{}
	q.Set("Licence", "abc")
	q.Set("ExpirationDate", "2099-06-01")
	q.Set("Key", testAdminKey)

	w := doRequest(server, http.MethodPost, "/CreateLicense?"+q.Encode(), "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when the key arrives in the Key parameter, got %d", w.Code)
	}
}

func TestDeleteLicense(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(store)

	ctx := context.Background()
	license := &database.License{
		LicenseKey:     "abc",
		ExpirationDate: time.Date(2099, 6, 1, 0, 0, 0, 0, time.UTC),
		MaxUsers:       1,
	}
	if err := store.CreateLicense(ctx, license); err != nil {
		t.Fatalf("failed to seed license: %v", err)
	}

	q := url.Values{}
	q.Set("Licence", "abc")
	q.Set("Key", testAdminKey)

	w := doRequest(server, http.MethodDelete, "/DeleteLicense?"+q.Encode(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["status"] != "license deleted" {
		t.Errorf("expected status 'license deleted', got %v", body["status"])
	}

	if got, _ := store.GetLicenseByKey(ctx, "abc"); got != nil {
		t.Error("license still present after delete")
	}
}

func TestDeleteLicenseNotFound(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(store)

	w := doRequest(server, http.MethodDelete, "/DeleteLicense?Licence=nope&Key="+testAdminKey, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDeleteLicenseWrongKeyLeavesLicenseUntouched(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(store)

	ctx := context.Background()
	license := &database.License{
		LicenseKey:     "abc",
		ExpirationDate: time.Date(2099, 6, 1, 0, 0, 0, 0, time.UTC),
		MaxUsers:       1,
	}
	if err := store.CreateLicense(ctx, license); err != nil {
		t.Fatalf("failed to seed license: %v", err)
	}

	w := doRequest(server, http.MethodDelete, "/DeleteLicense?Licence=abc&Key=wrong", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if got, _ := store.GetLicenseByKey(ctx, "abc"); got == nil {
		t.Error("license must be untouched after unauthorized delete")
	}
}
