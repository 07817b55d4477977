package cli_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rshade/dealerdesk/internal/cli"
	"github.com/rshade/dealerdesk/internal/config"
	"github.com/rshade/dealerdesk/internal/session"
)

// recordedRequest is one non-GET call received by the fake backend.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// fakeBackend serves canned collections and records every mutation.
type fakeBackend struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

//nolint:gochecknoglobals // Shared fixtures.
var fixtures = map[string]string{
	"/api/v1/cars": `{"data": [
		{"_id": "c1", "title": "2022 Land Cruiser GXR", "manufacturerId": {"_id": "m1", "brandName": "Toyota"},
		 "vehicleTypeId": {"_id": "v1", "modelName": "Land Cruiser"}, "trimId": {"_id": "t1", "trimName": "GXR"},
		 "year": 2022, "originalPrice": 250000, "fuelType": "gasoline", "bodyType": "suv", "saleStatus": "for-sale",
		 "specifications": {"Sunroof": true}, "images": [{"path": "uploads/a.jpg", "filename": "a.jpg"}, {"path": "uploads/b.jpg", "filename": "b.jpg"}]},
		{"_id": "c2", "title": "2021 Camry SE", "manufacturerId": {"_id": "m1", "brandName": "Toyota"},
		 "vehicleTypeId": {"_id": "v2", "modelName": "Camry"}, "year": "2021", "originalPrice": "98000",
		 "discountedPrice": "91000", "fuelType": "hybrid", "bodyType": "sedan", "saleStatus": "sold"},
		{"_id": "c3", "title": "2020 Patrol", "manufacturerId": {"_id": "m2", "brandName": "Nissan"},
		 "vehicleTypeId": {"_id": "v3", "modelName": "Patrol"}, "year": 2020, "fuelType": "diesel", "bodyType": "suv"}
	]}`,
	"/api/v1/fetch-logos": `{"logos": [
		{"_id": "m1", "brandName": "Toyota", "order": 1, "logo": {"path": "uploads/toyota.png", "filename": "toyota.png"}},
		{"_id": "m2", "brandName": "Nissan", "order": 2},
		{"_id": "m3", "brandName": "Lexus", "order": 3}
	]}`,
	"/api/v1/fetch-vehicle-types": `{"vehicleTypes": [
		{"_id": "v1", "modelName": "Land Cruiser", "manufacturer": {"_id": "m1", "brandName": "Toyota"}},
		{"_id": "v2", "modelName": "Camry", "manufacturer": {"_id": "m1", "brandName": "Toyota"}},
		{"_id": "v3", "modelName": "Patrol", "manufacturer": {"_id": "m2", "brandName": "Nissan"}}
	]}`,
	"/api/v1/fetch-vehicle-trims": `{"trims": [
		{"_id": "t1", "trimName": "GXR", "vehicleType": {"_id": "v1", "modelName": "Land Cruiser"}, "specifications": ["Sunroof", "Cooler Box"]},
		{"_id": "t2", "trimName": "SE", "vehicleType": {"_id": "v2", "modelName": "Camry"}, "specifications": ["Heated Seats"]}
	]}`,
	"/api/v1/blogs": `{"blogs": [
		{"_id": "b1", "title": "Winter tyres explained", "description": "Grip matters.", "postedBy": {"name": "Sam"}},
		{"_id": "b2", "title": "Service offers", "description": "Spring deals."}
	]}`,
	"/api/v1/finance-eligibility": `[
		{"_id": "l1", "fullName": "Dana Reyes", "email": "dana@example.com", "mobileNumber": 501234567, "manufacturer": "Toyota", "vehicleType": "Camry"},
		{"_id": "l2", "fullName": "Lee Park", "email": "lee@example.com", "manufacturer": "Nissan", "vehicleType": "Patrol"},
		{"_id": "l3", "fullName": "Ari Cohen", "manufacturer": "Toyota", "vehicleType": "Land Cruiser"}
	]`,
	"/api/v1/contact": `{"data": [{"_id": "k1", "fullName": "Mo Hassan", "message": "Call me"}]}`,
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}
	fb.Server = httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(fb.Close)
	return fb
}

func (fb *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodGet {
		body, ok := fixtures[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error": "not found"}`)
			return
		}
		_, _ = io.WriteString(w, body)
		return
	}

	data, _ := io.ReadAll(r.Body)
	fb.mu.Lock()
	fb.requests = append(fb.requests, recordedRequest{
		Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: string(data),
	})
	fb.mu.Unlock()

	if r.URL.Path == "/api/v1/login" {
		var creds struct{ Username, Password string }
		_ = json.Unmarshal(data, &creds)
		if creds.Password != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error": "Invalid credentials"}`)
			return
		}
		_, _ = io.WriteString(w, `{"token": "tok-0123456789abcdef", "success": "Welcome"}`)
		return
	}
	if strings.HasPrefix(r.URL.Path, "/api/v1/blogs/") && r.Method == http.MethodPut {
		_, _ = io.WriteString(w, `{"blog": {"_id": "b1", "title": "Updated title"}}`)
		return
	}
	_, _ = io.WriteString(w, `{"success": "Saved"}`)
}

// Requests returns the recorded mutations.
func (fb *fakeBackend) Requests() []recordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]recordedRequest(nil), fb.requests...)
}

// setupCLI isolates config, session and cache state in a temp home pointed at
// backendURL and registers cleanup of the global config.
func setupCLI(t *testing.T, backendURL string, loggedIn bool) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvProjectDir, "")
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvAPIURL, backendURL)
	t.Setenv(config.EnvCacheEnabled, "false")
	t.Setenv(config.EnvOutput, "")
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})

	if loggedIn {
		require.NoError(t, session.NewStore(home).Save(session.State{
			Token:      "tok-0123456789abcdef",
			Username:   "admin@example.com",
			BaseURL:    backendURL,
			LoggedInAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		}))
	}
	return home
}

// runCLI executes the root command and returns everything it printed.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	config.ResetGlobalConfigForTest()

	var out bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
