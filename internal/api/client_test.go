package api

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/rshade/dealerdesk/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

// testHandler captures the incoming request details and returns a canned response.
type testHandler struct {
	method      string
	path        string
	query       string
	body        string
	contentType string
	auth        string

	statusCode   int
	responseBody string
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.method = r.Method
	h.path = r.URL.Path
	h.query = r.URL.RawQuery
	h.contentType = r.Header.Get("Content-Type")
	h.auth = r.Header.Get("Authorization")
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		h.body = string(data)
	}

	w.Header().Set("Content-Type", "application/json")
	if h.statusCode != 0 {
		w.WriteHeader(h.statusCode)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if h.responseBody != "" {
		_, _ = w.Write([]byte(h.responseBody))
	}
}

// fakeTokens is a TokenSource that records logouts.
type fakeTokens struct {
	token   string
	logouts atomic.Int32
}

func (f *fakeTokens) Token() string { return f.token }
func (f *fakeTokens) Unauthorized(context.Context) { f.logouts.Add(1) }

// newTestClient creates a Client pointed at a test server with the given handler.
func newTestClient(t *testing.T, h http.Handler, tokens TokenSource) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", tokens, WithHTTPClient(srv.Client()))
}

func TestNewClient_TrimsBaseURL(t *testing.T) {
	c := NewClient("http://localhost:8000///", nil)
	assert.Equal(t, "http://localhost:8000", c.BaseURL())
}

func TestDoJSON_AttachesBearerToken(t *testing.T) {
	h := &testHandler{responseBody: `{"data": []}`}
	c := newTestClient(t, h, &fakeTokens{token: "tok-123"})

	_, err := c.ListCars(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", h.auth)
	assert.Equal(t, http.MethodGet, h.method)
	assert.Equal(t, "/api/v1/cars", h.path)
}

func TestDoJSON_NoTokenNoHeader(t *testing.T) {
	h := &testHandler{responseBody: `{"data": []}`}
	c := newTestClient(t, h, &fakeTokens{})

	_, err := c.ListCars(context.Background())
	require.NoError(t, err)
	assert.Empty(t, h.auth)
}

func TestDoJSON_ErrorBody(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"error field", http.StatusBadRequest, `{"error": "Title is required"}`, "Title is required"},
		{"message field", http.StatusConflict, `{"message": "Duplicate brand"}`, "Duplicate brand"},
		{"plain text", http.StatusInternalServerError, `boom`, "boom"},
		{"empty body", http.StatusNotFound, ``, "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &testHandler{statusCode: tt.status, responseBody: tt.body}
			c := newTestClient(t, h, nil)

			_, err := c.ListBlogs(context.Background())
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.NotErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestDoJSON_UnauthorizedLogsOut(t *testing.T) {
	h := &testHandler{statusCode: http.StatusUnauthorized, responseBody: `{"error": "jwt expired"}`}
	tokens := &fakeTokens{token: "old"}
	c := newTestClient(t, h, tokens)

	_, err := c.ListManufacturers(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "jwt expired")
	assert.Equal(t, int32(1), tokens.logouts.Load())
}

func TestDoJSON_NoContent(t *testing.T) {
	h := &testHandler{statusCode: http.StatusNoContent}
	c := newTestClient(t, h, nil)

	require.NoError(t, c.ReorderManufacturers(context.Background(), nil))
}

func TestLogin(t *testing.T) {
	t.Run("created with token", func(t *testing.T) {
		h := &testHandler{statusCode: http.StatusCreated, responseBody: `{"token": "abc"}`}
		c := newTestClient(t, h, nil)

		token, err := c.Login(context.Background(), Credentials{Username: "a@b.co", Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, "abc", token)
		assert.Equal(t, "/api/v1/login", h.path)
		assert.JSONEq(t, `{"username":"a@b.co","password":"pw"}`, h.body)
		assert.Equal(t, "application/json", h.contentType)
	})

	t.Run("missing token", func(t *testing.T) {
		h := &testHandler{responseBody: `{"success": "ok"}`}
		c := newTestClient(t, h, nil)

		_, err := c.Login(context.Background(), Credentials{Username: "a@b.co", Password: "pw"})
		require.ErrorIs(t, err, ErrNoToken)
	})
}

func TestCatalogEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/fetch-logos", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"logos": [{"_id": "m1", "brandName": "Toyota", "logo": {"path": "/u/t.png", "filename": "t.png"}}]}`)
	})
	mux.HandleFunc("GET /api/v1/fetch-vehicle-types", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"vehicleTypes": [{"_id": "v1", "modelName": "Camry", "manufacturer": {"_id": "m1", "brandName": "Toyota"}}]}`)
	})
	mux.HandleFunc("GET /api/v1/fetch-vehicle-trims", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"trims": [{"_id": "t1", "trimName": "LE", "vehicleType": {"_id": "v1"}, "specifications": ["ABS"]}]}`)
	})
	c := newTestClient(t, mux, nil)
	ctx := context.Background()

	mfrs, err := c.ListManufacturers(ctx)
	require.NoError(t, err)
	require.Len(t, mfrs, 1)
	assert.Equal(t, "t.png", mfrs[0].Logo.Filename)

	vts, err := c.ListVehicleTypes(ctx)
	require.NoError(t, err)
	require.Len(t, vts, 1)
	assert.Equal(t, "m1", model.RefID(vts[0].Manufacturer))

	trims, err := c.ListTrims(ctx)
	require.NoError(t, err)
	require.Len(t, trims, 1)
	assert.Equal(t, []string{"ABS"}, trims[0].Specifications)
}

func TestVehicleTypeAndTrimMutations(t *testing.T) {
	h := &testHandler{responseBody: `{"success": "ok"}`}
	c := newTestClient(t, h, nil)
	ctx := context.Background()

	msg, err := c.CreateVehicleType(ctx, VehicleTypeInput{Manufacturer: "m1", ModelName: "Camry"})
	require.NoError(t, err)
	assert.Equal(t, "ok", msg.Text())
	assert.Equal(t, "/api/v1/create-vehicle-type", h.path)
	assert.JSONEq(t, `{"manufacturer":"m1","modelName":"Camry"}`, h.body)

	_, err = c.UpdateVehicleType(ctx, "v 1", VehicleTypeInput{Manufacturer: "m1", ModelName: "Corolla"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, h.method)
	assert.Equal(t, "/api/v1/update-vehicle-type/v 1", h.path)

	_, err = c.DeleteVehicleType(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, h.method)

	_, err = c.CreateTrim(ctx, TrimInput{VehicleType: "v1", TrimName: "LE"})
	require.ErrorIs(t, err, ErrNoSpecifications)

	_, err = c.CreateTrim(ctx, TrimInput{VehicleType: "v1", TrimName: "LE", Specifications: []string{"ABS", "GPS"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"vehicleType":"v1","trimName":"LE","specifications":["ABS","GPS"]}`, h.body)

	_, err = c.DeleteTrim(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/delete-vehicle-trim/t1", h.path)
}

func TestDeleteLogo_QueryParams(t *testing.T) {
	h := &testHandler{responseBody: `{"success": "Logo deleted"}`}
	c := newTestClient(t, h, nil)

	_, err := c.DeleteLogo(context.Background(), "m1", "logo one.png")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/delete-logo", h.path)
	assert.Equal(t, "_id=m1&filename=logo+one.png", h.query)
}

func TestReorderManufacturers_Body(t *testing.T) {
	h := &testHandler{responseBody: `{}`}
	c := newTestClient(t, h, nil)

	err := c.ReorderManufacturers(context.Background(), []model.Manufacturer{{ID: "b", BrandName: "BMW"}, {ID: "a", BrandName: "Audi"}})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/update-logo-order", h.path)
	assert.JSONEq(t, `{"newOrder":[{"_id":"b","brandName":"BMW"},{"_id":"a","brandName":"Audi"}]}`, h.body)
}

// parseMultipart decodes a captured multipart body into fields and file names.
func parseMultipart(t *testing.T, contentType, body string) (map[string][]string, map[string][]string) {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	fields := map[string][]string{}
	files := map[string][]string{}
	r := multipart.NewReader(strings.NewReader(body), params["boundary"])
	for {
		part, err := r.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(part)
		require.NoError(t, err)
		if part.FileName() != "" {
			files[part.FormName()] = append(files[part.FormName()], part.FileName()+":"+string(data))
		} else {
			fields[part.FormName()] = append(fields[part.FormName()], string(data))
		}
	}
	return fields, files
}

func TestCreateManufacturer_Multipart(t *testing.T) {
	logo := filepath.Join(t.TempDir(), "toyota.png")
	require.NoError(t, os.WriteFile(logo, []byte("PNG"), 0o600))

	h := &testHandler{statusCode: http.StatusCreated, responseBody: `{"success": "Manufacturer created"}`}
	c := newTestClient(t, h, &fakeTokens{token: "t"})

	msg, err := c.CreateManufacturer(context.Background(), "Toyota", logo)
	require.NoError(t, err)
	assert.Equal(t, "Manufacturer created", msg.Text())
	assert.Equal(t, "Bearer t", h.auth)

	fields, files := parseMultipart(t, h.contentType, h.body)
	assert.Equal(t, []string{"Toyota"}, fields["brandName"])
	assert.Equal(t, []string{"toyota.png:PNG"}, files["logo"])
}

func TestCreateManufacturer_MissingLogoFile(t *testing.T) {
	h := &testHandler{}
	c := newTestClient(t, h, nil)

	_, err := c.CreateManufacturer(context.Background(), "Toyota", filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
	assert.Empty(t, h.method, "no request is sent when the upload cannot be read")
}

func TestUpdateCar_MultipartOrder(t *testing.T) {
	h := &testHandler{responseBody: `{"success": "Car updated"}`}
	c := newTestClient(t, h, nil)

	form := (&Form{}).Add("title", "Camry")
	require.NoError(t, form.AddJSON("specifications", map[string]bool{"ABS": true}))
	form.AddReader("images", "b.jpg", strings.NewReader("B"))
	form.AddReader("images", "a.jpg", strings.NewReader("A"))

	_, err := c.UpdateCar(context.Background(), "c1", form)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, h.method)
	assert.Equal(t, "/api/v1/c1", h.path)

	fields, files := parseMultipart(t, h.contentType, h.body)
	assert.Equal(t, []string{"Camry"}, fields["title"])
	assert.Equal(t, []string{`{"ABS":true}`}, fields["specifications"])
	assert.Equal(t, []string{"b.jpg:B", "a.jpg:A"}, files["images"])
}

func TestBlogs(t *testing.T) {
	h := &testHandler{responseBody: `{"blog": {"_id": "b1", "title": "New title", "postedBy": {"name": "Ana"}}}`}
	c := newTestClient(t, h, nil)

	blog, err := c.UpdateBlog(context.Background(), "b1", BlogInput{Title: "New title", Description: "d"})
	require.NoError(t, err)
	require.NotNil(t, blog)
	assert.Equal(t, "Ana", blog.AuthorName())
	assert.Equal(t, "/api/v1/blogs/b1", h.path)

	fields, files := parseMultipart(t, h.contentType, h.body)
	assert.Equal(t, []string{"New title"}, fields["title"])
	assert.Empty(t, files)
}

func TestListLeads_ResponseShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[{"_id": "1", "fullName": "Sam"}, {"_id": "2"}]`, 2},
		{"data envelope", `{"data": [{"_id": "1", "mobileNumber": 501234567}]}`, 1},
		{"null", `null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &testHandler{responseBody: tt.body}
			c := newTestClient(t, h, nil)

			leads, err := c.ListLeads(context.Background(), model.LeadSellCar)
			require.NoError(t, err)
			assert.Len(t, leads, tt.want)
			assert.Equal(t, "/api/v1/sell-car", h.path)
			for _, l := range leads {
				assert.Equal(t, model.LeadSellCar, l.Kind)
			}
		})
	}
}

func TestListLeads_UnknownKind(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", nil)
	_, err := c.ListLeads(context.Background(), model.LeadKind("service"))
	require.ErrorIs(t, err, model.ErrUnknownLeadKind)
}

func TestFetchLeads_Concurrent(t *testing.T) {
	var mu sync.Mutex
	hits := map[string]int{}
	mux := http.NewServeMux()
	for _, k := range model.LeadKinds() {
		mux.HandleFunc("GET "+k.Endpoint(), func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			hits[r.URL.Path]++
			mu.Unlock()
			_, _ = io.WriteString(w, `[{"_id": "`+string(k)+`-1"}]`)
		})
	}
	c := newTestClient(t, mux, nil)

	all, err := c.FetchLeads(context.Background())
	require.NoError(t, err)
	require.Len(t, all, len(model.LeadKinds()))
	mu.Lock()
	defer mu.Unlock()
	for _, k := range model.LeadKinds() {
		require.Len(t, all[k], 1)
		assert.Equal(t, string(k)+"-1", all[k][0].ID)
		assert.Equal(t, 1, hits[k.Endpoint()])
	}
}

func TestFetchLeads_FirstErrorWins(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/finance-eligibility", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})
	mux.HandleFunc("GET /api/v1/sell-car", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error": "db down"}`)
	})
	c := newTestClient(t, mux, nil)

	_, err := c.FetchLeads(context.Background(), model.LeadFinance, model.LeadSellCar)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sell-car")
	assert.Contains(t, err.Error(), "db down")
}
