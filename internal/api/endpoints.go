package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rshade/dealerdesk/internal/model"
)

// ErrNoToken is returned when login succeeds without issuing a token.
var ErrNoToken = errors.New("login response did not include a token")

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the login response body.
type LoginResponse struct {
	Token   string `json:"token"`
	Success string `json:"success,omitempty"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	var resp LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/login", creds, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", ErrNoToken
	}
	return resp.Token, nil
}

// --- Cars ---

// ListCars returns every car.
func (c *Client) ListCars(ctx context.Context) ([]model.Car, error) {
	var resp struct {
		Data []model.Car `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/cars", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateCar uploads a new car listing.
func (c *Client) CreateCar(ctx context.Context, form *Form) (Message, error) {
	var msg Message
	err := c.doMultipart(ctx, http.MethodPost, "/api/v1/cars", form, &msg)
	return msg, err
}

// UpdateCar replaces car id.
func (c *Client) UpdateCar(ctx context.Context, id string, form *Form) (Message, error) {
	var msg Message
	err := c.doMultipart(ctx, http.MethodPut, "/api/v1/"+url.PathEscape(id), form, &msg)
	return msg, err
}

// DeleteCar removes car id.
func (c *Client) DeleteCar(ctx context.Context, id string) (Message, error) {
	var msg Message
	err := c.doJSON(ctx, http.MethodDelete, "/api/v1/"+url.PathEscape(id), nil, &msg)
	return msg, err
}

// --- Manufacturers ---

// ListManufacturers returns every manufacturer with its logo.
func (c *Client) ListManufacturers(ctx context.Context) ([]model.Manufacturer, error) {
	var resp struct {
		Logos []model.Manufacturer `json:"logos"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/fetch-logos", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Logos, nil
}

// CreateManufacturer uploads a brand with an optional logo file.
func (c *Client) CreateManufacturer(ctx context.Context, brandName, logoPath string) (Message, error) {
	form := (&Form{}).Add("brandName", brandName)
	if logoPath != "" {
		form.AddFile("logo", logoPath)
	}
	var msg Message
	err := c.doMultipart(ctx, http.MethodPost, "/api/v1/create-manufacturer", form, &msg)
	return msg, err
}

// UpdateManufacturer renames a brand and optionally replaces its logo.
func (c *Client) UpdateManufacturer(ctx context.Context, id, brandName, logoPath string) (Message, error) {
	form := (&Form{}).Add("brandName", brandName)
	if logoPath != "" {
		form.AddFile("logo", logoPath)
	}
	var msg Message
	err := c.doMultipart(ctx, http.MethodPut, "/api/v1/update-manufacturer/"+url.PathEscape(id), form, &msg)
	return msg, err
}

// DeleteLogo removes the logo file of manufacturer id.
func (c *Client) DeleteLogo(ctx context.Context, id, filename string) (Message, error) {
	q := url.Values{}
	q.Set("_id", id)
	q.Set("filename", filename)
	var msg Message
	err := c.doJSON(ctx, http.MethodDelete, "/api/v1/delete-logo?"+q.Encode(), nil, &msg)
	return msg, err
}

// ReorderManufacturers persists the display order of manufacturers.
func (c *Client) ReorderManufacturers(ctx context.Context, order []model.Manufacturer) error {
	body := struct {
		NewOrder []model.Manufacturer `json:"newOrder"`
	}{NewOrder: order}
	return c.doJSON(ctx, http.MethodPost, "/api/v1/update-logo-order", body, nil)
}

// --- Vehicle types ---

// VehicleTypeInput is the create/update body for a vehicle type.
type VehicleTypeInput struct {
	Manufacturer string `json:"manufacturer"`
	ModelName    string `json:"modelName"`
}

// ListVehicleTypes returns every vehicle type.
func (c *Client) ListVehicleTypes(ctx context.Context) ([]model.VehicleType, error) {
	var resp struct {
		VehicleTypes []model.VehicleType `json:"vehicleTypes"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/fetch-vehicle-types", nil, &resp); err != nil {
		return nil, err
	}
	return resp.VehicleTypes, nil
}

// CreateVehicleType adds a model under a manufacturer.
func (c *Client) CreateVehicleType(ctx context.Context, in VehicleTypeInput) (Message, error) {
	var msg Message
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/create-vehicle-type", in, &msg)
	return msg, err
}

// UpdateVehicleType replaces vehicle type id.
func (c *Client) UpdateVehicleType(ctx context.Context, id string, in VehicleTypeInput) (Message, error) {
	var msg Message
	err := c.doJSON(ctx, http.MethodPut, "/api/v1/update-vehicle-type/"+url.PathEscape(id), in, &msg)
	return msg, err
}

// DeleteVehicleType removes vehicle type id.
func (c *Client) DeleteVehicleType(ctx context.Context, id string) (Message, error) {
	var msg Message
	err := c.doJSON(ctx, http.MethodDelete, "/api/v1/delete-vehicle-type/"+url.PathEscape(id), nil, &msg)
	return msg, err
}

// --- Trims ---

// TrimInput is the create/update body for a trim.
type TrimInput struct {
	VehicleType    string   `json:"vehicleType"`
	TrimName       string   `json:"trimName"`
	Specifications []string `json:"specifications"`
}

// ErrNoSpecifications is returned for a trim without specifications.
var ErrNoSpecifications = errors.New("a trim needs at least one specification")

// ListTrims returns every trim.
func (c *Client) ListTrims(ctx context.Context) ([]model.Trim, error) {
	var resp struct {
		Trims []model.Trim `json:"trims"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/fetch-vehicle-trims", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Trims, nil
}

// CreateTrim adds a trim under a vehicle type.
func (c *Client) CreateTrim(ctx context.Context, in TrimInput) (Message, error) {
	if len(in.Specifications) == 0 {
		return Message{}, ErrNoSpecifications
	}
	var msg Message
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/create-vehicle-trim", in, &msg)
	return msg, err
}

// UpdateTrim replaces trim id.
func (c *Client) UpdateTrim(ctx context.Context, id string, in TrimInput) (Message, error) {
	if len(in.Specifications) == 0 {
		return Message{}, ErrNoSpecifications
	}
	var msg Message
	err := c.doJSON(ctx, http.MethodPut, "/api/v1/update-vehicle-trim/"+url.PathEscape(id), in, &msg)
	return msg, err
}

// DeleteTrim removes trim id.
func (c *Client) DeleteTrim(ctx context.Context, id string) (Message, error) {
	var msg Message
	err := c.doJSON(ctx, http.MethodDelete, "/api/v1/delete-vehicle-trim/"+url.PathEscape(id), nil, &msg)
	return msg, err
}

// --- Blogs ---

// BlogInput is the create/update form for a blog. ImagePath is optional on update.
type BlogInput struct {
	Title       string
	Description string
	ImagePath   string
}

func (in BlogInput) form() *Form {
	form := (&Form{}).Add("title", in.Title).Add("description", in.Description)
	if in.ImagePath != "" {
		form.AddFile("image", in.ImagePath)
	}
	return form
}

// ListBlogs returns every blog post.
func (c *Client) ListBlogs(ctx context.Context) ([]model.Blog, error) {
	var resp struct {
		Blogs []model.Blog `json:"blogs"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/blogs", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Blogs, nil
}

// CreateBlog publishes a new post.
func (c *Client) CreateBlog(ctx context.Context, in BlogInput) (Message, error) {
	var msg Message
	err := c.doMultipart(ctx, http.MethodPost, "/api/v1/blogs", in.form(), &msg)
	return msg, err
}

// UpdateBlog replaces blog id and returns the updated post.
func (c *Client) UpdateBlog(ctx context.Context, id string, in BlogInput) (*model.Blog, error) {
	var resp struct {
		Blog *model.Blog `json:"blog"`
	}
	if err := c.doMultipart(ctx, http.MethodPut, "/api/v1/blogs/"+url.PathEscape(id), in.form(), &resp); err != nil {
		return nil, err
	}
	return resp.Blog, nil
}

// DeleteBlog removes blog id.
func (c *Client) DeleteBlog(ctx context.Context, id string) (Message, error) {
	var msg Message
	err := c.doJSON(ctx, http.MethodDelete, "/api/v1/blogs/"+url.PathEscape(id), nil, &msg)
	return msg, err
}

// --- Leads ---

// ListLeads returns the leads of one kind. The backend answers with either a
// bare array or a {data: [...]} envelope.
func (c *Client) ListLeads(ctx context.Context, kind model.LeadKind) ([]model.Lead, error) {
	path := kind.Endpoint()
	if path == "" {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownLeadKind, kind)
	}

	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	leads, err := decodeLeads(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s leads: %w", kind, err)
	}
	for i := range leads {
		leads[i].Kind = kind
	}
	return leads, nil
}

func decodeLeads(raw json.RawMessage) ([]model.Lead, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var leads []model.Lead
	if raw[0] == '[' {
		err := json.Unmarshal(raw, &leads)
		return leads, err
	}
	var env struct {
		Data []model.Lead `json:"data"`
	}
	err := json.Unmarshal(raw, &env)
	return env.Data, err
}
