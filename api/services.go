// File: travelgo/api/services.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"travelgo/models"
)

// Categories fetches the category list. Unfiltered and unauthenticated.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	return getList[models.Category](c, ctx, epCategories, nil, "")
}

// Services fetches the filtered catalog. The query is composed by the
// catalog package; absent filter fields are already omitted there.
func (c *Client) Services(ctx context.Context, query url.Values) ([]models.TravelService, error) {
	return getList[models.TravelService](c, ctx, epServices, query, "")
}

// Service fetches one listing by id.
func (c *Client) Service(ctx context.Context, id int64) (*models.TravelService, error) {
	var svc models.TravelService
	if err := c.getJSON(ctx, epService(id), nil, "", &svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

// Comments fetches the ratings left on a listing, newest first.
func (c *Client) Comments(ctx context.Context, serviceID int64) ([]models.Comment, error) {
	return getList[models.Comment](c, ctx, epServiceComments(serviceID), nil, "")
}

// AddComment posts a rating with text on a listing.
func (c *Client) AddComment(ctx context.Context, token string, serviceID int64, rate int, comment string) (*models.Comment, error) {
	payload := map[string]any{"rate": rate, "comment": comment}
	var created models.Comment
	if err := c.postJSON(ctx, epServiceComments(serviceID), token, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// TourForm is the multipart payload for creating or updating a listing.
type TourForm struct {
	Name        string
	Description string
	Price       string
	Location    string
	CategoryID  int64
	StartDate   string
	Image       *Upload
}

func (f TourForm) fields() []formField {
	categoryID := ""
	if f.CategoryID > 0 {
		categoryID = strconv.FormatInt(f.CategoryID, 10)
	}
	return []formField{
		{"name", f.Name},
		{"description", f.Description},
		{"price", f.Price},
		{"location", f.Location},
		{"category_id", categoryID},
		{"start_date", f.StartDate},
	}
}

// CreateService posts a new listing under the authenticated provider.
func (c *Client) CreateService(ctx context.Context, token string, form TourForm) (*models.TravelService, error) {
	return c.writeService(ctx, http.MethodPost, epServices, token, form)
}

// UpdateService patches an existing listing.
func (c *Client) UpdateService(ctx context.Context, token string, id int64, form TourForm) (*models.TravelService, error) {
	return c.writeService(ctx, http.MethodPatch, epService(id), token, form)
}

func (c *Client) writeService(ctx context.Context, method, path, token string, form TourForm) (*models.TravelService, error) {
	body, contentType, err := encodeMultipart(form.fields(), "image", form.Image)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, method, path, token, body, contentType)
	if err != nil {
		return nil, err
	}
	var svc models.TravelService
	if err := c.roundTrip(req, &svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

// DeleteService removes a listing. The server rejects deletion of
// listings that already have bookings.
func (c *Client) DeleteService(ctx context.Context, token string, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, epService(id), token, nil, "")
	if err != nil {
		return err
	}
	if err := c.roundTrip(req, nil); err != nil {
		return fmt.Errorf("delete service %d: %w", id, err)
	}
	return nil
}
