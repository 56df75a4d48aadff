// Package backend is the typed HTTP client for the remote inspection API.
// The client is a plain value constructed with an injected *http.Client so
// tests can point it at a fake server; there is no shared global instance.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/thsolutions/homesheet/internal/domain"
)

type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// New creates a client for the inspection backend rooted at baseURL. token is
// optional; when set it is sent as a bearer Authorization header. httpClient
// may be nil, in which case http.DefaultClient semantics apply.
func New(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  httpClient,
	}
}

// itemRecordWire mirrors the bulk-upsert body of the inspection API.
type itemRecordWire struct {
	InspectionID     string          `json:"inspection_id"`
	ItemName         string          `json:"item_name"`
	Materials        map[string]bool `json:"materials"`
	Conditions       map[string]bool `json:"conditions"`
	Comments         string          `json:"comments"`
	InspectionStatus string          `json:"inspection_status"`
}

func toWire(r domain.ItemRecord) itemRecordWire {
	return itemRecordWire{
		InspectionID:     r.InspectionID,
		ItemName:         r.ItemName,
		Materials:        r.Materials,
		Conditions:       r.Conditions,
		Comments:         r.Comment,
		InspectionStatus: string(r.Status),
	}
}

func fromWire(w itemRecordWire) domain.ItemRecord {
	r := domain.ItemRecord{
		InspectionID: w.InspectionID,
		ItemName:     w.ItemName,
		Materials:    w.Materials,
		Conditions:   w.Conditions,
		Comment:      w.Comments,
		Status:       domain.Status(w.InspectionStatus),
	}
	r.Materialize()
	return r
}

type photoWire struct {
	PhotoID      int64  `json:"photo_id"`
	InspectionID string `json:"inspection_id"`
	ItemName     string `json:"item_name"`
	PhotoURL     string `json:"photo_url"`
}

func photoFromWire(w photoWire) domain.Photo {
	return domain.Photo{
		ID:           w.PhotoID,
		InspectionID: w.InspectionID,
		ItemName:     w.ItemName,
		URL:          w.PhotoURL,
	}
}

// SectionRecords fetches every item record stored for the (inspection,
// section) pair. A section with no records yet returns an empty slice, not an
// error.
func (c *Client) SectionRecords(ctx context.Context, section domain.Section, inspectionID string) ([]domain.ItemRecord, error) {
	var wires []itemRecordWire
	path := fmt.Sprintf("/inspection-%s/%s", section, url.PathEscape(inspectionID))
	if err := c.getJSON(ctx, path, &wires); err != nil {
		return nil, fmt.Errorf("failed to fetch %s records: %w", section, err)
	}
	records := make([]domain.ItemRecord, 0, len(wires))
	for _, w := range wires {
		records = append(records, fromWire(w))
	}
	return records, nil
}

// UpsertSectionRecords sends the complete current section state as one bulk
// upsert. This is a full replace of the listed items, not a delta; the server
// decides what happens to items absent from the payload.
func (c *Client) UpsertSectionRecords(ctx context.Context, section domain.Section, records []domain.ItemRecord) error {
	wires := make([]itemRecordWire, 0, len(records))
	for _, r := range records {
		wires = append(wires, toWire(r))
	}

	payload, err := json.Marshal(wires)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/inspection-%s", section), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upsert %s records: %w", section, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("upsert %s returned status %d", section, resp.StatusCode)
	}
	return nil
}

// ItemPhotos fetches the current photo list for one item.
func (c *Client) ItemPhotos(ctx context.Context, inspectionID, itemName string) ([]domain.Photo, error) {
	var wires []photoWire
	path := fmt.Sprintf("/inspection-photo/%s/%s", url.PathEscape(inspectionID), url.PathEscape(itemName))
	if err := c.getJSON(ctx, path, &wires); err != nil {
		return nil, fmt.Errorf("failed to fetch photos for %q: %w", itemName, err)
	}
	photos := make([]domain.Photo, 0, len(wires))
	for _, w := range wires {
		photos = append(photos, photoFromWire(w))
	}
	return photos, nil
}

// AllPhotos fetches the full photo index for the inspection, unfiltered by item.
func (c *Client) AllPhotos(ctx context.Context, inspectionID string) ([]domain.Photo, error) {
	var wires []photoWire
	path := fmt.Sprintf("/inspection-photo-all/%s", url.PathEscape(inspectionID))
	if err := c.getJSON(ctx, path, &wires); err != nil {
		return nil, fmt.Errorf("failed to fetch photo index: %w", err)
	}
	photos := make([]domain.Photo, 0, len(wires))
	for _, w := range wires {
		photos = append(photos, photoFromWire(w))
	}
	return photos, nil
}

// UploadPhoto uploads one file for one item as a multipart form. The backend
// assigns the photo id.
func (c *Client) UploadPhoto(ctx context.Context, inspectionID, itemName, filename string, file io.Reader) (domain.Photo, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("inspection_id", inspectionID); err != nil {
		return domain.Photo{}, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := mw.WriteField("item_name", itemName); err != nil {
		return domain.Photo{}, fmt.Errorf("failed to build upload form: %w", err)
	}
	part, err := mw.CreateFormFile("photo", filename)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return domain.Photo{}, fmt.Errorf("failed to read photo data: %w", err)
	}
	if err := mw.Close(); err != nil {
		return domain.Photo{}, fmt.Errorf("failed to finish upload form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/inspection-photo", &body)
	if err != nil {
		return domain.Photo{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("failed to upload photo: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Photo{}, fmt.Errorf("photo upload returned status %d", resp.StatusCode)
	}

	var w photoWire
	if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
		return domain.Photo{}, fmt.Errorf("failed to decode uploaded photo: %w", err)
	}
	return photoFromWire(w), nil
}

// DeletePhoto removes one photo by id.
func (c *Client) DeletePhoto(ctx context.Context, photoID int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/inspection-photo/%d", photoID), nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete photo %d: %w", photoID, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("photo delete returned status %d", resp.StatusCode)
	}
	return nil
}

// PropertyDetails fetches read-only property attributes for the report header.
func (c *Client) PropertyDetails(ctx context.Context, propertyID, inspectionID string) (*domain.PropertyDetails, error) {
	var details domain.PropertyDetails
	path := fmt.Sprintf("/property-details/%s/%s", url.PathEscape(propertyID), url.PathEscape(inspectionID))
	if err := c.getJSON(ctx, path, &details); err != nil {
		return nil, fmt.Errorf("failed to fetch property details: %w", err)
	}
	return &details, nil
}

// InspectionDetails fetches inspection-level attributes for the report header.
func (c *Client) InspectionDetails(ctx context.Context, inspectionID, propertyID string) (*domain.InspectionDetails, error) {
	var details domain.InspectionDetails
	path := fmt.Sprintf("/inspection-details/%s/%s", url.PathEscape(inspectionID), url.PathEscape(propertyID))
	if err := c.getJSON(ctx, path, &details); err != nil {
		return nil, fmt.Errorf("failed to fetch inspection details: %w", err)
	}
	return &details, nil
}

// Address fetches the property address.
func (c *Client) Address(ctx context.Context, propertyID string) (*domain.Address, error) {
	var addr domain.Address
	path := fmt.Sprintf("/get-address/%s", url.PathEscape(propertyID))
	if err := c.getJSON(ctx, path, &addr); err != nil {
		return nil, fmt.Errorf("failed to fetch address: %w", err)
	}
	return &addr, nil
}

// PhotoFile downloads the stored image behind a backend-relative photo URL.
// The caller owns the returned body. The second return value is the response
// content type.
func (c *Client) PhotoFile(ctx context.Context, photoURL string) (io.ReadCloser, string, error) {
	if !strings.HasPrefix(photoURL, "/") {
		return nil, "", fmt.Errorf("photo url %q is not backend-relative", photoURL)
	}

	req, err := c.newRequest(ctx, http.MethodGet, photoURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download photo: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		drainAndClose(resp.Body)
		return nil, "", fmt.Errorf("photo download returned status %d", resp.StatusCode)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// drainAndClose consumes the rest of a response body so the underlying
// connection can be reused.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
