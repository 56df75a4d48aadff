package web

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thsolutions/homesheet/internal/domain"
	"github.com/thsolutions/homesheet/internal/photocache"
	"github.com/thsolutions/homesheet/internal/report"
	"github.com/thsolutions/homesheet/internal/reportdb"
	"github.com/thsolutions/homesheet/internal/web/templates"
)

// stubBackend implements backendAPI and the aggregator's fetch surface from
// in-memory tables.
type stubBackend struct {
	mu             sync.Mutex
	records        map[domain.Section][]domain.ItemRecord
	upserts        [][]domain.ItemRecord
	photos         map[string][]domain.Photo
	nextPhotoID    int64
	photoFileData  []byte
	photoFileCalls int
	property       *domain.PropertyDetails
	inspection     *domain.InspectionDetails
	address        *domain.Address
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		records:       map[domain.Section][]domain.ItemRecord{},
		photos:        map[string][]domain.Photo{},
		nextPhotoID:   1,
		photoFileData: []byte("jpeg-bytes"),
	}
}

func (b *stubBackend) SectionRecords(_ context.Context, section domain.Section, _ string) ([]domain.ItemRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.ItemRecord(nil), b.records[section]...), nil
}

// UpsertSectionRecords merges by item name: items absent from the payload are
// left untouched, like the real backend.
func (b *stubBackend) UpsertSectionRecords(_ context.Context, section domain.Section, records []domain.ItemRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	existing := b.records[section]
	for _, rec := range records {
		replaced := false
		for i := range existing {
			if existing[i].ItemName == rec.ItemName {
				existing[i] = rec
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, rec)
		}
	}
	b.records[section] = existing
	b.upserts = append(b.upserts, records)
	return nil
}

func (b *stubBackend) ItemPhotos(_ context.Context, _, itemName string) ([]domain.Photo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.Photo(nil), b.photos[itemName]...), nil
}

func (b *stubBackend) AllPhotos(_ context.Context, _ string) ([]domain.Photo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var all []domain.Photo
	for _, list := range b.photos {
		all = append(all, list...)
	}
	return all, nil
}

func (b *stubBackend) UploadPhoto(_ context.Context, inspectionID, itemName, filename string, file io.Reader) (domain.Photo, error) {
	if _, err := io.ReadAll(file); err != nil {
		return domain.Photo{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p := domain.Photo{
		ID:           b.nextPhotoID,
		InspectionID: inspectionID,
		ItemName:     itemName,
		URL:          fmt.Sprintf("/inspection-photo-file/%s", filename),
	}
	b.nextPhotoID++
	b.photos[itemName] = append(b.photos[itemName], p)
	return p, nil
}

func (b *stubBackend) DeletePhoto(_ context.Context, photoID int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for name, list := range b.photos {
		for i, p := range list {
			if p.ID == photoID {
				b.photos[name] = append(list[:i:i], list[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (b *stubBackend) PhotoFile(_ context.Context, _ string) (io.ReadCloser, string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.photoFileCalls = b.photoFileCalls + 1
	return io.NopCloser(bytes.NewReader(b.photoFileData)), "image/jpeg", nil
}

func (b *stubBackend) PropertyDetails(_ context.Context, _, _ string) (*domain.PropertyDetails, error) {
	return b.property, nil
}

func (b *stubBackend) InspectionDetails(_ context.Context, _, _ string) (*domain.InspectionDetails, error) {
	return b.inspection, nil
}

func (b *stubBackend) Address(_ context.Context, _ string) (*domain.Address, error) {
	return b.address, nil
}

func (b *stubBackend) upsertCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.upserts)
}

// stubSummarizer returns a fixed analysis text.
type stubSummarizer struct {
	text string
	err  error
}

func (s *stubSummarizer) Summarize(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

// openTestSnapshots opens a fresh migrated report database in the test's
// temp directory.
func openTestSnapshots(t *testing.T) *reportdb.Store {
	t.Helper()
	db, err := reportdb.Open(filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })
	return reportdb.NewStore(db)
}

func newTestDeps(t *testing.T, backend *stubBackend, summarizer *stubSummarizer) (Deps, *reportdb.Store) {
	t.Helper()

	cache, err := photocache.New(t.TempDir())
	require.NoError(t, err)

	snapshots := openTestSnapshots(t)

	deps := Deps{
		Backend:       backend,
		Reports:       report.NewAggregator(backend, domain.Worksheets(), slog.Default()),
		Snapshots:     snapshots,
		PhotoCache:    cache,
		DebounceDelay: 10 * time.Millisecond,
	}
	if summarizer != nil {
		deps.Summarizer = summarizer
	}
	return deps, snapshots
}

func newTestServer(t *testing.T, backend *stubBackend, summarizer *stubSummarizer) (*httptest.Server, *reportdb.Store) {
	t.Helper()

	deps, snapshots := newTestDeps(t, backend, summarizer)
	srv := httptest.NewServer(NewServer(deps, templates.FS, slog.Default()))
	t.Cleanup(srv.Close)
	return srv, snapshots
}

func TestWorksheetPageRendersSection(t *testing.T) {
	srv, _ := newTestServer(t, newStubBackend(), nil)

	resp, err := http.Get(srv.URL + "/worksheets/roof/insp-1")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "ROOFING")
	assert.Contains(t, body, "Roof Covering")
	assert.Contains(t, body, "Asphalt Shingles")
	assert.Contains(t, body, "Not Inspected")
}

func TestWorksheetUnknownSection(t *testing.T) {
	srv, _ := newTestServer(t, newStubBackend(), nil)

	resp, err := http.Get(srv.URL + "/worksheets/garage/insp-1")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCheckboxPromotesStatusAndPersists(t *testing.T) {
	backend := newStubBackend()
	srv, _ := newTestServer(t, backend, nil)

	resp, err := http.PostForm(
		srv.URL+"/worksheets/roof/insp-1/items/"+url.PathEscape("Roof Covering")+"/checkbox",
		url.Values{"group": {"materials"}, "label": {"Metal"}},
	)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "status-inspected")
	assert.Contains(t, body, ">Inspected<")

	// The debounced full-section write lands shortly after.
	require.Eventually(t, func() bool { return backend.upsertCount() > 0 }, 2*time.Second, 10*time.Millisecond)
	records, err := backend.SectionRecords(context.Background(), domain.SectionRoof, "insp-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Roof Covering", records[0].ItemName)
	assert.True(t, records[0].Materials["Metal"])
	assert.Equal(t, domain.StatusInspected, records[0].Status)
}

func TestExplicitStatusIsNotPromoted(t *testing.T) {
	backend := newStubBackend()
	srv, _ := newTestServer(t, backend, nil)
	base := srv.URL + "/worksheets/roof/insp-1/items/" + url.PathEscape("Gutters")

	resp, err := http.PostForm(base+"/status", url.Values{"status": {"Not Present"}})
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Contains(t, readBody(t, resp), "status-not-present")

	// A checkbox edit must not override the sticky status.
	resp2, err := http.PostForm(base+"/checkbox", url.Values{"group": {"conditions"}, "label": {"Leaking"}})
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Contains(t, readBody(t, resp2), "status-not-present")
}

func TestStatusRejectsUnknownValue(t *testing.T) {
	srv, _ := newTestServer(t, newStubBackend(), nil)

	resp, err := http.PostForm(
		srv.URL+"/worksheets/roof/insp-1/items/Gutters/status",
		url.Values{"status": {"Broken"}},
	)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadAndDeletePhotos(t *testing.T) {
	backend := newStubBackend()
	srv, _ := newTestServer(t, backend, nil)
	base := srv.URL + "/worksheets/roof/insp-1/items/" + url.PathEscape("Roof Covering") + "/photos"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range []string{"front.jpg", "back.jpg"} {
		part, err := mw.CreateFormFile("photos", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("image-data"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	resp, err := http.Post(base, mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "front.jpg")
	assert.Contains(t, body, "back.jpg")

	req, err := http.NewRequest(http.MethodDelete, base+"/1", nil)
	require.NoError(t, err)
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()

	require.Equal(t, http.StatusOK, resp2.StatusCode)
	body2 := readBody(t, resp2)
	assert.NotContains(t, body2, "front.jpg")
	assert.Contains(t, body2, "back.jpg")
}

func TestDetailFormRoundTrip(t *testing.T) {
	backend := newStubBackend()
	srv, _ := newTestServer(t, backend, nil)

	resp, err := http.Get(srv.URL + "/worksheets/roof/insp-1")
	require.NoError(t, err)
	body := readBody(t, resp)
	resp.Body.Close()
	assert.Contains(t, body, "Roof System Details")
	assert.Contains(t, body, `name="inspection_method"`)

	resp2, err := http.PostForm(srv.URL+"/worksheets/roof/insp-1/details",
		url.Values{"style": {"Gable"}, "age": {"8 years"}, "inspection_method": {"Drone"}})
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Contains(t, readBody(t, resp2), `value="Gable"`)

	// The detail payload lands as a JSON comment on the pseudo-item.
	records, err := backend.SectionRecords(context.Background(), domain.SectionRoof, "insp-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Roof System Details", records[0].ItemName)
	assert.Equal(t, domain.StatusInspected, records[0].Status)
	assert.Contains(t, records[0].Comment, `"style":"Gable"`)

	// A fresh page render shows the stored values.
	resp3, err := http.Get(srv.URL + "/worksheets/roof/insp-1")
	require.NoError(t, err)
	defer resp3.Body.Close()
	assert.Contains(t, readBody(t, resp3), `value="Drone"`)
}

// An item edit after a details save must not push a stale detail record back
// to the backend with the debounced section write.
func TestDetailSaveNotRevertedByItemEdit(t *testing.T) {
	backend := newStubBackend()
	detail := domain.NewItemRecord("insp-1", "Roof System Details")
	detail.Comment = `{"style":"Gambrel","age":"30 years","inspection_method":"Ladder"}`
	detail.Status = domain.StatusInspected
	backend.records[domain.SectionRoof] = []domain.ItemRecord{detail}

	srv, _ := newTestServer(t, backend, nil)

	resp, err := http.PostForm(srv.URL+"/worksheets/roof/insp-1/details",
		url.Values{"style": {"Gable"}, "age": {"8 years"}, "inspection_method": {"Drone"}})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp2, err := http.PostForm(
		srv.URL+"/worksheets/roof/insp-1/items/"+url.PathEscape("Roof Covering")+"/checkbox",
		url.Values{"group": {"materials"}, "label": {"Metal"}},
	)
	require.NoError(t, err)
	resp2.Body.Close()

	// Wait for the debounced section write, then check the saved details held.
	require.Eventually(t, func() bool { return backend.upsertCount() >= 2 }, 2*time.Second, 10*time.Millisecond)
	records, err := backend.SectionRecords(context.Background(), domain.SectionRoof, "insp-1")
	require.NoError(t, err)
	for _, rec := range records {
		if rec.ItemName == "Roof System Details" {
			assert.Contains(t, rec.Comment, `"style":"Gable"`)
			assert.NotContains(t, rec.Comment, "Gambrel")
		}
	}
}

// Pages idle past the TTL are flushed and dropped from the registry so the
// process does not hold a store and photo cache per pair forever.
func TestIdlePagesAreFlushedAndEvicted(t *testing.T) {
	backend := newStubBackend()
	deps, _ := newTestDeps(t, backend, nil)
	deps.DebounceDelay = time.Hour // edits stay pending until a flush

	ws := NewServer(deps, templates.FS, slog.Default())
	ws.pageTTL = 50 * time.Millisecond
	srv := httptest.NewServer(ws)
	t.Cleanup(srv.Close)

	resp, err := http.PostForm(
		srv.URL+"/worksheets/roof/insp-1/items/"+url.PathEscape("Roof Covering")+"/checkbox",
		url.Values{"group": {"materials"}, "label": {"Metal"}},
	)
	require.NoError(t, err)
	resp.Body.Close()

	time.Sleep(100 * time.Millisecond)

	// Registering a different pair sweeps the idle roof page.
	resp2, err := http.Get(srv.URL + "/worksheets/exterior/insp-1")
	require.NoError(t, err)
	resp2.Body.Close()

	require.Equal(t, 1, backend.upsertCount())
	records, err := backend.SectionRecords(context.Background(), domain.SectionRoof, "insp-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Materials["Metal"])

	ws.mu.Lock()
	_, registered := ws.pages[pageKey{section: domain.SectionRoof, inspectionID: "insp-1"}]
	ws.mu.Unlock()
	assert.False(t, registered)
}

func TestDetailsNotFoundForPlainSection(t *testing.T) {
	srv, _ := newTestServer(t, newStubBackend(), nil)

	resp, err := http.PostForm(srv.URL+"/worksheets/exterior/insp-1/details",
		url.Values{"style": {"x"}})
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUploadWithoutFiles(t *testing.T) {
	srv, _ := newTestServer(t, newStubBackend(), nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.Close())

	resp, err := http.Post(
		srv.URL+"/worksheets/roof/insp-1/items/Gutters/photos",
		mw.FormDataContentType(), &buf,
	)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPhotoProxyCachesDownloads(t *testing.T) {
	backend := newStubBackend()
	srv, _ := newTestServer(t, backend, nil)
	target := srv.URL + "/photos/7?src=" + url.QueryEscape("/inspection-photo-file/x.jpg")

	for i := 0; i < 2; i++ {
		resp, err := http.Get(target)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
		data := readBody(t, resp)
		resp.Body.Close()
		assert.Equal(t, "jpeg-bytes", data)
	}

	assert.Equal(t, 1, backend.photoFileCalls)
}

func TestPhotoProxyRejectsAbsoluteSrc(t *testing.T) {
	srv, _ := newTestServer(t, newStubBackend(), nil)

	resp, err := http.Get(srv.URL + "/photos/7?src=" + url.QueryEscape("https://evil.example/x.jpg"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}
