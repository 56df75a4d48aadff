package worksheet

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thsolutions/homesheet/internal/domain"
)

type roofDetails struct {
	Style            string `json:"style"`
	Age              string `json:"age"`
	InspectionMethod string `json:"inspection_method"`
}

func newTestDetailStore(t *testing.T, fb *fakeBackend) (*Store, *DetailStore) {
	t.Helper()
	s := newTestStore(t, fb, time.Hour)
	require.NoError(t, s.Load(context.Background()))
	return s, NewDetailStore(s, "Roof System Details", slog.Default())
}

func TestDetailStoreSaveEncodesIntoComment(t *testing.T) {
	fb := &fakeBackend{}
	_, ds := newTestDetailStore(t, fb)

	err := ds.Save(context.Background(), roofDetails{Style: "Gable", Age: "8 years", InspectionMethod: "Ground"})
	require.NoError(t, err)

	require.Equal(t, 1, fb.upsertCount())
	sent := fb.lastUpsert()
	require.Len(t, sent, 1)
	assert.Equal(t, "Roof System Details", sent[0].ItemName)
	assert.Equal(t, domain.StatusInspected, sent[0].Status)
	assert.Empty(t, sent[0].Materials)
	assert.Empty(t, sent[0].Conditions)

	var decoded roofDetails
	require.NoError(t, json.Unmarshal([]byte(sent[0].Comment), &decoded))
	assert.Equal(t, "Gable", decoded.Style)
}

// A detail save must stick: a later debounced full-section write carries the
// saved payload, not the copy loaded with the page.
func TestDetailSaveSurvivesLaterSectionPersist(t *testing.T) {
	stale := domain.NewItemRecord("insp-1", "Roof System Details")
	stale.Comment = `{"style":"Gambrel","age":"30 years","inspection_method":"Ladder"}`
	stale.Status = domain.StatusInspected
	fb := &fakeBackend{records: []domain.ItemRecord{stale}}

	s, ds := newTestDetailStore(t, fb)
	require.NoError(t, ds.Save(context.Background(),
		roofDetails{Style: "Gable", Age: "8 years", InspectionMethod: "Drone"}))

	s.SetCheckbox("Roof Covering", domain.GroupMaterials, "Metal")
	s.Flush()

	sent := fb.lastUpsert()
	require.Len(t, sent, 2)
	var detail *domain.ItemRecord
	for i := range sent {
		if sent[i].ItemName == "Roof System Details" {
			detail = &sent[i]
		}
	}
	require.NotNil(t, detail)
	var decoded roofDetails
	require.NoError(t, json.Unmarshal([]byte(detail.Comment), &decoded))
	assert.Equal(t, "Gable", decoded.Style)
	assert.Equal(t, "Drone", decoded.InspectionMethod)
}

func TestDetailStoreLoadRoundTrip(t *testing.T) {
	rec := domain.NewItemRecord("insp-1", "Roof System Details")
	rec.Comment = `{"style":"Hip","age":"15 years","inspection_method":"Drone"}`
	rec.Status = domain.StatusInspected
	fb := &fakeBackend{records: []domain.ItemRecord{
		domain.NewItemRecord("insp-1", "Roof Covering"),
		rec,
	}}
	_, ds := newTestDetailStore(t, fb)

	var out roofDetails
	found, err := ds.Load(&out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Hip", out.Style)
	assert.Equal(t, "Drone", out.InspectionMethod)
}

func TestDetailStoreLoadMissingRecord(t *testing.T) {
	fb := &fakeBackend{records: []domain.ItemRecord{
		domain.NewItemRecord("insp-1", "Roof Covering"),
	}}
	_, ds := newTestDetailStore(t, fb)

	var out roofDetails
	found, err := ds.Load(&out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, out.Style)
}

func TestDetailStoreLoadMalformedPayload(t *testing.T) {
	rec := domain.NewItemRecord("insp-1", "Roof System Details")
	rec.Comment = `{not json`
	fb := &fakeBackend{records: []domain.ItemRecord{rec}}
	_, ds := newTestDetailStore(t, fb)

	var out roofDetails
	found, err := ds.Load(&out)
	assert.Error(t, err)
	assert.False(t, found)
}
