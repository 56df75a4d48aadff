package worksheet

import (
	"context"

	"github.com/thsolutions/homesheet/internal/domain"
	"github.com/thsolutions/homesheet/internal/photos"
)

// SectionView is everything a worksheet renderer needs to draw one section:
// the static item configuration, the current records, and the current photo
// lists. The renderer owns no state of its own; it is a pure function of this
// view plus user events forwarded to Handlers.
type SectionView struct {
	Config  domain.SectionConfig
	Records map[string]domain.ItemRecord
	Photos  map[string][]domain.Photo
}

// Handlers is the operation set a worksheet page forwards user events to:
// checkboxes, comment text, the status dropdown, and the photo controls.
type Handlers interface {
	SetCheckbox(itemName string, group domain.Group, label string) domain.ItemRecord
	SetComment(itemName, comment string) domain.ItemRecord
	SetStatus(itemName string, status domain.Status) domain.ItemRecord
	UploadPhotos(ctx context.Context, itemName string, files []photos.File) int
	RemovePhoto(ctx context.Context, itemName string, photoID int64) error
	RefreshPhotos(ctx context.Context, itemName string) error
}

// Page bundles a section store with the inspection's photo adapter into the
// Handlers set, and builds the SectionView a renderer consumes. Detail is nil
// for sections without a System Details pseudo-item.
type Page struct {
	Config domain.SectionConfig
	Store  *Store
	Photos *photos.Adapter
	Detail *DetailStore
}

// View assembles the current SectionView. Every configured item name gets a
// record: items the backend has never seen render with defaults.
func (p *Page) View() SectionView {
	records := p.Store.Records()
	for _, name := range p.Config.ItemNames() {
		if _, ok := records[name]; !ok {
			records[name] = domain.NewItemRecord(p.Store.InspectionID(), name)
		}
	}
	return SectionView{
		Config:  p.Config,
		Records: records,
		Photos:  p.Photos.ByItem(),
	}
}

func (p *Page) SetCheckbox(itemName string, group domain.Group, label string) domain.ItemRecord {
	return p.Store.SetCheckbox(itemName, group, label)
}

func (p *Page) SetComment(itemName, comment string) domain.ItemRecord {
	return p.Store.SetComment(itemName, comment)
}

func (p *Page) SetStatus(itemName string, status domain.Status) domain.ItemRecord {
	return p.Store.SetStatus(itemName, status)
}

func (p *Page) UploadPhotos(ctx context.Context, itemName string, files []photos.File) int {
	return p.Photos.Upload(ctx, itemName, files)
}

func (p *Page) RemovePhoto(ctx context.Context, itemName string, photoID int64) error {
	return p.Photos.Remove(ctx, itemName, photoID)
}

func (p *Page) RefreshPhotos(ctx context.Context, itemName string) error {
	return p.Photos.Fetch(ctx, itemName)
}

var _ Handlers = (*Page)(nil)
