package web

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/thsolutions/homesheet/internal/domain"
	"github.com/thsolutions/homesheet/internal/photos"
	"github.com/thsolutions/homesheet/internal/worksheet"
)

// statusChoices is the dropdown order on a worksheet item.
var statusChoices = []domain.Status{
	domain.StatusNotInspected,
	domain.StatusInspected,
	domain.StatusNotPresent,
	domain.StatusRepairOrReplace,
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if err := s.renderPage(w,
		map[string]any{"Sections": domain.Worksheets()},
		"base.html", "pages/index.html",
	); err != nil {
		log.Printf("render page error: %v", err)
	}
}

// worksheetPage resolves the {section} and {inspectionID} path values to a
// live page. A nil return means the response has already been written.
func (s *Server) worksheetPage(w http.ResponseWriter, r *http.Request) *worksheet.Page {
	cfg, ok := domain.WorksheetFor(domain.Section(r.PathValue("section")))
	if !ok {
		http.Error(w, "unknown worksheet section", http.StatusNotFound)
		return nil
	}
	inspectionID := r.PathValue("inspectionID")
	if inspectionID == "" {
		http.Error(w, "inspection id required", http.StatusBadRequest)
		return nil
	}

	p, err := s.page(r.Context(), cfg, inspectionID)
	if err != nil {
		http.Error(w, "failed to load worksheet", http.StatusBadGateway)
		return nil
	}
	return p
}

func basePath(cfg domain.SectionConfig, inspectionID string) string {
	return "/worksheets/" + string(cfg.Section) + "/" + url.PathEscape(inspectionID)
}

// detailFields lists the System Details form fields per section. The payload
// is stored as a JSON object keyed by these names.
var detailFields = map[domain.Section][]string{
	domain.SectionRoof:       {"style", "age", "inspection_method"},
	domain.SectionElectrical: {"service_size", "voltage", "panel_location"},
}

func (s *Server) handleWorksheet(w http.ResponseWriter, r *http.Request) {
	p := s.worksheetPage(w, r)
	if p == nil {
		return
	}

	data := map[string]any{
		"View":     p.View(),
		"BasePath": basePath(p.Config, p.Store.InspectionID()),
		"Statuses": statusChoices,
	}
	if p.Detail != nil {
		values := map[string]string{}
		if _, err := p.Detail.Load(&values); err != nil {
			log.Printf("load details error: %v", err)
		}
		data["Details"] = detailFormView{
			BasePath: basePath(p.Config, p.Store.InspectionID()),
			Title:    p.Detail.ItemName(),
			Fields:   detailFields[p.Config.Section],
			Values:   values,
		}
	}

	if err := s.renderPage(w, data,
		"base.html", "pages/worksheet.html", "partials/status_badge.html",
		"partials/photo_list.html", "partials/detail_form.html",
	); err != nil {
		log.Printf("render page error: %v", err)
	}
}

func (s *Server) handleSaveDetails(w http.ResponseWriter, r *http.Request) {
	p := s.worksheetPage(w, r)
	if p == nil {
		return
	}
	if p.Detail == nil {
		http.Error(w, "section has no details form", http.StatusNotFound)
		return
	}

	values := map[string]string{}
	for _, field := range detailFields[p.Config.Section] {
		values[field] = r.FormValue(field)
	}

	if err := p.Detail.Save(r.Context(), values); err != nil {
		http.Error(w, "failed to save details", http.StatusBadGateway)
		log.Printf("save details error: %v", err)
		return
	}

	view := detailFormView{
		BasePath: basePath(p.Config, p.Store.InspectionID()),
		Title:    p.Detail.ItemName(),
		Fields:   detailFields[p.Config.Section],
		Values:   values,
		Saved:    true,
	}
	if err := s.renderPartial(w, "partials/detail_form.html", "detail_form", view); err != nil {
		log.Printf("render partial error: %v", err)
	}
}

// detailFormView is the data a detail_form partial renders.
type detailFormView struct {
	BasePath string
	Title    string
	Fields   []string
	Values   map[string]string
	Saved    bool
}

func (s *Server) handleCheckbox(w http.ResponseWriter, r *http.Request) {
	p := s.worksheetPage(w, r)
	if p == nil {
		return
	}

	group := domain.Group(r.FormValue("group"))
	if group != domain.GroupMaterials && group != domain.GroupConditions {
		http.Error(w, "unknown checkbox group", http.StatusBadRequest)
		return
	}
	label := r.FormValue("label")
	if label == "" {
		http.Error(w, "checkbox label required", http.StatusBadRequest)
		return
	}

	rec := p.SetCheckbox(r.PathValue("item"), group, label)
	if err := s.renderPartial(w, "partials/status_badge.html", "status_badge", rec.Status); err != nil {
		log.Printf("render partial error: %v", err)
	}
}

func (s *Server) handleComment(w http.ResponseWriter, r *http.Request) {
	p := s.worksheetPage(w, r)
	if p == nil {
		return
	}

	rec := p.SetComment(r.PathValue("item"), r.FormValue("comment"))
	if err := s.renderPartial(w, "partials/status_badge.html", "status_badge", rec.Status); err != nil {
		log.Printf("render partial error: %v", err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	p := s.worksheetPage(w, r)
	if p == nil {
		return
	}

	status := domain.Status(r.FormValue("status"))
	if !status.Valid() {
		http.Error(w, "unknown status", http.StatusBadRequest)
		return
	}

	rec := p.SetStatus(r.PathValue("item"), status)
	if err := s.renderPartial(w, "partials/status_badge.html", "status_badge", rec.Status); err != nil {
		log.Printf("render partial error: %v", err)
	}
}

const maxUploadBytes = 32 << 20

func (s *Server) handleUploadPhotos(w http.ResponseWriter, r *http.Request) {
	p := s.worksheetPage(w, r)
	if p == nil {
		return
	}
	itemName := r.PathValue("item")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	var files []photos.File
	for _, hdr := range r.MultipartForm.File["photos"] {
		f, err := hdr.Open()
		if err != nil {
			http.Error(w, "failed to read upload", http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(f)
		if cerr := f.Close(); cerr != nil {
			log.Printf("close upload error: %v", cerr)
		}
		if err != nil {
			http.Error(w, "failed to read upload", http.StatusBadRequest)
			return
		}
		files = append(files, photos.File{Name: hdr.Filename, Data: data})
	}
	if len(files) == 0 {
		http.Error(w, "no photos in request", http.StatusBadRequest)
		return
	}

	p.UploadPhotos(r.Context(), itemName, files)
	s.renderPhotoList(w, p, itemName)
}

func (s *Server) handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	p := s.worksheetPage(w, r)
	if p == nil {
		return
	}
	itemName := r.PathValue("item")

	photoID, err := strconv.ParseInt(r.PathValue("photoID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid photo id", http.StatusBadRequest)
		return
	}

	if err := p.RemovePhoto(r.Context(), itemName, photoID); err != nil {
		http.Error(w, "failed to delete photo", http.StatusBadGateway)
		return
	}
	s.renderPhotoList(w, p, itemName)
}

func (s *Server) renderPhotoList(w http.ResponseWriter, p *worksheet.Page, itemName string) {
	view := newPhotoListView(basePath(p.Config, p.Store.InspectionID()), itemName, p.Photos.Photos(itemName))
	if err := s.renderPartial(w, "partials/photo_list.html", "photo_list", view); err != nil {
		log.Printf("render partial error: %v", err)
	}
}
