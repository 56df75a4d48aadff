package web

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
)

// handlePhotoProxy serves a backend photo through the local cache: a cached
// copy is served directly, otherwise the file is downloaded once, cached, and
// streamed to the client.
func (s *Server) handlePhotoProxy(w http.ResponseWriter, r *http.Request) {
	photoID, err := strconv.ParseInt(r.PathValue("photoID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid photo id", http.StatusBadRequest)
		return
	}

	src := r.URL.Query().Get("src")
	if !strings.HasPrefix(src, "/") {
		http.Error(w, "src must be a backend-relative path", http.StatusBadRequest)
		return
	}

	if rc, mimeType, ok, err := s.deps.PhotoCache.Get(r.Context(), photoID); err != nil {
		s.logger.Error("photo cache read failed", "photo_id", photoID, "error", err)
	} else if ok {
		defer func() {
			if err := rc.Close(); err != nil {
				log.Printf("close cached photo error: %v", err)
			}
		}()
		servePhoto(w, mimeType, rc)
		return
	}

	rc, mimeType, err := s.deps.Backend.PhotoFile(r.Context(), src)
	if err != nil {
		http.Error(w, "failed to download photo", http.StatusBadGateway)
		log.Printf("photo download error: %v", err)
		return
	}
	defer func() {
		if err := rc.Close(); err != nil {
			log.Printf("close photo download error: %v", err)
		}
	}()

	data, err := io.ReadAll(rc)
	if err != nil {
		http.Error(w, "failed to download photo", http.StatusBadGateway)
		log.Printf("photo download error: %v", err)
		return
	}

	if err := s.deps.PhotoCache.Put(r.Context(), photoID, mimeType, bytes.NewReader(data)); err != nil {
		s.logger.Error("photo cache write failed", "photo_id", photoID, "error", err)
	}

	servePhoto(w, mimeType, bytes.NewReader(data))
}

func servePhoto(w http.ResponseWriter, mimeType string, r io.Reader) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "private, max-age=86400")
	if _, err := io.Copy(w, r); err != nil {
		log.Printf("write photo response error: %v", err)
	}
}
