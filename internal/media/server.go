package media

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"chatapp/internal/common"
	"chatapp/internal/dbmongo"
	"chatapp/internal/dbmysql"
)

const maxUploadSize = 50 << 20 // 50 MB

// HTTPServer serves media uploads and downloads. Bytes live in GridFS; a
// MediaRef row in MySQL ties each file to its uploader and, optionally, a
// message.
type HTTPServer struct {
	storage *dbmongo.MediaStorage
	db      *gorm.DB
}

func NewHTTPServer(mongoClient *dbmongo.MongoClient, db *gorm.DB) *HTTPServer {
	return &HTTPServer{
		storage: dbmongo.NewMediaStorage(mongoClient),
		db:      db,
	}
}

func (s *HTTPServer) Router() *mux.Router {
	router := mux.NewRouter()

	authed := router.NewRoute().Subrouter()
	authed.Use(common.AuthMiddleware)
	authed.HandleFunc("/media", s.uploadFile).Methods("POST")
	authed.HandleFunc("/media/{fileId}", s.deleteFile).Methods("DELETE")

	// Downloads stay public; file ids are unguessable ObjectIDs.
	router.HandleFunc("/media/{fileId}", s.serveFile).Methods("GET")
	router.HandleFunc("/health", s.health).Methods("GET")

	return router
}

func (s *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router().ServeHTTP(w, r)
}

func (s *HTTPServer) uploadFile(w http.ResponseWriter, r *http.Request) {
	callerID, ok := common.CallerID(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "file too large or malformed form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	uploaded, err := s.storage.UploadFile(r.Context(), header.Filename, mimeType, callerID, file)
	if err != nil {
		log.Printf("upload failed for %s: %v", header.Filename, err)
		http.Error(w, "upload failed", http.StatusInternalServerError)
		return
	}

	ref := &dbmysql.MediaRef{
		FileID:      uploaded.ID,
		Type:        uploaded.FileType.String(),
		FileName:    uploaded.Filename,
		ContentType: mimeType,
		URL:         "/media/" + uploaded.ID,
		Size:        uploaded.Size,
		UploadedBy:  callerID,
	}
	if raw := r.FormValue("message_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			messageID := uint(id)
			ref.MessageID = &messageID
		}
	}

	if err := s.db.WithContext(r.Context()).Create(ref).Error; err != nil {
		// Roll the orphaned bytes back out of GridFS.
		if delErr := s.storage.DeleteFile(r.Context(), uploaded.ID); delErr != nil {
			log.Printf("orphaned gridfs file %s: %v", uploaded.ID, delErr)
		}
		http.Error(w, "failed to record upload", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ref); err != nil {
		log.Printf("failed to encode upload response: %v", err)
	}
}

func (s *HTTPServer) serveFile(w http.ResponseWriter, r *http.Request) {
	fileID := mux.Vars(r)["fileId"]

	fileReader, mediaFile, err := s.storage.DownloadFile(r.Context(), fileID)
	if err != nil {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", s.getContentType(mediaFile.Filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", mediaFile.Size))

	if _, err := io.Copy(w, fileReader); err != nil {
		log.Printf("error streaming file %s: %v", fileID, err)
	}
}

func (s *HTTPServer) deleteFile(w http.ResponseWriter, r *http.Request) {
	callerID, ok := common.CallerID(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	fileID := mux.Vars(r)["fileId"]

	var ref dbmysql.MediaRef
	err := s.db.WithContext(r.Context()).First(&ref, "file_id = ?", fileID).Error
	if err != nil {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	if ref.UploadedBy != callerID {
		http.Error(w, "only the uploader may delete a file", http.StatusForbidden)
		return
	}

	if err := s.storage.DeleteFile(r.Context(), fileID); err != nil {
		log.Printf("gridfs delete failed for %s: %v", fileID, err)
		http.Error(w, "delete failed", http.StatusInternalServerError)
		return
	}
	if err := s.db.WithContext(r.Context()).Delete(&ref).Error; err != nil {
		log.Printf("media ref delete failed for %s: %v", fileID, err)
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) getContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("✅ Media server is healthy"))
}
