package packs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mentorix/backend/internal/auth"
	"github.com/mentorix/backend/internal/document"
	"github.com/mentorix/backend/internal/extract"
	"github.com/mentorix/backend/internal/generator"
	"github.com/mentorix/backend/internal/models"
)

// maxUploadBytes caps syllabus uploads at 10 MB.
const maxUploadBytes = 10 << 20

type Handler struct {
	service   *Service
	store     *Store
	extractor *extract.Extractor
}

func NewHandler(service *Service, store *Store, extractor *extract.Extractor) *Handler {
	return &Handler{service: service, store: store, extractor: extractor}
}

// RegisterRoutes mounts the pack endpoints on an authenticated subrouter.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/packs/generate", h.Generate).Methods("POST")
	r.HandleFunc("/packs", h.List).Methods("GET")
	r.HandleFunc("/packs/{id}", h.Get).Methods("GET")
	r.HandleFunc("/packs/{id}/documents/{name}", h.GetDocument).Methods("GET")
	r.HandleFunc("/packs/{id}/archive", h.GetArchive).Methods("GET")
	r.HandleFunc("/bloom/detect", h.DetectBloom).Methods("POST")
	r.HandleFunc("/syllabus/extract", h.ExtractSyllabus).Methods("POST")
}

// Generate runs the pipeline for the posted request.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req models.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !req.InputReady() {
		respondError(w, http.StatusBadRequest, "provide a topic or syllabus text before generating")
		return
	}

	resp, err := h.service.Generate(r.Context(), userID, req)
	if err != nil {
		var degraded *generator.DegradedContentError
		if errors.As(err, &degraded) {
			respondError(w, http.StatusBadGateway, degraded.Error())
			return
		}
		log.Printf("[packs] generate failed: %v", err)
		respondError(w, http.StatusInternalServerError, "generation failed")
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

// List returns the caller's generations, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	generations, err := h.store.ListGenerations(userID)
	if err != nil {
		log.Printf("[packs] list: %v", err)
		respondError(w, http.StatusInternalServerError, "could not list generations")
		return
	}

	respondJSON(w, http.StatusOK, generations)
}

// Get returns one generation with its document summaries.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	id := mux.Vars(r)["id"]
	gen, err := h.store.GetGeneration(userID, id)
	if errors.Is(err, ErrNotFound) {
		respondError(w, http.StatusNotFound, "generation not found")
		return
	}
	if err != nil {
		log.Printf("[packs] get: %v", err)
		respondError(w, http.StatusInternalServerError, "could not load generation")
		return
	}

	docs, err := h.store.ListDocuments(userID, id)
	if err != nil {
		log.Printf("[packs] get documents: %v", err)
		respondError(w, http.StatusInternalServerError, "could not load documents")
		return
	}
	summaries := make([]models.PackDocument, len(docs))
	for i, d := range docs {
		summaries[i] = models.PackDocument{
			GenerationID: d.GenerationID,
			Name:         d.Name,
			Title:        d.Title,
			Pages:        d.Pages,
		}
	}

	respondJSON(w, http.StatusOK, models.GeneratePackResponse{Generation: *gen, Documents: summaries})
}

// GetDocument streams one document's PDF bytes.
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	vars := mux.Vars(r)
	doc, err := h.store.GetDocument(userID, vars["id"], vars["name"])
	if errors.Is(err, ErrNotFound) {
		respondError(w, http.StatusNotFound, "document not found")
		return
	}
	if err != nil {
		log.Printf("[packs] get document: %v", err)
		respondError(w, http.StatusInternalServerError, "could not load document")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, doc.Name))
	w.Write(doc.PDF)
}

// GetArchive zips every document of a generation into one download.
func (h *Handler) GetArchive(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	id := mux.Vars(r)["id"]
	docs, err := h.store.ListDocuments(userID, id)
	if err != nil {
		log.Printf("[packs] archive: %v", err)
		respondError(w, http.StatusInternalServerError, "could not load documents")
		return
	}
	if len(docs) == 0 {
		respondError(w, http.StatusNotFound, "generation not found")
		return
	}

	files := make([]document.ArchiveFile, len(docs))
	for i, doc := range docs {
		files[i] = document.ArchiveFile{Name: doc.Name, Data: doc.PDF}
	}
	archive, err := document.BuildArchive(files)
	if err != nil {
		log.Printf("[packs] build archive: %v", err)
		respondError(w, http.StatusInternalServerError, "could not build archive")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="pack_%s.zip"`, id))
	w.Write(archive)
}

// DetectBloom classifies a question's Bloom's taxonomy level.
func (h *Handler) DetectBloom(w http.ResponseWriter, r *http.Request) {
	var req models.BloomDetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	level, detected := generator.DetectBloomLevel(req.Text)
	resp := models.BloomDetectResponse{Level: string(level), Detected: detected}
	if !detected {
		resp.Level = generator.LevelNotDetected
	}
	respondJSON(w, http.StatusOK, resp)
}

// ExtractSyllabus pulls plain text from an uploaded syllabus file.
func (h *Handler) ExtractSyllabus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "could not read upload")
		return
	}

	text, err := h.extractor.Extract(r.Context(), header.Filename, data)
	switch {
	case errors.Is(err, extract.ErrUnsupportedType):
		respondError(w, http.StatusUnsupportedMediaType, "only .txt, .pdf and .docx files are supported")
		return
	case errors.Is(err, extract.ErrEmptyDocument):
		respondError(w, http.StatusUnprocessableEntity, "no text could be extracted from the file")
		return
	case err != nil:
		log.Printf("[packs] extract %s: %v", header.Filename, err)
		respondError(w, http.StatusUnprocessableEntity, "file could not be read")
		return
	}

	respondJSON(w, http.StatusOK, models.ExtractResponse{Text: text, Chars: len(text)})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[packs] encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.ErrorResponse{Error: message})
}
