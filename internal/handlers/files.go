package handlers

import (
	"errors"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/config"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/middleware"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/service"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxUploadFiles — сколько файлов принимается за один запрос.
const maxUploadFiles = 10

// FileHandler — вложения ESP.
type FileHandler struct {
	ArquivoService *service.ArquivoService
	Logger         *zap.SugaredLogger
	Config         *config.Config
}

func NewFileHandler(arquivoService *service.ArquivoService, logger *zap.SugaredLogger, cfg *config.Config) *FileHandler {
	return &FileHandler{ArquivoService: arquivoService, Logger: logger, Config: cfg}
}

// Upload multipart/form-data: espId + один или несколько files
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Лимит общего тела запроса
	maxBody := h.ArquivoService.MaxBytes()*maxUploadFiles + 1<<20
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Logger.Warnw("Upload: request too large", "limit", maxBody)
			middleware.WriteError(w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		h.Logger.Warnw("Upload: invalid multipart form", "error", err)
		middleware.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	espID := r.FormValue("espId")
	if espID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "espId is required")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		headers = r.MultipartForm.File["file"]
	}
	if len(headers) > maxUploadFiles {
		middleware.WriteError(w, http.StatusBadRequest, "too many files")
		return
	}

	uploads := make([]service.UploadFile, 0, len(headers))
	for _, fh := range headers {
		data, err := readPart(fh)
		if err != nil {
			h.Logger.Warnw("Upload: failed to read file", "filename", fh.Filename, "error", err)
			middleware.WriteError(w, http.StatusBadRequest, "failed to read file")
			return
		}
		uploads = append(uploads, service.UploadFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	files, err := h.ArquivoService.Upload(r.Context(), identity(r).ID, espID, uploads)
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "Upload", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"files": files})
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *FileHandler) ListByEsp(w http.ResponseWriter, r *http.Request) {
	files, err := h.ArquivoService.ListByEsp(r.Context(), chi.URLParam(r, "espId"))
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "ListFiles", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

// Download отдаёт декодированное содержимое как вложение.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	meta, data, err := h.ArquivoService.Download(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "Download", err)
		return
	}
	w.Header().Set("Content-Type", meta.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": meta.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ArquivoService.Delete(r.Context(), identity(r).ID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, h.Logger, h.Config, "DeleteFile", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Arquivo deletado com sucesso"})
}
