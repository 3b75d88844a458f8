package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/repo"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ArquivoService — вложения ESP, хранятся в БД как base64.
type ArquivoService struct {
	repo     repo.ArquivoRepository
	esps     repo.EspRepository
	audit    *AuditService
	logger   *zap.SugaredLogger
	maxBytes int64
}

func NewArquivoService(r repo.ArquivoRepository, esps repo.EspRepository, audit *AuditService, logger *zap.SugaredLogger, maxBytes int64) *ArquivoService {
	return &ArquivoService{repo: r, esps: esps, audit: audit, logger: logger, maxBytes: maxBytes}
}

// UploadFile — один файл из multipart-запроса.
type UploadFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// MaxBytes — предел размера одного файла.
func (s *ArquivoService) MaxBytes() int64 {
	return s.maxBytes
}

// DetectTipo определяет тип по content type, затем по расширению.
func DetectTipo(contentType, filename string) (model.TipoArquivo, bool) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch {
	case strings.HasPrefix(ct, "image/"):
		return model.TipoImagem, true
	case ct == "application/pdf":
		return model.TipoPDF, true
	case ct == docxContentType:
		return model.TipoDOCX, true
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".bmp":
		return model.TipoImagem, true
	case ".pdf":
		return model.TipoPDF, true
	case ".docx":
		return model.TipoDOCX, true
	}
	return "", false
}

// Upload сохраняет все файлы или ни одного, если какой-то не проходит проверку.
func (s *ArquivoService) Upload(ctx context.Context, actorID, espID string, files []UploadFile) ([]model.ArquivoMidia, error) {
	if espID == "" {
		return nil, invalid("espId is required")
	}
	if len(files) == 0 {
		return nil, invalid("no files uploaded")
	}
	if _, err := s.esps.GetByID(ctx, espID); err != nil {
		return nil, notFound(err, "esp")
	}

	rows := make([]*model.ArquivoMidia, 0, len(files))
	for _, f := range files {
		if len(f.Data) == 0 {
			return nil, invalid(fmt.Sprintf("file %q is empty", f.Filename))
		}
		if s.maxBytes > 0 && int64(len(f.Data)) > s.maxBytes {
			return nil, fmt.Errorf("%w: %q exceeds %d bytes", ErrTooLarge, f.Filename, s.maxBytes)
		}
		tipo, ok := DetectTipo(f.ContentType, f.Filename)
		if !ok {
			return nil, invalid(fmt.Sprintf("unsupported file type for %q", f.Filename))
		}
		ct := f.ContentType
		if ct == "" {
			ct = defaultContentType(tipo, f.Filename)
		}
		rows = append(rows, &model.ArquivoMidia{
			EspID:       espID,
			Tipo:        tipo,
			Filename:    filepath.Base(f.Filename),
			ContentType: ct,
			FileSize:    int64(len(f.Data)),
			FileData:    base64.StdEncoding.EncodeToString(f.Data),
		})
	}

	out := make([]model.ArquivoMidia, 0, len(rows))
	for _, a := range rows {
		if err := s.repo.Create(ctx, a); err != nil {
			return nil, err
		}
		s.audit.Record(ctx, actorID, model.AcaoUploadArquivo, a.ID, fmt.Sprintf("Arquivo %q anexado à ESP %s", a.Filename, espID))
		a.FileData = ""
		out = append(out, *a)
	}
	s.logger.Infow("files uploaded", "esp_id", espID, "count", len(out), "user_id", actorID)
	return out, nil
}

func defaultContentType(tipo model.TipoArquivo, filename string) string {
	switch tipo {
	case model.TipoPDF:
		return "application/pdf"
	case model.TipoDOCX:
		return docxContentType
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "jpg" {
		ext = "jpeg"
	}
	if ext == "svg" {
		ext = "svg+xml"
	}
	return "image/" + ext
}

// ListByEsp — вложения без содержимого.
func (s *ArquivoService) ListByEsp(ctx context.Context, espID string) ([]model.ArquivoMidia, error) {
	if _, err := s.esps.GetByID(ctx, espID); err != nil {
		return nil, notFound(err, "esp")
	}
	return s.repo.ListByEsp(ctx, espID)
}

// Download возвращает метаданные и декодированное содержимое.
func (s *ArquivoService) Download(ctx context.Context, id string) (*model.ArquivoMidia, []byte, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, notFound(err, "file")
	}
	data, err := base64.StdEncoding.DecodeString(a.FileData)
	if err != nil {
		return nil, nil, fmt.Errorf("decode file %s: %w", id, err)
	}
	a.FileData = ""
	return a, data, nil
}

func (s *ArquivoService) Delete(ctx context.Context, actorID, id string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "file")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "file")
	}
	s.audit.Record(ctx, actorID, model.AcaoDeletarArquivo, id, fmt.Sprintf("Arquivo %q removido da ESP %s", a.Filename, a.EspID))
	return nil
}
