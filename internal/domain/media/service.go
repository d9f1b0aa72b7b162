package media

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"venuehub/internal/config"
	"venuehub/internal/domain"
)

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// allowedFor maps a purpose to accepted MIME types and their extensions.
func allowedFor(p domain.MediaPurpose) (map[string]string, bool) {
	switch p {
	case domain.MediaHallImage, domain.MediaServiceImage, domain.MediaReviewImage:
		return imageTypes, true
	case domain.MediaVerification:
		docs := map[string]string{"application/pdf": ".pdf"}
		for k, v := range imageTypes {
			docs[k] = v
		}
		return docs, true
	}
	return nil, false
}

// Service stores files on local disk and records them so other modules can
// reference the returned URL (hall images, verification documents).
type Service struct {
	repo *Repository
	cfg  config.MediaConfig
	log  logrus.FieldLogger
	now  func() time.Time
}

func NewService(repo *Repository, cfg config.MediaConfig, log logrus.FieldLogger) *Service {
	cfg.URLPrefix = strings.TrimSuffix(cfg.URLPrefix, "/")
	return &Service{repo: repo, cfg: cfg, log: log, now: time.Now}
}

func (s *Service) Upload(ctx context.Context, userID int64, purpose domain.MediaPurpose, fh *multipart.FileHeader) (*domain.MediaFile, error) {
	allowed, ok := allowedFor(purpose)
	if !ok {
		return nil, ErrInvalidPurpose
	}
	if fh.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fh.Size > s.cfg.MaxBytes {
		return nil, ErrFileTooLarge
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	// sniff from content, never trust the client header
	head := make([]byte, 512)
	n, _ := io.ReadFull(file, head)
	mimeType := strings.Split(http.DetectContentType(head[:n]), ";")[0]
	ext, ok := allowed[mimeType]
	if !ok {
		return nil, ErrInvalidMimeType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	now := s.now()
	relDir := filepath.Join(string(purpose), now.Format("2006/01"))
	absDir := filepath.Join(s.cfg.Dir, relDir)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}

	id := uuid.New().String()
	relPath := filepath.Join(relDir, id+ext)
	absPath := filepath.Join(s.cfg.Dir, relPath)

	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create media file: %w", err)
	}
	written, err := io.Copy(dst, io.LimitReader(file, s.cfg.MaxBytes+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > s.cfg.MaxBytes {
		err = ErrFileTooLarge
	}
	if err != nil {
		_ = os.Remove(absPath)
		return nil, err
	}

	mf := &domain.MediaFile{
		ID:           id,
		UserID:       userID,
		Purpose:      purpose,
		OriginalName: filepath.Base(fh.Filename),
		FilePath:     filepath.ToSlash(relPath),
		URL:          s.cfg.URLPrefix + "/" + filepath.ToSlash(relPath),
		MimeType:     mimeType,
		Size:         written,
		CreatedAt:    now,
	}
	if err := s.repo.Create(ctx, mf); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("save media record: %w", err)
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "media_id": id, "purpose": purpose, "size": written}).Info("media: stored")
	return mf, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.MediaFile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListMine(ctx context.Context, userID int64, purpose string) ([]domain.MediaFile, error) {
	return s.repo.ListByUser(ctx, userID, purpose)
}

// Delete removes the record and the file. Admins may delete anything.
func (s *Service) Delete(ctx context.Context, id string, userID int64, role string) error {
	mf, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if mf.UserID != userID && role != string(domain.RoleAdmin) {
		return ErrNotOwner
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.cfg.Dir, filepath.FromSlash(mf.FilePath))); err != nil && !os.IsNotExist(err) {
		s.log.WithError(err).WithField("media_id", id).Warn("media: file removal failed")
	}
	return nil
}
