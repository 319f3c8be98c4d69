package media

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/agence-judiciaire/aje-backend/pkg/config"
	"github.com/agence-judiciaire/aje-backend/pkg/db/models"
	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	pkgerrors "github.com/agence-judiciaire/aje-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessModeSigned makes read URLs short-lived signed URLs instead of
// permanent public ones.
const AccessModeSigned = "signed"

type mediaRepository interface {
	Create(ctx context.Context, media *models.Media) (*models.Media, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error)
	List(ctx context.Context, kind enums.MediaKind, limit, offset int) ([]models.Media, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type objectSigner interface {
	SignedUploadURL(objectKey, contentType string, expiry time.Duration) (string, error)
	SignedDownloadURL(objectKey string, expiry time.Duration) (string, error)
	PublicURL(objectKey string) string
}

// Service exposes upload-presign and media library semantics.
type Service interface {
	PresignUpload(ctx context.Context, actorID *uuid.UUID, input PresignInput) (*PresignOutput, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Media, error)
	List(ctx context.Context, kind enums.MediaKind, limit, offset int) ([]models.Media, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ReadURL(ctx context.Context, id uuid.UUID) (string, error)
}

type service struct {
	repo        mediaRepository
	signer      objectSigner
	gcsCfg      config.GCSConfig
	mediaCfg    config.MediaConfig
	accessMode  string
	maxBytes    int64
	maxVidBytes int64
}

// NewService constructs a media service backed by the repository and GCS signer.
func NewService(repo mediaRepository, signer objectSigner, gcsCfg config.GCSConfig, mediaCfg config.MediaConfig, accessMode string) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("media repository required")
	}
	if signer == nil {
		return nil, fmt.Errorf("gcs signer required")
	}
	if gcsCfg.UploadURLExpiry <= 0 {
		return nil, fmt.Errorf("upload url expiry must be positive")
	}
	if mediaCfg.MaxUploadMB <= 0 || mediaCfg.MaxVideoMB <= 0 {
		return nil, fmt.Errorf("upload size limits must be positive")
	}
	return &service{
		repo:        repo,
		signer:      signer,
		gcsCfg:      gcsCfg,
		mediaCfg:    mediaCfg,
		accessMode:  accessMode,
		maxBytes:    int64(mediaCfg.MaxUploadMB) * 1024 * 1024,
		maxVidBytes: int64(mediaCfg.MaxVideoMB) * 1024 * 1024,
	}, nil
}

// PresignInput models the payload required to request an upload URL.
type PresignInput struct {
	Kind      enums.MediaKind
	MimeType  string
	FileName  string
	SizeBytes int64
}

// PresignOutput contains the data returned to the client after creating a media record.
type PresignOutput struct {
	MediaID      uuid.UUID `json:"media_id"`
	ObjectKey    string    `json:"object_key"`
	SignedPUTURL string    `json:"signed_put_url"`
	ContentType  string    `json:"content_type"`
	URL          string    `json:"url"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// PresignUpload validates the request against the kind rules, records the
// media row and returns a one-shot PUT URL for the object.
func (s *service) PresignUpload(ctx context.Context, actorID *uuid.UUID, input PresignInput) (*PresignOutput, error) {
	if input.Kind == "" || !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid media kind")
	}

	fileName := strings.TrimSpace(input.FileName)
	if fileName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file_name is required")
	}

	mimeType, err := sniffMimeType(input.MimeType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if !isAllowedMime(input.Kind, mimeType) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("kind %s only accepts %s", input.Kind, allowedMimeDescription(input.Kind)))
	}

	if input.SizeBytes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size_bytes must be positive")
	}
	limit := s.maxBytes
	if isVideoMime(mimeType) && s.maxVidBytes < limit {
		limit = s.maxVidBytes
	}
	if input.SizeBytes > limit {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("size_bytes exceeds the %d MB limit", limit/(1024*1024)))
	}

	mediaID := uuid.New()
	objectKey := buildObjectKey(input.Kind, mediaID, fileName)

	mediaRow := &models.Media{
		ID:        mediaID,
		Kind:      input.Kind,
		ObjectKey: objectKey,
		FileName:  fileName,
		MimeType:  mimeType,
		SizeBytes: input.SizeBytes,
		URL:       s.signer.PublicURL(objectKey),
		CreatedBy: actorID,
	}

	if _, err := s.repo.Create(ctx, mediaRow); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist media row")
	}

	expiresAt := time.Now().Add(s.gcsCfg.UploadURLExpiry)
	signedURL, err := s.signer.SignedUploadURL(objectKey, mimeType, s.gcsCfg.UploadURLExpiry)
	if err != nil {
		_, _ = s.repo.Delete(ctx, mediaID)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign upload url")
	}

	return &PresignOutput{
		MediaID:      mediaID,
		ObjectKey:    objectKey,
		SignedPUTURL: signedURL,
		ContentType:  mimeType,
		URL:          mediaRow.URL,
		ExpiresAt:    expiresAt,
	}, nil
}

// Get loads one media record.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load media")
	}
	return row, nil
}

// List pages through the media library.
func (s *service) List(ctx context.Context, kind enums.MediaKind, limit, offset int) ([]models.Media, error) {
	if kind != "" && !kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid media kind")
	}
	rows, err := s.repo.List(ctx, kind, limit, offset)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list media")
	}
	return rows, nil
}

// Delete removes the media record. The object itself is retained in the
// bucket; lifecycle rules on the bucket clean up orphans.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete media")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
	}
	return nil
}

// ReadURL returns the URL clients should use to fetch the object. In
// signed mode this is a short-lived download URL.
func (s *service) ReadURL(ctx context.Context, id uuid.UUID) (string, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if s.accessMode == AccessModeSigned {
		signed, err := s.signer.SignedDownloadURL(row.ObjectKey, s.gcsCfg.DownloadURLExpiry)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign download url")
		}
		return signed, nil
	}
	return row.URL, nil
}

func buildObjectKey(kind enums.MediaKind, id uuid.UUID, fileName string) string {
	cleanName := sanitizeFileName(fileName)
	if cleanName == "" {
		cleanName = id.String()
	}
	return fmt.Sprintf("media/%s/%s/%s", kind, id.String(), cleanName)
}

func sanitizeFileName(name string) string {
	if name == "" {
		return ""
	}
	clean := path.Base(strings.TrimSpace(name))
	if clean == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(clean))
	for _, r := range clean {
		switch {
		case r == '/' || r == '\\' || unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-_.")
}
