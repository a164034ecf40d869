package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"hypnos-booking/internal/data/entity"
	"hypnos-booking/internal/data/repository"
	"hypnos-booking/internal/dto/request"
	"hypnos-booking/internal/dto/response"
	"hypnos-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sniffLen is how many bytes http.DetectContentType looks at.
const sniffLen = 512

var ErrUnsupportedMedia = errors.New("invalid file: only images are accepted")

// FileStore persists uploaded media files.
type FileStore interface {
	Save(filename string, r io.Reader) (string, error)
	Remove(path string) error
}

// MediaUpload is one file taken from a multipart form.
type MediaUpload struct {
	Name   string
	Reader io.Reader
}

type MediaService interface {
	UploadRoomMedias(ctx context.Context, roomID string, uploads []MediaUpload) (*response.UploadResponse, error)
	ReplaceMedia(ctx context.Context, mediaID string, upload MediaUpload) (*response.MediaResponse, error)
	PatchMedia(ctx context.Context, mediaID string, req *request.MediaPatchRequest) (*response.MediaResponse, error)
	GetMedias(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MediaResponse], error)
	GetMediaByID(ctx context.Context, mediaID string) (*response.MediaResponse, error)
}

type mediaService struct {
	repo      *repository.Repository
	store     FileStore
	publicURL string
	now       func() time.Time
	log       *zap.Logger
}

func NewMediaService(repo *repository.Repository, store FileStore, config utils.MediaConfig, log *zap.Logger) MediaService {
	return &mediaService{
		repo:      repo,
		store:     store,
		publicURL: strings.TrimRight(config.PublicURL, "/"),
		now:       time.Now,
		log:       log.With(zap.String("service", "media")),
	}
}

// UploadRoomMedias stores every upload it can and reports the rest per file.
func (s *mediaService) UploadRoomMedias(ctx context.Context, roomID string, uploads []MediaUpload) (*response.UploadResponse, error) {
	id, err := uuid.Parse(roomID)
	if err != nil {
		return nil, fmt.Errorf("invalid room ID format %s: %w", roomID, err)
	}

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get room %s: %w", roomID, err)
	}
	if room == nil || room.IsDeleted {
		return nil, fmt.Errorf("room %s not found", roomID)
	}

	if len(uploads) == 0 {
		return nil, fmt.Errorf("invalid request: no files uploaded")
	}

	resp := &response.UploadResponse{
		SuccessUpload: []response.MediaResponse{},
		FailedUpload:  response.FailedUpload{Errors: []string{}},
	}

	for _, upload := range uploads {
		media, err := s.persist(upload)
		if err != nil {
			s.log.Warn("Media upload rejected", zap.String("name", upload.Name), zap.Error(err))
			resp.FailedUpload.Errors = append(resp.FailedUpload.Errors, fmt.Sprintf("%s: %v", upload.Name, err))
			continue
		}

		media.RoomID = room.ID
		if err := s.repo.Media.Create(ctx, media); err != nil {
			s.removeFile(media.Path)
			resp.FailedUpload.Errors = append(resp.FailedUpload.Errors, fmt.Sprintf("%s: failed to save media", upload.Name))
			continue
		}

		resp.SuccessUpload = append(resp.SuccessUpload, response.MediaToResponse(media))
	}
	resp.FailedUpload.NbError = len(resp.FailedUpload.Errors)

	s.log.Info("Room medias uploaded",
		zap.String("room_id", roomID),
		zap.Int("success", len(resp.SuccessUpload)),
		zap.Int("failed", resp.FailedUpload.NbError),
	)

	return resp, nil
}

func (s *mediaService) ReplaceMedia(ctx context.Context, mediaID string, upload MediaUpload) (*response.MediaResponse, error) {
	media, err := s.findMedia(ctx, mediaID)
	if err != nil {
		return nil, err
	}

	stored, err := s.persist(upload)
	if err != nil {
		return nil, err
	}

	previous := media.Path
	media.Name = stored.Name
	media.Filename = stored.Filename
	media.Path = stored.Path
	media.URL = stored.URL
	media.Extension = stored.Extension
	media.UpdatedAt = s.now()

	if err := s.repo.Media.Update(ctx, media); err != nil {
		s.removeFile(stored.Path)
		return nil, fmt.Errorf("replace media %s: %w", mediaID, err)
	}

	s.removeFile(previous)

	s.log.Info("Media replaced",
		zap.String("media_id", mediaID),
		zap.String("filename", media.Filename),
	)

	resp := response.MediaToResponse(media)
	return &resp, nil
}

func (s *mediaService) PatchMedia(ctx context.Context, mediaID string, req *request.MediaPatchRequest) (*response.MediaResponse, error) {
	media, err := s.findMedia(ctx, mediaID)
	if err != nil {
		return nil, err
	}

	if req.IsMain != nil {
		media.IsMain = *req.IsMain
	}
	if req.IsDeleted != nil {
		media.IsDeleted = *req.IsDeleted
	}
	media.UpdatedAt = s.now()

	if err := s.repo.Media.Update(ctx, media); err != nil {
		return nil, fmt.Errorf("patch media %s: %w", mediaID, err)
	}

	s.log.Info("Media patched",
		zap.String("media_id", mediaID),
		zap.Bool("is_main", media.IsMain),
		zap.Bool("is_deleted", media.IsDeleted),
	)

	resp := response.MediaToResponse(media)
	return &resp, nil
}

func (s *mediaService) GetMedias(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MediaResponse], error) {
	medias, err := s.repo.Media.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get medias: %w", err)
	}

	total, err := s.repo.Media.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count medias: %w", err)
	}

	out := make([]response.MediaResponse, len(medias))
	for i, m := range medias {
		out[i] = response.MediaToResponse(m)
	}

	return response.NewPaginatedResponse(out, req.Page, req.Limit(), total), nil
}

func (s *mediaService) GetMediaByID(ctx context.Context, mediaID string) (*response.MediaResponse, error) {
	media, err := s.findMedia(ctx, mediaID)
	if err != nil {
		return nil, err
	}

	resp := response.MediaToResponse(media)
	return &resp, nil
}

func (s *mediaService) findMedia(ctx context.Context, mediaID string) (*entity.Media, error) {
	id, err := uuid.Parse(mediaID)
	if err != nil {
		return nil, fmt.Errorf("invalid media ID format %s: %w", mediaID, err)
	}

	media, err := s.repo.Media.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get media %s: %w", mediaID, err)
	}
	if media == nil {
		return nil, fmt.Errorf("media %s not found", mediaID)
	}

	return media, nil
}

// persist sniffs the upload, rejects anything that is not an image and writes
// it as <unixnano>-<random>.<ext>. The random part keeps names unique when the
// clock does not move between two files.
func (s *mediaService) persist(upload MediaUpload) (*entity.Media, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(upload.Reader, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload %s: %w", upload.Name, err)
	}
	head = head[:n]

	ext, ok := ImageExtension(http.DetectContentType(head))
	if !ok {
		return nil, ErrUnsupportedMedia
	}

	now := s.now()
	filename := fmt.Sprintf("%d-%s.%s", now.UnixNano(), uuid.NewString()[:8], ext)

	path, err := s.store.Save(filename, io.MultiReader(bytes.NewReader(head), upload.Reader))
	if err != nil {
		return nil, fmt.Errorf("store upload %s: %w", upload.Name, err)
	}

	name := strings.TrimSuffix(filepath.Base(upload.Name), filepath.Ext(upload.Name))
	if name == "" || name == "." {
		name = filename
	}

	return &entity.Media{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:      name,
		Filename:  filename,
		Path:      path,
		URL:       s.publicURL + "/uploads/" + filename,
		Extension: ext,
	}, nil
}

func (s *mediaService) removeFile(path string) {
	if err := s.store.Remove(path); err != nil {
		s.log.Warn("Failed to remove media file", zap.String("path", path), zap.Error(err))
	}
}

// ImageExtension maps an image mimetype to the file extension it is stored
// under. Non-image types are refused.
func ImageExtension(contentType string) (string, bool) {
	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.TrimSpace(strings.ToLower(mediaType))

	kind, sub, ok := strings.Cut(mediaType, "/")
	if !ok || kind != "image" || sub == "" {
		return "", false
	}

	switch sub {
	case "jpeg", "pjpeg":
		return "jpg", true
	case "svg+xml":
		return "svg", true
	case "x-icon", "vnd.microsoft.icon":
		return "ico", true
	}
	return sub, true
}
