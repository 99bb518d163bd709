package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fitsphere/fitness-platform/internal/domain"
	"fitsphere/fitness-platform/internal/repository"
	"fitsphere/fitness-platform/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProfileNotFound  = errors.New("user profile not found")
	ErrInvalidImageType = errors.New("invalid or missing image content type")
	ErrUploadURLError   = errors.New("failed to generate upload URL")
	ErrDownloadURLError = errors.New("failed to generate download URL")
)

// ImageUploadTicket carries the presigned PUT URL and the key the client
// must report back on confirm.
type ImageUploadTicket struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// ProfileView is a UserProfile enriched with a temporary image URL.
type ProfileView struct {
	domain.UserProfile
	ImageURL string `json:"imageUrl,omitempty"`
}

// ProfileService manages user onboarding profiles and their images.
type ProfileService interface {
	UpsertProfile(ctx context.Context, accountID primitive.ObjectID, profile *domain.UserProfile) (*domain.UserProfile, error)
	GetMyProfile(ctx context.Context, accountID primitive.ObjectID) (*ProfileView, error)
	RequestImageUploadURL(ctx context.Context, accountID primitive.ObjectID, contentType string) (*ImageUploadTicket, error)
	ConfirmImageUpload(ctx context.Context, accountID primitive.ObjectID, objectKey string) error
	ListActiveTrainers(ctx context.Context) ([]domain.TrainerProfile, error)
}

// profileService implements the ProfileService interface.
type profileService struct {
	profileRepo repository.UserProfileRepository
	trainerRepo repository.TrainerProfileRepository
	fileStorage storage.FileStorage
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(profileRepo repository.UserProfileRepository, trainerRepo repository.TrainerProfileRepository, fileStorage storage.FileStorage) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		trainerRepo: trainerRepo,
		fileStorage: fileStorage,
	}
}

// UpsertProfile creates or updates the caller's profile.
func (s *profileService) UpsertProfile(ctx context.Context, accountID primitive.ObjectID, profile *domain.UserProfile) (*domain.UserProfile, error) {
	if accountID == primitive.NilObjectID {
		return nil, errors.New("account ID is required")
	}
	if profile.Age <= 0 || profile.HeightCm <= 0 || profile.WeightKg <= 0 {
		return nil, errors.New("age, height, and weight must be positive")
	}
	profile.AccountID = accountID
	return s.profileRepo.Upsert(ctx, profile)
}

// GetMyProfile returns the caller's profile with a presigned image URL when
// an image has been uploaded.
func (s *profileService) GetMyProfile(ctx context.Context, accountID primitive.ObjectID) (*ProfileView, error) {
	profile, err := s.profileRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	view := &ProfileView{UserProfile: *profile}
	if profile.ImageObjectKey != "" {
		url, uerr := s.fileStorage.GeneratePresignedDownloadURL(ctx, profile.ImageObjectKey, storage.DefaultPresignedURLExpiry)
		if uerr != nil {
			return nil, ErrDownloadURLError
		}
		view.ImageURL = url
	}
	return view, nil
}

// RequestImageUploadURL hands out a presigned PUT URL for a profile image.
func (s *profileService) RequestImageUploadURL(ctx context.Context, accountID primitive.ObjectID, contentType string) (*ImageUploadTicket, error) {
	if accountID == primitive.NilObjectID {
		return nil, errors.New("account ID is required")
	}
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrInvalidImageType
	}

	// Profile must exist before an image can be attached to it.
	if _, err := s.profileRepo.GetByAccountID(ctx, accountID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	objectKey := fmt.Sprintf("profiles/%s/%s", accountID.Hex(), uuid.NewString())
	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &ImageUploadTicket{UploadURL: url, ObjectKey: objectKey}, nil
}

// ConfirmImageUpload records the uploaded object key on the profile and
// removes the previous image, if any.
func (s *profileService) ConfirmImageUpload(ctx context.Context, accountID primitive.ObjectID, objectKey string) error {
	if objectKey == "" {
		return errors.New("object key is required")
	}
	// Keys are issued under the caller's own prefix; reject anything else.
	if !strings.HasPrefix(objectKey, "profiles/"+accountID.Hex()+"/") {
		return errors.New("object key does not belong to this account")
	}

	profile, err := s.profileRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	}

	if err := s.profileRepo.SetImageKey(ctx, accountID, objectKey); err != nil {
		return err
	}

	if profile.ImageObjectKey != "" && profile.ImageObjectKey != objectKey {
		// Best effort; an orphaned object is not worth failing the request.
		_ = s.fileStorage.DeleteObject(ctx, profile.ImageObjectKey)
	}
	return nil
}

// ListActiveTrainers returns the trainers a user may request.
func (s *profileService) ListActiveTrainers(ctx context.Context) ([]domain.TrainerProfile, error) {
	return s.trainerRepo.List(ctx, domain.TrainerStatusActive)
}
