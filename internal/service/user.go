package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/finman-2025/finman-backend/internal/models"
	"github.com/finman-2025/finman-backend/internal/repository"
	"github.com/finman-2025/finman-backend/internal/storage"

	"github.com/google/uuid"
)

const avatarFolder = "avatars"

// UpdateProfileInput updates only the non-nil fields.
type UpdateProfileInput struct {
	Name        *string
	Email       *string
	PhoneNumber *string
	Sex         *string
	DateOfBirth *time.Time
	Address     *string
}

// UserService manages user profiles and avatars.
type UserService struct {
	users *repository.UserRepository
	store storage.ObjectStorage
}

func NewUserService(users *repository.UserRepository, store storage.ObjectStorage) *UserService {
	return &UserService{users: users, store: store}
}

func (s *UserService) Get(id uint) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies only the supplied profile fields.
func (s *UserService) UpdateProfile(id uint, in UpdateProfileInput) (*models.User, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Name != nil {
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		fields["email"] = strings.TrimSpace(*in.Email)
	}
	if in.PhoneNumber != nil {
		fields["phone_number"] = strings.TrimSpace(*in.PhoneNumber)
	}
	if in.Sex != nil {
		fields["sex"] = *in.Sex
	}
	if in.DateOfBirth != nil {
		fields["date_of_birth"] = *in.DateOfBirth
	}
	if in.Address != nil {
		fields["address"] = strings.TrimSpace(*in.Address)
	}

	if len(fields) > 0 {
		if err := s.users.Update(id, fields); err != nil {
			if err == repository.ErrNotFound {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}
	return s.Get(id)
}

// Delete soft-deletes the account; the row is retained.
func (s *UserService) Delete(id uint) error {
	if err := s.users.SoftDelete(id); err != nil {
		if err == repository.ErrNotFound {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// UpdateAvatar replaces the user's avatar: the previous object (if any) is
// deleted, the new file uploaded under a fresh name, and the URL stored.
func (s *UserService) UpdateAvatar(userID uint, img ImageUpload) (string, error) {
	user, err := s.Get(userID)
	if err != nil {
		return "", err
	}

	if user.Avatar != "" {
		if err := s.deleteAvatarObject(userID, user.Avatar); err != nil && err != storage.ErrObjectNotFound {
			return "", fmt.Errorf("delete previous avatar: %w", err)
		}
	}

	remotePath := storage.ObjectPath(avatarFolder, userID, uuid.NewString()+img.Ext)
	url, err := s.store.Upload(img.LocalPath, remotePath, img.MimeType)
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	if err := s.users.Update(userID, map[string]interface{}{"avatar": url}); err != nil {
		return "", err
	}
	return url, nil
}

// DeleteAvatar removes the stored avatar object and clears the URL.
func (s *UserService) DeleteAvatar(userID uint) error {
	user, err := s.Get(userID)
	if err != nil {
		return err
	}
	if user.Avatar == "" {
		return ErrAvatarNotFound
	}

	if err := s.deleteAvatarObject(userID, user.Avatar); err != nil && err != storage.ErrObjectNotFound {
		return fmt.Errorf("delete avatar: %w", err)
	}
	return s.users.Update(userID, map[string]interface{}{"avatar": ""})
}

// deleteAvatarObject derives the object name from the stored URL's last path
// segment and removes it from storage.
func (s *UserService) deleteAvatarObject(userID uint, avatarURL string) error {
	name := avatarURL
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if j := strings.Index(name, "?"); j >= 0 {
		name = name[:j]
	}
	return s.store.Delete(storage.ObjectPath(avatarFolder, userID, name))
}
