package users

import (
	"context"
	"io"

	"github.com/xyz-asif/goalpath/internal/pkg/filestore"
	"github.com/xyz-asif/goalpath/internal/pkg/logger"
	apperrors "github.com/xyz-asif/goalpath/pkg/errors"
)

// Upload is an image payload together with the name it was submitted under.
type Upload struct {
	Filename string
	Content  io.Reader
}

type Service struct {
	repo  Repository
	files filestore.Store
	log   *logger.Logger
}

func NewService(repo Repository, files filestore.Store, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Default()
	}
	return &Service{repo: repo, files: files, log: log}
}

func notFound(id int64) error {
	return apperrors.NotFound("Could not find user with id: %d", id)
}

// Register stores the submitted user as given. The id is assigned by storage.
func (s *Service) Register(ctx context.Context, user *User) (*User, error) {
	user.ID = 0
	if user.Followers < 0 {
		user.Followers = 0
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.log.Debug("user %d registered as %q", user.ID, user.Username)
	return user, nil
}

// Login returns the user whose username and password match exactly.
func (s *Service) Login(ctx context.Context, creds *Credentials) (*User, error) {
	user, err := s.repo.FindByUsername(ctx, creds.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password != creds.Password {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}
	return user, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound(id)
	}
	return user, nil
}

// Update overwrites the profile fields and, when upload is non-nil, replaces
// the profile image.
func (s *Service) Update(ctx context.Context, id int64, details *Details, upload *Upload) (*User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	details.Apply(user)

	if upload == nil {
		if err := s.repo.Save(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	return s.replaceImage(ctx, user, upload)
}

func (s *Service) UploadImage(ctx context.Context, id int64, upload Upload) (*User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.replaceImage(ctx, user, &upload)
}

// replaceImage writes the new file, saves the user, then drops the old file.
// A failed save removes the new file so the stored reference stays valid.
func (s *Service) replaceImage(ctx context.Context, user *User, upload *Upload) (*User, error) {
	name := filestore.NewName(upload.Filename)
	if err := s.files.Save(ctx, name, upload.Content); err != nil {
		return nil, apperrors.Internal(err, "Error uploading image")
	}

	var previous string
	if user.HasImage() {
		previous = *user.Image
	}

	original := upload.Filename
	user.Image = &name
	user.ImageName = &original

	if err := s.repo.Save(ctx, user); err != nil {
		s.removeFile(ctx, name)
		return nil, err
	}

	if previous != "" {
		s.removeFile(ctx, previous)
	}

	s.log.Debug("user %d image replaced with %s", user.ID, name)
	return user, nil
}

func (s *Service) removeFile(ctx context.Context, name string) {
	if err := s.files.Remove(ctx, name); err != nil {
		s.log.Warn("failed to remove image %s: %v", name, err)
	}
}

// OpenImage returns the stored file. Missing files yield filestore.ErrNotExist.
func (s *Service) OpenImage(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.files.Open(ctx, name)
}

// Delete removes the user's image, if any, and then the user.
func (s *Service) Delete(ctx context.Context, id int64) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if user.HasImage() {
		s.removeFile(ctx, *user.Image)
	}

	return s.repo.DeleteByID(ctx, id)
}

func (s *Service) Follow(ctx context.Context, id int64) (*User, error) {
	return s.adjustFollowers(ctx, id, 1)
}

// Unfollow decrements the follower count; at zero it stays zero.
func (s *Service) Unfollow(ctx context.Context, id int64) (*User, error) {
	return s.adjustFollowers(ctx, id, -1)
}

func (s *Service) adjustFollowers(ctx context.Context, id int64, delta int) (*User, error) {
	user, err := s.repo.AdjustFollowers(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound(id)
	}
	return user, nil
}
