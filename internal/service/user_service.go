package service

import (
	"strings"

	"github.com/chirpnet/chirp-backend/internal/common"
	"github.com/chirpnet/chirp-backend/internal/domain"
	"github.com/chirpnet/chirp-backend/internal/repository"
)

// UserService business logic for profiles and the follow graph
type UserService interface {
	GetProfile(userID, viewerID uint) (*domain.UserResponse, error)
	UpdateProfile(userID uint, req *domain.UpdateProfileRequest, avatarURL string) (*domain.UserResponse, error)
	Search(query string) ([]*domain.UserResponse, error)
	ToggleFollow(callerID, targetID uint) (*domain.FollowToggleResponse, error)
	Followers(userID uint) ([]*domain.UserResponse, error)
	Following(userID uint) ([]*domain.UserResponse, error)
}

type userService struct {
	repo          repository.UserRepository
	followRepo    repository.FollowRepository
	notifications NotificationService
}

// NewUserService creates a new UserService
func NewUserService(repo repository.UserRepository, followRepo repository.FollowRepository, notifications NotificationService) UserService {
	return &userService{
		repo:          repo,
		followRepo:    followRepo,
		notifications: notifications,
	}
}

// GetProfile returns a public profile with follow counts
func (s *userService) GetProfile(userID, viewerID uint) (*domain.UserResponse, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	if resp.FollowerCount, err = s.followRepo.CountFollowers(userID); err != nil {
		return nil, err
	}
	if resp.FollowingCount, err = s.followRepo.CountFollowing(userID); err != nil {
		return nil, err
	}
	if viewerID != 0 && viewerID != userID {
		if resp.IsFollowing, err = s.followRepo.Exists(viewerID, userID); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// UpdateProfile updates the caller's own profile fields
func (s *userService) UpdateProfile(userID uint, req *domain.UpdateProfileRequest, avatarURL string) (*domain.UserResponse, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if username := strings.TrimSpace(req.Username); username != "" && username != user.Username {
		if existing, err := s.repo.FindByUsername(username); err == nil && existing.ID != userID {
			return nil, common.ErrUserAlreadyExists
		}
		user.Username = username
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if avatarURL != "" {
		user.ProfilePicture = avatarURL
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// Search finds users by username substring
func (s *userService) Search(query string) ([]*domain.UserResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.UserResponse{}, nil
	}

	users, err := s.repo.Search(query, 10)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

// ToggleFollow follows or unfollows the target. A new follow records a
// notification for the target and then pushes it live.
func (s *userService) ToggleFollow(callerID, targetID uint) (*domain.FollowToggleResponse, error) {
	if callerID == targetID {
		return nil, common.ErrInvalidInput
	}

	if _, err := s.repo.FindByID(targetID); err != nil {
		return nil, err
	}

	following, err := s.followRepo.Exists(callerID, targetID)
	if err != nil {
		return nil, err
	}

	if following {
		if err := s.followRepo.Delete(callerID, targetID); err != nil {
			return nil, err
		}
	} else {
		if err := s.followRepo.Create(callerID, targetID); err != nil {
			return nil, err
		}

		caller, err := s.repo.FindByID(callerID)
		if err != nil {
			return nil, err
		}
		if err := s.notifications.Dispatch(caller, targetID, domain.NotificationFollow, nil, ""); err != nil {
			return nil, err
		}
	}

	count, err := s.followRepo.CountFollowers(targetID)
	if err != nil {
		return nil, err
	}
	return &domain.FollowToggleResponse{IsFollowing: !following, FollowersCount: count}, nil
}

// Followers returns the users following userID
func (s *userService) Followers(userID uint) ([]*domain.UserResponse, error) {
	users, err := s.followRepo.FindFollowers(userID)
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

// Following returns the users userID follows
func (s *userService) Following(userID uint) ([]*domain.UserResponse, error) {
	users, err := s.followRepo.FindFollowing(userID)
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

func toUserResponses(users []*domain.User) []*domain.UserResponse {
	responses := make([]*domain.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses
}
