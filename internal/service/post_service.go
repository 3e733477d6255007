package service

import (
	"math"
	"strings"

	"github.com/chirpnet/chirp-backend/internal/common"
	"github.com/chirpnet/chirp-backend/internal/domain"
	"github.com/chirpnet/chirp-backend/internal/repository"
)

// PostService business logic for posts, likes and comments
type PostService interface {
	Create(authorID uint, content string, media []domain.PostMedia) (*domain.PostResponse, error)
	Feed(viewerID uint, page, limit int) ([]*domain.PostResponse, *common.Meta, error)
	FriendsFeed(viewerID uint, page, limit int) ([]*domain.PostResponse, *common.Meta, error)
	UserPosts(authorID, viewerID uint) ([]*domain.PostResponse, error)
	Get(id, viewerID uint) (*domain.PostResponse, error)
	Search(query string, viewerID uint) ([]*domain.PostResponse, error)
	Delete(callerID, postID uint) error
	ToggleLike(callerID, postID uint) (*domain.LikeToggleResponse, error)
	AddComment(callerID, postID uint, text string) (*domain.CommentResponse, error)
	ListComments(postID uint) ([]*domain.CommentResponse, error)
}

type postService struct {
	repo          repository.PostRepository
	commentRepo   repository.CommentRepository
	userRepo      repository.UserRepository
	followRepo    repository.FollowRepository
	notifications NotificationService
}

// NewPostService creates a new PostService
func NewPostService(
	repo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	notifications NotificationService,
) PostService {
	return &postService{
		repo:          repo,
		commentRepo:   commentRepo,
		userRepo:      userRepo,
		followRepo:    followRepo,
		notifications: notifications,
	}
}

// Create stores a new post. Content or at least one media item is required.
func (s *postService) Create(authorID uint, content string, media []domain.PostMedia) (*domain.PostResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" && len(media) == 0 {
		return nil, common.ErrInvalidInput
	}
	if len(content) > domain.MaxPostLength {
		return nil, common.ErrInvalidInput
	}

	post := &domain.Post{
		AuthorID: authorID,
		Content:  content,
		Media:    media,
	}
	if err := s.repo.Create(post); err != nil {
		return nil, err
	}
	return post.ToResponse(authorID), nil
}

// Feed returns the global feed, newest first
func (s *postService) Feed(viewerID uint, page, limit int) ([]*domain.PostResponse, *common.Meta, error) {
	page, limit = normalizePage(page, limit)

	posts, total, err := s.repo.FindAll(page, limit)
	if err != nil {
		return nil, nil, err
	}
	return toPostResponses(posts, viewerID), pageMeta(page, limit, total), nil
}

// FriendsFeed returns posts authored by mutual follows of the viewer
func (s *postService) FriendsFeed(viewerID uint, page, limit int) ([]*domain.PostResponse, *common.Meta, error) {
	page, limit = normalizePage(page, limit)

	friendIDs, err := s.followRepo.FindMutualIDs(viewerID)
	if err != nil {
		return nil, nil, err
	}

	posts, total, err := s.repo.FindByAuthors(friendIDs, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return toPostResponses(posts, viewerID), pageMeta(page, limit, total), nil
}

// UserPosts returns all posts by one author, newest first
func (s *postService) UserPosts(authorID, viewerID uint) ([]*domain.PostResponse, error) {
	posts, err := s.repo.FindByAuthor(authorID)
	if err != nil {
		return nil, err
	}
	return toPostResponses(posts, viewerID), nil
}

// Get returns one post
func (s *postService) Get(id, viewerID uint) (*domain.PostResponse, error) {
	post, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return post.ToResponse(viewerID), nil
}

// Search finds posts by content substring
func (s *postService) Search(query string, viewerID uint) ([]*domain.PostResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.PostResponse{}, nil
	}

	posts, err := s.repo.Search(query, 20)
	if err != nil {
		return nil, err
	}
	return toPostResponses(posts, viewerID), nil
}

// Delete removes a post. Author only.
func (s *postService) Delete(callerID, postID uint) error {
	post, err := s.repo.FindByID(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != callerID {
		return common.ErrForbidden
	}
	return s.repo.Delete(postID)
}

// ToggleLike likes or unlikes a post. A new like on someone else's post
// records a notification and then pushes it live.
func (s *postService) ToggleLike(callerID, postID uint) (*domain.LikeToggleResponse, error) {
	post, err := s.repo.FindByID(postID)
	if err != nil {
		return nil, err
	}

	liked, err := s.repo.LikeExists(postID, callerID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.repo.RemoveLike(postID, callerID); err != nil {
			return nil, err
		}
	} else {
		if err := s.repo.AddLike(postID, callerID); err != nil {
			return nil, err
		}

		caller, err := s.userRepo.FindByID(callerID)
		if err != nil {
			return nil, err
		}
		if err := s.notifications.Dispatch(caller, post.AuthorID, domain.NotificationLike, &post.ID, ""); err != nil {
			return nil, err
		}
	}

	count, err := s.repo.CountLikes(postID)
	if err != nil {
		return nil, err
	}
	return &domain.LikeToggleResponse{IsLiked: !liked, LikesCount: count}, nil
}

// AddComment stores a comment and notifies the post author
func (s *postService) AddComment(callerID, postID uint, text string) (*domain.CommentResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" || len(text) > domain.MaxPostLength {
		return nil, common.ErrInvalidInput
	}

	post, err := s.repo.FindByID(postID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		PostID: postID,
		UserID: callerID,
		Text:   text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	caller, err := s.userRepo.FindByID(callerID)
	if err != nil {
		return nil, err
	}
	if err := s.notifications.Dispatch(caller, post.AuthorID, domain.NotificationComment, &post.ID, text); err != nil {
		return nil, err
	}

	return comment.ToResponse(), nil
}

// ListComments returns a post's comments, oldest first
func (s *postService) ListComments(postID uint) ([]*domain.CommentResponse, error) {
	comments, err := s.commentRepo.FindByPost(postID)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.CommentResponse, len(comments))
	for i, c := range comments {
		responses[i] = c.ToResponse()
	}
	return responses, nil
}

func toPostResponses(posts []*domain.Post, viewerID uint) []*domain.PostResponse {
	responses := make([]*domain.PostResponse, len(posts))
	for i, p := range posts {
		responses[i] = p.ToResponse(viewerID)
	}
	return responses
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return page, limit
}

func pageMeta(page, limit int, total int64) *common.Meta {
	return &common.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}
