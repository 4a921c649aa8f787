package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/quangdm-dev/socialnews-backend/internal/models"
	"github.com/quangdm-dev/socialnews-backend/internal/repositories"
	"go.uber.org/zap"
)

// CommentHandler handles the create-comment ingress
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	events            EventSink
	cache             PostCache
	log               *zap.SugaredLogger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	events EventSink,
	cache PostCache,
	log *zap.SugaredLogger,
) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		events:            events,
		cache:             cache,
		log:               log,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/create-comment", h.CreateComment)
}

// CreateComment inserts the comment row, then emits the interaction event
// and bumps the post counter as best-effort side effects.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return respondValidationError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	comment := &models.Comment{
		PostID:  req.PostID,
		Author:  userID,
		Content: req.Content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return respondInternalError(c, err)
	}

	h.afterCreate(c, req.PostID, userID)

	return c.JSON(http.StatusOK, echo.Map{"data": comment})
}

func (h *CommentHandler) afterCreate(c echo.Context, postID, userID string) {
	ctx := c.Request().Context()

	go h.postRepository.IncrementCommentsCount(context.Background(), postID)

	post, err := h.postRepository.GetPostByPostID(ctx, postID)
	if err != nil {
		h.log.Warnw("post lookup after comment failed", "post", postID, "err", err)
	}
	if post != nil && post.Author != userID {
		name, avatar := currentActor(c)
		h.events.OnEvent(ctx, models.RawInteractionEvent{
			PostID:       postID,
			ActorID:      userID,
			ActorName:    name,
			ActorAvatar:  avatar,
			Action:       models.ActionComment,
			TargetUserID: post.Author,
			Timestamp:    time.Now().UnixMilli(),
		})
	}

	if err := h.cache.InvalidatePost(ctx, postID, userID); err != nil {
		h.log.Warnw("post cache invalidation failed", "post", postID, "err", err)
	}
}
