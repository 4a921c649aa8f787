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

// LikeHandler handles the like-toggle ingress
type LikeHandler struct {
	likeRepository repositories.LikeRepository
	postRepository repositories.PostRepository
	events         EventSink
	cache          PostCache
	log            *zap.SugaredLogger
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(
	likeRepo repositories.LikeRepository,
	postRepo repositories.PostRepository,
	events EventSink,
	cache PostCache,
	log *zap.SugaredLogger,
) *LikeHandler {
	return &LikeHandler{
		likeRepository: likeRepo,
		postRepository: postRepo,
		events:         events,
		cache:          cache,
		log:            log,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/like_post", h.ToggleLike)
}

// ToggleLike flips the caller's like on a post. The canonical like row is
// mutated first; event emission, counters and cache invalidation are
// best-effort side effects that never fail the request.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	var req models.ToggleLikeRequest
	if err := c.Bind(&req); err != nil {
		return respondValidationError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondValidationError(c, err)
	}

	result, err := h.likeRepository.Toggle(req.PostID, userID)
	if err != nil {
		return respondInternalError(c, err)
	}

	h.afterToggle(c, req.PostID, userID, result)

	return c.JSON(http.StatusOK, echo.Map{"data": result})
}

func (h *LikeHandler) afterToggle(c echo.Context, postID, userID string, result *models.ToggleLikeResult) {
	ctx := c.Request().Context()

	post, err := h.postRepository.GetPostByPostID(ctx, postID)
	if err != nil {
		h.log.Warnw("post lookup after like toggle failed", "post", postID, "err", err)
	}

	if result.IsLiked {
		go h.postRepository.IncrementLikesCount(context.Background(), postID)
	} else {
		go h.postRepository.DecrementLikesCount(context.Background(), postID)
	}

	// Only a fresh like on someone else's post notifies; the aggregator
	// re-checks the self-action guard.
	if result.IsLiked && post != nil && post.Author != userID {
		name, avatar := currentActor(c)
		h.events.OnEvent(ctx, models.RawInteractionEvent{
			PostID:       postID,
			ActorID:      userID,
			ActorName:    name,
			ActorAvatar:  avatar,
			Action:       models.ActionLike,
			TargetUserID: post.Author,
			Timestamp:    time.Now().UnixMilli(),
		})
	}

	if err := h.cache.InvalidatePost(ctx, postID, userID); err != nil {
		h.log.Warnw("post cache invalidation failed", "post", postID, "err", err)
	}
}
