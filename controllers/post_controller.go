package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/chirp/chirp/models"
	"github.com/chirp/chirp/store"
	"github.com/chirp/chirp/utils"
)

// PostController serves the feed and the post and like forms.
type PostController struct {
	store     *store.Store
	pageSize  int
	maxLength int
}

// NewPostController creates a new PostController instance.
func NewPostController(st *store.Store, pageSize, maxLength int) *PostController {
	if maxLength <= 0 || maxLength > models.MaxContentLength {
		maxLength = models.MaxContentLength
	}
	return &PostController{store: st, pageSize: pageSize, maxLength: maxLength}
}

// Index renders one page of the global feed.
func (p *PostController) Index(ctx *gin.Context) {
	viewer, _ := getUserID(ctx)
	items, pg, err := p.store.Feed(ctx.Request.Context(), viewer, parsePage(ctx.Query("page")), p.pageSize)
	if err != nil {
		utils.ServerError(ctx, err, "load feed")
		return
	}

	data := pageData(ctx, "Feed")
	data["items"] = items
	data["pagination"] = pg
	data["max_length"] = p.maxLength
	utils.RenderPage(ctx, http.StatusOK, "index.html", data)
}

// MakePost publishes the submitted content for the current user.
func (p *PostController) MakePost(ctx *gin.Context) {
	userID, _ := getUserID(ctx)
	utils.Finish(ctx, p.publish(ctx.Request.Context(), userID, ctx.PostForm("content")))
}

func (p *PostController) publish(ctx context.Context, userID uint, content string) utils.Outcome {
	if utf8.RuneCountInString(content) > p.maxLength {
		return utils.Failed(fmt.Sprintf("Post cannot exceed %d characters", p.maxLength), "/")
	}
	if strings.TrimSpace(content) == "" {
		return utils.Failed("Post cannot be empty", "/")
	}

	post := models.Post{UserID: userID, Content: content}
	err := p.store.WithTransaction(ctx, func(tx *store.Store) error {
		return tx.CreatePost(ctx, &post)
	})
	if err != nil {
		utils.Sugar.Errorw("publish post failed", "user_id", userID, "error", err)
		return utils.Failed("An error occurred while publishing your post", "/")
	}
	return utils.Succeeded("Your post has been published!", "/")
}

// Like toggles the current user's like on a post.
func (p *PostController) Like(ctx *gin.Context) {
	postID, ok := parseID(ctx.Param("post_id"))
	if !ok {
		utils.NotFound(ctx, "Post not found")
		return
	}
	userID, _ := getUserID(ctx)
	target := safeNext(ctx.PostForm("next"), "/")
	utils.Finish(ctx, p.toggle(ctx.Request.Context(), userID, postID, target))
}

func (p *PostController) toggle(ctx context.Context, userID, postID uint, target string) utils.Outcome {
	liked, err := p.store.ToggleLike(ctx, userID, postID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return utils.Failed("Post not found", target)
	case err != nil:
		utils.Sugar.Errorw("toggle like failed", "user_id", userID, "post_id", postID, "error", err)
		return utils.Failed("An error occurred while updating your like", target)
	case liked:
		return utils.Succeeded("You have liked the post", target)
	default:
		return utils.Succeeded("You have unliked the post", target)
	}
}

// APIFeed returns one page of the feed as JSON.
func (p *PostController) APIFeed(ctx *gin.Context) {
	viewer, _ := getUserID(ctx)
	items, pg, err := p.store.Feed(ctx.Request.Context(), viewer, parsePage(ctx.Query("page")), p.pageSize)
	if err != nil {
		utils.Sugar.Errorw("load feed failed", "error", err)
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to list posts")
		return
	}
	utils.Success(ctx, gin.H{
		"items":      items,
		"pagination": pg,
	})
}
