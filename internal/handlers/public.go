package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"roamcms/internal/apiclient"
	"roamcms/internal/constants"
	view "roamcms/internal/render"
	"roamcms/internal/services"
	"roamcms/internal/utils"

	"github.com/gin-gonic/gin"
)

const publicPageSize = 10

// PublicHandler serves the visitor-facing pages: the travel magazine,
// the camper and article detail views and the provider profile.
type PublicHandler struct {
	api            *apiclient.Client
	profileService *services.ProfileService
}

func NewPublicHandler(api *apiclient.Client, profileService *services.ProfileService) *PublicHandler {
	return &PublicHandler{api: api, profileService: profileService}
}

// Index is the travel-magazine front page.
func (h *PublicHandler) Index(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery(constants.ParamPage, "1"))
	if page < 1 {
		page = 1
	}
	category := c.Query(constants.ParamCategory)

	articles, total, err := h.api.ListArticles(c.Request.Context(), apiclient.Filter{
		Category: category,
		Page:     page,
		PageSize: publicPageSize,
	})
	if err != nil {
		render(c, http.StatusOK, "index.html", gin.H{
			"FetchError": "加载游记失败，请稍候重试",
			"RetryURL":   c.Request.URL.String(),
			"is_index":   true,
		})
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(publicPageSize)))

	render(c, http.StatusOK, "index.html", gin.H{
		"articles":   articles,
		"Pagination": utils.Paginate(page, totalPages),
		"Category":   category,
		"is_index":   true,
	})
}

// ShowArticle renders one magazine article looked up by its url slug.
func (h *PublicHandler) ShowArticle(c *gin.Context) {
	title := utils.TitleFromSlug(c.Param("slug"))

	article, err := h.api.GetArticleByTitle(c.Request.Context(), title)
	if err != nil {
		if isNotFound(err) {
			render(c, http.StatusNotFound, "404.html", gin.H{})
			return
		}
		render(c, http.StatusOK, "article.html", gin.H{
			"FetchError": "加载游记失败，请稍候重试",
			"RetryURL":   c.Request.URL.String(),
		})
		return
	}

	render(c, http.StatusOK, "article.html", gin.H{
		"article": article,
		"Groups":  view.BuildGroups(article.Content),
	})
}

// ShowCamper renders one listing's detail page.
func (h *PublicHandler) ShowCamper(c *gin.Context) {
	title := utils.TitleFromSlug(c.Param("slug"))

	camper, err := h.api.GetCamperByTitle(c.Request.Context(), title)
	if err != nil {
		if isNotFound(err) {
			render(c, http.StatusNotFound, "404.html", gin.H{})
			return
		}
		render(c, http.StatusOK, "camper.html", gin.H{
			"FetchError": "加载房车信息失败，请稍候重试",
			"RetryURL":   c.Request.URL.String(),
		})
		return
	}

	render(c, http.StatusOK, "camper.html", gin.H{
		"camper": camper,
		"Groups": view.BuildGroups(camper.Content),
	})
}

// ShowProvider renders the provider's public profile with the bio
// passed through the markdown renderer.
func (h *PublicHandler) ShowProvider(c *gin.Context) {
	render(c, http.StatusOK, "provider.html", gin.H{
		"profile": h.profileService.Get(),
		"BioHTML": h.profileService.BioHTML(),
	})
}

func (h *PublicHandler) NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "404.html", gin.H{})
}

func isNotFound(err error) bool {
	var apiErr *apiclient.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
