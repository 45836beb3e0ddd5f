package handlers

import (
	"math"
	"net/http"
	"strconv"

	"roamcms/internal/apiclient"
	"roamcms/internal/constants"
	"roamcms/internal/models"
	"roamcms/internal/services"
	"roamcms/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const adminPageSize = 10

type AdminHandler struct {
	api            *apiclient.Client
	formService    *services.FormService
	profileService *services.ProfileService
}

func NewAdminHandler(api *apiclient.Client, formService *services.FormService, profileService *services.ProfileService) *AdminHandler {
	return &AdminHandler{
		api:            api,
		formService:    formService,
		profileService: profileService,
	}
}

func listFilter(c *gin.Context) apiclient.Filter {
	page, _ := strconv.Atoi(c.DefaultQuery(constants.ParamPage, "1"))
	if page < 1 {
		page = 1
	}
	return apiclient.Filter{
		Query:    c.Query(constants.ParamQuery),
		Category: c.Query(constants.ParamCategory),
		Status:   c.Query(constants.ParamStatus),
		Page:     page,
		PageSize: adminPageSize,
	}
}

func (h *AdminHandler) ListCampers(c *gin.Context) {
	filter := listFilter(c)

	campers, total, err := h.api.ListCampers(c.Request.Context(), filter)
	if err != nil {
		render(c, http.StatusOK, "admin_campers.html", gin.H{
			"FetchError": apiclient.Message(err, "加载房车列表失败"),
			"RetryURL":   c.Request.URL.String(),
		})
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(adminPageSize)))

	session := sessions.Default(c)
	flashes := session.Flashes(constants.SessionKeySuccessFlash)
	session.Save() // Clear flashes after reading

	render(c, http.StatusOK, "admin_campers.html", gin.H{
		"campers":    campers,
		"Pagination": utils.Paginate(filter.Page, totalPages),
		"Query":      filter.Query,
		"Category":   filter.Category,
		"Status":     filter.Status,
		"Flashes":    flashes,
	})
}

func (h *AdminHandler) ListArticles(c *gin.Context) {
	filter := listFilter(c)

	articles, total, err := h.api.ListArticles(c.Request.Context(), filter)
	if err != nil {
		render(c, http.StatusOK, "admin_articles.html", gin.H{
			"FetchError": apiclient.Message(err, "加载游记列表失败"),
			"RetryURL":   c.Request.URL.String(),
		})
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(adminPageSize)))

	session := sessions.Default(c)
	flashes := session.Flashes(constants.SessionKeySuccessFlash)
	session.Save()

	render(c, http.StatusOK, "admin_articles.html", gin.H{
		"articles":   articles,
		"Pagination": utils.Paginate(filter.Page, totalPages),
		"Query":      filter.Query,
		"Category":   filter.Category,
		"Status":     filter.Status,
		"Flashes":    flashes,
	})
}

// NewCamper opens a fresh editing session and hands off to the editor.
func (h *AdminHandler) NewCamper(c *gin.Context) {
	sess := h.formService.StartCreate(models.KindCamper)
	c.Redirect(http.StatusFound, "/admin/editor?"+constants.ParamSession+"="+sess.ID)
}

func (h *AdminHandler) NewArticle(c *gin.Context) {
	sess := h.formService.StartCreate(models.KindArticle)
	c.Redirect(http.StatusFound, "/admin/editor?"+constants.ParamSession+"="+sess.ID)
}

// EditCamper loads the listing named by the slug into a new session.
func (h *AdminHandler) EditCamper(c *gin.Context) {
	sess, err := h.formService.StartEdit(c.Request.Context(), models.KindCamper, c.Param("slug"))
	if err != nil {
		render(c, http.StatusOK, "admin_campers.html", gin.H{
			"FetchError": apiclient.Message(err, "加载房车信息失败"),
			"RetryURL":   c.Request.URL.String(),
		})
		return
	}
	c.Redirect(http.StatusFound, "/admin/editor?"+constants.ParamSession+"="+sess.ID)
}

func (h *AdminHandler) EditArticle(c *gin.Context) {
	sess, err := h.formService.StartEdit(c.Request.Context(), models.KindArticle, c.Param("slug"))
	if err != nil {
		render(c, http.StatusOK, "admin_articles.html", gin.H{
			"FetchError": apiclient.Message(err, "加载游记信息失败"),
			"RetryURL":   c.Request.URL.String(),
		})
		return
	}
	c.Redirect(http.StatusFound, "/admin/editor?"+constants.ParamSession+"="+sess.ID)
}

func (h *AdminHandler) DeleteCamper(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "无效的房车 ID"})
		return
	}

	if err := h.api.DeleteCamper(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": apiclient.Message(err, "删除房车失败"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "房车已成功删除"})
}

func (h *AdminHandler) DeleteArticle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "无效的游记 ID"})
		return
	}

	if err := h.api.DeleteArticle(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": apiclient.Message(err, "删除游记失败"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "游记已成功删除"})
}

func (h *AdminHandler) ShowProfilePage(c *gin.Context) {
	render(c, http.StatusOK, "profile.html", gin.H{
		"profile": h.profileService.Get(),
	})
}

// UpdateProfile pushes the edited provider profile to the API and
// refreshes the local cache on success.
func (h *AdminHandler) UpdateProfile(c *gin.Context) {
	profile := models.Profile{
		Name:        c.PostForm("name"),
		Email:       c.PostForm("email"),
		Phone:       c.PostForm("phone"),
		Avatar:      c.PostForm("avatar"),
		Bio:         c.PostForm("bio"),
		Country:     c.PostForm("country"),
		SiteTagline: c.PostForm("site_tagline"),
	}

	if err := h.profileService.Update(c.Request.Context(), &profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": apiclient.Message(err, "更新资料失败"),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "资料已成功保存！"})
}
