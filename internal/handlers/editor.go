package handlers

import (
	"io"
	"net/http"
	"strconv"

	"roamcms/internal/apiclient"
	"roamcms/internal/constants"
	"roamcms/internal/editor"
	"roamcms/internal/models"
	view "roamcms/internal/render"
	"roamcms/internal/services"
	"roamcms/internal/uploader"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// EditorHandler serves the create/edit screen. Every mutation is an
// AJAX call against the session named by the sid parameter; the page
// itself is a plain HTML render of the current session state.
type EditorHandler struct {
	formService *services.FormService
	geoService  *services.GeoService
	uploads     uploader.Uploader
}

func NewEditorHandler(formService *services.FormService, geoService *services.GeoService, uploads uploader.Uploader) *EditorHandler {
	return &EditorHandler{
		formService: formService,
		geoService:  geoService,
		uploads:     uploads,
	}
}

func (h *EditorHandler) session(c *gin.Context) (*editor.Session, bool) {
	sid := c.Query(constants.ParamSession)
	if sid == "" {
		sid = c.PostForm(constants.ParamSession)
	}
	sess, err := h.formService.Session(sid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": err.Error()})
		return nil, false
	}
	return sess, true
}

func (h *EditorHandler) ShowEditor(c *gin.Context) {
	sess, err := h.formService.Session(c.Query(constants.ParamSession))
	if err != nil {
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	var data gin.H
	sess.Do(func(d *models.Draft, e *editor.Editor) error {
		data = gin.H{
			"SessionID":    sess.ID,
			"draft":        d,
			"IsNew":        d.ID == 0,
			"AllowedKinds": d.AllowedKinds(),
			"ActiveKind":   e.ActiveKind,
			"PendingText":  e.PendingText,
			"PendingURL":   e.PendingURL,
			"EditingIndex": e.Editing(),
			"CanCommit":    e.CanCommit(),
			"Groups":       view.BuildGroups(d.Content),
			"PlacesOn":     h.geoService.Enabled(),
		}
		return nil
	})

	render(c, http.StatusOK, "editor.html", data)
}

// SelectKind switches the block palette to a new kind, dropping any
// half-typed input.
func (h *EditorHandler) SelectKind(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	kind := models.BlockKind(c.PostForm("type"))
	err := sess.Do(func(d *models.Draft, e *editor.Editor) error {
		return e.SelectKind(kind)
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// CommitBlock stores the pending input and, when complete, appends the
// block or replaces the one being edited. Image blocks carry the file
// in the same multipart request.
func (h *EditorHandler) CommitBlock(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var image *models.ImageFile
	if file, err := c.FormFile("image"); err == nil {
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "读取图片失败"})
			return
		}
		defer src.Close()
		data, err := io.ReadAll(src)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "读取图片失败"})
			return
		}
		image = &models.ImageFile{
			Name:        file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	err := sess.Do(func(d *models.Draft, e *editor.Editor) error {
		e.SetPending(c.PostForm("text"), c.PostForm("url"))
		if image != nil {
			e.SetPendingImage(image)
		}
		return e.Commit(c.Request.Context(), h.uploads)
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	h.blockState(c, sess)
}

// EditBlock arms the editor to replace the block at the given index.
func (h *EditorHandler) EditBlock(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	index, convErr := strconv.Atoi(c.Param("index"))
	if convErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "无效的内容块索引"})
		return
	}

	var kind models.BlockKind
	var text, url string
	err := sess.Do(func(d *models.Draft, e *editor.Editor) error {
		if err := e.StartEdit(index); err != nil {
			return err
		}
		kind, text, url = e.ActiveKind, e.PendingText, e.PendingURL
		return nil
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"type":   kind,
		"text":   text,
		"url":    url,
		"index":  index,
	})
}

func (h *EditorHandler) RemoveBlock(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	index, convErr := strconv.Atoi(c.Param("index"))
	if convErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "无效的内容块索引"})
		return
	}

	err := sess.Do(func(d *models.Draft, e *editor.Editor) error {
		return e.Remove(index)
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	h.blockState(c, sess)
}

// SaveMeta updates the draft's scalar fields from the form. A newly
// picked featured image rides along as multipart and stays pending
// until submit.
func (h *EditorHandler) SaveMeta(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var image *models.ImageFile
	if file, err := c.FormFile("featured_image"); err == nil {
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "读取封面图片失败"})
			return
		}
		defer src.Close()
		data, err := io.ReadAll(src)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "读取封面图片失败"})
			return
		}
		image = &models.ImageFile{
			Name:        file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	sess.Do(func(d *models.Draft, e *editor.Editor) error {
		d.Title = c.PostForm("title")
		d.Description = c.PostForm("description")
		d.ImageTitle = c.PostForm("image_title")
		d.Categories = c.PostFormArray("categories")
		if image != nil {
			d.PendingImage = image
		}

		if d.Kind == models.KindCamper {
			if price, err := strconv.ParseFloat(c.PostForm("price"), 64); err == nil {
				d.Price = price
			}
			if currency := c.PostForm("currency"); currency != "" {
				d.Currency = currency
			}
			d.Location = c.PostForm("location")
			if status := c.PostForm("status"); status != "" {
				d.Status = status
			}
		}
		return nil
	})

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Submit validates the draft and persists it through the content API.
func (h *EditorHandler) Submit(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var kind models.EntityKind
	sess.Do(func(d *models.Draft, e *editor.Editor) error {
		kind = d.Kind
		return nil
	})

	slug, err := h.formService.Submit(c.Request.Context(), sess)
	if err != nil {
		if services.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": apiclient.Message(err, "保存失败，请稍候再试"),
		})
		return
	}

	listURL := "/admin"
	if kind == models.KindArticle {
		listURL = "/admin/travel-magazine"
	}

	session := sessions.Default(c)
	session.AddFlash("已成功保存！", constants.SessionKeySuccessFlash)
	session.Save()

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"message":  "已成功保存！",
		"slug":     slug,
		"list_url": listURL,
	})
}

// Discard drops the session; nothing typed so far survives.
func (h *EditorHandler) Discard(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	h.formService.Discard(sess.ID)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Places proxies location autocomplete for the camper form.
func (h *EditorHandler) Places(c *gin.Context) {
	input := c.Query("input")
	if !h.geoService.Enabled() || input == "" {
		c.JSON(http.StatusOK, gin.H{"status": "success", "suggestions": []string{}})
		return
	}

	suggestions, err := h.geoService.Suggest(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"status": "error", "message": "地点服务暂不可用"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "suggestions": suggestions})
}

// blockState answers block mutations with the data the page needs to
// redraw its list and preview without a full reload.
func (h *EditorHandler) blockState(c *gin.Context, sess *editor.Session) {
	var blocks models.BlockList
	var excerpt string
	var groups []view.Group
	sess.Do(func(d *models.Draft, e *editor.Editor) error {
		blocks = append(models.BlockList(nil), d.Content...)
		excerpt = d.Excerpt
		groups = view.BuildGroups(d.Content)
		return nil
	})

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"blocks":  blocks,
		"excerpt": excerpt,
		"groups":  groups,
	})
}
