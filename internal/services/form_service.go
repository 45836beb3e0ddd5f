package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"roamcms/internal/apiclient"
	"roamcms/internal/editor"
	"roamcms/internal/models"
	"roamcms/internal/uploader"
	"roamcms/internal/utils"
)

// ValidationError is a local, synchronous form failure. It blocks the
// submit and is shown to the operator, but never logged upstream.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func IsValidation(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// Rules gates the per-entity validation differences. Campers default to
// not requiring a category: their category set starts empty in the
// marketplace and existing listings rely on that.
type Rules struct {
	RequireCategory bool
	RequirePrice    bool
	RequireLocation bool
}

func rulesFor(kind models.EntityKind) Rules {
	if kind == models.KindCamper {
		return Rules{RequireCategory: false, RequirePrice: true, RequireLocation: true}
	}
	return Rules{RequireCategory: true}
}

// FormService owns every live create/edit session: it hydrates drafts,
// validates them and runs the submit protocol against the API.
type FormService struct {
	api      *apiclient.Client
	uploads  uploader.Uploader
	sessions *editor.Store
	log      zerolog.Logger
}

func NewFormService(api *apiclient.Client, uploads uploader.Uploader, sessions *editor.Store, log zerolog.Logger) *FormService {
	return &FormService{
		api:      api,
		uploads:  uploads,
		sessions: sessions,
		log:      log,
	}
}

// StartCreate opens a session around an empty draft.
func (s *FormService) StartCreate(kind models.EntityKind) *editor.Session {
	return s.sessions.Create(&models.Draft{Kind: kind, Currency: "CHF", Status: "available"})
}

// StartEdit fetches the entity behind the slug and opens a session
// around its hydrated draft.
func (s *FormService) StartEdit(ctx context.Context, kind models.EntityKind, slug string) (*editor.Session, error) {
	title := utils.TitleFromSlug(slug)

	var draft *models.Draft
	switch kind {
	case models.KindCamper:
		camper, err := s.api.GetCamperByTitle(ctx, title)
		if err != nil {
			return nil, fmt.Errorf("加载房车失败: %w", err)
		}
		draft = models.DraftFromCamper(camper)
	default:
		article, err := s.api.GetArticleByTitle(ctx, title)
		if err != nil {
			return nil, fmt.Errorf("加载游记失败: %w", err)
		}
		draft = models.DraftFromArticle(article)
	}

	return s.sessions.Create(draft), nil
}

// Session resolves a live session by id.
func (s *FormService) Session(id string) (*editor.Session, error) {
	return s.sessions.Get(id)
}

// Discard drops a session without submitting; the draft is gone.
func (s *FormService) Discard(id string) {
	s.sessions.Delete(id)
}

// Validate applies the submit rules in a fixed order and reports only
// the first failure, so the surfaced message is deterministic.
func Validate(d *models.Draft) error {
	rules := rulesFor(d.Kind)

	if d.Title == "" {
		return &ValidationError{Msg: "请填写标题"}
	}
	if d.Description == "" {
		return &ValidationError{Msg: "请填写描述"}
	}
	if rules.RequireCategory && len(d.Categories) == 0 {
		return &ValidationError{Msg: "请选择分类"}
	}
	if d.FeaturedImage == "" && d.PendingImage == nil {
		return &ValidationError{Msg: "请选择封面图片"}
	}
	if len(d.Content) == 0 {
		return &ValidationError{Msg: "请至少添加一个内容块"}
	}
	if rules.RequirePrice && d.Price == 0 {
		return &ValidationError{Msg: "请填写价格"}
	}
	if rules.RequireLocation && d.Location == "" {
		return &ValidationError{Msg: "请填写地点"}
	}
	return nil
}

// Submit runs the full protocol: validate, upload a newly chosen
// featured image (blocking, before any API write), then create or
// update depending on the draft's id. On success the session is dropped
// and the entity's slug is returned for the redirect; on failure the
// session and draft survive so the operator can retry.
func (s *FormService) Submit(ctx context.Context, sess *editor.Session) (string, error) {
	var slug string

	err := sess.Do(func(d *models.Draft, _ *editor.Editor) error {
		if err := Validate(d); err != nil {
			return err
		}

		if d.PendingImage != nil {
			name := d.PendingImage.Name
			if d.ImageTitle != "" {
				name = d.ImageTitle
			}
			url, err := s.uploads.Upload(ctx, name, d.PendingImage.Data, d.PendingImage.ContentType)
			if err != nil {
				// 封面字段保持不变，草稿可以直接重试
				return fmt.Errorf("封面上传失败: %w", err)
			}
			d.FeaturedImage = url
			d.PendingImage = nil
		}

		title, err := s.persist(ctx, d)
		if err != nil {
			return err
		}
		slug = utils.SlugFromTitle(title)
		return nil
	})
	if err != nil {
		if !IsValidation(err) {
			s.log.Error().Err(err).Str("session", sess.ID).Msg("提交失败")
		}
		return "", err
	}

	s.sessions.Delete(sess.ID)
	return slug, nil
}

func (s *FormService) persist(ctx context.Context, d *models.Draft) (string, error) {
	switch d.Kind {
	case models.KindCamper:
		if d.ID == 0 {
			saved, err := s.api.CreateCamper(ctx, d.ToCamper())
			if err != nil {
				return "", err
			}
			return saved.Title, nil
		}
		saved, err := s.api.UpdateCamper(ctx, d.ToCamper())
		if err != nil {
			return "", err
		}
		return saved.Title, nil
	default:
		if d.ID == 0 {
			saved, err := s.api.CreateArticle(ctx, d.ToArticle())
			if err != nil {
				return "", err
			}
			return saved.Title, nil
		}
		saved, err := s.api.UpdateArticle(ctx, d.ToArticle())
		if err != nil {
			return "", err
		}
		return saved.Title, nil
	}
}
