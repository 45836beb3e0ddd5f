package models

// EntityKind selects which content type a draft belongs to.
type EntityKind string

const (
	KindCamper  EntityKind = "camper"
	KindArticle EntityKind = "article"
)

// ImageFile is a not-yet-uploaded image picked by the operator. It only
// exists client-side; the API never sees it.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Draft is the in-memory working copy of a camper or article during one
// create/edit session. It is owned by exactly one form controller and
// discarded on navigation away; nothing here is persisted locally.
//
// Excerpt is derived, never authored: the form controller recomputes it
// whenever Content changes.
type Draft struct {
	Kind EntityKind
	ID   uint // 0 表示新建

	Title       string
	Description string
	Categories  []string // articles use a single element
	ImageTitle  string
	Excerpt     string

	// FeaturedImage holds the remote URL once known; PendingImage holds
	// a newly chosen file that still needs uploading on submit.
	FeaturedImage string
	PendingImage  *ImageFile

	// Camper-only fields.
	Price    float64
	Currency string
	Location string
	Status   string

	Content BlockList
}

// AllowedKinds reports which block kinds this draft's editor offers.
func (d *Draft) AllowedKinds() KindSet {
	if d.Kind == KindCamper {
		return CamperKinds
	}
	return ArticleKinds
}

// DraftFromCamper hydrates a draft for edit mode.
func DraftFromCamper(c *Camper) *Draft {
	return &Draft{
		Kind:          KindCamper,
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		Categories:    append([]string(nil), c.Categories...),
		ImageTitle:    c.ImageTitle,
		Excerpt:       c.Excerpt,
		FeaturedImage: c.FeaturedImage,
		Price:         c.Price,
		Currency:      c.Currency,
		Location:      c.Location,
		Status:        c.Status,
		Content:       append(BlockList(nil), c.Content...),
	}
}

// DraftFromArticle hydrates a draft for edit mode.
func DraftFromArticle(a *Article) *Draft {
	categories := []string{}
	if a.Category != "" {
		categories = []string{a.Category}
	}
	return &Draft{
		Kind:          KindArticle,
		ID:            a.ID,
		Title:         a.Title,
		Description:   a.Description,
		Categories:    categories,
		ImageTitle:    a.ImageTitle,
		Excerpt:       a.Excerpt,
		FeaturedImage: a.FeaturedImage,
		Content:       append(BlockList(nil), a.Content...),
	}
}

// ToCamper serializes the draft for the API. PendingImage must already
// have been uploaded and substituted into FeaturedImage by the caller.
func (d *Draft) ToCamper() *Camper {
	return &Camper{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		Categories:    append([]string(nil), d.Categories...),
		FeaturedImage: d.FeaturedImage,
		ImageTitle:    d.ImageTitle,
		Excerpt:       d.Excerpt,
		Price:         d.Price,
		Currency:      d.Currency,
		Location:      d.Location,
		Status:        d.Status,
		Content:       append(BlockList(nil), d.Content...),
	}
}

// ToArticle serializes the draft for the API.
func (d *Draft) ToArticle() *Article {
	category := ""
	if len(d.Categories) > 0 {
		category = d.Categories[0]
	}
	return &Article{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		Category:      category,
		FeaturedImage: d.FeaturedImage,
		ImageTitle:    d.ImageTitle,
		Excerpt:       d.Excerpt,
		Content:       append(BlockList(nil), d.Content...),
	}
}
