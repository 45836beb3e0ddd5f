package models

// Profile 存储出租方在站点上展示的资料
type Profile struct {
	Name        string `json:"name" form:"name"`
	Email       string `json:"email" form:"email"`
	Phone       string `json:"phone" form:"phone"`
	Avatar      string `json:"avatar"`
	Bio         string `json:"bio" form:"bio"`
	Country     string `json:"country" form:"country"`
	SiteTagline string `json:"siteTagline" form:"siteTagline"`
}
