package main

import (
	"context"
	"flag"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"roamcms/internal/apiclient"
	"roamcms/internal/config"
	"roamcms/internal/editor"
	"roamcms/internal/handlers"
	"roamcms/internal/logger"
	"roamcms/internal/services"
	"roamcms/internal/tasks"
	"roamcms/internal/uploader"
	"roamcms/internal/utils"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Global filesystems that will be populated by either assets_dev.go or assets_prod.go at startup.
var templatesFS fs.FS
var staticFS fs.FS

var templateFuncs = template.FuncMap{
	"slugify": utils.SlugFromTitle,
}

func createRenderer(log zerolog.Logger) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	add := func(name string, files ...string) {
		tpl, err := template.New(files[0]).Funcs(templateFuncs).ParseFS(templatesFS, files...)
		if err != nil {
			log.Fatal().Err(err).Str("template", name).Msg("解析模板失败")
		}
		r.Add(name, tpl)
	}

	add("index.html", "base.html", "index.html", "_pagination.html")
	add("article.html", "base.html", "article.html", "_blocks.html")
	add("camper.html", "base.html", "camper.html", "_blocks.html")
	add("provider.html", "base.html", "provider.html")
	add("admin_campers.html", "base.html", "admin_campers.html", "_pagination.html")
	add("admin_articles.html", "base.html", "admin_articles.html", "_pagination.html")
	add("editor.html", "base.html", "editor.html", "_blocks.html")
	add("profile.html", "base.html", "profile.html")
	add("login.html", "base.html", "login.html")
	add("404.html", "base.html", "404.html")

	return r
}

func newUploader(cfg *config.Config) (uploader.Uploader, error) {
	if cfg.UploadProvider == config.UploadS3 {
		return uploader.NewS3Uploader(cfg.S3)
	}
	return uploader.NewCloudinaryUploader(cfg.Cloudinary), nil
}

func main() {
	unsafe := flag.Bool("unsafe", false, "allow insecure cookies")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		l := logger.New("info")
		l.Fatal().Err(err).Msg("加载配置失败")
	}

	log := logger.New(cfg.LogLevel)

	// 初始化依赖
	api := apiclient.New(cfg.APIBaseURL)

	uploads, err := newUploader(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("初始化图片上传失败")
	}

	sessionStore := editor.NewStore()
	formService := services.NewFormService(api, uploads, sessionStore, log)
	profileService := services.NewProfileService(api, log)
	geoService := services.NewGeoService(cfg.PlacesBaseURL, cfg.PlacesAPIKey)

	publicHandler := handlers.NewPublicHandler(api, profileService)
	adminHandler := handlers.NewAdminHandler(api, formService, profileService)
	editorHandler := handlers.NewEditorHandler(formService, geoService, uploads)
	authHandler := handlers.NewAuthHandler(api)

	// 预热资料缓存，失败不阻塞启动
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := profileService.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("预加载提供商资料失败")
	}
	cancel()

	// 设置Gin路由
	r := gin.Default()
	r.HTMLRender = createRenderer(log)

	// 设置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		HttpOnly: true,
		Secure:   !*unsafe,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("roamcms_session", store))

	// 加载资料的中间件
	r.Use(handlers.ProfileMiddleware(profileService))

	// 静态文件服务
	r.StaticFS("/static", http.FS(staticFS))

	// 公开路由
	r.GET("/", publicHandler.Index)
	r.GET("/travel-magazine/:slug", publicHandler.ShowArticle)
	r.GET("/campers/:slug", publicHandler.ShowCamper)
	r.GET("/provider", publicHandler.ShowProvider)

	// 认证路由
	r.GET("/login", authHandler.ShowLoginPage)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// 后台路由
	admin := r.Group("/admin")
	admin.Use(handlers.AuthMiddleware())
	{
		admin.GET("/", adminHandler.ListCampers)
		admin.GET("/campers/new", adminHandler.NewCamper)
		admin.GET("/campers/edit/:slug", adminHandler.EditCamper)
		admin.POST("/campers/delete/:id", adminHandler.DeleteCamper)

		admin.GET("/travel-magazine", adminHandler.ListArticles)
		admin.GET("/travel-magazine/new", adminHandler.NewArticle)
		admin.GET("/travel-magazine/edit/:slug", adminHandler.EditArticle)
		admin.POST("/travel-magazine/delete/:id", adminHandler.DeleteArticle)

		admin.GET("/profile", adminHandler.ShowProfilePage)
		admin.POST("/profile", adminHandler.UpdateProfile)

		admin.GET("/editor", editorHandler.ShowEditor)
		admin.POST("/editor/kind", editorHandler.SelectKind)
		admin.POST("/editor/commit", editorHandler.CommitBlock)
		admin.POST("/editor/edit/:index", editorHandler.EditBlock)
		admin.POST("/editor/remove/:index", editorHandler.RemoveBlock)
		admin.POST("/editor/meta", editorHandler.SaveMeta)
		admin.POST("/editor/submit", editorHandler.Submit)
		admin.POST("/editor/discard", editorHandler.Discard)
		admin.GET("/places", editorHandler.Places)
	}

	// 后台任务
	scheduler := tasks.NewScheduler(profileService, sessionStore, log)
	scheduler.Start(cfg.ProfileRefreshCron)
	defer scheduler.Stop()

	// 404处理
	r.NoRoute(publicHandler.NotFound)

	// 启动服务器
	log.Info().Str("addr", cfg.Addr).Msg("服务器启动")
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("服务器退出")
	}
}
