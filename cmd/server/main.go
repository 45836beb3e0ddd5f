package main

import (
	"html/template"

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
)

// Development entry point: templates and static files come straight
// from the working directory, no embedding.

func createRenderer() multitemplate.Renderer {
	funcs := template.FuncMap{"slugify": utils.SlugFromTitle}

	r := multitemplate.NewRenderer()
	r.AddFromFilesFuncs("index.html", funcs, "templates/base.html", "templates/index.html", "templates/_pagination.html")
	r.AddFromFilesFuncs("article.html", funcs, "templates/base.html", "templates/article.html", "templates/_blocks.html")
	r.AddFromFilesFuncs("camper.html", funcs, "templates/base.html", "templates/camper.html", "templates/_blocks.html")
	r.AddFromFilesFuncs("provider.html", funcs, "templates/base.html", "templates/provider.html")
	r.AddFromFilesFuncs("admin_campers.html", funcs, "templates/base.html", "templates/admin_campers.html", "templates/_pagination.html")
	r.AddFromFilesFuncs("admin_articles.html", funcs, "templates/base.html", "templates/admin_articles.html", "templates/_pagination.html")
	r.AddFromFilesFuncs("editor.html", funcs, "templates/base.html", "templates/editor.html", "templates/_blocks.html")
	r.AddFromFilesFuncs("profile.html", funcs, "templates/base.html", "templates/profile.html")
	r.AddFromFilesFuncs("login.html", funcs, "templates/base.html", "templates/login.html")
	r.AddFromFilesFuncs("404.html", funcs, "templates/base.html", "templates/404.html")
	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.New("info")
		l.Fatal().Err(err).Msg("加载配置失败")
	}

	log := logger.New(cfg.LogLevel)

	api := apiclient.New(cfg.APIBaseURL)
	uploads := uploader.NewCloudinaryUploader(cfg.Cloudinary)

	sessionStore := editor.NewStore()
	formService := services.NewFormService(api, uploads, sessionStore, log)
	profileService := services.NewProfileService(api, log)
	geoService := services.NewGeoService(cfg.PlacesBaseURL, cfg.PlacesAPIKey)

	publicHandler := handlers.NewPublicHandler(api, profileService)
	adminHandler := handlers.NewAdminHandler(api, formService, profileService)
	editorHandler := handlers.NewEditorHandler(formService, geoService, uploads)
	authHandler := handlers.NewAuthHandler(api)

	r := gin.Default()
	r.HTMLRender = createRenderer()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("roamcms_session", store))
	r.Use(handlers.ProfileMiddleware(profileService))

	r.Static("/static", "./static")

	r.GET("/", publicHandler.Index)
	r.GET("/travel-magazine/:slug", publicHandler.ShowArticle)
	r.GET("/campers/:slug", publicHandler.ShowCamper)
	r.GET("/provider", publicHandler.ShowProvider)

	r.GET("/login", authHandler.ShowLoginPage)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

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

	scheduler := tasks.NewScheduler(profileService, sessionStore, log)
	scheduler.Start(cfg.ProfileRefreshCron)
	defer scheduler.Stop()

	r.NoRoute(publicHandler.NotFound)

	log.Info().Str("addr", cfg.Addr).Msg("服务器启动")
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("服务器退出")
	}
}
