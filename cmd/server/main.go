package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"forkful/internal/config"
	"forkful/internal/db"
	"forkful/internal/middleware"
	"forkful/internal/router"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db.Init(cfg.DatabaseURL)

	r := gin.Default()

	// Sessions
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("forkful_session", store))

	// Templates
	r.HTMLRender = loadTemplates("./web/templates")

	// Static assets
	r.Static("/static", "./web/static")

	// Routes (page + API)
	router.RegisterRoutes(r, cfg)

	// Method override wraps the router so forms can express PUT/DELETE
	// before route matching happens.
	handler := middleware.MethodOverride(r)

	log.Printf("forkful server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t interface{}) string {
			var timeVal time.Time
			switch v := t.(type) {
			case time.Time:
				timeVal = v
			default:
				return ""
			}

			duration := time.Since(timeVal)
			seconds := int(duration.Seconds())

			if seconds < 60 {
				return fmt.Sprintf("%ds ago", seconds)
			} else if seconds < 3600 {
				return fmt.Sprintf("%dm ago", seconds/60)
			} else if seconds < 86400 {
				return fmt.Sprintf("%dh ago", seconds/3600)
			} else if seconds < 2592000 {
				return fmt.Sprintf("%dd ago", seconds/86400)
			} else if seconds < 31536000 {
				return fmt.Sprintf("%dmo ago", seconds/2592000)
			}
			return fmt.Sprintf("%dy ago", seconds/31536000)
		},
		"truncate": func(s string, n int) string {
			runes := []rune(s)
			if len(runes) <= n {
				return s
			}
			return string(runes[:n]) + "…"
		},
		"lower": strings.ToLower,
	}

	// Auth
	r.AddFromFilesFuncs("auth/signup.html", funcMap, assemble(templatesDir+"/views/auth/signup.html")...)
	r.AddFromFilesFuncs("auth/signin.html", funcMap, assemble(templatesDir+"/views/auth/signin.html")...)

	// Restaurants
	r.AddFromFilesFuncs("restaurant/list.html", funcMap, assemble(templatesDir+"/views/restaurant/list.html")...)
	r.AddFromFilesFuncs("restaurant/detail.html", funcMap, assemble(templatesDir+"/views/restaurant/detail.html")...)
	r.AddFromFilesFuncs("restaurant/dashboard.html", funcMap, assemble(templatesDir+"/views/restaurant/dashboard.html")...)
	r.AddFromFilesFuncs("restaurant/feeds.html", funcMap, assemble(templatesDir+"/views/restaurant/feeds.html")...)
	r.AddFromFilesFuncs("restaurant/top.html", funcMap, assemble(templatesDir+"/views/restaurant/top.html")...)

	// Users
	r.AddFromFilesFuncs("user/profile.html", funcMap, assemble(templatesDir+"/views/user/profile.html")...)
	r.AddFromFilesFuncs("user/edit.html", funcMap, assemble(templatesDir+"/views/user/edit.html")...)
	r.AddFromFilesFuncs("user/top.html", funcMap, assemble(templatesDir+"/views/user/top.html")...)

	// Admin
	r.AddFromFilesFuncs("admin/restaurants.html", funcMap, assemble(templatesDir+"/views/admin/restaurants.html")...)
	r.AddFromFilesFuncs("admin/restaurant.html", funcMap, assemble(templatesDir+"/views/admin/restaurant.html")...)
	r.AddFromFilesFuncs("admin/restaurant_form.html", funcMap, assemble(templatesDir+"/views/admin/restaurant_form.html")...)
	r.AddFromFilesFuncs("admin/users.html", funcMap, assemble(templatesDir+"/views/admin/users.html")...)
	r.AddFromFilesFuncs("admin/categories.html", funcMap, assemble(templatesDir+"/views/admin/categories.html")...)

	return r
}
