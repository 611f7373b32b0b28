// Package dashboard serves the status, summary and settings pages as HTML.
package dashboard

import (
	"embed"
	"html/template"
	"net/http"

	"climate_station/internal/logger"
	"climate_station/internal/page"
	"climate_station/internal/views"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

// API is the device API the pages read from.
type API interface {
	views.SettingsAPI
	views.StatusAPI
	views.SummaryAPI
}

type Dashboard struct {
	settings *views.SettingsView
	status   *views.StatusView
	summary  *views.SummaryView
	log      *logger.Logger
}

func New(api API, log *logger.Logger) *Dashboard {
	if log == nil {
		log = logger.Nop()
	}
	return &Dashboard{
		settings: views.NewSettingsView(api, log),
		status:   views.NewStatusView(api, log),
		summary:  views.NewSummaryView(api, log),
		log:      log,
	}
}

type pageData struct {
	Title string
	Doc   *page.Document
}

// InitRoutes builds the router. Each request renders into its own Document.
func (d *Dashboard) InitRoutes() (*gin.Engine, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), d.requestLog)
	router.SetHTMLTemplate(tmpl)

	router.GET("/", d.index)
	router.GET("/status", d.statusPage)
	router.GET("/summary", d.summaryPage)
	router.GET("/settings", d.settingsPage)
	router.POST("/settings", d.submitSettings)
	return router, nil
}

func (d *Dashboard) requestLog(c *gin.Context) {
	c.Next()
	d.log.Debugw("dashboard_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
	)
}

func (d *Dashboard) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageData{Title: "Climate Station", Doc: page.NewDocument()})
}

func (d *Dashboard) statusPage(c *gin.Context) {
	doc := page.NewDocument()
	d.status.Load(c.Request.Context(), doc)
	c.HTML(http.StatusOK, "status.html", pageData{Title: "Status", Doc: doc})
}

func (d *Dashboard) summaryPage(c *gin.Context) {
	doc := page.NewDocument()
	d.summary.Load(c.Request.Context(), doc)
	c.HTML(http.StatusOK, "summary.html", pageData{Title: "Summary", Doc: doc})
}

func (d *Dashboard) settingsPage(c *gin.Context) {
	doc := page.NewDocument()
	d.settings.Load(c.Request.Context(), doc)
	c.HTML(http.StatusOK, "settings.html", pageData{Title: "Settings", Doc: doc})
}

func (d *Dashboard) submitSettings(c *gin.Context) {
	doc := page.NewDocument()
	d.settings.Submit(c.Request.Context(), doc, views.FormValues{
		TempHigh:       c.PostForm(page.IDTempHigh),
		TempLow:        c.PostForm(page.IDTempLow),
		LightThreshold: c.PostForm(page.IDLightThreshold),
	})
	c.HTML(http.StatusOK, "settings.html", pageData{Title: "Settings", Doc: doc})
}
