package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/etnz/shopsight"
	"github.com/etnz/shopsight/renderer"
	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
)

//go:embed assets/dashboard.html
var assets embed.FS

var pageTemplate = template.Must(template.ParseFS(assets, "assets/dashboard.html"))

// pageData seeds the dashboard's filter controls with the facets of the
// session's dataset.
type pageData struct {
	Categories     []string
	PaymentMethods []string
	Countries      []string
}

func (s *Server) handlePage(c *gin.Context) {
	ds := s.sessions.session(c).getDataset()
	data := pageData{
		Categories:     ds.Categories(),
		PaymentMethods: ds.PaymentMethods(),
		Countries:      ds.Countries(),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		c.String(http.StatusInternalServerError, "page rendering failed: %v", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// handleReport serves a printable HTML report of the filtered view:
// the markdown reports converted with goldmark.
func (s *Server) handleReport(c *gin.Context) {
	view := s.sessions.session(c).view()

	var md bytes.Buffer
	md.WriteString(renderer.SummaryMarkdown(shopsight.Summarize(view)))
	md.WriteString("\n")
	md.WriteString(renderer.TopProductsMarkdown(shopsight.TopProducts(view, 0)))
	md.WriteString("\n")
	md.WriteString(renderer.TopCategoriesMarkdown(shopsight.TopCategories(view, 0)))
	md.WriteString("\n")
	md.WriteString(renderer.DailyMarkdown(shopsight.DailyProfit(view)))
	md.WriteString("\n")
	md.WriteString(renderer.FraudMarkdown(view, shopsight.EvaluateFraud(view, shopsight.DefaultFraudConfig())))

	var html bytes.Buffer
	html.WriteString(`<!doctype html><meta charset="utf-8"><title>ShopSight Report</title><body style="font-family:sans-serif;max-width:60em;margin:2em auto">`)
	if err := goldmark.Convert(md.Bytes(), &html); err != nil {
		c.String(http.StatusInternalServerError, "report rendering failed: %v", err)
		return
	}
	html.WriteString("</body>")
	c.Data(http.StatusOK, "text/html; charset=utf-8", html.Bytes())
}
