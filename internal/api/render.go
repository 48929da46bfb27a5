package api

import (
	"budget_tracker/internal/middleware" // Session gate and advisories
	"budget_tracker/web"                 // Embedded templates
	"html/template"                      // Server-side rendering
	"net/http"                           // HTTP status codes

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Amount formatting
	"github.com/sirupsen/logrus"    // Logging library
)

// Result is what a non-rendering handler produces: where to go next and what to tell the user
type Result struct {
	Redirect string // Target path
	Advisory string // One-line message shown on the next page
}

// Page carries the fields every template layout needs
type Page struct {
	Title    string
	Advisory string
	LoggedIn bool
}

type errorView struct {
	Page
	Message string
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"money": formatMoney,
	}).ParseFS(web.TemplatesFS, "templates/*.html")
}

// formatMoney shows two decimals unless the amount carries more
func formatMoney(d decimal.Decimal) string {
	if d.Equal(d.Round(2)) {
		return d.StringFixed(2)
	}
	return d.String()
}

func newPage(c *gin.Context, gate *middleware.Gate, title string) Page {
	_, loggedIn := middleware.IdentityFrom(c)
	return Page{Title: title, Advisory: gate.TakeAdvisory(c), LoggedIn: loggedIn}
}

// respond turns a Result into an advisory cookie and a redirect
func respond(c *gin.Context, gate *middleware.Gate, res Result) {
	gate.SetAdvisory(c, res.Advisory)
	c.Redirect(http.StatusFound, res.Redirect)
}

// finish responds with res, or with the generic error page when err is set
func finish(c *gin.Context, gate *middleware.Gate, res Result, err error) {
	if err != nil {
		serverError(c, gate, err)
		return
	}
	respond(c, gate, res)
}

// serverError logs err and renders the generic error page
func serverError(c *gin.Context, gate *middleware.Gate, err error) {
	fields := logrus.Fields{
		"method": c.Request.Method,   // HTTP method
		"path":   c.Request.URL.Path, // Request path
		"error":  err.Error(),        // Error message
	}
	if identity, ok := middleware.IdentityFrom(c); ok {
		fields["user_id"] = identity.UserID
	}
	logrus.WithFields(fields).Error("Request failed")
	c.HTML(http.StatusInternalServerError, "error.html", errorView{
		Page:    newPage(c, gate, "Error"),
		Message: "Internal server error. Please try again.",
	})
}
