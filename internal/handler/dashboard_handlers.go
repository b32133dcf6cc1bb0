package handler

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/navid-fn/feeboard/internal/feequery"
	"github.com/navid-fn/feeboard/internal/service"
	"github.com/navid-fn/feeboard/internal/theme"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the embedded HTML templates.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

type DashboardHandler struct {
	feeService *service.FeesService
	logger     logrus.FieldLogger
}

func NewDashboardHandler(service *service.FeesService, logger logrus.FieldLogger) *DashboardHandler {
	return &DashboardHandler{feeService: service, logger: logger}
}

type columnView struct {
	Label     string
	Href      string
	Indicator string
	Numeric   bool
}

type themeOption struct {
	Value    theme.Theme
	Selected bool
}

type dashboardView struct {
	Title      string
	ThemeClass theme.Theme
	Themes     []themeOption
	Query      feequery.Query
	Notionals  []string
	Columns    []columnView
	Rows       []feequery.Row
	Showing    int
	ExportHref string
}

// Index renders the fee table.
func (h *DashboardHandler) Index(c *gin.Context) {
	p, ok := providerOrAbort(c, h.logger)
	if !ok {
		return
	}

	q, err := queryFromRequest(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.feeService.Query(q)
	if err != nil {
		c.String(queryErrorStatus(err), err.Error())
		return
	}

	current := p.Theme()
	view := dashboardView{
		Title:      "Fee Analytics",
		ThemeClass: theme.Resolve(current, prefersDark(c)),
		Query:      res.Query,
		Notionals:  h.feeService.GetNotionals(),
		Columns:    columns(res.Query),
		Rows:       res.Rows,
		Showing:    res.Showing,
		ExportHref: "/v1/fees/export.csv?" + queryValues(res.Query).Encode(),
	}
	for _, t := range []theme.Theme{theme.Light, theme.Dark, theme.System} {
		view.Themes = append(view.Themes, themeOption{Value: t, Selected: t == current})
	}

	c.Header("Accept-CH", PrefersColorSchemeHeader)
	c.Header("Vary", PrefersColorSchemeHeader)
	c.HTML(http.StatusOK, "dashboard.html", view)
}

func columns(q feequery.Query) []columnView {
	labels := map[feequery.Field]string{
		feequery.FieldSymbol: "Symbol",
		feequery.FieldSource: "Source",
		feequery.FieldMaker:  "Maker (" + q.Notional + ")",
		feequery.FieldTaker:  "Taker (" + q.Notional + ")",
	}

	out := make([]columnView, 0, len(feequery.Fields))
	for _, f := range feequery.Fields {
		next := q
		next.Sort = q.Sort.Toggle(f)

		indicator := "↕"
		if q.Sort.Field == f {
			indicator = "↑"
			if q.Sort.Dir == feequery.Desc {
				indicator = "↓"
			}
		}

		out = append(out, columnView{
			Label:     labels[f],
			Href:      "/?" + queryValues(next).Encode(),
			Indicator: indicator,
			Numeric:   f == feequery.FieldMaker || f == feequery.FieldTaker,
		})
	}
	return out
}

func queryValues(q feequery.Query) url.Values {
	v := url.Values{}
	if q.Text != "" {
		v.Set("q", q.Text)
	}
	v.Set("notional", q.Notional)
	v.Set("sort", string(q.Sort.Field))
	v.Set("dir", string(q.Sort.Dir))
	return v
}
