package http

//go:generate mockgen -source=dashboard.go -destination=mock_dashboard.go -package=http

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sbilibin2017/flagwatch/internal/models"
)

// Placeholder is rendered for values that are not known yet.
const Placeholder = "—"

// SnapshotGetter returns the current metric snapshot.
type SnapshotGetter interface {
	Snapshot() models.MetricSnapshot
}

// Refresher performs one read and returns the resulting snapshot.
type Refresher interface {
	Refresh(ctx context.Context) models.MetricSnapshot
}

// KPICard is one tile of the dashboard.
type KPICard struct {
	Label string
	Value string
	Hint  string
}

// KPIView is the render model of the dashboard page.
type KPIView struct {
	Title       string
	LastUpdated string
	Loading     bool
	Failed      bool
	Error       string
	Cards       []KPICard
}

// RefreshLabel is the caption of the refresh button.
func (v KPIView) RefreshLabel() string {
	if v.Loading {
		return "Refreshing…"
	}
	return "Refresh"
}

// NewKPIView maps a snapshot onto the dashboard render model.
func NewKPIView(s models.MetricSnapshot, table string) KPIView {
	v := KPIView{
		Title:   "Security Agent Dashboard",
		Loading: s.Status == models.StatusLoading,
		Failed:  s.Status == models.StatusFailed,
		Error:   s.ErrorMessage,
	}
	if s.LastUpdated != nil {
		v.LastUpdated = s.LastUpdated.Local().Format(time.DateTime)
	}

	v.Cards = []KPICard{
		{Label: "Total Flags", Value: totalFlags(s), Hint: "Count of rows in " + table},
		{Label: "Blocks", Value: Placeholder, Hint: "Wire when endpoint ready"},
		{Label: "Redactions", Value: Placeholder, Hint: "Wire when endpoint ready"},
		{Label: "Allow Rate", Value: Placeholder, Hint: "Wire when endpoint ready"},
	}
	return v
}

func totalFlags(s models.MetricSnapshot) string {
	switch {
	case s.Value != nil:
		return strconv.FormatInt(*s.Value, 10)
	case s.Status == models.StatusLoading:
		return Placeholder
	default:
		return "0"
	}
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<header>
<h1>{{.Title}}</h1>
<p class="updated">{{if .LastUpdated}}Last updated: {{.LastUpdated}}{{else}}Loading…{{end}}</p>
<form method="post" action="/refresh"><button type="submit"{{if .Loading}} disabled{{end}}>{{.RefreshLabel}}</button></form>
</header>
{{if .Failed}}<div class="error" role="alert">{{.Error}}</div>{{end}}
<section class="kpis">
{{range .Cards}}<div class="card"><h2>{{.Label}}</h2><p class="value">{{.Value}}</p><p class="hint">{{.Hint}}</p></div>
{{end}}</section>
<section class="incidents">
<h2>Recent Incidents</h2>
<p>Hook this to your events endpoint or Datasette query when ready.</p>
</section>
</body>
</html>
`))

// NewDashboardHTMLHandler renders the KPI page.
//
// @Summary Dashboard page
// @Description Returns the KPI screen with the latest Total Flags value
// @Tags dashboard
// @Produce html
// @Success 200 "OK"
// @Failure 500 "Internal Server Error"
// @Router / [get]
func NewDashboardHTMLHandler(getter SnapshotGetter, table string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sb strings.Builder
		if err := dashboardTmpl.Execute(&sb, NewKPIView(getter.Snapshot(), table)); err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(sb.String()))
	}
}

// NewSnapshotJSONHandler returns the current snapshot as JSON.
//
// @Summary Current snapshot
// @Description Returns value, status, last_updated and error of the Total Flags metric
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.MetricSnapshot
// @Router /api/snapshot [get]
func NewSnapshotJSONHandler(getter SnapshotGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, getter.Snapshot())
	}
}

// NewRefreshHandler performs one synchronous refresh.
//
// @Summary Refresh metric
// @Description Reads the metric once; redirects to / or returns the snapshot for JSON clients
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.MetricSnapshot
// @Success 303 "See Other"
// @Router /refresh [post]
func NewRefreshHandler(refresher Refresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := refresher.Refresh(r.Context())

		if strings.Contains(r.Header.Get("Accept"), "application/json") {
			writeJSON(w, http.StatusOK, s)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	resp, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(resp)
}
