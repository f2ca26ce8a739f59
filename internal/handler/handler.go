package handler

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"

	"github.com/Dan9191/finance-dashboard/internal/chart"
	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/Dan9191/finance-dashboard/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

const dashboardTitle = "Account Overview"

type Handler struct {
	svc  *service.Service
	log  *logrus.Logger
	tmpl *template.Template
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{
		svc:  svc,
		log:  log,
		tmpl: template.Must(template.New("dashboard.html").
			Funcs(template.FuncMap{"pathEscape": url.PathEscape}).
			ParseFS(templateFS, "templates/*.html")),
	}
}

// page is the template input: the dashboard plus the expanded active tab
type page struct {
	*models.Dashboard
	Active *tabView
}

type tabView struct {
	models.Tab
	Sections []sectionView
}

type sectionView struct {
	models.Section
	ChartSVG template.HTML
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// Index redirects to the first account, or shows the empty shell when the
// data root has no accounts
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	account, err := h.svc.FirstAccount()
	if err == nil {
		http.Redirect(w, r, "/accounts/"+url.PathEscape(account), http.StatusFound)
		return
	}
	if !errors.Is(err, service.ErrNoAccounts) {
		h.renderError(w, r, err)
		return
	}

	d, err := h.svc.Dashboard(r.Context(), "")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderPage(w, r, &page{Dashboard: d}, http.StatusOK)
}

// Dashboard renders the HTML dashboard of one account with the tab chosen
// by the "tab" query parameter
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	account := mux.Vars(r)["account"]

	active := models.Sources[0]
	if slug := r.URL.Query().Get("tab"); slug != "" {
		source, ok := models.ParseSource(slug)
		if !ok {
			h.renderError(w, r, fmt.Errorf("%w: %s", service.ErrUnknownSource, slug))
			return
		}
		active = source
	}

	d, err := h.svc.Dashboard(r.Context(), account)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	d.ActiveTab = active.Slug()

	p := &page{Dashboard: d}
	for _, tab := range d.Tabs {
		if tab.Source == active {
			p.Active = h.expandTab(tab)
		}
	}
	h.renderPage(w, r, p, http.StatusOK)
}

// expandTab renders each section chart to inline SVG. A chart that cannot
// be drawn is dropped and logged; the tables still show.
func (h *Handler) expandTab(tab models.Tab) *tabView {
	view := &tabView{Tab: tab}
	for _, s := range tab.Sections {
		sv := sectionView{Section: s}
		if s.Chart != nil {
			svg, err := chart.RenderSVG(s.Chart)
			if err != nil {
				h.log.WithError(err).WithField("source", tab.Key).Warn("Failed to render chart")
			} else {
				sv.ChartSVG = template.HTML(svg)
			}
		}
		view.Sections = append(view.Sections, sv)
	}
	return view
}

// renderPage executes the dashboard template. Successful pages carry an
// ETag derived from the body.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, p *page, status int) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "dashboard.html", p); err != nil {
		h.log.WithError(err).Error("Failed to execute template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	if status == http.StatusOK {
		sum := blake2b.Sum256(buf.Bytes())
		etag := fmt.Sprintf(`"%x"`, sum[:16])
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// renderError shows the error as the notice of an otherwise empty dashboard
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.WithError(err).Error("Failed to render dashboard")
	}
	d := &models.Dashboard{Title: dashboardTitle, Notice: err.Error()}
	h.renderPage(w, r, &page{Dashboard: d}, status)
}

// ListAccounts handles GET /api/accounts
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.Accounts()
	if err != nil {
		respondError(w, err.Error(), statusFor(err))
		return
	}
	respondJSON(w, map[string][]string{"accounts": accounts}, http.StatusOK)
}

// GetDashboard handles GET /api/accounts/{account}
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context(), mux.Vars(r)["account"])
	if err != nil {
		respondError(w, err.Error(), statusFor(err))
		return
	}
	respondJSON(w, d, http.StatusOK)
}

// GetSource handles GET /api/accounts/{account}/sources/{source}
func (h *Handler) GetSource(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	source, ok := models.ParseSource(vars["source"])
	if !ok {
		respondError(w, fmt.Sprintf("%v: %s", service.ErrUnknownSource, vars["source"]), http.StatusNotFound)
		return
	}

	tab, err := h.svc.Tab(r.Context(), vars["account"], source)
	if err != nil {
		respondError(w, err.Error(), statusFor(err))
		return
	}
	respondJSON(w, tab, http.StatusOK)
}

// GetInventory handles GET /api/inventory
func (h *Handler) GetInventory(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Inventory()
	if err != nil {
		respondError(w, err.Error(), statusFor(err))
		return
	}
	respondJSON(w, map[string]interface{}{"accounts": report}, http.StatusOK)
}
