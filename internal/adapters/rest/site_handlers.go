package rest

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"listing-site/internal/adapters/web"
	"listing-site/internal/contextkeys"
	"listing-site/internal/core/domain"
	"listing-site/internal/core/port"
	"listing-site/internal/core/port/usecases_port"
)

// SiteHandlers отдают HTML-страницы сайта
type SiteHandlers struct {
	browseUC     usecases_port.BrowseCatalogUseCasePort
	refreshUC    usecases_port.RefreshCatalogUseCasePort
	loadUC       usecases_port.LoadCatalogUseCasePort
	consultingUC usecases_port.SubmitConsultingUseCasePort
	renderer     *web.Renderer
	cacheMinutes int
}

func NewSiteHandlers(
	browseUC usecases_port.BrowseCatalogUseCasePort,
	refreshUC usecases_port.RefreshCatalogUseCasePort,
	loadUC usecases_port.LoadCatalogUseCasePort,
	consultingUC usecases_port.SubmitConsultingUseCasePort,
	renderer *web.Renderer,
	cacheMinutes int,
) *SiteHandlers {
	return &SiteHandlers{
		browseUC:     browseUC,
		refreshUC:    refreshUC,
		loadUC:       loadUC,
		consultingUC: consultingUC,
		renderer:     renderer,
		cacheMinutes: cacheMinutes,
	}
}

// HandleCatalog - GET / и /index.html
func (h *SiteHandlers) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleCatalog"})
	raw := r.URL.Query()

	view, err := h.browseUC.Execute(r.Context(), parseCatalogQuery(raw))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Error("Failed to build catalog view", err, nil)
		h.render(w, r, http.StatusServiceUnavailable, web.PageCatalog, web.NewCatalogErrorPage(domain.UserMessage(err), raw))
		return
	}

	page := web.NewCatalogPage(view, raw)
	if raw.Get(web.ParamUpdated) != "" {
		page.Notice = domain.MessageRefreshed
	}
	h.render(w, r, http.StatusOK, web.PageCatalog, page)
}

// HandleRefresh - POST /refresh: сброс кэша и новая загрузка
func (h *SiteHandlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleRefresh"})

	if _, err := h.refreshUC.Execute(r.Context()); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Error("Forced refresh failed", err, nil)
		h.render(w, r, http.StatusServiceUnavailable, web.PageCatalog, web.NewCatalogErrorPage(domain.UserMessage(err), url.Values{}))
		return
	}

	target := url.Values{web.ParamUpdated: {"1"}}
	if r.FormValue(web.ParamPanel) == web.PanelOpen {
		target.Set(web.ParamPanel, web.PanelOpen)
	}
	http.Redirect(w, r, "/"+web.PageCatalog+"?"+target.Encode(), http.StatusSeeOther)
}

// HandleConsultingForm - GET /tu-van.html
func (h *SiteHandlers) HandleConsultingForm(w http.ResponseWriter, r *http.Request) {
	notice := ""
	if r.URL.Query().Get(web.ParamSent) != "" {
		notice = domain.MessageConsultingSent
	}
	h.render(w, r, http.StatusOK, web.PageConsulting, web.NewConsultingPage(notice))
}

// HandleConsultingSubmit - POST /tu-van.html. Ответ всегда успешный.
func (h *SiteHandlers) HandleConsultingSubmit(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleConsultingSubmit"})

	if err := r.ParseForm(); err != nil {
		logger.Warn("Failed to parse consulting form", port.Fields{"error": err.Error()})
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	receipt, err := h.consultingUC.Execute(r.Context(), r.PostForm)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Error("Consulting submission failed", err, nil)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	logger.Info("Consulting request accepted", port.Fields{"request_id": receipt.ID.String()})
	http.Redirect(w, r, "/"+web.PageConsulting+"?"+web.ParamSent+"=1", http.StatusSeeOther)
}

// HandleInfo - GET /thong-tin.html
func (h *SiteHandlers) HandleInfo(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, web.PageInfo, web.NewInfoPage(h.loadUC.Status(), h.cacheMinutes))
}

func (h *SiteHandlers) render(w http.ResponseWriter, r *http.Request, status int, page string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.renderer.Render(w, page, r.URL.Path, data); err != nil {
		contextkeys.LoggerFromContext(r.Context()).Error("Failed to render page", err, port.Fields{"page": page})
	}
}
