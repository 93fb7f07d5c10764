// Package admin serves the settings form to the embedding admin.
package admin

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/termii-notify/smsadmin/internal/form"
	"github.com/termii-notify/smsadmin/internal/session"
	"github.com/termii-notify/smsadmin/internal/settings"
	"github.com/termii-notify/smsadmin/internal/settings/schema"
	"github.com/termii-notify/smsadmin/internal/ui"
)

const (
	SettingsPath = "/admin/settings"
	DismissPath  = SettingsPath + "/dismiss"
)

// maxDraftSize bounds the body of a save request.
const maxDraftSize = 64 << 10

type HandlerParams struct {
	fx.In

	Forms    *form.Registry
	Renderer *ui.Renderer
	Verifier *session.Verifier
	Schema   *schema.Schema
	Log      *zap.Logger
}

func NewSettingsHandler(params HandlerParams) *SettingsHandler {
	return &SettingsHandler{
		forms:    params.Forms,
		renderer: params.Renderer,
		verifier: params.Verifier,
		schema:   params.Schema,
		log:      params.Log,
	}
}

// SettingsHandler shows the settings form on GET and saves it on POST.
type SettingsHandler struct {
	forms    *form.Registry
	renderer *ui.Renderer
	verifier *session.Verifier
	schema   *schema.Schema
	log      *zap.Logger
}

func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	)

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.show(w, r, log)
	case http.MethodPost:
		h.save(w, r, log)
	default:
		log.Debug("invalid http method")
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, "invalid http method", http.StatusMethodNotAllowed)
	}
}

func (h *SettingsHandler) show(w http.ResponseWriter, r *http.Request, log *zap.Logger) {
	host := session.HostFromRequest(r, h.verifier, log)
	domain, _ := host.Shop()

	c, release := h.forms.Open(domain)
	defer release()

	// a load already in flight for this shop renders the loading page
	if !c.Snapshot().Loading() {
		if err := c.Mount(r.Context(), host); err != nil {
			log.Info("failed to load settings", zap.String("shop", domain), zap.Error(err))
		}
	}

	h.render(w, r, host, c.Snapshot())
}

func (h *SettingsHandler) save(w http.ResponseWriter, r *http.Request, log *zap.Logger) {
	draft, err := h.readDraft(w, r)
	if err != nil {
		log.Debug("invalid draft", zap.Error(err))
		http.Error(w, "invalid draft", http.StatusBadRequest)
		return
	}

	host := session.HostFromRequest(r, h.verifier, log)
	domain, _ := host.Shop()

	c, release := h.forms.Open(domain)
	defer release()

	c.SetDraft(draft)

	if err := c.Save(r.Context(), host); err != nil {
		log.Info("failed to save settings", zap.String("shop", domain), zap.Error(err))
	}

	h.render(w, r, host, c.Snapshot())
}

// readDraft reads the templates of a save request, sent either as a form or
// as a json document.
func (h *SettingsHandler) readDraft(w http.ResponseWriter, r *http.Request) (settings.Draft, error) {
	var draft settings.Draft

	r.Body = http.MaxBytesReader(w, r.Body, maxDraftSize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		if err := r.ParseForm(); err != nil {
			return draft, err
		}

		draft.OrderConfirmationTemplate = r.PostForm.Get("order_confirmation_template")
		draft.FulfillmentTemplate = r.PostForm.Get("fulfillment_template")

		return draft, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return draft, err
	}

	if err := h.schema.Validate(schema.SchemaTypeDraft, body); err != nil {
		return draft, err
	}

	if err := json.Unmarshal(body, &draft); err != nil {
		return draft, err
	}

	return draft, nil
}

func (h *SettingsHandler) render(w http.ResponseWriter, r *http.Request, host session.HostContext, view form.View) {
	tag := ui.ResolveTag(host.Locale, r)
	page := ui.NewPage(view, SettingsPath, r.URL.Query(), tag)
	h.renderer.ServePage(w, http.StatusOK, page)
}

type DismissHandlerParams struct {
	fx.In

	Forms    *form.Registry
	Verifier *session.Verifier
	Log      *zap.Logger
}

func NewDismissHandler(params DismissHandlerParams) *DismissHandler {
	return &DismissHandler{
		forms:    params.Forms,
		verifier: params.Verifier,
		log:      params.Log,
	}
}

// DismissHandler dismisses the error or success banner of a form.
type DismissHandler struct {
	forms    *form.Registry
	verifier *session.Verifier
	log      *zap.Logger
}

func (h *DismissHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.log.With(
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	)

	if r.Method != http.MethodPost {
		log.Debug("invalid http method")
		w.Header().Set("Allow", "POST")
		http.Error(w, "invalid http method", http.StatusMethodNotAllowed)
		return
	}

	host := session.HostFromRequest(r, h.verifier, log)
	domain, ok := host.Shop()

	banner := r.URL.Query().Get("banner")
	if banner != "error" && banner != "success" {
		log.Debug("invalid banner", zap.String("banner", banner))
		http.Error(w, "invalid banner", http.StatusBadRequest)
		return
	}

	// only kept forms show a banner beyond their own response
	if ok {
		if c, release, found := h.forms.Find(domain); found {
			if banner == "error" {
				c.DismissError()
			} else {
				c.DismissSuccess()
			}
			release()
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthHandler reports that the server is up.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}
