package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/wadjakorntonsri/go-linkmaker/pkg/adapters/qrcode"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/services"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/ports"
)

const notFoundMessage = "Short link not found!"

type HTTPHandler struct {
	service ports.LinkService
	baseURL string
}

func NewHTTPHandler(service ports.LinkService, baseURL string) *HTTPHandler {
	return &HTTPHandler{service: service, baseURL: baseURL}
}

// ShortenRequest payload
type ShortenRequest struct {
	URL string `json:"url"`
}

// LinkResponse is a ledger record plus its shareable short URL
type LinkResponse struct {
	domain.LinkRecord
	ShortURL string `json:"short_url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *HTTPHandler) linkResponse(rec domain.LinkRecord) LinkResponse {
	return LinkResponse{LinkRecord: rec, ShortURL: h.baseURL + "/" + rec.ShortCode}
}

// Shorten creates a short link
func (h *HTTPHandler) Shorten(w http.ResponseWriter, r *http.Request) {
	var req ShortenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.service.Shorten(r.Context(), req.URL)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			writeError(w, http.StatusBadRequest, verr.Message)
		case errors.Is(err, services.ErrKeyspaceExhausted):
			log.Printf("Shorten failed: %v", err)
			writeError(w, http.StatusServiceUnavailable, "Could not allocate a short code, please try again")
		default:
			log.Printf("Shorten failed: %v", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	log.Printf("Link %s created by %s", rec.ShortCode, actor(r))
	writeJSON(w, http.StatusCreated, h.linkResponse(*rec))
}

// List returns the history, newest first
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	history := h.service.History(r.Context())
	links := make([]LinkResponse, 0, len(history))
	for _, rec := range history {
		links = append(links, h.linkResponse(rec))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":  links,
		"total": len(links),
	})
}

func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.GetLink(r.Context(), r.PathValue("code"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.linkResponse(*rec))
}

func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if err := h.service.DeleteLink(r.Context(), code); err != nil {
		h.writeServiceError(w, err)
		return
	}
	log.Printf("Link %s deleted by %s", code, actor(r))
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Dashboard(r.Context()))
}

// QRCode proxies a QR image of the link's original destination.
// ?size= picks the pixel size, ?download=1 serves it as an attachment.
func (h *HTTPHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	download := r.URL.Query().Get("download") == "1"

	size := qrcode.DisplaySize
	if download {
		size = qrcode.DownloadSize
	}
	if s := r.URL.Query().Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > 1000 {
			writeError(w, http.StatusBadRequest, "Invalid size")
			return
		}
		size = n
	}

	img, contentType, err := h.service.QRCode(r.Context(), code, size)
	if err != nil {
		if errors.Is(err, services.ErrLinkNotFound) {
			writeError(w, http.StatusNotFound, notFoundMessage)
			return
		}
		log.Printf("QR code for %s failed: %v", code, err)
		writeError(w, http.StatusBadGateway, "Could not generate QR code")
		return
	}

	w.Header().Set("Content-Type", contentType)
	if download {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="qrcode-%s.png"`, code))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}

// Redirect resolves /{code}
func (h *HTTPHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, domain.Target{Fragment: r.PathValue("code"), Query: r.URL.Query()})
}

// Home handles the legacy /?short=<code> form and otherwise describes the service
func (h *HTTPHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("short") != "" {
		h.resolve(w, r, domain.Target{Query: r.URL.Query()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"name":    "linkmaker",
		"shorten": "POST /api/v1/links",
	})
}

func (h *HTTPHandler) resolve(w http.ResponseWriter, r *http.Request, target domain.Target) {
	res := h.service.Resolve(r.Context(), target, &redirectNavigator{w: w, r: r})
	switch res.Status {
	case domain.StatusRedirected:
	case domain.StatusNotFound:
		writeError(w, http.StatusNotFound, notFoundMessage)
	default:
		writeError(w, http.StatusBadRequest, "Short code missing")
	}
}

// actor names the signed-in user for audit lines. Routes outside the auth
// middleware have no identity.
func actor(r *http.Request) string {
	if id, ok := IdentityFromContext(r.Context()); ok {
		return id.Email
	}
	return "anonymous"
}

func (h *HTTPHandler) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrLinkNotFound) {
		writeError(w, http.StatusNotFound, notFoundMessage)
		return
	}
	log.Printf("Request failed: %v", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// redirectNavigator answers the request with a redirect that browsers do
// not cache, so the short link keeps counting clicks.
type redirectNavigator struct {
	w    http.ResponseWriter
	r    *http.Request
	done bool
}

func (n *redirectNavigator) Navigate(ctx context.Context, destination string) error {
	if n.done {
		return errors.New("response already written")
	}
	n.done = true
	n.w.Header().Set("Cache-Control", "no-store")
	http.Redirect(n.w, n.r, destination, http.StatusFound)
	return nil
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func logRequest(r *http.Request, status int, elapsed time.Duration) {
	log.Printf("%s %s %d %s", r.Method, r.URL.Path, status, elapsed.Round(time.Microsecond))
}
