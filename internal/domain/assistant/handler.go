package assistant

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/svr1m/PawCare-App/internal/middleware"
	"github.com/svr1m/PawCare-App/internal/ports/inference"

	"github.com/go-chi/chi/v5"
)

// maxImageBytes limita el upload de /api/identify.
const (
	maxImageBytes = 10 << 20
	maxFormBytes  = maxImageBytes + 1<<20
)

var errFileTooLarge = errors.New("uploaded file too large")

// errorPolicy define cómo responde cada feature ante una falla.
type errorPolicy int

const (
	// policyDetailed: 500 con el detalle del proveedor (chat).
	policyDetailed errorPolicy = iota
	// policyGeneric: 500 "Server error" sin datos parciales (tips).
	policyGeneric
	// policySilent: 200 con un valor por defecto (faqs).
	policySilent
	// policyCoded: 500 con un code distinto por tipo de falla (identify).
	policyCoded
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/api/chatbot", chatHandler(svc))
	r.Get("/api/tips", tipsHandler(svc))
	r.Get("/api/faqs", faqsHandler(svc))
	r.Post("/api/identify", identifyHandler(svc))
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type tipsResponse struct {
	Tips []string `json:"tips"`
}

type faqsResponse struct {
	FAQs []FAQ `json:"faqs"`
}

type identifyResponse struct {
	Breed string `json:"breed"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

// chatHandler godoc
// @Summary Chat con el asistente
// @Description Responde preguntas sobre perros. No requiere autenticación.
// @Tags assistant
// @Accept json
// @Produce json
// @Param payload body chatRequest true "Mensaje del usuario"
// @Success 200 {object} chatResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/chatbot [post]
func chatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
			writeError(w, http.StatusBadRequest, errorResponse{Error: "No message provided."})
			return
		}

		reply, err := svc.Chat(r.Context(), req.Message)
		if err != nil {
			svc.fail(w, r, policyDetailed, err, nil)
			return
		}

		writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
	}
}

// tipsHandler godoc
// @Summary Tips por raza
// @Description Genera tips de cuidado para la raza de la primera mascota del usuario.
// @Tags assistant
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} tipsResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/tips [get]
func tipsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}

		tips, err := svc.Tips(r.Context(), claims.UserID)
		if err != nil {
			svc.fail(w, r, policyGeneric, err, nil)
			return
		}

		writeJSON(w, http.StatusOK, tipsResponse{Tips: tips})
	}
}

// faqsHandler godoc
// @Summary FAQs por raza
// @Description Preguntas frecuentes para la raza de la primera mascota. Nunca falla: ante cualquier problema devuelve lista vacía.
// @Tags assistant
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} faqsResponse
// @Router /api/faqs [get]
func faqsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		empty := faqsResponse{FAQs: []FAQ{}}

		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeJSON(w, http.StatusOK, empty)
			return
		}

		faqs, err := svc.FAQs(r.Context(), claims.UserID)
		if err != nil {
			svc.fail(w, r, policySilent, err, empty)
			return
		}

		writeJSON(w, http.StatusOK, faqsResponse{FAQs: faqs})
	}
}

// identifyHandler godoc
// @Summary Identificar raza
// @Description Clasifica la raza del perro de la foto subida (campo multipart "file").
// @Tags assistant
// @Accept mpfd
// @Produce json
// @Param file formData file true "Foto del perro"
// @Success 200 {object} identifyResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/identify [post]
func identifyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		image, err := readUpload(w, r, "file")
		switch {
		case errors.Is(err, errFileTooLarge):
			writeError(w, http.StatusBadRequest, errorResponse{Error: "File too large", Code: "file_too_large"})
			return
		case err != nil || len(image) == 0:
			writeError(w, http.StatusBadRequest, errorResponse{Error: "No file uploaded", Code: "no_file"})
			return
		}

		breed, err := svc.IdentifyBreed(r.Context(), image)
		if err != nil {
			svc.fail(w, r, policyCoded, err, nil)
			return
		}

		writeJSON(w, http.StatusOK, identifyResponse{Breed: breed})
	}
}

func readUpload(w http.ResponseWriter, r *http.Request, field string) ([]byte, error) {
	if r.ContentLength > maxFormBytes {
		return nil, errFileTooLarge
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, errFileTooLarge
		}
		return nil, err
	}
	f, _, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageBytes {
		return nil, errFileTooLarge
	}
	return data, nil
}

// fail aplica la política de error de la feature. fallback solo se usa con policySilent.
func (s *Service) fail(w http.ResponseWriter, r *http.Request, policy errorPolicy, err error, fallback any) {
	fields := map[string]any{
		"path":  r.URL.Path,
		"error": err,
	}

	switch policy {
	case policySilent:
		s.log.Warn("assistant request degraded to fallback", fields)
		writeJSON(w, http.StatusOK, fallback)

	case policyGeneric:
		s.log.Error("assistant request failed", fields)
		writeError(w, http.StatusInternalServerError, errorResponse{Error: "Server error"})

	case policyDetailed:
		s.log.Error("assistant request failed", fields)
		writeError(w, http.StatusInternalServerError, detailedError(err))

	case policyCoded:
		resp := codedError(err)
		fields["code"] = resp.Code
		s.log.Error("assistant request failed", fields)
		writeError(w, http.StatusInternalServerError, resp)
	}
}

// detailedError: status no-2xx => body del proveedor; resto => texto del error.
func detailedError(err error) errorResponse {
	var uerr *inference.UpstreamError
	if errors.As(err, &uerr) && errors.Is(err, inference.ErrBadStatus) {
		details := uerr.Body
		if details == "" {
			details = uerr.Error()
		}
		return errorResponse{Error: "Together API error", Details: details}
	}
	return errorResponse{Error: "Server error", Details: err.Error()}
}

// codedError nunca incluye el body del proveedor.
func codedError(err error) errorResponse {
	switch {
	case errors.Is(err, inference.ErrInvalidJSON):
		return errorResponse{Error: "Invalid JSON response from Hugging Face", Code: "invalid_json"}
	case errors.Is(err, inference.ErrUnexpectedShape):
		return errorResponse{Error: "Unexpected model response structure", Code: "unexpected_structure"}
	case errors.Is(err, inference.ErrBadStatus):
		return errorResponse{Error: "Failed to predict breed", Code: "upstream_status"}
	case errors.Is(err, inference.ErrUnavailable):
		return errorResponse{Error: "Failed to predict breed", Code: "upstream_unavailable"}
	default:
		return errorResponse{Error: "Failed to predict breed", Code: "internal"}
	}
}

// writeJSON/writeError están duplicados intencionalmente en handlers de distintos
// módulos (pets/assistant) para no crear un paquete de helpers compartido todavía.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, resp errorResponse) {
	writeJSON(w, status, resp)
}
