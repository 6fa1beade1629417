// Package httpserver wires the HTTP surface: the health check, the session
// websocket and the document upload routes.
package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"vozbot/internal/config"
	"vozbot/internal/gateway"
	"vozbot/internal/notify"
	"vozbot/internal/session"
	"vozbot/internal/upload"
)

// Server bundles the HTTP router and dependencies.
type Server struct {
	Router   http.Handler
	Sessions *session.Manager
}

// noticeResponse mirrors the transient notices the client renders, so upload
// results present the same way as in-conversation notices.
type noticeResponse struct {
	Kind       string `json:"kind"`
	Text       string `json:"text"`
	Icon       string `json:"icon"`
	Color      string `json:"color"`
	DurationMs int64  `json:"durationMs"`
	Key        string `json:"key,omitempty"`
}

func notice(kind notify.Kind, text string) noticeResponse {
	return noticeResponse{
		Kind:       string(kind),
		Text:       text,
		Icon:       kind.Icon(),
		Color:      kind.Color(),
		DurationMs: notify.Duration.Milliseconds(),
	}
}

// New constructs the HTTP server with routes, connecting Supabase storage
// when credentials are configured.
func New(cfg config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	var storage upload.Storage
	if cfg.SupabaseURL != "" && cfg.SupabaseServiceKey != "" {
		s, err := upload.NewSupabaseStorage(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseBucket)
		if err != nil {
			logger.Warn("supabase storage unavailable", zap.Error(err))
		} else {
			storage = s
		}
	}
	return NewWithStorage(cfg, storage, logger)
}

// NewWithStorage constructs the HTTP server against an explicit storage
// backend. storage may be nil, in which case uploads are validated only.
func NewWithStorage(cfg config.Config, storage upload.Storage, logger *zap.Logger) *Server {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	log := logger.With(zap.String("component", "http"))

	uploads := upload.NewService(storage, logger)

	manager := session.NewManager()
	gw := gateway.NewHandler(manager, gateway.SpeechConfig{
		APIKey: cfg.DeepgramAPIKey,
		Model:  cfg.DeepgramModel,
		Locale: cfg.SpeechLocale,
	}, session.Delays{}, logger)

	e := newRouter()
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/session", echo.WrapHandler(gw))
	e.POST("/upload/logo", handleLogoUpload(uploads))
	e.POST("/upload/document/:kind", handleDocumentUpload(uploads))
	e.POST("/form", handleFormSubmit(manager, log))

	return &Server{Router: e, Sessions: manager}
}

func handleLogoUpload(uploads *upload.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		// Logos carry no size cap, so the body is read in full.
		data, filename, contentType, err := readUploadedFile(c, 0)
		if err != nil {
			return c.JSON(http.StatusBadRequest, notice(notify.Error, "No se recibió ningún archivo."))
		}
		key, err := uploads.StoreLogo(sessionParam(c), filename, contentType, data)
		if err != nil {
			return uploadErrorResponse(c, err)
		}
		resp := notice(notify.Success, "Logo cargado correctamente")
		resp.Key = key
		return c.JSON(http.StatusOK, resp)
	}
}

func handleDocumentUpload(uploads *upload.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		data, filename, contentType, err := readUploadedFile(c, upload.MaxDocumentSize+1)
		if err != nil {
			return c.JSON(http.StatusBadRequest, notice(notify.Error, "No se recibió ningún archivo."))
		}
		key, err := uploads.StoreDocument(sessionParam(c), c.Param("kind"), filename, contentType, data)
		if err != nil {
			return uploadErrorResponse(c, err)
		}
		resp := notice(notify.Success, "Documento cargado correctamente")
		resp.Key = key
		return c.JSON(http.StatusOK, resp)
	}
}

// handleFormSubmit records the final form values against the session when
// one is named, then acknowledges the way the wizard does.
func handleFormSubmit(manager *session.Manager, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var values map[string]string
		if err := c.Bind(&values); err != nil {
			return c.JSON(http.StatusBadRequest, notice(notify.Error, "Formulario inválido."))
		}
		if sess, ok := manager.Get(sessionParam(c)); ok {
			for name, value := range values {
				sess.HandleFieldInput(name, value)
			}
		}
		log.Info("form submitted", zap.Int("fields", len(values)))
		return c.JSON(http.StatusOK, notice(notify.Success, "Formulario enviado correctamente"))
	}
}

func sessionParam(c echo.Context) string {
	if s := c.QueryParam("session"); s != "" {
		return s
	}
	if s := c.FormValue("session"); s != "" {
		return s
	}
	return "anonymous"
}

// readUploadedFile pulls the multipart "file" part into memory. A positive
// limit caps the read just past it, so an oversized upload still trips the
// size validation without buffering the whole body; limit <= 0 reads the
// full part.
func readUploadedFile(c echo.Context, limit int64) (data []byte, filename, contentType string, err error) {
	hdr, err := c.FormFile("file")
	if err != nil {
		return nil, "", "", err
	}
	src, err := hdr.Open()
	if err != nil {
		return nil, "", "", err
	}
	defer func() { _ = src.Close() }()
	var r io.Reader = src
	if limit > 0 {
		r = io.LimitReader(src, limit)
	}
	data, err = io.ReadAll(r)
	if err != nil {
		return nil, "", "", err
	}
	return data, hdr.Filename, hdr.Header.Get("Content-Type"), nil
}

func uploadErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, upload.ErrTooLarge):
		return c.JSON(http.StatusRequestEntityTooLarge, notice(notify.Error, "El archivo es demasiado grande. Máximo 8MB."))
	case errors.Is(err, upload.ErrNotPDF):
		return c.JSON(http.StatusBadRequest, notice(notify.Error, "Solo se permiten archivos PDF."))
	case errors.Is(err, upload.ErrNotImage):
		return c.JSON(http.StatusBadRequest, notice(notify.Error, "Solo se permiten archivos de imagen."))
	case errors.Is(err, upload.ErrUnknownKind):
		return c.JSON(http.StatusBadRequest, notice(notify.Error, "Tipo de documento desconocido."))
	default:
		return c.JSON(http.StatusInternalServerError, notice(notify.Error, "Error al guardar el archivo."))
	}
}
