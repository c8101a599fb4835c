package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/rs/cors"

	"vibeandbuild/internal/config"
	"vibeandbuild/internal/content"
	"vibeandbuild/internal/layout"
	"vibeandbuild/internal/logging"
	"vibeandbuild/internal/services"
)

// maxUploadBytes bounds multipart upload requests. The largest real asset is
// a short screen-capture video, well under this.
const maxUploadBytes = 64 << 20

type apiServer struct {
	bind   string
	token  string
	logger *slog.Logger
	daemon *Daemon
	gate   *Gate

	handler  http.Handler
	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) *apiServer {
	srv := &apiServer{
		bind:   strings.TrimSpace(cfg.Paths.APIBind),
		token:  strings.TrimSpace(cfg.Paths.APIToken),
		logger: logger,
		daemon: d,
		gate:   NewGate(cfg.Admin.Password),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/auth", srv.handleAdminAuth)
	mux.HandleFunc("/api/projects", srv.handleProjects)
	mux.HandleFunc("/api/experiments", srv.handleExperiments)
	mux.HandleFunc("/api/experiments/", srv.handleExperimentLayout)
	mux.HandleFunc("/api/wip-ideas", srv.handleWIPIdeas)
	mux.HandleFunc("/api/admin/save-projects", authMiddleware(srv.token, srv.handleSaveProjects))
	mux.HandleFunc("/api/admin/save-experiments", authMiddleware(srv.token, srv.handleSaveExperiments))
	mux.HandleFunc("/api/admin/save-wip-ideas", authMiddleware(srv.token, srv.handleSaveWIPIdeas))
	mux.HandleFunc("/api/admin/upload-image", authMiddleware(srv.token, srv.handleUploadImage))
	mux.HandleFunc("/api/admin/upload-experiment-image", authMiddleware(srv.token, srv.handleUploadExperimentImage))
	mux.HandleFunc("/api/admin/upload-experiment-video", authMiddleware(srv.token, srv.handleUploadExperimentVideo))
	mux.HandleFunc("/api/admin/delete-image", authMiddleware(srv.token, srv.handleDeleteImage))
	mux.HandleFunc("/api/subscribe", srv.handleSubscribe)
	mux.HandleFunc("/api/ideas", srv.handleIdeas)
	mux.HandleFunc("/api/status", srv.handleStatus)

	// Uploaded assets are served straight from the public tree under the
	// same paths the store records.
	imagesDir := filepath.Join(cfg.Paths.PublicDir, "images")
	videosDir := filepath.Join(cfg.Paths.PublicDir, "videos")
	mux.Handle("/images/", http.StripPrefix("/images/", http.FileServer(http.Dir(imagesDir))))
	mux.Handle("/videos/", http.StripPrefix("/videos/", http.FileServer(http.Dir(videosDir))))

	// The static site is served from a different origin, so the API stays
	// wide open; the bearer token, when configured, is the access control.
	srv.handler = cors.AllowAll().Handler(withRequestID(mux))

	srv.server = &http.Server{
		Handler:           srv.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

func (s *apiServer) start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *apiServer) handleAdminAuth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.gate.Authenticate(req.Password) {
		s.writeError(w, http.StatusUnauthorized, "invalid password")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *apiServer) handleProjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	projects, err := s.daemon.stores.Projects.Load(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if projects == nil {
		projects = []content.Project{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

func (s *apiServer) handleExperiments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	experiments, err := s.daemon.stores.Experiments.Load(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if experiments == nil {
		experiments = []content.Experiment{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"experiments": experiments})
}

func (s *apiServer) handleWIPIdeas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ideas, err := s.daemon.stores.Ideas.Load(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if ideas == nil {
		ideas = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"ideas": ideas})
}

func (s *apiServer) handleSaveProjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Projects []content.Project `json:"projects"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.daemon.stores.Projects.Save(r.Context(), req.Projects); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.log().Info("projects saved", logging.Int("count", len(req.Projects)))
	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *apiServer) handleSaveExperiments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Experiments []content.Experiment `json:"experiments"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.daemon.stores.Experiments.Save(r.Context(), req.Experiments); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.log().Info("experiments saved", logging.Int("count", len(req.Experiments)))
	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *apiServer) handleSaveWIPIdeas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Ideas []string `json:"ideas"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.daemon.stores.Ideas.Save(r.Context(), req.Ideas); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *apiServer) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	data, _, owner, err := readUpload(w, r, "image", "projectId")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ingested, err := s.daemon.ingestor.IngestProjectImage(owner, data)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.log().Info("project image stored",
		logging.String("project", owner),
		logging.String("file", ingested.Name))
	s.writeJSON(w, http.StatusOK, map[string]string{
		"path":     ingested.Path,
		"filename": ingested.Name,
	})
}

func (s *apiServer) handleUploadExperimentImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	data, _, owner, err := readUpload(w, r, "image", "experimentId")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ingested, err := s.daemon.ingestor.IngestExperimentImage(owner, data)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.log().Info("experiment image stored",
		logging.String("experiment", owner),
		logging.String("file", ingested.Name))
	s.writeJSON(w, http.StatusOK, map[string]any{
		"path":       ingested.Path,
		"imageIndex": ingested.Index,
	})
}

func (s *apiServer) handleUploadExperimentVideo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	data, uploadName, owner, err := readUpload(w, r, "video", "experimentId")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ingested, err := s.daemon.ingestor.IngestExperimentVideo(owner, data, uploadName)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.log().Info("experiment video stored",
		logging.String("experiment", owner),
		logging.String("file", ingested.Name))
	s.writeJSON(w, http.StatusOK, map[string]string{
		"path":     ingested.Path,
		"fileName": ingested.Name,
	})
}

func (s *apiServer) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		ImagePath string `json:"imagePath"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.daemon.ingestor.Delete(req.ImagePath); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.log().Info("image deleted", logging.String("path", req.ImagePath))
	s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *apiServer) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.daemon.captures.Subscribe(r.Context(), req.Email); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "successfully subscribed",
	})
}

func (s *apiServer) handleIdeas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.daemon.captures.SubmitIdea(r.Context(), req.Text); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "idea received",
	})
}

func (s *apiServer) handleExperimentLayout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/experiments/")
	indexStr, ok := strings.CutSuffix(rest, "/layout")
	if !ok || indexStr == "" || strings.Contains(indexStr, "/") {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid experiment index")
		return
	}

	experiments, err := s.daemon.stores.Experiments.Load(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	for _, exp := range experiments {
		if number, ok := exp.Number(); ok && number == index {
			s.writeJSON(w, http.StatusOK, map[string]any{
				"blocks": layout.Blocks(index, exp.Text, exp.Images),
			})
			return
		}
	}
	s.writeError(w, http.StatusNotFound, "experiment not found")
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, s.daemon.Status(r.Context()))
}

// readUpload parses a multipart upload and returns the file bytes, the
// uploaded filename, and the owner id form value.
func readUpload(w http.ResponseWriter, r *http.Request, fileField, ownerField string) ([]byte, string, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, "", "", errors.New("invalid multipart request")
	}
	owner := strings.TrimSpace(r.FormValue(ownerField))
	if owner == "" {
		return nil, "", "", fmt.Errorf("missing %s", ownerField)
	}
	file, header, err := r.FormFile(fileField)
	if err != nil {
		return nil, "", "", fmt.Errorf("missing %s file", fileField)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", "", errors.New("failed to read upload")
	}
	return data, header.Filename, owner, nil
}

func decodeJSON(r *http.Request, target any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	return json.NewDecoder(r.Body).Decode(target)
}

// withRequestID tags every request with a correlation id, echoed back in the
// response headers and threaded through the context for failure logs.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(services.WithRequestID(r.Context(), id)))
	})
}

func (s *apiServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := services.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		attrs := []logging.Attr{
			logging.String("path", r.URL.Path),
			logging.String("remote", remoteHost(r)),
			logging.Error(err),
		}
		if id, ok := services.RequestIDFromContext(r.Context()); ok {
			attrs = append(attrs, logging.String("request_id", id))
		}
		s.log().Error("request failed", logging.Args(attrs...)...)
	}
	s.writeError(w, status, services.UserMessage(err))
}

func remoteHost(r *http.Request) string {
	if addrPort, err := netip.ParseAddrPort(r.RemoteAddr); err == nil {
		return addrPort.Addr().String()
	}
	return r.RemoteAddr
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *apiServer) log() *slog.Logger {
	if s.logger != nil {
		return logging.NewComponentLogger(s.logger, "api-server")
	}
	return logging.NewNop()
}
