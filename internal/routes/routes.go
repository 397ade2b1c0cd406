package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/haguru/resumatch/internal/credentialservice"
	"github.com/haguru/resumatch/internal/interfaces"
	"github.com/haguru/resumatch/internal/models/dto"
	"github.com/haguru/resumatch/internal/report"
	"github.com/haguru/resumatch/internal/session"
	"github.com/haguru/resumatch/internal/upload"

	structValidator "github.com/go-playground/validator/v10"
)

type Route struct {
	Metrics           interfaces.Metrics
	CredentialService interfaces.CredentialService
	Sessions          *session.Manager
	Analyzer          interfaces.Analyzer
	Uploads           *upload.Reader
	Renderer          *report.Renderer
	Logger            interfaces.Logger
	validator         *structValidator.Validate
}

// NewRoute creates a new Route instance.
func NewRoute(metrics interfaces.Metrics, credentialService interfaces.CredentialService,
	sessions *session.Manager, analyzer interfaces.Analyzer, uploads *upload.Reader,
	renderer *report.Renderer, logger interfaces.Logger, validator *structValidator.Validate,
) *Route {
	return &Route{
		Metrics:           metrics,
		CredentialService: credentialService,
		Sessions:          sessions,
		Analyzer:          analyzer,
		Uploads:           uploads,
		Renderer:          renderer,
		Logger:            logger,
		validator:         validator,
	}
}

// RegisterMetrics registers every metric the handlers record.
func RegisterMetrics(m interfaces.Metrics) {
	m.RegisterCounter(RegisterRequestsTotal, RegisterRequestsTotalHelp)
	m.RegisterCounter(RegisterSuccessTotal, RegisterSuccessTotalHelp)
	m.RegisterCounter(RegisterErrorsTotal, RegisterErrorsTotalHelp)
	m.RegisterHistogram(RegisterDurationSeconds, RegisterDurationSecondsHelp, RegisterDurationSecondsBuckets)

	m.RegisterCounter(LoginRequestsTotal, LoginRequestsTotalHelp)
	m.RegisterCounter(LoginSuccessTotal, LoginSuccessTotalHelp)
	m.RegisterCounter(LoginFailedTotal, LoginFailedTotalHelp)
	m.RegisterHistogram(LoginDurationSeconds, LoginDurationSecondsHelp, LoginDurationSecondsBuckets)

	m.RegisterCounter(LogoutTotal, LogoutTotalHelp)

	m.RegisterCounter(AnalyzeRequestsTotal, AnalyzeRequestsTotalHelp)
	m.RegisterCounter(AnalyzeSuccessTotal, AnalyzeSuccessTotalHelp)
	m.RegisterCounter(AnalyzeErrorsTotal, AnalyzeErrorsTotalHelp)
	m.RegisterHistogram(AnalyzeDurationSeconds, AnalyzeDurationSecondsHelp, AnalyzeDurationSecondsBuckets)
	m.RegisterHistogram(AnalysisScore, AnalysisScoreHelp, AnalysisScoreBuckets)
}

// Register handles account registration requests.
func (r *Route) Register(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w, req, http.MethodPost)
		return
	}
	r.incCounter(RegisterRequestsTotal)

	registerRequest := &dto.RegisterRequestDTO{}
	if !r.decodeJSON(w, req, registerRequest) {
		r.incCounter(RegisterErrorsTotal)
		return
	}

	startTime := time.Now()
	err := r.CredentialService.Register(req.Context(), registerRequest.Email, registerRequest.Password)
	r.observe(RegisterDurationSeconds, time.Since(startTime).Seconds())
	if err != nil {
		r.incCounter(RegisterErrorsTotal)
		if errors.Is(err, credentialservice.ErrAlreadyExists) {
			r.errorResponse(w, http.StatusConflict, ErrUserAlreadyExists, MsgUserAlreadyExists)
			return
		}
		r.Logger.Error("Registration failed", "user", registerRequest.Email, "error", err)
		r.errorResponse(w, http.StatusInternalServerError, ErrInternal, MsgInternalError)
		return
	}

	r.incCounter(RegisterSuccessTotal)
	r.jsonResponse(w, http.StatusCreated, &dto.RegisterResponseDTO{
		Message: MsgRegistrationSuccessful,
	})
}

// Login verifies credentials and starts a session.
func (r *Route) Login(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w, req, http.MethodPost)
		r.incCounter(LoginFailedTotal)
		return
	}
	r.incCounter(LoginRequestsTotal)

	loginRequest := &dto.LoginRequestDTO{}
	if !r.decodeJSON(w, req, loginRequest) {
		r.incCounter(LoginFailedTotal)
		return
	}

	startTime := time.Now()
	err := r.CredentialService.Verify(req.Context(), loginRequest.Email, loginRequest.Password)
	r.observe(LoginDurationSeconds, time.Since(startTime).Seconds())
	if err != nil {
		r.incCounter(LoginFailedTotal)
		if errors.Is(err, credentialservice.ErrInvalidCredentials) {
			r.errorResponse(w, http.StatusUnauthorized, ErrInvalidCredentials, MsgInvalidCredentials)
			return
		}
		r.Logger.Error("Login failed", "user", loginRequest.Email, "error", err)
		r.errorResponse(w, http.StatusInternalServerError, ErrInternal, MsgInternalError)
		return
	}

	started, err := r.Sessions.Start(w, loginRequest.Email)
	if err != nil {
		r.incCounter(LoginFailedTotal)
		r.Logger.Error("Failed to start session", "user", loginRequest.Email, "error", err)
		r.errorResponse(w, http.StatusInternalServerError, ErrInternal, MsgInternalError)
		return
	}

	r.incCounter(LoginSuccessTotal)
	r.jsonResponse(w, http.StatusOK, &dto.LoginResponseDTO{
		Message: MsgLoginSuccessful,
		User:    started.Identifier,
	})
}

// Logout ends the current session. Logging out without a session succeeds.
func (r *Route) Logout(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w, req, http.MethodPost)
		return
	}
	r.incCounter(LogoutTotal)

	current := session.FromContext(req.Context())
	if err := r.Sessions.End(req.Context(), w, current); err != nil {
		r.Logger.Error("Failed to end session", "user", current.Identifier, "error", err)
		r.errorResponse(w, http.StatusInternalServerError, ErrInternal, MsgInternalError)
		return
	}

	r.jsonResponse(w, http.StatusOK, &dto.LogoutResponseDTO{Message: MsgLogoutSuccessful})
}

// Menu lists the navigation entries for the current session.
func (r *Route) Menu(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w, req, http.MethodGet)
		return
	}

	current := session.FromContext(req.Context())
	menu := &dto.MenuResponseDTO{
		Authenticated: current.Authenticated,
		Items:         []string{MenuLogin, MenuRegister},
	}
	if current.Authenticated {
		menu.User = current.Identifier
		menu.Items = []string{MenuUploadAnalyze, MenuLogout}
	}

	r.jsonResponse(w, http.StatusOK, menu)
}

// Analyze scores an uploaded resume against an uploaded job description.
// The route is expected to be gated by an authenticated session.
func (r *Route) Analyze(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w, req, http.MethodPost)
		return
	}
	r.incCounter(AnalyzeRequestsTotal)

	if !hasMediaType(req.Header.Get(ContentType), ContentTypeMultipart) {
		r.incCounter(AnalyzeErrorsTotal)
		r.errorResponse(w, http.StatusBadRequest, ErrInvalidContentType, fmt.Sprintf(ErrInvalidContentTypeFormat, ContentTypeMultipart))
		return
	}

	docs, err := r.Uploads.Read(w, req)
	if err != nil {
		r.incCounter(AnalyzeErrorsTotal)
		r.Logger.Info("Rejected upload", "error", err)
		r.errorResponse(w, http.StatusBadRequest, ErrInvalidUpload, fmt.Sprintf("%s: %s", MsgInvalidUpload, err))
		return
	}

	current := session.FromContext(req.Context())
	response := dto.AnalysisResponseDTO{Ready: docs.Ready(), Missing: docs.Missing}
	if response.Ready {
		startTime := time.Now()
		result := r.Analyzer.Analyze(docs.Resume, docs.JobDescription)
		r.observe(AnalyzeDurationSeconds, time.Since(startTime).Seconds())
		r.observe(AnalysisScore, result.Score)
		r.incCounter(AnalyzeSuccessTotal)

		response.Report = dto.NewAnalysisReport(result)
		r.Logger.Info("Analysis completed", "user", current.Identifier, "score", result.Score,
			"matching", len(result.MatchingSkills), "missing", len(result.MissingSkills))
	}

	if wantsHTML(req) && r.Renderer != nil {
		w.Header().Set(ContentType, ContentTypeHTML)
		w.WriteHeader(http.StatusOK)
		if err := r.Renderer.Render(w, current.Identifier, response); err != nil {
			r.Logger.Error("Failed to render report", "error", err)
		}
		return
	}

	r.jsonResponse(w, http.StatusOK, &response)
}

// decodeJSON checks the content type, decodes and validates the body.
// It writes the 400 response itself and reports false on failure.
func (r *Route) decodeJSON(w http.ResponseWriter, req *http.Request, target interface{}) bool {
	if !hasMediaType(req.Header.Get(ContentType), ContentTypeJson) {
		r.errorResponse(w, http.StatusBadRequest, ErrInvalidContentType, fmt.Sprintf(ErrInvalidContentTypeFormat, ContentTypeJson))
		return false
	}

	if err := json.NewDecoder(req.Body).Decode(target); err != nil {
		r.errorResponse(w, http.StatusBadRequest, ErrInvalidRequestBody, MsgInvalidRequestBody)
		return false
	}

	if err := r.validator.Struct(target); err != nil {
		var validationErrors structValidator.ValidationErrors
		if errors.As(err, &validationErrors) {
			r.errorResponse(w, http.StatusBadRequest, ErrValidationFailed, fmt.Sprintf("%s: %s", MsgValidationFailed, fieldNames(validationErrors)))
			return false
		}
		r.errorResponse(w, http.StatusBadRequest, ErrValidationFailed, MsgValidationFailed)
		return false
	}
	return true
}

func (r *Route) methodNotAllowed(w http.ResponseWriter, req *http.Request, allowed string) {
	w.Header().Set("Allow", allowed)
	r.errorResponse(w, http.StatusMethodNotAllowed, ErrMethodNotAllowed, fmt.Sprintf("%s: %s", MsgMethodNotAllowed, req.Method))
}

func (r *Route) jsonResponse(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set(ContentType, ContentTypeJson)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		r.Logger.Error(ErrFailedToEncodeResponse, "error", err)
	}
}

func (r *Route) errorResponse(w http.ResponseWriter, status int, errMsg, message string) {
	r.jsonResponse(w, status, &dto.ErrorResponseDTO{
		Error:   errMsg,
		Message: message,
	})
}

func (r *Route) incCounter(name string) {
	if r.Metrics != nil {
		r.Metrics.IncCounter(name)
	}
}

func (r *Route) observe(name string, value float64) {
	if r.Metrics != nil {
		r.Metrics.ObserveHistogram(name, value)
	}
}

// hasMediaType compares the media type of a Content-Type header, ignoring parameters.
func hasMediaType(header, want string) bool {
	mediaType, _, err := mime.ParseMediaType(header)
	return err == nil && mediaType == want
}

// wantsHTML reports whether the client listed text/html in its Accept header.
func wantsHTML(req *http.Request) bool {
	for _, accepted := range strings.Split(req.Header.Get(Accept), ",") {
		if hasMediaType(strings.TrimSpace(accepted), MediaTypeHTML) {
			return true
		}
	}
	return false
}

// fieldNames lists the JSON-facing names of the fields that failed validation.
func fieldNames(validationErrors structValidator.ValidationErrors) string {
	names := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		names = append(names, strings.ToLower(fieldErr.Field())+" ("+fieldErr.Tag()+")")
	}
	return strings.Join(names, ", ")
}
