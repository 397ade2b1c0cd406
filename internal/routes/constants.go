package routes

var (
	RegisterDurationSecondsBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	LoginDurationSecondsBuckets    = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	AnalyzeDurationSecondsBuckets  = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
	AnalysisScoreBuckets           = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
)

const (
	// API route constants
	RegisterRouteAPI = "/register"
	LoginRouteAPI    = "/login"
	LogoutRouteAPI   = "/logout"
	MenuRouteAPI     = "/menu"
	AnalyzeRouteAPI  = "/analyze"
	MetricsRouteAPI  = "/metrics"

	// Content-Type constants
	ContentType          = "Content-Type"
	ContentTypeJson      = "application/json"
	ContentTypeHTML      = "text/html; charset=utf-8"
	ContentTypeMultipart = "multipart/form-data"
	Accept               = "Accept"
	MediaTypeHTML        = "text/html"

	// menu entries
	MenuLogin         = "Login"
	MenuRegister      = "Register"
	MenuUploadAnalyze = "Upload & Analyze"
	MenuLogout        = "Logout"

	// message constants
	MsgRegistrationSuccessful = "Registration successful! Please login."
	MsgLoginSuccessful        = "Login successful"
	MsgLogoutSuccessful       = "Logged out successfully"
	MsgUserAlreadyExists      = "User already exists"
	MsgInvalidCredentials     = "Invalid credentials"
	MsgMethodNotAllowed       = "Method not allowed"
	MsgInvalidRequestBody     = "Invalid request body"
	MsgValidationFailed       = "Request data validation failed"
	MsgInternalError          = "Something went wrong, please try again"
	MsgInvalidUpload          = "Uploaded documents could not be read"

	// Error messages
	ErrMethodNotAllowed         = "method not allowed"
	ErrInvalidContentType       = "invalid content type"
	ErrInvalidRequestBody       = "invalid request body"
	ErrValidationFailed         = "data validation failed"
	ErrUserAlreadyExists        = "user already exists"
	ErrInvalidCredentials       = "invalid credentials"
	ErrInternal                 = "internal error"
	ErrInvalidUpload            = "invalid upload"
	ErrFailedToEncodeResponse   = "failed to encode response"
	ErrInvalidContentTypeFormat = "Request Content-Type must be %s"

	// metrics constants
	RegisterRequestsTotal       = "register_requests_total"
	RegisterRequestsTotalHelp   = "Total number of registration requests received"
	RegisterSuccessTotal        = "register_success_total"
	RegisterSuccessTotalHelp    = "Total number of successful registrations"
	RegisterErrorsTotal         = "register_errors_total"
	RegisterErrorsTotalHelp     = "Total number of failed registration requests"
	RegisterDurationSeconds     = "register_duration_seconds"
	RegisterDurationSecondsHelp = "Duration of registration requests in seconds"
	LoginRequestsTotal          = "login_requests_total"
	LoginRequestsTotalHelp      = "Total number of login requests received"
	LoginSuccessTotal           = "login_success_total"
	LoginSuccessTotalHelp       = "Total number of successful login requests"
	LoginFailedTotal            = "login_failed_total"
	LoginFailedTotalHelp        = "Total number of failed login requests"
	LoginDurationSeconds        = "login_duration_seconds"
	LoginDurationSecondsHelp    = "Duration of login requests in seconds"
	LogoutTotal                 = "logout_total"
	LogoutTotalHelp             = "Total number of logout requests"
	AnalyzeRequestsTotal        = "analyze_requests_total"
	AnalyzeRequestsTotalHelp    = "Total number of analyze requests received"
	AnalyzeSuccessTotal         = "analyze_success_total"
	AnalyzeSuccessTotalHelp     = "Total number of completed analyses"
	AnalyzeErrorsTotal          = "analyze_errors_total"
	AnalyzeErrorsTotalHelp      = "Total number of rejected analyze requests"
	AnalyzeDurationSeconds      = "analyze_duration_seconds"
	AnalyzeDurationSecondsHelp  = "Duration of analyses in seconds"
	AnalysisScore               = "analysis_score"
	AnalysisScoreHelp           = "Distribution of resume to job description match scores"
)
