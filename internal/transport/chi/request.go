package chi

import (
	"errors"
	"net/http"
	"sync"

	gochi "github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/cinefind/internal/logger"
)

// MaxQueryLength is the longest accepted search text, in characters.
const MaxQueryLength = 500

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// SearchRequest is the POST /api/search body.
type SearchRequest struct {
	Query string `json:"query" validate:"required,max=500"`
}

// validate returns the client message for an invalid request.
func (req *SearchRequest) validate() (string, bool) {
	err := getValidator().Struct(req)
	if err == nil {
		return "", true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "max" {
		return msgQueryTooLong, false
	}
	return msgQueryRequired, false
}

// idParam binds the {id} path parameter. Writes a 400 and returns false on failure.
func (s *Server) idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	var id int
	err := runtime.BindStyledParameterWithOptions("simple", "id", gochi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil || id <= 0 {
		s.requestLogger(r).Debug("invalid id parameter", zap.String("id", gochi.URLParam(r, "id")), zap.Error(err))
		writeError(w, http.StatusBadRequest, codeBadRequest, msgInvalidRequest)
		return 0, false
	}
	return id, true
}

// pageParam binds the optional page query parameter. A missing page is 0, which the services read as the first page.
func (s *Server) pageParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	var page *int
	if err := runtime.BindQueryParameter("form", true, false, "page", r.URL.Query(), &page); err != nil {
		s.requestLogger(r).Debug("invalid page parameter", zap.Error(err))
		writeError(w, http.StatusBadRequest, codeBadRequest, msgInvalidRequest)
		return 0, false
	}
	if page == nil {
		return 0, true
	}
	return *page, true
}

// requestLogger prefers the per-request logger and falls back to the server logger.
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	if l := logpkg.FromContext(r.Context()); l.Core().Enabled(zap.ErrorLevel) {
		return l
	}
	return s.logger
}
