package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"blog-api/metrics"

	"github.com/gorilla/mux"
	"github.com/umakantv/go-utils/cache"
	"github.com/umakantv/go-utils/errs"
	"github.com/umakantv/go-utils/httpserver"
	logger "github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

const (
	msgInternalError   = "An error occurred"
	msgUnauthenticated = "Unauthenticated."
	msgInvalidData     = "The given data was invalid."
)

// listTTL bounds how long a list can lag behind a write that another
// replica, or a request racing the invalidation, missed.
const listTTL = 30 * time.Second

// messageResponse is the body of every non-validation error.
type messageResponse struct {
	Message string `json:"message"`
}

type validationResponse struct {
	Message string           `json:"message"`
	Errors  ValidationErrors `json:"errors"`
}

// logRequest logs with the route, method, path, request id and caller
// pulled from the request context, plus any extra fields.
func logRequest(ctx context.Context, level string, message string, fields ...zap.Field) {
	routeName := httpserver.GetRouteName(ctx)
	method := httpserver.GetRouteMethod(ctx)
	path := httpserver.GetRoutePath(ctx)
	auth := httpserver.GetRequestAuth(ctx)

	logMsg := time.Now().Format("2006-01-02 15:04:05") + " - " + routeName + " - " + method + " - " + path
	if auth != nil && auth.Client != "" {
		logMsg += " - client:" + auth.Client
	}
	if message != "" {
		logMsg += " - " + message
	}

	allFields := append([]zap.Field{
		zap.String("route", routeName),
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestIDFrom(ctx)),
	}, fields...)

	switch level {
	case "info":
		logger.Info(logMsg, allFields...)
	case "error":
		logger.Error(logMsg, allFields...)
	case "debug":
		logger.Debug(logMsg, allFields...)
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
	metrics.ObserveResponse(httpserver.GetRouteName(ctx), status)
}

// writeRaw writes an already encoded JSON body, e.g. from the cache.
func writeRaw(ctx context.Context, w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
	metrics.ObserveResponse(httpserver.GetRouteName(ctx), status)
}

func writeMessage(ctx context.Context, w http.ResponseWriter, status int, message string) {
	writeJSON(ctx, w, status, messageResponse{Message: message})
}

func writeNoContent(ctx context.Context, w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
	metrics.ObserveResponse(httpserver.GetRouteName(ctx), http.StatusNoContent)
}

func writeValidation(ctx context.Context, w http.ResponseWriter, verrs ValidationErrors) {
	logRequest(ctx, "info", "Validation failed", zap.Strings("fields", verrs.Fields()))
	writeJSON(ctx, w, http.StatusUnprocessableEntity, validationResponse{Message: msgInvalidData, Errors: verrs})
}

// writeInternalError logs err and answers with the generic 500 body.
func writeInternalError(ctx context.Context, w http.ResponseWriter, message string, err error) {
	logRequest(ctx, "error", message, zap.Error(err))
	writeMessage(ctx, w, http.StatusInternalServerError, msgInternalError)
}

// decodeBody decodes the JSON body into dst. An empty body decodes to the
// zero value so that missing fields are reported by validation. On a
// malformed body it writes 400 {"message":"Invalid JSON"} and returns false.
func decodeBody(ctx context.Context, w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	logRequest(ctx, "error", "Invalid request body", zap.Error(err))
	appErr := errs.NewValidationError("Invalid JSON")
	writeMessage(ctx, w, int(appErr.Code), appErr.Message)
	return false
}

// pathID reads the {id} route variable. Non-numeric ids are reported as
// absent, the same as ids that match no row.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// cachedBody returns a cached JSON body, if any. Backends that decode JSON
// on read hand back maps or slices; those are encoded again.
func cachedBody(c cache.Cache, key string) ([]byte, bool) {
	cached, err := c.Get(key)
	if err != nil || cached == nil {
		return nil, false
	}
	switch body := cached.(type) {
	case string:
		return []byte(body), true
	case []byte:
		return body, true
	default:
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, false
		}
		return encoded, true
	}
}

// cacheBody stores an encoded JSON body as a string.
func cacheBody(ctx context.Context, c cache.Cache, key string, body []byte, ttl time.Duration) {
	if err := c.Set(key, string(body), ttl); err != nil {
		logRequest(ctx, "debug", "Cache write failed", zap.String("key", key), zap.Error(err))
	}
}
