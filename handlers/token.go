package handlers

import (
	"context"
	"errors"
	"net/http"

	"blog-api/auth"
	"blog-api/metrics"
	"blog-api/models"

	"go.uber.org/zap"
)

// msgBadCredentials is the same for an unknown email and a wrong password.
const msgBadCredentials = "The credentials do not match our records"

// TokenHandler exchanges email/password for a personal access token.
type TokenHandler struct {
	issuer *auth.Issuer
}

func NewTokenHandler(issuer *auth.Issuer) *TokenHandler {
	return &TokenHandler{issuer: issuer}
}

// IssueToken handles POST /token
// The plaintext token appears in this response and nowhere else
func (h *TokenHandler) IssueToken(ctx context.Context, _ auth.Principal, w http.ResponseWriter, r *http.Request) {
	logRequest(ctx, "info", "Token request")

	var req models.TokenRequest
	if !decodeBody(ctx, w, r, &req) {
		return
	}

	if verrs := validateStruct(req); len(verrs) > 0 {
		metrics.LoginFailures.WithLabelValues("validation").Inc()
		writeValidation(ctx, w, verrs)
		return
	}

	issued, err := h.issuer.Issue(ctx, req.Email, req.Password, req.DeviceName)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		metrics.LoginFailures.WithLabelValues("invalid_credentials").Inc()
		logRequest(ctx, "info", "Invalid credentials", zap.String("email", req.Email))
		writeMessage(ctx, w, http.StatusUnauthorized, msgBadCredentials)
		return
	}
	if err != nil {
		writeInternalError(ctx, w, "Token issuance failed", err)
		return
	}

	metrics.TokensIssued.Inc()
	logRequest(ctx, "info", "Token issued",
		zap.Int64("user_id", issued.User.ID),
		zap.Int64("token_id", issued.Token.ID),
		zap.String("device_name", issued.Token.Name))

	writeJSON(ctx, w, http.StatusOK, models.TokenResponse{
		Data:  models.TokenResponseData{Attributes: issued.User.Attributes()},
		Token: issued.PlainText,
	})
}
