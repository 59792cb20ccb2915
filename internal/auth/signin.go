package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"restaurant-panel/internal/errs"
)

const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// Credentials are what the login form submits.
type Credentials struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// SignInResult carries the tokens the dashboard client needs for the SSE and
// mutation endpoints.
type SignInResult struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	ExpiresIn    string `json:"expiresIn"`
	Error        struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithPassword exchanges email/password credentials for identity tokens
// at the session provider's REST endpoint. Provider rejections come back as
// AuthError with a message the login form can show inline.
func SignInWithPassword(client *http.Client, apiKey string, creds Credentials) (*SignInResult, error) {
	if apiKey == "" {
		return nil, errs.Transient("sign-in is not configured (missing web API key)")
	}

	body, _ := json.Marshal(signInRequest{
		Email:             creds.Email,
		Password:          creds.Senha,
		ReturnSecureToken: true,
	})

	req, err := http.NewRequest(http.MethodPost, signInEndpoint+"?key="+apiKey, bytes.NewBuffer(body))
	if err != nil {
		return nil, errs.Wrap(errs.KindTransient, "failed to build sign-in request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errs.Wrap(errs.KindTransient, "sign-in service unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrap(errs.KindTransient, "failed to read sign-in response", err)
	}

	var parsed signInResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, errs.Wrap(errs.KindTransient, "malformed sign-in response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifySignInError(parsed.Error.Message)
	}

	uid := parsed.LocalID
	if uid == "" {
		// Some provider responses omit localId; the token subject carries the
		// same UID.
		if sub, err := ExtractUserIDFromJWT(parsed.IDToken); err == nil {
			uid = sub
		}
	}

	return &SignInResult{
		UID:          uid,
		Email:        parsed.Email,
		IDToken:      parsed.IDToken,
		RefreshToken: parsed.RefreshToken,
		ExpiresIn:    parsed.ExpiresIn,
	}, nil
}

// classifySignInError maps the provider's error codes onto the inline
// messages the login form shows.
func classifySignInError(code string) error {
	switch {
	case strings.Contains(code, "INVALID_EMAIL"):
		return errs.Auth("invalid email address")
	case strings.Contains(code, "USER_DISABLED"):
		return errs.Auth("this account is disabled")
	case strings.Contains(code, "EMAIL_NOT_FOUND"):
		return errs.Auth("account not found")
	case strings.Contains(code, "INVALID_PASSWORD"), strings.Contains(code, "INVALID_LOGIN_CREDENTIALS"):
		return errs.Auth("incorrect email or password")
	case strings.Contains(code, "TOO_MANY_ATTEMPTS_TRY_LATER"):
		return errs.Auth("too many attempts, try again later")
	case code == "":
		return errs.Auth("sign-in failed")
	default:
		return errs.Auth(fmt.Sprintf("sign-in failed: %s", code))
	}
}
