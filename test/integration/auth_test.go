//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"assessment-genie/internal/model"
)

func TestSignupLoginAndMe(t *testing.T) {
	server := newTestServer(t, `{}`)

	session := signupAndLogin(t, server.URL, "lead@techcurators.in", "Password123!")
	require.Equal(t, model.RoleAdmin, session.User.Role)

	meResp := getJSON(t, server.URL+"/api/v1/auth/me", session.Token)
	require.Equal(t, http.StatusOK, meResp.StatusCode)

	var me model.AuthUser
	decodeData(t, decodeEnvelope(t, meResp), &me)
	require.Equal(t, "lead@techcurators.in", me.Email)
	require.Equal(t, model.RoleAdmin, me.Role)
}

func TestSignupRejectsInvalidEmailAndDuplicate(t *testing.T) {
	server := newTestServer(t, `{}`)

	badResp := postJSON(t, server.URL+"/api/v1/auth/signup", map[string]string{"email": "nope", "password": "x"}, "")
	require.Equal(t, http.StatusBadRequest, badResp.StatusCode)
	env := decodeEnvelope(t, badResp)
	require.Equal(t, "INVALID_EMAIL_FORMAT", env.Error.Code)

	okResp := postJSON(t, server.URL+"/api/v1/auth/signup", map[string]string{"email": "someone@example.com", "password": "Password123!"}, "")
	require.Equal(t, http.StatusCreated, okResp.StatusCode)
	_ = okResp.Body.Close()

	dupResp := postJSON(t, server.URL+"/api/v1/auth/signup", map[string]string{"email": "someone@example.com", "password": "Password123!"}, "")
	require.Equal(t, http.StatusConflict, dupResp.StatusCode)
	dupEnv := decodeEnvelope(t, dupResp)
	require.Equal(t, "ALREADY_EXISTS", dupEnv.Error.Code)
}

func TestLoginErrorIsIdenticalForUnknownEmailAndWrongPassword(t *testing.T) {
	server := newTestServer(t, `{}`)

	okResp := postJSON(t, server.URL+"/api/v1/auth/signup", map[string]string{"email": "someone@example.com", "password": "Password123!"}, "")
	require.Equal(t, http.StatusCreated, okResp.StatusCode)
	_ = okResp.Body.Close()

	wrongPassword := postJSON(t, server.URL+"/api/v1/auth/login", map[string]string{"email": "someone@example.com", "password": "wrong"}, "")
	unknownEmail := postJSON(t, server.URL+"/api/v1/auth/login", map[string]string{"email": "nobody@example.com", "password": "Password123!"}, "")

	require.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.StatusCode)

	wrongEnv := decodeEnvelope(t, wrongPassword)
	unknownEnv := decodeEnvelope(t, unknownEmail)
	require.Equal(t, wrongEnv.Error.Code, unknownEnv.Error.Code)
	require.Equal(t, wrongEnv.Error.Message, unknownEnv.Error.Message)
}

func TestGoogleSignIn(t *testing.T) {
	server := newTestServer(t, `{"sub":"1234","email":"abcdef@gmail.com","name":"Some One","picture":"https://example.com/p.jpg"}`)

	resp := postJSON(t, server.URL+"/api/v1/auth/google", map[string]string{"token": "provider-token"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session model.Session
	decodeData(t, decodeEnvelope(t, resp), &session)
	require.Equal(t, "abcdef@gmail.com", session.User.Email)
	require.Equal(t, model.RoleUser, session.User.Role)
	require.Equal(t, "Some One", session.User.Name)

	// The same identity signs in again and lands on the same account.
	again := postJSON(t, server.URL+"/api/v1/auth/google", map[string]string{"token": "provider-token"}, "")
	require.Equal(t, http.StatusOK, again.StatusCode)

	var second model.Session
	decodeData(t, decodeEnvelope(t, again), &second)
	require.Equal(t, session.User.ID, second.User.ID)
}

func TestGoogleSignInRejectsNonGmail(t *testing.T) {
	server := newTestServer(t, `{"sub":"1234","email":"someone@example.com","name":"Some One"}`)

	resp := postJSON(t, server.URL+"/api/v1/auth/google", map[string]string{"token": "provider-token"}, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	require.Equal(t, "NON_GMAIL_ACCOUNT", env.Error.Code)
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	server := newTestServer(t, `{}`)

	meResp := getJSON(t, server.URL+"/api/v1/auth/me", "")
	require.Equal(t, http.StatusUnauthorized, meResp.StatusCode)
	_ = meResp.Body.Close()

	blueprintResp := getJSON(t, server.URL+"/api/v1/blueprints", "")
	require.Equal(t, http.StatusUnauthorized, blueprintResp.StatusCode)
	_ = blueprintResp.Body.Close()
}
