package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dpiportal/models"
)

func TestSignIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		if in["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Invalid credentials"}`)
			return
		}
		_, _ = io.WriteString(w, `{"access_token":"abc","user":{"id":7,"email":"a@b.ng","role":"admin"}}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL + "/api/v1/")
	res, err := c.SignIn(context.Background(), "a@b.ng", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc", res.Token)
	assert.Equal(t, 7, res.Profile.ID)

	_, err = c.SignIn(context.Background(), "a@b.ng", "wrong")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestListUsersShapes(t *testing.T) {
	for name, payload := range map[string]string{
		"bare":    `[{"id":1,"email":"x@y.ng","is_active":true}]`,
		"wrapped": `{"data":[{"id":1,"email":"x@y.ng","is_active":true}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
				_, _ = io.WriteString(w, payload)
			}))
			defer srv.Close()

			users, err := NewHTTPClient(srv.URL).ListUsers(context.Background(), "tok")
			require.NoError(t, err)
			require.Len(t, users, 1)
			assert.Equal(t, models.AdminUser{ID: 1, Email: "x@y.ng", IsActive: true}, users[0])
		})
	}
}

func TestMutationPaths(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodPost && r.URL.Path == "/admin/users" {
			_, _ = io.WriteString(w, `{"id":9,"email":"new@x.ng"}`)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	ctx := context.Background()
	created, err := c.CreateUser(ctx, "t", models.AdminUserInput{Email: "new@x.ng"})
	require.NoError(t, err)
	assert.Equal(t, 9, created.ID)
	require.NoError(t, c.ActivateUser(ctx, "t", 9))
	require.NoError(t, c.DeactivateUser(ctx, "t", 9))
	require.NoError(t, c.ResetPassword(ctx, "t", 9, "n3w"))
	require.NoError(t, c.DeleteUser(ctx, "t", 9))

	assert.Equal(t, []string{
		"POST /admin/users",
		"POST /admin/users/9/activate",
		"POST /admin/users/9/deactivate",
		"POST /admin/users/9/reset-password",
		"DELETE /admin/users/9",
	}, seen)
}

func TestMessageFrom(t *testing.T) {
	tests := map[string]string{
		`{"message":"Email taken"}`:                         "Email taken",
		`{"error":"forbidden"}`:                             "forbidden",
		`{"detail":[{"msg":"field required"},{"msg":"x"}]}`: "field required; x",
		`{"errors":["a","b"]}`:                              "a; b",
		`plain text failure`:                                "plain text failure",
		`{"other":1}`:                                       "",
	}
	for in, want := range tests {
		assert.Equal(t, want, messageFrom([]byte(in)), in)
	}
}

func TestMessageFromTruncatesOnRuneBoundary(t *testing.T) {
	body := strings.Repeat("a", 199) + strings.Repeat("₦", 10)
	msg := messageFrom([]byte(body))
	assert.True(t, utf8.ValidString(msg))
	assert.Equal(t, 200, utf8.RuneCountInString(msg))
	assert.True(t, strings.HasSuffix(msg, "a₦"))

	assert.Equal(t, "Bad Gateway", messageFrom([]byte("  Bad Gateway \n")))
}
