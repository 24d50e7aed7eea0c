package introspect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/svr1m/PawCare-App/internal/ports/auth"
)

func newTestVerifier(t *testing.T, h http.HandlerFunc) *Verifier {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	v, err := NewVerifier(Config{URL: ts.URL + "/introspect", APIKey: "svc-key", Timeout: time.Second})
	require.NoError(t, err)
	return v
}

func TestNewVerifier_RequiresURL(t *testing.T) {
	_, err := NewVerifier(Config{})
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestVerify_Active(t *testing.T) {
	var gotToken, gotKey, gotAuth string
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotToken = body["token"]
		gotKey = r.Header.Get("X-Api-Key")
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"active":true,"sub":"user-1","email":" a@b.c "}`))
	})

	claims, err := v.Verify(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, auth.Claims{UserID: "user-1", Email: "a@b.c"}, claims)
	require.Equal(t, "tok", gotToken)
	require.Equal(t, "svc-key", gotKey)
	require.Equal(t, "Bearer tok", gotAuth)
}

func TestVerify_UserIDFallback(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user_id":"user-7"}`))
	})

	claims, err := v.Verify(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, "user-7", claims.UserID)
}

func TestVerify_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"inactive", http.StatusOK, `{"active":false,"sub":"user-1"}`, auth.ErrInvalidToken},
		{"unauthorized", http.StatusUnauthorized, `{}`, auth.ErrInvalidToken},
		{"forbidden", http.StatusForbidden, ``, auth.ErrInvalidToken},
		{"server error", http.StatusBadGateway, `oops`, ErrUpstream},
		{"missing subject", http.StatusOK, `{"active":true}`, ErrUpstream},
		{"bad json", http.StatusOK, `<html>`, ErrUpstream},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := v.Verify(context.Background(), "tok")
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestVerify_EmptyToken(t *testing.T) {
	v, err := NewVerifier(Config{URL: "http://127.0.0.1:1/never"})
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), " ")
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}
