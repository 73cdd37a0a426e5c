package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocket/internal/http/api"
)

func signed(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()

	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return s
}

func TestRequireToken(t *testing.T) {
	secret := []byte("s3cret")
	owner := uuid.New()
	valid := jwt.RegisteredClaims{
		Subject:   owner.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	tests := []struct {
		name      string
		header    string
		wantCode  int
		wantOwner uuid.UUID
	}{
		{
			name:      "Valid",
			header:    "Bearer " + signed(t, jwt.SigningMethodHS256, secret, valid),
			wantCode:  http.StatusOK,
			wantOwner: owner,
		},
		{
			name:     "Missing",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "WrongSecret",
			header:   "Bearer " + signed(t, jwt.SigningMethodHS256, []byte("other"), valid),
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "Expired",
			header: "Bearer " + signed(t, jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{
				Subject:   owner.String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			}),
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "NoExpiry",
			header: "Bearer " + signed(t, jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{
				Subject: owner.String(),
			}),
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "SubjectNotUUID",
			header: "Bearer " + signed(t, jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{
				Subject:   "42",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}),
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got uuid.UUID

			h := api.RequireToken(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = api.Owner(r)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantOwner, got)
		})
	}
}
