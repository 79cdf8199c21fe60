package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authusecase "github.com/SeraphielSpark/contentcreator/internal/feature/auth/usecase"
	"github.com/SeraphielSpark/contentcreator/internal/feature/generation/usecase"
	jwtmw "github.com/SeraphielSpark/contentcreator/internal/platform/jwt"
)

type mockGenerateUsecase struct {
	generateImage func(ctx context.Context, userID uint, req usecase.Request) (*usecase.Result, error)
}

func (m *mockGenerateUsecase) GenerateImage(ctx context.Context, userID uint, req usecase.Request) (*usecase.Result, error) {
	return m.generateImage(ctx, userID, req)
}

// setupGenerationRouter registers the route behind a stub that injects the
// authenticated user, standing in for the JWT middleware.
func setupGenerationRouter(uc GenerateUsecase, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, userID)
	})
	h := NewGenerationHandler(uc)
	r.POST("/generate-image", h.GenerateImage)
	return r
}

func postGenerate(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate-image", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validBody = `{
	"reference_filename": "ref.jpg",
	"style": "ghibli",
	"theme": "autumn",
	"look": "portrait",
	"color_tone": "warm"
}`

func TestGenerationHandlerGenerateImage(t *testing.T) {
	t.Run("returns 200 with the url and new balance", func(t *testing.T) {
		uc := &mockGenerateUsecase{generateImage: func(_ context.Context, userID uint, req usecase.Request) (*usecase.Result, error) {
			assert.Equal(t, uint(7), userID)
			assert.Equal(t, "ref.jpg", req.ReferenceFilename)
			assert.Equal(t, "ghibli", req.Style)
			assert.Equal(t, "autumn", req.Theme)
			assert.Equal(t, "warm", req.ColorTone)
			return &usecase.Result{GeneratedImageURL: "/generated/out.png", NewCreditCount: 190}, nil
		}}

		w := postGenerate(setupGenerationRouter(uc, 7), validBody)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"generated_image_url":"/generated/out.png","new_credit_count":190}`, w.Body.String())
	})

	t.Run("missing required fields return 400", func(t *testing.T) {
		uc := &mockGenerateUsecase{generateImage: func(_ context.Context, _ uint, _ usecase.Request) (*usecase.Result, error) {
			t.Fatal("usecase should not be called")
			return nil, nil
		}}

		w := postGenerate(setupGenerationRouter(uc, 7), `{"reference_filename":"ref.jpg","theme":"autumn"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "missing style fields",
			err:      usecase.ErrMissingStyleFields,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Theme and look are required"}`,
		},
		{
			name:     "undecodable reference",
			err:      usecase.ErrInvalidReferenceImage,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Reference file is not a valid image"}`,
		},
		{
			name:     "unknown user",
			err:      authusecase.ErrUserNotFound,
			wantCode: http.StatusUnauthorized,
			wantBody: `{"error":"Unknown user"}`,
		},
		{
			name:     "insufficient credits",
			err:      usecase.ErrInsufficientCredits,
			wantCode: http.StatusForbidden,
			wantBody: `{"error":"Not enough credits"}`,
		},
		{
			name:     "missing reference",
			err:      usecase.ErrReferenceNotFound,
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"Reference image not found"}`,
		},
		{
			name:     "policy blocked",
			err:      usecase.ErrPolicyBlocked,
			wantCode: http.StatusBadGateway,
			wantBody: `{"error":"Generation blocked by safety policy"}`,
		},
		{
			name:     "upstream timeout",
			err:      usecase.ErrUpstreamTimeout,
			wantCode: http.StatusGatewayTimeout,
			wantBody: `{"error":"Generation request timed out"}`,
		},
		{
			name:     "upstream unreachable",
			err:      usecase.ErrUpstreamUnreachable,
			wantCode: http.StatusBadGateway,
			wantBody: `{"error":"Generation service unavailable"}`,
		},
		{
			name:     "upstream API failure is not echoed",
			err:      &usecase.UpstreamError{StatusCode: 429, Body: `{"error":"quota"}`},
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Generation failed"}`,
		},
		{
			name:     "empty upstream response",
			err:      usecase.ErrEmptyResponse,
			wantCode: http.StatusBadGateway,
			wantBody: `{"error":"Generation returned no image"}`,
		},
		{
			name:     "unexpected error",
			err:      assert.AnError,
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Generation failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockGenerateUsecase{generateImage: func(_ context.Context, _ uint, _ usecase.Request) (*usecase.Result, error) {
				return nil, tt.err
			}}

			w := postGenerate(setupGenerationRouter(uc, 7), validBody)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}

	t.Run("upstream details never reach the client", func(t *testing.T) {
		uc := &mockGenerateUsecase{generateImage: func(_ context.Context, _ uint, _ usecase.Request) (*usecase.Result, error) {
			return nil, &usecase.UpstreamError{StatusCode: 500, Body: "internal quota table dump"}
		}}

		w := postGenerate(setupGenerationRouter(uc, 7), validBody)

		assert.NotContains(t, w.Body.String(), "quota table")
	})
}
