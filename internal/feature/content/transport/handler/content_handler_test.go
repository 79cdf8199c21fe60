package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeraphielSpark/contentcreator/internal/api"
	"github.com/SeraphielSpark/contentcreator/internal/feature/content/usecase"
	jwtmw "github.com/SeraphielSpark/contentcreator/internal/platform/jwt"
)

type mockContentUsecase struct {
	generateHashtags func(ctx context.Context, userID uint, post string) (string, []string, error)
	respond          func(ctx context.Context, userID uint, prompt, chatID string, maxSentences int) (string, string, error)
}

func (m *mockContentUsecase) GenerateHashtags(ctx context.Context, userID uint, post string) (string, []string, error) {
	return m.generateHashtags(ctx, userID, post)
}

func (m *mockContentUsecase) Respond(ctx context.Context, userID uint, prompt, chatID string, maxSentences int) (string, string, error) {
	return m.respond(ctx, userID, prompt, chatID, maxSentences)
}

// setupContentRouter registers the content routes; userID 0 means anonymous.
func setupContentRouter(uc ContentUsecase, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if userID != 0 {
		r.Use(func(c *gin.Context) {
			c.Set(jwtmw.ContextUserID, userID)
		})
	}
	h := NewContentHandler(uc)
	r.POST("/generate", h.GenerateHashtags)
	r.POST("/respond", h.Respond)
	return r
}

func postContentJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestContentHandlerGenerateHashtags(t *testing.T) {
	t.Run("returns the result and tags", func(t *testing.T) {
		uc := &mockContentUsecase{generateHashtags: func(_ context.Context, userID uint, post string) (string, []string, error) {
			assert.Zero(t, userID)
			assert.Equal(t, "my post", post)
			return "my post\n\n#one #two", []string{"#one", "#two"}, nil
		}}

		w := postContentJSON(setupContentRouter(uc, 0), "/generate", `{"post":"my post"}`)

		require.Equal(t, http.StatusOK, w.Code)

		var res api.HashtagResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "my post\n\n#one #two", res.Result)
		assert.Equal(t, []string{"#one", "#two"}, res.Hashtags)
	})

	t.Run("authenticated user id reaches the usecase", func(t *testing.T) {
		uc := &mockContentUsecase{generateHashtags: func(_ context.Context, userID uint, _ string) (string, []string, error) {
			assert.Equal(t, uint(7), userID)
			return "#tag", []string{"#tag"}, nil
		}}

		w := postContentJSON(setupContentRouter(uc, 7), "/generate", `{"post":"my post"}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing post returns 400", func(t *testing.T) {
		uc := &mockContentUsecase{generateHashtags: func(_ context.Context, _ uint, _ string) (string, []string, error) {
			t.Fatal("usecase should not be called")
			return "", nil, nil
		}}

		w := postContentJSON(setupContentRouter(uc, 0), "/generate", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"No post content provided"}`, w.Body.String())
	})

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "whitespace-only post returns 400",
			err:      usecase.ErrEmptyPost,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"No post content provided"}`,
		},
		{
			name:     "upstream timeout returns 504",
			err:      usecase.ErrUpstreamTimeout,
			wantCode: http.StatusGatewayTimeout,
			wantBody: `{"error":"Generation request timed out"}`,
		},
		{
			name:     "upstream unreachable returns 502",
			err:      usecase.ErrUpstreamUnreachable,
			wantCode: http.StatusBadGateway,
			wantBody: `{"error":"Generation service unavailable"}`,
		},
		{
			name:     "unexpected failure returns 500",
			err:      assert.AnError,
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Hashtag generation failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockContentUsecase{generateHashtags: func(_ context.Context, _ uint, _ string) (string, []string, error) {
				return "", nil, tt.err
			}}

			w := postContentJSON(setupContentRouter(uc, 0), "/generate", `{"post":"   "}`)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestContentHandlerRespond(t *testing.T) {
	t.Run("returns the answer and chat id", func(t *testing.T) {
		uc := &mockContentUsecase{respond: func(_ context.Context, _ uint, prompt, chatID string, maxSentences int) (string, string, error) {
			assert.Equal(t, "a question", prompt)
			assert.Equal(t, "c1", chatID)
			assert.Equal(t, 3, maxSentences)
			return "an answer", chatID, nil
		}}

		body := `{"prompt":"a question","chat_id":"c1","max_sentences":3}`
		w := postContentJSON(setupContentRouter(uc, 0), "/respond", body)

		require.Equal(t, http.StatusOK, w.Code)

		var res api.ChatResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "an answer", res.Result)
		assert.Equal(t, "c1", res.Meta.ChatID)
	})

	t.Run("echoes a freshly minted chat id", func(t *testing.T) {
		uc := &mockContentUsecase{respond: func(_ context.Context, _ uint, _, chatID string, _ int) (string, string, error) {
			assert.Empty(t, chatID)
			return "an answer", "fresh-id", nil
		}}

		w := postContentJSON(setupContentRouter(uc, 0), "/respond", `{"prompt":"a question"}`)

		require.Equal(t, http.StatusOK, w.Code)

		var res api.ChatResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "fresh-id", res.Meta.ChatID)
	})

	t.Run("missing prompt returns 400", func(t *testing.T) {
		uc := &mockContentUsecase{respond: func(_ context.Context, _ uint, _, _ string, _ int) (string, string, error) {
			t.Fatal("usecase should not be called")
			return "", "", nil
		}}

		w := postContentJSON(setupContentRouter(uc, 0), "/respond", `{"chat_id":"c1"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"No prompt content provided"}`, w.Body.String())
	})

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "whitespace-only prompt returns 400",
			err:      usecase.ErrEmptyPrompt,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"No prompt content provided"}`,
		},
		{
			name:     "upstream timeout returns 504",
			err:      usecase.ErrUpstreamTimeout,
			wantCode: http.StatusGatewayTimeout,
			wantBody: `{"error":"Generation request timed out"}`,
		},
		{
			name:     "upstream unreachable returns 502",
			err:      usecase.ErrUpstreamUnreachable,
			wantCode: http.StatusBadGateway,
			wantBody: `{"error":"Generation service unavailable"}`,
		},
		{
			name:     "unexpected failure returns 500",
			err:      assert.AnError,
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Chat response failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockContentUsecase{respond: func(_ context.Context, _ uint, _, _ string, _ int) (string, string, error) {
				return "", "", tt.err
			}}

			w := postContentJSON(setupContentRouter(uc, 0), "/respond", `{"prompt":"   "}`)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
