package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thaisign/thsl-translate/internal/application/translation"
	"github.com/thaisign/thsl-translate/internal/domain/sign"
	apperrors "github.com/thaisign/thsl-translate/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeTranslationService struct {
	translateOut *translation.TranslateOutput
	translateErr error
	resolveOut   *translation.ResolveOutput
	resolveErr   error
	lastInput    *translation.TranslateInput
}

func (f *fakeTranslationService) Translate(_ context.Context, in *translation.TranslateInput) (*translation.TranslateOutput, error) {
	f.lastInput = in
	return f.translateOut, f.translateErr
}

func (f *fakeTranslationService) Resolve(_ context.Context, _ string) (*translation.ResolveOutput, error) {
	return f.resolveOut, f.resolveErr
}

func newTranslateRouter(svc translation.Service) *gin.Engine {
	r := gin.New()
	h := NewTranslateHandler(svc, nil)
	r.POST("/api/v1/translate", h.Translate)
	r.GET("/api/v1/resolve", h.Resolve)
	return r
}

func TestTranslate_Success(t *testing.T) {
	svc := &fakeTranslationService{translateOut: &translation.TranslateOutput{
		RequestID: "req-1",
		Tokens: []sign.ResolvedToken{
			{Word: "ปลา", Category: "noun-object", AssetRef: "ปลา.pose"},
			{Word: "แมว", Category: "noun-subject", AssetRef: "แมว.pose"},
		},
		NotFound: []string{},
		RuleID:   "svo-object-front",
	}}
	r := newTranslateRouter(svc)

	body, _ := json.Marshal(TranslateRequest{Text: "แมว กิน ปลา", Keywords: []string{"แมว", "ปลา"}})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/translate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out translation.TranslateOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "svo-object-front", out.RuleID)
	require.Len(t, out.Tokens, 2)
	assert.Equal(t, "ปลา", out.Tokens[0].Word)

	require.NotNil(t, svc.lastInput)
	assert.Equal(t, "แมว กิน ปลา", svc.lastInput.Text)
}

func TestTranslate_MalformedBody(t *testing.T) {
	r := newTranslateRouter(&fakeTranslationService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/translate", bytes.NewReader([]byte("{not json")))
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, apperrors.ErrCodeBadRequest.String(), resp.Code)
}

func TestTranslate_EmptyInputError(t *testing.T) {
	svc := &fakeTranslationService{
		translateErr: apperrors.New(apperrors.ErrCodeTranslationEmptyInput, "text and keywords are both empty"),
	}
	r := newTranslateRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/translate", bytes.NewReader([]byte(`{"text":""}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTranslate_InternalErrorIsMasked(t *testing.T) {
	svc := &fakeTranslationService{
		translateErr: apperrors.New(apperrors.ErrCodeDatabaseError, "pq: connection refused to 10.0.0.7"),
	}
	r := newTranslateRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/translate", bytes.NewReader([]byte(`{"text":"x"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.7")
}

func TestResolve_Success(t *testing.T) {
	svc := &fakeTranslationService{resolveOut: &translation.ResolveOutput{
		Word:  "แมว",
		Found: true,
		Entries: []translation.ResolvedEntry{
			{Category: "noun-subject", AssetRef: "แมว.pose", PoseURL: "/api/v1/poses/แมว.pose", PoseAvailable: true},
		},
	}}
	r := newTranslateRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/resolve?word=แมว", nil)
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out translation.ResolveOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Found)
	require.Len(t, out.Entries, 1)
	assert.True(t, out.Entries[0].PoseAvailable)
}

func TestResolve_MissingWord(t *testing.T) {
	r := newTranslateRouter(&fakeTranslationService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/resolve", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolve_NotFound(t *testing.T) {
	svc := &fakeTranslationService{
		resolveErr: apperrors.New(apperrors.ErrCodeWordNotFound, "word has no dictionary entry or pose file"),
	}
	r := newTranslateRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/resolve?word=ไม่มี", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
