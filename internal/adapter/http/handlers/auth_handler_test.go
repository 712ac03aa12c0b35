package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"webcharge_api/internal/adapter/http/handlers/mocks"
	"webcharge_api/internal/infrastructure/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestAuthHandler_Token(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		body     string
		setup    func(m *mocks.MockITokenIssuer)
		wantCode int
	}{
		{
			name:     "issued",
			body:     `{"appId":"com.example.slots"}`,
			setup:    func(m *mocks.MockITokenIssuer) { m.EXPECT().Issue("com.example.slots").Return("tok", nil) },
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong app",
			body:     `{"appId":"other"}`,
			setup:    func(m *mocks.MockITokenIssuer) { m.EXPECT().Issue("other").Return("", auth.ErrInvalidAppID) },
			wantCode: http.StatusForbidden,
		},
		{
			name:     "broken json",
			body:     `{`,
			setup:    func(*mocks.MockITokenIssuer) {},
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			issuer := mocks.NewMockITokenIssuer(ctrl)
			tt.setup(issuer)

			r := gin.New()
			r.POST("/api/v1/token", NewAuthHandler(issuer).Token)
			w := postJSON(r, "/api/v1/token", tt.body, nil)
			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, w.Code)
			}
			if tt.wantCode == http.StatusOK {
				var body map[string]any
				_ = json.Unmarshal(w.Body.Bytes(), &body)
				if body["token"] != "tok" || body["return_code"] != float64(1) {
					t.Fatalf("unexpected body %s", w.Body.String())
				}
			}
		})
	}
}
