package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		handler gin.HandlerFunc
		code    int
		body    string
	}{
		{"success", func(c *gin.Context) { JSONSuccess(c, http.StatusOK, []string{}) }, http.StatusOK, `{"success":true,"data":[]}`},
		{"error", func(c *gin.Context) { JSONError(c, http.StatusNotFound, "vehicle_not_found") }, http.StatusNotFound, `{"success":false,"error":"vehicle_not_found"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tc.handler(c)

			assert.Equal(t, tc.code, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())

			var env RawEnvelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.Equal(t, tc.code < 300, env.Success)
		})
	}
}
