package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCheckoutSuggestion(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Classic 170",
			query:          "score=170",
			expectedStatus: http.StatusOK,
			expectedBody:   "T20, T20, BULL",
		},
		{
			name:           "Bogey Score",
			query:          "score=169",
			expectedStatus: http.StatusOK,
			expectedBody:   `"finish":false`,
		},
		{
			name:           "Single Out",
			query:          "score=50&out=single&darts=1",
			expectedStatus: http.StatusOK,
			expectedBody:   "BULL",
		},
		{
			name:           "Missing Score",
			query:          "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad Out Rule",
			query:          "score=40&out=triple",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad Darts",
			query:          "score=40&darts=4",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(nil, nil, nil)

			r := httptest.NewRequest("GET", "/api/v1/checkout?"+tt.query, nil)
			w := httptest.NewRecorder()
			h.CheckoutSuggestion(w, r)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedBody != "" && !strings.Contains(w.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedBody, w.Body.String())
			}
		})
	}
}
