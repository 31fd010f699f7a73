package vocab

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		want       []Item
		wantErr    bool
	}{
		{
			name:       "downloads a list",
			statusCode: http.StatusOK,
			body:       `[{"category": "Email", "english": "Kind regards", "german": "Mit freundlichen Grüßen"}]`,
			want: []Item{
				{Category: "Email", Term: "Kind regards", Translation: "Mit freundlichen Grüßen"},
			},
		},
		{
			name:       "non-200 status",
			statusCode: http.StatusNotFound,
			body:       "not found",
			wantErr:    true,
		},
		{
			name:       "invalid body",
			statusCode: http.StatusOK,
			body:       `{"english": "x"}`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			got, err := NewFetcher(5*time.Second).Fetch(context.Background(), server.URL)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
