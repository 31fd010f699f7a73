package reminder_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_reminder "github.com/at-ishikawa/vocly/internal/mocks/reminder"
	"github.com/at-ishikawa/vocly/internal/reminder"
)

func TestNewScheduler(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	tests := []struct {
		name    string
		at      string
		wantErr bool
	}{
		{name: "morning", at: "09:00"},
		{name: "evening", at: "21:30"},
		{name: "invalid time", at: "25:99", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			checker := reminder.NewChecker("anna",
				mock_reminder.NewMockSnapshotFinder(ctrl),
				mock_reminder.NewMockNotifier(ctrl),
				reminder.WithLocation(tokyo))

			scheduler, err := reminder.NewScheduler(context.Background(), checker, tt.at)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			scheduler.Start()
			t.Cleanup(func() {
				_ = scheduler.Stop(context.Background())
			})

			want, err := time.ParseInLocation("15:04", tt.at, tokyo)
			require.NoError(t, err)
			assert.Eventually(t, func() bool {
				next := scheduler.NextRun().In(tokyo)
				return next.After(time.Now()) && next.Hour() == want.Hour() && next.Minute() == want.Minute()
			}, time.Second, 10*time.Millisecond)
		})
	}
}
