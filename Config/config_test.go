package Config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_Defaults(t *testing.T) {
	t.Setenv("API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.Equal(t, "07:00", cfg.MorningReminderTime)
	assert.Equal(t, "19:00", cfg.EveningReminderTime)
	assert.Equal(t, "garrison.db", cfg.DatabasePath)
}

func Test_Load_MissingAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")

	_, err := Load()
	require.Error(t, err)
}

func Test_Load_InvalidReminderTime(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("MORNING_REMINDER_TIME", "7 o'clock")

	_, err := Load()
	require.Error(t, err)
}

func Test_Load_SlackChannelRequiredWithToken(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_ALERT_CHANNEL", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("SLACK_ALERT_CHANNEL", "#ops-alerts")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "#ops-alerts", cfg.SlackAlertChannel)
}
