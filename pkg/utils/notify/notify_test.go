package notify_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/devantler-tech/vmprep/pkg/utils/notify"
	"github.com/stretchr/testify/assert"
)

func TestWriteMessage_Symbols(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		msgType notify.MessageType
		want    string
	}{
		{name: "error", msgType: notify.ErrorType, want: "✗ docker install failed\n"},
		{name: "warning", msgType: notify.WarningType, want: "⚠ docker install failed\n"},
		{name: "activity", msgType: notify.ActivityType, want: "► docker install failed\n"},
		{name: "generate", msgType: notify.GenerateType, want: "✚ docker install failed\n"},
		{name: "success", msgType: notify.SuccessType, want: "✔ docker install failed\n"},
		{name: "info", msgType: notify.InfoType, want: "ℹ docker install failed\n"},
		{name: "skip", msgType: notify.SkipType, want: "↷ docker install failed\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			notify.WriteMessage(notify.Message{
				Type:    testCase.msgType,
				Content: "docker %s failed",
				Args:    []any{"install"},
				Writer:  &out,
			})

			assert.Equal(t, testCase.want, out.String())
		})
	}
}

func TestWriteMessage_MultiLineContentIndented(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Warningf(&out, "could not add user\nlog out and back in")

	assert.Equal(t, "⚠ could not add user\n  log out and back in\n", out.String())
}

func TestTitlef(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Titlef(&out, "🐳", "Install %s", "docker")
	notify.Titlef(&out, "", "Summary")

	assert.Equal(t, "🐳 Install docker\nℹ️ Summary\n", out.String())
}

type fixedTimer struct {
	total time.Duration
	stage time.Duration
}

func (t *fixedTimer) Start() {}

func (t *fixedTimer) NewStage() {}

func (t *fixedTimer) GetTiming() (time.Duration, time.Duration) { return t.total, t.stage }

func (t *fixedTimer) Stop() {}

func TestSuccessWithTimerf_RendersTimingBlock(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.SuccessWithTimerf(&out, &fixedTimer{total: 3 * time.Second, stage: 500 * time.Millisecond}, "done")

	assert.Equal(t, "✔ done\n⏲ current: 500ms\n  total:  3s\n", out.String())
}

func TestWriteMessage_ErrorIgnoresTimer(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.WriteMessage(notify.Message{
		Type:    notify.ErrorType,
		Content: "failed",
		Timer:   &fixedTimer{total: time.Second},
		Writer:  &out,
	})

	assert.Equal(t, "✗ failed\n", out.String())
}
