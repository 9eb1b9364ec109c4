package formatter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"subtitle-whisper/internal/app/model"
)

func TestTimestamped_Truncates(t *testing.T) {
	got := Timestamped([]model.Segment{{Start: 75.9, End: 125.4, Text: "hello"}})
	assert.Equal(t, "[01:15 – 02:05] hello", got)
}

func TestTimestamped_Lines(t *testing.T) {
	segments := []model.Segment{
		{Start: 0, End: 4.99, Text: "  first  "},
		{Start: 59.999, End: 60, Text: "second"},
		{Start: 3599.5, End: 6000.2, Text: "third"},
	}

	got := Timestamped(segments)
	assert.Equal(t, "[00:00 – 00:04] first\n[00:59 – 01:00] second\n[59:59 – 100:00] third", got)
}

func TestTimestamped_KeepsInputOrder(t *testing.T) {
	segments := []model.Segment{
		{Start: 20, End: 25, Text: "later"},
		{Start: 5, End: 10, Text: "earlier"},
	}

	assert.Equal(t, "[00:20 – 00:25] later\n[00:05 – 00:10] earlier", Timestamped(segments))
}

func TestTimestamped_Idempotent(t *testing.T) {
	segments := []model.Segment{
		{Start: 1.5, End: 2.5, Text: "a"},
		{Start: 2.5, End: 9.1, Text: "b"},
	}

	first := Timestamped(segments)
	second := Timestamped(segments)
	assert.Equal(t, first, second)
	assert.Equal(t, 1.5, segments[0].Start, "input must not be mutated")
}

func TestTimestamped_Degenerate(t *testing.T) {
	assert.Equal(t, "", Timestamped(nil))
	assert.Equal(t, "[00:00 – 00:10] ", Timestamped([]model.Segment{{Start: 0, End: 10, Text: ""}}))
	assert.Equal(t, "[00:00 – 00:00] x", Timestamped([]model.Segment{{Start: -1, End: math.NaN(), Text: "x"}}))
	assert.Equal(t, "[00:00 – 00:00] y", Timestamped([]model.Segment{{Start: math.Inf(-1), End: math.Inf(1), Text: "y"}}))
}

func TestFormat_ModeSwitch(t *testing.T) {
	segmented := Format(&model.Transcript{
		Mode:     model.OutputModeSegmented,
		Segments: []model.Segment{{Start: 1, End: 2, Text: "hi"}},
	})
	subtitle := Format(&model.Transcript{
		Mode:     model.OutputModeSubtitle,
		Document: "1\n00:00:01,000 --> 00:00:02,000\nhi\n",
	})

	assert.Equal(t, "[00:01 – 00:02] hi", segmented.Text)
	assert.Equal(t, "transcription.txt", segmented.Filename)
	assert.Equal(t, "1\n00:00:01,000 --> 00:00:02,000\nhi\n", subtitle.Text)
	assert.Equal(t, "transcription.srt", subtitle.Filename)
	assert.Equal(t, ContentType, segmented.ContentType)
	assert.Equal(t, ContentType, subtitle.ContentType)
	assert.NotEqual(t, segmented.Text, subtitle.Text)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "transcription.txt", Filename(model.OutputModeSegmented))
	assert.Equal(t, "transcription.srt", Filename(model.OutputModeSubtitle))
}
