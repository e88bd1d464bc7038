package ingest

import (
	"io"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource replays scripted update batches and records every query.
type fakeSource struct {
	batches [][]tgbotapi.Update
	calls   []tgbotapi.UpdateConfig
}

func (f *fakeSource) GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
	f.calls = append(f.calls, config)
	if len(f.batches) == 0 {
		return nil, nil
	}
	batch := f.batches[0]
	f.batches = f.batches[1:]
	return batch, nil
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func textUpdate(id int, text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: id,
		Message: &tgbotapi.Message{
			MessageID: id,
			Text:      text,
			Chat:      &tgbotapi.Chat{ID: 1},
			From:      &tgbotapi.User{ID: 1},
		},
	}
}

func albumUpdate(id int, groupID, caption string) tgbotapi.Update {
	u := tgbotapi.Update{
		UpdateID: id,
		Message: &tgbotapi.Message{
			MessageID:    id,
			Caption:      caption,
			MediaGroupID: groupID,
			Chat:         &tgbotapi.Chat{ID: 1},
			From:         &tgbotapi.User{ID: 1},
		},
	}
	return u
}

// ---------------------------------------------------------------------------
// Consume
// ---------------------------------------------------------------------------

func TestConsume_StagesHTTPCandidates(t *testing.T) {
	p := New(&fakeSource{}, testLogger())

	assert.True(t, p.Consume(textUpdate(1, "https://shop.example/x")))
	assert.Equal(t, "https://shop.example/x", p.Staged())

	// Leading/trailing whitespace is trimmed before the prefix check.
	assert.True(t, p.Consume(textUpdate(2, "  http://shop.example/y  ")))
	assert.Equal(t, "http://shop.example/y", p.Staged())
}

func TestConsume_RejectsNonHTTPText(t *testing.T) {
	p := New(&fakeSource{}, testLogger())

	assert.False(t, p.Consume(textUpdate(1, "hello there")))
	assert.False(t, p.Consume(textUpdate(2, "ftp://files.example/x")))
	assert.False(t, p.Consume(textUpdate(3, "")))
	assert.Equal(t, "", p.Staged())
}

func TestConsume_LastWriteWins(t *testing.T) {
	p := New(&fakeSource{}, testLogger())

	p.Consume(textUpdate(1, "https://a.test/1"))
	p.Consume(textUpdate(2, "https://a.test/2"))
	p.Consume(textUpdate(3, "https://a.test/3"))

	// No queue: only the most recent candidate survives.
	assert.Equal(t, "https://a.test/3", p.Staged())
}

func TestConsume_RejectedCandidateKeepsPreviousStaged(t *testing.T) {
	p := New(&fakeSource{}, testLogger())

	p.Consume(textUpdate(1, "https://a.test/1"))
	p.Consume(textUpdate(2, "not a link"))

	assert.Equal(t, "https://a.test/1", p.Staged())
}

func TestConsume_OnlyFirstItemOfMediaGroupCounts(t *testing.T) {
	p := New(&fakeSource{}, testLogger())

	assert.True(t, p.Consume(albumUpdate(1, "g1", "https://a.test/first")))
	assert.False(t, p.Consume(albumUpdate(2, "g1", "https://a.test/second")))
	assert.Equal(t, "https://a.test/first", p.Staged())

	// A different group starts fresh.
	assert.True(t, p.Consume(albumUpdate(3, "g2", "https://a.test/third")))
	assert.Equal(t, "https://a.test/third", p.Staged())
}

func TestConsume_IgnoresCommandsAndEmptyUpdates(t *testing.T) {
	p := New(&fakeSource{}, testLogger())

	command := textUpdate(1, "/wish")
	command.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 5}}

	assert.False(t, p.Consume(command))
	assert.False(t, p.Consume(tgbotapi.Update{UpdateID: 2}))
	assert.Equal(t, "", p.Staged())
}

func TestTake_ClearsStagedURL(t *testing.T) {
	p := New(&fakeSource{}, testLogger())
	p.Consume(textUpdate(1, "https://a.test/1"))

	assert.Equal(t, "https://a.test/1", p.Take())
	assert.Equal(t, "", p.Staged())
	assert.Equal(t, "", p.Take())
}

// ---------------------------------------------------------------------------
// ColdStart
// ---------------------------------------------------------------------------

func TestColdStart_StagesNewestAndCommitsOffset(t *testing.T) {
	source := &fakeSource{
		batches: [][]tgbotapi.Update{
			{
				textUpdate(7, "https://a.test/old"),
				textUpdate(8, "just chatting"),
				textUpdate(9, "https://a.test/new"),
			},
		},
	}
	p := New(source, testLogger())

	staged, err := p.ColdStart()
	require.NoError(t, err)

	assert.Equal(t, 2, staged)
	assert.Equal(t, "https://a.test/new", p.Staged(), "last write wins across the pending batch")
	assert.Equal(t, 10, p.Offset())

	// The second query acknowledges the batch server-side.
	require.Len(t, source.calls, 2)
	assert.Equal(t, 0, source.calls[0].Offset)
	assert.Equal(t, 10, source.calls[1].Offset)
}

func TestColdStart_AcknowledgedPayloadIsNotRedelivered(t *testing.T) {
	// First run: one pending share, then the acknowledgment.
	source := &fakeSource{
		batches: [][]tgbotapi.Update{
			{textUpdate(4, "https://a.test/p")},
		},
	}
	p := New(source, testLogger())
	staged, err := p.ColdStart()
	require.NoError(t, err)
	require.Equal(t, 1, staged)
	p.Take()

	// Relaunch without any new share: the acknowledged update is gone, so
	// nothing is staged.
	relaunched := New(source, testLogger())
	staged, err = relaunched.ColdStart()
	require.NoError(t, err)
	assert.Zero(t, staged)
	assert.Equal(t, "", relaunched.Staged())
}

func TestColdStart_NoPendingUpdates(t *testing.T) {
	source := &fakeSource{}
	p := New(source, testLogger())

	staged, err := p.ColdStart()
	require.NoError(t, err)

	assert.Zero(t, staged)
	assert.Zero(t, p.Offset())
	assert.Len(t, source.calls, 1, "nothing to acknowledge")
}
