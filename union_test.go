package botwire

import (
	"errors"
	"testing"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mau.fi/util/jsontime"
)

func roundTrip[T any](t *testing.T, u Union[T], in T) T {
	t.Helper()
	b, err := json.Marshal(in, Options())
	require.NoError(t, err)
	out, err := DecodeFirst(u, jsontext.Value(b), Options())
	require.NoError(t, err)
	return out
}

func TestChatRef_RoundTrip(t *testing.T) {
	assert.Equal(t, ChatID(42), roundTrip[ChatRef](t, ChatRefUnion, ChatID(42)))
	assert.Equal(t, ChatUsername("@channel"), roundTrip[ChatRef](t, ChatRefUnion, ChatUsername("@channel")))
}

func TestChatRef_Encoding(t *testing.T) {
	b, err := json.Marshal(ChatRef(ChatID(42)), Options())
	require.NoError(t, err)
	assert.Equal(t, `42`, string(b))

	b, err = json.Marshal(ChatRef(ChatUsername("@channel")), Options())
	require.NoError(t, err)
	assert.Equal(t, `"@channel"`, string(b))
}

func TestReplyMarkup_RoundTrip(t *testing.T) {
	for _, in := range []ReplyMarkup{
		InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{{{Text: "yes", CallbackData: "y"}}}},
		ReplyKeyboardMarkup{Keyboard: [][]KeyboardButton{{{Text: "go"}}}, ResizeKeyboard: true},
		ReplyKeyboardRemove{RemoveKeyboard: true},
		ForceReply{ForceReply: true, InputFieldPlaceholder: "answer"},
	} {
		assert.Equal(t, in, roundTrip[ReplyMarkup](t, ReplyMarkupUnion, in))
	}
}

func TestReplyMarkup_NoDiscriminator(t *testing.T) {
	b, err := json.Marshal(ReplyMarkup(ReplyKeyboardRemove{RemoveKeyboard: true}), Options())
	require.NoError(t, err)
	assert.JSONEq(t, `{"remove_keyboard":true}`, string(b))
}

func TestReplyMarkup_DecodeIntoInterfaceField(t *testing.T) {
	var rm ReplyMarkup
	err := json.Unmarshal([]byte(`{"keyboard":[[{"text":"go"}]],"resize_keyboard":true}`), &rm, Options())
	require.NoError(t, err)
	assert.Equal(t, ReplyKeyboardMarkup{Keyboard: [][]KeyboardButton{{{Text: "go"}}}, ResizeKeyboard: true}, rm)
}

func TestInputFile_RoundTripRef(t *testing.T) {
	assert.Equal(t, FileRef("file_abc123"), roundTrip[InputFile](t, InputFileUnion, FileRef("file_abc123")))
}

func TestInputFile_UploadEncodesAttachMarker(t *testing.T) {
	b, err := json.Marshal(InputFile(FileUpload{Name: "report.txt"}), Options())
	require.NoError(t, err)
	assert.Equal(t, `"attach://report.txt"`, string(b))
}

func TestEditResult_DecodeFirst(t *testing.T) {
	got, err := DecodeFirst(EditResultUnion, jsontext.Value(`true`), Options())
	require.NoError(t, err)
	assert.Equal(t, SentFlag(true), got)

	got, err = DecodeFirst(EditResultUnion, jsontext.Value(`{"message_id":7,"date":0,"chat":{"id":1},"text":"hi"}`), Options())
	require.NoError(t, err)
	msg, ok := got.(*Message)
	require.True(t, ok)
	assert.Equal(t, int64(7), msg.MessageID)
	assert.Equal(t, "hi", msg.Text)
}

func TestMaybeInaccessibleMessage_OrderSensitivity(t *testing.T) {
	// This node satisfies both candidates: InaccessibleMessage exactly, and
	// *Message through its unknown-member tolerance. The first-listed
	// candidate must win, not the broader one.
	raw := jsontext.Value(`{"chat":{"id":1},"message_id":7,"date":0}`)

	got, err := DecodeFirst(MaybeInaccessibleMessageUnion, raw, Options())
	require.NoError(t, err)
	inaccessible, ok := got.(*InaccessibleMessage)
	require.True(t, ok, "expected the first-listed candidate, got %T", got)
	assert.Equal(t, int64(7), inaccessible.MessageID)

	// Reversing the candidate order must flip the outcome: resolution is
	// positional, not specificity-based.
	reversed := Union[MaybeInaccessibleMessage]{
		Name: "MaybeInaccessibleMessage",
		Candidates: []Candidate[MaybeInaccessibleMessage]{
			{Value: &Message{}, Lenient: true},
			{Value: &InaccessibleMessage{}},
		},
	}
	got, err = DecodeFirst(reversed, raw, Options())
	require.NoError(t, err)
	_, ok = got.(*Message)
	assert.True(t, ok, "expected the broad candidate once it is listed first, got %T", got)
}

func TestMaybeInaccessibleMessage_FullMessageFallsThrough(t *testing.T) {
	// A real message carries members InaccessibleMessage does not declare,
	// so the strict first candidate refuses it and the catch-all takes it.
	raw := jsontext.Value(`{"chat":{"id":1},"message_id":7,"date":1700000000,"text":"hello","unmodeled_member":true}`)
	got, err := DecodeFirst(MaybeInaccessibleMessageUnion, raw, Options())
	require.NoError(t, err)
	msg, ok := got.(*Message)
	require.True(t, ok)
	assert.Equal(t, "hello", msg.Text)
	assert.Equal(t, time.Unix(1700000000, 0), msg.Date.Time)
	assert.Contains(t, msg.Extra, "unmodeled_member")
}

func TestCallbackQuery_NestedUnionDecode(t *testing.T) {
	in := []byte(`{
		"id": "cb1",
		"from": {"id": 9, "first_name": "Ann"},
		"message": {"chat": {"id": 1}, "message_id": 7, "date": 0},
		"data": "vote:yes"
	}`)
	var cq CallbackQuery
	require.NoError(t, json.Unmarshal(in, &cq, Options()))
	assert.Equal(t, "vote:yes", cq.Data)
	_, ok := cq.Message.(*InaccessibleMessage)
	assert.True(t, ok, "nested union field resolved to %T", cq.Message)
}

func TestDecodeFirst_Exhaustion(t *testing.T) {
	_, err := DecodeFirst(ReplyMarkupUnion, jsontext.Value(`42`), Options())
	require.Error(t, err)

	var kindErr ErrKindNotRecognized
	require.True(t, errors.As(err, &kindErr), "want ErrKindNotRecognized, got %T", err)
	assert.Equal(t, "ReplyMarkup", kindErr.Union())
	assert.Equal(t, jsontext.Value(`42`), kindErr.Raw())
}

type rogueMarkup struct{}

func (rogueMarkup) replyMarkup() {}

func TestMarshal_UnknownAlternative(t *testing.T) {
	_, err := json.Marshal(ReplyMarkup(rogueMarkup{}), Options())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unknown alternative")
}

// A test-local union with an explicitly generic catch-all, mirroring the
// shape of the API's broad fallback alternatives.
type testShape interface{ testShape() }

type narrowShape struct {
	Size int64 `json:"size"`
}

type looseShape map[string]jsontext.Value

func (narrowShape) testShape() {}
func (looseShape) testShape() {}

func TestDecodeFirst_FirstListedWinsOverLaterCatchAll(t *testing.T) {
	u := Union[testShape]{
		Name: "TestShape",
		Candidates: []Candidate[testShape]{
			{Value: narrowShape{}},
			{Value: looseShape{}, Lenient: true},
		},
	}
	raw := jsontext.Value(`{"size":5}`)

	got, err := DecodeFirst(u, raw)
	require.NoError(t, err)
	assert.Equal(t, narrowShape{Size: 5}, got)

	// A node the narrow candidate refuses lands in the catch-all.
	got, err = DecodeFirst(u, jsontext.Value(`{"weight":3}`))
	require.NoError(t, err)
	assert.IsType(t, looseShape{}, got)
}

func TestMessage_RoundTripThroughUnionOptions(t *testing.T) {
	in := &Message{
		MessageID: 7,
		Date:      jsontime.Unix{Time: time.Unix(1700000000, 0)},
		Chat:      Chat{ID: 1, Type: "private"},
		Text:      "hello",
		ReplyMarkup: &InlineKeyboardMarkup{
			InlineKeyboard: [][]InlineKeyboardButton{{{Text: "ok", CallbackData: "ok"}}},
		},
	}
	b, err := json.Marshal(in, Options())
	require.NoError(t, err)

	var out Message
	require.NoError(t, json.Unmarshal(b, &out, Options()))
	assert.Equal(t, *in, out)
}
