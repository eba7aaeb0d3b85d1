package botwire

import (
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// The Bot API has a number of fields that legally hold one of several
// structurally different shapes with no discriminator. Each such field gets a
// small closed interface (the union's value type) and a Union descriptor
// declaring its candidates in trial order.

// ChatRef identifies the target chat of a request: either a numeric chat ID
// or a "@channelusername" string.
type ChatRef interface{ chatRef() }

// ChatID is the numeric alternative of ChatRef.
type ChatID int64

// ChatUsername is the "@channelusername" alternative of ChatRef.
type ChatUsername string

func (ChatID) chatRef() {}
func (ChatUsername) chatRef() {}

// ReplyMarkup is one of the four keyboard control shapes accepted by the
// reply_markup parameter.
type ReplyMarkup interface{ replyMarkup() }

func (InlineKeyboardMarkup) replyMarkup() {}
func (ReplyKeyboardMarkup) replyMarkup() {}
func (ReplyKeyboardRemove) replyMarkup() {}
func (ForceReply) replyMarkup() {}

var (
	_ ReplyMarkup = InlineKeyboardMarkup{}
	_ ReplyMarkup = ReplyKeyboardMarkup{}
	_ ReplyMarkup = ReplyKeyboardRemove{}
	_ ReplyMarkup = ForceReply{}
)

// InputFile is a file argument of a sending method: either content uploaded
// alongside the request, or a reference the server can already resolve.
type InputFile interface{ inputFile() }

// FileUpload marks content to be uploaded with the request. On the JSON side
// it encodes as an "attach://<name>" marker; the assembler adds the matching
// multipart file part.
type FileUpload struct {
	Name    string
	Content io.Reader
}

// FileRef points at a file the server already knows: a file_id or an HTTP
// URL.
type FileRef string

func (FileUpload) inputFile() {}
func (FileRef) inputFile() {}

func (f FileUpload) MarshalJSONV2(enc *jsontext.Encoder, opts json.Options) error {
	if f.Name == "" {
		return ErrUnknownAlternative{union: "InputFile", typ: "unnamed FileUpload"}
	}
	return enc.WriteToken(jsontext.String("attach://" + f.Name))
}

// EditResult is what the editMessage* family of methods returns: the edited
// message itself, or just true for messages the bot cannot read back.
type EditResult interface{ editResult() }

// SentFlag is the bare-boolean alternative of EditResult.
type SentFlag bool

func (*Message) editResult() {}
func (SentFlag) editResult() {}

// MaybeInaccessibleMessage is a message field that may be withheld from the
// bot, in which case only chat, message_id and a zero date are present.
type MaybeInaccessibleMessage interface{ maybeInaccessibleMessage() }

func (*Message) maybeInaccessibleMessage() {}
func (*InaccessibleMessage) maybeInaccessibleMessage() {}

// Candidate orderings below mirror the Bot API wire format and are
// authoritative: a node that satisfies several candidates resolves to the
// first one listed, so reordering changes observable behavior. Catch-all
// candidates (Lenient, or structurally broad shapes) come last.
var (
	ChatRefUnion = Union[ChatRef]{
		Name: "ChatRef",
		Candidates: []Candidate[ChatRef]{
			{Value: ChatID(0)},
			{Value: ChatUsername("")},
		},
	}

	ReplyMarkupUnion = Union[ReplyMarkup]{
		Name: "ReplyMarkup",
		Candidates: []Candidate[ReplyMarkup]{
			{Value: InlineKeyboardMarkup{}},
			{Value: ReplyKeyboardMarkup{}},
			{Value: ReplyKeyboardRemove{}},
			{Value: ForceReply{}},
		},
	}

	InputFileUnion = Union[InputFile]{
		Name: "InputFile",
		Candidates: []Candidate[InputFile]{
			{Value: FileUpload{}},
			{Value: FileRef("")},
		},
	}

	EditResultUnion = Union[EditResult]{
		Name: "EditResult",
		Candidates: []Candidate[EditResult]{
			{Value: SentFlag(false)},
			{Value: &Message{}, Lenient: true},
		},
	}

	MaybeInaccessibleMessageUnion = Union[MaybeInaccessibleMessage]{
		Name: "MaybeInaccessibleMessage",
		Candidates: []Candidate[MaybeInaccessibleMessage]{
			{Value: &InaccessibleMessage{}},
			{Value: &Message{}, Lenient: true},
		},
	}
)

// Options returns the JSON options that wire the unions above into
// github.com/go-json-experiment/json. A fresh value is built on every call so
// that concurrent marshal and unmarshal operations never share interception
// state.
//
// EditResultUnion is deliberately not registered: *Message is a candidate of
// both EditResultUnion and MaybeInaccessibleMessageUnion, and registering two
// unmarshalers for overlapping type sets would leave the winner unspecified.
// Edit results are resolved explicitly with DecodeFirst instead (see
// Client.EditMessageText).
func Options() json.Options {
	return json.JoinOptions(
		json.WithMarshalers(json.NewMarshalers(
			MarshalFunc(ChatRefUnion),
			MarshalFunc(ReplyMarkupUnion),
			MarshalFunc(InputFileUnion),
		)),
		json.WithUnmarshalers(json.NewUnmarshalers(
			UnmarshalFunc(ChatRefUnion),
			UnmarshalFunc(ReplyMarkupUnion),
			UnmarshalFunc(InputFileUnion),
			UnmarshalFunc(MaybeInaccessibleMessageUnion),
		)),
	)
}
