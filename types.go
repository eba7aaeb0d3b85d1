package botwire

import (
	"github.com/go-json-experiment/json/jsontext"
	"go.mau.fi/util/jsontime"
)

// A representative slice of the Bot API object catalogue: the records needed
// by the union kinds, the client helpers and the tests. Wire names are the
// exact snake_case identifiers from the Bot API and must not be changed.

type User struct {
	ID           int64  `json:"id"`
	IsBot        bool   `json:"is_bot,omitzero"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

type Chat struct {
	ID        int64  `json:"id"`
	Type      string `json:"type,omitempty"`
	Title     string `json:"title,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Message is the full message record. Extra collects members this slice of
// the catalogue does not model, which also makes *Message the designated
// catch-all candidate of MaybeInaccessibleMessageUnion.
type Message struct {
	MessageID   int64                 `json:"message_id"`
	From        *User                 `json:"from,omitzero"`
	Date        jsontime.Unix         `json:"date"`
	Chat        Chat                  `json:"chat"`
	EditDate    jsontime.Unix         `json:"edit_date,omitzero"`
	Text        string                `json:"text,omitempty"`
	Entities    []MessageEntity       `json:"entities,omitempty"`
	ReplyMarkup *InlineKeyboardMarkup `json:"reply_markup,omitzero"`

	Extra map[string]jsontext.Value `json:",unknown"`
}

// InaccessibleMessage replaces a Message the bot is not allowed to read. Its
// date is always the zero timestamp on the wire.
type InaccessibleMessage struct {
	Chat      Chat          `json:"chat"`
	MessageID int64         `json:"message_id"`
	Date      jsontime.Unix `json:"date"`
}

type MessageEntity struct {
	Type   string `json:"type"`
	Offset int64  `json:"offset"`
	Length int64  `json:"length"`
	URL    string `json:"url,omitempty"`
	User   *User  `json:"user,omitzero"`
}

type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message,omitzero"`
	EditedMessage *Message       `json:"edited_message,omitzero"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitzero"`
}

type CallbackQuery struct {
	ID      string                   `json:"id"`
	From    User                     `json:"from"`
	Message MaybeInaccessibleMessage `json:"message,omitzero"`
	Data    string                   `json:"data,omitempty"`
}

type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

type InlineKeyboardButton struct {
	Text         string `json:"text"`
	URL          string `json:"url,omitempty"`
	CallbackData string `json:"callback_data,omitempty"`
}

type ReplyKeyboardMarkup struct {
	Keyboard              [][]KeyboardButton `json:"keyboard"`
	ResizeKeyboard        bool               `json:"resize_keyboard,omitzero"`
	OneTimeKeyboard       bool               `json:"one_time_keyboard,omitzero"`
	InputFieldPlaceholder string             `json:"input_field_placeholder,omitempty"`
	Selective             bool               `json:"selective,omitzero"`
}

type KeyboardButton struct {
	Text string `json:"text"`
}

type ReplyKeyboardRemove struct {
	RemoveKeyboard bool `json:"remove_keyboard"`
	Selective      bool `json:"selective,omitzero"`
}

type ForceReply struct {
	ForceReply            bool   `json:"force_reply"`
	InputFieldPlaceholder string `json:"input_field_placeholder,omitempty"`
	Selective             bool   `json:"selective,omitzero"`
}

// APIResponse is the envelope every Bot API method responds with.
type APIResponse struct {
	OK          bool           `json:"ok"`
	ErrorCode   int            `json:"error_code,omitzero"`
	Description string         `json:"description,omitempty"`
	Result      jsontext.Value `json:"result,omitempty"`
}
