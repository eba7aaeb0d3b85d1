package botwire

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoint_Template(t *testing.T) {
	got, err := Endpoint("", "123:abc", "sendMessage")
	require.NoError(t, err)
	assert.Equal(t, "https://api.telegram.org/bot123:abc/sendMessage", got)

	got, err = Endpoint("bot-api.internal:8081", "123:abc", "getMe")
	require.NoError(t, err)
	assert.Equal(t, "https://bot-api.internal:8081/bot123:abc/getMe", got)
}

func TestEndpoint_FailsClosed(t *testing.T) {
	for _, tc := range []struct {
		name   string
		token  string
		method string
	}{
		{"empty token", "", "sendMessage"},
		{"empty method", "123:abc", ""},
		{"slash in token", "123/abc", "sendMessage"},
		{"space in token", "123 abc", "sendMessage"},
		{"query in token", "123?abc", "sendMessage"},
		{"fragment in token", "123#abc", "sendMessage"},
		{"escape in token", "123%2fabc", "sendMessage"},
		{"query in method", "123:abc", "sendMessage?x=1"},
	} {
		_, err := Endpoint("", tc.token, tc.method)
		require.Error(t, err, tc.name)
		var epErr ErrInvalidEndpoint
		assert.True(t, errors.As(err, &epErr), "%s: want ErrInvalidEndpoint, got %T", tc.name, err)
	}
}

func TestAssemble_SendMessageScenario(t *testing.T) {
	p := Params{
		"chat_id":      Record(ChatID(42)),
		"text":         String("hi"),
		"reply_markup": Value{},
	}
	req, err := Assemble("", "123:abc", "sendMessage", p)
	require.NoError(t, err)

	assert.Equal(t, "sendMessage", req.Method)
	assert.Equal(t, "https://api.telegram.org/bot123:abc/sendMessage", req.URL)
	assert.Equal(t, "application/json; charset=utf-8", req.ContentType)
	assert.Equal(t, `{"chat_id":42,"text":"hi"}`, string(req.Body))
}

func TestAssemble_InvalidEndpointBeforeBody(t *testing.T) {
	_, err := Assemble("", "bad/token", "sendMessage", Params{"text": String("hi")})
	var epErr ErrInvalidEndpoint
	require.True(t, errors.As(err, &epErr))
}

func TestAssemble_Multipart(t *testing.T) {
	p := Params{
		"chat_id":  Record(ChatID(7)),
		"document": Record(InputFile(FileUpload{Name: "report.txt", Content: strings.NewReader("contents")})),
		"caption":  String("monthly report"),
	}
	req, err := Assemble("", "123:abc", "sendDocument", p)
	require.NoError(t, err)

	mediaType, mtParams, err := mime.ParseMediaType(req.ContentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	fields := map[string]string{}
	var fileName, fileContent string
	r := multipart.NewReader(bytes.NewReader(req.Body), mtParams["boundary"])
	for {
		part, err := r.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(part)
		require.NoError(t, err)
		if part.FileName() != "" {
			fileName = part.FileName()
			fileContent = string(data)
			assert.Equal(t, "document", part.FormName())
			continue
		}
		fields[part.FormName()] = string(data)
	}

	assert.Equal(t, "report.txt", fileName)
	assert.Equal(t, "contents", fileContent)
	assert.Equal(t, "7", fields["chat_id"])
	assert.Equal(t, "monthly report", fields["caption"])
}

func TestAssemble_MultipartGeneratesNameForAnonymousUpload(t *testing.T) {
	p := Params{
		"document": Record(FileUpload{Content: strings.NewReader("x")}),
	}
	req, err := Assemble("", "123:abc", "sendDocument", p)
	require.NoError(t, err)

	_, mtParams, err := mime.ParseMediaType(req.ContentType)
	require.NoError(t, err)
	r := multipart.NewReader(bytes.NewReader(req.Body), mtParams["boundary"])
	part, err := r.NextPart()
	require.NoError(t, err)
	assert.NotEmpty(t, part.FileName())
}

func TestAssemble_UploadWithoutContentFails(t *testing.T) {
	_, err := Assemble("", "123:abc", "sendDocument", Params{
		"document": Record(FileUpload{Name: "report.txt"}),
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "no content")
}
