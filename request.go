package botwire

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/google/uuid"
)

// DefaultHost is the host of the public Bot API.
const DefaultHost = "api.telegram.org"

// Request is an assembled, ready-to-send API call: the method identifier,
// the computed address, and the serialized body with its content type. It is
// immutable once returned and carries no transport behavior of its own.
type Request struct {
	Method      string
	URL         string
	ContentType string
	Body        []byte
}

// Endpoint substitutes token and method into the fixed address template
// https://<host>/bot<token>/<method>. An empty host means DefaultHost.
//
// Construction fails closed: if the substitution does not survive URL parsing
// intact, or either component would alter the path structure, Endpoint
// returns ErrInvalidEndpoint rather than a malformed address.
func Endpoint(host, token, method string) (string, error) {
	if host == "" {
		host = DefaultHost
	}
	raw := "https://" + host + "/bot" + token + "/" + method
	if token == "" {
		return "", ErrInvalidEndpoint{endpoint: raw, reason: "empty token"}
	}
	if method == "" {
		return "", ErrInvalidEndpoint{endpoint: raw, reason: "empty method"}
	}
	if strings.ContainsAny(token, "/ ") || strings.ContainsAny(method, "/ ") {
		return "", ErrInvalidEndpoint{endpoint: raw, reason: "token or method contains path separators"}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidEndpoint{endpoint: raw, reason: err.Error()}
	}
	// Reparsing must reproduce the template exactly: a token containing "?",
	// "#" or an escape sequence would otherwise silently move parts of the
	// path into the query, fragment or a decoded form.
	if u.Scheme != "https" || u.Host != host || u.Path != "/bot"+token+"/"+method ||
		u.RawQuery != "" || u.Fragment != "" {
		return "", ErrInvalidEndpoint{endpoint: raw, reason: "token or method breaks URL structure"}
	}
	return raw, nil
}

// Assemble turns a method identifier and a parameter map into one outgoing
// request against https://<host>/bot<token>/<method>.
//
// Present parameters are serialized with the package's union-aware JSON
// options; absent entries are omitted, explicit zero values are emitted
// literally. If any top-level parameter holds a FileUpload the request is
// encoded as multipart/form-data with one file part per upload, otherwise as
// a single UTF-8 JSON document. Unserializable parameter values are a
// programming error and fail the assembly outright.
func Assemble(host, token, method string, p Params) (*Request, error) {
	endpoint, err := Endpoint(host, token, method)
	if err != nil {
		return nil, err
	}

	opts := Options()
	for _, name := range p.present() {
		if _, ok := p[name].upload(); ok {
			return assembleMultipart(endpoint, method, p, opts)
		}
	}

	body, err := json.Marshal(p, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode parameters for %s: %w", method, err)
	}
	return &Request{
		Method:      method,
		URL:         endpoint,
		ContentType: "application/json; charset=utf-8",
		Body:        body,
	}, nil
}

// assembleMultipart writes uploads as file parts and every other present
// parameter as a flat form field. Unnamed uploads get a generated part name.
func assembleMultipart(endpoint, method string, p Params, opts json.Options) (*Request, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, name := range p.present() {
		v := p[name]
		if up, ok := v.upload(); ok {
			fileName := up.Name
			if fileName == "" {
				fileName = uuid.NewString()
			}
			if up.Content == nil {
				return nil, fmt.Errorf("upload %s has no content", name)
			}
			part, err := w.CreateFormFile(name, fileName)
			if err != nil {
				return nil, fmt.Errorf("failed to create file part %s: %w", name, err)
			}
			if _, err := io.Copy(part, up.Content); err != nil {
				return nil, fmt.Errorf("failed to copy upload %s: %w", name, err)
			}
			continue
		}
		fv, err := v.formValue(opts)
		if err != nil {
			return nil, fmt.Errorf("failed to encode parameter %s: %w", name, err)
		}
		if err := w.WriteField(name, fv); err != nil {
			return nil, fmt.Errorf("failed to write field %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return &Request{
		Method:      method,
		URL:         endpoint,
		ContentType: w.FormDataContentType(),
		Body:        buf.Bytes(),
	}, nil
}
