// SPDX-FileCopyrightText: © 2024 Donald Hoelle. All rights reserved.
// SPDX-License-Identifier: MIT
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package botwire implements the serialization layer of a Telegram Bot API
// client using the Go JSON V2 experiment
// ([github.com/go-json-experiment/json]): untagged sum types resolved by
// ordered structural trial, dynamically-typed request parameter maps, and the
// assembly of both into single outgoing requests.
//
// # Untagged unions
//
// Several Bot API fields legally hold one of several structurally different
// shapes with no discriminator. chat_id is a number or a string; reply_markup
// is one of four keyboard shapes; a file argument is an upload marker or a
// plain reference string. Each such field is described by a [Union]: a
// logical name plus an ordered candidate list.
//
// Decoding attempts each candidate strictly in declared order and commits to
// the first success:
//
//	var rm ReplyMarkup
//	in := []byte(`{"remove_keyboard":true}`)
//	_ = json.Unmarshal(in, &rm, Options())
//	// rm is a ReplyKeyboardRemove
//
// Because the wire format carries no tag, the declared candidate order is
// part of the protocol: a node that satisfies two candidates resolves to the
// first one listed, never the "most specific" one. Catch-all candidates are
// marked [Candidate.Lenient] and must be listed last. If no candidate
// matches, decoding fails with [ErrKindNotRecognized], which carries the
// union's name and the offered node.
//
// Encoding writes whichever alternative is held, with no tag and no extra
// nesting, so decode(encode(v)) reproduces the held alternative.
//
// # Request assembly
//
// Outgoing calls are built from a [Params] map whose entries are [Value]s: a
// closed enum over bool, int, float, string, record, sequence and null. The
// zero Value is absent; absent entries never reach the wire, while explicit
// zero, false and empty-string values are emitted literally:
//
//	p := Params{
//		"chat_id": Record(ChatID(42)),
//		"text":    String("hi"),
//	}
//	req, _ := Assemble("", token, "sendMessage", p)
//	// req.Body == {"chat_id":42,"text":"hi"}
//	// req.URL  == https://api.telegram.org/bot<token>/sendMessage
//
// [Assemble] computes the target address from the fixed template
// https://<host>/bot<token>/<method> and fails closed with
// [ErrInvalidEndpoint] if the substitution would not survive URL parsing
// intact. When a parameter holds a [FileUpload], the request switches to
// multipart/form-data with one file part per upload.
//
// # Transport
//
// [Client] is the thin collaborator that sends assembled requests: one POST
// per call, no retries, context-based cancellation only. All serialization
// components are pure transforms over in-memory data and are safe for
// concurrent use on independent inputs.
//
// [github.com/go-json-experiment/json]: https://github.com/go-json-experiment/json
package botwire
