package botwire

import (
	"fmt"
	"reflect"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Union describes one untagged sum type on the wire: a logical name (used in
// error reporting) plus the ordered list of candidate alternatives.
//
// The Bot API writes no discriminator for these fields, so decoding works by
// structural trial: candidates are attempted strictly in declared order, and
// the first candidate that decodes without error wins. The declared order is
// therefore part of the wire contract. A candidate that structurally accepts
// a superset of an earlier candidate (for example *Message, which tolerates
// unknown object members) must be listed after the more specific shapes, or
// it will silently win every trial.
type Union[T any] struct {
	Name       string
	Candidates []Candidate[T]
}

// Candidate is a single alternative of a Union. Value is a zero value of the
// alternative's concrete type; its position in Union.Candidates fixes its
// trial priority.
//
// Trials reject unknown JSON object members, so that two object-shaped
// alternatives can be told apart by their member sets. Setting Lenient
// disables that rejection for this candidate, turning it into a catch-all for
// any object the preceding candidates refused.
type Candidate[T any] struct {
	Value   T
	Lenient bool
}

// DecodeFirst resolves a raw JSON node against u's candidates in declared
// order and returns the first alternative that decodes without error.
//
// DecodeFirst is a pure function of its inputs. If no candidate matches, it
// returns ErrKindNotRecognized carrying the union's name and the offered
// node; no other error kind is produced.
func DecodeFirst[T any](u Union[T], raw jsontext.Value, opts ...json.Options) (T, error) {
	jsonopts := json.JoinOptions(opts...)
	for _, c := range u.Candidates {
		trialOpts := jsonopts
		if !c.Lenient {
			trialOpts = json.JoinOptions(jsonopts, json.RejectUnknownMembers(true))
		}
		v, err := decodeCandidate(c.Value, raw, trialOpts)
		if err == nil {
			return v, nil
		}
	}
	var zero T
	return zero, ErrKindNotRecognized{union: u.Name, raw: raw}
}

// decodeCandidate decodes raw into a fresh value of c's concrete type.
//
// c is a zero value whose dynamic type may be either a struct/primitive or a
// pointer. In both cases we allocate fresh storage with reflect so that one
// failed trial cannot leak partial state into the next.
func decodeCandidate[T any](c T, raw jsontext.Value, jsonopts json.Options) (T, error) {
	var zero T
	rt := reflect.TypeOf(c)
	if rt.Kind() == reflect.Ptr {
		pv := reflect.New(rt.Elem())
		if err := json.Unmarshal(raw, pv.Interface(), jsonopts); err != nil {
			return zero, err
		}
		return pv.Interface().(T), nil
	}
	pv := reflect.New(rt)
	if err := json.Unmarshal(raw, pv.Interface(), jsonopts); err != nil {
		return zero, err
	}
	return pv.Elem().Interface().(T), nil
}

// MarshalFunc creates a [json.MarshalFuncV2] which intercepts marshaling for
// values of type T, verifies that the held alternative is one of u's declared
// candidates, and then emits the alternative's own default encoding with no
// discriminator and no extra nesting.
//
// Marshaling a value whose dynamic type is outside the candidate set is a
// programming error and returns ErrUnknownAlternative.
func MarshalFunc[T any](u Union[T]) *json.Marshalers {
	// Hack:
	//
	// When marshaling a Go type, github.com/go-json-experiment/json looks for
	// marshalers that are registered either for that concrete type, or for
	// any interfaces which the Go type implements.
	//
	// T is an interface here, so after validating the held alternative we
	// want the "default" marshaling of the same value, which would by default
	// re-invoke our marshalFunc in an infinite loop.
	//
	// To avoid this recursion, we set the skipNext toggle below whenever we
	// want a default marshaling. If our marshalFunc sees skipNext = true, it
	// un-toggles skipNext and returns [json.SkipFunc], which instructs
	// [json.Marshal] to skip our marshalFunc.
	skipNext := false
	skipNextPtr := &skipNext

	marshalFunc := func(enc *jsontext.Encoder, t T, jsonopts json.Options) error {
		if *skipNextPtr {
			*skipNextPtr = false
			return json.SkipFunc
		}

		if !isCandidate(t, u.Candidates) {
			return ErrUnknownAlternative{union: u.Name, typ: fmt.Sprintf("%T", t)}
		}

		*skipNextPtr = true // avoid recursion in MarshalEncode below
		err := json.MarshalEncode(enc, t, jsonopts)
		*skipNextPtr = false
		return err
	}

	return json.MarshalFuncV2(marshalFunc)
}

// UnmarshalFunc creates a [json.UnmarshalFuncV2] which intercepts
// unmarshaling into T and resolves the incoming node with DecodeFirst.
func UnmarshalFunc[T any](u Union[T]) *json.Unmarshalers {
	// The same recursion hazard as in MarshalFunc applies: trial-decoding a
	// candidate whose concrete type implements T would re-invoke our
	// unmarshalFunc. The skipNext toggle is set before every trial and
	// cleared after it, so nested fields of unrelated union types still
	// resolve through their own registered unmarshalers.
	skipNext := false
	skipNextPtr := &skipNext

	unmarshalFunc := func(dec *jsontext.Decoder, ptr *T, jsonopts json.Options) error {
		if *skipNextPtr {
			*skipNextPtr = false
			return json.SkipFunc
		}

		raw, err := dec.ReadValue()
		if err != nil {
			return fmt.Errorf("failed to read value for union %s: %w", u.Name, err)
		}

		for _, c := range u.Candidates {
			trialOpts := jsonopts
			if !c.Lenient {
				trialOpts = json.JoinOptions(jsonopts, json.RejectUnknownMembers(true))
			}
			*skipNextPtr = true // avoid recursion in the trial below
			v, err := decodeCandidate(c.Value, raw, trialOpts)
			*skipNextPtr = false
			if err == nil {
				*ptr = v
				return nil
			}
		}
		return ErrKindNotRecognized{union: u.Name, raw: raw}
	}
	return json.UnmarshalFuncV2(unmarshalFunc)
}

// JSONOptions bundles MarshalFunc and UnmarshalFunc for a single union.
func JSONOptions[T any](u Union[T]) json.Options {
	return json.JoinOptions(
		json.WithMarshalers(MarshalFunc(u)),
		json.WithUnmarshalers(UnmarshalFunc(u)),
	)
}

// isCandidate reports whether t's dynamic type matches one of the declared
// candidates, comparing pointer and non-pointer types as equivalent.
func isCandidate[T any](t T, candidates []Candidate[T]) bool {
	typeT := reflect.TypeOf(t)
	if typeT == nil {
		return false
	}
	if typeT.Kind() == reflect.Ptr {
		typeT = typeT.Elem()
	}
	for _, c := range candidates {
		typeC := reflect.TypeOf(c.Value)
		if typeC.Kind() == reflect.Ptr {
			typeC = typeC.Elem()
		}
		if typeC == typeT {
			return true
		}
	}
	return false
}
