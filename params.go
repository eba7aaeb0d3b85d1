package botwire

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

type valueKind int

const (
	kindAbsent valueKind = iota
	kindBool
	kindInt
	kindFloat
	kindString
	kindRecord
	kindSeq
	kindNull
)

// Value is one entry of a Params map: a closed enum over the shapes a request
// parameter can take. The zero Value is Absent, which is distinct from an
// explicit JSON null: absent entries are never emitted, Null() is emitted
// literally.
//
// Union values (ChatRef, ReplyMarkup, InputFile, ...) ride in through Record,
// which defers to the value's own encoding.
type Value struct {
	kind  valueKind
	boolV bool
	intV  int64
	fltV  float64
	strV  string
	recV  any
	seqV  []Value
}

func Bool(b bool) Value     { return Value{kind: kindBool, boolV: b} }
func Int(i int64) Value     { return Value{kind: kindInt, intV: i} }
func Float(f float64) Value { return Value{kind: kindFloat, fltV: f} }
func String(s string) Value { return Value{kind: kindString, strV: s} }
func Seq(vs ...Value) Value { return Value{kind: kindSeq, seqV: vs} }
func Null() Value           { return Value{kind: kindNull} }

// Record wraps a nested record or union value. v must be serializable with
// the package's JSON options; anything else is a programming error surfaced
// as a hard error at assembly time, never dropped or coerced.
func Record(v any) Value { return Value{kind: kindRecord, recV: v} }

// IsAbsent reports whether v is the deliberately-unset zero Value.
func (v Value) IsAbsent() bool { return v.kind == kindAbsent }

func (v Value) MarshalJSONV2(enc *jsontext.Encoder, opts json.Options) error {
	switch v.kind {
	case kindBool:
		return enc.WriteToken(jsontext.Bool(v.boolV))
	case kindInt:
		return enc.WriteToken(jsontext.Int(v.intV))
	case kindFloat:
		return enc.WriteToken(jsontext.Float(v.fltV))
	case kindString:
		return enc.WriteToken(jsontext.String(v.strV))
	case kindNull:
		return enc.WriteToken(jsontext.Null)
	case kindRecord:
		return json.MarshalEncode(enc, v.recV, opts)
	case kindSeq:
		if err := enc.WriteToken(jsontext.ArrayStart); err != nil {
			return err
		}
		for _, e := range v.seqV {
			if err := e.MarshalJSONV2(enc, opts); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.ArrayEnd)
	default:
		return fmt.Errorf("absent value cannot be encoded")
	}
}

// upload returns the FileUpload carried by v, if any. Only top-level record
// values are inspected; uploads nested deeper are emitted as their attach
// markers and must be attached by the caller.
func (v Value) upload() (FileUpload, bool) {
	if v.kind != kindRecord {
		return FileUpload{}, false
	}
	if up, ok := v.recV.(FileUpload); ok {
		return up, true
	}
	return FileUpload{}, false
}

// formValue renders v as a flat multipart form field: scalars as their plain
// text form, structured values as a JSON document.
func (v Value) formValue(opts json.Options) (string, error) {
	switch v.kind {
	case kindBool:
		return strconv.FormatBool(v.boolV), nil
	case kindInt:
		return strconv.FormatInt(v.intV, 10), nil
	case kindFloat:
		return strconv.FormatFloat(v.fltV, 'f', -1, 64), nil
	case kindString:
		return v.strV, nil
	default:
		b, err := json.Marshal(v, opts)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

// Params collects the named parameters of one API call. Entries a caller
// never sets (or sets to the zero Value) are absent and omitted from the
// request body; entries set to an explicit zero, false or empty string are
// emitted literally. Params is built fresh per call and consumed once by
// Assemble.
type Params map[string]Value

// Set stores v under name and returns p for chaining.
func (p Params) Set(name string, v Value) Params {
	p[name] = v
	return p
}

// present returns the names of all non-absent entries in lexicographic
// order. Sorting keeps assembled bodies deterministic.
func (p Params) present() []string {
	names := make([]string, 0, len(p))
	for name, v := range p {
		if v.IsAbsent() {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p Params) MarshalJSONV2(enc *jsontext.Encoder, opts json.Options) error {
	if err := enc.WriteToken(jsontext.ObjectStart); err != nil {
		return err
	}
	for _, name := range p.present() {
		if err := enc.WriteToken(jsontext.String(name)); err != nil {
			return err
		}
		if err := p[name].MarshalJSONV2(enc, opts); err != nil {
			return fmt.Errorf("failed to encode parameter %s: %w", name, err)
		}
	}
	return enc.WriteToken(jsontext.ObjectEnd)
}
