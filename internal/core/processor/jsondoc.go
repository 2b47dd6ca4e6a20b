package processor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/docuglot/backend/internal/domain"
)

// JSONProcessor walks the document tree and translates leaf string values
// only. Keys, member order, array order and non-string scalars are preserved
// exactly, which requires an order-keeping tree instead of map decoding.
type JSONProcessor struct {
	root   *jsonValue
	leaves []*jsonValue
}

func NewJSON() *JSONProcessor {
	return &JSONProcessor{}
}

type jsonKind int

const (
	jsonNull jsonKind = iota
	jsonBool
	jsonNumber
	jsonString
	jsonArray
	jsonObject
)

type jsonMember struct {
	key   string
	value *jsonValue
}

type jsonValue struct {
	kind    jsonKind
	str     string
	num     json.Number
	boolean bool
	arr     []*jsonValue
	obj     []jsonMember
}

func parseJSONValue(dec *json.Decoder) (*jsonValue, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return parseJSONToken(dec, tok)
}

func parseJSONToken(dec *json.Decoder, tok json.Token) (*jsonValue, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			v := &jsonValue{kind: jsonObject}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key token %v", keyTok)
				}
				val, err := parseJSONValue(dec)
				if err != nil {
					return nil, err
				}
				v.obj = append(v.obj, jsonMember{key: key, value: val})
			}
			if _, err := dec.Token(); err != nil { // closing brace
				return nil, err
			}
			return v, nil
		case '[':
			v := &jsonValue{kind: jsonArray}
			for dec.More() {
				elem, err := parseJSONValue(dec)
				if err != nil {
					return nil, err
				}
				v.arr = append(v.arr, elem)
			}
			if _, err := dec.Token(); err != nil { // closing bracket
				return nil, err
			}
			return v, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return &jsonValue{kind: jsonString, str: t}, nil
	case json.Number:
		return &jsonValue{kind: jsonNumber, num: t}, nil
	case bool:
		return &jsonValue{kind: jsonBool, boolean: t}, nil
	case nil:
		return &jsonValue{kind: jsonNull}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func (p *JSONProcessor) Chunk(content []byte) ([]domain.TranslationUnit, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	root, err := parseJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("json decode failed: %w", err)
	}
	p.root = root

	var units []domain.TranslationUnit
	p.collectLeaves(root, "", &units)
	return units, nil
}

func (p *JSONProcessor) collectLeaves(v *jsonValue, path string, units *[]domain.TranslationUnit) {
	switch v.kind {
	case jsonArray:
		for i, elem := range v.arr {
			p.collectLeaves(elem, fmt.Sprintf("%s[%d]", path, i), units)
		}
	case jsonObject:
		for _, member := range v.obj {
			memberPath := member.key
			if path != "" {
				memberPath = path + "." + member.key
			}
			p.collectLeaves(member.value, memberPath, units)
		}
	case jsonString:
		if strings.TrimSpace(v.str) == "" || shouldSkipTranslation(v.str) {
			return
		}
		*units = append(*units, domain.TranslationUnit{
			Position:   domain.Position{Chunk: len(p.leaves), Path: path},
			SourceText: v.str,
			Status:     domain.UnitStatusPending,
		})
		p.leaves = append(p.leaves, v)
	}
}

func (p *JSONProcessor) Reassemble(units []domain.TranslationUnit) ([]byte, error) {
	if p.root == nil {
		return nil, fmt.Errorf("json reassemble called before chunk")
	}
	for _, u := range units {
		if u.Position.Chunk >= len(p.leaves) {
			return nil, fmt.Errorf("unit position %d out of range", u.Position.Chunk)
		}
		p.leaves[u.Position.Chunk].str = translatedOrSource(u)
	}

	var buf bytes.Buffer
	if err := encodeJSONValue(&buf, p.root, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const jsonIndent = "  "

func encodeJSONValue(buf *bytes.Buffer, v *jsonValue, depth int) error {
	switch v.kind {
	case jsonNull:
		buf.WriteString("null")
	case jsonBool:
		if v.boolean {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case jsonNumber:
		buf.WriteString(v.num.String())
	case jsonString:
		encoded, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(encoded)
	case jsonArray:
		if len(v.arr) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, elem := range v.arr {
			buf.WriteString(strings.Repeat(jsonIndent, depth+1))
			if err := encodeJSONValue(buf, elem, depth+1); err != nil {
				return err
			}
			if i < len(v.arr)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat(jsonIndent, depth))
		buf.WriteByte(']')
	case jsonObject:
		if len(v.obj) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i, member := range v.obj {
			buf.WriteString(strings.Repeat(jsonIndent, depth+1))
			key, err := json.Marshal(member.key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteString(": ")
			if err := encodeJSONValue(buf, member.value, depth+1); err != nil {
				return err
			}
			if i < len(v.obj)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat(jsonIndent, depth))
		buf.WriteByte('}')
	}
	return nil
}
