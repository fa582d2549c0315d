package extractor

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/wudi/docxkit/markup"
	"github.com/wudi/docxkit/model"
)

// fieldParser reconstructs field codes from a paragraph's run sequence.
// Field ids are a parse-order counter scoped to one parser instance, so
// concurrent parse calls never share state.
type fieldParser struct {
	nextID int
}

func (fp *fieldParser) id() string {
	fp.nextID++
	return "f" + strconv.Itoa(fp.nextID)
}

// simpleField reads a fldSimple node: the instruction lives in the instr
// attribute and the cached result in the nested run text.
func (fp *fieldParser) simpleField(el *etree.Element) *model.Field {
	instr, _ := markup.Attr(el, "instr")
	f, ok := fp.build(instr)
	if !ok {
		return nil
	}
	f.Dirty = markup.BoolAttr(el, "dirty")
	f.Locked = markup.BoolAttr(el, "fldLock")
	if res := runsText(el); res != "" {
		f.Result = &res
	}
	return &f
}

// Complex-field machine states.
const (
	fieldIdle = iota
	fieldCollectingCode
	fieldCollectingResult
)

// complexFieldMachine walks runs in paragraph order and emits one field per
// balanced begin/end pair. An unterminated field at paragraph end is
// dropped; a nested begin restarts collection (nesting is not balanced).
type complexFieldMachine struct {
	fp     *fieldParser
	state  int
	code   strings.Builder
	result strings.Builder
	dirty  bool
	locked bool
	fields []model.Field
}

func newComplexFieldMachine(fp *fieldParser) *complexFieldMachine {
	return &complexFieldMachine{fp: fp}
}

// feedRun consumes one w:r element.
func (m *complexFieldMachine) feedRun(run *etree.Element) {
	for _, ch := range run.ChildElements() {
		switch ch.Tag {
		case "fldChar":
			m.control(ch)
		case "instrText":
			if m.state == fieldCollectingCode {
				m.code.WriteString(markup.Text(ch))
			}
		case "t":
			if m.state == fieldCollectingResult {
				m.result.WriteString(markup.Text(ch))
			}
		}
	}
}

func (m *complexFieldMachine) control(ch *etree.Element) {
	switch markup.AttrDefault(ch, "fldCharType", "") {
	case "begin":
		m.state = fieldCollectingCode
		m.code.Reset()
		m.result.Reset()
		m.dirty = markup.BoolAttr(ch, "dirty")
		m.locked = markup.BoolAttr(ch, "fldLock")
	case "separate":
		if m.state == fieldCollectingCode {
			m.state = fieldCollectingResult
		}
	case "end":
		m.end()
	}
}

func (m *complexFieldMachine) end() {
	if m.state == fieldIdle {
		return
	}
	sawResult := m.state == fieldCollectingResult
	m.state = fieldIdle
	f, ok := m.fp.build(m.code.String())
	if !ok {
		return
	}
	f.Dirty = m.dirty
	f.Locked = m.locked
	if sawResult {
		res := m.result.String()
		f.Result = &res
	}
	m.fields = append(m.fields, f)
}

// build derives type and arguments from the raw instruction text. A code
// that is empty after trimming yields no field.
func (fp *fieldParser) build(code string) (model.Field, bool) {
	tokens := strings.Fields(code)
	if len(tokens) == 0 {
		return model.Field{}, false
	}
	return model.Field{
		ID:        fp.id(),
		Code:      code,
		Type:      strings.ToUpper(tokens[0]),
		Arguments: tokens[1:],
	}, true
}

// runsText concatenates the w:t content of every run nested under el.
func runsText(el *etree.Element) string {
	var b strings.Builder
	for _, run := range markup.Children(el, "r") {
		for _, t := range markup.Children(run, "t") {
			b.WriteString(markup.Text(t))
		}
	}
	return b.String()
}
