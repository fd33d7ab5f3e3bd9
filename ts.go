package trcat

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

const tsHeader = "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<!DOCTYPE TS>\n"

type tsDocument struct {
	XMLName        xml.Name    `xml:"TS"`
	Version        string      `xml:"version,attr,omitempty"`
	Language       string      `xml:"language,attr,omitempty"`
	SourceLanguage string      `xml:"sourcelanguage,attr,omitempty"`
	Contexts       []tsContext `xml:"context"`
}

type tsContext struct {
	Name     string      `xml:"name"`
	Messages []tsMessage `xml:"message"`
}

type tsMessage struct {
	Numerus           string         `xml:"numerus,attr,omitempty"`
	Locations         []tsLocation   `xml:"location"`
	Source            string         `xml:"source"`
	Comment           string         `xml:"comment,omitempty"`
	ExtraComment      string         `xml:"extracomment,omitempty"`
	TranslatorComment string         `xml:"translatorcomment,omitempty"`
	Translation       *tsTranslation `xml:"translation"`
}

type tsLocation struct {
	Filename string `xml:"filename,attr,omitempty"`
	Line     string `xml:"line,attr,omitempty"`
}

type tsTranslation struct {
	Type  string   `xml:"type,attr,omitempty"`
	Text  string   `xml:",chardata"`
	Forms []string `xml:"numerusform"`
}

// charsetReader lets TS files declare a non UTF-8 encoding.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

func decodeTS(data []byte) (*Document, error) {
	var ts tsDocument
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader
	if err := dec.Decode(&ts); err != nil {
		return nil, err
	}

	doc := &Document{Language: ts.Language}
	for _, tsCtx := range ts.Contexts {
		group := ContextGroup{Name: tsCtx.Name}
		for _, msg := range tsCtx.Messages {
			group.Messages = append(group.Messages, msg.rawMessage())
		}
		doc.Contexts = append(doc.Contexts, group)
	}
	return doc, nil
}

func (m tsMessage) rawMessage() RawMessage {
	raw := RawMessage{
		Source:            m.Source,
		Comment:           m.Comment,
		ExtraComment:      m.ExtraComment,
		TranslatorComment: m.TranslatorComment,
		Numerus:           "no",
	}
	if m.Numerus != "" {
		raw.Numerus = m.Numerus
	}
	for _, loc := range m.Locations {
		line, _ := strconv.Atoi(strings.TrimPrefix(loc.Line, "+"))
		raw.Locations = append(raw.Locations, Location{File: loc.Filename, Line: line})
	}
	if m.Translation == nil {
		raw.Status = StatusUnfinished.String()
		return raw
	}
	raw.Status = m.Translation.Type
	numerus, _, _ := parseNumerus(raw.Numerus)
	switch {
	case len(m.Translation.Forms) > 0:
		raw.Forms = m.Translation.Forms
	case numerus:
		// plural message without numerusform children: the text, if any,
		// is a malformed translation and is reported by the loader
		if strings.TrimSpace(m.Translation.Text) != "" {
			text := m.Translation.Text
			raw.Translation = &text
		}
	default:
		text := m.Translation.Text
		raw.Translation = &text
	}
	return raw
}

func encodeTS(doc *Document) ([]byte, error) {
	ts := tsDocument{Version: "2.1", Language: strings.ReplaceAll(doc.Language, "-", "_")}
	for _, group := range doc.Contexts {
		tsCtx := tsContext{Name: group.Name}
		for _, raw := range group.Messages {
			msg, err := newTSMessage(raw)
			if err != nil {
				return nil, fmt.Errorf("context %q: %w", group.Name, err)
			}
			tsCtx.Messages = append(tsCtx.Messages, msg)
		}
		ts.Contexts = append(ts.Contexts, tsCtx)
	}

	out, err := xml.MarshalIndent(ts, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(append([]byte(tsHeader), out...), '\n'), nil
}

func newTSMessage(raw RawMessage) (tsMessage, error) {
	numerus, set, err := parseNumerus(raw.Numerus)
	if err != nil {
		return tsMessage{}, err
	}
	if !set && len(raw.Forms) > 0 {
		numerus = true
	}
	msg := tsMessage{
		Source:            raw.Source,
		Comment:           raw.Comment,
		ExtraComment:      raw.ExtraComment,
		TranslatorComment: raw.TranslatorComment,
		Translation:       &tsTranslation{Type: raw.Status},
	}
	if raw.Status == StatusFinished.String() {
		msg.Translation.Type = ""
	}
	if numerus {
		msg.Numerus = "yes"
		msg.Translation.Forms = raw.Forms
	} else if raw.Translation != nil {
		msg.Translation.Text = *raw.Translation
	}
	for _, loc := range raw.Locations {
		tsLoc := tsLocation{Filename: loc.File}
		if loc.Line > 0 {
			tsLoc.Line = strconv.Itoa(loc.Line)
		}
		msg.Locations = append(msg.Locations, tsLoc)
	}
	return msg, nil
}
