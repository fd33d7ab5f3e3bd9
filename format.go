package trcat

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"
)

// Format selects the document codec.
type Format int

const (
	FormatAuto Format = iota
	FormatYAML
	FormatTOML
	FormatTS
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	case FormatTS:
		return "ts"
	default:
		return "auto"
	}
}

// ParseFormat accepts a format name or file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "auto":
		return FormatAuto, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "ts", "xml":
		return FormatTS, nil
	default:
		return FormatAuto, fmt.Errorf("unknown catalog format %q", s)
	}
}

// FormatFromPath picks a format from the file extension, FormatAuto when
// the extension is not recognized.
func FormatFromPath(name string) Format {
	f, err := ParseFormat(path.Ext(name))
	if err != nil {
		return FormatAuto
	}
	return f
}

func sniffFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n\xef\xbb\xbf")
	if len(trimmed) > 0 && trimmed[0] == '<' {
		return FormatTS
	}
	return FormatYAML
}

// DecodeDocument parses data without normalizing it.
func DecodeDocument(data []byte, format Format) (*Document, error) {
	if format == FormatAuto {
		format = sniffFormat(data)
	}
	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case FormatTOML:
		return decodeTOML(data)
	case FormatTS:
		return decodeTS(data)
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}
	return &doc, nil
}

// tomlDocument mirrors Document with records left generic, so that each
// record is converted on its own.
type tomlDocument struct {
	Language string `toml:"language"`
	Contexts []struct {
		Name     string        `toml:"name"`
		Messages []interface{} `toml:"messages"`
	} `toml:"contexts"`
}

func decodeTOML(data []byte) (*Document, error) {
	var generic tomlDocument
	if err := toml.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	doc := &Document{Language: generic.Language}
	for _, group := range generic.Contexts {
		out := ContextGroup{Name: group.Name}
		for _, record := range group.Messages {
			out.Messages = append(out.Messages, rawMessageFromTable(record))
		}
		doc.Contexts = append(doc.Contexts, out)
	}
	return doc, nil
}

// EncodeDocument writes doc in the given format. FormatAuto means YAML.
func EncodeDocument(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatAuto, FormatYAML:
		return yaml.Marshal(doc)
	case FormatTOML:
		return toml.Marshal(doc)
	case FormatTS:
		return encodeTS(doc)
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}
}
