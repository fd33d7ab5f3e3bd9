// Package test holds catalog fixtures and helpers shared by the test suites.
package test

import (
	"os"
	"path/filepath"
)

// FinnishYAML is a small Finnish catalog in the YAML layout.
const FinnishYAML = `language: fi
contexts:
  - name: BaseGui
    messages:
      - source: "&Open"
        translation: "&Avaa"
      - source: "%1 second(s)"
        numerus: true
        forms: ["sekunti", "%1 sekuntia"]
      - source: Top
        comment: vertical alignment
        translation: Ylä
      - source: Top
        comment: beginning of list
        translation: Alkuun
      - source: Save
        translation: Tallenna
        status: unfinished
      - source: Print
        translation: Tulosta
        status: obsolete
`

// FinnishTS is FinnishYAML in the Qt Linguist layout.
const FinnishTS = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE TS>
<TS version="2.1" language="fi_FI">
<context>
    <name>BaseGui</name>
    <message>
        <location filename="../src/basegui.cpp" line="+120"/>
        <source>&amp;Open</source>
        <translation>&amp;Avaa</translation>
    </message>
    <message numerus="yes">
        <source>%1 second(s)</source>
        <translation>
            <numerusform>sekunti</numerusform>
            <numerusform>%1 sekuntia</numerusform>
        </translation>
    </message>
    <message>
        <source>Top</source>
        <comment>vertical alignment</comment>
        <translation>Ylä</translation>
    </message>
    <message>
        <source>Top</source>
        <comment>beginning of list</comment>
        <translation>Alkuun</translation>
    </message>
    <message>
        <source>Save</source>
        <translation type="unfinished">Tallenna</translation>
    </message>
    <message>
        <source>Print</source>
        <translation type="vanished">Tulosta</translation>
    </message>
</context>
</TS>
`

// SwedishTOML is a catalog in the TOML layout.
const SwedishTOML = `language = "sv"

[[contexts]]
name = "BaseGui"

[[contexts.messages]]
source = "&Open"
translation = "&Öppna"

[[contexts.messages]]
source = "%1 second(s)"
forms = ["%1 sekund", "%1 sekunder"]
`

// WriteCatalogs writes name/content pairs into dir.
func WriteCatalogs(dir string, files map[string]string) error {
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}
