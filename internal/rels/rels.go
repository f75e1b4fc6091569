// Package rels reads and writes OOXML relationship parts (.rels).
//
// The xlsx reader uses it to locate worksheets, the shared-string table and
// the stylesheet from xl/_rels/workbook.xml.rels.  The xlsx writer uses it
// to emit the package and workbook relationships.
package rels

import (
	"encoding/xml"
	"path"
	"strings"

	"github.com/TsubasaBE/go-spsheet/container"
)

// Namespace of a .rels document.
const Namespace = "http://schemas.openxmlformats.org/package/2006/relationships"

// Relationship types used by spreadsheet packages.
const (
	TypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	TypeCoreProperties = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	TypeExtProperties  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	TypeWorksheet      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
	TypeStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	TypeSharedStrings  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings"
)

// Relationships is the root element of a .rels XML document.
type Relationships struct {
	XMLName       xml.Name       `xml:"Relationships"`
	Xmlns         string         `xml:"xmlns,attr,omitempty"`
	Relationships []Relationship `xml:"Relationship"`
}

// Relationship is one entry in a .rels XML document.
type Relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// Parse decodes the raw bytes of the .rels part named part.
func Parse(part string, data []byte) (*Relationships, error) {
	var r Relationships
	if err := container.Unmarshal(part, data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Targets returns a map of relationship ID → target string.
func (r *Relationships) Targets() map[string]string {
	m := make(map[string]string, len(r.Relationships))
	for _, rel := range r.Relationships {
		m[rel.ID] = rel.Target
	}
	return m
}

// ByType returns the first relationship of the given type.
func (r *Relationships) ByType(typ string) (Relationship, bool) {
	for _, rel := range r.Relationships {
		if rel.Type == typ {
			return rel, true
		}
	}
	return Relationship{}, false
}

// Marshal encodes rels as a standalone .rels document.
func Marshal(rels []Relationship) ([]byte, error) {
	doc := Relationships{Xmlns: Namespace, Relationships: rels}
	out, err := xml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

// Resolve turns a relationship target into a package part name.  Relative
// targets are resolved against the directory of the source part; absolute
// targets ("/xl/...") are taken from the package root.
func Resolve(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join(path.Dir(source), target)
}
