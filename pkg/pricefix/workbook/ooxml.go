package workbook

import (
	"encoding/xml"
	"errors"
	"io/fs"
	"path"
	"strings"
)

// Relationship type suffixes followed from the workbook down to its charts.
const (
	relWorksheet = "/worksheet"
	relDrawing   = "/drawing"
	relChart     = "/chart"
)

type xlsxRelationships struct {
	Relationships []xlsxRelationship `xml:"Relationship"`
}

type xlsxRelationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// target returns the target of relationship id if it has the given type.
func (r xlsxRelationships) target(id, relType string) (string, bool) {
	for _, rel := range r.Relationships {
		if rel.ID == id && strings.HasSuffix(rel.Type, relType) {
			return rel.Target, true
		}
	}
	return "", false
}

// first returns the target of the first relationship of the given type.
func (r xlsxRelationships) first(relType string) (string, bool) {
	for _, rel := range r.Relationships {
		if strings.HasSuffix(rel.Type, relType) {
			return rel.Target, true
		}
	}
	return "", false
}

// ooxmlPackage reads parts of an OOXML zip container.
type ooxmlPackage struct {
	fsys fs.FS
}

func (p ooxmlPackage) decode(part string, v any) error {
	data, err := fs.ReadFile(p.fsys, part)
	if err != nil {
		return err
	}
	return xml.Unmarshal(data, v)
}

// rels decodes the relationships owned by part. A part without a
// relationships file has none.
func (p ooxmlPackage) rels(part string) (xlsxRelationships, error) {
	var rels xlsxRelationships
	err := p.decode(path.Join(path.Dir(part), "_rels", path.Base(part)+".rels"), &rels)
	if errors.Is(err, fs.ErrNotExist) {
		return rels, nil
	}
	return rels, err
}

// resolveTarget resolves a relationship target against the part that owns it.
func resolveTarget(owner, target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(strings.TrimPrefix(target, "/"))
	}
	return path.Join(path.Dir(owner), target)
}
