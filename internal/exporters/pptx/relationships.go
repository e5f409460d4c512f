package pptx

import (
	"strconv"
	"strings"
)

// Relationship types.
const (
	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeExtendedProps  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relTypeSlide          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideLayout    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeSlideMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relTypeTheme          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	relTypePresProps      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/presProps"
	relTypeViewProps      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/viewProps"
	relTypeTableStyles    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/tableStyles"
	relTypeImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeChart          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/chart"
	relTypeHyperlink      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
)

// implicitRelTypes are resolved by type rather than by an r:id reference.
var implicitRelTypes = map[string]bool{
	relTypeOfficeDocument: true,
	relTypeCoreProps:      true,
	relTypeExtendedProps:  true,
	relTypeSlideLayout:    true,
	relTypeSlideMaster:    true,
	relTypeTheme:          true,
	relTypePresProps:      true,
	relTypeViewProps:      true,
	relTypeTableStyles:    true,
}

// Relationship is one entry of a part's relationship manifest.
type Relationship struct {
	ID       string
	Type     string
	Target   string
	External bool
}

// Relationships allocates part-scoped relationship IDs (rId1, rId2, ...).
// Identical entries share one ID. Mark and Rollback make allocation
// transactional per element.
type Relationships struct {
	rels []Relationship
}

// Add registers an internal relationship and returns its ID.
func (r *Relationships) Add(relType, target string) string {
	return r.add(Relationship{Type: relType, Target: target})
}

// AddExternal registers an external relationship and returns its ID.
func (r *Relationships) AddExternal(relType, target string) string {
	return r.add(Relationship{Type: relType, Target: target, External: true})
}

func (r *Relationships) add(rel Relationship) string {
	for _, existing := range r.rels {
		if existing.Type == rel.Type && existing.Target == rel.Target && existing.External == rel.External {
			return existing.ID
		}
	}
	rel.ID = "rId" + strconv.Itoa(len(r.rels)+1)
	r.rels = append(r.rels, rel)
	return rel.ID
}

// Mark returns a point Rollback can return to.
func (r *Relationships) Mark() int {
	return len(r.rels)
}

// Rollback discards every relationship added after mark.
func (r *Relationships) Rollback(mark int) {
	if mark >= 0 && mark < len(r.rels) {
		r.rels = r.rels[:mark]
	}
}

// Len returns the number of relationships.
func (r *Relationships) Len() int {
	return len(r.rels)
}

// All returns a copy of the relationships in ID order.
func (r *Relationships) All() []Relationship {
	return append([]Relationship(nil), r.rels...)
}

// XML returns the relationship manifest part.
func (r *Relationships) XML() []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, rel := range r.rels {
		b.WriteString(`<Relationship Id="`)
		b.WriteString(rel.ID)
		b.WriteString(`" Type="`)
		b.WriteString(rel.Type)
		b.WriteString(`" Target="`)
		b.WriteString(escape(rel.Target))
		b.WriteString(`"`)
		if rel.External {
			b.WriteString(` TargetMode="External"`)
		}
		b.WriteString(`/>`)
	}
	b.WriteString(`</Relationships>`)
	return []byte(b.String())
}

// relsPath returns the manifest path for a part, e.g.
// "ppt/slides/slide1.xml" -> "ppt/slides/_rels/slide1.xml.rels".
func relsPath(part string) string {
	dir, file := "", part
	if i := strings.LastIndex(part, "/"); i >= 0 {
		dir, file = part[:i+1], part[i+1:]
	}
	return dir + "_rels/" + file + ".rels"
}
