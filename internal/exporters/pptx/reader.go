package pptx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/presentai/presentai/internal/core/domain"
)

// Report summarises a package read back from bytes.
type Report struct {
	Title      string
	Slides     []SlideSummary
	MediaCount int
	ChartCount int
	Parts      []string
}

// SlideSummary is the readable content of one slide.
type SlideSummary struct {
	Part       string
	Paragraphs []string
	Pictures   int
	Charts     int
	Tables     int
}

// Text returns the slide's non-empty paragraphs joined by newlines.
func (s SlideSummary) Text() string {
	return strings.Join(s.Paragraphs, "\n")
}

// PictureCount returns the number of pictures across all slides.
func (r *Report) PictureCount() int {
	n := 0
	for _, s := range r.Slides {
		n += s.Pictures
	}
	return n
}

type pkg struct {
	files map[string]*zip.File
	names []string
}

func openPackage(data []byte) (*pkg, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a zip archive: %v", domain.ErrInvalidInput, err)
	}
	p := &pkg{files: make(map[string]*zip.File)}
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		p.files[f.Name] = f
		p.names = append(p.names, f.Name)
	}
	return p, nil
}

func (p *pkg) read(name string) ([]byte, error) {
	f, ok := p.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing part %s", domain.ErrNotFound, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

type relsXML struct {
	Relationships []struct {
		ID         string `xml:"Id,attr"`
		Type       string `xml:"Type,attr"`
		Target     string `xml:"Target,attr"`
		TargetMode string `xml:"TargetMode,attr"`
	} `xml:"Relationship"`
}

func (p *pkg) rels(name string) (*relsXML, error) {
	data, err := p.read(name)
	if err != nil {
		return nil, err
	}
	var r relsXML
	if err := xml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &r, nil
}

// resolveTarget resolves a relationship target against its source part.
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return target[1:]
	}
	return path.Join(path.Dir(source), target)
}

// Inspect reads a package and reports its slides in presentation order.
func Inspect(data []byte) (*Report, error) {
	p, err := openPackage(data)
	if err != nil {
		return nil, err
	}

	presRels, err := p.rels(relsPath(partPresentation))
	if err != nil {
		return nil, err
	}
	targets := make(map[string]string)
	for _, r := range presRels.Relationships {
		targets[r.ID] = resolveTarget(partPresentation, r.Target)
	}

	presData, err := p.read(partPresentation)
	if err != nil {
		return nil, err
	}
	var pres struct {
		Slides []struct {
			RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
		} `xml:"sldIdLst>sldId"`
	}
	if err := xml.Unmarshal(presData, &pres); err != nil {
		return nil, fmt.Errorf("%w: presentation part: %v", domain.ErrInvalidInput, err)
	}

	report := &Report{Parts: append([]string(nil), p.names...)}
	sort.Strings(report.Parts)
	for _, s := range pres.Slides {
		part, ok := targets[s.RID]
		if !ok {
			return nil, fmt.Errorf("%w: slide reference %s has no relationship", domain.ErrInvalidInput, s.RID)
		}
		slideData, err := p.read(part)
		if err != nil {
			return nil, err
		}
		summary, err := summariseSlide(slideData)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", part, err)
		}
		summary.Part = part
		report.Slides = append(report.Slides, summary)
	}

	for _, name := range p.names {
		switch {
		case strings.HasPrefix(name, "ppt/media/"):
			report.MediaCount++
		case strings.HasPrefix(name, "ppt/charts/") && strings.HasSuffix(name, ".xml"):
			report.ChartCount++
		}
	}

	if core, err := p.read(partCore); err == nil {
		var props struct {
			Title string `xml:"title"`
		}
		if xml.Unmarshal(core, &props) == nil {
			report.Title = props.Title
		}
	}
	return report, nil
}

const (
	nsDrawingML    = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPresentation = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsChart        = "http://schemas.openxmlformats.org/drawingml/2006/chart"
)

// summariseSlide walks the slide XML as a token stream.
func summariseSlide(data []byte) (SlideSummary, error) {
	var (
		s      SlideSummary
		para   strings.Builder
		inPara bool
		inText bool
	)
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return s, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Space == nsDrawingML && t.Name.Local == "p":
				inPara = true
				para.Reset()
			case t.Name.Space == nsDrawingML && t.Name.Local == "t":
				inText = true
			case t.Name.Space == nsDrawingML && t.Name.Local == "br" && inPara:
				para.WriteString("\n")
			case t.Name.Space == nsPresentation && t.Name.Local == "pic":
				s.Pictures++
			case t.Name.Space == nsChart && t.Name.Local == "chart":
				s.Charts++
			case t.Name.Space == nsDrawingML && t.Name.Local == "tbl":
				s.Tables++
			}
		case xml.EndElement:
			switch {
			case t.Name.Space == nsDrawingML && t.Name.Local == "p":
				inPara = false
				if text := strings.TrimSpace(para.String()); text != "" {
					s.Paragraphs = append(s.Paragraphs, text)
				}
			case t.Name.Space == nsDrawingML && t.Name.Local == "t":
				inText = false
			}
		case xml.CharData:
			if inPara && inText {
				para.Write(t)
			}
		}
	}
	return s, nil
}

// Verify checks package integrity: every part has a content type, every
// override names an existing part, relationship IDs are unique, internal
// targets exist, every r:id reference is registered, and every explicitly
// referenced relationship type is used.
func Verify(data []byte) error {
	p, err := openPackage(data)
	if err != nil {
		return err
	}
	var problems []error

	ctData, err := p.read(partContentTypes)
	if err != nil {
		return err
	}
	var types struct {
		Defaults []struct {
			Extension string `xml:"Extension,attr"`
		} `xml:"Default"`
		Overrides []struct {
			PartName string `xml:"PartName,attr"`
		} `xml:"Override"`
	}
	if err := xml.Unmarshal(ctData, &types); err != nil {
		return fmt.Errorf("%w: content types: %v", domain.ErrInvalidInput, err)
	}
	defaults := make(map[string]bool)
	for _, d := range types.Defaults {
		defaults[strings.ToLower(d.Extension)] = true
	}
	overrides := make(map[string]bool)
	for _, o := range types.Overrides {
		name := strings.TrimPrefix(o.PartName, "/")
		overrides[name] = true
		if _, ok := p.files[name]; !ok {
			problems = append(problems, fmt.Errorf("content type override for missing part %s", name))
		}
	}
	for _, name := range p.names {
		if name == partContentTypes || overrides[name] {
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
		if !defaults[ext] {
			problems = append(problems, fmt.Errorf("part %s has no content type", name))
		}
	}

	for _, name := range p.names {
		if !strings.HasSuffix(name, ".rels") {
			continue
		}
		source := sourcePart(name)
		rels, err := p.rels(name)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		ids := make(map[string]string)
		for _, r := range rels.Relationships {
			if _, dup := ids[r.ID]; dup {
				problems = append(problems, fmt.Errorf("%s: duplicate relationship %s", name, r.ID))
			}
			ids[r.ID] = r.Type
			if r.TargetMode != "External" {
				if _, ok := p.files[resolveTarget(source, r.Target)]; !ok {
					problems = append(problems, fmt.Errorf("%s: %s targets missing part %s", name, r.ID, r.Target))
				}
			}
		}
		if source == "" || !strings.HasSuffix(source, ".xml") {
			continue
		}

		partData, err := p.read(source)
		if err != nil {
			problems = append(problems, fmt.Errorf("%s: source part: %w", name, err))
			continue
		}
		refs, err := relationshipRefs(partData)
		if err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", source, err))
			continue
		}
		for id := range refs {
			if _, ok := ids[id]; !ok {
				problems = append(problems, fmt.Errorf("%s: dangling reference %s", source, id))
			}
		}
		for id, relType := range ids {
			if !refs[id] && !implicitRelTypes[relType] {
				problems = append(problems, fmt.Errorf("%s: relationship %s is never referenced", source, id))
			}
		}
	}
	sort.Slice(problems, func(i, j int) bool { return problems[i].Error() < problems[j].Error() })
	return errors.Join(problems...)
}

// sourcePart maps "ppt/slides/_rels/slide1.xml.rels" to "ppt/slides/slide1.xml"
// and "_rels/.rels" to "".
func sourcePart(relsName string) string {
	dir, file := path.Split(relsName)
	dir = strings.TrimSuffix(strings.TrimSuffix(dir, "/"), "_rels")
	return dir + strings.TrimSuffix(file, ".rels")
}

// relationshipRefs collects every attribute value in the relationships
// namespace (r:id, r:embed, r:link).
func relationshipRefs(data []byte) (map[string]bool, error) {
	refs := make(map[string]bool)
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return refs, nil
		}
		if err != nil {
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			for _, a := range start.Attr {
				if a.Name.Space == nsRelationships {
					refs[a.Value] = true
				}
			}
		}
	}
}
