package pptx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Namespace declarations shared by presentation parts.
const (
	nsA = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"`
	nsR = `xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`
	nsP = `xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
	nsC = `xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart"`

	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// escape escapes text for element content and attribute values.
// Characters not allowed in XML are replaced.
func escape(s string) string {
	if !strings.ContainsAny(s, "<>&'\"\r\n\t") && isPlain(s) {
		return s
	}
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func isPlain(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == utf8.RuneError || r >= 0xFFFE {
			return false
		}
	}
	return true
}

// itoa formats an EMU or count value.
func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

// xfrm writes an <a:xfrm> for r.
func xfrm(r Rect) string {
	return fmt.Sprintf(`<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, r.X, r.Y, r.W, r.H)
}

// solidFill writes a solid fill of a bare hex color.
func solidFill(hex string) string {
	return `<a:solidFill><a:srgbClr val="` + hex + `"/></a:solidFill>`
}
