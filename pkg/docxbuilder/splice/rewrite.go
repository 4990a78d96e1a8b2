package splice

import "strings"

// RewriteIDs replaces relationship id references in body markup according to renames.
//
// Only attribute values inside element tags are considered. A double-quoted value of the
// exact form rId<digits> is replaced when renames has an entry for it; values of
// relationship attributes (the r: prefix, as in r:id or r:embed) are replaced whatever
// their shape. Text content, comments, CDATA sections, processing instructions and
// declarations are copied unchanged. The input is scanned once.
func RewriteIDs(src string, renames RenameMap) string {
	if len(renames) == 0 {
		return src
	}

	var out strings.Builder
	last := 0
	i := 0
	for i < len(src) {
		next := strings.IndexByte(src[i:], '<')
		if next < 0 {
			break
		}
		i += next
		rest := src[i:]
		switch {
		case strings.HasPrefix(rest, "<!--"):
			i = skipPast(src, i+len("<!--"), "-->")
		case strings.HasPrefix(rest, "<![CDATA["):
			i = skipPast(src, i+len("<![CDATA["), "]]>")
		case strings.HasPrefix(rest, "<?"):
			i = skipPast(src, i+len("<?"), "?>")
		case strings.HasPrefix(rest, "<!"):
			i = skipPast(src, i+len("<!"), ">")
		default:
			i, last = rewriteTag(src, i+1, last, renames, &out)
		}
	}

	if last == 0 {
		return src
	}
	out.WriteString(src[last:])
	return out.String()
}

// rewriteTag scans one tag starting after its '<'. It returns the position after the
// tag and the new start of the not yet copied input.
func rewriteTag(src string, i, last int, renames RenameMap, out *strings.Builder) (int, int) {
	nameStart := -1
	attr := ""
	for i < len(src) {
		c := src[i]
		switch {
		case c == '>':
			return i + 1, last
		case c == '"' || c == '\'':
			end := strings.IndexByte(src[i+1:], c)
			if end < 0 {
				return len(src), last
			}
			valueStart, valueEnd := i+1, i+1+end
			if id, ok := lookupID(attr, src[valueStart:valueEnd], c, renames); ok {
				out.WriteString(src[last:valueStart])
				out.WriteString(id)
				last = valueEnd
			}
			i = valueEnd + 1
			attr, nameStart = "", -1
			continue
		case c == '=' || isSpace(c):
			if nameStart >= 0 {
				attr = src[nameStart:i]
				nameStart = -1
			}
		default:
			if nameStart < 0 {
				nameStart = i
			}
		}
		i++
	}
	return i, last
}

func lookupID(attr, value string, quote byte, renames RenameMap) (string, bool) {
	if !(quote == '"' && isRelationshipID(value)) && !strings.HasPrefix(attr, "r:") {
		return "", false
	}
	id, ok := renames[value]
	if !ok || id == value {
		return "", false
	}
	return id, true
}

// isRelationshipID reports whether s is "rId" followed by one or more digits.
func isRelationshipID(s string) bool {
	if len(s) <= len("rId") || !strings.HasPrefix(s, "rId") {
		return false
	}
	for i := len("rId"); i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func skipPast(src string, from int, terminator string) int {
	if from > len(src) {
		return len(src)
	}
	idx := strings.Index(src[from:], terminator)
	if idx < 0 {
		return len(src)
	}
	return from + idx + len(terminator)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
