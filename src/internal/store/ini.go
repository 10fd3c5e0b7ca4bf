package store

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/maksimkurb/configurator/src/internal/errors"
)

var iniLoadOptions = ini.LoadOptions{
	// Values may contain '#' and ';' without being cut.
	IgnoreInlineComment: true,
	// "quoted" and x\ are values like any other.
	PreserveSurroundedQuote: true,
	IgnoreContinuation:      true,
}

// INIStore keeps a RawDocument in an INI file with [section] headers and
// key=value lines. A Write only rewrites the lines of keys whose value
// changes and appends missing keys and sections; every other byte of the
// file is kept as it was.
type INIStore struct {
	path string
}

// NewINIStore returns an INI store for path.
func NewINIStore(path string) *INIStore {
	return &INIStore{path: path}
}

// Location returns the file path.
func (s *INIStore) Location() string {
	return s.path
}

func (s *INIStore) load() ([]byte, *ini.File, error) {
	if err := checkExists(s.path); err != nil {
		return nil, nil, err
	}
	content, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil, errors.NewStoreError("failed to read "+s.path, err)
	}
	f, err := ini.LoadSources(iniLoadOptions, content)
	if err != nil {
		return nil, nil, errors.NewStoreError("failed to parse "+s.path, err)
	}
	return content, f, nil
}

// Read parses the file. The implicit DEFAULT section is only returned when
// it holds keys.
func (s *INIStore) Read() (RawDocument, error) {
	_, f, err := s.load()
	if err != nil {
		return nil, err
	}
	return iniDocument(f), nil
}

// Write sets every key of doc and rewrites the file. New keys go to the end
// of their section and new sections to the end of the file, both in lexical
// order. Nothing is written when the result would not read back as doc.
func (s *INIStore) Write(doc RawDocument) error {
	content, f, err := s.load()
	if err != nil {
		return err
	}

	out, err := spliceINI(content, iniDocument(f), doc)
	if err != nil {
		return err
	}
	if err := verifyINI(out, doc); err != nil {
		return err
	}
	return replaceFile(s.path, out)
}

// EncodeINI renders doc as a new INI file with sections and keys in lexical
// order.
func EncodeINI(doc RawDocument) ([]byte, error) {
	return spliceINI(nil, nil, doc)
}

func iniDocument(f *ini.File) RawDocument {
	doc := make(RawDocument)
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection && len(sec.Keys()) == 0 {
			continue
		}
		keys := make(map[string]string, len(sec.Keys()))
		for _, k := range sec.Keys() {
			keys[k.Name()] = k.Value()
		}
		doc[sec.Name()] = keys
	}
	return doc
}

// verifyINI parses out and checks that every key of doc reads back unchanged.
func verifyINI(out []byte, doc RawDocument) error {
	f, err := ini.LoadSources(iniLoadOptions, out)
	if err != nil {
		return errors.NewStoreError("refusing to write content that does not parse", err)
	}
	for _, section := range sortedKeys(doc) {
		sec, err := f.GetSection(section)
		if err != nil {
			return errors.NewStoreError("section lost on write", err).At(section, "")
		}
		for _, key := range sortedKeys(doc[section]) {
			if !sec.HasKey(key) || sec.Key(key).Value() != doc[section][key] {
				return errors.NewStoreError(fmt.Sprintf("value %q cannot be stored", doc[section][key]), nil).At(section, key)
			}
		}
	}
	return nil
}

// encodeINIValue quotes v so that it reads back unchanged.
func encodeINIValue(v string) (string, bool) {
	switch {
	case strings.ContainsAny(v, "\r\n"):
		if strings.Contains(v, `"""`) {
			return "", false
		}
		return `"""` + v + `"""`, true
	case v != strings.TrimSpace(v), strings.HasPrefix(v, "`"), strings.HasPrefix(v, `"""`):
		return "`" + v + "`", true
	}
	return v, true
}

type iniLine struct {
	text string
	eol  string
}

func splitLines(content string) []iniLine {
	var lines []iniLine
	for content != "" {
		i := strings.IndexByte(content, '\n')
		if i < 0 {
			lines = append(lines, iniLine{text: content})
			break
		}
		text, eol := content[:i], "\n"
		if strings.HasSuffix(text, "\r") {
			text, eol = text[:len(text)-1], "\r\n"
		}
		lines = append(lines, iniLine{text: text, eol: eol})
		content = content[i+1:]
	}
	return lines
}

const (
	lineOther = iota
	lineSection
	lineKey
)

// parsedLine is one classified line. For keys, prefix is everything up to
// the value and value is the rest of the line.
type parsedLine struct {
	kind   int
	name   string
	prefix string
	value  string
}

func parseINILine(text string, first bool) parsedLine {
	bom := ""
	if first && strings.HasPrefix(text, "\ufeff") {
		bom, text = "\ufeff", strings.TrimPrefix(text, "\ufeff")
	}
	t := strings.TrimLeft(text, " \t")
	indent := text[:len(text)-len(t)]

	switch {
	case t == "", t[0] == '#', t[0] == ';':
		return parsedLine{kind: lineOther}
	case t[0] == '[':
		end := strings.LastIndexByte(t, ']')
		if end < 0 {
			return parsedLine{kind: lineOther}
		}
		return parsedLine{kind: lineSection, name: strings.TrimSpace(t[1:end])}
	}

	var key, rest string
	if q := t[0]; q == '"' || q == '`' {
		end := strings.IndexByte(t[1:], q)
		if end < 0 {
			return parsedLine{kind: lineOther}
		}
		key, rest = t[1:end+1], t[end+2:]
		i := strings.IndexAny(rest, "=:")
		if i < 0 {
			return parsedLine{kind: lineOther}
		}
		rest = rest[i:]
	} else {
		i := strings.IndexAny(t, "=:")
		if i < 0 {
			return parsedLine{kind: lineOther}
		}
		key, rest = strings.TrimSpace(t[:i]), t[i:]
	}

	value := strings.TrimLeft(rest[1:], " \t")
	prefix := bom + indent + t[:len(t)-len(rest)] + rest[:len(rest)-len(value)]
	return parsedLine{kind: lineKey, name: key, prefix: prefix, value: value}
}

// valueEnd returns the index of the last line of the value starting at
// lines[i], following """ and ` quoted values over several lines.
func valueEnd(lines []iniLine, i int, value string) int {
	quote := ""
	switch {
	case len(value) >= 3 && strings.HasPrefix(value, `"""`):
		quote = `"""`
	case strings.HasPrefix(value, "`"):
		quote = "`"
	default:
		return i
	}
	if strings.Contains(value[len(quote):], quote) {
		return i
	}
	for j := i + 1; j < len(lines); j++ {
		if strings.Contains(lines[j].text, quote) {
			return j
		}
	}
	return len(lines) - 1
}

// spliceINI returns content with every key of doc set. Lines whose value in
// current already equals the new value are copied untouched, as is every
// line outside the keys of doc.
func spliceINI(content []byte, current, doc RawDocument) ([]byte, error) {
	lines := splitLines(string(content))
	eol := "\n"
	if len(lines) > 0 && lines[0].eol != "" {
		eol = lines[0].eol
	}

	encoded := make(map[string]map[string]string, len(doc))
	for section, keys := range doc {
		enc := make(map[string]string, len(keys))
		for k, v := range keys {
			e, ok := encodeINIValue(v)
			if !ok {
				return nil, errors.NewStoreError(fmt.Sprintf("value %q cannot be stored", v), nil).At(section, k)
			}
			enc[k] = e
		}
		encoded[section] = enc
	}

	// First pass: which keys exist and where each section's last block ends.
	present := make(map[string]map[string]bool)
	insertAfter := map[string]int{ini.DefaultSection: -1}
	section := ini.DefaultSection
	for i := 0; i < len(lines); i++ {
		p := parseINILine(lines[i].text, i == 0)
		switch p.kind {
		case lineSection:
			section = p.name
			insertAfter[section] = i
		case lineKey:
			if present[section] == nil {
				present[section] = make(map[string]bool)
			}
			present[section][p.name] = true
			i = valueEnd(lines, i, p.value)
			insertAfter[section] = i
		}
	}

	var b strings.Builder
	appendMissing := func(section string) {
		for _, k := range sortedKeys(doc[section]) {
			if present[section][k] {
				continue
			}
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
				b.WriteString(eol)
			}
			b.WriteString(k + "=" + encoded[section][k] + eol)
		}
	}

	if _, ok := doc[ini.DefaultSection]; ok && insertAfter[ini.DefaultSection] == -1 {
		appendMissing(ini.DefaultSection)
	}

	section = ini.DefaultSection
	for i := 0; i < len(lines); i++ {
		p := parseINILine(lines[i].text, i == 0)
		end := i

		switch p.kind {
		case lineSection:
			section = p.name
			b.WriteString(lines[i].text + lines[i].eol)
		case lineKey:
			end = valueEnd(lines, i, p.value)
			enc, ok := encoded[section][p.name]
			if ok && current[section][p.name] != doc[section][p.name] {
				b.WriteString(p.prefix + enc + lines[end].eol)
				break
			}
			for j := i; j <= end; j++ {
				b.WriteString(lines[j].text + lines[j].eol)
			}
		default:
			b.WriteString(lines[i].text + lines[i].eol)
		}

		if _, ok := doc[section]; ok && insertAfter[section] == end {
			appendMissing(section)
		}
		i = end
	}

	var added []string
	for name := range doc {
		if _, ok := insertAfter[name]; !ok {
			added = append(added, name)
		}
	}
	slices.Sort(added)
	for _, name := range added {
		if b.Len() > 0 {
			if !strings.HasSuffix(b.String(), "\n") {
				b.WriteString(eol)
			}
			b.WriteString(eol)
		}
		b.WriteString("[" + name + "]" + eol)
		appendMissing(name)
	}

	return []byte(b.String()), nil
}
