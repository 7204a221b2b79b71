// Package gff provides GFF3 annotation parsing functionality.
package gff

import (
	"bufio"
	"io"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// DefaultProduct is the product description used when an annotation
// record carries no product or description attribute.
const DefaultProduct = "Hypothetical protein"

// Entry holds descriptive metadata for one gene identifier.
type Entry struct {
	Product  string `json:"product"`
	GeneName string `json:"gene_name,omitempty"`
	Biotype  string `json:"biotype"`
}

// Map maps a gene identifier (locus_tag, or ID when no locus_tag is
// present) to its annotation entry.
type Map map[string]Entry

// Parser parses GFF3 annotation text. Malformed lines are skipped,
// never fatal: annotation is best-effort enrichment, a bad file just
// yields fewer entries.
type Parser struct {
	logger *zap.Logger
}

// NewParser creates a GFF3 parser.
func NewParser() *Parser {
	return &Parser{logger: zap.NewNop()}
}

// SetLogger sets the logger used to report skipped lines.
func (p *Parser) SetLogger(l *zap.Logger) {
	p.logger = l
}

// Parse parses GFF3 text from r into an annotation map. Lines with
// fewer than 9 tab-separated columns, and records lacking both a
// locus_tag and an ID attribute, are skipped. Repeated identifiers
// merge field-wise: the newest non-empty value wins, absent fields
// keep the previously stored value. Input that looks like an HTML
// page yields an empty map.
func (p *Parser) Parse(r io.Reader) Map {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	entries := make(Map)
	lineNum := 0
	sniffed := false
	skipped := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")

		if !sniffed {
			sniffed = true
			if looksLikeHTML(line) {
				p.logger.Warn("annotation input looks like an HTML page, treating as no annotations")
				return entries
			}
		}

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 9 {
			skipped++
			continue
		}

		attrs := parseAttributes(fields[8])

		id := attrs["locus_tag"]
		if id == "" {
			id = attrs["ID"]
		}
		if id == "" {
			skipped++
			continue
		}

		incoming := Entry{
			Product:  firstNonEmpty(attrs["product"], attrs["description"]),
			GeneName: firstNonEmpty(attrs["Name"], attrs["gene"]),
			Biotype:  fields[2],
		}

		entries[id] = merge(entries[id], incoming)
	}

	if err := scanner.Err(); err != nil {
		p.logger.Warn("annotation scan aborted, keeping entries parsed so far", zap.Error(err))
	}
	if skipped > 0 {
		p.logger.Debug("skipped annotation lines", zap.Int("count", skipped))
	}

	// Apply the product default only after all records for an ID
	// have been merged, so a late product still wins over it.
	for id, e := range entries {
		if e.Product == "" {
			e.Product = DefaultProduct
			entries[id] = e
		}
	}

	return entries
}

// ParseString parses GFF3 annotation text held in a string.
func (p *Parser) ParseString(text string) Map {
	return p.Parse(strings.NewReader(text))
}

// Parse parses GFF3 text with logging disabled.
func Parse(r io.Reader) Map {
	return NewParser().Parse(r)
}

// ParseString parses a GFF3 string with logging disabled.
func ParseString(text string) Map {
	return NewParser().ParseString(text)
}

// merge combines a newly parsed entry with any previously stored one.
// Each field independently prefers the newest non-empty value but
// falls back to the stored value rather than being cleared.
func merge(existing, incoming Entry) Entry {
	return Entry{
		Product:  firstNonEmpty(incoming.Product, existing.Product),
		GeneName: firstNonEmpty(incoming.GeneName, existing.GeneName),
		Biotype:  firstNonEmpty(incoming.Biotype, existing.Biotype),
	}
}

// parseAttributes parses the GFF3 attribute column.
// Format: key=value;key=value;... with percent-encoded values.
func parseAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)

	for _, part := range strings.Split(attrStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}

		attrs[kv[0]] = decodeValue(kv[1])
	}

	return attrs
}

// decodeValue percent-decodes an attribute value, falling back to the
// raw string when it is not valid percent-encoding.
func decodeValue(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// looksLikeHTML reports whether a line resembles the start of an HTML
// document, e.g. an error page fetched in place of real data.
func looksLikeHTML(line string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(line))
	return strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html")
}
