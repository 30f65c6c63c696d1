// Package usx reads the paragraphs of a book from a USX document.
//
// Every top-level <para> becomes one paragraph. Chapter markers set the
// chapter and restart section numbering; a section heading after body text
// opens a new section. Verse markers inside a paragraph decide its verse
// range: a paragraph starts at the verse position current at its start and
// ends where the next verse-bearing paragraph of the chapter with a later
// start begins.
// Paragraphs without verse text, such as headings, titles and introductions,
// carry no range.
package usx

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/errors"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/para"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/verse"
)

const format = "USX"

var (
	rootExpr     = xpath.MustCompile("/usx")
	bookCodeExpr = xpath.MustCompile("string(/usx/book/@code)")
)

// Book is a book read from USX.
type Book struct {
	// Code is the book code from the <book> element, if any.
	Code string

	// Paragraphs are in book order.
	Paragraphs []*para.Paragraph
}

// Load reads the paragraphs of a USX document. Paragraph IDs are derived
// from bookID and the paragraph position; an empty bookID falls back to the
// book code of the document.
func Load(r io.Reader, bookID string) (*Book, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, &errors.ParseError{Format: format, Message: "malformed XML", Err: err}
	}
	root := xmlquery.QuerySelector(doc, rootExpr)
	if root == nil {
		return nil, errors.NewParse(format, "usx", "missing <usx> root element")
	}

	code, _ := bookCodeExpr.Evaluate(xmlquery.CreateXPathNavigator(doc)).(string)
	if bookID == "" {
		bookID = code
	}
	if bookID == "" {
		return nil, errors.NewValidation("book", "no book ID given and the document has no book code")
	}

	l := loader{bookID: bookID}
	for n := root.FirstChild; n != nil; n = n.NextSibling {
		if n.Type != xmlquery.ElementNode {
			continue
		}
		switch n.Data {
		case "chapter":
			if err := l.startChapter(n); err != nil {
				return nil, err
			}
		case "para":
			if err := l.para(n); err != nil {
				return nil, err
			}
		}
	}
	if err := l.closeChapter(); err != nil {
		return nil, err
	}

	return &Book{Code: code, Paragraphs: l.out}, nil
}

// pending is a verse-bearing paragraph whose range end is not known yet.
type pending struct {
	p     *para.Paragraph
	start verse.Index
}

type loader struct {
	bookID string
	out    []*para.Paragraph

	chapter, section, index int
	prevHeading             bool

	// inVerse is set once the chapter has seen a verse marker. lastVerse is
	// the last verse number covered by the latest marker.
	inVerse   bool
	lastVerse int
	open      []pending
}

func (l *loader) startChapter(n *xmlquery.Node) error {
	num := n.SelectAttr("number")
	if num == "" {
		// closing milestone
		return nil
	}
	ch, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil {
		return errors.NewParse(format, "chapter", fmt.Sprintf("bad chapter number %q", num))
	}
	if err := l.closeChapter(); err != nil {
		return err
	}
	l.chapter, l.section, l.index = ch, 0, 0
	l.prevHeading = false
	l.inVerse, l.lastVerse = false, 0
	return nil
}

func (l *loader) para(n *xmlquery.Node) error {
	style := n.SelectAttr("style")
	heading := isHeading(style)
	if heading && !l.prevHeading && l.index > 0 {
		l.section++
		l.index = 0
	}
	l.prevHeading = heading

	c := content{}
	c.collect(n)

	p := &para.Paragraph{
		ID:     fmt.Sprintf("%s.%d.%d.%d", l.bookID, l.chapter, l.section, l.index),
		BookID: l.bookID,
		Position: para.Position{
			Chapter: l.chapter,
			Section: l.section,
			Index:   l.index,
		},
		Style: style,
		Text:  strings.Join(strings.Fields(c.text.String()), " "),
	}
	l.out = append(l.out, p)
	l.index++

	continues := l.inVerse && c.leadingText && !heading && !isNonVerse(style)
	if len(c.verses) == 0 && !continues {
		return nil
	}

	start := verse.Mid(l.lastVerse)
	if !continues {
		start = c.verses[0].start
	}
	l.open = append(l.open, pending{p: p, start: start})

	for _, v := range c.verses {
		l.inVerse = true
		l.lastVerse = v.last
	}
	return nil
}

// closeChapter assigns ranges to the verse-bearing paragraphs of the current
// chapter. Consecutive paragraphs starting at the same position, such as the
// lines of a verse split over several poetry paragraphs, share one span up
// to the next later start.
func (l *loader) closeChapter() error {
	for i, pend := range l.open {
		j := i + 1
		for j < len(l.open) && l.open[j].start == pend.start {
			j++
		}
		end := verse.At(l.lastVerse + 1)
		if j < len(l.open) {
			end = l.open[j].start
		}
		r, err := verse.NewRange(pend.start, end)
		if err != nil {
			return errors.Wrapf(err, "paragraph %s", pend.p.ID)
		}
		pend.p.Range = &r
	}
	l.open = l.open[:0]
	return nil
}

type marker struct {
	start verse.Index
	last  int
}

// content is what a paragraph holds: its text without notes, its verse
// markers in order, and whether text precedes the first marker.
type content struct {
	text        strings.Builder
	verses      []marker
	leadingText bool
}

func (c *content) collect(n *xmlquery.Node) {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		switch ch.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			c.text.WriteString(ch.Data)
			if len(c.verses) == 0 && strings.TrimSpace(ch.Data) != "" {
				c.leadingText = true
			}
		case xmlquery.ElementNode:
			switch ch.Data {
			case "note", "figure":
			case "verse":
				if num := ch.SelectAttr("number"); num != "" {
					if m, ok := parseVerseNumber(num); ok {
						c.verses = append(c.verses, m)
					}
				}
			default:
				c.collect(ch)
			}
		}
	}
}

// parseVerseNumber reads a USX verse number: "5", "5a", "5b" or a bridge
// such as "5-6". A "b" or later letter marks the second half of the verse.
func parseVerseNumber(s string) (marker, bool) {
	first, last, bridged := strings.Cut(strings.TrimSpace(s), "-")
	n, part := splitSegment(first)
	if n <= 0 {
		return marker{}, false
	}
	m := marker{start: verse.At(n), last: n}
	if part > 'a' {
		m.start = verse.Mid(n)
	}
	if bridged {
		if end, _ := splitSegment(last); end >= n {
			m.last = end
		}
	}
	return m, true
}

// splitSegment splits "12b" into 12 and 'b'.
func splitSegment(s string) (int, byte) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, 0
	}
	if i < len(s) {
		return n, s[i] | 0x20
	}
	return n, 0
}

// isHeading reports whether style marks a section or major section heading.
func isHeading(style string) bool {
	if style == "s" || style == "ms" {
		return true
	}
	for _, prefix := range []string{"s", "ms"} {
		rest, ok := strings.CutPrefix(style, prefix)
		if ok && rest != "" && strings.Trim(rest, "0123456789") == "" {
			return true
		}
	}
	return false
}

// isNonVerse reports whether paragraphs of style never carry verse text of
// their own: titles, introductions, references and similar furniture.
func isNonVerse(style string) bool {
	switch style {
	case "r", "d", "b", "sp", "sr", "mr", "cl", "cd", "rem":
		return true
	}
	for _, prefix := range []string{"mt", "i", "toc", "h"} {
		if strings.HasPrefix(style, prefix) {
			return true
		}
	}
	return false
}
