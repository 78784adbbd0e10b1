// ABOUTME: Sitemap document model shared by the matching strategies
// ABOUTME: Decodes urlset, sitemapindex, RSS and Atom bodies into an ordered entry list

package sitemap

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
	"github.com/mmcdole/gofeed"
)

// maxDocumentBytes is the sitemap protocol's uncompressed size limit
const maxDocumentBytes = 50 << 20

// EntryKind distinguishes loc and lastmod entries
type EntryKind int

const (
	LocEntry EntryKind = iota
	LastmodEntry
)

// Entry is one loc or lastmod element, in document order
type Entry struct {
	Kind  EntryKind
	Value string
}

// Document is a parsed sitemap. Entries keep document order so that a
// lastmod can be paired with the nearest loc before it.
type Document struct {
	Entries []Entry
}

// HasLastmod reports whether any entry is a lastmod
func (d *Document) HasLastmod() bool {
	for _, e := range d.Entries {
		if e.Kind == LastmodEntry {
			return true
		}
	}
	return false
}

// Locs returns every loc value in document order
func (d *Document) Locs() []string {
	locs := make([]string, 0, len(d.Entries))
	for _, e := range d.Entries {
		if e.Kind == LocEntry {
			locs = append(locs, e.Value)
		}
	}
	return locs
}

// ParseDocument decodes a sitemap body. Gzip bodies are detected by their
// magic bytes. RSS and Atom roots are handed to gofeed, everything else is
// read as sitemap XML.
func ParseDocument(r io.Reader) (*Document, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("read sitemap: %w", err)
	}

	if len(body) > 2 && body[0] == 0x1f && body[1] == 0x8b {
		zr, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("open gzip sitemap: %w", err)
		}
		defer zr.Close()
		if body, err = io.ReadAll(io.LimitReader(zr, maxDocumentBytes)); err != nil {
			return nil, fmt.Errorf("decompress sitemap: %w", err)
		}
	}

	root, err := xmlquery.Parse(bytes.NewReader(bytes.TrimSpace(body)))
	if err != nil {
		return nil, fmt.Errorf("parse sitemap xml: %w", err)
	}

	top := xmlquery.FindOne(root, "/*")
	if top == nil {
		return nil, fmt.Errorf("sitemap has no root element")
	}

	switch strings.ToLower(top.Data) {
	case "rss", "feed", "rdf":
		return parseFeed(body)
	}

	return parseXML(root), nil
}

// parseXML collects unprefixed loc and lastmod elements. Prefixed elements
// such as image:loc belong to sitemap extensions and are ignored.
func parseXML(root *xmlquery.Node) *Document {
	doc := &Document{}
	for _, n := range xmlquery.Find(root, "//*[local-name()='loc' or local-name()='lastmod']") {
		if n.Prefix != "" {
			continue
		}
		value := strings.TrimSpace(n.InnerText())
		if value == "" {
			continue
		}
		kind := LocEntry
		if n.Data == "lastmod" {
			kind = LastmodEntry
		}
		doc.Entries = append(doc.Entries, Entry{Kind: kind, Value: value})
	}
	return doc
}

// parseFeed maps feed items onto sitemap entries: the item link is the loc
// and the updated (or published) time is the lastmod.
func parseFeed(body []byte) (*Document, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse sitemap feed: %w", err)
	}

	doc := &Document{}
	for _, item := range feed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}
		doc.Entries = append(doc.Entries, Entry{Kind: LocEntry, Value: link})

		stamp := item.UpdatedParsed
		if stamp == nil {
			stamp = item.PublishedParsed
		}
		if stamp != nil {
			doc.Entries = append(doc.Entries, Entry{Kind: LastmodEntry, Value: stamp.Format(time.RFC3339)})
		}
	}
	return doc, nil
}
