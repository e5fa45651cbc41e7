// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cite

import (
	"io"
	"path"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paperwatch/pkg/types"
)

// CSLItem is one bibliographic entry in CSL-YAML, consumable by Pandoc and
// reference managers.
type CSLItem struct {
	ID       string    `yaml:"id"`
	Type     string    `yaml:"type"`
	Title    string    `yaml:"title"`
	Author   []CSLName `yaml:"author,omitempty"`
	Abstract string    `yaml:"abstract,omitempty"`
	Issued   *CSLDate  `yaml:"issued,omitempty"`
	DOI      string    `yaml:"DOI,omitempty"`
	URL      string    `yaml:"URL,omitempty"`
	Keyword  string    `yaml:"keyword,omitempty"`
}

// CSLName is a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate is a date using CSL date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes entries as a CSL-YAML list to w.
func FormatCSL(entries []types.Entry, w io.Writer) error {
	items := make([]CSLItem, len(entries))
	for i, e := range entries {
		items[i] = toCSLItem(e)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

func toCSLItem(e types.Entry) CSLItem {
	item := CSLItem{
		ID:       citationKey(e),
		Type:     "article",
		Title:    e.Title,
		Abstract: e.Abstract,
		DOI:      BareDOI(e.DOI),
		URL:      e.Link,
		Keyword:  strings.Join(e.Tags, ", "),
	}
	for _, a := range e.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}
	if t, err := e.PublishedTime(); err == nil {
		item.Issued = &CSLDate{
			DateParts: [][]int{{t.Year(), int(t.Month()), t.Day()}},
		}
	}
	return item
}

// citationKey uses the last path segment of the ID, so
// http://arxiv.org/abs/2510.07692v1 becomes 2510.07692v1.
func citationKey(e types.Entry) string {
	id := strings.TrimRight(e.ID, "/")
	if base := path.Base(id); base != "." && base != "/" {
		return base
	}
	return e.ID
}

// parseAuthorName splits on the last space: everything before is given,
// the last token is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
