// Package tagger embeds show metadata into MKV files using mkvpropedit.
package tagger

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/mydehq/showtitle/internal/metadata"
)

const binaryName = "mkvpropedit"

// TagInfo contains the metadata to embed into an MKV file.
type TagInfo struct {
	Title    string // Segment title, usually the new file name
	Artist   string // ARTIST
	Date     string // ISO show date (DATE_RECORDED)
	Location string // Venue and city joined (RECORDING_LOCATION)
	Comment  string // Format and additional keywords (COMMENT)
}

// InfoFromRecord builds the tags for a file renamed to path.
func InfoFromRecord(path string, rec metadata.Record) TagInfo {
	var location, comment []string
	for _, v := range []string{rec.Venue, rec.City} {
		if v = strings.TrimSpace(v); v != "" {
			location = append(location, v)
		}
	}
	for _, v := range []string{rec.Format, rec.Additional} {
		if v = strings.TrimSpace(v); v != "" {
			comment = append(comment, v)
		}
	}
	return TagInfo{
		Title:    metadata.BaseName(path),
		Artist:   rec.Artist,
		Date:     rec.Date,
		Location: strings.Join(location, ", "),
		Comment:  strings.Join(comment, " "),
	}
}

// MKV tags moved files through mkvpropedit.
type MKV struct{}

// Tag writes rec into path. Non-MKV files are skipped.
func (MKV) Tag(ctx context.Context, path string, rec metadata.Record) error {
	return TagFile(ctx, path, InfoFromRecord(path, rec))
}

// IsAvailable returns true if mkvpropedit is found in $PATH.
func IsAvailable() bool {
	_, err := exec.LookPath(binaryName)
	return err == nil
}

// TagFile embeds metadata into a single MKV file using mkvpropedit.
// Non-MKV files are silently skipped (returns nil).
func TagFile(ctx context.Context, path string, info TagInfo) error {
	if !isMKV(path) {
		return nil
	}

	// mkvpropedit only reads global tags from an XML file
	tmpFile, err := os.CreateTemp("", "showtitle-tags-*.xml")
	if err != nil {
		return fmt.Errorf("failed to create temp tag file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if err := writeTagXML(tmpFile, info); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write tag XML: %w", err)
	}
	tmpFile.Close()

	args := []string{
		path,
		"--edit", "info",
		"--set", fmt.Sprintf("title=%s", info.Title),
		"--tags", fmt.Sprintf("all:%s", tmpFile.Name()),
	}

	cmd := exec.CommandContext(ctx, binaryName, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("mkvpropedit failed: %w\noutput: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// isMKV returns true if the file has an .mkv extension.
func isMKV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mkv")
}

// tagXMLTemplate is the Matroska global tag XML format. A concert is
// tagged at the album level (50).
const tagXMLTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE Tags SYSTEM "matroskatags.dtd">
<Tags>
  <Tag>
    <Targets>
      <TargetTypeValue>50</TargetTypeValue>
      <TargetType>CONCERT</TargetType>
    </Targets>
    <Simple>
      <Name>TITLE</Name>
      <String>{{esc .Title}}</String>
    </Simple>{{if .Artist}}
    <Simple>
      <Name>ARTIST</Name>
      <String>{{esc .Artist}}</String>
    </Simple>{{end}}{{if .Date}}
    <Simple>
      <Name>DATE_RECORDED</Name>
      <String>{{esc .Date}}</String>
    </Simple>{{end}}{{if .Location}}
    <Simple>
      <Name>RECORDING_LOCATION</Name>
      <String>{{esc .Location}}</String>
    </Simple>{{end}}{{if .Comment}}
    <Simple>
      <Name>COMMENT</Name>
      <String>{{esc .Comment}}</String>
    </Simple>{{end}}
  </Tag>
</Tags>
`

var tagTmpl = template.Must(template.New("tags").Funcs(template.FuncMap{
	"esc": escapeXML,
}).Parse(tagXMLTemplate))

func escapeXML(s string) (string, error) {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeTagXML(w io.Writer, info TagInfo) error {
	return tagTmpl.Execute(w, info)
}
