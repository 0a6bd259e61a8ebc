package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/lecture-processor/internal/textutil"
)

var (
	// ErrNoSlides is returned for an archive without ppt/slides/slideN.xml parts.
	ErrNoSlides = errors.New("no slides found in presentation")

	reSlidePart = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
)

const noSlideText = textutil.NoSlideTextMarker

// placeholderTitles are the defaults PowerPoint writes into core.xml.
var placeholderTitles = map[string]bool{
	"powerpoint presentation": true,
	"presentation":            true,
	"untitled":                true,
	"slide 1":                 true,
}

// heading-pair groups in app.xml whose entries are not document titles.
var nonTitleParts = map[string]bool{
	"fonts used":           true,
	"theme":                true,
	"design template":      true,
	"embedded ole servers": true,
}

// Document is a flattened deck.
type Document struct {
	Text     string
	Title    string // "" when no title source was usable
	Subject  string
	Company  string
	Slides   int
	Warnings []string
	// TitleFromSlide is set when Title is the first slide's heading rather
	// than a document property.
	TitleFromSlide bool
}

type slidePart struct {
	file  *zip.File
	index int
}

// Extract reads a PPTX archive. Slides are emitted in numeric order, each
// under a "Slide N:" header. A slide whose XML cannot be parsed is replaced
// by an error marker and extraction continues.
func Extract(data []byte) (Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Document{}, fmt.Errorf("opening ZIP archive: %w", err)
	}

	parts := slideParts(zr)
	if len(parts) == 0 {
		return Document{}, ErrNoSlides
	}

	var doc Document
	core, err := readCore(zr)
	if err != nil {
		doc.Warnings = append(doc.Warnings, "core properties: "+err.Error())
	}
	app, err := readApp(zr)
	if err != nil {
		doc.Warnings = append(doc.Warnings, "app properties: "+err.Error())
	}

	sections := make([]string, 0, len(parts))
	firstSlideTitle := ""
	for i, part := range parts {
		n := i + 1
		slide, err := readSlide(part.file)
		if err != nil {
			doc.Warnings = append(doc.Warnings, fmt.Sprintf("slide %d: %v", n, err))
			sections = append(sections, textutil.SlideErrorMarker(n))
			continue
		}
		f := &slideFlattener{}
		Walk(slide.CSld.SpTree, f)
		if i == 0 {
			firstSlideTitle = f.title
		}
		sections = append(sections, f.render(fmt.Sprintf("Slide %d:", n)))
	}

	doc.Text = strings.Join(sections, "\n\n")
	doc.Slides = len(parts)
	doc.Subject = strings.TrimSpace(core.Subject)
	doc.Company = strings.TrimSpace(app.Company)
	doc.Title = resolveTitle(core, app, firstSlideTitle)
	doc.TitleFromSlide = doc.Title != "" && resolveTitle(core, app, "") == ""
	return doc, nil
}

// slideParts lists the slide XML parts sorted by their numeric suffix so
// slide10 follows slide9.
func slideParts(zr *zip.Reader) []slidePart {
	var parts []slidePart
	for _, f := range zr.File {
		m := reSlidePart.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		parts = append(parts, slidePart{file: f, index: idx})
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].index < parts[j].index })
	return parts
}

func readSlide(f *zip.File) (*slideXML, error) {
	data, err := readFile(f)
	if err != nil {
		return nil, err
	}
	var s slideXML
	if err := xml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func readFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func findFile(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func readCore(zr *zip.Reader) (corePropertiesXML, error) {
	var core corePropertiesXML
	f := findFile(zr, "docProps/core.xml")
	if f == nil {
		return core, nil
	}
	data, err := readFile(f)
	if err != nil {
		return core, err
	}
	err = xml.Unmarshal(data, &core)
	return core, err
}

func readApp(zr *zip.Reader) (appPropertiesXML, error) {
	var app appPropertiesXML
	f := findFile(zr, "docProps/app.xml")
	if f == nil {
		return app, nil
	}
	data, err := readFile(f)
	if err != nil {
		return app, err
	}
	err = xml.Unmarshal(data, &app)
	return app, err
}

// resolveTitle prefers the core title unless it is a PowerPoint default,
// then the first document title listed in app.xml, then the first slide's
// title placeholder.
func resolveTitle(core corePropertiesXML, app appPropertiesXML, firstSlideTitle string) string {
	if t := strings.TrimSpace(core.Title); t != "" && !placeholderTitles[strings.ToLower(t)] {
		return t
	}
	if t := firstTitleOfParts(app); t != "" {
		return t
	}
	return strings.TrimSpace(firstSlideTitle)
}

// firstTitleOfParts returns the first TitlesOfParts entry that is not a font
// or theme name. HeadingPairs gives the size of each group of entries.
func firstTitleOfParts(app appPropertiesXML) string {
	titles := app.TitlesOfParts
	pairs := app.HeadingPairs.Variants
	if len(pairs) < 2 {
		for _, t := range titles {
			if t = strings.TrimSpace(t); t != "" {
				return t
			}
		}
		return ""
	}
	offset := 0
	for i := 0; i+1 < len(pairs); i += 2 {
		group, size := strings.ToLower(strings.TrimSpace(pairs[i].Name)), pairs[i+1].Count
		if !nonTitleParts[group] {
			for _, t := range titles[min(offset, len(titles)):min(offset+size, len(titles))] {
				if t = strings.TrimSpace(t); t != "" && !placeholderTitles[strings.ToLower(t)] {
					return t
				}
			}
		}
		offset += size
	}
	return ""
}
