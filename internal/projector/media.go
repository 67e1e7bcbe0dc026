package projector

import (
	goipp "github.com/OpenPrinting/goipp"

	"github.com/Bhavna2020/ippcored/internal/ippattr"
	"github.com/Bhavna2020/ippcored/internal/model"
)

// projectMedia implements the media-col-default, media-col-ready,
// media-ready and media-supported rows of §4.3.
func projectMedia(p model.Printer) []goipp.Attribute {
	var attrs []goipp.Attribute

	if len(p.Driver.MediaSupported) > 0 {
		attrs = append(attrs, ippattr.Keywords("media-supported", p.Driver.MediaSupported...))
	}

	if !p.Driver.MediaDefault.Empty() {
		attrs = append(attrs, goipp.MakeAttribute("media-col-default", goipp.TagBeginCollection, mediaColCollection(p.Driver.MediaDefault)))
		attrs = append(attrs, ippattr.Keywords("media-default", p.Driver.MediaDefault.SizeName))
	}

	var readyNames []string
	var readyCols []goipp.Value
	for _, m := range p.MediaReady {
		if m.Empty() {
			continue
		}
		readyNames = append(readyNames, m.SizeName)
		readyCols = append(readyCols, mediaColCollection(m))
		if p.Driver.Borderless && (m.Top != 0 || m.Bottom != 0 || m.Left != 0 || m.Right != 0) {
			borderless := m
			borderless.Top, borderless.Bottom, borderless.Left, borderless.Right = 0, 0, 0, 0
			readyCols = append(readyCols, mediaColCollection(borderless))
		}
	}
	if len(readyNames) > 0 {
		attrs = append(attrs, ippattr.Keywords("media-ready", readyNames...))
		attrs = append(attrs, goipp.MakeAttr("media-col-ready", goipp.TagBeginCollection, readyCols[0], readyCols[1:]...))
	}

	return attrs
}

func mediaColCollection(m model.MediaCol) goipp.Collection {
	col := goipp.Collection{}
	size := goipp.Collection{}
	size.Add(goipp.MakeAttribute("x-dimension", goipp.TagInteger, goipp.Integer(m.Width)))
	size.Add(goipp.MakeAttribute("y-dimension", goipp.TagInteger, goipp.Integer(m.Length)))
	col.Add(goipp.MakeAttribute("media-size", goipp.TagBeginCollection, size))
	col.Add(goipp.MakeAttribute("media-size-name", goipp.TagKeyword, goipp.String(m.SizeName)))
	col.Add(goipp.MakeAttribute("media-bottom-margin", goipp.TagInteger, goipp.Integer(m.Bottom)))
	col.Add(goipp.MakeAttribute("media-left-margin", goipp.TagInteger, goipp.Integer(m.Left)))
	col.Add(goipp.MakeAttribute("media-right-margin", goipp.TagInteger, goipp.Integer(m.Right)))
	col.Add(goipp.MakeAttribute("media-top-margin", goipp.TagInteger, goipp.Integer(m.Top)))
	if m.Source != "" {
		col.Add(goipp.MakeAttribute("media-source", goipp.TagKeyword, goipp.String(m.Source)))
	}
	if m.Type != "" {
		col.Add(goipp.MakeAttribute("media-type", goipp.TagKeyword, goipp.String(m.Type)))
	}
	return col
}
