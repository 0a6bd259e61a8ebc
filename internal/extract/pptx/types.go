// Package pptx flattens PowerPoint (Office Open XML) decks into lecture text.
package pptx

import "encoding/xml"

// slideXML is ppt/slides/slideN.xml. Only the shape tree is decoded.
type slideXML struct {
	XMLName xml.Name `xml:"sld"`
	CSld    struct {
		SpTree shapeList `xml:"spTree"`
	} `xml:"cSld"`
}

// spXML is a shape with an optional text body.
type spXML struct {
	NvSpPr struct {
		NvPr struct {
			Ph *struct {
				Type string `xml:"type,attr"`
			} `xml:"ph"`
		} `xml:"nvPr"`
	} `xml:"nvSpPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type txBodyXML struct {
	P []Paragraph `xml:"p"`
}

type runXML struct {
	T string `xml:"t"`
}

// graphicFrameXML holds tables, charts and other embedded graphics.
type graphicFrameXML struct {
	Graphic struct {
		GraphicData struct {
			Tbl *tblXML `xml:"tbl"`
		} `xml:"graphicData"`
	} `xml:"graphic"`
}

type tblXML struct {
	Tr []struct {
		Tc []struct {
			TxBody *txBodyXML `xml:"txBody"`
		} `xml:"tc"`
	} `xml:"tr"`
}

// corePropertiesXML is docProps/core.xml.
type corePropertiesXML struct {
	XMLName xml.Name `xml:"coreProperties"`
	Title   string   `xml:"title"`
	Subject string   `xml:"subject"`
}

// appPropertiesXML is docProps/app.xml.
type appPropertiesXML struct {
	XMLName      xml.Name `xml:"Properties"`
	Company      string   `xml:"Company"`
	HeadingPairs struct {
		Variants []struct {
			Name  string `xml:"lpstr"`
			Count int    `xml:"i4"`
		} `xml:"vector>variant"`
	} `xml:"HeadingPairs"`
	TitlesOfParts []string `xml:"TitlesOfParts>vector>lpstr"`
}
