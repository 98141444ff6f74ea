package annotations

import (
	"github.com/arthur-debert/hexmap/pkg/errors"
	"github.com/beevik/etree"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

func decodeTOML(data []byte) (*document, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrAnnotationParse, "failed to parse TOML")
	}
	return &doc, nil
}

func decodeYAML(data []byte) (*document, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrAnnotationParse, "failed to parse YAML")
	}
	return &doc, nil
}

// decodeXML reads
//
//	<annotations>
//	  <background><range name="boot" start="0x1000" size="0x200"/></background>
//	  <foreground>...</foreground>
//	</annotations>
func decodeXML(data []byte) (*document, error) {
	xml := etree.NewDocument()
	if err := xml.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrAnnotationParse, "failed to parse XML")
	}
	root := xml.Root()
	if root == nil || root.Tag != "annotations" {
		return nil, errors.New(errors.ErrAnnotationParse, "missing <annotations> root element")
	}

	return &document{
		Background: xmlEntries(root.FindElements("background/range")),
		Foreground: xmlEntries(root.FindElements("foreground/range")),
	}, nil
}

func xmlEntries(elements []*etree.Element) []entry {
	entries := make([]entry, 0, len(elements))
	for _, el := range elements {
		e := entry{Name: el.SelectAttrValue("name", "")}
		if attr := el.SelectAttr("start"); attr != nil {
			e.Start = attr.Value
		}
		if attr := el.SelectAttr("size"); attr != nil {
			e.Size = attr.Value
		}
		if attr := el.SelectAttr("end"); attr != nil {
			e.End = attr.Value
		}
		entries = append(entries, e)
	}
	return entries
}
