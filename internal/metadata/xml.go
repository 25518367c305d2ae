package metadata

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// The on-disk format mirrors the classic configurator XML dialect:
// a <configurator> root with <cluster> elements carrying hex codes.

type xmlModel struct {
	XMLName  xml.Name     `xml:"configurator"`
	Clusters []xmlCluster `xml:"cluster"`
}

type xmlCluster struct {
	Code             string         `xml:"code,attr"`
	ManufacturerCode string         `xml:"manufacturerCode,attr"`
	Define           string         `xml:"define,attr"`
	Name             string         `xml:"name,attr"`
	Attributes       []xmlAttribute `xml:"attribute"`
	Commands         []xmlCommand   `xml:"command"`
}

type xmlAttribute struct {
	Code     string `xml:"code,attr"`
	Name     string `xml:"name,attr"`
	Type     string `xml:"type,attr"`
	Side     string `xml:"side,attr"`
	Writable bool   `xml:"writable,attr"`
	Default  string `xml:"default,attr"`
}

type xmlCommand struct {
	Code   string `xml:"code,attr"`
	Name   string `xml:"name,attr"`
	Source string `xml:"source,attr"`
}

func parse(raw []byte) (*xmlModel, error) {
	var model xmlModel
	if err := xml.Unmarshal(raw, &model); err != nil {
		return nil, fmt.Errorf("parsing metadata XML: %w", err)
	}
	if len(model.Clusters) == 0 {
		return nil, fmt.Errorf("metadata defines no clusters")
	}
	for _, cl := range model.Clusters {
		if cl.Code == "" || cl.Name == "" || cl.Define == "" {
			return nil, fmt.Errorf("cluster %q missing code, name or define", cl.Name)
		}
	}
	return &model, nil
}

// parseCode accepts decimal and 0x-prefixed hex identifiers.
func parseCode(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty code")
	}
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid code %q: %w", s, err)
	}
	return v, nil
}
