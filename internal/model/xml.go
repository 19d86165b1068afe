package model

import (
	"encoding/xml"
	"errors"
	"fmt"
)

// xmlModel mirrors the XML model format:
//
//	<model>
//	  <principals>
//	    <principal name="alice"/>
//	  </principals>
//	  <labels>
//	    <label name="secret" principal="alice"/>
//	    <label name="shared" confidentiality="alice" integrity="bob"/>
//	    <label name="public" kind="bot"/>
//	  </labels>
//	</model>
type xmlModel struct {
	XMLName    xml.Name   `xml:"model"`
	Principals []xmlNamed `xml:"principals>principal"`
	Labels     []xmlLabel `xml:"labels>label"`
}

type xmlNamed struct {
	Name string `xml:"name,attr"`
}

type xmlLabel struct {
	Name            string `xml:"name,attr"`
	Kind            string `xml:"kind,attr"`
	Principal       string `xml:"principal,attr"`
	Confidentiality string `xml:"confidentiality,attr"`
	Integrity       string `xml:"integrity,attr"`
}

func parseXML(path string, data []byte) (*Model, error) {
	var doc xmlModel
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Path: path, Message: fmt.Sprintf("invalid XML: %v", err)}
	}

	m := &Model{}
	for _, p := range doc.Principals {
		m.Principals = append(m.Principals, p.Name)
	}
	for _, l := range doc.Labels {
		spec, err := ResolveSpec(l.Name, l.Kind, l.Principal, l.Confidentiality, l.Integrity)
		if err != nil {
			var le *LoadError
			if errors.As(err, &le) {
				le.Path = path
			}
			return nil, err
		}
		m.Labels = append(m.Labels, spec)
	}
	return m, nil
}
