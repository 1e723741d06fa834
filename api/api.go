// Package api embeds the OpenAPI document describing the HTTP surface.
package api

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var document []byte

// Load parses and validates the embedded document.
func Load() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("cannot parse openapi document: %w", err)
	}
	if err = doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("openapi document is invalid: %w", err)
	}
	return doc, nil
}

type swaggerDoc string

func (d swaggerDoc) ReadDoc() string {
	return string(d)
}

// RegisterSwagger publishes doc as the swag instance echo-swagger serves at doc.json.
func RegisterSwagger(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	swag.Register(swag.Name, swaggerDoc(raw))
	return nil
}
