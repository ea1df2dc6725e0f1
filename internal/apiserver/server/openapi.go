package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// APIDoc 已校验的 OpenAPI 文档
type APIDoc struct {
	Raw []byte
	Doc *openapi3.T
}

// LoadAPIDoc 解析并校验 OpenAPI 文档，启动阶段调用
func LoadAPIDoc(ctx context.Context, raw []byte) (*APIDoc, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return &APIDoc{Raw: raw, Doc: doc}, nil
}

// ServeHTTP 输出文档原文
// GET /openapi.yaml
func (d *APIDoc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(d.Raw)
}
