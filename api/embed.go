// Package api 内嵌 OpenAPI 文档
package api

import "embed"

//go:embed openapi/*.yaml
var OpenAPIFS embed.FS

// SpecFile 主文档在 OpenAPIFS 中的路径
const SpecFile = "openapi/openapi.yaml"

// Spec 返回 OpenAPI 文档原文
func Spec() ([]byte, error) {
	return OpenAPIFS.ReadFile(SpecFile)
}
