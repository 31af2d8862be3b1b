// Package api は OpenAPI 定義から生成された HTTP API の型を提供します。
package api

//go:generate go tool oapi-codegen -config cfg.yaml openapi.yaml
