package client

import (
	"github.com/Netcracker/qubership-web-audit-service/view"
	"github.com/invopop/jsonschema"
	"strings"
)

// AuditResultResponseSchema is the strict structural schema every transport sends along with the prompt.
var AuditResultResponseSchema = GenerateSchema[view.AuditResult]()

func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Anonymous:                 true,
	}
	var v T
	schema := reflector.Reflect(v)
	return schema
}

// ToGeminiSchema converts a reflected JSON schema into the OpenAPI subset accepted by
// generationConfig.responseSchema: upper-case types, enums, required and property order.
func ToGeminiSchema(s *jsonschema.Schema) map[string]interface{} {
	if s == nil {
		return nil
	}
	out := make(map[string]interface{})
	if s.Type != "" {
		out["type"] = strings.ToUpper(s.Type)
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		out["format"] = "enum"
		out["enum"] = s.Enum
	}
	if s.Items != nil {
		out["items"] = ToGeminiSchema(s.Items)
	}
	if s.Properties != nil && s.Properties.Len() > 0 {
		props := make(map[string]interface{}, s.Properties.Len())
		order := make([]string, 0, s.Properties.Len())
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			props[pair.Key] = ToGeminiSchema(pair.Value)
			order = append(order, pair.Key)
		}
		out["properties"] = props
		out["propertyOrdering"] = order
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	return out
}
