// Package schemas carries the built-in patchset: the one-time migration that
// extends backend/validation.js with AI schema-suggestion request validators.
// The search and replacement literals use CRLF line endings because the target
// file does; they must never be normalized.
package schemas

import (
	"github.com/ecomstack/schemapatch/pkg/config"
)

// DefaultTarget is the file the built-in patchset edits, relative to the
// working directory.
const DefaultTarget = "backend/validation.js"

// suggestionFields is the validator body shared by every suggestion request
// schema: four optional, trimmed string fields that tolerate '' and null.
const suggestionFields = "    brand: Joi.string().trim().allow('', null),\r\n" +
	"    sku: Joi.string().trim().allow('', null),\r\n" +
	"    productUrl: Joi.string().uri().allow('', null),\r\n" +
	"    notes: Joi.string().trim().allow('', null),\r\n"

// productSchemasSearch anchors on the tail of the product schema map: the
// bulkDeleteVariations entry, the closing brace, and the imageSchemas
// declaration that follows it.
const productSchemasSearch = "  bulkDeleteVariations: Joi.object({\r\n" +
	"    variationIds: Joi.array().items(Joi.number().integer()).min(1).required(),\r\n" +
	"  }),\r\n" +
	"};\r\n" +
	"\r\n" +
	"const imageSchemas"

// productSchemasReplace inserts generateSchemaSuggestion before the closing
// brace, leaving everything around it untouched.
const productSchemasReplace = "  bulkDeleteVariations: Joi.object({\r\n" +
	"    variationIds: Joi.array().items(Joi.number().integer()).min(1).required(),\r\n" +
	"  }),\r\n" +
	"  generateSchemaSuggestion: Joi.object({\r\n" +
	suggestionFields +
	"  }),\r\n" +
	"};\r\n" +
	"\r\n" +
	"const imageSchemas"

// keywordMetadataSearch anchors on the whole keywordSchemaMetadataSchemas map.
const keywordMetadataSearch = "const keywordSchemaMetadataSchemas = {\r\n" +
	"  updateKeywordSchema: Joi.object({\r\n" +
	"    schemaMetadata: schemaMetadataSchema.required(),\r\n" +
	"  }),\r\n" +
	"  updateVariationSchema: Joi.object({\r\n" +
	"    schemaMetadata: schemaMetadataSchema.required(),\r\n" +
	"  }),\r\n" +
	"};"

// keywordMetadataReplace extends the map with suggestion request schemas for
// both keyword and variation flavors.
const keywordMetadataReplace = "const keywordSchemaMetadataSchemas = {\r\n" +
	"  updateKeywordSchema: Joi.object({\r\n" +
	"    schemaMetadata: schemaMetadataSchema.required(),\r\n" +
	"  }),\r\n" +
	"  updateVariationSchema: Joi.object({\r\n" +
	"    schemaMetadata: schemaMetadataSchema.required(),\r\n" +
	"  }),\r\n" +
	"  generateKeywordSchemaSuggestion: Joi.object({\r\n" +
	suggestionFields +
	"  }),\r\n" +
	"  generateVariationSchemaSuggestion: Joi.object({\r\n" +
	suggestionFields +
	"  }),\r\n" +
	"};"

// Builtin returns the patchset applied when no config file is given. Running
// the tool with no flags against a checkout containing backend/validation.js
// reproduces the original migration exactly.
func Builtin() config.Patchset {
	return config.Patchset{
		Name:   "validation-suggestion-schemas",
		Target: DefaultTarget,
		Edits: []config.EditDef{
			{
				Name:    "product-schemas-generate-suggestion",
				Search:  productSchemasSearch,
				Replace: productSchemasReplace,
			},
			{
				Name:    "keyword-schema-metadata-generate-suggestion",
				Search:  keywordMetadataSearch,
				Replace: keywordMetadataReplace,
			},
		},
	}
}
