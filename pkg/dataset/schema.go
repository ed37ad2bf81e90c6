package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidMetadata indicates a metadata.json file failed schema
// validation.
var ErrInvalidMetadata = errors.New("invalid metadata")

// metadataSchema is the JSON schema every bug folder's metadata.json must
// satisfy.
const metadataSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["id", "human_id", "project_name", "commit_hash"],
	"properties": {
		"id": {"type": "integer", "minimum": 0},
		"human_id": {"type": "string", "minLength": 1},
		"project_name": {"type": "string", "minLength": 1},
		"commit_hash": {"type": "string", "pattern": "^[0-9a-fA-F]{7,64}$"},
		"bug_in_test_code": {"type": "boolean"},
		"is_merge": {"type": "boolean"}
	},
	"additionalProperties": true
}`

// ValidateMetadata checks raw metadata.json bytes against the schema and
// returns an error listing every violated constraint.
func ValidateMetadata(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(metadataSchema)
	docLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("validate metadata: %w", err)
	}

	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}

	return fmt.Errorf("%w: %s", ErrInvalidMetadata, strings.Join(problems, "; "))
}
