package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed schemas
var schemasFS embed.FS

// Базовый адрес схем. Все схемы загружены заранее, по сети ничего не запрашивается.
const schemaBaseURL = "https://listing-site.local/"

// Ключи скомпилированных схем
const (
	SchemaCatalogResponse = "CatalogResponse/1.0.0"
	SchemaListingRecord   = "ListingRecord/1.0.0"
	SchemaCacheEntry      = "CacheEntry/1.0.0"
)

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	// Сначала регистрируем все схемы как ресурсы, чтобы работали $ref между ними
	err := fs.WalkDir(schemasFS, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := schemasFS.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := compiler.AddResource(schemaBaseURL+path, file); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and adding schema resources: %v", err)
	}

	err = fs.WalkDir(schemasFS, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		schema, err := compiler.Compile(schemaBaseURL + path)
		if err != nil {
			return fmt.Errorf("could not compile schema %s: %w", path, err)
		}
		if key := generateKeyFromPath(path); key != "" {
			compiledSchemas[key] = schema
		}
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and compiling schemas: %v", err)
	}
}

// generateKeyFromPath: "schemas/catalog-response/v1.json" -> "CatalogResponse/1.0.0"
func generateKeyFromPath(path string) string {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(path, "schemas/"), ".json")

	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[0], "-") {
		name.WriteString(caser.String(p))
	}

	version := strings.Replace(parts[1], "v", "", 1) + ".0.0"
	return fmt.Sprintf("%s/%s", name.String(), version)
}

func schemaFor(key string) (*jsonschema.Schema, error) {
	schema, ok := compiledSchemas[key]
	if !ok {
		return nil, fmt.Errorf("schema '%s' not found", key)
	}
	return schema, nil
}

// Validate проверяет уже разобранное значение по схеме key
func Validate(key string, v interface{}) error {
	schema, err := schemaFor(key)
	if err != nil {
		return err
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}

// unmarshalRaw разбирает JSON в универсальные типы, числа остаются json.Number
func unmarshalRaw(body []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("body is not a valid JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("body is not a valid JSON: trailing data")
	}
	return v, nil
}
