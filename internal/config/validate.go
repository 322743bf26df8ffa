package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError points at the file, position or field that made the
// configuration unusable.
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
	}
}

func asValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	_, ok := asValidationError(err)
	return ok
}

// IsConfigFileNotFound reports whether an explicitly requested config file
// does not exist.
func IsConfigFileNotFound(err error) bool {
	ve, ok := asValidationError(err)
	return ok && ve.Message == msgConfigFileNotFound
}

// ValidateYAMLSyntax reads filePath and checks it with
// ValidateYAMLSyntaxFromBytes. A missing file is not an error.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	switch {
	case err == nil:
		return ValidateYAMLSyntaxFromBytes(data, filePath)
	case os.IsNotExist(err):
		return nil
	case os.IsPermission(err):
		return &ValidationError{FilePath: filePath, Message: "permission denied"}
	default:
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}
}

// ValidateYAMLSyntaxFromBytes parses data and requires the document, if
// any, to be a mapping. Blank input is valid.
func ValidateYAMLSyntaxFromBytes(data []byte, filePath string) error {
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return yamlError(filePath, err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	if root := doc.Content[0]; root.Kind != yaml.MappingNode {
		return &ValidationError{
			FilePath: filePath,
			Line:     root.Line,
			Column:   root.Column,
			Message:  "config must be a mapping of keys to values",
		}
	}
	return nil
}

// yamlErrorPattern matches "yaml: line 5: msg" and "yaml: line 5: column 3: msg".
var yamlErrorPattern = regexp.MustCompile(`^yaml: line (\d+):(?: column (\d+):)? (.*)$`)

func yamlError(filePath string, err error) *ValidationError {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		return &ValidationError{FilePath: filePath, Message: strings.Join(typeErr.Errors, "; ")}
	}

	ve := &ValidationError{FilePath: filePath, Message: err.Error()}
	if m := yamlErrorPattern.FindStringSubmatch(err.Error()); m != nil {
		ve.Line, _ = strconv.Atoi(m[1])
		ve.Column = 1
		if m[2] != "" {
			ve.Column, _ = strconv.Atoi(m[2])
		}
		ve.Message = m[3]
	}
	return ve
}

var validate = newValidator()

// newValidator names fields by their koanf key, so errors read
// "github.per_page" instead of "PerPage".
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateConfigValues checks cfg against its validate tags and reports the
// first failing field as a ValidationError.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	first := fieldErrs[0]
	_, key, found := strings.Cut(first.Namespace(), ".")
	if !found {
		key = first.Namespace()
	}
	return &ValidationError{FilePath: filePath, Field: key, Message: describeFieldError(first)}
}

var tagMessages = map[string]func(validator.FieldError) string{
	"required": func(validator.FieldError) string { return "is required" },
	"min":      func(fe validator.FieldError) string { return "must be at least " + fe.Param() },
	"max":      func(fe validator.FieldError) string { return "must be at most " + fe.Param() },
	"oneof": func(fe validator.FieldError) string {
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	},
	"url": func(fe validator.FieldError) string {
		return fmt.Sprintf("must be a valid URL, got %q", fe.Value())
	},
}

func describeFieldError(fe validator.FieldError) string {
	if msg, ok := tagMessages[fe.Tag()]; ok {
		return msg(fe)
	}
	return "failed validation: " + fe.Tag()
}
