// Package validation checks tool parameters before they reach a document library.
//
// Each tool declares a Schema, an ordered list of Rules. Validate walks the
// rules and reports the first violation as a FieldError matching ErrInvalid:
//
//	schema := validation.Schema{
//	    {Field: "title", Required: true, Type: validation.TypeString, MinLength: 1, MaxLength: 255},
//	    {Field: "theme", Type: validation.TypeString, Choices: []string{"default", "modern"}},
//	}
//	if err := schema.Validate(params); err != nil {
//	    return params.Failure(err.Error())
//	}
//
// ValidateFilePath resolves user supplied paths (including ~) and enforces
// existence and extension constraints for templates and local images.
package validation
