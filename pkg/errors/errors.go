package errors

import "fmt"

var (
	// Base error; every error in jsv inherits from this
	Err = fmt.Errorf("jsv error")

	// Format and system errors
	ErrDecode        = fmt.Errorf("decoding error (%w)", Err)
	ErrEncode        = fmt.Errorf("encoding error (%w)", Err)
	ErrInvalidType   = fmt.Errorf("invalid type (%w)", Err)
	ErrUnknownFormat = fmt.Errorf("unknown format (%w)", Err)
	ErrInvalidOption = fmt.Errorf("invalid option (%w)", Err)
	ErrPathNotFound  = fmt.Errorf("path not found (%w)", Err)
	ErrNoDocuments   = fmt.Errorf("no documents found (%w)", Err)

	// Base schema error
	ErrInvalidSchema = fmt.Errorf("invalid schema (%w)", Err)

	// Specific schema errors
	ErrSchemaNotFound = fmt.Errorf("schema not found (%w)", ErrInvalidSchema)
	ErrRefCycle       = fmt.Errorf("$ref cycle (%w)", ErrInvalidSchema)

	// Raised by FailOnFirstError
	ErrValidation = fmt.Errorf("validation failed (%w)", Err)
)
