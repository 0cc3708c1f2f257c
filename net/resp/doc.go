// Package resp writes the JSON envelope used by the management endpoints.
//
// Success bodies are the payload itself, or {"message": "..."} when the
// payload is a plain string. Failure bodies follow:
//
//	{
//	  "code": -404,
//	  "message": "not found",
//	  "errors": {...}
//	}
package resp
