package handler

import "user-rest-service/internal/validation"

// Request schemas for the user endpoints. The same field rules back both the
// create and update variants; create marks them required, update adds the
// object-level "at least one field" rule instead.

var createUserSchema = validation.Schema{
	Rules: []validation.Rule{
		{Field: "name", Label: "Name", Type: validation.TypeString, Required: true, MinLen: 2},
		{Field: "email", Label: "Email", Type: validation.TypeString, Required: true, Email: true},
		{Field: "password", Label: "Password", Type: validation.TypeString, Required: true, MinLen: 6},
	},
}

var updateUserSchema = validation.Schema{
	Rules: []validation.Rule{
		{Field: "name", Label: "Name", Type: validation.TypeString, MinLen: 2},
		{Field: "email", Label: "Email", Type: validation.TypeString, Email: true},
		{Field: "password", Label: "Password", Type: validation.TypeString, MinLen: 6},
	},
	RequireAny:        true,
	RequireAnyMessage: "At least one field must be provided for update",
}

var userParamsSchema = validation.Schema{
	Rules: []validation.Rule{
		{Field: "id", Label: "ID", Type: validation.TypeInt, Required: true, Min: 1, MinSet: true},
	},
}
