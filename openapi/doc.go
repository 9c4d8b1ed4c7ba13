// Package openapi generates OpenAPI 3 specifications from entity
// descriptors. Every rule derived from a model definition documents
// itself, so the spec always matches what the validator enforces.
//
// Use [DocBase] to create a base document, register endpoints with
// [Get], [Post], [Put], [Patch], or [Delete], and serve the Swagger UI
// with [modelrest.SwaggerHandlerMust]:
//
//	doc := openapi.DocBase("my-api", "My API", "1.0")
//	openapi.Post(doc, "/users", "createUser", openapi.Endpoint{
//	    Request:  User{},
//	    Response: User{},
//	})
//	http.Handle("/swagger/", modelrest.SwaggerHandlerMust("/swagger/", doc))
package openapi
