// Command example runs a small gin server whose /users resource is
// driven entirely by the User model definition: the validation schema,
// uniqueness check, serialization, and OpenAPI docs all come from the
// same descriptor.
//
// Run:
//
//	go run ./_example
//
// Then open http://localhost:8080/swagger/ in your browser.
package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fadine/modelrest"
	"github.com/fadine/modelrest/memstore"
	"github.com/fadine/modelrest/openapi"
	"github.com/fadine/modelrest/transform"
)

// User is the resource model. The org_id column is globally excluded
// from every export.
type User struct {
	modelrest.Record `json:"-" model:"-"`

	ID     string `json:"id" model:"primary"`
	Email  string `json:"email" model:"unique,maxlength=120"`
	Name   string `json:"name" model:"maxlength=80"`
	Active bool   `json:"active" model:"default=true"`
	OrgID  string `json:"org_id" model:"null"`
}

func main() {
	descriptor, err := modelrest.DescriptorFor(User{})
	if err != nil {
		log.Fatalf("descriptor: %v", err)
	}
	schema, err := modelrest.GenerateSchema(descriptor)
	if err != nil {
		log.Fatalf("schema: %v", err)
	}

	store := memstore.New()
	validator := modelrest.NewValidator(schema,
		modelrest.WithDescriptor(descriptor),
		modelrest.WithLookup(store.Lookup()),
	)
	exporter := modelrest.NewExporter("org_id")

	doc := openapi.DocBase("users-api", "Model-driven user resource", "0.1.0")
	openapi.Get(doc, "/users", "listUsers", openapi.Endpoint{
		Summary:  "List users",
		Response: User{},
	})
	openapi.Post(doc, "/users", "createUser", openapi.Endpoint{
		Summary:  "Create a user",
		Request:  User{},
		Response: User{},
	})

	r := gin.Default()

	r.GET("/users", func(c *gin.Context) {
		out, err := exporter.Export(store.All())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, out)
	})

	r.POST("/users", func(c *gin.Context) {
		var doc map[string]any
		if err := c.ShouldBindJSON(&doc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		transform.DocMulti(doc, transform.DocTrimSpace, func(d map[string]any) {
			transform.DocFieldFunc(d, strings.ToLower, "email")
		})

		if err := validator.Validate(doc, nil); err != nil {
			var rejection *modelrest.Rejection
			if errors.As(err, &rejection) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": rejection.Violations})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		user := &User{}
		if err := modelrest.Apply(schema, user, doc); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := store.Insert(user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		out, err := exporter.Export(user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, out)
	})

	r.GET("/users/:id", func(c *gin.Context) {
		rec := store.Get("id", c.Param("id"))
		if rec == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		out, err := exporter.Export(rec)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, out)
	})

	r.PUT("/users/:id", func(c *gin.Context) {
		rec := store.Get("id", c.Param("id"))
		if rec == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		var doc map[string]any
		if err := c.ShouldBindJSON(&doc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		transform.DocTrimSpace(doc)

		if err := validator.Validate(doc, rec); err != nil {
			var rejection *modelrest.Rejection
			if errors.As(err, &rejection) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": rejection.Violations})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := modelrest.Apply(schema, rec, doc); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		out, err := exporter.Export(rec)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, out)
	})

	swagger := modelrest.SwaggerHandlerMust("/swagger/", doc)
	r.GET("/swagger/*any", gin.WrapH(swagger))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
