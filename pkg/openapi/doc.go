// Package openapi holds the contract of the site's JSON endpoints. The
// document is embedded, loaded and validated with kin-openapi, and used to
// validate incoming requests before handlers decode them.
package openapi
