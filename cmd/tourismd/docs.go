package main

// General API documentation for swaggo. Run `swag init -g cmd/tourismd/docs.go`
// to regenerate docs/.
//
// @title           CAMTOUR-CLASSIFIER-API
// @version         1.0.0
// @description     API for zero-shot classification of tourism content.
//
// @contact.name   tourismd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
