package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router wrapped
// in the logRequest and recoverPanic middlewares.
//
// Middleware chain (outermost → innermost):
//
//	logRequest → recoverPanic → router
//
// Current endpoints:
//
//	GET    /healthcheck  – service status
//	GET    /books        – list all books
//	POST   /books        – create a new book
//	GET    /books/:id    – retrieve a single book by ID
//	PATCH  /books/:id    – partially update an existing book
//	DELETE /books/:id    – delete a book by ID
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthcheckHandler)

	// Book CRUD routes
	router.HandlerFunc(http.MethodGet, "/books", app.listBooksHandler)
	router.HandlerFunc(http.MethodPost, "/books", app.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/books/:id", app.showBookHandler)
	router.HandlerFunc(http.MethodPatch, "/books/:id", app.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, "/books/:id", app.deleteBookHandler)

	// recoverPanic sits inside logRequest so recovered panics are logged
	// with their request id and a 500 status.
	return app.logRequest(app.recoverPanic(router))
}
