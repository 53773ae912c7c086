// Package handler exposes the ClubHub services over HTTP.
//
// Each handler struct wraps one service. Handlers decode the JSON body into
// a generic object, pass it to the service for validation and write one of
// three envelopes:
//
//   - WriteData: {"<resource>": value}, e.g. {"club": {...}}
//   - WriteMessage: {"message": "..."}
//   - WriteError: {"error": "..."}
//
// Service errors are translated in one place by MapServiceError.
//
// # Routing
//
// NewRouter registers the table returned by Handlers.Routes on a chi router.
// Path identifiers only match digits and are parsed into Params before the
// endpoint runs, so handlers never see a malformed id. Unknown paths, method
// mismatches and out-of-range ids all answer 404 "Endpoint not found".
//
//	router := handler.NewRouter(&handler.Handlers{...}, handler.RouterOptions{
//	    Middlewares: []middleware.Middleware{middleware.RequestID, middleware.Logger},
//	})
package handler
