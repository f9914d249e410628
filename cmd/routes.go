package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddleware)
	wsMiddleware := alice.New(app.recoverPanic, app.logRequest)

	mux := pat.New()

	mux.Get("/healthz", standardMiddleware.ThenFunc(app.healthz))

	// Accounts
	mux.Post("/api/accounts", standardMiddleware.ThenFunc(app.accountHandler.Register))
	mux.Post("/api/login", standardMiddleware.ThenFunc(app.accountHandler.Login))
	mux.Post("/api/token/refresh", standardMiddleware.ThenFunc(app.accountHandler.Refresh))
	mux.Post("/api/logout", standardMiddleware.ThenFunc(app.accountHandler.Logout))
	mux.Get("/api/accounts/nearby", standardMiddleware.ThenFunc(app.accountHandler.Nearby))
	mux.Get("/api/accounts/:account_id/services", standardMiddleware.ThenFunc(app.serviceHandler.GetServicesByAccount))
	mux.Get("/api/accounts/:account_id/reviews", standardMiddleware.ThenFunc(app.reviewHandler.GetReviewsByAccountID))
	mux.Get("/api/accounts/:account_id/rating", standardMiddleware.ThenFunc(app.reviewHandler.GetAccountRating))
	mux.Post("/api/accounts/:account_id/hashtags", authMiddleware.ThenFunc(app.hashtagHandler.AddHashtags))
	mux.Get("/api/accounts/:account_id/hashtags", standardMiddleware.ThenFunc(app.hashtagHandler.GetAccountHashtags))
	mux.Del("/api/accounts/:account_id/hashtags/:tag", authMiddleware.ThenFunc(app.hashtagHandler.RemoveHashtag))
	mux.Get("/api/accounts/:account_id", standardMiddleware.ThenFunc(app.accountHandler.GetAccount))
	mux.Put("/api/accounts/:account_id", authMiddleware.ThenFunc(app.accountHandler.UpdateAccount))
	mux.Del("/api/accounts/:account_id", authMiddleware.ThenFunc(app.accountHandler.DeleteAccount))

	// Services
	mux.Get("/api/services/search", standardMiddleware.ThenFunc(app.searchHandler.SearchServices))
	mux.Get("/api/services", standardMiddleware.ThenFunc(app.searchHandler.SearchServices))
	mux.Post("/api/services", authMiddleware.ThenFunc(app.serviceHandler.CreateService))
	mux.Get("/api/services/:service_id/reviews", standardMiddleware.ThenFunc(app.reviewHandler.GetReviewsByServiceID))
	mux.Post("/api/services/:service_id/reviews", authMiddleware.ThenFunc(app.reviewHandler.CreateReview))
	mux.Get("/api/services/:service_id/rating", standardMiddleware.ThenFunc(app.reviewHandler.GetServiceRating))
	mux.Get("/api/services/:service_id", standardMiddleware.ThenFunc(app.serviceHandler.GetService))
	mux.Put("/api/services/:service_id", authMiddleware.ThenFunc(app.serviceHandler.UpdateService))
	mux.Del("/api/services/:service_id", authMiddleware.ThenFunc(app.serviceHandler.DeleteService))

	// Reviews
	mux.Put("/api/reviews/:review_id", authMiddleware.ThenFunc(app.reviewHandler.UpdateReview))
	mux.Del("/api/reviews/:review_id", authMiddleware.ThenFunc(app.reviewHandler.DeleteReview))

	// Hashtags
	mux.Get("/api/hashtags/search", standardMiddleware.ThenFunc(app.hashtagHandler.SearchHashtags))
	mux.Get("/api/hashtags/:tag/accounts", standardMiddleware.ThenFunc(app.hashtagHandler.GetAccountsByHashtag))

	// Search
	mux.Get("/api/search/advanced", standardMiddleware.ThenFunc(app.searchHandler.AdvancedSearch))
	mux.Get("/api/search", standardMiddleware.ThenFunc(app.searchHandler.Search))

	// Realtime
	mux.Get("/ws/services/:service_id/rating", wsMiddleware.ThenFunc(app.ratingWebSocketHandler))

	return mux
}
