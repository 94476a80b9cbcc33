package routes

import (
	"net/http"

	"github.com/Nehal2048/book-hive/internal/handlers"
	appmw "github.com/Nehal2048/book-hive/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRoutes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Post("/auth/register", handlers.RegisterHandler)
	r.Post("/auth/login", handlers.LoginHandler)
	r.With(appmw.Authenticated).Get("/auth/me", handlers.MeHandler)

	r.Route("/listings", func(r chi.Router) {
		r.Get("/", handlers.ListListingsHandler)
		r.Get("/{listingID}", handlers.GetListingHandler)
		r.With(appmw.Authenticated).Post("/", handlers.CreateListingHandler)
	})

	r.Route("/borrow", func(r chi.Router) {
		r.With(appmw.Authenticated).Post("/request", handlers.SendBorrowRequestHandler)
		r.Get("/received/{userID}", handlers.ReceivedBorrowRequestsHandler)
		r.Get("/sent/{userID}", handlers.SentBorrowRequestsHandler)
		r.With(appmw.Authenticated).Post("/accept/{listingID}", handlers.AcceptBorrowRequestHandler)
		r.With(appmw.Authenticated).Post("/reject/{listingID}", handlers.RejectBorrowRequestHandler)
		r.With(appmw.Authenticated).Post("/cancel/{listingID}", handlers.CancelBorrowRequestHandler)
		r.With(appmw.Authenticated).Post("/return/{borrowID}", handlers.ReturnBorrowHandler)
		r.Get("/active/{userID}", handlers.ActiveBorrowsHandler)
		r.Get("/history/{userID}", handlers.BorrowHistoryHandler)
	})

	r.Route("/exchange", func(r chi.Router) {
		r.With(appmw.Authenticated).Post("/request", handlers.SendExchangeRequestHandler)
		r.Get("/received/{userID}", handlers.ReceivedExchangeRequestsHandler)
		r.Get("/sent/{userID}", handlers.SentExchangeRequestsHandler)
		r.With(appmw.Authenticated).Post("/accept/{listingID}", handlers.AcceptExchangeRequestHandler)
		r.With(appmw.Authenticated).Post("/reject/{listingID}", handlers.RejectExchangeRequestHandler)
		r.With(appmw.Authenticated).Post("/cancel/{listingID}", handlers.CancelExchangeRequestHandler)
		r.With(appmw.Authenticated, appmw.AdminOnly).Get("/", handlers.AllExchangesHandler)
		r.Get("/user/{userID}", handlers.UserExchangesHandler)
	})

	r.Route("/orders", func(r chi.Router) {
		r.With(appmw.Authenticated).Post("/", handlers.CreateOrderHandler)
		r.Get("/{orderID}", handlers.GetOrderHandler)
		r.Get("/user/{userID}", handlers.OrdersByUserHandler)
		r.With(appmw.Authenticated).Post("/{orderID}/pay", handlers.PayOrderHandler)
	})

	r.Route("/transactions", func(r chi.Router) {
		r.Use(appmw.Authenticated, appmw.AdminOnly)
		r.Post("/", handlers.CreateTransactionHandler)
		r.Get("/", handlers.AllTransactionsHandler)
		r.Get("/{txID}", handlers.GetTransactionHandler)
		r.Put("/{txID}", handlers.UpdateTransactionHandler)
		r.Delete("/{txID}", handlers.DeleteTransactionHandler)
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
