// Package server wires stores, handlers, and middleware into the HTTP API.
package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/auth"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/email"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/filestore"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/handler"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/middleware"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/payments"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/push"
	"github.com/JorgeM-Dev10/sapiens-boards/internal/store"
	ws "github.com/JorgeM-Dev10/sapiens-boards/internal/websocket"
)

// Config holds server-level settings that come from the environment.
type Config struct {
	SessionSecret []byte
	SessionTTL    time.Duration
}

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	authSvc       *auth.Service
	authH         *handler.AuthHandler
	boardH        *handler.BoardHandler
	listH         *handler.ListHandler
	taskH         *handler.TaskHandler
	solutionH     *handler.SolutionHandler
	clientH       *handler.ClientHandler
	workerH       *handler.WorkerHandler
	resourceH     *handler.ResourceHandler
	pushH         *handler.PushHandler
	pushScheduler *push.Scheduler
	rateLimiter   *middleware.RateLimiter
	logger        *slog.Logger
}

func New(cfg Config, db *sql.DB, paymentsClient *payments.Client, emailClient *email.Client, files *filestore.Store, pushSvc *push.Service, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	boardStore := store.NewBoardStore(db)
	listStore := store.NewListStore(db)
	taskStore := store.NewTaskStore(db)
	solutionStore := store.NewSolutionStore(db)
	clientStore := store.NewClientStore(db)
	billingStore := store.NewBillingStore(db)
	workerStore := store.NewWorkerStore(db)
	resourceStore := store.NewResourceStore(db)
	pushStore := store.NewPushStore(db)

	authSvc := auth.NewService(userStore, cfg.SessionSecret, cfg.SessionTTL)

	var pushSched *push.Scheduler
	if pushSvc.Configured() {
		pushSched = push.NewScheduler(pushSvc, taskStore, pushStore, logger)
	}

	return &Server{
		db:            db,
		hub:           hub,
		authSvc:       authSvc,
		authH:         handler.NewAuthHandler(userStore, authSvc, logger.With("component", "auth")),
		boardH:        handler.NewBoardHandler(boardStore, listStore, hub, logger.With("component", "board")),
		listH:         handler.NewListHandler(listStore, boardStore, hub, logger.With("component", "list")),
		taskH:         handler.NewTaskHandler(taskStore, listStore, hub, logger.With("component", "task")),
		solutionH:     handler.NewSolutionHandler(solutionStore, hub, logger.With("component", "solution")),
		clientH:       handler.NewClientHandler(clientStore, billingStore, paymentsClient, emailClient, logger.With("component", "client")),
		workerH:       handler.NewWorkerHandler(workerStore, logger.With("component", "worker")),
		resourceH:     handler.NewResourceHandler(resourceStore, files, logger.With("component", "resource")),
		pushH:         handler.NewPushHandler(pushStore, pushSvc, logger.With("component", "push")),
		pushScheduler: pushSched,
		rateLimiter:   middleware.NewRateLimiter(),
		logger:        logger,
	}
}

// PushScheduler returns the reminder scheduler, or nil when push is not
// configured.
func (s *Server) PushScheduler() *push.Scheduler {
	return s.pushScheduler
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /api/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("POST /api/logout", s.authH.Logout)
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.authSvc)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/me", s.authH.Me)

	// Board API routes
	mux.HandleFunc("POST /api/boards", s.boardH.Create)
	mux.HandleFunc("GET /api/boards", s.boardH.List)
	mux.HandleFunc("GET /api/boards/{id}", s.boardH.Get)
	mux.HandleFunc("PUT /api/boards/{id}", s.boardH.Update)
	mux.HandleFunc("DELETE /api/boards/{id}", s.boardH.Delete)
	mux.HandleFunc("POST /api/boards/reorder", s.boardH.Reorder)
	mux.HandleFunc("GET /api/boards/{id}/lists", s.boardH.Lists)

	// List API routes
	mux.HandleFunc("POST /api/lists", s.listH.Create)
	mux.HandleFunc("PATCH /api/lists/{id}", s.listH.Update)
	mux.HandleFunc("DELETE /api/lists/{id}", s.listH.Delete)
	mux.HandleFunc("POST /api/lists/reorder", s.listH.Reorder)

	// Task API routes
	mux.HandleFunc("POST /api/tasks", s.taskH.Create)
	mux.HandleFunc("GET /api/lists/{id}/tasks", s.taskH.ListForList)
	mux.HandleFunc("PUT /api/tasks/{id}", s.taskH.Update)
	mux.HandleFunc("POST /api/tasks/{id}/complete", s.taskH.Complete)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.taskH.Delete)
	mux.HandleFunc("POST /api/tasks/reorder", s.taskH.Reorder)

	// Solution catalog API routes
	mux.HandleFunc("POST /api/solutions", s.solutionH.Create)
	mux.HandleFunc("GET /api/solutions", s.solutionH.List)
	mux.HandleFunc("GET /api/solutions/{id}", s.solutionH.Get)
	mux.HandleFunc("PUT /api/solutions/{id}", s.solutionH.Update)
	mux.HandleFunc("DELETE /api/solutions/{id}", s.solutionH.Delete)
	mux.HandleFunc("POST /api/solutions/reorder", s.solutionH.Reorder)

	// Client + billing API routes
	mux.HandleFunc("POST /api/clients", s.clientH.Create)
	mux.HandleFunc("GET /api/clients", s.clientH.List)
	mux.HandleFunc("GET /api/clients/{id}", s.clientH.Get)
	mux.HandleFunc("PUT /api/clients/{id}", s.clientH.Update)
	mux.HandleFunc("DELETE /api/clients/{id}", s.clientH.Delete)
	mux.HandleFunc("POST /api/clients/{id}/billing", s.clientH.CreateBilling)
	mux.HandleFunc("GET /api/clients/{id}/billing", s.clientH.ListBilling)
	mux.HandleFunc("PUT /api/billing/{id}", s.clientH.UpdateBilling)
	mux.HandleFunc("DELETE /api/billing/{id}", s.clientH.DeleteBilling)
	mux.HandleFunc("POST /api/billing/{id}/payment-link", s.clientH.PaymentLink)
	mux.HandleFunc("POST /api/billing/{id}/send", s.clientH.SendBilling)

	// Worker + payroll API routes
	mux.HandleFunc("POST /api/workers", s.workerH.Create)
	mux.HandleFunc("GET /api/workers", s.workerH.List)
	mux.HandleFunc("GET /api/workers/{id}", s.workerH.Get)
	mux.HandleFunc("PUT /api/workers/{id}", s.workerH.Update)
	mux.HandleFunc("DELETE /api/workers/{id}", s.workerH.Delete)
	mux.HandleFunc("POST /api/workers/{id}/payroll", s.workerH.CreatePayroll)
	mux.HandleFunc("GET /api/workers/{id}/payroll", s.workerH.ListPayroll)
	mux.HandleFunc("PUT /api/payroll/{id}", s.workerH.UpdatePayroll)
	mux.HandleFunc("POST /api/payroll/{id}/pay", s.workerH.MarkPayrollPaid)
	mux.HandleFunc("DELETE /api/payroll/{id}", s.workerH.DeletePayroll)

	// Resource library API routes
	mux.HandleFunc("POST /api/resources", s.resourceH.Create)
	mux.HandleFunc("POST /api/resources/upload", s.resourceH.Upload)
	mux.HandleFunc("GET /api/resources", s.resourceH.List)
	mux.HandleFunc("GET /api/resources/{id}", s.resourceH.Get)
	mux.HandleFunc("GET /api/resources/{id}/download", s.resourceH.Download)
	mux.HandleFunc("PUT /api/resources/{id}", s.resourceH.Update)
	mux.HandleFunc("DELETE /api/resources/{id}", s.resourceH.Delete)

	// Push notification API routes
	mux.HandleFunc("GET /api/push/vapid-key", s.pushH.VAPIDKey)
	mux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
	mux.HandleFunc("GET /api/push/subscriptions", s.pushH.List)
	mux.HandleFunc("DELETE /api/push/subscriptions/{id}", s.pushH.Delete)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}
