package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aidosbek/labtrack/internal/lending/domain"
	"github.com/aidosbek/labtrack/internal/lending/usecase/command"
	"github.com/aidosbek/labtrack/internal/lending/usecase/query"
	"github.com/aidosbek/labtrack/kafka"
)

// EventPublisher publishes loan lifecycle events. A nil publisher
// disables event publishing.
type EventPublisher interface {
	PublishItemsIssued(ctx context.Context, event kafka.ItemsIssuedEvent) error
	PublishItemResolved(ctx context.Context, eventType string, event kafka.ItemResolvedEvent) error
}

// LendingHandler handles HTTP requests for the lending service using
// CQRS pattern
type LendingHandler struct {
	// Command handlers
	issueHandler           *command.IssueItemsHandler
	returnHandler          *command.ReturnItemHandler
	reportDamagedHandler   *command.ReportDamagedHandler
	bulkImportHandler      *command.BulkImportHandler
	createStudentHandler   *command.CreateStudentHandler
	deleteStudentHandler   *command.DeleteStudentHandler
	createInventoryHandler *command.CreateInventoryHandler

	// Query handlers
	listInventoryHandler  *query.ListInventoryHandler
	schemaHandler         *query.InventorySchemaHandler
	searchItemsHandler    *query.SearchItemsHandler
	currentHolderHandler  *query.CurrentHolderHandler
	listStudentsHandler   *query.ListStudentsHandler
	searchStudentsHandler *query.SearchStudentsHandler
	activeLoansHandler    *query.ActiveLoansHandler
	listStaffHandler      *query.ListStaffHandler
	recentActivityHandler *query.RecentActivityHandler
	overdueHandler        *query.OverdueItemsHandler
	statsHandler          *query.StatsHandler

	store  domain.Store
	events EventPublisher

	// overdueDays is the threshold used when a request carries no
	// ?days= parameter. Zero defers to the query handler's default.
	overdueDays int

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	issuedItems    prometheus.Gauge
}

// NewLendingHandler creates a new lending handler (manual DI for
// backwards compatibility)
func NewLendingHandler(store domain.Store, events EventPublisher) *LendingHandler {
	return NewLendingHandlerWithDI(
		command.NewIssueItemsHandler(store),
		command.NewReturnItemHandler(store),
		command.NewReportDamagedHandler(store),
		command.NewBulkImportHandler(store),
		command.NewCreateStudentHandler(store),
		command.NewDeleteStudentHandler(store),
		command.NewCreateInventoryHandler(store),
		query.NewListInventoryHandler(store),
		query.NewInventorySchemaHandler(),
		query.NewSearchItemsHandler(store),
		query.NewCurrentHolderHandler(store),
		query.NewListStudentsHandler(store),
		query.NewSearchStudentsHandler(store),
		query.NewActiveLoansHandler(store),
		query.NewListStaffHandler(store),
		query.NewRecentActivityHandler(store),
		query.NewOverdueItemsHandler(store),
		query.NewStatsHandler(store),
		store,
		events,
	)
}

// NewLendingHandlerWithDI creates a new lending handler using
// dependency injection. This is used by Wire.
func NewLendingHandlerWithDI(
	issueHandler *command.IssueItemsHandler,
	returnHandler *command.ReturnItemHandler,
	reportDamagedHandler *command.ReportDamagedHandler,
	bulkImportHandler *command.BulkImportHandler,
	createStudentHandler *command.CreateStudentHandler,
	deleteStudentHandler *command.DeleteStudentHandler,
	createInventoryHandler *command.CreateInventoryHandler,
	listInventoryHandler *query.ListInventoryHandler,
	schemaHandler *query.InventorySchemaHandler,
	searchItemsHandler *query.SearchItemsHandler,
	currentHolderHandler *query.CurrentHolderHandler,
	listStudentsHandler *query.ListStudentsHandler,
	searchStudentsHandler *query.SearchStudentsHandler,
	activeLoansHandler *query.ActiveLoansHandler,
	listStaffHandler *query.ListStaffHandler,
	recentActivityHandler *query.RecentActivityHandler,
	overdueHandler *query.OverdueItemsHandler,
	statsHandler *query.StatsHandler,
	store domain.Store,
	events EventPublisher,
) *LendingHandler {
	// Initialize Prometheus metrics
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lending_service_requests_total",
			Help: "Total number of requests to lending service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lending_service_request_duration_seconds",
			Help:    "Duration of lending service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	issuedItems := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "lending_service_issued_items",
			Help: "Number of items currently out on loan",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(issuedItems)

	return &LendingHandler{
		issueHandler:           issueHandler,
		returnHandler:          returnHandler,
		reportDamagedHandler:   reportDamagedHandler,
		bulkImportHandler:      bulkImportHandler,
		createStudentHandler:   createStudentHandler,
		deleteStudentHandler:   deleteStudentHandler,
		createInventoryHandler: createInventoryHandler,
		listInventoryHandler:   listInventoryHandler,
		schemaHandler:          schemaHandler,
		searchItemsHandler:     searchItemsHandler,
		currentHolderHandler:   currentHolderHandler,
		listStudentsHandler:    listStudentsHandler,
		searchStudentsHandler:  searchStudentsHandler,
		activeLoansHandler:     activeLoansHandler,
		listStaffHandler:       listStaffHandler,
		recentActivityHandler:  recentActivityHandler,
		overdueHandler:         overdueHandler,
		statsHandler:           statsHandler,
		store:                  store,
		events:                 events,
		requestCounter:         requestCounter,
		requestLatency:         requestLatency,
		issuedItems:            issuedItems,
	}
}

// SetOverdueThreshold sets the default overdue age in days, applied
// when a request does not specify one.
func (h *LendingHandler) SetOverdueThreshold(days int) {
	h.overdueDays = days
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *LendingHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// statusFromError maps domain errors to HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyIssued),
		errors.Is(err, domain.ErrAlreadyClosed),
		errors.Is(err, domain.ErrDamagedConfirmationRequired),
		errors.Is(err, domain.ErrDuplicateKey):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RegisterRoutes registers all lending routes
func (h *LendingHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/inventory", h.metricsMiddleware("/api/inventory", h.ListInventory)).Methods("GET")
	router.HandleFunc("/api/inventory", h.metricsMiddleware("/api/inventory", h.CreateInventory)).Methods("POST")
	router.HandleFunc("/api/inventory/import", h.metricsMiddleware("/api/inventory/import", h.BulkImport)).Methods("POST")
	router.HandleFunc("/api/inventory/schema", h.metricsMiddleware("/api/inventory/schema", h.GetSchema)).Methods("GET")

	router.HandleFunc("/api/items", h.metricsMiddleware("/api/items", h.ListItems)).Methods("GET")
	router.HandleFunc("/api/items/{id}/holder", h.metricsMiddleware("/api/items/{id}/holder", h.GetCurrentHolder)).Methods("GET")

	router.HandleFunc("/api/students", h.metricsMiddleware("/api/students", h.ListStudents)).Methods("GET")
	router.HandleFunc("/api/students", h.metricsMiddleware("/api/students", h.CreateStudent)).Methods("POST")
	router.HandleFunc("/api/students/{id}", h.metricsMiddleware("/api/students/{id}", h.DeleteStudent)).Methods("DELETE")
	router.HandleFunc("/api/students/{id}/loans", h.metricsMiddleware("/api/students/{id}/loans", h.GetActiveLoans)).Methods("GET")

	router.HandleFunc("/api/staff", h.metricsMiddleware("/api/staff", h.ListStaff)).Methods("GET")

	router.HandleFunc("/api/transactions/issue", h.metricsMiddleware("/api/transactions/issue", h.IssueItems)).Methods("POST")
	router.HandleFunc("/api/transactions/{id}/return", h.metricsMiddleware("/api/transactions/{id}/return", h.ReturnItem)).Methods("POST")
	router.HandleFunc("/api/transactions/{id}/damage", h.metricsMiddleware("/api/transactions/{id}/damage", h.ReportDamaged)).Methods("POST")

	router.HandleFunc("/api/activity", h.metricsMiddleware("/api/activity", h.GetRecentActivity)).Methods("GET")
	router.HandleFunc("/api/overdue", h.metricsMiddleware("/api/overdue", h.GetOverdueItems)).Methods("GET")
	router.HandleFunc("/api/stats", h.metricsMiddleware("/api/stats", h.GetStats)).Methods("GET")
}

// ListInventory handles GET /api/inventory
func (h *LendingHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	inventories, err := h.listInventoryHandler.Handle()
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: inventories})
}

// CreateInventory handles POST /api/inventory
func (h *LendingHandler) CreateInventory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		TotalQty    int    `json:"total_qty"`
		Course      string `json:"course"`
		Description string `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.CreateInventoryCommand{
		Name:        req.Name,
		TotalQty:    req.TotalQty,
		Course:      req.Course,
		Description: req.Description,
	}

	inventory, err := h.createInventoryHandler.Handle(cmd)
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Inventory created successfully",
		Data:    inventory,
	})
}

// BulkImport handles POST /api/inventory/import
func (h *LendingHandler) BulkImport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rows []command.ImportRow `json:"rows"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.bulkImportHandler.Handle(command.BulkImportCommand{Rows: req.Rows})
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Import completed",
		Data:    result,
	})
}

// GetSchema handles GET /api/inventory/schema
func (h *LendingHandler) GetSchema(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, Response{Success: true, Data: h.schemaHandler.Handle()})
}

// ListItems handles GET /api/items
func (h *LendingHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	q := query.SearchItemsQuery{
		Query:  r.URL.Query().Get("q"),
		Status: r.URL.Query().Get("status"),
		Course: r.URL.Query().Get("course"),
	}

	items, err := h.searchItemsHandler.Handle(q)
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: items})
}

// GetCurrentHolder handles GET /api/items/{id}/holder
func (h *LendingHandler) GetCurrentHolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	holder, held, err := h.currentHolderHandler.Handle(id)
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"holder": holder,
			"held":   held,
		},
	})
}

// ListStudents handles GET /api/students
func (h *LendingHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	var (
		students []domain.Student
		err      error
	)

	if term := r.URL.Query().Get("q"); term != "" {
		students, err = h.searchStudentsHandler.Handle(term)
	} else {
		students, err = h.listStudentsHandler.Handle()
	}
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: students})
}

// CreateStudent handles POST /api/students
func (h *LendingHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StudentID string `json:"student_id"`
		Name      string `json:"name"`
		Phone     string `json:"phone"`
		Email     string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.CreateStudentCommand{
		StudentID: req.StudentID,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
	}

	student, err := h.createStudentHandler.Handle(cmd)
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Student created successfully",
		Data:    student,
	})
}

// DeleteStudent handles DELETE /api/students/{id}
func (h *LendingHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.deleteStudentHandler.Handle(command.DeleteStudentCommand{StudentID: id}); err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Student deleted successfully",
	})
}

// GetActiveLoans handles GET /api/students/{id}/loans
func (h *LendingHandler) GetActiveLoans(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	loans, err := h.activeLoansHandler.Handle(id)
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: loans})
}

// ListStaff handles GET /api/staff
func (h *LendingHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.listStaffHandler.Handle()
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: staff})
}

// IssueItems handles POST /api/transactions/issue
func (h *LendingHandler) IssueItems(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StudentID          uint     `json:"student_id"`
		ItemIDs            []uint   `json:"item_ids"`
		Serials            []string `json:"serials"`
		IssuerID           *uint    `json:"issuer_id"`
		AcknowledgeDamaged bool     `json:"acknowledge_damaged"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.IssueItemsCommand{
		StudentID:          req.StudentID,
		ItemIDs:            req.ItemIDs,
		Serials:            req.Serials,
		IssuerID:           req.IssuerID,
		AcknowledgeDamaged: req.AcknowledgeDamaged,
	}

	transactionID, err := h.issueHandler.Handle(cmd)
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	h.updateIssuedMetric()
	h.publishIssued(r.Context(), transactionID, cmd)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Items issued successfully",
		Data:    map[string]uint{"transaction_id": transactionID},
	})
}

// ReturnItem handles POST /api/transactions/{id}/return
func (h *LendingHandler) ReturnItem(w http.ResponseWriter, r *http.Request) {
	transactionID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		ItemID uint `json:"item_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.ReturnItemCommand{TransactionID: transactionID, ItemID: req.ItemID}
	if err := h.returnHandler.Handle(cmd); err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	h.updateIssuedMetric()
	h.publishResolved(r.Context(), kafka.EventTypeItemReturned, transactionID, req.ItemID, domain.ResolutionReturned)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item returned successfully",
	})
}

// ReportDamaged handles POST /api/transactions/{id}/damage
func (h *LendingHandler) ReportDamaged(w http.ResponseWriter, r *http.Request) {
	transactionID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		ItemID uint `json:"item_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.ReportDamagedCommand{TransactionID: transactionID, ItemID: req.ItemID}
	if err := h.reportDamagedHandler.Handle(cmd); err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	h.updateIssuedMetric()
	h.publishResolved(r.Context(), kafka.EventTypeItemDamaged, transactionID, req.ItemID, domain.ResolutionDamaged)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Item reported as damaged",
	})
}

// GetRecentActivity handles GET /api/activity
func (h *LendingHandler) GetRecentActivity(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.recentActivityHandler.Handle(limit)
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: entries})
}

// GetOverdueItems handles GET /api/overdue
func (h *LendingHandler) GetOverdueItems(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	if days <= 0 {
		days = h.overdueDays
	}

	overdue, err := h.overdueHandler.Handle(days)
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: overdue})
}

// GetStats handles GET /api/stats
func (h *LendingHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle()
	if err != nil {
		respondError(w, statusFromError(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: stats})
}

// HealthCheck handles GET /health. db is nil when the service runs on
// the in-memory store.
func (h *LendingHandler) HealthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			respondJSON(w, http.StatusOK, map[string]string{
				"status":  "healthy",
				"backend": "memory",
			})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"backend": "postgres",
		})
	}
}

// RegisterHealthCheck registers health check endpoint
func (h *LendingHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", h.HealthCheck(db)).Methods("GET")
}

func (h *LendingHandler) publishIssued(ctx context.Context, transactionID uint, cmd command.IssueItemsCommand) {
	if h.events == nil {
		return
	}

	// The command may have resolved serials, so read the item ids back
	// from the committed lines.
	itemIDs := cmd.ItemIDs
	if lines, err := h.store.ListLinesByTransaction(transactionID); err == nil {
		itemIDs = make([]uint, 0, len(lines))
		for _, line := range lines {
			itemIDs = append(itemIDs, line.ItemID)
		}
	}

	event := kafka.ItemsIssuedEvent{
		TransactionID: transactionID,
		StudentID:     cmd.StudentID,
		IssuerID:      cmd.IssuerID,
		ItemIDs:       itemIDs,
	}
	// Publishing is best effort; the loan is already committed.
	_ = h.events.PublishItemsIssued(ctx, event)
}

func (h *LendingHandler) publishResolved(ctx context.Context, eventType string, transactionID, itemID uint, resolution string) {
	if h.events == nil {
		return
	}

	event := kafka.ItemResolvedEvent{
		TransactionID: transactionID,
		ItemID:        itemID,
		Resolution:    resolution,
	}
	_ = h.events.PublishItemResolved(ctx, eventType, event)
}

// updateIssuedMetric refreshes the issued items gauge
func (h *LendingHandler) updateIssuedMetric() {
	items, err := h.store.ListItems()
	if err != nil {
		return
	}

	issued := 0
	for _, item := range items {
		if item.Status == domain.ItemIssued {
			issued++
		}
	}
	h.issuedItems.Set(float64(issued))
}

// pathID extracts the {id} route variable, responding 400 on garbage.
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{Success: false, Error: message})
}
