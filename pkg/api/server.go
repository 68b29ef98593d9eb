package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers mounted under /api.
type ServerInterface interface {
	// Current user
	// (GET /me)
	GetMe(w http.ResponseWriter, r *http.Request)
	// List movements, most recent first
	// (GET /movements)
	ListMovements(w http.ResponseWriter, r *http.Request, params ListMovementsParams)
	// Create a movement
	// (POST /movements)
	CreateMovement(w http.ResponseWriter, r *http.Request)
	// Delete a movement
	// (DELETE /movements/{movementId})
	DeleteMovement(w http.ResponseWriter, r *http.Request, movementId openapi_types.UUID)
	// Get a movement
	// (GET /movements/{movementId})
	GetMovement(w http.ResponseWriter, r *http.Request, movementId openapi_types.UUID)
	// Update a movement
	// (PUT /movements/{movementId})
	UpdateMovement(w http.ResponseWriter, r *http.Request, movementId openapi_types.UUID)
	// List pending payments
	// (GET /pending-payments)
	ListPendingPayments(w http.ResponseWriter, r *http.Request)
	// Settle a pending payment
	// (POST /pending-payments/{movementId}/settle)
	SettlePendingPayment(w http.ResponseWriter, r *http.Request, movementId openapi_types.UUID)
	// Dashboard aggregates
	// (GET /dashboard)
	GetDashboard(w http.ResponseWriter, r *http.Request, params DashboardParams)
	// Monthly chart
	// (GET /dashboard/chart.svg)
	GetDashboardChart(w http.ResponseWriter, r *http.Request, params DashboardParams)
	// Download a report
	// (GET /export/{format})
	ExportReport(w http.ResponseWriter, r *http.Request, format ExportFormat, params ExportParams)
	// Theme preference
	// (GET /preferences/theme)
	GetTheme(w http.ResponseWriter, r *http.Request)
	// Store the theme preference
	// (PUT /preferences/theme)
	SetTheme(w http.ResponseWriter, r *http.Request)
	// Flip the theme preference
	// (POST /preferences/theme/toggle)
	ToggleTheme(w http.ResponseWriter, r *http.Request)
	// Profile
	// (GET /profile)
	GetProfile(w http.ResponseWriter, r *http.Request)
	// Update the profile
	// (PUT /profile)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

type MiddlewareFunc func(http.Handler) http.Handler

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, fn http.HandlerFunc) {
	handler := http.Handler(fn)
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

func (siw *ServerInterfaceWrapper) bindMovementID(w http.ResponseWriter, r *http.Request) (openapi_types.UUID, bool) {
	var movementId openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "movementId", chi.URLParam(r, "movementId"), &movementId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "movementId", Err: err})
		return movementId, false
	}
	return movementId, true
}

func (siw *ServerInterfaceWrapper) bindYear(w http.ResponseWriter, r *http.Request, dest **int) bool {
	if err := runtime.BindQueryParameter("form", true, false, "year", r.URL.Query(), dest); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "year", Err: err})
		return false
	}
	return true
}

// GetMe operation middleware
func (siw *ServerInterfaceWrapper) GetMe(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.GetMe)
}

// ListMovements operation middleware
func (siw *ServerInterfaceWrapper) ListMovements(w http.ResponseWriter, r *http.Request) {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params ListMovementsParams

	err = runtime.BindQueryParameter("form", true, false, "type", r.URL.Query(), &params.Type)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "type", Err: err})
		return
	}

	err = runtime.BindQueryParameter("form", true, false, "category", r.URL.Query(), &params.Category)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "category", Err: err})
		return
	}

	if !siw.bindYear(w, r, &params.Year) {
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListMovements(w, r, params)
	})
}

// CreateMovement operation middleware
func (siw *ServerInterfaceWrapper) CreateMovement(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.CreateMovement)
}

// DeleteMovement operation middleware
func (siw *ServerInterfaceWrapper) DeleteMovement(w http.ResponseWriter, r *http.Request) {
	movementId, ok := siw.bindMovementID(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.DeleteMovement(w, r, movementId)
	})
}

// GetMovement operation middleware
func (siw *ServerInterfaceWrapper) GetMovement(w http.ResponseWriter, r *http.Request) {
	movementId, ok := siw.bindMovementID(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetMovement(w, r, movementId)
	})
}

// UpdateMovement operation middleware
func (siw *ServerInterfaceWrapper) UpdateMovement(w http.ResponseWriter, r *http.Request) {
	movementId, ok := siw.bindMovementID(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.UpdateMovement(w, r, movementId)
	})
}

// ListPendingPayments operation middleware
func (siw *ServerInterfaceWrapper) ListPendingPayments(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.ListPendingPayments)
}

// SettlePendingPayment operation middleware
func (siw *ServerInterfaceWrapper) SettlePendingPayment(w http.ResponseWriter, r *http.Request) {
	movementId, ok := siw.bindMovementID(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.SettlePendingPayment(w, r, movementId)
	})
}

// GetDashboard operation middleware
func (siw *ServerInterfaceWrapper) GetDashboard(w http.ResponseWriter, r *http.Request) {
	var params DashboardParams
	if !siw.bindYear(w, r, &params.Year) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetDashboard(w, r, params)
	})
}

// GetDashboardChart operation middleware
func (siw *ServerInterfaceWrapper) GetDashboardChart(w http.ResponseWriter, r *http.Request) {
	var params DashboardParams
	if !siw.bindYear(w, r, &params.Year) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetDashboardChart(w, r, params)
	})
}

// ExportReport operation middleware
func (siw *ServerInterfaceWrapper) ExportReport(w http.ResponseWriter, r *http.Request) {
	var err error

	// ------------- Path parameter "format" -------------
	var format ExportFormat

	err = runtime.BindStyledParameterWithOptions("simple", "format", chi.URLParam(r, "format"), &format, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "format", Err: err})
		return
	}

	var params ExportParams

	err = runtime.BindQueryParameter("form", true, false, "transactions", r.URL.Query(), &params.Transactions)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "transactions", Err: err})
		return
	}

	err = runtime.BindQueryParameter("form", true, false, "pending", r.URL.Query(), &params.Pending)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "pending", Err: err})
		return
	}

	if !siw.bindYear(w, r, &params.Year) {
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ExportReport(w, r, format, params)
	})
}

// GetTheme operation middleware
func (siw *ServerInterfaceWrapper) GetTheme(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.GetTheme)
}

// SetTheme operation middleware
func (siw *ServerInterfaceWrapper) SetTheme(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.SetTheme)
}

// ToggleTheme operation middleware
func (siw *ServerInterfaceWrapper) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.ToggleTheme)
}

// GetProfile operation middleware
func (siw *ServerInterfaceWrapper) GetProfile(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.GetProfile)
}

// UpdateProfile operation middleware
func (siw *ServerInterfaceWrapper) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.UpdateProfile)
}

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// Handler creates http.Handler with routing matching the API.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerFromMux creates http.Handler with routing matching the API and a chi.Router.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{
		BaseRouter: r,
	})
}

// HandlerFromMuxWithBaseURL is HandlerFromMux with every route prefixed by baseURL.
func HandlerFromMuxWithBaseURL(si ServerInterface, r chi.Router, baseURL string) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{
		BaseURL:    baseURL,
		BaseRouter: r,
	})
}

// HandlerWithOptions creates http.Handler with additional options
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/me", wrapper.GetMe)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/movements", wrapper.ListMovements)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/movements", wrapper.CreateMovement)
	})
	r.Group(func(r chi.Router) {
		r.Delete(options.BaseURL+"/movements/{movementId}", wrapper.DeleteMovement)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/movements/{movementId}", wrapper.GetMovement)
	})
	r.Group(func(r chi.Router) {
		r.Put(options.BaseURL+"/movements/{movementId}", wrapper.UpdateMovement)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/pending-payments", wrapper.ListPendingPayments)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/pending-payments/{movementId}/settle", wrapper.SettlePendingPayment)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/dashboard", wrapper.GetDashboard)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/dashboard/chart.svg", wrapper.GetDashboardChart)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/export/{format}", wrapper.ExportReport)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/preferences/theme", wrapper.GetTheme)
	})
	r.Group(func(r chi.Router) {
		r.Put(options.BaseURL+"/preferences/theme", wrapper.SetTheme)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/preferences/theme/toggle", wrapper.ToggleTheme)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/profile", wrapper.GetProfile)
	})
	r.Group(func(r chi.Router) {
		r.Put(options.BaseURL+"/profile", wrapper.UpdateProfile)
	})

	return r
}
