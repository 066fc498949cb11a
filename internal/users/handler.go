package users

import (
	"encoding/json"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/bissquit/user-registry/internal/domain"
	"github.com/bissquit/user-registry/internal/pkg/ctxlog"
	"github.com/bissquit/user-registry/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Query parameter names accepted by ListUsers.
const (
	AgeParam     = "age"
	CompanyParam = "company"
	RoleParam    = "role"
)

var errorMappings = []httputil.ErrorMapping{
	{Error: ErrInvalidID, Status: http.StatusBadRequest, Message: "The requested user id wasn't a legal Mongo Object ID."},
	{Error: ErrUserNotFound, Status: http.StatusNotFound, Message: "The requested user was not found"},
	{Error: ErrInvalidAge, Status: http.StatusBadRequest},
	{Error: ErrInvalidRole, Status: http.StatusBadRequest},
}

// Handler handles HTTP requests for the users module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new users handler.
func NewHandler(service *Service) *Handler {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	return &Handler{
		service:   service,
		validator: v,
	}
}

// RegisterRoutes registers user routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Get("/{id}", h.GetUser)
		r.Delete("/{id}", h.DeleteUser)
	})
}

// CreateUserRequest represents the request body for creating a user.
type CreateUserRequest struct {
	Name    string `json:"name" validate:"required,min=1"`
	Age     int    `json:"age" validate:"required,gt=0"`
	Company string `json:"company" validate:"required,min=1"`
	Email   string `json:"email" validate:"required,email"`
	Role    string `json:"role" validate:"required,oneof=admin editor viewer"`
	Avatar  string `json:"avatar" validate:"omitempty,url"`
}

// ToInput converts the request to service input.
func (r *CreateUserRequest) ToInput() CreateUserInput {
	return CreateUserInput{
		Name:    r.Name,
		Age:     r.Age,
		Company: r.Company,
		Email:   r.Email,
		Role:    domain.Role(r.Role),
		Avatar:  r.Avatar,
	}
}

// DeleteUserResponse is returned after a successful delete.
type DeleteUserResponse struct {
	DeletedID string `json:"deleted_id"`
}

// ListUsers handles GET /users request.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	input := ListFilterInput{
		Age:     optionalParam(query, AgeParam),
		Company: optionalParam(query, CompanyParam),
		Role:    optionalParam(query, RoleParam),
	}

	users, err := h.service.ListUsers(r.Context(), input)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, users)
}

// GetUser handles GET /users/{id} request.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := ctxlog.With(r.Context(), "user_id", id)

	user, err := h.service.GetUser(ctx, id)
	if err != nil {
		httputil.HandleError(ctx, w, err, errorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, user)
}

// CreateUser handles POST /users request.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	user, err := h.service.CreateUser(r.Context(), req.ToInput())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.JSON(w, http.StatusCreated, user)
}

// DeleteUser handles DELETE /users/{id} request.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := ctxlog.With(r.Context(), "user_id", id)

	deletedID, err := h.service.DeleteUser(ctx, id)
	if err != nil {
		httputil.HandleError(ctx, w, err, errorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, DeleteUserResponse{DeletedID: deletedID})
}

// optionalParam returns nil when key is absent from the query.
func optionalParam(query url.Values, key string) *string {
	if !query.Has(key) {
		return nil
	}
	value := query.Get(key)
	return &value
}

// jsonFieldName reports validation failures under their JSON names.
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}
