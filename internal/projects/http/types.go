package http

import (
	"github.com/sirupsen/logrus"

	"github.com/TouhidPavel/Project-CRUD/internal/projects/domain"
	"github.com/TouhidPavel/Project-CRUD/internal/projects/repository"
)

const (
	msgCreated     = "Project Created Successfully"
	msgRetrieved   = "Project Retrieved Successfully"
	msgUpdated     = "Project Updated Successfully"
	msgDeleted     = "Project Deleted Successfully"
	msgNotFound    = "No Project Found"
	msgServerError = "There was a Server Side Error"
)

// Envelope is the body of every successful or not-found project response.
type Envelope struct {
	Message string          `json:"message"`
	Data    *domain.Project `json:"data,omitempty"`
}

// Failure is the body returned when a storage operation fails unexpectedly.
type Failure struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// Handler bundles the dependencies for project HTTP endpoints.
type Handler struct {
	store repository.Store
	log   *logrus.Logger
}

func New(store repository.Store, log *logrus.Logger) *Handler {
	return &Handler{store: store, log: log}
}
