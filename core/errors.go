package core

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	CatalogErrorBadInput           = "CATALOG_BAD_INPUT"
	CatalogErrorProviderResolution = "CATALOG_PROVIDER_RESOLUTION"
	CatalogErrorUnknownService     = "CATALOG_UNKNOWN_SERVICE"
	CatalogErrorServiceCollision   = "CATALOG_SERVICE_COLLISION"
	CatalogErrorRoleNotFound       = "CATALOG_ROLE_NOT_FOUND"
	CatalogErrorValidation         = "CATALOG_VALIDATION"
	CatalogErrorSnapshotFailed     = "CATALOG_SNAPSHOT_FAILED"
	CatalogErrorInternal           = "CATALOG_INTERNAL_ERROR"
)

// UnknownServiceError reports a selector that names no known service. It
// carries the full sorted list of valid keys so the caller can self-correct.
type UnknownServiceError struct {
	ServiceType string
	Known       []string
}

func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("core: service %q not in list of valid services: %v", e.ServiceType, e.Known)
}

func (e *UnknownServiceError) Unwrap() error { return ErrUnknownService }

// ServiceCollisionError reports two roles resolving to the same service
// type at store construction.
type ServiceCollisionError struct {
	ServiceType string
	Roles       []string
}

func (e *ServiceCollisionError) Error() string {
	roles := make([]string, len(e.Roles))
	copy(roles, e.Roles)
	sort.Strings(roles)
	return fmt.Sprintf("core: roles %v both resolve to service type %q", roles, e.ServiceType)
}

func (e *ServiceCollisionError) Unwrap() error { return ErrServiceCollision }

// RoleLookupError reports a role no member of a MultiProvider defines.
type RoleLookupError struct {
	Role      string
	Providers []string
}

func (e *RoleLookupError) Error() string {
	return fmt.Sprintf("core: no provider in %v defines role %q", e.Providers, e.Role)
}

func (e *RoleLookupError) Unwrap() error { return ErrRoleNotFound }

func catalogErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureCatalogErrorEnvelope(richErr)
	}

	switch {
	case errors.Is(err, ErrUnknownService):
		return newCatalogError(err.Error(), goerrors.CategoryNotFound, CatalogErrorUnknownService)
	case errors.Is(err, ErrRoleNotFound):
		return newCatalogError(err.Error(), goerrors.CategoryNotFound, CatalogErrorRoleNotFound)
	case errors.Is(err, ErrServiceCollision):
		return newCatalogError(err.Error(), goerrors.CategoryConflict, CatalogErrorServiceCollision)
	case errors.Is(err, ErrProviderResolution):
		return newCatalogError(err.Error(), goerrors.CategoryConflict, CatalogErrorProviderResolution)
	case errors.Is(err, ErrInvalidVisibility):
		return newCatalogError(err.Error(), goerrors.CategoryValidation, CatalogErrorValidation)
	case errors.Is(err, ErrEmptyServiceType), errors.Is(err, ErrInvalidRoleBinding):
		return newCatalogError(err.Error(), goerrors.CategoryBadInput, CatalogErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureCatalogErrorEnvelope(mapped)
}

func newCatalogError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureCatalogErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureCatalogErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = catalogHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultCatalogTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultCatalogTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput:
		return CatalogErrorBadInput
	case goerrors.CategoryValidation:
		return CatalogErrorValidation
	case goerrors.CategoryNotFound:
		return CatalogErrorUnknownService
	case goerrors.CategoryConflict:
		return CatalogErrorServiceCollision
	case goerrors.CategoryOperation:
		return CatalogErrorSnapshotFailed
	default:
		return CatalogErrorInternal
	}
}

func catalogHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
