package authorize

import "log/slog"

// AuditedAuthorization wraps an IAuthorization with decision logging.
type AuditedAuthorization struct {
	inner  IAuthorization
	logger *slog.Logger
}

func NewAuditedAuthorization(inner IAuthorization, logger *slog.Logger) IAuthorization {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditedAuthorization{
		inner:  inner,
		logger: logger,
	}
}

func (a *AuditedAuthorization) Enforce(role Role, resource Resource, action Action) (bool, error) {
	allowed, err := a.inner.Enforce(role, resource, action)

	attrs := []any{
		"role", string(role),
		"resource", string(resource),
		"action", string(action),
		"allowed", allowed,
	}

	if err != nil {
		attrs = append(attrs, "error", err.Error())
		a.logger.Error("authz_decision", attrs...)
	} else if allowed {
		a.logger.Debug("authz_decision", attrs...)
	} else {
		a.logger.Warn("authz_decision", attrs...)
	}

	return allowed, err
}

func (a *AuditedAuthorization) Can(role Role, resource Resource, action Action) bool {
	allowed, err := a.Enforce(role, resource, action)
	return err == nil && allowed
}

func (a *AuditedAuthorization) MustEnforce(role Role, resource Resource, action Action) error {
	ok, err := a.Enforce(role, resource, action)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}
